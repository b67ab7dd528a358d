package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Dir is the on-disk prefab directory checked before the embedded copies,
// so tuning edits apply without a rebuild.
var Dir = "prefabs"

// Load reads a yaml prefab by name, e.g. "nav.yaml" or "prefabs/nav.yaml".
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript reads a tengo script by name, with or without the scripts/ prefix.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, cleanScriptPath(name))
}

func read(fsys embed.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fsys.ReadFile(clean)
}

func cleanPrefabPath(name string) string {
	s := filepath.ToSlash(name)
	s, _ = strings.CutPrefix(s, "prefabs/")
	return s
}

func cleanScriptPath(name string) string {
	s := cleanPrefabPath(name)
	s, _ = strings.CutPrefix(s, "scripts/")
	return path.Join("scripts", s)
}
