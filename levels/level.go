package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/collision"
	"github.com/milk9111/groundnav/common"
)

//go:embed *.json
var LevelsFS embed.FS

const (
	TileEmpty  = 0
	TileSolid  = 1
	TileHazard = 2
)

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity is a placed object; X and Y are in pixels.
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return parseLevel(name, data)
}

// LoadLevelFile reads a level from disk.
func LoadLevelFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return parseLevel(path, data)
}

func parseLevel(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: %s: invalid dimensions %dx%d", name, lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("levels: %s: layer %d has %d tiles, want %d", name, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

func (l *Level) hasPhysics(layer int) bool {
	return layer < len(l.LayerMeta) && l.LayerMeta[layer].Physics
}

// SolidRects merges contiguous solid tiles of every physics layer into pixel
// rects, expanding each greedily in width then height. Hazards are skipped.
func (l *Level) SolidRects(tileSize int) []common.Rect {
	if tileSize <= 0 {
		tileSize = common.TileSize
	}
	var rects []common.Rect
	for layerIdx, layer := range l.Layers {
		if !l.hasPhysics(layerIdx) {
			continue
		}
		solid := func(idx int) bool {
			v := layer[idx]
			return v != TileEmpty && v != TileHazard
		}

		processed := make([]bool, l.Width*l.Height)
		for y := 0; y < l.Height; y++ {
			for x := 0; x < l.Width; x++ {
				idx := y*l.Width + x
				if processed[idx] {
					continue
				}
				processed[idx] = true
				if !solid(idx) {
					continue
				}

				w := 1
				for x+w < l.Width {
					idx2 := y*l.Width + x + w
					if processed[idx2] || !solid(idx2) {
						break
					}
					w++
				}

				h := 1
			heightLoop:
				for y+h < l.Height {
					for xi := x; xi < x+w; xi++ {
						idx2 := (y+h)*l.Width + xi
						if processed[idx2] || !solid(idx2) {
							break heightLoop
						}
					}
					h++
				}

				for yy := y; yy < y+h; yy++ {
					for xx := x; xx < x+w; xx++ {
						processed[yy*l.Width+xx] = true
					}
				}
				rects = append(rects, common.RectFromSize(x*tileSize, y*tileSize, w*tileSize, h*tileSize))
			}
		}
	}
	return rects
}

// Grid rasterises the level into a pixel collision grid with one entity per
// merged solid rect.
func (l *Level) Grid(tileSize int) *collision.Grid {
	if tileSize <= 0 {
		tileSize = common.TileSize
	}
	g := collision.NewGrid(l.Width*tileSize, l.Height*tileSize)
	for _, r := range l.SolidRects(tileSize) {
		g.AddEntity(r)
	}
	return g
}

// Space builds a chipmunk backed collider from the merged solid rects.
func (l *Level) Space(tileSize int) *collision.SpaceCollider {
	sc := collision.NewSpaceCollider()
	for _, r := range l.SolidRects(tileSize) {
		sc.AddBox(r)
	}
	return sc
}

// Spawns returns the positions of every entity of the given type.
func (l *Level) Spawns(kind string) []cp.Vector {
	var out []cp.Vector
	for _, e := range l.Entities {
		if e.Type == kind {
			out = append(out, cp.Vector{X: float64(e.X), Y: float64(e.Y)})
		}
	}
	return out
}

// Prop returns a string property of the first entity of the given type.
func (l *Level) Prop(kind, key string) (string, bool) {
	for _, e := range l.Entities {
		if e.Type != kind {
			continue
		}
		if v, ok := e.Props[key].(string); ok {
			return v, true
		}
	}
	return "", false
}
