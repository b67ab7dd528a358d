package main

import (
	"fmt"
	"image"
	_ "image/png"
	"iter"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/ai"
	"github.com/milk9111/groundnav/collision"
	"github.com/milk9111/groundnav/common"
	"github.com/milk9111/groundnav/levels"
	"github.com/milk9111/groundnav/nav"
	"github.com/milk9111/groundnav/prefabs"
)

const defaultMover = "walker"

type Options struct {
	Mover    string
	Collider string
	Mask     string
	Debug    bool
}

// collisionSource is a collider that can also describe its walkable tops.
type collisionSource interface {
	nav.Collider
	Silhouettes() []iter.Seq[nav.SurfacePoint]
}

type Game struct {
	opts   Options
	level  *levels.Level
	width  int
	height int
	solids []common.Rect

	collider collisionSource
	mover    prefabs.MoverSpec
	physics  nav.PhysicsConstants
	scorer   nav.Scorer

	pathData *nav.PathData
	graph    *nav.Graph
	route    []nav.CheckPoint
	ctrl     *ai.Controller

	npc    body
	spawn  cp.Vector
	target cp.Vector

	watcher *prefabs.Watcher
	frames  int
}

func NewGame(lvl *levels.Level, opts Options) (*Game, error) {
	g := &Game{
		opts:   opts,
		level:  lvl,
		width:  lvl.Width * common.TileSize,
		height: lvl.Height * common.TileSize,
		solids: lvl.SolidRects(common.TileSize),
		ctrl:   ai.NewController(),
	}

	switch opts.Collider {
	case "", "grid":
		grid := lvl.Grid(common.TileSize)
		if opts.Mask != "" {
			if err := addMask(grid, opts.Mask); err != nil {
				return nil, err
			}
		}
		g.collider = grid
	case "space":
		g.collider = lvl.Space(common.TileSize)
	default:
		return nil, fmt.Errorf("navviz: unknown collider %q", opts.Collider)
	}
	if opts.Mask != "" && opts.Collider == "space" {
		log.Printf("navviz: -mask only applies to the grid collider")
	}

	if spawns := lvl.Spawns("npc"); len(spawns) > 0 {
		g.spawn = spawns[0]
	} else {
		g.spawn = cp.Vector{X: common.TileSize, Y: 0}
	}
	g.target = g.spawn
	if goals := lvl.Spawns("goal"); len(goals) > 0 {
		g.target = goals[0]
	}

	if g.opts.Mover == "" {
		g.opts.Mover = defaultMover
		if name, ok := lvl.Prop("npc", "mover"); ok {
			g.opts.Mover = name
		}
	}

	if err := g.load(); err != nil {
		return nil, err
	}
	g.npc.place(g.spawn)
	g.settle()
	g.replan()
	return g, nil
}

// addMask stamps the opaque pixels of a png onto the grid as one entity.
func addMask(grid *collision.Grid, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("navviz: open mask: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("navviz: decode mask %s: %w", path, err)
	}
	grid.AddAlpha(img, image.Point{})
	return nil
}

// load reads the prefabs and re-clusters the level.
func (g *Game) load() error {
	cfg, err := prefabs.LoadNavConfig()
	if err != nil {
		return err
	}
	movers, err := prefabs.LoadMovers()
	if err != nil {
		return err
	}
	mover, err := movers.Find(g.opts.Mover)
	if err != nil {
		return err
	}

	g.mover = mover
	g.physics = movers.Physics.Constants()
	g.scorer = ai.ScorerFor(mover, cfg.UpwardJumpPenalty)

	foot := g.npc.foot()
	g.npc.meta = mover.Npc(cp.Vector{}, g.npc.meta.Velocity)
	g.npc.meta.Position = cp.Vector{X: foot.X, Y: foot.Y - mover.HeightOffset}
	g.npc.phys = g.physics

	g.pathData = nav.NewPathData(g.collider.Silhouettes(), g.collider, cfg)
	log.Printf("navviz: %d segments in %d islands for %s", len(g.pathData.Segments()), g.pathData.Islands(), mover.Name)
	return nil
}

// settle drops the npc onto the ground below its spawn point.
func (g *Game) settle() {
	for range ebiten.DefaultTPS * 4 {
		if g.npc.grounded {
			return
		}
		g.npc.step(ai.Input{}, g.collider, 1/float64(ebiten.DefaultTPS))
	}
}

func (g *Game) replan() {
	g.graph = g.pathData.ForMover(g.npc.meta, g.physics)
	g.route = g.graph.PathTo(g.target, g.scorer)
	g.ctrl.Follow(g.graph, g.route)
	if g.route == nil {
		log.Printf("navviz: no route to (%.0f, %.0f)", g.target.X, g.target.Y)
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.opts.Debug = !g.opts.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.npc.place(g.spawn)
		g.settle()
		g.replan()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.target = cp.Vector{X: float64(x), Y: float64(y)}
		g.replan()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.npc.place(cp.Vector{X: float64(x), Y: float64(y)})
		g.settle()
		g.replan()
	}

	in := g.ctrl.Step(g.npc.foot(), g.npc.grounded)
	g.npc.step(in, g.collider, 1/float64(ebiten.TPS()))
	g.npc.meta.Position.X = common.Clamp(g.npc.meta.Position.X, 0, float64(g.width-1))

	if g.npc.foot().Y > float64(g.height+common.TileSize) {
		log.Printf("navviz: %s fell out of the level, respawning", g.mover.Name)
		g.npc.place(g.spawn)
		g.settle()
		g.replan()
	} else if g.ctrl.Stuck() && g.npc.grounded {
		g.replan()
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		if err := g.load(); err != nil {
			log.Printf("navviz: reload after %s: %v", name, err)
			return
		}
		log.Printf("navviz: reloaded %s", name)
		g.replan()
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("navviz: watcher: %v", err)
		}
	default:
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
