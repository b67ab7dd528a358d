package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/groundnav/collision"
	"github.com/milk9111/groundnav/common"
	"golang.org/x/image/colornames"
)

var islandColors = []color.RGBA{
	colornames.Tomato,
	colornames.Gold,
	colornames.Limegreen,
	colornames.Deepskyblue,
	colornames.Orchid,
	colornames.Orange,
	colornames.Turquoise,
	colornames.Hotpink,
}

var (
	solidColor  = color.RGBA{R: 60, G: 60, B: 72, A: 255}
	walkColor   = color.RGBA{R: 160, G: 160, B: 160, A: 120}
	jumpColor   = color.RGBA{R: 255, G: 220, B: 0, A: 160}
	entityColor = color.RGBA{R: 90, G: 90, B: 140, A: 200}
	routeColor  = colornames.White
	npcColor    = colornames.Lightgreen
	targetColor = colornames.Red
)

func islandColor(island int) color.RGBA {
	return islandColors[island%len(islandColors)]
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 24, A: 255})

	for _, r := range g.solids {
		fillRect(screen, r, solidColor)
	}

	if g.opts.Debug {
		g.drawEntities(screen)
		g.drawEdges(screen)
	}

	for _, s := range g.pathData.Segments() {
		strokeRect(screen, s.Rect.Expand(1), islandColor(s.Island))
	}

	g.drawRoute(screen)
	g.drawNpc(screen)

	vector.StrokeLine(screen, float32(g.target.X-4), float32(g.target.Y-4), float32(g.target.X+4), float32(g.target.Y+4), 2, targetColor, true)
	vector.StrokeLine(screen, float32(g.target.X-4), float32(g.target.Y+4), float32(g.target.X+4), float32(g.target.Y-4), 2, targetColor, true)

	if g.opts.Debug {
		g.drawStats(screen)
	}
}

// drawEntities outlines the regions the grid collider clusters separately.
func (g *Game) drawEntities(screen *ebiten.Image) {
	grid, ok := g.collider.(*collision.Grid)
	if !ok {
		return
	}
	for _, r := range grid.Entities() {
		strokeRect(screen, r, entityColor)
	}
}

func (g *Game) drawEdges(screen *ebiten.Image) {
	if g.graph == nil {
		return
	}
	for i := range g.graph.Len() {
		from := g.graph.Segment(i).TopCenter()
		for _, e := range g.graph.Edges(i) {
			to := g.graph.Segment(e.To).TopCenter()
			c := walkColor
			if e.Jump {
				c = jumpColor
			}
			ebitenutil.DrawLine(screen, from.X, from.Y-2, to.X, to.Y-2, c)
		}
	}
}

func (g *Game) drawRoute(screen *ebiten.Image) {
	if g.graph == nil || len(g.route) < 2 {
		return
	}
	for i := 1; i < len(g.route); i++ {
		a := g.graph.Segment(g.route[i-1].Segment).TopCenter()
		b := g.graph.Segment(g.route[i].Segment).TopCenter()
		width := float32(2)
		if g.route[i].Jump {
			width = 3
		}
		vector.StrokeLine(screen, float32(a.X), float32(a.Y-4), float32(b.X), float32(b.Y-4), width, routeColor, true)
	}
	if cur, ok := g.ctrl.Current(); ok {
		strokeRect(screen, g.graph.Segment(cur.Segment).Rect.Expand(3), routeColor)
	}
}

func (g *Game) drawNpc(screen *ebiten.Image) {
	top := g.npc.meta.Position
	foot := g.npc.foot()
	const halfWidth = 6
	vector.StrokeRect(screen, float32(top.X-halfWidth), float32(top.Y), halfWidth*2, float32(foot.Y-top.Y), 1.5, npcColor, false)
	if !g.npc.grounded {
		ebitenutil.DrawLine(screen, foot.X, foot.Y, foot.X+g.npc.meta.Velocity.X/8, foot.Y+g.npc.meta.Velocity.Y/8, npcColor)
	}
}

func (g *Game) drawStats(screen *ebiten.Image) {
	state := "following"
	switch {
	case g.route == nil:
		state = "no route"
	case g.ctrl.Stuck():
		state = "stuck"
	case g.ctrl.Done():
		state = "arrived"
	}
	mover := g.graph.Mover()
	text := fmt.Sprintf("mover: %s (move %.1f, jump %.1f)  segments: %d  islands: %d  nodes: %d\nroute: %d/%d checkpoints (%s)  FPS: %.1f",
		g.mover.Name, mover.MoveSpeed, mover.JumpSpeed, len(g.pathData.Segments()), g.pathData.Islands(), g.graph.Len(),
		len(g.route), g.pathData.Config().MaxHops+1, state, ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, text, 8, 8)
}

func fillRect(screen *ebiten.Image, r common.Rect, c color.Color) {
	vector.FillRect(screen, float32(r.MinX), float32(r.MinY), float32(r.Width()), float32(r.Height()), c, false)
}

func strokeRect(screen *ebiten.Image, r common.Rect, c color.Color) {
	vector.StrokeRect(screen, float32(r.MinX), float32(r.MinY), float32(r.Width()), float32(r.Height()), 1, c, false)
}
