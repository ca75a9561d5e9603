package main

import (
	"collide2d/internal/config"
	"collide2d/internal/engine"
	"collide2d/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gdamore/tcell/v2"
)

type cell struct {
	x, y int
}

// viewport maps the arena rectangle onto a grid of terminal cells.
type viewport struct {
	area       config.Bounds
	cols, rows int
}

func newViewport(area config.Bounds, cols, rows int) viewport {
	return viewport{area: area, cols: max(cols, 1), rows: max(rows, 1)}
}

func (v viewport) scale() rl.Vector2 {
	size := rl.Vector2Subtract(v.area.Max, v.area.Min)
	return rl.Vector2{X: float32(v.cols) / size.X, Y: float32(v.rows) / size.Y}
}

func (v viewport) project(p rl.Vector2) cell {
	s := v.scale()
	return cell{
		x: int(math32.Floor((p.X - v.area.Min.X) * s.X)),
		y: int(math32.Floor((p.Y - v.area.Min.Y) * s.Y)),
	}
}

func (v viewport) contains(c cell) bool {
	return c.x >= 0 && c.x < v.cols && c.y >= 0 && c.y < v.rows
}

// line walks the cells between two world points.
func (v viewport) line(a, b rl.Vector2, out []cell) []cell {
	ca, cb := v.project(a), v.project(b)
	steps := max(abs(cb.x-ca.x), abs(cb.y-ca.y), 1)
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		out = append(out, v.project(rl.Vector2Lerp(a, b, t)))
	}
	return out
}

// outline returns the cells covering the collider's world outline, clipped to the view.
func (v viewport) outline(e *engine.Entity) []cell {
	c := e.Collider
	var cells []cell
	switch c.Shape.Kind {
	case geom.Circle:
		center, r := c.Center(e.Transform), c.Radius(e.Transform)
		s := v.scale()
		segments := max(8, int(r*max(s.X, s.Y)*6))
		prev := rl.Vector2Add(center, rl.Vector2{X: r})
		for i := 1; i <= segments; i++ {
			angle := 2 * math32.Pi * float32(i) / float32(segments)
			next := rl.Vector2Add(center, rl.Vector2{X: r * math32.Cos(angle), Y: r * math32.Sin(angle)})
			cells = v.line(prev, next, cells)
			prev = next
		}
	default:
		pts := c.Points(e.Transform)
		for i, p := range pts {
			cells = v.line(p, pts[(i+1)%len(pts)], cells)
		}
	}

	clipped := cells[:0]
	for _, cl := range cells {
		if v.contains(cl) {
			clipped = append(clipped, cl)
		}
	}
	return clipped
}

// glyph picks the rune and style an entity is drawn with. Colliding bodies are red,
// matching the sandbox's debug overlay.
func glyph(e *engine.Entity) (rune, tcell.Style) {
	ch := '+'
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	switch {
	case e.HasTag("player"):
		ch = '@'
		style = style.Foreground(tcell.ColorYellow)
	case e.Immovable():
		ch = '#'
		style = style.Foreground(tcell.ColorGray)
	case e.Collider.Shape.Kind == geom.Circle:
		ch = 'o'
	}
	if e.IsColliding() {
		style = style.Foreground(tcell.ColorRed).Bold(true)
	}
	return ch, style
}

// arena is the region shown: the configured bounds, or the window rectangle when
// clamping is disabled.
func arena(cfg *config.Config) config.Bounds {
	if cfg.Sim.Bounds.Enabled() {
		return cfg.Sim.Bounds
	}
	return config.Bounds{Max: rl.Vector2{X: float32(cfg.Window.Width), Y: float32(cfg.Window.Height)}}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
