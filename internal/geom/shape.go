package geom

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/multierr"
)

// Kind tags which variant of Shape is populated.
type Kind uint8

const (
	Circle Kind = iota
	Polygon
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Polygon:
		return "polygon"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Shape is a collision shape in local space: either a circle or a convex polygon.
// Shapes are treated as immutable once an entity holds them.
type Shape struct {
	Kind   Kind
	Radius float32      // Circle only
	Points []rl.Vector2 // Polygon only, ordered around the hull
}

func NewCircle(radius float32) Shape {
	return Shape{Kind: Circle, Radius: radius}
}

// NewPolygon copies points into a new polygon shape.
func NewPolygon(points ...rl.Vector2) Shape {
	pts := make([]rl.Vector2, len(points))
	copy(pts, points)
	return Shape{Kind: Polygon, Points: pts}
}

// NewBox creates a w x h rectangle centered on the local origin.
func NewBox(w, h float32) Shape {
	hw, hh := w/2, h/2
	return NewPolygon(
		rl.Vector2{X: -hw, Y: -hh},
		rl.Vector2{X: hw, Y: -hh},
		rl.Vector2{X: hw, Y: hh},
		rl.Vector2{X: -hw, Y: hh},
	)
}

var (
	ErrTooFewPoints = errors.New("polygon needs at least 3 points")
	ErrNotConvex    = errors.New("polygon is not convex")
	ErrBadRadius    = errors.New("circle radius must be positive")
	ErrNotFinite    = errors.New("shape has non-finite coordinates")
)

// Validate reports every broken shape invariant. The narrow phase never calls this;
// loaders do, so malformed shapes are rejected before they reach the simulation.
func (s Shape) Validate() error {
	var err error
	switch s.Kind {
	case Circle:
		if !(s.Radius > 0) {
			err = multierr.Append(err, fmt.Errorf("%w: got %v", ErrBadRadius, s.Radius))
		}
		if math32.IsInf(s.Radius, 0) {
			err = multierr.Append(err, ErrNotFinite)
		}
	case Polygon:
		if len(s.Points) < 3 {
			err = multierr.Append(err, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(s.Points)))
			break
		}
		for _, p := range s.Points {
			if math32.IsNaN(p.X) || math32.IsNaN(p.Y) || math32.IsInf(p.X, 0) || math32.IsInf(p.Y, 0) {
				err = multierr.Append(err, ErrNotFinite)
				break
			}
		}
		if !isConvex(s.Points) {
			err = multierr.Append(err, ErrNotConvex)
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown shape kind %s", s.Kind))
	}
	return err
}

// isConvex checks that all edge turns share one sign. Collinear runs are allowed.
func isConvex(points []rl.Vector2) bool {
	n := len(points)
	var sign float32
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		ab := rl.Vector2Subtract(b, a)
		bc := rl.Vector2Subtract(c, b)
		cross := ab.X*bc.Y - ab.Y*bc.X
		if math32.Abs(cross) < Epsilon {
			continue
		}
		if sign == 0 {
			sign = cross
			continue
		}
		if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return sign != 0
}
