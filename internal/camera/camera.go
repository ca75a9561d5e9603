package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Follow is a 2D camera that eases toward a focus point, usually the player.
type Follow struct {
	Target    rl.Vector2 // World point shown at Offset
	Offset    rl.Vector2 // Screen-space anchor, the window center
	Zoom      float32
	Smoothing float32 // Catch-up rate per second; 0 snaps
	MinZoom   float32
	MaxZoom   float32
	ZoomStep  float32 // Zoom change per wheel notch, as a fraction
}

func New(screenWidth, screenHeight int32) *Follow {
	return &Follow{
		Offset:    rl.Vector2{X: float32(screenWidth) / 2, Y: float32(screenHeight) / 2},
		Target:    rl.Vector2{X: float32(screenWidth) / 2, Y: float32(screenHeight) / 2},
		Zoom:      1,
		Smoothing: 6,
		MinZoom:   0.25,
		MaxZoom:   4,
		ZoomStep:  0.1,
	}
}

// Update moves the target toward focus and applies mouse wheel zoom.
func (c *Follow) Update(focus rl.Vector2, wheel, deltaTime float32) {
	if c.Smoothing <= 0 {
		c.Target = focus
	} else {
		// Frame-rate independent exponential ease
		t := 1 - math32.Exp(-c.Smoothing*deltaTime)
		c.Target = rl.Vector2Lerp(c.Target, focus, t)
	}

	if wheel != 0 {
		c.Zoom = rl.Clamp(c.Zoom*(1+wheel*c.ZoomStep), c.MinZoom, c.MaxZoom)
	}
}

// ScreenToWorld maps a screen position (e.g. the mouse) into world space.
func (c *Follow) ScreenToWorld(p rl.Vector2) rl.Vector2 {
	return rl.Vector2Add(rl.Vector2Scale(rl.Vector2Subtract(p, c.Offset), 1/c.Zoom), c.Target)
}

// WorldToScreen is the inverse of ScreenToWorld.
func (c *Follow) WorldToScreen(p rl.Vector2) rl.Vector2 {
	return rl.Vector2Add(rl.Vector2Scale(rl.Vector2Subtract(p, c.Target), c.Zoom), c.Offset)
}

func (c *Follow) GetRaylibCamera() rl.Camera2D {
	return rl.Camera2D{
		Offset: c.Offset,
		Target: c.Target,
		Zoom:   c.Zoom,
	}
}
