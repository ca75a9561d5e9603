package motion

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerAcceleration is the thrust applied by directional input.
const PlayerAcceleration float32 = 1500

// Input is a frame's directional intent, independent of the device that produced it.
type Input struct {
	Up, Down, Left, Right bool
}

// Acceleration converts the held directions into a thrust of the given magnitude.
// Diagonals are normalised so they are no faster than a single axis.
func (in Input) Acceleration(force float32) rl.Vector2 {
	var a rl.Vector2
	if in.Up {
		a.Y -= 1
	}
	if in.Down {
		a.Y += 1
	}
	if in.Left {
		a.X -= 1
	}
	if in.Right {
		a.X += 1
	}
	if a.X == 0 && a.Y == 0 {
		return a
	}
	return rl.Vector2Scale(rl.Vector2Normalize(a), force)
}
