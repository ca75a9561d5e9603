package components

import (
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Behavior flags select which motion rules apply to an entity. Several may be combined.
type Behavior uint16

const (
	Linear Behavior = 1 << iota
	Accelerate
	Homing
	Orbital
	Rotating
	Pulsing

	BehaviorNone Behavior = 0
)

var behaviorNames = []struct {
	flag Behavior
	name string
}{
	{Linear, "linear"},
	{Accelerate, "accelerate"},
	{Homing, "homing"},
	{Orbital, "orbital"},
	{Rotating, "rotating"},
	{Pulsing, "pulsing"},
}

func (b Behavior) Has(flag Behavior) bool {
	return b&flag != 0
}

func (b Behavior) String() string {
	if b == BehaviorNone {
		return "none"
	}
	var parts []string
	for _, bn := range behaviorNames {
		if b.Has(bn.flag) {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseBehavior maps a flag name to its value. Unknown names report false.
func ParseBehavior(name string) (Behavior, bool) {
	for _, bn := range behaviorNames {
		if bn.name == strings.ToLower(name) {
			return bn.flag, true
		}
	}
	return BehaviorNone, false
}

// Kinematics is the velocity and mass state the collision resolver reads and writes,
// plus the motion parameters the movement step consumes.
type Kinematics struct {
	Velocity     rl.Vector2
	Acceleration rl.Vector2
	Mass         float32 // +Inf marks an infinite-mass body
	Static       bool    // never moved by collisions
	Drag         float32 // 0 = none

	AngularVelocity     float32 // degrees per second
	AngularAcceleration float32

	Behavior Behavior

	// Target is an owned copy of the point homing and orbital motion steer toward.
	// It is refreshed once per tick by the targeting step.
	Target    rl.Vector2
	HasTarget bool

	OrbitRadius          float32
	OrbitAngle           float32 // degrees
	OrbitAngularVelocity float32 // degrees per second

	PulseFrequency float32
	PulseAmplitude float32
	BaseScale      rl.Vector2

	Elapsed float32
}

func NewKinematics() *Kinematics {
	return &Kinematics{
		Mass:           1.0,
		Behavior:       Linear,
		PulseFrequency: 5,
		PulseAmplitude: 0.2,
		BaseScale:      rl.Vector2{X: 1, Y: 1},
	}
}

// NewStaticKinematics creates a body the resolver treats as an immovable wall.
func NewStaticKinematics() *Kinematics {
	k := NewKinematics()
	k.Static = true
	k.Mass = math32.Inf(1)
	k.Behavior = BehaviorNone
	return k
}

// InfiniteMass reports whether the body carries the infinite-mass marker.
func (k *Kinematics) InfiniteMass() bool {
	return math32.IsInf(k.Mass, 1)
}

// Immovable reports whether collisions must leave this body in place.
func (k *Kinematics) Immovable() bool {
	return k.Static || k.InfiniteMass()
}

// ApplyImpulse adds an instantaneous velocity change.
func (k *Kinematics) ApplyImpulse(dv rl.Vector2) {
	k.Velocity = rl.Vector2Add(k.Velocity, dv)
}

func (k *Kinematics) Speed() float32 {
	return rl.Vector2Length(k.Velocity)
}
