package world

import (
	"collide2d/internal/config"
	"collide2d/internal/engine"
	"collide2d/internal/logging"
	"collide2d/internal/motion"
	"collide2d/internal/physics"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// World owns one simulation: its configuration, the entity scene, and the collision
// pass. It is driven from a single goroutine.
type World struct {
	Config  *config.Config
	Scene   *engine.Scene
	Physics *physics.CollisionWorld

	logger *zap.Logger
	ticks  uint64
}

func New(cfg *config.Config, logger *zap.Logger) *World {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = logging.OrNop(logger)
	return &World{
		Config:  cfg,
		Scene:   engine.NewScene("Main"),
		Physics: physics.NewCollisionWorld(cfg.Physics, logger.Named("physics")),
		logger:  logger,
	}
}

func (w *World) Ticks() uint64 {
	return w.ticks
}

// ClampDelta bounds a frame time to [0, Sim.MaxDelta]. Non-finite input becomes 0.
func (w *World) ClampDelta(dt float32) float32 {
	if math32.IsNaN(dt) || dt < 0 {
		return 0
	}
	return min(dt, w.Config.Sim.MaxDelta)
}

// Step advances the simulation by one tick and returns the delta actually used.
// Order: targeting, motion, arena clamp, collision.
func (w *World) Step(dt float32) float32 {
	dt = w.ClampDelta(dt)
	entities := w.Scene.Entities()

	motion.Targeting(w.Scene)
	motion.Step(entities, dt)
	motion.ClampToBounds(entities, w.Config.Sim.Bounds, w.Config.Sim.BoundsMargin)
	w.Physics.Update(entities)

	w.ticks++
	return dt
}

// Spawn adds an entity to the scene.
func (w *World) Spawn(e *engine.Entity) {
	w.Scene.Add(e)
}

// Despawn removes e from the scene. Pairs it was part of raise OnExit on the next Step.
func (w *World) Despawn(e *engine.Entity) {
	w.Scene.Remove(e)
}

// ReplaceScene loads path into a fresh scene and swaps it in. On error the current
// scene stays. Pairs from the old scene are dropped without raising OnExit.
func (w *World) ReplaceScene(path string) error {
	old := w.Scene
	w.Scene = engine.NewScene("Main")
	if err := w.LoadScene(path); err != nil {
		w.Scene = old
		return err
	}
	w.Physics.Reset()
	return nil
}

// Player returns the first entity tagged "player", or nil.
func (w *World) Player() *engine.Entity {
	if found := w.Scene.FindByTag("player"); len(found) > 0 {
		return found[0]
	}
	return nil
}
