// Stress test for the O(n²) collision pass at growing entity counts
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"collide2d/internal/components"
	"collide2d/internal/config"
	"collide2d/internal/engine"
	"collide2d/internal/geom"
	"collide2d/internal/logging"
	"collide2d/internal/physics"
	"collide2d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var testCounts = []int{50, 100, 250, 500, 1000, 2000}

type result struct {
	count   int
	perTick time.Duration
	pairs   int
	narrow  int
	hits    int
	enters  int
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "config file")
	ticks := flag.Int("ticks", 120, "ticks per entity count")
	limit := flag.Int("max", 2000, "largest entity count to run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	for _, count := range testCounts {
		if count > *limit {
			break
		}
		r := run(cfg, count, *ticks)
		fmt.Printf("%5d entities: %10v/tick | %8d pairs | %7d narrow | %5d touching | %6d enters\n",
			r.count, r.perTick.Round(time.Microsecond), r.pairs, r.narrow, r.hits, r.enters)
		logger.Info("Bench: run",
			zap.Int("entities", r.count),
			zap.Duration("per_tick", r.perTick),
			zap.Int("pairs", r.pairs),
			zap.Int("narrow", r.narrow),
			zap.Int("enters", r.enters),
		)
	}
}

// run steps a freshly populated world and reports the average cost of one tick and
// the collision statistics of the last tick.
func run(cfg *config.Config, count, ticks int) result {
	w := world.New(cfg, nil)
	populate(w, count, rand.New(rand.NewSource(42)))

	enters := 0
	w.Physics.OnEnter.AddListener(func(c physics.Contact) { enters++ })

	dt := 1 / float32(max(cfg.Sim.TickRate, 1))
	w.Step(dt) // Warm up

	start := time.Now()
	for i := 0; i < ticks; i++ {
		w.Step(dt)
	}
	elapsed := time.Since(start)

	st := w.Physics.Stats()
	return result{
		count:   count,
		perTick: elapsed / time.Duration(max(ticks, 1)),
		pairs:   st.Pairs,
		narrow:  st.NarrowTested,
		hits:    st.Hits,
		enters:  enters,
	}
}

// populate scatters a mix of circles and boxes plus a few static pillars over the
// arena, keeping density roughly constant as count grows.
func populate(w *world.World, count int, rng *rand.Rand) {
	area := w.Config.Sim.Bounds
	if !area.Enabled() {
		area = config.Bounds{Max: rl.Vector2{X: float32(w.Config.Window.Width), Y: float32(w.Config.Window.Height)}}
	}
	size := rl.Vector2Subtract(area.Max, area.Min)
	radius := max(2, 12*float32(200)/float32(max(count, 200)))

	for i := 0; i < count; i++ {
		e := engine.NewEntity(fmt.Sprintf("body_%d", i))
		e.Transform.Position = rl.Vector2{
			X: area.Min.X + rng.Float32()*size.X,
			Y: area.Min.Y + rng.Float32()*size.Y,
		}

		switch {
		case i%20 == 0:
			e.Collider = components.NewCollider(geom.NewBox(radius*3, radius*3))
			e.Kinematics = components.NewStaticKinematics()
		case i%2 == 0:
			e.Collider = components.NewCollider(geom.NewBox(radius*2, radius*1.5))
			e.Kinematics = randomKinematics(rng)
			e.Kinematics.Behavior |= components.Rotating
			e.Kinematics.AngularVelocity = rng.Float32()*180 - 90
		default:
			e.Collider = components.NewCollider(geom.NewCircle(radius))
			e.Kinematics = randomKinematics(rng)
		}
		w.Spawn(e)
	}
}

func randomKinematics(rng *rand.Rand) *components.Kinematics {
	k := components.NewKinematics()
	k.Mass = 0.5 + rng.Float32()*4.5
	k.Velocity = rl.Vector2{X: rng.Float32()*400 - 200, Y: rng.Float32()*400 - 200}
	return k
}
