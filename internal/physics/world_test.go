package physics

import (
	"testing"

	"collide2d/internal/engine"
	"collide2d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func pairNames(p Pair) string {
	return p.A.Name + "-" + p.B.Name
}

func TestUpdateSetsAndClearsCollidingFlags(t *testing.T) {
	w := NewCollisionWorld(defaultParams(), nil)
	a := body("a", geom.NewCircle(1), 0, 0)
	b := body("b", geom.NewCircle(1), 1.5, 0)
	far := body("far", geom.NewCircle(1), 50, 50)
	entities := []*engine.Entity{a, b, far}

	w.Update(entities)
	assert.True(t, a.IsColliding())
	assert.True(t, b.IsColliding())
	assert.False(t, far.IsColliding())

	b.Transform.Position = rl.Vector2{X: 20}
	w.Update(entities)
	assert.False(t, a.IsColliding())
	assert.False(t, b.IsColliding())
}

func TestUpdateSkipsIneligiblePairs(t *testing.T) {
	bare := func(name string, x float32) *engine.Entity {
		e := body(name, geom.NewCircle(1), x, 0)
		e.Kinematics = nil
		return e
	}

	tests := []struct {
		name string
		a, b *engine.Entity
	}{
		{"no kinematics on either", bare("a", 0), bare("b", 0.5)},
		{"both static", wall("a", geom.NewCircle(1), 0, 0), wall("b", geom.NewCircle(1), 0.5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewCollisionWorld(defaultParams(), nil)
			w.Update([]*engine.Entity{tt.a, tt.b})

			assert.False(t, tt.a.IsColliding())
			assert.False(t, tt.b.IsColliding())
			assert.Zero(t, w.Stats().Pairs)
		})
	}

	t.Run("disabled or inactive", func(t *testing.T) {
		a := body("a", geom.NewCircle(1), 0, 0)
		b := body("b", geom.NewCircle(1), 0.5, 0)
		c := body("c", geom.NewCircle(1), 1, 0)
		b.Collider.Enabled = false
		c.Active = false

		w := NewCollisionWorld(defaultParams(), nil)
		w.Update([]*engine.Entity{a, b, c})
		assert.False(t, a.IsColliding())
		assert.Zero(t, w.Stats().Pairs)
	})
}

func TestUpdateBouncesOffWall(t *testing.T) {
	w := NewCollisionWorld(defaultParams(), nil)
	box := wall("wall", geom.NewBox(2, 2), 0, 0)
	ball := body("ball", geom.NewCircle(1), 1.5, 0)
	ball.Kinematics.Velocity = rl.Vector2{X: -5}

	w.Update([]*engine.Entity{box, ball})

	assertVec(t, rl.Vector2{X: 5}, ball.Kinematics.Velocity)
	assert.InDelta(t, 2.1, ball.Transform.Position.X, tol)
	assert.Equal(t, rl.Vector2{}, box.Transform.Position)
}

func TestUpdateStats(t *testing.T) {
	w := NewCollisionWorld(defaultParams(), nil)
	a := body("a", geom.NewCircle(1), 0, 0)
	b := body("b", geom.NewCircle(1), 1.5, 0)
	c := body("c", geom.NewCircle(1), 100, 0)
	// Bounds touch diagonally but the circles do not.
	d := body("d", geom.NewCircle(1), -1.9, 1.9)

	w.Update([]*engine.Entity{a, b, c, d})

	st := w.Stats()
	assert.Equal(t, 4, st.Entities)
	assert.Equal(t, 6, st.Pairs)
	assert.Equal(t, 1, st.Hits)
	assert.Equal(t, 2, st.NarrowTested)
	assert.Equal(t, 4, st.BroadRejected)
}

func TestUpdateFollowsInsertionOrder(t *testing.T) {
	build := func() []*engine.Entity {
		return []*engine.Entity{
			body("a", geom.NewCircle(1), 0, 0),
			body("b", geom.NewCircle(1), 1, 0),
			body("c", geom.NewCircle(1), 2, 0),
		}
	}

	run := func() ([]*engine.Entity, []string) {
		entities := build()
		w := NewCollisionWorld(defaultParams(), nil)
		var order []string
		w.OnEnter.AddListener(func(c Contact) { order = append(order, pairNames(c.Pair)) })
		w.Update(entities)
		return entities, order
	}

	first, order := run()
	// a-b resolves first and pushes b into c; a-c is then out of reach.
	assert.Equal(t, []string{"a-b", "b-c"}, order)

	second, again := run()
	assert.Equal(t, order, again)
	for i := range first {
		assert.Equal(t, first[i].Transform.Position, second[i].Transform.Position)
		assert.Equal(t, first[i].Kinematics.Velocity, second[i].Kinematics.Velocity)
	}
}

func TestEnterStayExitEvents(t *testing.T) {
	w := NewCollisionWorld(defaultParams(), nil)
	sensor := wall("sensor", geom.NewBox(4, 4), 0, 0)
	rock := body("rock", geom.NewCircle(1), 1, 0)
	rock.Kinematics = nil
	entities := []*engine.Entity{sensor, rock}

	var enters, stays, exits []string
	w.OnEnter.AddListener(func(c Contact) { enters = append(enters, pairNames(c.Pair)) })
	w.OnStay.AddListener(func(c Contact) { stays = append(stays, pairNames(c.Pair)) })
	w.OnExit.AddListener(func(p Pair) { exits = append(exits, pairNames(p)) })

	w.Update(entities)
	assert.Equal(t, []string{"sensor-rock"}, enters)
	assert.Empty(t, stays)
	assert.True(t, rock.IsColliding())

	w.Update(entities)
	assert.Len(t, enters, 1)
	assert.Equal(t, []string{"sensor-rock"}, stays)

	rock.Transform.Position = rl.Vector2{X: 30}
	w.Update(entities)
	assert.Equal(t, []string{"sensor-rock"}, exits)
	assert.False(t, sensor.IsColliding())

	w.Update(entities)
	assert.Len(t, exits, 1)
}

func TestEnterCarriesContact(t *testing.T) {
	w := NewCollisionWorld(defaultParams(), nil)
	a := body("a", geom.NewCircle(1), 0, 0)
	b := body("b", geom.NewCircle(1), 1.5, 0)

	var got []Contact
	w.OnEnter.AddListener(func(c Contact) { got = append(got, c) })
	w.Update([]*engine.Entity{a, b})

	require.Len(t, got, 1)
	assert.Same(t, a, got[0].A)
	assert.Same(t, b, got[0].B)
	assert.Equal(t, DynamicDynamic, got[0].Kind)
	assert.InDelta(t, 0.5, got[0].Depth, tol)
	assertVec(t, rl.Vector2{X: 1}, got[0].Normal)
}

func TestResetForgetsActivePairs(t *testing.T) {
	w := NewCollisionWorld(defaultParams(), nil)
	sensor := wall("sensor", geom.NewBox(4, 4), 0, 0)
	rock := body("rock", geom.NewCircle(1), 1, 0)
	rock.Kinematics = nil

	enters := 0
	w.OnEnter.AddListener(func(Contact) { enters++ })
	w.OnExit.AddListener(func(Pair) { t.Fatal("reset must not raise exit") })

	w.Update([]*engine.Entity{sensor, rock})
	w.Reset()
	w.Update([]*engine.Entity{sensor, rock})

	assert.Equal(t, 2, enters)
}

func TestUpdateLogsTickAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := NewCollisionWorld(defaultParams(), zap.New(core))

	w.Update([]*engine.Entity{
		body("a", geom.NewCircle(1), 0, 0),
		body("b", geom.NewCircle(1), 1.5, 0),
	})

	require.Equal(t, 1, logs.FilterMessage("Physics: collision enter").Len())
	ticks := logs.FilterMessage("Physics: tick").All()
	require.Len(t, ticks, 1)
	assert.Equal(t, int64(1), ticks[0].ContextMap()["hits"])
}

func TestContactPoint(t *testing.T) {
	a := body("a", geom.NewCircle(1), 0, 0)
	b := body("b", geom.NewCircle(1), 4, 2)

	c := Contact{Pair: Pair{A: a, B: b}}
	assert.Equal(t, rl.Vector2{X: 2, Y: 1}, c.Point())
}
