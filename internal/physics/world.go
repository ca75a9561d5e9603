package physics

import (
	"collide2d/internal/config"
	"collide2d/internal/engine"
	"collide2d/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Pair is an unordered collision pair reported in entity insertion order: A was added
// to the collection before B.
type Pair struct {
	A, B *engine.Entity
}

// Contact is a pair that collided this tick along with the narrow-phase result
// oriented from A to B, captured before resolution moved anything.
type Contact struct {
	Pair
	Normal rl.Vector2
	Depth  float32
	Kind   PairKind
}

// Point approximates where the contact happened: midway between the two positions.
func (c Contact) Point() rl.Vector2 {
	return rl.Vector2Lerp(c.A.Transform.Position, c.B.Transform.Position, 0.5)
}

type pairKey struct {
	lo, hi uint64
}

func keyOf(a, b *engine.Entity) pairKey {
	if a.UID > b.UID {
		return pairKey{lo: b.UID, hi: a.UID}
	}
	return pairKey{lo: a.UID, hi: b.UID}
}

// Stats counts the work done by the last Update.
type Stats struct {
	Entities      int
	Pairs         int // eligible pairs considered
	BroadRejected int
	NarrowTested  int
	Hits          int
}

// CollisionWorld runs broad phase, narrow phase and resolution once per tick over a
// caller-owned entity slice. Pairs are processed in slice order and each resolution
// moves bodies before later pairs are tested, so the outcome depends on that order.
//
// The only state carried between ticks is the set of pairs that were touching, used
// to raise OnEnter and OnExit. It never feeds back into the response.
type CollisionWorld struct {
	resolver *Resolver
	logger   *zap.Logger

	OnEnter engine.EventWithArg[Contact]
	OnStay  engine.EventWithArg[Contact]
	OnExit  engine.EventWithArg[Pair]

	activeCollisions  map[pairKey]Pair // touching last tick
	activeOrder       []pairKey
	currentCollisions map[pairKey]Pair
	currentOrder      []pairKey
	contacts          []Contact // this tick, in hit order

	stats Stats
}

func NewCollisionWorld(params config.Physics, logger *zap.Logger) *CollisionWorld {
	return &CollisionWorld{
		resolver:          NewResolver(params),
		logger:            logging.OrNop(logger),
		activeCollisions:  make(map[pairKey]Pair),
		currentCollisions: make(map[pairKey]Pair),
	}
}

func (w *CollisionWorld) Stats() Stats {
	return w.stats
}


// Update clears every IsColliding flag, then tests and resolves all eligible pairs.
func (w *CollisionWorld) Update(entities []*engine.Entity) {
	w.stats = Stats{Entities: len(entities)}
	clear(w.currentCollisions)
	w.currentOrder = w.currentOrder[:0]
	w.contacts = w.contacts[:0]

	for _, e := range entities {
		if e != nil && e.Collider != nil {
			e.Collider.IsColliding = false
		}
	}

	for i, a := range entities {
		if !shaped(a) {
			continue
		}
		for _, b := range entities[i+1:] {
			if !Eligible(a, b) {
				continue
			}
			w.stats.Pairs++
			w.testPair(a, b)
		}
	}

	w.dispatchCollisionEvents()

	if ce := w.logger.Check(zap.DebugLevel, "Physics: tick"); ce != nil {
		ce.Write(
			zap.Int("entities", w.stats.Entities),
			zap.Int("pairs", w.stats.Pairs),
			zap.Int("broad_rejected", w.stats.BroadRejected),
			zap.Int("narrow_tested", w.stats.NarrowTested),
			zap.Int("hits", w.stats.Hits),
		)
	}
}

func (w *CollisionWorld) testPair(a, b *engine.Entity) {
	if !BoundsOverlap(a.Collider, a.Transform, b.Collider, b.Transform) {
		w.stats.BroadRejected++
		return
	}
	w.stats.NarrowTested++

	res := dispatch(a.Collider, a.Transform, b.Collider, b.Transform)
	if !res.Intersects {
		return
	}
	w.stats.Hits++

	a.Collider.IsColliding = true
	b.Collider.IsColliding = true
	kind := w.resolver.Resolve(a, b, res)

	w.recordCollision(Contact{Pair: Pair{A: a, B: b}, Normal: res.Normal, Depth: res.Depth, Kind: kind})
}

func (w *CollisionWorld) recordCollision(c Contact) {
	key := keyOf(c.A, c.B)
	if _, seen := w.currentCollisions[key]; seen {
		return
	}
	w.currentCollisions[key] = c.Pair
	w.currentOrder = append(w.currentOrder, key)
	w.contacts = append(w.contacts, c)
}

// dispatchCollisionEvents diffs this tick's contacts against the last tick's. Enter and
// stay fire in hit order, exit in the order the pairs first started touching. Listeners
// run after every pair has been resolved.
func (w *CollisionWorld) dispatchCollisionEvents() {
	for _, c := range w.contacts {
		if _, was := w.activeCollisions[keyOf(c.A, c.B)]; was {
			w.OnStay.Invoke(c)
			continue
		}
		w.logger.Debug("Physics: collision enter",
			zap.String("a", c.A.Name),
			zap.String("b", c.B.Name),
			zap.Stringer("kind", c.Kind),
			zap.Float32("depth", c.Depth),
		)
		w.OnEnter.Invoke(c)
	}

	for _, key := range w.activeOrder {
		if _, still := w.currentCollisions[key]; still {
			continue
		}
		pair := w.activeCollisions[key]
		w.logger.Debug("Physics: collision exit", zap.String("a", pair.A.Name), zap.String("b", pair.B.Name))
		w.OnExit.Invoke(pair)
	}

	// Pairs still touching keep their original position in the order.
	next := make([]pairKey, 0, len(w.currentOrder))
	for _, key := range w.activeOrder {
		if _, still := w.currentCollisions[key]; still {
			next = append(next, key)
		}
	}
	for _, key := range w.currentOrder {
		if _, was := w.activeCollisions[key]; !was {
			next = append(next, key)
		}
	}

	w.activeCollisions, w.currentCollisions = w.currentCollisions, w.activeCollisions
	w.activeOrder = next
}

// Reset forgets which pairs were touching without raising OnExit.
func (w *CollisionWorld) Reset() {
	clear(w.activeCollisions)
	w.activeOrder = nil
}
