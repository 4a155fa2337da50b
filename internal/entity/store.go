package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/vovakirdan/breakout-sim/internal/core"
)

// ErrMissingSingleton is returned when a kind that must exist exactly once does not.
var ErrMissingSingleton = errors.New("missing singleton")

// Store owns all entities and their components.
// It is not safe for concurrent use; one simulation owns one store.
type Store struct {
	world *ecs.World

	baseMapper *ecs.Map2[Body, Transform]
	bodyFilter *ecs.Filter1[Body]
	doomFilter *ecs.Filter1[Doomed]

	bodyMap       *ecs.Map[Body]
	transformMap  *ecs.Map[Transform]
	motionMap     *ecs.Map[Motion]
	speedMap      *ecs.Map[Speed]
	healthMap     *ecs.Map[Health]
	controllerMap *ecs.Map[Controller]
	bouncedMap    *ecs.Map[Bounced]
	doomedMap     *ecs.Map[Doomed]
}

// New creates an empty store.
func New() *Store {
	world := ecs.NewWorld()
	return &Store{
		world:         world,
		baseMapper:    ecs.NewMap2[Body, Transform](world),
		bodyFilter:    ecs.NewFilter1[Body](world),
		doomFilter:    ecs.NewFilter1[Doomed](world),
		bodyMap:       ecs.NewMap[Body](world),
		transformMap:  ecs.NewMap[Transform](world),
		motionMap:     ecs.NewMap[Motion](world),
		speedMap:      ecs.NewMap[Speed](world),
		healthMap:     ecs.NewMap[Health](world),
		controllerMap: ecs.NewMap[Controller](world),
		bouncedMap:    ecs.NewMap[Bounced](world),
		doomedMap:     ecs.NewMap[Doomed](world),
	}
}

// Create allocates a new entity of the given kind with the given components.
func (s *Store) Create(kind Kind, c Components) ID {
	body := Body{Kind: kind, Shape: c.Shape, Color: c.Color}
	tr := Transform{Pos: c.Pos}
	e := s.baseMapper.NewEntity(&body, &tr)

	if c.Motion != nil {
		m := *c.Motion
		s.motionMap.Add(e, &m)
	}
	if c.Speed != nil {
		sp := *c.Speed
		s.speedMap.Add(e, &sp)
	}
	if c.Health != nil {
		h := *c.Health
		s.healthMap.Add(e, &h)
	}
	if c.Controller {
		s.controllerMap.Add(e, &Controller{})
	}
	if c.Bounced {
		s.bouncedMap.Add(e, &Bounced{})
	}
	return e
}

// Alive reports whether id refers to a live entity.
func (s *Store) Alive(id ID) bool {
	return s.world.Alive(id)
}

// Destroy removes the entity with all its components.
// It returns false if id was already stale.
func (s *Store) Destroy(id ID) bool {
	if !s.world.Alive(id) {
		return false
	}
	s.world.RemoveEntity(id)
	return true
}

// Body returns the body of id.
func (s *Store) Body(id ID) (Body, bool) {
	if !s.world.Alive(id) || !s.bodyMap.Has(id) {
		return Body{}, false
	}
	return *s.bodyMap.Get(id), true
}

// KindOf returns the kind of id.
func (s *Store) KindOf(id ID) (Kind, bool) {
	b, ok := s.Body(id)
	return b.Kind, ok
}

// Position returns the world position of id.
func (s *Store) Position(id ID) (core.Vec2, bool) {
	if !s.world.Alive(id) || !s.transformMap.Has(id) {
		return core.Vec2{}, false
	}
	return s.transformMap.Get(id).Pos, true
}

// SetPosition overwrites the position of id.
func (s *Store) SetPosition(id ID, pos core.Vec2) bool {
	if !s.world.Alive(id) || !s.transformMap.Has(id) {
		return false
	}
	s.transformMap.Get(id).Pos = pos
	return true
}

// Velocity returns the velocity of id.
func (s *Store) Velocity(id ID) (core.Vec2, bool) {
	if !s.world.Alive(id) || !s.motionMap.Has(id) {
		return core.Vec2{}, false
	}
	return s.motionMap.Get(id).Vel, true
}

// SetVelocity overwrites the velocity of id.
func (s *Store) SetVelocity(id ID, vel core.Vec2) bool {
	if !s.world.Alive(id) || !s.motionMap.Has(id) {
		return false
	}
	s.motionMap.Get(id).Vel = vel
	return true
}

// Speed returns the nominal speed of id.
func (s *Store) Speed(id ID) (float64, bool) {
	if !s.world.Alive(id) || !s.speedMap.Has(id) {
		return 0, false
	}
	return s.speedMap.Get(id).Value, true
}

// Health returns a mutable pointer to the health of id, or nil.
// The pointer is invalidated by any structural change to the store.
func (s *Store) Health(id ID) *Health {
	if !s.world.Alive(id) || !s.healthMap.Has(id) {
		return nil
	}
	return s.healthMap.Get(id)
}

// HasController reports whether id is tagged as the controlled paddle.
func (s *Store) HasController(id ID) bool {
	return s.world.Alive(id) && s.controllerMap.Has(id)
}

// IsBounced reports whether id is tagged as the ball.
func (s *Store) IsBounced(id ID) bool {
	return s.world.Alive(id) && s.bouncedMap.Has(id)
}

// MarkDoomed tags id for destruction. It returns false if id is stale or
// already marked.
func (s *Store) MarkDoomed(id ID) bool {
	if !s.world.Alive(id) || s.doomedMap.Has(id) {
		return false
	}
	s.doomedMap.Add(id, &Doomed{})
	return true
}

// Unmark removes the destruction tag from id.
func (s *Store) Unmark(id ID) bool {
	if !s.world.Alive(id) || !s.doomedMap.Has(id) {
		return false
	}
	s.doomedMap.Remove(id)
	return true
}

// IsDoomed reports whether id carries the destruction tag.
func (s *Store) IsDoomed(id ID) bool {
	return s.world.Alive(id) && s.doomedMap.Has(id)
}

// Doomed returns all ids carrying the destruction tag, ordered by id.
func (s *Store) Doomed() []ID {
	var ids []ID
	query := s.doomFilter.Query()
	for query.Next() {
		ids = append(ids, query.Entity())
	}
	sortIDs(ids)
	return ids
}

// IDs returns all live entities of a kind, ordered by id.
func (s *Store) IDs(kind Kind) []ID {
	var ids []ID
	query := s.bodyFilter.Query()
	for query.Next() {
		if query.Get().Kind == kind {
			ids = append(ids, query.Entity())
		}
	}
	sortIDs(ids)
	return ids
}

// All returns every live entity, ordered by id.
func (s *Store) All() []ID {
	var ids []ID
	query := s.bodyFilter.Query()
	for query.Next() {
		ids = append(ids, query.Entity())
	}
	sortIDs(ids)
	return ids
}

// Bricks returns all live bricks.
func (s *Store) Bricks() []ID {
	return s.IDs(KindBrick)
}

// Count returns the number of live entities of a kind.
func (s *Store) Count(kind Kind) int {
	n := 0
	query := s.bodyFilter.Query()
	for query.Next() {
		if query.Get().Kind == kind {
			n++
		}
	}
	return n
}

// Single returns the one live entity of a kind.
// It fails with ErrMissingSingleton when there is none or more than one.
func (s *Store) Single(kind Kind) (ID, error) {
	ids := s.IDs(kind)
	if len(ids) != 1 {
		return ID{}, fmt.Errorf("%w: expected one %s, found %d", ErrMissingSingleton, kind, len(ids))
	}
	return ids[0], nil
}

func sortIDs(ids []ID) {
	slices.SortFunc(ids, func(a, b ID) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		default:
			return 0
		}
	})
}
