package sim

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout-sim/internal/entity"
)

// Lifecycle removes marked entities from both the store and the physics world.
type Lifecycle struct {
	store  *entity.Store
	phys   Physics
	logger *log.Logger
}

// NewLifecycle creates a lifecycle manager.
func NewLifecycle(store *entity.Store, phys Physics, logger *log.Logger) *Lifecycle {
	return &Lifecycle{store: store, phys: phys, logger: logger}
}

// Sweep destroys every entity marked for destruction and returns the destroyed ids.
// Only bricks are destroyable; any other marked entity is unmarked and reported.
func (l *Lifecycle) Sweep() []entity.ID {
	doomed := l.store.Doomed()
	if len(doomed) == 0 {
		return nil
	}

	destroyed := make([]entity.ID, 0, len(doomed))
	for _, id := range doomed {
		kind, _ := l.store.KindOf(id)
		if kind != entity.KindBrick {
			l.logger.Error("refusing to destroy non-brick", "id", id.ID(), "kind", kind)
			l.store.Unmark(id)
			continue
		}
		if l.Destroy(id) {
			destroyed = append(destroyed, id)
		}
	}
	return destroyed
}

// Destroy removes id from physics and the store. It is a no-op for stale ids.
func (l *Lifecycle) Destroy(id entity.ID) bool {
	if !l.store.Alive(id) {
		return false
	}
	l.phys.Deregister(id)
	l.store.Destroy(id)
	l.logger.Debug("entity destroyed", "id", id.ID())
	return true
}
