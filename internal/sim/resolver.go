package sim

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout-sim/internal/entity"
	"github.com/vovakirdan/breakout-sim/internal/physics"
)

// Resolution is the outcome of resolving one tick's contact events.
type Resolution struct {
	Damaged []entity.ID // one entry per hit point removed
	Marked  []entity.ID // bricks newly marked for destruction
}

// Resolver applies brick damage from contact events.
// Damage lands when a contact ends, so a ball resting on a brick hits it once.
type Resolver struct {
	store  *entity.Store
	logger *log.Logger
}

// NewResolver creates a resolver over store.
func NewResolver(store *entity.Store, logger *log.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve processes a full tick of events. Begin events are ignored.
// Every live brick named by an End event loses one hit point, floored at zero;
// after all events, bricks at zero are marked for destruction.
func (r *Resolver) Resolve(events []physics.ContactEvent) Resolution {
	var res Resolution
	var touched []entity.ID
	seen := make(map[entity.ID]bool)

	for _, ev := range events {
		if ev.Phase != physics.End {
			continue
		}
		for _, id := range [2]entity.ID{ev.A, ev.B} {
			if kind, ok := r.store.KindOf(id); !ok || kind != entity.KindBrick {
				continue
			}
			h := r.store.Health(id)
			if h == nil {
				continue
			}
			if !seen[id] {
				seen[id] = true
				touched = append(touched, id)
			}
			if h.HP > 0 {
				h.HP--
				res.Damaged = append(res.Damaged, id)
			}
		}
	}

	for _, id := range touched {
		h := r.store.Health(id)
		if h == nil || h.HP > 0 {
			continue
		}
		if r.store.MarkDoomed(id) {
			res.Marked = append(res.Marked, id)
			r.logger.Debug("brick doomed", "id", id.ID())
		}
	}
	return res
}
