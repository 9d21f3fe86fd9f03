package world

import (
	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// QueryEntitiesInRadius returns live entities within radius of center that pass filter
func (w *World) QueryEntitiesInRadius(center arena.Vec3, radius float64, filter combat.Filter) []*combat.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.queryLocked(center, radius, filter)
}

func (w *World) queryLocked(center arena.Vec3, radius float64, filter combat.Filter) []*combat.Entity {
	if radius < 0 {
		return nil
	}

	var out []*combat.Entity
	for _, e := range w.sortedLocked() {
		if !e.IsAlive() || e.Position().Distance(center) > radius {
			continue
		}
		if filter != nil && !filter(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// registryQuery serves the resolver while the caller already holds w.mu
type registryQuery struct {
	w *World
}

func (q registryQuery) QueryEntitiesInRadius(center arena.Vec3, radius float64, filter combat.Filter) []*combat.Entity {
	return q.w.queryLocked(center, radius, filter)
}
