package world

import (
	"sync"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// deathQueue forwards combat events to the outer notifier and holds deaths
// until the world lock is released. Safe for the parallel tick.
type deathQueue struct {
	next combat.Notifier

	mu      sync.Mutex
	pending []arena.DeathEvent
}

func newDeathQueue(next combat.Notifier) *deathQueue {
	return &deathQueue{next: next}
}

func (q *deathQueue) DamageDealt(event arena.DamageEvent) {
	if q.next != nil {
		q.next.DamageDealt(event)
	}
}

func (q *deathQueue) Healed(entityID string, amount, health float64) {
	if q.next != nil {
		q.next.Healed(entityID, amount, health)
	}
}

func (q *deathQueue) EntityDied(event arena.DeathEvent) {
	if q.next != nil {
		q.next.EntityDied(event)
	}
	q.mu.Lock()
	q.pending = append(q.pending, event)
	q.mu.Unlock()
}

func (q *deathQueue) drain() []arena.DeathEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// reapLocked removes dead entities and schedules dummy posts to come back
func (w *World) reapLocked() {
	for _, e := range w.sortedLocked() {
		if e.IsAlive() {
			continue
		}
		if post, ok := w.dummies[e.GetID()]; ok {
			post.downFor = 0
			w.downed = append(w.downed, post)
		}
		w.removeLocked(e)
	}
}

// deliverDeaths hands queued deaths to the listener. Must be called without w.mu.
func (w *World) deliverDeaths() {
	events := w.deaths.drain()
	if len(events) == 0 {
		return
	}

	w.listenerMu.RLock()
	listener := w.listener
	w.listenerMu.RUnlock()
	if listener == nil {
		return
	}

	for _, event := range events {
		listener(event)
	}
}
