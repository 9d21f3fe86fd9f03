package main

import (
	"sync/atomic"

	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/handlers/ws"
)

// relay forwards engine and session notifications to the hub. The world and
// the session orchestrator are built before the hub exists, so the hub is
// attached afterwards; anything sent before that is dropped.
type relay struct {
	hub atomic.Pointer[ws.Hub]
}

func (r *relay) attach(hub *ws.Hub) {
	r.hub.Store(hub)
}

func (r *relay) NotifyStatusChanged(indicator status.Indicator) {
	if h := r.hub.Load(); h != nil {
		h.NotifyStatusChanged(indicator)
	}
}

func (r *relay) NotifyStatusRemoved(entityID string, kind status.Kind) {
	if h := r.hub.Load(); h != nil {
		h.NotifyStatusRemoved(entityID, kind)
	}
}

func (r *relay) DamageDealt(event arena.DamageEvent) {
	if h := r.hub.Load(); h != nil {
		h.DamageDealt(event)
	}
}

func (r *relay) EntityDied(event arena.DeathEvent) {
	if h := r.hub.Load(); h != nil {
		h.EntityDied(event)
	}
}

func (r *relay) Healed(entityID string, amount, health float64) {
	if h := r.hub.Load(); h != nil {
		h.Healed(entityID, amount, health)
	}
}

func (r *relay) SessionChanged(s *arena.Session) {
	if h := r.hub.Load(); h != nil {
		h.SessionChanged(s)
	}
}
