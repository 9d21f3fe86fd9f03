package world

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// CastInput is an ability activation requested by a connection
type CastInput struct {
	OwnerID   string
	AbilityID string
	Point     arena.Vec3
}

// Cast resolves an ability for the entity controlled by OwnerID
func (w *World) Cast(_ context.Context, input *CastInput) (*combat.CastOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner id is required")
	}

	output, err := w.castLocked(input)
	w.deliverDeaths()
	return output, err
}

func (w *World) castLocked(input *CastInput) (*combat.CastOutput, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	caster, err := w.ownedLocked(input.OwnerID)
	if err != nil {
		return nil, err
	}

	output, err := w.resolver.Cast(&combat.CastInput{
		Caster:    caster,
		AbilityID: input.AbilityID,
		Point:     input.Point,
	})
	w.reapLocked()
	return output, err
}

// Move orders the entity controlled by ownerID to walk toward point
func (w *World) Move(_ context.Context, ownerID string, point arena.Vec3) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, err := w.ownedLocked(ownerID)
	if err != nil {
		return err
	}
	if !e.SetDestination(point) {
		return errors.FailedPrecondition("entity cannot move")
	}
	return nil
}

// ApplyDamageInput targets an entity directly, outside of any ability
type ApplyDamageInput struct {
	EntityID string
	Amount   float64
	SourceID string
}

// ApplyDamage runs a direct hit through the pipeline. Unknown entities are a no-op.
func (w *World) ApplyDamage(_ context.Context, input *ApplyDamageInput) float64 {
	if input == nil {
		return 0
	}

	applied := func() float64 {
		w.mu.Lock()
		defer w.mu.Unlock()

		e, ok := w.entities[input.EntityID]
		if !ok {
			return 0
		}
		applied := w.pipeline.ApplyDamage(&combat.DamageInput{
			Target:   e,
			Amount:   input.Amount,
			SourceID: input.SourceID,
		})
		w.reapLocked()
		return applied
	}()

	w.deliverDeaths()
	return applied
}

func (w *World) ownedLocked(ownerID string) (*combat.Entity, error) {
	id, ok := w.byOwner[ownerID]
	if !ok {
		return nil, errors.NotFoundf("no entity for connection %s", ownerID)
	}
	e, ok := w.entities[id]
	if !ok {
		return nil, errors.NotFoundf("entity %s not found", id)
	}
	return e, nil
}
