package combat

import (
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Filter selects entities from a spatial query. Nil accepts everything.
type Filter func(*Entity) bool

// SpatialQuery finds live entities around a point
type SpatialQuery interface {
	QueryEntitiesInRadius(center arena.Vec3, radius float64, filter Filter) []*Entity
}

// ResolverConfig holds the dependencies for a resolver
type ResolverConfig struct {
	Pipeline  *Pipeline
	Query     SpatialQuery
	Abilities []arena.Ability
}

// Validate ensures all required dependencies are provided
func (c *ResolverConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Pipeline == nil {
		vb.RequiredField("Pipeline")
	}
	if c.Query == nil {
		vb.RequiredField("Query")
	}
	seen := make(map[string]bool, len(c.Abilities))
	for _, a := range c.Abilities {
		if a.ID == "" {
			vb.RequiredField("Abilities.ID")
			continue
		}
		if seen[a.ID] {
			vb.InvalidField("Abilities", "duplicate ability id "+a.ID)
		}
		seen[a.ID] = true
	}

	return vb.Build()
}

// Resolver turns an ability cast into ordered damage and status applications
type Resolver struct {
	pipeline  *Pipeline
	query     SpatialQuery
	abilities map[string]arena.Ability
}

// NewResolver creates a resolver for the configured ability book
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	abilities := make(map[string]arena.Ability, len(cfg.Abilities))
	for _, a := range cfg.Abilities {
		abilities[a.ID] = a
	}

	return &Resolver{
		pipeline:  cfg.Pipeline,
		query:     cfg.Query,
		abilities: abilities,
	}, nil
}

// Ability looks up an ability definition
func (r *Resolver) Ability(id string) (arena.Ability, bool) {
	a, ok := r.abilities[id]
	return a, ok
}

// CastInput is one ability activation
type CastInput struct {
	Caster    *Entity
	AbilityID string
	Point     arena.Vec3
}

// Hit is the outcome for one target
type Hit struct {
	EntityID string  `json:"entity_id"`
	Applied  float64 `json:"applied"`
	Killed   bool    `json:"killed"`
}

// CastOutput reports what a cast did
type CastOutput struct {
	AbilityID string   `json:"ability_id"`
	Hits      []Hit    `json:"hits"`
	Stunned   []string `json:"stunned,omitempty"`
}

// Cast resolves an ability. Targets are hit in order of distance from the
// impact point; each target takes damage before its statuses are applied.
func (r *Resolver) Cast(in *CastInput) (*CastOutput, error) {
	if in == nil || in.Caster == nil {
		return nil, errors.InvalidArgument("caster is required")
	}
	ability, ok := r.abilities[in.AbilityID]
	if !ok {
		return nil, errors.NotFoundf("ability %s not found", in.AbilityID)
	}

	caster := in.Caster
	if !caster.Knows(ability.ID) {
		return nil, errors.FailedPreconditionf("character %s cannot cast %s", caster.CharacterID(), ability.ID)
	}
	if !caster.IsAlive() {
		return nil, errors.FailedPrecondition("caster is dead")
	}
	if caster.StatusLedger().IsStunned() {
		return nil, errors.FailedPrecondition("caster is stunned")
	}
	if left := caster.Cooldown(ability.ID); left > 0 {
		return nil, errors.FailedPreconditionf("ability %s on cooldown for %s", ability.ID, left)
	}

	point := in.Point
	if ability.Range > 0 {
		point = caster.Position().MoveTowards(point, ability.Range)
	}

	caster.startCooldown(ability.ID, ability.Cooldown)
	output := &CastOutput{AbilityID: ability.ID}

	if ability.SelfShield > 0 {
		duration := ability.SelfShieldDuration
		if duration <= 0 {
			duration = status.Infinite
		}
		caster.StatusLedger().Apply(status.ApplyInput{
			Kind:      status.KindShield,
			Magnitude: ability.SelfShield,
			Duration:  duration,
			SourceID:  caster.GetID(),
		})
	}

	if ability.Radius > 0 {
		targets := r.query.QueryEntitiesInRadius(point, ability.Radius, func(e *Entity) bool {
			return e.IsAlive() && caster.HostileTo(e)
		})
		sort.SliceStable(targets, func(i, j int) bool {
			di := targets[i].Position().Distance(point)
			dj := targets[j].Position().Distance(point)
			if di != dj {
				return di < dj
			}
			return targets[i].GetID() < targets[j].GetID()
		})

		for _, target := range targets {
			output.Hits = append(output.Hits, r.hit(caster, target, ability, point))
		}
	}

	if ability.DetonateStun > 0 && caster.Marks() != nil {
		output.Stunned = caster.Marks().Detonate(ability.DetonateStun, caster.GetID())
	}

	slog.Debug("ability cast",
		"entity_id", caster.GetID(),
		"ability_id", ability.ID,
		"hits", len(output.Hits),
		"stunned", len(output.Stunned),
	)

	return output, nil
}

func (r *Resolver) hit(caster, target *Entity, ability arena.Ability, point arena.Vec3) Hit {
	hit := Hit{EntityID: target.GetID()}

	if ability.Damage > 0 {
		hit.Applied = r.pipeline.ApplyDamage(&DamageInput{
			Target:    target,
			Amount:    ability.Damage,
			Source:    caster,
			Lifesteal: ability.Lifesteal,
		})
	}
	if !target.IsAlive() {
		hit.Killed = true
		return hit
	}

	for _, effect := range ability.Effects {
		applyEffect(caster, target, effect, point)
	}
	if ability.Mark && caster.Marks() != nil {
		caster.Marks().Mark(target, caster.GetID())
	}

	return hit
}

func applyEffect(caster, target *Entity, effect arena.AbilityEffect, point arena.Vec3) {
	ledger := target.StatusLedger()

	switch effect.Kind {
	case arena.EffectKnockback:
		direction := target.Position().Sub(point).Flat()
		if direction.Length() == 0 {
			direction = target.Position().Sub(caster.Position()).Flat()
		}
		ledger.ApplyKnockback(status.KnockbackInput{
			Direction:    direction,
			Distance:     effect.Distance,
			Speed:        effect.Speed,
			StunDuration: effect.Duration,
			SourceID:     caster.GetID(),
			Icon:         effect.Icon,
		})
	default:
		ledger.Apply(status.ApplyInput{
			Kind:      status.Kind(effect.Kind),
			Magnitude: effect.Magnitude,
			Duration:  effect.Duration,
			SourceID:  caster.GetID(),
			Icon:      effect.Icon,
			Target:    point,
		})
	}
}
