// Package combat holds live arena entities, the damage pipeline every hit
// goes through, and the ability resolver that turns casts into hits.
package combat

//go:generate mockgen -destination=mock/mock_combat.go -package=combatmock github.com/KirkDiggler/rpg-arena/internal/engine/combat Notifier

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// Notifier receives combat events for floating numbers and death handling
type Notifier interface {
	DamageDealt(event arena.DamageEvent)
	EntityDied(event arena.DeathEvent)
	Healed(entityID string, amount, health float64)
}

// DamageInput is one proposed hit
type DamageInput struct {
	Target *Entity
	Amount float64

	// Source is the attacking entity when it is still around. SourceID is
	// used for attribution when Source is nil, e.g. burn ticks.
	Source    *Entity
	SourceID  string
	Lifesteal float64
}

func (in *DamageInput) sourceID() string {
	if in.Source != nil {
		return in.Source.GetID()
	}
	return in.SourceID
}

// PipelineConfig holds the dependencies for a pipeline
type PipelineConfig struct {
	Notifier Notifier
}

// Pipeline is the single chokepoint converting raw damage into health changes
type Pipeline struct {
	notifier Notifier
}

// NewPipeline creates a pipeline. A nil notifier discards events.
func NewPipeline(cfg *PipelineConfig) *Pipeline {
	p := &Pipeline{notifier: nopNotifier{}}
	if cfg != nil && cfg.Notifier != nil {
		p.notifier = cfg.Notifier
	}
	return p
}

// ApplyDamage runs a hit through modifiers, shield, health, death and lifesteal.
// It returns the health actually removed. Malformed input returns 0.
func (p *Pipeline) ApplyDamage(in *DamageInput) float64 {
	if in == nil || in.Target == nil {
		return 0
	}
	target := in.Target
	if !target.IsAlive() || !(in.Amount > 0) || math.IsInf(in.Amount, 0) {
		return 0
	}

	afterModifiers := in.Amount * target.IncomingDamageMultiplier()
	absorbed := target.ledger.AbsorbDamage(afterModifiers)
	passthrough := afterModifiers - absorbed

	before := target.health
	target.health = math.Max(0, target.health-passthrough)
	applied := before - target.health
	killed := target.health <= 0

	sourceID := in.sourceID()
	p.notifier.DamageDealt(arena.DamageEvent{
		TargetID:    target.GetID(),
		SourceID:    sourceID,
		Raw:         in.Amount,
		Absorbed:    absorbed,
		Applied:     applied,
		HealthAfter: target.health,
		Killed:      killed,
	})

	if killed {
		target.kill()
		slog.Info("entity died",
			"entity_id", target.GetID(),
			"owner_id", target.OwnerID(),
			"killer_id", sourceID,
		)
		p.notifier.EntityDied(arena.DeathEvent{
			EntityID: target.GetID(),
			OwnerID:  target.OwnerID(),
			KillerID: sourceID,
		})
		target.ledger.Clear()
	}

	if in.Source != nil && in.Lifesteal > 0 && passthrough > 0 {
		p.Heal(in.Source, passthrough*math.Min(in.Lifesteal, 1))
	}

	return applied
}

// Heal restores health up to the maximum. Dead targets are ignored.
// It returns the health actually restored.
func (p *Pipeline) Heal(target *Entity, amount float64) float64 {
	if target == nil || !target.IsAlive() || !(amount > 0) || math.IsInf(amount, 0) {
		return 0
	}

	before := target.health
	target.health = math.Min(target.health+amount, target.maxHealth)
	gained := target.health - before
	if gained > 0 {
		p.notifier.Healed(target.GetID(), gained, target.health)
	}
	return gained
}

type nopNotifier struct{}

func (nopNotifier) DamageDealt(arena.DamageEvent)   {}
func (nopNotifier) EntityDied(arena.DeathEvent)     {}
func (nopNotifier) Healed(string, float64, float64) {}
