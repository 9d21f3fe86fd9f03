package arena

import "time"

// EffectKind names the status an ability applies. It mirrors the ledger kinds
// plus knockback, which is an impulse rather than a ledger entry.
type EffectKind string

const (
	EffectBurn            EffectKind = "burn"
	EffectSlow            EffectKind = "slow"
	EffectStun            EffectKind = "stun"
	EffectKnockback       EffectKind = "knockback"
	EffectAttract         EffectKind = "attract"
	EffectShield          EffectKind = "shield"
	EffectDamageReduction EffectKind = "damage_reduction"
)

// AbilityEffect is one status applied to every target an ability hits
type AbilityEffect struct {
	Kind      EffectKind    `json:"kind" yaml:"kind"`
	Magnitude float64       `json:"magnitude,omitempty" yaml:"magnitude,omitempty"`
	Duration  time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
	Icon      string        `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Distance and Speed describe a knockback impulse
	Distance float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
	Speed    float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
}

// Ability is a castable area ability. Targets are every hostile entity within
// Radius of the cast point, which is clamped to Range from the caster.
type Ability struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Range    float64       `json:"range" yaml:"range"`
	Radius   float64       `json:"radius" yaml:"radius"`
	Cooldown time.Duration `json:"cooldown,omitempty" yaml:"cooldown,omitempty"`

	Damage    float64 `json:"damage,omitempty" yaml:"damage,omitempty"`
	Lifesteal float64 `json:"lifesteal,omitempty" yaml:"lifesteal,omitempty"`

	Effects []AbilityEffect `json:"effects,omitempty" yaml:"effects,omitempty"`

	// SelfShield is granted to the caster on cast
	SelfShield         float64       `json:"self_shield,omitempty" yaml:"self_shield,omitempty"`
	SelfShieldDuration time.Duration `json:"self_shield_duration,omitempty" yaml:"self_shield_duration,omitempty"`

	// Mark records every target hit for a later detonation
	Mark bool `json:"mark,omitempty" yaml:"mark,omitempty"`
	// DetonateStun stuns every entity the caster marked within the window
	DetonateStun time.Duration `json:"detonate_stun,omitempty" yaml:"detonate_stun,omitempty"`
}
