// Package status implements the per-entity status effect ledger.
//
// A Ledger owns every timed effect attached to one entity and enforces the
// merge rules for re-application (stacking burns, strongest slow, overwriting
// stun, accumulating shield). Time only moves when the host calls Tick, so the
// ledger is deterministic for a given sequence of Apply and Tick calls.
package status

//go:generate mockgen -destination=mock/mock_status.go -package=statusmock github.com/KirkDiggler/rpg-arena/internal/engine/status Notifier,Movable

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// Kind identifies a status effect. At most one effect per kind is active on a ledger.
type Kind string

const (
	KindBurn            Kind = "burn"
	KindSlow            Kind = "slow"
	KindStun            Kind = "stun"
	KindKnockup         Kind = "knockup"
	KindAttract         Kind = "attract"
	KindShield          Kind = "shield"
	KindDamageReduction Kind = "damage_reduction"
	KindMarkForStun     Kind = "mark_for_stun"
)

// tickOrder fixes the order effects are advanced within one Tick
var tickOrder = []Kind{
	KindBurn,
	KindShield,
	KindAttract,
	KindSlow,
	KindStun,
	KindKnockup,
	KindDamageReduction,
	KindMarkForStun,
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	for _, known := range tickOrder {
		if k == known {
			return true
		}
	}
	return false
}

// Infinite is the duration of an effect that only ends on explicit removal
const Infinite time.Duration = -1

// StunPolicy decides how a new stun merges with one already running
type StunPolicy string

const (
	// StunPolicyOverwrite always sets the stun end to now + duration, so a
	// shorter stun can cut a longer one short.
	StunPolicyOverwrite StunPolicy = "overwrite"
	// StunPolicyLongest keeps whichever end time is later.
	StunPolicyLongest StunPolicy = "longest"
)

// Effect is one active entry in a ledger
type Effect struct {
	Kind     Kind
	SourceID string
	Icon     string

	// Magnitude depends on kind: slow fraction, burn base DPS, shield amount,
	// incoming damage multiplier, or pull speed.
	Magnitude float64
	Stacks    int

	// Duration is the duration of the most recent application.
	Duration  time.Duration
	Remaining time.Duration

	// Target is the pull destination for attract.
	Target arena.Vec3

	tickElapsed time.Duration
	decayRate   float64
}

// IsInfinite reports whether the effect never expires on its own
func (e *Effect) IsInfinite() bool {
	return e.Duration == Infinite
}

// Indicator is what the UI collaborator needs to draw or refresh an icon
type Indicator struct {
	EntityID  string        `json:"entity_id"`
	Kind      Kind          `json:"kind"`
	Icon      string        `json:"icon,omitempty"`
	Remaining time.Duration `json:"remaining"`
	Stacks    int           `json:"stacks,omitempty"`
	Magnitude float64       `json:"magnitude,omitempty"`
}

// Owner is the entity a ledger belongs to
type Owner interface {
	core.Entity
	IsAlive() bool
}

// Movable is the movement capability effects act on.
// Implementations own position and speed; the ledger only issues commands.
type Movable interface {
	SetSpeedMultiplier(multiplier float64)
	SetImmobilized(immobilized bool)
	MoveTowards(target arena.Vec3, maxStep float64)
	ApplyKnockback(direction arena.Vec3, distance, speed float64)
}

// Notifier receives indicator updates for display
type Notifier interface {
	NotifyStatusChanged(indicator Indicator)
	NotifyStatusRemoved(entityID string, kind Kind)
}

// DamageFunc routes periodic damage back through the damage pipeline
type DamageFunc func(amount float64, sourceID string)

// ApplyInput describes one application of an effect
type ApplyInput struct {
	Kind      Kind
	Magnitude float64
	Duration  time.Duration
	SourceID  string
	Icon      string
	Target    arena.Vec3
}

// KnockbackInput describes a knockback or knockup impulse
type KnockbackInput struct {
	Direction    arena.Vec3
	Distance     float64
	Speed        float64
	StunDuration time.Duration
	SourceID     string
	Icon         string
}

type nopNotifier struct{}

func (nopNotifier) NotifyStatusChanged(Indicator) {}
func (nopNotifier) NotifyStatusRemoved(string, Kind) {}
