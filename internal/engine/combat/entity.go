package combat

import (
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Entity types reported through core.Entity
const (
	EntityTypePlayer = "arena_player"
	EntityTypeDummy  = "arena_dummy"
)

// EntityConfig holds what is needed to build a live combatant
type EntityConfig struct {
	ID        string
	OwnerID   string
	Character arena.Character
	Position  arena.Vec3
	Rotation  float64

	Pipeline       *Pipeline
	StatusNotifier status.Notifier

	BurnMaxStacks int
	StunPolicy    status.StunPolicy
	MarkWindow    time.Duration
	Icons         map[status.Kind]string
}

// Validate ensures all required fields are provided
func (c *EntityConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ID == "" {
		vb.RequiredField("ID")
	}
	if c.Pipeline == nil {
		vb.RequiredField("Pipeline")
	}
	if c.Character.MaxHealth <= 0 {
		vb.InvalidField("Character.MaxHealth", "must be positive")
	}
	if c.Character.MoveSpeed < 0 {
		vb.InvalidField("Character.MoveSpeed", "must not be negative")
	}
	if c.MarkWindow < 0 {
		vb.InvalidField("MarkWindow", "must not be negative")
	}

	return vb.Build()
}

// Entity is a damageable actor in the arena.
// It is mutated only by the arena's tick and cast paths, one goroutine at a time.
type Entity struct {
	id          string
	ownerID     string
	characterID string
	faction     arena.Faction
	abilities   map[string]bool

	health    float64
	maxHealth float64
	alive     bool

	baseSpeed       float64
	speedMultiplier float64
	immobilized     bool
	position        arena.Vec3
	rotation        float64
	destination     *arena.Vec3

	knockbackDir       arena.Vec3
	knockbackSpeed     float64
	knockbackRemaining float64

	ledger    *status.Ledger
	marks     *status.MarkTracker
	modifiers []namedModifier
	cooldowns map[string]time.Duration
}

// NewEntity creates a live entity at full health
func NewEntity(cfg *EntityConfig) (*Entity, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid entity config")
	}

	faction := cfg.Character.Faction
	if !faction.Valid() {
		faction = arena.FactionPlayer
	}

	e := &Entity{
		id:              cfg.ID,
		ownerID:         cfg.OwnerID,
		characterID:     cfg.Character.ID,
		faction:         faction,
		abilities:       make(map[string]bool, len(cfg.Character.Abilities)),
		health:          cfg.Character.MaxHealth,
		maxHealth:       cfg.Character.MaxHealth,
		alive:           true,
		baseSpeed:       cfg.Character.MoveSpeed,
		speedMultiplier: 1,
		position:        cfg.Position,
		rotation:        cfg.Rotation,
		cooldowns:       make(map[string]time.Duration),
	}
	for _, id := range cfg.Character.Abilities {
		e.abilities[id] = true
	}

	pipeline := cfg.Pipeline
	ledger, err := status.NewLedger(&status.Config{
		Owner:   e,
		Movable: e,
		Damage: func(amount float64, sourceID string) {
			pipeline.ApplyDamage(&DamageInput{Target: e, Amount: amount, SourceID: sourceID})
		},
		Notifier:      cfg.StatusNotifier,
		BurnMaxStacks: cfg.BurnMaxStacks,
		StunPolicy:    cfg.StunPolicy,
		Icons:         cfg.Icons,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create status ledger")
	}
	e.ledger = ledger

	if cfg.MarkWindow > 0 {
		e.marks = status.NewMarkTracker(cfg.MarkWindow)
	}
	if cfg.Character.IncomingDamage > 0 {
		e.AddModifier("passive", ConstantModifier(cfg.Character.IncomingDamage))
	}

	return e, nil
}

// GetID returns the entity id
func (e *Entity) GetID() string { return e.id }

// GetType separates connection-controlled entities from unowned ones
func (e *Entity) GetType() string {
	if e.ownerID == "" {
		return EntityTypeDummy
	}
	return EntityTypePlayer
}

// IsAlive reports whether the entity can still take damage and act
func (e *Entity) IsAlive() bool { return e.alive }

// OwnerID returns the owning connection, empty for unowned entities
func (e *Entity) OwnerID() string { return e.ownerID }

// CharacterID returns the roster entry the entity was spawned from
func (e *Entity) CharacterID() string { return e.characterID }

// Faction returns the entity classification
func (e *Entity) Faction() arena.Faction { return e.faction }

// Combatant returns the hostility view of the entity
func (e *Entity) Combatant() arena.Combatant {
	return arena.Combatant{Faction: e.faction, OwnerID: e.ownerID}
}

// HostileTo reports whether e and other should damage each other
func (e *Entity) HostileTo(other *Entity) bool {
	if other == nil || other == e {
		return false
	}
	return e.Combatant().HostileTo(other.Combatant())
}

// Health returns the current health
func (e *Entity) Health() float64 { return e.health }

// MaxHealth returns the health cap
func (e *Entity) MaxHealth() float64 { return e.maxHealth }

// Position returns the current position
func (e *Entity) Position() arena.Vec3 { return e.position }

// Rotation returns the yaw in degrees
func (e *Entity) Rotation() float64 { return e.rotation }

// StatusLedger returns the entity's status ledger
func (e *Entity) StatusLedger() *status.Ledger { return e.ledger }

// Marks returns the entity's mark tracker, nil when marks are disabled
func (e *Entity) Marks() *status.MarkTracker { return e.marks }

// Speed returns the current movement speed after slows
func (e *Entity) Speed() float64 {
	if e.immobilized {
		return 0
	}
	return e.baseSpeed * e.speedMultiplier
}

// SetSpeedMultiplier implements status.Movable
func (e *Entity) SetSpeedMultiplier(multiplier float64) {
	e.speedMultiplier = multiplier
}

// SetImmobilized implements status.Movable
func (e *Entity) SetImmobilized(immobilized bool) {
	e.immobilized = immobilized
	if immobilized {
		e.destination = nil
	}
}

// MoveTowards implements status.Movable
func (e *Entity) MoveTowards(target arena.Vec3, maxStep float64) {
	e.position = e.position.MoveTowards(target, maxStep)
}

// ApplyKnockback implements status.Movable. The impulse integrates over
// following ticks even while stunned.
func (e *Entity) ApplyKnockback(direction arena.Vec3, distance, speed float64) {
	dir := direction.Normalize()
	if dir == (arena.Vec3{}) || distance <= 0 || speed <= 0 {
		return
	}
	e.knockbackDir = dir
	e.knockbackSpeed = speed
	e.knockbackRemaining = distance
}

// SetDestination orders the entity to walk to point. Ignored while stunned or dead.
func (e *Entity) SetDestination(point arena.Vec3) bool {
	if !e.alive || e.immobilized {
		return false
	}
	e.destination = &point
	return true
}

// Knows reports whether the entity's character has abilityID in its kit
func (e *Entity) Knows(abilityID string) bool {
	return e.abilities[abilityID]
}

// Cooldown returns the time left before ability can be cast again
func (e *Entity) Cooldown(abilityID string) time.Duration {
	return e.cooldowns[abilityID]
}

func (e *Entity) startCooldown(abilityID string, d time.Duration) {
	if d > 0 {
		e.cooldowns[abilityID] = d
	}
}

// Tick advances statuses, cooldowns, marks and movement by dt
func (e *Entity) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}

	for id, left := range e.cooldowns {
		if left <= dt {
			delete(e.cooldowns, id)
			continue
		}
		e.cooldowns[id] = left - dt
	}

	e.ledger.Tick(dt)
	if e.marks != nil {
		e.marks.Tick(dt)
	}

	if e.knockbackRemaining > 0 {
		step := e.knockbackSpeed * dt.Seconds()
		if step > e.knockbackRemaining {
			step = e.knockbackRemaining
		}
		e.position = e.position.Add(e.knockbackDir.Scale(step))
		e.knockbackRemaining -= step
	}

	if e.destination != nil && e.alive && !e.immobilized {
		e.position = e.position.MoveTowards(*e.destination, e.Speed()*dt.Seconds())
		if e.position == *e.destination {
			e.destination = nil
		}
	}
}

// kill marks the entity dead. Callers clear the ledger afterwards.
func (e *Entity) kill() {
	e.health = 0
	e.alive = false
	e.destination = nil
	e.knockbackRemaining = 0
}

// Despawn retires an entity that leaves the arena without dying. It stops
// counting as alive, so references held elsewhere (marks, pending casts)
// no longer reach it. No death is reported.
func (e *Entity) Despawn() {
	e.alive = false
	e.destination = nil
	e.knockbackRemaining = 0
	if e.marks != nil {
		e.marks.Reset()
	}
}

// Snapshot is a read-only view for the UI and admin surfaces
type Snapshot struct {
	ID              string             `json:"id"`
	Type            string             `json:"type"`
	OwnerID         string             `json:"owner_id,omitempty"`
	CharacterID     string             `json:"character_id"`
	Faction         arena.Faction      `json:"faction"`
	Health          float64            `json:"health"`
	MaxHealth       float64            `json:"max_health"`
	Alive           bool               `json:"alive"`
	Shield          float64            `json:"shield"`
	SpeedMultiplier float64            `json:"speed_multiplier"`
	Stunned         bool               `json:"stunned"`
	Position        arena.Vec3         `json:"position"`
	Statuses        []status.Indicator `json:"statuses,omitempty"`

	// Marked lists targets this entity can detonate, in hit order
	Marked []string `json:"marked,omitempty"`
}

// Snapshot copies the entity state
func (e *Entity) Snapshot() *Snapshot {
	snap := &Snapshot{
		ID:              e.id,
		Type:            e.GetType(),
		OwnerID:         e.ownerID,
		CharacterID:     e.characterID,
		Faction:         e.faction,
		Health:          e.health,
		MaxHealth:       e.maxHealth,
		Alive:           e.alive,
		Shield:          e.ledger.ShieldRemaining(),
		SpeedMultiplier: e.ledger.SpeedMultiplier(),
		Stunned:         e.ledger.IsStunned(),
		Position:        e.position,
		Statuses:        e.ledger.Indicators(),
	}
	if e.marks != nil {
		snap.Marked = e.marks.Marked()
	}
	return snap
}

// Compile-time checks
var (
	_ status.Owner    = (*Entity)(nil)
	_ status.Movable  = (*Entity)(nil)
	_ status.Markable = (*Entity)(nil)
)
