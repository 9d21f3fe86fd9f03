package status

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

const (
	// DefaultBurnMaxStacks caps burn stacks when the config leaves it unset
	DefaultBurnMaxStacks = 5
	// DefaultBurnTickInterval is the fixed cadence of burn damage
	DefaultBurnTickInterval = time.Second
)

// Config holds the dependencies for a ledger
type Config struct {
	Owner    Owner
	Movable  Movable
	Damage   DamageFunc
	Notifier Notifier

	BurnMaxStacks    int
	BurnTickInterval time.Duration
	StunPolicy       StunPolicy

	// Icons supplies a default icon per kind when ApplyInput.Icon is empty
	Icons map[Kind]string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Owner == nil {
		vb.RequiredField("Owner")
	}
	if c.Damage == nil {
		vb.RequiredField("Damage")
	}
	if c.BurnMaxStacks < 0 {
		vb.InvalidField("BurnMaxStacks", "must not be negative")
	}
	if c.BurnTickInterval < 0 {
		vb.InvalidField("BurnTickInterval", "must not be negative")
	}
	switch c.StunPolicy {
	case "", StunPolicyOverwrite, StunPolicyLongest:
	default:
		vb.InvalidField("StunPolicy", string(c.StunPolicy))
	}

	return vb.Build()
}

// Ledger is the set of active effects on one entity.
// It is not safe for concurrent use; the host serialises access per entity.
type Ledger struct {
	owner    Owner
	movable  Movable
	damage   DamageFunc
	notifier Notifier

	burnMaxStacks int
	burnTick      time.Duration
	stunPolicy    StunPolicy
	icons         map[Kind]string

	effects map[Kind]*Effect
}

// NewLedger creates an empty ledger for the configured owner
func NewLedger(cfg *Config) (*Ledger, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	l := &Ledger{
		owner:         cfg.Owner,
		movable:       cfg.Movable,
		damage:        cfg.Damage,
		notifier:      cfg.Notifier,
		burnMaxStacks: cfg.BurnMaxStacks,
		burnTick:      cfg.BurnTickInterval,
		stunPolicy:    cfg.StunPolicy,
		icons:         cfg.Icons,
		effects:       make(map[Kind]*Effect),
	}
	if l.notifier == nil {
		l.notifier = nopNotifier{}
	}
	if l.burnMaxStacks == 0 {
		l.burnMaxStacks = DefaultBurnMaxStacks
	}
	if l.burnTick == 0 {
		l.burnTick = DefaultBurnTickInterval
	}
	if l.stunPolicy == "" {
		l.stunPolicy = StunPolicyOverwrite
	}

	return l, nil
}

// Apply inserts or merges an effect. It returns false when the application
// was ignored: dead owner, unknown kind, or a non-positive duration or magnitude.
func (l *Ledger) Apply(in ApplyInput) bool {
	if !l.owner.IsAlive() {
		return false
	}
	if !in.Kind.Valid() || !validDuration(in.Duration) || math.IsNaN(in.Magnitude) || math.IsInf(in.Magnitude, 0) {
		return false
	}

	var applied bool
	switch in.Kind {
	case KindBurn:
		applied = l.applyBurn(in)
	case KindSlow:
		applied = l.applySlow(in)
	case KindStun:
		applied = l.applyStun(in)
	case KindShield:
		applied = l.applyShield(in)
	case KindAttract:
		applied = l.applyAttract(in)
	case KindDamageReduction:
		applied = l.applyDamageReduction(in)
	case KindKnockup, KindMarkForStun:
		l.replace(in, 0)
		applied = true
	}
	if !applied {
		return false
	}

	l.notifyChanged(l.effects[in.Kind])
	return true
}

func validDuration(d time.Duration) bool {
	return d > 0 || d == Infinite
}

// replace overwrites the kind's entry keeping nothing from a previous application
func (l *Ledger) replace(in ApplyInput, magnitude float64) *Effect {
	e := &Effect{
		Kind:      in.Kind,
		SourceID:  in.SourceID,
		Icon:      l.iconFor(in),
		Magnitude: magnitude,
		Duration:  in.Duration,
		Remaining: in.Duration,
		Target:    in.Target,
	}
	l.effects[in.Kind] = e
	return e
}

func (l *Ledger) refresh(e *Effect, in ApplyInput) {
	e.SourceID = in.SourceID
	e.Duration = in.Duration
	e.Remaining = in.Duration
	if in.Icon != "" {
		e.Icon = in.Icon
	}
}

func (l *Ledger) applyBurn(in ApplyInput) bool {
	if in.Magnitude <= 0 {
		return false
	}

	e, ok := l.effects[KindBurn]
	if !ok {
		e = l.replace(in, in.Magnitude)
		e.Stacks = 1
		return true
	}

	l.refresh(e, in)
	e.Magnitude = in.Magnitude
	if e.Stacks < l.burnMaxStacks {
		e.Stacks++
	}
	return true
}

func (l *Ledger) applySlow(in ApplyInput) bool {
	pct := math.Min(in.Magnitude, 1)
	if pct <= 0 {
		return false
	}

	e, ok := l.effects[KindSlow]
	if !ok {
		l.replace(in, pct)
	} else {
		l.refresh(e, in)
		e.Magnitude = math.Max(e.Magnitude, pct)
	}

	if l.movable != nil {
		l.movable.SetSpeedMultiplier(l.SpeedMultiplier())
	}
	return true
}

func (l *Ledger) applyStun(in ApplyInput) bool {
	e, ok := l.effects[KindStun]
	switch {
	case !ok:
		l.replace(in, 0)
	case l.stunPolicy == StunPolicyLongest && outlasts(e, in.Duration):
		e.SourceID = in.SourceID
	default:
		l.refresh(e, in)
	}

	if _, pulling := l.effects[KindAttract]; pulling {
		l.remove(KindAttract)
	}
	if l.movable != nil {
		l.movable.SetImmobilized(true)
	}
	return true
}

// outlasts reports whether e would still be running after d
func outlasts(e *Effect, d time.Duration) bool {
	if e.IsInfinite() {
		return true
	}
	return d != Infinite && e.Remaining >= d
}

func (l *Ledger) applyShield(in ApplyInput) bool {
	if in.Magnitude <= 0 {
		return false
	}

	e, ok := l.effects[KindShield]
	if !ok {
		e = l.replace(in, in.Magnitude)
	} else {
		l.refresh(e, in)
		e.Magnitude += in.Magnitude
	}

	e.decayRate = 0
	if !e.IsInfinite() {
		e.decayRate = e.Magnitude / e.Duration.Seconds()
	}
	return true
}

func (l *Ledger) applyAttract(in ApplyInput) bool {
	if in.Magnitude <= 0 || l.IsStunned() {
		return false
	}
	l.replace(in, in.Magnitude)
	return true
}

func (l *Ledger) applyDamageReduction(in ApplyInput) bool {
	if in.Magnitude < 0 {
		return false
	}
	l.replace(in, in.Magnitude)
	return true
}

// ApplyKnockback pushes the owner and records a knockup indicator lasting
// max(stunDuration, distance/speed). A positive stun duration also stuns.
func (l *Ledger) ApplyKnockback(in KnockbackInput) bool {
	if !l.owner.IsAlive() || in.Distance <= 0 || in.Speed <= 0 {
		return false
	}

	travel := time.Duration(in.Distance / in.Speed * float64(time.Second))
	indicator := travel
	if in.StunDuration > indicator {
		indicator = in.StunDuration
	}

	if l.movable != nil {
		l.movable.ApplyKnockback(in.Direction, in.Distance, in.Speed)
	}
	if in.StunDuration > 0 {
		l.Apply(ApplyInput{Kind: KindStun, Duration: in.StunDuration, SourceID: in.SourceID})
	}
	return l.Apply(ApplyInput{
		Kind:     KindKnockup,
		Duration: indicator,
		SourceID: in.SourceID,
		Icon:     in.Icon,
	})
}

// Tick advances every timer by dt, emits burn damage on its fixed cadence,
// moves pulled owners and expires finished effects.
func (l *Ledger) Tick(dt time.Duration) {
	if dt <= 0 || len(l.effects) == 0 {
		return
	}

	for _, kind := range tickOrder {
		e, ok := l.effects[kind]
		if !ok {
			continue
		}

		span := dt
		if !e.IsInfinite() && e.Remaining < span {
			span = e.Remaining
		}

		switch kind {
		case KindBurn:
			l.tickBurn(e, span)
		case KindShield:
			e.Magnitude = math.Max(0, e.Magnitude-e.decayRate*span.Seconds())
			if e.Magnitude <= 0 {
				l.remove(kind)
				continue
			}
		case KindAttract:
			l.tickAttract(e, span)
		}

		// burn damage may have killed the owner and cleared the ledger
		if current, still := l.effects[kind]; !still || current != e {
			continue
		}
		if e.IsInfinite() {
			continue
		}

		e.Remaining -= dt
		if e.Remaining <= 0 {
			l.remove(kind)
		}
	}
}

func (l *Ledger) tickBurn(e *Effect, span time.Duration) {
	e.tickElapsed += span
	for e.tickElapsed >= l.burnTick {
		e.tickElapsed -= l.burnTick

		amount := math.Round(e.Magnitude * float64(e.Stacks) * l.burnTick.Seconds())
		if amount > 0 {
			l.damage(amount, e.SourceID)
		}
		if current, ok := l.effects[KindBurn]; !ok || current != e {
			return
		}
	}
}

func (l *Ledger) tickAttract(e *Effect, span time.Duration) {
	if l.movable == nil || l.IsStunned() {
		return
	}
	step := e.Magnitude * l.SpeedMultiplier() * span.Seconds()
	l.movable.MoveTowards(e.Target, step)
}

// Remove force-expires the kind. It returns false if the kind was not active.
func (l *Ledger) Remove(kind Kind) bool {
	if _, ok := l.effects[kind]; !ok {
		return false
	}
	l.remove(kind)
	return true
}

func (l *Ledger) remove(kind Kind) {
	e, ok := l.effects[kind]
	if !ok {
		return
	}
	delete(l.effects, kind)

	switch kind {
	case KindSlow:
		e.Magnitude = 0
		if l.movable != nil {
			l.movable.SetSpeedMultiplier(1)
		}
	case KindStun:
		if l.movable != nil {
			l.movable.SetImmobilized(false)
		}
	case KindBurn:
		e.Stacks = 0
	}

	slog.Debug("status effect removed",
		"entity_id", l.owner.GetID(),
		"entity_type", l.owner.GetType(),
		"kind", kind,
	)
	l.notifier.NotifyStatusRemoved(l.owner.GetID(), kind)
}

// Clear removes every effect, used when the owner dies
func (l *Ledger) Clear() {
	for _, kind := range tickOrder {
		l.remove(kind)
	}
}

// AbsorbDamage consumes shield against amount and returns how much was absorbed
func (l *Ledger) AbsorbDamage(amount float64) float64 {
	e, ok := l.effects[KindShield]
	if !ok || amount <= 0 {
		return 0
	}

	absorbed := math.Min(e.Magnitude, amount)
	e.Magnitude -= absorbed
	if e.Magnitude <= 0 {
		l.remove(KindShield)
		return absorbed
	}
	// what is left still runs out exactly at expiry
	if !e.IsInfinite() && e.Remaining > 0 {
		e.decayRate = e.Magnitude / e.Remaining.Seconds()
	}

	l.notifyChanged(e)
	return absorbed
}

// IsStunned reports whether the owner can neither move nor act
func (l *Ledger) IsStunned() bool {
	_, ok := l.effects[KindStun]
	return ok
}

// SpeedMultiplier returns 1 - the active slow fraction
func (l *Ledger) SpeedMultiplier() float64 {
	e, ok := l.effects[KindSlow]
	if !ok {
		return 1
	}
	return 1 - e.Magnitude
}

// ShieldRemaining returns the current shield after decay and absorption
func (l *Ledger) ShieldRemaining() float64 {
	if e, ok := l.effects[KindShield]; ok {
		return e.Magnitude
	}
	return 0
}

// BurnStacks returns the active burn stack count
func (l *Ledger) BurnStacks() int {
	if e, ok := l.effects[KindBurn]; ok {
		return e.Stacks
	}
	return 0
}

// BurnDPS returns base DPS times stacks
func (l *Ledger) BurnDPS() float64 {
	if e, ok := l.effects[KindBurn]; ok {
		return e.Magnitude * float64(e.Stacks)
	}
	return 0
}

// IncomingDamageMultipliers lists the raw multipliers from active damage modifier effects
func (l *Ledger) IncomingDamageMultipliers() []float64 {
	if e, ok := l.effects[KindDamageReduction]; ok {
		return []float64{e.Magnitude}
	}
	return nil
}

// Has reports whether kind is active
func (l *Ledger) Has(kind Kind) bool {
	_, ok := l.effects[kind]
	return ok
}

// Get returns a copy of the active effect for kind
func (l *Ledger) Get(kind Kind) (Effect, bool) {
	e, ok := l.effects[kind]
	if !ok {
		return Effect{}, false
	}
	return *e, true
}

// Len returns the number of active effects
func (l *Ledger) Len() int {
	return len(l.effects)
}

// Indicators returns the UI view of every active effect ordered by kind
func (l *Ledger) Indicators() []Indicator {
	out := make([]Indicator, 0, len(l.effects))
	for _, e := range l.effects {
		out = append(out, l.indicator(e))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Kind < out[j].Kind
	})
	return out
}

func (l *Ledger) indicator(e *Effect) Indicator {
	return Indicator{
		EntityID:  l.owner.GetID(),
		Kind:      e.Kind,
		Icon:      e.Icon,
		Remaining: e.Remaining,
		Stacks:    e.Stacks,
		Magnitude: e.Magnitude,
	}
}

func (l *Ledger) notifyChanged(e *Effect) {
	if e == nil {
		return
	}
	l.notifier.NotifyStatusChanged(l.indicator(e))
}

func (l *Ledger) iconFor(in ApplyInput) string {
	if in.Icon != "" {
		return in.Icon
	}
	return l.icons[in.Kind]
}
