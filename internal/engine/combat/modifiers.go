package combat

import "math"

const (
	minDamageMultiplier = 0
	maxDamageMultiplier = 10
)

// DamageModifier scales incoming damage. Values below 1 reduce damage.
type DamageModifier interface {
	IncomingDamageMultiplier() float64
}

// ConstantModifier is a fixed incoming damage multiplier
type ConstantModifier float64

// IncomingDamageMultiplier implements DamageModifier
func (m ConstantModifier) IncomingDamageMultiplier() float64 {
	return float64(m)
}

type namedModifier struct {
	name     string
	modifier DamageModifier
}

// AddModifier registers a passive modifier, replacing any with the same name
func (e *Entity) AddModifier(name string, m DamageModifier) {
	if m == nil {
		return
	}
	for i := range e.modifiers {
		if e.modifiers[i].name == name {
			e.modifiers[i].modifier = m
			return
		}
	}
	e.modifiers = append(e.modifiers, namedModifier{name: name, modifier: m})
}

// IncomingDamageMultiplier is the product of every active modifier on the
// entity, each clamped to [0, 10] first
func (e *Entity) IncomingDamageMultiplier() float64 {
	multiplier := 1.0
	for _, m := range e.modifiers {
		multiplier *= clampMultiplier(m.modifier.IncomingDamageMultiplier())
	}
	for _, m := range e.ledger.IncomingDamageMultipliers() {
		multiplier *= clampMultiplier(m)
	}
	return multiplier
}

func clampMultiplier(m float64) float64 {
	if math.IsNaN(m) {
		return 1
	}
	return math.Max(minDamageMultiplier, math.Min(maxDamageMultiplier, m))
}
