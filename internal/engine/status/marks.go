package status

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Markable is an entity that can carry a mark from a mark-then-detonate ability
type Markable interface {
	Owner
	StatusLedger() *Ledger
}

type mark struct {
	target Markable
	hitAt  time.Duration
}

// MarkTracker remembers which entities one caster hit recently.
// Detonate converts every mark still inside the window into a stun.
// Marks are keyed on the entity, not on its owner.
type MarkTracker struct {
	window time.Duration
	now    time.Duration
	marks  map[core.Entity]*mark
	order  []core.Entity
}

// NewMarkTracker creates a tracker with the given sliding window
func NewMarkTracker(window time.Duration) *MarkTracker {
	return &MarkTracker{
		window: window,
		marks:  make(map[core.Entity]*mark),
	}
}

// Mark records a hit on target and shows the mark indicator for the window.
// Marking an already marked target restarts its window.
func (t *MarkTracker) Mark(target Markable, sourceID string) bool {
	if target == nil || !target.IsAlive() || t.window <= 0 {
		return false
	}

	if m, ok := t.marks[target]; ok {
		m.hitAt = t.now
	} else {
		t.marks[target] = &mark{target: target, hitAt: t.now}
		t.order = append(t.order, target)
	}

	return target.StatusLedger().Apply(ApplyInput{
		Kind:     KindMarkForStun,
		Duration: t.window,
		SourceID: sourceID,
	})
}

// Tick advances the tracker clock and forgets marks older than the window
func (t *MarkTracker) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	t.now += dt
	t.prune()
}

// prune drops expired marks and marks on entities that died or left
func (t *MarkTracker) prune() {
	kept := t.order[:0]
	for _, key := range t.order {
		m := t.marks[key]
		if t.now-m.hitAt > t.window || !m.target.IsAlive() {
			delete(t.marks, key)
			continue
		}
		kept = append(kept, key)
	}
	t.order = kept
}

// Marked returns the ids currently marked, in the order they were first hit
func (t *MarkTracker) Marked() []string {
	if len(t.order) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.order))
	for _, key := range t.order {
		if t.marks[key].target.IsAlive() {
			out = append(out, key.GetID())
		}
	}
	return out
}

// Detonate stuns every live marked entity in hit order, clears their mark
// indicator and empties the tracker. It returns the ids that were stunned.
func (t *MarkTracker) Detonate(stun time.Duration, sourceID string) []string {
	t.prune()

	stunned := make([]string, 0, len(t.order))
	for _, key := range t.order {
		ledger := t.marks[key].target.StatusLedger()
		ledger.Remove(KindMarkForStun)
		if ledger.Apply(ApplyInput{Kind: KindStun, Duration: stun, SourceID: sourceID}) {
			stunned = append(stunned, key.GetID())
		}
	}

	t.Reset()
	return stunned
}

// Reset forgets every mark without touching the targets
func (t *MarkTracker) Reset() {
	t.marks = make(map[core.Entity]*mark)
	t.order = t.order[:0]
}
