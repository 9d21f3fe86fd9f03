package status_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	statusmock "github.com/KirkDiggler/rpg-arena/internal/engine/status/mock"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

type fakeOwner struct {
	id    string
	alive bool
}

func (o *fakeOwner) GetID() string { return o.id }
func (o *fakeOwner) GetType() string { return "test" }
func (o *fakeOwner) IsAlive() bool { return o.alive }

type knockback struct {
	direction arena.Vec3
	distance  float64
	speed     float64
}

type fakeMovable struct {
	multiplier  float64
	immobilized bool
	moves       []float64
	knockbacks  []knockback
}

func (m *fakeMovable) SetSpeedMultiplier(multiplier float64) { m.multiplier = multiplier }
func (m *fakeMovable) SetImmobilized(immobilized bool)       { m.immobilized = immobilized }
func (m *fakeMovable) MoveTowards(_ arena.Vec3, maxStep float64) {
	m.moves = append(m.moves, maxStep)
}
func (m *fakeMovable) ApplyKnockback(direction arena.Vec3, distance, speed float64) {
	m.knockbacks = append(m.knockbacks, knockback{direction, distance, speed})
}

type damageCall struct {
	amount   float64
	sourceID string
}

type LedgerTestSuite struct {
	suite.Suite
	owner   *fakeOwner
	movable *fakeMovable
	damage  []damageCall
	ledger  *status.Ledger
}

func (s *LedgerTestSuite) SetupTest() {
	s.owner = &fakeOwner{id: "entity-1", alive: true}
	s.movable = &fakeMovable{multiplier: 1}
	s.damage = nil
	s.ledger = s.newLedger(status.StunPolicyOverwrite)
}

func (s *LedgerTestSuite) newLedger(policy status.StunPolicy) *status.Ledger {
	ledger, err := status.NewLedger(&status.Config{
		Owner:   s.owner,
		Movable: s.movable,
		Damage: func(amount float64, sourceID string) {
			s.damage = append(s.damage, damageCall{amount: amount, sourceID: sourceID})
		},
		StunPolicy: policy,
	})
	s.Require().NoError(err)
	return ledger
}

func (s *LedgerTestSuite) totalDamage() float64 {
	var total float64
	for _, d := range s.damage {
		total += d.amount
	}
	return total
}

func (s *LedgerTestSuite) TestNewLedger_Validation() {
	testCases := []struct {
		name string
		cfg  *status.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "missing owner", cfg: &status.Config{Damage: func(float64, string) {}}},
		{name: "missing damage", cfg: &status.Config{Owner: s.owner}},
		{
			name: "negative stacks",
			cfg:  &status.Config{Owner: s.owner, Damage: func(float64, string) {}, BurnMaxStacks: -1},
		},
		{
			name: "unknown stun policy",
			cfg:  &status.Config{Owner: s.owner, Damage: func(float64, string) {}, StunPolicy: "shortest"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			ledger, err := status.NewLedger(tc.cfg)
			s.Error(err)
			s.Nil(ledger)
		})
	}
}

func (s *LedgerTestSuite) TestApply_IgnoresMalformedInput() {
	testCases := []struct {
		name  string
		input status.ApplyInput
	}{
		{name: "unknown kind", input: status.ApplyInput{Kind: "frozen", Magnitude: 1, Duration: time.Second}},
		{name: "zero duration", input: status.ApplyInput{Kind: status.KindStun, Duration: 0}},
		{name: "negative duration", input: status.ApplyInput{Kind: status.KindStun, Duration: -5 * time.Second}},
		{name: "zero burn dps", input: status.ApplyInput{Kind: status.KindBurn, Duration: time.Second}},
		{name: "zero slow", input: status.ApplyInput{Kind: status.KindSlow, Duration: time.Second}},
		{name: "negative shield", input: status.ApplyInput{Kind: status.KindShield, Magnitude: -10, Duration: time.Second}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.False(s.ledger.Apply(tc.input))
			s.Equal(0, s.ledger.Len())
		})
	}
}

func (s *LedgerTestSuite) TestApply_DeadOwnerIsIgnored() {
	// Arrange
	s.owner.alive = false

	// Act
	applied := s.ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: time.Second})
	knocked := s.ledger.ApplyKnockback(status.KnockbackInput{Distance: 2, Speed: 4})

	// Assert
	s.False(applied)
	s.False(knocked)
	s.Equal(0, s.ledger.Len())
	s.False(s.movable.immobilized)
	s.Empty(s.movable.knockbacks)
}

func (s *LedgerTestSuite) TestBurn_StacksAreCapped() {
	// Act
	for i := 0; i < 7; i++ {
		s.ledger.Apply(status.ApplyInput{Kind: status.KindBurn, Magnitude: 10, Duration: 4 * time.Second, SourceID: "mage"})
	}

	// Assert
	s.Equal(status.DefaultBurnMaxStacks, s.ledger.BurnStacks())
	s.Equal(50.0, s.ledger.BurnDPS())
}

func (s *LedgerTestSuite) TestBurn_TicksOnFixedCadence() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindBurn, Magnitude: 10, Duration: 3 * time.Second, SourceID: "mage"})
	s.ledger.Apply(status.ApplyInput{Kind: status.KindBurn, Magnitude: 10, Duration: 3 * time.Second, SourceID: "mage"})

	// Act & Assert - first tick lands after a full interval
	s.ledger.Tick(500 * time.Millisecond)
	s.Empty(s.damage)

	s.ledger.Tick(500 * time.Millisecond)
	s.Require().Len(s.damage, 1)
	s.Equal(20.0, s.damage[0].amount)
	s.Equal("mage", s.damage[0].sourceID)

	// Remaining two ticks arrive in one large step, then the burn expires
	s.ledger.Tick(2 * time.Second)
	s.Len(s.damage, 3)
	s.Equal(60.0, s.totalDamage())
	s.False(s.ledger.Has(status.KindBurn))
	s.Equal(0, s.ledger.BurnStacks())
}

func (s *LedgerTestSuite) TestBurn_ReapplicationResetsDuration() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindBurn, Magnitude: 5, Duration: 2 * time.Second})
	s.ledger.Tick(1500 * time.Millisecond)

	// Act
	s.ledger.Apply(status.ApplyInput{Kind: status.KindBurn, Magnitude: 5, Duration: 2 * time.Second})

	// Assert
	effect, ok := s.ledger.Get(status.KindBurn)
	s.Require().True(ok)
	s.Equal(2*time.Second, effect.Remaining)
	s.Equal(2, effect.Stacks)
}

func (s *LedgerTestSuite) TestBurn_LethalTickStopsWhenLedgerCleared() {
	// Arrange
	var ledger *status.Ledger
	var calls int
	ledger, err := status.NewLedger(&status.Config{
		Owner: s.owner,
		Damage: func(float64, string) {
			calls++
			s.owner.alive = false
			ledger.Clear()
		},
	})
	s.Require().NoError(err)
	ledger.Apply(status.ApplyInput{Kind: status.KindBurn, Magnitude: 10, Duration: 5 * time.Second})
	ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.5, Duration: 5 * time.Second})

	// Act
	ledger.Tick(3 * time.Second)

	// Assert
	s.Equal(1, calls)
	s.Equal(0, ledger.Len())
}

func (s *LedgerTestSuite) TestSlow_StrongestWins() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.3, Duration: 5 * time.Second})

	// Act - stronger slow with a shorter duration
	s.ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.5, Duration: time.Second})

	// Assert
	s.InDelta(0.5, s.ledger.SpeedMultiplier(), 1e-9)
	s.InDelta(0.5, s.movable.multiplier, 1e-9)
	effect, _ := s.ledger.Get(status.KindSlow)
	s.Equal(time.Second, effect.Remaining)

	// Act - weaker slow only refreshes duration
	s.ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.2, Duration: 4 * time.Second})

	// Assert
	s.InDelta(0.5, s.ledger.SpeedMultiplier(), 1e-9)
	effect, _ = s.ledger.Get(status.KindSlow)
	s.Equal(4*time.Second, effect.Remaining)
}

func (s *LedgerTestSuite) TestSlow_ExpiryRestoresSpeed() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.4, Duration: 2 * time.Second})

	// Act
	s.ledger.Tick(2 * time.Second)

	// Assert
	s.False(s.ledger.Has(status.KindSlow))
	s.Equal(1.0, s.ledger.SpeedMultiplier())
	s.Equal(1.0, s.movable.multiplier)
}

func (s *LedgerTestSuite) TestSlow_FractionAboveOneIsClamped() {
	s.ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 3, Duration: time.Second})

	s.Equal(0.0, s.ledger.SpeedMultiplier())
	effect, _ := s.ledger.Get(status.KindSlow)
	s.Equal(1.0, effect.Magnitude)
}

func (s *LedgerTestSuite) TestStun_OverwriteCanShorten() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: 3 * time.Second})
	s.ledger.Tick(time.Second)

	// Act
	s.ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: time.Second})

	// Assert
	s.True(s.ledger.IsStunned())
	s.True(s.movable.immobilized)
	s.ledger.Tick(time.Second)
	s.False(s.ledger.IsStunned())
	s.False(s.movable.immobilized)
}

func (s *LedgerTestSuite) TestStun_LongestPolicyKeepsLaterEnd() {
	// Arrange
	ledger := s.newLedger(status.StunPolicyLongest)
	ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: 3 * time.Second})

	// Act
	ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: time.Second})

	// Assert
	effect, ok := ledger.Get(status.KindStun)
	s.Require().True(ok)
	s.Equal(3*time.Second, effect.Remaining)

	// Longer stun still extends
	ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: 5 * time.Second})
	effect, _ = ledger.Get(status.KindStun)
	s.Equal(5*time.Second, effect.Remaining)
}

func (s *LedgerTestSuite) TestStun_CancelsAttractAndKeepsSlow() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.5, Duration: 5 * time.Second})
	s.ledger.Apply(status.ApplyInput{Kind: status.KindAttract, Magnitude: 4, Duration: 2 * time.Second, Target: arena.Vec3{X: 10}})

	// Act
	s.ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: time.Second})

	// Assert
	s.False(s.ledger.Has(status.KindAttract))
	s.True(s.ledger.Has(status.KindSlow))
	s.True(s.ledger.IsStunned())

	// Attract cannot land while stunned
	s.False(s.ledger.Apply(status.ApplyInput{Kind: status.KindAttract, Magnitude: 4, Duration: time.Second}))
}

func (s *LedgerTestSuite) TestAttract_MovesAtSlowedSpeed() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.5, Duration: 5 * time.Second})
	s.ledger.Apply(status.ApplyInput{Kind: status.KindAttract, Magnitude: 4, Duration: 2 * time.Second, Target: arena.Vec3{X: 10}})

	// Act
	s.ledger.Tick(500 * time.Millisecond)

	// Assert
	s.Require().Len(s.movable.moves, 1)
	s.InDelta(1.0, s.movable.moves[0], 1e-9)
}

func (s *LedgerTestSuite) TestKnockback_IndicatorCoversTravelOrStun() {
	// Act
	applied := s.ledger.ApplyKnockback(status.KnockbackInput{
		Direction:    arena.Vec3{X: 1},
		Distance:     4,
		Speed:        8,
		StunDuration: time.Second,
		SourceID:     "brute",
	})

	// Assert
	s.True(applied)
	s.True(s.ledger.IsStunned())
	s.Require().Len(s.movable.knockbacks, 1)
	s.Equal(4.0, s.movable.knockbacks[0].distance)
	effect, ok := s.ledger.Get(status.KindKnockup)
	s.Require().True(ok)
	s.Equal(time.Second, effect.Remaining)

	// Without a stun the indicator lasts the travel time
	s.SetupTest()
	s.ledger.ApplyKnockback(status.KnockbackInput{Direction: arena.Vec3{X: 1}, Distance: 4, Speed: 8})
	effect, _ = s.ledger.Get(status.KindKnockup)
	s.Equal(500*time.Millisecond, effect.Remaining)
	s.False(s.ledger.IsStunned())
}

func (s *LedgerTestSuite) TestShield_AccumulatesAndDecays() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindShield, Magnitude: 50, Duration: 10 * time.Second})

	// Act
	s.ledger.Apply(status.ApplyInput{Kind: status.KindShield, Magnitude: 30, Duration: 4 * time.Second})
	s.ledger.Tick(time.Second)

	// Assert - 80 over 4s decays at 20/s
	s.InDelta(60, s.ledger.ShieldRemaining(), 1e-9)
	effect, _ := s.ledger.Get(status.KindShield)
	s.Equal(3*time.Second, effect.Remaining)
}

func (s *LedgerTestSuite) TestShield_AbsorbRemovesWhenDepleted() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindShield, Magnitude: 100, Duration: 10 * time.Second})
	s.ledger.Tick(2 * time.Second)

	// Act & Assert
	s.InDelta(30, s.ledger.AbsorbDamage(30), 1e-9)
	s.InDelta(50, s.ledger.ShieldRemaining(), 1e-9)

	s.InDelta(50, s.ledger.AbsorbDamage(80), 1e-9)
	s.False(s.ledger.Has(status.KindShield))
	s.Equal(0.0, s.ledger.AbsorbDamage(10))
}

func (s *LedgerTestSuite) TestShield_PartialAbsorbStillDecaysUntilExpiry() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindShield, Magnitude: 80, Duration: 4 * time.Second})
	s.Require().InDelta(60, s.ledger.AbsorbDamage(60), 1e-9)

	// Act
	s.ledger.Tick(time.Second)

	// Assert - the remaining 20 spreads over the 4s left
	s.True(s.ledger.Has(status.KindShield))
	s.InDelta(15, s.ledger.ShieldRemaining(), 1e-9)
	for _, indicator := range s.ledger.Indicators() {
		s.Positive(indicator.Magnitude, indicator.Kind)
	}

	s.ledger.Tick(3 * time.Second)
	s.False(s.ledger.Has(status.KindShield))
	s.Equal(0.0, s.ledger.ShieldRemaining())
}

func (s *LedgerTestSuite) TestEveryKindExpires() {
	// Arrange
	inputs := []status.ApplyInput{
		{Kind: status.KindBurn, Magnitude: 1, Duration: time.Second},
		{Kind: status.KindSlow, Magnitude: 0.3, Duration: 2 * time.Second},
		{Kind: status.KindShield, Magnitude: 10, Duration: 3 * time.Second},
		{Kind: status.KindDamageReduction, Magnitude: 0.5, Duration: time.Second},
		{Kind: status.KindMarkForStun, Duration: time.Second},
		{Kind: status.KindStun, Duration: 2 * time.Second},
	}
	for _, in := range inputs {
		s.Require().True(s.ledger.Apply(in), in.Kind)
	}

	// Act
	for i := 0; i < 4; i++ {
		s.ledger.Tick(time.Second)
	}

	// Assert
	s.Equal(0, s.ledger.Len())
	s.Equal(1.0, s.movable.multiplier)
	s.False(s.movable.immobilized)
	s.Empty(s.ledger.IncomingDamageMultipliers())
}

func (s *LedgerTestSuite) TestInfiniteEffect_OnlyEndsOnRemove() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindDamageReduction, Magnitude: 0.5, Duration: status.Infinite})

	// Act
	s.ledger.Tick(time.Hour)

	// Assert
	s.Equal([]float64{0.5}, s.ledger.IncomingDamageMultipliers())
	s.True(s.ledger.Remove(status.KindDamageReduction))
	s.False(s.ledger.Remove(status.KindDamageReduction))
}

func (s *LedgerTestSuite) TestClear_ResetsMovement() {
	// Arrange
	s.ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.5, Duration: 5 * time.Second})
	s.ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: 5 * time.Second})

	// Act
	s.ledger.Clear()

	// Assert
	s.Equal(0, s.ledger.Len())
	s.Equal(1.0, s.movable.multiplier)
	s.False(s.movable.immobilized)
}

func (s *LedgerTestSuite) TestIndicators_SortedByKind() {
	s.ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: time.Second, Icon: "stun.png"})
	s.ledger.Apply(status.ApplyInput{Kind: status.KindBurn, Magnitude: 4, Duration: time.Second})

	indicators := s.ledger.Indicators()

	s.Require().Len(indicators, 2)
	s.Equal(status.KindBurn, indicators[0].Kind)
	s.Equal(status.KindStun, indicators[1].Kind)
	s.Equal("stun.png", indicators[1].Icon)
	s.Equal("entity-1", indicators[1].EntityID)
}

func (s *LedgerTestSuite) TestNotifier_ReceivesChangesAndRemovals() {
	// Arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	notifier := statusmock.NewMockNotifier(ctrl)
	ledger, err := status.NewLedger(&status.Config{
		Owner:    s.owner,
		Damage:   func(float64, string) {},
		Notifier: notifier,
		Icons:    map[status.Kind]string{status.KindSlow: "slow.png"},
	})
	s.Require().NoError(err)

	notifier.EXPECT().
		NotifyStatusChanged(gomock.Any()).
		Do(func(indicator status.Indicator) {
			s.Equal(status.KindSlow, indicator.Kind)
			s.Equal("slow.png", indicator.Icon)
			s.Equal(time.Second, indicator.Remaining)
		})
	notifier.EXPECT().NotifyStatusRemoved("entity-1", status.KindSlow)

	// Act
	ledger.Apply(status.ApplyInput{Kind: status.KindSlow, Magnitude: 0.2, Duration: time.Second})
	ledger.Tick(time.Second)
}

func (s *LedgerTestSuite) TestMovable_StunDrivesImmobilized() {
	// Arrange
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	movable := statusmock.NewMockMovable(ctrl)
	ledger, err := status.NewLedger(&status.Config{
		Owner:   s.owner,
		Movable: movable,
		Damage:  func(float64, string) {},
	})
	s.Require().NoError(err)

	gomock.InOrder(
		movable.EXPECT().SetImmobilized(true),
		movable.EXPECT().SetImmobilized(false),
	)

	// Act
	ledger.Apply(status.ApplyInput{Kind: status.KindStun, Duration: time.Second})
	ledger.Tick(2 * time.Second)
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
