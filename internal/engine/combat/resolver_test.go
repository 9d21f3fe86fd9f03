package combat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

type sliceQuery struct {
	entities []*combat.Entity
}

func (q *sliceQuery) QueryEntitiesInRadius(center arena.Vec3, radius float64, filter combat.Filter) []*combat.Entity {
	var out []*combat.Entity
	for _, e := range q.entities {
		if e.Position().Distance(center) > radius {
			continue
		}
		if filter != nil && !filter(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

type ResolverTestSuite struct {
	suite.Suite
	pipeline *combat.Pipeline
	query    *sliceQuery
	resolver *combat.Resolver
	caster   *combat.Entity
}

func (s *ResolverTestSuite) SetupTest() {
	s.pipeline = combat.NewPipeline(nil)
	s.query = &sliceQuery{}

	var err error
	s.resolver, err = combat.NewResolver(&combat.ResolverConfig{
		Pipeline: s.pipeline,
		Query:    s.query,
		Abilities: []arena.Ability{
			{ID: "fireball", Range: 10, Radius: 3, Damage: 20, Cooldown: 2 * time.Second, Effects: []arena.AbilityEffect{
				{Kind: arena.EffectBurn, Magnitude: 5, Duration: 3 * time.Second},
			}},
			{ID: "frost", Range: 10, Radius: 3, Effects: []arena.AbilityEffect{
				{Kind: arena.EffectSlow, Magnitude: 0.4, Duration: 2 * time.Second},
			}},
			{ID: "shove", Range: 2, Radius: 2, Effects: []arena.AbilityEffect{
				{Kind: arena.EffectKnockback, Distance: 4, Speed: 8, Duration: time.Second},
			}},
			{ID: "siphon", Range: 5, Radius: 1, Damage: 40, Lifesteal: 0.5},
			{ID: "orb", Range: 10, Radius: 2, Damage: 5, Mark: true},
			{ID: "detonate", DetonateStun: 2 * time.Second},
			{ID: "barrier", SelfShield: 50, SelfShieldDuration: 5 * time.Second},
		},
	})
	s.Require().NoError(err)

	s.caster = s.add("caster", "conn-1", arena.FactionPlayer, arena.Vec3{})
}

// fullKit is every ability in the test book
var fullKit = []string{"fireball", "frost", "shove", "siphon", "orb", "detonate", "barrier"}

func (s *ResolverTestSuite) add(id, owner string, faction arena.Faction, pos arena.Vec3) *combat.Entity {
	return s.addWithKit(id, owner, faction, pos, fullKit)
}

func (s *ResolverTestSuite) addWithKit(id, owner string, faction arena.Faction, pos arena.Vec3, kit []string) *combat.Entity {
	e, err := combat.NewEntity(&combat.EntityConfig{
		ID:      id,
		OwnerID: owner,
		Character: arena.Character{
			ID:        id,
			MaxHealth: 100,
			MoveSpeed: 4,
			Faction:   faction,
			Abilities: kit,
		},
		Position:   pos,
		Pipeline:   s.pipeline,
		MarkWindow: 3 * time.Second,
	})
	s.Require().NoError(err)
	s.query.entities = append(s.query.entities, e)
	return e
}

func (s *ResolverTestSuite) TestNewResolver_RejectsDuplicateAbilities() {
	resolver, err := combat.NewResolver(&combat.ResolverConfig{
		Pipeline:  s.pipeline,
		Query:     s.query,
		Abilities: []arena.Ability{{ID: "a"}, {ID: "a"}},
	})

	s.Error(err)
	s.Nil(resolver)
}

func (s *ResolverTestSuite) TestCast_RejectsAbilityOutsideKit() {
	// Arrange
	knight := s.addWithKit("knight", "conn-3", arena.FactionPlayer, arena.Vec3{X: -5}, []string{"shove"})
	victim := s.add("victim", "", arena.FactionEnemy, arena.Vec3{X: -4})

	// Act
	out, err := s.resolver.Cast(&combat.CastInput{Caster: knight, AbilityID: "siphon", Point: victim.Position()})

	// Assert
	s.True(errors.IsFailedPrecondition(err))
	s.Nil(out)
	s.Equal(100.0, victim.Health())
	s.Zero(knight.Cooldown("siphon"))

	_, err = s.resolver.Cast(&combat.CastInput{Caster: knight, AbilityID: "shove", Point: victim.Position()})
	s.NoError(err)
}

func (s *ResolverTestSuite) TestCast_HitsHostilesInDistanceOrder() {
	// Arrange
	far := s.add("far", "", arena.FactionEnemy, arena.Vec3{X: 7})
	near := s.add("near", "", arena.FactionEnemy, arena.Vec3{X: 5})
	rival := s.add("rival", "conn-2", arena.FactionPlayer, arena.Vec3{X: 6})
	ally := s.add("ally", "conn-1", arena.FactionAlly, arena.Vec3{X: 5, Z: 1})

	// Act
	out, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "fireball", Point: arena.Vec3{X: 5}})

	// Assert
	s.Require().NoError(err)
	s.Require().Len(out.Hits, 3)
	s.Equal("near", out.Hits[0].EntityID)
	s.Equal("rival", out.Hits[1].EntityID)
	s.Equal("far", out.Hits[2].EntityID)
	for _, e := range []*combat.Entity{near, rival, far} {
		s.Equal(80.0, e.Health(), e.GetID())
		s.Equal(1, e.StatusLedger().BurnStacks(), e.GetID())
	}
	s.Equal(100.0, ally.Health())
	s.Equal(100.0, s.caster.Health())
}

func (s *ResolverTestSuite) TestCast_PointIsClampedToRange() {
	// Arrange
	target := s.add("target", "", arena.FactionEnemy, arena.Vec3{X: 20})

	// Act
	out, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "fireball", Point: arena.Vec3{X: 20}})

	// Assert
	s.Require().NoError(err)
	s.Empty(out.Hits)
	s.Equal(100.0, target.Health())
}

func (s *ResolverTestSuite) TestCast_Rejections() {
	s.Run("unknown ability", func() {
		_, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "meteor"})
		s.True(errors.IsNotFound(err))
	})

	s.Run("nil caster", func() {
		_, err := s.resolver.Cast(&combat.CastInput{AbilityID: "frost"})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("stunned caster", func() {
		s.caster.StatusLedger().Apply(status.ApplyInput{Kind: status.KindStun, Duration: time.Second})
		defer s.caster.StatusLedger().Remove(status.KindStun)

		_, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "frost"})
		s.True(errors.IsFailedPrecondition(err))
	})
}

func (s *ResolverTestSuite) TestCast_Cooldown() {
	// Arrange
	_, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "fireball", Point: arena.Vec3{X: 5}})
	s.Require().NoError(err)

	// Act & Assert
	_, err = s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "fireball", Point: arena.Vec3{X: 5}})
	s.True(errors.IsFailedPrecondition(err))

	s.caster.Tick(2 * time.Second)
	_, err = s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "fireball", Point: arena.Vec3{X: 5}})
	s.NoError(err)
}

func (s *ResolverTestSuite) TestCast_SlowAppliesToTargets() {
	target := s.add("target", "", arena.FactionEnemy, arena.Vec3{X: 3})

	_, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "frost", Point: arena.Vec3{X: 3}})

	s.Require().NoError(err)
	s.InDelta(0.6, target.StatusLedger().SpeedMultiplier(), 1e-9)
	s.InDelta(2.4, target.Speed(), 1e-9)
}

func (s *ResolverTestSuite) TestCast_KnockbackPushesAwayFromImpact() {
	// Arrange
	target := s.add("target", "", arena.FactionEnemy, arena.Vec3{X: 2})

	// Act
	_, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "shove", Point: arena.Vec3{X: 1}})
	s.Require().NoError(err)
	target.Tick(250 * time.Millisecond)

	// Assert - stunned and halfway along the 4 unit push
	s.True(target.StatusLedger().IsStunned())
	s.InDelta(4.0, target.Position().X, 1e-9)

	target.Tick(time.Second)
	s.InDelta(6.0, target.Position().X, 1e-9)
	s.False(target.StatusLedger().IsStunned())
}

func (s *ResolverTestSuite) TestCast_LifestealHealsCaster() {
	// Arrange
	s.pipeline.ApplyDamage(&combat.DamageInput{Target: s.caster, Amount: 50})
	s.add("target", "", arena.FactionEnemy, arena.Vec3{X: 2})

	// Act
	out, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "siphon", Point: arena.Vec3{X: 2}})

	// Assert
	s.Require().NoError(err)
	s.Require().Len(out.Hits, 1)
	s.Equal(40.0, out.Hits[0].Applied)
	s.Equal(70.0, s.caster.Health())
}

func (s *ResolverTestSuite) TestCast_MarkThenDetonate() {
	// Arrange
	a := s.add("a", "", arena.FactionEnemy, arena.Vec3{X: 4})
	b := s.add("b", "", arena.FactionEnemy, arena.Vec3{X: 5})
	_, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "orb", Point: arena.Vec3{X: 4}})
	s.Require().NoError(err)
	s.True(a.StatusLedger().Has(status.KindMarkForStun))

	// Act
	out, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "detonate"})

	// Assert
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, out.Stunned)
	s.True(a.StatusLedger().IsStunned())
	s.True(b.StatusLedger().IsStunned())
	s.False(a.StatusLedger().Has(status.KindMarkForStun))
}

func (s *ResolverTestSuite) TestCast_SelfShield() {
	_, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "barrier"})

	s.Require().NoError(err)
	s.Equal(50.0, s.caster.StatusLedger().ShieldRemaining())
}

func (s *ResolverTestSuite) TestCast_KilledTargetGetsNoStatuses() {
	// Arrange
	target := s.add("target", "", arena.FactionEnemy, arena.Vec3{X: 5})
	s.pipeline.ApplyDamage(&combat.DamageInput{Target: target, Amount: 90})

	// Act
	out, err := s.resolver.Cast(&combat.CastInput{Caster: s.caster, AbilityID: "fireball", Point: arena.Vec3{X: 5}})

	// Assert
	s.Require().NoError(err)
	s.Require().Len(out.Hits, 1)
	s.True(out.Hits[0].Killed)
	s.Equal(0, target.StatusLedger().Len())
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
