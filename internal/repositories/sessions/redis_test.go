package sessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/sessions"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

const testSessionKey = "arena_session:arena-1"

func testSession() *arena.Session {
	startedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &arena.Session{
		ID:        "arena-1",
		Started:   true,
		StartedAt: &startedAt,
		UpdatedAt: startedAt.Add(time.Minute),
		Players: []*arena.Player{
			{ConnectionID: "conn-1", CharacterID: "knight", Ready: true, Spawned: true, EntityID: "entity_1", JoinedAt: startedAt},
			{ConnectionID: "conn-2", CharacterID: "reaper", Ready: true, Deaths: 2, JoinedAt: startedAt},
		},
	}
}

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	mr   *miniredis.Miniredis
	repo sessions.Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	repo, err := sessions.NewRedis(&sessions.RedisConfig{Client: client, TTL: time.Hour})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TestNewRedis_Validation() {
	_, err := sessions.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = sessions.NewRedis(&sessions.RedisConfig{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	// Act
	_, err := s.repo.Save(s.ctx, &sessions.SaveInput{Session: testSession()})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &sessions.GetInput{SessionID: "arena-1"})

	// Assert
	s.Require().NoError(err)
	s.Equal(testSession(), out.Session)
	s.True(s.mr.Exists(testSessionKey))
	s.Equal(time.Hour, s.mr.TTL(testSessionKey))
}

func (s *RedisRepositoryTestSuite) TestSave_RefreshesTTL() {
	_, err := s.repo.Save(s.ctx, &sessions.SaveInput{Session: testSession()})
	s.Require().NoError(err)
	s.mr.FastForward(30 * time.Minute)

	_, err = s.repo.Save(s.ctx, &sessions.SaveInput{Session: testSession()})
	s.Require().NoError(err)

	s.Equal(time.Hour, s.mr.TTL(testSessionKey))
}

func (s *RedisRepositoryTestSuite) TestGet_Expired() {
	_, err := s.repo.Save(s.ctx, &sessions.SaveInput{Session: testSession()})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Hour)

	_, err = s.repo.Get(s.ctx, &sessions.GetInput{SessionID: "arena-1"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGet_Corrupt() {
	s.Require().NoError(s.mr.Set(testSessionKey, "{not json"))

	_, err := s.repo.Get(s.ctx, &sessions.GetInput{SessionID: "arena-1"})

	s.Error(err)
	s.False(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &sessions.SaveInput{Session: testSession()})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, &sessions.DeleteInput{SessionID: "arena-1"})
	s.Require().NoError(err)
	s.True(out.Deleted)
	s.False(s.mr.Exists(testSessionKey))

	out, err = s.repo.Delete(s.ctx, &sessions.DeleteInput{SessionID: "arena-1"})
	s.Require().NoError(err)
	s.False(out.Deleted)
}

func (s *RedisRepositoryTestSuite) TestInvalidInput() {
	_, err := s.repo.Save(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, &sessions.SaveInput{Session: &arena.Session{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, &sessions.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func TestRedisRepository_SeededSnapshot(t *testing.T) {
	client, _ := testutils.CreateTestRedisClientWithContext(t, func(mr *miniredis.Miniredis) {
		_ = mr.Set(testSessionKey, `{"id":"arena-1","started":false,"updated_at":"2026-03-01T12:00:00Z","players":[{"connection_id":"conn-9","ready":false,"spawned":false,"deaths":0,"joined_at":"2026-03-01T12:00:00Z"}]}`)
	})
	repo, err := sessions.NewRedis(&sessions.RedisConfig{Client: client})
	if err != nil {
		t.Fatal(err)
	}

	out, err := repo.Get(context.Background(), &sessions.GetInput{SessionID: "arena-1"})
	if err != nil {
		t.Fatal(err)
	}
	p, ok := out.Session.Player("conn-9")
	if !ok || p.State() != arena.PlayerStateUnselected {
		t.Fatalf("unexpected player %+v", p)
	}
}
