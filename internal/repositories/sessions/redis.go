package sessions

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
)

const (
	// Key pattern: arena_session:{session_id}
	sessionKeyPrefix = "arena_session:"
	defaultTTL       = 24 * time.Hour
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// TTL is refreshed on every save. Zero uses a day.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "must not be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a Redis backed snapshot repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func buildKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Save writes the snapshot as JSON and refreshes its TTL
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.InvalidArgument(errSessionRequired)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	data, err := marshalSession(input.Session)
	if err != nil {
		return nil, err
	}

	if err := r.client.Set(ctx, buildKey(input.Session.ID), data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store session %s in Redis", input.Session.ID)
	}

	return &SaveOutput{}, nil
}

// Get reads a snapshot
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	data, err := r.client.Get(ctx, buildKey(input.SessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("session %s not found", input.SessionID)
		}
		return nil, errors.Wrapf(err, "failed to get session %s from Redis", input.SessionID)
	}

	session, err := unmarshalSession(data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Session: session}, nil
}

// Delete removes a snapshot. Missing snapshots are not an error.
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	removed, err := r.client.Del(ctx, buildKey(input.SessionID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session %s from Redis", input.SessionID)
	}

	return &DeleteOutput{Deleted: removed > 0}, nil
}

func marshalSession(session *arena.Session) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}
	return data, nil
}

func unmarshalSession(data []byte) (*arena.Session, error) {
	var session arena.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}
	return &session, nil
}
