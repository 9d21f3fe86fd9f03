// Package config loads server settings from the environment and the arena
// rules from a YAML file.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Server holds process level settings
type Server struct {
	WSAddr    string `env:"ARENA_WS_ADDR" envDefault:":8080"`
	GRPCPort  int    `env:"ARENA_GRPC_PORT" envDefault:"50051"`
	RulesPath string `env:"ARENA_RULES" envDefault:"arena.yaml"`

	SessionID  string        `env:"ARENA_SESSION_ID" envDefault:"default"`
	SessionTTL time.Duration `env:"ARENA_SESSION_TTL" envDefault:"24h"`

	// RedisAddr enables the redis session store. Empty keeps sessions in memory.
	RedisAddr     string `env:"ARENA_REDIS_ADDR"`
	RedisPassword string `env:"ARENA_REDIS_PASSWORD"`
	RedisDB       int    `env:"ARENA_REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"ARENA_REDIS_POOL_SIZE"` // 0 uses the go-redis default
	RedisTLS      bool   `env:"ARENA_REDIS_TLS"`

	// TickWorkers above 1 ticks entities on a bounded worker pool
	TickWorkers int `env:"ARENA_TICK_WORKERS" envDefault:"1"`

	LogLevel     string `env:"ARENA_LOG_LEVEL" envDefault:"info"`
	OTelEndpoint string `env:"ARENA_OTEL_ENDPOINT"`
}

// LoadServer parses the server settings from environment variables
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the settings are usable
func (s *Server) Validate() error {
	vb := errors.NewValidationBuilder()

	if s.WSAddr == "" {
		vb.RequiredField("WSAddr")
	}
	if s.GRPCPort <= 0 || s.GRPCPort > 65535 {
		vb.InvalidField("GRPCPort", "must be a valid port")
	}
	if s.SessionID == "" {
		vb.RequiredField("SessionID")
	}
	if s.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "must not be negative")
	}
	if s.RedisDB < 0 {
		vb.InvalidField("RedisDB", "must not be negative")
	}
	if s.RedisPoolSize < 0 {
		vb.InvalidField("RedisPoolSize", "must not be negative")
	}
	if s.TickWorkers < 1 {
		vb.InvalidField("TickWorkers", "must be at least 1")
	}

	return vb.Build()
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (s *Server) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
