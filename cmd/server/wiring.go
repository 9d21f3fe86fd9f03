package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	"github.com/KirkDiggler/rpg-arena/internal/engine/world"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/sessions"
)

// newSessionRepository picks redis when an address is configured and memory
// otherwise. The returned func releases the backing client.
func newSessionRepository(ctx context.Context, cfg *config.Server) (sessions.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info("session snapshots kept in memory")
		return sessions.NewInMemory(), func() {}, nil
	}

	client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		PoolSize: cfg.RedisPoolSize,
		UseTLS:   cfg.RedisTLS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := redisclient.Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	repo, err := sessions.NewRedis(&sessions.RedisConfig{
		Client: client,
		TTL:    cfg.SessionTTL,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create session repository: %w", err)
	}

	slog.Info("session snapshots stored in redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB, "tls", cfg.RedisTLS)
	return repo, func() { _ = client.Close() }, nil
}

// newWorldConfig translates the ruleset into world tuning
func newWorldConfig(cfg *config.Server, rules *config.Rules, notifications *relay) *world.Config {
	icons := make(map[status.Kind]string, len(rules.Icons))
	for kind, icon := range rules.Icons {
		icons[status.Kind(kind)] = icon
	}

	policy := status.StunPolicy(rules.StunPolicy)
	if policy == "" {
		policy = status.StunPolicyOverwrite
	}

	return &world.Config{
		Characters:     rules.Characters,
		Abilities:      rules.Abilities,
		IDGenerator:    idgen.NewUUID("entity"),
		Notifier:       notifications,
		StatusNotifier: notifications,
		BurnMaxStacks:  rules.BurnMaxStacks,
		StunPolicy:     policy,
		MarkWindow:     rules.MarkWindow,
		Icons:          icons,
		Workers:        cfg.TickWorkers,
	}
}
