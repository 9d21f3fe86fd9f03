// Package loop drives the world at a fixed simulation rate.
package loop

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Ticker is advanced once per frame with a fixed step
type Ticker interface {
	Tick(ctx context.Context, dt time.Duration) error
}

// Config holds the dependencies for a loop
type Config struct {
	Target   Ticker
	Interval time.Duration

	// AfterTick runs after every successful frame, e.g. to broadcast state
	AfterTick func(frame uint64)
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Target == nil {
		vb.RequiredField("Target")
	}
	if c.Interval <= 0 {
		vb.InvalidField("Interval", "must be positive")
	}

	return vb.Build()
}

// Loop advances its target on a wall-clock ticker. The step passed to the
// target is always Interval, regardless of scheduling jitter.
type Loop struct {
	target    Ticker
	interval  time.Duration
	afterTick func(frame uint64)
	frame     atomic.Uint64
}

// New creates a loop
func New(cfg *Config) (*Loop, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Loop{
		target:    cfg.Target,
		interval:  cfg.Interval,
		afterTick: cfg.AfterTick,
	}, nil
}

// Run blocks until ctx is cancelled. A failed frame is logged and skipped.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	slog.Info("tick loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("tick loop stopped", "frames", l.frame.Load())
			return nil
		case <-ticker.C:
			l.Step(ctx)
		}
	}
}

// Step advances exactly one frame
func (l *Loop) Step(ctx context.Context) {
	if err := l.target.Tick(ctx, l.interval); err != nil {
		if ctx.Err() == nil {
			slog.Error("tick failed", "frame", l.frame.Load(), "error", err)
		}
		return
	}

	frame := l.frame.Add(1)
	if l.afterTick != nil {
		l.afterTick(frame)
	}
}

// Frames returns how many frames completed. Safe to call from any goroutine.
func (l *Loop) Frames() uint64 {
	return l.frame.Load()
}
