package world

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Tick advances every entity by dt, reaps the dead, brings dummies back and
// then reports deaths. With more than one worker, entities tick in parallel;
// each entity is only ever touched by one worker.
func (w *World) Tick(ctx context.Context, dt time.Duration) error {
	if dt <= 0 {
		return nil
	}

	err := w.tickLocked(ctx, dt)
	w.deliverDeaths()
	return err
}

func (w *World) tickLocked(ctx context.Context, dt time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entities := w.sortedLocked()
	if w.workers <= 1 || len(entities) <= 1 {
		for _, e := range entities {
			e.Tick(dt)
		}
	} else if err := tickParallel(ctx, entities, dt, w.workers); err != nil {
		return errors.Wrap(err, "tick aborted")
	}

	w.reapLocked()
	w.respawnDummiesLocked(dt)
	return nil
}

func tickParallel(ctx context.Context, entities []*combat.Entity, dt time.Duration, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, e := range entities {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			e.Tick(dt)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (w *World) respawnDummiesLocked(dt time.Duration) {
	remaining := w.downed[:0]
	for _, post := range w.downed {
		post.downFor += dt
		if post.downFor < w.dummyDelay {
			remaining = append(remaining, post)
			continue
		}

		e, err := w.spawnLocked(&SpawnEntityInput{
			CharacterID: post.characterID,
			Position:    post.position,
			Rotation:    post.rotation,
		})
		if err != nil {
			slog.Warn("failed to respawn dummy", "character_id", post.characterID, "error", err)
			continue
		}
		post.downFor = 0
		w.dummies[e.GetID()] = post
	}
	w.downed = remaining
}
