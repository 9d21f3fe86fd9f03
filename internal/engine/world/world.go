// Package world is the authoritative registry of live combatants.
//
// A World owns every combat.Entity, answers spatial queries, spawns and
// despawns entities for the session layer and advances the simulation on each
// tick. Every mutation happens under one lock. Deaths observed while the lock
// is held are queued and handed to the death listener only after it is
// released, so the listener may call back into the session layer freely.
package world

//go:generate mockgen -destination=mock/mock_spawner.go -package=worldmock github.com/KirkDiggler/rpg-arena/internal/engine/world Spawner

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
)

// DefaultDummyRespawnDelay is how long a destroyed dummy stays down
const DefaultDummyRespawnDelay = 5 * time.Second

// Spawner is what the session layer needs from the world
type Spawner interface {
	SpawnEntity(ctx context.Context, input *SpawnEntityInput) (*SpawnEntityOutput, error)
	DespawnEntity(ctx context.Context, input *DespawnEntityInput) (*DespawnEntityOutput, error)
	HostilePositions(ctx context.Context, input *HostilePositionsInput) (*HostilePositionsOutput, error)
}

// DeathListener is told about every death after the world lock is released
type DeathListener func(event arena.DeathEvent)

// Config holds the dependencies and tuning for a world
type Config struct {
	Characters  []arena.Character
	Abilities   []arena.Ability
	IDGenerator idgen.Generator

	Notifier       combat.Notifier
	StatusNotifier status.Notifier
	DeathListener  DeathListener

	BurnMaxStacks int
	StunPolicy    status.StunPolicy
	MarkWindow    time.Duration
	Icons         map[status.Kind]string

	// Workers above 1 ticks entities in parallel on a bounded pool
	Workers           int
	DummyRespawnDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.Characters) == 0 {
		vb.RequiredField("Characters")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Workers < 0 {
		vb.InvalidField("Workers", "must not be negative")
	}
	if c.DummyRespawnDelay < 0 {
		vb.InvalidField("DummyRespawnDelay", "must not be negative")
	}

	return vb.Build()
}

type dummyPost struct {
	characterID string
	position    arena.Vec3
	rotation    float64
	downFor     time.Duration
}

// World is the live entity registry
type World struct {
	mu       sync.Mutex
	entities map[string]*combat.Entity
	byOwner  map[string]string
	dummies  map[string]*dummyPost // entity id -> post
	downed   []*dummyPost

	characters map[string]arena.Character
	idGen      idgen.Generator
	pipeline   *combat.Pipeline
	resolver   *combat.Resolver

	statusNotifier status.Notifier
	burnMaxStacks  int
	stunPolicy     status.StunPolicy
	markWindow     time.Duration
	icons          map[status.Kind]string
	workers        int
	dummyDelay     time.Duration

	deaths     *deathQueue
	listenerMu sync.RWMutex
	listener   DeathListener
}

// New creates an empty world
func New(cfg *Config) (*World, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	w := &World{
		entities:       make(map[string]*combat.Entity),
		byOwner:        make(map[string]string),
		dummies:        make(map[string]*dummyPost),
		characters:     make(map[string]arena.Character, len(cfg.Characters)),
		idGen:          cfg.IDGenerator,
		statusNotifier: cfg.StatusNotifier,
		burnMaxStacks:  cfg.BurnMaxStacks,
		stunPolicy:     cfg.StunPolicy,
		markWindow:     cfg.MarkWindow,
		icons:          cfg.Icons,
		workers:        cfg.Workers,
		dummyDelay:     cfg.DummyRespawnDelay,
		listener:       cfg.DeathListener,
	}
	for _, c := range cfg.Characters {
		w.characters[c.ID] = c
	}
	if w.workers < 1 {
		w.workers = 1
	}
	if w.dummyDelay == 0 {
		w.dummyDelay = DefaultDummyRespawnDelay
	}

	w.deaths = newDeathQueue(cfg.Notifier)
	w.pipeline = combat.NewPipeline(&combat.PipelineConfig{Notifier: w.deaths})

	resolver, err := combat.NewResolver(&combat.ResolverConfig{
		Pipeline:  w.pipeline,
		Query:     registryQuery{w},
		Abilities: cfg.Abilities,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ability resolver")
	}
	w.resolver = resolver

	return w, nil
}

// SetDeathListener replaces the death listener. Used to close the loop with
// the session layer, which is built after the world.
func (w *World) SetDeathListener(listener DeathListener) {
	w.listenerMu.Lock()
	defer w.listenerMu.Unlock()
	w.listener = listener
}

// SpawnEntityInput asks for one entity to be placed
type SpawnEntityInput struct {
	CharacterID string
	Position    arena.Vec3
	Rotation    float64
	OwnerID     string
}

// SpawnEntityOutput identifies the spawned entity
type SpawnEntityOutput struct {
	EntityID string
}

// SpawnEntity creates an entity from the roster. An owner already holding an
// entity has the old one replaced.
func (w *World) SpawnEntity(_ context.Context, input *SpawnEntityInput) (*SpawnEntityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	e, err := w.spawnLocked(input)
	if err != nil {
		return nil, err
	}
	return &SpawnEntityOutput{EntityID: e.GetID()}, nil
}

func (w *World) spawnLocked(input *SpawnEntityInput) (*combat.Entity, error) {
	character, ok := w.characters[input.CharacterID]
	if !ok {
		return nil, errors.NotFoundf("character %s not found", input.CharacterID)
	}

	e, err := combat.NewEntity(&combat.EntityConfig{
		ID:             w.idGen.Generate(),
		OwnerID:        input.OwnerID,
		Character:      character,
		Position:       input.Position,
		Rotation:       input.Rotation,
		Pipeline:       w.pipeline,
		StatusNotifier: w.statusNotifier,
		BurnMaxStacks:  w.burnMaxStacks,
		StunPolicy:     w.stunPolicy,
		MarkWindow:     w.markWindow,
		Icons:          w.icons,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to spawn character %s", input.CharacterID)
	}

	if input.OwnerID != "" {
		if previous, ok := w.byOwner[input.OwnerID]; ok {
			if old, ok := w.entities[previous]; ok {
				old.Despawn()
			}
			delete(w.entities, previous)
		}
		w.byOwner[input.OwnerID] = e.GetID()
	}
	w.entities[e.GetID()] = e

	slog.Info("entity spawned",
		"entity_id", e.GetID(),
		"character_id", input.CharacterID,
		"owner_id", input.OwnerID,
	)

	return e, nil
}

// SpawnDummy places an unowned entity that comes back at the same post after dying
func (w *World) SpawnDummy(_ context.Context, characterID string, position arena.Vec3, rotation float64) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	post := &dummyPost{characterID: characterID, position: position, rotation: rotation}
	e, err := w.spawnLocked(&SpawnEntityInput{CharacterID: characterID, Position: position, Rotation: rotation})
	if err != nil {
		return "", err
	}
	w.dummies[e.GetID()] = post
	return e.GetID(), nil
}

// DespawnEntityInput removes an entity by id or by owner
type DespawnEntityInput struct {
	EntityID string
	OwnerID  string
}

// DespawnEntityOutput reports whether anything was removed
type DespawnEntityOutput struct {
	Removed bool
}

// DespawnEntity removes an entity. Unknown ids are a no-op.
func (w *World) DespawnEntity(_ context.Context, input *DespawnEntityInput) (*DespawnEntityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	id := input.EntityID
	if id == "" && input.OwnerID != "" {
		id = w.byOwner[input.OwnerID]
	}
	e, ok := w.entities[id]
	if !ok {
		return &DespawnEntityOutput{}, nil
	}

	e.Despawn()
	w.removeLocked(e)
	slog.Info("entity despawned", "entity_id", id, "owner_id", e.OwnerID())
	return &DespawnEntityOutput{Removed: true}, nil
}

func (w *World) removeLocked(e *combat.Entity) {
	delete(w.entities, e.GetID())
	delete(w.dummies, e.GetID())
	if owner := e.OwnerID(); owner != "" && w.byOwner[owner] == e.GetID() {
		delete(w.byOwner, owner)
	}
}

// HostilePositionsInput describes the entity about to be spawned
type HostilePositionsInput struct {
	CharacterID string
	OwnerID     string
}

// HostilePositionsOutput lists where its enemies stand
type HostilePositionsOutput struct {
	Positions []arena.Vec3
}

// HostilePositions returns the position of every live entity hostile to a
// would-be entity of the given character and owner
func (w *World) HostilePositions(_ context.Context, input *HostilePositionsInput) (*HostilePositionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	faction := arena.FactionPlayer
	if c, ok := w.characters[input.CharacterID]; ok && c.Faction.Valid() {
		faction = c.Faction
	}
	self := arena.Combatant{Faction: faction, OwnerID: input.OwnerID}

	w.mu.Lock()
	defer w.mu.Unlock()

	out := &HostilePositionsOutput{}
	for _, e := range w.sortedLocked() {
		if e.IsAlive() && self.HostileTo(e.Combatant()) {
			out.Positions = append(out.Positions, e.Position())
		}
	}
	return out, nil
}

// sortedLocked returns entities in id order for deterministic iteration
func (w *World) sortedLocked() []*combat.Entity {
	out := make([]*combat.Entity, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GetID() < out[j].GetID()
	})
	return out
}

// EntityForOwner returns the entity id controlled by a connection
func (w *World) EntityForOwner(ownerID string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id, ok := w.byOwner[ownerID]
	return id, ok
}

// Snapshot returns the view of one entity
func (w *World) Snapshot(entityID string) (*combat.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities[entityID]
	if !ok {
		return nil, errors.NotFoundf("entity %s not found", entityID)
	}
	return e.Snapshot(), nil
}

// Snapshots returns the view of every entity in id order
func (w *World) Snapshots() []*combat.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	entities := w.sortedLocked()
	out := make([]*combat.Snapshot, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.Snapshot())
	}
	return out
}

// Len returns the number of entities present
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entities)
}

// Compile-time check
var _ Spawner = (*World)(nil)
