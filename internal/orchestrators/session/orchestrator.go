// Package session implements the arena session orchestrator: the per-connection
// registry, the all-ready start barrier and individual respawns.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/KirkDiggler/rpg-arena/internal/orchestrators/session Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/engine/world"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/sessions"
	"github.com/KirkDiggler/rpg-arena/internal/spawn"
)

// Service defines the interface for session operations
type Service interface {
	// Join registers a connection. Joining twice is a no-op.
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave removes a connection and its entity
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// SubmitSelection stores a character choice and clears ready
	SubmitSelection(ctx context.Context, input *SubmitSelectionInput) (*SubmitSelectionOutput, error)

	// SetReady sets the ready flag
	SetReady(ctx context.Context, input *SetReadyInput) (*SetReadyOutput, error)

	// EvaluateStart runs the start barrier. Safe to call any number of times.
	EvaluateStart(ctx context.Context, input *EvaluateStartInput) (*EvaluateStartOutput, error)

	// RequestRespawn spawns a fresh entity for one connection, bypassing the barrier
	RequestRespawn(ctx context.Context, input *RequestRespawnInput) (*RequestRespawnOutput, error)

	// HandleDeath marks a connection as waiting for respawn
	HandleDeath(ctx context.Context, input *HandleDeathInput) (*HandleDeathOutput, error)

	// GetSession returns a copy of the registry
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
}

// Observer is told about every registry change, outside the session lock
type Observer interface {
	SessionChanged(session *arena.Session)
}

// Config holds the dependencies for the session orchestrator
type Config struct {
	SessionID string
	Spawner   world.Spawner

	// Repository receives a snapshot after every change. Optional.
	Repository sessions.Repository
	Observer   Observer
	Clock      clock.Clock

	Characters         []arena.Character
	DefaultCharacterID string
	SpawnPoints        []arena.SpawnPoint
	SpawnRadius        float64

	// RequireReady gates the start on every player being ready, not just selected
	RequireReady bool
	MinPlayers   int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionID == "" {
		vb.RequiredField("SessionID")
	}
	if c.Spawner == nil {
		vb.RequiredField("Spawner")
	}
	if len(c.Characters) == 0 {
		vb.RequiredField("Characters")
	}
	if c.SpawnRadius < 0 {
		vb.InvalidField("SpawnRadius", "must not be negative")
	}
	if c.MinPlayers < 0 {
		vb.InvalidField("MinPlayers", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	sessionID  string
	spawner    world.Spawner
	repository sessions.Repository
	observer   Observer
	clock      clock.Clock

	characters         map[string]arena.Character
	roster             []arena.Character
	defaultCharacterID string
	spawnPoints        []arena.SpawnPoint
	spawnRadius        float64
	requireReady       bool
	minPlayers         int

	mu        sync.Mutex
	players   map[string]*arena.Player
	order     []string
	started   bool
	startedAt *time.Time
	warned    map[string]bool
}

// NewOrchestrator creates a new session orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		sessionID:          cfg.SessionID,
		spawner:            cfg.Spawner,
		repository:         cfg.Repository,
		observer:           cfg.Observer,
		clock:              cfg.Clock,
		characters:         make(map[string]arena.Character, len(cfg.Characters)),
		roster:             cfg.Characters,
		defaultCharacterID: cfg.DefaultCharacterID,
		spawnPoints:        cfg.SpawnPoints,
		spawnRadius:        cfg.SpawnRadius,
		requireReady:       cfg.RequireReady,
		minPlayers:         cfg.MinPlayers,
		players:            make(map[string]*arena.Player),
		warned:             make(map[string]bool),
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.minPlayers < 1 {
		o.minPlayers = 1
	}
	for _, c := range cfg.Characters {
		o.characters[c.ID] = c
	}

	return o, nil
}

func requireConnection(connectionID string) error {
	if connectionID == "" {
		return errors.InvalidArgument("connection ID is required")
	}
	return nil
}

// Join registers a connection
func (o *orchestrator) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireConnection(input.ConnectionID); err != nil {
		return nil, err
	}

	slog.Info("Join requested", "connection_id", input.ConnectionID)

	o.mu.Lock()
	p := o.playerLocked(input.ConnectionID)
	spawned := o.evaluateLocked(ctx)
	out := &JoinOutput{Player: p.Clone(), Spawned: spawned}
	snap := o.commitLocked(ctx)
	o.mu.Unlock()

	o.publish(snap)
	return out, nil
}

// Leave removes a connection and despawns its entity
func (o *orchestrator) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireConnection(input.ConnectionID); err != nil {
		return nil, err
	}

	slog.Info("Leave requested", "connection_id", input.ConnectionID)

	o.mu.Lock()
	p, ok := o.players[input.ConnectionID]
	if !ok {
		o.mu.Unlock()
		return &LeaveOutput{}, nil
	}

	delete(o.players, input.ConnectionID)
	for i, id := range o.order {
		if id == input.ConnectionID {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	if p.Spawned || p.EntityID != "" {
		o.despawnLocked(ctx, p)
	}

	// the remaining players may now satisfy the barrier
	spawned := o.evaluateLocked(ctx)
	snap := o.commitLocked(ctx)
	o.mu.Unlock()

	o.publish(snap)
	return &LeaveOutput{Removed: true, Spawned: spawned}, nil
}

// SubmitSelection stores the choice, clears ready and re-checks the barrier
func (o *orchestrator) SubmitSelection(ctx context.Context, input *SubmitSelectionInput) (*SubmitSelectionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireConnection(input.ConnectionID); err != nil {
		return nil, err
	}

	slog.Info("SubmitSelection requested",
		"connection_id", input.ConnectionID,
		"character_id", input.CharacterID,
	)

	o.mu.Lock()
	p := o.playerLocked(input.ConnectionID)
	p.CharacterID = input.CharacterID
	p.Ready = false
	spawned := o.evaluateLocked(ctx)
	out := &SubmitSelectionOutput{Player: p.Clone(), Started: o.started, Spawned: spawned}
	snap := o.commitLocked(ctx)
	o.mu.Unlock()

	o.publish(snap)
	return out, nil
}

// SetReady sets the ready flag and re-checks the barrier
func (o *orchestrator) SetReady(ctx context.Context, input *SetReadyInput) (*SetReadyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireConnection(input.ConnectionID); err != nil {
		return nil, err
	}

	slog.Info("SetReady requested", "connection_id", input.ConnectionID, "ready", input.Ready)

	o.mu.Lock()
	p := o.playerLocked(input.ConnectionID)
	p.Ready = input.Ready
	spawned := o.evaluateLocked(ctx)
	out := &SetReadyOutput{Player: p.Clone(), Started: o.started, Spawned: spawned}
	snap := o.commitLocked(ctx)
	o.mu.Unlock()

	o.publish(snap)
	return out, nil
}

// EvaluateStart re-runs the barrier
func (o *orchestrator) EvaluateStart(ctx context.Context, input *EvaluateStartInput) (*EvaluateStartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	spawned := o.evaluateLocked(ctx)
	out := &EvaluateStartOutput{Started: o.started, Spawned: spawned}
	var snap *arena.Session
	if len(spawned) > 0 {
		snap = o.commitLocked(ctx)
	}
	o.mu.Unlock()

	o.publish(snap)
	return out, nil
}

// RequestRespawn drops the current entity and spawns a fresh one from the
// preserved selection. Unknown connections are ignored.
func (o *orchestrator) RequestRespawn(ctx context.Context, input *RequestRespawnInput) (*RequestRespawnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireConnection(input.ConnectionID); err != nil {
		return nil, err
	}

	slog.Info("RequestRespawn requested", "connection_id", input.ConnectionID)

	o.mu.Lock()
	p, ok := o.players[input.ConnectionID]
	if !ok {
		o.mu.Unlock()
		slog.Debug("respawn for unknown connection ignored", "connection_id", input.ConnectionID)
		return &RequestRespawnOutput{}, nil
	}

	if p.EntityID != "" {
		o.despawnLocked(ctx, p)
	}
	p.Spawned = false
	respawned := o.spawnLocked(ctx, p)
	out := &RequestRespawnOutput{Respawned: respawned, EntityID: p.EntityID}
	snap := o.commitLocked(ctx)
	o.mu.Unlock()

	o.publish(snap)
	return out, nil
}

// HandleDeath clears the spawned flag while keeping the selection
func (o *orchestrator) HandleDeath(ctx context.Context, input *HandleDeathInput) (*HandleDeathOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireConnection(input.ConnectionID); err != nil {
		return nil, err
	}

	o.mu.Lock()
	p, ok := o.players[input.ConnectionID]
	// a death for an entity the player no longer owns is stale
	if !ok || (input.EntityID != "" && p.EntityID != input.EntityID) {
		o.mu.Unlock()
		return &HandleDeathOutput{}, nil
	}

	p.Spawned = false
	p.EntityID = ""
	p.Deaths++
	slog.Info("player died",
		"connection_id", p.ConnectionID,
		"entity_id", input.EntityID,
		"deaths", p.Deaths,
	)
	snap := o.commitLocked(ctx)
	o.mu.Unlock()

	o.publish(snap)
	return &HandleDeathOutput{Handled: true}, nil
}

// GetSession returns a copy of the registry
func (o *orchestrator) GetSession(_ context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	return &GetSessionOutput{Session: o.snapshotLocked()}, nil
}

func (o *orchestrator) playerLocked(connectionID string) *arena.Player {
	if p, ok := o.players[connectionID]; ok {
		return p
	}
	p := &arena.Player{ConnectionID: connectionID, JoinedAt: o.clock.Now()}
	o.players[connectionID] = p
	o.order = append(o.order, connectionID)
	return p
}

// evaluateLocked runs the start barrier once and, after the start, spawns
// late joiners individually. It returns the connections spawned.
func (o *orchestrator) evaluateLocked(ctx context.Context) []string {
	if !o.started {
		if !o.barrierMetLocked() {
			return nil
		}
		now := o.clock.Now()
		o.started = true
		o.startedAt = &now
		slog.Info("session started", "session_id", o.sessionID, "players", len(o.order))
	}

	var spawned []string
	for _, id := range o.order {
		p := o.players[id]
		// dead players wait for an explicit respawn
		if p.Spawned || p.Deaths > 0 || !o.eligibleLocked(p) {
			continue
		}
		if o.spawnLocked(ctx, p) {
			spawned = append(spawned, id)
		}
	}
	return spawned
}

func (o *orchestrator) barrierMetLocked() bool {
	if len(o.order) < o.minPlayers {
		return false
	}
	for _, id := range o.order {
		if !o.eligibleLocked(o.players[id]) {
			return false
		}
	}
	return true
}

func (o *orchestrator) eligibleLocked(p *arena.Player) bool {
	if !p.Selected() {
		return false
	}
	return !o.requireReady || p.Ready
}

// spawnLocked places an entity for p. A failure leaves Spawned false.
func (o *orchestrator) spawnLocked(ctx context.Context, p *arena.Player) bool {
	character := o.resolveCharacterLocked(p.CharacterID)
	point := o.pickSpawnPointLocked(ctx, character, p.ConnectionID)

	out, err := o.spawner.SpawnEntity(ctx, &world.SpawnEntityInput{
		CharacterID: character.ID,
		Position:    point.Position,
		Rotation:    point.Rotation,
		OwnerID:     p.ConnectionID,
	})
	if err != nil {
		slog.Error("failed to spawn player",
			"connection_id", p.ConnectionID,
			"character_id", character.ID,
			"error", err,
		)
		p.Spawned = false
		p.EntityID = ""
		return false
	}

	p.Spawned = true
	p.EntityID = out.EntityID
	slog.Info("player spawned",
		"connection_id", p.ConnectionID,
		"character_id", character.ID,
		"entity_id", out.EntityID,
		"spawn_point", point.ID,
	)
	return true
}

func (o *orchestrator) despawnLocked(ctx context.Context, p *arena.Player) {
	if _, err := o.spawner.DespawnEntity(ctx, &world.DespawnEntityInput{OwnerID: p.ConnectionID}); err != nil {
		slog.Warn("failed to despawn player entity",
			"connection_id", p.ConnectionID,
			"entity_id", p.EntityID,
			"error", err,
		)
	}
	p.Spawned = false
	p.EntityID = ""
}

// resolveCharacterLocked falls back to the default character, then to the
// first roster entry, warning once per unknown id
func (o *orchestrator) resolveCharacterLocked(characterID string) arena.Character {
	if c, ok := o.characters[characterID]; ok {
		return c
	}

	fallback, ok := o.characters[o.defaultCharacterID]
	if !ok {
		fallback = o.roster[0]
	}
	o.warnOnceLocked("character:"+characterID, "unknown character, using fallback",
		"character_id", characterID,
		"fallback_id", fallback.ID,
	)
	return fallback
}

func (o *orchestrator) pickSpawnPointLocked(ctx context.Context, character arena.Character, connectionID string) arena.SpawnPoint {
	candidates := spawn.Candidates(o.spawnPoints, character.SpawnKey)
	if len(candidates) == 0 {
		o.warnOnceLocked("spawn_points", "no spawn points configured, spawning at origin")
		return arena.SpawnPoint{}
	}

	var query spawn.EnemyQuery
	out, err := o.spawner.HostilePositions(ctx, &world.HostilePositionsInput{
		CharacterID: character.ID,
		OwnerID:     connectionID,
	})
	if err != nil {
		slog.Warn("hostile lookup failed, scoring without enemies", "error", err)
	} else {
		positions := out.Positions
		query = func(arena.Vec3) []arena.Vec3 { return positions }
	}

	point, _ := spawn.SelectSpawnPoint(candidates, query, o.spawnRadius)
	return point
}

func (o *orchestrator) warnOnceLocked(key, msg string, args ...any) {
	if o.warned[key] {
		return
	}
	o.warned[key] = true
	slog.Warn(msg, args...)
}

func (o *orchestrator) snapshotLocked() *arena.Session {
	s := &arena.Session{
		ID:        o.sessionID,
		Started:   o.started,
		StartedAt: o.startedAt,
		UpdatedAt: o.clock.Now(),
		Players:   make([]*arena.Player, 0, len(o.order)),
	}
	for _, id := range o.order {
		s.Players = append(s.Players, o.players[id].Clone())
	}
	return s
}

// commitLocked persists a snapshot and returns it for publishing. Persistence
// is best effort.
func (o *orchestrator) commitLocked(ctx context.Context) *arena.Session {
	snap := o.snapshotLocked()
	if o.repository == nil {
		return snap
	}
	if _, err := o.repository.Save(ctx, &sessions.SaveInput{Session: snap}); err != nil {
		slog.Warn("failed to persist session snapshot", "session_id", o.sessionID, "error", err)
	}
	return snap
}

func (o *orchestrator) publish(snap *arena.Session) {
	if snap == nil || o.observer == nil {
		return
	}
	o.observer.SessionChanged(snap)
}
