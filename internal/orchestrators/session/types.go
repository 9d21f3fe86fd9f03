package session

import "github.com/KirkDiggler/rpg-arena/internal/entities/arena"

// JoinInput registers a connection
type JoinInput struct {
	ConnectionID string
}

// JoinOutput returns the player record
type JoinOutput struct {
	Player *arena.Player
	// Spawned lists connections spawned because this join completed the barrier
	Spawned []string
}

// LeaveInput unregisters a connection
type LeaveInput struct {
	ConnectionID string
}

// LeaveOutput reports whether the connection was known
type LeaveOutput struct {
	Removed bool
	Spawned []string
}

// SubmitSelectionInput picks a character for a connection
type SubmitSelectionInput struct {
	ConnectionID string
	CharacterID  string
}

// SubmitSelectionOutput returns the updated record
type SubmitSelectionOutput struct {
	Player  *arena.Player
	Started bool
	Spawned []string
}

// SetReadyInput sets the ready flag for a connection
type SetReadyInput struct {
	ConnectionID string
	Ready        bool
}

// SetReadyOutput returns the updated record
type SetReadyOutput struct {
	Player  *arena.Player
	Started bool
	Spawned []string
}

// EvaluateStartInput re-checks the start barrier
type EvaluateStartInput struct{}

// EvaluateStartOutput reports the barrier state
type EvaluateStartOutput struct {
	Started bool
	// Spawned lists connections spawned by this evaluation
	Spawned []string
}

// RequestRespawnInput asks for a fresh entity for a connection
type RequestRespawnInput struct {
	ConnectionID string
}

// RequestRespawnOutput reports the outcome. Unknown connections are a no-op.
type RequestRespawnOutput struct {
	Respawned bool
	EntityID  string
}

// HandleDeathInput reports that a connection's entity died
type HandleDeathInput struct {
	ConnectionID string
	EntityID     string
}

// HandleDeathOutput reports whether the death matched a live record
type HandleDeathOutput struct {
	Handled bool
}

// GetSessionInput requests the current registry
type GetSessionInput struct{}

// GetSessionOutput returns a copy of the registry
type GetSessionOutput struct {
	Session *arena.Session
}
