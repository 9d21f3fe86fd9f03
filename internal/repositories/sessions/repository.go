// Package sessions stores point-in-time copies of the arena session registry.
// The live registry is owned by the session orchestrator; this store is what
// operators and the admin API read once a session is gone from memory.
package sessions

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionsmock github.com/KirkDiggler/rpg-arena/internal/repositories/sessions Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// Repository defines the storage interface for session snapshots
type Repository interface {
	// Save stores or replaces a snapshot
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a snapshot by session ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a snapshot
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the request for saving a snapshot
type SaveInput struct {
	Session *arena.Session
}

// SaveOutput defines the response for saving a snapshot
type SaveOutput struct{}

// GetInput defines the request for retrieving a snapshot
type GetInput struct {
	SessionID string
}

// GetOutput defines the response for retrieving a snapshot
type GetOutput struct {
	Session *arena.Session
}

// DeleteInput defines the request for deleting a snapshot
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the response for deleting a snapshot
type DeleteOutput struct {
	Deleted bool
}

const (
	errSessionRequired   = "session is required"
	errSessionIDRequired = "session ID is required"
)
