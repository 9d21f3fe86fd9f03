package sessions

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Used when no redis address is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*storedSession
}

type storedSession struct {
	data []byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*storedSession),
	}
}

// Save stores a copy of the snapshot
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
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

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[input.Session.ID] = &storedSession{data: data}

	return &SaveOutput{}, nil
}

// Get retrieves a snapshot by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	r.mu.RLock()
	stored, exists := r.store[input.SessionID]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	session, err := unmarshalSession(stored.data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Session: session}, nil
}

// Delete removes a snapshot. Missing snapshots are not an error.
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.SessionID]
	delete(r.store, input.SessionID)

	return &DeleteOutput{Deleted: exists}, nil
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)
