// Package v1alpha1 handles the arena admin gRPC service
package v1alpha1

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/engine/world"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/sessions"
)

// defaultDamageSource tags hits dealt from the admin surface
const defaultDamageSource = "admin"

// Entities is the view of the live world operators work against
type Entities interface {
	Snapshot(entityID string) (*combat.Snapshot, error)
	EntityForOwner(ownerID string) (string, bool)
	ApplyDamage(ctx context.Context, input *world.ApplyDamageInput) float64
}

// FrameCounter reports how far the simulation has run
type FrameCounter interface {
	Frames() uint64
}

// HandlerConfig holds dependencies for the admin handler
type HandlerConfig struct {
	SessionID string
	Sessions  session.Service
	Entities  Entities
	// Repository serves sessions other than the live one. Optional.
	Repository sessions.Repository
	// Frames reports the tick loop position. Optional.
	Frames FrameCounter
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionID == "" {
		vb.RequiredField("SessionID")
	}
	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Entities == nil {
		vb.RequiredField("Entities")
	}

	return vb.Build()
}

// Handler implements the admin gRPC service
type Handler struct {
	sessionID  string
	sessions   session.Service
	entities   Entities
	repository sessions.Repository
	frames     FrameCounter
}

// NewHandler creates a new admin handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		sessionID:  cfg.SessionID,
		sessions:   cfg.Sessions,
		entities:   cfg.Entities,
		repository: cfg.Repository,
		frames:     cfg.Frames,
	}, nil
}

// GetSession returns the live session, or a stored snapshot for any other id
func (h *Handler) GetSession(ctx context.Context, req *GetSessionRequest) (*GetSessionResponse, error) {
	if req.SessionID == "" || req.SessionID == h.sessionID {
		out, err := h.sessions.GetSession(ctx, &session.GetSessionInput{})
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}

		resp := &GetSessionResponse{Session: out.Session, Live: true}
		if h.frames != nil {
			resp.Frame = h.frames.Frames()
		}
		return resp, nil
	}

	if h.repository == nil {
		return nil, errors.ToGRPCError(errors.NotFoundf("session %s not found", req.SessionID))
	}
	out, err := h.repository.Get(ctx, &sessions.GetInput{SessionID: req.SessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GetSessionResponse{Session: out.Session}, nil
}

// GetEntity returns one entity's health, shield, statuses and position.
// The entity is addressed by id or by the connection controlling it.
func (h *Handler) GetEntity(_ context.Context, req *GetEntityRequest) (*GetEntityResponse, error) {
	entityID := req.EntityID
	if entityID == "" && req.ConnectionID != "" {
		id, ok := h.entities.EntityForOwner(req.ConnectionID)
		if !ok {
			return nil, errors.ToGRPCError(errors.NotFoundf("no entity for connection %s", req.ConnectionID))
		}
		entityID = id
	}
	if entityID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("entity_id or connection_id is required"))
	}

	snap, err := h.entities.Snapshot(entityID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &GetEntityResponse{Entity: snap}, nil
}

// DealDamage runs an operator hit through the damage pipeline, shields and
// death handling included
func (h *Handler) DealDamage(ctx context.Context, req *DealDamageRequest) (*DealDamageResponse, error) {
	vb := errors.NewValidationBuilder()
	if req.EntityID == "" {
		vb.RequiredField("entity_id")
	}
	if req.Amount <= 0 {
		vb.InvalidField("amount", "must be positive")
	}
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.entities.Snapshot(req.EntityID); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	source := req.SourceID
	if source == "" {
		source = defaultDamageSource
	}
	applied := h.entities.ApplyDamage(ctx, &world.ApplyDamageInput{
		EntityID: req.EntityID,
		Amount:   req.Amount,
		SourceID: source,
	})

	slog.Info("admin damage dealt",
		"entity_id", req.EntityID,
		"amount", req.Amount,
		"applied", applied,
	)

	resp := &DealDamageResponse{Applied: applied}
	// a lethal hit removes the entity, leaving nothing to show
	if snap, err := h.entities.Snapshot(req.EntityID); err == nil {
		resp.Entity = snap
	}
	return resp, nil
}

// RequestRespawn respawns a connection on an operator's behalf
func (h *Handler) RequestRespawn(ctx context.Context, req *RequestRespawnRequest) (*RequestRespawnResponse, error) {
	if req.ConnectionID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("connection_id is required"))
	}

	slog.Info("admin respawn requested", "connection_id", req.ConnectionID)

	out, err := h.sessions.RequestRespawn(ctx, &session.RequestRespawnInput{ConnectionID: req.ConnectionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return &RequestRespawnResponse{Respawned: out.Respawned, EntityID: out.EntityID}, nil
}

// Ensure Handler implements AdminServiceServer
var _ AdminServiceServer = (*Handler)(nil)
