// Package ws is the player transport: one websocket per connection id, client
// requests routed to the session orchestrator and the world, and engine
// notifications fanned out to every connected client.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	"github.com/KirkDiggler/rpg-arena/internal/engine/world"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/session"
)

const defaultSendBuffer = 64

// Arena is what the hub needs from the world
type Arena interface {
	Cast(ctx context.Context, input *world.CastInput) (*combat.CastOutput, error)
	Move(ctx context.Context, ownerID string, point arena.Vec3) error
	Snapshots() []*combat.Snapshot
}

// HubConfig holds the dependencies for the hub
type HubConfig struct {
	Sessions session.Service
	Arena    Arena

	// SendBuffer is the per-client queue length. A client that falls this far
	// behind is disconnected.
	SendBuffer int
}

// Validate ensures all required dependencies are provided
func (c *HubConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Arena == nil {
		vb.RequiredField("Arena")
	}
	if c.SendBuffer < 0 {
		vb.InvalidField("SendBuffer", "must not be negative")
	}

	return vb.Build()
}

// Hub owns every player connection
type Hub struct {
	sessions   session.Service
	arena      Arena
	upgrader   websocket.Upgrader
	sendBuffer int

	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates a hub with no connections
func NewHub(cfg *HubConfig) (*Hub, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	sendBuffer := cfg.SendBuffer
	if sendBuffer == 0 {
		sendBuffer = defaultSendBuffer
	}

	return &Hub{
		sessions:   cfg.Sessions,
		arena:      cfg.Arena,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		clients: make(map[string]*client),
	}, nil
}

// Routes returns the HTTP handler serving /ws and /health
func (h *Hub) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/health", h.Health)
	return mux
}

// Health reports liveness and the number of connected clients
func (h *Hub) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": h.Len(),
	})
}

// ServeWS upgrades the request and runs the connection until it closes
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	connectionID := r.URL.Query().Get("id")
	if connectionID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "connection_id", connectionID, "error", err)
		return
	}

	c := newClient(connectionID, conn, h.sendBuffer)
	h.register(c)
	go c.writePump()

	ctx := context.Background()
	if _, err := h.sessions.Join(ctx, &session.JoinInput{ConnectionID: connectionID}); err != nil {
		slog.Error("join failed", "connection_id", connectionID, "error", err)
		h.unregister(ctx, c)
		return
	}

	c.readPump(func(msg *ClientMessage) {
		h.dispatch(ctx, c, msg)
	})
	h.unregister(ctx, c)
}

// register adds c, closing any older connection with the same id
func (h *Hub) register(c *client) {
	h.mu.Lock()
	previous := h.clients[c.id]
	h.clients[c.id] = c
	h.mu.Unlock()

	if previous != nil {
		slog.Info("connection replaced", "connection_id", c.id)
		previous.close()
	}
	slog.Info("client connected", "connection_id", c.id)
}

// unregister removes c and leaves the session, unless a newer connection
// has already taken over the id
func (h *Hub) unregister(ctx context.Context, c *client) {
	h.mu.Lock()
	current := h.clients[c.id] == c
	if current {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()

	c.close()
	if !current {
		return
	}

	slog.Info("client disconnected", "connection_id", c.id)
	if _, err := h.sessions.Leave(ctx, &session.LeaveInput{ConnectionID: c.id}); err != nil {
		slog.Error("leave failed", "connection_id", c.id, "error", err)
	}
}

func (h *Hub) dispatch(ctx context.Context, c *client, msg *ClientMessage) {
	var err error

	switch msg.Type {
	case MessageSelect:
		_, err = h.sessions.SubmitSelection(ctx, &session.SubmitSelectionInput{
			ConnectionID: c.id,
			CharacterID:  msg.CharacterID,
		})
	case MessageReady:
		ready := true
		if msg.Ready != nil {
			ready = *msg.Ready
		}
		_, err = h.sessions.SetReady(ctx, &session.SetReadyInput{ConnectionID: c.id, Ready: ready})
	case MessageRespawn:
		_, err = h.sessions.RequestRespawn(ctx, &session.RequestRespawnInput{ConnectionID: c.id})
	case MessageCast:
		var out *combat.CastOutput
		out, err = h.arena.Cast(ctx, &world.CastInput{
			OwnerID:   c.id,
			AbilityID: msg.AbilityID,
			Point:     msg.Point,
		})
		if err == nil {
			c.sendMessage(MessageCastResult, out)
		}
	case MessageMove:
		err = h.arena.Move(ctx, c.id, msg.Point)
	default:
		err = errors.InvalidArgumentf("unknown message type %q", msg.Type)
	}

	if err != nil {
		slog.Debug("request rejected",
			"connection_id", c.id,
			"type", msg.Type,
			"error", err,
		)
		c.sendMessage(MessageError, ErrorPayload{
			Request: msg.Type,
			Code:    errors.GetCode(err).String(),
			Message: errors.GetMessage(err),
		})
	}
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// broadcast encodes once and queues the frame on every client. Never blocks.
func (h *Hub) broadcast(msgType string, payload any) {
	data, err := json.Marshal(ServerMessage{Type: msgType, Payload: payload})
	if err != nil {
		slog.Error("failed to marshal broadcast", "type", msgType, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.enqueue(data)
	}
}

// NotifyStatusChanged implements status.Notifier
func (h *Hub) NotifyStatusChanged(indicator status.Indicator) {
	h.broadcast(MessageStatus, indicator)
}

// NotifyStatusRemoved implements status.Notifier
func (h *Hub) NotifyStatusRemoved(entityID string, kind status.Kind) {
	h.broadcast(MessageStatusRemoved, StatusRemovedPayload{EntityID: entityID, Kind: kind})
}

// DamageDealt implements combat.Notifier
func (h *Hub) DamageDealt(event arena.DamageEvent) {
	h.broadcast(MessageDamage, event)
}

// EntityDied implements combat.Notifier
func (h *Hub) EntityDied(event arena.DeathEvent) {
	h.broadcast(MessageDeath, event)
}

// Healed implements combat.Notifier
func (h *Hub) Healed(entityID string, amount, health float64) {
	h.broadcast(MessageHealed, HealedPayload{EntityID: entityID, Amount: amount, Health: health})
}

// SessionChanged implements session.Observer
func (h *Hub) SessionChanged(s *arena.Session) {
	h.broadcast(MessageSession, s)
}

// BroadcastState sends every entity snapshot. Run after each tick.
func (h *Hub) BroadcastState(frame uint64) {
	if h.Len() == 0 {
		return
	}
	h.broadcast(MessageState, StatePayload{
		Frame:    frame,
		SentAt:   time.Now(),
		Entities: h.arena.Snapshots(),
	})
}

// Compile-time checks
var (
	_ status.Notifier  = (*Hub)(nil)
	_ combat.Notifier  = (*Hub)(nil)
	_ session.Observer = (*Hub)(nil)
)
