package ws

import (
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/engine/status"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// Client message types
const (
	MessageSelect  = "select"
	MessageReady   = "ready"
	MessageRespawn = "respawn"
	MessageCast    = "cast"
	MessageMove    = "move"
)

// Server message types
const (
	MessageSession       = "session"
	MessageStatus        = "status"
	MessageStatusRemoved = "status_removed"
	MessageDamage        = "damage"
	MessageDeath         = "death"
	MessageHealed        = "healed"
	MessageState         = "state"
	MessageCastResult    = "cast_result"
	MessageError         = "error"
)

// ClientMessage is everything a player may send. Fields are read by type.
type ClientMessage struct {
	Type        string     `json:"type"`
	CharacterID string     `json:"character_id,omitempty"`
	Ready       *bool      `json:"ready,omitempty"`
	AbilityID   string     `json:"ability_id,omitempty"`
	Point       arena.Vec3 `json:"point"`
}

// ServerMessage is the envelope for everything the hub sends
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// StatusRemovedPayload reports that an indicator should be dropped
type StatusRemovedPayload struct {
	EntityID string      `json:"entity_id"`
	Kind     status.Kind `json:"kind"`
}

// HealedPayload reports health gained
type HealedPayload struct {
	EntityID string  `json:"entity_id"`
	Amount   float64 `json:"amount"`
	Health   float64 `json:"health"`
}

// StatePayload is the periodic world broadcast
type StatePayload struct {
	Frame    uint64             `json:"frame"`
	SentAt   time.Time          `json:"sent_at"`
	Entities []*combat.Snapshot `json:"entities"`
}

// ErrorPayload reports a rejected request to the sender only
type ErrorPayload struct {
	Request string `json:"request,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
