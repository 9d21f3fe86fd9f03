package arena

import "time"

// PlayerState is the derived position of a connection in the session state machine
type PlayerState string

const (
	PlayerStateUnselected      PlayerState = "unselected"
	PlayerStateSelected        PlayerState = "selected"
	PlayerStateReady           PlayerState = "ready"
	PlayerStateSpawned         PlayerState = "spawned"
	PlayerStateAwaitingRespawn PlayerState = "awaiting_respawn"
)

// Player is the per-connection session record
type Player struct {
	ConnectionID string    `json:"connection_id"`
	CharacterID  string    `json:"character_id,omitempty"`
	Ready        bool      `json:"ready"`
	Spawned      bool      `json:"spawned"`
	EntityID     string    `json:"entity_id,omitempty"`
	Deaths       int32     `json:"deaths"`
	JoinedAt     time.Time `json:"joined_at"`
}

// Selected reports whether the player has picked a character
func (p *Player) Selected() bool {
	return p.CharacterID != ""
}

// State derives the state machine position from the record flags
func (p *Player) State() PlayerState {
	switch {
	case p.Spawned:
		return PlayerStateSpawned
	case p.Deaths > 0 && p.Selected():
		return PlayerStateAwaitingRespawn
	case p.Ready && p.Selected():
		return PlayerStateReady
	case p.Selected():
		return PlayerStateSelected
	default:
		return PlayerStateUnselected
	}
}

// Clone returns a copy safe to hand outside the owning registry
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
