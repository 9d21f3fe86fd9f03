package arena

import "time"

// Session is a point-in-time copy of the session registry
type Session struct {
	ID        string     `json:"id"`
	Started   bool       `json:"started"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Players is ordered by join time
	Players []*Player `json:"players"`
}

// Player finds a player by connection id
func (s *Session) Player(connectionID string) (*Player, bool) {
	for _, p := range s.Players {
		if p.ConnectionID == connectionID {
			return p, true
		}
	}
	return nil, false
}
