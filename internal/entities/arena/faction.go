package arena

// Faction classifies an entity for targeting and spawn scoring
type Faction string

const (
	FactionPlayer Faction = "player"
	FactionAlly   Faction = "ally"
	FactionEnemy  Faction = "enemy"
)

// Valid reports whether f is a known faction
func (f Faction) Valid() bool {
	switch f {
	case FactionPlayer, FactionAlly, FactionEnemy:
		return true
	default:
		return false
	}
}

// Friendly reports whether f sits on the player side of the arena
func (f Faction) Friendly() bool {
	return f == FactionPlayer || f == FactionAlly
}

// Combatant is the minimal view needed to decide hostility between two entities.
// OwnerID is the owning connection, empty for unowned entities such as dummies.
type Combatant struct {
	Faction Faction
	OwnerID string
}

// HostileTo reports whether c and other should damage each other.
// Enemies fight the player side. Two player-faction combatants owned by
// different connections are hostile, which makes the arena free-for-all.
func (c Combatant) HostileTo(other Combatant) bool {
	if c.Faction == FactionEnemy || other.Faction == FactionEnemy {
		return c.Faction != other.Faction
	}
	if c.Faction == FactionPlayer && other.Faction == FactionPlayer {
		return c.OwnerID != other.OwnerID
	}
	return false
}
