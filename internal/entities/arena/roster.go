package arena

// Character is a selectable champion in the roster
type Character struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	MaxHealth float64 `json:"max_health" yaml:"max_health"`
	MoveSpeed float64 `json:"move_speed" yaml:"move_speed"`
	Faction   Faction `json:"faction" yaml:"faction"`

	// IncomingDamage is a passive multiplier on damage taken. Zero means none.
	IncomingDamage float64 `json:"incoming_damage,omitempty" yaml:"incoming_damage,omitempty"`

	// SpawnKey restricts spawning to points with the same key. Empty allows any point.
	SpawnKey string `json:"spawn_key,omitempty" yaml:"spawn_key,omitempty"`

	Abilities []string `json:"abilities,omitempty" yaml:"abilities,omitempty"`
}

// SpawnPoint is a static candidate location. Scored, never mutated.
type SpawnPoint struct {
	ID       string  `json:"id" yaml:"id"`
	Position Vec3    `json:"position" yaml:"position"`
	Rotation float64 `json:"rotation" yaml:"rotation"` // yaw in degrees
	Key      string  `json:"key,omitempty" yaml:"key,omitempty"`
}
