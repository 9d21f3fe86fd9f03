package arena

// DamageEvent is the transient result of one hit. Produced and consumed synchronously.
type DamageEvent struct {
	TargetID    string  `json:"target_id"`
	SourceID    string  `json:"source_id,omitempty"`
	Raw         float64 `json:"raw"`
	Absorbed    float64 `json:"absorbed"`
	Applied     float64 `json:"applied"`
	HealthAfter float64 `json:"health_after"`
	Killed      bool    `json:"killed"`
}

// DeathEvent reports that an entity reached zero health
type DeathEvent struct {
	EntityID string `json:"entity_id"`
	OwnerID  string `json:"owner_id,omitempty"`
	KillerID string `json:"killer_id,omitempty"`
}
