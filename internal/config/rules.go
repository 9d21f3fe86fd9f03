package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Rules is the arena ruleset loaded from YAML
type Rules struct {
	Characters         []arena.Character `yaml:"characters"`
	DefaultCharacterID string            `yaml:"default_character_id"`
	Abilities          []arena.Ability   `yaml:"abilities"`

	SpawnPoints []arena.SpawnPoint `yaml:"spawn_points"`
	SpawnRadius float64            `yaml:"spawn_radius"`
	Dummies     []Dummy            `yaml:"dummies"`

	// RequireReady gates the start on every connection being ready, not only selected
	RequireReady bool `yaml:"require_ready"`
	MinPlayers   int  `yaml:"min_players"`

	TickRate      int           `yaml:"tick_rate"` // ticks per second
	BurnMaxStacks int           `yaml:"burn_max_stacks"`
	StunPolicy    string        `yaml:"stun_policy"`
	MarkWindow    time.Duration `yaml:"mark_window"`

	// Icons maps a status kind to the icon reference shown by clients
	Icons map[string]string `yaml:"icons"`
}

// Dummy is an unowned target spawned when the server starts
type Dummy struct {
	CharacterID string     `yaml:"character_id"`
	Position    arena.Vec3 `yaml:"position"`
	Rotation    float64    `yaml:"rotation"`
}

// DefaultRules returns a playable ruleset used when no file is present
func DefaultRules() Rules {
	return Rules{
		Characters: []arena.Character{
			{ID: "knight", Name: "Knight", MaxHealth: 200, MoveSpeed: 5, Faction: arena.FactionPlayer, IncomingDamage: 0.85,
				Abilities: []string{"cleave", "shove", "bulwark"}},
			{ID: "pyromancer", Name: "Pyromancer", MaxHealth: 140, MoveSpeed: 5.5, Faction: arena.FactionPlayer,
				Abilities: []string{"fireball", "frost_nova", "orb", "detonate"}},
			{ID: "reaper", Name: "Reaper", MaxHealth: 160, MoveSpeed: 6, Faction: arena.FactionPlayer,
				Abilities: []string{"siphon", "hook"}},
			{ID: "training_dummy", Name: "Training Dummy", MaxHealth: 1000, Faction: arena.FactionEnemy},
		},
		DefaultCharacterID: "knight",
		Abilities: []arena.Ability{
			{ID: "cleave", Name: "Cleave", Range: 2, Radius: 2, Damage: 25, Cooldown: time.Second},
			{ID: "shove", Name: "Shove", Range: 2, Radius: 1.5, Damage: 10, Cooldown: 6 * time.Second,
				Effects: []arena.AbilityEffect{{Kind: arena.EffectKnockback, Distance: 4, Speed: 12, Duration: 750 * time.Millisecond, Icon: "knockup"}}},
			{ID: "bulwark", Name: "Bulwark", Cooldown: 12 * time.Second, SelfShield: 80, SelfShieldDuration: 4 * time.Second},
			{ID: "fireball", Name: "Fireball", Range: 12, Radius: 2.5, Damage: 30, Cooldown: 2 * time.Second,
				Effects: []arena.AbilityEffect{{Kind: arena.EffectBurn, Magnitude: 4, Duration: 4 * time.Second, Icon: "burn"}}},
			{ID: "frost_nova", Name: "Frost Nova", Radius: 4, Damage: 10, Cooldown: 8 * time.Second,
				Effects: []arena.AbilityEffect{{Kind: arena.EffectSlow, Magnitude: 0.4, Duration: 3 * time.Second, Icon: "slow"}}},
			{ID: "orb", Name: "Orb", Range: 10, Radius: 2, Damage: 12, Cooldown: time.Second, Mark: true},
			{ID: "detonate", Name: "Detonate", Cooldown: 10 * time.Second, DetonateStun: 1500 * time.Millisecond},
			{ID: "siphon", Name: "Siphon", Range: 6, Radius: 1.5, Damage: 35, Lifesteal: 0.3, Cooldown: 3 * time.Second},
			{ID: "hook", Name: "Hook", Range: 10, Radius: 1.5, Cooldown: 9 * time.Second,
				Effects: []arena.AbilityEffect{{Kind: arena.EffectAttract, Magnitude: 10, Duration: time.Second, Icon: "attract"}}},
		},
		SpawnPoints: []arena.SpawnPoint{
			{ID: "north", Position: arena.Vec3{Z: 20}, Rotation: 180},
			{ID: "south", Position: arena.Vec3{Z: -20}},
			{ID: "east", Position: arena.Vec3{X: 20}, Rotation: 270},
			{ID: "west", Position: arena.Vec3{X: -20}, Rotation: 90},
		},
		SpawnRadius: 15,
		Dummies: []Dummy{
			{CharacterID: "training_dummy", Position: arena.Vec3{}},
		},
		RequireReady:  true,
		MinPlayers:    1,
		TickRate:      20,
		BurnMaxStacks: 5,
		StunPolicy:    "overwrite",
		MarkWindow:    4 * time.Second,
		Icons: map[string]string{
			"stun":          "stun",
			"shield":        "shield",
			"mark_for_stun": "mark",
		},
	}
}

// LoadRules loads the ruleset from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rules, nil
		}
		return rules, errors.Wrapf(err, "failed to read rules %s", path)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse rules %s", path)
	}
	if err := rules.Validate(); err != nil {
		return rules, errors.Wrapf(err, "invalid rules %s", path)
	}

	return rules, nil
}

// Validate rejects rules that cannot run. Missing spawn points and an unknown
// default character are tolerated; the session falls back at runtime.
func (r *Rules) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(r.Characters) == 0 {
		vb.RequiredField("characters")
	}
	seen := make(map[string]bool, len(r.Characters))
	for _, c := range r.Characters {
		switch {
		case c.ID == "":
			vb.RequiredField("characters.id")
		case seen[c.ID]:
			vb.InvalidField("characters", "duplicate id "+c.ID)
		case c.MaxHealth <= 0:
			vb.InvalidField("characters."+c.ID+".max_health", "must be positive")
		case c.Faction != "" && !c.Faction.Valid():
			vb.InvalidField("characters."+c.ID+".faction", string(c.Faction))
		}
		seen[c.ID] = true
	}

	book := make(map[string]bool, len(r.Abilities))
	for _, a := range r.Abilities {
		book[a.ID] = true
	}
	for _, c := range r.Characters {
		for _, id := range c.Abilities {
			if !book[id] {
				vb.InvalidField("characters."+c.ID+".abilities", "unknown ability "+id)
			}
		}
	}
	for _, d := range r.Dummies {
		if _, ok := r.Character(d.CharacterID); !ok {
			vb.InvalidField("dummies.character_id", "unknown character "+d.CharacterID)
		}
	}

	if r.TickRate <= 0 {
		vb.InvalidField("tick_rate", "must be positive")
	}
	if r.SpawnRadius < 0 {
		vb.InvalidField("spawn_radius", "must not be negative")
	}
	if r.MinPlayers < 0 {
		vb.InvalidField("min_players", "must not be negative")
	}
	switch r.StunPolicy {
	case "", "overwrite", "longest":
	default:
		vb.InvalidField("stun_policy", r.StunPolicy)
	}

	return vb.Build()
}

// TickInterval is the fixed simulation step
func (r *Rules) TickInterval() time.Duration {
	if r.TickRate <= 0 {
		return 50 * time.Millisecond
	}
	return time.Second / time.Duration(r.TickRate)
}

// Character looks up a roster entry by id
func (r *Rules) Character(id string) (arena.Character, bool) {
	for _, c := range r.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return arena.Character{}, false
}
