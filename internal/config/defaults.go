package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/skirmish.yaml
var defaultYAML []byte

// Default returns the built-in configuration, used when the embedded YAML
// cannot be parsed.
func Default() Config {
	square := func(r float64) []PointConfig {
		return []PointConfig{{X: -r}, {X: r}, {Z: -r}, {Z: r}}
	}
	return Config{
		Log:     LogConfig{Level: "info", Development: true},
		Loop:    LoopConfig{TickRate: 60},
		Storage: StorageConfig{Driver: "sqlite", Path: "~/.skirmish/skirmish.db", AppName: "skirmish"},
		Feed:    FeedConfig{Enabled: false, Address: "127.0.0.1:8787", Buffer: 64},
		Spawn:   SpawnConfig{RespawnDelay: 2 * time.Second},
		Round: RoundConfig{
			IntroDuration: 2 * time.Second,
			ArenaAnimate:  300 * time.Millisecond,
		},
		Survival: SurvivalConfig{
			SurviveTime:       15 * time.Second,
			HordeSize:         6,
			HordeRespawnDelay: 2 * time.Second,
		},
		Ghost: GhostConfig{
			AlphaLevel:   0.65,
			DashDuration: 650 * time.Millisecond,
			ShotDuration: 650 * time.Millisecond,
		},
		Tag:      TagConfig{Fuse: 10 * time.Second},
		Practice: PracticeConfig{RespawnDelay: 3 * time.Second, Arena: "courtyard"},
		Participants: []ParticipantConfig{
			{ID: 1, Name: "Red", Input: "keyboard", Skin: "knight", Color: "#e74c3c"},
			{ID: 2, Name: "Blue", Skin: "knight", Color: "#3498db"},
			{ID: 3, Name: "Green", Skin: "rogue", Color: "#2ecc71"},
			{ID: 4, Name: "Yellow", Skin: "rogue", Color: "#f1c40f"},
		},
		Arenas: []ArenaConfig{
			{Name: "courtyard", PlayerSlots: square(6), AISlots: square(10)},
			{Name: "crater", PlayerSlots: square(4), AISlots: square(8),
				Special: map[string]AreaConfig{"hill": {Radius: 2}}},
		},
		Sim: SimConfig{
			DashRate:        0.5,
			ShotRate:        0.8,
			HitChance:       0.3,
			EliminationRate: 0.05,
		},
	}
}
