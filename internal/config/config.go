// Package config loads the YAML configuration of a skirmish session.
package config

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

type Config struct {
	Log          LogConfig           `yaml:"log"`
	Loop         LoopConfig          `yaml:"loop"`
	Storage      StorageConfig       `yaml:"storage"`
	Feed         FeedConfig          `yaml:"feed"`
	Spawn        SpawnConfig         `yaml:"spawn"`
	Round        RoundConfig         `yaml:"round"`
	Survival     SurvivalConfig      `yaml:"survival"`
	Ghost        GhostConfig         `yaml:"ghost"`
	Tag          TagConfig           `yaml:"tag"`
	Practice     PracticeConfig      `yaml:"practice"`
	Participants []ParticipantConfig `yaml:"participants"`
	Arenas       []ArenaConfig       `yaml:"arenas"`
	Sim          SimConfig           `yaml:"sim"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type LoopConfig struct {
	TickRate int `yaml:"tick_rate"` // frames per second
	// Seed is a phrase hashed into the RNG seed. Empty means a fresh seed
	// per run.
	Seed string `yaml:"seed"`
}

// TickInterval is the duration of one frame.
func (l LoopConfig) TickInterval() time.Duration {
	if l.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(l.TickRate)
}

// SeedValue hashes the seed phrase. It reports false when no phrase is set.
func (l LoopConfig) SeedValue() (uint64, bool) {
	if l.Seed == "" {
		return 0, false
	}
	return xxhash.Sum64String(l.Seed), true
}

type StorageConfig struct {
	Driver  string `yaml:"driver"` // memory, sqlite or gdata
	Path    string `yaml:"path"`
	AppName string `yaml:"app_name"`
}

type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	// Buffer is the number of events queued per client before drops.
	Buffer int `yaml:"buffer"`
}

type SpawnConfig struct {
	RespawnDelay time.Duration `yaml:"respawn_delay"`
	Respawn      bool          `yaml:"respawn"`
}

type RoundConfig struct {
	SkipIntro     bool          `yaml:"skip_intro"`
	IntroDuration time.Duration `yaml:"intro_duration"`
	ArenaAnimate  time.Duration `yaml:"arena_animate"`
}

type SurvivalConfig struct {
	SurviveTime       time.Duration `yaml:"survive_time"`
	HordeSize         int           `yaml:"horde_size"`
	HordeRespawnDelay time.Duration `yaml:"horde_respawn_delay"`
	Arenas            []string      `yaml:"arenas"`
}

type GhostConfig struct {
	AlphaLevel   float64       `yaml:"alpha_level"`
	DashDuration time.Duration `yaml:"dash_duration"`
	ShotDuration time.Duration `yaml:"shot_duration"`
	Arenas       []string      `yaml:"arenas"`
}

type TagConfig struct {
	Fuse   time.Duration `yaml:"fuse"`
	Arenas []string      `yaml:"arenas"`
}

type PracticeConfig struct {
	RespawnDelay time.Duration `yaml:"respawn_delay"`
	Arena        string        `yaml:"arena"`
}

type ParticipantConfig struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	// Input is a device handle. Empty means a substitute AI plays.
	Input string `yaml:"input"`
	Skin  string `yaml:"skin"`
	Color string `yaml:"color"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type AreaConfig struct {
	Center PointConfig `yaml:"center"`
	Radius float64     `yaml:"radius"`
}

type ArenaConfig struct {
	Name        string                `yaml:"name"`
	PlayerSlots []PointConfig         `yaml:"player_slots"`
	AISlots     []PointConfig         `yaml:"ai_slots"`
	Special     map[string]AreaConfig `yaml:"special"`
}

// SimConfig sets how often the simulated driver makes each participant act,
// in events per second.
type SimConfig struct {
	DashRate        float64 `yaml:"dash_rate"`
	ShotRate        float64 `yaml:"shot_rate"`
	HitChance       float64 `yaml:"hit_chance"` // chance a shot lands
	EliminationRate float64 `yaml:"elimination_rate"`
}
