package config

import (
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/round"
	"github.com/zeusync/skirmish/internal/storage"
)

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.LevelInfo
	}
	return level
}

func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:  c.Storage.Driver,
		Path:    c.Storage.Path,
		AppName: c.Storage.AppName,
	}
}

// RosterParticipants converts the participant list in declaration order.
func (c *Config) RosterParticipants() []roster.Participant {
	out := make([]roster.Participant, len(c.Participants))
	for i, p := range c.Participants {
		out[i] = roster.Participant{
			ID:   roster.ParticipantID(p.ID),
			Name: p.Name,
			Skin: roster.Skin{Name: p.Skin, Color: p.Color},
		}
		if p.Input != "" {
			out[i].Input = roster.Device(p.Input)
		}
	}
	return out
}

// Arena returns the named arena definition.
func (c *Config) Arena(name string) (ArenaConfig, bool) {
	for _, a := range c.Arenas {
		if a.Name == name {
			return a, true
		}
	}
	return ArenaConfig{}, false
}

// Build creates a fresh arena from the definition.
func (a ArenaConfig) Build() *arena.Arena {
	special := make(map[string]arena.Area, len(a.Special))
	for name, area := range a.Special {
		special[name] = arena.Area{Center: area.Center.vec(), Radius: area.Radius}
	}
	return arena.New(a.Name, points(a.PlayerSlots), points(a.AISlots), special)
}

func (p PointConfig) vec() arena.Vec3 {
	return arena.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

func points(in []PointConfig) []arena.Vec3 {
	out := make([]arena.Vec3, len(in))
	for i, p := range in {
		out[i] = p.vec()
	}
	return out
}

func (c *Config) SurvivalMode() round.SurvivalConfig {
	return round.SurvivalConfig{
		SurviveTime:       c.Survival.SurviveTime,
		HordeSize:         c.Survival.HordeSize,
		HordeRespawnDelay: c.Survival.HordeRespawnDelay,
		Arenas:            c.Survival.Arenas,
	}
}

func (c *Config) GhostMode() round.GhostConfig {
	return round.GhostConfig{
		AlphaLevel:   c.Ghost.AlphaLevel,
		DashDuration: c.Ghost.DashDuration,
		ShotDuration: c.Ghost.ShotDuration,
		Arenas:       c.Ghost.Arenas,
	}
}

func (c *Config) TagMode() round.TagConfig {
	return round.TagConfig{
		Fuse:   c.Tag.Fuse,
		Arenas: c.Tag.Arenas,
	}
}
