package config

import (
	"errors"
	"fmt"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/storage"
)

// Validate reports every problem found, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		add("log.level: %w", err)
	}
	if c.Loop.TickRate <= 0 {
		add("loop.tick_rate must be positive, got %d", c.Loop.TickRate)
	}
	switch c.Storage.Driver {
	case storage.DriverMemory, storage.DriverGdata:
	case storage.DriverSQLite:
		if c.Storage.Path == "" {
			add("storage.path is required for the sqlite driver")
		}
	default:
		add("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	if c.Feed.Enabled && c.Feed.Address == "" {
		add("feed.address is required when the feed is enabled")
	}
	if c.Survival.SurviveTime <= 0 {
		add("survival.survive_time must be positive")
	}
	if c.Survival.HordeSize < 0 {
		add("survival.horde_size must not be negative")
	}
	if c.Ghost.AlphaLevel < 0 || c.Ghost.AlphaLevel > 1 {
		add("ghost.alpha_level must be within [0, 1], got %v", c.Ghost.AlphaLevel)
	}
	if c.Tag.Fuse <= 0 {
		add("tag.fuse must be positive")
	}

	if len(c.Participants) == 0 {
		add("at least one participant is required")
	}
	ids := make(map[int]bool, len(c.Participants))
	for _, p := range c.Participants {
		if p.ID < 0 {
			add("participant %q: id must not be negative", p.Name)
		}
		if ids[p.ID] {
			add("participant id %d is used twice", p.ID)
		}
		ids[p.ID] = true
	}

	if len(c.Arenas) == 0 {
		add("at least one arena is required")
	}
	names := make(map[string]bool, len(c.Arenas))
	for _, a := range c.Arenas {
		if a.Name == "" {
			add("arena without a name")
		}
		if names[a.Name] {
			add("arena %q is defined twice", a.Name)
		}
		names[a.Name] = true
		if len(a.PlayerSlots) == 0 {
			add("arena %q has no player slots", a.Name)
		}
	}
	for mode, list := range map[string][]string{
		"survival": c.Survival.Arenas,
		"ghost":    c.Ghost.Arenas,
		"tag":      c.Tag.Arenas,
	} {
		for _, name := range list {
			if !names[name] {
				add("%s.arenas: unknown arena %q", mode, name)
			}
		}
	}
	if c.Practice.Arena != "" && !names[c.Practice.Arena] {
		add("practice.arena: unknown arena %q", c.Practice.Arena)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
