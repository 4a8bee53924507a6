package arena

import "fmt"

// Provider loads arenas and plays their enter/exit transitions. Animation
// callbacks may run later, from the host's frame loop.
type Provider interface {
	Load(name string) (*Arena, error)
	Names() []string
	AnimateIn(a *Arena, done func())
	AnimateOut(a *Arena, done func())
}

// Stage holds the currently loaded arena.
type Stage struct {
	provider Provider
	loaded   *Arena
}

func NewStage(provider Provider) *Stage {
	return &Stage{provider: provider}
}

// Provider returns the provider the stage loads from.
func (s *Stage) Provider() Provider {
	return s.provider
}

// Load replaces the current arena, disposing the previous one.
func (s *Stage) Load(name string) (*Arena, error) {
	a, err := s.provider.Load(name)
	if err != nil {
		return nil, fmt.Errorf("arena: load %q: %w", name, err)
	}
	s.Unload()
	s.loaded = a
	return a, nil
}

// Unload disposes the current arena, if any.
func (s *Stage) Unload() {
	if s.loaded != nil {
		s.loaded.Dispose()
		s.loaded = nil
	}
}

// Loaded returns the current arena or nil.
func (s *Stage) Loaded() *Arena {
	return s.loaded
}

// Slots returns the current arena's slots of the given kind.
func (s *Stage) Slots(kind SlotKind) []Slot {
	return s.loaded.Slots(kind)
}
