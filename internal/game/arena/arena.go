// Package arena describes the play space of a round: its spawn slots and
// special areas, the provider that loads and animates arenas, and the slot
// assignment rule that maps participants onto slots.
package arena

import "fmt"

// Vec3 is a position in arena space.
type Vec3 struct {
	X, Y, Z float64
}

// Slot is a designated spawn location.
type Slot struct {
	Index    int
	Position Vec3
}

// Area is a named region used by some game modes.
type Area struct {
	Center Vec3
	Radius float64
}

// SlotKind selects which slot list of an arena to use.
type SlotKind int

const (
	PlayerSlots SlotKind = iota
	AISlots
)

func (k SlotKind) String() string {
	switch k {
	case PlayerSlots:
		return "player"
	case AISlots:
		return "ai"
	default:
		return fmt.Sprintf("SlotKind(%d)", int(k))
	}
}

// Arena is a loaded play space. After Dispose its accessors return empty
// values.
type Arena struct {
	name     string
	players  []Slot
	ai       []Slot
	special  map[string]Area
	disposed bool
}

// New builds an arena from slot positions, indexing slots in the order given.
func New(name string, players, ai []Vec3, special map[string]Area) *Arena {
	a := &Arena{
		name:    name,
		players: toSlots(players),
		ai:      toSlots(ai),
		special: make(map[string]Area, len(special)),
	}
	for k, v := range special {
		a.special[k] = v
	}
	return a
}

func toSlots(positions []Vec3) []Slot {
	slots := make([]Slot, len(positions))
	for i, p := range positions {
		slots[i] = Slot{Index: i, Position: p}
	}
	return slots
}

func (a *Arena) Name() string {
	return a.name
}

// Slots returns the slot list of the given kind.
func (a *Arena) Slots(kind SlotKind) []Slot {
	if a == nil || a.disposed {
		return nil
	}
	switch kind {
	case PlayerSlots:
		return a.players
	case AISlots:
		return a.ai
	default:
		return nil
	}
}

// SpecialArea returns a named area, if the arena has one.
func (a *Arena) SpecialArea(name string) (Area, bool) {
	if a == nil || a.disposed {
		return Area{}, false
	}
	area, ok := a.special[name]
	return area, ok
}

func (a *Arena) Dispose() {
	a.disposed = true
}

func (a *Arena) Disposed() bool {
	return a.disposed
}

// Err reports ErrDisposed once the arena has been disposed.
func (a *Arena) Err() error {
	if a == nil || a.disposed {
		return ErrDisposed
	}
	return nil
}

// SlotFor returns slots[index mod len(slots)]. Negative indices wrap as well.
// An empty slot list is a programming error and panics.
func SlotFor(slots []Slot, index int) Slot {
	n := len(slots)
	if n == 0 {
		panic("arena: SlotFor called with no spawn slots")
	}
	i := index % n
	if i < 0 {
		i += n
	}
	return slots[i]
}
