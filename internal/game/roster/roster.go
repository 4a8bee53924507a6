// Package roster holds the registered participants of a session in a stable
// global order. A participant's index in that order is what maps it to a spawn
// slot, so registration order matters and never changes once set.
package roster

import (
	"fmt"
	"sync"
)

// ParticipantID is the stable handle of a registered participant.
type ParticipantID int

// NoParticipant is the empty handle, used where a role may be unassigned.
const NoParticipant ParticipantID = -1

func (id ParticipantID) String() string {
	return fmt.Sprintf("P%d", int(id))
}

// InputSource identifies whatever drives a participant: a human input device
// handle or an AI controller tag.
type InputSource interface {
	Handle() string
	IsAI() bool
}

// Device is a human input device.
type Device string

func (d Device) Handle() string { return string(d) }
func (Device) IsAI() bool { return false }

// AIController is an AI controller tag.
type AIController string

func (a AIController) Handle() string { return string(a) }
func (AIController) IsAI() bool { return true }

// Skin is the visual identity of a participant.
type Skin struct {
	Name  string
	Color string // hex, e.g. "#ff4040"
}

// Participant is a registered player or AI competitor. Input may be nil, which
// means a substitute AI drives the participant.
type Participant struct {
	ID    ParticipantID
	Name  string
	Input InputSource
	Skin  Skin
}

func (p Participant) String() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID.String()
}

// Roster is the ordered set of registered participants.
type Roster struct {
	mu    sync.RWMutex
	order []Participant
	index map[ParticipantID]int
}

// New returns a roster with the given participants registered in order.
func New(participants ...Participant) (*Roster, error) {
	r := &Roster{index: make(map[ParticipantID]int)}
	for _, p := range participants {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a participant to the global order.
func (r *Roster) Register(p Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[p.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
	}
	r.index[p.ID] = len(r.order)
	r.order = append(r.order, p)
	return nil
}

// All returns a copy of the participants in registration order.
func (r *Roster) All() []Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Participant, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered participants.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// IndexOf returns the participant's position in the global order, or -1.
func (r *Roster) IndexOf(id ParticipantID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// Get looks a participant up by id.
func (r *Roster) Get(id ParticipantID) (Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return Participant{}, false
	}
	return r.order[i], true
}
