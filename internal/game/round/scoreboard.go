package round

import (
	"maps"
	"sync"

	"github.com/zeusync/skirmish/internal/game/roster"
)

// Scoreboard keeps per-participant scores. Rounds add pending points which
// the session folds into the totals once the round is over.
type Scoreboard struct {
	mu      sync.RWMutex
	pending map[roster.ParticipantID]int
	totals  map[roster.ParticipantID]int
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{
		pending: make(map[roster.ParticipantID]int),
		totals:  make(map[roster.ParticipantID]int),
	}
}

func (s *Scoreboard) IncrementPending(id roster.ParticipantID, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] += points
}

func (s *Scoreboard) Pending(id roster.ParticipantID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending[id]
}

// CommitPending adds pending points to the totals and returns what was added.
func (s *Scoreboard) CommitPending() map[roster.ParticipantID]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	committed := s.pending
	for id, points := range committed {
		s.totals[id] += points
	}
	s.pending = make(map[roster.ParticipantID]int)
	return committed
}

// DiscardPending drops points that were never committed.
func (s *Scoreboard) DiscardPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.pending)
}

func (s *Scoreboard) Total(id roster.ParticipantID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals[id]
}

func (s *Scoreboard) Totals() map[roster.ParticipantID]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.totals)
}
