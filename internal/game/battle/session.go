// Package battle runs consecutive rounds: it picks the next variant by play
// count, drives the round controller and folds each round's points into the
// session totals.
package battle

import (
	"fmt"
	"math/rand/v2"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/round"
	"github.com/zeusync/skirmish/internal/game/selection"
)

// Result is a finished round plus the points it committed.
type Result struct {
	round.Result
	Awarded map[roster.ParticipantID]int
}

type Session struct {
	ctrl    *round.Controller
	tracker *selection.Tracker
	modes   []round.Mode
	rng     *rand.Rand
	logger  log.Log
	subs    *bus.Subscriptions

	played int
}

// NewSession wires the tracker to count every round the controller
// activates. Close releases that subscription.
func NewSession(ctrl *round.Controller, tracker *selection.Tracker, b bus.EventBus, modes []round.Mode, rng *rand.Rand, logger log.Log) (*Session, error) {
	if len(modes) == 0 {
		return nil, selection.ErrNoVariants
	}
	s := &Session{
		ctrl:    ctrl,
		tracker: tracker,
		modes:   modes,
		rng:     rng,
		logger:  logger,
		subs:    bus.NewSubscriptions(b),
	}
	if err := tracker.Watch(s.subs); err != nil {
		return nil, fmt.Errorf("battle: watch activations: %w", err)
	}
	return s, nil
}

func modeID(m round.Mode) int {
	return int(m.ID())
}

func (s *Session) Modes() []round.Mode {
	return s.modes
}

// Next starts a round of one of the least played variants. done runs once
// the round is over and its points are committed.
func (s *Session) Next(done func(Result)) error {
	mode, err := selection.Next(s.tracker, s.rng, s.modes, modeID)
	if err != nil {
		return err
	}
	s.logger.Info("next round", log.String("mode", mode.Title()), log.Int("played", s.tracker.Count(modeID(mode))))

	return s.ctrl.Start(mode, func(res round.Result) {
		awarded := s.ctrl.Scores().CommitPending()
		s.played++
		if done != nil {
			done(Result{Result: res, Awarded: awarded})
		}
	})
}

// Skip abandons the current round without points.
func (s *Session) Skip() bool {
	return s.ctrl.Skip()
}

// Stop drops the current round immediately along with uncommitted points.
func (s *Session) Stop() {
	s.ctrl.Reset()
	s.ctrl.Scores().DiscardPending()
}

// Played returns how many rounds this session completed.
func (s *Session) Played() int {
	return s.played
}

func (s *Session) Totals() map[roster.ParticipantID]int {
	return s.ctrl.Scores().Totals()
}

func (s *Session) Close() error {
	s.Stop()
	return s.subs.CancelAll()
}
