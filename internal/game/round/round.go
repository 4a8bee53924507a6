package round

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/spawn"
)

// Round is the transient state of one play-through. Everything a mode
// subscribes or schedules through it is released when the round ends.
type Round struct {
	id     uint64
	mode   Mode
	ctrl   *Controller
	arena  *arena.Arena
	subs   *bus.Subscriptions
	tasks  *schedule.Group
	rules  Rules
	logger log.Log

	special   roster.ParticipantID
	activated bool
	finished  bool
	skipped   bool
	winners   []roster.ParticipantID
}

func newRound(c *Controller, id uint64, mode Mode, a *arena.Arena) *Round {
	return &Round{
		id:      id,
		mode:    mode,
		ctrl:    c,
		arena:   a,
		subs:    bus.NewSubscriptions(c.publisher.Bus()),
		tasks:   c.scheduler.NewGroup(),
		rules:   DefaultRules(),
		logger:  c.logger.With(log.Uint64("round", id), log.String("mode", mode.Title())),
		special: roster.NoParticipant,
	}
}

func (r *Round) ID() uint64 {
	return r.id
}

func (r *Round) Mode() Mode {
	return r.mode
}

func (r *Round) Arena() *arena.Arena {
	return r.arena
}

// Players is the lifecycle manager of the registered participants.
func (r *Round) Players() *spawn.Manager {
	return r.ctrl.players
}

func (r *Round) Roster() *roster.Roster {
	return r.ctrl.roster
}

func (r *Round) Presenter() Presenter {
	return r.ctrl.presenter
}

func (r *Round) Publisher() *notify.Publisher {
	return r.ctrl.publisher
}

func (r *Round) Logger() log.Log {
	return r.logger
}

func (r *Round) Rand() *rand.Rand {
	return r.ctrl.rng
}

// Rules returns the round's overridable rules for modification.
func (r *Round) Rules() *Rules {
	return &r.rules
}

// Subscriptions collects bus subscriptions cancelled at teardown.
func (r *Round) Subscriptions() *bus.Subscriptions {
	return r.subs
}

// After schedules round-scoped work, cancelled at teardown.
func (r *Round) After(delay time.Duration, fn func()) *schedule.Task {
	return r.tasks.After(delay, fn)
}

// Special returns the participant holding the round's special role, or
// roster.NoParticipant.
func (r *Round) Special() roster.ParticipantID {
	return r.special
}

func (r *Round) SetSpecial(id roster.ParticipantID) {
	r.special = id
}

// NewManager creates a lifecycle manager for extra participants, such as an
// AI horde, placed on the given slots of the round's arena.
func (r *Round) NewManager(team string, participants *roster.Roster, kind arena.SlotKind, respawnDelay time.Duration) *spawn.Manager {
	return spawn.NewManager(participants,
		func() []arena.Slot { return r.arena.Slots(kind) },
		r.ctrl.scheduler,
		r.ctrl.publisher.WithSource(team),
		r.ctrl.logger,
		spawn.Options{Team: team, RespawnDelay: respawnDelay},
	)
}

// Finish ends the round and awards one point to each winner. Only the first
// call during the active phase has any effect.
func (r *Round) Finish(winners []roster.ParticipantID) bool {
	return r.ctrl.finish(r, winners, false)
}

func (r *Round) Finished() bool {
	return r.finished
}

func (r *Round) result() Result {
	return Result{
		Round:   r.id,
		Mode:    r.mode.ID(),
		Title:   r.mode.Title(),
		Arena:   r.arena.Name(),
		Winners: slices.Clone(r.winners),
		Skipped: r.skipped,
	}
}
