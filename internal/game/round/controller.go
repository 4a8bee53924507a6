// Package round drives a single round through its lifecycle:
//
//	Idle -> LoadingArena -> Introducing -> Active -> Finishing -> Idle
//
// The controller loads the arena, plays the intro, spawns the registered
// participants and hands the round to its Mode. Finishing awards points,
// releases every subscription and task the round created, and animates the
// arena out before returning to Idle.
package round

import (
	"fmt"
	"math/rand/v2"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/spawn"
)

type State int

const (
	Idle State = iota
	LoadingArena
	Introducing
	Active
	Finishing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingArena:
		return "loading_arena"
	case Introducing:
		return "introducing"
	case Active:
		return "active"
	case Finishing:
		return "finishing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Deps struct {
	Roster    *roster.Roster
	Players   *spawn.Manager
	Stage     *arena.Stage
	Presenter Presenter
	Scheduler *schedule.Scheduler
	Publisher *notify.Publisher
	Scores    *Scoreboard
	Rand      *rand.Rand
	Logger    log.Log
}

type Options struct {
	SkipIntro bool
}

type Controller struct {
	roster    *roster.Roster
	players   *spawn.Manager
	stage     *arena.Stage
	presenter Presenter
	scheduler *schedule.Scheduler
	publisher *notify.Publisher
	scores    *Scoreboard
	rng       *rand.Rand
	logger    log.Log
	opts      Options

	state   State
	seq     uint64
	current *Round
	done    func(Result)
}

func NewController(deps Deps, opts Options) *Controller {
	return &Controller{
		roster:    deps.Roster,
		players:   deps.Players,
		stage:     deps.Stage,
		presenter: deps.Presenter,
		scheduler: deps.Scheduler,
		publisher: deps.Publisher,
		scores:    deps.Scores,
		rng:       deps.Rand,
		logger:    deps.Logger,
		opts:      opts,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Current returns the round in progress, or nil when idle.
func (c *Controller) Current() *Round {
	return c.current
}

// Rules returns the rules in force: the active round's overrides, or the
// defaults between rounds.
func (c *Controller) Rules() Rules {
	if c.current != nil && c.state == Active {
		return c.current.rules
	}
	return DefaultRules()
}

func (c *Controller) Scores() *Scoreboard {
	return c.scores
}

// Start begins a round of mode. done is called once the round is back to
// Idle, unless the controller is Reset first.
func (c *Controller) Start(mode Mode, done func(Result)) error {
	if mode == nil {
		return ErrNoMode
	}
	if c.state != Idle {
		return fmt.Errorf("%w: %s", ErrRoundInProgress, c.state)
	}
	names := c.arenaNames(mode)
	if len(names) == 0 {
		return fmt.Errorf("%w for %s", ErrNoArena, mode.Title())
	}
	name := names[c.rng.IntN(len(names))]

	// Leftovers of whatever ran before never carry into a round.
	c.players.CleanupAll()

	a, err := c.stage.Load(name)
	if err != nil {
		return fmt.Errorf("round: %w", err)
	}

	c.seq++
	r := newRound(c, c.seq, mode, a)
	c.current = r
	c.done = done
	c.state = LoadingArena
	r.logger.Info("round starting", log.String("arena", name))

	c.stage.Provider().AnimateIn(a, func() {
		if c.current != r || c.state != LoadingArena {
			return
		}
		c.introduce(r)
	})
	return nil
}

// Skip ends the current round without awarding points. It returns false if
// no round is running or it is already finishing.
func (c *Controller) Skip() bool {
	if c.current == nil {
		return false
	}
	return c.finish(c.current, nil, true)
}

// Reset tears the current round down immediately, without animation and
// without calling its done callback.
func (c *Controller) Reset() {
	r := c.current
	if r == nil {
		return
	}
	r.finished = true
	c.current = nil
	c.done = nil
	c.teardown(r)
	c.stage.Unload()
	c.state = Idle
	r.logger.Info("round reset")
}

func (c *Controller) arenaNames(mode Mode) []string {
	if restricted, ok := mode.(ArenaRestricted); ok {
		if names := restricted.Arenas(); len(names) > 0 {
			return names
		}
	}
	return c.stage.Provider().Names()
}

func (c *Controller) introduce(r *Round) {
	c.state = Introducing
	if c.opts.SkipIntro {
		c.activate(r)
		return
	}
	c.presenter.ShowIntro(r.mode.Title(), r.mode.Icons(c.roster.All()), func() {
		if c.current != r || c.state != Introducing {
			return
		}
		c.activate(r)
	})
}

func (c *Controller) activate(r *Round) {
	c.state = Active
	c.players.SpawnAll(c.roster.All())
	r.activated = true
	r.logger.Info("round active", log.Int("participants", c.players.Count()))

	c.publisher.Emit(notify.RoundActivated{
		Round: r.id,
		Mode:  int(r.mode.ID()),
		Title: r.mode.Title(),
		Arena: r.arena.Name(),
	})
	r.mode.Activate(r)
}

func (c *Controller) finish(r *Round, winners []roster.ParticipantID, skipped bool) bool {
	if c.current != r || r.finished {
		return false
	}
	switch c.state {
	case Active:
	case LoadingArena, Introducing:
		if !skipped {
			return false
		}
	default:
		return false
	}

	r.finished = true
	r.skipped = skipped
	r.winners = append([]roster.ParticipantID(nil), winners...)
	c.state = Finishing

	for _, id := range r.winners {
		c.scores.IncrementPending(id, 1)
		c.publisher.Emit(notify.ScoreAwarded{Round: r.id, Participant: id, Points: 1})
	}
	c.publisher.Emit(notify.RoundFinished{
		Round:   r.id,
		Mode:    int(r.mode.ID()),
		Winners: r.winners,
		Skipped: skipped,
	})
	r.logger.Info("round finished",
		log.Any("winners", r.winners),
		log.Bool("skipped", skipped),
	)

	c.teardown(r)

	result := r.result()
	c.stage.Provider().AnimateOut(r.arena, func() {
		if c.current != r {
			return
		}
		c.stage.Unload()
		c.current = nil
		c.state = Idle
		if done := c.done; done != nil {
			c.done = nil
			done(result)
		}
	})
	return true
}

func (c *Controller) teardown(r *Round) {
	r.tasks.CancelAll()
	if err := r.subs.CancelAll(); err != nil {
		r.logger.Error("failed to release round subscriptions", log.Error(err))
	}
	if r.activated {
		r.mode.Cleanup(r)
	}
	r.rules = DefaultRules()
	r.special = roster.NoParticipant

	respawn := c.players.ShouldRespawn()
	c.players.SetShouldRespawn(false)
	c.players.CleanupAll()
	c.players.SetShouldRespawn(respawn)

	c.presenter.HideTimer()
}
