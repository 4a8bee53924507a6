package headless

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skirmish/internal/config"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/round"
	"github.com/zeusync/skirmish/internal/game/spawn"
)

func TestArenaProviderBuildsFreshArenas(t *testing.T) {
	sched := schedule.New()
	p := NewArenaProvider(config.Default().Arenas, sched, 300*time.Millisecond, log.NewNop())
	assert.Equal(t, []string{"courtyard", "crater"}, p.Names())

	first, err := p.Load("crater")
	require.NoError(t, err)
	first.Dispose()
	second, err := p.Load("crater")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.NoError(t, second.Err())

	_, err = p.Load("moon")
	assert.Error(t, err)

	done := false
	p.AnimateIn(second, func() { done = true })
	sched.Advance(299 * time.Millisecond)
	assert.False(t, done)
	sched.Advance(time.Millisecond)
	assert.True(t, done)
}

func TestPresenterIntroAndTimer(t *testing.T) {
	sched := schedule.New()
	p := NewPresenter(sched, 2*time.Second, log.NewNop())

	finished := false
	p.ShowIntro("GHOST MODE", []round.Icon{{Kind: round.IconPlayer}, {Kind: round.IconSwords}}, func() { finished = true })
	sched.Advance(time.Second)
	assert.False(t, finished)
	sched.Advance(time.Second)
	assert.True(t, finished)
	assert.Equal(t, 1, p.Intros())

	_, shown := p.TimerRemaining()
	assert.False(t, shown)
	p.ShowTimer(15 * time.Second)
	sched.Advance(5 * time.Second)
	left, shown := p.TimerRemaining()
	assert.True(t, shown)
	assert.Equal(t, 10*time.Second, left)
	p.HideTimer()
	_, shown = p.TimerRemaining()
	assert.False(t, shown)

	assert.Equal(t, 1.0, p.Alpha(3))
	p.SetAlpha(3, 0.65)
	assert.Equal(t, 0.65, p.Alpha(3))
}

type simulation struct {
	sched   *schedule.Scheduler
	bus     bus.EventBus
	players *spawn.Manager
	ctrl    *round.Controller
	driver  *Driver
	results []round.Result
}

func newSimulation(t *testing.T, rates config.SimConfig) *simulation {
	t.Helper()
	cfg := config.Default()
	r, err := roster.New(cfg.RosterParticipants()[:3]...)
	require.NoError(t, err)

	logger := log.NewNop()
	s := &simulation{sched: schedule.New(), bus: bus.New()}
	pub := notify.NewPublisher(s.bus, "test", logger)
	stage := arena.NewStage(NewArenaProvider(cfg.Arenas, s.sched, 0, logger))
	s.players = spawn.NewManager(r, func() []arena.Slot { return stage.Slots(arena.PlayerSlots) },
		s.sched, pub, logger, spawn.Options{Team: "players"})
	rng := rand.New(rand.NewPCG(3, 4))
	s.ctrl = round.NewController(round.Deps{
		Roster:    r,
		Players:   s.players,
		Stage:     stage,
		Presenter: NewPresenter(s.sched, 0, logger),
		Scheduler: s.sched,
		Publisher: pub,
		Scores:    round.NewScoreboard(),
		Rand:      rng,
		Logger:    logger,
	}, round.Options{})
	s.driver = NewDriver(s.ctrl, s.players, pub, rng, rates)
	return s
}

func (s *simulation) start(t *testing.T, mode round.Mode) {
	require.NoError(t, s.ctrl.Start(mode, func(res round.Result) { s.results = append(s.results, res) }))
	require.Equal(t, round.Active, s.ctrl.State())
}

func TestDriverLethalShotsEndGhostRound(t *testing.T) {
	s := newSimulation(t, config.SimConfig{ShotRate: 1000, HitChance: 1})
	s.start(t, round.NewGhost(round.DefaultGhostConfig()))

	s.driver.Step(16 * time.Millisecond)

	require.Len(t, s.results, 1)
	assert.Len(t, s.results[0].Winners, 1)
	assert.Equal(t, round.Idle, s.ctrl.State())
}

func TestDriverHarmlessShotsPassTheMarker(t *testing.T) {
	s := newSimulation(t, config.SimConfig{ShotRate: 1000, HitChance: 1})
	var changes int
	_, err := s.bus.Subscribe(notify.TypeMarkerChanged, func(bus.Event) error {
		changes++
		return nil
	})
	require.NoError(t, err)

	s.start(t, round.NewTag(round.TagConfig{Fuse: time.Minute}))
	require.Equal(t, 1, changes)

	s.driver.Step(16 * time.Millisecond)
	assert.Equal(t, 3, s.players.Count(), "tag hits do no damage")
	assert.GreaterOrEqual(t, changes, 2)
	assert.Empty(t, s.results)
}

func TestDriverIdleOutsideActivePhase(t *testing.T) {
	s := newSimulation(t, config.SimConfig{ShotRate: 1000, HitChance: 1, EliminationRate: 1000})
	var events int
	_, err := s.bus.SubscribeAll(func(bus.Event) error {
		events++
		return nil
	})
	require.NoError(t, err)

	s.driver.Step(time.Second)
	assert.Zero(t, events)
}

func TestChance(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	assert.False(t, Chance(rng, 0, time.Second))
	assert.False(t, Chance(rng, 5, 0))
	assert.True(t, Chance(rng, 1, time.Second))
}
