package battle

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
	"github.com/zeusync/skirmish/internal/game/headless"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/round"
	"github.com/zeusync/skirmish/internal/game/selection"
	"github.com/zeusync/skirmish/internal/game/spawn"
	"github.com/zeusync/skirmish/internal/storage"
)

type env struct {
	sched   *schedule.Scheduler
	ctrl    *round.Controller
	tracker *selection.Tracker
	store   *storage.MemoryStore
	session *Session
}

func newEnv(t *testing.T, preload string) *env {
	t.Helper()
	cfg := config.Default()
	logger := log.NewNop()
	b := bus.New()
	pub := notify.NewPublisher(b, "battle", logger)
	e := &env{sched: schedule.New(), store: storage.NewMemoryStore()}
	if preload != "" {
		require.NoError(t, e.store.Save(selection.Key, preload))
	}

	r, err := roster.New(cfg.RosterParticipants()...)
	require.NoError(t, err)
	stage := arena.NewStage(headless.NewArenaProvider(cfg.Arenas, e.sched, 300*time.Millisecond, logger))
	players := spawn.NewManager(r, func() []arena.Slot { return stage.Slots(arena.PlayerSlots) },
		e.sched, pub, logger, spawn.Options{Team: "players"})
	rng := rand.New(rand.NewPCG(9, 9))
	e.ctrl = round.NewController(round.Deps{
		Roster:    r,
		Players:   players,
		Stage:     stage,
		Presenter: headless.NewPresenter(e.sched, time.Second, logger),
		Scheduler: e.sched,
		Publisher: pub,
		Scores:    round.NewScoreboard(),
		Rand:      rng,
		Logger:    logger,
	}, round.Options{})

	e.tracker, err = selection.NewTracker(e.store, pub, logger)
	require.NoError(t, err)
	modes := []round.Mode{
		round.NewSurvival(cfg.SurvivalMode()),
		round.NewGhost(cfg.GhostMode()),
		round.NewTag(cfg.TagMode()),
	}
	e.session, err = NewSession(e.ctrl, e.tracker, b, modes, rng, logger)
	require.NoError(t, err)
	return e
}

// settle advances past arena animation and intro.
func (e *env) settle() {
	e.sched.Advance(2 * time.Second)
}

func TestNextPlaysLeastPlayedVariant(t *testing.T) {
	e := newEnv(t, `{"dataPoints":[{"id":1,"count":1},{"id":2,"count":1}]}`)

	require.NoError(t, e.session.Next(nil))
	assert.Equal(t, round.LoadingArena, e.ctrl.State())
	e.settle()

	require.Equal(t, round.Active, e.ctrl.State())
	assert.Equal(t, round.TagID, e.ctrl.Current().Mode().ID())
	assert.Equal(t, 1, e.tracker.Count(int(round.TagID)))
}

func TestSessionRotatesThroughVariants(t *testing.T) {
	e := newEnv(t, "")
	var results []Result
	seen := map[round.ModeID]bool{}

	for i := 0; i < 3; i++ {
		require.NoError(t, e.session.Next(func(r Result) { results = append(results, r) }))
		e.settle()
		seen[e.ctrl.Current().Mode().ID()] = true
		require.True(t, e.session.Skip())
		e.settle()
	}

	assert.Len(t, seen, 3)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Skipped)
		assert.Empty(t, r.Awarded)
	}
	assert.Equal(t, 3, e.session.Played())
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, e.tracker.Counts())
}

func TestFinishedRoundCommitsPoints(t *testing.T) {
	e := newEnv(t, "")
	var got Result
	require.NoError(t, e.session.Next(func(r Result) { got = r }))
	e.settle()

	require.True(t, e.ctrl.Current().Finish([]roster.ParticipantID{2}))
	e.settle()

	assert.Equal(t, map[roster.ParticipantID]int{2: 1}, got.Awarded)
	assert.Equal(t, 1, e.session.Totals()[2])
	assert.Equal(t, round.Idle, e.ctrl.State())
}

func TestNextWhileRunningFails(t *testing.T) {
	e := newEnv(t, "")
	require.NoError(t, e.session.Next(nil))
	assert.ErrorIs(t, e.session.Next(nil), round.ErrRoundInProgress)
}

func TestCloseStopsRoundAndTracking(t *testing.T) {
	e := newEnv(t, "")
	require.NoError(t, e.session.Next(nil))
	e.settle()
	require.NoError(t, e.session.Close())

	assert.Equal(t, round.Idle, e.ctrl.State())
	assert.Zero(t, e.sched.Pending())
	total := 0
	for _, c := range e.tracker.Counts() {
		total += c
	}
	assert.Equal(t, 1, total)
}
