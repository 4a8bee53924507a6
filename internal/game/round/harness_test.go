package round

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/spawn"
)

type fakePresenter struct {
	holdIntro   bool
	titles      []string
	icons       [][]Icon
	pendingDone []func()
	alpha       map[roster.ParticipantID]float64
	timer       time.Duration
	timerShown  bool
}

func (p *fakePresenter) ShowIntro(title string, icons []Icon, done func()) {
	p.titles = append(p.titles, title)
	p.icons = append(p.icons, icons)
	if p.holdIntro {
		p.pendingDone = append(p.pendingDone, done)
		return
	}
	done()
}

func (p *fakePresenter) finishIntro() {
	pending := p.pendingDone
	p.pendingDone = nil
	for _, done := range pending {
		done()
	}
}

func (p *fakePresenter) SetAlpha(id roster.ParticipantID, alpha float64) {
	p.alpha[id] = alpha
}

func (p *fakePresenter) ShowTimer(total time.Duration) {
	p.timer = total
	p.timerShown = true
}

func (p *fakePresenter) HideTimer() {
	p.timerShown = false
}

type fakeProvider struct {
	holdOut    bool
	loads      []string
	pendingOut []func()
}

func (p *fakeProvider) Load(name string) (*arena.Arena, error) {
	if name != "pit" {
		return nil, errors.New("unknown arena")
	}
	p.loads = append(p.loads, name)
	players := []arena.Vec3{{X: -5}, {X: 5}, {Z: -5}, {Z: 5}}
	ai := []arena.Vec3{{X: -10}, {X: 10}, {Z: 10}}
	return arena.New(name, players, ai, nil), nil
}

func (p *fakeProvider) Names() []string { return []string{"pit"} }

func (p *fakeProvider) AnimateIn(_ *arena.Arena, done func()) { done() }

func (p *fakeProvider) AnimateOut(_ *arena.Arena, done func()) {
	if p.holdOut {
		p.pendingOut = append(p.pendingOut, done)
		return
	}
	done()
}

func (p *fakeProvider) finishOut() {
	pending := p.pendingOut
	p.pendingOut = nil
	for _, done := range pending {
		done()
	}
}

type harness struct {
	t         *testing.T
	sched     *schedule.Scheduler
	bus       bus.EventBus
	roster    *roster.Roster
	players   *spawn.Manager
	presenter *fakePresenter
	provider  *fakeProvider
	scores    *Scoreboard
	ctrl      *Controller
	logs      *observer.ObservedLogs
	events    []string
	results   []Result
}

func newHarness(t *testing.T, participants int, opts Options) *harness {
	t.Helper()
	members := make([]roster.Participant, participants)
	for i := range members {
		members[i] = roster.Participant{
			ID:   roster.ParticipantID(i + 1),
			Name: fmt.Sprintf("p%d", i+1),
			Skin: roster.Skin{Name: "default", Color: fmt.Sprintf("#%02x0000", i)},
		}
		if i%2 == 0 {
			members[i].Input = roster.Device(fmt.Sprintf("pad-%d", i))
		}
	}
	r, err := roster.New(members...)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	logger := log.Wrap(zap.New(core), log.LevelDebug)

	h := &harness{
		t:         t,
		sched:     schedule.New(),
		bus:       bus.New(),
		roster:    r,
		presenter: &fakePresenter{alpha: make(map[roster.ParticipantID]float64)},
		provider:  &fakeProvider{},
		scores:    NewScoreboard(),
		logs:      logs,
	}
	_, err = h.bus.SubscribeAll(func(ev bus.Event) error {
		h.events = append(h.events, ev.Type())
		return nil
	})
	require.NoError(t, err)

	publisher := notify.NewPublisher(h.bus, "round", logger)
	stage := arena.NewStage(h.provider)
	h.players = spawn.NewManager(r, func() []arena.Slot { return stage.Slots(arena.PlayerSlots) },
		h.sched, publisher.WithSource("players"), logger, spawn.Options{Team: "players"})

	h.ctrl = NewController(Deps{
		Roster:    r,
		Players:   h.players,
		Stage:     stage,
		Presenter: h.presenter,
		Scheduler: h.sched,
		Publisher: publisher,
		Scores:    h.scores,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Logger:    logger,
	}, opts)
	return h
}

func (h *harness) start(mode Mode) *Round {
	h.t.Helper()
	require.NoError(h.t, h.ctrl.Start(mode, func(res Result) { h.results = append(h.results, res) }))
	return h.ctrl.Current()
}

func (h *harness) count(eventType string) int {
	n := 0
	for _, e := range h.events {
		if e == eventType {
			n++
		}
	}
	return n
}

func (h *harness) logCount(level zapcore.Level) int {
	return h.logs.FilterLevelExact(level).Len()
}

func (h *harness) publish(p notify.Payload) {
	require.NoError(h.t, h.bus.Publish(bus.NewEvent(p.EventType(), "test", p)))
}

// stubMode records its lifecycle calls and lets tests act on the round.
type stubMode struct {
	activated int
	cleaned   int
	onActive  func(r *Round)
}

func (*stubMode) ID() ModeID { return 99 }

func (*stubMode) Title() string { return "STUB" }

func (*stubMode) Icons(ps []roster.Participant) []Icon { return VersusIcons(ps) }

func (m *stubMode) Activate(r *Round) {
	m.activated++
	if m.onActive != nil {
		m.onActive(r)
	}
}

func (m *stubMode) Cleanup(*Round) { m.cleaned++ }
