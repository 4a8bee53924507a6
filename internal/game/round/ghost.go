package round

import (
	"time"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/spawn"
)

const ghostAttachment = "ghost"

type GhostConfig struct {
	// AlphaLevel is how visible a ghost becomes when it gives itself away.
	AlphaLevel   float64
	DashDuration time.Duration
	ShotDuration time.Duration
	Arenas       []string
}

func DefaultGhostConfig() GhostConfig {
	return GhostConfig{
		AlphaLevel:   0.65,
		DashDuration: 650 * time.Millisecond,
		ShotDuration: 650 * time.Millisecond,
	}
}

// Ghost makes every participant invisible. Dashing briefly reveals the
// dasher; any shot briefly reveals everyone. Last one standing scores.
type Ghost struct {
	cfg    GhostConfig
	addOns map[roster.ParticipantID]*ghostAddOn
}

func NewGhost(cfg GhostConfig) *Ghost {
	return &Ghost{cfg: cfg, addOns: make(map[roster.ParticipantID]*ghostAddOn)}
}

func (*Ghost) ID() ModeID { return GhostID }

func (*Ghost) Title() string { return "GHOST MODE" }

func (g *Ghost) Arenas() []string { return g.cfg.Arenas }

func (*Ghost) Icons(participants []roster.Participant) []Icon {
	return VersusIcons(participants)
}

// Alpha returns the current visibility of a participant, or false if it
// has no ghost add-on.
func (g *Ghost) Alpha(id roster.ParticipantID, now time.Duration) (float64, bool) {
	a, ok := g.addOns[id]
	if !ok {
		return 0, false
	}
	return a.alphaAt(now), true
}

func (g *Ghost) Activate(r *Round) {
	g.disposeAll()
	for _, inst := range r.Players().Active() {
		g.attach(r, inst)
	}

	subs := r.Subscriptions()
	errs := []error{
		// respawned participants come back as ghosts too
		notify.On(subs, func(ev notify.Spawned) {
			if ev.Team != r.Players().Team() {
				return
			}
			if inst, ok := r.Players().InstanceFor(ev.Participant.ID); ok {
				g.attach(r, inst)
			}
		}),
		notify.On(subs, func(ev notify.Dashed) {
			if a, ok := g.addOns[ev.Participant]; ok {
				a.pulse(g.cfg.AlphaLevel, g.cfg.DashDuration)
			}
		}),
		notify.On(subs, func(notify.Shot) {
			for _, id := range r.Players().Alive() {
				if a, ok := g.addOns[id]; ok {
					a.pulse(g.cfg.AlphaLevel, g.cfg.ShotDuration)
				}
			}
		}),
		notify.On(subs, func(ev notify.Removed) {
			if ev.Team != r.Players().Team() {
				return
			}
			delete(g.addOns, ev.Participant.ID)
			g.checkFinished(r)
		}),
	}
	for _, err := range errs {
		if err != nil {
			r.Logger().Error("failed to subscribe", log.Error(err))
		}
	}
	g.checkFinished(r)
}

func (g *Ghost) attach(r *Round, inst *spawn.Instance) {
	id := inst.Participant().ID
	if prev, ok := g.addOns[id]; ok {
		prev.Dispose()
	}
	a := &ghostAddOn{id: id, round: r, presenter: r.Presenter()}
	a.hide()
	g.addOns[id] = a
	inst.Attach(ghostAttachment, a)
}

func (g *Ghost) checkFinished(r *Round) {
	if r.Players().Count() > 1 {
		return
	}
	r.Finish(r.Players().Alive())
}

func (g *Ghost) Cleanup(*Round) {
	g.disposeAll()
}

func (g *Ghost) disposeAll() {
	for id, a := range g.addOns {
		a.Dispose()
		delete(g.addOns, id)
	}
}

// ghostAddOn drives one participant's visibility. After a pulse the alpha
// fades linearly back to zero over the pulse duration.
type ghostAddOn struct {
	id        roster.ParticipantID
	round     *Round
	presenter Presenter

	peak     float64
	start    time.Duration
	duration time.Duration
	fade     *schedule.Task
	disposed bool
}

func (a *ghostAddOn) hide() {
	a.peak = 0
	a.presenter.SetAlpha(a.id, 0)
}

func (a *ghostAddOn) pulse(level float64, duration time.Duration) {
	if a.disposed {
		return
	}
	a.fade.Cancel()
	a.peak = level
	a.duration = duration
	a.start = a.round.ctrl.scheduler.Now()
	a.presenter.SetAlpha(a.id, level)
	a.fade = a.round.After(duration, a.hide)
}

func (a *ghostAddOn) alphaAt(now time.Duration) float64 {
	if !a.fade.Active() || a.duration <= 0 {
		return 0
	}
	elapsed := now - a.start
	if elapsed >= a.duration {
		return 0
	}
	return a.peak * (1 - float64(elapsed)/float64(a.duration))
}

// Dispose restores full visibility.
func (a *ghostAddOn) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	a.fade.Cancel()
	a.presenter.SetAlpha(a.id, 1)
}
