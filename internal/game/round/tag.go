package round

import (
	"time"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/spawn"
)

const explosiveAttachment = "tag.explosive"

type TagConfig struct {
	Fuse   time.Duration
	Arenas []string
}

func DefaultTagConfig() TagConfig {
	return TagConfig{Fuse: 10 * time.Second}
}

// Tag hands one participant a marker with a lit fuse. The holder passes it
// on by hitting someone, fuse and all, and is eliminated if it burns down.
// Last one standing scores.
type Tag struct {
	cfg TagConfig
}

func NewTag(cfg TagConfig) *Tag {
	return &Tag{cfg: cfg}
}

func (*Tag) ID() ModeID { return TagID }

func (*Tag) Title() string { return "HOT POTATO - WITH BOMBS" }

func (t *Tag) Arenas() []string { return t.cfg.Arenas }

func (*Tag) Icons(participants []roster.Participant) []Icon {
	return VersusIcons(participants)
}

func (t *Tag) Activate(r *Round) {
	rules := r.Rules()
	rules.LaserDamage = 0
	rules.AllowChargingLasers = false
	rules.ShowShields = false
	rules.DashAttackAllowed = func(attacker roster.ParticipantID) bool {
		return attacker != r.Special()
	}

	subs := r.Subscriptions()
	if err := notify.On(subs, func(ev notify.Hit) { t.handleHit(r, ev) }); err != nil {
		r.Logger().Error("failed to subscribe", log.Error(err))
	}
	if err := notify.On(subs, func(ev notify.Removed) { t.handleRemoved(r, ev) }); err != nil {
		r.Logger().Error("failed to subscribe", log.Error(err))
	}

	if r.Players().Count() <= 1 {
		r.Finish(r.Players().Alive())
		return
	}
	t.setHolder(r, t.pickRandom(r), t.cfg.Fuse)
}

func (t *Tag) Cleanup(r *Round) {
	for _, inst := range r.Players().Active() {
		if a, ok := inst.Detach(explosiveAttachment); ok {
			a.Dispose()
		}
	}
}

// Holder returns the current marker holder of r.
func (t *Tag) Holder(r *Round) roster.ParticipantID {
	return r.Special()
}

// FuseLeft returns the time left on the holder's fuse.
func (t *Tag) FuseLeft(r *Round) time.Duration {
	inst, ok := r.Players().InstanceFor(r.Special())
	if !ok {
		return 0
	}
	if e, ok := explosiveOf(inst); ok {
		return e.timer.Remaining()
	}
	return 0
}

func (t *Tag) pickRandom(r *Round) roster.ParticipantID {
	alive := r.Players().Alive()
	if len(alive) == 0 {
		return roster.NoParticipant
	}
	return alive[r.Rand().IntN(len(alive))]
}

func (t *Tag) setHolder(r *Round, id roster.ParticipantID, fuse time.Duration) {
	if id == roster.NoParticipant {
		r.Logger().Warn("cannot hand the marker to nobody")
		return
	}
	if id == r.Special() {
		r.Logger().Warn("participant already holds the marker", log.String("participant", id.String()))
		return
	}
	inst, ok := r.Players().InstanceFor(id)
	if !ok {
		r.Logger().Warn("marker target has no live instance", log.String("participant", id.String()))
		return
	}

	previous := r.Special()
	r.SetSpecial(id)
	r.Rules().ChargingWhitelist = []roster.ParticipantID{id}

	e := &explosive{}
	e.timer = r.After(fuse, func() {
		r.Logger().Debug("fuse burnt out", log.String("participant", id.String()))
		r.Players().Eliminate(id)
	})
	inst.Attach(explosiveAttachment, e)

	r.Publisher().Emit(notify.MarkerChanged{Round: r.ID(), Previous: previous, Holder: id, Fuse: fuse})
}

func (t *Tag) handleHit(r *Round, ev notify.Hit) {
	if ev.Source == ev.Target || ev.Source != r.Special() {
		return
	}
	if !r.Players().IsAlive(ev.Target) {
		return
	}
	holder, ok := r.Players().InstanceFor(ev.Source)
	if !ok {
		return
	}
	e, ok := explosiveOf(holder)
	if !ok {
		r.Logger().Error("marker holder carries no explosive", log.String("participant", ev.Source.String()))
		return
	}
	left := e.timer.Remaining()
	holder.Detach(explosiveAttachment)
	e.Dispose()
	t.setHolder(r, ev.Target, left)
}

func (t *Tag) handleRemoved(r *Round, ev notify.Removed) {
	players := r.Players()
	if ev.Team != players.Team() {
		return
	}
	if players.Count() > 1 {
		if !players.IsAlive(r.Special()) {
			t.setHolder(r, t.pickRandom(r), t.cfg.Fuse)
		}
		return
	}
	r.Finish(players.Alive())
}

type explosive struct {
	timer *schedule.Task
}

func (e *explosive) Dispose() {
	e.timer.Cancel()
}

func explosiveOf(inst *spawn.Instance) (*explosive, bool) {
	a, ok := inst.Attachment(explosiveAttachment)
	if !ok {
		return nil, false
	}
	e, ok := a.(*explosive)
	return e, ok
}
