package headless

import (
	"math/rand/v2"
	"time"

	"github.com/zeusync/skirmish/internal/config"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/round"
	"github.com/zeusync/skirmish/internal/game/spawn"
)

// Driver stands in for input devices and AI: each frame it rolls dashes,
// shots, hits and hazard eliminations for every live participant.
type Driver struct {
	ctrl      *round.Controller
	players   *spawn.Manager
	publisher *notify.Publisher
	rng       *rand.Rand
	rates     config.SimConfig
}

func NewDriver(ctrl *round.Controller, players *spawn.Manager, publisher *notify.Publisher, rng *rand.Rand, rates config.SimConfig) *Driver {
	return &Driver{
		ctrl:      ctrl,
		players:   players,
		publisher: publisher.WithSource("driver"),
		rng:       rng,
		rates:     rates,
	}
}

// Chance rolls an event happening at rate per second within dt.
func Chance(rng *rand.Rand, rate float64, dt time.Duration) bool {
	if rate <= 0 || dt <= 0 {
		return false
	}
	return rng.Float64() < rate*dt.Seconds()
}

// Step simulates dt of play. It does nothing outside the active phase.
func (d *Driver) Step(dt time.Duration) {
	for _, id := range d.players.Alive() {
		if d.ctrl.State() != round.Active {
			return
		}
		if !d.players.IsAlive(id) {
			continue
		}
		if Chance(d.rng, d.rates.DashRate, dt) {
			d.publisher.Emit(notify.Dashed{Participant: id})
		}
		if Chance(d.rng, d.rates.ShotRate, dt) {
			d.shoot(id)
		}
		if Chance(d.rng, d.rates.EliminationRate, dt) {
			d.players.Eliminate(id)
		}
	}
}

func (d *Driver) shoot(id roster.ParticipantID) {
	rules := d.ctrl.Rules()
	charged := rules.CanCharge(id) && d.rng.IntN(2) == 0
	d.publisher.Emit(notify.Shot{Participant: id, Charged: charged})

	if d.ctrl.State() != round.Active || d.rng.Float64() >= d.rates.HitChance {
		return
	}
	target, ok := d.pickTarget(id)
	if !ok {
		return
	}
	d.publisher.Emit(notify.Hit{Source: id, Target: target, Damage: rules.LaserDamage})
	if rules.LaserDamage > 0 && d.ctrl.State() == round.Active {
		d.players.Eliminate(target)
	}
}

func (d *Driver) pickTarget(shooter roster.ParticipantID) (roster.ParticipantID, bool) {
	alive := d.players.Alive()
	others := alive[:0]
	for _, id := range alive {
		if id != shooter {
			others = append(others, id)
		}
	}
	if len(others) == 0 {
		return roster.NoParticipant, false
	}
	return others[d.rng.IntN(len(others))], true
}
