package spawn

import (
	"time"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
)

// Dummy keeps a single practice instance alive, respawning it after every
// destruction until stopped.
type Dummy struct {
	participant roster.Participant
	manager     *Manager
}

func NewDummy(p roster.Participant, slots SlotSource, sched *schedule.Scheduler, publisher *notify.Publisher, logger log.Log, delay time.Duration) (*Dummy, error) {
	r, err := roster.New(p)
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DummyRespawnDelay
	}
	return &Dummy{
		participant: p,
		manager: NewManager(r, slots, sched, publisher, logger, Options{
			Team:         "practice",
			RespawnDelay: delay,
			Respawn:      true,
		}),
	}, nil
}

func (d *Dummy) Start() {
	d.manager.SetShouldRespawn(true)
	d.manager.SpawnAll([]roster.Participant{d.participant})
}

// Stop cancels a pending respawn and destroys the instance without
// triggering another one.
func (d *Dummy) Stop() {
	d.manager.SetShouldRespawn(false)
	d.manager.CleanupAll()
}

// Instance returns the live dummy, if any.
func (d *Dummy) Instance() (*Instance, bool) {
	return d.manager.InstanceFor(d.participant.ID)
}

// Kill destroys the live dummy through the normal removal path.
func (d *Dummy) Kill() bool {
	return d.manager.Eliminate(d.participant.ID)
}

// Respawns returns how many times the dummy came back.
func (d *Dummy) Respawns() int {
	if n := d.manager.Spawned() - 1; n > 0 {
		return n
	}
	return 0
}

func (d *Dummy) Manager() *Manager {
	return d.manager
}
