// Package spawn owns the live instances of participants: creating them on
// their arena slots, destroying them, and respawning them after a delay.
//
// A manager keeps at most one instance per participant. Removal through an
// instance's own destruction publishes notify.Removed exactly once and may
// schedule a respawn; the cleanup entry points drop bookkeeping first so the
// same destruction path sees nothing to remove and schedules nothing.
package spawn

import (
	"sort"
	"time"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/pkg/generic"
)

const (
	DefaultRespawnDelay = 2 * time.Second
	DummyRespawnDelay   = 3 * time.Second
)

// SlotSource returns the slot list of the currently loaded arena.
type SlotSource func() []arena.Slot

// Substitutor picks the AI that drives a participant registered without input.
type Substitutor func(p roster.Participant) roster.InputSource

// DefaultSubstitute drives every input-less participant with the same AI.
func DefaultSubstitute(roster.Participant) roster.InputSource {
	return roster.AIController("substitute")
}

type Options struct {
	// Team names the managed group in removal notifications.
	Team         string
	RespawnDelay time.Duration
	Respawn      bool
	Substitute   Substitutor
}

type Manager struct {
	roster    *roster.Roster
	slots     SlotSource
	respawns  *schedule.Group
	publisher *notify.Publisher
	logger    log.Log
	opts      Options

	shouldRespawn bool
	active        map[roster.ParticipantID]*Instance
	pool          *generic.Pool[attachmentSet]
	nextID        uint64
	spawned       int
}

// NewManager returns a manager placing the participants of r on the slots
// returned by slots, ordered by their roster index.
func NewManager(r *roster.Roster, slots SlotSource, sched *schedule.Scheduler, publisher *notify.Publisher, logger log.Log, opts Options) *Manager {
	if opts.RespawnDelay <= 0 {
		opts.RespawnDelay = DefaultRespawnDelay
	}
	if opts.Substitute == nil {
		opts.Substitute = DefaultSubstitute
	}
	return &Manager{
		roster:        r,
		slots:         slots,
		respawns:      sched.NewGroup(),
		publisher:     publisher,
		logger:        logger.With(log.String("team", opts.Team)),
		opts:          opts,
		shouldRespawn: opts.Respawn,
		active:        make(map[roster.ParticipantID]*Instance),
		pool:          generic.NewPool(newAttachmentSet, clearAttachmentSet),
	}
}

func (m *Manager) Team() string {
	return m.opts.Team
}

// Roster returns the participants this manager places.
func (m *Manager) Roster() *roster.Roster {
	return m.roster
}

// SpawnAll spawns every given participant that has no live instance.
func (m *Manager) SpawnAll(participants []roster.Participant) {
	for _, p := range participants {
		if _, ok := m.active[p.ID]; ok {
			continue
		}
		m.Spawn(p)
	}
}

// Spawn creates the participant's instance on its slot. It logs and returns
// nil if the participant already has one or is not in the roster.
func (m *Manager) Spawn(p roster.Participant) *Instance {
	if _, ok := m.active[p.ID]; ok {
		m.logger.Warn("participant already has a live instance", log.String("participant", p.ID.String()))
		return nil
	}
	index := m.roster.IndexOf(p.ID)
	if index < 0 {
		m.logger.Warn("participant is not registered", log.String("participant", p.ID.String()))
		return nil
	}
	slot := arena.SlotFor(m.slots(), index)

	driver, substitute := p.Input, false
	if driver == nil {
		driver, substitute = m.opts.Substitute(p), true
	}

	m.nextID++
	inst := newInstance(m.nextID, p, slot, driver, substitute, m.pool.Get(), m.handleDestroyed)
	m.active[p.ID] = inst
	m.spawned++

	m.logger.Debug("spawned",
		log.String("instance", inst.Name()),
		log.Int("slot", slot.Index),
		log.Bool("substitute", substitute),
	)
	m.publisher.Emit(notify.Spawned{Participant: p, Instance: inst.id, Team: m.opts.Team})
	return inst
}

// CleanupAll destroys every live instance. Nothing is published and no
// respawn is scheduled.
func (m *Manager) CleanupAll() {
	if len(m.active) == 0 {
		return
	}
	doomed := m.Active()
	clear(m.active)
	for _, inst := range doomed {
		inst.Destroy()
	}
}

// CleanupFor destroys one participant's instance without publishing or
// scheduling a respawn. The map entry goes first so the destruction hook
// finds nothing to remove.
func (m *Manager) CleanupFor(id roster.ParticipantID) bool {
	inst, ok := m.active[id]
	if !ok {
		return false
	}
	delete(m.active, id)
	inst.Destroy()
	return true
}

// Eliminate destroys the participant's instance through the normal removal
// path, as if gameplay had killed it.
func (m *Manager) Eliminate(id roster.ParticipantID) bool {
	inst, ok := m.active[id]
	if !ok {
		return false
	}
	inst.Destroy()
	return true
}

// SetShouldRespawn toggles respawning. Turning it off cancels every pending
// respawn; turning it on does not revive earlier removals.
func (m *Manager) SetShouldRespawn(enabled bool) {
	if m.shouldRespawn && !enabled {
		if n := m.respawns.CancelAll(); n > 0 {
			m.logger.Debug("cancelled pending respawns", log.Int("count", n))
		}
	}
	m.shouldRespawn = enabled
}

func (m *Manager) ShouldRespawn() bool {
	return m.shouldRespawn
}

// PendingRespawns returns the number of scheduled respawns.
func (m *Manager) PendingRespawns() int {
	return m.respawns.Len()
}

// Active returns live instances in roster order.
func (m *Manager) Active() []*Instance {
	out := make([]*Instance, 0, len(m.active))
	for _, inst := range m.active {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool {
		return m.roster.IndexOf(out[i].participant.ID) < m.roster.IndexOf(out[j].participant.ID)
	})
	return out
}

// Alive returns the ids of participants with a live instance, in roster order.
func (m *Manager) Alive() []roster.ParticipantID {
	active := m.Active()
	ids := make([]roster.ParticipantID, len(active))
	for i, inst := range active {
		ids[i] = inst.participant.ID
	}
	return ids
}

func (m *Manager) Count() int {
	return len(m.active)
}

func (m *Manager) IsAlive(id roster.ParticipantID) bool {
	_, ok := m.active[id]
	return ok
}

func (m *Manager) InstanceFor(id roster.ParticipantID) (*Instance, bool) {
	inst, ok := m.active[id]
	return inst, ok
}

// Spawned returns how many instances this manager has created in total.
func (m *Manager) Spawned() int {
	return m.spawned
}

func (m *Manager) handleDestroyed(inst *Instance) {
	p := inst.participant
	if current, ok := m.active[p.ID]; ok && current == inst {
		delete(m.active, p.ID)
		m.publisher.Emit(notify.Removed{Participant: p, Instance: inst.id, Team: m.opts.Team})
		// A handler may have switched respawning off.
		if m.shouldRespawn {
			m.scheduleRespawn(p)
		}
	}
	if set := inst.release(); set != nil {
		m.pool.Put(set)
	}
}

func (m *Manager) scheduleRespawn(p roster.Participant) {
	m.respawns.After(m.opts.RespawnDelay, func() {
		if !m.shouldRespawn || m.IsAlive(p.ID) {
			return
		}
		m.Spawn(p)
	})
}
