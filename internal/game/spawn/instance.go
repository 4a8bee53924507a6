package spawn

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/roster"
)

// FacingYaw is the orientation every instance spawns with, in degrees.
const FacingYaw = 180.0

// Attachment is a per-instance object owned by a round, such as a marker
// token or a visual add-on. It is disposed when the instance is destroyed.
type Attachment interface {
	Dispose()
}

// Instance is the live embodiment of a participant during a round. Gameplay
// state beyond identity, placement and attachments belongs to the host.
type Instance struct {
	id          uint64
	tag         uuid.UUID
	participant roster.Participant
	name        string
	slot        arena.Slot
	yaw         float64
	driver      roster.InputSource
	substitute  bool
	attachments attachmentSet
	alive       bool
	onDestroyed func(*Instance)
}

// attachmentSet is the per-instance attachment storage. Sets are pooled;
// instances are not, so a handle never outlives its own spawn.
type attachmentSet map[string]Attachment

func newAttachmentSet() attachmentSet {
	return make(attachmentSet)
}

func clearAttachmentSet(set attachmentSet) {
	clear(set)
}

func newInstance(id uint64, p roster.Participant, slot arena.Slot, driver roster.InputSource, substitute bool, attachments attachmentSet, hook func(*Instance)) *Instance {
	return &Instance{
		id:          id,
		tag:         uuid.New(),
		participant: p,
		name:        fmt.Sprintf("Instance (%s)", p),
		slot:        slot,
		yaw:         FacingYaw,
		driver:      driver,
		substitute:  substitute,
		attachments: attachments,
		alive:       true,
		onDestroyed: hook,
	}
}

// release hands the attachment set back once the instance is gone.
func (i *Instance) release() attachmentSet {
	set := i.attachments
	i.attachments = nil
	return set
}

// ID is unique per spawn within a manager.
func (i *Instance) ID() uint64 {
	return i.id
}

// Tag is a globally unique debug identity.
func (i *Instance) Tag() uuid.UUID {
	return i.tag
}

func (i *Instance) Participant() roster.Participant {
	return i.participant
}

func (i *Instance) Name() string {
	return i.name
}

func (i *Instance) Slot() arena.Slot {
	return i.slot
}

func (i *Instance) Position() arena.Vec3 {
	return i.slot.Position
}

func (i *Instance) Yaw() float64 {
	return i.yaw
}

// Driver returns the input source controlling the instance. For a
// participant registered without input this is the substitute AI.
func (i *Instance) Driver() roster.InputSource {
	return i.driver
}

// Substitute reports whether a substitute AI drives the instance.
func (i *Instance) Substitute() bool {
	return i.substitute
}

func (i *Instance) Alive() bool {
	return i.alive
}

// Attach stores an attachment under key, disposing whatever was there. A
// destroyed instance disposes a right away.
func (i *Instance) Attach(key string, a Attachment) {
	if !i.alive {
		a.Dispose()
		return
	}
	if prev, ok := i.attachments[key]; ok {
		prev.Dispose()
	}
	i.attachments[key] = a
}

func (i *Instance) Attachment(key string) (Attachment, bool) {
	a, ok := i.attachments[key]
	return a, ok
}

// Detach removes an attachment without disposing it and returns it.
func (i *Instance) Detach(key string) (Attachment, bool) {
	a, ok := i.attachments[key]
	if ok {
		delete(i.attachments, key)
	}
	return a, ok
}

// Destroy ends the instance. Attachments are disposed and the destruction
// hook runs once; later calls do nothing.
func (i *Instance) Destroy() {
	if !i.alive {
		return
	}
	i.alive = false
	for k, a := range i.attachments {
		delete(i.attachments, k)
		a.Dispose()
	}
	hook := i.onDestroyed
	i.onDestroyed = nil
	if hook != nil {
		hook(i)
	}
}
