// Package notify names the gameplay notifications carried on the event bus
// and provides typed helpers to publish and subscribe to them.
package notify

import (
	"time"

	"github.com/zeusync/skirmish/internal/game/roster"
)

const (
	TypeParticipantSpawned = "participant.spawned"
	TypeParticipantRemoved = "participant.removed"
	TypeParticipantDashed  = "participant.dashed"
	TypeParticipantShot    = "participant.shot"
	TypeParticipantHit     = "participant.hit"
	TypeRoundActivated     = "round.activated"
	TypeRoundFinished      = "round.finished"
	TypeRoundPlayed        = "round.played"
	TypeScoreAwarded       = "score.awarded"
	TypeMarkerChanged      = "tag.marker_changed"
)

// Payload is implemented by every notification body.
type Payload interface {
	EventType() string
}

// Spawned is published whenever a manager places a new instance, including
// respawns.
type Spawned struct {
	Participant roster.Participant `json:"participant"`
	Instance    uint64             `json:"instance"`
	Team        string             `json:"team"`
}

func (Spawned) EventType() string { return TypeParticipantSpawned }

// Removed is published once when a live instance leaves play through its own
// destruction. Hard cleanups publish nothing.
type Removed struct {
	Participant roster.Participant `json:"participant"`
	Instance    uint64             `json:"instance"`
	Team        string             `json:"team"`
}

func (Removed) EventType() string { return TypeParticipantRemoved }

type Dashed struct {
	Participant roster.ParticipantID `json:"participant"`
}

func (Dashed) EventType() string { return TypeParticipantDashed }

type Shot struct {
	Participant roster.ParticipantID `json:"participant"`
	Charged     bool                 `json:"charged"`
}

func (Shot) EventType() string { return TypeParticipantShot }

type Hit struct {
	Source roster.ParticipantID `json:"source"`
	Target roster.ParticipantID `json:"target"`
	Damage float64              `json:"damage"`
}

func (Hit) EventType() string { return TypeParticipantHit }

type RoundActivated struct {
	Round uint64 `json:"round"`
	Mode  int    `json:"mode"`
	Title string `json:"title"`
	Arena string `json:"arena"`
}

func (RoundActivated) EventType() string { return TypeRoundActivated }

type RoundFinished struct {
	Round   uint64                 `json:"round"`
	Mode    int                    `json:"mode"`
	Winners []roster.ParticipantID `json:"winners"`
	Skipped bool                   `json:"skipped"`
}

func (RoundFinished) EventType() string { return TypeRoundFinished }

// Played reports a play-count change. Count is zero after a reset.
type Played struct {
	Mode  int `json:"mode"`
	Count int `json:"count"`
}

func (Played) EventType() string { return TypeRoundPlayed }

type ScoreAwarded struct {
	Round       uint64               `json:"round"`
	Participant roster.ParticipantID `json:"participant"`
	Points      int                  `json:"points"`
}

func (ScoreAwarded) EventType() string { return TypeScoreAwarded }

type MarkerChanged struct {
	Round    uint64               `json:"round"`
	Previous roster.ParticipantID `json:"previous"`
	Holder   roster.ParticipantID `json:"holder"`
	Fuse     time.Duration        `json:"fuse"`
}

func (MarkerChanged) EventType() string { return TypeMarkerChanged }
