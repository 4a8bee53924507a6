package round

import (
	"fmt"
	"time"

	"github.com/zeusync/skirmish/internal/game/roster"
)

// ModeID is the persistent identity of a round variant. Values are stored in
// the play-count table and must not be renumbered.
type ModeID int

const (
	SurvivalID ModeID = 1
	GhostID    ModeID = 2
	TagID      ModeID = 3
)

// Mode is one round variant. Activate runs when the round becomes active,
// after participants are spawned; Cleanup undoes it and runs exactly once
// for every Activate.
type Mode interface {
	ID() ModeID
	Title() string
	Icons(participants []roster.Participant) []Icon
	Activate(r *Round)
	Cleanup(r *Round)
}

// ArenaRestricted is implemented by modes that only play on some arenas.
type ArenaRestricted interface {
	Arenas() []string
}

type IconKind int

const (
	IconPlayer IconKind = iota
	IconSwords
	IconSkull
)

func (k IconKind) String() string {
	switch k {
	case IconPlayer:
		return "player"
	case IconSwords:
		return "swords"
	case IconSkull:
		return "skull"
	default:
		return fmt.Sprintf("IconKind(%d)", int(k))
	}
}

// Icon is one element of an intro sequence. Player icons carry the skin
// colour of the participant they stand for.
type Icon struct {
	Kind  IconKind
	Color string
}

func (i Icon) String() string {
	if i.Kind == IconPlayer && i.Color != "" {
		return "player(" + i.Color + ")"
	}
	return i.Kind.String()
}

// VersusIcons renders player, swords, player, ..., player.
func VersusIcons(participants []roster.Participant) []Icon {
	icons := make([]Icon, 0, 2*len(participants))
	for _, p := range participants {
		icons = append(icons, Icon{Kind: IconPlayer, Color: p.Skin.Color}, Icon{Kind: IconSwords})
	}
	if len(icons) > 0 {
		icons = icons[:len(icons)-1]
	}
	return icons
}

// Presenter is the display side of a round.
type Presenter interface {
	// ShowIntro displays the round title and icons and calls done once the
	// intro has finished.
	ShowIntro(title string, icons []Icon, done func())
	SetAlpha(id roster.ParticipantID, alpha float64)
	ShowTimer(total time.Duration)
	HideTimer()
}

// Result describes a round once it is over.
type Result struct {
	Round   uint64
	Mode    ModeID
	Title   string
	Arena   string
	Winners []roster.ParticipantID
	Skipped bool
}
