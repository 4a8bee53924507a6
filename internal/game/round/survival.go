package round

import (
	"fmt"
	"time"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/spawn"
)

const hordeIDBase roster.ParticipantID = 1000

type SurvivalConfig struct {
	SurviveTime       time.Duration
	HordeSize         int
	HordeRespawnDelay time.Duration
	Arenas            []string
}

func DefaultSurvivalConfig() SurvivalConfig {
	return SurvivalConfig{
		SurviveTime:       15 * time.Second,
		HordeSize:         6,
		HordeRespawnDelay: spawn.DefaultRespawnDelay,
	}
}

// Survival pits the participants against a respawning AI horde. Whoever is
// still alive when the timer runs out scores; if everyone dies first the
// round ends without points.
type Survival struct {
	cfg   SurvivalConfig
	horde *roster.Roster
	// per round
	hordeManager *spawn.Manager
}

func NewSurvival(cfg SurvivalConfig) *Survival {
	members := make([]roster.Participant, cfg.HordeSize)
	for i := range members {
		members[i] = roster.Participant{
			ID:    hordeIDBase + roster.ParticipantID(i),
			Name:  fmt.Sprintf("Horde %d", i+1),
			Input: roster.AIController("horde"),
			Skin:  roster.Skin{Name: "skull"},
		}
	}
	// ids are generated unique, New cannot fail
	horde, _ := roster.New(members...)
	return &Survival{cfg: cfg, horde: horde}
}

func (*Survival) ID() ModeID { return SurvivalID }

func (*Survival) Title() string { return "AI SURVIVAL" }

func (s *Survival) Arenas() []string { return s.cfg.Arenas }

func (s *Survival) Icons(participants []roster.Participant) []Icon {
	icons := make([]Icon, 0, len(participants)+1+s.cfg.HordeSize)
	for _, p := range participants {
		icons = append(icons, Icon{Kind: IconPlayer, Color: p.Skin.Color})
	}
	icons = append(icons, Icon{Kind: IconSwords})
	for i := 0; i < s.cfg.HordeSize; i++ {
		icons = append(icons, Icon{Kind: IconSkull})
	}
	return icons
}

// Horde returns the horde of the running round, or nil.
func (s *Survival) Horde() *spawn.Manager {
	return s.hordeManager
}

func (s *Survival) Activate(r *Round) {
	if len(r.Arena().Slots(arena.AISlots)) > 0 && s.horde.Len() > 0 {
		s.hordeManager = r.NewManager("horde", s.horde, arena.AISlots, s.cfg.HordeRespawnDelay)
		s.hordeManager.SetShouldRespawn(true)
		s.hordeManager.SpawnAll(s.horde.All())
	} else {
		r.Logger().Warn("arena has no AI slots, survival runs without a horde")
	}

	players := r.Players()
	err := notify.On(r.Subscriptions(), func(ev notify.Removed) {
		if ev.Team != players.Team() || players.Count() > 0 {
			return
		}
		r.Finish(nil)
	})
	if err != nil {
		r.Logger().Error("failed to watch removals", log.Error(err))
	}

	r.Presenter().ShowTimer(s.cfg.SurviveTime)
	r.After(s.cfg.SurviveTime, func() {
		r.Finish(players.Alive())
	})

	if players.Count() == 0 {
		r.Finish(nil)
	}
}

func (s *Survival) Cleanup(*Round) {
	if s.hordeManager != nil {
		s.hordeManager.SetShouldRespawn(false)
		s.hordeManager.CleanupAll()
		s.hordeManager = nil
	}
}
