package injector

import (
	"math/rand/v2"
	"time"

	"github.com/zeusync/skirmish/internal/config"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/battle"
	"github.com/zeusync/skirmish/internal/game/headless"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/round"
	"github.com/zeusync/skirmish/internal/game/selection"
	"github.com/zeusync/skirmish/internal/game/spawn"
	"github.com/zeusync/skirmish/internal/server"
)

// Runtime is a fully wired headless session.
type Runtime struct {
	Config     *config.Config
	Logger     log.Log
	Scheduler  *schedule.Scheduler
	Bus        bus.EventBus
	Publisher  *notify.Publisher
	Rand       *rand.Rand
	Roster     *roster.Roster
	Stage      *arena.Stage
	Players    *spawn.Manager
	Presenter  *headless.Presenter
	Controller *round.Controller
	Tracker    *selection.Tracker
	Session    *battle.Session
	Driver     *headless.Driver
	Feed       *server.Feed
}

// Step runs one frame: due deferred work first, then simulated input.
func (rt *Runtime) Step(dt time.Duration) {
	rt.Scheduler.Advance(dt)
	rt.Driver.Step(dt)
}
