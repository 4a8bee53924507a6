package injector

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/wire"

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
	"github.com/zeusync/skirmish/internal/storage"
)

// PlayersTeam names the registered participants in removal notifications.
const PlayersTeam = "players"

var CoreSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	schedule.New,
	bus.New,
	ProvidePublisher,
	ProvideRand,
)

var GameSet = wire.NewSet(
	ProvideRoster,
	ProvideStage,
	ProvidePlayers,
	ProvidePresenter,
	wire.Bind(new(round.Presenter), new(*headless.Presenter)),
	round.NewScoreboard,
	wire.Struct(new(round.Deps), "*"),
	ProvideController,
	ProvideModes,
	ProvideDriver,
)

var PersistenceSet = wire.NewSet(
	ProvideStore,
	ProvideTracker,
	ProvideSession,
)

var FeedSet = wire.NewSet(
	wire.Bind(new(server.PlayCounts), new(*selection.Tracker)),
	ProvideFeed,
)

func ProvideLogger(cfg *config.Config) (*log.Logger, func()) {
	var logger *log.Logger
	if cfg.Log.Development {
		logger = log.NewDevelopment(cfg.LogLevel())
	} else {
		logger = log.New(cfg.LogLevel())
	}
	return logger, func() { _ = logger.Sync() }
}

func ProvidePublisher(b bus.EventBus, logger log.Log) *notify.Publisher {
	return notify.NewPublisher(b, "round", logger)
}

// ProvideRand seeds the session RNG from the configured phrase, or from the
// clock when none is set.
func ProvideRand(cfg *config.Config) *rand.Rand {
	seed, ok := cfg.Loop.SeedValue()
	if !ok {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func ProvideStore(cfg *config.Config, logger log.Log) (storage.Store, func(), error) {
	store, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("injector: open %s store: %w", cfg.Storage.Driver, err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", log.Error(err))
		}
	}, nil
}

func ProvideTracker(store storage.Store, publisher *notify.Publisher, logger log.Log) (*selection.Tracker, error) {
	return selection.NewTracker(store, publisher.WithSource("selection"), logger.With(log.String("component", "selection")))
}

func ProvideRoster(cfg *config.Config) (*roster.Roster, error) {
	return roster.New(cfg.RosterParticipants()...)
}

func ProvideStage(cfg *config.Config, sched *schedule.Scheduler, logger log.Log) *arena.Stage {
	return arena.NewStage(headless.NewArenaProvider(cfg.Arenas, sched, cfg.Round.ArenaAnimate, logger))
}

func ProvidePlayers(cfg *config.Config, r *roster.Roster, stage *arena.Stage, sched *schedule.Scheduler, publisher *notify.Publisher, logger log.Log) *spawn.Manager {
	return spawn.NewManager(r, func() []arena.Slot { return stage.Slots(arena.PlayerSlots) },
		sched, publisher.WithSource(PlayersTeam), logger, spawn.Options{
			Team:         PlayersTeam,
			RespawnDelay: cfg.Spawn.RespawnDelay,
			Respawn:      cfg.Spawn.Respawn,
			Substitute:   spawn.DefaultSubstitute,
		})
}

func ProvidePresenter(cfg *config.Config, sched *schedule.Scheduler, logger log.Log) *headless.Presenter {
	return headless.NewPresenter(sched, cfg.Round.IntroDuration, logger)
}

func ProvideController(cfg *config.Config, deps round.Deps) *round.Controller {
	return round.NewController(deps, round.Options{SkipIntro: cfg.Round.SkipIntro})
}

// ProvideModes lists every variant the session may pick from.
func ProvideModes(cfg *config.Config) []round.Mode {
	return []round.Mode{
		round.NewSurvival(cfg.SurvivalMode()),
		round.NewGhost(cfg.GhostMode()),
		round.NewTag(cfg.TagMode()),
	}
}

func ProvideDriver(cfg *config.Config, ctrl *round.Controller, players *spawn.Manager, publisher *notify.Publisher, rng *rand.Rand) *headless.Driver {
	return headless.NewDriver(ctrl, players, publisher, rng, cfg.Sim)
}

func ProvideSession(ctrl *round.Controller, tracker *selection.Tracker, b bus.EventBus, modes []round.Mode, rng *rand.Rand, logger log.Log) (*battle.Session, func(), error) {
	session, err := battle.NewSession(ctrl, tracker, b, modes, rng, logger.With(log.String("component", "session")))
	if err != nil {
		return nil, nil, err
	}
	return session, func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close session", log.Error(err))
		}
	}, nil
}

// ProvideFeed builds the spectator feed and attaches it to the bus. Whether
// it listens is up to the caller.
func ProvideFeed(cfg *config.Config, counts server.PlayCounts, modes []round.Mode, b bus.EventBus, logger log.Log) (*server.Feed, func(), error) {
	titles := make(map[int]string, len(modes))
	for _, m := range modes {
		titles[int(m.ID())] = m.Title()
	}
	feed := server.NewFeed(server.Options{
		Address:    cfg.Feed.Address,
		Buffer:     cfg.Feed.Buffer,
		ModeTitles: titles,
	}, counts, logger)
	if err := feed.Attach(b); err != nil {
		return nil, nil, err
	}
	return feed, func() { _ = feed.Detach() }, nil
}
