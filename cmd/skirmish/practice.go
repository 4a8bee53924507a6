package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/arena"
	"github.com/zeusync/skirmish/internal/game/headless"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/spawn"
	"github.com/zeusync/skirmish/internal/injector"
)

var (
	flagDuration time.Duration
	flagKillRate float64
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run the practice dummy",
	Long: `Spawn a practice dummy in the configured arena and knock it out at random.
The dummy comes back after the practice respawn delay every time.
Time is simulated, so the command returns immediately.

Examples:
  skirmish practice
  skirmish practice --duration 5m --kill-rate 0.2`,
	Args: cobra.NoArgs,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().DurationVar(&flagDuration, "duration", time.Minute, "Simulated practice time")
	practiceCmd.Flags().Float64Var(&flagKillRate, "kill-rate", 0.5, "Knock-outs per second while the dummy is up")
}

func runPractice(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	def, ok := cfg.Arena(cfg.Practice.Arena)
	if !ok {
		return fmt.Errorf("practice arena %q is not configured", cfg.Practice.Arena)
	}
	logger, sync := injector.ProvideLogger(cfg)
	defer sync()
	rng := injector.ProvideRand(cfg)

	ground := def.Build()
	defer ground.Dispose()

	sched := schedule.New()
	b := bus.New()
	removed := 0
	subs := bus.NewSubscriptions(b)
	defer func() { _ = subs.CancelAll() }()
	if err := notify.On(subs, func(notify.Removed) { removed++ }); err != nil {
		return err
	}

	dummy, err := spawn.NewDummy(roster.Participant{ID: 0, Name: "Dummy"},
		func() []arena.Slot { return ground.Slots(arena.PlayerSlots) },
		sched, notify.NewPublisher(b, "practice", logger), logger, cfg.Practice.RespawnDelay)
	if err != nil {
		return err
	}
	dummy.Start()
	defer dummy.Stop()

	frame := cfg.Loop.TickInterval()
	for elapsed := time.Duration(0); elapsed < flagDuration; elapsed += frame {
		sched.Advance(frame)
		if _, up := dummy.Instance(); up && headless.Chance(rng, flagKillRate, frame) {
			dummy.Kill()
		}
	}

	logger.Debug("practice finished", log.Int("removed", removed), log.Int("respawns", dummy.Respawns()))
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Practice in %s for %s\n", ground.Name(), flagDuration)
	fmt.Fprintf(out, "  Knock-outs: %d\n", removed)
	fmt.Fprintf(out, "  Respawns:   %d\n", dummy.Respawns())
	return nil
}
