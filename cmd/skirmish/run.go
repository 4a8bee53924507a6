package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/skirmish/internal/game/battle"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/injector"
)

var flagRounds int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play rounds",
	Long: `Play rounds back to back on a real-time frame loop.

With the feed enabled in the configuration, every event is also streamed
to websocket spectators.

Examples:
  skirmish run              # Until Ctrl+C
  skirmish run --rounds 3`,
	RunE: runRounds,
}

func init() {
	runCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Number of rounds to play (0 = until interrupted)")
}

func runRounds(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt, cleanup, err := injector.InitializeRuntime(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := cmd.OutOrStdout()
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Feed.Enabled {
		g.Go(func() error {
			return rt.Feed.Run(ctx)
		})
	}
	g.Go(func() error {
		// the feed stops with the loop
		defer cancel()
		return playRounds(ctx, rt, flagRounds, out)
	})
	err = g.Wait()

	printTotals(out, rt)
	return err
}

// playRounds drives the frame loop and starts the next round on the first
// frame after the previous one finished.
func playRounds(ctx context.Context, rt *injector.Runtime, rounds int, out io.Writer) error {
	frame := rt.Config.Loop.TickInterval()
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	finished := 0
	running := false
	next := func() error {
		running = true
		return rt.Session.Next(func(res battle.Result) {
			running = false
			finished++
			printResult(out, rt.Roster, res)
		})
	}

	for {
		if !running {
			if rounds > 0 && finished >= rounds {
				return nil
			}
			if err := next(); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			rt.Session.Stop()
			return nil
		case <-ticker.C:
			rt.Step(frame)
		}
	}
}

func names(r *roster.Roster, ids []roster.ParticipantID) string {
	if len(ids) == 0 {
		return "-"
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		if p, ok := r.Get(id); ok {
			out[i] = p.String()
		} else {
			out[i] = id.String()
		}
	}
	return strings.Join(out, ", ")
}

func printResult(w io.Writer, r *roster.Roster, res battle.Result) {
	if res.Skipped {
		fmt.Fprintf(w, "Round %d  %-24s  %-10s  skipped\n", res.Round, res.Title, res.Arena)
		return
	}
	fmt.Fprintf(w, "Round %d  %-24s  %-10s  winners: %s\n", res.Round, res.Title, res.Arena, names(r, res.Winners))
}

func printTotals(w io.Writer, rt *injector.Runtime) {
	totals := rt.Session.Totals()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Totals after %d rounds\n", rt.Session.Played())
	fmt.Fprintf(w, "  %-12s  %s\n", "Participant", "Points")
	fmt.Fprintf(w, "  %-12s  %s\n", "-----------", "------")
	for _, p := range rt.Roster.All() {
		fmt.Fprintf(w, "  %-12s  %d\n", p.String(), totals[p.ID])
	}
	for _, id := range slices.Sorted(maps.Keys(totals)) {
		if rt.Roster.IndexOf(id) < 0 {
			fmt.Fprintf(w, "  %-12s  %d\n", id.String(), totals[id])
		}
	}
}
