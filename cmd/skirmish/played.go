package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusync/skirmish/internal/injector"
)

var playedCmd = &cobra.Command{
	Use:   "played",
	Short: "Show the play-count table",
	Long: `Show how many times each variant was played. The next round is always
picked among the variants with the lowest count.`,
	Args: cobra.NoArgs,
	RunE: runPlayed,
}

func runPlayed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt, cleanup, err := injector.InitializeRuntime(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-4s  %-24s  %s\n", "ID", "Variant", "Played")
	fmt.Fprintf(out, "  %-4s  %-24s  %s\n", "--", "-------", "------")
	for _, m := range rt.Session.Modes() {
		fmt.Fprintf(out, "  %-4d  %-24s  %d\n", m.ID(), m.Title(), rt.Tracker.Count(int(m.ID())))
	}
	return nil
}
