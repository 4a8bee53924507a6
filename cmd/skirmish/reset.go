package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusync/skirmish/internal/injector"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the play-count table",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt, cleanup, err := injector.InitializeRuntime(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := rt.Tracker.Reset(); err != nil {
		return fmt.Errorf("reset play counts: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Play counts cleared.")
	return nil
}
