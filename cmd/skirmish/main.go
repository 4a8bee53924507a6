// skirmish runs headless party-game rounds: it picks the least played
// variant, plays it out against simulated input and keeps score.
//
// Usage:
//
//	skirmish run [--rounds N]          - Play rounds until N are done or interrupted
//	skirmish played                    - Show how often each variant was played
//	skirmish reset                     - Clear the play-count table
//	skirmish practice [--duration D]   - Knock a practice dummy around
//
// Global flags:
//
//	--config <path>     - Configuration file
//	--seed <phrase>     - Seed phrase for a reproducible session
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeusync/skirmish/internal/config"
)

var (
	flagConfig   string
	flagSeed     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skirmish",
	Short: "Skirmish - headless arena rounds",
	Long: `Skirmish plays rounds of the arena party game without a screen.

Each round picks one of the least played variants (Survival, Ghost or
Hot Potato), loads an arena, spawns the registered participants and lets
simulated input play it out.

Examples:
  skirmish run --rounds 5
  skirmish run --seed friday-night
  skirmish played
  skirmish practice --duration 1m`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "Seed phrase (empty = configured seed or time based)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(practiceCmd)
}

// loadConfig reads the configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagSeed != "" {
		cfg.Loop.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}
