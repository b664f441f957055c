package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/holokit"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "holokit",
	Short: "holokit runs gaze and gesture interaction sessions",
	Long: `holokit drives a gaze focus tracker, tap and hold gesture routing, and
hand manipulation over a demo room, either in a window or from a script.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Log per-frame timing")
}

// loadSettings resolves the config and logger from the persistent flags.
func loadSettings(cmd *cobra.Command) (holokit.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := holokit.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = holokit.LoadConfig(path); err != nil {
			return cfg, nil, err
		}
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Debug = true
		cfg.Log.Level = "debug"
	}
	return cfg, holokit.NewLogger(cfg.Log.Level, cmd.ErrOrStderr()), nil
}
