// ropesim is an interactive mass-spring rope sandbox for the terminal.
//
// Usage:
//
//	ropesim list                 - List available scenes
//	ropesim run [scene]          - Run a scene (or --layout <name>)
//	ropesim menu                 - Start menu to pick scenes interactively
//	ropesim serve                - Start SSH server for remote sessions
//	ropesim layouts ...          - List, export, import and delete saved layouts
//	ropesim runs [scene]         - Show recent run history
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--config <path>    - Rope config YAML (default: search path, then embedded)
//	--preset <name>    - Tuning preset: default, stiff, loose, floaty, still
//	--db <path>        - Set database path (default: ~/.ropesim/ropesim.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rope/internal/config"
	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/storage"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-rope/internal/sandbox"
)

var (
	// Global flags
	flagFPS    int
	flagConfig string
	flagPreset string
	flagDBPath string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "ropesim",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ropesim",
	Short: "Rope Sim - a mass-spring rope sandbox in your terminal",
	Long: `Rope Sim simulates a chain of point masses joined by distance
constraints under gravity and air drag. Extend, shrink, split and delete
the chain while it swings, then save the result as a layout.

Available commands:
  list     - Show all available scenes
  run      - Run a specific scene or saved layout
  menu     - Interactive scene picker
  serve    - Start SSH server for remote sessions
  layouts  - Manage saved layouts
  runs     - View run history

Examples:
  ropesim list
  ropesim run bridge
  ropesim run --layout bridge-20250101-120000
  ropesim menu --preset stiff
  ropesim serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rope config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Tuning preset: default, stiff, loose, floaty, still")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ropesim/ropesim.db", "Path to layouts and run history database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadRopeConfig loads the rope config and applies the --preset flag.
func loadRopeConfig() (config.RopeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runtimeConfig sizes the runtime config to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// openStoreOrWarn opens the database, logging and returning nil on failure.
// The sandbox still works without storage.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, layouts will not be saved", "error", err)
		return nil
	}
	return store
}
