package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rope/internal/platform/tui"
	"github.com/vovakirdan/tui-rope/internal/registry"
)

var flagLayout string

var runCmd = &cobra.Command{
	Use:   "run [scene]",
	Short: "Run a scene",
	Long: `Start the specified scene, or a saved layout with --layout.
Without arguments the bridge scene is started.

Controls:
  Space         - Pause/resume
  E             - Edit mode (pauses; click selects, right click inserts)
  A             - Toggle air resistance
  N             - Toggle point markers
  +/-, wheel    - Extend/shrink the chain
  X/Delete      - Delete the selected point
  Left drag     - Drag a point
  Right click   - Lock/unlock a point
  S             - Save the chain as a layout
  Ctrl+S        - Save a text screenshot
  R             - Rebuild the scene
  Q/Ctrl+C      - Quit

Examples:
  ropesim run
  ropesim run pendulum --preset floaty
  ropesim run slack --config ./my-rope.yaml
  ropesim run --layout bridge-20250101-120000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagLayout, "layout", "", "Name of a saved layout to start from")
}

func runRun(_ *cobra.Command, args []string) error {
	ropeCfg, err := loadRopeConfig()
	if err != nil {
		return err
	}

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	var scene registry.Scene
	switch {
	case flagLayout != "":
		if len(args) > 0 {
			return fmt.Errorf("cannot combine a scene with --layout")
		}
		scene, err = tui.OpenLayout(store, flagLayout, ropeCfg)
		if err != nil {
			return fmt.Errorf("cannot open layout %q: %w", flagLayout, err)
		}
	default:
		sceneID := "bridge"
		if len(args) > 0 {
			sceneID = args[0]
		}
		if !registry.Exists(sceneID) {
			return fmt.Errorf("unknown scene %q, run 'ropesim list' to see available scenes", sceneID)
		}
		scene, err = registry.Create(sceneID, ropeCfg)
		if err != nil {
			return err
		}
	}

	if err := tui.Run(scene, store, runtimeConfig()); err != nil {
		return fmt.Errorf("error running scene: %w", err)
	}
	return nil
}
