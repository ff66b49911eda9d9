package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rope/internal/platform/tui"
	"github.com/vovakirdan/tui-rope/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the sandbox with a scene picker menu",
	Long: `Start the sandbox in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a scene.
Tab opens the saved layouts. Quitting a scene returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select scene
  Tab/L        - Saved layouts
  Q            - Quit

Examples:
  ropesim menu
  ropesim menu --fps 30
  ropesim menu --db ./ropesim.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	ropeCfg, err := loadRopeConfig()
	if err != nil {
		return err
	}

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		var scene registry.Scene
		if menuResult.WantsLayouts {
			result, err := tui.RunLayoutBrowser(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if result.Name == "" {
				if result.GoBack {
					continue // Back to menu
				}
				return nil // User quit from the browser
			}
			if scene, err = tui.OpenLayout(store, result.Name, ropeCfg); err != nil {
				logger.Error("cannot open layout", "name", result.Name, "error", err)
				continue
			}
		} else {
			if scene, err = registry.Create(menuResult.SceneID, ropeCfg); err != nil {
				logger.Error("cannot create scene", "scene", menuResult.SceneID, "error", err)
				continue
			}
		}

		if err := tui.Run(scene, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
		}

		// Loop back to menu
	}
}
