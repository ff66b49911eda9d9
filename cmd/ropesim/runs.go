package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rope/internal/registry"
	"github.com/vovakirdan/tui-rope/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show recent run history",
	Long: `Display the most recent sandbox runs, optionally for one scene,
followed by per-scene totals.

Examples:
  ropesim runs
  ropesim runs bridge --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, args []string) error {
	sceneID := ""
	if len(args) > 0 {
		sceneID = args[0]
		if !registry.Exists(sceneID) && sceneID != "layout" {
			fmt.Fprintf(os.Stderr, "Warning: %q is not a registered scene\n", sceneID)
		}
	}

	return withStore(func(store *storage.Store) error {
		runs, err := store.RecentRuns(sceneID, flagRunsLimit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			fmt.Println()
			fmt.Println("Start one with 'ropesim run'.")
			return nil
		}

		fmt.Printf("  %-10s  %8s  %5s  %6s  %6s  %8s  %s\n",
			"Scene", "Frames", "Edits", "Points", "Joints", "Time", "Date")
		fmt.Printf("  %-10s  %8s  %5s  %6s  %6s  %8s  %s\n",
			"-----", "------", "-----", "------", "------", "----", "----")
		for _, r := range runs {
			fmt.Printf("  %-10s  %8d  %5d  %6d  %6d  %8s  %s\n",
				r.SceneID, r.Frames, r.Edits, r.Points, r.Constraints,
				r.Duration.Round(100*time.Millisecond), r.CreatedAt.Format("2006-01-02 15:04"))
		}

		if sceneID != "" {
			n, err := store.RunCount(sceneID)
			if err != nil {
				return err
			}
			fmt.Printf("\nShowing %d of %d runs for %s\n", len(runs), n, sceneID)
		}

		stats, err := store.AllSceneStats()
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(stats))
		for id := range stats {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Println()
		fmt.Println("Totals:")
		for _, id := range ids {
			st := stats[id]
			fmt.Printf("  %-10s  %d runs, %d frames, %d edits, last %s\n",
				id, st.Runs, st.TotalFrames, st.TotalEdits, st.LastRun.Format("2006-01-02 15:04"))
		}
		return nil
	})
}
