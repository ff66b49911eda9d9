package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rope/internal/rope"
	"github.com/vovakirdan/tui-rope/internal/storage"
)

// layoutFile is the YAML form of an exported layout.
type layoutFile struct {
	Name   string      `yaml:"name"`
	Scene  string      `yaml:"scene"`
	Layout rope.Layout `yaml:"layout"`
}

// encodeLayout writes a layout file as YAML.
func encodeLayout(w io.Writer, f layoutFile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("cannot encode layout: %w", err)
	}
	return enc.Close()
}

// decodeLayout reads a layout file and checks that it builds a chain.
func decodeLayout(data []byte, params rope.Params) (layoutFile, error) {
	var f layoutFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("cannot parse layout: %w", err)
	}
	if f.Scene == "" {
		f.Scene = "layout"
	}
	if _, err := rope.FromLayout(f.Layout, params); err != nil {
		return f, fmt.Errorf("invalid layout: %w", err)
	}
	return f, nil
}

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage saved layouts",
	Long: `List, export, import and delete layouts saved with S in a scene.

Examples:
  ropesim layouts list
  ropesim layouts export bridge-20250101-120000 > bridge.yaml
  ropesim layouts import bridge.yaml --name my-bridge
  ropesim layouts delete my-bridge`,
}

var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved layouts",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			layouts, err := store.ListLayouts()
			if err != nil {
				return err
			}
			if len(layouts) == 0 {
				fmt.Println("No layouts saved yet.")
				fmt.Println()
				fmt.Println("Press S in 'ropesim run' to save one.")
				return nil
			}

			maxNameLen := 4 // "Name" header
			for _, l := range layouts {
				maxNameLen = max(maxNameLen, len(l.Name))
			}
			fmt.Printf("  %-*s  %-10s  %6s  %6s  %s\n", maxNameLen, "Name", "Scene", "Points", "Joints", "Saved")
			fmt.Printf("  %-*s  %-10s  %6s  %6s  %s\n", maxNameLen, "----", "-----", "------", "------", "-----")
			for _, l := range layouts {
				fmt.Printf("  %-*s  %-10s  %6d  %6d  %s\n", maxNameLen, l.Name, l.SceneID,
					l.Points, l.Constraints, l.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var layoutsExportCmd = &cobra.Command{
	Use:   "export <name> [file]",
	Short: "Export a layout as YAML (stdout when no file is given)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			saved, err := store.LoadLayout(args[0])
			if err != nil {
				return err
			}
			f := layoutFile{Name: saved.Info.Name, Scene: saved.Info.SceneID, Layout: saved.Layout}

			if len(args) == 1 {
				return encodeLayout(os.Stdout, f)
			}
			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := encodeLayout(out, f); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			logger.Info("exported layout", "name", f.Name, "file", args[1])
			return nil
		})
	},
}

var flagImportName string

var layoutsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a layout from YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		ropeCfg, err := loadRopeConfig()
		if err != nil {
			return err
		}
		f, err := decodeLayout(data, ropeCfg.Params())
		if err != nil {
			return err
		}
		if flagImportName != "" {
			f.Name = flagImportName
		}
		if f.Name == "" {
			return fmt.Errorf("layout has no name, use --name")
		}

		return withStore(func(store *storage.Store) error {
			if _, err := store.SaveLayout(f.Name, f.Scene, f.Layout); err != nil {
				return err
			}
			logger.Info("imported layout", "name", f.Name, "points", len(f.Layout.Points))
			return nil
		})
	},
}

var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			if err := store.DeleteLayout(args[0]); err != nil {
				return err
			}
			logger.Info("deleted layout", "name", args[0])
			return nil
		})
	},
}

func init() {
	layoutsImportCmd.Flags().StringVar(&flagImportName, "name", "", "Name to save the layout under (default: name in the file)")

	layoutsCmd.AddCommand(layoutsListCmd)
	layoutsCmd.AddCommand(layoutsExportCmd)
	layoutsCmd.AddCommand(layoutsImportCmd)
	layoutsCmd.AddCommand(layoutsDeleteCmd)
}

// withStore opens the database for the duration of fn.
func withStore(fn func(store *storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
