package ebitenhost

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

// App describes a runnable scene for NewCommand.
type App struct {
	// Name is the command name and the default window title.
	Name  string
	Short string
	// Config is the world configuration used when --config is not given.
	Config canopy.Config
	Window RunConfig
	// Setup builds the scene into w before the window opens.
	Setup func(w *canopy.World) error
}

// runGame is swapped out by tests.
var runGame = Run

// NewCommand returns a cobra command that builds app and runs it in a
// window. Flags:
//
//	--config  YAML world config merged over app.Config
//	--script  JSON input script replayed through the world's inject queue
//	--debug   enable debug checks
func NewCommand(app App) *cobra.Command {
	var (
		configPath string
		scriptPath string
		debug      bool
	)
	cmd := &cobra.Command{
		Use:          app.Name,
		Short:        app.Short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if configPath != "" {
				loaded, err := cfg.MergeFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if debug {
				cfg.Debug = true
			}

			r := NewRenderer()
			w := canopy.NewWorld(r, cfg)
			if app.Setup != nil {
				if err := app.Setup(w); err != nil {
					return fmt.Errorf("setup %s: %w", app.Name, err)
				}
			}

			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("reading script: %w", err)
				}
				script, err := canopy.LoadScript(data)
				if err != nil {
					return err
				}
				w.SetScriptRunner(script)
			}

			win := app.Window
			if win.Title == "" {
				win.Title = app.Name
			}
			return runGame(w, r, win)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML world config file")
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to replay")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug checks")
	return cmd
}
