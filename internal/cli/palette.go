package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/devdeck/devdeck/internal/config"
	"github.com/devdeck/devdeck/internal/launcher"
	"github.com/devdeck/devdeck/internal/palette"
	"github.com/devdeck/devdeck/internal/store"
)

// PaletteCommand handles the palette command
type PaletteCommand struct {
	cfg      config.Config
	store    *store.Store
	launcher *launcher.Launcher
}

// NewPaletteCommand creates a new palette command
func NewPaletteCommand(cfg config.Config, st *store.Store, l *launcher.Launcher) *cobra.Command {
	cmd := &PaletteCommand{cfg: cfg, store: st, launcher: l}

	cobraCmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the project palette",
		Long:  `Show the project palette: fuzzy-filter your projects, ranked most recently opened first, and open the selection with a launcher hotkey.`,
		RunE:  cmd.Run,
	}

	return cobraCmd
}

// paletteActions converts the enabled launcher configs into palette actions.
func paletteActions(cfg config.Config) []palette.Action {
	var actions []palette.Action
	for _, lc := range cfg.EnabledLaunchers() {
		actions = append(actions, palette.Action{
			ID:     lc.ID,
			Name:   lc.Name,
			Hotkey: lc.Hotkey,
		})
	}
	return actions
}

// Run executes the palette command
func (c *PaletteCommand) Run(cmd *cobra.Command, args []string) error {
	// Pick up edits made to the data file while the palette is open.
	watcher, err := store.NewWatcher(c.store, slog.Default())
	if err == nil {
		watcher.Start()
		defer func() { _ = watcher.Close() }()
	}

	actions := paletteActions(c.cfg)
	if len(actions) == 0 {
		return fmt.Errorf("no launchers enabled")
	}

	worker := palette.NewWorker(c.store, c.launcher, actions, slog.Default())
	worker.Present()
	return nil
}
