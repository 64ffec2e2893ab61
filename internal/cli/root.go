package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devdeck/devdeck/internal/config"
	"github.com/devdeck/devdeck/internal/filesystem"
	"github.com/devdeck/devdeck/internal/launcher"
	"github.com/devdeck/devdeck/internal/models"
	"github.com/devdeck/devdeck/internal/scanner"
	"github.com/devdeck/devdeck/internal/store"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, cfg config.Config, st *store.Store, l *launcher.Launcher) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devdeck",
		Short: "Index and launch your local projects",
		Long: `devdeck keeps a searchable index of the projects on your machine.

Projects are scanned for technology tags, documentation and dev-server
ports, and can be opened in your editor, a terminal or the file browser
from the command line or the hotkey palette.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `devdeck list` when no subcommand is provided.
			return (&ListCommand{store: st}).Run(cmd, args)
		},
	}

	rootCmd.AddCommand(NewAddCommand(st))
	rootCmd.AddCommand(NewListCommand(st))
	rootCmd.AddCommand(NewShowCommand(st))
	rootCmd.AddCommand(NewScanCommand(fs))
	rootCmd.AddCommand(NewRefreshCommand(st))
	rootCmd.AddCommand(NewRemoveCommand(st))
	rootCmd.AddCommand(NewReorderCommand(st))
	rootCmd.AddCommand(NewOpenCommand(st, l))
	rootCmd.AddCommand(NewLinkCommand(st))
	rootCmd.AddCommand(NewDocCommand(st))
	rootCmd.AddCommand(NewPortsCommand(st))
	rootCmd.AddCommand(NewPaletteCommand(cfg, st, l))

	return rootCmd
}

// initConfig points viper at the config file and environment. Missing
// config files are fine; defaults cover everything.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.devdeck")
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("DEVDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// customCommands converts enabled non-builtin launcher configs into launch
// commands.
func customCommands(cfg config.Config) []launcher.CustomCommand {
	var out []launcher.CustomCommand
	for _, lc := range cfg.EnabledLaunchers() {
		if lc.Builtin || models.LaunchType(lc.ID).IsBuiltin() || lc.Command == "" {
			continue
		}
		out = append(out, launcher.CustomCommand{
			ID:       lc.ID,
			Name:     lc.Name,
			Template: lc.Command,
			Hotkey:   lc.Hotkey,
		})
	}
	return out
}

// Execute runs the root command
func Execute() error {
	initConfig()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	fs := filesystem.NewOSFileSystem()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(log)

	sc := scanner.New(fs, log)
	st, err := store.New(fs, sc, cfg.DataFile())
	if err != nil {
		return fmt.Errorf("failed to open project store: %w", err)
	}

	l := launcher.New(fs, launcher.NewOSSpawner(),
		launcher.WithFileManager(cfg.FileManager),
		launcher.WithCustomCommands(customCommands(cfg)),
	)

	rootCmd := NewRootCommand(fs, cfg, st, l)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
