package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/devdeck/devdeck/internal/hotkey"
)

// LauncherConfig describes one launch type available from the palette and
// the open command. Builtin entries dispatch to OS tools; the rest are
// command templates.
type LauncherConfig struct {
	ID      string `mapstructure:"id"`
	Name    string `mapstructure:"name"`
	Command string `mapstructure:"command"`
	Hotkey  string `mapstructure:"hotkey"`
	Enabled bool   `mapstructure:"enabled"`
	Builtin bool   `mapstructure:"builtin"`
}

// Config holds all runtime configuration.
// Values are populated from config.yaml in the data dir, DEVDECK_* env vars,
// and CLI flags.
type Config struct {
	DataDir      string           `mapstructure:"data_dir"`
	GlobalHotkey string           `mapstructure:"global_hotkey"`
	FileManager  string           `mapstructure:"file_manager"`
	Launchers    []LauncherConfig `mapstructure:"launchers"`
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devdeck"
	}
	return filepath.Join(home, ".devdeck")
}

func defaultLaunchers() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": "editor", "name": "Code", "command": "", "hotkey": "alt+c", "enabled": true, "builtin": true},
		{"id": "terminal", "name": "Terminal", "command": "", "hotkey": "alt+t", "enabled": true, "builtin": true},
		{"id": "fileBrowser", "name": "Folder", "command": "", "hotkey": "alt+f", "enabled": true, "builtin": true},
	}
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("global_hotkey", "win+shift+w")
	viper.SetDefault("file_manager", "")
	viper.SetDefault("launchers", defaultLaunchers())

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// Validate rejects configuration that would otherwise only fail once the
// palette daemon starts listening for the global hotkey.
func (c Config) Validate() error {
	if _, err := hotkey.ParseChord(c.GlobalHotkey); err != nil {
		return fmt.Errorf("invalid global_hotkey: %w", err)
	}
	return nil
}

// DataFile returns the path of the project collection file.
func (c Config) DataFile() string {
	return filepath.Join(c.DataDir, "projects.json")
}

// EnabledLaunchers returns the launchers the palette should offer, in
// configured order.
func (c Config) EnabledLaunchers() []LauncherConfig {
	var out []LauncherConfig
	for _, l := range c.Launchers {
		if l.Enabled {
			out = append(out, l)
		}
	}
	return out
}

// LauncherByID returns the launcher with the given id.
func (c Config) LauncherByID(id string) (LauncherConfig, bool) {
	for _, l := range c.Launchers {
		if l.ID == id {
			return l, true
		}
	}
	return LauncherConfig{}, false
}
