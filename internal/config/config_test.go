package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()

	require.True(t, strings.HasSuffix(cfg.DataDir, ".devdeck"))
	require.Equal(t, "win+shift+w", cfg.GlobalHotkey)
	require.Empty(t, cfg.FileManager)

	require.Len(t, cfg.Launchers, 3)
	ids := []string{cfg.Launchers[0].ID, cfg.Launchers[1].ID, cfg.Launchers[2].ID}
	require.Equal(t, []string{"editor", "terminal", "fileBrowser"}, ids)
	for _, l := range cfg.Launchers {
		require.True(t, l.Enabled)
		require.True(t, l.Builtin)
		require.NotEmpty(t, l.Hotkey)
	}
}

func TestValidate(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()
	require.NoError(t, cfg.Validate())

	cfg.GlobalHotkey = "w"
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "global_hotkey")

	cfg.GlobalHotkey = "bogus+w"
	require.Error(t, cfg.Validate())
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(`
data_dir: /srv/devdeck
global_hotkey: ctrl+alt+p
file_manager: nautilus
launchers:
  - id: editor
    name: Code
    hotkey: alt+c
    enabled: true
    builtin: true
  - id: wezterm
    name: WezTerm
    command: wezterm start --cwd {{.Path}}
    hotkey: alt+w
    enabled: false
`)))

	cfg := Load()

	require.Equal(t, "/srv/devdeck", cfg.DataDir)
	require.Equal(t, "/srv/devdeck/projects.json", cfg.DataFile())
	require.Equal(t, "ctrl+alt+p", cfg.GlobalHotkey)
	require.Equal(t, "nautilus", cfg.FileManager)

	enabled := cfg.EnabledLaunchers()
	require.Len(t, enabled, 1)
	require.Equal(t, "editor", enabled[0].ID)

	wez, ok := cfg.LauncherByID("wezterm")
	require.True(t, ok)
	require.False(t, wez.Enabled)
	require.Equal(t, "wezterm start --cwd {{.Path}}", wez.Command)

	_, ok = cfg.LauncherByID("ghost")
	require.False(t, ok)
}
