package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/youruser/shopmosaic/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.False(t, exists)
	require.Equal(t, config.Default(), *cfg)
}

func TestLoadOverridesAndExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "shop.toml")
	body := `
[paths]
output_dir = "~/www"
overlay = "/srv/assets/overlay.png"

[shop]
normal_title = "Daily Shop"
og_enabled = false
og_threshold = 250

[logging]
format = "JSON"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, exists, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, filepath.Join(home, "www"), cfg.Paths.OutputDir)
	require.Equal(t, "/srv/assets/overlay.png", cfg.Paths.Overlay)
	require.Equal(t, "assets/shopbg.png", cfg.Paths.Background)
	require.Equal(t, "Daily Shop", cfg.Shop.NormalTitle)
	require.Equal(t, "OG Items", cfg.Shop.OGTitle)
	require.False(t, cfg.Shop.OGEnabled)
	require.Equal(t, 250, cfg.Shop.OGThreshold)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.toml")
	require.NoError(t, os.WriteFile(path, []byte("[shop]\nog_threshold = -1\n"), 0o644))
	_, _, err := config.Load(path)
	require.ErrorContains(t, err, "og_threshold")

	require.NoError(t, os.WriteFile(path, []byte("[paths\n"), 0o644))
	_, _, err = config.Load(path)
	require.ErrorContains(t, err, "parse config")
}
