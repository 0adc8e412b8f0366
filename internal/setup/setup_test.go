package setup_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalyx/modlog/internal/setup"
	"github.com/robalyx/modlog/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	content := strings.Join([]string{
		"version = 1",
		"[api]",
		`base_url = "https://api.example.com/"`,
		"[debug]",
		`log_dir = "` + filepath.ToSlash(logDir) + `"`,
		`log_level = "debug"`,
		"[dashboard]",
		`language = "uz"`,
	}, "\n")

	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestInitializeApp(t *testing.T) {
	t.Parallel()

	app, err := setup.InitializeApp(context.Background(), setup.Overrides{ConfigPath: writeConfig(t)})
	require.NoError(t, err)
	t.Cleanup(func() { app.Cleanup(context.Background()) })

	assert.Equal(t, "https://api.example.com", app.Endpoint.Base)
	assert.Equal(t, app.Endpoint.Base, app.Engine.Base())
	assert.Equal(t, language.Uzbek, app.Labels.Tag)
	assert.DirExists(t, app.LogManager.GetCurrentSessionDir())
}

func TestInitializeAppOverrides(t *testing.T) {
	t.Parallel()

	app, err := setup.InitializeApp(context.Background(), setup.Overrides{
		ConfigPath: writeConfig(t),
		APIURL:     "http://10.0.0.5:9000/",
		Language:   "en",
	})
	require.NoError(t, err)
	t.Cleanup(func() { app.Cleanup(context.Background()) })

	assert.Equal(t, "http://10.0.0.5:9000", app.Endpoint.Base)
	assert.Equal(t, language.English, app.Labels.Tag)
}

func TestInitializeAppMissingConfig(t *testing.T) {
	t.Parallel()

	_, err := setup.InitializeApp(context.Background(), setup.Overrides{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
	})
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func TestInitializeAppCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := setup.InitializeApp(ctx, setup.Overrides{ConfigPath: writeConfig(t)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestInitializeAppInvalidPageURL(t *testing.T) {
	t.Parallel()

	_, err := setup.InitializeApp(context.Background(), setup.Overrides{
		ConfigPath: writeConfig(t),
		PageURL:    "http://%zz/",
	})
	require.ErrorIs(t, err, config.ErrInvalidPageURL)
}
