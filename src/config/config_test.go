package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load reads so the host environment cannot leak in.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ACCIDENTS_CONFIG", "ACCIDENTS_FILE", "ACCIDENTS_STATE", "ACCIDENTS_COUNTY",
		"ACCIDENTS_EXACT_HIGHWAY", "ACCIDENTS_WIDTH", "ACCIDENTS_HEIGHT", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := load("", filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "TWAY_ID", cfg.LoaderOptions().Columns.Highway)
	assert.Equal(t, "LOS ANGELES (37)", cfg.LoaderOptions().County)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	isolate(t)
	path := writeFile(t, "accidents.yaml", `
data:
  file: /data/accident.csv
  county: ORANGE (59)
  exactHighway: true
  columns:
    highway: "#25"
    hour: "#21"
viewer:
  width: 900
  region: Orange County
log:
  level: debug
`)
	t.Setenv("ACCIDENTS_COUNTY", "KERN (29)")
	t.Setenv("ACCIDENTS_HEIGHT", "600")
	t.Setenv("ACCIDENTS_WIDTH", "not-a-number")

	cfg, err := load(path, filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	assert.Equal(t, "/data/accident.csv", cfg.Data.File)
	assert.Equal(t, "KERN (29)", cfg.Data.County)
	assert.Equal(t, "California", cfg.Data.State)
	assert.True(t, cfg.Data.ExactHighway)
	assert.Equal(t, "#25", cfg.Data.Columns.Highway)
	assert.Equal(t, "DAY_WEEKNAME", cfg.Data.Columns.Day)
	assert.Equal(t, 900, cfg.Viewer.Width)
	assert.Equal(t, 600, cfg.Viewer.Height)
	assert.Equal(t, "debug", cfg.Log.Level)

	so := cfg.SceneOptions(1000, 500)
	assert.Equal(t, "Highway (Orange County)", so.XLabel)
	assert.Equal(t, "Number of Accidents", so.YLabel)
	assert.Equal(t, 1000, so.Width)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	isolate(t)
	path := writeFile(t, "c.yaml", "data:\n  state: Texas\n")
	t.Setenv("ACCIDENTS_CONFIG", path)
	cfg, err := load("", filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	assert.Equal(t, "Texas", cfg.Data.State)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	env := writeFile(t, ".env", "ACCIDENTS_STATE=Nevada\nLOG_LEVEL=warn\n")
	cfg, err := load("", env)
	require.NoError(t, err)
	assert.Equal(t, "Nevada", cfg.Data.State)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)
	noEnv := filepath.Join(t.TempDir(), "none.env")

	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)

	bad := writeFile(t, "bad.yaml", "data: [unterminated\n")
	_, err = load(bad, noEnv)
	require.Error(t, err)

	small := writeFile(t, "small.yaml", "viewer:\n  width: 100\n")
	_, err = load(small, noEnv)
	require.ErrorIs(t, err, ErrInvalid)

	t.Setenv("LOG_LEVEL", "chatty")
	_, err = load("", noEnv)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidate_Columns(t *testing.T) {
	cfg := Default()
	cfg.Data.Columns.Hour = " "
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default()
	cfg.Data.Columns.State = ""
	cfg.Data.Columns.County = ""
	require.NoError(t, cfg.Validate(), "state and county columns are optional")
}
