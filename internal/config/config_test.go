package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"

[churn]
entities = 1000
rounds = 2

[sim]
tick_rate = "5ms"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 1000, cfg.Churn.Entities)
	assert.Equal(t, 2, cfg.Churn.Rounds)
	assert.Equal(t, 50_000, cfg.Churn.Refill)
	assert.Equal(t, 17, cfg.Churn.DestroyEvery)
	assert.Equal(t, 5*time.Millisecond, cfg.Sim.TickRate)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "syntax", body: "[churn\n", want: "parse config"},
		{name: "zero modulus", body: "[churn]\ndestroy_every = 0\n", want: "destroy_every"},
		{name: "negative rounds", body: "[churn]\nrounds = -1\n", want: "negative"},
		{name: "profile mode", body: "[profile]\nmode = \"trace\"\n", want: "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "read config")
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().validate())
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "bench.toml"))
	require.NoError(t, err)
	want := Default()
	want.World.Reserve = cfg.World.Reserve
	assert.Equal(t, want, cfg)
}
