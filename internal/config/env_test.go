package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Port int `env:"MONTYHALL_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	require.Equal(t, 123, cfg.Port)
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("MONTYHALL_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse env:")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, 3, cfg.Doors)
	require.Equal(t, 10000, cfg.Simulations)
	require.Equal(t, 0, cfg.Workers)
	require.Equal(t, "pcg", cfg.RNG)
	require.Equal(t, "text", cfg.Format)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MONTYHALL_DOORS", "10")
	t.Setenv("MONTYHALL_SEED", "77")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Doors)
	require.EqualValues(t, 77, cfg.Seed)
}

func TestLoadDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MONTYHALL_SIMULATIONS=500\nMONTYHALL_RNG=fair\n"), 0o600))
	// godotenv sets variables directly; register cleanup through t.Setenv.
	t.Setenv("MONTYHALL_SIMULATIONS", "")
	t.Setenv("MONTYHALL_RNG", "")
	os.Unsetenv("MONTYHALL_SIMULATIONS")
	os.Unsetenv("MONTYHALL_RNG")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 500, cfg.Simulations)
	require.Equal(t, "fair", cfg.RNG)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("MONTYHALL_DOORS", "three")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
