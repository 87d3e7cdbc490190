package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governance.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), *cfg)
	require.FileExists(t, path)

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, *cfg, *reloaded)
}

func TestValidateRejectsInconsistentSeats(t *testing.T) {
	cfg := Default()
	cfg.DefaultMaxEarnerSeats = cfg.DefaultTotalCountedSeats + 1
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsOutOfRangeThreshold(t *testing.T) {
	cfg := Default()
	cfg.DefaultQualifiedMajorityThreshold = 1.5
	require.Error(t, cfg.Validate())

	cfg.DefaultQualifiedMajorityThreshold = 0
	require.Error(t, cfg.Validate())
}
