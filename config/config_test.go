package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nervasim/nerva/config"
)

func TestDefaultsWhenNothingSpecified(t *testing.T) {
	run, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, config.Default(), run)
}

func TestExperimentFileOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	content := "total_vps: 16\nrun_seed: 99\nranks: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	run, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, 16, run.TotalVPs)
	require.Equal(t, uint64(99), run.RunSeed)
	require.Equal(t, 2, run.Ranks)

	// Untouched fields keep their defaults.
	require.Equal(t, config.Default().Steps, run.Steps)
	require.Equal(t, config.Default().Threads, run.Threads)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte("total_vps: 16\n"), 0644))

	t.Setenv("NERVA_TOTAL_VPS", "32")
	t.Setenv("NERVA_OUTPUT", "trace_out")

	run, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, 32, run.TotalVPs)
	require.Equal(t, "trace_out", run.Output)
}

func TestMalformedEnvValueFails(t *testing.T) {
	t.Setenv("NERVA_RUN_SEED", "not-a-number")

	_, err := config.Load("")
	require.Error(t, err)
}

func TestMissingExperimentFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
