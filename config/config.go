// Package config loads run configuration for the nerva CLI. Defaults are
// overlaid by an optional yaml experiment file, which is overlaid by
// environment variables (optionally read from a .env file).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// A Run describes one simulation run.
type Run struct {
	TotalVPs    int    `yaml:"total_vps"`
	RunSeed     uint64 `yaml:"run_seed"`
	Ranks       int    `yaml:"ranks"`
	Threads     int    `yaml:"threads"`
	Steps       int    `yaml:"steps"`
	Elements    int    `yaml:"elements"`
	Output      string `yaml:"output"`
	MonitorPort int    `yaml:"monitor_port"`
}

// Default returns the configuration used when nothing else is specified: a
// small single-rank run.
func Default() Run {
	return Run{
		TotalVPs: 4,
		RunSeed:  42,
		Ranks:    1,
		Threads:  1,
		Steps:    10,
		Elements: 4,
	}
}

// Load builds a Run from defaults, an optional yaml experiment file, and the
// environment. An empty path skips the file.
func Load(path string) (Run, error) {
	run := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Run{}, fmt.Errorf("reading experiment file: %w", err)
		}

		// Unmarshal into the same struct, so the file only overrides the
		// fields it mentions.
		if err := yaml.Unmarshal(data, &run); err != nil {
			return Run{}, fmt.Errorf("parsing experiment file: %w", err)
		}
	}

	if err := run.applyEnv(); err != nil {
		return Run{}, err
	}

	return run, nil
}

// applyEnv overlays NERVA_* environment variables. A .env file in the working
// directory is honored when present.
func (r *Run) applyEnv() error {
	_ = godotenv.Load()

	overrides := []struct {
		name  string
		apply func(string) error
	}{
		{"NERVA_TOTAL_VPS", intVar(&r.TotalVPs)},
		{"NERVA_RUN_SEED", uint64Var(&r.RunSeed)},
		{"NERVA_RANKS", intVar(&r.Ranks)},
		{"NERVA_THREADS", intVar(&r.Threads)},
		{"NERVA_STEPS", intVar(&r.Steps)},
		{"NERVA_ELEMENTS", intVar(&r.Elements)},
		{"NERVA_MONITOR_PORT", intVar(&r.MonitorPort)},
		{"NERVA_OUTPUT", stringVar(&r.Output)},
	}

	for _, o := range overrides {
		value, set := os.LookupEnv(o.name)
		if !set {
			continue
		}

		if err := o.apply(value); err != nil {
			return fmt.Errorf("parsing %s: %w", o.name, err)
		}
	}

	return nil
}

func intVar(target *int) func(string) error {
	return func(value string) error {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
}

func uint64Var(target *uint64) func(string) error {
	return func(value string) error {
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
}

func stringVar(target *string) func(string) error {
	return func(value string) error {
		*target = value
		return nil
	}
}
