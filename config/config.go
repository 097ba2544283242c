// Package config loads run configurations for the tspsearch command.
//
// Three on-disk formats are understood, chosen by file extension:
//
//   - .toml         decoded with BurntSushi/toml
//   - .yaml, .yml   decoded with yaml.v3
//   - anything else the flat key=value format (inputData=..., coolingRate=...)
//
// Every loader starts from Defaults, so a file only needs the keys it changes.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/katalvlaran/tspsearch/anneal"
	"github.com/katalvlaran/tspsearch/solver"
)

// ErrInvalid marks a configuration that decoded fine but cannot be run.
var ErrInvalid = errors.New("config: invalid configuration")

// Duration accepts Go duration syntax ("90s", "2m") or a bare number of seconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "config: bad duration %q", s)
	}

	return d, nil
}

// Annealing mirrors anneal.Config with file-friendly types.
type Annealing struct {
	InitialTemperature float64  `toml:"initial_temperature" yaml:"initial_temperature"`
	CoolingRate        float64  `toml:"cooling_rate" yaml:"cooling_rate"`
	StopTime           Duration `toml:"stop_time" yaml:"stop_time"`
	MinTemperature     float64  `toml:"min_temperature" yaml:"min_temperature"`
	MaxIterations      int      `toml:"max_iterations" yaml:"max_iterations"`
	InitialSolution    string   `toml:"initial_solution" yaml:"initial_solution"`
	Cooling            string   `toml:"cooling" yaml:"cooling"`
}

// BranchAndBound holds the exact engines' knobs.
type BranchAndBound struct {
	NoPrune   bool     `toml:"no_prune" yaml:"no_prune"`
	TimeLimit Duration `toml:"time_limit" yaml:"time_limit"`
}

// Instance is one benchmark entry. Optimal == 0 means the optimum is unknown;
// StopTime == 0 keeps the annealing block's budget.
type Instance struct {
	File     string   `toml:"file" yaml:"file"`
	Optimal  int      `toml:"optimal" yaml:"optimal"`
	StopTime Duration `toml:"stop_time" yaml:"stop_time"`
}

// Config is a complete run description.
type Config struct {
	Algorithm string `toml:"algorithm" yaml:"algorithm"`
	// Input and Optimal describe the single instance used by test mode and by
	// Suite when Instances is empty.
	Input   string `toml:"input" yaml:"input"`
	Optimal int    `toml:"optimal" yaml:"optimal"`
	Output  string `toml:"output" yaml:"output"`
	Runs    int    `toml:"runs" yaml:"runs"`
	// TestMode runs the engine once on Input instead of the benchmark suite.
	TestMode bool  `toml:"test_mode" yaml:"test_mode"`
	Seed     int64 `toml:"seed" yaml:"seed"`

	Annealing      Annealing      `toml:"annealing" yaml:"annealing"`
	BranchAndBound BranchAndBound `toml:"branch_and_bound" yaml:"branch_and_bound"`
	Instances      []Instance     `toml:"instances" yaml:"instances"`
}

// Defaults returns the configuration used when a key is absent.
func Defaults() Config {
	sa := anneal.DefaultConfig()

	return Config{
		Algorithm: solver.SimulatedAnnealing.String(),
		Output:    "results.csv",
		Runs:      10,
		Annealing: Annealing{
			InitialTemperature: sa.InitialTemperature,
			CoolingRate:        sa.CoolingRate,
			StopTime:           Duration(sa.StopTime),
			MinTemperature:     sa.MinTemperature,
			MaxIterations:      sa.MaxIterations,
			InitialSolution:    string(sa.InitialSolution),
			Cooling:            string(sa.Cooling),
		},
	}
}

// Suite returns the instances a benchmark iterates over: Instances if any,
// otherwise a single entry built from Input and Optimal.
func (c Config) Suite() []Instance {
	if len(c.Instances) > 0 {
		return c.Instances
	}
	if c.Input == "" {
		return nil
	}

	return []Instance{{File: c.Input, Optimal: c.Optimal}}
}

// AnnealConfig converts the annealing block.
func (c Config) AnnealConfig() anneal.Config {
	return anneal.Config{
		InitialTemperature: c.Annealing.InitialTemperature,
		CoolingRate:        c.Annealing.CoolingRate,
		StopTime:           c.Annealing.StopTime.Std(),
		MinTemperature:     c.Annealing.MinTemperature,
		MaxIterations:      c.Annealing.MaxIterations,
		InitialSolution:    anneal.InitialMethod(c.Annealing.InitialSolution),
		Cooling:            anneal.CoolingMethod(c.Annealing.Cooling),
	}
}

// Validate reports the first problem that would stop a run. Unknown names
// keep the core sentinel (solver.ErrUnsupportedAlgorithm,
// anneal.ErrInvalidConfiguration) in the chain.
func (c Config) Validate() error {
	alg, err := solver.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if c.Runs < 1 {
		return errors.Wrapf(ErrInvalid, "runs must be at least 1, got %d", c.Runs)
	}
	if c.BranchAndBound.TimeLimit < 0 {
		return errors.Wrap(ErrInvalid, "branch_and_bound.time_limit must not be negative")
	}
	if alg == solver.SimulatedAnnealing {
		if err := c.AnnealConfig().Validate(); err != nil {
			return errors.Wrap(err, "config: annealing")
		}
	}
	if c.TestMode && c.Input == "" {
		return errors.Wrap(ErrInvalid, "test mode needs an input file")
	}
	for i, in := range c.Instances {
		switch {
		case strings.TrimSpace(in.File) == "":
			return errors.Wrapf(ErrInvalid, "instances[%d]: file is empty", i)
		case in.Optimal < 0:
			return errors.Wrapf(ErrInvalid, "instances[%d]: optimal must not be negative", i)
		case in.StopTime < 0:
			return errors.Wrapf(ErrInvalid, "instances[%d]: stop_time must not be negative", i)
		}
	}

	return nil
}

// SolverConfig builds the engine configuration for one instance. The
// instance's StopTime overrides the annealing budget, and a known optimum
// becomes the early-exit target.
func (c Config) SolverConfig(in Instance) (solver.Config, error) {
	alg, err := solver.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return solver.Config{}, errors.Wrap(err, "config")
	}

	sa := c.AnnealConfig()
	if in.StopTime > 0 {
		sa.StopTime = in.StopTime.Std()
	}

	return solver.Config{
		Algorithm: alg,
		BranchAndBound: solver.BranchAndBound{
			DisablePruning: c.BranchAndBound.NoPrune,
			TimeLimit:      c.BranchAndBound.TimeLimit.Std(),
		},
		Annealing: solver.Annealing{
			Config:    sa,
			Seed:      c.Seed,
			Target:    in.Optimal,
			HasTarget: in.Optimal > 0,
		},
	}, nil
}
