// Package anneal - configuration, results and sentinels for simulated annealing.
package anneal

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidConfiguration is returned for unknown method names and for
// parameter values outside their documented ranges. Unknown names never fall
// back to a default.
var ErrInvalidConfiguration = errors.New("anneal: invalid configuration")

// InitialMethod names the construction of the starting tour.
type InitialMethod string

const (
	// Random starts from a uniformly shuffled permutation.
	Random InitialMethod = "random"
	// NearestNeighbor starts from a random city and greedily follows the
	// nearest unvisited city (lowest index wins ties).
	NearestNeighbor InitialMethod = "nearestNeighbor"
)

// ParseInitialMethod maps a case-insensitive name to an InitialMethod.
// Accepted: "random", "nearestNeighbor", "nearest-neighbor", "nn".
func ParseInitialMethod(name string) (InitialMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random":
		return Random, nil
	case "nearestneighbor", "nearest-neighbor", "nearest_neighbor", "nn":
		return NearestNeighbor, nil
	default:
		return "", fmt.Errorf("%w: unknown initial solution method %q", ErrInvalidConfiguration, name)
	}
}

// CoolingMethod names the temperature schedule.
type CoolingMethod string

const (
	// Geometric multiplies the temperature by CoolingRate every iteration.
	Geometric CoolingMethod = "geometric"
	// Logarithmic sets T(k) = T0 / (1 + CoolingRate·ln(1+k)).
	Logarithmic CoolingMethod = "logarithmic"
)

// ParseCoolingMethod maps a case-insensitive name to a CoolingMethod.
// Accepted: "geometric", "logarithmic", "log".
func ParseCoolingMethod(name string) (CoolingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "geometric":
		return Geometric, nil
	case "logarithmic", "log":
		return Logarithmic, nil
	default:
		return "", fmt.Errorf("%w: unknown cooling method %q", ErrInvalidConfiguration, name)
	}
}

// Config holds the annealing parameters.
//
// CoolingRate has one field but two meanings, selected by Cooling:
//   - Geometric:   multiplicative factor per iteration, 0 < rate ≤ 1.
//   - Logarithmic: decay constant in T0/(1+rate·ln(1+k)), rate > 0.
type Config struct {
	// InitialTemperature is T0 (> 0).
	InitialTemperature float64
	// CoolingRate, see the type comment.
	CoolingRate float64
	// StopTime is the wall-clock budget; 0 disables the time limit.
	StopTime time.Duration
	// MinTemperature stops the run once the temperature falls to or below it;
	// 0 disables the check.
	MinTemperature float64
	// MaxIterations stops the run after this many iterations; 0 disables it.
	MaxIterations int
	// InitialSolution selects the starting tour construction.
	InitialSolution InitialMethod
	// Cooling selects the temperature schedule.
	Cooling CoolingMethod
}

// DefaultConfig returns geometric cooling from a random start with a one
// minute budget.
func DefaultConfig() Config {
	return Config{
		InitialTemperature: 10000,
		CoolingRate:        0.99999,
		StopTime:           time.Minute,
		InitialSolution:    Random,
		Cooling:            Geometric,
	}
}

// Validate checks ranges and names. At least one stopping condition must be
// active, otherwise the loop would never end.
func (c Config) Validate() error {
	if _, err := ParseInitialMethod(string(c.InitialSolution)); err != nil {
		return err
	}
	cooling, err := ParseCoolingMethod(string(c.Cooling))
	if err != nil {
		return err
	}

	switch {
	case !(c.InitialTemperature > 0) || math.IsInf(c.InitialTemperature, 0):
		return fmt.Errorf("%w: initial temperature must be positive and finite, got %v", ErrInvalidConfiguration, c.InitialTemperature)
	case cooling == Geometric && !(c.CoolingRate > 0 && c.CoolingRate <= 1):
		return fmt.Errorf("%w: geometric cooling rate must be in (0,1], got %v", ErrInvalidConfiguration, c.CoolingRate)
	case cooling == Logarithmic && (!(c.CoolingRate > 0) || math.IsInf(c.CoolingRate, 0)):
		return fmt.Errorf("%w: logarithmic cooling rate must be positive, got %v", ErrInvalidConfiguration, c.CoolingRate)
	case c.StopTime < 0, c.MaxIterations < 0, c.MinTemperature < 0:
		return fmt.Errorf("%w: negative budget", ErrInvalidConfiguration)
	}

	if c.StopTime == 0 && c.MaxIterations == 0 {
		if c.MinTemperature == 0 {
			return fmt.Errorf("%w: no stopping condition", ErrInvalidConfiguration)
		}
		if k := c.iterationsToCool(cooling); !(k <= math.MaxInt) {
			return fmt.Errorf("%w: temperature %v is not reached within %d iterations, set a time or iteration budget",
				ErrInvalidConfiguration, c.MinTemperature, math.MaxInt)
		}
	}

	return nil
}

// iterationsToCool estimates how many iterations the schedule needs before the
// temperature falls to MinTemperature. +Inf when it never does.
func (c Config) iterationsToCool(cooling CoolingMethod) float64 {
	ratio := c.InitialTemperature / c.MinTemperature
	if ratio <= 1 {
		return 0
	}
	if cooling == Logarithmic {
		// T0/(1+r·ln(1+k)) ≤ Tmin  ⇔  k ≥ e^((T0/Tmin-1)/r) - 1
		return math.Expm1((ratio - 1) / c.CoolingRate)
	}
	if c.CoolingRate >= 1 {
		return math.Inf(1)
	}
	// T0·r^k ≤ Tmin  ⇔  k ≥ ln(T0/Tmin) / -ln(r)
	return math.Ceil(math.Log(ratio) / -math.Log1p(c.CoolingRate-1))
}

// StopReason tells which condition ended the run.
type StopReason int

const (
	// StopTime means the wall-clock budget was exhausted.
	StopTime StopReason = iota
	// StopTemperature means the temperature fell to MinTemperature.
	StopTemperature
	// StopIterations means MaxIterations was reached.
	StopIterations
	// StopTarget means the current distance hit the caller's target.
	StopTarget
)

func (r StopReason) String() string {
	switch r {
	case StopTime:
		return "time"
	case StopTemperature:
		return "temperature"
	case StopIterations:
		return "iterations"
	case StopTarget:
		return "target"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result is the outcome of a run.
type Result struct {
	// Tour is the best open tour found (length N, closing edge implicit).
	Tour []int
	// Distance is the closed-cycle cost of Tour.
	Distance int
	// InitialDistance is the cost of the constructed starting tour.
	InitialDistance int
	// Iterations is the number of neighbor evaluations performed.
	Iterations int
	// Accepted counts accepted moves, including worsening ones.
	Accepted int
	// Improvements counts updates of the best tour.
	Improvements int
	// FinalTemperature is the temperature when the loop ended.
	FinalTemperature float64
	// Reason is the condition that ended the run.
	Reason StopReason
	// Seed is the RNG seed used, or 0 when the caller supplied its own *rand.Rand.
	Seed int64
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Snapshot is passed to the observer after every iteration.
type Snapshot struct {
	Iteration   int
	Temperature float64
	Candidate   int
	Current     int
	Best        int
	Accepted    bool
}
