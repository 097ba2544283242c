package anneal

import "math"

// Schedule produces the temperature after a completed iteration.
type Schedule interface {
	// Next returns the temperature once `iteration` iterations (≥ 1) have
	// completed; prev is the temperature used by the last iteration.
	Next(prev float64, iteration int) float64
}

// GeometricSchedule compounds: T ← T·Rate.
type GeometricSchedule struct {
	Rate float64
}

// Next implements Schedule.
func (g GeometricSchedule) Next(prev float64, _ int) float64 { return prev * g.Rate }

// LogarithmicSchedule recomputes from the iteration counter:
// T(k) = Initial / (1 + Rate·ln(1+k)). For Rate > 0 it is strictly decreasing
// in k and never reaches zero.
type LogarithmicSchedule struct {
	Initial float64
	Rate    float64
}

// Next implements Schedule. prev is ignored: the value is not compounded.
func (l LogarithmicSchedule) Next(_ float64, iteration int) float64 {
	return l.Initial / (1 + l.Rate*math.Log1p(float64(iteration)))
}

// NewSchedule returns the schedule selected by cfg.Cooling.
func NewSchedule(cfg Config) (Schedule, error) {
	m, err := ParseCoolingMethod(string(cfg.Cooling))
	if err != nil {
		return nil, err
	}
	if m == Logarithmic {
		return LogarithmicSchedule{Initial: cfg.InitialTemperature, Rate: cfg.CoolingRate}, nil
	}

	return GeometricSchedule{Rate: cfg.CoolingRate}, nil
}

// AcceptanceProbability is the Metropolis criterion: 1 for an improving
// candidate, exp((current-candidate)/T) otherwise. A non-positive temperature
// rejects every non-improving candidate.
func AcceptanceProbability(current, candidate int, temperature float64) float64 {
	if candidate < current {
		return 1
	}
	if temperature <= 0 {
		return 0
	}

	return math.Exp(float64(current-candidate) / temperature)
}
