package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/tspsearch/anneal"
	"github.com/katalvlaran/tspsearch/bench"
	"github.com/katalvlaran/tspsearch/bnb"
	"github.com/katalvlaran/tspsearch/config"
	"github.com/katalvlaran/tspsearch/problem"
	"github.com/katalvlaran/tspsearch/solver"
	"github.com/katalvlaran/tspsearch/tour"
)

// observeEvery throttles annealing debug logs.
const observeEvery = 100_000

type engineFlags struct {
	configPath  string
	algorithm   string
	seed        int64
	temperature float64
	rate        float64
	minTemp     float64
	stopTime    time.Duration
	maxIter     int
	initial     string
	cooling     string
	noPrune     bool
	timeLimit   time.Duration
}

// register binds the engine flags with defaults taken from config.Defaults.
func (f *engineFlags) register(fs *pflag.FlagSet) {
	d := config.Defaults()
	fs.StringVarP(&f.configPath, "config", "c", "", "configuration file (.toml, .yaml or key=value)")
	fs.StringVarP(&f.algorithm, "algorithm", "a", d.Algorithm, "bfs, dfs, lowest-cost or sa")
	fs.Int64Var(&f.seed, "seed", d.Seed, "random seed for annealing (0 picks one from the clock)")
	fs.Float64Var(&f.temperature, "temperature", d.Annealing.InitialTemperature, "initial annealing temperature")
	fs.Float64Var(&f.rate, "cooling-rate", d.Annealing.CoolingRate, "geometric factor or logarithmic coefficient")
	fs.Float64Var(&f.minTemp, "min-temperature", d.Annealing.MinTemperature, "stop once the temperature falls to this value (0 disables)")
	fs.DurationVar(&f.stopTime, "stop-time", d.Annealing.StopTime.Std(), "annealing time budget (0 disables)")
	fs.IntVar(&f.maxIter, "max-iterations", d.Annealing.MaxIterations, "annealing iteration budget (0 disables)")
	fs.StringVar(&f.initial, "initial", d.Annealing.InitialSolution, "starting tour: random or nearestNeighbor")
	fs.StringVar(&f.cooling, "cooling", d.Annealing.Cooling, "cooling schedule: geometric or logarithmic")
	fs.BoolVar(&f.noPrune, "no-prune", d.BranchAndBound.NoPrune, "disable branch-and-bound pruning")
	fs.DurationVar(&f.timeLimit, "time-limit", d.BranchAndBound.TimeLimit.Std(), "soft branch-and-bound time limit (0 disables)")
}

// resolve loads --config when given and lets explicitly set flags override it.
// The result is not validated.
func (f *engineFlags) resolve(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Defaults()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	set := func(name string, apply func()) {
		if f.configPath == "" || fs.Changed(name) {
			apply()
		}
	}
	set("algorithm", func() { cfg.Algorithm = f.algorithm })
	set("seed", func() { cfg.Seed = f.seed })
	set("temperature", func() { cfg.Annealing.InitialTemperature = f.temperature })
	set("cooling-rate", func() { cfg.Annealing.CoolingRate = f.rate })
	set("min-temperature", func() { cfg.Annealing.MinTemperature = f.minTemp })
	set("stop-time", func() { cfg.Annealing.StopTime = config.Duration(f.stopTime) })
	set("max-iterations", func() { cfg.Annealing.MaxIterations = f.maxIter })
	set("initial", func() { cfg.Annealing.InitialSolution = f.initial })
	set("cooling", func() { cfg.Annealing.Cooling = f.cooling })
	set("no-prune", func() { cfg.BranchAndBound.NoPrune = f.noPrune })
	set("time-limit", func() { cfg.BranchAndBound.TimeLimit = config.Duration(f.timeLimit) })

	return cfg, nil
}

func newSolveCmd() *cobra.Command {
	var (
		flags  engineFlags
		target int
	)

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve one distance-matrix file",
		Long: `Solve loads a TSPLIB (EXPLICIT, FULL_MATRIX) or plain "N then N×N" matrix
and runs the selected engine once, printing the route, its distance and the
execution time.`,
		Example: `  tspsearch solve ftv47.atsp -a sa --stop-time 30s --cooling logarithmic --cooling-rate 1
  tspsearch solve small.txt -a lowest-cost
  tspsearch solve ftv47.atsp -c run.toml --target 1776`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("target") || cfg.Optimal == 0 {
				cfg.Optimal = target
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSolve(cmd, args[0], cfg)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&target, "target", 0, "known optimum: annealing stops when it is reached (0 disables)")

	return cmd
}

func runSolve(cmd *cobra.Command, path string, cfg config.Config) error {
	logger := loggerFromContext(cmd.Context())
	out := cmd.OutOrStdout()

	p, err := problem.LoadFile(path)
	if err != nil {
		return errors.Wrap(err, "solve")
	}
	logger.Debug("loaded instance", "name", p.Name(), "cities", p.Cities(), "symmetric", p.Symmetric())

	sc, err := cfg.SolverConfig(config.Instance{File: path, Optimal: cfg.Optimal})
	if err != nil {
		return err
	}
	sc.BranchAndBound.OnIncumbent = func(cost int) {
		logger.Debug("new incumbent", "cost", cost)
	}
	sc.Annealing.Observer = func(s anneal.Snapshot) {
		if s.Iteration%observeEvery == 0 {
			logger.Debug("annealing", "iteration", s.Iteration, "temperature", s.Temperature, "current", s.Current, "best", s.Best)
		}
	}

	prog := newProgress(logger)
	res, err := solver.Solve(p, sc)
	switch {
	case err == nil:
	case errors.Is(err, bnb.ErrTimeLimit) && res.Tour != nil:
		printWarning(out, "time limit reached, the route below is the best found so far")
	default:
		return errors.Wrap(err, "solve")
	}
	prog.done(fmt.Sprintf("solved %s with %s", p.Name(), res.Algorithm))

	printResult(out, p, res, cfg.Optimal)
	return nil
}

// printResult shows the route, distance, execution time and problem size.
func printResult(w io.Writer, p *problem.Problem, res solver.Result, optimal int) {
	printTitle(w, "%s", p.Name())
	printKeyValue(w, "cities", fmt.Sprint(p.Cities()))
	printKeyValue(w, "algorithm", res.Algorithm.String())
	printKeyValue(w, "route", tour.String(res.Tour))
	printKeyValue(w, "distance", fmt.Sprint(res.Cost))
	if optimal > 0 {
		printKeyValue(w, "error", formatPercent(bench.RelativeError(res.Cost, optimal)))
	}
	printKeyValue(w, "time", formatElapsed(res.Elapsed))

	if ex := res.Exact; ex != nil {
		printKeyValue(w, "expanded", fmt.Sprint(ex.Stats.Expanded))
		printKeyValue(w, "pruned", fmt.Sprint(ex.Stats.Pruned))
		printKeyValue(w, "completed", fmt.Sprint(ex.Stats.Completed))
		printKeyValue(w, "peak frontier", fmt.Sprint(ex.Stats.PeakFrontier))
	}
	if h := res.Heuristic; h != nil {
		printKeyValue(w, "initial", fmt.Sprint(h.InitialDistance))
		printKeyValue(w, "iterations", fmt.Sprint(h.Iterations))
		printKeyValue(w, "accepted", fmt.Sprint(h.Accepted))
		printKeyValue(w, "stopped by", h.Reason.String())
		if h.Seed != 0 {
			printKeyValue(w, "seed", fmt.Sprint(h.Seed))
		}
		if h.Reason == anneal.StopTarget {
			printSuccess(w, "optimal solution reached")
		}
	}
}
