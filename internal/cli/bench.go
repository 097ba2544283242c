package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspsearch/bench"
	"github.com/katalvlaran/tspsearch/config"
	"github.com/katalvlaran/tspsearch/problem"
	"github.com/katalvlaran/tspsearch/report"
)

func newBenchCmd() *cobra.Command {
	var (
		flags  engineFlags
		runs   int
		output string
		input  string
		test   bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark an engine over a suite of instances",
		Long: `Bench runs the selected engine repeatedly on every instance of the suite,
computes the relative error against each known optimum and writes one CSV row
per run plus an average and a best-tour row per instance.

The suite comes from the [[instances]] list of the configuration file, or from
--input when no list is configured. With --test (or testMode=1) the engine runs
once on the input file and nothing is written.`,
		Example: `  tspsearch bench -c suite.toml
  tspsearch bench -c pea3_config.txt --runs 3 -o quick.csv
  tspsearch bench --input ftv47.atsp -a sa --stop-time 10s --test`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("runs") {
				cfg.Runs = runs
			}
			if fs.Changed("output") {
				cfg.Output = output
			}
			if fs.Changed("input") {
				cfg.Input = input
			}
			if fs.Changed("test") {
				cfg.TestMode = test
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.TestMode {
				return runSolve(cmd, resolvePath(flags.configPath, cfg.Input), cfg)
			}
			return runBench(cmd, flags.configPath, cfg)
		},
	}

	flags.register(cmd.Flags())
	d := config.Defaults()
	cmd.Flags().IntVarP(&runs, "runs", "n", d.Runs, "runs per instance")
	cmd.Flags().StringVarP(&output, "output", "o", d.Output, "CSV report path")
	cmd.Flags().StringVarP(&input, "input", "i", "", "single instance file, used when no suite is configured")
	cmd.Flags().BoolVar(&test, "test", false, "run once on --input and print the result")

	return cmd
}

func runBench(cmd *cobra.Command, configPath string, cfg config.Config) error {
	logger := loggerFromContext(cmd.Context())
	out := cmd.OutOrStdout()

	suite := cfg.Suite()
	if len(suite) == 0 {
		return errors.Wrap(config.ErrInvalid, "bench: no instances configured, use [[instances]] or --input")
	}

	instances := make([]bench.Instance, 0, len(suite))
	for _, in := range suite {
		path := resolvePath(configPath, in.File)
		p, err := problem.LoadFile(path)
		if err != nil {
			return errors.Wrap(err, "bench")
		}
		sc, err := cfg.SolverConfig(in)
		if err != nil {
			return err
		}
		instances = append(instances, bench.Instance{
			Name:    filepath.Base(in.File),
			Problem: p,
			Optimal: in.Optimal,
			Config:  sc,
		})
	}

	w, err := report.Create(cfg.Output)
	if err != nil {
		return err
	}

	runner := bench.NewRunner(cfg.Runs, logger, w)
	stderr := cmd.ErrOrStderr()
	tty := isTerminal(stderr)
	runner.Progress = func(done, total int) {
		if tty {
			fmt.Fprint(stderr, "\r"+renderBar(done, total))
			if done == total {
				fmt.Fprintln(stderr)
			}
			return
		}
		logger.Info("progress", "done", done, "total", total)
	}
	logger.Debug("benchmark session", "id", runner.Session())

	prog := newProgress(logger)
	summaries, runErr := runner.Run(cmd.Context(), instances)
	if err := w.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if len(summaries) > 0 {
		printTitle(out, "Summary")
		printSummaries(out, summaries)
		printFile(out, cfg.Output)
	}
	if runErr != nil {
		return runErr
	}
	prog.done(fmt.Sprintf("benchmarked %d instance(s)", len(summaries)))
	printSuccess(out, "%d runs written", cfg.Runs*len(summaries))

	return nil
}

// resolvePath keeps paths that exist as given and otherwise resolves relative
// paths against the configuration file's directory.
func resolvePath(configPath, file string) string {
	if configPath == "" || filepath.IsAbs(file) {
		return file
	}
	if _, err := os.Stat(file); err == nil {
		return file
	}
	return filepath.Join(filepath.Dir(configPath), file)
}
