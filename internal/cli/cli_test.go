package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspsearch/solver"
)

const square4 = `4
0 1 2 3
1 0 4 5
2 4 0 6
3 5 6 0
`

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// execute runs the command tree and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return plain(out.String()), plain(errOut.String()), err
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersion("dev", "", "") })

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tspsearch 1.0.0\ncommit: abc123\nbuilt: 2026-01-01\n", out)
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	var buf bytes.Buffer
	l := newLogger(&buf, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	assert.Same(t, l, loggerFromContext(ctx))

	newProgress(l).done("finished")
	assert.Contains(t, buf.String(), "finished (")
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "[                    ] 0%", plain(renderBar(0, 10)))
	assert.Equal(t, "[==========          ] 50%", plain(renderBar(5, 10)))
	assert.Equal(t, "[====================] 100%", plain(renderBar(10, 10)))
	assert.Equal(t, "[======              ] 33%", plain(renderBar(1, 3)))
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func TestSolveCmd_Exact(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "square4.txt", square4)

	for _, alg := range []string{"bfs", "dfs", "lowest-cost"} {
		t.Run(alg, func(t *testing.T) {
			out, _, err := execute(t, "solve", path, "-a", alg)
			require.NoError(t, err)
			assert.Contains(t, out, "square4")
			assert.Regexp(t, `distance\s+14`, out)
			assert.Regexp(t, `cities\s+4`, out)
			assert.Contains(t, out, "expanded")
		})
	}
}

func TestSolveCmd_AnnealingTarget(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "square4.txt", square4)

	out, _, err := execute(t, "solve", path, "-a", "sa",
		"--seed", "5", "--stop-time", "0", "--max-iterations", "1000", "--target", "14")
	require.NoError(t, err)
	assert.Regexp(t, `distance\s+14`, out)
	assert.Regexp(t, `stopped by\s+target`, out)
	assert.Contains(t, out, "optimal solution reached")
	assert.Regexp(t, `error\s+0\.00%`, out)
}

func TestSolveCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "square4.txt", square4)

	_, _, err := execute(t, "solve", path, "-a", "genetic")
	require.ErrorIs(t, err, solver.ErrUnsupportedAlgorithm)

	_, _, err = execute(t, "solve", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)

	_, _, err = execute(t, "solve")
	require.Error(t, err)
}

func TestBenchCmd_Suite(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "square4.txt", square4)
	output := filepath.Join(dir, "out.csv")
	cfgPath := writeTemp(t, dir, "suite.toml", fmt.Sprintf(`
algorithm = "lowest-cost"
runs = 2
output = %q

[[instances]]
file = "square4.txt"
optimal = 14
`, output))

	out, _, err := execute(t, "bench", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "square4.txt")
	assert.Contains(t, out, "0.00%")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// header + 2 runs + average + best
	require.Len(t, rows, 5)
	assert.Equal(t, "run", rows[1][3])
	assert.Equal(t, "average", rows[3][3])
	assert.Equal(t, "best", rows[4][3])
	assert.Equal(t, "14", rows[4][5])
	assert.Equal(t, rows[1][0], rows[4][0])
}

func TestBenchCmd_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "square4.txt", square4)
	output := filepath.Join(dir, "override.csv")
	cfgPath := writeTemp(t, dir, "pea3_config.txt", "algorithm=bfs\ninputData=square4.txt\noptimalSolution=14\n")

	_, stderr, err := execute(t, "bench", "-c", cfgPath, "--runs", "3", "-o", output, "-a", "dfs")
	require.NoError(t, err)
	assert.Contains(t, stderr, "progress")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "dfs", rows[1][2])
}

func TestBenchCmd_TestMode(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "square4.txt", square4)
	output := filepath.Join(dir, "never.csv")

	out, _, err := execute(t, "bench", "--test", "-i", path, "-a", "bfs", "-o", output)
	require.NoError(t, err)
	assert.Regexp(t, `distance\s+14`, out)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBenchCmd_NoInstances(t *testing.T) {
	_, _, err := execute(t, "bench", "-a", "bfs", "-o", filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no instances")
}

func TestBenchCmd_MissingInstanceReportedOnce(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTemp(t, dir, "suite.toml", `
algorithm = "bfs"
runs = 1

[[instances]]
file = "absent.atsp"
`)

	out, stderr, err := execute(t, "bench", "-c", cfgPath, "-o", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.atsp")
	assert.NotContains(t, out, "absent.atsp")
	assert.NotContains(t, stderr, "absent.atsp")
}
