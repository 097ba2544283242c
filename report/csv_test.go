package report_test

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspsearch/bench"
	"github.com/katalvlaran/tspsearch/report"
	"github.com/katalvlaran/tspsearch/solver"
)

func TestWriter_Rows(t *testing.T) {
	var buf bytes.Buffer
	w, err := report.NewWriter(&buf)
	require.NoError(t, err)

	session := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	in := bench.Instance{Name: "ftv47.atsp", Config: solver.Config{Algorithm: solver.SimulatedAnnealing}}
	run := bench.Run{
		Index:         2,
		Cost:          1850,
		Tour:          []int{0, 2, 1, 0},
		Elapsed:       1500 * time.Millisecond,
		RelativeError: bench.RelativeError(1850, 1776),
		Note:          "time",
	}
	require.NoError(t, w.WriteRun(session, in, run))
	require.NoError(t, w.WriteSummary(bench.Summary{
		Session:     session,
		Instance:    in.Name,
		Algorithm:   solver.SimulatedAnnealing,
		Runs:        []bench.Run{run},
		Best:        run,
		MeanError:   math.NaN(),
		MeanElapsed: 1234567 * time.Nanosecond,
	}))
	require.NoError(t, w.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, report.Header, rows[0])

	assert.Equal(t, []string{
		session.String(), "ftv47.atsp", "sa", report.KindRun, "2", "1850",
		"4.17", "1500000000", "1500", "time", "[0 2 1 | 0]",
	}, rows[1])
	assert.Equal(t, []string{
		session.String(), "ftv47.atsp", "sa", report.KindAverage, "1", "",
		"", "1234567", "1.23", "", "",
	}, rows[2])
	assert.Equal(t, report.KindBest, rows[3][3])
	assert.Equal(t, "1850", rows[3][5])
	assert.Equal(t, "[0 2 1 | 0]", rows[3][10])
}

func TestCreate_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := report.Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{report.Header}, rows)

	_, err = report.Create(filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
}
