// Package report writes benchmark results as CSV.
//
// One row is written per run, followed by an "average" row and a "best" row
// per instance. Every row carries the benchmark session so files from
// several invocations can be concatenated and still be told apart.
package report

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/katalvlaran/tspsearch/bench"
	"github.com/katalvlaran/tspsearch/tour"
)

// Header is the first row of every file.
var Header = []string{
	"session", "file", "algorithm", "kind", "run", "distance",
	"relative_error_pct", "time_ns", "time_ms", "note", "tour",
}

// Row kinds.
const (
	KindRun     = "run"
	KindAverage = "average"
	KindBest    = "best"
)

// Writer is a bench.Sink backed by encoding/csv. Rows are flushed as they are
// written.
type Writer struct {
	csv    *csv.Writer
	closer io.Closer
}

var _ bench.Sink = (*Writer)(nil)

// NewWriter writes the header to w and returns the Writer.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := &Writer{csv: csv.NewWriter(w)}
	if err := cw.write(Header); err != nil {
		return nil, err
	}

	return cw, nil
}

// Create truncates path and returns a Writer that closes the file on Close.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "report")
	}
	w, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f

	return w, nil
}

// WriteRun implements bench.Sink.
func (w *Writer) WriteRun(session uuid.UUID, in bench.Instance, run bench.Run) error {
	return w.write([]string{
		session.String(),
		in.Name,
		in.Config.Algorithm.String(),
		KindRun,
		strconv.Itoa(run.Index),
		strconv.Itoa(run.Cost),
		formatPercent(run.RelativeError),
		strconv.FormatInt(run.Elapsed.Nanoseconds(), 10),
		strconv.FormatInt(run.Elapsed.Milliseconds(), 10),
		run.Note,
		tour.String(run.Tour),
	})
}

// WriteSummary implements bench.Sink.
func (w *Writer) WriteSummary(s bench.Summary) error {
	if err := w.write([]string{
		s.Session.String(),
		s.Instance,
		s.Algorithm.String(),
		KindAverage,
		strconv.Itoa(len(s.Runs)),
		"",
		formatPercent(s.MeanError),
		strconv.FormatInt(s.MeanElapsed.Nanoseconds(), 10),
		formatMillis(s.MeanElapsed),
		"",
		"",
	}); err != nil {
		return err
	}

	return w.write([]string{
		s.Session.String(),
		s.Instance,
		s.Algorithm.String(),
		KindBest,
		strconv.Itoa(s.Best.Index),
		strconv.Itoa(s.Best.Cost),
		formatPercent(s.Best.RelativeError),
		"",
		"",
		s.Best.Note,
		tour.String(s.Best.Tour),
	})
}

// Close flushes and closes the underlying file, if Create opened one.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return errors.Wrap(err, "report: flush")
	}
	if w.closer != nil {
		return errors.Wrap(w.closer.Close(), "report: close")
	}

	return nil
}

func (w *Writer) write(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return errors.Wrap(err, "report: write")
	}
	w.csv.Flush()

	return errors.Wrap(w.csv.Error(), "report: flush")
}

func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatMillis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 2, 64)
}
