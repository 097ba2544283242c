// Package problem - matrix file loading.
//
// Two textual formats are accepted:
//
//  1. TSPLIB explicit matrices (.atsp/.tsp), e.g.
//
//     NAME: ftv33
//     TYPE: ATSP
//     DIMENSION: 34
//     EDGE_WEIGHT_TYPE: EXPLICIT
//     EDGE_WEIGHT_FORMAT: FULL_MATRIX
//     EDGE_WEIGHT_SECTION
//     100000000 26 82 ...
//     EOF
//
//  2. Plain matrices: the first integer is N, followed by N×N integers in
//     row-major order. Line breaks are not significant.
//
// The format is chosen by the first non-blank token: an integer selects the
// plain format, anything else is read as a TSPLIB header.
package problem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TSPLIB header keys and values understood by the loader.
const (
	keyName         = "NAME"
	keyType         = "TYPE"
	keyDimension    = "DIMENSION"
	keyWeightType   = "EDGE_WEIGHT_TYPE"
	keyWeightFormat = "EDGE_WEIGHT_FORMAT"
	sectionWeights  = "EDGE_WEIGHT_SECTION"
	tokenEOF        = "EOF"

	weightExplicit   = "EXPLICIT"
	formatFullMatrix = "FULL_MATRIX"
)

// LoadFile opens path and parses it with Load. When the file carries no NAME
// header the base file name (without extension) becomes the instance name.
func LoadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.name == "" {
		p.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return p, nil
}

// Load parses a distance matrix from r. Any structural problem is reported
// as an error wrapping ErrFileFormat; value problems wrap both ErrFileFormat
// and the sentinel from New, such as ErrNegativeWeight.
func Load(r io.Reader) (*Problem, error) {
	var (
		sc    = bufio.NewScanner(r)
		lines []string
	)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}

	first := firstToken(lines)
	if first == "" {
		return nil, fmt.Errorf("%w: no data", ErrFileFormat)
	}
	if _, err := strconv.Atoi(first); err == nil {
		return parsePlain(lines)
	}

	return parseTSPLIB(lines)
}

// firstToken returns the first whitespace-separated token of the input, or "".
func firstToken(lines []string) string {
	var f []string
	for _, line := range lines {
		if f = strings.Fields(line); len(f) > 0 {
			return f[0]
		}
	}

	return ""
}

// parsePlain reads "N d00 d01 ... d(N-1)(N-1)".
func parsePlain(lines []string) (*Problem, error) {
	values, err := parseInts(lines, 1)
	if err != nil {
		return nil, err
	}
	n := values[0]
	if n <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrFileFormat, n)
	}

	return buildSquare("", n, values[1:])
}

// parseTSPLIB reads the header block up to EDGE_WEIGHT_SECTION and then the
// weight section up to EOF (or end of input).
func parseTSPLIB(lines []string) (*Problem, error) {
	var (
		name         string
		n            = -1
		weightType   = weightExplicit
		weightFormat = formatFullMatrix
		i            int
		section      = -1
	)

	for i = 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, sectionWeights) {
			section = i + 1
			break
		}
		key, value, ok := splitHeader(line)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected KEY: VALUE, got %q", ErrFileFormat, i+1, line)
		}
		switch key {
		case keyName:
			name = value
		case keyDimension:
			d, err := strconv.Atoi(value)
			if err != nil || d <= 0 {
				return nil, fmt.Errorf("%w: line %d: bad DIMENSION %q", ErrFileFormat, i+1, value)
			}
			n = d
		case keyWeightType:
			weightType = strings.ToUpper(value)
		case keyWeightFormat:
			weightFormat = strings.ToUpper(value)
		case keyType:
			// TSP / ATSP both carry full matrices here; nothing to record.
		}
	}

	switch {
	case section < 0:
		return nil, fmt.Errorf("%w: missing %s", ErrFileFormat, sectionWeights)
	case n < 0:
		return nil, fmt.Errorf("%w: missing %s", ErrFileFormat, keyDimension)
	case weightType != weightExplicit:
		return nil, fmt.Errorf("%w: unsupported %s %q", ErrFileFormat, keyWeightType, weightType)
	case weightFormat != formatFullMatrix:
		return nil, fmt.Errorf("%w: unsupported %s %q", ErrFileFormat, keyWeightFormat, weightFormat)
	}

	var body []string
	for i = section; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == tokenEOF {
			break
		}
		body = append(body, lines[i])
	}
	values, err := parseInts(body, section+1)
	if err != nil {
		return nil, err
	}

	return buildSquare(name, n, values)
}

// splitHeader splits "KEY : VALUE" (colon optional spacing) into its parts.
func splitHeader(line string) (string, string, bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}

	return strings.ToUpper(strings.TrimSpace(line[:idx])), strings.TrimSpace(line[idx+1:]), true
}

// parseInts converts every token of lines into an int. firstLine is the
// 1-based line number of lines[0] in the input, for messages.
func parseInts(lines []string, firstLine int) ([]int, error) {
	var out []int
	for i, line := range lines {
		for _, tok := range strings.Fields(line) {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q is not an integer", ErrFileFormat, firstLine+i, tok)
			}
			out = append(out, v)
		}
	}

	return out, nil
}

// buildSquare reshapes n*n row-major values into a Problem.
func buildSquare(name string, n int, values []int) (*Problem, error) {
	if len(values) != n*n {
		return nil, fmt.Errorf("%w: dimension %d needs %d weights, found %d", ErrFileFormat, n, n*n, len(values))
	}
	rows := make([][]int, n)
	var i int
	for i = 0; i < n; i++ {
		rows[i] = values[i*n : (i+1)*n]
	}

	p, err := NewNamed(name, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileFormat, err)
	}

	return p, nil
}
