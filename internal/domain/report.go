package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// headerPrefix marks the header (and units) lines of an NDBC realtime2 report.
const headerPrefix = "#"

// missingToken is the NDBC sentinel for a missing measurement.
const missingToken = "MM"

// Report is a parsed whitespace-delimited tabular report: a column-name index
// built from the header line plus the raw token rows in listed order (NDBC
// lists the most recent reading first).
type Report struct {
	columns map[string]int
	rows    [][]string
}

// ParseReport parses raw report text. The first '#'-prefixed line is the
// header; later '#'-prefixed lines (the units line) are skipped. Data lines
// are split on runs of whitespace with no shape validation — short or odd
// rows are tolerated and resolved per field at lookup time.
//
// Returns ErrMalformedReport when no header line can be located; callers must
// treat that as a total source failure.
func ParseReport(text string) (*Report, error) {
	var columns map[string]int
	var rows [][]string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, headerPrefix) {
			if columns == nil {
				names := strings.Fields(strings.TrimPrefix(line, headerPrefix))
				columns = make(map[string]int, len(names))
				for i, name := range names {
					columns[name] = i
				}
			}
			continue
		}
		if columns == nil {
			// Data before any header cannot be mapped to columns.
			continue
		}
		rows = append(rows, strings.Fields(line))
	}

	if columns == nil {
		return nil, fmt.Errorf("no header line located: %w", ErrMalformedReport)
	}
	return &Report{columns: columns, rows: rows}, nil
}

// Column returns the index of the named column, or -1 when the report does
// not carry it. An unknown column is never an error.
func (r *Report) Column(name string) int {
	if i, ok := r.columns[name]; ok {
		return i
	}
	return -1
}

// Rows returns the data rows in the order the report listed them.
func (r *Report) Rows() [][]string {
	return r.rows
}

// Numeric returns the value at column col of a row, or nil when the column is
// absent, the row is too short, the token is the missing-data sentinel, or it
// does not parse as a finite number.
func Numeric(row []string, col int) *float64 {
	tok, ok := token(row, col)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Text returns the token at column col of a row, or nil when the column is
// absent, the row is too short, or the token is the missing-data sentinel.
func Text(row []string, col int) *string {
	tok, ok := token(row, col)
	if !ok {
		return nil
	}
	return &tok
}

func token(row []string, col int) (string, bool) {
	if col < 0 || col >= len(row) {
		return "", false
	}
	tok := row[col]
	if tok == missingToken {
		return "", false
	}
	return tok, true
}
