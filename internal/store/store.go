// Package store handles the append-only CSV report written during a
// sampling run.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
)

// DefaultFile is the report written when no path is configured.
const DefaultFile = "dynagate2_report.csv"

// Report is an append-only CSV time series. The file is held open for the
// run and flushed after every row, so each appended row is on disk before
// the next tick starts.
type Report struct {
	path   string
	file   *os.File
	writer *csv.Writer
	width  int
}

// New returns a report writing to path. Nothing is created until
// WriteHeader is called.
func New(path string) *Report {
	return &Report{path: path}
}

// Path returns the report file path.
func (r *Report) Path() string {
	return r.path
}

// WriteHeader creates or truncates the report file and writes the column
// names as its first row.
func (r *Report) WriteHeader(columns []string) error {
	r.Close()
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot create report: %w", err)
	}
	r.file = f
	r.writer = csv.NewWriter(f)
	r.width = len(columns)
	return r.write(columns)
}

// AppendRow appends one row to the report. The row must have as many cells
// as the header.
func (r *Report) AppendRow(values []string) error {
	if r.writer == nil {
		return fmt.Errorf("report %s: header not written", r.path)
	}
	if len(values) != r.width {
		return fmt.Errorf("report %s: row has %d cells, want %d", r.path, len(values), r.width)
	}
	return r.write(values)
}

func (r *Report) write(values []string) error {
	if err := r.writer.Write(values); err != nil {
		return err
	}
	r.writer.Flush()
	return r.writer.Error()
}

// Close flushes and closes the report file.
func (r *Report) Close() {
	if r.writer != nil {
		r.writer.Flush()
	}
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
	r.writer = nil
}

// LoadFile reads a report back, returning the header and the data rows.
func LoadFile(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("report %s is empty", path)
	}
	return records[0], records[1:], nil
}
