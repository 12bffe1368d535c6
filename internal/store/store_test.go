package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"timestamp", "dtemp", "iin", "gpi", "vcap", "vcap1", "vcap2", "vcap3", "vcap4", "vin", "vout"}

func TestReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	r := New(path)
	defer r.Close()
	require.NoError(t, r.WriteHeader(columns))

	rows := [][]string{
		{"14:30:00", "-248.6 °C", "", "", "", "", "", "", "", " 2210 mV", ""},
		{"14:30:01", "Error", "", "", "", " 1835 mV", "", "", "", "", ""},
		{"14:30:02", "", "", "", "", "", "", "", "", "", ""},
	}
	for _, row := range rows {
		require.NoError(t, r.AppendRow(row))
	}
	r.Close()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	require.Len(t, lines, len(rows)+1)
	assert.Equal(t, "timestamp,dtemp,iin,gpi,vcap,vcap1,vcap2,vcap3,vcap4,vin,vout", lines[0])

	header, loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, columns, header)
	require.Len(t, loaded, len(rows))
	for i, row := range loaded {
		assert.Len(t, row, 11)
		assert.Equal(t, rows[i], row)
	}
}

func TestReportTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,data\n"), 0644))

	r := New(path)
	require.NoError(t, r.WriteHeader(columns))
	r.Close()

	header, rows, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, columns, header)
	assert.Empty(t, rows)
}

func TestReportRejectsBadRows(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "report.csv"))
	defer r.Close()

	assert.Error(t, r.AppendRow(make([]string, 11)), "append before header")

	require.NoError(t, r.WriteHeader(columns))
	assert.Error(t, r.AppendRow([]string{"14:30:00"}))
}

func TestReportCreateFails(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing", "report.csv"))
	assert.Error(t, r.WriteHeader(columns))
}
