package console

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveRedraw(t *testing.T) {
	var buf bytes.Buffer
	l := NewLive(&buf)

	require.NoError(t, l.Render([]string{"dtemp:\t-248.6 °C", "vin:\t 2210 mV"}))
	first := buf.String()
	assert.NotContains(t, first, "\x1b[2K", "nothing to erase on first render")
	assert.Contains(t, first, "dtemp:\t-248.6 °C\n")

	buf.Reset()
	require.NoError(t, l.Render([]string{"vin:\t 2211 mV"}))
	second := buf.String()
	assert.Equal(t, 2, strings.Count(second, "\x1b[2K"))
	assert.Equal(t, 2, strings.Count(second, "\x1b[A")+strings.Count(second, "\x1b[1A"))
	assert.True(t, strings.HasSuffix(second, "vin:\t 2211 mV\n"))

	buf.Reset()
	require.NoError(t, l.Render(nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\x1b[2K"))
}

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlain(&buf)
	require.NoError(t, p.Render([]string{"a", "b"}))
	require.NoError(t, p.Render(nil))
	require.NoError(t, p.Render([]string{"c"}))
	assert.Equal(t, "a\nb\nc\n", buf.String())
}

func TestNew(t *testing.T) {
	assert.IsType(t, Nop{}, New(os.Stdout, true))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	assert.IsType(t, &Plain{}, New(f, false))
}
