package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luki/ltcsensors/internal/sensor"
	"github.com/luki/ltcsensors/internal/store"
)

func TestExpandShortFlags(t *testing.T) {
	got := expandShortFlags([]string{"-s", "-l", "5", "-f=out.csv", "--tui", "-interval", "2s"})
	assert.Equal(t, []string{"-silent", "-length", "5", "-file=out.csv", "--tui", "-interval", "2s"}, got)
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load([]string{})
	require.NoError(t, err)
	assert.False(t, c.Silent)
	assert.Equal(t, 120, c.Length)
	assert.Equal(t, store.DefaultFile, c.File)
	assert.Equal(t, sensor.DefaultDir, c.Dir)
	assert.Equal(t, time.Second, c.Interval)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.LegacyMinRule)
	assert.False(t, c.Tui)
}

func TestLoadShortFlags(t *testing.T) {
	c, err := Load([]string{"-s", "-l", "3", "-f", "out.csv"})
	require.NoError(t, err)
	assert.True(t, c.Silent)
	assert.Equal(t, 3, c.Length)
	assert.Equal(t, "out.csv", c.File)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("LTCSENSORS_LENGTH", "7")
	t.Setenv("LTCSENSORS_DIR", "/tmp/hwmon")

	c, err := Load([]string{"-length", "9"})
	require.NoError(t, err)
	assert.Equal(t, 9, c.Length, "flags win over the environment")
	assert.Equal(t, "/tmp/hwmon", c.Dir)
}

func TestValidate(t *testing.T) {
	valid := CliConfig{Length: 1, Interval: time.Second, File: "r.csv", Dir: "/x"}
	assert.NoError(t, valid.Validate())

	c := valid
	c.Length = 0
	assert.ErrorContains(t, c.Validate(), "length")

	c = valid
	c.Interval = 0
	assert.ErrorContains(t, c.Validate(), "interval")

	c = valid
	c.File = ""
	assert.ErrorContains(t, c.Validate(), "report file")

	c = valid
	c.Dir = ""
	assert.ErrorContains(t, c.Validate(), "device directory")
}

func TestLoadRejectsInvalidLength(t *testing.T) {
	_, err := Load([]string{"-l", "0"})
	assert.Error(t, err)
}
