package chart

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/luki/ltcsensors/internal/history"
	"github.com/luki/ltcsensors/internal/sensor"
)

func TestSparkline(t *testing.T) {
	values := []float64{1800, 1850, 1900, 2000, 2100, 2200, 2300, 2400, 2500}
	lv := Levels{Max: 2400, Min: 1850, HasMax: true, HasMin: true}
	result := RenderSparkline(values, 20, 1700, 2600, lv)
	assert.NotEmpty(t, result)
	assert.Equal(t, 20, ansi.StringWidth(result))
	t.Logf("Sparkline: %s", result)
}

func TestSparklineMinuteTicks(t *testing.T) {
	base := time.Date(2026, 2, 21, 14, 0, 50, 0, time.UTC)
	var pts []history.Point
	for i := 0; i < 20; i++ {
		pts = append(pts, history.Point{
			Value: float64(2200 + i%5),
			Time:  base.Add(time.Duration(i) * time.Second),
		})
	}

	result := RenderSparklinePoints(pts, 20, 2190, 2210, Levels{})
	assert.Contains(t, result, "│", "expected minute tick mark in sparkline")

	timeline := RenderTimeline(pts, 20)
	assert.Contains(t, timeline, "14:01")
}

func TestLevelColor(t *testing.T) {
	lv := Levels{Max: 100, Min: 0, HasMax: true, HasMin: true}
	assert.Equal(t, lipgloss.Color("196"), LevelColor(100, lv))
	assert.Equal(t, lipgloss.Color("196"), LevelColor(-1, lv))
	assert.Equal(t, lipgloss.Color("220"), LevelColor(97, lv))
	assert.Equal(t, lipgloss.Color("220"), LevelColor(3, lv))
	assert.Equal(t, lipgloss.Color("78"), LevelColor(50, lv))
	assert.Equal(t, lipgloss.Color("78"), LevelColor(1e6, Levels{}))
}

func TestLevelsOf(t *testing.T) {
	r := sensor.Reading{
		Name:  "dtemp",
		Value: sensor.Value{Number: -248.6, Unit: sensor.Celsius},
		Max:   sensor.Threshold{Name: "dtemp_hot_lvl", Present: true, Value: sensor.Value{Number: -245.8, Unit: sensor.Celsius}},
		Min:   sensor.Threshold{Name: "dtemp_cold_lvl", Present: true, Value: sensor.Value{Err: errors.New("bad")}},
	}
	assert.Equal(t, Levels{Max: -245.8, HasMax: true}, LevelsOf(r))
}

func TestLevelScale(t *testing.T) {
	lv := Levels{Max: 80, Min: 20, HasMax: true, HasMin: true}
	bar := RenderLevelScale(50, 0, 100, lv, 11)
	assert.Equal(t, 11, ansi.StringWidth(bar))
	assert.Equal(t, 1, strings.Count(ansi.Strip(bar), "◆"))
	assert.Equal(t, 2, strings.Count(ansi.Strip(bar), "▪"))
}

func TestRenderValue(t *testing.T) {
	out := RenderValue(sensor.Value{Number: 2210, Unit: sensor.Millivolts}, Levels{})
	assert.Equal(t, " 2210 mV", ansi.Strip(out))
	out = RenderValue(sensor.Value{Err: errors.New("bad")}, Levels{})
	assert.Equal(t, sensor.ErrorMarker, ansi.Strip(out))
}
