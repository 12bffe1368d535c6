// Package chart provides sparkline rendering with readings color-coded
// against their max/min levels, minute tick marks, timeline labels and
// level scale bars.
package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/ltcsensors/internal/history"
	"github.com/luki/ltcsensors/internal/sensor"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Levels are the max/min thresholds of a measurement in its display unit.
type Levels struct {
	Max    float64
	Min    float64
	HasMax bool
	HasMin bool
}

// LevelsOf extracts the levels of a reading. Thresholds that are missing
// or unreadable are left out.
func LevelsOf(r sensor.Reading) Levels {
	var lv Levels
	if r.Max.Present && r.Max.Value.Valid() {
		lv.Max, lv.HasMax = r.Max.Value.Number, true
	}
	if r.Min.Present && r.Min.Value.Valid() {
		lv.Min, lv.HasMin = r.Min.Value.Number, true
	}
	return lv
}

// margin is the share of the max-min band treated as close to a level.
const margin = 0.05

// LevelColor returns the color for a value given its levels.
func LevelColor(v float64, lv Levels) lipgloss.Color {
	band := math.Abs(lv.Max-lv.Min) * margin
	switch {
	case lv.HasMax && v >= lv.Max, lv.HasMin && v <= lv.Min:
		return lipgloss.Color("196") // red
	case lv.HasMax && lv.HasMin && (v >= lv.Max-band || v <= lv.Min+band):
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

func outside(v float64, lv Levels) bool {
	return (lv.HasMax && v >= lv.Max) || (lv.HasMin && v <= lv.Min)
}

// RenderSparkline renders a sparkline chart with color-coded blocks.
func RenderSparkline(values []float64, width int, rangeMin, rangeMax float64, lv Levels) string {
	if width <= 0 {
		return ""
	}
	pts := make([]history.Point, len(values))
	for i, v := range values {
		pts[i] = history.Point{Value: v}
	}
	return RenderSparklinePoints(pts, width, rangeMin, rangeMax, lv)
}

// RenderSparklinePoints renders a sparkline with minute tick marks on the
// timeline. A subtle pipe is drawn at each minute boundary.
func RenderSparklinePoints(points []history.Point, width int, rangeMin, rangeMax float64, lv Levels) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	if len(points) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	tickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	for i, p := range points {
		norm := (p.Value - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))
		idx := int(norm * 7)

		if isMinuteTick(points, i) {
			sb.WriteString(tickStyle.Render("│"))
			continue
		}
		style := lipgloss.NewStyle().Foreground(LevelColor(p.Value, lv))
		if outside(p.Value, lv) {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}

	return sb.String()
}

func isMinuteTick(points []history.Point, i int) bool {
	p := points[i]
	if p.Time.IsZero() {
		return false
	}
	if p.Time.Second() == 0 {
		return true
	}
	return i > 0 && !points[i-1].Time.IsZero() && p.Time.Minute() != points[i-1].Time.Minute()
}

// RenderTimeline renders the time labels under the sparkline, showing
// HH:MM at each minute tick position.
func RenderTimeline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	lastEnd := -1
	for i := range points {
		if !isMinuteTick(points, i) {
			continue
		}
		label := points[i].Time.Format("15:04")
		start := padLen + i - 2
		if start < 0 {
			start = 0
		}
		end := start + len(label)
		if end > width || start <= lastEnd+1 {
			continue
		}
		for j, ch := range label {
			line[start+j] = ch
		}
		lastEnd = end
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Render(string(line))
}

// RenderLevelScale renders a scale bar showing the current position between
// the min and max levels.
func RenderLevelScale(current, rangeMin, rangeMax float64, lv Levels, width int) string {
	if width <= 0 {
		return ""
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}
	pos := func(v float64) int {
		p := int(float64(width-1) * (v - rangeMin) / span)
		return max(0, min(width-1, p))
	}

	maxPos, minPos := -1, -1
	if lv.HasMax {
		maxPos = pos(lv.Max)
	}
	if lv.HasMin {
		minPos = pos(lv.Min)
	}
	curPos := pos(current)

	var sb strings.Builder
	for i := 0; i < width; i++ {
		switch i {
		case curPos:
			style := lipgloss.NewStyle().Foreground(LevelColor(current, lv)).Bold(true)
			sb.WriteString(style.Render("◆"))
		case maxPos, minPos:
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("▪"))
		default:
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Render("·"))
		}
	}
	return sb.String()
}

// RenderValue renders a converted reading with color coding.
func RenderValue(v sensor.Value, lv Levels) string {
	if !v.Valid() {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(v.String())
	}
	style := lipgloss.NewStyle().Foreground(LevelColor(v.Number, lv))
	if outside(v.Number, lv) {
		style = style.Bold(true)
	}
	return style.Render(v.String())
}
