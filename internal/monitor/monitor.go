// Package monitor implements the live dashboard for a sampling run using
// BubbleTea, with sparkline histories color-coded against each
// measurement's max/min levels.
package monitor

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/ltcsensors/internal/chart"
	"github.com/luki/ltcsensors/internal/history"
	"github.com/luki/ltcsensors/internal/sampler"
	"github.com/luki/ltcsensors/internal/sensor"
)

const historySize = 600 // 10 minutes at 1s interval

// Stepper runs one tick: sample, append the row, return the snapshot.
type Stepper interface {
	Step() (sampler.Snapshot, error)
	Interval() time.Duration
}

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type sampleMsg struct {
	snap sampler.Snapshot
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the live dashboard.
type Model struct {
	stepper   Stepper
	report    string
	ticks     int // ticks to run
	done      int // ticks completed
	snap      sampler.Snapshot
	history   *history.Store
	err       error
	width     int
	height    int
	startTime time.Time
	paused    bool
}

// New creates the dashboard for a run of ticks ticks appending to report.
func New(stepper Stepper, report string, ticks int) Model {
	return Model{
		stepper:   stepper,
		report:    report,
		ticks:     ticks,
		history:   history.NewStore(historySize),
		startTime: time.Now(),
	}
}

// Err returns the error that ended the run, if any.
func (m Model) Err() error {
	return m.err
}

// Done returns the number of completed ticks.
func (m Model) Done() int {
	return m.done
}

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.stepper.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) stepCmd() tea.Msg {
	snap, err := m.stepper.Step()
	if err != nil {
		return errMsg{err}
	}
	return sampleMsg{snap: snap}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	if m.ticks <= 0 {
		return tea.Quit
	}
	return m.stepCmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, m.tickCmd()
		}
		return m, m.stepCmd

	case sampleMsg:
		m.snap = msg.snap
		m.done++
		for _, r := range msg.snap.Readings {
			if r.Value.Valid() {
				m.history.Record(r.Key(), r.Value.Number, msg.snap.Time)
			}
		}
		if m.done >= m.ticks {
			return m, tea.Quit
		}
		// The next tick is only scheduled once this one is handled, so
		// ticks never overlap.
		return m, m.tickCmd()

	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorName     = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorWarn     = lipgloss.Color("220")
	colorCrit     = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := max(m.width-2, 40)

	sections := []string{m.renderTitleBar(contentWidth)}

	if m.err != nil {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err)))
	}

	if len(m.snap.Readings) == 0 {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Waiting for measurements..."))
	} else {
		sections = append(sections, m.renderPanel(contentWidth))
	}

	if status := m.renderStatus(contentWidth); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	lines := strings.Split(content, "\n")
	if visible := max(m.height, 5); len(lines) > visible {
		lines = lines[:visible]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("LTC3350 MONITOR")

	dim := lipgloss.NewStyle().Foreground(colorDim)
	statusParts := []string{
		dim.Render(fmt.Sprintf("tick %d/%d", m.done, m.ticks)),
		dim.Render(fmtDuration(time.Since(m.startTime))),
	}
	if !m.snap.Time.IsZero() {
		statusParts = append(statusParts, dim.Render(m.snap.Time.UTC().Format("15:04:05")))
	}
	if m.paused {
		statusParts = append(statusParts, lipgloss.NewStyle().Foreground(colorCrit).Bold(true).Render("PAUSED"))
	}
	statusParts = append(statusParts,
		lipgloss.NewStyle().Foreground(colorCrit).Render("REC")+dim.Render(" "+m.report))

	right := strings.Join(statusParts, dim.Render(" │ "))
	gap := max(width-lipgloss.Width(logo)-lipgloss.Width(right)-4, 1)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

func (m Model) renderPanel(totalWidth int) string {
	const (
		nameW  = 7
		labelW = 24
		valueW = 10
		scaleW = 12
	)
	innerWidth := max(totalWidth-4, 30)
	chartWidth := min(max(innerWidth-nameW-labelW-valueW-scaleW-80, 10), 120)

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")

	var rows []string
	var lastPts []history.Point
	for _, r := range m.snap.Readings {
		lv := chart.LevelsOf(r)

		name := lipgloss.NewStyle().Bold(true).Foreground(colorName).Width(nameW).Render(r.Name)
		label := lipgloss.NewStyle().Foreground(colorLabel).Width(labelW).Render(truncate(sensor.Describe(r.Name), labelW))
		value := lipgloss.NewStyle().Width(valueW).Align(lipgloss.Right).Render(chart.RenderValue(r.Value, lv))

		spark := dimS.Render(strings.Repeat(" ", chartWidth))
		scale := strings.Repeat(" ", scaleW)
		var stats string
		if series := m.history.Get(r.Key()); series != nil {
			st := series.Stats()
			rangeMin, rangeMax := st.Min, st.Peak
			if lv.HasMin {
				rangeMin = math.Min(rangeMin, lv.Min)
			}
			if lv.HasMax {
				rangeMax = math.Max(rangeMax, lv.Max)
			}
			pad := (rangeMax - rangeMin) * 0.05
			if last, ok := series.Last(); ok && (lv.HasMax || lv.HasMin) {
				scale = chart.RenderLevelScale(last.Value, rangeMin, rangeMax, lv, scaleW)
			}
			pts := series.Tail(chartWidth)
			lastPts = pts
			spark = chart.RenderSparklinePoints(pts, chartWidth, rangeMin-pad, rangeMax+pad, lv)
			stats = dimS.Render(" avg") + valS.Render(fmt.Sprintf("%7.1f", st.Avg)) +
				dimS.Render(" lo") + valS.Render(fmt.Sprintf("%7.1f", st.Min)) +
				dimS.Render(" pk") + valS.Render(fmt.Sprintf("%7.1f", st.Peak))
		}

		levels := dimS.Render("  max ") + lipgloss.NewStyle().Foreground(colorWarn).Render(r.Max.String()) +
			dimS.Render(" min ") + lipgloss.NewStyle().Foreground(colorWarn).Render(r.Min.String())

		rows = append(rows, name+" "+label+" "+value+" "+scale+" "+frameL+spark+frameR+stats+levels)
	}

	if lastPts != nil {
		if timeline := chart.RenderTimeline(lastPts, chartWidth); strings.TrimSpace(timeline) != "" {
			rows = append(rows, strings.Repeat(" ", nameW+labelW+valueW+scaleW+5)+timeline)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderStatus(width int) string {
	st := m.snap.Status
	if st.Empty() {
		return ""
	}
	var rows []string
	for _, a := range st.Alarms {
		rows = append(rows, lipgloss.NewStyle().Foreground(colorCrit).Bold(true).Render("ALARM ")+a)
	}
	for _, s := range st.Monitor {
		rows = append(rows, lipgloss.NewStyle().Foreground(colorDim).Render("MON   ")+s)
	}
	for _, s := range st.Charger {
		rows = append(rows, lipgloss.NewStyle().Foreground(colorOk).Render("CHRG  ")+s)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	okS := lipgloss.NewStyle().Foreground(colorOk).Render("██")
	warnS := lipgloss.NewStyle().Foreground(colorWarn).Render("██")
	critS := lipgloss.NewStyle().Foreground(colorCrit).Render("██")

	legend := okS + dimS.Render(" ok ") +
		warnS + dimS.Render(" near level ") +
		critS + dimS.Render(" out of range")

	keys := dimS.Render("q") + lipgloss.NewStyle().Foreground(colorLabel).Render(":quit") +
		dimS.Render("  p") + lipgloss.NewStyle().Foreground(colorLabel).Render(":pause")

	gap := max(width-lipgloss.Width(legend)-lipgloss.Width(keys)-4, 1)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + strings.Repeat(" ", gap) + keys)
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-1] + "…"
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// Run shows the dashboard until the run completes, the user quits or ctx
// is cancelled.
func Run(ctx context.Context, stepper Stepper, report string, ticks int) error {
	final, err := tea.NewProgram(New(stepper, report, ticks), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
