// Package sampler polls the device directory and turns every tick into one
// report row and one set of console lines.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/luki/ltcsensors/internal/console"
	"github.com/luki/ltcsensors/internal/sensor"
)

const timestampLayout = "15:04:05"

// Columns is the header of the report. Every row has exactly these cells.
var Columns = []string{"timestamp", "dtemp", "iin", "gpi", "vcap", "vcap1", "vcap2", "vcap3", "vcap4", "vin", "vout"}

// ErrNoDevice is returned when the device directory cannot be listed.
var ErrNoDevice = errors.New("device directory not available")

// FileStore lists and reads the attribute files of a device directory.
type FileStore interface {
	List(dir string) ([]string, error)
	ReadText(path string) (string, error)
}

// Sink receives one row per tick.
type Sink interface {
	AppendRow(values []string) error
}

// Options configures a Sampler.
type Options struct {
	Dir      string
	Interval time.Duration
	// LegacyMinRule converts the minimum level with the maximum level's
	// register name, as older reports did.
	LegacyMinRule bool

	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Sampler runs ticks against one device directory.
type Sampler struct {
	store    FileStore
	sink     Sink
	renderer console.Renderer
	opts     Options
	alarms   activeAlarms
}

// Snapshot is the outcome of one tick.
type Snapshot struct {
	Time     time.Time
	Readings []sensor.Reading // sampled measurements, in file name order
	Row      []string
	Status   sensor.Status
}

// Lines returns the console lines of the snapshot.
func (s Snapshot) Lines() []string {
	lines := make([]string, 0, len(s.Readings))
	for _, r := range s.Readings {
		lines = append(lines, r.Line())
	}
	return lines
}

// New returns a sampler reading from store and appending to sink. A nil
// renderer renders nothing.
func New(store FileStore, sink Sink, renderer console.Renderer, opts Options) *Sampler {
	if renderer == nil {
		renderer = console.Nop{}
	}
	if opts.Dir == "" {
		opts.Dir = sensor.DefaultDir
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = sleep
	}
	return &Sampler{
		store:    store,
		sink:     sink,
		renderer: renderer,
		opts:     opts,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick samples the device directory once. Only a listing failure is
// returned as an error; unreadable or invalid files degrade to marker
// values in the snapshot.
func (s *Sampler) Tick() (Snapshot, error) {
	now := s.opts.Now()
	snap := Snapshot{Time: now}

	files, err := s.store.List(s.opts.Dir)
	if err != nil {
		return snap, fmt.Errorf("%w: %s: %w", ErrNoDevice, s.opts.Dir, err)
	}
	sort.Strings(files)

	cells := make(map[string]string)
	for _, file := range files {
		name, ok := sensor.MeasurementName(file)
		if !ok {
			continue
		}
		pair, ok := sensor.Thresholds(name)
		if !ok {
			continue
		}
		r := sensor.Reading{
			Name:  name,
			Value: s.convert(file, name),
			Max:   s.threshold(pair.Max, pair.Max),
			Min:   s.threshold(pair.Min, pair.MinRuleName(s.opts.LegacyMinRule)),
		}
		snap.Readings = append(snap.Readings, r)
		cells[name] = r.Value.String()
	}

	snap.Row = buildRow(now, cells)
	snap.Status = s.status()
	return snap, nil
}

// Step runs one tick, renders its lines and appends its row.
func (s *Sampler) Step() (Snapshot, error) {
	snap, err := s.Tick()
	if err != nil {
		return snap, err
	}
	if err := s.renderer.Render(snap.Lines()); err != nil {
		logrus.WithError(err).Warn("cannot render tick")
	}
	if err := s.sink.AppendRow(snap.Row); err != nil {
		return snap, fmt.Errorf("error appending row: %w", err)
	}
	s.logAlarms(snap.Status)
	logrus.Debugf("tick %s: %d measurements", snap.Row[0], len(snap.Readings))
	return snap, nil
}

// Run performs ticks ticks, pausing the configured interval between them.
// Cancelling ctx ends the run during a pause, never in the middle of a tick.
func (s *Sampler) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		if i > 0 {
			if err := s.opts.Sleep(ctx, s.opts.Interval); err != nil {
				logrus.Infof("stopping after %d of %d ticks", i, ticks)
				return nil
			}
		}
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Interval returns the pause between ticks.
func (s *Sampler) Interval() time.Duration {
	return s.opts.Interval
}

func (s *Sampler) path(file string) string {
	return filepath.Join(s.opts.Dir, file)
}

// convert reads and converts file using the rule for name.
func (s *Sampler) convert(file, name string) sensor.Value {
	text, err := s.store.ReadText(s.path(file))
	if err != nil {
		logrus.WithError(err).WithField("file", file).Warn("cannot read reading")
		return sensor.Value{Err: err}
	}
	return sensor.Convert(text, name)
}

// threshold reads the level in file, converted with the rule of ruleName.
// A missing file is not an error.
func (s *Sampler) threshold(file, ruleName string) sensor.Threshold {
	t := sensor.Threshold{Name: file}
	text, err := s.store.ReadText(s.path(file))
	if errors.Is(err, fs.ErrNotExist) {
		return t
	}
	t.Present = true
	if err != nil {
		logrus.WithError(err).WithField("file", file).Warn("cannot read threshold")
		t.Value = sensor.Value{Err: err}
		return t
	}
	t.Value = sensor.Convert(text, ruleName)
	return t
}

// status decodes whichever status registers are readable.
func (s *Sampler) status() sensor.Status {
	var st sensor.Status
	if v, ok := s.register(sensor.AlarmRegister); ok {
		st.Alarms = sensor.DecodeAlarms(v)
	}
	if v, ok := s.register(sensor.MonitorRegister); ok {
		st.Monitor = sensor.DecodeMonitor(v)
	}
	if v, ok := s.register(sensor.ChargerRegister); ok {
		st.Charger = sensor.DecodeCharger(v)
	}
	return st
}

func (s *Sampler) register(file string) (int, bool) {
	text, err := s.store.ReadText(s.path(file))
	if err != nil {
		return 0, false
	}
	v, err := sensor.ParseRaw(text)
	if err != nil {
		logrus.WithError(err).WithField("file", file).Debug("ignoring status register")
		return 0, false
	}
	return int(v), true
}

func (s *Sampler) logAlarms(st sensor.Status) {
	for _, alarm := range s.alarms.update(st.Alarms) {
		logrus.WithField("alarm", alarm).Warn("alarm raised")
	}
}

// buildRow places each converted value in its column. Columns without a
// value this tick stay empty.
func buildRow(now time.Time, cells map[string]string) []string {
	row := make([]string, len(Columns))
	row[0] = now.UTC().Format(timestampLayout)
	for i, col := range Columns[1:] {
		row[i+1] = cells[col]
	}
	return row
}

// activeAlarms remembers which alarms were raised on the previous tick so
// each one is logged once.
type activeAlarms struct {
	active []string
}

// update replaces the active set and returns the alarms that were not
// active before.
func (a *activeAlarms) update(current []string) []string {
	var raised []string
	for _, alarm := range current {
		if !slices.Contains(a.active, alarm) {
			raised = append(raised, alarm)
		}
	}
	a.active = current
	return raised
}
