// Package history keeps a bounded series of converted readings per
// measurement for the dashboard sparklines.
package history

import (
	"math"
	"time"
)

// Point is one converted reading at the time of its tick.
type Point struct {
	Value float64
	Time  time.Time
}

// Stats summarizes a series. Min and Peak cover every value ever pushed,
// Avg only the points still held.
type Stats struct {
	Min   float64
	Peak  float64
	Avg   float64
	Count int // points pushed since creation
}

// Series is a fixed-capacity ring of points.
type Series struct {
	ring  []Point
	head  int // oldest point once the ring is full
	min   float64
	peak  float64
	count int
}

// NewSeries returns an empty series holding at most capacity points.
func NewSeries(capacity int) *Series {
	return &Series{
		ring: make([]Point, 0, max(capacity, 1)),
		min:  math.Inf(1),
		peak: math.Inf(-1),
	}
}

// Push appends p, dropping the oldest point when the series is full.
func (s *Series) Push(p Point) {
	if len(s.ring) < cap(s.ring) {
		s.ring = append(s.ring, p)
	} else {
		s.ring[s.head] = p
		s.head = (s.head + 1) % len(s.ring)
	}
	s.min = math.Min(s.min, p.Value)
	s.peak = math.Max(s.peak, p.Value)
	s.count++
}

// Len returns the number of points held.
func (s *Series) Len() int {
	return len(s.ring)
}

// Last returns the newest point.
func (s *Series) Last() (Point, bool) {
	if len(s.ring) == 0 {
		return Point{}, false
	}
	return s.ring[(s.head+len(s.ring)-1)%len(s.ring)], true
}

// Tail returns up to n of the newest points, oldest first.
func (s *Series) Tail(n int) []Point {
	n = min(n, len(s.ring))
	if n <= 0 {
		return nil
	}
	out := make([]Point, 0, n)
	for i := len(s.ring) - n; i < len(s.ring); i++ {
		out = append(out, s.ring[(s.head+i)%len(s.ring)])
	}
	return out
}

func (s *Series) Stats() Stats {
	st := Stats{Count: s.count}
	if len(s.ring) == 0 {
		return st
	}
	st.Min, st.Peak = s.min, s.peak
	var sum float64
	for _, p := range s.ring {
		sum += p.Value
	}
	st.Avg = sum / float64(len(s.ring))
	return st
}

// Store holds one series per measurement key.
type Store struct {
	series   map[string]*Series
	capacity int
}

func NewStore(capacity int) *Store {
	return &Store{
		series:   make(map[string]*Series),
		capacity: capacity,
	}
}

// Record pushes a value for key, creating its series on first use.
func (s *Store) Record(key string, v float64, t time.Time) {
	series, ok := s.series[key]
	if !ok {
		series = NewSeries(s.capacity)
		s.series[key] = series
	}
	series.Push(Point{Value: v, Time: t})
}

// Get returns the series for key, or nil if nothing was recorded.
func (s *Store) Get(key string) *Series {
	return s.series[key]
}
