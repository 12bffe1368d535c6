// Package sensor converts raw LTC3350 hwmon readings into physical units
// and knows the naming conventions of the device directory: which files
// hold measurements, which hold their threshold levels and which hold the
// status registers.
package sensor

import (
	"fmt"
	"strconv"
)

// ErrorMarker is displayed in place of a reading that could not be read or
// parsed.
const ErrorMarker = "Error"

// Unit is the physical unit of a converted reading.
type Unit uint8

const (
	// Raw readings are passed through without scaling.
	Raw Unit = iota
	Millivolts
	Celsius
)

func (u Unit) String() string {
	switch u {
	case Millivolts:
		return "mV"
	case Celsius:
		return "°C"
	default:
		return ""
	}
}

// Value is a converted reading.
type Value struct {
	Number float64
	Unit   Unit
	Err    error // set when the raw text could not be read or parsed
}

// Valid reports whether the value holds a number.
func (v Value) Valid() bool {
	return v.Err == nil
}

// String formats the value the way it appears in the report and on the
// console, e.g. " 2210 mV" or "-248.6 °C".
func (v Value) String() string {
	if v.Err != nil {
		return ErrorMarker
	}
	switch v.Unit {
	case Millivolts:
		return fmt.Sprintf("%5.0f mV", v.Number)
	case Celsius:
		return fmt.Sprintf("%5.1f °C", v.Number)
	default:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
}

// Threshold is a converted threshold level. Present is false when the
// threshold file does not exist, in which case it displays as blank.
type Threshold struct {
	Name    string
	Value   Value
	Present bool
}

// String returns the display text of the threshold, blank when absent.
func (t Threshold) String() string {
	if !t.Present {
		return ""
	}
	return t.Value.String()
}

// Reading is one sampled measurement with its threshold levels.
type Reading struct {
	Name  string // e.g. "vcap1", without the meas_ prefix
	Value Value
	Max   Threshold
	Min   Threshold
}

// Key returns a unique identifier for this measurement.
func (r Reading) Key() string {
	return r.Name
}

// Line formats the reading as one console line.
func (r Reading) Line() string {
	return fmt.Sprintf("%s:\t%s\t\t(max = %s, min = %s)", r.Name, r.Value, r.Max, r.Min)
}
