package sensor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// LSB scale factors in microvolts per LSB.
const (
	cellScale  = 183.5 // vcap1..4, gpi and the cap level registers
	stackScale = 1476  // vcap
	inOutScale = 2210  // vin, vout and everything else
)

type rule struct {
	match   func(name string) bool
	convert func(raw float64) Value
}

func contains(sub string) func(string) bool {
	return func(name string) bool { return strings.Contains(name, sub) }
}

func oneOf(names ...string) func(string) bool {
	return func(name string) bool { return slices.Contains(names, name) }
}

func always(string) bool { return true }

func celsius(raw float64) Value {
	return Value{Number: 0.028*raw - 251.4, Unit: Celsius}
}

func millivolts(factor float64) func(float64) Value {
	return func(raw float64) Value {
		return Value{Number: raw * factor / 1000, Unit: Millivolts}
	}
}

func passthrough(raw float64) Value {
	return Value{Number: raw, Unit: Raw}
}

// rules is evaluated in order and the first match wins. The exact cell
// names must stay ahead of the vcap substring rule.
var rules = []rule{
	{contains("dtemp"), celsius},
	{oneOf("vcap1", "vcap2", "vcap3", "vcap4", "cap_ov_lvl", "cap_uv_lvl"), millivolts(cellScale)},
	{contains("gpi"), millivolts(cellScale)},
	{contains("vcap"), millivolts(stackScale)},
	{contains("iic"), passthrough},
	{always, millivolts(inOutScale)},
}

// ParseRaw parses the text content of a sysfs attribute.
func ParseRaw(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid reading %q: %w", strings.TrimSpace(raw), err)
	}
	return v, nil
}

// Convert converts the raw text of the named register into its physical
// unit. A reading that does not parse yields a Value carrying the error,
// which displays as ErrorMarker.
func Convert(raw, name string) Value {
	v, err := ParseRaw(raw)
	if err != nil {
		logrus.WithError(err).WithField("name", name).Warn("cannot convert reading")
		return Value{Err: err}
	}
	return ConvertNumber(v, name)
}

// ConvertNumber applies the conversion rule for name to an already parsed
// LSB value.
func ConvertNumber(v float64, name string) Value {
	for _, r := range rules {
		if r.match(name) {
			return r.convert(v)
		}
	}
	return passthrough(v)
}
