package sensor

import "strings"

// MeasurementPrefix marks the files holding live measurements.
const MeasurementPrefix = "meas_"

// ThresholdPair names the files holding the high and low levels of a
// measurement.
type ThresholdPair struct {
	Max string
	Min string
}

// Thresholds returns the threshold files paired with a measurement. The
// second result is false for measurements that are not sampled.
func Thresholds(name string) (ThresholdPair, bool) {
	switch name {
	case "vcap1", "vcap2", "vcap3", "vcap4":
		return ThresholdPair{Max: "cap_ov_lvl", Min: "cap_uv_lvl"}, true
	case "dtemp":
		return ThresholdPair{Max: "dtemp_hot_lvl", Min: "dtemp_cold_lvl"}, true
	case "gpi", "vin", "vcap", "vout":
		return ThresholdPair{Max: name + "_ov_lvl", Min: name + "_uv_lvl"}, true
	case "iin":
		return ThresholdPair{Max: "iin_oc_lvl", Min: "iin_uc_lvl"}, true
	}
	return ThresholdPair{}, false
}

// MinRuleName returns the register name whose conversion rule applies to
// the minimum level. Older reports converted the minimum with the maximum's
// rule; legacy reproduces that.
func (p ThresholdPair) MinRuleName(legacy bool) string {
	if legacy {
		return p.Max
	}
	return p.Min
}

// MeasurementName strips the meas_ prefix from a file name. The second
// result is false when the file is not a measurement.
func MeasurementName(file string) (string, bool) {
	if !strings.HasPrefix(file, MeasurementPrefix) {
		return "", false
	}
	return strings.TrimPrefix(file, MeasurementPrefix), true
}
