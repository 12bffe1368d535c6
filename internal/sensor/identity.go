package sensor

import "strings"

// descriptionMap maps register name prefixes to human-readable labels.
// Longer prefixes come first.
var descriptionMap = []struct {
	prefix string
	name   string
}{
	{"dtemp", "Die temperature"},
	{"vcap1", "Capacitor 1 voltage"},
	{"vcap2", "Capacitor 2 voltage"},
	{"vcap3", "Capacitor 3 voltage"},
	{"vcap4", "Capacitor 4 voltage"},
	{"vcap", "Capacitor stack voltage"},
	{"vshunt", "Shunt voltage"},
	{"gpi", "General purpose input"},
	{"vin", "Input voltage"},
	{"vout", "Output voltage"},
	{"iin", "Input current"},
	{"ichg", "Charge current"},
	{"cap_esr", "Stack ESR"},
	{"cap", "Capacitor level"},
	{"esr", "Stack ESR"},
}

// Describe returns a human-readable label for a measurement name.
func Describe(name string) string {
	lower := strings.ToLower(strings.TrimPrefix(name, MeasurementPrefix))
	for _, entry := range descriptionMap {
		if strings.HasPrefix(lower, entry.prefix) {
			return entry.name
		}
	}
	return "Register"
}
