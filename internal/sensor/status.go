package sensor

// Status register files in the device directory.
const (
	AlarmRegister   = "alarm_reg"
	MonitorRegister = "mon_status"
	ChargerRegister = "chrg_status"
)

var alarmBits = map[int]string{
	0:  "Capacitor undervoltage alarm",
	1:  "Capacitor overvoltage alarm",
	2:  "General purpose input undervoltage alarm",
	3:  "General purpose input overvoltage alarm",
	4:  "Input undervoltage alarm",
	5:  "Input overvoltage alarm",
	6:  "Capacitor stack undervoltage alarm",
	7:  "Capacitor stack overvoltage alarm",
	8:  "Output undervoltage alarm",
	9:  "Output overvoltage alarm",
	10: "Input overcurrent alarm",
	11: "Charge undercurrent alarm",
	12: "Die temperature cold alarm",
	13: "Die temperature hot alarm",
	14: "Stack ESR high alarm",
	15: "Stack capacitance low alarm",
}

var monitorBits = map[int]string{
	0: "Capacitance/ESR measurement is in progress",
	1: "Waiting programmed time to begin a capacitance/ESR measurement",
	2: "Waiting for satisfactory conditions to begin a capacitance/ESR measurement",
	3: "Capacitance measurement has completed",
	4: "ESR measurement has completed",
	5: "The last attempted capacitance measurement was unable to complete",
	6: "The last attempted ESR measurement was unable to complete",
	8: "The device is no longer connected to power",
	9: "The device is connected to power",
}

var chargerBits = map[int]string{
	0:  "The synchronous controller is in step-down mode (charging)",
	1:  "The synchronous controller is in step-up mode (backup)",
	2:  "The charger is in constant voltage mode",
	3:  "The charger is in undervoltage lockout",
	4:  "The charger is in input current limit",
	5:  "The capacitor voltage is above power good threshold",
	6:  "The capacitor manager is shunting",
	7:  "The capacitor manager is balancing",
	8:  "The charger is temporarily disabled for capacitance measurement",
	9:  "The charger is in constant current mode",
	11: "Input voltage is below PFI threshold",
}

// Status holds the decoded status registers of one tick. A register that
// was not available leaves its slice nil.
type Status struct {
	Alarms  []string
	Monitor []string
	Charger []string
}

// Empty reports whether no status bit is set.
func (s Status) Empty() bool {
	return len(s.Alarms) == 0 && len(s.Monitor) == 0 && len(s.Charger) == 0
}

// DecodeAlarms returns the descriptions of the alarms set in alarm_reg.
func DecodeAlarms(reg int) []string { return decodeBits(reg, alarmBits) }

// DecodeMonitor returns the descriptions of the bits set in mon_status.
func DecodeMonitor(reg int) []string { return decodeBits(reg, monitorBits) }

// DecodeCharger returns the descriptions of the bits set in chrg_status.
func DecodeCharger(reg int) []string { return decodeBits(reg, chargerBits) }

// decodeBits walks the bits in ascending order so the result is stable.
// Bits without a description are ignored.
func decodeBits(reg int, descriptions map[int]string) []string {
	var out []string
	for bit := 0; bit < 16; bit++ {
		if reg&(1<<bit) == 0 {
			continue
		}
		if desc, ok := descriptions[bit]; ok {
			out = append(out, desc)
		}
	}
	return out
}
