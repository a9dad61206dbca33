// Package units provides shared constants and conversions for feedrate and
// angle units used in machine configuration.
package units

import "math"

// Feedrate unit constants
const (
	MMPerSec = "mm/s"
	MMPerMin = "mm/min"
)

// ValidFeedrateUnits contains all valid feedrate unit values
var ValidFeedrateUnits = []string{MMPerSec, MMPerMin}

// IsValid checks if the given unit is in the list of valid feedrate units
func IsValid(unit string) bool {
	for _, validUnit := range ValidFeedrateUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mm/s, mm/min"
}

// ConvertFeedrate converts a feedrate from millimetres per second to the
// target units. Machine limits are configured in mm/s; G-code F words are
// in mm/min.
func ConvertFeedrate(mmPerSec float64, targetUnits string) float64 {
	switch targetUnits {
	case MMPerSec:
		return mmPerSec
	case MMPerMin:
		return mmPerSec * 60
	default:
		return mmPerSec
	}
}

// ToMMPerSec converts a feedrate in the given units back to mm/s.
func ToMMPerSec(v float64, fromUnits string) float64 {
	if fromUnits == MMPerMin {
		return v / 60
	}
	return v
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
