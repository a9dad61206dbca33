package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFlavor is returned when a G-code flavor name is not recognised.
var ErrUnknownFlavor = errors.New("unknown gcode flavor")

// GCodeFlavor is the firmware dialect the output is written for.
type GCodeFlavor string

const (
	FlavorMarlinLegacy   GCodeFlavor = "marlin"
	FlavorMarlin2        GCodeFlavor = "marlin2"
	FlavorRepRapFirmware GCodeFlavor = "reprapfirmware"
	FlavorKlipper        GCodeFlavor = "klipper"
	FlavorRepetier       GCodeFlavor = "repetier"
	FlavorSmoothie       GCodeFlavor = "smoothie"
	FlavorNoExtrusion    GCodeFlavor = "no-extrusion"
)

var knownFlavors = []GCodeFlavor{
	FlavorMarlinLegacy,
	FlavorMarlin2,
	FlavorRepRapFirmware,
	FlavorKlipper,
	FlavorRepetier,
	FlavorSmoothie,
	FlavorNoExtrusion,
}

// ParseFlavor returns the flavor named s, ignoring case.
func ParseFlavor(s string) (GCodeFlavor, error) {
	name := GCodeFlavor(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range knownFlavors {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFlavor, s)
}

// SupportsLiftSmoothing reports whether the firmware plans Z moves well
// enough for the parabolic blend at the end of a lift ramp to be worth
// emitting. Only Marlin 2 does.
func (f GCodeFlavor) SupportsLiftSmoothing() bool {
	return f == FlavorMarlin2
}
