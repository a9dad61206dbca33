package units

import (
	"math"
	"testing"
)

func TestConvertFeedrate(t *testing.T) {
	tests := []struct {
		name     string
		mmPerSec float64
		units    string
		expected float64
	}{
		{"200 mm/s to mm/min", 200, MMPerMin, 12000},
		{"200 mm/s to mm/s", 200, MMPerSec, 200},
		{"unknown units default to mm/s", 12, "unknown", 12},
		{"0 mm/s to mm/min", 0, MMPerMin, 0},
		{"z feedrate 12 mm/s to mm/min", 12, MMPerMin, 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertFeedrate(tt.mmPerSec, tt.units)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ConvertFeedrate(%f, %s) = %f, want %f", tt.mmPerSec, tt.units, result, tt.expected)
			}
			if back := ToMMPerSec(result, tt.units); math.Abs(back-tt.mmPerSec) > 1e-9 && IsValid(tt.units) {
				t.Errorf("ToMMPerSec(%f, %s) = %f, want %f", result, tt.units, back, tt.mmPerSec)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid mm/s", MMPerSec, true},
		{"valid mm/min", MMPerMin, true},
		{"invalid unit", "in/s", false},
		{"empty string", "", false},
		{"case sensitive", "MM/S", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	expected := "mm/s, mm/min"
	result := GetValidUnitsString()
	if result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}

func TestAngleConversion(t *testing.T) {
	tests := []struct {
		deg float64
		rad float64
	}{
		{0, 0},
		{45, math.Pi / 4},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-30, -math.Pi / 6},
	}

	for _, tt := range tests {
		if got := DegToRad(tt.deg); math.Abs(got-tt.rad) > 1e-12 {
			t.Errorf("DegToRad(%f) = %f, want %f", tt.deg, got, tt.rad)
		}
		if got := RadToDeg(tt.rad); math.Abs(got-tt.deg) > 1e-9 {
			t.Errorf("RadToDeg(%f) = %f, want %f", tt.rad, got, tt.deg)
		}
	}
}
