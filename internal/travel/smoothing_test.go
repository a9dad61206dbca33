package travel

import (
	"testing"

	"github.com/banshee-data/zhop/internal/config"
	"github.com/stretchr/testify/assert"
)

func defaultKinematics() config.Kinematics {
	return config.EmptyPlannerConfig().Kinematics()
}

func TestSmoothingParamsFor(t *testing.T) {
	t.Parallel()

	kin := defaultKinematics()
	klipper := kin
	klipper.Flavor = config.FlavorKlipper
	lowJerk := kin
	lowJerk.MaxJerkZ = 1
	noAccel := kin
	noAccel.MaxAccelerationZ = 0

	tests := []struct {
		name      string
		lift      float64
		slopeEnd  float64
		kin       config.Kinematics
		length    float64
		wantBlend float64
		wantCount int
	}{
		{"unsupported flavor", 0.6, 2.24, klipper, 100, 0, 1},
		{"shorter than acceleration distance", 0.6, 2.24, kin, 31.9, 0, 1},
		{"short ramp blends over twice its length", 0.6, 2.4, kin, 100, 4.8, 6},
		{"long ramp blends over deceleration distance", 0.6, 20, kin, 100, 12, 5},
		{"blend reduced to fit the travel", 0.6, 38, kin, 40, 4, 3},
		{"ramp beyond travel end", 0.6, 45, kin, 40, 0, 1},
		{"too many points", 0.6, 2.4, lowJerk, 100, 0, 1},
		{"zero slope end", 0.6, 0, kin, 100, 0, 1},
		{"no z acceleration", 0.6, 2.4, noAccel, 100, 0, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SmoothingParamsFor(tt.lift, tt.slopeEnd, tt.kin, tt.length)
			assert.InDelta(t, tt.wantBlend, got.BlendWidth, 1e-9)
			assert.Equal(t, tt.wantCount, got.PointsCount)
		})
	}
}

func TestSmoothingParamsFor_ShortTravelNeverSmooths(t *testing.T) {
	t.Parallel()

	kin := defaultKinematics()
	// 200√2 mm/s at 1250 mm/s² needs 32 mm to reach cruise speed.
	for _, lift := range []float64{0.1, 0.6, 2} {
		for _, slopeEnd := range []float64{0.5, 2, 10, 30} {
			for _, length := range []float64{0, 1, 10, 31.99} {
				assert.Equal(t, NoSmoothing, SmoothingParamsFor(lift, slopeEnd, kin, length),
					"lift %f slope end %f length %f", lift, slopeEnd, length)
			}
		}
	}
}
