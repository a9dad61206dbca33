package travel

import (
	"math"

	"github.com/banshee-data/zhop/internal/config"
)

// maxParabolaPoints caps the samples a blend may need. A blend that would
// need more is not emitted.
const maxParabolaPoints = 6

// SmoothingParams size the blend at the end of a lift ramp.
type SmoothingParams struct {
	BlendWidth  float64
	PointsCount int
}

// NoSmoothing disables the blend.
var NoSmoothing = SmoothingParams{BlendWidth: 0, PointsCount: 1}

// SmoothingParamsFor derives the blend for a ramp rising liftHeight over
// slopeEnd on a travel of travelLength, from the machine limits in kin.
//
// The blend is only offered where the firmware supports it and the travel
// is long enough to reach cruise speed. Its width is the XY distance the
// Z axis needs to decelerate from the ramp's Z speed, limited to twice the
// ramp and to what fits in the travel.
func SmoothingParamsFor(liftHeight, slopeEnd float64, kin config.Kinematics, travelLength float64) SmoothingParams {
	if !kin.Flavor.SupportsLiftSmoothing() {
		return NoSmoothing
	}
	if slopeEnd <= 0 || liftHeight <= 0 ||
		kin.MaxAccelerationTravel <= 0 || kin.MaxAccelerationZ <= 0 || kin.MaxJerkZ <= 0 {
		return NoSmoothing
	}

	vxy := math.Hypot(kin.MaxFeedrateX, kin.MaxFeedrateY)
	accelTime := vxy / kin.MaxAccelerationTravel
	accelDistance := 0.5 * kin.MaxAccelerationTravel * accelTime * accelTime
	if travelLength < accelDistance {
		return NoSmoothing
	}

	slope := liftHeight / slopeEnd
	vz := math.Min(vxy*slope, kin.MaxFeedrateZ)
	decelDistance := vz / kin.MaxAccelerationZ * vxy

	blend := 2 * slopeEnd
	if slopeEnd > decelDistance/2 {
		blend = decelDistance
	}
	if slopeEnd+blend/2 > travelLength {
		blend = 2 * (travelLength - slopeEnd)
	}

	points := int(math.Ceil(vz / kin.MaxJerkZ))
	if points > maxParabolaPoints || points <= 0 || blend <= 0 {
		return NoSmoothing
	}
	return SmoothingParams{BlendWidth: blend, PointsCount: points}
}
