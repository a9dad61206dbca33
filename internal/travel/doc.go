// Package travel plans the Z profile of travel moves.
//
// A travel either stays flat or ramps up to a lift height along its XY
// path, levelling off through a parabolic blend whose width is sized from
// the machine's Z deceleration and jerk limits. The XY path is resampled
// so every characteristic distance (blend boundaries, ramp end, interior
// blend samples) lands on a real output vertex.
//
// Key types: Formula, ElevatedTravelParams, SmoothingParams, Builder,
// TravelPlan.
package travel
