package travel

import (
	"github.com/banshee-data/zhop/internal/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// GenerateFlatTravel lifts every vertex of path to elevation.
func GenerateFlatTravel(path geom.Polyline, elevation float64) []r3.Vec {
	out := make([]r3.Vec, len(path))
	for i, p := range path {
		out[i] = geom.Lift(p, elevation)
	}
	return out
}

// GenerateElevatedTravel resamples path at the sorted target distances and
// sets each point's Z to initialElevation plus the profile height there.
func GenerateElevatedTravel(path geom.Polyline, targets []float64, initialElevation float64, f Formula, minSpacing float64) []r3.Vec {
	sliced := SliceXYPath(path, targets, minSpacing)
	out := make([]r3.Vec, len(sliced))
	for i, dp := range sliced {
		out[i] = geom.Lift(dp.Point, initialElevation+f.At(dp.Distance))
	}
	return out
}
