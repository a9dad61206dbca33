package geom

import (
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the distance below which two positions are treated as the same.
const Epsilon = 1e-4

// ToOrb converts a vector to an orb point.
func ToOrb(p r2.Vec) orb.Point {
	return orb.Point{p.X, p.Y}
}

// FromOrb converts an orb point to a vector.
func FromOrb(p orb.Point) r2.Vec {
	return r2.Vec{X: p[0], Y: p[1]}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Lerp returns the point at fraction t of the way from a to b.
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Lift places a planar point at height z.
func Lift(p r2.Vec, z float64) r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: z}
}
