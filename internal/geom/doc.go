// Package geom holds the planar geometry the travel planner works in.
//
// Responsibilities: 2D/3D points (gonum spatial vectors), line segments and
// their intersections, polylines, polygon containment (orb planar) and
// bounding-box clipping of polylines.
// Key types: Line, Polyline, SideFlags.
//
// All coordinates are unscaled millimetres.
package geom
