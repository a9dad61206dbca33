// Package slicing holds the per-layer print geometry the travel planner
// consumes: objects, their placed instances, and for each object layer its
// slice polygons and the extrusion entities grouped by region and island.
//
// Slice polygons are orb polygons in the object's local frame: ring 0 is
// the contour, further rings are holes. Instance shifts place the object
// on the bed.
package slicing
