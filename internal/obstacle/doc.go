// Package obstacle tracks what a travel move could collide with on the
// layer being printed.
//
// Responsibilities: per-layer line distancers over the previous layer's
// slice boundary and the current layer's external perimeters, the set of
// external perimeters already extruded on this layer, and the first-crossing
// query that shortens a travel ramp so the nozzle is back down before it
// reaches an obstacle.
// Key types: Tracker, Segment, Origin.
//
// A Tracker is owned by one layer and mutated by one goroutine, in emission
// order. Its distancers may be queried concurrently once built.
package obstacle
