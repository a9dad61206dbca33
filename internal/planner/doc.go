// Package planner drives travel planning over whole layers.
//
// For each layer it owns one obstacle tracker, walks the layer's entities
// in emission order, plans the travel to each entity's first point and
// marks the entity extruded once it has been "written". Independent layers
// are planned concurrently on a bounded worker pool, one tracker each.
package planner
