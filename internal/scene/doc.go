// Package scene decodes a JSON description of sliced objects into the
// slicing and extrusion types and turns it into per-layer planning jobs.
//
// A scene lists objects, each with its placed instances and its layers.
// A layer carries slice polygons as nested coordinate arrays and regions
// of islands whose perimeters are extrusion-entity trees tagged by "type".
// Print layer i gathers layer i of every object that has one.
package scene
