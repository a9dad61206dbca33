// Package extrusion models the extrusion-entity tree produced by path
// generation: single paths, 3D paths, multi-paths, loops and collections.
//
// The variant set is closed. Leaves (Path, Path3D) carry a role and an
// identity; composites carry children and, except for Collection, a shared
// identity that owns every descendant leaf. Traversal is a fold over the
// leaves (see Fold).
package extrusion
