package extrusion

import (
	"github.com/banshee-data/zhop/internal/geom"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// Leaf is a single path reached while folding an entity tree.
type Leaf struct {
	ID     uuid.UUID // the path's own identity
	Owner  uuid.UUID // identity of the outermost ancestor that has one
	Role   Role
	Points geom.Polyline // XY projection for 3D paths
}

// Fold visits every leaf path of e in print order, threading acc through fn.
// A leaf's Owner is the identity of the outermost entity on its way down
// that has one, or the leaf's own identity when no ancestor does.
func Fold[T any](e Entity, acc T, fn func(T, Leaf) T) T {
	return fold(e, uuid.Nil, acc, fn)
}

func fold[T any](e Entity, owner uuid.UUID, acc T, fn func(T, Leaf) T) T {
	if owner == uuid.Nil {
		owner = Identity(e)
	}

	switch v := e.(type) {
	case *Path:
		return fn(acc, Leaf{ID: v.ID, Owner: owner, Role: v.Role, Points: v.Points})
	case *Path3D:
		pts := make(geom.Polyline, len(v.Points))
		for i, p := range v.Points {
			pts[i] = r2.Vec{X: p.X, Y: p.Y}
		}
		return fn(acc, Leaf{ID: v.ID, Owner: owner, Role: v.Role, Points: pts})
	case *MultiPath:
		for i := range v.Paths {
			acc = fold(&v.Paths[i], owner, acc, fn)
		}
	case *MultiPath3D:
		for i := range v.Paths {
			acc = fold(&v.Paths[i], owner, acc, fn)
		}
	case *Loop:
		for i := range v.Paths {
			acc = fold(&v.Paths[i], owner, acc, fn)
		}
	case *Collection:
		for _, child := range v.Entities {
			acc = fold(child, owner, acc, fn)
		}
	}
	return acc
}

// Leaves returns every leaf of e that satisfies keep (nil keeps all).
func Leaves(e Entity, keep func(Leaf) bool) []Leaf {
	return Fold(e, []Leaf(nil), func(acc []Leaf, l Leaf) []Leaf {
		if keep == nil || keep(l) {
			acc = append(acc, l)
		}
		return acc
	})
}

// ExternalPerimeters returns the leaves of e printed as external perimeter.
func ExternalPerimeters(e Entity) []Leaf {
	return Leaves(e, func(l Leaf) bool { return l.Role.IsExternalPerimeter() })
}

// HasExternalPerimeter reports whether any leaf of e is an external perimeter.
func HasExternalPerimeter(e Entity) bool {
	return Fold(e, false, func(found bool, l Leaf) bool {
		return found || l.Role.IsExternalPerimeter()
	})
}

// FirstPoint returns the first printed point of e.
func FirstPoint(e Entity) (r2.Vec, bool) {
	for _, l := range Leaves(e, nil) {
		if len(l.Points) > 0 {
			return l.Points[0], true
		}
	}
	return r2.Vec{}, false
}

// LastPoint returns the last printed point of e.
func LastPoint(e Entity) (r2.Vec, bool) {
	leaves := Leaves(e, nil)
	for i := len(leaves) - 1; i >= 0; i-- {
		if pts := leaves[i].Points; len(pts) > 0 {
			return pts[len(pts)-1], true
		}
	}
	return r2.Vec{}, false
}
