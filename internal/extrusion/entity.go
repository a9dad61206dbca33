package extrusion

import (
	"github.com/banshee-data/zhop/internal/geom"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Entity is one node of an extrusion-entity tree. The implementations in
// this package are the only ones.
type Entity interface {
	entity()
}

// Path is a planar extrusion at the layer height.
type Path struct {
	ID     uuid.UUID
	Role   Role
	Points geom.Polyline
	Width  float64 // mm
	Height float64 // mm
}

// Path3D is an extrusion whose points carry their own Z.
type Path3D struct {
	ID     uuid.UUID
	Role   Role
	Points []r3.Vec
	Width  float64
	Height float64
}

// MultiPath is a chain of paths printed back to back.
type MultiPath struct {
	ID    uuid.UUID
	Paths []Path
}

// MultiPath3D is a chain of 3D paths printed back to back.
type MultiPath3D struct {
	ID    uuid.UUID
	Paths []Path3D
}

// Loop is a closed chain of paths; the last point meets the first.
type Loop struct {
	ID    uuid.UUID
	Paths []Path
}

// Collection groups entities without owning their identities.
type Collection struct {
	Entities []Entity
	NoSort   bool
}

func (*Path) entity()        {}
func (*Path3D) entity()      {}
func (*MultiPath) entity()   {}
func (*MultiPath3D) entity() {}
func (*Loop) entity()        {}
func (*Collection) entity()  {}

// NewPath returns a path with a fresh identity.
func NewPath(role Role, pts ...r2.Vec) *Path {
	return &Path{ID: uuid.New(), Role: role, Points: pts}
}

// NewLoop returns a loop with a fresh identity.
func NewLoop(paths ...Path) *Loop {
	return &Loop{ID: uuid.New(), Paths: paths}
}

// NewMultiPath returns a multi-path with a fresh identity.
func NewMultiPath(paths ...Path) *MultiPath {
	return &MultiPath{ID: uuid.New(), Paths: paths}
}

// Identity returns the entity's own identity; uuid.Nil for collections.
func Identity(e Entity) uuid.UUID {
	switch v := e.(type) {
	case *Path:
		return v.ID
	case *Path3D:
		return v.ID
	case *MultiPath:
		return v.ID
	case *MultiPath3D:
		return v.ID
	case *Loop:
		return v.ID
	default:
		return uuid.Nil
	}
}
