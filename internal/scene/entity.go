package scene

import (
	"fmt"

	"github.com/banshee-data/zhop/internal/extrusion"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Entity type tags.
const (
	typePath        = "path"
	typePath3D      = "path3d"
	typeMultiPath   = "multipath"
	typeMultiPath3D = "multipath3d"
	typeLoop        = "loop"
	typeCollection  = "collection"
)

// entityJSON is the union of every entity shape. Type selects which
// fields apply. A missing id is replaced by a fresh one.
type entityJSON struct {
	Type     string         `json:"type"`
	ID       uuid.UUID      `json:"id,omitempty"`
	Role     extrusion.Role `json:"role,omitempty"`
	Points   [][]float64    `json:"points,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Paths    []entityJSON   `json:"paths,omitempty"`
	Entities []entityJSON   `json:"entities,omitempty"`
	NoSort   bool           `json:"no_sort,omitempty"`
}

func (e entityJSON) id() uuid.UUID {
	if e.ID == uuid.Nil {
		return uuid.New()
	}
	return e.ID
}

func (e entityJSON) entity() (extrusion.Entity, error) {
	switch e.Type {
	case typePath:
		p, err := e.path()
		if err != nil {
			return nil, err
		}
		return &p, nil
	case typePath3D:
		p, err := e.path3D()
		if err != nil {
			return nil, err
		}
		return &p, nil
	case typeMultiPath:
		paths, err := e.childPaths()
		if err != nil {
			return nil, err
		}
		return &extrusion.MultiPath{ID: e.id(), Paths: paths}, nil
	case typeMultiPath3D:
		mp := &extrusion.MultiPath3D{ID: e.id()}
		for i, c := range e.Paths {
			p, err := c.path3D()
			if err != nil {
				return nil, fmt.Errorf("path %d: %w", i, err)
			}
			mp.Paths = append(mp.Paths, p)
		}
		return mp, nil
	case typeLoop:
		paths, err := e.childPaths()
		if err != nil {
			return nil, err
		}
		return &extrusion.Loop{ID: e.id(), Paths: paths}, nil
	case typeCollection:
		c := &extrusion.Collection{NoSort: e.NoSort}
		for i, child := range e.Entities {
			ent, err := child.entity()
			if err != nil {
				return nil, fmt.Errorf("entity %d: %w", i, err)
			}
			c.Entities = append(c.Entities, ent)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown entity type %q", ErrInvalidScene, e.Type)
	}
}

func (e entityJSON) childPaths() ([]extrusion.Path, error) {
	paths := make([]extrusion.Path, 0, len(e.Paths))
	for i, c := range e.Paths {
		p, err := c.path()
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (e entityJSON) path() (extrusion.Path, error) {
	p := extrusion.Path{ID: e.id(), Role: e.Role, Width: e.Width, Height: e.Height}
	for i, pt := range e.Points {
		if len(pt) != 2 {
			return p, fmt.Errorf("%w: point %d has %d coordinates, want 2", ErrInvalidScene, i, len(pt))
		}
		p.Points = append(p.Points, r2.Vec{X: pt[0], Y: pt[1]})
	}
	return p, nil
}

func (e entityJSON) path3D() (extrusion.Path3D, error) {
	p := extrusion.Path3D{ID: e.id(), Role: e.Role, Width: e.Width, Height: e.Height}
	for i, pt := range e.Points {
		if len(pt) != 3 {
			return p, fmt.Errorf("%w: point %d has %d coordinates, want 3", ErrInvalidScene, i, len(pt))
		}
		p.Points = append(p.Points, r3.Vec{X: pt[0], Y: pt[1], Z: pt[2]})
	}
	return p, nil
}
