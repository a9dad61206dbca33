package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/banshee-data/zhop/internal/extrusion"
	"github.com/banshee-data/zhop/internal/planner"
	"github.com/banshee-data/zhop/internal/slicing"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidScene is returned for scenes that decode but do not describe
// a usable set of objects.
var ErrInvalidScene = errors.New("invalid scene")

// maxSceneSize bounds the scene file read by Load.
const maxSceneSize = 64 * 1024 * 1024 // 64MB

// Scene is a decoded set of objects ready for planning.
type Scene struct {
	Objects []*slicing.Object
	Start   r2.Vec
	// orders holds explicit emission orders by print layer index.
	orders map[int][]OrderRef
}

// OrderRef names one perimeter entity of a print layer: the object, the
// instance, and the entity's position in the object layer's perimeter list.
type OrderRef struct {
	Object    int `json:"object"`
	Instance  int `json:"instance"`
	Perimeter int `json:"perimeter"`
	Extruder  int `json:"extruder,omitempty"`
}

type sceneJSON struct {
	Start   [2]float64    `json:"start"`
	Objects []objectJSON  `json:"objects"`
	Orders  []layerOrders `json:"orders,omitempty"`
}

type layerOrders struct {
	Layer int        `json:"layer"`
	Order []OrderRef `json:"order"`
}

type objectJSON struct {
	Name      string       `json:"name"`
	Instances [][2]float64 `json:"instances"`
	Layers    []layerJSON  `json:"layers"`
}

type layerJSON struct {
	PrintZ  float64       `json:"print_z"`
	Slices  []orb.Polygon `json:"slices"`
	Regions []regionJSON  `json:"regions"`
}

type regionJSON struct {
	Islands []islandJSON `json:"islands"`
}

type islandJSON struct {
	Perimeters []entityJSON `json:"perimeters"`
	Fills      []entityJSON `json:"fills,omitempty"`
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("scene file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scene file: %w", err)
	}
	if info.Size() > maxSceneSize {
		return nil, fmt.Errorf("scene file too large: %d bytes (max %d)", info.Size(), maxSceneSize)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", cleanPath, err)
	}
	return s, nil
}

// Decode reads a scene from r.
func Decode(r io.Reader) (*Scene, error) {
	var raw sceneJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}
	if len(raw.Objects) == 0 {
		return nil, fmt.Errorf("%w: no objects", ErrInvalidScene)
	}

	s := &Scene{
		Start:  r2.Vec{X: raw.Start[0], Y: raw.Start[1]},
		orders: make(map[int][]OrderRef, len(raw.Orders)),
	}
	for i, o := range raw.Objects {
		obj, err := o.object()
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, o.Name, err)
		}
		s.Objects = append(s.Objects, obj)
	}
	for _, lo := range raw.Orders {
		s.orders[lo.Layer] = lo.Order
	}
	return s, nil
}

func (o objectJSON) object() (*slicing.Object, error) {
	if len(o.Instances) == 0 {
		return nil, fmt.Errorf("%w: no instances", ErrInvalidScene)
	}
	obj := &slicing.Object{Name: o.Name}
	for _, shift := range o.Instances {
		obj.Instances = append(obj.Instances, slicing.Instance{Shift: r2.Vec{X: shift[0], Y: shift[1]}})
	}

	for i, l := range o.Layers {
		layer := &slicing.ObjectLayer{Index: i, PrintZ: l.PrintZ, Slices: l.Slices}
		for _, poly := range l.Slices {
			if len(poly) == 0 || len(poly[0]) < 3 {
				return nil, fmt.Errorf("%w: layer %d has a slice with fewer than 3 points", ErrInvalidScene, i)
			}
		}
		for _, r := range l.Regions {
			region := slicing.Region{}
			for _, isl := range r.Islands {
				island, err := isl.island()
				if err != nil {
					return nil, fmt.Errorf("layer %d: %w", i, err)
				}
				region.Islands = append(region.Islands, island)
			}
			layer.Regions = append(layer.Regions, region)
		}
		obj.Layers = append(obj.Layers, layer)
	}
	obj.LinkLayers()
	return obj, nil
}

func (isl islandJSON) island() (slicing.Island, error) {
	var island slicing.Island
	for _, e := range isl.Perimeters {
		ent, err := e.entity()
		if err != nil {
			return island, err
		}
		island.Perimeters = append(island.Perimeters, ent)
	}
	for _, e := range isl.Fills {
		ent, err := e.entity()
		if err != nil {
			return island, err
		}
		island.Fills = append(island.Fills, ent)
	}
	return island, nil
}

// LayerCount returns the number of print layers: the layer count of the
// tallest object.
func (s *Scene) LayerCount() int {
	n := 0
	for _, o := range s.Objects {
		if len(o.Layers) > n {
			n = len(o.Layers)
		}
	}
	return n
}

// Layer returns print layer idx.
func (s *Scene) Layer(idx int) slicing.Layer {
	layer := slicing.Layer{Index: idx}
	for _, o := range s.Objects {
		if idx >= len(o.Layers) {
			continue
		}
		if len(layer.Objects) == 0 {
			layer.PrintZ = o.Layers[idx].PrintZ
		}
		layer.Objects = append(layer.Objects, slicing.ObjectLayerToPrint{Object: o, Layer: o.Layers[idx]})
	}
	return layer
}

// Jobs returns one planning job per print layer. Layers without an
// explicit order use planner.DefaultOrder. Every layer starts at the
// scene start position.
func (s *Scene) Jobs() ([]planner.LayerJob, error) {
	jobs := make([]planner.LayerJob, 0, s.LayerCount())
	for i := 0; i < s.LayerCount(); i++ {
		layer := s.Layer(i)
		order := planner.DefaultOrder(layer)
		if refs, ok := s.orders[i]; ok {
			var err error
			order, err = resolveOrder(layer, refs)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
		}
		jobs = append(jobs, planner.LayerJob{Layer: layer, Order: order, Start: s.Start})
	}
	return jobs, nil
}

func resolveOrder(layer slicing.Layer, refs []OrderRef) ([]planner.Emission, error) {
	order := make([]planner.Emission, 0, len(refs))
	for _, ref := range refs {
		if ref.Object < 0 || ref.Object >= len(layer.Objects) {
			return nil, fmt.Errorf("%w: order references object %d", ErrInvalidScene, ref.Object)
		}
		obj := layer.Objects[ref.Object]
		var perimeters []extrusion.Entity
		obj.Layer.PerimeterEntities(func(e extrusion.Entity) {
			perimeters = append(perimeters, e)
		})
		if ref.Perimeter < 0 || ref.Perimeter >= len(perimeters) {
			return nil, fmt.Errorf("%w: order references perimeter %d of %d", ErrInvalidScene, ref.Perimeter, len(perimeters))
		}
		order = append(order, planner.Emission{
			ObjectLayer: ref.Object,
			Instance:    ref.Instance,
			Extruder:    ref.Extruder,
			Entity:      perimeters[ref.Perimeter],
		})
	}
	return order, nil
}
