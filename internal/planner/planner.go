package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/banshee-data/zhop/internal/config"
	"github.com/banshee-data/zhop/internal/extrusion"
	"github.com/banshee-data/zhop/internal/geom"
	"github.com/banshee-data/zhop/internal/monitoring"
	"github.com/banshee-data/zhop/internal/obstacle"
	"github.com/banshee-data/zhop/internal/slicing"
	"github.com/banshee-data/zhop/internal/travel"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidEmission is returned when an emission names an object or
// instance that is not on its layer.
var ErrInvalidEmission = errors.New("emission references unknown object or instance")

// Emission is one entity written on a layer. Entity coordinates are local
// to the object; the instance shift places them.
type Emission struct {
	ObjectLayer int
	Instance    int
	Extruder    int
	Entity      extrusion.Entity
}

// LayerJob is one layer to plan.
type LayerJob struct {
	Layer slicing.Layer
	Order []Emission
	Start r2.Vec // nozzle position when the layer starts
}

// Move is one planned travel, ending at the first point of Emission.
type Move struct {
	Emission int
	From, To r2.Vec
	Plan     travel.TravelPlan
}

// LayerResult is the outcome of planning one layer.
type LayerResult struct {
	LayerIndex int
	PrintZ     float64
	Moves      []Move
	Extruded   int    // external perimeter entities marked
	End        r2.Vec // nozzle position after the last emission
}

// Planner plans layers with one configuration.
type Planner struct {
	cfg *config.PlannerConfig
}

// New returns a planner. A nil cfg uses the defaults.
func New(cfg *config.PlannerConfig) *Planner {
	if cfg == nil {
		cfg = config.EmptyPlannerConfig()
	}
	return &Planner{cfg: cfg}
}

// DefaultOrder lists every perimeter entity of layer, object by object and
// instance by instance, in island order.
func DefaultOrder(layer slicing.Layer) []Emission {
	var order []Emission
	for objIdx, obj := range layer.Objects {
		for instIdx := range obj.Instances() {
			obj.Layer.PerimeterEntities(func(e extrusion.Entity) {
				order = append(order, Emission{ObjectLayer: objIdx, Instance: instIdx, Entity: e})
			})
		}
	}
	return order
}

// PlanLayer plans every travel of job in emission order. Each entity is
// marked extruded after the travel to it, so later travels treat it as an
// obstacle.
func (p *Planner) PlanLayer(job LayerJob) (LayerResult, error) {
	tracker := obstacle.NewTracker()
	tracker.InitLayer(job.Layer)
	builder := travel.NewBuilder(p.cfg, tracker)

	result := LayerResult{
		LayerIndex: job.Layer.Index,
		PrintZ:     job.Layer.PrintZ,
		Moves:      make([]Move, 0, len(job.Order)),
	}

	pos := job.Start
	for i, em := range job.Order {
		shift, err := instanceShift(job.Layer, em)
		if err != nil {
			return result, fmt.Errorf("layer %d emission %d: %w", job.Layer.Index, i, err)
		}

		first, ok := extrusion.FirstPoint(em.Entity)
		if !ok {
			opsf("layer %d emission %d: entity has no points, skipping", job.Layer.Index, i)
			continue
		}
		target := r2.Add(first, shift)

		if geom.Distance(pos, target) > geom.Epsilon {
			plan := builder.Plan(geom.Polyline{pos, target}, job.Layer.PrintZ, em.Extruder)
			result.Moves = append(result.Moves, Move{Emission: i, From: pos, To: target, Plan: plan})
			tracef("layer %d emission %d: travel %.3fmm elevated=%t slope end %.3f",
				job.Layer.Index, i, plan.Length, plan.Elevated, plan.Params.SlopeEnd)
		}

		last, _ := extrusion.LastPoint(em.Entity)
		pos = r2.Add(last, shift)
		tracker.MarkExtruded(em.Entity, em.ObjectLayer, em.Instance)
	}

	result.Extruded = tracker.ExtrudedCount()
	result.End = pos
	diagf("layer %d at z=%.3f: %d moves, %d external perimeters extruded",
		result.LayerIndex, result.PrintZ, len(result.Moves), result.Extruded)
	return result, nil
}

// PlanLayers plans independent layers concurrently. Results keep the order
// of jobs. Cancelling ctx stops scheduling further layers; the first error
// cancels the rest.
func (p *Planner) PlanLayers(ctx context.Context, jobs []LayerJob) ([]LayerResult, error) {
	results := make([]LayerResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.GetWorkers())
	for i := range jobs {
		if err := ctx.Err(); err != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.PlanLayer(jobs[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	monitoring.Logf("planned %d layers", len(jobs))
	return results, nil
}

func instanceShift(layer slicing.Layer, em Emission) (r2.Vec, error) {
	if em.ObjectLayer < 0 || em.ObjectLayer >= len(layer.Objects) {
		return r2.Vec{}, fmt.Errorf("%w: object %d of %d", ErrInvalidEmission, em.ObjectLayer, len(layer.Objects))
	}
	instances := layer.Objects[em.ObjectLayer].Instances()
	if em.Instance < 0 || em.Instance >= len(instances) {
		return r2.Vec{}, fmt.Errorf("%w: instance %d of %d", ErrInvalidEmission, em.Instance, len(instances))
	}
	return instances[em.Instance].Shift, nil
}
