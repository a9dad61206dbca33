package travel

import (
	"math"
	"slices"

	"github.com/banshee-data/zhop/internal/config"
	"github.com/banshee-data/zhop/internal/geom"
	"github.com/banshee-data/zhop/internal/obstacle"
	"github.com/banshee-data/zhop/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// TravelPlan is the planned Z profile of one travel move.
type TravelPlan struct {
	Params ElevatedTravelParams
	// ObstacleDistance is the obstacle-adjusted ramp end before it was
	// compared with the nominal one, or obstacle.NoObstacle.
	ObstacleDistance float64
	Length           float64
	Lifted           bool
	Elevated         bool // ramped profile rather than a flat move
	Points           []r3.Vec
}

// Builder plans travels for one layer. The tracker is optional; without
// one, ramps are never shortened.
type Builder struct {
	cfg     *config.PlannerConfig
	tracker *obstacle.Tracker
}

// NewBuilder returns a builder for the given configuration and tracker.
func NewBuilder(cfg *config.PlannerConfig, tracker *obstacle.Tracker) *Builder {
	if cfg == nil {
		cfg = config.EmptyPlannerConfig()
	}
	return &Builder{cfg: cfg, tracker: tracker}
}

// Params returns the lift profile parameters for travelling along path
// with the given extruder.
func (b *Builder) Params(path geom.Polyline, extruder int) ElevatedTravelParams {
	p, _ := b.params(path, extruder)
	return p
}

func (b *Builder) params(path geom.Polyline, extruder int) (ElevatedTravelParams, float64) {
	ext := b.cfg.Extruder(extruder)
	if !ext.GetTravelRampingLift() {
		return ElevatedTravelParams{
			LiftHeight:          ext.GetRetractLift(),
			ParabolaPointsCount: NoSmoothing.PointsCount,
		}, obstacle.NoObstacle
	}

	lift := ext.GetTravelMaxLift()
	slopeEnd := 0.0
	if deg := ext.GetTravelSlope(); deg > 0 && deg < 90 {
		slopeEnd = lift / math.Tan(units.DegToRad(deg))
	}

	obstacleDist := obstacle.NoObstacle
	if ext.GetLiftBeforeObstacle() && b.tracker != nil {
		obstacleDist = obstacle.AdjustedSlopeEnd(path, b.tracker)
		if obstacleDist < slopeEnd {
			tracef("ramp shortened from %.4f to %.4f by obstacle", slopeEnd, obstacleDist)
			slopeEnd = obstacleDist
		}
	}

	smoothing := SmoothingParamsFor(lift, slopeEnd, b.cfg.Kinematics(), path.Length())
	return ElevatedTravelParams{
		LiftHeight:          lift,
		SlopeEnd:            slopeEnd,
		BlendWidth:          smoothing.BlendWidth,
		ParabolaPointsCount: smoothing.PointsCount,
	}, obstacleDist
}

// Plan computes the 3D points of a travel along path starting at
// initialElevation, the current print height.
func (b *Builder) Plan(path geom.Polyline, initialElevation float64, extruder int) TravelPlan {
	plan := TravelPlan{
		ObstacleDistance: obstacle.NoObstacle,
		Length:           path.Length(),
		Params:           ElevatedTravelParams{ParabolaPointsCount: NoSmoothing.PointsCount},
	}

	ext := b.cfg.Extruder(extruder)
	if len(path) < 2 || !ext.LiftAllowed(initialElevation) {
		plan.Points = GenerateFlatTravel(path, initialElevation)
		return plan
	}

	plan.Params, plan.ObstacleDistance = b.params(path, extruder)
	plan.Lifted = plan.Params.LiftHeight > 0

	if !ext.GetTravelRampingLift() || plan.Params.SlopeEnd <= 0 {
		plan.Points = GenerateFlatTravel(path, initialElevation+plan.Params.LiftHeight)
		return plan
	}

	f := NewFormula(plan.Params)
	plan.Elevated = true
	plan.Points = GenerateElevatedTravel(path, blendTargets(f, plan.Params), initialElevation, f, b.cfg.GetMinPointSpacing())
	tracef("travel %.3fmm: lift %.3f slope end %.3f blend %.3f (%d points)",
		plan.Length, plan.Params.LiftHeight, plan.Params.SlopeEnd, plan.Params.BlendWidth, len(plan.Points))
	return plan
}

// blendTargets returns the sorted distances the path is resampled at: the
// blend samples, both blend boundaries and the ramp end.
func blendTargets(f Formula, p ElevatedTravelParams) []float64 {
	targets := geom.Linspace(f.SmoothingFrom(), f.SmoothingTo(), p.ParabolaPointsCount)
	targets = append(targets, f.SmoothingFrom(), f.SmoothingTo(), p.SlopeEnd)
	slices.Sort(targets)
	return slices.Compact(targets)
}
