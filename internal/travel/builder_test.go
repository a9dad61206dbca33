package travel

import (
	"math"
	"testing"

	"github.com/banshee-data/zhop/internal/config"
	"github.com/banshee-data/zhop/internal/geom"
	"github.com/banshee-data/zhop/internal/obstacle"
	"github.com/banshee-data/zhop/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func ptr[T any](v T) *T { return &v }

func configWith(ext config.ExtruderConfig) *config.PlannerConfig {
	return &config.PlannerConfig{Extruders: []config.ExtruderConfig{ext}}
}

var defaultSlopeEnd = 0.6 / math.Tan(15*math.Pi/180)

func TestBuilder_RampingDisabled(t *testing.T) {
	t.Parallel()

	b := NewBuilder(configWith(config.ExtruderConfig{
		TravelRampingLift: ptr(false),
		RetractLift:       ptr(0.4),
	}), nil)
	path := geom.Polyline{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}}

	plan := b.Plan(path, 1.0, 0)
	assert.True(t, plan.Lifted)
	assert.False(t, plan.Elevated)
	assert.Equal(t, ElevatedTravelParams{LiftHeight: 0.4, ParabolaPointsCount: 1}, plan.Params)
	require.Len(t, plan.Points, 3)
	for _, p := range plan.Points {
		assert.InDelta(t, 1.4, p.Z, 1e-12)
	}
}

func TestBuilder_OutsideLiftWindow(t *testing.T) {
	t.Parallel()

	b := NewBuilder(configWith(config.ExtruderConfig{RetractLiftAbove: ptr(1.0)}), nil)
	path := geom.Polyline{{X: 0, Y: 0}, {X: 50, Y: 0}}

	plan := b.Plan(path, 0.2, 0)
	assert.False(t, plan.Lifted)
	assert.False(t, plan.Elevated)
	for _, p := range plan.Points {
		assert.Equal(t, 0.2, p.Z)
	}
}

func TestBuilder_LongTravelIsSmoothed(t *testing.T) {
	t.Parallel()

	b := NewBuilder(config.DefaultPlannerConfig(), nil)
	path := geom.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}}

	plan := b.Plan(path, 0.2, 0)
	require.True(t, plan.Elevated)
	assert.InDelta(t, defaultSlopeEnd, plan.Params.SlopeEnd, 1e-9)
	assert.InDelta(t, 2*defaultSlopeEnd, plan.Params.BlendWidth, 1e-9)
	assert.Equal(t, 6, plan.Params.ParabolaPointsCount)
	assert.Equal(t, obstacle.NoObstacle, plan.ObstacleDistance)

	// Six blend samples (the first at the start), the ramp end, and the
	// path end.
	require.Len(t, plan.Points, 8)
	assert.InDelta(t, 0.2, plan.Points[0].Z, 1e-12)
	assert.InDelta(t, 0.8, plan.Points[len(plan.Points)-1].Z, 1e-12)
	assert.InDelta(t, 0.8, plan.Points[len(plan.Points)-2].Z, 1e-12)
	for i := 1; i < len(plan.Points); i++ {
		assert.GreaterOrEqual(t, plan.Points[i].Z, plan.Points[i-1].Z)
		assert.Greater(t, plan.Points[i].X, plan.Points[i-1].X)
	}
}

func TestBuilder_ShortTravelRampsWithoutBlend(t *testing.T) {
	t.Parallel()

	b := NewBuilder(config.DefaultPlannerConfig(), nil)
	path := geom.Polyline{{X: 0, Y: 0}, {X: 20, Y: 0}}

	plan := b.Plan(path, 0.2, 0)
	require.True(t, plan.Elevated)
	assert.Equal(t, NoSmoothing.PointsCount, plan.Params.ParabolaPointsCount)
	assert.Zero(t, plan.Params.BlendWidth)

	require.Len(t, plan.Points, 3)
	assert.InDelta(t, defaultSlopeEnd, plan.Points[1].X, 1e-9)
	assert.InDelta(t, 0.8, plan.Points[1].Z, 1e-12)
	assert.InDelta(t, 0.8, plan.Points[2].Z, 1e-12)
}

func TestBuilder_ObstacleShortensRamp(t *testing.T) {
	t.Parallel()

	obj := testutil.SquareObject("cube", 10, 2, r2.Vec{})
	tracker := obstacle.NewTracker()
	tracker.InitLayer(testutil.LayerOf(1, obj))
	path := geom.Polyline{{X: -1, Y: 5}, {X: 99, Y: 5}}

	b := NewBuilder(config.DefaultPlannerConfig(), tracker)
	plan := b.Plan(path, 0.4, 0)
	require.True(t, plan.Elevated)
	assert.InDelta(t, 1, plan.ObstacleDistance, 1e-9)
	assert.InDelta(t, 1, plan.Params.SlopeEnd, 1e-9)
	assert.InDelta(t, 2, plan.Params.BlendWidth, 1e-9, "blend derived against the shortened ramp")
	assert.Equal(t, plan.Params, b.Params(path, 0))

	// Far obstacles leave the nominal ramp alone.
	far := geom.Polyline{{X: -5, Y: 5}, {X: 95, Y: 5}}
	assert.InDelta(t, defaultSlopeEnd, b.Params(far, 0).SlopeEnd, 1e-9)

	// Turning the feature off ignores the tracker.
	cfg := config.DefaultPlannerConfig()
	cfg.Extruders[0].LiftBeforeObstacle = ptr(false)
	off := NewBuilder(cfg, tracker)
	assert.InDelta(t, defaultSlopeEnd, off.Params(path, 0).SlopeEnd, 1e-9)
}

func TestBuilder_ReEntryShortensRamp(t *testing.T) {
	t.Parallel()

	obj := testutil.SquareObject("cube", 10, 2, r2.Vec{})
	tracker := obstacle.NewTracker()
	tracker.InitLayer(testutil.LayerOf(1, obj))

	// Starts inside, exits at d=0.5 and re-enters at d=1.3.
	path := geom.Polyline{{X: 9.5, Y: 5}, {X: 10.25, Y: 5}, {X: 10.25, Y: 5.3}, {X: 9, Y: 5.3}}
	b := NewBuilder(config.DefaultPlannerConfig(), tracker)
	plan := b.Plan(path, 0.4, 0)
	require.True(t, plan.Elevated)
	assert.InDelta(t, 1.3, plan.ObstacleDistance, 1e-9)
	assert.InDelta(t, 1.3, plan.Params.SlopeEnd, 1e-9)
}

func TestBuilder_VerticalSlopeLiftsImmediately(t *testing.T) {
	t.Parallel()

	b := NewBuilder(configWith(config.ExtruderConfig{TravelSlope: ptr(90.0), TravelMaxLift: ptr(1.0)}), nil)
	plan := b.Plan(geom.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}, 0.2, 0)
	assert.True(t, plan.Lifted)
	assert.False(t, plan.Elevated)
	assert.Zero(t, plan.Params.SlopeEnd)
	for _, p := range plan.Points {
		assert.InDelta(t, 1.2, p.Z, 1e-12)
	}
}

func TestBuilder_DegeneratePath(t *testing.T) {
	t.Parallel()

	b := NewBuilder(nil, nil)
	plan := b.Plan(geom.Polyline{{X: 3, Y: 4}}, 0.2, 0)
	assert.False(t, plan.Lifted)
	require.Len(t, plan.Points, 1)
	assert.Equal(t, 0.2, plan.Points[0].Z)

	assert.Empty(t, b.Plan(nil, 0.2, 0).Points)
}

func TestGenerateElevatedTravel(t *testing.T) {
	t.Parallel()

	f := NewFormula(ElevatedTravelParams{LiftHeight: 2, SlopeEnd: 4, ParabolaPointsCount: 1})
	path := geom.Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}}
	pts := GenerateElevatedTravel(path, []float64{2, 4}, 1, f, 0.01)

	require.Len(t, pts, 4)
	wantZ := []float64{1, 2, 3, 3}
	for i, p := range pts {
		assert.InDelta(t, wantZ[i], p.Z, 1e-12, "point %d", i)
	}
}

func TestGenerateFlatTravel(t *testing.T) {
	t.Parallel()

	pts := GenerateFlatTravel(geom.Polyline{{X: 1, Y: 2}, {X: 3, Y: 4}}, 0.6)
	require.Len(t, pts, 2)
	assert.Equal(t, 3.0, pts[1].X)
	assert.Equal(t, 4.0, pts[1].Y)
	assert.Equal(t, 0.6, pts[1].Z)
}
