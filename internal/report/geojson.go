package report

import (
	"fmt"
	"io"

	"github.com/banshee-data/zhop/internal/geom"
	"github.com/banshee-data/zhop/internal/obstacle"
	"github.com/banshee-data/zhop/internal/planner"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/spatial/r2"
)

// MovesGeoJSON returns one LineString feature per planned move, carrying
// its lift parameters as properties. A non-nil window drops moves that miss
// it and trims the rest to the points relevant inside it.
func MovesGeoJSON(results []planner.LayerResult, window *orb.Bound) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, res := range results {
		for _, m := range res.Moves {
			path := geom.Polyline{m.From, m.To}
			if len(m.Plan.Points) >= 2 {
				path = make(geom.Polyline, len(m.Plan.Points))
				for i, p := range m.Plan.Points {
					path[i] = r2.Vec{X: p.X, Y: p.Y}
				}
			}
			if window != nil {
				path = geom.ClipToBox(path, *window)
			}

			ls := make(orb.LineString, len(path))
			for i, p := range path {
				ls[i] = geom.ToOrb(p)
			}
			if window != nil && !ls.Bound().Intersects(*window) {
				continue
			}

			f := geojson.NewFeature(ls)
			f.Properties["layer"] = res.LayerIndex
			f.Properties["print_z"] = res.PrintZ
			f.Properties["emission"] = m.Emission
			f.Properties["lifted"] = m.Plan.Lifted
			f.Properties["elevated"] = m.Plan.Elevated
			f.Properties["lift_height"] = m.Plan.Params.LiftHeight
			f.Properties["slope_end"] = m.Plan.Params.SlopeEnd
			f.Properties["max_z"] = ProfileOf("", m.Plan.Points).MaxZ()
			if m.Plan.ObstacleDistance != obstacle.NoObstacle {
				f.Properties["obstacle_distance"] = m.Plan.ObstacleDistance
			}
			fc.Append(f)
		}
	}
	return fc
}

// WriteGeoJSON encodes the moves of results as a FeatureCollection,
// optionally restricted to window.
func WriteGeoJSON(w io.Writer, results []planner.LayerResult, window *orb.Bound) error {
	data, err := MovesGeoJSON(results, window).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal moves: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write moves: %w", err)
	}
	return nil
}
