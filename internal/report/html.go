package report

import (
	"fmt"
	"io"

	"github.com/banshee-data/zhop/internal/fsutil"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderProfilesHTML writes an interactive line chart of profiles to w.
func RenderProfilesHTML(w io.Writer, title string, profiles []Profile) error {
	if len(profiles) == 0 {
		return ErrNoProfiles
	}

	maxZ := 0.0
	for _, prof := range profiles {
		maxZ = max(maxZ, prof.MaxZ())
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("moves=%d max_z=%.3f", len(profiles), maxZ)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(profiles) <= legendLimit)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Distance (mm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Z (mm)", NameLocation: "middle", NameGap: 40}),
	)

	for _, prof := range profiles {
		data := make([]opts.LineData, len(prof.Points))
		for i, pt := range prof.Points {
			data[i] = opts.LineData{Value: []interface{}{pt.Distance, pt.Z}}
		}
		line.AddSeries(prof.Label, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render profiles: %w", err)
	}
	return nil
}

// SaveHTML writes the interactive chart to name on fsys.
func SaveHTML(fsys fsutil.FileSystem, name, title string, profiles []Profile) error {
	f, err := fsys.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := RenderProfilesHTML(f, title, profiles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
