package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/banshee-data/zhop/internal/fsutil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoProfiles is returned when there is nothing to draw.
var ErrNoProfiles = errors.New("no profiles to plot")

// legendLimit caps the number of legend entries; further lines are drawn
// unlabelled.
const legendLimit = 12

// PlotProfiles draws profiles as Z over distance and writes a PNG to w.
func PlotProfiles(w io.Writer, title string, profiles []Profile) error {
	if len(profiles) == 0 {
		return ErrNoProfiles
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance along travel (mm)"
	p.Y.Label.Text = "Z (mm)"

	colors := generateColors(len(profiles))
	for i, prof := range profiles {
		pts := make(plotter.XYs, len(prof.Points))
		for j, pt := range prof.Points {
			pts[j] = plotter.XY{X: pt.Distance, Y: pt.Z}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("profile %s: %w", prof.Label, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		if i < legendLimit {
			p.Legend.Add(prof.Label, line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// SavePNG writes the profile plot to name on fsys.
func SavePNG(fsys fsutil.FileSystem, name, title string, profiles []Profile) error {
	f, err := fsys.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := PlotProfiles(f, title, profiles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
