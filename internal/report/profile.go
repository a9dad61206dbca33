package report

import (
	"fmt"
	"image/color"
	"math"

	"github.com/banshee-data/zhop/internal/planner"
	"gonum.org/v1/gonum/spatial/r3"
)

// ProfilePoint is one sample of a travel profile: Z at a distance along the
// XY path.
type ProfilePoint struct {
	Distance float64
	Z        float64
}

// Profile is the Z-over-distance curve of one move.
type Profile struct {
	Label  string
	Points []ProfilePoint
}

// MaxZ returns the highest Z of the profile, or 0 when empty.
func (p Profile) MaxZ() float64 {
	if len(p.Points) == 0 {
		return 0
	}
	z := math.Inf(-1)
	for _, pt := range p.Points {
		z = math.Max(z, pt.Z)
	}
	return z
}

// ProfileOf measures pts along their XY projection.
func ProfileOf(label string, pts []r3.Vec) Profile {
	prof := Profile{Label: label, Points: make([]ProfilePoint, 0, len(pts))}
	dist := 0.0
	for i, p := range pts {
		if i > 0 {
			prev := pts[i-1]
			dist += math.Hypot(p.X-prev.X, p.Y-prev.Y)
		}
		prof.Points = append(prof.Points, ProfilePoint{Distance: dist, Z: p.Z})
	}
	return prof
}

// ProfilesOf returns one profile per lifted move of results, labelled by
// layer and emission.
func ProfilesOf(results []planner.LayerResult) []Profile {
	var profiles []Profile
	for _, res := range results {
		for _, m := range res.Moves {
			if !m.Plan.Lifted || len(m.Plan.Points) < 2 {
				continue
			}
			label := fmt.Sprintf("L%d/E%d", res.LayerIndex, m.Emission)
			profiles = append(profiles, ProfileOf(label, m.Plan.Points))
		}
	}
	return profiles
}

// generateColors returns n colours spread evenly around the hue wheel.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL in [0,1] to 8-bit RGB.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return v, v, v
	}

	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	return channel(p, q, h+1.0/3), channel(p, q, h), channel(p, q, h-1.0/3)
}

func channel(p, q, t float64) uint8 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	var v float64
	switch {
	case t < 1.0/6:
		v = p + (q-p)*6*t
	case t < 0.5:
		v = q
	case t < 2.0/3:
		v = p + (q-p)*(2.0/3-t)*6
	default:
		v = p
	}
	return uint8(math.Round(v * 255))
}
