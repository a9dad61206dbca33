package travel

// ElevatedTravelParams describe the Z profile of one lifted travel.
type ElevatedTravelParams struct {
	LiftHeight          float64 // mm above the starting elevation
	SlopeEnd            float64 // XY distance at which the ramp reaches LiftHeight
	BlendWidth          float64 // width of the parabolic blend centred on SlopeEnd
	ParabolaPointsCount int     // samples inside the blend, at least 1
}

// Formula is the height profile of a lifted travel as a function of the
// XY distance travelled. It is a value type and safe to share.
type Formula struct {
	liftHeight    float64
	slopeEnd      float64
	blendWidth    float64
	smoothingFrom float64
	smoothingTo   float64
}

// NewFormula builds the profile for p. A blend that would start before the
// travel does is disabled.
func NewFormula(p ElevatedTravelParams) Formula {
	f := Formula{
		liftHeight:    p.LiftHeight,
		slopeEnd:      p.SlopeEnd,
		blendWidth:    p.BlendWidth,
		smoothingFrom: p.SlopeEnd - p.BlendWidth/2,
		smoothingTo:   p.SlopeEnd + p.BlendWidth/2,
	}
	if f.smoothingFrom < 0 {
		f.smoothingFrom = p.SlopeEnd
		f.smoothingTo = p.SlopeEnd
	}
	return f
}

// SmoothingFrom is where the blend starts.
func (f Formula) SmoothingFrom() float64 { return f.smoothingFrom }

// SmoothingTo is where the blend meets the plateau.
func (f Formula) SmoothingTo() float64 { return f.smoothingTo }

func (f Formula) inBlend(d float64) bool {
	return d > f.smoothingFrom && d < f.smoothingTo
}

// coefficients returns the parabola a·d² + b·d + c that continues the ramp
// at SmoothingFrom and is tangent to the plateau at SmoothingTo.
func (f Formula) coefficients() (a, b, c float64) {
	s := f.liftHeight / f.slopeEnd
	a = -s / (2 * f.blendWidth)
	b = s * f.smoothingTo / f.blendWidth
	c = f.liftHeight + a*f.smoothingTo*f.smoothingTo
	return a, b, c
}

// At returns the height above the starting elevation after travelling d.
func (f Formula) At(d float64) float64 {
	if f.inBlend(d) {
		a, b, c := f.coefficients()
		return a*d*d + b*d + c
	}
	if d < f.slopeEnd {
		return f.liftHeight * d / f.slopeEnd
	}
	return f.liftHeight
}

// Slope returns dZ/dXY at d.
func (f Formula) Slope(d float64) float64 {
	if f.inBlend(d) {
		a, b, _ := f.coefficients()
		return 2*a*d + b
	}
	if d < f.slopeEnd {
		return f.liftHeight / f.slopeEnd
	}
	return 0
}
