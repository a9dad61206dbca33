package geom

// Linspace returns count evenly spaced values over [from, to]. A single
// value is the midpoint of the interval.
func Linspace(from, to float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []float64{(from + to) / 2}
	}
	result := make([]float64, 0, count)
	step := (to - from) / float64(count-1)
	for i := 0; i < count-1; i++ {
		result = append(result, from+float64(i)*step)
	}
	return append(result, to)
}
