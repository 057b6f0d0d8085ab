package text

// Metrics are the vertical metrics of a face in points. Descent is
// positive below the baseline.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// LineHeight returns the baseline to baseline distance.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}
