package text

// Direction is the inline progression of a run of text.
type Direction int

const (
	// DirectionLTR is left-to-right.
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left (Arabic, Hebrew).
	DirectionRTL
)

func (d Direction) String() string {
	if d == DirectionRTL {
		return "RTL"
	}
	return "LTR"
}
