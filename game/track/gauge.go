package track

// Gauge is the track-width compatibility tag carried by a path.
type Gauge string

const (
	Broad  Gauge = "broad"
	Narrow Gauge = "narrow"
	Dual   Gauge = "dual"
)

// Valid reports whether g is one of the known gauges.
func (g Gauge) Valid() bool {
	return g == Broad || g == Narrow || g == Dual
}

// Connects reports whether track of this gauge may be treated as
// connected to track of the other gauge. Broad accepts broad and dual,
// narrow accepts narrow and dual, dual accepts only dual.
func (g Gauge) Connects(other Gauge) bool {
	switch g {
	case Broad:
		return other == Broad || other == Dual
	case Narrow:
		return other == Narrow || other == Dual
	case Dual:
		return other == Dual
	}
	return false
}
