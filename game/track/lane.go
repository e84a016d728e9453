package track

import "fmt"

// Lane describes which of possibly several parallel tracks a path end
// occupies: Count parallel lanes exist at that end and the path uses the
// lane at Index.
type Lane struct {
	Count int `json:"count"`
	Index int `json:"index"`
}

// DefaultLane is the descriptor for ordinary single-lane track.
var DefaultLane = Lane{Count: 1, Index: 0}

// Valid reports whether the descriptor is structurally sound.
func (l Lane) Valid() bool {
	return l.Count >= 1 && l.Index >= 0 && l.Index < l.Count
}

// Single reports whether the end carries exactly one lane.
func (l Lane) Single() bool {
	return l.Count == 1
}

// Match reports whether a facing lane descriptor on a neighboring tile
// aligns with this one. Lanes are numbered consistently on each tile but
// tiles meet mirrored, so lane i on one face touches lane count-i-1 on
// the facing one.
func (l Lane) Match(other Lane) bool {
	return other.Count == l.Count && other.Index == l.Count-l.Index-1
}

func (l Lane) String() string {
	return fmt.Sprintf("(%d,%d)", l.Count, l.Index)
}
