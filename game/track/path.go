package track

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMissingEnd     = errors.New("path needs two ends")
	ErrInvalidLane    = errors.New("invalid lane descriptor")
	ErrInvalidGauge   = errors.New("invalid gauge")
	ErrInvalidEdge    = errors.New("edge number out of range")
	ErrDoubleJunction = errors.New("path has more than one junction end")
)

// HexID identifies the hex a path is placed on, in whatever naming the
// adjacency provider uses. Empty until the path is bound to a hex.
type HexID string

// PathSpec describes a path to construct.
type PathSpec struct {
	A, B  *Part
	Track Gauge

	// LanesA and LanesB are the per-end lane descriptors. The zero value
	// means ordinary single-lane track.
	LanesA, LanesB Lane

	// Terminal marks stub track that dead-ends and cannot extend.
	Terminal bool
}

// Path is a single track segment connecting two parts on one tile.
// Immutable once constructed; classification is computed up front.
type Path struct {
	A, B     *Part
	Track    Gauge
	LanesA   Lane
	LanesB   Lane
	Terminal bool

	// Hex is set when the owning tile is placed on the board.
	Hex HexID

	edges    []*Part
	nodes    []*Part
	junction *Part
	exits    []int
	lanes    map[int]Lane

	single        bool
	straight      bool
	gentle        bool
	curveResolved bool
	ends          []*Part
}

// NewPath builds a path from its spec, validating the structural
// invariants: two ends, a known gauge, in-range lane indexes and edge
// numbers, and at most one junction end. A malformed path would walk
// without crashing but answer connectivity wrongly, so construction
// fails fast instead.
func NewPath(spec PathSpec) (*Path, error) {
	if spec.A == nil || spec.B == nil {
		return nil, ErrMissingEnd
	}
	if spec.Track == "" {
		spec.Track = Broad
	}
	if !spec.Track.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGauge, spec.Track)
	}
	if (spec.LanesA == Lane{}) {
		spec.LanesA = DefaultLane
	}
	if (spec.LanesB == Lane{}) {
		spec.LanesB = DefaultLane
	}
	if !spec.LanesA.Valid() {
		return nil, fmt.Errorf("%w: end A %s", ErrInvalidLane, spec.LanesA)
	}
	if !spec.LanesB.Valid() {
		return nil, fmt.Errorf("%w: end B %s", ErrInvalidLane, spec.LanesB)
	}
	if spec.A.IsJunction() && spec.B.IsJunction() {
		return nil, ErrDoubleJunction
	}
	for _, part := range []*Part{spec.A, spec.B} {
		if part.IsEdge() && (part.Num < 0 || part.Num > 5) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidEdge, part.Num)
		}
	}

	p := &Path{
		A:        spec.A,
		B:        spec.B,
		Track:    spec.Track,
		LanesA:   spec.LanesA,
		LanesB:   spec.LanesB,
		Terminal: spec.Terminal,
		lanes:    make(map[int]Lane, 2),
	}

	endLanes := map[*Part]Lane{spec.A: spec.LanesA, spec.B: spec.LanesB}
	for _, part := range []*Part{spec.A, spec.B} {
		part.assignLane(endLanes[part])
		switch {
		case part.IsEdge():
			p.edges = append(p.edges, part)
			p.exits = append(p.exits, part.Num)
			p.lanes[part.Num] = endLanes[part]
		case part.IsNode():
			p.nodes = append(p.nodes, part)
		case part.IsJunction():
			p.junction = part
			part.paths = append(part.paths, p)
		}
	}

	p.single = spec.LanesA.Single() && spec.LanesB.Single()
	p.classifyCurve()
	return p, nil
}

// classifyCurve resolves both ends to directional exit numbers and
// derives the straight/gentle-curve classification. Undefined when
// either end has no exit direction.
func (p *Path) classifyCurve() {
	posA, okA := p.A.exitPosition()
	posB, okB := p.B.exitPosition()
	if !okA || !okB {
		return
	}
	p.curveResolved = true
	diff := math.Abs(posA - posB)
	p.straight = diff == 3
	// The half-integer cases come from node ends sitting between two
	// edges (exit hint interpolation).
	p.gentle = diff == 2 || diff == 4 || diff == 2.5 || diff == 3.5
}

// Edges returns the ends that are tile edges.
func (p *Path) Edges() []*Part { return p.edges }

// Nodes returns the ends that are stops (city, town, or offboard).
func (p *Path) Nodes() []*Part { return p.nodes }

// Junction returns the junction end, if any.
func (p *Path) Junction() *Part { return p.junction }

// Exits returns the tile edge numbers the path leaves through.
func (p *Path) Exits() []int { return p.exits }

// ExitLane returns the lane descriptor for the end at the given tile
// edge. The second return is false when the path has no end there.
func (p *Path) ExitLane(edge int) (Lane, bool) {
	l, ok := p.lanes[edge]
	return l, ok
}

// IsTerminal reports whether the path is dead-end stub track.
func (p *Path) IsTerminal() bool { return p.Terminal }

// IsSingle reports whether both ends carry exactly one lane.
func (p *Path) IsSingle() bool { return p.single }

// IsStraight reports whether the path runs between opposite exits
// (difference of 3 on a six-sided hex). False when either end has no
// exit direction.
func (p *Path) IsStraight() bool { return p.curveResolved && p.straight }

// IsGentleCurve reports whether the exit difference is one of 2, 4, 2.5,
// or 3.5. False when either end has no exit direction.
func (p *Path) IsGentleCurve() bool { return p.curveResolved && p.gentle }

// HasNode reports whether at least one end is a stop.
func (p *Path) HasNode() bool { return len(p.nodes) > 0 }

// PlaceAt binds the path to the hex its tile occupies. The adjacency
// provider resolves neighbors by this ID during traversal.
func (p *Path) PlaceAt(hex HexID) {
	p.Hex = hex
}

// Ends resolves the path's ends with junction indirection flattened: a
// junction end expands to the non-junction ends of every other path
// meeting there, so two paths connected only through a junction compare
// as if directly joined. Resolved lazily because the junction index is
// still filling in while a tile is being assembled; a path always has at
// least one non-junction end, so an empty slice doubles as the
// not-yet-resolved sentinel.
func (p *Path) Ends() []*Part {
	if p.ends != nil {
		return p.ends
	}
	ends := make([]*Part, 0, 2)
	for _, part := range []*Part{p.A, p.B} {
		if !part.IsJunction() {
			ends = append(ends, part)
			continue
		}
		for _, jp := range part.paths {
			if jp == p {
				continue
			}
			for _, other := range []*Part{jp.A, jp.B} {
				if !other.IsJunction() {
					ends = append(ends, other)
				}
			}
		}
	}
	p.ends = ends
	return p.ends
}

// Rotate returns a new path with edge ends rotated by ticks around the
// hex. Node parts are cloned so the rotated path carries the same stop
// identities without mutating the original tile; rotating by 6 yields a
// path geometrically identical to the receiver.
func (p *Path) Rotate(ticks int) *Path {
	rotated, err := NewPath(PathSpec{
		A:        rotatePart(p.A, ticks),
		B:        rotatePart(p.B, ticks),
		Track:    p.Track,
		LanesA:   p.LanesA,
		LanesB:   p.LanesB,
		Terminal: p.Terminal,
	})
	if err != nil {
		// The receiver already passed validation and rotation preserves
		// every invariant.
		panic(fmt.Sprintf("rotate produced invalid path: %v", err))
	}
	return rotated
}

func rotatePart(part *Part, ticks int) *Part {
	c := part.clone()
	if c.IsEdge() {
		c.Num = ((part.Num+ticks)%6 + 6) % 6
	}
	return c
}

// Subsumes reports whether p is a superset-compatible replacement for
// other: every resolved end of other is compatible with some resolved
// end of p, and p's gauge accepts other's. Tile-upgrade legality checks
// use this to test whether a new tile's path can replace an existing
// one.
func (p *Path) Subsumes(other *Path) bool {
	if !p.Track.Connects(other.Track) {
		return false
	}
	mine := p.Ends()
	for _, theirs := range other.Ends() {
		matched := false
		for _, end := range mine {
			if endCompatible(theirs, end) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// endCompatible reports whether an end of an existing path is covered by
// an end of a replacement path. Edges must share the edge number;
// upgrade tiles may promote a town to a city but never the reverse.
func endCompatible(existing, replacement *Part) bool {
	switch existing.Kind {
	case EdgePart:
		return replacement.IsEdge() && existing.Num == replacement.Num
	case JunctionPart:
		return replacement.IsJunction()
	case TownPart:
		return replacement.IsTown() || replacement.IsCity()
	case CityPart:
		return replacement.IsCity()
	case OffboardPart:
		return replacement.IsOffboard()
	}
	return false
}

func (p *Path) String() string {
	return fmt.Sprintf("%s=%s/%s@%s", p.A, p.B, p.Track, p.Hex)
}
