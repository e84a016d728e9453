package track

import "fmt"

// PartKind identifies what a part is. Exactly one kind holds per part.
type PartKind string

const (
	EdgePart     PartKind = "edge"
	CityPart     PartKind = "city"
	TownPart     PartKind = "town"
	OffboardPart PartKind = "offboard"
	JunctionPart PartKind = "junction"
)

// Part is one terminus of a track segment on a tile: a tile edge, a stop
// (city, town, or offboard), or a junction where several paths splice
// together without being a stop.
//
// Edge parts are private to the path that owns them; node and junction
// parts are shared by every path that meets them on the tile.
type Part struct {
	Kind PartKind

	// Num is the tile edge number (0-5). Only meaningful for edge parts.
	Num int

	// ID names a node part within its tile.
	ID string

	// Lanes is the lane descriptor stamped on this part by the first
	// path that claims it as an end.
	Lanes    Lane
	laneSet  bool
	exitHint float64
	hintSet  bool

	// paths is the junction index: every path terminating at this
	// junction, registered at path construction time.
	paths []*Path
}

// NewEdge creates an edge part for the given tile edge number.
func NewEdge(num int) *Part {
	return &Part{Kind: EdgePart, Num: num}
}

// NewCity creates a city part with the given identifier.
func NewCity(id string) *Part {
	return &Part{Kind: CityPart, ID: id}
}

// NewTown creates a town part with the given identifier.
func NewTown(id string) *Part {
	return &Part{Kind: TownPart, ID: id}
}

// NewOffboard creates an offboard part with the given identifier.
func NewOffboard(id string) *Part {
	return &Part{Kind: OffboardPart, ID: id}
}

// NewJunction creates a junction part. Paths register themselves with the
// junction as they are constructed.
func NewJunction(id string) *Part {
	return &Part{Kind: JunctionPart, ID: id}
}

func (p *Part) IsEdge() bool     { return p.Kind == EdgePart }
func (p *Part) IsCity() bool     { return p.Kind == CityPart }
func (p *Part) IsTown() bool     { return p.Kind == TownPart }
func (p *Part) IsOffboard() bool { return p.Kind == OffboardPart }
func (p *Part) IsJunction() bool { return p.Kind == JunctionPart }

// IsNode reports whether the part is a stop a route can visit.
func (p *Part) IsNode() bool {
	return p.Kind == CityPart || p.Kind == TownPart || p.Kind == OffboardPart
}

// Paths returns the paths terminating at this junction. Empty for
// non-junction parts.
func (p *Part) Paths() []*Path {
	return p.paths
}

// SetExitHint records the tile's preferred exit direction for a node
// part. Half-integer values arise when a node sits between two edges.
func (p *Part) SetExitHint(exit float64) {
	p.exitHint = exit
	p.hintSet = true
}

// ExitHint returns the preferred exit direction for a node part, if one
// was recorded.
func (p *Part) ExitHint() (float64, bool) {
	return p.exitHint, p.hintSet
}

// exitPosition resolves the part to a directional exit number: the edge
// number for edges, the recorded hint for nodes.
func (p *Part) exitPosition() (float64, bool) {
	if p.IsEdge() {
		return float64(p.Num), true
	}
	if p.hintSet {
		return p.exitHint, true
	}
	return 0, false
}

// assignLane stamps the lane descriptor on the part. Only the first
// assignment sticks; shared parts keep the descriptor of their first
// owning path.
func (p *Part) assignLane(l Lane) {
	if p.laneSet {
		return
	}
	p.Lanes = l
	p.laneSet = true
}

// clone returns a copy of the part with an empty junction index, used
// when rotating a tile or path.
func (p *Part) clone() *Part {
	c := &Part{
		Kind:     p.Kind,
		Num:      p.Num,
		ID:       p.ID,
		exitHint: p.exitHint,
		hintSet:  p.hintSet,
	}
	return c
}

func (p *Part) String() string {
	if p.IsEdge() {
		return fmt.Sprintf("edge:%d", p.Num)
	}
	return fmt.Sprintf("%s:%s", p.Kind, p.ID)
}
