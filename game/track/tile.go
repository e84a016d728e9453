package track

import "fmt"

// Tile is a hexagonal board piece bearing a fixed layout of parts and
// paths. Tiles in the catalog are templates; placing one on the board
// rotates it first, which produces a fresh tile with its own parts so the
// template is never mutated.
type Tile struct {
	ID    string
	Color string
	Parts []*Part
	Paths []*Path
}

// Rotate returns a copy of the tile rotated by ticks. Shared parts
// (cities, towns, junctions) are cloned once and rewired so the rotated
// tile's junction index contains only the rotated paths.
func (t *Tile) Rotate(ticks int) (*Tile, error) {
	rotated := &Tile{
		ID:    t.ID,
		Color: t.Color,
		Parts: make([]*Part, 0, len(t.Parts)),
		Paths: make([]*Path, 0, len(t.Paths)),
	}

	clones := make(map[*Part]*Part, len(t.Parts))
	clonePart := func(part *Part) *Part {
		if c, ok := clones[part]; ok {
			return c
		}
		c := part.clone()
		if c.IsEdge() {
			c.Num = ((part.Num+ticks)%6 + 6) % 6
		}
		clones[part] = c
		return c
	}

	for _, part := range t.Parts {
		rotated.Parts = append(rotated.Parts, clonePart(part))
	}
	for i, path := range t.Paths {
		np, err := NewPath(PathSpec{
			A:        clonePart(path.A),
			B:        clonePart(path.B),
			Track:    path.Track,
			LanesA:   path.LanesA,
			LanesB:   path.LanesB,
			Terminal: path.Terminal,
		})
		if err != nil {
			return nil, fmt.Errorf("tile %s path %d: %w", t.ID, i, err)
		}
		rotated.Paths = append(rotated.Paths, np)
	}
	return rotated, nil
}

// PathsAt returns the tile's paths that have an end at the given edge.
func (t *Tile) PathsAt(edge int) []*Path {
	var paths []*Path
	for _, p := range t.Paths {
		if _, ok := p.ExitLane(edge); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// Upgrades reports whether the replacement tile preserves this tile's
// track: every existing path must be subsumed by some path on the
// replacement.
func (t *Tile) Upgrades(replacement *Tile) bool {
	for _, old := range t.Paths {
		covered := false
		for _, np := range replacement.Paths {
			if np.Subsumes(old) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
