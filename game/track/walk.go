package track

// Adjacency is the read-only tile lookup the traversal engine uses to
// cross hex boundaries. The board package provides the real
// implementation; tests run the walk against synthetic graphs.
type Adjacency interface {
	// Neighbor returns the hex adjacent to the given hex across the
	// given edge, if one exists.
	Neighbor(hex HexID, edge int) (HexID, bool)

	// PathsAt returns the paths on the given hex that have an end at the
	// given edge.
	PathsAt(hex HexID, edge int) []*Path
}

// InvertEdge returns the edge number of the same boundary seen from the
// neighboring hex.
func InvertEdge(edge int) int {
	return (edge + 3) % 6
}

// WalkOptions configures a traversal.
type WalkOptions struct {
	// SkipEdge is a tile edge the walk must not leave the starting path
	// through, typically the edge it arrived from. Honored only when
	// HasSkipEdge is true, since edge 0 is a valid edge number.
	SkipEdge    int
	HasSkipEdge bool

	// SkipJunction prevents the walk from immediately re-entering the
	// junction it arrived from.
	SkipJunction *Part

	// On restricts traversal to member paths when non-nil. Paths outside
	// the set are never stepped into; the starting path is always
	// walked.
	On map[*Path]bool
}

// Visitor receives each reachable path together with the visited set as
// of that yield. The visited set is shared walk state and must not be
// mutated. Returning false stops the walk.
type Visitor func(p *Path, visited map[*Path]bool) bool

// ChainVisitor receives each complete chain. The slice is private to the
// call. Returning false stops the walk.
type ChainVisitor func(chain []*Path) bool

// Walk explores every path reachable from p depth-first and yields each
// exactly once. Fan-out happens two ways: through a junction end, into
// every other path meeting at that junction, and through each tile-edge
// exit, into the facing paths on the neighboring hex whose lane
// descriptors mirror this path's and whose gauge is compatible. A shared
// visited set bounds the walk on graphs with loops.
func (p *Path) Walk(adj Adjacency, opts WalkOptions, visit Visitor) {
	w := &walker{adj: adj, on: opts.On, visit: visit}
	w.walk(p, frame{skipEdge: opts.SkipEdge, hasSkipEdge: opts.HasSkipEdge, skipJunction: opts.SkipJunction}, make(map[*Path]bool), nil)
}

// WalkChains enumerates simple chains of connected paths anchored at p.
// A chain is yielded when it reaches a path with a stop on it: the
// starting path alone forms a chain only when both its ends are stops,
// and an extension completes a chain as soon as one end is. Each branch
// walks its own visited snapshot so distinct chains may share a prefix,
// while no single chain revisits a path.
func (p *Path) WalkChains(adj Adjacency, opts WalkOptions, visit ChainVisitor) {
	w := &walker{adj: adj, on: opts.On, chains: true, visitChain: visit}
	w.walk(p, frame{skipEdge: opts.SkipEdge, hasSkipEdge: opts.HasSkipEdge, skipJunction: opts.SkipJunction}, make(map[*Path]bool), nil)
}

// Select walks from p restricted to the claimed candidate set and
// returns the members actually reachable under lane and gauge rules, in
// input order. The result never contains a path outside candidates, and
// selecting an already-selected result returns it unchanged.
func (p *Path) Select(adj Adjacency, candidates []*Path) []*Path {
	on := make(map[*Path]bool, len(candidates))
	for _, c := range candidates {
		on[c] = false
	}
	p.Walk(adj, WalkOptions{On: on}, func(q *Path, _ map[*Path]bool) bool {
		if _, claimed := on[q]; claimed {
			on[q] = true
		}
		return true
	})
	confirmed := make([]*Path, 0, len(candidates))
	for _, c := range candidates {
		if on[c] {
			confirmed = append(confirmed, c)
		}
	}
	return confirmed
}

// frame is the per-step traversal state: the guards against bouncing
// straight back the way the walk came.
type frame struct {
	skipEdge     int
	hasSkipEdge  bool
	skipJunction *Part
}

// walker holds the state shared by one traversal. The same recursion
// serves all three modes; only the yield policy differs.
type walker struct {
	adj        Adjacency
	on         map[*Path]bool
	chains     bool
	visit      Visitor
	visitChain ChainVisitor
	stopped    bool
}

func (w *walker) walk(p *Path, f frame, visited map[*Path]bool, chain []*Path) {
	if w.stopped || visited[p] {
		return
	}
	if w.chains {
		// Branch-private snapshot: sibling branches may reach the same
		// path through different chains.
		visited = copyVisited(visited)
	}
	visited[p] = true

	if w.chains {
		// Force reallocation on append so sibling branches never share
		// backing arrays.
		chain = append(chain[:len(chain):len(chain)], p)
		if len(chain) == 1 {
			if len(p.nodes) == 2 {
				if !w.visitChain(chain) {
					w.stopped = true
				}
				return
			}
		} else if len(p.nodes) >= 1 {
			if !w.visitChain(chain) {
				w.stopped = true
			}
			return
		}
	} else {
		if !w.visit(p, visited) {
			w.stopped = true
			return
		}
	}

	if j := p.junction; j != nil && j != f.skipJunction {
		for _, jp := range j.paths {
			if jp == p {
				continue
			}
			if !w.allowed(jp) {
				continue
			}
			w.walk(jp, frame{skipJunction: j}, visited, chain)
			if w.stopped {
				return
			}
		}
	}

	for _, edge := range p.exits {
		if f.hasSkipEdge && edge == f.skipEdge {
			continue
		}
		if p.Hex == "" {
			continue
		}
		neighbor, ok := w.adj.Neighbor(p.Hex, edge)
		if !ok {
			continue
		}
		inverted := InvertEdge(edge)
		myLane := p.lanes[edge]
		for _, np := range w.adj.PathsAt(neighbor, inverted) {
			if !w.allowed(np) {
				continue
			}
			theirLane, ok := np.ExitLane(inverted)
			if !ok || !myLane.Match(theirLane) {
				continue
			}
			if !p.Track.Connects(np.Track) {
				continue
			}
			w.walk(np, frame{skipEdge: inverted, hasSkipEdge: true}, visited, chain)
			if w.stopped {
				return
			}
		}
	}
}

// allowed applies the on-set restriction: membership, not value, decides
// whether a path may be stepped into.
func (w *walker) allowed(p *Path) bool {
	if w.on == nil {
		return true
	}
	_, ok := w.on[p]
	return ok
}

func copyVisited(visited map[*Path]bool) map[*Path]bool {
	c := make(map[*Path]bool, len(visited)+1)
	for k, v := range visited {
		c[k] = v
	}
	return c
}
