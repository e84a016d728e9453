// Package track models the physical track network printed on hexagonal
// map tiles and provides the traversal primitives used to answer
// connectivity questions about it.
//
// The track package implements:
//   - Tile parts (edges, cities, towns, offboards, junctions)
//   - Paths: single track segments between two parts, with gauge and lanes
//   - Lane matching and gauge compatibility across tile boundaries
//   - Cycle-safe depth-first traversal (Walk, WalkChains, Select)
//   - Path rotation and subsumption for tile upgrades
//
// Core Types:
//
// Part is one terminus of a track segment. Path is a single segment
// connecting two parts on one tile, carrying a gauge tag and per-end lane
// descriptors. Tile groups the parts and paths printed on one hex tile.
// Adjacency is the read-only lookup the traversal engine uses to cross
// tile boundaries; the board package provides the real implementation and
// tests supply synthetic ones.
//
// Usage:
//
//	city := track.NewCity("c1")
//	path, err := track.NewPath(track.PathSpec{
//		A:     track.NewEdge(0),
//		B:     city,
//		Track: track.Broad,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	path.Walk(adj, track.WalkOptions{}, func(p *track.Path, visited map[*track.Path]bool) bool {
//		// p is reachable from path
//		return true
//	})
//
// Traversal:
//
// Walk explores every path reachable from the starting path, crossing
// tile edges only when the facing lane descriptors mirror each other and
// the gauges are compatible, and fanning out through junctions. WalkChains
// enumerates simple chains of paths anchored at the starting path that
// terminate at a stop. Select restricts the walk to a claimed set of
// paths and returns the subset that is actually connected.
//
// All types are immutable once a tile is assembled and placed, so
// traversal needs no synchronization.
package track
