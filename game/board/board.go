// Package board lays hexes out on a grid and resolves tile adjacency for
// the track traversal engine. It owns tile placement, including the
// subsumption check that gates tile upgrades, and implements
// track.Adjacency so walks run against the real map.
package board

import (
	"errors"
	"fmt"

	"github.com/hexrail/trackgame/game/track"
)

var (
	ErrNoSuchHex      = errors.New("hex not on the board")
	ErrIllegalUpgrade = errors.New("tile does not preserve existing track")
)

// Coord addresses a hex by column and row. The grid uses flat-top hexes
// in odd-q offset layout: odd columns are shifted down half a hex.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// ID returns the coordinate as the hex identifier used by the traversal
// engine.
func (c Coord) ID() track.HexID {
	return track.HexID(fmt.Sprintf("%d,%d", c.Col, c.Row))
}

func (c Coord) String() string {
	return string(c.ID())
}

// Edges are numbered clockwise from north: 0=N, 1=NE, 2=SE, 3=S, 4=SW,
// 5=NW. Opposite edges differ by 3, matching track.InvertEdge.
var (
	evenColOffsets = [6]Coord{{0, -1}, {1, -1}, {1, 0}, {0, 1}, {-1, 0}, {-1, -1}}
	oddColOffsets  = [6]Coord{{0, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}}
)

// Neighbor returns the coordinate across the given edge.
func (c Coord) Neighbor(edge int) Coord {
	offsets := evenColOffsets
	if c.Col&1 != 0 {
		offsets = oddColOffsets
	}
	o := offsets[((edge%6)+6)%6]
	return Coord{Col: c.Col + o.Col, Row: c.Row + o.Row}
}

// Hex is one cell of the board, holding the placed tile, if any.
type Hex struct {
	Coord    Coord
	Tile     *track.Tile
	Rotation int
}

// Board is the set of hexes in play. Only hexes added up front exist;
// tiles can only be placed on existing hexes.
type Board struct {
	hexes map[track.HexID]*Hex
}

// New creates a board with the given playable coordinates.
func New(coords ...Coord) *Board {
	b := &Board{hexes: make(map[track.HexID]*Hex, len(coords))}
	for _, c := range coords {
		b.hexes[c.ID()] = &Hex{Coord: c}
	}
	return b
}

// AddHex makes a coordinate playable. Existing hexes are left untouched.
func (b *Board) AddHex(c Coord) {
	if _, ok := b.hexes[c.ID()]; !ok {
		b.hexes[c.ID()] = &Hex{Coord: c}
	}
}

// Hex returns the hex at the coordinate, if it is on the board.
func (b *Board) Hex(c Coord) (*Hex, bool) {
	h, ok := b.hexes[c.ID()]
	return h, ok
}

// HexByID returns the hex with the given traversal identifier.
func (b *Board) HexByID(id track.HexID) (*Hex, bool) {
	h, ok := b.hexes[id]
	return h, ok
}

// Hexes returns every hex on the board.
func (b *Board) Hexes() []*Hex {
	out := make([]*Hex, 0, len(b.hexes))
	for _, h := range b.hexes {
		out = append(out, h)
	}
	return out
}

// Place rotates the tile template and puts the result on the hex. When
// the hex already has a tile, the new tile must subsume every existing
// path or the placement is rejected.
func (b *Board) Place(c Coord, tile *track.Tile, rotation int) error {
	hex, ok := b.hexes[c.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchHex, c)
	}

	rotated, err := tile.Rotate(rotation)
	if err != nil {
		return fmt.Errorf("rotating tile %s: %w", tile.ID, err)
	}

	if hex.Tile != nil && !hex.Tile.Upgrades(rotated) {
		return fmt.Errorf("%w: %s on %s", ErrIllegalUpgrade, tile.ID, c)
	}

	for _, p := range rotated.Paths {
		p.PlaceAt(c.ID())
	}
	hex.Tile = rotated
	hex.Rotation = ((rotation % 6) + 6) % 6
	return nil
}

// Neighbor implements track.Adjacency. Only hexes on the board count as
// neighbors.
func (b *Board) Neighbor(hex track.HexID, edge int) (track.HexID, bool) {
	h, ok := b.hexes[hex]
	if !ok {
		return "", false
	}
	n := h.Coord.Neighbor(edge)
	if _, ok := b.hexes[n.ID()]; !ok {
		return "", false
	}
	return n.ID(), true
}

// PathsAt implements track.Adjacency: the paths on the hex's tile with
// an end at the given edge.
func (b *Board) PathsAt(hex track.HexID, edge int) []*track.Path {
	h, ok := b.hexes[hex]
	if !ok || h.Tile == nil {
		return nil
	}
	return h.Tile.PathsAt(edge)
}
