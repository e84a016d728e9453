// Package tileset defines the JSON schema for tile catalogs and builds
// track.Tile values from it.
//
// A tile definition lists its shared parts (cities, towns, offboards,
// junctions) and its paths. Path ends reference parts as "kind:id", e.g.
// "city:c1"; edge ends are written "edge:N" and created per path, since
// an edge terminus belongs to exactly one path.
package tileset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hexrail/trackgame/game/track"
)

// TileDef is one tile in a catalog JSON file.
type TileDef struct {
	ID    string    `json:"id"`
	Color string    `json:"color"`
	Parts []PartDef `json:"parts,omitempty"`
	Paths []PathDef `json:"paths"`
}

// PartDef declares a shared part of a tile.
type PartDef struct {
	Ref string `json:"ref"`
	// ExitHint is the tile's preferred exit direction for a node part,
	// used for curve classification. May be half-integer.
	ExitHint *float64 `json:"exit_hint,omitempty"`
}

// PathDef declares one track segment of a tile.
type PathDef struct {
	A        string      `json:"a"`
	B        string      `json:"b"`
	Track    track.Gauge `json:"track,omitempty"`
	LanesA   *track.Lane `json:"lanes_a,omitempty"`
	LanesB   *track.Lane `json:"lanes_b,omitempty"`
	Terminal bool        `json:"terminal,omitempty"`
}

// Build assembles a track.Tile from its definition.
func Build(def TileDef) (*track.Tile, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("tile validation: id is required")
	}
	if len(def.Paths) == 0 {
		return nil, fmt.Errorf("tile validation: tile %s has no paths", def.ID)
	}

	tile := &track.Tile{ID: def.ID, Color: def.Color}

	shared := make(map[string]*track.Part, len(def.Parts))
	for _, pd := range def.Parts {
		part, err := sharedPart(pd.Ref)
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", def.ID, err)
		}
		if _, dup := shared[pd.Ref]; dup {
			return nil, fmt.Errorf("tile validation: tile %s declares part %q twice", def.ID, pd.Ref)
		}
		if pd.ExitHint != nil {
			part.SetExitHint(*pd.ExitHint)
		}
		shared[pd.Ref] = part
		tile.Parts = append(tile.Parts, part)
	}

	for i, pd := range def.Paths {
		a, err := resolveEnd(shared, pd.A)
		if err != nil {
			return nil, fmt.Errorf("tile %s path %d: %w", def.ID, i, err)
		}
		b, err := resolveEnd(shared, pd.B)
		if err != nil {
			return nil, fmt.Errorf("tile %s path %d: %w", def.ID, i, err)
		}
		spec := track.PathSpec{A: a, B: b, Track: pd.Track, Terminal: pd.Terminal}
		if pd.LanesA != nil {
			spec.LanesA = *pd.LanesA
		}
		if pd.LanesB != nil {
			spec.LanesB = *pd.LanesB
		}
		path, err := track.NewPath(spec)
		if err != nil {
			return nil, fmt.Errorf("tile %s path %d: %w", def.ID, i, err)
		}
		tile.Paths = append(tile.Paths, path)
	}
	return tile, nil
}

// BuildCatalog assembles every tile of a catalog, keyed by tile ID.
func BuildCatalog(defs []TileDef) (map[string]*track.Tile, error) {
	tiles := make(map[string]*track.Tile, len(defs))
	for _, def := range defs {
		if _, dup := tiles[def.ID]; dup {
			return nil, fmt.Errorf("tile validation: duplicate tile id %q", def.ID)
		}
		tile, err := Build(def)
		if err != nil {
			return nil, err
		}
		tiles[def.ID] = tile
	}
	return tiles, nil
}

// sharedPart creates the part a "kind:id" reference declares. Edge parts
// cannot be shared.
func sharedPart(ref string) (*track.Part, error) {
	kind, id, err := splitRef(ref)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "city":
		return track.NewCity(id), nil
	case "town":
		return track.NewTown(id), nil
	case "offboard":
		return track.NewOffboard(id), nil
	case "junction":
		return track.NewJunction(id), nil
	case "edge":
		return nil, fmt.Errorf("tile validation: edge %q cannot be declared as a shared part", ref)
	}
	return nil, fmt.Errorf("tile validation: unknown part kind %q", kind)
}

// resolveEnd maps a path-end reference to its part: a fresh edge part
// for "edge:N", a declared shared part otherwise.
func resolveEnd(shared map[string]*track.Part, ref string) (*track.Part, error) {
	kind, id, err := splitRef(ref)
	if err != nil {
		return nil, err
	}
	if kind == "edge" {
		num, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("tile validation: bad edge number in %q", ref)
		}
		return track.NewEdge(num), nil
	}
	part, ok := shared[ref]
	if !ok {
		return nil, fmt.Errorf("tile validation: path references undeclared part %q", ref)
	}
	return part, nil
}

func splitRef(ref string) (kind, id string, err error) {
	kind, id, ok := strings.Cut(ref, ":")
	if !ok || kind == "" || id == "" {
		return "", "", fmt.Errorf("tile validation: malformed part reference %q", ref)
	}
	return kind, id, nil
}
