package engine

import (
	"github.com/hexrail/trackgame/game/board"
	"github.com/hexrail/trackgame/game/tileset"
)

const (
	// Validation constants
	MinHexes       = 1
	MaxHexes       = 2000
	MaxRotation    = 5
	MaxClaimedSize = 500
)

// MapConfig is the game map definition loaded from JSON: the tile
// catalog available in this game and the playable hexes, some of which
// start with a tile already printed on them.
type MapConfig struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Tiles       []tileset.TileDef `json:"tiles"`
	Hexes       []HexSetup        `json:"hexes"`
}

// HexSetup declares one playable hex, optionally pre-printed with a
// tile.
type HexSetup struct {
	Coord    board.Coord `json:"coord"`
	Tile     string      `json:"tile,omitempty"`
	Rotation int         `json:"rotation,omitempty"`
}

// PathRef addresses a path on the board: the hex it is placed on and the
// path's index within that hex tile's path list.
type PathRef struct {
	Hex   string `json:"hex"`
	Index int    `json:"index"`
}

// HexState is the placed-tile snapshot of one hex.
type HexState struct {
	Coord    board.Coord `json:"coord"`
	Tile     string      `json:"tile,omitempty"`
	Rotation int         `json:"rotation"`
	Paths    int         `json:"paths,omitempty"`
}

// GameState represents the complete game state
type GameState struct {
	ConfigName string            `json:"config_name"`
	Hexes      []HexState        `json:"hexes"`
	LayHistory []LayHistoryEntry `json:"lay_history"`
	TotalLays  int               `json:"total_lays"`

	// CurrentLays tracks only the lays since the last reset. It mirrors
	// LayHistory entries but gets cleared on reset while LayHistory
	// remains cumulative.
	CurrentLays      []LayHistoryEntry `json:"current_lays"`
	CurrentLaysCount int               `json:"current_lays_count"`
}

// LayHistoryEntry represents a single tile lay in the game history
type LayHistoryEntry struct {
	Hex       string `json:"hex"`
	Tile      string `json:"tile"`
	Rotation  int    `json:"rotation"`
	Upgrade   bool   `json:"upgrade"`
	Success   bool   `json:"success"`
	Timestamp int64  `json:"timestamp"`
	LayNumber int    `json:"lay_number"`
}
