package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/hexrail/trackgame/game/board"
	"github.com/hexrail/trackgame/game/tileset"
	"github.com/hexrail/trackgame/game/track"
)

var (
	ErrUnknownTile = errors.New("tile not in catalog")
	ErrUnknownHex  = errors.New("hex not on this map")
	ErrEmptyHex    = errors.New("hex has no tile")
	ErrBadPathRef  = errors.New("invalid path reference")
	ErrEmptyRoute  = errors.New("claimed route is empty")
	ErrRouteTooBig = errors.New("claimed route exceeds size limit")
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState

	// Tile operations
	LayTile(hex string, tileID string, rotation int) error
	CanLayTile(hex string, tileID string, rotation int) bool

	// Route operations
	TracePaths(from PathRef) ([]PathRef, error)
	TraceChains(from PathRef) ([][]PathRef, error)
	SelectRoute(claimed []PathRef) ([]PathRef, error)

	// Configuration
	GetConfig() *MapConfig
	SetConfig(config *MapConfig) error

	// History
	GetLayHistory() []LayHistoryEntry
	GetLastLay() *LayHistoryEntry

	// Board access
	GetBoard() *board.Board
}

// GameEngine implements the Engine interface
type GameEngine struct {
	config  *MapConfig
	catalog map[string]*track.Tile
	brd     *board.Board
	state   *GameState
}

// NewEngine creates a new game engine with the provided map configuration
func NewEngine(config *MapConfig) (*GameEngine, error) {
	if err := ValidateMapConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config}
	if err := e.rebuild(true); err != nil {
		return nil, err
	}
	e.state = InitGameStateFromConfig(config)
	e.syncHexStates()
	return e, nil
}

// rebuild constructs the board from the config, optionally placing the
// pre-printed tiles.
func (e *GameEngine) rebuild(placeInitial bool) error {
	catalog, err := tileset.BuildCatalog(e.config.Tiles)
	if err != nil {
		return err
	}
	e.catalog = catalog

	coords := make([]board.Coord, 0, len(e.config.Hexes))
	for _, hex := range e.config.Hexes {
		coords = append(coords, hex.Coord)
	}
	e.brd = board.New(coords...)

	if !placeInitial {
		return nil
	}
	for _, hex := range e.config.Hexes {
		if hex.Tile == "" {
			continue
		}
		tile, ok := catalog[hex.Tile]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTile, hex.Tile)
		}
		if err := e.brd.Place(hex.Coord, tile, hex.Rotation); err != nil {
			return fmt.Errorf("placing initial tile %s on %s: %w", hex.Tile, hex.Coord, err)
		}
	}
	return nil
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState restores a game state (used for persistence loading). The
// board is rebuilt empty and every recorded placement is replayed.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := e.rebuild(false); err != nil {
		return err
	}
	for _, hs := range state.Hexes {
		if hs.Tile == "" {
			continue
		}
		tile, ok := e.catalog[hs.Tile]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTile, hs.Tile)
		}
		if err := e.brd.Place(hs.Coord, tile, hs.Rotation); err != nil {
			return fmt.Errorf("restoring tile %s on %s: %w", hs.Tile, hs.Coord, err)
		}
	}
	e.state = state
	return nil
}

// Reset resets the game to initial state
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	prevHistory := e.state.LayHistory
	prevTotal := e.state.TotalLays

	if err := e.rebuild(true); err != nil {
		// The config was valid at construction time and has not
		// changed.
		panic(fmt.Sprintf("reset failed to rebuild board: %v", err))
	}
	e.state = InitGameStateFromConfig(e.config)
	e.syncHexStates()

	// Restore cumulative history and totals; clear only the current segment
	e.state.LayHistory = prevHistory
	e.state.TotalLays = prevTotal
	e.state.CurrentLays = []LayHistoryEntry{}
	e.state.CurrentLaysCount = 0

	return e.state
}

// LayTile places or upgrades a tile on the hex. Both successful and
// rejected lays are recorded in the history.
func (e *GameEngine) LayTile(hex string, tileID string, rotation int) error {
	err := e.layTile(hex, tileID, rotation)
	e.recordLay(hex, tileID, rotation, err)
	return err
}

func (e *GameEngine) layTile(hex string, tileID string, rotation int) error {
	h, ok := e.brd.HexByID(track.HexID(hex))
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHex, hex)
	}
	tile, ok := e.catalog[tileID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTile, tileID)
	}
	if err := e.brd.Place(h.Coord, tile, rotation); err != nil {
		return err
	}
	e.syncHexStates()
	return nil
}

// CanLayTile checks whether a lay would succeed without mutating the
// board or the history.
func (e *GameEngine) CanLayTile(hex string, tileID string, rotation int) bool {
	h, ok := e.brd.HexByID(track.HexID(hex))
	if !ok {
		return false
	}
	tile, ok := e.catalog[tileID]
	if !ok {
		return false
	}
	if rotation < 0 || rotation > MaxRotation {
		return false
	}
	if h.Tile == nil {
		return true
	}
	rotated, err := tile.Rotate(rotation)
	if err != nil {
		return false
	}
	return h.Tile.Upgrades(rotated)
}

// TracePaths walks the track network from the referenced path and
// returns every connected path.
func (e *GameEngine) TracePaths(from PathRef) ([]PathRef, error) {
	origin, err := e.resolvePath(from)
	if err != nil {
		return nil, err
	}
	var refs []PathRef
	origin.Walk(e.brd, track.WalkOptions{}, func(p *track.Path, _ map[*track.Path]bool) bool {
		refs = append(refs, e.refFor(p))
		return true
	})
	return refs, nil
}

// TraceChains enumerates the simple route segments anchored at the
// referenced path that end at a stop.
func (e *GameEngine) TraceChains(from PathRef) ([][]PathRef, error) {
	origin, err := e.resolvePath(from)
	if err != nil {
		return nil, err
	}
	var chains [][]PathRef
	origin.WalkChains(e.brd, track.WalkOptions{}, func(chain []*track.Path) bool {
		refs := make([]PathRef, len(chain))
		for i, p := range chain {
			refs[i] = e.refFor(p)
		}
		chains = append(chains, refs)
		return true
	})
	return chains, nil
}

// SelectRoute confirms which members of a claimed route are actually
// connected to its first path.
func (e *GameEngine) SelectRoute(claimed []PathRef) ([]PathRef, error) {
	if len(claimed) == 0 {
		return nil, ErrEmptyRoute
	}
	if len(claimed) > MaxClaimedSize {
		return nil, fmt.Errorf("%w: %d paths", ErrRouteTooBig, len(claimed))
	}

	paths := make([]*track.Path, len(claimed))
	for i, ref := range claimed {
		p, err := e.resolvePath(ref)
		if err != nil {
			return nil, fmt.Errorf("claimed path %d: %w", i, err)
		}
		paths[i] = p
	}

	selected := paths[0].Select(e.brd, paths)
	refs := make([]PathRef, len(selected))
	for i, p := range selected {
		refs[i] = e.refFor(p)
	}
	return refs, nil
}

// GetConfig returns the current map configuration
func (e *GameEngine) GetConfig() *MapConfig {
	return e.config
}

// SetConfig sets a new map configuration and resets the game
func (e *GameEngine) SetConfig(config *MapConfig) error {
	if err := ValidateMapConfig(config); err != nil {
		return err
	}

	e.config = config
	if err := e.rebuild(true); err != nil {
		return err
	}
	e.state = InitGameStateFromConfig(config)
	e.syncHexStates()
	return nil
}

// GetLayHistory returns the complete lay history
func (e *GameEngine) GetLayHistory() []LayHistoryEntry {
	return e.state.LayHistory
}

// GetLastLay returns the last lay made, or nil if no lays
func (e *GameEngine) GetLastLay() *LayHistoryEntry {
	if len(e.state.LayHistory) == 0 {
		return nil
	}
	return &e.state.LayHistory[len(e.state.LayHistory)-1]
}

// GetBoard returns the live board, usable directly as a
// track.Adjacency.
func (e *GameEngine) GetBoard() *board.Board {
	return e.brd
}

// resolvePath maps a PathRef to the placed path it names.
func (e *GameEngine) resolvePath(ref PathRef) (*track.Path, error) {
	h, ok := e.brd.HexByID(track.HexID(ref.Hex))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHex, ref.Hex)
	}
	if h.Tile == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyHex, ref.Hex)
	}
	if ref.Index < 0 || ref.Index >= len(h.Tile.Paths) {
		return nil, fmt.Errorf("%w: %s index %d", ErrBadPathRef, ref.Hex, ref.Index)
	}
	return h.Tile.Paths[ref.Index], nil
}

// refFor is the inverse of resolvePath for placed paths.
func (e *GameEngine) refFor(p *track.Path) PathRef {
	ref := PathRef{Hex: string(p.Hex), Index: -1}
	if h, ok := e.brd.HexByID(p.Hex); ok && h.Tile != nil {
		for i, candidate := range h.Tile.Paths {
			if candidate == p {
				ref.Index = i
				break
			}
		}
	}
	return ref
}

// recordLay appends a history entry for an attempted lay.
func (e *GameEngine) recordLay(hex, tileID string, rotation int, layErr error) {
	h, ok := e.brd.HexByID(track.HexID(hex))
	upgrade := ok && h.Tile != nil && layErr != nil
	if ok && layErr == nil {
		// After a successful lay the hex holds the new tile; it was an
		// upgrade if the hex was pre-printed or previously laid.
		upgrade = e.laysOn(hex) > 0 || e.initialTileOn(hex)
	}

	entry := LayHistoryEntry{
		Hex:       hex,
		Tile:      tileID,
		Rotation:  ((rotation % 6) + 6) % 6,
		Upgrade:   upgrade,
		Success:   layErr == nil,
		Timestamp: time.Now().Unix(),
		LayNumber: e.state.TotalLays + 1,
	}
	e.state.LayHistory = append(e.state.LayHistory, entry)
	e.state.CurrentLays = append(e.state.CurrentLays, entry)
	e.state.TotalLays++
	e.state.CurrentLaysCount = len(e.state.CurrentLays)
}

// laysOn counts successful lays recorded for a hex.
func (e *GameEngine) laysOn(hex string) int {
	n := 0
	for _, entry := range e.state.LayHistory {
		if entry.Hex == hex && entry.Success {
			n++
		}
	}
	return n
}

// initialTileOn reports whether the config pre-prints a tile on the hex.
func (e *GameEngine) initialTileOn(hex string) bool {
	for _, hs := range e.config.Hexes {
		if hs.Coord.String() == hex && hs.Tile != "" {
			return true
		}
	}
	return false
}

// syncHexStates refreshes the state's per-hex snapshot from the board.
func (e *GameEngine) syncHexStates() {
	if e.state == nil {
		return
	}
	for i := range e.state.Hexes {
		hs := &e.state.Hexes[i]
		if h, ok := e.brd.HexByID(hs.Coord.ID()); ok {
			if h.Tile != nil {
				hs.Tile = h.Tile.ID
				hs.Rotation = h.Rotation
				hs.Paths = len(h.Tile.Paths)
			} else {
				hs.Tile = ""
				hs.Rotation = 0
				hs.Paths = 0
			}
		}
	}
}
