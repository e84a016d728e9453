package engine

import (
	"fmt"

	"github.com/hexrail/trackgame/game/tileset"
)

// ValidateMapConfig validates a map configuration for structural
// soundness: the tile catalog must build, every hex must be unique, and
// every pre-printed tile must exist in the catalog.
func ValidateMapConfig(config *MapConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if len(config.Hexes) < MinHexes || len(config.Hexes) > MaxHexes {
		return fmt.Errorf("config validation: hex count must be between %d and %d, got %d",
			MinHexes, MaxHexes, len(config.Hexes))
	}

	catalog, err := tileset.BuildCatalog(config.Tiles)
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	seen := make(map[string]bool, len(config.Hexes))
	for i, hex := range config.Hexes {
		key := hex.Coord.String()
		if seen[key] {
			return fmt.Errorf("config validation: hex %s declared twice", key)
		}
		seen[key] = true

		if hex.Rotation < 0 || hex.Rotation > MaxRotation {
			return fmt.Errorf("config validation: hex %d rotation must be between 0 and %d, got %d",
				i+1, MaxRotation, hex.Rotation)
		}
		if hex.Tile != "" {
			if _, ok := catalog[hex.Tile]; !ok {
				return fmt.Errorf("config validation: hex %s references unknown tile %q", key, hex.Tile)
			}
		}
	}

	return nil
}

// InitGameStateFromConfig creates the starting game state for a map.
func InitGameStateFromConfig(config *MapConfig) *GameState {
	state := &GameState{
		LayHistory:  []LayHistoryEntry{},
		CurrentLays: []LayHistoryEntry{},
	}
	if config == nil {
		return state
	}
	state.ConfigName = config.Name
	for _, hex := range config.Hexes {
		state.Hexes = append(state.Hexes, HexState{
			Coord:    hex.Coord,
			Tile:     hex.Tile,
			Rotation: hex.Rotation,
		})
	}
	return state
}
