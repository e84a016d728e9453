// Package engine implements the core game logic for the hex rail track
// game.
//
// The engine owns a board built from a map configuration, a tile catalog,
// and the game state, and exposes the operations the service layer needs:
// laying and upgrading tiles, tracing the track network, and confirming
// claimed routes.
//
// Core Types:
//   - Engine: Interface defining all game operations
//   - GameEngine: Implementation backed by a board.Board
//   - MapConfig: Map definition with tile catalog and hex layout
//   - GameState: Current state including hex snapshots and lay history
//
// Usage:
//
//	config := &engine.MapConfig{...}
//	eng, err := engine.NewEngine(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = eng.LayTile("0,1", "9", 0)
//	paths, err := eng.TracePaths(engine.PathRef{Hex: "0,1", Index: 0})
//
// Every lay attempt, successful or not, is recorded in the lay history.
// Reset clears the board back to the map's pre-printed tiles while
// preserving the cumulative history.
package engine
