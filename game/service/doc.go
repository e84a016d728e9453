// Package service provides the business logic layer for the hex rail
// track game.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Tile lay processing and validation
//   - Track tracing and route selection
//   - Lay history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages map configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent board state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Lay a tile and trace the network it joined
//	result, err := gameService.LayTile(ctx, sessionInfo.ID, "2,3", "9", 0)
//	trace, err := gameService.TracePaths(ctx, sessionInfo.ID, engine.PathRef{Hex: "2,3", Index: 0})
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different
// configurations. Sessions track creation time, last access time, and lay
// history for analytics and debugging.
package service
