// Package mcp provides a Model Context Protocol server for the hex rail
// track game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for board and tracing operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current board state with per-hex tile listing
//   - lay_tile: Lay or upgrade a tile on a hex
//   - trace_paths: List every path connected to an origin path
//   - trace_chains: Enumerate route segments from an origin path
//   - select_route: Confirm which claimed paths form a connected route
//   - reset_game: Reset the board to its starting tiles
//   - lay_history: Retrieve lay history with pagination
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available map configurations
//   - game_instructions: Get comprehensive game instructions and rules
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: streamable HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The Client is a thin proxy: every tool handler calls the REST API and
// formats the JSON response as text. Game logic stays behind the API;
// the MCP layer holds no state of its own.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
