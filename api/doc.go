// Package api provides HTTP REST API handlers for the hex rail track
// game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing, loading and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/lay - Lay or upgrade a tile
//   - POST /api/sessions/{id}/trace - Trace connected paths from an origin
//   - POST /api/sessions/{id}/chains - Enumerate route segments from an origin
//   - POST /api/sessions/{id}/select - Confirm a claimed route
//   - POST /api/sessions/{id}/reset - Reset the board
//   - GET /api/sessions/{id}/history - Get lay history with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Paths on the board are addressed
// by hex coordinate and path index:
//
//	{
//	  "from": {"hex": "2,3", "index": 0}
//	}
//
// Tile lays name the hex, the catalog tile and a rotation:
//
//	{
//	  "hex": "2,3",
//	  "tile": "9",
//	  "rotation": 2
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
