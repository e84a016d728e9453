// Package websocket provides WebSocket transport for the hex rail track
// game.
//
// The websocket package implements:
//   - Real-time board state broadcasting
//   - Session-aware WebSocket connections
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine pair that manages reading, writing, and cleanup. All state
// shared between connections lives inside the hub goroutine; callers talk
// to it through channels.
//
// Message Protocol:
//
// Messages are JSON-encoded. After every tile lay or reset the server
// pushes a "board_update" event carrying the full game state:
//
//	{"session_id": "ab12", "event": "board_update", "game_state": {...}}
//
// Clients do not send game commands over the socket; all mutations go
// through the REST API. Incoming frames only keep the connection alive.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session
// ID via query parameter (?session=ab12) when establishing the
// connection. Board updates are broadcast only to clients connected to
// the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
