package service

import (
	"time"

	"github.com/hexrail/trackgame/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
	GameConfig     *engine.MapConfig `json:"game_config"`
}

// LayResult contains the result of a tile lay operation
type LayResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Upgrade   bool              `json:"upgrade,omitempty"`
	// Hex, Tile and Rotation echo the attempted lay so failures carry
	// their diagnostics.
	Hex      string `json:"hex"`
	Tile     string `json:"tile"`
	Rotation int    `json:"rotation"`
}

// TraceResult contains every path reachable from the trace origin
type TraceResult struct {
	RunID string           `json:"run_id"`
	From  engine.PathRef   `json:"from"`
	Paths []engine.PathRef `json:"paths"`
	Count int              `json:"count"`
}

// ChainsResult contains the route segments anchored at the trace origin
type ChainsResult struct {
	RunID  string             `json:"run_id"`
	From   engine.PathRef     `json:"from"`
	Chains [][]engine.PathRef `json:"chains"`
	Count  int                `json:"count"`
}

// RouteResult contains the confirmed subset of a claimed route
type RouteResult struct {
	RunID     string           `json:"run_id"`
	Claimed   []engine.PathRef `json:"claimed"`
	Confirmed []engine.PathRef `json:"confirmed"`
	// Rejected lists claimed paths not connected to the first one
	Rejected []engine.PathRef `json:"rejected,omitempty"`
	Complete bool             `json:"complete"`
}

// HistoryOptions configures lay history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated lay history
type HistoryResponse struct {
	Lays        []engine.LayHistoryEntry `json:"lays"`
	TotalLays   int                      `json:"total_lays"`
	Page        int                      `json:"page"`
	PageSize    int                      `json:"page_size"`
	TotalPages  int                      `json:"total_pages"`
	HasNext     bool                     `json:"has_next"`
	HasPrevious bool                     `json:"has_previous"`
}

// ConfigInfo provides information about a map configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Hexes       int    `json:"hexes"`
	Tiles       int    `json:"tiles"`
}
