package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hexrail/trackgame/game/engine"
	"github.com/hexrail/trackgame/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Hex Rail Track Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hex Rail Track Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build a connected rail network by laying track tiles on a hex map. Tiles
can replace existing tiles only when every piece of track already on the
hex survives on the new tile.

AVAILABLE TOOLS:
- game_state: Get current board state
- lay_tile: Lay or upgrade a tile on a hex - requires intent explanation
- trace_paths: List every path connected to an origin path
- trace_chains: Enumerate route segments from an origin path
- select_route: Confirm which claimed paths form a connected route
- reset_game: Reset the board to its starting tiles
- lay_history: View past tile lays
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available map configurations
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on lay_tile serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the map config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "lay_tile",
		Description: "Lay a tile from the catalog on a hex, or upgrade the tile already there. Upgrades succeed only when every existing path survives on the replacement.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"hex": map[string]interface{}{
					"type":        "string",
					"description": "Hex coordinate as \"col,row\"",
				},
				"tile": map[string]interface{}{
					"type":        "string",
					"description": "Catalog ID of the tile to lay",
				},
				"rotation": map[string]interface{}{
					"type":        "integer",
					"description": "Clockwise rotation in edge steps (0-5)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this lay (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "hex", "tile"},
		},
	}, c.handleLayTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "trace_paths",
		Description: "List every path on the board connected to the given origin path",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"hex": map[string]interface{}{
					"type":        "string",
					"description": "Hex coordinate of the origin path",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Path index within the origin hex's tile",
				},
			},
			Required: []string{"session_id", "hex", "index"},
		},
	}, c.handleTracePaths)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "trace_chains",
		Description: "Enumerate the route segments (chains of paths between cities, towns and map edges) reachable from the origin path",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"hex": map[string]interface{}{
					"type":        "string",
					"description": "Hex coordinate of the origin path",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Path index within the origin hex's tile",
				},
			},
			Required: []string{"session_id", "hex", "index"},
		},
	}, c.handleTraceChains)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_route",
		Description: "Confirm which of the claimed paths form a connected route starting from the first claim",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"claimed": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"hex":   map[string]interface{}{"type": "string"},
							"index": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"hex", "index"},
					},
					"description": "Claimed paths in claim order",
				},
			},
			Required: []string{"session_id", "claimed"},
		},
	}, c.handleSelectRoute)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the board to its starting tiles",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "lay_history",
		Description: "Get tile lay history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleLayHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available map configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLayTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	hex, _ := args["hex"].(string)
	tile, _ := args["tile"].(string)
	intent, _ := args["intent"].(string)

	rotation := 0
	if r, ok := args["rotation"].(float64); ok {
		rotation = int(r)
	}

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"hex":      hex,
		"tile":     tile,
		"rotation": rotation,
	}

	var result service.LayResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/lay", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatLayResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleTracePaths(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	from, err := pathRefFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{"from": from}

	var result service.TraceResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/trace", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTraceResult(&result)), nil
}

func (c *Client) handleTraceChains(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	from, err := pathRefFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{"from": from}

	var result service.ChainsResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/chains", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatChainsResult(&result)), nil
}

func (c *Client) handleSelectRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	claimedRaw, _ := args["claimed"].([]interface{})

	claimed := make([]engine.PathRef, 0, len(claimedRaw))
	for _, raw := range claimedRaw {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("claimed entries must be objects with hex and index"), nil
		}
		hex, _ := entry["hex"].(string)
		index, _ := entry["index"].(float64)
		claimed = append(claimed, engine.PathRef{Hex: hex, Index: int(index)})
	}

	body := map[string]interface{}{"claimed": claimed}

	var result service.RouteResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/select", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRouteResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLayHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch the current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		return mcp.NewToolResultText(formatHistory(&history)), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Hexes: %d, Tiles: %d\n\n",
			config.Name, config.Description, config.Hexes, config.Tiles)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🚂 Hex Rail Track Game - Complete Instructions

GAME OBJECTIVE:
Build a connected rail network by laying track tiles on a hex map, then
trace routes through the network you built.

BOARD MODEL:
• The map is a grid of flat-top hexes addressed as "col,row"
• Each hex has six edges, numbered 0-5 clockwise starting at north
• Tiles carry paths: pieces of track joining two parts of the hex
  (edges, cities, towns, junctions or off-map exits)
• Paths connect across a hex boundary when their track ends meet at the
  shared edge with compatible gauge and lane alignment

TILE LAYS AND UPGRADES:
• Laying on an empty hex always succeeds (coordinates and tile permitting)
• Laying on an occupied hex is an UPGRADE: it succeeds only when every
  path on the existing tile survives on the replacement tile. Track
  already built is never destroyed.
• Rotation is given in edge steps (0-5), clockwise

GAUGE RULES:
• broad track connects to broad or dual
• narrow track connects to narrow or dual
• dual connects to everything

TRACING TOOLS:
• trace_paths: every path connected to an origin, in board order
• trace_chains: route segments from the origin; each segment runs
  between track ends that stop a train (cities, towns, map exits)
• select_route: give a list of claimed paths; the server confirms the
  subset connected to the first claim, walking only over claimed paths

🤖 AI AGENTS - STRATEGY NOTES:

1. **Know the catalog before laying**: list_configs and game_state show
   which tiles exist. Plan upgrades so the subsumption rule holds -
   replacement tiles must preserve every existing path.

2. **Use trace_paths after every lay** to verify the connection you
   intended actually exists. Gauge mismatches and lane misalignment fail
   silently; the trace shows the truth.

3. **Chains are route segments, not full routes**: a chain stops at the
   first city, town or map exit. String chains together for full routes.

4. **Failed lays are recorded**: lay_history shows failures with their
   hex, tile and rotation, which helps debug why an upgrade was refused.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent board state and configuration
- Use session-specific tools for multi-game management

Good luck building your network! 🚂🛤️`

	return mcp.NewToolResultText(instructions), nil
}

// pathRefFromArgs builds the origin path from hex/index tool arguments
func pathRefFromArgs(args map[string]interface{}) (engine.PathRef, error) {
	hex, _ := args["hex"].(string)
	if hex == "" {
		return engine.PathRef{}, fmt.Errorf("hex is required")
	}
	index, ok := args["index"].(float64)
	if !ok {
		return engine.PathRef{}, fmt.Errorf("index is required")
	}
	return engine.PathRef{Hex: hex, Index: int(index)}, nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	occupied := 0
	for _, h := range state.Hexes {
		if h.Tile != "" {
			occupied++
		}
	}

	result.WriteString(fmt.Sprintf("Config: %s | Hexes: %d (%d tiled) | Lays: %d\n\n",
		state.ConfigName, len(state.Hexes), occupied, state.TotalLays))

	result.WriteString("Board:\n")
	for _, h := range state.Hexes {
		if h.Tile == "" {
			result.WriteString(fmt.Sprintf("  %s: (empty)\n", h.Coord.ID()))
			continue
		}
		result.WriteString(fmt.Sprintf("  %s: tile %s rot %d (%d paths)\n",
			h.Coord.ID(), h.Tile, h.Rotation, h.Paths))
	}

	return result.String()
}

func formatLayResult(result *service.LayResult) string {
	var b strings.Builder
	if result.Success {
		if result.Upgrade {
			b.WriteString("✓ Tile upgraded\n")
		} else {
			b.WriteString("✓ Tile laid\n")
		}
	} else {
		b.WriteString("✗ Lay rejected\n")
	}

	b.WriteString(fmt.Sprintf("Hex: %s | Tile: %s | Rotation: %d\n",
		result.Hex, result.Tile, result.Rotation))

	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatTraceResult(result *service.TraceResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Trace from %s:%d — %d connected paths\n\n",
		result.From.Hex, result.From.Index, result.Count))
	for i, p := range result.Paths {
		b.WriteString(fmt.Sprintf("%d. %s path %d\n", i+1, p.Hex, p.Index))
	}
	return b.String()
}

func formatChainsResult(result *service.ChainsResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Chains from %s:%d — %d segments\n\n",
		result.From.Hex, result.From.Index, result.Count))
	for i, chain := range result.Chains {
		parts := make([]string, len(chain))
		for j, p := range chain {
			parts[j] = fmt.Sprintf("%s:%d", p.Hex, p.Index)
		}
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.Join(parts, " → ")))
	}
	return b.String()
}

func formatRouteResult(result *service.RouteResult) string {
	var b strings.Builder
	status := "incomplete"
	if result.Complete {
		status = "complete"
	}
	b.WriteString(fmt.Sprintf("Route %s: %d/%d claimed paths confirmed\n\n",
		status, len(result.Confirmed), len(result.Claimed)))

	if len(result.Confirmed) > 0 {
		b.WriteString("Confirmed:\n")
		for _, p := range result.Confirmed {
			b.WriteString(fmt.Sprintf("  ✓ %s:%d\n", p.Hex, p.Index))
		}
	}
	if len(result.Rejected) > 0 {
		b.WriteString("Rejected (not connected to the first claim):\n")
		for _, p := range result.Rejected {
			b.WriteString(fmt.Sprintf("  ✗ %s:%d\n", p.Hex, p.Index))
		}
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Lay History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalLays)

	for i, lay := range history.Lays {
		num := (history.Page-1)*history.PageSize + i + 1
		status := "✓"
		if !lay.Success {
			status = "✗"
		}
		kind := "lay"
		if lay.Upgrade {
			kind = "upgrade"
		}
		result += fmt.Sprintf("%d. %s tile %s rot %d (%s) %s\n",
			num, lay.Hex, lay.Tile, lay.Rotation, kind, status)
	}

	return result
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	lays := state.CurrentLays
	total := state.CurrentLaysCount
	header := fmt.Sprintf("Current Lay Segment — Lays: %d\n\n", total)
	if len(lays) == 0 {
		return header + "(no lays in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, lay := range lays {
		status := "✓"
		if !lay.Success {
			status = "✗"
		}
		b.WriteString(fmt.Sprintf("%d. %s tile %s rot %d %s\n",
			i+1, lay.Hex, lay.Tile, lay.Rotation, status))
	}
	return b.String()
}
