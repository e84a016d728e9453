package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/hexrail/trackgame/game/engine"
	"github.com/hexrail/trackgame/game/service"
	"github.com/hexrail/trackgame/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	CreateSessionFunc func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	LayTileFunc     func(ctx context.Context, sessionID, hex, tileID string, rotation int) (*service.LayResult, error)
	ResetFunc       func(ctx context.Context, sessionID string) (*engine.GameState, error)
	TracePathsFunc  func(ctx context.Context, sessionID string, from engine.PathRef) (*service.TraceResult, error)
	TraceChainsFunc func(ctx context.Context, sessionID string, from engine.PathRef) (*service.ChainsResult, error)
	SelectRouteFunc func(ctx context.Context, sessionID string, claimed []engine.PathRef) (*service.RouteResult, error)

	GetGameStateFunc  func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetLayHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.MapConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.MapConfig) error
}

func (m *MockGameService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{ID: "test-session", ConfigName: configName, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: "test-config", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) LayTile(ctx context.Context, sessionID, hex, tileID string, rotation int) (*service.LayResult, error) {
	if m.LayTileFunc != nil {
		return m.LayTileFunc(ctx, sessionID, hex, tileID, rotation)
	}
	return &service.LayResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) TracePaths(ctx context.Context, sessionID string, from engine.PathRef) (*service.TraceResult, error) {
	if m.TracePathsFunc != nil {
		return m.TracePathsFunc(ctx, sessionID, from)
	}
	return &service.TraceResult{From: from, Paths: []engine.PathRef{from}, Count: 1}, nil
}

func (m *MockGameService) TraceChains(ctx context.Context, sessionID string, from engine.PathRef) (*service.ChainsResult, error) {
	if m.TraceChainsFunc != nil {
		return m.TraceChainsFunc(ctx, sessionID, from)
	}
	return &service.ChainsResult{From: from, Chains: [][]engine.PathRef{}, Count: 0}, nil
}

func (m *MockGameService) SelectRoute(ctx context.Context, sessionID string, claimed []engine.PathRef) (*service.RouteResult, error) {
	if m.SelectRouteFunc != nil {
		return m.SelectRouteFunc(ctx, sessionID, claimed)
	}
	return &service.RouteResult{Claimed: claimed, Confirmed: claimed, Complete: true}, nil
}

func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) GetLayHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetLayHistoryFunc != nil {
		return m.GetLayHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Lays:       []engine.LayHistoryEntry{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.MapConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return &engine.MapConfig{Name: configName, Description: "Test config"}, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.MapConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(mockService *MockGameService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

func TestCreateSessionEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]string
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session with default config",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return &service.SessionInfo{ID: "ab12", ConfigName: "default", CreatedAt: time.Now()}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "ab12" {
					t.Errorf("Expected session ID ab12, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Create session with specific config",
			requestBody: map[string]string{"config_id": "classic"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					if configName != "classic" {
						t.Errorf("Expected config 'classic', got %s", configName)
					}
					return &service.SessionInfo{ID: "cd34", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions", tt.requestBody)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessionsEndpoint(t *testing.T) {
	mockService := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "aa11", ConfigName: "classic"},
				{ID: "bb22", ConfigName: "classic"},
			}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	parseResponse(t, w, &resp)
	if resp["count"].(float64) != 2 {
		t.Errorf("Expected count 2, got %v", resp["count"])
	}
}

func TestLayTileEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Valid lay",
			requestBody: map[string]interface{}{"hex": "0,1", "tile": "9", "rotation": 2},
			setupMock: func(m *MockGameService) {
				m.LayTileFunc = func(ctx context.Context, sessionID, hex, tileID string, rotation int) (*service.LayResult, error) {
					if hex != "0,1" || tileID != "9" || rotation != 2 {
						t.Errorf("Unexpected lay arguments: %s %s %d", hex, tileID, rotation)
					}
					return &service.LayResult{Success: true, GameState: &engine.GameState{TotalLays: 1}}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.LayResult
				parseResponse(t, w, &resp)
				if !resp.Success {
					t.Error("Expected successful lay")
				}
			},
		},
		{
			name:           "Missing fields",
			requestBody:    map[string]interface{}{"hex": "0,1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Rejected lay reported in result",
			requestBody: map[string]interface{}{"hex": "0,0", "tile": "9"},
			setupMock: func(m *MockGameService) {
				m.LayTileFunc = func(ctx context.Context, sessionID, hex, tileID string, rotation int) (*service.LayResult, error) {
					return &service.LayResult{Success: false, Message: "tile does not preserve existing track", GameState: &engine.GameState{}}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.LayResult
				parseResponse(t, w, &resp)
				if resp.Success {
					t.Error("Expected rejected lay")
				}
			},
		},
		{
			name:        "Unknown tile is a request error",
			requestBody: map[string]interface{}{"hex": "0,1", "tile": "ghost"},
			setupMock: func(m *MockGameService) {
				m.LayTileFunc = func(ctx context.Context, sessionID, hex, tileID string, rotation int) (*service.LayResult, error) {
					return nil, fmt.Errorf("tile not in catalog: ghost")
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/ab12/lay", tt.requestBody)
			req = mux.SetURLVars(req, map[string]string{"id": "ab12"})

			server.handleLayTile(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestTraceEndpoints(t *testing.T) {
	mockService := &MockGameService{
		TracePathsFunc: func(ctx context.Context, sessionID string, from engine.PathRef) (*service.TraceResult, error) {
			if from.Hex != "2,3" || from.Index != 1 {
				t.Errorf("Unexpected origin: %v", from)
			}
			return &service.TraceResult{
				RunID: "run-1",
				From:  from,
				Paths: []engine.PathRef{from, {Hex: "2,4", Index: 0}},
				Count: 2,
			}, nil
		},
		TraceChainsFunc: func(ctx context.Context, sessionID string, from engine.PathRef) (*service.ChainsResult, error) {
			return &service.ChainsResult{
				RunID:  "run-2",
				From:   from,
				Chains: [][]engine.PathRef{{from}},
				Count:  1,
			}, nil
		},
	}

	server := setupTestServer(mockService)
	body := map[string]interface{}{"from": map[string]interface{}{"hex": "2,3", "index": 1}}

	w := httptest.NewRecorder()
	req := makeRequest("POST", "/api/sessions/ab12/trace", body)
	req = mux.SetURLVars(req, map[string]string{"id": "ab12"})
	server.handleTracePaths(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 from trace, got %d", w.Code)
	}
	var trace service.TraceResult
	parseResponse(t, w, &trace)
	if trace.Count != 2 {
		t.Errorf("Expected 2 traced paths, got %d", trace.Count)
	}

	w = httptest.NewRecorder()
	req = makeRequest("POST", "/api/sessions/ab12/chains", body)
	req = mux.SetURLVars(req, map[string]string{"id": "ab12"})
	server.handleTraceChains(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 from chains, got %d", w.Code)
	}
	var chains service.ChainsResult
	parseResponse(t, w, &chains)
	if chains.Count != 1 {
		t.Errorf("Expected 1 chain, got %d", chains.Count)
	}
}

func TestSelectRouteEndpoint(t *testing.T) {
	mockService := &MockGameService{
		SelectRouteFunc: func(ctx context.Context, sessionID string, claimed []engine.PathRef) (*service.RouteResult, error) {
			if len(claimed) != 2 {
				t.Errorf("Expected 2 claimed paths, got %d", len(claimed))
			}
			return &service.RouteResult{
				Claimed:   claimed,
				Confirmed: claimed[:1],
				Rejected:  claimed[1:],
				Complete:  false,
			}, nil
		},
	}

	server := setupTestServer(mockService)
	body := map[string]interface{}{
		"claimed": []map[string]interface{}{
			{"hex": "0,0", "index": 0},
			{"hex": "5,5", "index": 0},
		},
	}

	w := httptest.NewRecorder()
	req := makeRequest("POST", "/api/sessions/ab12/select", body)
	req = mux.SetURLVars(req, map[string]string{"id": "ab12"})
	server.handleSelectRoute(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp service.RouteResult
	parseResponse(t, w, &resp)
	if resp.Complete {
		t.Error("Expected incomplete route")
	}
	if len(resp.Confirmed) != 1 || len(resp.Rejected) != 1 {
		t.Errorf("Expected 1 confirmed and 1 rejected, got %d/%d", len(resp.Confirmed), len(resp.Rejected))
	}
}

func TestResetEndpoint(t *testing.T) {
	mockService := &MockGameService{
		ResetFunc: func(ctx context.Context, sessionID string) (*engine.GameState, error) {
			if sessionID != "ab12" {
				return nil, fmt.Errorf("session not found")
			}
			return &engine.GameState{TotalLays: 3}, nil
		},
	}

	server := setupTestServer(mockService)

	w := httptest.NewRecorder()
	req := makeRequest("POST", "/api/sessions/ab12/reset", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "ab12"})
	server.handleReset(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	parseResponse(t, w, &resp)
	if resp["message"] != "Game reset successfully" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}

	w = httptest.NewRecorder()
	req = makeRequest("POST", "/api/sessions/none/reset", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "none"})
	server.handleReset(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown session, got %d", w.Code)
	}
}

func TestGetHistoryEndpoint(t *testing.T) {
	mockService := &MockGameService{
		GetLayHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			if opts.Page != 2 || opts.Limit != 10 || opts.Order != "asc" {
				t.Errorf("Expected page=2 limit=10 order=asc, got %+v", opts)
			}
			return &service.HistoryResponse{Page: 2, PageSize: 10}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/sessions/ab12/history?page=2&limit=10&order=asc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "ab12"})
	server.handleGetHistory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
}

func TestConfigEndpoints(t *testing.T) {
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{
				{ConfigID: "classic", Name: "Classic"},
			}, nil
		},
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.MapConfig, error) {
			if configName != "classic" {
				t.Errorf("Expected config 'classic' (without .json), got %s", configName)
			}
			return &engine.MapConfig{Name: "Classic"}, nil
		},
	}

	server := setupTestServer(mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/configs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 from list, got %d", w.Code)
	}
	var configs []*service.ConfigInfo
	parseResponse(t, w, &configs)
	if len(configs) != 1 {
		t.Errorf("Expected 1 config, got %d", len(configs))
	}

	// .json extension is stripped before lookup
	w = httptest.NewRecorder()
	req := makeRequest("GET", "/api/configs/classic.json", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "classic.json"})
	server.handleGetConfig(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 from get, got %d", w.Code)
	}
}

func TestCreateConfigEndpoint(t *testing.T) {
	saved := false
	mockService := &MockGameService{
		SaveConfigFunc: func(ctx context.Context, configName string, config *engine.MapConfig) error {
			saved = true
			return nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	body := map[string]interface{}{"name": "custom", "description": "Custom map"}
	server.ServeHTTP(w, makeRequest("POST", "/api/configs", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	if !saved {
		t.Error("Expected config to be saved")
	}

	// Missing name is rejected
	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/configs", map[string]interface{}{"description": "x"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestWebSocketEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name:           "Missing session parameter",
			queryParams:    "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid session",
			queryParams: "?session=invalid",
			setupMock: func(m *MockGameService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("session not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/ws"+tt.queryParams, nil)

			server.handleWebSocket(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
