package service

import (
	"context"
	"time"

	"github.com/hexrail/trackgame/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	LayTile(ctx context.Context, sessionID, hex, tileID string, rotation int) (*LayResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Route Operations
	TracePaths(ctx context.Context, sessionID string, from engine.PathRef) (*TraceResult, error)
	TraceChains(ctx context.Context, sessionID string, from engine.PathRef) (*ChainsResult, error)
	SelectRoute(ctx context.Context, sessionID string, claimed []engine.PathRef) (*RouteResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetLayHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.MapConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.MapConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.MapConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.MapConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles map configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MapConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.MapConfig
	SaveConfig(name string, config *engine.MapConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.MapConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
