package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hexrail/trackgame/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.MapConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// LayTile places or upgrades a tile for a session. Rejections are
// reported in the result rather than as an error so the caller sees the
// diagnostics and the updated state together.
func (s *gameServiceImpl) LayTile(ctx context.Context, sessionID, hex, tileID string, rotation int) (*LayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	layErr := sess.Engine.LayTile(hex, tileID, rotation)
	state := sess.Engine.GetState()

	result := &LayResult{
		Success:   layErr == nil,
		GameState: state,
		Hex:       hex,
		Tile:      tileID,
		Rotation:  rotation,
	}
	if layErr != nil {
		result.Message = layErr.Error()
	} else {
		if last := sess.Engine.GetLastLay(); last != nil {
			result.Upgrade = last.Upgrade
		}
		if result.Upgrade {
			result.Message = fmt.Sprintf("Upgraded %s with tile %s", hex, tileID)
		} else {
			result.Message = fmt.Sprintf("Laid tile %s on %s", tileID, hex)
		}
	}

	// Unknown hexes and tiles are caller mistakes, not game outcomes
	if errors.Is(layErr, engine.ErrUnknownHex) || errors.Is(layErr, engine.ErrUnknownTile) {
		return nil, layErr
	}

	// Auto-save session after lay
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after lay: %v\n", sessionID, err)
	}

	return result, nil
}

// TracePaths walks the track network from a path and returns everything
// connected to it.
func (s *gameServiceImpl) TracePaths(ctx context.Context, sessionID string, from engine.PathRef) (*TraceResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	paths, err := sess.Engine.TracePaths(from)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		paths = []engine.PathRef{}
	}

	return &TraceResult{
		RunID: uuid.NewString(),
		From:  from,
		Paths: paths,
		Count: len(paths),
	}, nil
}

// TraceChains enumerates the route segments anchored at a path.
func (s *gameServiceImpl) TraceChains(ctx context.Context, sessionID string, from engine.PathRef) (*ChainsResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	chains, err := sess.Engine.TraceChains(from)
	if err != nil {
		return nil, err
	}
	if chains == nil {
		chains = [][]engine.PathRef{}
	}

	return &ChainsResult{
		RunID:  uuid.NewString(),
		From:   from,
		Chains: chains,
		Count:  len(chains),
	}, nil
}

// SelectRoute confirms which claimed paths are connected to the first
// one.
func (s *gameServiceImpl) SelectRoute(ctx context.Context, sessionID string, claimed []engine.PathRef) (*RouteResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	confirmed, err := sess.Engine.SelectRoute(claimed)
	if err != nil {
		return nil, err
	}

	inConfirmed := make(map[engine.PathRef]bool, len(confirmed))
	for _, ref := range confirmed {
		inConfirmed[ref] = true
	}
	var rejected []engine.PathRef
	for _, ref := range claimed {
		if !inConfirmed[ref] {
			rejected = append(rejected, ref)
		}
	}

	return &RouteResult{
		RunID:     uuid.NewString(),
		Claimed:   claimed,
		Confirmed: confirmed,
		Rejected:  rejected,
		Complete:  len(rejected) == 0,
	}, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetLayHistory returns paginated lay history
func (s *gameServiceImpl) GetLayHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetLayHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var lays []engine.LayHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			lays = append(lays, history[i])
		}
	} else {
		if start < total {
			lays = history[start:end]
		}
	}
	if lays == nil {
		lays = []engine.LayHistoryEntry{}
	}

	return &HistoryResponse{
		Lays:        lays,
		TotalLays:   total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available map configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific map configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MapConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a map configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MapConfig) error {
	return s.configs.SaveConfig(configName, config)
}
