// Package config provides map configuration management for the hex rail
// track game.
//
// The config package handles:
//   - Loading map configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Map configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - The tile catalog: every tile's parts, paths, gauges and lanes
//   - The playable hexes, some pre-printed with a starting tile
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	mapConfig, err := manager.LoadConfig("classic")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Buildable tile catalog with unique tile IDs
//   - Unique hex coordinates and rotations in range
//   - Pre-printed tiles present in the catalog
package config
