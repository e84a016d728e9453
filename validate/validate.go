// Command validate provides a small CLI that validates map configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Tile catalog consistency (part references, path endpoints, gauges)
//   - Hex coordinates, duplicate detection and rotation ranges
//   - That every pre-printed tile exists in the catalog and places legally
//   - Connectivity: the track networks formed by the pre-printed tiles,
//     found by walking the actual board
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexrail/trackgame/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single map configuration file.
// Structural checks run first; if they pass, the board is actually built
// and the pre-printed track is walked.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.MapConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateMapConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Building the engine places every pre-printed tile, which catches
	// tiles whose paths cannot bind to the board.
	eng, err := engine.NewEngine(&config)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Board construction failed: %v", err))
		return result
	}

	prePrinted := 0
	for _, h := range config.Hexes {
		if h.Tile != "" {
			prePrinted++
		}
	}

	networks := traceNetworks(eng)

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Hexes: %d", len(config.Hexes)))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Tile catalog: %d tiles", len(config.Tiles)))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Pre-printed tiles: %d", prePrinted))
	if len(networks) > 0 {
		largest := 0
		for _, n := range networks {
			if n > largest {
				largest = n
			}
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: %d track networks, largest spans %d paths", len(networks), largest))
	} else {
		result.Errors = append(result.Errors, "✓ Connectivity: no pre-printed track")
	}

	return result
}

// traceNetworks walks the pre-printed track and returns the size of each
// connected network, in discovery order.
func traceNetworks(eng *engine.GameEngine) []int {
	state := eng.GetState()

	visited := make(map[engine.PathRef]bool)
	var sizes []int

	for _, h := range state.Hexes {
		if h.Tile == "" {
			continue
		}
		for i := 0; i < h.Paths; i++ {
			ref := engine.PathRef{Hex: string(h.Coord.ID()), Index: i}
			if visited[ref] {
				continue
			}

			connected, err := eng.TracePaths(ref)
			if err != nil {
				continue
			}
			for _, c := range connected {
				visited[c] = true
			}
			sizes = append(sizes, len(connected))
		}
	}

	return sizes
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
