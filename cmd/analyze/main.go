// Command analyze prints quick, human-readable heuristics about map
// configuration files in the project's configs directory. It summarizes
// the tile catalog (colors, gauges, path shapes) and lists which tiles
// legally upgrade which, checked against the real subsumption rule at
// every rotation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hexrail/trackgame/game/engine"
	"github.com/hexrail/trackgame/game/tileset"
	"github.com/hexrail/trackgame/game/track"
)

// CatalogSummary aggregates per-catalog tile statistics.
type CatalogSummary struct {
	Tiles      int
	ByColor    map[string]int
	ByGauge    map[track.Gauge]int
	NodeTiles  int
	TotalPaths int
}

// UpgradePair records one legal upgrade: laying New over Old succeeds at
// the listed rotations.
type UpgradePair struct {
	Old       string
	New       string
	Rotations []int
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "inspect map configurations and their tile catalogs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "configs",
				Value: "configs",
				Usage: "directory holding map configuration files",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "catalog",
				Usage:  "summarize each config's tile catalog",
				Action: runCatalog,
			},
			{
				Name:   "upgrades",
				Usage:  "list legal upgrade pairs in each catalog",
				Action: runUpgrades,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := runCatalog(ctx, cmd); err != nil {
				return err
			}
			return runUpgrades(ctx, cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runCatalog(ctx context.Context, cmd *cli.Command) error {
	return forEachConfig(cmd.String("configs"), func(file string, config *engine.MapConfig) {
		fmt.Printf("\n=== Catalog %s ===\n", file)

		summary, err := summarizeCatalog(config.Tiles)
		if err != nil {
			fmt.Printf("Error building catalog: %v\n", err)
			return
		}

		fmt.Printf("Name: %s\n", config.Name)
		fmt.Printf("Tiles: %d (%d with cities or towns)\n", summary.Tiles, summary.NodeTiles)
		fmt.Printf("Paths: %d\n", summary.TotalPaths)

		for _, color := range sortedKeys(summary.ByColor) {
			fmt.Printf("  %s: %d tiles\n", color, summary.ByColor[color])
		}
		for _, gauge := range []track.Gauge{track.Broad, track.Narrow, track.Dual} {
			if n := summary.ByGauge[gauge]; n > 0 {
				fmt.Printf("  %s gauge: %d paths\n", gauge, n)
			}
		}
	})
}

func runUpgrades(ctx context.Context, cmd *cli.Command) error {
	return forEachConfig(cmd.String("configs"), func(file string, config *engine.MapConfig) {
		fmt.Printf("\n=== Upgrades %s ===\n", file)

		pairs, err := upgradePairs(config.Tiles)
		if err != nil {
			fmt.Printf("Error building catalog: %v\n", err)
			return
		}

		if len(pairs) == 0 {
			fmt.Println("No legal upgrade pairs")
			return
		}
		for _, pair := range pairs {
			rots := make([]string, len(pair.Rotations))
			for i, r := range pair.Rotations {
				rots[i] = fmt.Sprintf("%d", r)
			}
			fmt.Printf("  %s → %s (rotations %s)\n", pair.Old, pair.New, strings.Join(rots, ","))
		}
	})
}

// forEachConfig parses every *.json file in dir and hands it to fn.
// Unreadable files are reported and skipped.
func forEachConfig(dir string, fn func(file string, config *engine.MapConfig)) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no configuration files in %s", dir)
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", path, err)
			continue
		}

		var config engine.MapConfig
		if err := json.Unmarshal(data, &config); err != nil {
			fmt.Printf("Error parsing %s: %v\n", path, err)
			continue
		}

		fn(filepath.Base(path), &config)
	}
	return nil
}

// summarizeCatalog builds the catalog and tallies its tiles.
func summarizeCatalog(defs []tileset.TileDef) (*CatalogSummary, error) {
	catalog, err := tileset.BuildCatalog(defs)
	if err != nil {
		return nil, err
	}

	summary := &CatalogSummary{
		Tiles:   len(catalog),
		ByColor: make(map[string]int),
		ByGauge: make(map[track.Gauge]int),
	}

	for _, tile := range catalog {
		summary.ByColor[tile.Color]++

		hasNode := false
		for _, p := range tile.Paths {
			summary.TotalPaths++
			summary.ByGauge[p.Track]++
			if p.HasNode() {
				hasNode = true
			}
		}
		if hasNode {
			summary.NodeTiles++
		}
	}
	return summary, nil
}

// upgradePairs checks every ordered tile pair at every rotation of the
// replacement and reports which lays would be accepted over an
// unrotated base tile. Pairs are sorted by old then new tile ID.
func upgradePairs(defs []tileset.TileDef) ([]UpgradePair, error) {
	catalog, err := tileset.BuildCatalog(defs)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var pairs []UpgradePair
	for _, oldID := range ids {
		for _, newID := range ids {
			if oldID == newID {
				continue
			}

			var rotations []int
			for r := 0; r < 6; r++ {
				rotated, err := catalog[newID].Rotate(r)
				if err != nil {
					return nil, err
				}
				if catalog[oldID].Upgrades(rotated) {
					rotations = append(rotations, r)
				}
			}
			if len(rotations) > 0 {
				pairs = append(pairs, UpgradePair{Old: oldID, New: newID, Rotations: rotations})
			}
		}
	}
	return pairs, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
