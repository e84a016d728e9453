package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/hexrail/trackgame/game/board"
	"github.com/hexrail/trackgame/game/tileset"
)

// testConfig builds a two-hex map: (0,0) and its southern neighbor (0,1),
// with a city tile pre-printed on (0,0).
func testConfig() *MapConfig {
	return &MapConfig{
		Name:        "test-map",
		Description: "Two hex test map",
		Tiles: []tileset.TileDef{
			{
				ID:    "9",
				Color: "yellow",
				Paths: []tileset.PathDef{{A: "edge:0", B: "edge:3"}},
			},
			{
				ID:    "57",
				Color: "yellow",
				Parts: []tileset.PartDef{{Ref: "city:c"}},
				Paths: []tileset.PathDef{
					{A: "edge:0", B: "city:c"},
					{A: "edge:3", B: "city:c"},
				},
			},
			{
				ID:    "cross",
				Color: "green",
				Paths: []tileset.PathDef{
					{A: "edge:0", B: "edge:3"},
					{A: "edge:1", B: "edge:4"},
				},
			},
		},
		Hexes: []HexSetup{
			{Coord: board.Coord{Col: 0, Row: 0}, Tile: "57"},
			{Coord: board.Coord{Col: 0, Row: 1}},
		},
	}
}

func newTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	eng, err := NewEngine(testConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng
}

func TestNewEnginePlacesInitialTiles(t *testing.T) {
	eng := newTestEngine(t)

	h, ok := eng.GetBoard().HexByID("0,0")
	if !ok || h.Tile == nil {
		t.Fatal("Expected pre-printed tile on 0,0")
	}
	if h.Tile.ID != "57" {
		t.Errorf("Expected tile 57 on 0,0, got %s", h.Tile.ID)
	}

	state := eng.GetState()
	if state.ConfigName != "test-map" {
		t.Errorf("Expected config name test-map, got %s", state.ConfigName)
	}
	if len(state.Hexes) != 2 {
		t.Errorf("Expected 2 hex states, got %d", len(state.Hexes))
	}
}

func TestLayTileOnEmptyHex(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.LayTile("0,1", "9", 0); err != nil {
		t.Fatalf("Failed to lay tile: %v", err)
	}

	h, _ := eng.GetBoard().HexByID("0,1")
	if h.Tile == nil || h.Tile.ID != "9" {
		t.Fatal("Expected tile 9 on 0,1 after lay")
	}

	last := eng.GetLastLay()
	if last == nil {
		t.Fatal("Expected a lay history entry")
	}
	if !last.Success || last.Upgrade {
		t.Errorf("Expected successful non-upgrade lay, got success=%v upgrade=%v",
			last.Success, last.Upgrade)
	}
	if last.LayNumber != 1 {
		t.Errorf("Expected lay number 1, got %d", last.LayNumber)
	}
}

func TestLayTileErrors(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.LayTile("9,9", "9", 0); !errors.Is(err, ErrUnknownHex) {
		t.Errorf("Expected ErrUnknownHex, got %v", err)
	}
	if err := eng.LayTile("0,1", "ghost", 0); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("Expected ErrUnknownTile, got %v", err)
	}

	// Rejected lays still land in the history
	if eng.GetState().TotalLays != 2 {
		t.Errorf("Expected 2 recorded attempts, got %d", eng.GetState().TotalLays)
	}
	if last := eng.GetLastLay(); last == nil || last.Success {
		t.Error("Expected last history entry to record a failed lay")
	}
}

func TestLayTileUpgrade(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.LayTile("0,1", "9", 0); err != nil {
		t.Fatalf("Failed to lay tile: %v", err)
	}

	// cross keeps the 0-3 straight, so it is a legal upgrade
	if err := eng.LayTile("0,1", "cross", 0); err != nil {
		t.Fatalf("Failed to upgrade tile: %v", err)
	}
	if last := eng.GetLastLay(); !last.Upgrade {
		t.Error("Expected history entry to be marked as an upgrade")
	}

	// 57 drops the straight entirely
	if err := eng.LayTile("0,1", "57", 0); !errors.Is(err, board.ErrIllegalUpgrade) {
		t.Errorf("Expected ErrIllegalUpgrade, got %v", err)
	}
}

func TestCanLayTile(t *testing.T) {
	eng := newTestEngine(t)

	if !eng.CanLayTile("0,1", "9", 0) {
		t.Error("Expected lay on empty hex to be allowed")
	}
	if eng.CanLayTile("9,9", "9", 0) {
		t.Error("Expected lay on unknown hex to be rejected")
	}
	if eng.CanLayTile("0,1", "ghost", 0) {
		t.Error("Expected lay of unknown tile to be rejected")
	}
	if eng.CanLayTile("0,1", "9", 7) {
		t.Error("Expected out-of-range rotation to be rejected")
	}
	if eng.CanLayTile("0,0", "9", 0) {
		t.Error("Expected lay dropping the city paths to be rejected")
	}

	// CanLayTile never touches the history
	if eng.GetState().TotalLays != 0 {
		t.Errorf("Expected no recorded attempts, got %d", eng.GetState().TotalLays)
	}
}

func TestResetPreservesHistory(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.LayTile("0,1", "9", 0); err != nil {
		t.Fatalf("Failed to lay tile: %v", err)
	}

	state := eng.Reset()

	if h, _ := eng.GetBoard().HexByID("0,1"); h.Tile != nil {
		t.Error("Expected laid tile to be cleared on reset")
	}
	if h, _ := eng.GetBoard().HexByID("0,0"); h.Tile == nil {
		t.Error("Expected pre-printed tile to survive reset")
	}
	if len(state.LayHistory) != 1 || state.TotalLays != 1 {
		t.Errorf("Expected cumulative history to survive reset, got %d entries, %d total",
			len(state.LayHistory), state.TotalLays)
	}
	if len(state.CurrentLays) != 0 || state.CurrentLaysCount != 0 {
		t.Error("Expected current lays to be cleared on reset")
	}
}

func TestTracePathsAcrossHexes(t *testing.T) {
	eng := newTestEngine(t)

	// 57 on 0,1 faces the pre-printed 57 on 0,0 across the 0,0/0,1 boundary
	if err := eng.LayTile("0,1", "57", 0); err != nil {
		t.Fatalf("Failed to lay tile: %v", err)
	}

	// Path 1 of the tile on 0,0 exits edge 3, into path 0 on 0,1
	refs, err := eng.TracePaths(PathRef{Hex: "0,0", Index: 1})
	if err != nil {
		t.Fatalf("Failed to trace paths: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("Expected 2 connected paths, got %d: %v", len(refs), refs)
	}
	if refs[0] != (PathRef{Hex: "0,0", Index: 1}) {
		t.Errorf("Expected trace to start at the origin, got %v", refs[0])
	}
	if refs[1] != (PathRef{Hex: "0,1", Index: 0}) {
		t.Errorf("Expected trace to reach 0,1 path 0, got %v", refs[1])
	}
}

func TestTracePathsErrors(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.TracePaths(PathRef{Hex: "9,9", Index: 0}); !errors.Is(err, ErrUnknownHex) {
		t.Errorf("Expected ErrUnknownHex, got %v", err)
	}
	if _, err := eng.TracePaths(PathRef{Hex: "0,1", Index: 0}); !errors.Is(err, ErrEmptyHex) {
		t.Errorf("Expected ErrEmptyHex, got %v", err)
	}
	if _, err := eng.TracePaths(PathRef{Hex: "0,0", Index: 5}); !errors.Is(err, ErrBadPathRef) {
		t.Errorf("Expected ErrBadPathRef, got %v", err)
	}
}

func TestTraceChainsEndsAtCity(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.LayTile("0,1", "57", 0); err != nil {
		t.Fatalf("Failed to lay tile: %v", err)
	}

	chains, err := eng.TraceChains(PathRef{Hex: "0,0", Index: 1})
	if err != nil {
		t.Fatalf("Failed to trace chains: %v", err)
	}
	if len(chains) != 1 {
		t.Fatalf("Expected 1 chain, got %d: %v", len(chains), chains)
	}
	want := []PathRef{{Hex: "0,0", Index: 1}, {Hex: "0,1", Index: 0}}
	if len(chains[0]) != len(want) {
		t.Fatalf("Expected chain of %d paths, got %d", len(want), len(chains[0]))
	}
	for i, ref := range chains[0] {
		if ref != want[i] {
			t.Errorf("Chain position %d: expected %v, got %v", i, want[i], ref)
		}
	}
}

func TestSelectRouteConfirmsConnected(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.LayTile("0,1", "57", 0); err != nil {
		t.Fatalf("Failed to lay tile: %v", err)
	}

	claimed := []PathRef{
		{Hex: "0,0", Index: 1},
		{Hex: "0,1", Index: 0},
		{Hex: "0,0", Index: 0}, // city blocks the walk before this one
	}
	selected, err := eng.SelectRoute(claimed)
	if err != nil {
		t.Fatalf("Failed to select route: %v", err)
	}
	if len(selected) != 2 {
		t.Fatalf("Expected 2 confirmed paths, got %d: %v", len(selected), selected)
	}
	if selected[0] != claimed[0] || selected[1] != claimed[1] {
		t.Errorf("Expected confirmed paths in claim order, got %v", selected)
	}
}

func TestSelectRouteErrors(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.SelectRoute(nil); !errors.Is(err, ErrEmptyRoute) {
		t.Errorf("Expected ErrEmptyRoute, got %v", err)
	}

	big := make([]PathRef, MaxClaimedSize+1)
	if _, err := eng.SelectRoute(big); !errors.Is(err, ErrRouteTooBig) {
		t.Errorf("Expected ErrRouteTooBig, got %v", err)
	}

	claimed := []PathRef{{Hex: "0,1", Index: 0}}
	if _, err := eng.SelectRoute(claimed); !errors.Is(err, ErrEmptyHex) {
		t.Errorf("Expected ErrEmptyHex for claim on empty hex, got %v", err)
	}
}

func TestSetStateRestoresBoard(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.LayTile("0,1", "9", 2); err != nil {
		t.Fatalf("Failed to lay tile: %v", err)
	}
	saved := eng.GetState()

	restored := newTestEngine(t)
	if err := restored.SetState(saved); err != nil {
		t.Fatalf("Failed to restore state: %v", err)
	}

	h, _ := restored.GetBoard().HexByID("0,1")
	if h.Tile == nil || h.Tile.ID != "9" {
		t.Fatal("Expected restored board to carry the laid tile")
	}
	if h.Rotation != 2 {
		t.Errorf("Expected rotation 2 after restore, got %d", h.Rotation)
	}
	if restored.GetState().TotalLays != 1 {
		t.Errorf("Expected restored history, got %d lays", restored.GetState().TotalLays)
	}

	if err := restored.SetState(nil); err == nil {
		t.Error("Expected nil state to be rejected")
	}
}

func TestSetConfigResetsEverything(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.LayTile("0,1", "9", 0); err != nil {
		t.Fatalf("Failed to lay tile: %v", err)
	}

	next := testConfig()
	next.Name = "second-map"
	if err := eng.SetConfig(next); err != nil {
		t.Fatalf("Failed to set config: %v", err)
	}
	if eng.GetState().ConfigName != "second-map" {
		t.Errorf("Expected state for second-map, got %s", eng.GetState().ConfigName)
	}
	if eng.GetState().TotalLays != 0 {
		t.Error("Expected history to be cleared on config change")
	}

	if err := eng.SetConfig(&MapConfig{}); err == nil {
		t.Error("Expected invalid config to be rejected")
	}
}

func TestValidateMapConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MapConfig)
		want   string
	}{
		{"missing name", func(c *MapConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *MapConfig) { c.Description = "" }, "description is required"},
		{"no hexes", func(c *MapConfig) { c.Hexes = nil }, "hex count"},
		{"duplicate hex", func(c *MapConfig) {
			c.Hexes = append(c.Hexes, HexSetup{Coord: board.Coord{Col: 0, Row: 0}})
		}, "declared twice"},
		{"bad rotation", func(c *MapConfig) { c.Hexes[0].Rotation = 6 }, "rotation"},
		{"unknown tile", func(c *MapConfig) { c.Hexes[0].Tile = "ghost" }, "unknown tile"},
		{"broken tile def", func(c *MapConfig) { c.Tiles[0].Paths = nil }, "no paths"},
	}

	for _, tt := range tests {
		config := testConfig()
		tt.mutate(config)
		err := ValidateMapConfig(config)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}

	if err := ValidateMapConfig(testConfig()); err != nil {
		t.Errorf("Expected valid config to pass, got %v", err)
	}
	if err := ValidateMapConfig(nil); err == nil {
		t.Error("Expected nil config to be rejected")
	}
}
