package engine

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validWorldConfig() *WorldConfig {
	return &WorldConfig{
		Name:        "test",
		Description: "Configuration for engine tests",
		Height:      6,
		Width:       8,
		WallRatio:   0.2,
		MarkerRatio: 0.1,
	}
}

func TestValidateWorldConfig(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*WorldConfig)
		expectError string
	}{
		{"valid", func(c *WorldConfig) {}, ""},
		{"missing name", func(c *WorldConfig) { c.Name = "" }, "name is required"},
		{"path in name", func(c *WorldConfig) { c.Name = "../etc" }, "path separators"},
		{"height too small", func(c *WorldConfig) { c.Height = 1 }, "height must be between"},
		{"height too large", func(c *WorldConfig) { c.Height = 17 }, "height must be between"},
		{"width too small", func(c *WorldConfig) { c.Width = 0 }, "width must be between"},
		{"negative wall ratio", func(c *WorldConfig) { c.WallRatio = -1 }, "wall_ratio"},
		{"marker ratio too large", func(c *WorldConfig) { c.MarkerRatio = 2 }, "marker_ratio"},
		{"NaN wall ratio", func(c *WorldConfig) { c.WallRatio = math.NaN() }, "wall_ratio"},
		{"max markers too large", func(c *WorldConfig) { c.MaxMarkersInCell = 10 }, "max_markers_in_cell"},
		{"description optional", func(c *WorldConfig) { c.Description = "" }, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validWorldConfig()
			test.modify(cfg)
			err := ValidateWorldConfig(cfg)
			if test.expectError == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.expectError) {
				t.Errorf("Expected error containing %q, got %v", test.expectError, err)
			}
		})
	}

	if err := ValidateWorldConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestLoadWorldConfig(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "sparse.json")
	if err := os.WriteFile(valid, []byte(`{"height": 5, "width": 7, "wall_ratio": 0.1, "marker_ratio": 0.2}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadWorldConfig(valid)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Name != "sparse" {
		t.Errorf("Expected name derived from file, got %q", cfg.Name)
	}
	if cfg.Height != 5 || cfg.Width != 7 {
		t.Errorf("Unexpected size %dx%d", cfg.Height, cfg.Width)
	}

	invalid := filepath.Join(dir, "huge.json")
	if err := os.WriteFile(invalid, []byte(`{"name": "huge", "height": 40, "width": 7}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadWorldConfig(invalid); err == nil {
		t.Error("Expected validation error for oversized world")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{not json`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadWorldConfig(broken); err == nil {
		t.Error("Expected parse error")
	}

	if _, err := LoadWorldConfig(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestNewGridFromConfig(t *testing.T) {
	cfg := validWorldConfig()

	a, err := NewGridFromConfig(cfg, 11)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	if a.Height() != cfg.Height || a.Width() != cfg.Width {
		t.Errorf("Expected %dx%d, got %dx%d", cfg.Height, cfg.Width, a.Height(), a.Width())
	}

	b, _ := NewGridFromConfig(cfg, 11)
	if !a.Equal(b) {
		t.Error("Expected equal grids for equal seeds")
	}

	fixed := int64(99)
	cfg.Seed = &fixed
	c, _ := NewGridFromConfig(cfg, 1)
	d, _ := NewGridFromConfig(cfg, 2)
	if !c.Equal(d) {
		t.Error("Expected preset seed to override the session seed")
	}

	cfg.Height = 0
	if _, err := NewGridFromConfig(cfg, 1); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestDefaultWorldConfig(t *testing.T) {
	cfg := DefaultWorldConfig()
	if cfg.Name != "default" {
		t.Errorf("Expected default name, got %q", cfg.Name)
	}
	if err := ValidateWorldConfig(cfg); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}
