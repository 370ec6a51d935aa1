package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateWorldConfig validates a world preset for correctness
func ValidateWorldConfig(config *WorldConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if strings.ContainsAny(config.Name, `/\`) {
		return fmt.Errorf("config validation: name %q must not contain path separators", config.Name)
	}

	if config.Height < MinSize || config.Height > MaxSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinSize, MaxSize, config.Height)
	}
	if config.Width < MinSize || config.Width > MaxSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinSize, MaxSize, config.Width)
	}

	if !(config.WallRatio >= 0 && config.WallRatio <= 1) {
		return fmt.Errorf("config validation: wall_ratio must be between 0 and 1, got %v", config.WallRatio)
	}
	if !(config.MarkerRatio >= 0 && config.MarkerRatio <= 1) {
		return fmt.Errorf("config validation: marker_ratio must be between 0 and 1, got %v", config.MarkerRatio)
	}
	if config.MaxMarkersInCell < 0 || config.MaxMarkersInCell > MaxMarkers {
		return fmt.Errorf("config validation: max_markers_in_cell must be between 0 and %d, got %d", MaxMarkers, config.MaxMarkersInCell)
	}

	return nil
}

// RandomOptions converts the preset into generation options.
func (c *WorldConfig) RandomOptions() RandomOptions {
	return RandomOptions{
		Height:           c.Height,
		Width:            c.Width,
		WallRatio:        c.WallRatio,
		MarkerRatio:      c.MarkerRatio,
		MaxMarkersInCell: c.MaxMarkersInCell,
	}
}

// NewGridFromConfig generates a world from the preset. A preset with a fixed
// seed ignores seed.
func NewGridFromConfig(config *WorldConfig, seed int64) (*Grid, error) {
	if err := ValidateWorldConfig(config); err != nil {
		return nil, err
	}
	if config.Seed != nil {
		seed = *config.Seed
	}
	return RandomGridFromSeed(config.RandomOptions(), seed)
}

// LoadWorldConfig loads a world preset from a JSON file
func LoadWorldConfig(filename string) (*WorldConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config WorldConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", filename, err)
	}
	if config.Name == "" {
		config.Name = strings.TrimSuffix(filepath.Base(filename), ".json")
	}

	if err := ValidateWorldConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filename, err)
	}

	return &config, nil
}

// DefaultWorldConfig returns the built-in preset used when no preset files
// are available.
func DefaultWorldConfig() *WorldConfig {
	opts := DefaultRandomOptions()
	return &WorldConfig{
		Name:             "default",
		Description:      "8x8 world with sparse walls and markers",
		Height:           opts.Height,
		Width:            opts.Width,
		WallRatio:        opts.WallRatio,
		MarkerRatio:      opts.MarkerRatio,
		MaxMarkersInCell: opts.MaxMarkersInCell,
	}
}
