// Command validate checks world presets and saved sessions on disk.
//
// For every preset (*.json in the config directory) it checks:
//   - JSON structure, rejecting unknown fields
//   - Field ranges (engine.ValidateWorldConfig)
//   - That sample worlds can be generated and satisfy the world invariants
//
// For every session file (*.json in the sessions directory) it checks:
//   - Both stored worlds decode and satisfy the world invariants
//   - Initial and current worlds have the same shape
//   - The action trace is numbered 1..n and ends at the current pose
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/session"
)

// sampleSeeds are the seeds used to generate preview worlds for a preset
var sampleSeeds = []int64{1, 2, 3, 4, 5}

// ValidationResult captures the outcome of validating a single file.
// Info is only filled for valid files.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Info   []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single preset file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.WorldConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateWorldConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	if name := strings.TrimSuffix(result.File, ".json"); name != config.Name {
		result.fail("Name %q does not match file name %q", config.Name, name)
	}

	seeds := sampleSeeds
	if config.Seed != nil {
		seeds = []int64{*config.Seed}
	}

	minReach, maxReach := 1.0, 0.0
	for _, seed := range seeds {
		grid, err := engine.NewGridFromConfig(&config, seed)
		if err != nil {
			result.fail("Seed %d: generation failed: %v", seed, err)
			continue
		}
		if err := engine.ValidateTensor(grid.Tensor()); err != nil {
			result.fail("Seed %d: generated world is invalid: %v", seed, err)
			continue
		}

		reach := engine.ReachableShare(grid)
		minReach = min(minReach, reach)
		maxReach = max(maxReach, reach)
	}

	if result.Valid {
		result.Info = append(result.Info,
			fmt.Sprintf("✓ Name: %s", config.Name),
			fmt.Sprintf("✓ Grid: %dx%d", config.Height, config.Width),
			fmt.Sprintf("✓ Walls: %.0f%%, markers: %.0f%%", config.WallRatio*100, config.MarkerRatio*100),
			fmt.Sprintf("✓ Reachable open cells over %d seeds: %.0f%%-%.0f%%", len(seeds), minReach*100, maxReach*100),
		)
		if config.Seed != nil {
			result.Info = append(result.Info, fmt.Sprintf("✓ Fixed seed: %d", *config.Seed))
		}
	}

	return result
}

// validateSession loads and validates a single saved session file
func validateSession(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var saved session.PersistedSessionData
	if err := json.Unmarshal(data, &saved); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if saved.ID == "" {
		result.fail("Missing session id")
	} else if !strings.EqualFold(saved.ID+".json", result.File) {
		result.fail("Session id %q does not match file name", saved.ID)
	}

	initial, err := decodeWorld(saved.Initial)
	if err != nil {
		result.fail("Initial world: %v", err)
	}
	current, err := decodeWorld(saved.Current)
	if err != nil {
		result.fail("Current world: %v", err)
	}
	if initial == nil || current == nil {
		return result
	}

	if initial.Height() != current.Height() || initial.Width() != current.Width() {
		result.fail("Initial world is %dx%d but current world is %dx%d",
			initial.Height(), initial.Width(), current.Height(), current.Width())
	}

	for i, rec := range saved.History {
		if rec.Step != i+1 {
			result.fail("History entry %d has step %d", i+1, rec.Step)
			break
		}
	}
	if n := len(saved.History); n > 0 && saved.History[n-1].To != current.Pose() {
		result.fail("Last history entry ends at %+v but the hero is at %+v", saved.History[n-1].To, current.Pose())
	}

	if result.Valid {
		result.Info = append(result.Info,
			fmt.Sprintf("✓ Session: %s (config: %s, seed: %d)", saved.ID, saved.ConfigID, saved.Seed),
			fmt.Sprintf("✓ Grid: %dx%d", current.Height(), current.Width()),
			fmt.Sprintf("✓ Steps: %d", len(saved.History)),
			fmt.Sprintf("✓ Markers: %d at start, %d now", engine.CountMarkers(initial), engine.CountMarkers(current)),
		)
	}

	return result
}

func decodeWorld(text string) (*engine.Grid, error) {
	tensor, err := engine.DecodeTensor(text)
	if err != nil {
		return nil, err
	}
	return engine.FromTensor(tensor)
}

// validateDir runs check on every *.json file in dir and prints a report.
// A missing directory validates nothing.
func validateDir(dir string, check func(string) ValidationResult) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding files in %s: %w", dir, err)
	}

	allValid := true
	for _, file := range files {
		result := check(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Info {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}
	return allValid, nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "validate world presets and saved sessions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "../configs",
				Usage:   "Directory containing world presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "../sessions",
				Usage:   "Directory containing saved sessions (skipped when empty)",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configsValid, err := validateDir(cmd.String("config-dir"), validateConfig)
			if err != nil {
				return err
			}

			sessionsValid := true
			if dir := cmd.String("sessions-dir"); dir != "" {
				if sessionsValid, err = validateDir(dir, validateSession); err != nil {
					return err
				}
			}

			fmt.Printf("\n%s\n", strings.Repeat("=", 40))
			if !configsValid || !sessionsValid {
				return cli.Exit("❌ Some files have errors", 1)
			}
			fmt.Println("✅ All files are valid!")
			return nil
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
