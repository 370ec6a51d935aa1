// Command analyze prints quick, human-readable heuristics about the world
// presets in the configs directory. For each preset it generates worlds over
// a range of seeds and summarizes wall and marker density, how much of the
// open interior the hero can reach, and how far the nearest marker is. A
// rendered sample world is printed after each summary.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/herogrid/game/config"
	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/render"
)

// PresetStats aggregates measurements of the worlds generated from a preset.
type PresetStats struct {
	Name   string
	Height int
	Width  int
	Seeds  int

	WallDensity   float64 // obstacles per interior cell
	MarkerDensity float64 // markers per open cell
	Reachable     float64 // reachable share of open cells
	MinReachable  float64

	// StrandedWorlds counts worlds where some marker cannot be reached.
	StrandedWorlds int
	// NearestMarker is the mean walk to the closest marker, over worlds
	// that have a reachable one.
	NearestMarker float64

	Sample *engine.Grid
}

// seedsFor returns the seeds to sample. A preset with a fixed seed always
// generates the same world, so one sample is enough.
func seedsFor(cfg *engine.WorldConfig, n int) []int64 {
	if cfg.Seed != nil {
		return []int64{*cfg.Seed}
	}
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i + 1)
	}
	return seeds
}

func analyzePreset(cfg *engine.WorldConfig, n int) (PresetStats, error) {
	stats := PresetStats{
		Name:         cfg.Name,
		Height:       cfg.Height,
		Width:        cfg.Width,
		MinReachable: 1,
	}

	seeds := seedsFor(cfg, n)
	nearestCount := 0
	for _, seed := range seeds {
		grid, err := engine.NewGridFromConfig(cfg, seed)
		if err != nil {
			return stats, fmt.Errorf("preset %s seed %d: %w", cfg.Name, seed, err)
		}
		if stats.Sample == nil {
			stats.Sample = grid
		}

		interior := float64(grid.Height() * grid.Width())
		open := float64(engine.OpenCells(grid))
		reachable := engine.ReachableCells(grid)

		stats.WallDensity += float64(engine.CountObstacles(grid)) / interior
		if open > 0 {
			stats.MarkerDensity += float64(engine.CountMarkers(grid)) / open
		}

		share := engine.ReachableShare(grid)
		stats.Reachable += share
		stats.MinReachable = min(stats.MinReachable, share)

		reachableMarkers := 0
		for _, p := range reachable {
			reachableMarkers += grid.MarkerCount(p)
		}
		if reachableMarkers < engine.CountMarkers(grid) {
			stats.StrandedWorlds++
		}

		if _, steps, ok := engine.FindNearestMarker(grid); ok {
			stats.NearestMarker += float64(steps)
			nearestCount++
		}
	}

	stats.Seeds = len(seeds)
	k := float64(len(seeds))
	stats.WallDensity /= k
	stats.MarkerDensity /= k
	stats.Reachable /= k
	if nearestCount > 0 {
		stats.NearestMarker /= float64(nearestCount)
	}
	return stats, nil
}

func printStats(w io.Writer, stats PresetStats, ascii bool) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", stats.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", stats.Height, stats.Width)
	fmt.Fprintf(w, "Seeds: %d\n", stats.Seeds)
	fmt.Fprintf(w, "Wall density: %.1f%%\n", stats.WallDensity*100)
	fmt.Fprintf(w, "Marker density: %.1f%%\n", stats.MarkerDensity*100)
	fmt.Fprintf(w, "Reachable open cells: %.1f%% (worst %.1f%%)\n", stats.Reachable*100, stats.MinReachable*100)
	fmt.Fprintf(w, "Nearest marker: %.1f steps on average\n", stats.NearestMarker)

	if stats.StrandedWorlds > 0 {
		fmt.Fprintf(w, "⚠️  %d/%d worlds have markers the hero cannot reach\n", stats.StrandedWorlds, stats.Seeds)
	} else {
		fmt.Fprintln(w, "✓ Every marker is reachable")
	}

	if stats.Sample != nil {
		fmt.Fprintln(w, "\nSample world:")
		if ascii {
			fmt.Fprintln(w, render.ASCIIString(stats.Sample))
		} else {
			fmt.Fprintln(w, render.String(stats.Sample))
		}
	}
}

func run(w io.Writer, configDir, only string, seeds int, ascii bool) error {
	if seeds < 1 {
		return fmt.Errorf("seeds must be positive, got %d", seeds)
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		return err
	}
	infos, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	analyzed := 0
	for _, info := range infos {
		if only != "" && info.ConfigID != only {
			continue
		}
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "Error loading %s: %v\n", info.Filename, err)
			continue
		}

		stats, err := analyzePreset(cfg, seeds)
		if err != nil {
			fmt.Fprintf(w, "Error analyzing %s: %v\n", info.Filename, err)
			continue
		}
		printStats(w, stats, ascii)
		analyzed++
	}

	if only != "" && analyzed == 0 {
		return fmt.Errorf("preset %q not found in %s", only, configDir)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "summarize the worlds generated by each preset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing world presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:  "preset",
				Usage: "Only analyze this preset",
			},
			&cli.IntFlag{
				Name:  "seeds",
				Value: 20,
				Usage: "Number of seeds sampled per preset",
			},
			&cli.BoolFlag{
				Name:  "ascii",
				Usage: "Render the sample world with ASCII glyphs",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(os.Stdout, cmd.String("config-dir"), cmd.String("preset"), int(cmd.Int("seeds")), cmd.Bool("ascii"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
