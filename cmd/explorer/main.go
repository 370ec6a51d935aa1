// Command explorer plays a session through the REST API with a right-hand
// wall follower. It creates (or resumes) a session, resets it and walks
// until every marker is collected, the walk loops or the step budget runs
// out. The session ID is saved to .session so the next run resumes it.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/service"
)

const sessionFile = ".session"

// Summary describes one exploration run.
type Summary struct {
	Steps     int
	Collected int
	Remaining int
	Reason    string
	EndPose   engine.Pose
}

type exploreOptions struct {
	MaxSteps int
	Delay    time.Duration
	Verbose  bool
}

// explore walks the session from state until the follower stops or the step
// budget is spent.
func explore(ctx context.Context, client *Client, follower *WallFollower, state *service.StateView, opts exploreOptions) (Summary, error) {
	summary := Summary{EndPose: state.Pose}
	startMarkers := state.TotalMarkers

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if summary.Steps >= opts.MaxSteps {
			summary.Reason = "step budget exhausted"
			break
		}

		actions, reason := follower.Next(state)
		if reason != "" {
			summary.Reason = reason
			break
		}

		if len(actions) == 1 {
			result, err := client.Act(ctx, actions[0])
			if err != nil {
				return summary, err
			}
			summary.Steps++
			state = result.State
		} else {
			result, err := client.RunProgram(ctx, actions, true)
			if err != nil {
				return summary, err
			}
			summary.Steps += result.Executed
			state = result.State
		}

		if opts.Verbose {
			log.Printf("step=%d pose=(%d,%d,%s) markers left=%d",
				summary.Steps, state.Pose.Position.Row, state.Pose.Position.Col, state.Heading, state.TotalMarkers)
		}
		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
	}

	summary.Remaining = state.TotalMarkers
	summary.Collected = startMarkers - state.TotalMarkers
	summary.EndPose = state.Pose
	return summary, nil
}

// openSession resumes the saved or requested session, or creates a new one.
func openSession(ctx context.Context, client *Client, resumeID, configID string, seed *int64) error {
	if resumeID == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			resumeID = string(bytes.TrimSpace(data))
		}
	}

	if resumeID != "" {
		log.Printf("Resuming session: %s", resumeID)
		_, err := client.Resume(ctx, resumeID)
		if err == nil {
			return nil
		}
		log.Printf("Failed to resume session (may be expired): %v", err)
	}

	info, err := client.CreateSession(ctx, configID, seed, "")
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	log.Printf("Session created: %s (config: %s, seed: %d)", info.ID, info.ConfigID, info.Seed)

	if err := os.WriteFile(sessionFile, []byte(info.ID), 0644); err != nil {
		log.Printf("Warning: Failed to save session ID: %v", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "explorer",
		Usage: "collect markers with a right-hand wall follower",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Server URL"},
			&cli.StringFlag{Name: "config", Usage: "World preset (server default when empty)"},
			&cli.Int64Flag{Name: "seed", Usage: "World seed (random when unset)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume an existing session by ID"},
			&cli.IntFlag{Name: "max-steps", Value: 2000, Usage: "Maximum actions per run"},
			&cli.IntFlag{Name: "delay", Usage: "Delay between steps in milliseconds"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log every step"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log.Printf("Connecting to server at %s", cmd.String("url"))
			client := NewClient(cmd.String("url"))

			var seed *int64
			if cmd.IsSet("seed") {
				s := cmd.Int64("seed")
				seed = &s
			}
			if err := openSession(ctx, client, cmd.String("continue"), cmd.String("config"), seed); err != nil {
				return err
			}

			state, err := client.Reset(ctx)
			if err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
			log.Printf("World %dx%d, hero at (%d,%d) facing %s, %d markers",
				state.Height, state.Width, state.Pose.Position.Row, state.Pose.Position.Col, state.Heading, state.TotalMarkers)

			summary, err := explore(ctx, client, NewWallFollower(), state, exploreOptions{
				MaxSteps: int(cmd.Int("max-steps")),
				Delay:    time.Duration(cmd.Int("delay")) * time.Millisecond,
				Verbose:  cmd.Bool("verbose"),
			})
			if err != nil {
				return err
			}

			log.Printf("Stopped: %s after %d steps, collected %d, %d left",
				summary.Reason, summary.Steps, summary.Collected, summary.Remaining)
			log.Printf("Session: %s", client.SessionID())
			if summary.Remaining > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
