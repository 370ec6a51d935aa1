package service

import (
	"time"

	"github.com/wricardo/mcp-training/herogrid/game/engine"
)

// CreateSessionRequest selects how the world of a new session is built. A
// tensor takes precedence over a preset.
type CreateSessionRequest struct {
	ConfigID string        `json:"config_id,omitempty"`
	Seed     *int64        `json:"seed,omitempty"`
	Tensor   engine.Tensor `json:"tensor,omitempty"`
}

// SessionInfo provides information about a session
type SessionInfo struct {
	ID             string              `json:"id"`
	EpisodeID      string              `json:"episode_id"`
	ConfigID       string              `json:"config_id"`
	Seed           int64               `json:"seed"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	State          *StateView          `json:"state"`
	WorldConfig    *engine.WorldConfig `json:"world_config,omitempty"`
}

// StateView is a snapshot of a world for clients
type StateView struct {
	Height       int                       `json:"height"`
	Width        int                       `json:"width"`
	Pose         engine.Pose               `json:"pose"`
	Heading      string                    `json:"heading"`
	MarkersHere  int                       `json:"markers_here"`
	TotalMarkers int                       `json:"total_markers"`
	Steps        int                       `json:"steps"`
	Rows         []string                  `json:"rows"`
	Sensors      map[engine.Condition]bool `json:"sensors"`
	Tensor       engine.Tensor             `json:"tensor,omitempty"`
}

// ActionResult contains the result of a single action
type ActionResult struct {
	Action        engine.Action       `json:"action"`
	Success       bool                `json:"success"`
	Record        engine.ActionRecord `json:"record"`
	State         *StateView          `json:"state"`
	Events        []WorldEvent        `json:"events,omitempty"`
	ObserverError string              `json:"observer_error,omitempty"`
}

// ProgramRequest is a sequence of action names run in one call
type ProgramRequest struct {
	Actions       []string `json:"actions"`
	Reset         bool     `json:"reset,omitempty"`
	StopOnFailure bool     `json:"stop_on_failure,omitempty"`
}

// ProgramResult contains the result of a program run
type ProgramResult struct {
	Requested     int                   `json:"requested"`
	Executed      int                   `json:"executed"`
	Succeeded     int                   `json:"succeeded"`
	Failed        int                   `json:"failed"`
	Stopped       bool                  `json:"stopped,omitempty"`
	StoppedOnStep int                   `json:"stopped_on_step,omitempty"` // 1-based index within the program
	StartPose     engine.Pose           `json:"start_pose"`
	EndPose       engine.Pose           `json:"end_pose"`
	Steps         []engine.ActionRecord `json:"steps"`
	State         *StateView            `json:"state"`
	Events        []WorldEvent          `json:"events,omitempty"`
	Warnings      []string              `json:"warnings,omitempty"`
}

// ConditionResult is the value of one sensor
type ConditionResult struct {
	Condition engine.Condition `json:"condition"`
	Value     bool             `json:"value"`
	Pose      engine.Pose      `json:"pose"`
}

// CellInfo describes a single cell of a world
type CellInfo struct {
	Position engine.Position `json:"position"`
	InBounds bool            `json:"in_bounds"`
	Boundary bool            `json:"boundary"`
	Obstacle bool            `json:"obstacle"`
	Wall     bool            `json:"wall"`
	Markers  int             `json:"markers"`
	Hero     bool            `json:"hero"`
	Distance int             `json:"distance"` // Manhattan distance from the hero
}

// WorldEvent represents something notable that happened in a world
type WorldEvent struct {
	Type      string      `json:"type"` // "reset", "moved", "blocked", "turned", "marker_picked", "marker_put", "no_marker", "cell_full"
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Pose      engine.Pose `json:"pose"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionRecord `json:"actions"`
	TotalActions int                   `json:"total_actions"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalPages   int                   `json:"total_pages"`
	HasNext      bool                  `json:"has_next"`
	HasPrevious  bool                  `json:"has_previous"`
}

// ConfigInfo provides information about a world preset
type ConfigInfo struct {
	Filename    string  `json:"filename"`
	ConfigID    string  `json:"config_id"` // The identifier to use for session creation
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Height      int     `json:"height"`
	Width       int     `json:"width"`
	WallRatio   float64 `json:"wall_ratio"`
	MarkerRatio float64 `json:"marker_ratio"`
}
