package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/herogrid/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")

	// ErrProgramTooLong is returned when a program exceeds engine.MaxProgramSteps.
	ErrProgramTooLong = errors.New("program too long")
)

// GameService defines all world-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Hero Operations
	Act(ctx context.Context, sessionID, action string, reset bool) (*ActionResult, error)
	RunProgram(ctx context.Context, sessionID string, req ProgramRequest) (*ProgramResult, error)
	Evaluate(ctx context.Context, sessionID, condition string) (*ConditionResult, error)
	Reset(ctx context.Context, sessionID string) (*StateView, error)

	// World State
	GetState(ctx context.Context, sessionID string) (*StateView, error)
	DescribeCell(ctx context.Context, sessionID string, pos engine.Position) (*CellInfo, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.WorldConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.WorldConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, spec SessionSpec) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	LastAccessed(id string) time.Time
	Save(id string) error
}

// ConfigManager handles world preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.WorldConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.WorldConfig
	SaveConfig(name string, config *engine.WorldConfig) error
}

// SessionSpec describes the world a new session starts from.
type SessionSpec struct {
	ConfigID string
	Config   *engine.WorldConfig // nil for worlds uploaded as a tensor
	Seed     int64
	World    *engine.Grid
}

// Session represents an active episode of one hero in one world
type Session struct {
	ID             string
	EpisodeID      string
	ConfigID       string
	Config         *engine.WorldConfig
	Seed           int64
	Initial        *engine.Grid // world at episode start, restored by Reset
	Engine         *engine.WorldEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
