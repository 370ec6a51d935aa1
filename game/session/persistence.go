package session

import (
	"time"

	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// Worlds are stored in the compact tensor text form.
type PersistedSessionData struct {
	ID             string                `json:"id"`
	EpisodeID      string                `json:"episode_id"`
	ConfigID       string                `json:"config_id"`
	Config         *engine.WorldConfig   `json:"config,omitempty"`
	Seed           int64                 `json:"seed"`
	CreatedAt      time.Time             `json:"created_at"`
	LastAccessedAt time.Time             `json:"last_accessed_at"`
	Initial        string                `json:"initial"`
	Current        string                `json:"current"`
	History        []engine.ActionRecord `json:"history"`
}
