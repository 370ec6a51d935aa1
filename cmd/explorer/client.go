package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/service"
)

// Client drives one session through the REST API.
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID returns the session the client is bound to.
func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse %s response: %w", path, err)
		}
	}
	return nil
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + url.PathEscape(c.sessionID) + suffix
}

// CreateSession starts a new session and binds the client to it. An empty
// configID selects the server default; a non-empty world overrides both.
func (c *Client) CreateSession(ctx context.Context, configID string, seed *int64, world string) (*service.SessionInfo, error) {
	body := map[string]interface{}{}
	if configID != "" {
		body["config_id"] = configID
	}
	if seed != nil {
		body["seed"] = *seed
	}
	if world != "" {
		body["world"] = world
	}

	var info service.SessionInfo
	if err := c.do(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return nil, err
	}
	c.sessionID = info.ID
	return &info, nil
}

// Resume binds the client to an existing session.
func (c *Client) Resume(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	c.sessionID = sessionID

	var info service.SessionInfo
	if err := c.do(ctx, "GET", c.sessionPath(""), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) State(ctx context.Context) (*service.StateView, error) {
	var state service.StateView
	if err := c.do(ctx, "GET", c.sessionPath("/state"), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Reset(ctx context.Context) (*service.StateView, error) {
	var resp struct {
		Message string             `json:"message"`
		State   *service.StateView `json:"state"`
	}
	if err := c.do(ctx, "POST", c.sessionPath("/reset"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (c *Client) Act(ctx context.Context, action engine.Action) (*service.ActionResult, error) {
	var result service.ActionResult
	body := map[string]string{"action": string(action)}
	if err := c.do(ctx, "POST", c.sessionPath("/actions"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RunProgram(ctx context.Context, actions []engine.Action, stopOnFailure bool) (*service.ProgramResult, error) {
	req := service.ProgramRequest{
		Actions:       make([]string, len(actions)),
		StopOnFailure: stopOnFailure,
	}
	for i, a := range actions {
		req.Actions[i] = string(a)
	}

	var result service.ProgramResult
	if err := c.do(ctx, "POST", c.sessionPath("/program"), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
