package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Hero Grid World",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hero Grid World - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A hero stands in a walled grid world. It can move one cell forward, turn left
or right, and pick up or put down markers. Sensors tell whether the cells
ahead, left and right are clear, whether markers are under the hero and which
way it faces.

AVAILABLE TOOLS:
- create_session: Create a world from a preset (optionally seeded) or a compact tensor
- list_sessions / get_session: Inspect sessions
- world_state: Rendered world, pose and sensors
- act: Run one action - requires intent explanation
- run_program: Run a list of actions - requires intent explanation
- check_condition: Read one sensor
- describe_cell: Inspect one cell by row and column
- reset_world: Restore the world to the start of the episode
- action_history: View past actions
- list_configs: List world presets
- world_instructions: Rules, coordinates and rendering legend

NOTE: The 'intent' parameter on act/run_program serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intentProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Brief explanation of the intent behind this step (serves as a rubber duck to help explain your reasoning)",
	}
}

func actionNames() []string {
	names := make([]string, len(engine.Actions))
	for i, a := range engine.Actions {
		names[i] = string(a)
	}
	return names
}

func conditionNames() []string {
	names := make([]string, len(engine.Conditions))
	for i, cond := range engine.Conditions {
		names[i] = string(cond)
	}
	return names
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new world session from a preset, a seed or a compact tensor",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use (optional, see list_configs)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for world generation (optional)",
				},
				"world": map[string]interface{}{
					"type":        "string",
					"description": "Compact tensor text; planes separated by '/', rows by ',', cells 0/1 (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active world sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// World operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "world_state",
		Description: "Get the rendered world, the hero pose and all sensor values",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"include_tensor": map[string]interface{}{
					"type":        "boolean",
					"description": "Also return the compact tensor text",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleWorldState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "act",
		Description: "Execute one hero action",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        actionNames(),
					"description": "Action to execute",
				},
				"intent": intentProperty(),
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the world before acting",
				},
			},
			Required: []string{"session_id", "action"},
		},
	}, c.handleAct)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_program",
		Description: fmt.Sprintf("Execute a sequence of hero actions (at most %d)", engine.MaxProgramSteps),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"actions": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": actionNames(),
					},
					"description": "Actions to execute in order",
				},
				"intent": intentProperty(),
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the world before running",
				},
				"stop_on_failure": map[string]interface{}{
					"type":        "boolean",
					"description": "Stop at the first action that does not succeed",
				},
			},
			Required: []string{"session_id", "actions"},
		},
	}, c.handleRunProgram)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "check_condition",
		Description: "Evaluate one hero sensor",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"condition": map[string]interface{}{
					"type":        "string",
					"enum":        conditionNames(),
					"description": "Sensor to evaluate",
				},
			},
			Required: []string{"session_id", "condition"},
		},
	}, c.handleCheckCondition)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about one cell. Row 0 is the bottom boundary row, column 0 the left boundary column",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row index, counted from the bottom",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column index, counted from the left",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_world",
		Description: "Restore the world to the start of the episode",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "View the actions of the current episode",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Actions per page (default 20, max 100)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Chronological (asc) or most recent first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleActionHistory)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available world presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "world_instructions",
		Description: "Get the rules of the world, the coordinate system and the rendering legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleWorldInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Handler serves single JSON-RPC messages over HTTP POST
func (c *Client) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := c.mcpServer.HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	v, ok := args[key].(float64)
	return int(v), ok
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = int64(seed)
	}
	if world, _ := args["world"].(string); world != "" {
		body["world"] = world
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nSeed: %d\n\n%s",
		session.ID, session.ConfigID, session.Seed, formatState(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		steps := 0
		if s.State != nil {
			steps = s.State.Steps
		}
		fmt.Fprintf(&result, "- %s (Config: %s, Steps: %d, Created: %s)\n",
			s.ID, s.ConfigID, steps, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleWorldState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	includeTensor, _ := args["include_tensor"].(bool)

	var state service.StateView
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatState(&state)
	if includeTensor && state.Tensor != nil {
		result += "\nTensor:\n" + engine.EncodeTensor(state.Tensor)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	action, _ := args["action"].(string)
	reset, _ := args["reset"].(bool)

	// intent is only for the caller's benefit

	body := map[string]interface{}{
		"action": action,
		"reset":  reset,
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/actions"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleRunProgram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	actionsRaw, _ := args["actions"].([]interface{})
	reset, _ := args["reset"].(bool)
	stopOnFailure, _ := args["stop_on_failure"].(bool)

	actions := make([]string, 0, len(actionsRaw))
	for _, a := range actionsRaw {
		if name, ok := a.(string); ok {
			actions = append(actions, name)
		}
	}

	body := service.ProgramRequest{
		Actions:       actions,
		Reset:         reset,
		StopOnFailure: stopOnFailure,
	}

	var result service.ProgramResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/program"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatProgramResult(&result)), nil
}

func (c *Client) handleCheckCondition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	condition, _ := args["condition"].(string)

	var result service.ConditionResult
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/conditions/"+url.PathEscape(condition)), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s: %t (hero at %s)",
		result.Condition, result.Value, formatPose(result.Pose))), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	var cell service.CellInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, fmt.Sprintf("/cells/%d/%d", row, col)), nil, &cell); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCell(&cell)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *service.StateView `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatState(response.State))), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&result, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d, walls: %.0f%%, markers: %.0f%%\n\n",
			config.Name, config.ConfigID, config.Description, config.Height, config.Width,
			config.WallRatio*100, config.MarkerRatio*100)
	}

	return mcp.NewToolResultText(result.String()), nil
}

const worldInstructions = `Hero Grid World - Instructions

THE WORLD:
A rectangular interior of 2 to 16 rows and columns, surrounded by a
one-cell boundary ring. Interior cells can hold an obstacle and 0 to 9
markers. Exactly one hero stands in the interior, facing north, east,
south or west.

COORDINATES:
Positions are (row, col) in the full grid, ring included. Row 0 is the
BOTTOM boundary row, so north increases the row. Column 0 is the left
boundary column, so east increases the column.

ACTIONS (camelCase or snake_case):
• move        Step one cell forward. Fails on an obstacle or the boundary.
• turnLeft    Rotate 90° counter-clockwise. Always succeeds.
• turnRight   Rotate 90° clockwise. Always succeeds.
• pickMarker  Take one marker from the hero's cell. Fails when there is none.
• putMarker   Drop one marker on the hero's cell. Fails when it already holds 9.
A failed action leaves the world unchanged; it is reported, never an error.

SENSORS:
• frontIsClear, leftIsClear, rightIsClear
• markersPresent, noMarkersPresent
• facingNorth, facingEast, facingSouth, facingWest

RENDERING (top row first):
• █  boundary        • ░  obstacle
• 1-9 marker count   • ↑ → ↓ ←  hero
A hero standing on markers is drawn as the digit followed by a combining
arrow mark.

TENSOR:
The world serializes to 15 boolean planes of (rows x cols): 0-3 hero
heading N/E/S/W, 4 obstacles, 5 boundary ring, 6-14 marker count 1-9
(one-hot). The compact text form separates planes with '/', rows with ','
and writes each cell as 0 or 1.

TIPS:
• Use check_condition before moving when unsure.
• run_program with stop_on_failure avoids drifting after a blocked move.
• reset_world restores the exact starting world of the episode.`

func (c *Client) handleWorldInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(worldInstructions), nil
}

// Formatting helpers

func formatPose(p engine.Pose) string {
	return fmt.Sprintf("(%d,%d) facing %s", p.Position.Row, p.Position.Col, p.Direction)
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nEpisode: %s\nConfig: %s\nSeed: %d\nCreated: %s\n\n%s",
		session.ID, session.EpisodeID, session.ConfigID, session.Seed,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatState(session.State))
}

func formatState(state *service.StateView) string {
	if state == nil {
		return "No world state available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Hero: %s | Markers here: %d | Markers left: %d | Steps: %d\n\n",
		formatPose(state.Pose), state.MarkersHere, state.TotalMarkers, state.Steps)

	for _, row := range state.Rows {
		result.WriteString(row)
		result.WriteString("\n")
	}

	if len(state.Sensors) > 0 {
		names := make([]string, 0, len(state.Sensors))
		for cond := range state.Sensors {
			names = append(names, string(cond))
		}
		sort.Strings(names)

		result.WriteString("\nSensors:")
		for _, name := range names {
			fmt.Fprintf(&result, " %s=%t", name, state.Sensors[engine.Condition(name)])
		}
		result.WriteString("\n")
	}

	return result.String()
}

func formatRecord(rec engine.ActionRecord) string {
	status := "✗"
	if rec.Success {
		status = "✓"
	}
	return fmt.Sprintf("#%d %s %s → %s markers=%d %s",
		rec.Step, rec.Action, formatPose(rec.From), formatPose(rec.To), rec.Markers, status)
}

func formatActionResult(result *service.ActionResult) string {
	var response strings.Builder
	if result.Success {
		fmt.Fprintf(&response, "✓ %s succeeded\n", result.Action)
	} else {
		fmt.Fprintf(&response, "✗ %s failed\n", result.Action)
	}
	response.WriteString(formatRecord(result.Record) + "\n")

	for _, ev := range result.Events {
		fmt.Fprintf(&response, "• %s\n", ev.Message)
	}
	if result.ObserverError != "" {
		fmt.Fprintf(&response, "Warning: %s\n", result.ObserverError)
	}

	response.WriteString("\n" + formatState(result.State))
	return response.String()
}

func formatProgramResult(result *service.ProgramResult) string {
	var response strings.Builder
	fmt.Fprintf(&response, "Program: executed %d/%d (%d succeeded, %d failed)\n",
		result.Executed, result.Requested, result.Succeeded, result.Failed)
	if result.Stopped {
		fmt.Fprintf(&response, "Stopped at step %d\n", result.StoppedOnStep)
	}
	fmt.Fprintf(&response, "Start: %s\nEnd:   %s\n", formatPose(result.StartPose), formatPose(result.EndPose))

	// the tail is what matters when a long program goes wrong
	steps := result.Steps
	if len(steps) > 10 {
		fmt.Fprintf(&response, "... %d earlier steps\n", len(steps)-10)
		steps = steps[len(steps)-10:]
	}
	for _, rec := range steps {
		response.WriteString(formatRecord(rec) + "\n")
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(&response, "Warning: %s\n", w)
	}

	response.WriteString("\n" + formatState(result.State))
	return response.String()
}

func formatCell(cell *service.CellInfo) string {
	var kind string
	switch {
	case !cell.InBounds:
		kind = "outside the world (treated as a wall)"
	case cell.Boundary:
		kind = "boundary ring (wall)"
	case cell.Obstacle:
		kind = "obstacle (wall)"
	default:
		kind = "open"
	}

	result := fmt.Sprintf("Cell (%d,%d): %s\nMarkers: %d\nDistance from hero: %d",
		cell.Position.Row, cell.Position.Col, kind, cell.Markers, cell.Distance)
	if cell.Hero {
		result += "\nThe hero is here"
	}
	return result
}

func formatHistory(history *service.HistoryResponse) string {
	var result strings.Builder
	fmt.Fprintf(&result, "Action History (Page %d/%d, Total: %d actions)\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, rec := range history.Actions {
		result.WriteString(formatRecord(rec) + "\n")
	}

	if history.HasNext {
		result.WriteString("\nMore actions available on next page")
	}
	return result.String()
}
