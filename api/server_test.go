package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/herogrid/game/config"
	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/service"
	"github.com/wricardo/mcp-training/herogrid/game/session"
	"github.com/wricardo/mcp-training/herogrid/transport/websocket"
)

// MockGameService implements service.GameService for testing. Unset funcs
// return service.ErrSessionNotFound.
type MockGameService struct {
	CreateSessionFunc func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error
	ActFunc           func(ctx context.Context, sessionID, action string, reset bool) (*service.ActionResult, error)
	RunProgramFunc    func(ctx context.Context, sessionID string, req service.ProgramRequest) (*service.ProgramResult, error)
	EvaluateFunc      func(ctx context.Context, sessionID, condition string) (*service.ConditionResult, error)
	ResetFunc         func(ctx context.Context, sessionID string) (*service.StateView, error)
	GetStateFunc      func(ctx context.Context, sessionID string) (*service.StateView, error)
	DescribeCellFunc  func(ctx context.Context, sessionID string, pos engine.Position) (*service.CellInfo, error)
	GetHistoryFunc    func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)
	ListConfigsFunc   func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc    func(ctx context.Context, configName string) (*engine.WorldConfig, error)
	SaveConfigFunc    func(ctx context.Context, configName string, config *engine.WorldConfig) error
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
}

func (m *MockGameService) CreateSession(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, req)
	}
	return &service.SessionInfo{ID: "test-session", ConfigID: req.ConfigID, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return nil, notFound(sessionID)
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return notFound(sessionID)
}

func (m *MockGameService) Act(ctx context.Context, sessionID, action string, reset bool) (*service.ActionResult, error) {
	if m.ActFunc != nil {
		return m.ActFunc(ctx, sessionID, action, reset)
	}
	return nil, notFound(sessionID)
}

func (m *MockGameService) RunProgram(ctx context.Context, sessionID string, req service.ProgramRequest) (*service.ProgramResult, error) {
	if m.RunProgramFunc != nil {
		return m.RunProgramFunc(ctx, sessionID, req)
	}
	return nil, notFound(sessionID)
}

func (m *MockGameService) Evaluate(ctx context.Context, sessionID, condition string) (*service.ConditionResult, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, sessionID, condition)
	}
	return nil, notFound(sessionID)
}

func (m *MockGameService) Reset(ctx context.Context, sessionID string) (*service.StateView, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return nil, notFound(sessionID)
}

func (m *MockGameService) GetState(ctx context.Context, sessionID string) (*service.StateView, error) {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(ctx, sessionID)
	}
	return nil, notFound(sessionID)
}

func (m *MockGameService) DescribeCell(ctx context.Context, sessionID string, pos engine.Position) (*service.CellInfo, error) {
	if m.DescribeCellFunc != nil {
		return m.DescribeCellFunc(ctx, sessionID, pos)
	}
	return nil, notFound(sessionID)
}

func (m *MockGameService) GetHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, sessionID, opts)
	}
	return nil, notFound(sessionID)
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.WorldConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return nil, fmt.Errorf("%w: %s", service.ErrConfigNotFound, configName)
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.WorldConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode response: %v (body: %s)", err, w.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", service.ErrSessionNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: x", service.ErrConfigNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: x", engine.ErrInvalidState), http.StatusBadRequest},
		{fmt.Errorf("%w: x", engine.ErrInvalidSize), http.StatusBadRequest},
		{fmt.Errorf("%w: x", engine.ErrInvalidOptions), http.StatusBadRequest},
		{fmt.Errorf("step 2: %w", engine.ErrUnknownAction), http.StatusBadRequest},
		{engine.ErrUnknownCondition, http.StatusBadRequest},
		{service.ErrProgramTooLong, http.StatusBadRequest},
		{service.ErrInvalidConfig, http.StatusBadRequest},
		{fmt.Errorf("disk full"), http.StatusInternalServerError},
	}

	for _, test := range tests {
		if got := statusFor(test.err); got != test.want {
			t.Errorf("statusFor(%v) = %d, want %d", test.err, got, test.want)
		}
	}
}

func TestCreateSession(t *testing.T) {
	var got service.CreateSessionRequest
	mock := &MockGameService{
		CreateSessionFunc: func(ctx context.Context, req service.CreateSessionRequest) (*service.SessionInfo, error) {
			got = req
			if req.ConfigID == "missing" {
				return nil, fmt.Errorf("%w: missing", service.ErrConfigNotFound)
			}
			return &service.SessionInfo{ID: "ab12", ConfigID: req.ConfigID}, nil
		},
	}
	server := NewServer(mock, nil)

	t.Run("preset and seed", func(t *testing.T) {
		w := serve(server, makeRequest("POST", "/api/sessions", map[string]interface{}{"config_id": "maze", "seed": 5}))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if got.ConfigID != "maze" || got.Seed == nil || *got.Seed != 5 {
			t.Errorf("Unexpected request: %+v", got)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		w := serve(server, httptest.NewRequest("POST", "/api/sessions", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("full-size tensor fits the body limit", func(t *testing.T) {
		world := engine.NewTensor(engine.MaxSize+2, engine.MaxSize+2)
		w := serve(server, makeRequest("POST", "/api/sessions", map[string]interface{}{"tensor": world}))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		world := engine.NewTensor(200, 200)
		w := serve(server, makeRequest("POST", "/api/sessions", map[string]interface{}{"tensor": world}))
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("Expected 413, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("compact world", func(t *testing.T) {
		world := engine.NewTensor(4, 4)
		world[engine.PlaneEast][1][1] = true
		w := serve(server, makeRequest("POST", "/api/sessions", map[string]string{"world": engine.EncodeTensor(world)}))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if !got.Tensor.Equal(world) {
			t.Error("Decoded tensor was not forwarded")
		}
	})

	t.Run("malformed world", func(t *testing.T) {
		w := serve(server, makeRequest("POST", "/api/sessions", map[string]string{"world": "01/2"}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		w := serve(server, makeRequest("POST", "/api/sessions", map[string]string{"config_id": "missing"}))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/sessions", strings.NewReader("{"))
		w := serve(server, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	mock := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Hour)},
				{ID: "new", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now.Add(-2 * time.Hour)},
			}, nil
		},
	}
	server := NewServer(mock, nil)

	tests := []struct {
		query string
		first string
		count int
	}{
		{"", "old", 2},
		{"?sort=created", "new", 2},
		{"?sort=created&order=asc", "old", 2},
		{"?limit=1", "old", 1},
		{"?limit=0", "old", 2},
	}

	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			w := serve(server, makeRequest("GET", "/api/sessions"+test.query, nil))
			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)
			if resp.Count != test.count || resp.Total != 2 {
				t.Errorf("Expected count %d total 2, got %d/%d", test.count, resp.Count, resp.Total)
			}
			if resp.Sessions[0].ID != test.first {
				t.Errorf("Expected %s first, got %s", test.first, resp.Sessions[0].ID)
			}
		})
	}
}

func TestSessionNotFound(t *testing.T) {
	server := NewServer(&MockGameService{}, nil)

	requests := []*http.Request{
		makeRequest("GET", "/api/sessions/zz99", nil),
		makeRequest("DELETE", "/api/sessions/zz99", nil),
		makeRequest("GET", "/api/sessions/zz99/state", nil),
		makeRequest("GET", "/api/sessions/zz99/tensor", nil),
		makeRequest("POST", "/api/sessions/zz99/actions", map[string]string{"action": "move"}),
		makeRequest("POST", "/api/sessions/zz99/program", map[string][]string{"actions": {"move"}}),
		makeRequest("GET", "/api/sessions/zz99/conditions/frontIsClear", nil),
		makeRequest("GET", "/api/sessions/zz99/cells/1/1", nil),
		makeRequest("POST", "/api/sessions/zz99/reset", nil),
		makeRequest("GET", "/api/sessions/zz99/history", nil),
		makeRequest("GET", "/api/configs/nope", nil),
	}

	for _, req := range requests {
		t.Run(req.Method+" "+req.URL.Path, func(t *testing.T) {
			w := serve(server, req)
			if w.Code != http.StatusNotFound {
				t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
			}
			var resp map[string]string
			parseResponse(t, w, &resp)
			if resp["error"] == "" {
				t.Error("Expected error message")
			}
		})
	}
}

func TestActAndProgram(t *testing.T) {
	var gotAction string
	var gotReset bool
	var gotProgram service.ProgramRequest
	mock := &MockGameService{
		ActFunc: func(ctx context.Context, sessionID, action string, reset bool) (*service.ActionResult, error) {
			gotAction, gotReset = action, reset
			if action == "jump" {
				return nil, fmt.Errorf("%w: %q", engine.ErrUnknownAction, action)
			}
			return &service.ActionResult{Action: engine.ActionMove, Success: false, State: &service.StateView{}}, nil
		},
		RunProgramFunc: func(ctx context.Context, sessionID string, req service.ProgramRequest) (*service.ProgramResult, error) {
			gotProgram = req
			return &service.ProgramResult{Requested: len(req.Actions), Executed: len(req.Actions), State: &service.StateView{}}, nil
		},
	}
	server := NewServer(mock, nil)

	w := serve(server, makeRequest("POST", "/api/sessions/ab12/actions", map[string]interface{}{"action": "move", "reset": true}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a blocked move, got %d", w.Code)
	}
	if gotAction != "move" || !gotReset {
		t.Errorf("Unexpected forwarded action: %s reset=%t", gotAction, gotReset)
	}
	var result service.ActionResult
	parseResponse(t, w, &result)
	if result.Success {
		t.Error("Expected success false to be passed through")
	}

	w = serve(server, makeRequest("POST", "/api/sessions/ab12/actions", map[string]string{"action": "jump"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown action, got %d", w.Code)
	}

	w = serve(server, makeRequest("POST", "/api/sessions/ab12/program", map[string]interface{}{
		"actions":         []string{"move", "turnLeft"},
		"stop_on_failure": true,
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(gotProgram.Actions) != 2 || !gotProgram.StopOnFailure {
		t.Errorf("Unexpected forwarded program: %+v", gotProgram)
	}
}

func TestCellRoute(t *testing.T) {
	var got engine.Position
	mock := &MockGameService{
		DescribeCellFunc: func(ctx context.Context, sessionID string, pos engine.Position) (*service.CellInfo, error) {
			got = pos
			return &service.CellInfo{Position: pos}, nil
		},
	}
	server := NewServer(mock, nil)

	w := serve(server, makeRequest("GET", "/api/sessions/ab12/cells/-1/3", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got != (engine.Position{Row: -1, Col: 3}) {
		t.Errorf("Unexpected position %+v", got)
	}

	w = serve(server, makeRequest("GET", "/api/sessions/ab12/cells/x/3", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for non-numeric row, got %d", w.Code)
	}
}

func TestGetHistoryQuery(t *testing.T) {
	var got service.HistoryOptions
	mock := &MockGameService{
		GetHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			got = opts
			return &service.HistoryResponse{}, nil
		},
	}
	server := NewServer(mock, nil)

	serve(server, makeRequest("GET", "/api/sessions/ab12/history?page=3&limit=5&order=asc", nil))
	if got != (service.HistoryOptions{Page: 3, Limit: 5, Order: "asc"}) {
		t.Errorf("Unexpected options %+v", got)
	}

	serve(server, makeRequest("GET", "/api/sessions/ab12/history?page=-1&limit=x&order=sideways", nil))
	if got != (service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}) {
		t.Errorf("Expected defaults, got %+v", got)
	}
}

func TestCreateConfig(t *testing.T) {
	mock := &MockGameService{
		SaveConfigFunc: func(ctx context.Context, configName string, config *engine.WorldConfig) error {
			if config.Height > engine.MaxSize {
				return fmt.Errorf("%w: too tall", service.ErrInvalidConfig)
			}
			return nil
		},
	}
	server := NewServer(mock, nil)

	w := serve(server, makeRequest("POST", "/api/configs", engine.WorldConfig{Name: "mine", Height: 4, Width: 4}))
	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", w.Code)
	}

	w = serve(server, makeRequest("POST", "/api/configs", engine.WorldConfig{Height: 4, Width: 4}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without name, got %d", w.Code)
	}

	w = serve(server, makeRequest("POST", "/api/configs", engine.WorldConfig{Name: "tall", Height: 40, Width: 4}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid config, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	w := serve(NewServer(&MockGameService{}, nil), makeRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

// newRealServer wires the server to the real service, session and config
// packages.
func newRealServer(t *testing.T, hub *websocket.Hub) *Server {
	t.Helper()
	configs, err := config.NewManager("../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configs)
	return NewServer(svc, hub)
}

func TestEndToEnd(t *testing.T) {
	server := newRealServer(t, nil)

	// 4x4 open interior, hero at (1,1) facing east
	world := engine.NewTensor(6, 6)
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			if r == 0 || c == 0 || r == 5 || c == 5 {
				world[engine.PlaneBoundary][r][c] = true
			}
		}
	}
	world[engine.PlaneEast][1][1] = true

	w := serve(server, makeRequest("POST", "/api/sessions", map[string]interface{}{"tensor": world}))
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create session: %d %s", w.Code, w.Body.String())
	}
	var info service.SessionInfo
	parseResponse(t, w, &info)
	base := "/api/sessions/" + info.ID

	checkCondition := func(name string, want bool) {
		t.Helper()
		w := serve(server, makeRequest("GET", base+"/conditions/"+name, nil))
		var result service.ConditionResult
		parseResponse(t, w, &result)
		if result.Value != want {
			t.Errorf("%s: expected %t, got %t", name, want, result.Value)
		}
	}

	act := func(action string) *service.ActionResult {
		t.Helper()
		w := serve(server, makeRequest("POST", base+"/actions", map[string]string{"action": action}))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: %d %s", action, w.Code, w.Body.String())
		}
		var result service.ActionResult
		parseResponse(t, w, &result)
		return &result
	}

	checkCondition("frontIsClear", true)
	if r := act("move"); !r.Success || r.State.Pose.Position != (engine.Position{Row: 1, Col: 2}) {
		t.Fatalf("Unexpected move result: %+v", r)
	}
	if r := act("putMarker"); !r.Success {
		t.Fatal("putMarker failed")
	}
	checkCondition("markersPresent", true)
	if r := act("pickMarker"); !r.Success || r.State.MarkersHere != 0 {
		t.Fatalf("Unexpected pickMarker result: %+v", r)
	}
	checkCondition("markers_present", false)

	w = serve(server, makeRequest("GET", base+"/tensor?format=compact", nil))
	var compact struct {
		Shape []int  `json:"shape"`
		World string `json:"world"`
	}
	parseResponse(t, w, &compact)
	decoded, err := engine.DecodeTensor(compact.World)
	if err != nil {
		t.Fatalf("Compact tensor does not decode: %v", err)
	}
	if err := engine.ValidateTensor(decoded); err != nil {
		t.Errorf("Served tensor is invalid: %v", err)
	}
	if compact.Shape[0] != engine.NumPlanes || compact.Shape[1] != 6 {
		t.Errorf("Unexpected shape %v", compact.Shape)
	}

	w = serve(server, makeRequest("GET", base+"/history?order=asc", nil))
	var history service.HistoryResponse
	parseResponse(t, w, &history)
	if history.TotalActions != 3 || history.Actions[0].Action != engine.ActionMove {
		t.Errorf("Unexpected history: %+v", history)
	}

	w = serve(server, makeRequest("POST", base+"/reset", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Reset failed: %d", w.Code)
	}
	w = serve(server, makeRequest("GET", base+"/state", nil))
	var state service.StateView
	parseResponse(t, w, &state)
	if state.Pose.Position != (engine.Position{Row: 1, Col: 1}) || state.Steps != 0 {
		t.Errorf("Reset did not restore the start: %+v", state.Pose)
	}
	if len(state.Tensor) != engine.NumPlanes {
		t.Errorf("Expected state to carry the tensor")
	}

	w = serve(server, makeRequest("GET", "/api/sessions/compare?configId="+service.CustomConfigID, nil))
	var compare struct {
		Count int `json:"count"`
	}
	parseResponse(t, w, &compare)
	if compare.Count != 1 {
		t.Errorf("Expected 1 compared session, got %d", compare.Count)
	}
}

func TestWebSocket(t *testing.T) {
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	server := newRealServer(t, hub)
	ts := httptest.NewServer(server)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/sessions", "application/json", strings.NewReader(`{"config_id":"tiny","seed":3}`))
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	var info service.SessionInfo
	json.NewDecoder(resp.Body).Decode(&info)
	resp.Body.Close()

	t.Run("missing session parameter", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/ws")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/ws?session=zzzz")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + info.ID
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(info.ID) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err = http.Post(ts.URL+"/api/sessions/"+info.ID+"/actions", "application/json", strings.NewReader(`{"action":"turnLeft"}`))
	if err != nil {
		t.Fatalf("Action failed: %v", err)
	}
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var events []string
	for len(events) < 2 {
		var msg websocket.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed to read message: %v", err)
		}
		events = append(events, msg.Event)
	}
	if events[0] != websocket.EventAction || events[1] != websocket.EventStateUpdate {
		t.Errorf("Unexpected events %v", events)
	}
}
