package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/herogrid/game/engine"
	"github.com/wricardo/mcp-training/herogrid/game/render"
)

// CustomConfigID is reported for sessions whose world was uploaded as a tensor.
const CustomConfigID = "custom"

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	tracer   *Tracer
	newSeed  func() int64
	mu       sync.RWMutex
}

// Option configures the game service
type Option func(*gameServiceImpl)

// WithTracer installs a tracer observer on every session engine.
func WithTracer(t *Tracer) Option {
	return func(s *gameServiceImpl) {
		s.tracer = t
	}
}

// WithSeedSource overrides how seeds are chosen for sessions created without one.
func WithSeedSource(newSeed func() int64) Option {
	return func(s *gameServiceImpl) {
		s.newSeed = newSeed
	}
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		newSeed:  func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession creates a new session from a preset or an uploaded tensor
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spec, err := s.buildWorld(req)
	if err != nil {
		return nil, err
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.attach(sess)

	log.Printf("[SESSION] created id=%s config=%s seed=%d size=%dx%d", sess.ID, sess.ConfigID, sess.Seed,
		spec.World.Height(), spec.World.Width())

	return s.info(sess), nil
}

func (s *gameServiceImpl) buildWorld(req CreateSessionRequest) (SessionSpec, error) {
	if req.Tensor != nil {
		grid, err := engine.FromTensor(req.Tensor)
		if err != nil {
			return SessionSpec{}, err
		}
		return SessionSpec{ConfigID: CustomConfigID, World: grid}, nil
	}

	var config *engine.WorldConfig
	configID := req.ConfigID
	if configID != "" {
		var err error
		config, err = s.configs.LoadConfig(configID)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return SessionSpec{}, s.configNotFound(configID)
			}
			return SessionSpec{}, fmt.Errorf("failed to load config %s: %w", configID, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = config.Name
	}

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	if config.Seed != nil {
		seed = *config.Seed
	}

	grid, err := engine.NewGridFromConfig(config, seed)
	if err != nil {
		return SessionSpec{}, err
	}
	return SessionSpec{ConfigID: configID, Config: config, Seed: seed, World: grid}, nil
}

// configNotFound lists the available presets in the error message
func (s *gameServiceImpl) configNotFound(configID string) error {
	available, err := s.configs.ListConfigs()
	if err == nil && len(available) > 0 {
		ids := make([]string, 0, len(available))
		for _, cfg := range available {
			ids = append(ids, cfg.ConfigID)
		}
		return fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configID, ids)
	}
	return fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configID)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Act executes a single action for a session
func (s *gameServiceImpl) Act(ctx context.Context, sessionID, action string, reset bool) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := engine.ParseAction(action)
	if err != nil {
		return nil, err
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.attach(sess)

	var events []WorldEvent
	if reset {
		events = append(events, s.resetEpisode(sess))
	}

	ok := sess.Engine.Do(parsed)
	record := *sess.Engine.LastAction()
	result := &ActionResult{
		Action:  parsed,
		Success: ok,
		Record:  record,
		State:   stateView(sess.Engine, false),
		Events:  append(events, eventFor(record)),
	}
	if oerr := sess.Engine.ObserverErr(); oerr != nil {
		result.ObserverError = oerr.Error()
		log.Printf("Warning: observer failed in session %s: %v", sessionID, oerr)
	}

	s.persist(sessionID, "action")
	return result, nil
}

// RunProgram executes a sequence of actions. Every name is resolved before
// the first action runs, so an unknown name leaves the world untouched.
func (s *gameServiceImpl) RunProgram(ctx context.Context, sessionID string, req ProgramRequest) (*ProgramResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(req.Actions) > engine.MaxProgramSteps {
		return nil, fmt.Errorf("%w: %d actions, limit is %d", ErrProgramTooLong, len(req.Actions), engine.MaxProgramSteps)
	}
	actions := make([]engine.Action, len(req.Actions))
	for i, name := range req.Actions {
		a, err := engine.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		actions[i] = a
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.attach(sess)

	result := &ProgramResult{
		Requested: len(actions),
		Steps:     make([]engine.ActionRecord, 0, len(actions)),
	}
	if req.Reset {
		result.Events = append(result.Events, s.resetEpisode(sess))
	}
	result.StartPose = sess.Engine.Pose()

	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			result.Stopped = true
			result.StoppedOnStep = i + 1
			result.Warnings = append(result.Warnings, err.Error())
			break
		}

		ok := sess.Engine.Do(a)
		record := *sess.Engine.LastAction()
		result.Executed++
		result.Steps = append(result.Steps, record)
		result.Events = append(result.Events, eventFor(record))
		if oerr := sess.Engine.ObserverErr(); oerr != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("step %d: %v", i+1, oerr))
		}

		if ok {
			result.Succeeded++
			continue
		}
		result.Failed++
		if req.StopOnFailure {
			result.Stopped = true
			result.StoppedOnStep = i + 1
			break
		}
	}

	result.EndPose = sess.Engine.Pose()
	result.State = stateView(sess.Engine, false)

	s.persist(sessionID, "program")
	return result, nil
}

// Evaluate checks one sensor of a session
func (s *gameServiceImpl) Evaluate(ctx context.Context, sessionID, condition string) (*ConditionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cond, err := engine.ParseCondition(condition)
	if err != nil {
		return nil, err
	}
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return &ConditionResult{
		Condition: cond,
		Value:     sess.Engine.Check(cond),
		Pose:      sess.Engine.Pose(),
	}, nil
}

// Reset restores the session world to the start of the episode
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.resetEpisode(sess)

	s.persist(sessionID, "reset")
	return stateView(sess.Engine, false), nil
}

// GetState retrieves the current world state, tensor included
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*StateView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return stateView(sess.Engine, true), nil
}

// DescribeCell reports what occupies a single cell
func (s *gameServiceImpl) DescribeCell(ctx context.Context, sessionID string, pos engine.Position) (*CellInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	g := sess.Engine.Grid()
	hero := g.Pose().Position
	return &CellInfo{
		Position: pos,
		InBounds: g.InBounds(pos),
		Boundary: g.IsBoundary(pos),
		Obstacle: g.IsObstacle(pos),
		Wall:     g.IsWall(pos),
		Markers:  g.MarkerCount(pos),
		Hero:     pos == hero,
		Distance: engine.ManhattanDistance(hero, pos),
	}, nil
}

// GetHistory returns paginated action history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	actions := []engine.ActionRecord{}
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else if start < total {
		actions = history[start:end]
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available world presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific world preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.WorldConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a world preset to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.WorldConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// lookup fetches a session and refreshes its access time
func (s *gameServiceImpl) lookup(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// attach installs the tracer. Observers only fire on actions, which run
// under the write lock, so read paths skip it.
func (s *gameServiceImpl) attach(sess *Session) {
	if s.tracer != nil {
		sess.Engine.SetObserver(s.tracer.For(sess.ID, SnapshotOf(sess.Engine)))
	}
}

func (s *gameServiceImpl) resetEpisode(sess *Session) WorldEvent {
	sess.Engine.Reset(sess.Initial.Clone())
	sess.EpisodeID = NewEpisodeID()
	return WorldEvent{
		Type:      "reset",
		Message:   "World reset to the start of the episode",
		Timestamp: time.Now(),
		Pose:      sess.Engine.Pose(),
	}
}

func (s *gameServiceImpl) persist(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, after, err)
	}
}

func (s *gameServiceImpl) info(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		EpisodeID:      sess.EpisodeID,
		ConfigID:       sess.ConfigID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: s.sessions.LastAccessed(sess.ID),
		State:          stateView(sess.Engine, false),
		WorldConfig:    sess.Config,
	}
}

func stateView(e *engine.WorldEngine, withTensor bool) *StateView {
	g := e.Grid()
	pose := e.Pose()
	view := &StateView{
		Height:       g.Height(),
		Width:        g.Width(),
		Pose:         pose,
		Heading:      pose.Direction.String(),
		MarkersHere:  g.MarkerCount(pose.Position),
		TotalMarkers: engine.CountMarkers(g),
		Steps:        e.Steps(),
		Rows:         render.Rows(g),
		Sensors:      e.Sensors(),
	}
	if withTensor {
		view.Tensor = e.Tensor()
	}
	return view
}

func eventFor(rec engine.ActionRecord) WorldEvent {
	ev := WorldEvent{Timestamp: time.Unix(rec.Timestamp, 0), Pose: rec.To}
	switch {
	case rec.Action == engine.ActionMove && rec.Success:
		ev.Type = "moved"
		ev.Message = fmt.Sprintf("Moved %s to (%d,%d)", rec.To.Direction, rec.To.Position.Row, rec.To.Position.Col)
	case rec.Action == engine.ActionMove:
		ev.Type = "blocked"
		ev.Message = fmt.Sprintf("Wall ahead, facing %s at (%d,%d)", rec.From.Direction, rec.From.Position.Row, rec.From.Position.Col)
	case rec.Action == engine.ActionTurnLeft || rec.Action == engine.ActionTurnRight:
		ev.Type = "turned"
		ev.Message = fmt.Sprintf("Now facing %s", rec.To.Direction)
	case rec.Action == engine.ActionPickMarker && rec.Success:
		ev.Type = "marker_picked"
		ev.Message = fmt.Sprintf("Picked a marker, %d left here", rec.Markers)
	case rec.Action == engine.ActionPickMarker:
		ev.Type = "no_marker"
		ev.Message = "No marker to pick"
	case rec.Action == engine.ActionPutMarker && rec.Success:
		ev.Type = "marker_put"
		ev.Message = fmt.Sprintf("Put a marker, %d here", rec.Markers)
	default:
		ev.Type = "cell_full"
		ev.Message = fmt.Sprintf("Cell already holds %d markers", engine.MaxMarkers)
	}
	return ev
}
