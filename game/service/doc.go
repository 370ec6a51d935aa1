// Package service provides the business logic layer for hero worlds.
//
// GameService is the main interface. It turns requests from the transport
// layer (HTTP, WebSocket, MCP) into engine calls on a session:
//   - session creation from a preset, a seed or an uploaded tensor
//   - single actions and whole programs
//   - sensor queries and cell lookups
//   - paginated action history
//
// SessionManager and ConfigManager are implemented by the session and config
// packages. Each session owns its own engine and the world the episode
// started from, so Reset can restore it.
//
// Usage:
//
//	sessions := session.NewManager()
//	configs, _ := config.NewManager("configs")
//	svc := service.NewGameService(sessions, configs)
//
//	info, err := svc.CreateSession(ctx, service.CreateSessionRequest{ConfigID: "maze"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := svc.Act(ctx, info.ID, "move", false)
package service
