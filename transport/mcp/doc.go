// Package mcp exposes the hero grid world to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON answer is rendered as text for the agent. API error
// messages are passed through unchanged as tool errors.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - world_state, describe_cell, check_condition
//   - act, run_program, reset_world, action_history
//   - list_configs, world_instructions
//
// Transport Modes:
//
//	// Stdio mode
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	router.Handle("/mcp", client.Handler())
package mcp
