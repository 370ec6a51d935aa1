// Package websocket pushes world updates to browser and tool clients.
//
// A Hub keeps the clients of every session and fans out messages on a single
// goroutine started with Run. Clients connect to /ws?session=<id> and only
// receive messages for that session. The server never reads client payloads;
// the read loop only services pings and close frames.
//
// Outgoing messages are JSON objects:
//
//	{"session_id": "ab12", "event": "state_update", "state": {...}}
//	{"session_id": "ab12", "event": "action", "data": {...}}
//
// Broadcasts never block the caller. When the hub queue is full the message
// is dropped and a warning is logged; a client whose own buffer is full is
// disconnected.
package websocket
