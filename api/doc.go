// Package api exposes the hero world service over HTTP.
//
// Routes (all JSON):
//
//	GET    /api/health
//	POST   /api/sessions                         {config_id?, seed?, tensor? | world?}
//	GET    /api/sessions                         ?sort=created|accessed&order=asc|desc&limit=N
//	GET    /api/sessions/compare                 ?sessionIds=a,b | ?configId=maze
//	GET    /api/sessions/{id}
//	DELETE /api/sessions/{id}
//	GET    /api/sessions/{id}/state
//	GET    /api/sessions/{id}/tensor             ?format=compact
//	POST   /api/sessions/{id}/actions            {action, reset?}
//	POST   /api/sessions/{id}/program            {actions, reset?, stop_on_failure?}
//	GET    /api/sessions/{id}/conditions/{name}
//	GET    /api/sessions/{id}/cells/{row}/{col}
//	POST   /api/sessions/{id}/reset
//	GET    /api/sessions/{id}/history            ?page=N&limit=N&order=asc|desc
//	GET    /api/configs
//	POST   /api/configs
//	GET    /api/configs/{name}
//	GET    /ws?session={id}
//
// Action and condition names are accepted in camelCase or snake_case. A move
// into a wall or a pick on an empty cell is not an error: the response is 200
// with "success": false.
//
// Errors are returned as {"error": "..."} with 404 for unknown sessions and
// presets, 400 for invalid input (malformed tensors, unknown names, programs
// over the step limit, invalid presets) and 500 otherwise.
package api
