// Package session manages hero world sessions and their persistence.
//
// Manager keeps sessions in memory under case-insensitive IDs. When built
// with NewManagerWithPersistence it saves every new session and loads
// unknown IDs from storage on demand.
//
// FilePersistence stores one JSON file per session in a directory. Both the
// starting world and the current world are written in the compact tensor
// text form, together with the action history of the episode.
package session
