// Package service holds the application's use cases. Handlers pass the
// caller's Session explicitly; services never reach for request state.
package service

// Session is the per-client slot holding the signed-in username.
type Session interface {
	Username() (string, bool)
	SetUsername(username string)
	Clear()
}
