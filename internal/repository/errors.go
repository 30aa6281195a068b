package repository

import "errors"

// Failure taxonomy of the core: lookup misses and the single registration
// conflict. Callers distinguish kinds with errors.Is.
var (
	ErrItemNotFound = errors.New("item not found")
	ErrChatNotFound = errors.New("chat not found")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
)
