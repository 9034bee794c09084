package dot

import "errors"

var (
	// ErrSceneNotFound is returned when a scene name has not been registered.
	ErrSceneNotFound = errors.New("scene not found")
	// ErrUnknownKey is returned when a key name cannot be mapped to a key.
	ErrUnknownKey = errors.New("unknown key")
	// ErrEmptyScript is returned by LoadTestScript for scripts without steps.
	ErrEmptyScript = errors.New("no steps")
)
