// Package flock takes an advisory exclusive lock on an open database file.
package flock

import (
	"errors"
)

// ErrLocked is returned when another open file description holds the lock
var ErrLocked = errors.New("file is locked by another process")
