package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a slot holds no value.
var ErrNotFound = errors.New("not found")

// ErrCorrupt is returned when a stored value cannot be decoded.
var ErrCorrupt = errors.New("corrupt stored value")

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
