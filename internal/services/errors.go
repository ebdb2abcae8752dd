package services

import "errors"

// ErrNotFound is returned when a short code has no record in the store.
var ErrNotFound = errors.New("short code not found")
