package repositories

import "errors"

// ErrNotFound is wrapped by every repository when a lookup matches no record.
var ErrNotFound = errors.New("record not found")
