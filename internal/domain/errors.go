package domain

import "errors"

// ErrNotFound is returned by collaborators when the requested entity
// does not exist (ticket, technical vision, component, record).
var ErrNotFound = errors.New("not found")
