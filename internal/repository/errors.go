package repository

import "errors"

// ErrNotFound indicates an entity was not located. For owner-scoped lookups
// this also covers records owned by someone else; the two cases are
// deliberately indistinguishable.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict indicates a uniqueness constraint was violated.
var ErrConflict = errors.New("repository: conflict")
