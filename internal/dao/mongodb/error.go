package mongodb

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrStaleRecord means an optimistic-lock update lost the race: the
	// record's updated_at no longer matches the snapshot the caller read.
	ErrStaleRecord = errors.New("monthly record snapshot is stale")
	ErrDuplicateEmail = errors.New("email already registered")
)
