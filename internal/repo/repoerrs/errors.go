package repoerrs

import "errors"

var (
	// ErrStorageIO covers every failure of the underlying store.
	ErrStorageIO = errors.New("storage io error")
	// ErrLocked is returned together with ErrStorageIO when another writer
	// held the lock past the busy timeout.
	ErrLocked = errors.New("storage locked")
)
