package location

import "errors"

// Failure classes returned by the engine. Callers distinguish them with
// errors.Is; none of them means a partial write happened.
var (
	// ErrItemNotFound means the item being moved or inspected does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrContainerNotFound means the requested container does not exist.
	ErrContainerNotFound = errors.New("container not found")

	// ErrSelfReference means an item was asked to contain itself.
	ErrSelfReference = errors.New("item cannot contain itself")

	// ErrCycleDetected means the move would make the containment graph cyclic.
	ErrCycleDetected = errors.New("move would create a containment cycle")

	// ErrConflict means a concurrent modification won the race. The caller
	// may retry; the engine never retries on its own.
	ErrConflict = errors.New("item was modified concurrently")
)
