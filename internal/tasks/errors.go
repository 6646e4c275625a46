package tasks

import (
	"errors"
	"fmt"
)

// Task store errors.
var (
	// ErrInvalidInput is returned for an empty title, an unknown bucket id or
	// a non-positive time estimate.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a task id does not resolve.
	ErrNotFound = errors.New("task not found")

	// ErrCapacityExceeded is returned when a bucket is already at its limit.
	ErrCapacityExceeded = errors.New("bucket capacity exceeded")
)

// CapacityError reports a rejected add or move into a full bucket.
// It matches ErrCapacityExceeded under errors.Is.
type CapacityError struct {
	Bucket BucketID
	Title  string
	Max    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot add more than %d tasks to %s", e.Max, e.Title)
}

// Is reports whether target is ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
