// Package tasks holds the in-memory ONE Thing board: three fixed priority
// buckets, the tasks filed into them and the single focus task.
//
// A Store is not safe for concurrent use. The board drives it from a single
// event loop and every mutation completes within one call.
package tasks

import "time"

// BucketID identifies one of the fixed buckets.
type BucketID string

const (
	BucketTimeSensitive BucketID = "time-sensitive"
	BucketImportant     BucketID = "important"
	BucketWhenAvailable BucketID = "when-available"
)

// Task is a single unit of work on the board.
// Optional fields are nil when unset.
type Task struct {
	ID           string
	Title        string
	Description  *string
	Deadline     *time.Time
	TimeEstimate *int // minutes
	BucketID     BucketID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasDeadline reports whether a deadline is set.
func (t Task) HasDeadline() bool {
	return t.Deadline != nil
}

// clone returns a copy that shares no pointers with t.
func (t Task) clone() Task {
	c := t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.TimeEstimate != nil {
		e := *t.TimeEstimate
		c.TimeEstimate = &e
	}
	return c
}

// NewTask is the input to Store.Add.
type NewTask struct {
	BucketID     BucketID
	Title        string
	Description  *string
	Deadline     *time.Time
	TimeEstimate *int
}

// TaskUpdate is a partial edit. Title is applied when non-nil. The optional
// fields are applied when their Set flag is true, so a nil value with the
// flag set clears the field.
type TaskUpdate struct {
	Title *string

	Description    *string
	DescriptionSet bool

	Deadline    *time.Time
	DeadlineSet bool

	TimeEstimate    *int
	TimeEstimateSet bool
}

// Empty reports whether the update changes nothing.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && !u.DescriptionSet && !u.DeadlineSet && !u.TimeEstimateSet
}

// Ptr returns a pointer to v. Handy for building optional fields.
func Ptr[T any](v T) *T {
	return &v
}
