package tasks

// Bucket is a fixed priority category. MaxTasks is nil for an unbounded bucket.
type Bucket struct {
	ID          BucketID
	Title       string
	Description string
	MaxTasks    *int
}

// Capacity returns the bucket's limit and whether it has one.
func (b Bucket) Capacity() (int, bool) {
	if b.MaxTasks == nil {
		return 0, false
	}
	return *b.MaxTasks, true
}

// DefaultBuckets returns the board's buckets in display order.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{
			ID:          BucketTimeSensitive,
			Title:       "Time Sensitive",
			Description: "Urgent tasks that must be done today",
			MaxTasks:    Ptr(3),
		},
		{
			ID:          BucketImportant,
			Title:       "Important",
			Description: "High-impact tasks that move you forward",
			MaxTasks:    Ptr(5),
		},
		{
			ID:          BucketWhenAvailable,
			Title:       "When Available",
			Description: "Tasks to do when you have extra time",
		},
	}
}
