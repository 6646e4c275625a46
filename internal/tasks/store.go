package tasks

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns every task on the board, the fixed buckets and the focus task.
type Store struct {
	buckets  []Bucket
	tasks    []*Task // insertion order
	oneThing *string

	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the task id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns an empty board with the default buckets and no focus.
func NewStore(opts ...Option) *Store {
	s := &Store{
		buckets: DefaultBuckets(),
		now:     time.Now,
		newID:   func() string { return "task-" + uuid.NewString() },
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buckets returns the buckets in display order.
func (s *Store) Buckets() []Bucket {
	return slices.Clone(s.buckets)
}

// Bucket looks up a bucket by id.
func (s *Store) Bucket(id BucketID) (Bucket, bool) {
	for _, b := range s.buckets {
		if b.ID == id {
			return b, true
		}
	}
	return Bucket{}, false
}

// Add creates a task in the given bucket.
func (s *Store) Add(in NewTask) (Task, error) {
	bucket, ok := s.Bucket(in.BucketID)
	if !ok {
		return Task{}, fmt.Errorf("%w: unknown bucket %q", ErrInvalidInput, in.BucketID)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := validateEstimate(in.TimeEstimate); err != nil {
		return Task{}, err
	}
	if err := s.checkCapacity(bucket); err != nil {
		s.logger.Warn("add rejected", zap.String("bucket", string(bucket.ID)), zap.Error(err))
		return Task{}, err
	}

	id := s.newID()
	if s.find(id) != nil {
		return Task{}, fmt.Errorf("%w: duplicate id %s", ErrInvalidInput, id)
	}

	now := s.now()
	t := Task{
		ID:           id,
		Title:        title,
		Description:  in.Description,
		Deadline:     in.Deadline,
		TimeEstimate: in.TimeEstimate,
		BucketID:     bucket.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}.clone()
	s.tasks = append(s.tasks, &t)

	s.logger.Debug("task added", zap.String("id", t.ID), zap.String("bucket", string(t.BucketID)))
	return t.clone(), nil
}

// Edit applies a partial update to a task. The bucket cannot be changed here.
func (s *Store) Edit(id string, upd TaskUpdate) error {
	t := s.find(id)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	// Validate everything before touching the record.
	var title string
	if upd.Title != nil {
		title = strings.TrimSpace(*upd.Title)
		if title == "" {
			return fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
	}
	if upd.TimeEstimateSet {
		if err := validateEstimate(upd.TimeEstimate); err != nil {
			return err
		}
	}

	patched := t.clone()
	if upd.Title != nil {
		patched.Title = title
	}
	if upd.DescriptionSet {
		patched.Description = upd.Description
	}
	if upd.DeadlineSet {
		patched.Deadline = upd.Deadline
	}
	if upd.TimeEstimateSet {
		patched.TimeEstimate = upd.TimeEstimate
	}
	patched.UpdatedAt = s.now()
	*t = patched.clone()

	s.logger.Debug("task edited", zap.String("id", id))
	return nil
}

// Delete removes a task and reports whether it existed. Deleting the focus
// task clears the focus. An unknown id is a no-op.
func (s *Store) Delete(id string) bool {
	idx := slices.IndexFunc(s.tasks, func(t *Task) bool { return t.ID == id })
	if idx < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	if s.oneThing != nil && *s.oneThing == id {
		s.oneThing = nil
		s.logger.Debug("focus cleared by delete", zap.String("id", id))
	}
	s.logger.Debug("task deleted", zap.String("id", id))
	return true
}

// Move relocates a task from one bucket to another. Moving within the same
// bucket is a no-op and leaves UpdatedAt alone.
func (s *Store) Move(id string, from, to BucketID) error {
	if from == to {
		return nil
	}
	target, ok := s.Bucket(to)
	if !ok {
		return fmt.Errorf("%w: unknown bucket %q", ErrInvalidInput, to)
	}
	t := s.find(id)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if t.BucketID != from {
		return fmt.Errorf("%w: %s is not in %s", ErrNotFound, id, from)
	}
	if err := s.checkCapacity(target); err != nil {
		s.logger.Warn("move rejected",
			zap.String("id", id),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Error(err))
		return err
	}

	t.BucketID = target.ID
	t.UpdatedAt = s.now()
	s.logger.Debug("task moved", zap.String("id", id), zap.String("from", string(from)), zap.String("to", string(to)))
	return nil
}

// SetOneThing makes the task the focus.
func (s *Store) SetOneThing(id string) error {
	if s.find(id) == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.oneThing = &id
	s.logger.Debug("focus set", zap.String("id", id))
	return nil
}

// ClearOneThing removes the focus.
func (s *Store) ClearOneThing() {
	s.oneThing = nil
}

// OneThingID returns the focus task id, if any.
func (s *Store) OneThingID() (string, bool) {
	if s.oneThing == nil {
		return "", false
	}
	return *s.oneThing, true
}

// OneThing returns the focus task, if any.
func (s *Store) OneThing() (Task, bool) {
	id, ok := s.OneThingID()
	if !ok {
		return Task{}, false
	}
	return s.Task(id)
}

// Task looks up a task by id.
func (s *Store) Task(id string) (Task, bool) {
	t := s.find(id)
	if t == nil {
		return Task{}, false
	}
	return t.clone(), true
}

// BucketOf returns the bucket a task currently sits in.
func (s *Store) BucketOf(id string) (BucketID, bool) {
	t := s.find(id)
	if t == nil {
		return "", false
	}
	return t.BucketID, true
}

// BucketTasks returns the tasks of a bucket in display order: tasks with a
// deadline first by ascending deadline, then the rest by creation time.
// The result is a fresh slice of copies.
func (s *Store) BucketTasks(id BucketID) []Task {
	var out []Task
	for _, t := range s.tasks {
		if t.BucketID == id {
			out = append(out, t.clone())
		}
	}
	slices.SortStableFunc(out, compareTasks)
	return out
}

// Count returns the number of tasks in a bucket.
func (s *Store) Count(id BucketID) int {
	n := 0
	for _, t := range s.tasks {
		if t.BucketID == id {
			n++
		}
	}
	return n
}

// CanAdd reports whether the bucket exists and has room for one more task.
func (s *Store) CanAdd(id BucketID) bool {
	b, ok := s.Bucket(id)
	if !ok {
		return false
	}
	return s.checkCapacity(b) == nil
}

// Len returns the total number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) find(id string) *Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) checkCapacity(b Bucket) error {
	limit, limited := b.Capacity()
	if limited && s.Count(b.ID) >= limit {
		return &CapacityError{Bucket: b.ID, Title: b.Title, Max: limit}
	}
	return nil
}

// insert adds a fully formed task, still subject to capacity. Used for seeding.
func (s *Store) insert(t Task) error {
	b, ok := s.Bucket(t.BucketID)
	if !ok {
		return fmt.Errorf("%w: unknown bucket %q", ErrInvalidInput, t.BucketID)
	}
	if s.find(t.ID) != nil {
		return fmt.Errorf("%w: duplicate id %s", ErrInvalidInput, t.ID)
	}
	if err := s.checkCapacity(b); err != nil {
		return err
	}
	c := t.clone()
	s.tasks = append(s.tasks, &c)
	return nil
}

func validateEstimate(minutes *int) error {
	if minutes != nil && *minutes <= 0 {
		return fmt.Errorf("%w: time estimate must be positive, got %d", ErrInvalidInput, *minutes)
	}
	return nil
}

func compareTasks(a, b Task) int {
	switch {
	case a.Deadline != nil && b.Deadline != nil:
		if c := a.Deadline.Compare(*b.Deadline); c != 0 {
			return c
		}
	case a.Deadline != nil:
		return -1
	case b.Deadline != nil:
		return 1
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}
