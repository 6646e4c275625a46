package interaction

import (
	"errors"
	"fmt"
	"testing"

	"onething/internal/tasks"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockBoard struct {
	mock.Mock
}

func (m *mockBoard) Task(id string) (tasks.Task, bool) {
	args := m.Called(id)
	return args.Get(0).(tasks.Task), args.Bool(1)
}

func (m *mockBoard) Move(id string, from, to tasks.BucketID) error {
	return m.Called(id, from, to).Error(0)
}

func (m *mockBoard) SetOneThing(id string) error {
	return m.Called(id).Error(0)
}

func addTask(t *testing.T, s *tasks.Store, bucket tasks.BucketID, title string) tasks.Task {
	t.Helper()
	task, err := s.Add(tasks.NewTask{BucketID: bucket, Title: title})
	require.NoError(t, err)
	return task
}

func boardSnapshot(s *tasks.Store) map[tasks.BucketID][]tasks.Task {
	out := make(map[tasks.BucketID][]tasks.Task)
	for _, b := range s.Buckets() {
		out[b.ID] = s.BucketTasks(b.ID)
	}
	return out
}

func TestCoordinator_StartsIdle(t *testing.T) {
	c := New(tasks.NewStore())
	assert.Equal(t, Idle, c.State())
	assert.False(t, c.IsDragging())
	_, ok := c.Session()
	assert.False(t, ok)
}

func TestCoordinator_DropMovesTask(t *testing.T) {
	store := tasks.NewStore()
	task := addTask(t, store, tasks.BucketWhenAvailable, "Move me")
	c := New(store)

	c.StartDrag(task, tasks.BucketWhenAvailable)
	assert.Equal(t, Dragging, c.State())
	sess, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, task.ID, sess.Task.ID)
	assert.Equal(t, tasks.BucketWhenAvailable, sess.Source)

	res := c.Drop(tasks.BucketImportant)

	assert.Equal(t, OutcomeMoved, res.Outcome)
	assert.NoError(t, res.Err)
	assert.Equal(t, Idle, c.State())
	bucket, _ := store.BucketOf(task.ID)
	assert.Equal(t, tasks.BucketImportant, bucket)
}

func TestCoordinator_SelfDropLeavesStoreUnchanged(t *testing.T) {
	store := tasks.NewStore()
	task := addTask(t, store, tasks.BucketImportant, "Stay put")
	addTask(t, store, tasks.BucketWhenAvailable, "Bystander")
	before := boardSnapshot(store)
	c := New(store)

	c.StartDrag(task, tasks.BucketImportant)
	res := c.Drop(tasks.BucketImportant)

	assert.Equal(t, OutcomeSelfDrop, res.Outcome)
	assert.Equal(t, Idle, c.State())
	if diff := cmp.Diff(before, boardSnapshot(store)); diff != "" {
		t.Errorf("self drop changed the store (-before +after):\n%s", diff)
	}
}

func TestCoordinator_SelfDropSkipsMove(t *testing.T) {
	board := new(mockBoard)
	c := New(board)

	c.StartDrag(tasks.Task{ID: "task-1", BucketID: tasks.BucketImportant}, tasks.BucketImportant)
	res := c.Drop(tasks.BucketImportant)

	assert.Equal(t, OutcomeSelfDrop, res.Outcome)
	board.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything)
}

func TestCoordinator_RejectedDropIsSwallowed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := tasks.NewStore()
	for i := 0; i < 3; i++ {
		addTask(t, store, tasks.BucketTimeSensitive, fmt.Sprintf("urgent %d", i))
	}
	task := addTask(t, store, tasks.BucketImportant, "Wants in")
	before := boardSnapshot(store)
	c := New(store, WithLogger(zap.New(core)))

	c.StartDrag(task, tasks.BucketImportant)
	var res DropResult
	assert.NotPanics(t, func() { res = c.Drop(tasks.BucketTimeSensitive) })

	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.ErrorIs(t, res.Err, tasks.ErrCapacityExceeded)
	assert.Equal(t, Idle, c.State())
	if diff := cmp.Diff(before, boardSnapshot(store)); diff != "" {
		t.Errorf("rejected drop changed the store (-before +after):\n%s", diff)
	}

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "move failed", entry.Message)
	assert.Equal(t, task.ID, entry.ContextMap()["id"])
}

func TestCoordinator_DropOnUsesGivenMove(t *testing.T) {
	c := New(new(mockBoard))
	var calls []string
	move := func(id string, from, to tasks.BucketID) error {
		calls = append(calls, fmt.Sprintf("%s:%s->%s", id, from, to))
		return errors.New("boom")
	}

	c.StartDrag(tasks.Task{ID: "task-9"}, tasks.BucketWhenAvailable)
	res := c.DropOn(tasks.BucketImportant, move)

	assert.Equal(t, []string{"task-9:when-available->important"}, calls)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.EqualError(t, res.Err, "boom")
	assert.False(t, c.IsDragging())
}

func TestCoordinator_DropWithoutSession(t *testing.T) {
	board := new(mockBoard)
	c := New(board)

	res := c.Drop(tasks.BucketImportant)
	assert.Equal(t, OutcomeNoSession, res.Outcome)

	res = c.DropOnFocusTarget()
	assert.Equal(t, OutcomeNoSession, res.Outcome)

	board.AssertExpectations(t)
}

func TestCoordinator_EndDrag(t *testing.T) {
	board := new(mockBoard)
	c := New(board)

	c.StartDrag(tasks.Task{ID: "task-1"}, tasks.BucketImportant)
	c.EndDrag()

	assert.Equal(t, Idle, c.State())
	c.EndDrag()
	assert.Equal(t, Idle, c.State())
	board.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything)
}

func TestCoordinator_StartDragReplacesSession(t *testing.T) {
	c := New(new(mockBoard))
	c.StartDrag(tasks.Task{ID: "old"}, tasks.BucketImportant)
	c.StartDrag(tasks.Task{ID: "new"}, tasks.BucketWhenAvailable)

	sess, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, "new", sess.Task.ID)
	assert.Equal(t, tasks.BucketWhenAvailable, sess.Source)
}

func TestCoordinator_StartDragByID(t *testing.T) {
	store := tasks.NewStore()
	task := addTask(t, store, tasks.BucketImportant, "Find me")
	c := New(store)

	require.NoError(t, c.StartDragByID(task.ID))
	sess, _ := c.Session()
	assert.Equal(t, tasks.BucketImportant, sess.Source)

	c.EndDrag()
	err := c.StartDragByID("task-404")
	assert.ErrorIs(t, err, tasks.ErrNotFound)
	assert.Equal(t, Idle, c.State())
}

func TestCoordinator_DropOnFocusTarget(t *testing.T) {
	store := tasks.NewStore()
	task := addTask(t, store, tasks.BucketWhenAvailable, "Focus on me")
	c := New(store)

	c.StartDrag(task, tasks.BucketWhenAvailable)
	res := c.DropOnFocusTarget()

	assert.Equal(t, OutcomeFocused, res.Outcome)
	assert.Equal(t, Idle, c.State())
	id, ok := store.OneThingID()
	require.True(t, ok)
	assert.Equal(t, task.ID, id)
	bucket, _ := store.BucketOf(task.ID)
	assert.Equal(t, tasks.BucketWhenAvailable, bucket)
}

func TestCoordinator_FocusDropOfDeletedTask(t *testing.T) {
	store := tasks.NewStore()
	task := addTask(t, store, tasks.BucketImportant, "Gone soon")
	c := New(store)

	c.StartDrag(task, tasks.BucketImportant)
	store.Delete(task.ID)
	res := c.DropOnFocusTarget()

	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.ErrorIs(t, res.Err, tasks.ErrNotFound)
	assert.Equal(t, Idle, c.State())
	_, focused := store.OneThingID()
	assert.False(t, focused)
}

func TestCoordinator_FocusDropCallsBoard(t *testing.T) {
	board := new(mockBoard)
	board.On("SetOneThing", "task-3").Return(nil).Once()
	c := New(board)

	c.StartDrag(tasks.Task{ID: "task-3"}, tasks.BucketImportant)
	res := c.DropOnFocusTarget()

	assert.Equal(t, OutcomeFocused, res.Outcome)
	board.AssertExpectations(t)
	board.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
}
