// Package interaction tracks an in-flight drag of a task and turns the drop
// into a move or a focus change on the board.
package interaction

import (
	"fmt"

	"onething/internal/tasks"

	"go.uber.org/zap"
)

// State is the coordinator's drag state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Board is the part of the task store the coordinator needs.
type Board interface {
	Task(id string) (tasks.Task, bool)
	Move(id string, from, to tasks.BucketID) error
	SetOneThing(id string) error
}

// MoveFunc performs a move. Store.Move satisfies it.
type MoveFunc func(id string, from, to tasks.BucketID) error

// Session is the task being dragged and the bucket it came from.
type Session struct {
	Task   tasks.Task
	Source tasks.BucketID
}

// Outcome describes how a drop ended.
type Outcome int

const (
	// OutcomeNoSession means nothing was being dragged.
	OutcomeNoSession Outcome = iota
	// OutcomeSelfDrop means the task was dropped back on its own bucket.
	OutcomeSelfDrop
	// OutcomeMoved means the task now lives in the target bucket.
	OutcomeMoved
	// OutcomeFocused means the task became the ONE Thing.
	OutcomeFocused
	// OutcomeRejected means the board refused the change; Err says why.
	OutcomeRejected
)

// DropResult reports a finished drop. Err is set only for OutcomeRejected.
type DropResult struct {
	Outcome Outcome
	Task    tasks.Task
	From    tasks.BucketID
	To      tasks.BucketID
	Err     error
}

// Coordinator holds at most one drag session. It is not safe for concurrent use.
type Coordinator struct {
	board   Board
	session *Session
	logger  *zap.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for rejected drops.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// New returns an idle coordinator over board.
func New(board Board, opts ...Option) *Coordinator {
	c := &Coordinator{board: board, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns Idle or Dragging.
func (c *Coordinator) State() State {
	if c.session == nil {
		return Idle
	}
	return Dragging
}

// IsDragging reports whether a drag is in flight.
func (c *Coordinator) IsDragging() bool {
	return c.session != nil
}

// Session returns the in-flight drag, if any.
func (c *Coordinator) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// StartDrag begins dragging task out of source. A drag already in flight is
// replaced.
func (c *Coordinator) StartDrag(task tasks.Task, source tasks.BucketID) {
	if c.session != nil {
		c.logger.Debug("replacing stale drag", zap.String("id", c.session.Task.ID))
	}
	c.session = &Session{Task: task, Source: source}
	c.logger.Debug("drag started", zap.String("id", task.ID), zap.String("source", string(source)))
}

// StartDragByID looks the task up and drags it out of its current bucket.
func (c *Coordinator) StartDragByID(id string) error {
	task, ok := c.board.Task(id)
	if !ok {
		return fmt.Errorf("start drag: %w: %s", tasks.ErrNotFound, id)
	}
	c.StartDrag(task, task.BucketID)
	return nil
}

// EndDrag cancels the drag without touching the board.
func (c *Coordinator) EndDrag() {
	if c.session != nil {
		c.logger.Debug("drag cancelled", zap.String("id", c.session.Task.ID))
	}
	c.session = nil
}

// Drop moves the dragged task into target using the board.
func (c *Coordinator) Drop(target tasks.BucketID) DropResult {
	return c.DropOn(target, c.board.Move)
}

// DropOn moves the dragged task into target using move. A rejected move is
// logged and reported in the result. The coordinator is always idle afterwards.
func (c *Coordinator) DropOn(target tasks.BucketID, move MoveFunc) DropResult {
	if c.session == nil {
		return DropResult{Outcome: OutcomeNoSession, To: target}
	}
	s := *c.session
	c.session = nil

	res := DropResult{Task: s.Task, From: s.Source, To: target}
	if s.Source == target {
		res.Outcome = OutcomeSelfDrop
		return res
	}

	if err := move(s.Task.ID, s.Source, target); err != nil {
		c.logger.Warn("move failed",
			zap.String("id", s.Task.ID),
			zap.String("from", string(s.Source)),
			zap.String("to", string(target)),
			zap.Error(err))
		res.Outcome = OutcomeRejected
		res.Err = err
		return res
	}

	c.logger.Debug("task dropped", zap.String("id", s.Task.ID), zap.String("to", string(target)))
	res.Outcome = OutcomeMoved
	return res
}

// DropOnFocusTarget makes the dragged task the ONE Thing and ends the drag.
func (c *Coordinator) DropOnFocusTarget() DropResult {
	if c.session == nil {
		return DropResult{Outcome: OutcomeNoSession}
	}
	s := *c.session
	c.session = nil

	res := DropResult{Task: s.Task, From: s.Source, To: s.Source}
	if err := c.board.SetOneThing(s.Task.ID); err != nil {
		c.logger.Warn("focus drop failed", zap.String("id", s.Task.ID), zap.Error(err))
		res.Outcome = OutcomeRejected
		res.Err = err
		return res
	}
	res.Outcome = OutcomeFocused
	return res
}
