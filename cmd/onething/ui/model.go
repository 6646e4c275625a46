package ui

import (
	"errors"
	"time"

	"onething/internal/config"
	"onething/internal/interaction"
	"onething/internal/tasks"
	"onething/internal/translator"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// ConfigReloadedMsg carries a config that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Options configures the board.
type Options struct {
	Store      *tasks.Store
	Translator *translator.Translator
	Theme      Theme
	WordWrap   int
	ShowHelp   bool
	Now        func() time.Time
	Logger     *zap.Logger
	DragLogger *zap.Logger
}

// Model is the bubbletea board.
type Model struct {
	store *tasks.Store
	drag  *interaction.Coordinator
	tr    *translator.Translator

	styles   Styles
	keys     keyMap
	help     help.Model
	renderer *glamour.TermRenderer
	wordWrap int

	now    func() time.Time
	logger *zap.Logger

	bucketIdx int
	cursor    int
	form      *taskForm

	status     string
	statusKind statusKind

	width  int
	height int
}

// New builds the board over an existing store.
func New(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DragLogger == nil {
		opts.DragLogger = opts.Logger
	}
	if opts.WordWrap <= 0 {
		opts.WordWrap = 60
	}

	h := help.New()
	h.ShowAll = opts.ShowHelp

	m := Model{
		store:    opts.Store,
		drag:     interaction.New(opts.Store, interaction.WithLogger(opts.DragLogger)),
		tr:       opts.Translator,
		styles:   NewStyles(opts.Theme),
		keys:     defaultKeyMap(),
		help:     h,
		wordWrap: opts.WordWrap,
		now:      opts.Now,
		logger:   opts.Logger,
		width:    100,
	}
	m.renderer = newRenderer(opts.Theme, opts.WordWrap)
	return m
}

func newRenderer(theme Theme, wrap int) *glamour.TermRenderer {
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config), nil

	case tea.KeyMsg:
		switch {
		case m.form != nil:
			return m.updateForm(msg)
		case m.drag.IsDragging():
			return m.updateDragging(msg)
		default:
			return m.updateBoard(msg)
		}
	}

	if m.form != nil {
		f, cmd := m.form.update(msg)
		m.form = &f
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.currentTasks())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		m.selectBucket(m.bucketIdx - 1)

	case key.Matches(msg, m.keys.Right):
		m.selectBucket(m.bucketIdx + 1)

	case key.Matches(msg, m.keys.Add):
		b := m.currentBucket()
		if !m.store.CanAdd(b.ID) {
			limit, _ := b.Capacity()
			m.setError(&tasks.CapacityError{Bucket: b.ID, Title: b.Title, Max: limit})
			return m, nil
		}
		f := newAddForm(b.ID, m.placeholders())
		m.form = &f
		m.clearStatus()

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		f := newEditForm(task, m.placeholders())
		m.form = &f
		m.clearStatus()

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.Delete(task.ID)
		m.clampCursor()
		m.setInfo(m.tr.Tf("taskDeleted", map[string]any{"Title": task.Title}))

	case key.Matches(msg, m.keys.Star):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.toggleFocus(task)

	case key.Matches(msg, m.keys.PickUp):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.drag.StartDrag(task, task.BucketID)
		m.setInfo(m.tr.Tf("dragging", map[string]any{"Title": task.Title}))
	}
	return m, nil
}

func (m Model) updateDragging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.drag.EndDrag()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.selectBucket(m.bucketIdx - 1)

	case key.Matches(msg, m.keys.Right):
		m.selectBucket(m.bucketIdx + 1)

	case key.Matches(msg, m.keys.Drop):
		m.handleDrop(m.drag.Drop(m.currentBucket().ID))

	case key.Matches(msg, m.keys.DropFocus):
		m.handleDrop(m.drag.DropOnFocusTarget())

	case key.Matches(msg, m.keys.Cancel):
		m.drag.EndDrag()
		m.setInfo(m.tr.T("dragCancelled"))
	}
	return m, nil
}

func (m *Model) handleDrop(res interaction.DropResult) {
	switch res.Outcome {
	case interaction.OutcomeMoved:
		b, _ := m.store.Bucket(res.To)
		m.setSuccess(m.tr.Tf("taskMoved", map[string]any{"Title": res.Task.Title, "Bucket": m.tr.BucketTitle(b)}))
		m.selectTask(res.Task.ID)
	case interaction.OutcomeFocused:
		m.setSuccess(m.tr.Tf("focusSet", map[string]any{"Title": res.Task.Title}))
	case interaction.OutcomeRejected:
		m.setError(res.Err)
		m.selectTask(res.Task.ID)
	default:
		m.clearStatus()
		m.selectTask(res.Task.ID)
	}
}

func (m *Model) toggleFocus(task tasks.Task) {
	if id, ok := m.store.OneThingID(); ok && id == task.ID {
		m.store.ClearOneThing()
		m.setInfo(m.tr.T("focusCleared"))
		return
	}
	if err := m.store.SetOneThing(task.ID); err != nil {
		m.setError(err)
		return
	}
	m.setSuccess(m.tr.Tf("focusSet", map[string]any{"Title": task.Title}))
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := *m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil

	case "enter":
		return m.submitForm(f)

	case "tab", "down":
		cmd := f.setFocus(f.focus + 1)
		m.form = &f
		return m, cmd

	case "shift+tab", "up":
		cmd := f.setFocus(f.focus - 1)
		m.form = &f
		return m, cmd
	}

	f, cmd := f.update(msg)
	m.form = &f
	return m, cmd
}

func (m Model) submitForm(f taskForm) (tea.Model, tea.Cmd) {
	v, err := f.parse(m.now().Location())
	if err != nil {
		switch {
		case errors.Is(err, errBadDeadline):
			f.err = m.tr.T("invalidDeadline")
		case errors.Is(err, errBadEstimate):
			f.err = m.tr.T("invalidEstimate")
		default:
			f.err = err.Error()
		}
		m.form = &f
		return m, nil
	}

	if f.editing {
		upd := f.taskUpdate(v)
		if upd.Empty() {
			m.form = nil
			m.selectTask(f.taskID)
			return m, nil
		}
		if err := m.store.Edit(f.taskID, upd); err != nil {
			f.err = m.tr.Error(err)
			m.form = &f
			return m, nil
		}
		task, _ := m.store.Task(f.taskID)
		m.form = nil
		m.setSuccess(m.tr.Tf("taskUpdated", map[string]any{"Title": task.Title}))
		m.selectTask(task.ID)
		return m, nil
	}

	task, err := m.store.Add(v.newTask(f.bucket))
	if err != nil {
		f.err = m.tr.Error(err)
		m.form = &f
		return m, nil
	}
	m.form = nil
	m.setSuccess(m.tr.Tf("taskAdded", map[string]any{"Title": task.Title}))
	m.selectTask(task.ID)
	return m, nil
}

func (m Model) applyConfig(cfg *config.Config) Model {
	if cfg == nil {
		return m
	}
	theme := ThemeByName(cfg.UI.Theme)
	m.styles = NewStyles(theme)
	if cfg.UI.WordWrap > 0 {
		m.wordWrap = cfg.UI.WordWrap
	}
	m.renderer = newRenderer(theme, m.wordWrap)

	if cfg.UI.Language != m.tr.Lang() {
		tr, err := translator.New(cfg.UI.Language, m.logger)
		if err != nil {
			m.logger.Warn("keeping previous language", zap.Error(err))
		} else {
			m.tr = tr
		}
	}
	m.logger.Debug("config applied", zap.String("theme", theme.Name), zap.String("lang", m.tr.Lang()))
	return m
}

func (m Model) placeholders() [fieldCount]string {
	return [fieldCount]string{
		m.tr.T("fieldTitle"),
		m.tr.T("fieldDescription"),
		m.tr.T("fieldDeadline"),
		m.tr.T("fieldEstimate"),
	}
}

func (m Model) currentBucket() tasks.Bucket {
	return m.store.Buckets()[m.bucketIdx]
}

func (m Model) currentTasks() []tasks.Task {
	return m.store.BucketTasks(m.currentBucket().ID)
}

func (m Model) selected() (tasks.Task, bool) {
	list := m.currentTasks()
	if m.cursor < 0 || m.cursor >= len(list) {
		return tasks.Task{}, false
	}
	return list[m.cursor], true
}

func (m *Model) selectBucket(idx int) {
	n := len(m.store.Buckets())
	m.bucketIdx = (idx%n + n) % n
	m.clampCursor()
}

// selectTask points the cursor at the task, wherever it now lives.
func (m *Model) selectTask(id string) {
	bucket, ok := m.store.BucketOf(id)
	if !ok {
		m.clampCursor()
		return
	}
	for i, b := range m.store.Buckets() {
		if b.ID == bucket {
			m.bucketIdx = i
		}
	}
	for i, t := range m.currentTasks() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.currentTasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setInfo(msg string) {
	m.status = msg
	m.statusKind = statusInfo
}

func (m *Model) setSuccess(msg string) {
	m.status = msg
	m.statusKind = statusSuccess
}

func (m *Model) setError(err error) {
	m.status = m.tr.Error(err)
	m.statusKind = statusError
	m.logger.Debug("action refused", zap.Error(err))
}

func (m *Model) clearStatus() {
	m.status = ""
}
