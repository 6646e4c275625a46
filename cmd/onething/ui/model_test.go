package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"onething/internal/config"
	"onething/internal/interaction"
	"onething/internal/tasks"
	"onething/internal/translator"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, seed func(*tasks.Store)) (Model, *tasks.Store) {
	t.Helper()
	n := 0
	store := tasks.NewStore(
		tasks.WithClock(func() time.Time { n++; return fixedNow.Add(time.Duration(n) * time.Second) }),
	)
	if seed != nil {
		seed(store)
	}
	tr, err := translator.New("en", zap.NewNop())
	require.NoError(t, err)

	m := New(Options{
		Store:      store,
		Translator: tr,
		Theme:      LightTheme(),
		Now:        func() time.Time { return fixedNow },
	})
	return m, store
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func add(t *testing.T, s *tasks.Store, bucket tasks.BucketID, title string) tasks.Task {
	t.Helper()
	task, err := s.Add(tasks.NewTask{BucketID: bucket, Title: title})
	require.NoError(t, err)
	return task
}

func fill(t *testing.T, s *tasks.Store, bucket tasks.BucketID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		add(t, s, bucket, fmt.Sprintf("filler %d", i))
	}
}

func TestModel_AddTask(t *testing.T) {
	m, store := newTestModel(t, nil)

	m = press(m, "right", "right", "a")
	require.NotNil(t, m.form)
	assert.Equal(t, tasks.BucketWhenAvailable, m.form.bucket)

	m = press(m, "Buy milk", "enter")

	assert.Nil(t, m.form)
	list := store.BucketTasks(tasks.BucketWhenAvailable)
	require.Len(t, list, 1)
	assert.Equal(t, "Buy milk", list[0].Title)
	assert.Nil(t, list[0].Deadline)
	assert.Equal(t, `Added "Buy milk"`, m.status)
	assert.Contains(t, m.View(), "Buy milk")
}

func TestModel_AddTaskWithAllFields(t *testing.T) {
	m, store := newTestModel(t, nil)

	m = press(m, "right", "a",
		"Pay rent", "tab",
		"Landlord wants it by noon", "tab",
		"2025-03-11", "tab",
		"15", "enter")

	require.Nil(t, m.form)
	list := store.BucketTasks(tasks.BucketImportant)
	require.Len(t, list, 1)
	task := list[0]
	assert.Equal(t, "Pay rent", task.Title)
	require.NotNil(t, task.Description)
	assert.Equal(t, "Landlord wants it by noon", *task.Description)
	require.NotNil(t, task.Deadline)
	assert.Equal(t, "2025-03-11", task.Deadline.Format(DeadlineLayout))
	require.NotNil(t, task.TimeEstimate)
	assert.Equal(t, 15, *task.TimeEstimate)

	view := m.View()
	assert.Contains(t, view, "Tomorrow")
	assert.Contains(t, view, "15m")
}

func TestModel_FormParseErrorsKeepFormOpen(t *testing.T) {
	m, store := newTestModel(t, nil)

	m = press(m, "a", "Call mum", "tab", "tab", "next week", "enter")
	require.NotNil(t, m.form)
	assert.Equal(t, "Deadline must look like 2025-03-14", m.form.err)

	m = press(m, "esc")
	m = press(m, "a", "Call mum", "shift+tab", "ten", "enter")
	require.NotNil(t, m.form)
	assert.Equal(t, "Estimate must be a whole number of minutes", m.form.err)
	assert.Contains(t, m.View(), "Estimate must be a whole number of minutes")

	assert.Equal(t, 0, store.Len())
}

func TestModel_EmptyTitleIsRejectedByStore(t *testing.T) {
	m, store := newTestModel(t, nil)

	m = press(m, "a", "   ", "enter")

	require.NotNil(t, m.form)
	assert.Equal(t, "Please check the task details", m.form.err)
	assert.Equal(t, 0, store.Len())
}

func TestModel_EscCancelsForm(t *testing.T) {
	m, store := newTestModel(t, nil)
	m = press(m, "a", "Never mind", "esc")
	assert.Nil(t, m.form)
	assert.Equal(t, 0, store.Len())
}

func TestModel_AddRefusedWhenBucketFull(t *testing.T) {
	m, _ := newTestModel(t, func(s *tasks.Store) { fill(t, s, tasks.BucketTimeSensitive, 3) })

	m = press(m, "a")

	assert.Nil(t, m.form)
	assert.Equal(t, statusError, m.statusKind)
	assert.Equal(t, "Cannot add more than 3 tasks to Time Sensitive", m.status)
	assert.Contains(t, m.View(), "3/3")
}

func TestModel_EditTask(t *testing.T) {
	var task tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		var err error
		task, err = s.Add(tasks.NewTask{BucketID: tasks.BucketTimeSensitive, Title: "Draft", Description: tasks.Ptr("outline")})
		require.NoError(t, err)
	})

	m = press(m, "e")
	require.NotNil(t, m.form)
	assert.True(t, m.form.editing)
	assert.Equal(t, "Draft", m.form.value(fieldTitle))

	m = press(m, "tab", " and intro", "enter")

	require.Nil(t, m.form)
	got, _ := store.Task(task.ID)
	assert.Equal(t, "outline and intro", *got.Description)
	assert.Equal(t, `Updated "Draft"`, m.status)
}

func TestModel_TitleEditKeepsDeadlineAndOrder(t *testing.T) {
	due := func(hour, minute int) *time.Time {
		d := time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
		return &d
	}
	var report tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		var err error
		_, err = s.Add(tasks.NewTask{BucketID: tasks.BucketTimeSensitive, Title: "Standup", Deadline: due(9, 30)})
		require.NoError(t, err)
		report, err = s.Add(tasks.NewTask{BucketID: tasks.BucketTimeSensitive, Title: "Report", Deadline: due(14, 0)})
		require.NoError(t, err)
		_, err = s.Add(tasks.NewTask{BucketID: tasks.BucketTimeSensitive, Title: "Pharmacy", Deadline: due(18, 0)})
		require.NoError(t, err)
	})

	m = press(m, "down")
	sel, _ := m.selected()
	require.Equal(t, report.ID, sel.ID)

	m = press(m, "e", " draft", "enter")
	require.Nil(t, m.form)

	got, _ := store.Task(report.ID)
	assert.Equal(t, "Report draft", got.Title)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, *report.Deadline, *got.Deadline)

	var titles []string
	for _, task := range store.BucketTasks(tasks.BucketTimeSensitive) {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"Standup", "Report draft", "Pharmacy"}, titles)
}

func TestModel_UntouchedEditLeavesTask(t *testing.T) {
	var task tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		task = add(t, s, tasks.BucketImportant, "Same")
	})

	m = press(m, "right", "e", "enter")

	assert.Nil(t, m.form)
	got, _ := store.Task(task.ID)
	assert.Equal(t, task, got)
	assert.Empty(t, m.status)
}

func TestModel_DragAndDrop(t *testing.T) {
	var task tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		task = add(t, s, tasks.BucketWhenAvailable, "Read paper")
	})

	m = press(m, "right", "right", "m")
	require.Equal(t, interaction.Dragging, m.drag.State())
	assert.Contains(t, m.status, "Read paper")

	m = press(m, "left", "enter")

	assert.Equal(t, interaction.Idle, m.drag.State())
	bucket, _ := store.BucketOf(task.ID)
	assert.Equal(t, tasks.BucketImportant, bucket)
	assert.Equal(t, `Moved "Read paper" to Important`, m.status)
	assert.Equal(t, statusSuccess, m.statusKind)
	assert.Equal(t, 1, m.bucketIdx)
}

func TestModel_SelfDrop(t *testing.T) {
	var task tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		task = add(t, s, tasks.BucketImportant, "Stay")
	})
	before, _ := store.Task(task.ID)

	m = press(m, "right", "m", "enter")

	assert.Equal(t, interaction.Idle, m.drag.State())
	after, _ := store.Task(task.ID)
	assert.Equal(t, before, after)
	assert.Empty(t, m.status)
}

func TestModel_RejectedDropIsNonFatal(t *testing.T) {
	var task tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		fill(t, s, tasks.BucketTimeSensitive, 3)
		task = add(t, s, tasks.BucketImportant, "Escalate")
	})

	m = press(m, "right", "m", "left", "enter")

	assert.Equal(t, interaction.Idle, m.drag.State())
	bucket, _ := store.BucketOf(task.ID)
	assert.Equal(t, tasks.BucketImportant, bucket)
	assert.Equal(t, statusError, m.statusKind)
	assert.Equal(t, "Cannot add more than 3 tasks to Time Sensitive", m.status)
	assert.Equal(t, 1, m.bucketIdx, "cursor follows the task back to its bucket")
}

func TestModel_DropOnFocus(t *testing.T) {
	var task tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		task = add(t, s, tasks.BucketTimeSensitive, "Ship it")
	})

	m = press(m, "m")
	assert.Contains(t, m.View(), "Press f to make this your ONE Thing")
	m = press(m, "f")

	assert.Equal(t, interaction.Idle, m.drag.State())
	id, ok := store.OneThingID()
	require.True(t, ok)
	assert.Equal(t, task.ID, id)
	assert.Equal(t, `"Ship it" is your ONE Thing`, m.status)
}

func TestModel_EscCancelsDrag(t *testing.T) {
	var task tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		task = add(t, s, tasks.BucketTimeSensitive, "Maybe later")
	})

	m = press(m, "m", "right", "esc")

	assert.Equal(t, interaction.Idle, m.drag.State())
	bucket, _ := store.BucketOf(task.ID)
	assert.Equal(t, tasks.BucketTimeSensitive, bucket)
	assert.Equal(t, "Move cancelled", m.status)
}

func TestModel_StarTogglesFocus(t *testing.T) {
	var task tasks.Task
	m, store := newTestModel(t, func(s *tasks.Store) {
		task = add(t, s, tasks.BucketTimeSensitive, "Focus")
	})

	m = press(m, "s")
	id, ok := store.OneThingID()
	require.True(t, ok)
	assert.Equal(t, task.ID, id)
	assert.Contains(t, m.View(), "★")

	m = press(m, "space")
	_, ok = store.OneThingID()
	assert.False(t, ok)
	assert.Equal(t, "ONE Thing cleared", m.status)
}

func TestModel_DeleteFocusClearsPanel(t *testing.T) {
	m, store := newTestModel(t, func(s *tasks.Store) {
		task := add(t, s, tasks.BucketTimeSensitive, "Doomed")
		require.NoError(t, s.SetOneThing(task.ID))
	})
	require.NotContains(t, m.View(), "Select your ONE thing for today")

	m = press(m, "d")

	assert.Equal(t, 0, store.Len())
	_, ok := store.OneThingID()
	assert.False(t, ok)
	assert.Equal(t, `Deleted "Doomed"`, m.status)
	assert.Contains(t, m.View(), "Select your ONE thing for today")
}

func TestModel_CursorNavigation(t *testing.T) {
	m, _ := newTestModel(t, func(s *tasks.Store) {
		add(t, s, tasks.BucketTimeSensitive, "one")
		add(t, s, tasks.BucketTimeSensitive, "two")
	})

	m = press(m, "down", "down", "down")
	assert.Equal(t, 1, m.cursor)
	sel, _ := m.selected()
	assert.Equal(t, "two", sel.Title)

	m = press(m, "up", "up")
	assert.Equal(t, 0, m.cursor)

	m = press(m, "left")
	assert.Equal(t, 2, m.bucketIdx, "bucket selection wraps")
	assert.Equal(t, 0, m.cursor)
}

func TestModel_KeysOnEmptyBucketAreHarmless(t *testing.T) {
	m, store := newTestModel(t, nil)
	m = press(m, "e", "d", "s", "m")
	assert.Nil(t, m.form)
	assert.False(t, m.drag.IsDragging())
	assert.Equal(t, 0, store.Len())
}

func TestModel_ViewShowsBuckets(t *testing.T) {
	m, _ := newTestModel(t, func(s *tasks.Store) {
		require.NoError(t, tasks.SeedSamples(s, fixedNow))
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 150, Height: 50})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"Time Sensitive", "Important", "When Available", "3/3", "3/5", "My ONE Thing Today", "Today", "2h"} {
		assert.Contains(t, view, want)
	}
}

func TestModel_ConfigReload(t *testing.T) {
	m, _ := newTestModel(t, nil)

	cfg := config.DefaultConfig()
	cfg.UI.Language = "fr"
	cfg.UI.Theme = "dark"
	updated, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = updated.(Model)

	assert.Equal(t, "fr", m.tr.Lang())
	assert.True(t, m.styles.Theme.IsDark)
	assert.True(t, strings.Contains(m.View(), "Ma UNE Chose du jour"))
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	assert.False(t, m.help.ShowAll)
	m = press(m, "?")
	assert.True(t, m.help.ShowAll)
}
