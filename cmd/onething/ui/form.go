package ui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"onething/internal/tasks"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DeadlineLayout is the date format typed into the form.
const DeadlineLayout = "2006-01-02"

var (
	errBadDeadline = errors.New("deadline is not a YYYY-MM-DD date")
	errBadEstimate = errors.New("estimate is not a whole number of minutes")
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDeadline
	fieldEstimate
	fieldCount
)

// taskForm collects the raw strings for an add or an edit.
type taskForm struct {
	editing bool
	bucket  tasks.BucketID
	taskID  string

	inputs  []textinput.Model
	initial [fieldCount]string // values the form opened with
	focus   int
	err     string
}

func newTaskForm(placeholders [fieldCount]string) taskForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "› "
		ti.CharLimit = 200
		inputs[i] = ti
	}
	inputs[fieldDeadline].CharLimit = len(DeadlineLayout)
	inputs[fieldEstimate].CharLimit = 5
	inputs[fieldTitle].Focus()
	return taskForm{inputs: inputs}
}

func newAddForm(bucket tasks.BucketID, placeholders [fieldCount]string) taskForm {
	f := newTaskForm(placeholders)
	f.bucket = bucket
	return f
}

func newEditForm(task tasks.Task, placeholders [fieldCount]string) taskForm {
	f := newTaskForm(placeholders)
	f.editing = true
	f.bucket = task.BucketID
	f.taskID = task.ID

	f.inputs[fieldTitle].SetValue(task.Title)
	if task.Description != nil {
		f.inputs[fieldDescription].SetValue(*task.Description)
	}
	if task.Deadline != nil {
		f.inputs[fieldDeadline].SetValue(task.Deadline.Format(DeadlineLayout))
	}
	if task.TimeEstimate != nil {
		f.inputs[fieldEstimate].SetValue(strconv.Itoa(*task.TimeEstimate))
	}
	for i := range f.initial {
		f.initial[i] = f.value(i)
	}
	return f
}

func (f taskForm) value(field int) string {
	return f.inputs[field].Value()
}

// changed reports whether the user edited field since the form opened.
func (f taskForm) changed(field int) bool {
	return strings.TrimSpace(f.value(field)) != strings.TrimSpace(f.initial[field])
}

// setFocus moves focus to field, wrapping around.
func (f *taskForm) setFocus(field int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (field + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f taskForm) update(msg tea.Msg) (taskForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// formValues is the parsed form. Optional fields are nil when left blank.
type formValues struct {
	Title        string
	Description  *string
	Deadline     *time.Time
	TimeEstimate *int
}

// parse turns the raw field strings into typed values. The title is passed
// through untouched; the store owns that rule.
func (f taskForm) parse(loc *time.Location) (formValues, error) {
	v := formValues{Title: f.value(fieldTitle)}

	if desc := strings.TrimSpace(f.value(fieldDescription)); desc != "" {
		v.Description = &desc
	}

	deadline, err := parseDeadline(f.value(fieldDeadline), loc)
	if err != nil {
		return formValues{}, err
	}
	v.Deadline = deadline

	estimate, err := parseEstimate(f.value(fieldEstimate))
	if err != nil {
		return formValues{}, err
	}
	v.TimeEstimate = estimate

	return v, nil
}

func (v formValues) newTask(bucket tasks.BucketID) tasks.NewTask {
	return tasks.NewTask{
		BucketID:     bucket,
		Title:        v.Title,
		Description:  v.Description,
		Deadline:     v.Deadline,
		TimeEstimate: v.TimeEstimate,
	}
}

// taskUpdate builds a partial edit holding only the fields the user touched.
// Untouched fields keep their stored values, time of day included.
func (f taskForm) taskUpdate(v formValues) tasks.TaskUpdate {
	var upd tasks.TaskUpdate
	if f.changed(fieldTitle) {
		upd.Title = &v.Title
	}
	if f.changed(fieldDescription) {
		upd.Description, upd.DescriptionSet = v.Description, true
	}
	if f.changed(fieldDeadline) {
		upd.Deadline, upd.DeadlineSet = v.Deadline, true
	}
	if f.changed(fieldEstimate) {
		upd.TimeEstimate, upd.TimeEstimateSet = v.TimeEstimate, true
	}
	return upd
}

func parseDeadline(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(DeadlineLayout, raw, loc)
	if err != nil {
		return nil, errBadDeadline
	}
	return &d, nil
}

func parseEstimate(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errBadEstimate
	}
	return &n, nil
}
