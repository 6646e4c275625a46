package ui

import (
	"fmt"
	"strings"

	"onething/internal/datefmt"
	"onething/internal/tasks"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderFocus())

	if m.form != nil {
		sections = append(sections, m.renderForm())
	} else {
		sections = append(sections, m.renderBuckets())
	}

	if m.status != "" {
		style := m.styles.Info
		switch m.statusKind {
		case statusSuccess:
			style = m.styles.Success
		case statusError:
			style = m.styles.Error
		}
		sections = append(sections, style.Render(m.status))
	}

	var keys help.KeyMap = m.keys
	if m.drag.IsDragging() {
		keys = dragKeys{m.keys}
	}
	sections = append(sections, m.styles.Footer.Render(m.help.View(keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(m.tr.T("appTitle"))
	today := m.styles.Muted.Render(" " + m.now().Format("Monday, Jan 2"))
	return title + today
}

func (m Model) renderFocus() string {
	style := m.styles.Focus
	if m.drag.IsDragging() {
		style = m.styles.FocusActive
	}
	width := m.width - style.GetHorizontalFrameSize()
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.tr.T("focusHeading")))
	b.WriteString("\n")

	task, ok := m.store.OneThing()
	if !ok {
		b.WriteString(m.styles.Muted.Render(m.tr.T("focusEmpty")))
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render(m.tr.T("focusEmptyHint")))
	} else {
		b.WriteString(m.styles.Star.Render("★ ") + m.styles.Bold.Render(task.Title))
		if meta := m.renderMeta(task); meta != "" {
			b.WriteString("  " + meta)
		}
		if task.Description != nil {
			b.WriteString("\n")
			b.WriteString(m.renderMarkdown(*task.Description))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.FocusQuote.Render(m.tr.T("focusQuote")))
	}

	if m.drag.IsDragging() {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(m.tr.T("focusDropHint")))
	}

	return style.Width(width).Render(b.String())
}

// renderMarkdown renders a description, falling back to plain text.
func (m Model) renderMarkdown(md string) string {
	if m.renderer == nil {
		return m.styles.Body.Render(md)
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return m.styles.Body.Render(md)
	}
	return strings.Trim(out, "\n")
}

func (m Model) renderBuckets() string {
	buckets := m.store.Buckets()
	colWidth := m.width/len(buckets) - 2
	if colWidth < 24 {
		colWidth = 24
	}

	var cols []string
	for i, b := range buckets {
		cols = append(cols, m.renderBucket(i, b, colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderBucket(idx int, b tasks.Bucket, width int) string {
	active := idx == m.bucketIdx
	style := m.styles.Bucket
	switch {
	case active && m.drag.IsDragging():
		style = m.styles.DropTarget
	case active:
		style = m.styles.ActiveBucket
	}

	var lines []string
	lines = append(lines, m.styles.Title.Render(m.tr.BucketTitle(b))+"  "+m.renderCount(b))
	lines = append(lines, m.styles.Subtitle.Render(m.tr.BucketDescription(b)))
	lines = append(lines, m.styles.RenderDivider(width-style.GetHorizontalFrameSize()))

	list := m.store.BucketTasks(b.ID)
	if len(list) == 0 {
		lines = append(lines, m.styles.Muted.Render(m.tr.T("emptyBucket")))
	}

	session, dragging := m.drag.Session()
	focusID, _ := m.store.OneThingID()
	for i, t := range list {
		title := t.Title
		if t.ID == focusID {
			title = m.styles.Star.Render("★ ") + title
		}

		rowStyle := m.styles.Task
		switch {
		case dragging && session.Task.ID == t.ID:
			rowStyle = m.styles.DraggedTask
		case active && !dragging && i == m.cursor:
			rowStyle = m.styles.SelectedTask
		}

		row := title
		if meta := m.renderMeta(t); meta != "" {
			row += "\n" + meta
		}
		lines = append(lines, rowStyle.Render(row))
	}

	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderCount shows "n/max" for bounded buckets and "n" otherwise.
func (m Model) renderCount(b tasks.Bucket) string {
	n := m.store.Count(b.ID)
	limit, bounded := b.Capacity()
	if !bounded {
		return m.styles.Count.Render(fmt.Sprintf("%d", n))
	}
	style := m.styles.Count
	if n >= limit {
		style = m.styles.FullCount
	}
	return style.Render(fmt.Sprintf("%d/%d", n, limit))
}

// renderMeta renders the deadline and estimate badges of a task.
func (m Model) renderMeta(t tasks.Task) string {
	var parts []string
	if t.HasDeadline() {
		now := m.now()
		status := datefmt.Classify(*t.Deadline, now)
		label := datefmt.FormatDate(*t.Deadline, now, m.tr.DateLabels())
		parts = append(parts, m.styles.DeadlineBadge(status).Render(label))
	}
	if t.TimeEstimate != nil {
		parts = append(parts, m.styles.Muted.Render("◷ "+datefmt.FormatTimeEstimate(*t.TimeEstimate)))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderForm() string {
	f := m.form
	var heading string
	if f.editing {
		heading = m.tr.T("formEditTitle")
	} else {
		b, _ := m.store.Bucket(f.bucket)
		heading = m.tr.Tf("formAddTitle", map[string]any{"Bucket": m.tr.BucketTitle(b)})
	}

	labels := m.placeholders()
	lines := []string{m.styles.Title.Render(heading)}
	for i, in := range f.inputs {
		label := m.styles.Muted.Render(labels[i])
		if i == f.focus {
			label = m.styles.Bold.Render(labels[i])
		}
		lines = append(lines, label, in.View())
	}
	if f.err != "" {
		lines = append(lines, m.styles.Error.Render(f.err))
	}
	return m.styles.Input.Render(strings.Join(lines, "\n"))
}
