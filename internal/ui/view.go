package ui

import (
	"fmt"
	"strings"

	"github.com/nibzard/tpdp/internal/todo"
	"github.com/nibzard/tpdp/internal/utils"
)

const title = "TODO TPDP"

// View renders the model. A panic while rendering is turned into the
// recovery view.
func (m *Model) View() (out string) {
	if m.quitting {
		return ""
	}
	if m.crash != nil {
		return m.recoveryView()
	}
	defer func() {
		if r := recover(); r != nil {
			m.recovered(r)
			out = m.recoveryView()
		}
	}()

	var b strings.Builder
	m.writeHeader(&b)
	b.WriteString(m.input.View() + "\n\n")

	if m.showHelp {
		writeHelp(&b)
	} else {
		m.writeTasks(&b)
	}

	m.writeFilterBar(&b)
	m.writeWarning(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *Model) writeHeader(b *strings.Builder) {
	counts := todo.Count(m.tasks)
	b.WriteString(m.styles.title.Render(title) + "\n")
	b.WriteString(m.styles.counts.Render(fmt.Sprintf("%d active · %d completed", counts.Active, counts.Completed)))
	b.WriteString("\n\n")
}

func (m *Model) writeTasks(b *strings.Builder) {
	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(m.styles.empty.Render(m.emptyMessage()) + "\n\n")
		return
	}

	for i, t := range visible {
		selected := m.focus == focusList && i == m.cursor
		b.WriteString(m.renderTask(t, selected))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *Model) emptyMessage() string {
	if len(m.tasks) == 0 {
		return "No tasks yet"
	}
	switch m.filter {
	case todo.FilterActive:
		return "No active tasks"
	case todo.FilterCompleted:
		return "No completed tasks"
	default:
		return "No tasks yet"
	}
}

func (m *Model) renderTask(t todo.Task, selected bool) string {
	pointer := "  "
	if selected {
		pointer = m.styles.cursor.Render("› ")
	}
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	if t.ID == m.editingID {
		return pointer + box + " " + m.editor.View()
	}

	text := oneLine(t.Text)
	if m.width > 0 {
		text = utils.Truncate(text, max(m.width-8, 8))
	}
	style := m.styles.task
	if t.Completed {
		style = m.styles.done
	}
	return pointer + box + " " + style.Render(text)
}

func (m *Model) writeFilterBar(b *strings.Builder) {
	parts := make([]string, 0, len(todo.Filters))
	for _, f := range todo.Filters {
		if f == m.filter {
			parts = append(parts, m.styles.filterOn.Render("["+f.Label()+"]"))
		} else {
			parts = append(parts, m.styles.filter.Render(" "+f.Label()+" "))
		}
	}

	counts := todo.Count(m.tasks)
	line := []string{
		strings.Join(parts, " "),
		m.styles.counts.Render(utils.Plural(counts.Active, "item left", "items left")),
	}
	if counts.Completed > 0 {
		line = append(line, m.styles.action.Render(fmt.Sprintf("clear completed (%d)", counts.Completed)))
	}
	b.WriteString(strings.Join(line, "   ") + "\n")
}

func (m *Model) writeWarning(b *strings.Builder) {
	if err := m.store.LastPersistError(); err != nil {
		b.WriteString(m.styles.warning.Render("⚠ Changes not saved: "+err.Error()) + "\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.status.Render(m.status) + "\n")
	}
}

func (m *Model) writeFooter(b *strings.Builder) {
	var hint string
	switch {
	case m.editingID != "":
		hint = "enter save · esc cancel · ↑/↓ save and move · tab save and add"
	case m.focus == focusInput:
		hint = "enter add · tab/esc go to list · ctrl+f filter · ctrl+c quit"
	default:
		hint = "space toggle · e edit · d delete · 1/2/3 filter · c clear completed · ? help · q quit"
	}
	b.WriteString("\n" + m.styles.help.Render(hint) + "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  enter          Add task (add field) / edit task (list)\n")
	b.WriteString("  tab            Switch between add field and list\n")
	b.WriteString("  ↑/↓, k/j       Move cursor\n")
	b.WriteString("  space, x       Toggle completed\n")
	b.WriteString("  e              Edit task (active tasks only)\n")
	b.WriteString("  d, delete      Delete task\n")
	b.WriteString("  1 / 2 / 3      Show all / active / completed\n")
	b.WriteString("  f, ctrl+f      Cycle filter\n")
	b.WriteString("  c              Clear completed\n")
	b.WriteString("  ?, h           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
}

func (m *Model) recoveryView() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Something went wrong") + "\n")
	b.WriteString(m.styles.errorText.Render(m.crash.err.Error()) + "\n\n")
	b.WriteString("Your tasks are kept in storage.\n\n")
	b.WriteString("  r  reload tasks from storage\n")
	b.WriteString("  q  quit\n")
	return m.styles.recoveryBox.Render(b.String()) + "\n"
}
