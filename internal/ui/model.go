// Package ui provides the interactive terminal editor.
package ui

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tpdp/internal/todo"
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Model is the bubbletea model of the task editor. All store calls happen
// inside Update, so each mutation is persisted before the next message is
// handled.
type Model struct {
	store  *todo.Store
	logger *log.Logger
	styles styles

	tasks  todo.Collection
	filter todo.Filter
	cursor int
	focus  focus
	width  int

	input  textinput.Model
	editor textinput.Model

	// editingID is the task whose text is being edited, "" when none.
	editingID string
	// drafts holds in-progress edit text keyed by task id. It is never
	// persisted.
	drafts map[string]string

	showHelp bool
	status   string
	crash    *crashInfo
	quitting bool
}

type crashInfo struct {
	err   error
	stack string
}

// Option configures a Model.
type Option func(*Model)

// WithFilter sets the initial filter.
func WithFilter(f todo.Filter) Option {
	return func(m *Model) {
		m.filter = f
	}
}

// WithLogger sets the logger used to report recovered panics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Model over store. The add field starts focused.
func New(store *todo.Store, opts ...Option) *Model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.CharLimit = todo.MaxTextLength
	input.Prompt = "❯ "
	input.Focus()

	editor := textinput.New()
	editor.CharLimit = todo.MaxTextLength
	editor.Prompt = ""

	m := &Model{
		store:  store,
		logger: log.New(io.Discard),
		styles: defaultStyles(),
		tasks:  store.Tasks(),
		filter: todo.FilterAll,
		focus:  focusInput,
		input:  input,
		editor: editor,
		drafts: make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles a message. A panic while handling it switches the model to
// the recovery view instead of tearing down the program.
func (m *Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.recovered(r)
			model, cmd = m, nil
		}
	}()
	return m.update(msg)
}

func (m *Model) recovered(r any) {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	m.crash = &crashInfo{err: err, stack: string(debug.Stack())}
	m.editingID = ""
	m.drafts = make(map[string]string)
	m.logger.Error("Recovered from panic", "err", err, "stack", m.crash.stack)
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		m.editor.Width = max(msg.Width-10, 10)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.crash != nil {
			return m.updateRecovery(msg)
		}
		if m.editingID != "" {
			return m.updateEditing(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.editingID != "" {
		m.editor, cmd = m.editor.Update(msg)
	} else if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.editingID != "" && m.crash == nil {
		m.commitEdit()
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) updateRecovery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.crash = nil
		m.tasks = m.store.Reload()
		m.cursor = 0
		m.status = fmt.Sprintf("Reloaded %d tasks from storage", len(m.tasks))
	case "q", "esc":
		return m.quit()
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if todo.NormalizeText(m.input.Value()) == "" {
			return m, nil
		}
		m.tasks = m.store.Add(m.input.Value())
		m.input.SetValue("")
		m.cursor = 0
		m.status = ""
		return m, nil
	case "tab", "esc", "down":
		m.focusList()
		return m, nil
	case "ctrl+f":
		m.setFilter(m.filter.Next())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m.quit()
	case "?", "h":
		m.showHelp = !m.showHelp
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.visible()) - 1
		m.clampCursor()
	case "tab", "a", "i":
		return m, m.focusInput()
	case " ", "x":
		if t, ok := m.selected(); ok {
			m.tasks = m.store.Toggle(t.ID)
			m.clampCursor()
		}
	case "d", "delete", "backspace":
		if t, ok := m.selected(); ok {
			m.tasks = m.store.Remove(t.ID)
			m.clampCursor()
		}
	case "e", "enter":
		return m, m.startEdit()
	case "1":
		m.setFilter(todo.FilterAll)
	case "2":
		m.setFilter(todo.FilterActive)
	case "3":
		m.setFilter(todo.FilterCompleted)
	case "f", "ctrl+f":
		m.setFilter(m.filter.Next())
	case "c":
		if todo.Count(m.tasks).Completed > 0 {
			m.tasks = m.store.ClearCompleted()
			m.clampCursor()
		}
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		return m, nil
	case "esc":
		m.cancelEdit()
		return m, nil
	case "up":
		m.commitEdit()
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.commitEdit()
		m.moveCursor(1)
		return m, nil
	case "tab":
		m.commitEdit()
		return m, m.focusInput()
	case "ctrl+f":
		m.commitEdit()
		m.setFilter(m.filter.Next())
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.drafts[m.editingID] = m.editor.Value()
	return m, cmd
}

func (m *Model) startEdit() tea.Cmd {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	if t.Completed {
		m.status = "Completed tasks cannot be edited"
		return nil
	}
	draft, ok := m.drafts[t.ID]
	if !ok {
		draft = t.Text
		m.drafts[t.ID] = draft
	}
	m.editingID = t.ID
	m.editor.SetValue(draft)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

// commitEdit saves the draft of the task being edited. Empty drafts are
// discarded by the store and leave the text unchanged.
func (m *Model) commitEdit() {
	id := m.editingID
	if id == "" {
		return
	}
	draft := m.drafts[id]
	m.endEdit()
	m.tasks = m.store.Edit(id, draft)
	m.clampCursor()
}

func (m *Model) cancelEdit() {
	m.endEdit()
}

func (m *Model) endEdit() {
	delete(m.drafts, m.editingID)
	m.editingID = ""
	m.editor.Blur()
	m.editor.SetValue("")
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.clampCursor()
}

func (m *Model) setFilter(f todo.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.cursor = 0
}

func (m *Model) visible() todo.Collection {
	return todo.Apply(m.tasks, m.filter)
}

func (m *Model) selected() (todo.Task, bool) {
	if m.focus != focusList {
		return todo.Task{}, false
	}
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todo.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Tasks returns the collection currently shown.
func (m *Model) Tasks() todo.Collection {
	return m.tasks
}

// Editing reports the id of the task being edited, if any.
func (m *Model) Editing() (string, bool) {
	return m.editingID, m.editingID != ""
}

// Draft returns the in-progress edit text for id.
func (m *Model) Draft(id string) (string, bool) {
	d, ok := m.drafts[id]
	return d, ok
}

// Crashed reports whether the model is showing the recovery view.
func (m *Model) Crashed() bool {
	return m.crash != nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
