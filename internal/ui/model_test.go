package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tpdp/internal/storage"
	"github.com/nibzard/tpdp/internal/todo"
)

// scriptedKV wraps a memory store and can fail or panic on writes.
type scriptedKV struct {
	*storage.MemoryKV
	setErr   error
	setPanic bool
}

func (s *scriptedKV) Set(key, value string) error {
	if s.setPanic {
		panic("storage exploded")
	}
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryKV.Set(key, value)
}

func newTestModel(t *testing.T, kv todo.KV, opts ...Option) (*Model, *todo.Store) {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemoryKV()
	}
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := todo.NewStore(kv,
		todo.WithIDGenerator(todo.NewCounterGenerator("t")),
		todo.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	return New(store, opts...), store
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter  = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc    = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab    = tea.KeyMsg{Type: tea.KeyTab}
	keyUp     = tea.KeyMsg{Type: tea.KeyUp}
	keyDown   = tea.KeyMsg{Type: tea.KeyDown}
	keySpace  = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDelete = tea.KeyMsg{Type: tea.KeyDelete}
	keyCtrlC  = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyCtrlF  = tea.KeyMsg{Type: tea.KeyCtrlF}
)

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

// addTasks types each text into the add field and submits it. The newest
// task ends up first.
func addTasks(m *Model, texts ...string) {
	for _, text := range texts {
		send(m, keyRunes(text), keyEnter)
	}
}

func texts(c todo.Collection) []string {
	out := make([]string, len(c))
	for i, t := range c {
		out[i] = t.Text
	}
	return out
}

func TestAddFromInput(t *testing.T) {
	m, store := newTestModel(t, nil)

	addTasks(m, "buy milk", "walk dog")
	if got := texts(m.Tasks()); strings.Join(got, ",") != "walk dog,buy milk" {
		t.Fatalf("tasks = %v", got)
	}
	if got := texts(store.Tasks()); len(got) != 2 {
		t.Fatalf("store not updated: %v", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	t.Run("blank input ignored", func(t *testing.T) {
		send(m, keyRunes("   "), keyEnter)
		if m.Tasks().Len() != 2 {
			t.Errorf("blank add created a task: %v", texts(m.Tasks()))
		}
	})

	t.Run("text is trimmed", func(t *testing.T) {
		m.input.SetValue("")
		send(m, keyRunes("  pay rent  "), keyEnter)
		if got := m.Tasks()[0].Text; got != "pay rent" {
			t.Errorf("text = %q", got)
		}
	})
}

func TestInputCharLimit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	send(m, keyRunes(strings.Repeat("a", todo.MaxTextLength+50)))
	if n := len([]rune(m.input.Value())); n != todo.MaxTextLength {
		t.Errorf("input length = %d, want %d", n, todo.MaxTextLength)
	}
}

func TestListActions(t *testing.T) {
	m, store := newTestModel(t, nil)
	addTasks(m, "c", "b", "a")
	send(m, keyTab)

	// Cursor starts on "a".
	send(m, keySpace)
	if !m.Tasks()[0].Completed {
		t.Fatalf("space did not toggle first task")
	}
	send(m, keyRunes("x"))
	if m.Tasks()[0].Completed {
		t.Fatalf("x did not toggle back")
	}

	send(m, keyRunes("j"), keyRunes("d"))
	if got := strings.Join(texts(m.Tasks()), ","); got != "a,c" {
		t.Fatalf("after delete: %s", got)
	}
	if got := strings.Join(texts(store.Tasks()), ","); got != "a,c" {
		t.Fatalf("store after delete: %s", got)
	}

	send(m, keyDown, keyDown, keyDown, keyDelete)
	if got := strings.Join(texts(m.Tasks()), ","); got != "a" {
		t.Fatalf("delete key at end: %s", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}

	send(m, keyUp, keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor moved above first item: %d", m.cursor)
	}
}

func TestEditCommitAndCancel(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.Msg
		wantText string
	}{
		{
			name:     "enter commits",
			keys:     []tea.Msg{keyRunes("e"), keyRunes(" now"), keyEnter},
			wantText: "call mom now",
		},
		{
			name:     "esc cancels",
			keys:     []tea.Msg{keyRunes("e"), keyRunes(" later"), keyEsc},
			wantText: "call mom",
		},
		{
			name:     "cursor move commits",
			keys:     []tea.Msg{keyEnter, keyRunes("!"), keyDown},
			wantText: "call mom!",
		},
		{
			name:     "tab commits",
			keys:     []tea.Msg{keyEnter, keyRunes("?"), keyTab},
			wantText: "call mom?",
		},
		{
			name:     "filter change commits",
			keys:     []tea.Msg{keyEnter, keyRunes("."), keyCtrlF},
			wantText: "call mom.",
		},
		{
			name: "empty draft discarded",
			keys: append([]tea.Msg{keyEnter},
				append(repeat(tea.KeyMsg{Type: tea.KeyBackspace}, len("call mom")), keyEnter)...),
			wantText: "call mom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newTestModel(t, nil)
			addTasks(m, "other", "call mom")
			send(m, keyTab)
			id := m.Tasks()[0].ID

			send(m, tt.keys...)

			got, _ := store.Get(id)
			if got.Text != tt.wantText {
				t.Errorf("text = %q, want %q", got.Text, tt.wantText)
			}
			if _, editing := m.Editing(); editing {
				t.Error("still editing")
			}
			if _, ok := m.Draft(id); ok {
				t.Error("draft not discarded")
			}
		})
	}
}

func repeat(msg tea.Msg, n int) []tea.Msg {
	out := make([]tea.Msg, n)
	for i := range out {
		out[i] = msg
	}
	return out
}

func TestEditTracksDraft(t *testing.T) {
	m, store := newTestModel(t, nil)
	addTasks(m, "draft me")
	send(m, keyTab, keyRunes("e"), keyRunes(" more"))

	id, editing := m.Editing()
	if !editing {
		t.Fatal("not editing")
	}
	if d, _ := m.Draft(id); d != "draft me more" {
		t.Errorf("draft = %q", d)
	}
	if got, _ := store.Get(id); got.Text != "draft me" {
		t.Errorf("draft leaked into store: %q", got.Text)
	}
	if !strings.Contains(m.View(), "esc cancel") {
		t.Error("editing hint not shown")
	}
}

func TestEditRefusedOnCompleted(t *testing.T) {
	m, _ := newTestModel(t, nil)
	addTasks(m, "done already")
	send(m, keyTab, keySpace, keyRunes("e"))

	if _, editing := m.Editing(); editing {
		t.Fatal("editing a completed task")
	}
	if !strings.Contains(m.View(), "Completed tasks cannot be edited") {
		t.Error("missing refusal message")
	}
}

func TestFilters(t *testing.T) {
	m, _ := newTestModel(t, nil)
	addTasks(m, "one", "two", "three")
	send(m, keyTab, keySpace) // complete "three"

	tests := []struct {
		key    tea.Msg
		filter todo.Filter
		want   []string
	}{
		{keyRunes("2"), todo.FilterActive, []string{"two", "one"}},
		{keyRunes("3"), todo.FilterCompleted, []string{"three"}},
		{keyRunes("1"), todo.FilterAll, []string{"three", "two", "one"}},
		{keyRunes("f"), todo.FilterActive, []string{"two", "one"}},
		{keyRunes("f"), todo.FilterCompleted, []string{"three"}},
		{keyRunes("f"), todo.FilterAll, []string{"three", "two", "one"}},
	}
	for _, tt := range tests {
		send(m, tt.key)
		if m.filter != tt.filter {
			t.Fatalf("filter = %s, want %s", m.filter, tt.filter)
		}
		if got := texts(m.visible()); strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("filter %s shows %v, want %v", tt.filter, got, tt.want)
		}
		if !strings.Contains(m.View(), "["+tt.filter.Label()+"]") {
			t.Errorf("filter %s not highlighted", tt.filter)
		}
	}
}

func TestActionsApplyToFilteredView(t *testing.T) {
	m, _ := newTestModel(t, nil, WithFilter(todo.FilterActive))
	addTasks(m, "one", "two")
	send(m, keyTab, keySpace)

	// "two" was completed and left the active view; the cursor now sits on "one".
	if got := texts(m.visible()); len(got) != 1 || got[0] != "one" {
		t.Fatalf("visible = %v", got)
	}
	send(m, keyRunes("d"))
	if got := texts(m.Tasks()); len(got) != 1 || got[0] != "two" {
		t.Errorf("tasks = %v, want only two", got)
	}
}

func TestClearCompleted(t *testing.T) {
	m, _ := newTestModel(t, nil)
	addTasks(m, "keep", "drop")
	send(m, keyTab)

	if strings.Contains(m.View(), "clear completed (") {
		t.Error("clear action shown with nothing completed")
	}

	send(m, keySpace)
	if !strings.Contains(m.View(), "clear completed (1)") {
		t.Error("clear action missing")
	}

	send(m, keyRunes("c"))
	if got := texts(m.Tasks()); len(got) != 1 || got[0] != "keep" {
		t.Errorf("tasks = %v", got)
	}
	if strings.Contains(m.View(), "clear completed (") {
		t.Error("clear action still shown")
	}
}

func TestViewCountsAndEmptyState(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{title, "0 active · 0 completed", "No tasks yet", "0 items left"} {
		if !strings.Contains(view, want) {
			t.Errorf("empty view missing %q:\n%s", want, view)
		}
	}

	addTasks(m, "a", "b")
	send(m, keyTab, keySpace, keyRunes("3"))
	send(m, keyRunes("c"))
	view = m.View()
	for _, want := range []string{"1 active · 0 completed", "No completed tasks", "1 item left"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPersistWarning(t *testing.T) {
	kv := &scriptedKV{MemoryKV: storage.NewMemoryKV()}
	m, store := newTestModel(t, kv)

	kv.setErr = errors.New("disk full")
	addTasks(m, "unsaved")

	if m.Tasks().Len() != 1 {
		t.Fatal("in-memory state lost after failed write")
	}
	if store.LastPersistError() == nil {
		t.Fatal("LastPersistError not set")
	}
	if !strings.Contains(m.View(), "Changes not saved") {
		t.Error("warning line missing")
	}

	kv.setErr = nil
	addTasks(m, "saved")
	if strings.Contains(m.View(), "Changes not saved") {
		t.Error("warning still shown after a successful write")
	}
}

func TestRecoveryView(t *testing.T) {
	kv := &scriptedKV{MemoryKV: storage.NewMemoryKV()}
	m, _ := newTestModel(t, kv)
	addTasks(m, "persisted")

	kv.setPanic = true
	addTasks(m, "boom")

	if !m.Crashed() {
		t.Fatal("panic was not recovered into the recovery view")
	}
	view := m.View()
	if !strings.Contains(view, "Something went wrong") || !strings.Contains(view, "storage exploded") {
		t.Errorf("recovery view:\n%s", view)
	}

	// Other keys are ignored while crashed.
	send(m, keyRunes("d"))
	if !m.Crashed() {
		t.Fatal("left recovery view on unrelated key")
	}

	kv.setPanic = false
	send(m, keyRunes("r"))
	if m.Crashed() {
		t.Fatal("reload did not leave recovery view")
	}
	if got := texts(m.Tasks()); len(got) != 1 || got[0] != "persisted" {
		t.Errorf("reloaded tasks = %v", got)
	}
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
	}{
		{"ctrl+c from input", []tea.Msg{keyCtrlC}},
		{"q from list", []tea.Msg{keyTab, keyRunes("q")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, nil)
			cmd := send(m, tt.keys...)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("command is not tea.Quit")
			}
			if m.View() != "" {
				t.Error("view not cleared on quit")
			}
		})
	}

	t.Run("q types into input", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		send(m, keyRunes("q"))
		if m.input.Value() != "q" {
			t.Errorf("input = %q", m.input.Value())
		}
	})
}

func TestWindowSizeTruncatesText(t *testing.T) {
	m, _ := newTestModel(t, nil)
	addTasks(m, strings.Repeat("word ", 30))
	send(m, tea.WindowSizeMsg{Width: 30, Height: 20})

	if !strings.Contains(m.View(), "…") {
		t.Error("long task not truncated to the window width")
	}
}
