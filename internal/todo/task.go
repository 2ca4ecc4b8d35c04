package todo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength is the maximum task text length in runes.
const MaxTextLength = 200

// Task represents a single entry in the list.
type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

// wireTask is the persisted form of a Task.
type wireTask struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Completed bool        `json:"completed"`
	CreatedAt json.Number `json:"createdAt"`
}

// MarshalJSON encodes the task with createdAt as epoch milliseconds.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTask{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: json.Number(fmt.Sprintf("%d", t.CreatedAt.UnixMilli())),
	})
}

// UnmarshalJSON decodes a task whose createdAt is epoch milliseconds.
// Fractional millisecond values are truncated.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var ms int64
	if w.CreatedAt != "" {
		if i, err := w.CreatedAt.Int64(); err == nil {
			ms = i
		} else if f, ferr := w.CreatedAt.Float64(); ferr == nil {
			ms = int64(f)
		} else {
			return fmt.Errorf("createdAt: %w", err)
		}
	}

	t.ID = w.ID
	t.Text = w.Text
	t.Completed = w.Completed
	t.CreatedAt = time.UnixMilli(ms)
	return nil
}

// NormalizeText trims surrounding whitespace and caps the result at
// MaxTextLength runes. An empty result means the text is not usable.
func NormalizeText(raw string) string {
	text := strings.TrimSpace(raw)
	if utf8.RuneCountInString(text) <= MaxTextLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:MaxTextLength]))
}
