package todo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEncodeFormat(t *testing.T) {
	c := Collection{
		{ID: "b", Text: "newer", Completed: true, CreatedAt: time.UnixMilli(1700000000500)},
		{ID: "a", Text: "older", CreatedAt: time.UnixMilli(1700000000000)},
	}
	data, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `[{"id":"b","text":"newer","completed":true,"createdAt":1700000000500},` +
		`{"id":"a","text":"older","completed":false,"createdAt":1700000000000}]`
	if string(data) != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", data, want)
	}
}

func TestDecodeStoredFormat(t *testing.T) {
	// Shape written by the browser version of the app.
	raw := `[{"id":"0b1c1d9e-7a55-4e0a-9b36-51a2b5d0c0de","text":"Write report","completed":false,"createdAt":1739971261000},` +
		`{"id":"17399712000004kq9z1","text":"Buy milk","completed":true,"createdAt":1739971200000}]`
	c, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if c.Len() != 2 || c[0].Text != "Write report" || !c[1].Completed {
		t.Errorf("Decode() = %+v", c)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, raw := range []string{`{"tasks":[]}`, `null`, `"todos"`, ``, `[{`, `7`} {
		if _, err := Decode([]byte(raw)); !errors.Is(err, ErrCorrupt) {
			t.Errorf("Decode(%q) error = %v, want ErrCorrupt", raw, err)
		}
	}
}

func TestDecodeRecordsSkipsInvalid(t *testing.T) {
	raw := `[
		{"id":"a","text":"first","completed":false,"createdAt":1},
		{"id":"b","text":"","completed":false,"createdAt":2},
		{"id":"c","text":"second","completed":"no","createdAt":3},
		{"id":"a","text":"again","completed":false,"createdAt":4},
		{"id":"d","text":"third","completed":true,"createdAt":5}
	]`
	c, skipped, err := DecodeRecords([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if got := strings.Join(texts(c), ","); got != "first,third" {
		t.Errorf("kept = %s, want first,third", got)
	}
	if len(skipped) != 3 {
		t.Fatalf("skipped = %v, want 3 errors", skipped)
	}
	for i, prefix := range []string{"[1]", "[2]", "[3].id"} {
		var ve *ValidationError
		if !errors.As(skipped[i], &ve) {
			t.Errorf("skipped[%d] type = %T, want *ValidationError", i, skipped[i])
			continue
		}
		if !strings.HasPrefix(ve.Path, prefix) {
			t.Errorf("skipped[%d] path = %q, want prefix %q", i, ve.Path, prefix)
		}
	}

	c, err = Decode([]byte(raw))
	if err != nil || c.Len() != 2 {
		t.Errorf("Decode() = %v, %v; want the two valid tasks", c, err)
	}
}

func TestValidatePaths(t *testing.T) {
	raw := `[{"id":"a","text":"ok","completed":false,"createdAt":1},{"id":"","text":"x","completed":false,"createdAt":1}]`
	errs := Validate([]byte(raw))
	if len(errs) == 0 {
		t.Fatal("Validate() returned no errors")
	}
	var ve *ValidationError
	if !errors.As(errs[0], &ve) {
		t.Fatalf("error type = %T, want *ValidationError", errs[0])
	}
	if !strings.HasPrefix(ve.Path, "[1]") {
		t.Errorf("Path = %q, want prefix [1]", ve.Path)
	}

	if errs := Validate([]byte("[]")); len(errs) != 0 {
		t.Errorf("Validate([]) = %v, want none", errs)
	}
	if errs := Validate([]byte("{")); len(errs) != 1 {
		t.Errorf("Validate(bad json) = %v, want one error", errs)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"  hi  ", "hi"},
		{"a b", "a b"},
		{strings.Repeat("x", MaxTextLength) + "tail", strings.Repeat("x", MaxTextLength)},
		{strings.Repeat("x", MaxTextLength-1) + " tail", strings.Repeat("x", MaxTextLength-1)},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIDGenerators(t *testing.T) {
	g, err := NewIDGenerator("uuid")
	if err != nil {
		t.Fatalf("NewIDGenerator(uuid) error = %v", err)
	}
	if id := g.NewID(); len(id) != 36 {
		t.Errorf("uuid id = %q, want 36 chars", id)
	}

	g, err = NewIDGenerator("counter")
	if err != nil {
		t.Fatalf("NewIDGenerator(counter) error = %v", err)
	}
	if a, b := g.NewID(), g.NewID(); a != "t1" || b != "t2" {
		t.Errorf("counter ids = %q, %q", a, b)
	}

	if _, err := NewIDGenerator("snowflake"); err == nil {
		t.Error("expected error for unknown scheme")
	}

	now := time.UnixMilli(1700000000000)
	if id := TimestampID(now); !strings.HasPrefix(id, "1700000000000") {
		t.Errorf("TimestampID() = %q", id)
	}
}
