package utils

import "testing"

func TestShortID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"t1", "t1"},
		{"12345678", "12345678"},
		{"3f2c9a7e-1b2d-4c5e-8f90-1234567890ab", "3f2c9a7e"},
	}
	for _, tt := range tests {
		if got := ShortID(tt.in); got != tt.want {
			t.Errorf("ShortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"héllo wörld", 4, "hél…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "task", "tasks"); got != "1 task" {
		t.Errorf("got %q", got)
	}
	if got := Plural(0, "task", "tasks"); got != "0 tasks" {
		t.Errorf("got %q", got)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/", ""},
		{"#/0/text", "[0].text"},
		{"/1/createdAt", "[1].createdAt"},
		{"/meta/a~1b/c~0d", "meta.a/b.c~d"},
		{"/tasks/12", "tasks[12]"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.in); got != tt.want {
			t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
