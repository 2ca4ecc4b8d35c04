package todo

import (
	"testing"
)

func sampleCollection() Collection {
	return Collection{
		{ID: "1", Text: "a", Completed: false},
		{ID: "2", Text: "b", Completed: true},
		{ID: "3", Text: "c", Completed: false},
		{ID: "4", Text: "d", Completed: true},
		{ID: "5", Text: "e", Completed: true},
	}
}

func TestApply(t *testing.T) {
	c := sampleCollection()

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"1", "2", "3", "4", "5"}},
		{FilterActive, []string{"1", "3"}},
		{FilterCompleted, []string{"2", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := Apply(c, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("Apply(%s) = %d tasks, want %d", tt.filter, len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("Apply(%s)[%d] = %s, want %s", tt.filter, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestApplyPartitions(t *testing.T) {
	collections := []Collection{
		nil,
		{},
		sampleCollection(),
		{{ID: "only", Completed: true}},
		{{ID: "only", Completed: false}},
	}

	for _, c := range collections {
		active := Apply(c, FilterActive)
		completed := Apply(c, FilterCompleted)
		if len(active)+len(completed) != len(c) {
			t.Errorf("active %d + completed %d != total %d", len(active), len(completed), len(c))
		}
		seen := map[string]int{}
		for _, task := range active {
			seen[task.ID]++
		}
		for _, task := range completed {
			seen[task.ID]++
		}
		for _, task := range c {
			if seen[task.ID] != 1 {
				t.Errorf("task %s appears %d times across active and completed", task.ID, seen[task.ID])
			}
		}
	}
}

func TestCount(t *testing.T) {
	got := Count(sampleCollection())
	want := Counts{Total: 5, Active: 2, Completed: 3}
	if got != want {
		t.Errorf("Count() = %+v, want %+v", got, want)
	}
	if got := Count(nil); got != (Counts{}) {
		t.Errorf("Count(nil) = %+v, want zero", got)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"ACTIVE", FilterActive, false},
		{"completed", FilterCompleted, false},
		{" done ", FilterCompleted, false},
		{"blocked", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterNext(t *testing.T) {
	f := FilterAll
	var order []Filter
	for i := 0; i < 4; i++ {
		f = f.Next()
		order = append(order, f)
	}
	want := []Filter{FilterActive, FilterCompleted, FilterAll, FilterActive}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step %d = %s, want %s", i, order[i], want[i])
		}
	}
	if Filter("bogus").Next() != FilterAll {
		t.Error("unknown filter should cycle to all")
	}
}
