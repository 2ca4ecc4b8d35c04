package todo

import (
	"fmt"
	"strings"
)

// Filter selects which tasks are displayed.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filter modes in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter parses a filter name. "done" is accepted for completed and an
// empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active", "todo":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("invalid filter %q, must be one of: all, active, completed", s)
	}
}

// Label returns the short name shown on filter buttons.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Done"
	default:
		return "All"
	}
}

// Next returns the following filter in display order, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Match reports whether task passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the subsequence of c that passes f.
func Apply(c Collection, f Filter) Collection {
	out := make(Collection, 0, len(c))
	for _, t := range c {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Counts summarizes a collection independently of any filter.
type Counts struct {
	Total     int
	Active    int
	Completed int
}

// Count tallies active and completed tasks over the whole collection.
func Count(c Collection) Counts {
	counts := Counts{Total: len(c)}
	for _, t := range c {
		if t.Completed {
			counts.Completed++
		} else {
			counts.Active++
		}
	}
	return counts
}
