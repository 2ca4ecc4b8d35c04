package todo

// Collection is the ordered task list, newest first.
//
// Methods never modify the receiver. A no-op returns the receiver itself so
// callers can detect it with Same.
type Collection []Task

// Len returns the number of tasks.
func (c Collection) Len() int {
	return len(c)
}

// Index returns the position of the task with id, or -1.
func (c Collection) Index(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a task with id exists.
func (c Collection) Contains(id string) bool {
	return c.Index(id) >= 0
}

// Get returns the task with id.
func (c Collection) Get(id string) (Task, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return Task{}, false
}

// Prepend returns a new collection with task at the head.
func (c Collection) Prepend(task Task) Collection {
	next := make(Collection, 0, len(c)+1)
	next = append(next, task)
	return append(next, c...)
}

// Toggle returns a new collection with the completion flag of id flipped.
func (c Collection) Toggle(id string) Collection {
	i := c.Index(id)
	if i < 0 {
		return c
	}
	next := c.clone()
	next[i].Completed = !next[i].Completed
	return next
}

// Remove returns a new collection without the task id.
func (c Collection) Remove(id string) Collection {
	i := c.Index(id)
	if i < 0 {
		return c
	}
	next := make(Collection, 0, len(c)-1)
	next = append(next, c[:i]...)
	return append(next, c[i+1:]...)
}

// Rename returns a new collection where task id has the given text.
// Empty text, or text equal to the current one, is a no-op.
func (c Collection) Rename(id, text string) Collection {
	i := c.Index(id)
	if i < 0 || text == "" || c[i].Text == text {
		return c
	}
	next := c.clone()
	next[i].Text = text
	return next
}

// WithoutCompleted returns a new collection with completed tasks removed.
// Relative order of the remaining tasks is preserved.
func (c Collection) WithoutCompleted() Collection {
	if Count(c).Completed == 0 {
		return c
	}
	next := make(Collection, 0, len(c))
	for _, t := range c {
		if !t.Completed {
			next = append(next, t)
		}
	}
	return next
}

// Same reports whether a and b share the same backing array and length,
// which is how Collection methods signal a no-op. Two empty collections are
// always the same.
func Same(a, b Collection) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func (c Collection) clone() Collection {
	next := make(Collection, len(c))
	copy(next, c)
	return next
}
