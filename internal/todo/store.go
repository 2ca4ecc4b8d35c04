package todo

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultKey is the storage key holding the serialized collection.
const DefaultKey = "todos"

// maxIDAttempts bounds retries when a generated id collides.
const maxIDAttempts = 16

var (
	// ErrNotFound is returned when no task matches an id or prefix.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguousID is returned when an id prefix matches several tasks.
	ErrAmbiguousID = errors.New("ambiguous task id")
)

// KV is the synchronous key-value boundary the store persists through.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store owns the task collection for the lifetime of the process.
//
// Every mutation derives the next collection from the current one and
// writes it back before returning. A failed write keeps the in-memory update
// and is reported through LastPersistError. Store is not safe for concurrent
// use; callers drive it from a single event loop.
type Store struct {
	kv      KV
	key     string
	ids     IDGenerator
	now     func() time.Time
	logger  *log.Logger
	tasks   Collection
	lastErr error
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator sets the id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for storage warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store backed by kv and loads the persisted collection.
func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		ids:    UUIDGenerator{},
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Tasks returns the current collection.
func (s *Store) Tasks() Collection {
	return s.tasks
}

// Get returns the task with id.
func (s *Store) Get(id string) (Task, bool) {
	return s.tasks.Get(id)
}

// LastPersistError returns the error from the most recent write, or nil.
func (s *Store) LastPersistError() error {
	return s.lastErr
}

// Load reads the persisted collection and makes it current. Missing or
// unreadable data yields an empty collection. Stored records that are not
// valid tasks are skipped and logged; the rest are kept.
func (s *Store) Load() Collection {
	s.tasks = s.read()
	if obs, ok := s.ids.(IDObserver); ok {
		for _, t := range s.tasks {
			obs.Observe(t.ID)
		}
	}
	return s.tasks
}

// Reload discards the in-memory collection and loads it again.
func (s *Store) Reload() Collection {
	s.lastErr = nil
	return s.Load()
}

func (s *Store) read() Collection {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("Reading tasks failed, starting empty", "key", s.key, "err", err)
		return Collection{}
	}
	if !ok {
		s.logger.Debug("No stored tasks", "key", s.key)
		return Collection{}
	}
	c, skipped, err := DecodeRecords([]byte(raw))
	if err != nil {
		s.logger.Warn("Stored tasks are corrupt, starting empty", "key", s.key, "err", err)
		return Collection{}
	}
	for _, err := range skipped {
		s.logger.Warn("Skipping stored task", "key", s.key, "err", err)
	}
	s.logger.Debug("Loaded tasks", "key", s.key, "count", len(c))
	return c
}

// Persist serializes c and writes it under the store key.
func (s *Store) Persist(c Collection) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// commit makes next current and persists it. No-ops are not written.
func (s *Store) commit(next Collection, op string) Collection {
	if Same(next, s.tasks) {
		return s.tasks
	}
	s.tasks = next
	s.lastErr = s.Persist(next)
	if s.lastErr != nil {
		s.logger.Warn("Tasks not saved", "op", op, "err", s.lastErr)
	} else {
		s.logger.Debug("Tasks saved", "op", op, "count", len(next))
	}
	return s.tasks
}

// Add prepends a new active task with the normalized text. Empty text is
// ignored. CreatedAt is kept at the millisecond precision it is stored with.
func (s *Store) Add(rawText string) Collection {
	text := NormalizeText(rawText)
	if text == "" {
		return s.tasks
	}
	task := Task{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: time.UnixMilli(s.now().UnixMilli()),
	}
	return s.commit(s.tasks.Prepend(task), "add")
}

// Toggle flips the completion flag of task id.
func (s *Store) Toggle(id string) Collection {
	return s.commit(s.tasks.Toggle(id), "toggle")
}

// Remove deletes task id immediately.
func (s *Store) Remove(id string) Collection {
	return s.commit(s.tasks.Remove(id), "remove")
}

// Edit replaces the text of task id. Empty text leaves the task unchanged.
func (s *Store) Edit(id, rawText string) Collection {
	return s.commit(s.tasks.Rename(id, NormalizeText(rawText)), "edit")
}

// ClearCompleted removes every completed task.
func (s *Store) ClearCompleted() Collection {
	return s.commit(s.tasks.WithoutCompleted(), "clear-completed")
}

// Resolve finds the task whose id equals ref or, failing that, the single
// task whose id starts with ref.
func (s *Store) Resolve(ref string) (Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Task{}, ErrNotFound
	}
	if t, ok := s.tasks.Get(ref); ok {
		return t, nil
	}

	var match *Task
	for i := range s.tasks {
		if !strings.HasPrefix(s.tasks[i].ID, ref) {
			continue
		}
		if match != nil {
			return Task{}, fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
		}
		match = &s.tasks[i]
	}
	if match == nil {
		return Task{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return *match, nil
}

func (s *Store) newID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.ids.NewID()
		if id != "" && !s.tasks.Contains(id) {
			return id
		}
	}
	for {
		id := TimestampID(s.now())
		if !s.tasks.Contains(id) {
			return id
		}
	}
}
