package storage

// MemoryKV is a map-backed store. Values do not survive the process.
type MemoryKV struct {
	entries map[string]string
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(key, value string) error {
	m.entries[key] = value
	return nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}

// Describe returns "memory".
func (m *MemoryKV) Describe() string {
	return "memory"
}
