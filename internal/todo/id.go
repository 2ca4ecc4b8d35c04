package todo

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces task ids.
type IDGenerator interface {
	NewID() string
}

// ID schemes accepted by NewIDGenerator.
const (
	IDSchemeUUID    = "uuid"
	IDSchemeCounter = "counter"
)

// NewIDGenerator returns the generator for scheme.
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", IDSchemeUUID:
		return UUIDGenerator{}, nil
	case IDSchemeCounter:
		return NewCounterGenerator("t"), nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q, must be one of: uuid, counter", scheme)
	}
}

// IDObserver is implemented by generators that need to see the ids already
// in use.
type IDObserver interface {
	Observe(id string)
}

// UUIDGenerator produces random (version 4) UUIDs, falling back to a
// timestamp plus random suffix if the system random source fails.
type UUIDGenerator struct{}

// NewID returns a new random id.
func (UUIDGenerator) NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return TimestampID(time.Now())
	}
	return id.String()
}

// TimestampID builds an id from the millisecond timestamp and a random
// base36 suffix.
func TimestampID(now time.Time) string {
	suffix := strconv.FormatInt(now.UnixNano()%1e6, 36)
	if n, err := rand.Int(rand.Reader, big.NewInt(1<<40)); err == nil {
		suffix = strconv.FormatInt(n.Int64(), 36)
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + suffix
}

// CounterGenerator produces prefix1, prefix2, ... It continues after the
// highest counter id it has observed, so a fresh process does not reissue
// ids of stored tasks.
type CounterGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewCounterGenerator returns a counter generator starting at 1.
func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{prefix: prefix}
}

// NewID returns the next id in sequence.
func (g *CounterGenerator) NewID() string {
	return g.prefix + strconv.FormatUint(g.n.Add(1), 10)
}

// Observe advances the counter past id when id is one of its own.
func (g *CounterGenerator) Observe(id string) {
	rest, ok := strings.CutPrefix(id, g.prefix)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return
	}
	for {
		cur := g.n.Load()
		if n <= cur || g.n.CompareAndSwap(cur, n) {
			return
		}
	}
}
