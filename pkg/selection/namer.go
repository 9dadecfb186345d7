package selection

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Namer derives instance names from a template base name by appending a
// millisecond timestamp. Suffixes strictly increase for the lifetime of the
// Namer, so two drops within the same millisecond still get distinct names.
type Namer struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewNamer returns a Namer reading time from now. A nil clock uses time.Now.
func NewNamer(now func() time.Time) *Namer {
	if now == nil {
		now = time.Now
	}
	return &Namer{now: now}
}

var processNamer = NewNamer(time.Now)

// Name returns base + "-" + suffix.
func (n *Namer) Name(base string) string {
	n.mu.Lock()
	suffix := n.now().UnixMilli()
	if suffix <= n.last {
		suffix = n.last + 1
	}
	n.last = suffix
	n.mu.Unlock()

	return strings.TrimSpace(base) + "-" + strconv.FormatInt(suffix, 10)
}
