package state

import (
	"sync"
	"time"
)

const (
	DefaultHistoryCap    = 256
	DefaultHistoryWindow = 10
)

// Entry is one recorded problem snapshot in the learning history.
type Entry struct {
	ProblemID   string    `json:"problem_id"`
	Description string    `json:"description"`
	Domain      string    `json:"domain,omitempty"`
	Roles       []string  `json:"roles,omitempty"`
	Points      []string  `json:"points,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// History is a bounded, ordered log of past problems. All methods are safe for
// concurrent use; the oldest entries are evicted once cap is reached.
type History struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
	window  int
}

type HistoryOption func(*History)

func WithWindow(n int) HistoryOption {
	return func(h *History) {
		if n > 0 {
			h.window = n
		}
	}
}

func NewHistory(capacity int, opts ...HistoryOption) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	h := &History{
		cap:    capacity,
		window: DefaultHistoryWindow,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Record appends entry and returns a copy of the most recent window, entry included.
func (h *History) Record(entry Entry) []Entry {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	entry.Roles = append([]string(nil), entry.Roles...)
	entry.Points = append([]string(nil), entry.Points...)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	if over := len(h.entries) - h.cap; over > 0 {
		// shift instead of reslicing so evicted entries can be collected
		copy(h.entries, h.entries[over:])
		clear(h.entries[len(h.entries)-over:])
		h.entries = h.entries[:len(h.entries)-over]
	}

	start := len(h.entries) - h.window
	if start < 0 {
		start = 0
	}
	return cloneEntries(h.entries[start:])
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) Cap() int {
	return h.cap
}

func (h *History) Snapshot() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneEntries(h.entries)
}

func cloneEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		e.Roles = append([]string(nil), e.Roles...)
		e.Points = append([]string(nil), e.Points...)
		out[i] = e
	}
	return out
}
