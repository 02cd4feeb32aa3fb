package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
)

const (
	// HistoryKey is the single key the recency list is stored under.
	HistoryKey = "weatherAppHistory"
	// MaxHistory bounds the recency list.
	MaxHistory = 5
)

// ErrClosed is returned by key-value stores after Close.
var ErrClosed = errors.New("store is closed")

// KV is the string key-value persistence the history is kept in.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// HistoryStore is the bounded most-recent-first list of searched names.
// It never reports errors to callers: failures are logged and the list
// degrades to empty.
type HistoryStore struct {
	mu sync.Mutex
	kv KV
}

// NewHistoryStore creates a HistoryStore backed by kv.
func NewHistoryStore(kv KV) *HistoryStore {
	return &HistoryStore{kv: kv}
}

// List returns the stored names, most recent first.
func (h *HistoryStore) List() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.load()
}

// Add moves name to the front of the list, dropping any earlier occurrence,
// and keeps at most MaxHistory entries. The whole list is written at once.
func (h *HistoryStore) Add(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.load()
	next := make([]string, 0, MaxHistory)
	next = append(next, name)
	for _, n := range current {
		if n == name {
			continue
		}
		next = append(next, n)
	}
	if len(next) > MaxHistory {
		next = next[:MaxHistory]
	}

	raw, err := json.Marshal(next)
	if err != nil {
		log.Printf("WARN: could not encode search history: %v", err)
		return
	}
	if err := h.kv.Set(HistoryKey, string(raw)); err != nil {
		log.Printf("WARN: could not save search history: %v", err)
	}
}

func (h *HistoryStore) load() []string {
	raw, ok, err := h.kv.Get(HistoryKey)
	if err != nil {
		log.Printf("WARN: could not read search history: %v", err)
		return []string{}
	}
	if !ok || raw == "" {
		return []string{}
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		log.Printf("WARN: stored search history is corrupt, ignoring it: %v", err)
		return []string{}
	}
	if names == nil {
		return []string{}
	}
	return names
}
