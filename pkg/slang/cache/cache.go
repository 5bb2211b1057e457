// Package cache provides the three bounded in-memory stores backing the
// translation orchestrator: a recency-evicting translation store and two
// FIFO stores for reverse translations and synthesized audio.
package cache

import "sync"

// Store capacities. Eviction triggers when an insert would exceed these.
const (
	TranslationCapacity = 50
	ReverseCapacity     = 100
	AudioCapacity       = 50
)

// Entry is the cached payload for one translated utterance. AudioData may
// be empty: audio arriving later merges into a previously cached text-only
// entry rather than replacing it.
type Entry struct {
	SlangText    string
	VisualPrompt string
	Tags         []string
	AudioData    string
}

type translationEntry struct {
	Entry
	lastUsed uint64
}

// TranslationStore is the bounded translation cache. Reads count as use:
// a hit refreshes recency, and eviction removes the entry whose last access
// is oldest.
type TranslationStore struct {
	mu       sync.Mutex
	entries  map[string]*translationEntry
	capacity int
	tick     uint64
}

// NewTranslationStore creates a store bounded to the given capacity.
func NewTranslationStore(capacity int) *TranslationStore {
	return &TranslationStore{
		entries:  make(map[string]*translationEntry, capacity),
		capacity: capacity,
	}
}

// Get returns the entry for key, refreshing its recency on a hit.
func (s *TranslationStore) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	s.tick++
	e.lastUsed = s.tick
	return e.Entry, true
}

// Set merges an entry into the store under key. Non-empty fields of the
// incoming entry win; empty fields keep whatever was cached before, so a
// later audio payload augments a text-only entry. Inserting a new key at
// capacity evicts the least recently used entry first.
func (s *TranslationStore) Set(key string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick++

	if cur, ok := s.entries[key]; ok {
		cur.Entry = merge(cur.Entry, entry)
		cur.lastUsed = s.tick
		return
	}

	if len(s.entries) >= s.capacity {
		s.evictOldest()
	}
	s.entries[key] = &translationEntry{Entry: entry, lastUsed: s.tick}
}

// Len returns the number of cached entries.
func (s *TranslationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictOldest scans for the minimum last-access mark. Caller holds the lock.
func (s *TranslationStore) evictOldest() {
	var (
		oldestKey string
		oldest    uint64
		found     bool
	)
	for key, e := range s.entries {
		if !found || e.lastUsed < oldest {
			oldestKey = key
			oldest = e.lastUsed
			found = true
		}
	}
	if found {
		delete(s.entries, oldestKey)
	}
}

func merge(old, new Entry) Entry {
	out := old
	if new.SlangText != "" {
		out.SlangText = new.SlangText
	}
	if new.VisualPrompt != "" {
		out.VisualPrompt = new.VisualPrompt
	}
	if len(new.Tags) > 0 {
		out.Tags = new.Tags
	}
	if new.AudioData != "" {
		out.AudioData = new.AudioData
	}
	return out
}

// StringStore is a bounded string-to-string cache with strict FIFO
// eviction: overflow always removes the earliest-inserted key, regardless
// of access pattern. Reads do not refresh anything.
type StringStore struct {
	mu       sync.Mutex
	entries  map[string]string
	order    []string
	capacity int
}

// NewStringStore creates a FIFO store bounded to the given capacity.
func NewStringStore(capacity int) *StringStore {
	return &StringStore{
		entries:  make(map[string]string, capacity),
		capacity: capacity,
	}
}

// Get returns the value for key.
func (s *StringStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores value under key. Updating an existing key keeps its original
// insertion position; inserting a new key at capacity drops the
// first-inserted key.
func (s *StringStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		s.entries[key] = value
		return
	}

	if len(s.order) >= s.capacity {
		first := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, first)
	}
	s.entries[key] = value
	s.order = append(s.order, key)
}

// Len returns the number of cached entries.
func (s *StringStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Set bundles the three stores owned by one orchestrator instance. The
// stores live for the lifetime of the process and are never torn down;
// clearing the user's history does not touch them.
type Set struct {
	Translations *TranslationStore
	Reverse      *StringStore
	Audio        *StringStore
}

// NewSet creates the three stores at their standard capacities.
func NewSet() *Set {
	return &Set{
		Translations: NewTranslationStore(TranslationCapacity),
		Reverse:      NewStringStore(ReverseCapacity),
		Audio:        NewStringStore(AudioCapacity),
	}
}
