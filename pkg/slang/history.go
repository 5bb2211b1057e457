package slang

import "sync"

// HistoryCapacity is the maximum number of records kept, newest first.
const HistoryCapacity = 50

// History is the bounded, newest-first list of committed records.
//
// Committed records are immutable except for the audio/image backfill
// performed through Backfill. External collaborators (persistence, UI)
// observe changes through the OnAdd/OnClear hooks.
type History struct {
	mu      sync.Mutex
	records []TranslationRecord

	onAdd   []func(TranslationRecord)
	onClear []func()
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Add prepends a record and truncates to capacity.
func (h *History) Add(rec TranslationRecord) {
	h.mu.Lock()
	h.records = append([]TranslationRecord{rec.clone()}, h.records...)
	if len(h.records) > HistoryCapacity {
		h.records = h.records[:HistoryCapacity]
	}
	hooks := h.onAdd
	h.mu.Unlock()

	for _, fn := range hooks {
		fn(rec)
	}
}

// Records returns a copy of the history, newest first.
func (h *History) Records() []TranslationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]TranslationRecord, len(h.records))
	for i, r := range h.records {
		out[i] = r.clone()
	}
	return out
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// Backfill applies fn to the record with the given identifier, if present.
// Only late-arriving asset payloads (audio, image) should be written here;
// the translation text of a committed record stays frozen.
func (h *History) Backfill(id string, fn func(*TranslationRecord)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.records {
		if h.records[i].ID == id {
			fn(&h.records[i])
			return nil
		}
	}
	return ErrRecordNotFound
}

// Clear empties the history unconditionally. The translation caches are
// deliberately left untouched.
func (h *History) Clear() {
	h.mu.Lock()
	h.records = nil
	hooks := h.onClear
	h.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Replace swaps in a previously persisted history list, newest first.
// Hooks are not invoked; this is a load, not a user action.
func (h *History) Replace(records []TranslationRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(records) > HistoryCapacity {
		records = records[:HistoryCapacity]
	}
	h.records = make([]TranslationRecord, len(records))
	copy(h.records, records)
}

// OnAdd registers a callback invoked after every commit.
func (h *History) OnAdd(fn func(TranslationRecord)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAdd = append(h.onAdd, fn)
}

// OnClear registers a callback invoked after a full clear.
func (h *History) OnClear(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClear = append(h.onClear, fn)
}
