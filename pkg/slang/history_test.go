package slang

import (
	"fmt"
	"testing"
)

func TestHistoryNewestFirstAndBounded(t *testing.T) {
	h := NewHistory()
	for i := 0; i < HistoryCapacity+5; i++ {
		h.Add(TranslationRecord{ID: fmt.Sprintf("%d", i)})
	}
	records := h.Records()
	if len(records) != HistoryCapacity {
		t.Fatalf("len = %d, want %d", len(records), HistoryCapacity)
	}
	if records[0].ID != fmt.Sprintf("%d", HistoryCapacity+4) {
		t.Errorf("newest record is %q, want the last added", records[0].ID)
	}
}

func TestHistoryRecordsAreCopies(t *testing.T) {
	h := NewHistory()
	h.Add(TranslationRecord{ID: "1", Tags: []string{"smug"}})
	records := h.Records()
	records[0].Tags[0] = "mutated"
	if h.Records()[0].Tags[0] != "smug" {
		t.Error("Records() exposed internal state")
	}
}

func TestHistoryBackfill(t *testing.T) {
	h := NewHistory()
	h.Add(TranslationRecord{ID: "1"})

	if err := h.Backfill("1", func(r *TranslationRecord) { r.ImageData = "img" }); err != nil {
		t.Fatalf("Backfill() = %v", err)
	}
	if h.Records()[0].ImageData != "img" {
		t.Error("backfill not applied")
	}
	if err := h.Backfill("missing", func(*TranslationRecord) {}); err != ErrRecordNotFound {
		t.Errorf("Backfill(missing) = %v, want ErrRecordNotFound", err)
	}
}

func TestHistoryHooks(t *testing.T) {
	h := NewHistory()
	var added, cleared int
	h.OnAdd(func(TranslationRecord) { added++ })
	h.OnClear(func() { cleared++ })

	h.Add(TranslationRecord{ID: "1"})
	h.Clear()

	if added != 1 || cleared != 1 {
		t.Errorf("hooks fired add=%d clear=%d, want 1/1", added, cleared)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d after clear", h.Len())
	}
}

func TestHistoryReplaceSkipsHooks(t *testing.T) {
	h := NewHistory()
	fired := false
	h.OnAdd(func(TranslationRecord) { fired = true })

	h.Replace([]TranslationRecord{{ID: "a"}, {ID: "b"}})

	if fired {
		t.Error("Replace must not fire commit hooks, it is a load")
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}
