package cache

import (
	"fmt"
	"testing"
)

func TestTranslationStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s := NewTranslationStore(TranslationCapacity)

	for i := 0; i < TranslationCapacity; i++ {
		s.Set(fmt.Sprintf("key-%d", i), Entry{SlangText: fmt.Sprintf("v%d", i)})
	}

	// Touch key-2 so key-0 becomes the true oldest-untouched entry.
	if _, ok := s.Get("key-2"); !ok {
		t.Fatal("key-2 missing before overflow")
	}

	s.Set("overflow", Entry{SlangText: "new"})

	if s.Len() != TranslationCapacity {
		t.Errorf("Len() = %d, want %d", s.Len(), TranslationCapacity)
	}
	if _, ok := s.Get("key-2"); !ok {
		t.Error("recently read key-2 was evicted; reads must count as use")
	}
	if _, ok := s.Get("key-0"); ok {
		t.Error("oldest-untouched key-0 survived the overflow")
	}
	if _, ok := s.Get("overflow"); !ok {
		t.Error("newly inserted key missing")
	}
}

func TestTranslationStoreUpdateDoesNotEvict(t *testing.T) {
	s := NewTranslationStore(2)
	s.Set("a", Entry{SlangText: "1"})
	s.Set("b", Entry{SlangText: "2"})
	s.Set("a", Entry{SlangText: "1x"})

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if e, _ := s.Get("a"); e.SlangText != "1x" {
		t.Errorf("update lost: %q", e.SlangText)
	}
	if _, ok := s.Get("b"); !ok {
		t.Error("update of existing key evicted another entry")
	}
}

func TestTranslationStoreMergeKeepsExistingFields(t *testing.T) {
	s := NewTranslationStore(4)
	s.Set("k", Entry{SlangText: "gg ez", VisualPrompt: "neon arena", Tags: []string{"smug"}})
	s.Set("k", Entry{AudioData: "UEND"})

	e, ok := s.Get("k")
	if !ok {
		t.Fatal("entry missing")
	}
	if e.SlangText != "gg ez" || e.VisualPrompt != "neon arena" {
		t.Errorf("audio merge clobbered text fields: %+v", e)
	}
	if e.AudioData != "UEND" {
		t.Errorf("AudioData = %q, want %q", e.AudioData, "UEND")
	}
	if len(e.Tags) != 1 || e.Tags[0] != "smug" {
		t.Errorf("tags lost in merge: %v", e.Tags)
	}
}

func TestStringStoreFIFOIgnoresReads(t *testing.T) {
	s := NewStringStore(3)
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("c", "3")

	// Reads must not refresh anything in a FIFO store.
	for i := 0; i < 5; i++ {
		s.Get("a")
	}

	s.Set("d", "4")

	if _, ok := s.Get("a"); ok {
		t.Error("earliest-inserted key survived overflow despite FIFO policy")
	}
	for _, k := range []string{"b", "c", "d"} {
		if _, ok := s.Get(k); !ok {
			t.Errorf("key %q missing", k)
		}
	}
}

func TestStringStoreUpdateKeepsInsertionOrder(t *testing.T) {
	s := NewStringStore(2)
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("a", "1x") // update, not re-insert
	s.Set("c", "3")  // overflow still evicts "a"

	if _, ok := s.Get("a"); ok {
		t.Error("updated key kept its insertion slot, should still be first out")
	}
	if v, _ := s.Get("b"); v != "2" {
		t.Error("key b lost")
	}
}

func TestKeyNormalization(t *testing.T) {
	a := Key(" Hello ", "en", "zh")
	b := Key("hello", "en", "zh")
	if a != b {
		t.Errorf("Key is not idempotent under whitespace and case: %q != %q", a, b)
	}
	if Key("hello", "en", "zh") == Key("hello", "zh", "en") {
		t.Error("language pair must be part of the key")
	}
}

func TestReverseKeyIsCaseSensitive(t *testing.T) {
	if ReverseKey("GG", "en") == ReverseKey("gg", "en") {
		t.Error("reverse keys must preserve case")
	}
	if ReverseKey(" gg ", "en") != ReverseKey("gg", "en") {
		t.Error("reverse keys must trim whitespace")
	}
}

func TestAudioKeyNormalization(t *testing.T) {
	if AudioKey(" GG EZ ") != AudioKey("gg ez") {
		t.Error("audio keys must trim and lowercase")
	}
}
