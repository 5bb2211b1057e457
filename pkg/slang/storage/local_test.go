package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ganklab/gankspeak/pkg/slang"
)

func testStore(t *testing.T) *Local {
	t.Helper()
	l, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return l
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	l := testStore(t)
	records, err := l.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from missing file, want 0", len(records))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	l := testStore(t)
	in := []slang.TranslationRecord{
		{
			ID:             "2",
			OriginalText:   "that was easy",
			TranslatedText: "gg ez no re",
			Tags:           []string{"smug"},
			CreatedAt:      time.Now().UTC().Truncate(time.Second),
			SourceLang:     "en",
			TargetLang:     "en",
		},
		{ID: "1", OriginalText: "hello", TranslatedText: "yo", SourceLang: "auto", TargetLang: "en"},
	}
	if err := l.Save(in); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	out, err := l.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d records, want %d", len(out), len(in))
	}
	if out[0].ID != "2" || out[0].TranslatedText != "gg ez no re" {
		t.Errorf("newest record mangled: %+v", out[0])
	}
	if len(out[0].Tags) != 1 || out[0].Tags[0] != "smug" {
		t.Errorf("tags mangled: %v", out[0].Tags)
	}
}

func TestLoadCorruptFileStartsFresh(t *testing.T) {
	l := testStore(t)
	if err := os.WriteFile(l.Path(), []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	records, err := l.Load()
	if err != nil {
		t.Fatalf("Load() = %v, corrupt file must not error", err)
	}
	if records != nil {
		t.Errorf("got %v, want nil", records)
	}
}

func TestAttachFlushesOnCommitAndClear(t *testing.T) {
	l := testStore(t)
	h := slang.NewHistory()
	l.Attach(h)

	h.Add(slang.TranslationRecord{ID: "1", TranslatedText: "yo"})
	out, err := l.Load()
	if err != nil || len(out) != 1 {
		t.Fatalf("after Add: records=%v err=%v, want 1 record", out, err)
	}

	h.Clear()
	out, err = l.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(out) != 0 {
		t.Errorf("after Clear: %d records persisted, want 0", len(out))
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := New(dir); err != nil {
		t.Fatalf("New() = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
}
