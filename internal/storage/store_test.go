package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/AcaciaBible/core/corpus"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "acacia.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testCorpus() corpus.Corpus {
	return corpus.Corpus{
		"John": {
			"3": {"16": "For God so loved the world.", "17": "For God sent not his Son to condemn."},
		},
		"Genesis": {
			"1": {"1": "In the beginning."},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testCorpus()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.VerseCount(); got != 3 {
		t.Errorf("VerseCount() = %d, want 3", got)
	}
	if got := loaded["John"]["3"]["16"]; got != "For God so loved the world." {
		t.Errorf("John 3:16 = %q", got)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testCorpus()); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if err := s.Save(ctx, testCorpus()); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	n, err := s.VerseCount(ctx)
	if err != nil {
		t.Fatalf("VerseCount() error = %v", err)
	}
	if n != 3 {
		t.Errorf("VerseCount() = %d after double save, want 3", n)
	}
}

func TestSaveOverwritesText(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, testCorpus()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	updated := corpus.Corpus{"John": {"3": {"16": "revised text"}}}
	if err := s.Save(ctx, updated); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded["John"]["3"]["16"]; got != "revised text" {
		t.Errorf("John 3:16 = %q, want revised text", got)
	}
	// The untouched verse survives.
	if got := loaded["Genesis"]["1"]["1"]; got != "In the beginning." {
		t.Errorf("Genesis 1:1 = %q", got)
	}
}

func TestLoadEmpty(t *testing.T) {
	s := openTestStore(t)

	loaded, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.VerseCount(); got != 0 {
		t.Errorf("VerseCount() = %d, want 0", got)
	}
}

func TestDriverInfo(t *testing.T) {
	if DriverName() == "" || DriverType() == "" || DriverPackage() == "" {
		t.Error("driver info must be populated")
	}
}
