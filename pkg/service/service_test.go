package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/lodestone/pkg/catalog"
	"github.com/hazyhaar/lodestone/pkg/match"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := New(catalog.Config{Entities: []string{
		"Büro AG",
		"Büro Offices Berlin GmbH & Co. KG",
		"Acme Corporation",
		"Test Entity GmbH",
	}}, match.DefaultWeights(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewEmptySource(t *testing.T) {
	if _, err := New(catalog.Config{}, match.DefaultWeights(), nil); err == nil {
		t.Error("New with empty source: want error")
	}
}

func TestMatch(t *testing.T) {
	s := newTestService(t)
	got, err := s.Match("Buero AG", 2)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	if got[0].Entity != "Büro AG" {
		t.Errorf("top entity = %q, want Büro AG", got[0].Entity)
	}
}

func TestMatchBatchIsolation(t *testing.T) {
	s := newTestService(t)

	items := s.MatchBatch([]string{"Buero AG", "   ", "Acme Corp"})
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}

	if items[0].Error != "" || items[0].Match != "Büro AG" {
		t.Errorf("item 0 = %+v, want Büro AG match", items[0])
	}
	if items[1].Error == "" || items[1].Match != "" || items[1].Confidence != 0 {
		t.Errorf("item 1 = %+v, want error marker with zero confidence", items[1])
	}
	if items[2].Error != "" || items[2].Match != "Acme Corporation" {
		t.Errorf("item 2 = %+v, want Acme Corporation match", items[2])
	}
}

func TestReloadSwapsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	os.WriteFile(path, []byte("names\nBüro AG\n"), 0o644)

	s, err := New(catalog.Config{File: path}, match.DefaultWeights(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Size() != 1 {
		t.Fatalf("Size = %d, want 1", s.Size())
	}

	os.WriteFile(path, []byte("names\nBüro AG\nAcme Corporation\n"), 0o644)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Size() != 2 {
		t.Errorf("Size after reload = %d, want 2", s.Size())
	}
}

func TestReloadFailureKeepsMatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	os.WriteFile(path, []byte("names\nBüro AG\n"), 0o644)

	s, err := New(catalog.Config{File: path}, match.DefaultWeights(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	os.Remove(path)
	if err := s.Reload(); err == nil {
		t.Fatal("Reload with missing file: want error")
	}

	// Old matcher still serves.
	if _, err := s.Match("Buro AG", 1); err != nil {
		t.Errorf("Match after failed reload: %v", err)
	}
}

func TestEntitiesCopy(t *testing.T) {
	s := newTestService(t)
	entities := s.Entities()
	entities[0] = "mutated"
	if s.Entities()[0] != "Büro AG" {
		t.Error("Entities() must return a copy")
	}
}
