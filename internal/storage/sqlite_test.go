package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(policy string, turns int) RunRecord {
	return RunRecord{
		Preset: "k2",
		Policy: policy,
		GridW:  4,
		GridH:  4,
		Agents: 2,
		Turns:  turns,
		Merges: 1,
		Seed:   int64(turns),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(record("random", 12))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() should assign a run ID")
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.Policy != "random" || got.Turns != 12 || got.GridW != 4 || got.Seed != 12 {
		t.Errorf("RunByID() = %+v", got)
	}

	missing, err := store.RunByID("does-not-exist")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Error("RunByID() of unknown ID should return nil")
	}
}

func TestStoreKeepsExplicitRunID(t *testing.T) {
	store := openTestStore(t)

	rec := record("random", 3)
	rec.RunID = "fixed-id"
	id, err := store.SaveRun(rec)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() = %q, expected fixed-id", id)
	}
	if _, err := store.SaveRun(rec); err == nil {
		t.Error("duplicate run IDs should be rejected")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveRun(record("random", i*10))
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	// Newest first
	if runs[0].Turns != 50 || runs[1].Turns != 40 || runs[2].Turns != 30 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreRunsForPolicy(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(record("random", 30))
	store.SaveRun(record("random", 10))
	store.SaveRun(record("random", 20))
	store.SaveRun(record("biased_unexplored", 5))

	runs, err := store.RunsForPolicy("random", 10)
	if err != nil {
		t.Fatalf("RunsForPolicy() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 random runs, got %d", len(runs))
	}
	// Shortest first
	if runs[0].Turns != 10 || runs[1].Turns != 20 || runs[2].Turns != 30 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStorePolicySummary(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.PolicySummary("random")
	if err != nil {
		t.Fatalf("PolicySummary() failed: %v", err)
	}
	if empty.Runs != 0 || empty.Shortest != -1 || empty.Longest != -1 {
		t.Errorf("empty summary = %+v", empty)
	}

	store.SaveRun(record("random", 4))
	store.SaveRun(record("random", 8))
	store.SaveRun(record("random_valid", 100))

	s, err := store.PolicySummary("random")
	if err != nil {
		t.Fatalf("PolicySummary() failed: %v", err)
	}
	if s.Runs != 2 || s.Shortest != 4 || s.Longest != 8 || s.AvgTurns != 6 {
		t.Errorf("PolicySummary() = %+v", s)
	}

	all, err := store.AllPolicySummaries()
	if err != nil {
		t.Fatalf("AllPolicySummaries() failed: %v", err)
	}
	if len(all) != 2 || all["random_valid"].Longest != 100 {
		t.Errorf("AllPolicySummaries() = %v", all)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(record("random", 1))
	store.SaveRun(record("random", 2))
	store.SaveRun(record("random_valid", 3))

	if err := store.ClearRuns("random"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.RecentRuns(10)
	if len(runs) != 1 || runs[0].Policy != "random_valid" {
		t.Errorf("Other policies should not be affected by clearing random: %v", runs)
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(all) failed: %v", err)
	}
	runs, _ = store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected empty archive, got %d runs", len(runs))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveRunResult(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRunResult(session.RunResult{
		Preset:    "3-5",
		Policy:    "biased_unexplored",
		Grid:      core.Grid{W: 5, H: 5},
		Agents:    3,
		Turns:     12,
		Merges:    2,
		Seed:      7,
		Completed: true,
	})
	if err != nil {
		t.Fatalf("SaveRunResult() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRunResult() returned empty id")
	}

	rec, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("RunByID() returned nil")
	}
	if rec.GridW != 5 || rec.GridH != 5 || rec.Agents != 3 || rec.Turns != 12 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestStoreSkipsIncompleteRunResult(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRunResult(session.RunResult{Policy: "random", Turns: 100})
	if err != nil {
		t.Fatalf("SaveRunResult() failed: %v", err)
	}
	if id != "" {
		t.Errorf("id = %q, want empty for incomplete run", id)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("len(runs) = %d, want 0", len(runs))
	}
}

func TestStoreRunByIDPrefix(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"abc12345-0001", "abc12345-0002", "def67890-0001"} {
		rec := record("random", 4)
		rec.RunID = id
		if _, err := store.SaveRun(rec); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RunByID("def6")
	if err != nil {
		t.Fatalf("RunByID(prefix) failed: %v", err)
	}
	if got == nil || got.RunID != "def67890-0001" {
		t.Errorf("RunByID(def6) = %+v, expected def67890-0001", got)
	}

	got, err = store.RunByID("abc12345-0002")
	if err != nil || got == nil || got.RunID != "abc12345-0002" {
		t.Errorf("RunByID(full) = %+v, %v", got, err)
	}

	if _, err := store.RunByID("abc1"); !errors.Is(err, ErrAmbiguousRunID) {
		t.Errorf("RunByID(abc1) err = %v, expected ErrAmbiguousRunID", err)
	}

	if got, err := store.RunByID(""); err != nil || got != nil {
		t.Errorf("RunByID(\"\") = %+v, %v; expected nil, nil", got, err)
	}
}
