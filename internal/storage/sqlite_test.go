package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/breakout-sim/internal/telemetry"
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

	id, err := store.SaveRun(RunRecord{
		Pilot:           "track",
		Seed:            42,
		Ticks:           3600,
		BricksDestroyed: 12,
		BricksLeft:      8,
		Escaped:         true,
		MeanSpeed:       201.5,
		MaxSpeed:        240,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("SaveRun() id = %q, expected a UUID", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.Pilot != "track" || got.Seed != 42 || got.Ticks != 3600 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.BricksDestroyed != 12 || got.BricksLeft != 8 || got.Cleared || !got.Escaped {
		t.Errorf("RunByID() outcome = %+v", got)
	}
	if got.MeanSpeed != 201.5 || got.MaxSpeed != 240 {
		t.Errorf("RunByID() speeds = %v/%v", got.MeanSpeed, got.MaxSpeed)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID("does-not-exist")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, expected nil", got)
	}
}

func TestStoreRecentRunsOrder(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i, pilot := range []string{"idle", "track", "sweep"} {
		_, err := store.SaveRun(RunRecord{
			Pilot:     pilot,
			Ticks:     100,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	want := []string{"sweep", "track", "idle"}
	for i, r := range runs {
		if r.Pilot != want[i] {
			t.Errorf("run %d pilot = %q, expected %q", i, r.Pilot, want[i])
		}
	}
	if !runs[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v, expected %v", runs[0].CreatedAt, base.Add(2*time.Minute))
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 25; i++ {
		if _, err := store.SaveRun(RunRecord{Pilot: "idle", Ticks: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}

	// Zero limit falls back to the default of 20.
	runs, err = store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Errorf("Expected 20 runs, got %d", len(runs))
	}
}

func TestStoreRunsByPilotAndClear(t *testing.T) {
	store := openTestStore(t)

	for _, pilot := range []string{"idle", "track", "idle"} {
		if _, err := store.SaveRun(RunRecord{Pilot: pilot}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	idle, err := store.RunsByPilot("idle", 10)
	if err != nil {
		t.Fatalf("RunsByPilot() failed: %v", err)
	}
	if len(idle) != 2 {
		t.Errorf("Expected 2 idle runs, got %d", len(idle))
	}

	if err := store.ClearRuns("idle"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	idle, _ = store.RunsByPilot("idle", 10)
	if len(idle) != 0 {
		t.Errorf("Expected 0 idle runs after clear, got %d", len(idle))
	}
	track, _ := store.RunsByPilot("track", 10)
	if len(track) != 1 {
		t.Errorf("Clearing idle should keep track runs, got %d", len(track))
	}
}

func TestStoreAllPilotStats(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Pilot: "track", BricksDestroyed: 20, Cleared: true, MaxSpeed: 300},
		{Pilot: "track", BricksDestroyed: 10, MaxSpeed: 250},
		{Pilot: "idle", BricksDestroyed: 2, MaxSpeed: 200},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.AllPilotStats()
	if err != nil {
		t.Fatalf("AllPilotStats() failed: %v", err)
	}
	track := stats["track"]
	if track == nil {
		t.Fatal("missing track stats")
	}
	if track.Runs != 2 || track.Cleared != 1 || track.AvgDestroyed != 15 || track.BestSpeed != 300 {
		t.Errorf("track stats = %+v", track)
	}
	if stats["idle"] == nil || stats["idle"].Runs != 1 {
		t.Errorf("idle stats = %+v", stats["idle"])
	}
}

func TestStoreDuplicateID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(RunRecord{ID: "fixed", Pilot: "idle"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{ID: "fixed", Pilot: "idle"}); err == nil {
		t.Error("saving the same ID twice should fail")
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

func TestRecordOf(t *testing.T) {
	sum := telemetry.Summary{
		Ticks:           600,
		BricksDestroyed: 3,
		BricksLeft:      17,
		Escaped:         true,
		MeanSpeed:       199.5,
		MaxSpeed:        204,
	}
	r := RecordOf("run-1", "sweep", 9, sum)
	if r.ID != "run-1" || r.Pilot != "sweep" || r.Seed != 9 {
		t.Errorf("RecordOf() identity = %+v", r)
	}
	if r.Ticks != 600 || r.BricksDestroyed != 3 || r.BricksLeft != 17 || r.Cleared || !r.Escaped {
		t.Errorf("RecordOf() outcome = %+v", r)
	}
	if r.MeanSpeed != 199.5 || r.MaxSpeed != 204 {
		t.Errorf("RecordOf() speeds = %v/%v", r.MeanSpeed, r.MaxSpeed)
	}
}
