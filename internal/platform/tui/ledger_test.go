package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/breakout-sim/internal/storage"
)

func TestLedgerPilots(t *testing.T) {
	pilots := LedgerPilots()
	if len(pilots) < 3 || pilots[0] != allPilots || pilots[1] != HumanPilot {
		t.Fatalf("LedgerPilots() = %v", pilots)
	}
	found := false
	for _, p := range pilots {
		if p == "idle" {
			found = true
		}
	}
	if !found {
		t.Errorf("LedgerPilots() = %v, expected idle", pilots)
	}
}

func TestLedgerRows(t *testing.T) {
	runs := []storage.RunRecord{
		{Pilot: "track", Ticks: 1200, BricksDestroyed: 20, Cleared: true, MaxSpeed: 312.4, CreatedAt: time.Now()},
		{Pilot: "idle", Ticks: 90, Escaped: true},
		{Pilot: "human", Ticks: 10},
	}

	rows := LedgerRows(runs)
	if len(rows) != 3 {
		t.Fatalf("LedgerRows() returned %d rows", len(rows))
	}

	tests := []struct {
		row  int
		col  int
		want string
	}{
		{0, 1, "track"},
		{0, 2, "1200"},
		{0, 3, "20"},
		{0, 4, "cleared"},
		{0, 5, "312"},
		{1, 4, "lost"},
		{2, 4, "stopped"},
	}
	for _, tt := range tests {
		if got := rows[tt.row][tt.col]; got != tt.want {
			t.Errorf("rows[%d][%d] = %q, expected %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestLedgerModelWithoutStore(t *testing.T) {
	m := NewLedgerModel(nil, 80, 24)
	if m.Pilot() != allPilots {
		t.Errorf("Pilot() = %q, expected %q", m.Pilot(), allPilots)
	}
	if m.View() == "" {
		t.Error("View() should render the empty ledger")
	}
}
