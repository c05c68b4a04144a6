// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(types.SessionConfig{StorageDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCreateAndGet(t *testing.T) {
	m := testManager(t)

	s, err := m.Create("reduce wing weight")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID == "" || s.Stage != StageProblem {
		t.Errorf("unexpected session %+v", s)
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Problem != "reduce wing weight" {
		t.Errorf("Problem = %q", got.Problem)
	}

	if _, err := m.Create("   "); err == nil {
		t.Error("Create with blank problem should fail")
	}
	if _, err := m.Get("missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Get(missing) error = %v, want not found", err)
	}
}

func TestSaveRoundTripsReport(t *testing.T) {
	m := testManager(t)

	s, err := m.Create("improve brake cooling")
	if err != nil {
		t.Fatal(err)
	}
	s.Stage = StageResearch
	s.Report = &types.ResearchReport{
		Problem:       "improve brake cooling",
		TotalFindings: 12,
		Themes: []types.SynthesizedTheme{
			{Title: "Principle 19: Periodic action", PrincipleID: 19, Confidence: 0.6},
		},
	}
	if err := m.Save(s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Stage != StageResearch || got.Report == nil {
		t.Fatalf("loaded session %+v", got)
	}
	if got.Report.TotalFindings != 12 || got.Report.Themes[0].PrincipleID != 19 {
		t.Errorf("report did not round-trip: %+v", got.Report)
	}
}

func TestListOrdersByRecency(t *testing.T) {
	m := testManager(t)

	first, err := m.Create("first problem")
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Create("second problem")
	if err != nil {
		t.Fatal(err)
	}

	// Touch the first so it becomes the most recent.
	first.Stage = StageResearch
	if err := m.Save(first); err != nil {
		t.Fatal(err)
	}

	sessions, err := m.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != first.ID {
		t.Errorf("most recent session = %s, want %s", sessions[0].ID, first.ID)
	}
	_ = second

	limited, err := m.List(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("List(1) returned %d sessions", len(limited))
	}
}

func TestDelete(t *testing.T) {
	m := testManager(t)

	s, err := m.Create("to be deleted")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(s.ID); err == nil {
		t.Error("deleted session still loads")
	}
	if err := m.Delete(s.ID); err == nil {
		t.Error("double delete should fail")
	}
}

func TestCleanup(t *testing.T) {
	m := testManager(t)

	stale, err := m.Create("stale problem")
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := m.Create("fresh problem")
	if err != nil {
		t.Fatal(err)
	}

	// Backdate the stale session past the cutoff, bypassing Save's
	// timestamp refresh.
	stale.UpdatedAt = time.Now().UTC().AddDate(0, 0, -90)
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(m.path(stale.ID), data, 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := m.Cleanup(30)
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed %d sessions, want 1", removed)
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Errorf("fresh session should survive cleanup: %v", err)
	}
	if _, err := m.Get(stale.ID); err == nil {
		t.Error("stale session should be gone")
	}
}
