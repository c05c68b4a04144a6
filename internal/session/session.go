// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session persists analysis sessions as JSON files so a
// problem can be revisited, re-researched, and compared across runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/triz-copilot/pkg/types"
)

// Stage names the phase a session last completed.
const (
	StageProblem   = "problem"
	StageResearch  = "research"
	StageSolutions = "solutions"
)

// Session is one saved analysis.
type Session struct {
	// ID is the session's identifier, assigned at creation.
	ID string `json:"id"`

	// Problem is the statement under analysis.
	Problem string `json:"problem"`

	// Stage is the last completed phase.
	Stage string `json:"stage"`

	// Report is the research report, when the research phase ran.
	Report *types.ResearchReport `json:"report,omitempty"`

	// Solutions are the concepts derived from the report.
	Solutions []types.SolutionConcept `json:"solutions,omitempty"`

	// Workflow holds guided-analysis state. Nil for sessions created
	// by a one-shot solve.
	Workflow *Workflow `json:"workflow,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Workflow is the state of a guided analysis: the current stage plus
// everything the user has supplied so far.
type Workflow struct {
	// Stage is the guided stage currently awaiting input.
	Stage string `json:"stage"`

	// ProblemStatement is the user's problem description.
	ProblemStatement string `json:"problem_statement,omitempty"`

	// IdealFinalResult is the user's stated ideal outcome.
	IdealFinalResult string `json:"ideal_final_result,omitempty"`

	// Contradictions are the trade-offs the user described.
	Contradictions []string `json:"contradictions,omitempty"`

	// RecommendedPrinciples are the principle numbers suggested from
	// the described contradictions.
	RecommendedPrinciples []int `json:"recommended_principles,omitempty"`

	// Responses records the raw input given at each stage.
	Responses map[string]string `json:"responses,omitempty"`
}

// Manager stores sessions under one directory, one JSON file each.
type Manager struct {
	dir string
}

// NewManager creates the storage directory if needed.
func NewManager(cfg types.SessionConfig) (*Manager, error) {
	if cfg.StorageDir == "" {
		return nil, fmt.Errorf("session storage directory not set")
	}
	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	return &Manager{dir: cfg.StorageDir}, nil
}

// Create starts a session for a problem statement.
func (m *Manager) Create(problem string) (*Session, error) {
	if strings.TrimSpace(problem) == "" {
		return nil, fmt.Errorf("problem statement is empty")
	}
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		Problem:   problem,
		Stage:     StageProblem,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the session to disk, refreshing its update time.
func (m *Manager) Save(s *Session) error {
	s.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	// Write-then-rename keeps a crash from truncating a session.
	path := m.path(s.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}
	return nil
}

// Get loads a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	data, err := os.ReadFile(m.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session %s not found", id)
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", id, err)
	}
	return &s, nil
}

// List returns up to limit sessions, most recently updated first.
// Unreadable files are skipped.
func (m *Manager) List(limit int) ([]*Session, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("reading session directory: %w", err)
	}

	var sessions []*Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		s, err := m.Get(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	if err := os.Remove(m.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("session %s not found", id)
		}
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Cleanup deletes sessions not updated in the given number of days and
// reports how many were removed.
func (m *Manager) Cleanup(days int) (int, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	sessions, err := m.List(0)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, s := range sessions {
		if s.UpdatedAt.Before(cutoff) {
			if err := m.Delete(s.ID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

func (m *Manager) path(id string) string {
	// Session ids are uuids; reject anything that could escape the dir.
	return filepath.Join(m.dir, filepath.Base(id)+".json")
}
