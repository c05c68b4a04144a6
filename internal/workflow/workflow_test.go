// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"strings"
	"testing"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/session"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

func testGuide(t *testing.T) (*Guide, *session.Manager) {
	t.Helper()
	mgr, err := session.NewManager(types.SessionConfig{StorageDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	base, err := knowledge.Load()
	if err != nil {
		t.Fatal(err)
	}
	return NewGuide(mgr, base), mgr
}

func TestGuidedFlow(t *testing.T) {
	g, mgr := testGuide(t)

	step, err := g.Start("")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if step.Stage != StageProblemDefinition {
		t.Fatalf("Stage = %q, want %q", step.Stage, StageProblemDefinition)
	}
	if !strings.Contains(step.Prompt, "technical problem") {
		t.Errorf("opening prompt = %q", step.Prompt)
	}
	id := step.SessionID

	step, err = g.Continue(id, "drone frame cracks under vibration")
	if err != nil {
		t.Fatalf("Continue(problem) error = %v", err)
	}
	if step.Stage != StageContradictionAnalysis {
		t.Errorf("Stage = %q, want %q", step.Stage, StageContradictionAnalysis)
	}
	if !strings.Contains(step.Prompt, "ideal final result") {
		t.Errorf("prompt = %q", step.Prompt)
	}

	sess, err := mgr.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Problem != "drone frame cracks under vibration" {
		t.Errorf("session problem not updated: %q", sess.Problem)
	}
	if sess.Workflow.ProblemStatement != sess.Problem {
		t.Errorf("ProblemStatement = %q", sess.Workflow.ProblemStatement)
	}

	step, err = g.Continue(id, "the frame absorbs vibration without any added parts")
	if err != nil {
		t.Fatalf("Continue(ifr) error = %v", err)
	}
	if step.Stage != StagePrincipleSelection {
		t.Errorf("Stage = %q, want %q", step.Stage, StagePrincipleSelection)
	}

	step, err = g.Continue(id, "improve strength without increasing weight")
	if err != nil {
		t.Fatalf("Continue(contradiction) error = %v", err)
	}
	if step.Stage != StageSolutionGeneration {
		t.Errorf("Stage = %q, want %q", step.Stage, StageSolutionGeneration)
	}
	if len(step.Notes) == 0 {
		t.Fatal("expected principle recommendations after the contradiction stage")
	}
	if !strings.Contains(step.Notes[0], "Recommended principle 1: Segmentation") {
		t.Errorf("Notes[0] = %q", step.Notes[0])
	}

	sess, err = mgr.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(sess.Workflow.RecommendedPrinciples) == 0 || sess.Workflow.RecommendedPrinciples[0] != 1 {
		t.Errorf("RecommendedPrinciples = %v", sess.Workflow.RecommendedPrinciples)
	}

	step, err = g.Continue(id, "focus on the motor mounts first")
	if err != nil {
		t.Fatalf("Continue(focus) error = %v", err)
	}
	if step.Stage != StageEvaluation {
		t.Errorf("Stage = %q, want %q", step.Stage, StageEvaluation)
	}
	if len(step.Notes) < 3 {
		t.Errorf("expected at least 3 brainstormed directions, got %d", len(step.Notes))
	}

	step, err = g.Continue(id, "variant one is most feasible; print a test frame")
	if err != nil {
		t.Fatalf("Continue(evaluation) error = %v", err)
	}
	if !step.Completed || step.Stage != StageCompleted {
		t.Errorf("final step = %+v, want completed", step)
	}

	sess, err = mgr.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Stage != session.StageSolutions {
		t.Errorf("session stage = %q after completion", sess.Stage)
	}
	if len(sess.Workflow.Responses) != 5 {
		t.Errorf("recorded %d responses, want 5", len(sess.Workflow.Responses))
	}
}

func TestStartWithProblem(t *testing.T) {
	g, _ := testGuide(t)

	step, err := g.Start("bearing seizes at high temperature")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if step.Stage != StageContradictionAnalysis {
		t.Errorf("Stage = %q, want the flow already past problem definition", step.Stage)
	}
}

func TestContinueOnCompleted(t *testing.T) {
	g, mgr := testGuide(t)

	step, err := g.Start("")
	if err != nil {
		t.Fatal(err)
	}
	sess, err := mgr.Get(step.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	sess.Workflow.Stage = StageCompleted
	if err := mgr.Save(sess); err != nil {
		t.Fatal(err)
	}

	step, err = g.Continue(sess.ID, "anything")
	if err != nil {
		t.Fatalf("Continue() error = %v", err)
	}
	if !step.Completed {
		t.Error("completed session should stay completed")
	}
	if len(step.Notes) == 0 || !strings.Contains(step.Notes[0], "Reset") {
		t.Errorf("Notes = %v, want a reset hint", step.Notes)
	}
}

func TestReset(t *testing.T) {
	g, _ := testGuide(t)

	step, err := g.Start("gearbox whines at speed")
	if err != nil {
		t.Fatal(err)
	}

	step, err = g.Reset(step.SessionID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if step.Stage != StageProblemDefinition || step.Completed {
		t.Errorf("after reset step = %+v", step)
	}

	status, err := g.Status(step.SessionID)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Stage != StageProblemDefinition {
		t.Errorf("Status stage = %q", status.Stage)
	}
}

func TestContinueErrors(t *testing.T) {
	g, mgr := testGuide(t)

	if _, err := g.Continue("missing", "input"); err == nil {
		t.Error("Continue on unknown session should fail")
	}

	step, err := g.Start("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Continue(step.SessionID, "   "); err == nil {
		t.Error("Continue with blank input should fail")
	}

	// Sessions created by a one-shot solve carry no workflow state.
	plain, err := mgr.Create("plain solve session")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Continue(plain.ID, "input"); err == nil || !strings.Contains(err.Error(), "not a guided session") {
		t.Errorf("Continue on plain session error = %v", err)
	}
}
