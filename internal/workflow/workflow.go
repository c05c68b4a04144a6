// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow drives a guided analysis through fixed stages, one
// question at a time: problem definition, ideal final result,
// contradiction analysis, principle selection, solution generation,
// and evaluation. Progress persists in the session store, so a flow
// can be resumed across invocations.
package workflow

import (
	"fmt"
	"strings"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/report"
	"github.com/pdiddy/triz-copilot/internal/session"
)

// Guided stage names, in order.
const (
	StageProblemDefinition     = "problem_definition"
	StageContradictionAnalysis = "contradiction_analysis"
	StagePrincipleSelection    = "principle_selection"
	StageSolutionGeneration    = "solution_generation"
	StageEvaluation            = "evaluation"
	StageCompleted             = "completed"
)

var stageOrder = []string{
	StageProblemDefinition,
	StageContradictionAnalysis,
	StagePrincipleSelection,
	StageSolutionGeneration,
	StageEvaluation,
	StageCompleted,
}

var stagePrompts = map[string]string{
	StageProblemDefinition: "Describe the technical problem you are trying to solve. " +
		"Name the system involved and what is not working.",
	StageContradictionAnalysis: "What is your ideal final result? Describe the outcome " +
		"if the problem solved itself with no added cost or complexity.",
	StagePrincipleSelection: "What is the core contradiction? State what improves and " +
		"what gets worse as a consequence (e.g. \"improve strength without increasing weight\").",
	StageSolutionGeneration: "Review the recommended principles above. Which aspects of " +
		"the problem are most critical to address first?",
	StageEvaluation: "Evaluate the generated directions: which is most feasible, and " +
		"what would a first prototype look like?",
	StageCompleted: "The guided analysis is complete. Show the session for the full " +
		"record, or reset it to start over.",
}

// placeholder problem until the user answers the first question.
const pendingProblem = "(guided analysis, problem pending)"

// Guide advances guided sessions through the stages.
type Guide struct {
	sessions *session.Manager
	base     *knowledge.Base
}

// NewGuide creates a Guide over the given session store and knowledge
// base.
func NewGuide(sessions *session.Manager, base *knowledge.Base) *Guide {
	return &Guide{sessions: sessions, base: base}
}

// Step is the outcome of one workflow operation: where the flow now
// stands and what to ask next.
type Step struct {
	// SessionID identifies the guided session.
	SessionID string `json:"session_id"`

	// Stage is the stage now awaiting input.
	Stage string `json:"stage"`

	// Prompt is the next question to put to the user.
	Prompt string `json:"prompt"`

	// Notes carry stage findings, such as recommended principles or
	// brainstormed directions.
	Notes []string `json:"notes,omitempty"`

	// Completed reports whether the flow has finished.
	Completed bool `json:"completed"`
}

// Start creates a guided session. A non-empty problem statement is
// treated as the answer to the first question, so the flow opens at
// the ideal-final-result stage.
func (g *Guide) Start(problem string) (Step, error) {
	sess, err := g.sessions.Create(pendingProblem)
	if err != nil {
		return Step{}, err
	}
	sess.Workflow = &session.Workflow{
		Stage:     StageProblemDefinition,
		Responses: make(map[string]string),
	}
	if err := g.sessions.Save(sess); err != nil {
		return Step{}, fmt.Errorf("saving session: %w", err)
	}
	if strings.TrimSpace(problem) != "" {
		return g.Continue(sess.ID, problem)
	}
	return g.step(sess, nil), nil
}

// Continue records the user's answer for the current stage and
// advances the flow, returning the next prompt. Answering the
// contradiction question triggers principle recommendations; entering
// solution generation triggers a brainstorm on the leading principle.
func (g *Guide) Continue(id, input string) (Step, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Step{}, fmt.Errorf("workflow input is empty")
	}

	sess, wf, err := g.load(id)
	if err != nil {
		return Step{}, err
	}
	if wf.Stage == StageCompleted {
		return g.step(sess, []string{"Analysis already completed. Reset the session to start over."}), nil
	}

	if wf.Responses == nil {
		wf.Responses = make(map[string]string)
	}
	wf.Responses[wf.Stage] = input

	var notes []string
	switch wf.Stage {
	case StageProblemDefinition:
		wf.ProblemStatement = input
		sess.Problem = input
	case StageContradictionAnalysis:
		wf.IdealFinalResult = input
	case StagePrincipleSelection:
		wf.Contradictions = append(wf.Contradictions, input)
		wf.RecommendedPrinciples = report.SuggestPrinciples(g.base, input, 5)
		notes = g.principleNotes(wf.RecommendedPrinciples)
	case StageSolutionGeneration:
		notes = g.brainstormNotes(wf)
	case StageEvaluation:
		notes = []string{"Evaluation recorded. The full analysis is in the session record."}
	}

	wf.Stage = nextStage(wf.Stage)
	if wf.Stage == StageCompleted {
		sess.Stage = session.StageSolutions
	}
	if err := g.sessions.Save(sess); err != nil {
		return Step{}, fmt.Errorf("saving session: %w", err)
	}
	return g.step(sess, notes), nil
}

// Reset returns a guided session to the first stage, discarding the
// collected answers.
func (g *Guide) Reset(id string) (Step, error) {
	sess, _, err := g.load(id)
	if err != nil {
		return Step{}, err
	}
	sess.Workflow = &session.Workflow{
		Stage:     StageProblemDefinition,
		Responses: make(map[string]string),
	}
	sess.Stage = session.StageProblem
	if err := g.sessions.Save(sess); err != nil {
		return Step{}, fmt.Errorf("saving session: %w", err)
	}
	return g.step(sess, nil), nil
}

// Status reports where a guided session stands without advancing it.
func (g *Guide) Status(id string) (Step, error) {
	sess, wf, err := g.load(id)
	if err != nil {
		return Step{}, err
	}
	var notes []string
	if len(wf.RecommendedPrinciples) > 0 {
		notes = g.principleNotes(wf.RecommendedPrinciples)
	}
	return g.step(sess, notes), nil
}

func (g *Guide) load(id string) (*session.Session, *session.Workflow, error) {
	sess, err := g.sessions.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if sess.Workflow == nil {
		return nil, nil, fmt.Errorf("session %s is not a guided session", id)
	}
	return sess, sess.Workflow, nil
}

func (g *Guide) step(sess *session.Session, notes []string) Step {
	stage := sess.Workflow.Stage
	return Step{
		SessionID: sess.ID,
		Stage:     stage,
		Prompt:    stagePrompts[stage],
		Notes:     notes,
		Completed: stage == StageCompleted,
	}
}

func (g *Guide) principleNotes(ids []int) []string {
	notes := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := g.base.Principle(id); ok {
			notes = append(notes, fmt.Sprintf("Recommended principle %d: %s — %s", p.ID, p.Name, p.Description))
		}
	}
	return notes
}

// brainstormNotes turns the leading recommended principle into concrete
// directions against the recorded problem statement.
func (g *Guide) brainstormNotes(wf *session.Workflow) []string {
	if len(wf.RecommendedPrinciples) == 0 || wf.ProblemStatement == "" {
		return nil
	}
	ideas, err := report.Brainstorm(g.base, wf.RecommendedPrinciples[0], wf.ProblemStatement)
	if err != nil {
		return nil
	}
	notes := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		notes = append(notes, fmt.Sprintf("%s: %s", idea.Title, idea.Description))
	}
	return notes
}

func nextStage(stage string) string {
	for i, s := range stageOrder {
		if s == stage && i+1 < len(stageOrder) {
			return stageOrder[i+1]
		}
	}
	return StageCompleted
}
