// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pdiddy/triz-copilot/internal/knowledge"
	"github.com/pdiddy/triz-copilot/internal/materials"
	"github.com/pdiddy/triz-copilot/internal/session"
	"github.com/pdiddy/triz-copilot/internal/workflow"
	"github.com/pdiddy/triz-copilot/pkg/types"
)

func testBase(t *testing.T) *knowledge.Base {
	t.Helper()
	b, err := knowledge.Load()
	if err != nil {
		t.Fatalf("loading knowledge base: %v", err)
	}
	return b
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestPrincipleTool(t *testing.T) {
	tool := NewPrincipleTool(testBase(t))

	if def := tool.Definition(); def.Name != "triz_get_principle" {
		t.Errorf("tool name = %q", def.Name)
	}

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"principle_id": float64(1),
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	if !strings.Contains(out, "Principle 1: Segmentation") {
		t.Errorf("output missing principle header:\n%s", out)
	}
	if !strings.Contains(out, "Sub-principles:") {
		t.Error("output missing sub-principles")
	}
}

func TestPrincipleTool_OutOfRange(t *testing.T) {
	tool := NewPrincipleTool(testBase(t))
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"principle_id": float64(41),
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !res.IsError {
		t.Error("expected an error result for principle 41")
	}
}

func TestMatrixTool_ByNumbers(t *testing.T) {
	tool := NewMatrixTool(testBase(t))
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"improving": float64(1),
		"worsening": float64(14),
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	if !strings.Contains(out, "Weight of moving object") {
		t.Errorf("output missing improving parameter name:\n%s", out)
	}
	if !strings.Contains(out, "Principle 1:") {
		t.Error("output missing recommended principles")
	}
}

func TestMatrixTool_FromProblemText(t *testing.T) {
	tool := NewMatrixTool(testBase(t))
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"problem": "improve strength without increasing weight",
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	if !strings.Contains(out, "Strength") {
		t.Errorf("expected a strength/weight contradiction, got:\n%s", out)
	}
}

func TestMatrixTool_NoArguments(t *testing.T) {
	tool := NewMatrixTool(testBase(t))
	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !res.IsError {
		t.Error("expected an error result when no arguments are given")
	}
}

func TestMaterialsTool(t *testing.T) {
	store, err := materials.NewStore(types.MaterialsConfig{
		Path: filepath.Join(t.TempDir(), "materials.db"),
	})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	tool := NewMaterialsTool(store)
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"query": "aircraft",
		"limit": float64(3),
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	if !strings.Contains(out, "Aluminum 7075") {
		t.Errorf("expected the seeded aerospace alloy, got:\n%s", out)
	}
}

func TestSessionTool_ListEmpty(t *testing.T) {
	mgr, err := session.NewManager(types.SessionConfig{StorageDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}

	tool := NewSessionTool(mgr)
	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resultText(res), "No saved sessions") {
		t.Errorf("unexpected output: %s", resultText(res))
	}
}

func TestSessionTool_GetAndList(t *testing.T) {
	mgr, err := session.NewManager(types.SessionConfig{StorageDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	sess, err := mgr.Create("reduce actuator noise without losing torque")
	if err != nil {
		t.Fatal(err)
	}
	sess.Report = &types.ResearchReport{Problem: sess.Problem, TotalFindings: 1}
	if err := mgr.Save(sess); err != nil {
		t.Fatal(err)
	}

	tool := NewSessionTool(mgr)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": sess.ID,
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resultText(res), "actuator noise") {
		t.Errorf("get output missing problem: %s", resultText(res))
	}

	res, err = tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(resultText(res), sess.ID) {
		t.Errorf("list output missing session id: %s", resultText(res))
	}
}

func TestBrainstormTool(t *testing.T) {
	tool := NewBrainstormTool(testBase(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"principle_number": float64(1),
		"context":          "a modular drone frame",
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	if !strings.Contains(out, "Segmentation") {
		t.Errorf("output missing principle name:\n%s", out)
	}
	if !strings.Contains(out, "3.") {
		t.Errorf("expected at least three numbered ideas:\n%s", out)
	}
}

func TestBrainstormTool_SuggestsPrinciple(t *testing.T) {
	tool := NewBrainstormTool(testBase(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"context": "improve strength without increasing weight",
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	out := resultText(res)
	if !strings.Contains(out, "Suggested principles:") {
		t.Errorf("output missing suggestions:\n%s", out)
	}
	if !strings.Contains(out, "1 (Segmentation)") {
		t.Errorf("output missing leading suggestion:\n%s", out)
	}
}

func TestBrainstormTool_MissingContext(t *testing.T) {
	tool := NewBrainstormTool(testBase(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"principle_number": float64(1),
	}))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !res.IsError {
		t.Error("missing context should produce an error result")
	}
}

func TestWorkflowTools(t *testing.T) {
	mgr, err := session.NewManager(types.SessionConfig{StorageDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	guide := workflow.NewGuide(mgr, testBase(t))
	start := NewWorkflowStartTool(guide)
	cont := NewWorkflowContinueTool(guide)
	reset := NewWorkflowResetTool(guide)

	res, err := start.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("start Handle() error = %v", err)
	}
	out := resultText(res)
	if !strings.Contains(out, "Stage: "+workflow.StageProblemDefinition) {
		t.Fatalf("start output:\n%s", out)
	}

	sessions, err := mgr.List(0)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("List() = %v, %v", sessions, err)
	}
	id := sessions[0].ID
	if !strings.Contains(out, id) {
		t.Errorf("start output missing session id:\n%s", out)
	}

	res, err = cont.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": id,
		"input":      "drone frame cracks under vibration",
	}))
	if err != nil {
		t.Fatalf("continue Handle() error = %v", err)
	}
	if !strings.Contains(resultText(res), "Stage: "+workflow.StageContradictionAnalysis) {
		t.Errorf("continue output:\n%s", resultText(res))
	}

	res, err = cont.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": id,
	}))
	if err != nil {
		t.Fatalf("continue Handle() error = %v", err)
	}
	if !res.IsError {
		t.Error("continue without input should produce an error result")
	}

	res, err = reset.Handle(context.Background(), makeReq(map[string]interface{}{
		"session_id": id,
	}))
	if err != nil {
		t.Fatalf("reset Handle() error = %v", err)
	}
	if !strings.Contains(resultText(res), "Stage: "+workflow.StageProblemDefinition) {
		t.Errorf("reset output:\n%s", resultText(res))
	}
}
