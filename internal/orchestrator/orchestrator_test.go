package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"

	"arscenario/internal/config"
	"arscenario/internal/llm"
	"arscenario/internal/schema"
)

// stubClient replays a scripted sequence of responses. A nil error with an
// empty response is not in the script's vocabulary; each step is either a
// response or an error.
type stubClient struct {
	responses []string
	errs      []error
	calls     int
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	return s.CompleteWithSystem(ctx, "", prompt)
}

func (s *stubClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", fmt.Errorf("stub exhausted after %d calls", i)
}

func validScenarioJSON(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../validation/testdata/valid_appeal.json")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return string(data)
}

func invalidScenarioJSON(t *testing.T) string {
	t.Helper()
	var doc schema.Document
	if err := json.Unmarshal([]byte(validScenarioJSON(t)), &doc); err != nil {
		t.Fatal(err)
	}
	claims := schema.Table(schema.AccountState(doc.Timeline()[0]), "claims")
	claims[0]["status"] = schema.ClaimPaid
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func newTestOrchestrator(client llm.Client, repairBudget int) *Orchestrator {
	return New(client, config.GenerationConfig{
		MaxRepairAttempts:  repairBudget,
		IncludeFullSchemas: true,
	}, zap.NewNop())
}

func TestGenerateValidFirstTry(t *testing.T) {
	client := &stubClient{responses: []string{validScenarioJSON(t)}}
	o := newTestOrchestrator(client, 2)

	result := o.Generate(context.Background(), Seed{DenialCode: "CO-16"})
	if !result.Success() {
		t.Fatalf("status = %s (%s)", result.Status, result.ErrMessage)
	}
	if result.Attempts != 1 || result.RepairAttempts != 0 {
		t.Errorf("attempts = %d, repair = %d", result.Attempts, result.RepairAttempts)
	}
	if client.calls != 1 {
		t.Errorf("LLM called %d times", client.calls)
	}
}

func TestGenerateHandlesMarkdownFences(t *testing.T) {
	fenced := "Here is the scenario:\n```json\n" + validScenarioJSON(t) + "\n```\nDone."
	client := &stubClient{responses: []string{fenced}}
	o := newTestOrchestrator(client, 0)

	result := o.Generate(context.Background(), Seed{DenialCode: "CO-16"})
	if !result.Success() {
		t.Fatalf("status = %s (%s)", result.Status, result.ErrMessage)
	}
}

func TestGenerateParseError(t *testing.T) {
	client := &stubClient{responses: []string{"the model rambled and produced no object"}}
	o := newTestOrchestrator(client, 2)

	result := o.Generate(context.Background(), Seed{DenialCode: "CO-16"})
	if result.Status != StatusParseError {
		t.Fatalf("status = %s", result.Status)
	}
}

func TestGenerateLLMError(t *testing.T) {
	client := &stubClient{errs: []error{errors.New("api key revoked")}}
	o := newTestOrchestrator(client, 2)

	result := o.Generate(context.Background(), Seed{DenialCode: "CO-16"})
	if result.Status != StatusLLMError {
		t.Fatalf("status = %s", result.Status)
	}
	if result.ErrMessage == "" {
		t.Error("error message should be carried")
	}
}

func TestGenerateValidationFailedWithoutBudget(t *testing.T) {
	client := &stubClient{responses: []string{invalidScenarioJSON(t)}}
	o := newTestOrchestrator(client, 0)

	result := o.Generate(context.Background(), Seed{DenialCode: "CO-16"})
	if result.Status != StatusValidationFailed {
		t.Fatalf("status = %s", result.Status)
	}
	if result.Validation == nil || result.Validation.Valid {
		t.Error("failed result should carry the invalid validation")
	}
}

func TestRepairConvergence(t *testing.T) {
	invalid := invalidScenarioJSON(t)
	client := &stubClient{responses: []string{invalid, validScenarioJSON(t)}}
	o := newTestOrchestrator(client, 2)

	var doc schema.Document
	if err := json.Unmarshal([]byte(invalid), &doc); err != nil {
		t.Fatal(err)
	}

	result := o.Repair(context.Background(), doc, nil)
	if !result.Success() {
		t.Fatalf("status = %s (%s)", result.Status, result.ErrMessage)
	}
	if result.RepairAttempts != 2 {
		t.Errorf("repair attempts = %d, want 2", result.RepairAttempts)
	}
}

func TestRepairExhaustion(t *testing.T) {
	invalid := invalidScenarioJSON(t)
	client := &stubClient{responses: []string{invalid, invalid}}
	o := newTestOrchestrator(client, 2)

	var doc schema.Document
	if err := json.Unmarshal([]byte(invalid), &doc); err != nil {
		t.Fatal(err)
	}

	result := o.Repair(context.Background(), doc, nil)
	if result.Status != StatusRepairFailed {
		t.Fatalf("status = %s", result.Status)
	}
	if result.RepairAttempts != 2 {
		t.Errorf("repair attempts = %d, want 2", result.RepairAttempts)
	}
	if result.Scenario == nil || result.Validation == nil {
		t.Error("failed repair should carry the last candidate and its result")
	}
}

func TestRepairTransientFailureConsumesAttempt(t *testing.T) {
	invalid := invalidScenarioJSON(t)
	client := &stubClient{
		errs:      []error{llm.Transient(errors.New("rate limited"))},
		responses: []string{"", validScenarioJSON(t)},
	}
	o := newTestOrchestrator(client, 2)

	var doc schema.Document
	if err := json.Unmarshal([]byte(invalid), &doc); err != nil {
		t.Fatal(err)
	}

	result := o.Repair(context.Background(), doc, nil)
	if !result.Success() {
		t.Fatalf("status = %s (%s)", result.Status, result.ErrMessage)
	}
	if result.RepairAttempts != 2 {
		t.Errorf("repair attempts = %d, want 2", result.RepairAttempts)
	}
}

func TestRepairPermanentFailureAborts(t *testing.T) {
	invalid := invalidScenarioJSON(t)
	client := &stubClient{errs: []error{errors.New("model not found")}}
	o := newTestOrchestrator(client, 3)

	var doc schema.Document
	if err := json.Unmarshal([]byte(invalid), &doc); err != nil {
		t.Fatal(err)
	}

	result := o.Repair(context.Background(), doc, nil)
	if result.Status != StatusLLMError {
		t.Fatalf("status = %s", result.Status)
	}
	if client.calls != 1 {
		t.Errorf("permanent failure should stop the loop, got %d calls", client.calls)
	}
}

func TestRepairAlreadyValidSkipsLLM(t *testing.T) {
	client := &stubClient{}
	o := newTestOrchestrator(client, 2)

	var doc schema.Document
	if err := json.Unmarshal([]byte(validScenarioJSON(t)), &doc); err != nil {
		t.Fatal(err)
	}

	result := o.Repair(context.Background(), doc, nil)
	if !result.Success() {
		t.Fatalf("status = %s", result.Status)
	}
	if client.calls != 0 {
		t.Errorf("valid document should not reach the LLM, got %d calls", client.calls)
	}
}

func TestRepairCancelled(t *testing.T) {
	invalid := invalidScenarioJSON(t)
	client := &stubClient{}
	o := newTestOrchestrator(client, 2)

	var doc schema.Document
	if err := json.Unmarshal([]byte(invalid), &doc); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := o.Repair(ctx, doc, nil)
	if result.Status != StatusCancelled {
		t.Fatalf("status = %s", result.Status)
	}
	if result.Scenario == nil {
		t.Error("cancelled outcome should carry the last known candidate")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"prose before {\"a\": {\"b\": 2}} prose after", `{"a": {"b": 2}}`},
		{`{"s":"braces } in { strings"}`, `{"s":"braces } in { strings"}`},
		{`{"s":"escaped \" quote }"}`, `{"s":"escaped \" quote }"}`},
		{"no object here", ""},
		{"{unbalanced", ""},
	}
	for _, tt := range tests {
		if got := extractJSON(tt.in); got != tt.want {
			t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportValidationRules(t *testing.T) {
	rules := ExportValidationRules()
	for _, key := range []string{"logical_constraints", "action_definitions", "async_event_definitions"} {
		if _, ok := rules[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if _, err := json.Marshal(rules); err != nil {
		t.Errorf("rules should marshal cleanly: %v", err)
	}
	actions := rules["action_definitions"].(map[string]any)
	if len(actions) != len(schema.ActionCatalog) {
		t.Errorf("exported %d actions, catalog has %d", len(actions), len(schema.ActionCatalog))
	}
}
