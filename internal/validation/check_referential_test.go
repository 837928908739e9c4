package validation

import (
	"strings"
	"testing"

	"arscenario/internal/schema"
)

func TestReferentialValidScenario(t *testing.T) {
	var result Result
	if err := checkReferential(loadValidScenario(t), &result); err != nil {
		t.Fatal(err)
	}
	if n := len(result.AllIssues()); n != 0 {
		t.Errorf("fixture references should resolve, got %v", result.AllIssues())
	}
}

func TestReferentialDanglingReference(t *testing.T) {
	doc := schema.Document{
		"timeline": []any{
			map[string]any{"account_state": map[string]any{
				"claims": []any{
					map[string]any{"record_id": "CLM-001", "claim_number": "CLM-2024-445521"},
				},
				"remits": []any{
					map[string]any{"record_id": "RMT-001", "claim_reference": "CLM-9999"},
				},
			}},
		},
	}

	var result Result
	if err := checkReferential(doc, &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("want exactly one error, got %d: %v", len(result.Errors), result.Errors)
	}
	issue := result.Errors[0]
	if issue.Path != "timeline[0].account_state.remits[0].claim_reference" {
		t.Errorf("error path = %q", issue.Path)
	}
	if issue.Actual != "CLM-9999" {
		t.Errorf("actual = %q", issue.Actual)
	}
	if !strings.Contains(issue.Expected, "CLM-2024-445521") {
		t.Errorf("expected = %q should name the valid claim numbers", issue.Expected)
	}
}

func TestReferentialEmptyReferenceSkipped(t *testing.T) {
	doc := schema.Document{
		"timeline": []any{
			map[string]any{"account_state": map[string]any{
				"claims": []any{},
				"remits": []any{
					map[string]any{"record_id": "RMT-001"},
				},
			}},
		},
	}
	var result Result
	if err := checkReferential(doc, &result); err != nil {
		t.Fatal(err)
	}
	if n := len(result.AllIssues()); n != 0 {
		t.Errorf("remit without a reference should be skipped, got %v", result.AllIssues())
	}
}
