package validation

import (
	"testing"

	"arscenario/internal/schema"
)

func TestTemporalCleanTimeline(t *testing.T) {
	var result Result
	if err := checkTemporal(loadValidScenario(t), &result); err != nil {
		t.Fatal(err)
	}
	if n := len(result.AllIssues()); n != 0 {
		t.Errorf("clean timeline should produce no issues, got %d: %v", n, result.AllIssues())
	}
}

func TestTemporalOutOfOrderTimestamps(t *testing.T) {
	doc := loadValidScenario(t)
	doc.Timeline()[2]["timestamp"] = "2020-01-01T00:00:00Z"

	var result Result
	if err := checkTemporal(doc, &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("want exactly one error, got %d: %v", len(result.Errors), result.Errors)
	}
	if got := result.Errors[0].Path; got != "timeline[2].timestamp" {
		t.Errorf("error path = %q", got)
	}
}

func TestTemporalMalformedTimestampIsSkipped(t *testing.T) {
	doc := loadValidScenario(t)
	doc.Timeline()[1]["timestamp"] = "sometime next week"

	var result Result
	if err := checkTemporal(doc, &result); err != nil {
		t.Fatal(err)
	}
	// One parse error; frames 0 and 2 still compare cleanly against each
	// other, so no ordering error follows.
	if len(result.Errors) != 1 {
		t.Fatalf("want exactly one error, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].Message != "Invalid timestamp format" {
		t.Errorf("message = %q", result.Errors[0].Message)
	}
}

func TestTemporalClaimDateBeforeServiceDate(t *testing.T) {
	doc := loadValidScenario(t)
	frameClaim(t, doc, 0)["denial_date"] = "2024-01-01"

	var result Result
	if err := checkTemporal(doc, &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("want exactly one error, got %d: %v", len(result.Errors), result.Errors)
	}
	issue := result.Errors[0]
	if issue.Path != "timeline[0].account_state.claims[0].denial_date" {
		t.Errorf("error path = %q", issue.Path)
	}
	if issue.Expected == "" {
		t.Error("error should name the minimum acceptable date")
	}
}

func TestTemporalEqualTimestampsAllowed(t *testing.T) {
	doc := schema.Document{
		"account": map[string]any{},
		"timeline": []any{
			map[string]any{"timestamp": "2024-09-01T08:00:00Z"},
			map[string]any{"timestamp": "2024-09-01T08:00:00Z"},
		},
	}
	var result Result
	if err := checkTemporal(doc, &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 0 {
		t.Errorf("equal timestamps are non-decreasing, got %v", result.Errors)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, ok := range []string{
		"2024-09-01T08:00:00Z",
		"2024-09-01T08:00:00.123Z",
		"2024-09-01T08:00:00",
		"2024-09-01T08:00:00.500",
	} {
		if _, parsed := parseTimestamp(ok); !parsed {
			t.Errorf("parseTimestamp(%q) failed", ok)
		}
	}
	for _, bad := range []string{"", "2024-09-01", "yesterday"} {
		if _, parsed := parseTimestamp(bad); parsed {
			t.Errorf("parseTimestamp(%q) should fail", bad)
		}
	}
}
