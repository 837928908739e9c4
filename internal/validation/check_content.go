package validation

import (
	"fmt"
	"strings"

	"arscenario/internal/schema"
)

// Minimum lengths below which free-text content is flagged as under-detailed.
const (
	minDescriptionLen = 20
	minSummaryLen     = 30
	minNoteLen        = 20
)

// checkContent applies the content-quality heuristics. Everything here is
// advisory: warnings for thin prose, info when an action note skips the
// denial code it is working.
func checkContent(doc schema.Document, result *Result) error {
	denialCode := schema.Str(doc.Metadata(), "denial_code")

	for i, frame := range doc.Timeline() {
		event := schema.AsMap(frame["event"])
		if desc := schema.Str(event, "description"); len(desc) < minDescriptionLen {
			result.Add(Issue{
				Severity:   SeverityWarning,
				Category:   CategoryContent,
				Path:       fmt.Sprintf("timeline[%d].event.description", i),
				Message:    "Event description should be more detailed",
				Actual:     fmt.Sprintf("%d characters", len(desc)),
				Suggestion: "Provide a detailed description of what happened",
			})
		}

		if summary := schema.Str(frame, "state_summary"); len(summary) < minSummaryLen {
			result.Add(Issue{
				Severity:   SeverityWarning,
				Category:   CategoryContent,
				Path:       fmt.Sprintf("timeline[%d].state_summary", i),
				Message:    "State summary should be more detailed",
				Suggestion: "Summarize the current account state including balance, status, and next steps",
			})
		}

		for j, note := range schema.Table(schema.AccountState(frame), "notes") {
			content := schema.Str(note, "content")
			path := fmt.Sprintf("timeline[%d].account_state.notes[%d].content", i, j)
			if len(content) < minNoteLen {
				result.Add(Issue{
					Severity:   SeverityWarning,
					Category:   CategoryContent,
					Path:       path,
					Message:    "Note content should be more detailed",
					Suggestion: "Notes should document the action taken and relevant details",
				})
			}
			if denialCode != "" && schema.Str(note, "note_type") == schema.NoteAction && !strings.Contains(content, denialCode) {
				result.Add(Issue{
					Severity:   SeverityInfo,
					Category:   CategoryContent,
					Path:       path,
					Message:    "Action note should reference the denial code being addressed",
					Suggestion: fmt.Sprintf("Consider mentioning %s in the note", denialCode),
				})
			}
		}
	}
	return nil
}
