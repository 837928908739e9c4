package validation

import (
	"fmt"
	"strings"

	"arscenario/internal/schema"
)

// checkState verifies operator actions against the action catalog across
// adjacent frame pairs: preconditions against the frame before the action,
// postconditions against the frame after. Scenarios carry a single claim;
// the first claim record is the one the action applies to.
func checkState(doc schema.Document, result *Result) error {
	timeline := doc.Timeline()
	for i := 1; i < len(timeline); i++ {
		event := schema.AsMap(timeline[i]["event"])
		action := schema.Str(event, "action_taken")
		def, known := schema.ActionCatalog[action]
		if action == "" || !known {
			continue
		}

		path := fmt.Sprintf("timeline[%d]", i)
		prevState := schema.AccountState(timeline[i-1])
		currState := schema.AccountState(timeline[i])
		checkActionPreconditions(prevState, action, def, path, result)
		checkActionPostconditions(prevState, currState, action, def, path, result)
	}
	return nil
}

func firstClaim(state map[string]any) map[string]any {
	claims := schema.Table(state, "claims")
	if len(claims) == 0 {
		return nil
	}
	return claims[0]
}

func checkActionPreconditions(prevState map[string]any, action string, def schema.ActionDefinition, path string, result *Result) {
	claim := firstClaim(prevState)

	if allowed := def.Pre.ClaimStatusMustBeIn; len(allowed) > 0 {
		status := schema.Str(claim, "status")
		ok := false
		if _, hasTransition := schema.ResultingClaimStatus(action); hasTransition {
			ok = schema.NewClaimMachine(status).Can(action)
		} else {
			for _, s := range allowed {
				if s == status {
					ok = true
					break
				}
			}
		}
		if !ok {
			result.Add(Issue{
				Severity: SeverityError,
				Category: CategoryState,
				Path:     path,
				Message:  fmt.Sprintf("Action '%s' requires claim status to be in [%s]", action, strings.Join(allowed, ", ")),
				Expected: strings.Join(allowed, ", "),
				Actual:   schema.Str(claim, "status"),
			})
		}
	}

	if def.Pre.RequireNoPendingAppeal {
		if ref := schema.Str(claim, "appeal_reference"); ref != "" {
			result.Add(Issue{
				Severity: SeverityError,
				Category: CategoryState,
				Path:     path,
				Message:  fmt.Sprintf("Action '%s' cannot be taken when appeal is already pending", action),
				Actual:   fmt.Sprintf("appeal_reference=%s", ref),
			})
		}
	}
}

func checkActionPostconditions(prevState, currState map[string]any, action string, def schema.ActionDefinition, path string, result *Result) {
	if expected := def.Post.ClaimStatus; expected != "" {
		actual := schema.Str(firstClaim(currState), "status")
		if actual != expected {
			result.Add(Issue{
				Severity: SeverityError,
				Category: CategoryState,
				Path:     path,
				Message:  fmt.Sprintf("After '%s', claim status should be '%s'", action, expected),
				Expected: expected,
				Actual:   actual,
			})
		}
	}

	if def.Post.RequireNewNote {
		prevNotes := schema.Table(prevState, "notes")
		currNotes := schema.Table(currState, "notes")
		if len(currNotes) <= len(prevNotes) {
			result.Add(Issue{
				Severity:   SeverityError,
				Category:   CategoryState,
				Path:       path,
				Message:    fmt.Sprintf("Action '%s' requires a new note to be added", action),
				Suggestion: "Add a note documenting the action taken",
			})
		}
	}

	if expected := def.Post.NewTransactionType; expected != "" {
		prevIDs := make(map[string]bool)
		for _, txn := range schema.Table(prevState, "transactions") {
			prevIDs[schema.RecordID(txn)] = true
		}
		found := false
		for _, txn := range schema.Table(currState, "transactions") {
			if prevIDs[schema.RecordID(txn)] {
				continue
			}
			if schema.Str(txn, "type") == expected {
				found = true
				break
			}
		}
		if !found {
			result.Add(Issue{
				Severity: SeverityWarning,
				Category: CategoryState,
				Path:     path,
				Message:  fmt.Sprintf("Action '%s' should add a '%s' transaction", action, expected),
			})
		}
	}
}
