package validation

import (
	"fmt"
	"sort"
	"strings"

	"arscenario/internal/schema"
)

// checkReferential verifies that every remit's claim_reference names a claim
// that exists in the same frame's snapshot.
func checkReferential(doc schema.Document, result *Result) error {
	for i, frame := range doc.Timeline() {
		state := schema.AccountState(frame)

		known := make(map[string]bool)
		for _, claim := range schema.Table(state, "claims") {
			if num := schema.Str(claim, "claim_number"); num != "" {
				known[num] = true
			}
		}

		for j, remit := range schema.Table(state, "remits") {
			ref := schema.Str(remit, "claim_reference")
			if ref == "" || known[ref] {
				continue
			}
			valid := make([]string, 0, len(known))
			for num := range known {
				valid = append(valid, num)
			}
			sort.Strings(valid)
			result.Add(Issue{
				Severity: SeverityError,
				Category: CategoryReferential,
				Path:     fmt.Sprintf("timeline[%d].account_state.remits[%d].claim_reference", i, j),
				Message:  "Remit references non-existent claim",
				Actual:   ref,
				Expected: fmt.Sprintf("One of: %s", strings.Join(valid, ", ")),
			})
		}
	}
	return nil
}
