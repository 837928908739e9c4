package validation

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"arscenario/internal/schema"
)

// ignoreTracking excludes the delta-tracking fields themselves from record
// comparison, so flipping _delta or _changed_fields between frames never
// counts as a business change.
var ignoreTracking = cmpopts.IgnoreMapEntries(func(key string, _ any) bool {
	return key == schema.FieldDelta || key == schema.FieldChangedFields
})

func recordChanged(prev, curr map[string]any) bool {
	return !cmp.Equal(prev, curr, ignoreTracking)
}

// checkDelta verifies frame-to-frame delta markers: records new to a frame
// must carry _delta=added, records whose business fields changed must carry
// _delta=updated, and updated records should enumerate their changed fields.
func checkDelta(doc schema.Document, result *Result) error {
	timeline := doc.Timeline()
	for i := 1; i < len(timeline); i++ {
		prevState := schema.AccountState(timeline[i-1])
		currState := schema.AccountState(timeline[i])

		for _, table := range schema.Tables {
			prevByID := make(map[string]map[string]any)
			for _, record := range schema.Table(prevState, table) {
				if id := schema.RecordID(record); id != "" {
					prevByID[id] = record
				}
			}

			for j, record := range schema.Table(currState, table) {
				path := fmt.Sprintf("timeline[%d].account_state.%s[%d]", i, table, j)
				delta := schema.Str(record, schema.FieldDelta)

				prev, existed := prevByID[schema.RecordID(record)]
				if !existed {
					if delta != schema.DeltaAdded {
						result.Add(Issue{
							Severity: SeverityWarning,
							Category: CategoryDelta,
							Path:     path,
							Message:  "New record should have _delta='added'",
							Expected: schema.DeltaAdded,
							Actual:   delta,
						})
					}
					continue
				}

				if recordChanged(prev, record) && delta != schema.DeltaUpdated {
					result.Add(Issue{
						Severity: SeverityWarning,
						Category: CategoryDelta,
						Path:     path,
						Message:  "Modified record should have _delta='updated'",
						Expected: schema.DeltaUpdated,
						Actual:   delta,
					})
				}

				if delta == schema.DeltaUpdated {
					changed, _ := record[schema.FieldChangedFields].([]any)
					if len(changed) == 0 {
						result.Add(Issue{
							Severity:   SeverityInfo,
							Category:   CategoryDelta,
							Path:       path,
							Message:    "Updated record should specify _changed_fields",
							Suggestion: "Add _changed_fields array listing which fields changed",
						})
					}
				}
			}
		}
	}
	return nil
}
