package validation

import (
	"fmt"
	"time"

	"arscenario/internal/schema"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}

// checkTemporal verifies frame timestamps are parseable and non-decreasing,
// and that no claim date precedes the account's service date.
func checkTemporal(doc schema.Document, result *Result) error {
	timeline := doc.Timeline()
	if len(timeline) == 0 {
		return nil
	}

	var prev time.Time
	havePrev := false
	for i, frame := range timeline {
		raw := schema.Str(frame, "timestamp")
		if raw == "" {
			continue
		}
		ts, ok := parseTimestamp(raw)
		if !ok {
			result.Add(Issue{
				Severity: SeverityError,
				Category: CategoryTemporal,
				Path:     fmt.Sprintf("timeline[%d].timestamp", i),
				Message:  "Invalid timestamp format",
				Actual:   raw,
			})
			continue
		}
		if havePrev && ts.Before(prev) {
			result.Add(Issue{
				Severity:   SeverityError,
				Category:   CategoryTemporal,
				Path:       fmt.Sprintf("timeline[%d].timestamp", i),
				Message:    "Timestamps must be in chronological order",
				Actual:     raw,
				Suggestion: "Each frame's timestamp must be >= previous frame's timestamp",
			})
		}
		prev, havePrev = ts, true
	}

	serviceDate := schema.Str(doc.Account(), "service_date")
	serviceDay, ok := parseDate(serviceDate)
	if !ok {
		return nil
	}
	for i, frame := range timeline {
		for j, claim := range schema.Table(schema.AccountState(frame), "claims") {
			for _, field := range []string{"denial_date", "appeal_date", "submission_date"} {
				val := schema.Str(claim, field)
				if val == "" {
					continue
				}
				if day, ok := parseDate(val); ok && day.Before(serviceDay) {
					result.Add(Issue{
						Severity: SeverityError,
						Category: CategoryTemporal,
						Path:     fmt.Sprintf("timeline[%d].account_state.claims[%d].%s", i, j, field),
						Message:  fmt.Sprintf("%s cannot be before service_date", field),
						Actual:   val,
						Expected: fmt.Sprintf("Date >= %s", serviceDate),
					})
				}
			}
		}
	}
	return nil
}
