// Package validation checks scenario documents against the structural,
// temporal, financial, state-machine, delta, referential, and content rules
// of the AR billing domain. Checks never mutate the document and degrade
// gracefully on malformed input: a broken section produces issues, not a
// panic.
package validation

import (
	"fmt"
	"strings"
)

// Issue severities, from most to least severe.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Issue categories, one per check pass.
const (
	CategorySchema      = "schema"
	CategoryTemporal    = "temporal"
	CategoryFinancial   = "financial"
	CategoryState       = "state"
	CategoryDelta       = "delta"
	CategoryReferential = "referential"
	CategoryContent     = "content"
)

// Issue is a single validation finding at a document path.
type Issue struct {
	Severity   string `json:"severity"`
	Category   string `json:"category"`
	Path       string `json:"path"`
	Message    string `json:"message"`
	Expected   string `json:"expected,omitempty"`
	Actual     string `json:"actual,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (i Issue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s at %s: %s", strings.ToUpper(i.Severity), i.Category, i.Path, i.Message)
	if i.Expected != "" {
		fmt.Fprintf(&b, " (expected: %s, actual: %s)", i.Expected, i.Actual)
	}
	return b.String()
}

// Result aggregates the findings of one validation run. Valid is true when no
// error-severity issue was found; warnings and info never fail a document.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Info     []Issue `json:"info"`
}

// Add files an issue under the bucket for its severity. An error-severity
// issue marks the result invalid.
func (r *Result) Add(issue Issue) {
	switch issue.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, issue)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, issue)
	default:
		r.Info = append(r.Info, issue)
	}
}

// ErrorCount returns the number of error-severity issues.
func (r *Result) ErrorCount() int { return len(r.Errors) }

// WarningCount returns the number of warning-severity issues.
func (r *Result) WarningCount() int { return len(r.Warnings) }

// AllIssues returns every issue, errors first, then warnings, then info.
func (r *Result) AllIssues() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings)+len(r.Info))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	out = append(out, r.Info...)
	return out
}

// Strict returns a copy of the result with every warning promoted to an
// error. The receiver is not modified.
func (r *Result) Strict() *Result {
	strict := &Result{Valid: r.Valid && len(r.Warnings) == 0}
	strict.Errors = append(strict.Errors, r.Errors...)
	for _, w := range r.Warnings {
		promoted := w
		promoted.Severity = SeverityError
		strict.Errors = append(strict.Errors, promoted)
	}
	strict.Info = append(strict.Info, r.Info...)
	return strict
}

// Summary returns a one-line verdict like "VALID - 0 errors, 2 warnings".
func (r *Result) Summary() string {
	verdict := "VALID"
	if !r.Valid {
		verdict = "INVALID"
	}
	return fmt.Sprintf("%s - %d errors, %d warnings", verdict, len(r.Errors), len(r.Warnings))
}

// Render returns a multi-line human-readable report of the result.
func (r *Result) Render() string {
	var b strings.Builder
	b.WriteString(r.Summary())
	b.WriteString("\n")
	for _, issue := range r.AllIssues() {
		b.WriteString("  ")
		b.WriteString(issue.String())
		if issue.Suggestion != "" {
			fmt.Fprintf(&b, "\n    suggestion: %s", issue.Suggestion)
		}
		b.WriteString("\n")
	}
	return b.String()
}
