package validation

import (
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"arscenario/internal/schema"
)

type checkFunc func(schema.Document, *Result) error

type checkPass struct {
	category string
	check    checkFunc
}

// checkPasses lists the passes in report order. Every pass is pure and
// independent, so they run concurrently; the merge order below is what makes
// two runs over the same document produce identical Results.
var checkPasses = []checkPass{
	{CategorySchema, checkSchema},
	{CategoryTemporal, checkTemporal},
	{CategoryFinancial, checkFinancial},
	{CategoryState, checkState},
	{CategoryReferential, checkReferential},
	{CategoryDelta, checkDelta},
	{CategoryContent, checkContent},
}

// Validator runs all check passes over a scenario document. In strict mode
// warnings are promoted to errors after the passes complete; the passes
// themselves are policy-agnostic.
type Validator struct {
	Strict bool
}

// New returns a validator with the default (lenient) severity policy.
func New() *Validator { return &Validator{} }

// Validate runs every check pass and merges their findings.
func (v *Validator) Validate(doc schema.Document) *Result {
	partials := make([]Result, len(checkPasses))

	var g errgroup.Group
	for idx, pass := range checkPasses {
		g.Go(func() error {
			if err := pass.check(doc, &partials[idx]); err != nil {
				partials[idx].Add(Issue{
					Severity: SeverityError,
					Category: pass.category,
					Path:     "",
					Message:  fmt.Sprintf("Check failed: %v", err),
				})
			}
			return nil
		})
	}
	g.Wait()

	merged := &Result{Valid: true}
	for _, partial := range partials {
		for _, issue := range partial.AllIssues() {
			merged.Add(issue)
		}
	}

	if v.Strict {
		return merged.Strict()
	}
	return merged
}

// ValidateJSON decodes and validates a scenario from JSON text. Unparseable
// input yields a single schema-category error rather than a Go error.
func (v *Validator) ValidateJSON(text string) *Result {
	var doc schema.Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		result := &Result{Valid: true}
		result.Add(Issue{
			Severity: SeverityError,
			Category: CategorySchema,
			Path:     "",
			Message:  fmt.Sprintf("Invalid JSON: %v", err),
		})
		return result
	}
	return v.Validate(doc)
}
