package validation

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"arscenario/internal/schema"
)

//go:embed scenario_schema.json
var scenarioSchemaJSON string

const scenarioSchemaURL = "https://arscenario.dev/schemas/scenario.json"

var (
	scenarioSchemaOnce sync.Once
	scenarioSchema     *jsonschema.Schema
	scenarioSchemaErr  error
)

var scenarioIDPattern = regexp.MustCompile(`^SCN-\d{4}-\d+`)

func compiledScenarioSchema() (*jsonschema.Schema, error) {
	scenarioSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		c.AssertFormat = true
		if err := c.AddResource(scenarioSchemaURL, strings.NewReader(scenarioSchemaJSON)); err != nil {
			scenarioSchemaErr = fmt.Errorf("adding scenario schema resource: %w", err)
			return
		}
		scenarioSchema, scenarioSchemaErr = c.Compile(scenarioSchemaURL)
	})
	return scenarioSchema, scenarioSchemaErr
}

// checkSchema validates document structure: required sections and fields,
// enum membership, and date formats via the compiled JSON schema, plus the
// softer shape conventions (ID pattern, known denial code, table presence)
// as warnings.
func checkSchema(doc schema.Document, result *Result) error {
	sch, err := compiledScenarioSchema()
	if err != nil {
		return err
	}

	if err := sch.Validate(map[string]any(doc)); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return fmt.Errorf("validating scenario structure: %w", err)
		}
		for _, issue := range schemaIssues(ve) {
			result.Add(issue)
		}
	}

	meta := doc.Metadata()
	if id := schema.Str(meta, "scenario_id"); id != "" && !scenarioIDPattern.MatchString(id) {
		result.Add(Issue{
			Severity: SeverityWarning,
			Category: CategorySchema,
			Path:     "scenario_metadata.scenario_id",
			Message:  "scenario_id should match pattern SCN-YYYY-NNNNNN",
			Expected: "SCN-2024-123456",
			Actual:   id,
		})
	}
	if code := schema.Str(meta, "denial_code"); code != "" {
		if _, known := schema.DenialCatalog[code]; !known {
			result.Add(Issue{
				Severity:   SeverityWarning,
				Category:   CategorySchema,
				Path:       "scenario_metadata.denial_code",
				Message:    fmt.Sprintf("Unknown denial code: %s", code),
				Suggestion: fmt.Sprintf("Known codes: %s", strings.Join(schema.DenialCodes(), ", ")),
			})
		}
	}

	for i, frame := range doc.Timeline() {
		state := schema.AccountState(frame)
		if state == nil {
			continue
		}
		for _, table := range schema.Tables {
			if _, present := state[table]; !present {
				result.Add(Issue{
					Severity:   SeverityWarning,
					Category:   CategorySchema,
					Path:       fmt.Sprintf("timeline[%d].account_state.%s", i, table),
					Message:    fmt.Sprintf("Missing table: %s", table),
					Suggestion: "All account state tables should be present (can be empty arrays)",
				})
			}
		}
	}
	return nil
}

// schemaIssues flattens a validation error into leaf issues. The basic output
// format nests aggregation entries ("doesn't validate with ...") above the
// actual violations; only the leaves are reported. Issues are sorted by path
// so repeated runs over the same document produce identical Results.
func schemaIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	for _, entry := range ve.BasicOutput().Errors {
		if entry.Error == "" || strings.HasPrefix(entry.Error, "doesn't validate with") {
			continue
		}
		issues = append(issues, Issue{
			Severity: SeverityError,
			Category: CategorySchema,
			Path:     pointerToPath(entry.InstanceLocation),
			Message:  entry.Error,
		})
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Message < issues[j].Message
	})
	return issues
}

// pointerToPath converts a JSON pointer like /timeline/2/claims/0/status to
// the dotted path form timeline[2].claims[0].status used in issue reports.
func pointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if isIndexSegment(seg) {
			fmt.Fprintf(&b, "[%s]", seg)
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(seg)
	}
	return b.String()
}

func isIndexSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
