// Package prompt builds the LLM prompts for scenario generation and repair.
// The few-shot examples are known-good scenarios embedded at build time.
package prompt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"arscenario/internal/schema"
	"arscenario/internal/validation"
)

//go:embed example_co16.json
var exampleCO16 string

//go:embed example_pr1.json
var examplePR1 string

const systemPromptBase = `You are an expert in Healthcare Revenue Cycle Management (RCM), specifically in Accounts Receivable (AR) billing operations. You have deep knowledge of:

- Medical billing codes (CPT, ICD-10, HCPCS)
- Claim Adjustment Reason Codes (CARC) and Remittance Advice Remark Codes (RARC)
- Payer contracts, denials, and appeals processes
- AR billing workflows and operator actions
- Healthcare financial transactions and reconciliation

Your task is to generate realistic AR billing scenarios that represent the lifecycle of an account from when it lands on a billing operator's workqueue through resolution.

Each scenario you generate must:
1. Follow the exact JSON schema provided
2. Be logically consistent (actions have valid preconditions, state changes are correct)
3. Be temporally consistent (dates in chronological order)
4. Be financially consistent (transactions sum correctly)
5. Include realistic, substantive content (detailed notes, proper denial descriptions)
6. Track changes with _delta fields (added, updated, null)
`

// SystemPrompt returns the system prompt, optionally with the full record
// schemas, denial catalog, and logical constraints appended.
func SystemPrompt(includeSchemas bool) string {
	if !includeSchemas {
		return systemPromptBase
	}
	var b strings.Builder
	b.WriteString(systemPromptBase)
	b.WriteString("\n\n## RECORD SCHEMAS\n\n")
	b.WriteString(schema.SchemaText())
	b.WriteString("\n## DENIAL CODE CATALOG\n\n")
	b.WriteString(schema.DenialCatalogText())
	b.WriteString("\n## LOGICAL CONSTRAINTS\n\n")
	b.WriteString(schema.ConstraintsText())
	return b.String()
}

// FewShotExamples returns up to count embedded example scenarios, optionally
// filtered by denial code.
func FewShotExamples(count int, denialCodes []string) []string {
	type example struct {
		code string
		text string
	}
	all := []example{
		{"CO-16", exampleCO16},
		{"PR-1", examplePR1},
	}

	if count <= 0 {
		return nil
	}
	var out []string
	for _, ex := range all {
		if len(denialCodes) > 0 && !contains(denialCodes, ex.code) {
			continue
		}
		out = append(out, ex.text)
		if len(out) == count {
			break
		}
	}
	return out
}

func contains(vals []string, want string) bool {
	for _, v := range vals {
		if v == want {
			return true
		}
	}
	return false
}

// GenerationPrompt builds the user prompt for generating a scenario from a
// denial-code seed.
func GenerationPrompt(denialCode, complexity, serviceType, payer, additionalInstructions string) string {
	info, known := schema.DenialCatalog[denialCode]
	description := "Unknown denial code"
	if known {
		description = info.Description
	}

	details, _ := json.MarshalIndent(info, "", "  ")
	docs := []string{"None"}
	if len(info.DocumentationNeeded) > 0 {
		docs = info.DocumentationNeeded
	}

	var b strings.Builder
	b.WriteString("Generate a realistic AR billing scenario based on the following seed:\n\n")
	b.WriteString("## SEED PARAMETERS\n")
	fmt.Fprintf(&b, "- Denial Code: %s\n", denialCode)
	fmt.Fprintf(&b, "- Denial Description: %s\n", description)
	fmt.Fprintf(&b, "- Complexity: %s\n", complexity)
	fmt.Fprintf(&b, "- Service Type: %s\n", serviceType)
	if payer != "" {
		fmt.Fprintf(&b, "- Payer: %s\n", payer)
	}
	b.WriteString("\n")
	b.WriteString("## DENIAL CODE DETAILS\n")
	b.Write(details)
	b.WriteString("\n\n## TYPICAL RESOLUTION PATH\n")
	b.WriteString("Based on this denial code, here are the typical actions and outcomes:\n")
	fmt.Fprintf(&b, "- Typical Actions: %s\n", strings.Join(info.TypicalActions, ", "))
	fmt.Fprintf(&b, "- Documentation Needed: %s\n", strings.Join(docs, ", "))
	fmt.Fprintf(&b, "- Appeal Success Rate: %.0f%%\n", info.AppealSuccessRate*100)
	fmt.Fprintf(&b, "- Average Resolution Days: %d\n\n", info.AvgResolutionDays)
	b.WriteString(`## REQUIREMENTS

1. **Structure**: Follow the exact JSON schema provided in the system prompt.

2. **Timeline**: Generate a realistic timeline with:
   - Frame 1: Account drops to workqueue (initial state after denial)
   - Frame 2+: Operator actions and/or async events leading to resolution
   - Include realistic time gaps between frames (hours to weeks depending on action)

3. **Logical Consistency**:
   - Actions must satisfy preconditions (e.g., can't appeal a paid claim)
   - State changes must reflect action postconditions
   - Financial transactions must balance correctly

4. **Content Quality**:
   - Generate realistic patient demographics (use diverse names, ages)
   - Use appropriate CPT codes for the service type
   - Write detailed, realistic notes that an actual billing operator would write
   - Include specific details like check numbers, appeal references

5. **Delta Tracking**:
   - New records: _delta = "added"
   - Modified records: _delta = "updated" with _changed_fields
   - Unchanged records: _delta = null

## OUTPUT FORMAT
Return ONLY valid JSON matching the scenario schema. Do not include any text before or after the JSON.

`)
	if additionalInstructions != "" {
		b.WriteString(additionalInstructions)
		b.WriteString("\n\n")
	}
	b.WriteString("Generate the scenario now:\n")
	return b.String()
}

// RepairPrompt builds the user prompt asking the model to fix the listed
// validation errors while preserving the rest of the scenario.
func RepairPrompt(doc schema.Document, errors []validation.Issue) string {
	scenarioJSON, _ := json.MarshalIndent(doc, "", "  ")

	var errLines []string
	for i, issue := range errors {
		errLines = append(errLines, fmt.Sprintf("%d. [%s] %s: %s", i+1, issue.Category, issue.Path, issue.Message))
		if issue.Expected != "" {
			errLines = append(errLines, fmt.Sprintf("   Expected: %s", issue.Expected))
		}
		if issue.Actual != "" {
			errLines = append(errLines, fmt.Sprintf("   Actual: %s", issue.Actual))
		}
		if issue.Suggestion != "" {
			errLines = append(errLines, fmt.Sprintf("   Suggestion: %s", issue.Suggestion))
		}
	}

	var b strings.Builder
	b.WriteString("The following AR billing scenario has validation errors that need to be fixed.\n\n")
	b.WriteString("## ORIGINAL SCENARIO\n```json\n")
	b.Write(scenarioJSON)
	b.WriteString("\n```\n\n")
	b.WriteString("## VALIDATION ERRORS\nThe following issues were found:\n\n")
	b.WriteString(strings.Join(errLines, "\n"))
	b.WriteString("\n\n## REPAIR INSTRUCTIONS\n")
	b.WriteString(`Please fix ALL the validation errors above while:
1. Maintaining the overall narrative and intent of the scenario
2. Preserving all correct data and structure
3. Making minimal changes necessary to fix each error
4. Ensuring the repaired scenario passes all validation checks

## OUTPUT FORMAT
Return ONLY the corrected JSON. Do not include any explanation or text outside the JSON.

Corrected scenario:
`)
	return b.String()
}

// ExportPromptContext returns the full prompting context (system prompt plus
// every few-shot example) as one string, for inspection and offline use.
func ExportPromptContext() string {
	var b strings.Builder
	b.WriteString(SystemPrompt(true))
	b.WriteString("\n\n## FEW-SHOT EXAMPLES\n\n")
	b.WriteString("Here are examples of correctly formatted scenarios:\n")
	for i, ex := range FewShotExamples(2, nil) {
		var meta struct {
			Metadata struct {
				DenialCode string `json:"denial_code"`
			} `json:"scenario_metadata"`
		}
		json.Unmarshal([]byte(ex), &meta)
		fmt.Fprintf(&b, "\n### Example %d: %s\n", i+1, meta.Metadata.DenialCode)
		fmt.Fprintf(&b, "```json\n%s\n```\n", strings.TrimRight(ex, "\n"))
	}
	return b.String()
}
