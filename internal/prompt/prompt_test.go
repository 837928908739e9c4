package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arscenario/internal/schema"
	"arscenario/internal/validation"
)

func TestEmbeddedExamplesValidateClean(t *testing.T) {
	v := validation.New()
	for _, example := range FewShotExamples(2, nil) {
		var doc schema.Document
		require.NoError(t, json.Unmarshal([]byte(example), &doc))

		result := v.Validate(doc)
		assert.True(t, result.Valid, "embedded example must be valid: %s", result.Render())
		assert.Empty(t, result.AllIssues(), "embedded example must produce zero issues")
	}
}

func TestFewShotExampleFiltering(t *testing.T) {
	assert.Len(t, FewShotExamples(2, nil), 2)
	assert.Len(t, FewShotExamples(1, nil), 1)
	assert.Empty(t, FewShotExamples(0, nil))

	co16 := FewShotExamples(2, []string{"CO-16"})
	require.Len(t, co16, 1)
	assert.Contains(t, co16[0], `"denial_code": "CO-16"`)

	assert.Empty(t, FewShotExamples(2, []string{"CO-45"}))
}

func TestSystemPrompt(t *testing.T) {
	base := SystemPrompt(false)
	assert.Contains(t, base, "Revenue Cycle Management")
	assert.NotContains(t, base, "## RECORD SCHEMAS")

	full := SystemPrompt(true)
	assert.Contains(t, full, "## RECORD SCHEMAS")
	assert.Contains(t, full, "## DENIAL CODE CATALOG")
	assert.Contains(t, full, "## LOGICAL CONSTRAINTS")
	for _, code := range schema.DenialCodes() {
		assert.Contains(t, full, code)
	}
}

func TestGenerationPrompt(t *testing.T) {
	p := GenerationPrompt("CO-16", "moderate", "outpatient", "Aetna", "Keep it to three frames.")
	assert.Contains(t, p, "Denial Code: CO-16")
	assert.Contains(t, p, "Complexity: moderate")
	assert.Contains(t, p, "Service Type: outpatient")
	assert.Contains(t, p, "Payer: Aetna")
	assert.Contains(t, p, schema.DenialCatalog["CO-16"].Description)
	assert.Contains(t, p, "Keep it to three frames.")
	assert.Contains(t, p, "Return ONLY valid JSON")
}

func TestGenerationPromptUnknownCode(t *testing.T) {
	p := GenerationPrompt("ZZ-1", "simple", "inpatient", "", "")
	assert.Contains(t, p, "Denial Code: ZZ-1")
	assert.Contains(t, p, "Unknown denial code")
	assert.NotContains(t, p, "- Payer:")
}

func TestRepairPrompt(t *testing.T) {
	doc := schema.Document{"scenario_metadata": map[string]any{"scenario_id": "SCN-2024-000001"}}
	errs := []validation.Issue{
		{
			Severity:   validation.SeverityError,
			Category:   validation.CategoryTemporal,
			Path:       "timeline[1].timestamp",
			Message:    "Timestamps must be in chronological order",
			Actual:     "2020-01-01T00:00:00Z",
			Suggestion: "Each frame's timestamp must be >= previous frame's timestamp",
		},
		{
			Severity: validation.SeverityError,
			Category: validation.CategoryState,
			Path:     "timeline[2]",
			Message:  "After 'submit_appeal', claim status should be 'appeal_submitted'",
			Expected: "appeal_submitted",
			Actual:   "denied",
		},
	}

	p := RepairPrompt(doc, errs)
	assert.Contains(t, p, "SCN-2024-000001")
	assert.Contains(t, p, "1. [temporal] timeline[1].timestamp: Timestamps must be in chronological order")
	assert.Contains(t, p, "2. [state] timeline[2]:")
	assert.Contains(t, p, "Expected: appeal_submitted")
	assert.Contains(t, p, "Suggestion: Each frame's timestamp")
	assert.Contains(t, p, "Return ONLY the corrected JSON")
}

func TestExportPromptContext(t *testing.T) {
	out := ExportPromptContext()
	assert.Contains(t, out, "## FEW-SHOT EXAMPLES")
	assert.Contains(t, out, "### Example 1: CO-16")
	assert.Contains(t, out, "### Example 2: PR-1")
	assert.Equal(t, 2, strings.Count(out, "```json"))
}
