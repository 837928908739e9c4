package schema

import (
	"fmt"
	"strings"
)

// ConstraintGroup is one category of logical constraints a generated
// scenario must satisfy, rendered into the system prompt.
type ConstraintGroup struct {
	Category string
	Rules    []string
}

// LogicalConstraints enumerates the cross-cutting rules the validator
// enforces, in prompt order.
var LogicalConstraints = []ConstraintGroup{
	{
		Category: "temporal",
		Rules: []string{
			"All timestamps must be in chronological order",
			"service_date must be before all other dates",
			"denial_date must be after submission_date",
			"appeal_date must be after denial_date",
			"timely_filing_deadline must be after service_date (typically 90-365 days)",
		},
	},
	{
		Category: "financial",
		Rules: []string{
			"Initial charge transaction amount must equal billed_amount",
			"Sum of all transactions must equal current account balance",
			"payment amounts in transactions should be negative (reduces balance)",
			"adjustment amounts in transactions should be negative (reduces balance)",
			"paid_amount + contractual_adjustment + patient_responsibility should equal billed_amount when resolved",
		},
	},
	{
		Category: "state_transitions",
		Rules: []string{
			"Claim status can only transition through valid paths (denied -> appeal_submitted -> appeal_approved/appeal_denied)",
			"Cannot submit appeal if claim is not in denied state",
			"Cannot post payment if claim is not approved/paid",
			"Cannot write off if account balance is already zero",
		},
	},
	{
		Category: "delta_tracking",
		Rules: []string{
			"Records that change between frames must have _delta='updated' and _changed_fields populated",
			"New records must have _delta='added'",
			"Unchanged records should have _delta=null or be omitted",
			"If claim.status changes, _changed_fields must include 'status'",
		},
	},
	{
		Category: "referential_integrity",
		Rules: []string{
			"remit.claim_reference must match an existing claim.claim_number",
			"transaction.reference should match a valid remit, appeal, or other record",
			"notes should reference relevant claims or actions",
		},
	},
	{
		Category: "content_requirements",
		Rules: []string{
			"Notes must be substantive and describe the action taken",
			"Action notes must mention the denial code being addressed",
			"Appeal notes must include what documentation was attached",
			"Event descriptions should explain what triggered the event",
		},
	},
}

// SchemaText renders the record schemas and action catalog as plain text for
// LLM context.
func SchemaText() string {
	var b strings.Builder
	b.WriteString("# AR BILLING SCENARIO SCHEMAS\n\n")

	b.WriteString("## RECORD SCHEMAS\n\n")
	for _, rs := range RecordSchemas {
		fmt.Fprintf(&b, "### %s\n\n", strings.ToUpper(rs.Table))
		fmt.Fprintf(&b, "%s\n\nFields:\n", rs.Description)
		for _, f := range rs.Fields {
			req := "optional"
			if f.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "  - %s: %s (%s)\n", f.Name, f.Type, req)
			if f.Description != "" {
				fmt.Fprintf(&b, "    Description: %s\n", f.Description)
			}
			if len(f.Enum) > 0 {
				fmt.Fprintf(&b, "    Valid values: %v\n", f.Enum)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## ACTION DEFINITIONS\n\n")
	for _, name := range ActionNames() {
		def := ActionCatalog[name]
		fmt.Fprintf(&b, "### %s\n\n", name)
		fmt.Fprintf(&b, "Description: %s\nActor: %s\n\n", def.Description, def.Actor)
		b.WriteString("Preconditions:\n")
		if len(def.Pre.ClaimStatusMustBeIn) > 0 {
			fmt.Fprintf(&b, "  - claim_status must be one of: %s\n", strings.Join(def.Pre.ClaimStatusMustBeIn, ", "))
		}
		if def.Pre.RequireNoPendingAppeal {
			b.WriteString("  - no appeal may already be pending (appeal_reference must be null)\n")
		}
		if def.Pre.RequireTimelyFiling {
			b.WriteString("  - must be within the timely filing/appeal window\n")
		}
		if def.Pre.RequireBalance {
			b.WriteString("  - account must have a non-zero balance\n")
		}
		if len(def.Pre.CorrectableCodes) > 0 {
			fmt.Fprintf(&b, "  - denial code must be correctable: %s\n", strings.Join(def.Pre.CorrectableCodes, ", "))
		}
		if len(def.Pre.PatientResponsibilityCodes) > 0 {
			fmt.Fprintf(&b, "  - denial must be patient responsibility: %s\n", strings.Join(def.Pre.PatientResponsibilityCodes, ", "))
		}
		if len(def.Pre.WriteOffReasons) > 0 {
			fmt.Fprintf(&b, "  - write-off reason must be one of: %s\n", strings.Join(def.Pre.WriteOffReasons, ", "))
		}
		b.WriteString("\nPostconditions:\n")
		if def.Post.ClaimStatus != "" {
			fmt.Fprintf(&b, "  - claim status becomes '%s' (_delta='updated', _changed_fields=%v)\n", def.Post.ClaimStatus, def.Post.ChangedFields)
		}
		if def.Post.NewTransactionType != "" {
			fmt.Fprintf(&b, "  - a new '%s' transaction is added (_delta='added')\n", def.Post.NewTransactionType)
		}
		if def.Post.RequireNewNote {
			fmt.Fprintf(&b, "  - a new action note is added mentioning: %s\n", strings.Join(def.Post.NoteMustContain, ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// DenialCatalogText renders the denial catalog as plain text for LLM context.
func DenialCatalogText() string {
	var b strings.Builder
	b.WriteString("# DENIAL CODE CATALOG\n\n")
	for _, code := range DenialCodes() {
		info := DenialCatalog[code]
		fmt.Fprintf(&b, "## %s: %s\n", code, info.Description)
		fmt.Fprintf(&b, "Category: %s\n", info.Category)
		fmt.Fprintf(&b, "Common causes: %s\n", strings.Join(info.CommonCauses, ", "))
		fmt.Fprintf(&b, "Typical actions: %s\n", strings.Join(info.TypicalActions, ", "))
		docs := "None"
		if len(info.DocumentationNeeded) > 0 {
			docs = strings.Join(info.DocumentationNeeded, ", ")
		}
		fmt.Fprintf(&b, "Documentation needed: %s\n", docs)
		fmt.Fprintf(&b, "Appeal success rate: %.0f%%\n", info.AppealSuccessRate*100)
		fmt.Fprintf(&b, "Avg resolution days: %d\n\n", info.AvgResolutionDays)
	}
	return b.String()
}

// ConstraintsText renders the logical constraints as plain text for LLM
// context.
func ConstraintsText() string {
	var b strings.Builder
	b.WriteString("# LOGICAL CONSTRAINTS\n\n")
	b.WriteString("The generated scenario MUST satisfy all of these constraints:\n\n")
	for _, group := range LogicalConstraints {
		fmt.Fprintf(&b, "## %s\n", strings.ToUpper(group.Category))
		for _, rule := range group.Rules {
			fmt.Fprintf(&b, "  - %s\n", rule)
		}
		b.WriteString("\n")
	}
	return b.String()
}
