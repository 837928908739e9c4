package schema

// FieldSpec describes a single record field for prompt export and schema
// documentation. Enum values use any so that the nullable _delta enum can
// include nil, matching the wire format.
type FieldSpec struct {
	Name        string
	Type        string
	Required    bool
	Format      string
	Pattern     string
	Description string
	Enum        []any
}

// RecordSchema describes the field layout of one account-state table.
type RecordSchema struct {
	Table       string
	Description string
	Fields      []FieldSpec
}

func deltaField() FieldSpec {
	return FieldSpec{Name: FieldDelta, Type: "string|null", Enum: []any{DeltaAdded, DeltaUpdated, nil}}
}

// RecordSchemas holds the field schemas of the five tables in canonical order.
var RecordSchemas = []RecordSchema{
	{
		Table:       "demographics",
		Description: "Patient and insurance information for the account",
		Fields: []FieldSpec{
			{Name: "record_id", Type: "string", Required: true, Pattern: `DEM-\d+`},
			{Name: "patient_name", Type: "string", Required: true, Format: "LastName, FirstName M."},
			{Name: "dob", Type: "string", Required: true, Format: "YYYY-MM-DD"},
			{Name: "mrn", Type: "string", Required: true, Pattern: `MRN-\d+`},
			{Name: "insurance_id", Type: "string", Required: true},
			{Name: "payer_name", Type: "string", Required: true},
			{Name: "payer_code", Type: "string", Required: true},
			{Name: "policy_status", Type: "string", Required: true, Enum: []any{"active", "inactive", "terminated"}},
			{Name: "subscriber_relationship", Type: "string", Enum: []any{"self", "spouse", "child", "other"}},
			deltaField(),
		},
	},
	{
		Table:       "claims",
		Description: "Claim records submitted to payers",
		Fields: []FieldSpec{
			{Name: "record_id", Type: "string", Required: true, Pattern: `CLM-\d+`},
			{Name: "claim_number", Type: "string", Required: true, Pattern: `CLM-\d{4}-\d+`},
			{Name: "service_date", Type: "string", Required: true, Format: "YYYY-MM-DD"},
			{Name: "procedure_codes", Type: "array[string]", Required: true, Description: "CPT/HCPCS codes"},
			{Name: "diagnosis_codes", Type: "array[string]", Required: true, Description: "ICD-10 codes"},
			{Name: "billed_amount", Type: "number", Required: true},
			{Name: "status", Type: "string", Required: true, Enum: anySlice(ClaimStatuses())},
			{Name: "submission_date", Type: "string", Format: "YYYY-MM-DD"},
			{Name: "denial_date", Type: "string", Format: "YYYY-MM-DD"},
			{Name: "denial_codes", Type: "array[string]", Description: "CARC codes like CO-16, PR-1"},
			{Name: "appeal_date", Type: "string", Format: "YYYY-MM-DD"},
			{Name: "appeal_reference", Type: "string", Pattern: `APL-\d{4}-\d+`},
			{Name: "paid_amount", Type: "number"},
			{Name: "contractual_adjustment", Type: "number"},
			{Name: "patient_responsibility", Type: "number"},
			{Name: "timely_filing_deadline", Type: "string", Format: "YYYY-MM-DD"},
			deltaField(),
			{Name: FieldChangedFields, Type: "array[string]", Description: "List of fields that changed"},
		},
	},
	{
		Table:       "remits",
		Description: "Remittance advice records from payers (ERA/835)",
		Fields: []FieldSpec{
			{Name: "record_id", Type: "string", Required: true, Pattern: `RMT-\d+`},
			{Name: "remit_date", Type: "string", Required: true, Format: "YYYY-MM-DD"},
			{Name: "claim_reference", Type: "string", Required: true, Description: "Links to claim_number"},
			{Name: "payer", Type: "string", Required: true},
			{Name: "payment_amount", Type: "number", Required: true},
			{Name: "adjustment_amount", Type: "number", Required: true},
			{Name: "adjustment_reason_codes", Type: "array[string]", Required: true, Description: "CARC codes"},
			{Name: "remark_codes", Type: "array[string]", Description: "RARC codes like N56, MA130"},
			{Name: "remark_text", Type: "string", Description: "Human-readable denial/adjustment reason"},
			{Name: "check_number", Type: "string"},
			deltaField(),
		},
	},
	{
		Table:       "transactions",
		Description: "Financial transaction ledger for the account",
		Fields: []FieldSpec{
			{Name: "record_id", Type: "string", Required: true, Pattern: `TXN-\d+`},
			{Name: "transaction_date", Type: "string", Required: true, Format: "YYYY-MM-DD"},
			{Name: "type", Type: "string", Required: true, Enum: anySlice(TransactionTypes())},
			{Name: "amount", Type: "number", Required: true, Description: "Positive = increases balance, Negative = decreases balance"},
			{Name: "description", Type: "string"},
			{Name: "reference", Type: "string", Description: "Links to remit, appeal, or other record"},
			deltaField(),
		},
	},
	{
		Table:       "notes",
		Description: "Account notes documenting actions and communications",
		Fields: []FieldSpec{
			{Name: "record_id", Type: "string", Required: true, Pattern: `NOTE-\d+`},
			{Name: "note_date", Type: "string", Required: true, Format: "ISO8601 datetime"},
			{Name: "author", Type: "string", Required: true, Description: "Operator ID or 'SYSTEM'"},
			{Name: "author_type", Type: "string", Required: true, Enum: []any{"operator", "automated", "clinical"}},
			{Name: "note_type", Type: "string", Required: true, Enum: anySlice(NoteTypes())},
			{Name: "content", Type: "string", Required: true, Description: "The note text - should be detailed and realistic"},
			deltaField(),
		},
	},
}

// RecordSchemaFor returns the schema for a table name.
func RecordSchemaFor(table string) (RecordSchema, bool) {
	for _, rs := range RecordSchemas {
		if rs.Table == table {
			return rs, true
		}
	}
	return RecordSchema{}, false
}

func anySlice(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
