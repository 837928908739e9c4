package schema

import (
	"strings"
	"testing"
)

func TestDenialCatalogConsistent(t *testing.T) {
	if len(DenialCatalog) == 0 {
		t.Fatal("denial catalog is empty")
	}
	for code, info := range DenialCatalog {
		if info.Code != code {
			t.Errorf("catalog key %q disagrees with Code field %q", code, info.Code)
		}
		if !strings.HasPrefix(code, info.Group+"-") {
			t.Errorf("code %q does not start with group %q", code, info.Group)
		}
		if info.Description == "" {
			t.Errorf("code %q has no description", code)
		}
		if info.AppealSuccessRate < 0 || info.AppealSuccessRate > 1 {
			t.Errorf("code %q has appeal success rate %v outside [0,1]", code, info.AppealSuccessRate)
		}
	}
}

func TestDenialCodesSorted(t *testing.T) {
	codes := DenialCodes()
	if len(codes) != len(DenialCatalog) {
		t.Fatalf("DenialCodes returned %d codes, catalog has %d", len(codes), len(DenialCatalog))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %q before %q", codes[i-1], codes[i])
		}
	}
}

func TestActionCatalogReferencesValidStatuses(t *testing.T) {
	valid := make(map[string]bool)
	for _, s := range ClaimStatuses() {
		valid[s] = true
	}
	txnTypes := make(map[string]bool)
	for _, tt := range TransactionTypes() {
		txnTypes[tt] = true
	}

	for name, def := range ActionCatalog {
		for _, s := range def.Pre.ClaimStatusMustBeIn {
			if !valid[s] {
				t.Errorf("action %q precondition references unknown status %q", name, s)
			}
		}
		if def.Post.ClaimStatus != "" && !valid[def.Post.ClaimStatus] {
			t.Errorf("action %q postcondition references unknown status %q", name, def.Post.ClaimStatus)
		}
		if def.Post.NewTransactionType != "" && !txnTypes[def.Post.NewTransactionType] {
			t.Errorf("action %q references unknown transaction type %q", name, def.Post.NewTransactionType)
		}
	}
}

func TestClaimMachineTransitions(t *testing.T) {
	tests := []struct {
		from  string
		event string
		want  bool
	}{
		{ClaimDenied, ActionSubmitAppeal, true},
		{ClaimPartiallyDenied, ActionSubmitAppeal, true},
		{ClaimAppealDenied, ActionSubmitAppeal, true},
		{ClaimPaid, ActionSubmitAppeal, false},
		{ClaimSubmitted, ActionSubmitAppeal, false},
		{ClaimDenied, ActionCorrectAndRebill, true},
		{ClaimPaid, ActionCorrectAndRebill, false},
		{ClaimAppealSubmitted, "appeal_approved", true},
		{ClaimAppealPending, "appeal_denied", true},
		{ClaimDenied, "appeal_approved", false},
	}
	for _, tt := range tests {
		m := NewClaimMachine(tt.from)
		if got := m.Can(tt.event); got != tt.want {
			t.Errorf("Can(%q) from %q = %v, want %v", tt.event, tt.from, got, tt.want)
		}
	}
}

func TestResultingClaimStatus(t *testing.T) {
	if status, ok := ResultingClaimStatus(ActionSubmitAppeal); !ok || status != ClaimAppealSubmitted {
		t.Errorf("ResultingClaimStatus(submit_appeal) = %q, %v", status, ok)
	}
	if status, ok := ResultingClaimStatus("appeal_approved"); !ok || status != ClaimPaid {
		t.Errorf("ResultingClaimStatus(appeal_approved) = %q, %v", status, ok)
	}
	if _, ok := ResultingClaimStatus(ActionPostAdjustment); ok {
		t.Error("post_adjustment should have no resulting status")
	}
	if _, ok := ResultingClaimStatus("nonsense"); ok {
		t.Error("unknown event should have no resulting status")
	}
}

func TestRecordSchemaFor(t *testing.T) {
	for _, table := range Tables {
		rs, ok := RecordSchemaFor(table)
		if !ok {
			t.Fatalf("no record schema for table %q", table)
		}
		found := false
		for _, f := range rs.Fields {
			if f.Name == "record_id" {
				found = true
				if !f.Required {
					t.Errorf("table %q record_id should be required", table)
				}
			}
		}
		if !found {
			t.Errorf("table %q schema lacks record_id", table)
		}
	}
	if _, ok := RecordSchemaFor("widgets"); ok {
		t.Error("unknown table should have no schema")
	}
}

func TestTextExporters(t *testing.T) {
	schemaText := SchemaText()
	for _, table := range Tables {
		if !strings.Contains(schemaText, strings.ToUpper(table)) {
			t.Errorf("schema text missing table %q", table)
		}
	}
	for _, name := range ActionNames() {
		if !strings.Contains(schemaText, name) {
			t.Errorf("schema text missing action %q", name)
		}
	}

	catalogText := DenialCatalogText()
	for _, code := range DenialCodes() {
		if !strings.Contains(catalogText, code) {
			t.Errorf("catalog text missing code %q", code)
		}
	}

	constraintsText := ConstraintsText()
	for _, group := range LogicalConstraints {
		if !strings.Contains(constraintsText, strings.ToUpper(group.Category)) {
			t.Errorf("constraints text missing category %q", group.Category)
		}
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := Document{
		"scenario_metadata": map[string]any{"denial_code": "CO-16"},
		"account":           map[string]any{"service_date": "2024-08-15"},
		"timeline": []any{
			map[string]any{
				"account_state": map[string]any{
					"claims": []any{
						map[string]any{"record_id": "CLM-001", "billed_amount": 425.0},
					},
				},
			},
			"not a frame",
		},
	}

	if got := Str(doc.Metadata(), "denial_code"); got != "CO-16" {
		t.Errorf("metadata denial_code = %q", got)
	}
	frames := doc.Timeline()
	if len(frames) != 2 {
		t.Fatalf("timeline length = %d, want 2", len(frames))
	}
	if frames[1] != nil {
		t.Error("non-map frame should come back nil")
	}
	claims := Table(AccountState(frames[0]), "claims")
	if len(claims) != 1 || RecordID(claims[0]) != "CLM-001" {
		t.Fatalf("claims = %v", claims)
	}
	if amount, ok := Num(claims[0], "billed_amount"); !ok || amount != 425.0 {
		t.Errorf("billed_amount = %v, %v", amount, ok)
	}
	if _, ok := Num(claims[0], "record_id"); ok {
		t.Error("string field should not read as number")
	}
}
