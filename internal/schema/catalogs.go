package schema

import "sort"

// DenialInfo describes one CARC/RARC-style denial code: why payers issue it
// and how billing operators typically resolve it.
type DenialInfo struct {
	Code                string   `json:"code"`
	Group               string   `json:"group"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	CommonCauses        []string `json:"common_causes"`
	TypicalActions      []string `json:"typical_actions"`
	DocumentationNeeded []string `json:"documentation_needed"`
	AppealSuccessRate   float64  `json:"appeal_success_rate"`
	AvgResolutionDays   int      `json:"avg_resolution_days"`
	Urgency             string   `json:"urgency"`
}

// DenialCatalog is the known denial code reference data. The catalog may
// legitimately grow, so an unknown code in a document is a warning rather
// than an error.
var DenialCatalog = map[string]DenialInfo{
	"CO-4": {
		Code: "CO-4", Group: "CO",
		Description: "The procedure code is inconsistent with the modifier used or a required modifier is missing",
		Category:    "coding_error",
		CommonCauses: []string{
			"Modifier missing on procedure code",
			"Incorrect modifier applied",
			"Modifier not supported for procedure",
		},
		TypicalActions:      []string{ActionCorrectAndRebill, ActionSubmitAppeal},
		DocumentationNeeded: []string{"Corrected claim form", "Modifier guidelines from payer"},
		AppealSuccessRate:   0.7, AvgResolutionDays: 14, Urgency: "medium",
	},
	"CO-16": {
		Code: "CO-16", Group: "CO",
		Description: "Claim/service lacks information which is needed for adjudication",
		Category:    "missing_information",
		CommonCauses: []string{
			"Missing clinical documentation",
			"Incomplete prior authorization",
			"Missing referral information",
			"Insufficient medical necessity documentation",
		},
		TypicalActions:      []string{ActionSubmitAppeal, ActionRequestRecords},
		DocumentationNeeded: []string{"Clinical notes", "Lab results", "Imaging reports", "Prior authorization"},
		AppealSuccessRate:   0.65, AvgResolutionDays: 30, Urgency: "medium",
	},
	"CO-18": {
		Code: "CO-18", Group: "CO",
		Description: "Exact duplicate claim/service",
		Category:    "duplicate",
		CommonCauses: []string{
			"Claim submitted twice in error",
			"System resubmission glitch",
			"Incorrect date of service on rebill",
		},
		TypicalActions:    []string{ActionWriteOff, ActionCorrectAndRebill},
		AppealSuccessRate: 0.2, AvgResolutionDays: 7, Urgency: "low",
	},
	"CO-45": {
		Code: "CO-45", Group: "CO",
		Description: "Charge exceeds fee schedule/maximum allowable or contracted/legislated fee arrangement",
		Category:    "contractual",
		CommonCauses: []string{
			"Billed amount exceeds contracted rate",
			"Fee schedule maximum applied",
		},
		TypicalActions:    []string{ActionPostAdjustment},
		AppealSuccessRate: 0.05, AvgResolutionDays: 1, Urgency: "low",
	},
	"CO-97": {
		Code: "CO-97", Group: "CO",
		Description: "The benefit for this service is included in the payment/allowance for another service/procedure that has already been adjudicated",
		Category:    "bundling",
		CommonCauses: []string{
			"Procedure bundled with primary service",
			"Inclusive service not separately payable",
			"NCCI edit applied",
		},
		TypicalActions:      []string{ActionSubmitAppeal, ActionPostAdjustment},
		DocumentationNeeded: []string{"Operative report", "Documentation of distinct service"},
		AppealSuccessRate:   0.4, AvgResolutionDays: 45, Urgency: "medium",
	},
	"CO-109": {
		Code: "CO-109", Group: "CO",
		Description: "Claim/service not covered by this payer/contractor",
		Category:    "coverage",
		CommonCauses: []string{
			"Service not in benefit plan",
			"Out of network provider",
			"Coordination of benefits issue",
		},
		TypicalActions:      []string{ActionTransferToPatient, ActionSubmitAppeal},
		DocumentationNeeded: []string{"Benefit verification", "Network status documentation"},
		AppealSuccessRate:   0.3, AvgResolutionDays: 21, Urgency: "medium",
	},
	"CO-167": {
		Code: "CO-167", Group: "CO",
		Description: "This (these) diagnosis(es) is (are) not covered",
		Category:    "coverage",
		CommonCauses: []string{
			"Diagnosis not covered under plan",
			"Pre-existing condition exclusion",
			"Cosmetic/elective procedure",
		},
		TypicalActions:      []string{ActionSubmitAppeal, ActionTransferToPatient},
		DocumentationNeeded: []string{"Medical necessity letter", "Clinical documentation"},
		AppealSuccessRate:   0.35, AvgResolutionDays: 30, Urgency: "medium",
	},
	"PR-1": {
		Code: "PR-1", Group: "PR",
		Description: "Deductible amount",
		Category:    "patient_responsibility",
		CommonCauses: []string{
			"Patient deductible not yet met",
			"Annual deductible reset",
		},
		TypicalActions:    []string{ActionTransferToPatient},
		AppealSuccessRate: 0.05, AvgResolutionDays: 60, Urgency: "low",
	},
	"PR-2": {
		Code: "PR-2", Group: "PR",
		Description: "Coinsurance amount",
		Category:    "patient_responsibility",
		CommonCauses: []string{
			"Patient responsible for coinsurance percentage",
			"Out-of-pocket maximum not met",
		},
		TypicalActions:    []string{ActionTransferToPatient},
		AppealSuccessRate: 0.05, AvgResolutionDays: 45, Urgency: "low",
	},
	"PR-3": {
		Code: "PR-3", Group: "PR",
		Description: "Co-payment amount",
		Category:    "patient_responsibility",
		CommonCauses: []string{
			"Patient copay not collected at time of service",
		},
		TypicalActions:    []string{ActionTransferToPatient},
		AppealSuccessRate: 0.05, AvgResolutionDays: 30, Urgency: "low",
	},
	"CO-22": {
		Code: "CO-22", Group: "CO",
		Description: "This care may be covered by another payer per coordination of benefits",
		Category:    "coordination_of_benefits",
		CommonCauses: []string{
			"Primary payer not billed first",
			"Incorrect payer sequence",
			"Medicare Secondary Payer situation",
		},
		TypicalActions:      []string{ActionCorrectAndRebill},
		DocumentationNeeded: []string{"Primary payer EOB", "COB information"},
		AppealSuccessRate:   0.8, AvgResolutionDays: 21, Urgency: "high",
	},
	"CO-29": {
		Code: "CO-29", Group: "CO",
		Description: "The time limit for filing has expired",
		Category:    "timely_filing",
		CommonCauses: []string{
			"Claim submitted after filing deadline",
			"Appeal submitted late",
			"Corrected claim past deadline",
		},
		TypicalActions:      []string{ActionSubmitAppeal, ActionWriteOff},
		DocumentationNeeded: []string{"Proof of timely submission", "Extenuating circumstances documentation"},
		AppealSuccessRate:   0.15, AvgResolutionDays: 30, Urgency: "high",
	},
}

// DenialCodes returns the known codes in sorted order.
func DenialCodes() []string {
	codes := make([]string, 0, len(DenialCatalog))
	for code := range DenialCatalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ActionPreconditions gate whether an operator action may be taken against
// the previous frame's snapshot.
type ActionPreconditions struct {
	// ClaimStatusMustBeIn lists the claim statuses the action may start
	// from. Empty means the action is not status-gated.
	ClaimStatusMustBeIn []string `json:"claim_status_must_be_in,omitempty"`
	// RequireNoPendingAppeal forbids the action while appeal_reference is set.
	RequireNoPendingAppeal bool `json:"require_no_pending_appeal,omitempty"`
	// RequireTimelyFiling requires the filing/appeal window to be open.
	RequireTimelyFiling bool `json:"require_timely_filing,omitempty"`
	// RequireBalance requires a non-zero account balance.
	RequireBalance bool `json:"require_balance,omitempty"`
	// CorrectableCodes limits correct_and_rebill to correctable denials.
	CorrectableCodes []string `json:"correctable_codes,omitempty"`
	// PatientResponsibilityCodes limits transfer_to_patient to PR denials.
	PatientResponsibilityCodes []string `json:"patient_responsibility_codes,omitempty"`
	// WriteOffReasons lists valid write-off justifications.
	WriteOffReasons []string `json:"write_off_reasons,omitempty"`
}

// ActionPostconditions describe the state an action must leave behind in the
// following frame's snapshot.
type ActionPostconditions struct {
	// ClaimStatus is the required resulting claim status ("" = unchanged).
	ClaimStatus string `json:"claim_status,omitempty"`
	// ChangedFields are the claim fields the action is expected to touch.
	ChangedFields []string `json:"changed_fields,omitempty"`
	// NewTransactionType is the ledger entry type the action must append.
	NewTransactionType string `json:"new_transaction_type,omitempty"`
	// RequireNewNote requires a documenting note to be added.
	RequireNewNote bool `json:"require_new_note,omitempty"`
	// NoteMustContain lists details the documenting note should mention.
	NoteMustContain []string `json:"note_must_contain,omitempty"`
}

// ActionDefinition is one operator action with its pre/postconditions.
type ActionDefinition struct {
	Action               string               `json:"action"`
	Description          string               `json:"description"`
	Actor                string               `json:"actor"`
	Pre                  ActionPreconditions  `json:"preconditions"`
	Post                 ActionPostconditions `json:"postconditions"`
	TypicalDocumentation []string             `json:"typical_documentation,omitempty"`
}

// ActionCatalog is the reference data for operator actions. The state-machine
// check consults it; nothing mutates it.
var ActionCatalog = map[string]ActionDefinition{
	ActionSubmitAppeal: {
		Action:      ActionSubmitAppeal,
		Description: "Submit a formal appeal to the payer contesting the denial",
		Actor:       "operator",
		Pre: ActionPreconditions{
			ClaimStatusMustBeIn:    []string{ClaimDenied, ClaimPartiallyDenied, ClaimAppealDenied},
			RequireNoPendingAppeal: true,
			RequireTimelyFiling:    true,
		},
		Post: ActionPostconditions{
			ClaimStatus:        ClaimAppealSubmitted,
			ChangedFields:      []string{"status", "appeal_date", "appeal_reference"},
			NewTransactionType: TxnAppealSubmitted,
			RequireNewNote:     true,
			NoteMustContain:    []string{"denial_code", "appeal_reference", "documentation_attached"},
		},
		TypicalDocumentation: []string{"clinical_notes", "lab_results", "imaging_reports", "medical_necessity_letter"},
	},
	ActionCorrectAndRebill: {
		Action:      ActionCorrectAndRebill,
		Description: "Correct the claim error and resubmit to payer",
		Actor:       "operator",
		Pre: ActionPreconditions{
			ClaimStatusMustBeIn: []string{ClaimDenied},
			RequireTimelyFiling: true,
			CorrectableCodes:    []string{"CO-4", "CO-22", "CO-16"},
		},
		Post: ActionPostconditions{
			ClaimStatus:        ClaimSubmitted,
			ChangedFields:      []string{"status"},
			NewTransactionType: TxnRebill,
			RequireNewNote:     true,
			NoteMustContain:    []string{"correction_type", "original_error"},
		},
	},
	ActionPostAdjustment: {
		Action:      ActionPostAdjustment,
		Description: "Post a financial adjustment to the account balance",
		Actor:       "operator",
		Pre: ActionPreconditions{
			RequireBalance: true,
		},
		Post: ActionPostconditions{
			NewTransactionType: TxnAdjustment,
			RequireNewNote:     true,
			NoteMustContain:    []string{"adjustment_amount", "adjustment_reason"},
		},
	},
	ActionTransferToPatient: {
		Action:      ActionTransferToPatient,
		Description: "Transfer remaining balance to patient responsibility",
		Actor:       "operator",
		Pre: ActionPreconditions{
			PatientResponsibilityCodes: []string{"PR-1", "PR-2", "PR-3"},
		},
		Post: ActionPostconditions{
			NewTransactionType: TxnPatientTransfer,
			RequireNewNote:     true,
			NoteMustContain:    []string{"transfer_amount", "patient_statement"},
		},
	},
	ActionWriteOff: {
		Action:      ActionWriteOff,
		Description: "Write off the remaining balance as uncollectible",
		Actor:       "operator",
		Pre: ActionPreconditions{
			RequireBalance:  true,
			WriteOffReasons: []string{"bad_debt", "small_balance", "timely_filing_expired", "charity"},
		},
		Post: ActionPostconditions{
			ClaimStatus:        ClaimClosed,
			ChangedFields:      []string{"status"},
			NewTransactionType: TxnWriteOff,
			RequireNewNote:     true,
			NoteMustContain:    []string{"writeoff_amount", "writeoff_reason"},
		},
	},
}

// ActionNames returns the catalog action names in sorted order.
func ActionNames() []string {
	names := make([]string, 0, len(ActionCatalog))
	for name := range ActionCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AsyncEventDefinition describes a payer- or system-driven transition that
// happens without an operator action.
type AsyncEventDefinition struct {
	Event           string   `json:"event"`
	EventType       string   `json:"event_type"`
	Trigger         string   `json:"trigger"`
	Description     string   `json:"description"`
	StatusMustBeIn  []string `json:"status_must_be_in,omitempty"`
	ResultingStatus string   `json:"resulting_status,omitempty"`
}

// AsyncEventCatalog is the reference data for async transitions.
var AsyncEventCatalog = map[string]AsyncEventDefinition{
	"appeal_approved": {
		Event:           "appeal_approved",
		EventType:       EventAsyncProcess,
		Trigger:         "payer_response",
		Description:     "Payer approves the appeal and issues payment",
		StatusMustBeIn:  []string{ClaimAppealSubmitted, ClaimAppealPending},
		ResultingStatus: ClaimPaid,
	},
	"appeal_denied": {
		Event:           "appeal_denied",
		EventType:       EventAsyncProcess,
		Trigger:         "payer_response",
		Description:     "Payer denies the appeal, upholding original denial",
		StatusMustBeIn:  []string{ClaimAppealSubmitted, ClaimAppealPending},
		ResultingStatus: ClaimAppealDenied,
	},
	"payment_received": {
		Event:       "payment_received",
		EventType:   EventPaymentReceived,
		Trigger:     "system_automated",
		Description: "Payment posted to the account",
	},
}

// Payer identifies a payer by display name and short code.
type Payer struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// PayerCatalog is used to diversify generated scenarios.
var PayerCatalog = []Payer{
	{"Aetna", "AET"},
	{"Blue Cross Blue Shield of Massachusetts", "BCBSMA"},
	{"Blue Cross Blue Shield of Michigan", "BCBSMI"},
	{"Blue Cross Blue Shield of North Carolina", "BCBSNC"},
	{"Blue Cross Blue Shield of Tennessee", "BCBSTN"},
	{"Blue Shield of California", "BSC"},
	{"BlueCross BlueShield of Texas", "BCBSTX"},
	{"Carefirst", "CRF"},
	{"Centene", "CEN"},
	{"Cigna", "CIG"},
	{"Elevance", "ELV"},
	{"Emblem Health", "EMB"},
	{"Florida Blue", "FLB"},
	{"Geisinger", "GEI"},
	{"Harvard Pilgrim Health Care", "HPH"},
	{"Highmark", "HMK"},
	{"Horizon Blue Cross Blue Shield", "HOR"},
	{"Humana", "HUM"},
	{"Independence Blue Cross", "IBC"},
	{"Kaiser Permanente", "KP"},
	{"L.A. Care", "LAC"},
	{"Medica Health Plan", "MED"},
	{"Molina", "MOL"},
	{"MVP Health Care", "MVP"},
	{"Oscar", "OSC"},
	{"Premera Blue Cross", "PBC"},
	{"Regence", "REG"},
	{"Tufts Health Plan", "THP"},
	{"United Health Group", "UHG"},
	{"UPMC Health Plan", "UPM"},
	{"Wellmark", "WMK"},
}
