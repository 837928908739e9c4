package schema

// Claim lifecycle statuses. These are the states of the claim state machine;
// transitions between them are gated by the action catalog.
const (
	ClaimSubmitted       = "submitted"
	ClaimPending         = "pending"
	ClaimDenied          = "denied"
	ClaimPartiallyDenied = "partially_denied"
	ClaimAppealSubmitted = "appeal_submitted"
	ClaimAppealPending   = "appeal_pending"
	ClaimAppealApproved  = "appeal_approved"
	ClaimAppealDenied    = "appeal_denied"
	ClaimPaid            = "paid"
	ClaimClosed          = "closed"
)

// ClaimStatuses returns all claim statuses in declaration order.
func ClaimStatuses() []string {
	return []string{
		ClaimSubmitted, ClaimPending, ClaimDenied, ClaimPartiallyDenied,
		ClaimAppealSubmitted, ClaimAppealPending, ClaimAppealApproved,
		ClaimAppealDenied, ClaimPaid, ClaimClosed,
	}
}

// Timeline frame event types.
const (
	EventAccountCreated   = "account_created"
	EventClaimSubmitted   = "claim_submitted"
	EventDenialReceived   = "denial_received"
	EventDropsToWorkqueue = "account_drops_to_workqueue"
	EventOperatorAction   = "operator_action"
	EventAsyncProcess     = "async_process"
	EventPaymentReceived  = "payment_received"
	EventAccountResolved  = "account_resolved"
)

// EventTypes returns all frame event types in declaration order.
func EventTypes() []string {
	return []string{
		EventAccountCreated, EventClaimSubmitted, EventDenialReceived,
		EventDropsToWorkqueue, EventOperatorAction, EventAsyncProcess,
		EventPaymentReceived, EventAccountResolved,
	}
}

// Operator action types.
const (
	ActionSubmitAppeal      = "submit_appeal"
	ActionCorrectAndRebill  = "correct_and_rebill"
	ActionPostAdjustment    = "post_adjustment"
	ActionTransferToPatient = "transfer_to_patient"
	ActionWriteOff          = "write_off"
	ActionRequestRecords    = "request_records"
	ActionContactPayer      = "contact_payer"
	ActionEscalate          = "escalate"
	ActionAddNote           = "add_note"
)

// ActionTypes returns all operator action types in declaration order.
func ActionTypes() []string {
	return []string{
		ActionSubmitAppeal, ActionCorrectAndRebill, ActionPostAdjustment,
		ActionTransferToPatient, ActionWriteOff, ActionRequestRecords,
		ActionContactPayer, ActionEscalate, ActionAddNote,
	}
}

// Transaction ledger entry types. Charges increase the balance; the
// reducing types (payment, adjustment, contractual_adjustment, write_off)
// must carry non-positive amounts.
const (
	TxnCharge                = "charge"
	TxnPayment               = "payment"
	TxnAdjustment            = "adjustment"
	TxnContractualAdjustment = "contractual_adjustment"
	TxnWriteOff              = "write_off"
	TxnDenialPosted          = "denial_posted"
	TxnAppealSubmitted       = "appeal_submitted"
	TxnRebill                = "rebill"
	TxnPatientTransfer       = "patient_transfer"
	TxnRefund                = "refund"
)

// TransactionTypes returns all transaction types in declaration order.
func TransactionTypes() []string {
	return []string{
		TxnCharge, TxnPayment, TxnAdjustment, TxnContractualAdjustment,
		TxnWriteOff, TxnDenialPosted, TxnAppealSubmitted, TxnRebill,
		TxnPatientTransfer, TxnRefund,
	}
}

// BalanceReducingTxnTypes lists the transaction types that exist to reduce
// the balance and therefore must not be positive.
func BalanceReducingTxnTypes() []string {
	return []string{TxnPayment, TxnAdjustment, TxnContractualAdjustment, TxnWriteOff}
}

// Note types.
const (
	NoteAction         = "action"
	NoteReview         = "review"
	NotePaymentPosting = "payment_posting"
	NoteSystem         = "system"
	NoteClinical       = "clinical"
	NoteFollowUp       = "follow_up"
)

// NoteTypes returns all note types in declaration order.
func NoteTypes() []string {
	return []string{
		NoteAction, NoteReview, NotePaymentPosting, NoteSystem,
		NoteClinical, NoteFollowUp,
	}
}

// Delta markers. An unchanged record carries a null or absent _delta.
const (
	DeltaAdded   = "added"
	DeltaUpdated = "updated"
)
