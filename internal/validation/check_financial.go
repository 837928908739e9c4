package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"arscenario/internal/schema"
)

// chargeTolerance absorbs float noise in LLM-produced amounts; anything
// beyond a cent is a real mismatch.
var chargeTolerance = decimal.NewFromFloat(0.01)

// checkFinancial verifies the transaction ledger of every frame: total
// charges should match the billed amount, and balance-reducing transaction
// types must not carry positive amounts. Amounts are summed as decimals so
// the cent tolerance is exact.
func checkFinancial(doc schema.Document, result *Result) error {
	reducing := make(map[string]bool)
	for _, t := range schema.BalanceReducingTxnTypes() {
		reducing[t] = true
	}

	for i, frame := range doc.Timeline() {
		state := schema.AccountState(frame)
		claims := schema.Table(state, "claims")
		transactions := schema.Table(state, "transactions")
		if len(claims) == 0 || len(transactions) == 0 {
			continue
		}

		totalCharges := decimal.Zero
		haveCharges := false
		for _, txn := range transactions {
			if schema.Str(txn, "type") != schema.TxnCharge {
				continue
			}
			haveCharges = true
			if amount, ok := schema.Num(txn, "amount"); ok {
				totalCharges = totalCharges.Add(decimal.NewFromFloat(amount))
			}
		}

		if haveCharges {
			for _, claim := range claims {
				billed := decimal.Zero
				if amount, ok := schema.Num(claim, "billed_amount"); ok {
					billed = decimal.NewFromFloat(amount)
				}
				if totalCharges.Sub(billed).Abs().GreaterThan(chargeTolerance) {
					result.Add(Issue{
						Severity: SeverityWarning,
						Category: CategoryFinancial,
						Path:     fmt.Sprintf("timeline[%d].account_state", i),
						Message:  "Total charge transactions should equal billed_amount",
						Expected: billed.String(),
						Actual:   totalCharges.String(),
					})
				}
			}
		}

		for j, txn := range transactions {
			txnType := schema.Str(txn, "type")
			if !reducing[txnType] {
				continue
			}
			if amount, ok := schema.Num(txn, "amount"); ok && amount > 0 {
				result.Add(Issue{
					Severity: SeverityError,
					Category: CategoryFinancial,
					Path:     fmt.Sprintf("timeline[%d].account_state.transactions[%d]", i, j),
					Message:  fmt.Sprintf("Transaction type '%s' should have negative amount (reduces balance)", txnType),
					Actual:   decimal.NewFromFloat(amount).String(),
				})
			}
		}
	}
	return nil
}
