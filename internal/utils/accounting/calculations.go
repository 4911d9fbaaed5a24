package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
)

// CurrencyPrecision is the number of decimal places amounts are kept to.
const CurrencyPrecision = 2

// Round normalises an amount to the configured currency precision.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPrecision)
}

// SignedAmount returns the effect of a line on its account's normal-side
// balance: positive when the line moves the balance in the account's natural
// direction, negative otherwise.
func SignedAmount(line domain.JournalEntryLine, accountType domain.AccountType) decimal.Decimal {
	if accountType.NormalBalanceSide() == domain.DebitSide {
		return line.DebitAmount.Sub(line.CreditAmount)
	}
	return line.CreditAmount.Sub(line.DebitAmount)
}

// LineDelta converts a line into the accumulator delta posting applies to its
// account.
func LineDelta(line domain.JournalEntryLine, accountType domain.AccountType) domain.BalanceDelta {
	return domain.BalanceDelta{
		Debit:  line.DebitAmount,
		Credit: line.CreditAmount,
		Net:    SignedAmount(line, accountType),
	}
}

// BalanceChanges aggregates per-account accumulator deltas for a set of lines.
// This is what the post transition applies, and what cancel/reset-to-draft of
// a posted entry applies negated.
func BalanceChanges(lines []domain.JournalEntryLine, accountTypes map[string]domain.AccountType) map[string]domain.BalanceDelta {
	changes := make(map[string]domain.BalanceDelta, len(lines))
	for _, line := range lines {
		delta := LineDelta(line, accountTypes[line.AccountID])
		changes[line.AccountID] = changes[line.AccountID].Add(delta)
	}
	return changes
}

// NegateChanges returns the changes that undo the given set.
func NegateChanges(changes map[string]domain.BalanceDelta) map[string]domain.BalanceDelta {
	negated := make(map[string]domain.BalanceDelta, len(changes))
	for accountID, delta := range changes {
		negated[accountID] = delta.Negate()
	}
	return negated
}

// ClosingBalance computes an account's closing balance from its opening
// balance and period movements, per its normal balance side.
func ClosingBalance(accountType domain.AccountType, opening, debits, credits decimal.Decimal) decimal.Decimal {
	if accountType.NormalBalanceSide() == domain.DebitSide {
		return opening.Add(debits).Sub(credits)
	}
	return opening.Add(credits).Sub(debits)
}
