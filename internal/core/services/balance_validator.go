package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantabooks/accounting_backend/internal/apperrors"
	"github.com/quantabooks/accounting_backend/internal/core/domain"
	"github.com/quantabooks/accounting_backend/internal/utils/accounting"
)

var (
	ErrEntryMinLines   = errors.New("entry must have at least two lines")
	ErrAccountNotFound = errors.New("account not found")
)

// ValidateEntryLines runs the double-entry checks for a candidate line set, in
// order: minimum line count, one-sidedness of each line, account postability
// and required dimensions, and finally the balance identity. It returns every
// violation found rather than stopping at the first.
//
// It is called at entry creation and again before every approve/post
// transition, since draft lines may have been edited in between.
func ValidateEntryLines(lines []domain.JournalEntryLine, accounts map[string]domain.Account) []error {
	var errs []error

	if len(lines) < 2 {
		errs = append(errs, ErrEntryMinLines)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			errs = append(errs, fmt.Errorf("line %d: amounts must not be negative", line.LineNumber))
			continue
		}
		if line.DebitAmount.IsPositive() == line.CreditAmount.IsPositive() {
			errs = append(errs, fmt.Errorf("line %d: exactly one of debit or credit must be non-zero", line.LineNumber))
			continue
		}

		totalDebit = totalDebit.Add(accounting.Round(line.DebitAmount))
		totalCredit = totalCredit.Add(accounting.Round(line.CreditAmount))

		account, found := accounts[line.AccountID]
		if !found {
			errs = append(errs, fmt.Errorf("line %d: %w: %s", line.LineNumber, ErrAccountNotFound, line.AccountID))
			continue
		}
		if !account.IsActive {
			errs = append(errs, fmt.Errorf("line %d: account %s is inactive", line.LineNumber, account.Code))
		}
		if !account.AllowsMovements {
			errs = append(errs, fmt.Errorf("line %d: account %s does not allow movements", line.LineNumber, account.Code))
		}
		if account.HasChildren {
			errs = append(errs, fmt.Errorf("line %d: account %s is not a leaf account", line.LineNumber, account.Code))
		}
		if account.RequiresThirdParty && line.ThirdPartyID == nil {
			errs = append(errs, fmt.Errorf("line %d: account %s requires a third party", line.LineNumber, account.Code))
		}
		if account.RequiresCostCenter && line.CostCenterID == nil {
			errs = append(errs, fmt.Errorf("line %d: account %s requires a cost center", line.LineNumber, account.Code))
		}
	}

	if !totalDebit.Equal(totalCredit) {
		errs = append(errs, &apperrors.BalanceError{TotalDebit: totalDebit, TotalCredit: totalCredit})
	}

	return errs
}

// errorStrings flattens validation errors into the string form carried by
// TransitionCheck and bulk results.
func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

// combineValidationErrors collapses validation failures into one returnable
// error, preserving a lone typed error (notably BalanceError) as-is.
func combineValidationErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		var balanceErr *apperrors.BalanceError
		if errors.As(errs[0], &balanceErr) {
			return balanceErr
		}
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, errs[0].Error())
	default:
		msgs := errorStrings(errs)
		combined := msgs[0]
		for _, msg := range msgs[1:] {
			combined += "; " + msg
		}
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, combined)
	}
}
