package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantabooks/accounting_backend/internal/apperrors"
	"github.com/quantabooks/accounting_backend/internal/core/domain"
	"github.com/quantabooks/accounting_backend/internal/core/services"
)

func postableAccount(id, code string, accountType domain.AccountType) domain.Account {
	return domain.Account{
		AccountID:       id,
		Code:            code,
		AccountType:     accountType,
		AllowsMovements: true,
		IsActive:        true,
	}
}

func TestValidateEntryLines(t *testing.T) {
	cash := postableAccount("cash", "1.1.01", domain.Asset)
	revenue := postableAccount("revenue", "4.1.01", domain.Income)
	accounts := map[string]domain.Account{"cash": cash, "revenue": revenue}

	debit := func(accountID string, v float64) domain.JournalEntryLine {
		return domain.JournalEntryLine{LineNumber: 1, AccountID: accountID, DebitAmount: decimal.NewFromFloat(v)}
	}
	credit := func(accountID string, v float64) domain.JournalEntryLine {
		return domain.JournalEntryLine{LineNumber: 2, AccountID: accountID, CreditAmount: decimal.NewFromFloat(v)}
	}

	t.Run("balanced entry passes", func(t *testing.T) {
		errs := services.ValidateEntryLines([]domain.JournalEntryLine{debit("cash", 100), credit("revenue", 100)}, accounts)
		assert.Empty(t, errs)
	})

	t.Run("single line fails", func(t *testing.T) {
		errs := services.ValidateEntryLines([]domain.JournalEntryLine{debit("cash", 100)}, accounts)
		require.NotEmpty(t, errs)
		assert.ErrorIs(t, errs[0], services.ErrEntryMinLines)
	})

	t.Run("imbalance yields BalanceError with difference", func(t *testing.T) {
		errs := services.ValidateEntryLines([]domain.JournalEntryLine{debit("cash", 100.5), credit("revenue", 100)}, accounts)
		require.Len(t, errs, 1)
		var balanceErr *apperrors.BalanceError
		require.ErrorAs(t, errs[0], &balanceErr)
		assert.True(t, balanceErr.Difference().Equal(decimal.NewFromFloat(0.5)))
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		errs := services.ValidateEntryLines([]domain.JournalEntryLine{debit("cash", -10), credit("revenue", 10)}, accounts)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0].Error(), "must not be negative")
	})

	t.Run("zero-zero line rejected", func(t *testing.T) {
		errs := services.ValidateEntryLines([]domain.JournalEntryLine{
			{LineNumber: 1, AccountID: "cash"},
			credit("revenue", 0),
		}, accounts)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0].Error(), "exactly one of debit or credit")
	})

	t.Run("unknown account reported per line", func(t *testing.T) {
		errs := services.ValidateEntryLines([]domain.JournalEntryLine{debit("ghost", 100), credit("revenue", 100)}, accounts)
		require.NotEmpty(t, errs)
		assert.ErrorIs(t, errs[0], services.ErrAccountNotFound)
	})

	t.Run("non-leaf account rejected", func(t *testing.T) {
		parent := cash
		parent.HasChildren = true
		errs := services.ValidateEntryLines(
			[]domain.JournalEntryLine{debit("cash", 100), credit("revenue", 100)},
			map[string]domain.Account{"cash": parent, "revenue": revenue},
		)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0].Error(), "not a leaf account")
	})

	t.Run("missing third party on flagged account", func(t *testing.T) {
		receivables := postableAccount("ar", "1.2.01", domain.Asset)
		receivables.RequiresThirdParty = true
		errs := services.ValidateEntryLines(
			[]domain.JournalEntryLine{debit("ar", 100), credit("revenue", 100)},
			map[string]domain.Account{"ar": receivables, "revenue": revenue},
		)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs[0].Error(), "requires a third party")
	})

	t.Run("sub-cent imbalance surfaces after rounding", func(t *testing.T) {
		// 33.333 rounds to 33.33; three of them total 99.99 against 100.00.
		third := decimal.NewFromFloat(33.333)
		errs := services.ValidateEntryLines([]domain.JournalEntryLine{
			{LineNumber: 1, AccountID: "cash", DebitAmount: third},
			{LineNumber: 2, AccountID: "cash", DebitAmount: third},
			{LineNumber: 3, AccountID: "cash", DebitAmount: third},
			{LineNumber: 4, AccountID: "revenue", CreditAmount: decimal.NewFromInt(100)},
		}, accounts)
		require.Len(t, errs, 1)
		var balanceErr *apperrors.BalanceError
		require.ErrorAs(t, errs[0], &balanceErr)
		assert.True(t, balanceErr.Difference().Equal(decimal.NewFromFloat(-0.01)))
	})
}
