package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
	Cost      AccountType = "COST"
)

// BalanceSide is the side on which an account's balance naturally increases.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalBalanceSide derives the normal side from the account type.
// Asset, expense and cost accounts increase with debits; liability, equity
// and income accounts increase with credits.
func (t AccountType) NormalBalanceSide() BalanceSide {
	switch t {
	case Asset, Expense, Cost:
		return DebitSide
	default:
		return CreditSide
	}
}

// Account represents a node in the chart of accounts. The ledger core only
// reads accounts; their accumulators are mutated exclusively at posting time.
type Account struct {
	AccountID          string          `json:"accountID"`
	Code               string          `json:"code"` // User-facing account code (e.g. "1.1.01")
	Name               string          `json:"name"`
	AccountType        AccountType     `json:"accountType"`
	ParentAccountID    *string         `json:"parentAccountID"` // Nullable, self-referencing
	Description        string          `json:"description"`
	AllowsMovements    bool            `json:"allowsMovements"`
	HasChildren        bool            `json:"hasChildren"` // Derived; non-leaf accounts never receive postings
	RequiresThirdParty bool            `json:"requiresThirdParty"`
	RequiresCostCenter bool            `json:"requiresCostCenter"`
	IsActive           bool            `json:"isActive"`
	Balance            decimal.Decimal `json:"balance"`       // Net balance on the account's normal side
	DebitBalance       decimal.Decimal `json:"debitBalance"`  // Accumulated posted debits
	CreditBalance      decimal.Decimal `json:"creditBalance"` // Accumulated posted credits
	AuditFields
}

// IsPostable reports whether the account may appear on a journal entry line.
func (a Account) IsPostable() bool {
	return a.IsActive && a.AllowsMovements && !a.HasChildren
}

// BalanceDelta describes the accumulator change posting applies to one account.
type BalanceDelta struct {
	Debit  decimal.Decimal // Added to the debit accumulator
	Credit decimal.Decimal // Added to the credit accumulator
	Net    decimal.Decimal // Added to the normal-side balance
}

// Add merges another delta into this one.
func (d BalanceDelta) Add(other BalanceDelta) BalanceDelta {
	return BalanceDelta{
		Debit:  d.Debit.Add(other.Debit),
		Credit: d.Credit.Add(other.Credit),
		Net:    d.Net.Add(other.Net),
	}
}

// Negate returns the delta that undoes this one.
func (d BalanceDelta) Negate() BalanceDelta {
	return BalanceDelta{
		Debit:  d.Debit.Neg(),
		Credit: d.Credit.Neg(),
		Net:    d.Net.Neg(),
	}
}
