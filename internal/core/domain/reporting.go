package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's movement summary in a trial balance.
type TrialBalanceRow struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	AccountType     AccountType     `json:"accountType"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"` // No period-close carry-forward; always zero
	DebitMovements  decimal.Decimal `json:"debitMovements"`
	CreditMovements decimal.Decimal `json:"creditMovements"`
	ClosingBalance  decimal.Decimal `json:"closingBalance"` // Per the account's normal balance side
}

// TrialBalanceReport proves total debits equal total credits as of a date.
type TrialBalanceReport struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
}

// AccountAmount is an account with its net amount in a financial statement.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// BalanceSheetReport groups account balances into the three sections of the
// accounting equation. IsBalanced surfaces equation violations instead of
// failing silently.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
}

// IncomeStatementReport summarises income and expense activity over a period.
// Operating and net profit are currently identical: operating and
// non-operating results are not separated.
type IncomeStatementReport struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	Revenue         []AccountAmount `json:"revenue"`
	Expenses        []AccountAmount `json:"expenses"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	OperatingProfit decimal.Decimal `json:"operatingProfit"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

// LedgerMovement is one posted line in an account's general ledger, ordered by
// (entry_date, line_number), carrying the balance after the movement.
type LedgerMovement struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	LineNumber     int             `json:"lineNumber"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerAccount is one account's section of the general ledger report.
type GeneralLedgerAccount struct {
	AccountID      string           `json:"accountID"`
	AccountCode    string           `json:"accountCode"`
	AccountName    string           `json:"accountName"`
	AccountType    AccountType      `json:"accountType"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	Movements      []LedgerMovement `json:"movements"`
	TotalDebits    decimal.Decimal  `json:"totalDebits"`
	TotalCredits   decimal.Decimal  `json:"totalCredits"`
	ClosingBalance decimal.Decimal  `json:"closingBalance"`
}

// GeneralLedgerReport is the full general ledger over a period.
type GeneralLedgerReport struct {
	From     time.Time              `json:"from"`
	To       time.Time              `json:"to"`
	Accounts []GeneralLedgerAccount `json:"accounts"`
}

// Ratio is one derived financial indicator with its display interpretation.
type Ratio struct {
	Value          decimal.Decimal `json:"value"`
	Interpretation string          `json:"interpretation"`
}

// FinancialRatios are scalar indicators derived from the balance sheet and
// income statement. Interpretation buckets are display classification only.
type FinancialRatios struct {
	CurrentRatio   Ratio `json:"currentRatio"`
	NetMargin      Ratio `json:"netMargin"` // Percent
	DebtRatio      Ratio `json:"debtRatio"`
	ReturnOnAssets Ratio `json:"returnOnAssets"` // Percent
}
