package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "DRAFT"
	StatusApproved  EntryStatus = "APPROVED"
	StatusPosted    EntryStatus = "POSTED"
	StatusCancelled EntryStatus = "CANCELLED"
)

// EntryType classifies the business nature of a journal entry.
type EntryType string

const (
	EntryManual     EntryType = "MANUAL"
	EntryAutomatic  EntryType = "AUTOMATIC"
	EntryAdjustment EntryType = "ADJUSTMENT"
	EntryOpening    EntryType = "OPENING"
	EntryClosing    EntryType = "CLOSING"
	EntryReversal   EntryType = "REVERSAL"
)

// EntryOperation names a lifecycle verb applied to a journal entry.
type EntryOperation string

const (
	OperationUpdate       EntryOperation = "update"
	OperationDelete       EntryOperation = "delete"
	OperationApprove      EntryOperation = "approve"
	OperationPost         EntryOperation = "post"
	OperationCancel       EntryOperation = "cancel"
	OperationReverse      EntryOperation = "reverse"
	OperationResetToDraft EntryOperation = "reset_to_draft"
)

// allowedFrom maps every lifecycle verb to the statuses it may start from.
// Transitions never skip an intermediate state; only cancellation is reachable
// from more than one status.
var allowedFrom = map[EntryOperation][]EntryStatus{
	OperationUpdate:       {StatusDraft},
	OperationDelete:       {StatusDraft},
	OperationApprove:      {StatusDraft},
	OperationPost:         {StatusApproved},
	OperationCancel:       {StatusDraft, StatusApproved, StatusPosted},
	OperationReverse:      {StatusPosted},
	OperationResetToDraft: {StatusApproved, StatusPosted},
}

// AllowedFromStatuses returns the statuses the operation may start from.
func AllowedFromStatuses(op EntryOperation) []EntryStatus {
	return allowedFrom[op]
}

// OperationAllowed reports whether the operation is legal from the given status.
func OperationAllowed(op EntryOperation, from EntryStatus) bool {
	for _, s := range allowedFrom[op] {
		if s == from {
			return true
		}
	}
	return false
}

// JournalEntryLine is one debit or credit leg of a journal entry. Lines are
// exclusively owned by their entry; LineNumber defines their order.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	LineNumber     int             `json:"lineNumber"` // 1-based, order matters for running balances
	AccountID      string          `json:"accountID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	ThirdPartyID   *string         `json:"thirdPartyID,omitempty"`
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	PaymentTermsID *string         `json:"paymentTermsID,omitempty"`
	Description    string          `json:"description"`
}

// IsDebit reports whether the line is a debit leg.
func (l JournalEntryLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// JournalEntry is the atomic unit of the ledger: a balanced set of lines plus
// lifecycle metadata. Posted entries are never deleted, only cancelled or
// reversed.
type JournalEntry struct {
	EntryID           string             `json:"entryID"`
	EntryNumber       string             `json:"entryNumber"` // Monotonic, human-readable, assigned at creation
	EntryDate         time.Time          `json:"entryDate"`
	Description       string             `json:"description"`
	Reference         string             `json:"reference"`
	EntryType         EntryType          `json:"entryType"`
	TransactionOrigin string             `json:"transactionOrigin"`
	Status            EntryStatus        `json:"status"`
	TotalDebit        decimal.Decimal    `json:"totalDebit"`
	TotalCredit       decimal.Decimal    `json:"totalCredit"`
	Lines             []JournalEntryLine `json:"lines,omitempty"`

	ApprovedBy *string    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	PostedBy   *string    `json:"postedBy,omitempty"`
	PostedAt   *time.Time `json:"postedAt,omitempty"`

	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`

	// Reversal linkage. A posted entry that has been reversed keeps status
	// POSTED; IsReversed plus the two links carry the marker.
	IsReversed      bool    `json:"isReversed"`
	ReversingID     *string `json:"reversingEntryID,omitempty"` // Entry that reverses this one
	OriginalEntryID *string `json:"originalEntryID,omitempty"`  // Set on reversal entries

	AuditFields
}

// RecomputeTotals refreshes the cached debit/credit totals from the lines.
func (e *JournalEntry) RecomputeTotals() {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range e.Lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	e.TotalDebit = totalDebit
	e.TotalCredit = totalCredit
}

// TransitionCheck is the result of a validate-only lifecycle check.
// Errors are hard invariant violations and are never bypassable; warnings may
// be skipped by force-mode callers.
type TransitionCheck struct {
	CanTransition bool     `json:"canTransition"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
}

// Passes reports whether the transition may proceed. With force, warnings are
// ignored; errors always block.
func (c TransitionCheck) Passes(force bool) bool {
	if len(c.Errors) > 0 {
		return false
	}
	return force || len(c.Warnings) == 0
}
