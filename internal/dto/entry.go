package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
)

// EntryLineRequest is one debit or credit leg supplied by the caller.
// Exactly one of debitAmount/creditAmount must be positive; the balance
// validator enforces this beyond what binding can express.
type EntryLineRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	ThirdPartyID   *string         `json:"thirdPartyID"`
	CostCenterID   *string         `json:"costCenterID"`
	PaymentTermsID *string         `json:"paymentTermsID"`
	Description    string          `json:"description"`
}

// CreateEntryRequest creates a new journal entry in DRAFT status.
type CreateEntryRequest struct {
	EntryDate         time.Time          `json:"entryDate" binding:"required"`
	Description       string             `json:"description" binding:"required"`
	Reference         string             `json:"reference"`
	EntryType         domain.EntryType   `json:"entryType" binding:"omitempty,entrytype"`
	TransactionOrigin string             `json:"transactionOrigin"`
	Lines             []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest edits a DRAFT entry. Nil fields are left unchanged;
// providing lines replaces the full line set.
type UpdateEntryRequest struct {
	EntryDate         *time.Time         `json:"entryDate"`
	Description       *string            `json:"description"`
	Reference         *string            `json:"reference"`
	TransactionOrigin *string            `json:"transactionOrigin"`
	Lines             []EntryLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// CancelEntryRequest supplies the mandatory cancellation reason.
type CancelEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
	Force  bool   `json:"force"`
}

// ReverseEntryRequest supplies the mandatory reversal reason.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
	Force  bool   `json:"force"`
}

// TransitionRequest carries the optional force flag for approve/post/reset.
type TransitionRequest struct {
	Force bool `json:"force"`
}

// ListEntriesParams filters and paginates entry listings.
type ListEntriesParams struct {
	Status    *domain.EntryStatus `form:"status" binding:"omitempty,oneof=DRAFT APPROVED POSTED CANCELLED"`
	EntryType *domain.EntryType   `form:"entryType" binding:"omitempty,entrytype"`
	Origin    *string             `form:"origin"`
	From      *time.Time          `form:"from" time_format:"2006-01-02"`
	To        *time.Time          `form:"to" time_format:"2006-01-02"`
	Limit     int                 `form:"limit"`
	NextToken *string             `form:"nextToken"`
}

// EntryLineResponse is the API shape of one journal entry line.
type EntryLineResponse struct {
	LineNumber     int             `json:"lineNumber"`
	AccountID      string          `json:"accountID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	ThirdPartyID   *string         `json:"thirdPartyID,omitempty"`
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	PaymentTermsID *string         `json:"paymentTermsID,omitempty"`
	Description    string          `json:"description,omitempty"`
}

// EntryResponse is the API shape of a journal entry.
type EntryResponse struct {
	EntryID            string              `json:"entryID"`
	EntryNumber        string              `json:"entryNumber"`
	EntryDate          time.Time           `json:"entryDate"`
	Description        string              `json:"description"`
	Reference          string              `json:"reference,omitempty"`
	EntryType          domain.EntryType    `json:"entryType"`
	TransactionOrigin  string              `json:"transactionOrigin,omitempty"`
	Status             domain.EntryStatus  `json:"status"`
	TotalDebit         decimal.Decimal     `json:"totalDebit"`
	TotalCredit        decimal.Decimal     `json:"totalCredit"`
	IsReversed         bool                `json:"isReversed"`
	ReversingEntryID   *string             `json:"reversingEntryID,omitempty"`
	OriginalEntryID    *string             `json:"originalEntryID,omitempty"`
	ApprovedBy         *string             `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time          `json:"approvedAt,omitempty"`
	PostedBy           *string             `json:"postedBy,omitempty"`
	PostedAt           *time.Time          `json:"postedAt,omitempty"`
	CancelledBy        *string             `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time          `json:"cancelledAt,omitempty"`
	CancellationReason string              `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	CreatedBy          string              `json:"createdBy"`
	Lines              []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is a paginated page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain line to its API shape.
func ToEntryLineResponse(line domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineNumber:     line.LineNumber,
		AccountID:      line.AccountID,
		DebitAmount:    line.DebitAmount,
		CreditAmount:   line.CreditAmount,
		ThirdPartyID:   line.ThirdPartyID,
		CostCenterID:   line.CostCenterID,
		PaymentTermsID: line.PaymentTermsID,
		Description:    line.Description,
	}
}

// ToEntryResponse converts a domain entry to its API shape.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:            entry.EntryID,
		EntryNumber:        entry.EntryNumber,
		EntryDate:          entry.EntryDate,
		Description:        entry.Description,
		Reference:          entry.Reference,
		EntryType:          entry.EntryType,
		TransactionOrigin:  entry.TransactionOrigin,
		Status:             entry.Status,
		TotalDebit:         entry.TotalDebit,
		TotalCredit:        entry.TotalCredit,
		IsReversed:         entry.IsReversed,
		ReversingEntryID:   entry.ReversingID,
		OriginalEntryID:    entry.OriginalEntryID,
		ApprovedBy:         entry.ApprovedBy,
		ApprovedAt:         entry.ApprovedAt,
		PostedBy:           entry.PostedBy,
		PostedAt:           entry.PostedAt,
		CancelledBy:        entry.CancelledBy,
		CancelledAt:        entry.CancelledAt,
		CancellationReason: entry.CancellationReason,
		CreatedAt:          entry.CreatedAt,
		CreatedBy:          entry.CreatedBy,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(entry.Lines))
		for i, line := range entry.Lines {
			resp.Lines[i] = ToEntryLineResponse(line)
		}
	}
	return resp
}
