package services

import (
	"context"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
	"github.com/quantabooks/accounting_backend/internal/dto"
)

// EntrySvcFacade is the journal entry lifecycle surface consumed by handlers
// and the bulk coordinator. Every mutating verb takes the acting user's ID;
// force skips warnings but never hard validation errors.
type EntrySvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, entryID string, actorID string) error

	ApproveEntry(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error)
	CancelEntry(ctx context.Context, entryID string, reason string, actorID string, force bool) (*domain.JournalEntry, error)
	ReverseEntry(ctx context.Context, entryID string, reason string, actorID string, force bool) (*domain.JournalEntry, error)
	ResetEntryToDraft(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error)

	// ValidateTransition runs the validate-only counterpart of a lifecycle
	// verb without mutating anything.
	ValidateTransition(ctx context.Context, entryID string, op domain.EntryOperation, reason string) (*domain.TransitionCheck, error)
}

// BulkSvcFacade applies one lifecycle verb to a list of entries with
// per-entry failure isolation.
type BulkSvcFacade interface {
	BulkApply(ctx context.Context, op domain.EntryOperation, req dto.BulkEntryRequest, actorID string) (*domain.BulkOperationResult, error)
	BulkValidate(ctx context.Context, op domain.EntryOperation, entryIDs []string, reason string) ([]domain.BulkValidationItem, error)
}

// AccountSvcFacade is the chart-of-accounts surface. The ledger core reads
// accounts through it; mutation is limited to registry maintenance.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, actorID string) error
}
