package repositories

import (
	"context"
	"time"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
)

// ListEntriesFilters narrows entry listings.
type ListEntriesFilters struct {
	Status    *domain.EntryStatus
	EntryType *domain.EntryType
	Origin    *string
	From      *time.Time
	To        *time.Time
}

// TransitionCommand is a compare-and-set status change. The repository must
// re-verify FromStatus and FromUpdatedAt under a row lock before mutating, so
// that concurrent callers cannot apply the same transition twice;
// BalanceChanges (when non-nil) are applied to the affected accounts inside
// the same transaction.
type TransitionCommand struct {
	Entry      domain.JournalEntry // entry with the transition's fields already applied
	FromStatus domain.EntryStatus

	// FromUpdatedAt is the entry's last_updated_at as read when the
	// transition was validated. Checking the status alone is not enough: a
	// concurrent reset/update/approve cycle restores the old status with a
	// different line set, and balance deltas computed from the stale lines
	// must not be applied.
	FromUpdatedAt time.Time

	Operation      domain.EntryOperation
	BalanceChanges map[string]domain.BalanceDelta
}

// EntryReader defines read operations for journal entries.
type EntryReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a filtered, token-paginated list of entries.
	// Lines are not populated.
	ListEntries(ctx context.Context, filters ListEntriesFilters, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// NextEntryNumber reserves the next monotonic human-readable entry number.
	NextEntryNumber(ctx context.Context) (string, error)

	// SaveEntry persists a new entry and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry replaces a draft entry's mutable fields and full line set.
	// The repository verifies the entry is still DRAFT under a row lock.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry hard-deletes a draft entry and its lines. The repository
	// verifies the entry is still DRAFT under a row lock.
	DeleteEntry(ctx context.Context, entryID string) error

	// TransitionEntry applies a compare-and-set lifecycle transition,
	// including any account accumulator changes, in one transaction.
	TransitionEntry(ctx context.Context, cmd TransitionCommand) error

	// SaveReversal persists a reversal entry and stamps the original's
	// reversal marker atomically. originalUpdatedAt is the original's
	// last_updated_at as read when the reversal was validated; the repository
	// rejects the save when the stored value differs. BalanceChanges are
	// those of the reversal entry (nil when the reversal starts as a draft).
	SaveReversal(ctx context.Context, original domain.JournalEntry, originalUpdatedAt time.Time, reversal domain.JournalEntry, balanceChanges map[string]domain.BalanceDelta) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
