package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantabooks/accounting_backend/internal/apperrors"
	"github.com/quantabooks/accounting_backend/internal/core/domain"
	portsrepo "github.com/quantabooks/accounting_backend/internal/core/ports/repositories"
	"github.com/quantabooks/accounting_backend/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxEntryRepository creates the repository for journal entries and their
// lines. It needs the account repository to lock and update account
// accumulators in the same transaction as a status change.
func newPgxEntryRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `
	entry_id, entry_number, entry_date, description, reference, entry_type,
	transaction_origin, status, total_debit, total_credit,
	approved_by, approved_at, posted_by, posted_at,
	cancelled_by, cancelled_at, cancellation_reason,
	is_reversed, reversing_entry_id, original_entry_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := row.Scan(
		&entry.EntryID,
		&entry.EntryNumber,
		&entry.EntryDate,
		&entry.Description,
		&entry.Reference,
		&entry.EntryType,
		&entry.TransactionOrigin,
		&entry.Status,
		&entry.TotalDebit,
		&entry.TotalCredit,
		&entry.ApprovedBy,
		&entry.ApprovedAt,
		&entry.PostedBy,
		&entry.PostedAt,
		&entry.CancelledBy,
		&entry.CancelledAt,
		&entry.CancellationReason,
		&entry.IsReversed,
		&entry.ReversingID,
		&entry.OriginalEntryID,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	return entry, err
}

// NextEntryNumber reserves the next monotonic entry number. Sequence values
// survive rollbacks, so gaps are possible but order is guaranteed.
func (r *PgxEntryRepository) NextEntryNumber(ctx context.Context) (string, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to reserve entry number", err)
	}
	return fmt.Sprintf("JE-%06d", seq), nil
}

// SaveEntry persists a new entry and its lines in one transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := r.insertLinesInTx(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxEntryRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.EntryType,
		entry.TransactionOrigin,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.PostedBy,
		entry.PostedAt,
		entry.CancelledBy,
		entry.CancelledAt,
		entry.CancellationReason,
		entry.IsReversed,
		entry.ReversingID,
		entry.OriginalEntryID,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}
	return nil
}

func (r *PgxEntryRepository) insertLinesInTx(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalEntryLine) error {
	query := `
		INSERT INTO journal_entry_lines (
			line_id, entry_id, line_number, account_id, debit_amount, credit_amount,
			third_party_id, cost_center_id, payment_terms_id, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query,
			line.LineID,
			entryID,
			line.LineNumber,
			line.AccountID,
			line.DebitAmount,
			line.CreditAmount,
			line.ThirdPartyID,
			line.CostCenterID,
			line.PaymentTermsID,
			line.Description,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	lines, err := r.findLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxEntryRepository) findLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, entry_id, line_number, account_id, debit_amount, credit_amount,
		       third_party_id, cost_center_id, payment_terms_id, description
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var line domain.JournalEntryLine
		err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.LineNumber,
			&line.AccountID,
			&line.DebitAmount,
			&line.CreditAmount,
			&line.ThirdPartyID,
			&line.CostCenterID,
			&line.PaymentTermsID,
			&line.Description,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return lines, nil
}

// ListEntries retrieves a filtered, token-paginated page of entries ordered by
// entry date descending. Lines are not populated.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, filters portsrepo.ListEntriesFilters, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether there is a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + clause + "$" + strconv.Itoa(len(args))
	}
	if filters.Status != nil {
		addArg("status = ", *filters.Status)
	}
	if filters.EntryType != nil {
		addArg("entry_type = ", *filters.EntryType)
	}
	if filters.Origin != nil {
		addArg("transaction_origin = ", *filters.Origin)
	}
	if filters.From != nil {
		addArg("entry_date >= ", *filters.From)
	}
	if filters.To != nil {
		addArg("entry_date <= ", *filters.To)
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var newNextToken *string
	if len(entries) == fetchLimit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}
	return entries, newNextToken, nil
}

// UpdateEntry replaces a draft entry's mutable fields and full line set. The
// DRAFT check is repeated here under a row lock because the service's check
// ran outside any transaction.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockEntryExpectingStatus(ctx, tx, entry.EntryID, domain.StatusDraft); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4, transaction_origin = $5,
		    total_debit = $6, total_credit = $7, last_updated_at = $8, last_updated_by = $9
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		entry.EntryID,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.TransactionOrigin,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+entry.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete old lines for entry "+entry.EntryID, err)
	}
	if err := r.insertLinesInTx(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry hard-deletes a draft entry and its lines.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockEntryExpectingStatus(ctx, tx, entryID, domain.StatusDraft); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// TransitionEntry applies a compare-and-set lifecycle transition. The entry
// row is locked and its status re-verified so that two concurrent callers
// cannot both post (and double-apply) the same entry.
func (r *PgxEntryRepository) TransitionEntry(ctx context.Context, cmd portsrepo.TransitionCommand) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockEntryForTransition(ctx, tx, cmd.Entry.EntryID, cmd.FromStatus, cmd.FromUpdatedAt); err != nil {
		return err
	}
	if err := r.updateLifecycleInTx(ctx, tx, cmd.Entry); err != nil {
		return err
	}
	if err := r.applyBalanceChangesInTx(ctx, tx, cmd.Entry, cmd.BalanceChanges); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveReversal persists a reversal entry and stamps the original's reversal
// marker atomically. The original must still be POSTED, unreversed and at
// the validated version at commit time; the version check catches a
// concurrent repost with different lines, which would make the mirrored
// deltas wrong.
func (r *PgxEntryRepository) SaveReversal(ctx context.Context, original domain.JournalEntry, originalUpdatedAt time.Time, reversal domain.JournalEntry, balanceChanges map[string]domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status domain.EntryStatus
	var isReversed bool
	var updatedAt time.Time
	lockQuery := `SELECT status, is_reversed, last_updated_at FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, original.EntryID).Scan(&status, &isReversed, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock entry "+original.EntryID, err)
	}
	if status != domain.StatusPosted || isReversed || !updatedAt.Equal(originalUpdatedAt) {
		return fmt.Errorf("%w: entry %s changed concurrently", apperrors.ErrConflict, original.EntryID)
	}

	if err := r.insertEntryInTx(ctx, tx, reversal); err != nil {
		return err
	}
	if err := r.insertLinesInTx(ctx, tx, reversal.EntryID, reversal.Lines); err != nil {
		return err
	}

	markerQuery := `
		UPDATE journal_entries
		SET is_reversed = TRUE, reversing_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, markerQuery, original.EntryID, reversal.EntryID, original.LastUpdatedAt, original.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+original.EntryID+" as reversed", err)
	}

	if err := r.applyBalanceChangesInTx(ctx, tx, reversal, balanceChanges); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// lockEntryExpectingStatus locks the entry row and verifies it is still in
// the expected status.
func (r *PgxEntryRepository) lockEntryExpectingStatus(ctx context.Context, tx pgx.Tx, entryID string, expected domain.EntryStatus) error {
	var current domain.EntryStatus
	query := `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, query, entryID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock entry "+entryID, err)
	}
	if current != expected {
		return fmt.Errorf("%w: entry %s is %s, expected %s", apperrors.ErrConflict, entryID, current, expected)
	}
	return nil
}

// lockEntryForTransition locks the entry row and verifies both the status and
// the last_updated_at version the caller validated against. The version check
// catches a concurrent reset/update/approve cycle that restores the expected
// status with a different line set; committing deltas computed from the old
// lines would desync the account accumulators.
func (r *PgxEntryRepository) lockEntryForTransition(ctx context.Context, tx pgx.Tx, entryID string, expectedStatus domain.EntryStatus, expectedUpdatedAt time.Time) error {
	var current domain.EntryStatus
	var updatedAt time.Time
	query := `SELECT status, last_updated_at FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, query, entryID).Scan(&current, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock entry "+entryID, err)
	}
	if current != expectedStatus {
		return fmt.Errorf("%w: entry %s is %s, expected %s", apperrors.ErrConflict, entryID, current, expectedStatus)
	}
	if !updatedAt.Equal(expectedUpdatedAt) {
		return fmt.Errorf("%w: entry %s changed concurrently", apperrors.ErrConflict, entryID)
	}
	return nil
}

// updateLifecycleInTx writes the status and lifecycle metadata produced by a
// transition. Lines are immutable outside DRAFT, so they are not touched.
func (r *PgxEntryRepository) updateLifecycleInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET status = $2,
		    approved_by = $3, approved_at = $4,
		    posted_by = $5, posted_at = $6,
		    cancelled_by = $7, cancelled_at = $8, cancellation_reason = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1;
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.Status,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.PostedBy,
		entry.PostedAt,
		entry.CancelledBy,
		entry.CancelledAt,
		entry.CancellationReason,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update lifecycle of entry "+entry.EntryID, err)
	}
	return nil
}

// applyBalanceChangesInTx locks the affected accounts and applies the deltas.
// A nil map (draft/approved transitions) is a no-op.
func (r *PgxEntryRepository) applyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, changes map[string]domain.BalanceDelta) error {
	if len(changes) == 0 {
		return nil
	}
	accountIDs := make([]string, 0, len(changes))
	for accountID := range changes {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.accountRepo.lockAccountsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	return r.accountRepo.applyBalanceDeltasInTx(ctx, tx, changes, entry.LastUpdatedBy, entry.LastUpdatedAt)
}
