package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quantabooks/accounting_backend/internal/apperrors"
	"github.com/quantabooks/accounting_backend/internal/core/domain"
	portsrepo "github.com/quantabooks/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/quantabooks/accounting_backend/internal/core/ports/services"
	"github.com/quantabooks/accounting_backend/internal/dto"
	"github.com/quantabooks/accounting_backend/internal/middleware"
	"github.com/quantabooks/accounting_backend/internal/utils/accounting"
)

// ReversalPolicy controls the lifecycle state a generated reversal entry
// starts in. With StartAsPosted the reversal is effective immediately; with
// StartAsDraft it goes through its own approve/post cycle.
type ReversalPolicy string

const (
	ReversalStartAsDraft  ReversalPolicy = "start_as_draft"
	ReversalStartAsPosted ReversalPolicy = "start_as_posted"
)

// postingStaleAfter is the age past which posting an entry raises a warning.
const postingStaleAfter = 90 * 24 * time.Hour

var (
	ErrReasonRequired  = errors.New("a reason is required")
	ErrAlreadyReversed = errors.New("entry has already been reversed")
)

// entryService is the journal entry lifecycle manager. It owns every status
// transition and is the only code path that produces account accumulator
// changes; the repository applies them under row locks.
type entryService struct {
	entryRepo      portsrepo.EntryRepositoryFacade
	accountSvc     portssvc.AccountSvcFacade
	reversalPolicy ReversalPolicy
	now            func() time.Time
}

// EntryServiceOption configures the entry service.
type EntryServiceOption func(*entryService)

// WithReversalPolicy overrides the default reversal start policy.
func WithReversalPolicy(policy ReversalPolicy) EntryServiceOption {
	return func(s *entryService) {
		if policy == ReversalStartAsDraft || policy == ReversalStartAsPosted {
			s.reversalPolicy = policy
		}
	}
}

// WithClock overrides the clock for testing.
func WithClock(now func() time.Time) EntryServiceOption {
	return func(s *entryService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewEntryService creates the journal entry lifecycle service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade, options ...EntryServiceOption) portssvc.EntrySvcFacade {
	svc := &entryService{
		entryRepo:      entryRepo,
		accountSvc:     accountSvc,
		reversalPolicy: ReversalStartAsPosted,
		now:            time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// CreateEntry validates and persists a new journal entry in DRAFT status.
func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryManual
	}
	if entryType == domain.EntryReversal {
		return nil, fmt.Errorf("%w: entry type REVERSAL is reserved for generated reversals", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines)

	accounts, err := s.accountsForLines(ctx, lines)
	if err != nil {
		logger.Error("Failed to fetch accounts for entry creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	if validationErrs := ValidateEntryLines(lines, accounts); len(validationErrs) > 0 {
		return nil, combineValidationErrors(validationErrs)
	}

	entryNumber, err := s.entryRepo.NextEntryNumber(ctx)
	if err != nil {
		logger.Error("Failed to reserve entry number", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	entry := domain.JournalEntry{
		EntryID:           entryID,
		EntryNumber:       entryNumber,
		EntryDate:         req.EntryDate,
		Description:       req.Description,
		Reference:         req.Reference,
		EntryType:         entryType,
		TransactionOrigin: req.TransactionOrigin,
		Status:            domain.StatusDraft,
		Lines:             lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	entry.RecomputeTotals()

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a filtered, token-paginated page of entries.
func (s *entryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	filters := portsrepo.ListEntriesFilters{
		Status:    params.Status,
		EntryType: params.EntryType,
		Origin:    params.Origin,
		From:      params.From,
		To:        params.To,
	}
	return s.entryRepo.ListEntries(ctx, filters, limit, params.NextToken)
}

// UpdateEntry edits a DRAFT entry, re-validating the balance afterwards.
func (s *entryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.StatusDraft {
		return nil, s.illegalTransition(domain.OperationUpdate, entry.Status)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.TransactionOrigin != nil {
		entry.TransactionOrigin = *req.TransactionOrigin
	}
	if req.Lines != nil {
		entry.Lines = buildLines(entry.EntryID, req.Lines)
	}

	accounts, err := s.accountsForLines(ctx, entry.Lines)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	if validationErrs := ValidateEntryLines(entry.Lines, accounts); len(validationErrs) > 0 {
		return nil, combineValidationErrors(validationErrs)
	}
	entry.RecomputeTotals()
	entry.Touch(actorID, s.now().UTC())

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	logger.Info("Entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry hard-removes a DRAFT entry. Posted entries are never deleted,
// only cancelled or reversed.
func (s *entryService) DeleteEntry(ctx context.Context, entryID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.StatusDraft {
		return s.illegalTransition(domain.OperationDelete, entry.Status)
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	logger.Info("Entry deleted", slog.String("entry_id", entryID), slog.String("actor_id", actorID))
	return nil
}

// ApproveEntry moves a DRAFT entry to APPROVED after re-running the balance
// validator.
func (s *entryService) ApproveEntry(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error) {
	entry, accounts, err := s.loadForTransition(ctx, entryID)
	if err != nil {
		return nil, err
	}

	check := s.checkTransition(entry, domain.OperationApprove, "", accounts)
	if !check.Passes(force) {
		return nil, s.blockedError(entry, domain.OperationApprove, check, force)
	}

	fromUpdatedAt := entry.LastUpdatedAt

	now := s.now().UTC()
	entry.Status = domain.StatusApproved
	entry.ApprovedBy = &actorID
	entry.ApprovedAt = &now
	entry.Touch(actorID, now)

	cmd := portsrepo.TransitionCommand{
		Entry:         *entry,
		FromStatus:    domain.StatusDraft,
		FromUpdatedAt: fromUpdatedAt,
		Operation:     domain.OperationApprove,
	}
	if err := s.entryRepo.TransitionEntry(ctx, cmd); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Entry approved", slog.String("entry_id", entryID))
	return entry, nil
}

// PostEntry moves an APPROVED entry to POSTED and applies each line to its
// account's accumulators. This is the only place account balances mutate.
func (s *entryService) PostEntry(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error) {
	entry, accounts, err := s.loadForTransition(ctx, entryID)
	if err != nil {
		return nil, err
	}

	check := s.checkTransition(entry, domain.OperationPost, "", accounts)
	if !check.Passes(force) {
		return nil, s.blockedError(entry, domain.OperationPost, check, force)
	}

	fromUpdatedAt := entry.LastUpdatedAt

	now := s.now().UTC()
	entry.Status = domain.StatusPosted
	entry.PostedBy = &actorID
	entry.PostedAt = &now
	entry.Touch(actorID, now)

	cmd := portsrepo.TransitionCommand{
		Entry:          *entry,
		FromStatus:     domain.StatusApproved,
		FromUpdatedAt:  fromUpdatedAt,
		Operation:      domain.OperationPost,
		BalanceChanges: accounting.BalanceChanges(entry.Lines, accountTypes(accounts)),
	}
	if err := s.entryRepo.TransitionEntry(ctx, cmd); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// CancelEntry cancels an entry from any non-terminal status. Cancelling a
// posted entry reverses its balance accumulation without creating a mirror
// entry.
func (s *entryService) CancelEntry(ctx context.Context, entryID string, reason string, actorID string, force bool) (*domain.JournalEntry, error) {
	entry, accounts, err := s.loadForTransition(ctx, entryID)
	if err != nil {
		return nil, err
	}

	check := s.checkTransition(entry, domain.OperationCancel, reason, accounts)
	if !check.Passes(force) {
		return nil, s.blockedError(entry, domain.OperationCancel, check, force)
	}

	fromStatus := entry.Status
	fromUpdatedAt := entry.LastUpdatedAt
	var balanceChanges map[string]domain.BalanceDelta
	if fromStatus == domain.StatusPosted {
		balanceChanges = accounting.NegateChanges(accounting.BalanceChanges(entry.Lines, accountTypes(accounts)))
	}

	now := s.now().UTC()
	entry.Status = domain.StatusCancelled
	entry.CancelledBy = &actorID
	entry.CancelledAt = &now
	entry.CancellationReason = reason
	entry.Touch(actorID, now)

	cmd := portsrepo.TransitionCommand{
		Entry:          *entry,
		FromStatus:     fromStatus,
		FromUpdatedAt:  fromUpdatedAt,
		Operation:      domain.OperationCancel,
		BalanceChanges: balanceChanges,
	}
	if err := s.entryRepo.TransitionEntry(ctx, cmd); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Entry cancelled", slog.String("entry_id", entryID), slog.String("reason", reason))
	return entry, nil
}

// ResetEntryToDraft returns an APPROVED or POSTED entry to DRAFT, reversing
// any balance accumulation and clearing approval/posting metadata. Intended
// for correcting mis-posted entries without a full reversal.
func (s *entryService) ResetEntryToDraft(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error) {
	entry, accounts, err := s.loadForTransition(ctx, entryID)
	if err != nil {
		return nil, err
	}

	check := s.checkTransition(entry, domain.OperationResetToDraft, "", accounts)
	if !check.Passes(force) {
		return nil, s.blockedError(entry, domain.OperationResetToDraft, check, force)
	}

	fromStatus := entry.Status
	fromUpdatedAt := entry.LastUpdatedAt
	var balanceChanges map[string]domain.BalanceDelta
	if fromStatus == domain.StatusPosted {
		balanceChanges = accounting.NegateChanges(accounting.BalanceChanges(entry.Lines, accountTypes(accounts)))
	}

	entry.Status = domain.StatusDraft
	entry.ApprovedBy = nil
	entry.ApprovedAt = nil
	entry.PostedBy = nil
	entry.PostedAt = nil
	entry.Touch(actorID, s.now().UTC())

	cmd := portsrepo.TransitionCommand{
		Entry:          *entry,
		FromStatus:     fromStatus,
		FromUpdatedAt:  fromUpdatedAt,
		Operation:      domain.OperationResetToDraft,
		BalanceChanges: balanceChanges,
	}
	if err := s.entryRepo.TransitionEntry(ctx, cmd); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Entry reset to draft", slog.String("entry_id", entryID))
	return entry, nil
}

// ReverseEntry generates and persists the mirror entry for a POSTED entry.
// The original stays POSTED and gains the reversed marker; whether the mirror
// starts as DRAFT or POSTED is governed by the configured ReversalPolicy.
// Reversing a reversal is permitted and restores the original net effect.
func (s *entryService) ReverseEntry(ctx context.Context, entryID string, reason string, actorID string, force bool) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, accounts, err := s.loadForTransition(ctx, entryID)
	if err != nil {
		return nil, err
	}

	check := s.checkTransition(original, domain.OperationReverse, reason, accounts)
	if !check.Passes(force) {
		return nil, s.blockedError(original, domain.OperationReverse, check, force)
	}

	reversalNumber, err := s.entryRepo.NextEntryNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	now := s.now().UTC()
	reversal := buildReversal(original, reversalNumber, reason, actorID, now)

	var balanceChanges map[string]domain.BalanceDelta
	if s.reversalPolicy == ReversalStartAsPosted {
		reversal.Status = domain.StatusPosted
		reversal.PostedBy = &actorID
		reversal.PostedAt = &now
		balanceChanges = accounting.BalanceChanges(reversal.Lines, accountTypes(accounts))
	}

	originalUpdatedAt := original.LastUpdatedAt
	original.IsReversed = true
	original.ReversingID = &reversal.EntryID
	original.Touch(actorID, now)

	if err := s.entryRepo.SaveReversal(ctx, *original, originalUpdatedAt, reversal, balanceChanges); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	logger.Info("Entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("policy", string(s.reversalPolicy)))
	return &reversal, nil
}

// ValidateTransition runs the validate-only counterpart of a lifecycle verb.
// It never mutates anything and is reused by the bulk coordinator's
// pre-flight endpoints.
func (s *entryService) ValidateTransition(ctx context.Context, entryID string, op domain.EntryOperation, reason string) (*domain.TransitionCheck, error) {
	entry, accounts, err := s.loadForTransition(ctx, entryID)
	if err != nil {
		return nil, err
	}
	check := s.checkTransition(entry, op, reason, accounts)
	return &check, nil
}

// checkTransition builds the validate-only result for one verb. Status-guard
// violations and invariant failures land in Errors (never bypassable);
// advisory conditions land in Warnings (skipped by force).
func (s *entryService) checkTransition(entry *domain.JournalEntry, op domain.EntryOperation, reason string, accounts map[string]domain.Account) domain.TransitionCheck {
	var errs []string
	var warnings []string

	if !domain.OperationAllowed(op, entry.Status) {
		errs = append(errs, statusGuardMessage(op))
	}

	switch op {
	case domain.OperationApprove, domain.OperationPost, domain.OperationUpdate:
		errs = append(errs, errorStrings(ValidateEntryLines(entry.Lines, accounts))...)
	case domain.OperationCancel:
		if strings.TrimSpace(reason) == "" {
			errs = append(errs, "a cancellation reason is required")
		}
	case domain.OperationReverse:
		if strings.TrimSpace(reason) == "" {
			errs = append(errs, "a reversal reason is required")
		}
		if entry.IsReversed {
			errs = append(errs, ErrAlreadyReversed.Error())
		}
		if entry.EntryType == domain.EntryReversal {
			warnings = append(warnings, "entry is itself a reversal; reversing it restores the original effect")
		}
	}

	now := s.now().UTC()
	if op == domain.OperationApprove || op == domain.OperationPost {
		if entry.EntryDate.After(now) {
			warnings = append(warnings, "entry date is in the future")
		}
	}
	if op == domain.OperationPost && now.Sub(entry.EntryDate) > postingStaleAfter {
		warnings = append(warnings, "entry date is more than 90 days in the past")
	}

	return domain.TransitionCheck{
		CanTransition: len(errs) == 0,
		Errors:        errs,
		Warnings:      warnings,
	}
}

// loadForTransition fetches an entry with its lines plus the referenced
// accounts. The definitive status check happens again in the repository under
// a row lock; this load only feeds validation.
func (s *entryService) loadForTransition(ctx context.Context, entryID string) (*domain.JournalEntry, map[string]domain.Account, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	accounts, err := s.accountsForLines(ctx, entry.Lines)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return entry, accounts, nil
}

func (s *entryService) accountsForLines(ctx context.Context, lines []domain.JournalEntryLine) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	return s.accountSvc.GetAccountsByIDs(ctx, uniqueStrings(accountIDs))
}

// blockedError converts a failed check into the typed error surfaced to the
// caller: an IllegalTransitionError for status-guard violations, a wrapped
// validation error otherwise.
func (s *entryService) blockedError(entry *domain.JournalEntry, op domain.EntryOperation, check domain.TransitionCheck, force bool) error {
	if !domain.OperationAllowed(op, entry.Status) {
		return s.illegalTransition(op, entry.Status)
	}
	msgs := append([]string{}, check.Errors...)
	if !force && len(check.Warnings) > 0 {
		for _, warning := range check.Warnings {
			msgs = append(msgs, warning+" (use force to override)")
		}
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
}

func (s *entryService) illegalTransition(op domain.EntryOperation, current domain.EntryStatus) error {
	allowed := domain.AllowedFromStatuses(op)
	allowedStrs := make([]string, len(allowed))
	for i, status := range allowed {
		allowedStrs[i] = string(status)
	}
	return &apperrors.IllegalTransitionError{
		Operation:     string(op),
		CurrentStatus: string(current),
		AllowedFrom:   allowedStrs,
	}
}

// statusGuardMessage is the short per-verb message used in validate-only
// results and bulk failure lists.
func statusGuardMessage(op domain.EntryOperation) string {
	switch op {
	case domain.OperationUpdate:
		return "only draft entries can be edited"
	case domain.OperationDelete:
		return "only draft entries can be deleted"
	case domain.OperationApprove:
		return "only draft entries can be approved"
	case domain.OperationPost:
		return "must be approved before posting"
	case domain.OperationCancel:
		return "entry is already cancelled"
	case domain.OperationReverse:
		return "only posted entries can be reversed"
	case domain.OperationResetToDraft:
		return "only approved or posted entries can be reset to draft"
	default:
		return "operation not allowed from current status"
	}
}

// buildLines converts request lines into domain lines, assigning 1-based line
// numbers in input order and rounding amounts to currency precision.
func buildLines(entryID string, reqLines []dto.EntryLineRequest) []domain.JournalEntryLine {
	lines := make([]domain.JournalEntryLine, len(reqLines))
	for i, lineReq := range reqLines {
		lines[i] = domain.JournalEntryLine{
			LineID:         uuid.NewString(),
			EntryID:        entryID,
			LineNumber:     i + 1,
			AccountID:      lineReq.AccountID,
			DebitAmount:    accounting.Round(lineReq.DebitAmount),
			CreditAmount:   accounting.Round(lineReq.CreditAmount),
			ThirdPartyID:   lineReq.ThirdPartyID,
			CostCenterID:   lineReq.CostCenterID,
			PaymentTermsID: lineReq.PaymentTermsID,
			Description:    lineReq.Description,
		}
	}
	return lines
}

// buildReversal derives the mirror entry: one line per original line with
// debit and credit swapped, same account and dimensions.
func buildReversal(original *domain.JournalEntry, entryNumber, reason, actorID string, now time.Time) domain.JournalEntry {
	reversalID := uuid.NewString()
	lines := make([]domain.JournalEntryLine, len(original.Lines))
	for i, origLine := range original.Lines {
		lines[i] = domain.JournalEntryLine{
			LineID:         uuid.NewString(),
			EntryID:        reversalID,
			LineNumber:     origLine.LineNumber,
			AccountID:      origLine.AccountID,
			DebitAmount:    origLine.CreditAmount,
			CreditAmount:   origLine.DebitAmount,
			ThirdPartyID:   origLine.ThirdPartyID,
			CostCenterID:   origLine.CostCenterID,
			PaymentTermsID: origLine.PaymentTermsID,
			Description:    origLine.Description,
		}
	}

	reversal := domain.JournalEntry{
		EntryID:           reversalID,
		EntryNumber:       entryNumber,
		EntryDate:         original.EntryDate,
		Description:       fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
		Reference:         original.EntryNumber,
		EntryType:         domain.EntryReversal,
		TransactionOrigin: original.TransactionOrigin,
		Status:            domain.StatusDraft,
		OriginalEntryID:   &original.EntryID,
		Lines:             lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	reversal.RecomputeTotals()
	return reversal
}

func accountTypes(accounts map[string]domain.Account) map[string]domain.AccountType {
	types := make(map[string]domain.AccountType, len(accounts))
	for id, account := range accounts {
		types[id] = account.AccountType
	}
	return types
}

// uniqueStrings returns a slice containing only the unique strings from the
// input, preserving first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
