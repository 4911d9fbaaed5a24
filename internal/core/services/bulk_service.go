package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quantabooks/accounting_backend/internal/apperrors"
	"github.com/quantabooks/accounting_backend/internal/core/domain"
	portssvc "github.com/quantabooks/accounting_backend/internal/core/ports/services"
	"github.com/quantabooks/accounting_backend/internal/dto"
	"github.com/quantabooks/accounting_backend/internal/middleware"
)

// bulkService fans a lifecycle verb out over many entries. Each entry is
// processed independently in input order; one failure never rolls back or
// stops the others.
type bulkService struct {
	entrySvc portssvc.EntrySvcFacade
}

// NewBulkService creates the bulk operation coordinator.
func NewBulkService(entrySvc portssvc.EntrySvcFacade) portssvc.BulkSvcFacade {
	return &bulkService{entrySvc: entrySvc}
}

var _ portssvc.BulkSvcFacade = (*bulkService)(nil)

// BulkApply executes one lifecycle operation over every requested entry and
// reports per-entry outcomes. Succeeded IDs and failure details both come
// back in request order.
func (s *bulkService) BulkApply(ctx context.Context, op domain.EntryOperation, req dto.BulkEntryRequest, actorID string) (*domain.BulkOperationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result := &domain.BulkOperationResult{
		TotalRequested: len(req.EntryIDs),
		Succeeded:      []string{},
		Failed:         []domain.BulkEntryFailure{},
	}

	for _, entryID := range req.EntryIDs {
		entryNumber, errs := s.applyOne(ctx, op, entryID, req, actorID)
		if len(errs) > 0 {
			result.Failed = append(result.Failed, domain.BulkEntryFailure{
				EntryID:     entryID,
				EntryNumber: entryNumber,
				Errors:      errs,
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, entryID)
	}
	result.TotalSucceeded = len(result.Succeeded)

	logger.Info("Bulk operation completed",
		slog.String("operation", string(op)),
		slog.Int("requested", result.TotalRequested),
		slog.Int("succeeded", result.TotalSucceeded),
		slog.Int("failed", len(result.Failed)))
	return result, nil
}

// BulkValidate runs the validate-only check for one operation over many
// entries without mutating any of them. A missing entry yields an item whose
// check carries a not-found error rather than failing the whole call.
func (s *bulkService) BulkValidate(ctx context.Context, op domain.EntryOperation, entryIDs []string, reason string) ([]domain.BulkValidationItem, error) {
	items := make([]domain.BulkValidationItem, 0, len(entryIDs))
	for _, entryID := range entryIDs {
		item := domain.BulkValidationItem{EntryID: entryID}

		entry, err := s.entrySvc.GetEntryByID(ctx, entryID)
		if err != nil {
			item.Check = domain.TransitionCheck{CanTransition: false, Errors: []string{notFoundMessage(err)}}
			items = append(items, item)
			continue
		}
		item.EntryNumber = entry.EntryNumber

		check, err := s.entrySvc.ValidateTransition(ctx, entryID, op, reason)
		if err != nil {
			item.Check = domain.TransitionCheck{CanTransition: false, Errors: []string{err.Error()}}
			items = append(items, item)
			continue
		}
		item.Check = *check
		items = append(items, item)
	}
	return items, nil
}

// applyOne validates then executes the verb for a single entry, translating
// any error into the failure message list for the bulk result.
func (s *bulkService) applyOne(ctx context.Context, op domain.EntryOperation, entryID string, req dto.BulkEntryRequest, actorID string) (string, []string) {
	entry, err := s.entrySvc.GetEntryByID(ctx, entryID)
	if err != nil {
		return "", []string{notFoundMessage(err)}
	}
	entryNumber := entry.EntryNumber

	check, err := s.entrySvc.ValidateTransition(ctx, entryID, op, req.Reason)
	if err != nil {
		return entryNumber, []string{err.Error()}
	}
	if !check.Passes(req.Force) {
		msgs := append([]string{}, check.Errors...)
		if !req.Force {
			msgs = append(msgs, check.Warnings...)
		}
		return entryNumber, msgs
	}

	switch op {
	case domain.OperationApprove:
		_, err = s.entrySvc.ApproveEntry(ctx, entryID, actorID, req.Force)
	case domain.OperationPost:
		_, err = s.entrySvc.PostEntry(ctx, entryID, actorID, req.Force)
	case domain.OperationCancel:
		_, err = s.entrySvc.CancelEntry(ctx, entryID, req.Reason, actorID, req.Force)
	case domain.OperationReverse:
		_, err = s.entrySvc.ReverseEntry(ctx, entryID, req.Reason, actorID, req.Force)
	case domain.OperationResetToDraft:
		_, err = s.entrySvc.ResetEntryToDraft(ctx, entryID, actorID, req.Force)
	case domain.OperationDelete:
		err = s.entrySvc.DeleteEntry(ctx, entryID, actorID)
	default:
		err = fmt.Errorf("%w: unsupported bulk operation %q", apperrors.ErrValidation, op)
	}
	if err != nil {
		return entryNumber, []string{err.Error()}
	}
	return entryNumber, nil
}

func notFoundMessage(err error) string {
	if errors.Is(err, apperrors.ErrNotFound) {
		return "entry not found"
	}
	return err.Error()
}
