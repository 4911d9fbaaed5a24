package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
	portsrepo "github.com/quantabooks/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/quantabooks/accounting_backend/internal/core/ports/services"
	"github.com/quantabooks/accounting_backend/internal/dto"
	"github.com/quantabooks/accounting_backend/internal/middleware"
)

// accountService manages the chart of accounts. Balances on accounts are
// owned by the posting path; this service only creates, reads and
// deactivates account records.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account with zero balances.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := timeNowUTC()
	account := domain.Account{
		AccountID:          uuid.NewString(),
		Code:               req.Code,
		Name:               req.Name,
		AccountType:        req.AccountType,
		ParentAccountID:    req.ParentAccountID,
		Description:        req.Description,
		AllowsMovements:    req.AllowsMovements,
		RequiresThirdParty: req.RequiresThirdParty,
		RequiresCostCenter: req.RequiresCostCenter,
		IsActive:           true,
		Balance:            decimal.Zero,
		DebitBalance:       decimal.Zero,
		CreditBalance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves accounts keyed by ID. IDs with no matching
// account are simply absent from the map; callers decide whether that is an
// error.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves a page of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// DeactivateAccount soft-disables an account so new entry lines cannot
// reference it. Historical posted lines keep pointing at it.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, timeNowUTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
