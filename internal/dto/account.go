package dto

import (
	"github.com/shopspring/decimal"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
)

// CreateAccountRequest creates an account in the chart of accounts.
type CreateAccountRequest struct {
	Code               string             `json:"code" binding:"required"`
	Name               string             `json:"name" binding:"required"`
	AccountType        domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE COST"`
	ParentAccountID    *string            `json:"parentAccountID"`
	Description        string             `json:"description"`
	AllowsMovements    bool               `json:"allowsMovements"`
	RequiresThirdParty bool               `json:"requiresThirdParty"`
	RequiresCostCenter bool               `json:"requiresCostCenter"`
}

// AccountResponse is the API shape of an account.
type AccountResponse struct {
	AccountID          string             `json:"accountID"`
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	AccountType        domain.AccountType `json:"accountType"`
	NormalBalanceSide  domain.BalanceSide `json:"normalBalanceSide"`
	ParentAccountID    *string            `json:"parentAccountID,omitempty"`
	Description        string             `json:"description,omitempty"`
	AllowsMovements    bool               `json:"allowsMovements"`
	RequiresThirdParty bool               `json:"requiresThirdParty"`
	RequiresCostCenter bool               `json:"requiresCostCenter"`
	IsActive           bool               `json:"isActive"`
	Balance            decimal.Decimal    `json:"balance"`
	DebitBalance       decimal.Decimal    `json:"debitBalance"`
	CreditBalance      decimal.Decimal    `json:"creditBalance"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          account.AccountID,
		Code:               account.Code,
		Name:               account.Name,
		AccountType:        account.AccountType,
		NormalBalanceSide:  account.AccountType.NormalBalanceSide(),
		ParentAccountID:    account.ParentAccountID,
		Description:        account.Description,
		AllowsMovements:    account.AllowsMovements,
		RequiresThirdParty: account.RequiresThirdParty,
		RequiresCostCenter: account.RequiresCostCenter,
		IsActive:           account.IsActive,
		Balance:            account.Balance,
		DebitBalance:       account.DebitBalance,
		CreditBalance:      account.CreditBalance,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
