package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that conflicts with the requested operation.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the actor is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// BalanceError reports a journal entry whose debit and credit sides do not match.
type BalanceError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("entry is not balanced: total debit %s, total credit %s, difference %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Difference().StringFixed(2))
}

// Difference returns TotalDebit - TotalCredit.
func (e *BalanceError) Difference() decimal.Decimal {
	return e.TotalDebit.Sub(e.TotalCredit)
}

// Is makes BalanceError match ErrValidation so handlers can treat it as a 4xx.
func (e *BalanceError) Is(target error) bool {
	return target == ErrValidation
}

// IllegalTransitionError reports a lifecycle verb applied to an entry whose
// current status does not allow it.
type IllegalTransitionError struct {
	Operation     string
	CurrentStatus string
	AllowedFrom   []string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s entry with status %s (allowed from: %s)",
		e.Operation, e.CurrentStatus, strings.Join(e.AllowedFrom, ", "))
}

// Is makes IllegalTransitionError match ErrConflict.
func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrConflict
}

// AppError carries an HTTP-ish status code along with a message and cause.
// Repositories use it to wrap low-level database failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
