package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	AccountNotFound     ErrorCode = "account_not_found"
	DuplicateAccount    ErrorCode = "duplicate_account"
	InsufficientBalance ErrorCode = "insufficient_balance"
	InvalidAmount       ErrorCode = "invalid_amount"
	InvalidInput        ErrorCode = "invalid_input"
	InternalError       ErrorCode = "internal_error"
)

type AppError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	AccountID string    `json:"account_id,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an AppError with the same code, so the
// predefined errors below match errors that carry an account id.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy of e carrying details; e itself is unchanged so
// the predefined errors can be shared between goroutines.
func (e *AppError) WithDetails(details string) *AppError {
	c := *e
	c.Details = details
	return &c
}

// WithAccountID returns a copy of e naming accountID.
func (e *AppError) WithAccountID(accountID string) *AppError {
	c := *e
	c.AccountID = accountID
	return &c
}

// HTTPStatus maps the error code to the status code returned by the HTTP layer.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case AccountNotFound:
		return http.StatusNotFound
	case DuplicateAccount:
		return http.StatusConflict
	case InsufficientBalance:
		return http.StatusUnprocessableEntity
	case InvalidAmount, InvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrAccountNotFound     = NewAppError(AccountNotFound, "account not found")
	ErrDuplicateAccount    = NewAppError(DuplicateAccount, "account already exists")
	ErrInsufficientBalance = NewAppError(InsufficientBalance, "insufficient balance")
	ErrInvalidAmount       = NewAppError(InvalidAmount, "transfer amount must be positive")
	ErrInvalidInput        = NewAppError(InvalidInput, "invalid input")
)

func AccountNotFoundError(accountID string) *AppError {
	return NewAppErrorf(AccountNotFound, "account %s does not exist", accountID).WithAccountID(accountID)
}

func DuplicateAccountError(accountID string) *AppError {
	return NewAppErrorf(DuplicateAccount, "account id %s already exists", accountID).WithAccountID(accountID)
}

func InsufficientBalanceError(accountID string) *AppError {
	return NewAppErrorf(InsufficientBalance, "insufficient balance in account %s", accountID).WithAccountID(accountID)
}
