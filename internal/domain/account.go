package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type AccountRepository interface {
	CreateAccount(account *Account) error
	// GetAccount returns a snapshot of the account; mutating it has no effect on the store.
	GetAccount(id string) (*Account, error)
	// WithAccountsLocked runs fn while holding the exclusive locks of both accounts.
	// The pointers passed to fn are the live records and must not escape fn.
	WithAccountsLocked(sourceID, destinationID string, fn func(source, destination *Account) error) error
	ClearAccounts()
}
