package repository

import (
	"log/slog"
	"sync"
	"time"

	"account-ledger/internal/domain"
	"account-ledger/internal/errors"
)

// accountEntry pairs a live account record with the lock guarding its balance.
type accountEntry struct {
	id      string
	mu      sync.RWMutex
	account domain.Account
}

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*accountEntry
	logger   *slog.Logger
}

func NewAccountRepository(logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		accounts: make(map[string]*accountEntry),
		logger:   logger,
	}
}

func (r *accountRepository) CreateAccount(account *domain.Account) error {
	now := time.Now().UTC()

	r.mu.Lock()
	if _, exists := r.accounts[account.ID]; exists {
		r.mu.Unlock()
		r.logger.Warn("Duplicate account creation attempt", "account_id", account.ID)
		return errors.DuplicateAccountError(account.ID)
	}

	account.CreatedAt = now
	account.UpdatedAt = now
	r.accounts[account.ID] = &accountEntry{id: account.ID, account: *account}
	r.mu.Unlock()

	r.logger.Info("Account created successfully", "account_id", account.ID)
	return nil
}

func (r *accountRepository) GetAccount(id string) (*domain.Account, error) {
	entry, ok := r.lookup(id)
	if !ok {
		r.logger.Warn("Account not found", "account_id", id)
		return nil, errors.AccountNotFoundError(id)
	}

	entry.mu.RLock()
	account := entry.account
	entry.mu.RUnlock()

	return &account, nil
}

func (r *accountRepository) ClearAccounts() {
	r.mu.Lock()
	r.accounts = make(map[string]*accountEntry)
	r.mu.Unlock()

	r.logger.Info("Accounts cleared")
}

func (r *accountRepository) lookup(id string) (*accountEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.accounts[id]
	return entry, ok
}
