package repository

import (
	"account-ledger/internal/domain"
	"account-ledger/internal/errors"
)

// WithAccountsLocked resolves both accounts, source first, and runs fn while
// holding both account locks. Locks are always taken in ascending account id
// order so that transfers over the same pair in opposite directions cannot
// deadlock. The store lock is released before any account lock is taken.
func (r *accountRepository) WithAccountsLocked(
	sourceID, destinationID string,
	fn func(source, destination *domain.Account) error,
) error {
	source, ok := r.lookup(sourceID)
	if !ok {
		r.logger.Warn("Account not found", "account_id", sourceID)
		return errors.AccountNotFoundError(sourceID)
	}

	destination, ok := r.lookup(destinationID)
	if !ok {
		r.logger.Warn("Account not found", "account_id", destinationID)
		return errors.AccountNotFoundError(destinationID)
	}

	if source == destination {
		source.mu.Lock()
		defer source.mu.Unlock()

		return fn(&source.account, &source.account)
	}

	first, second := lockOrder(source, destination)

	first.mu.Lock()
	defer first.mu.Unlock()

	second.mu.Lock()
	defer second.mu.Unlock()

	return fn(&source.account, &destination.account)
}

func lockOrder(a, b *accountEntry) (*accountEntry, *accountEntry) {
	if a.id < b.id {
		return a, b
	}
	return b, a
}
