package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"account-ledger/internal/domain"
	"account-ledger/internal/telemetry"
)

// LedgerService is the entry point used by the HTTP layer. It only
// delegates: uniqueness lives in the repository, transfer rules in
// TransferService.
type LedgerService struct {
	accountRepo domain.AccountRepository
	transfers   *TransferService
	logger      *slog.Logger
}

func NewLedgerService(accountRepo domain.AccountRepository, transfers *TransferService, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		accountRepo: accountRepo,
		transfers:   transfers,
		logger:      logger,
	}
}

func (s *LedgerService) CreateAccount(ctx context.Context, accountID string, initialBalance decimal.Decimal) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.CreateAccount",
		trace.WithAttributes(attribute.String("account_id", accountID)))
	defer span.End()

	s.logger.InfoContext(ctx, "Creating account", "account_id", accountID, "initial_balance", initialBalance)

	account := &domain.Account{
		ID:      accountID,
		Balance: initialBalance,
	}

	if err := s.accountRepo.CreateAccount(account); err != nil {
		span.RecordError(err)
		return nil, err
	}

	telemetry.AccountsCreatedTotal.Inc()
	return account, nil
}

func (s *LedgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	_, span := tracer.Start(ctx, "LedgerService.GetAccount",
		trace.WithAttributes(attribute.String("account_id", accountID)))
	defer span.End()

	return s.accountRepo.GetAccount(accountID)
}

func (s *LedgerService) TransferMoney(ctx context.Context, sourceAccountID, destinationAccountID string, amount decimal.Decimal) (*domain.Transfer, error) {
	return s.transfers.Transfer(ctx, &TransferRequest{
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
		Amount:               amount,
	})
}
