package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"account-ledger/internal/domain"
	"account-ledger/internal/errors"
	"account-ledger/internal/telemetry"
)

var tracer = otel.Tracer("account-ledger/internal/service")

type TransferService struct {
	accountRepo   domain.AccountRepository
	notifier      domain.Notifier
	notifyTimeout time.Duration
	logger        *slog.Logger
}

func NewTransferService(
	accountRepo domain.AccountRepository,
	notifier domain.Notifier,
	notifyTimeout time.Duration,
	logger *slog.Logger,
) *TransferService {
	return &TransferService{
		accountRepo:   accountRepo,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		logger:        logger,
	}
}

type TransferRequest struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
}

// Transfer moves req.Amount from the source to the destination account.
// Both balances change under both account locks; notifications are sent
// after the locks are released and their failures never fail the transfer.
func (s *TransferService) Transfer(ctx context.Context, req *TransferRequest) (*domain.Transfer, error) {
	ctx, span := tracer.Start(ctx, "TransferService.Transfer")
	defer span.End()
	span.SetAttributes(
		attribute.String("source_account_id", req.SourceAccountID),
		attribute.String("destination_account_id", req.DestinationAccountID),
		attribute.String("amount", req.Amount.String()),
	)

	s.logger.InfoContext(ctx, "Processing transfer",
		"source_account_id", req.SourceAccountID,
		"destination_account_id", req.DestinationAccountID,
		"amount", req.Amount)

	if !req.Amount.IsPositive() {
		telemetry.TransfersTotal.WithLabelValues(string(errors.InvalidAmount)).Inc()
		return nil, errors.NewAppError(errors.InvalidAmount, "transfer amount must be positive")
	}

	var sourceAfter, destinationAfter domain.Account

	start := time.Now()
	err := s.accountRepo.WithAccountsLocked(req.SourceAccountID, req.DestinationAccountID,
		func(source, destination *domain.Account) error {
			if source.Balance.LessThan(req.Amount) {
				return errors.InsufficientBalanceError(source.ID)
			}

			now := time.Now().UTC()
			source.Balance = source.Balance.Sub(req.Amount)
			source.UpdatedAt = now
			destination.Balance = destination.Balance.Add(req.Amount)
			destination.UpdatedAt = now

			sourceAfter, destinationAfter = *source, *destination
			return nil
		})
	telemetry.TransferDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.WarnContext(ctx, "Transfer failed", "error", err)
		telemetry.TransfersTotal.WithLabelValues(failureStatus(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	telemetry.TransfersTotal.WithLabelValues("completed").Inc()

	transfer := &domain.Transfer{
		ID:                   uuid.New(),
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               req.Amount,
		CreatedAt:            time.Now().UTC(),
	}
	span.SetAttributes(attribute.String("transfer_id", transfer.ID.String()))

	s.notify(ctx, sourceAfter,
		fmt.Sprintf("Transferred %s to account %s", req.Amount, req.DestinationAccountID))
	s.notify(ctx, destinationAfter,
		fmt.Sprintf("Received %s from account %s", req.Amount, req.SourceAccountID))

	s.logger.InfoContext(ctx, "Transfer completed successfully", "transfer_id", transfer.ID)
	return transfer, nil
}

// notify delivers one notification on a best-effort basis. The transfer is
// already committed, so errors and panics from the notifier are only logged
// and a cancelled caller context does not stop delivery.
func (s *TransferService) notify(ctx context.Context, account domain.Account, message string) {
	ctx = context.WithoutCancel(ctx)
	if s.notifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.notifyTimeout)
		defer cancel()
	}

	if err := s.safeNotify(ctx, account, message); err != nil {
		s.logger.WarnContext(ctx, "Failed to send notification",
			"account_id", account.ID,
			"message", message,
			"error", err)
		telemetry.NotificationsTotal.WithLabelValues("failed").Inc()
		return
	}
	telemetry.NotificationsTotal.WithLabelValues("sent").Inc()
}

func (s *TransferService) safeNotify(ctx context.Context, account domain.Account, message string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("notifier panicked: %v", p)
		}
	}()
	return s.notifier.Notify(ctx, account, message)
}

func failureStatus(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return string(appErr.Code)
	}
	return string(errors.InternalError)
}
