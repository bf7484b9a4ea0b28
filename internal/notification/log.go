package notification

import (
	"context"
	"log/slog"

	"account-ledger/internal/domain"
)

// LogNotifier writes notifications to the structured log instead of a
// messaging system.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, account domain.Account, message string) error {
	n.logger.InfoContext(ctx, "Sending notification to owner of account",
		"account_id", account.ID,
		"message", message)
	return nil
}

func (n *LogNotifier) Close() error { return nil }

type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, domain.Account, string) error { return nil }

func (NoopNotifier) Close() error { return nil }
