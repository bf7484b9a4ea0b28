// Package notification holds the transports that deliver transfer
// notifications to account holders. Every transport implements
// domain.Notifier; the transfer engine treats delivery as best effort.
package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"account-ledger/internal/config"
	"account-ledger/internal/domain"
)

// Notifier is a domain.Notifier that owns a connection to release on shutdown.
type Notifier interface {
	domain.Notifier
	Close() error
}

// New builds the notifier selected by cfg.Notifier, wrapped in a circuit
// breaker when cfg.BreakerEnabled is set and the transport is a network one.
func New(cfg *config.Config, logger *slog.Logger) (Notifier, error) {
	var (
		n   Notifier
		err error
	)

	switch cfg.Notifier {
	case config.NotifierLog, "":
		return NewLogNotifier(logger), nil
	case config.NotifierNoop:
		return NoopNotifier{}, nil
	case config.NotifierNATS:
		n, err = NewNATSNotifier(cfg.NATSURL, cfg.NATSSubject, cfg.ServiceName, logger)
	case config.NotifierRedis:
		n, err = NewRedisNotifierFromConfig(cfg)
	case config.NotifierPostgres:
		n, err = NewPostgresNotifier(cfg.GetDBConnectionString(), cfg.PostgresChannel)
	default:
		return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}
	if err != nil {
		return nil, err
	}

	if cfg.BreakerEnabled {
		n = NewBreakerNotifier(cfg.Notifier, n, DefaultBreakerConfig(), logger)
	}

	logger.Info("Notifier initialized", "notifier", cfg.Notifier, "breaker", cfg.BreakerEnabled)
	return n, nil
}

func encode(account domain.Account, message string) ([]byte, error) {
	data, err := json.Marshal(domain.NewNotification(account, message))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}
	return data, nil
}
