package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"account-ledger/internal/domain"
)

type BreakerConfig struct {
	MaxRequests         uint32        // Max requests in half-open state
	Interval            time.Duration // Closed-state window after which counts reset
	Timeout             time.Duration // Open-state duration before half-open
	ConsecutiveFailures uint32        // Consecutive failures to trigger open state
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// BreakerNotifier stops calling a failing transport until the breaker
// half-opens, so transfers don't wait on a dead broker for every notification.
type BreakerNotifier struct {
	next    Notifier
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerNotifier(name string, next Notifier, cfg BreakerConfig, logger *slog.Logger) *BreakerNotifier {
	settings := gobreaker.Settings{
		Name:        "notifier-" + name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Notifier circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &BreakerNotifier{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (n *BreakerNotifier) Notify(ctx context.Context, account domain.Account, message string) error {
	_, err := n.breaker.Execute(func() (interface{}, error) {
		return nil, n.next.Notify(ctx, account, message)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("notifier unavailable: %w", err)
	}
	return err
}

func (n *BreakerNotifier) State() gobreaker.State {
	return n.breaker.State()
}

func (n *BreakerNotifier) Close() error {
	return n.next.Close()
}
