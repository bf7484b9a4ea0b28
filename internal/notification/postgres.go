package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"account-ledger/internal/domain"
)

// PostgresNotifier delivers notifications with pg_notify so any session
// LISTENing on the channel receives them.
type PostgresNotifier struct {
	db      *sql.DB
	channel string
}

func NewPostgresNotifier(dsn, channel string) (*PostgresNotifier, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PostgresNotifier{db: db, channel: channel}, nil
}

func (n *PostgresNotifier) Notify(ctx context.Context, account domain.Account, message string) error {
	data, err := encode(account, message)
	if err != nil {
		return err
	}

	if _, err := n.db.ExecContext(ctx, `SELECT pg_notify($1, $2)`, n.channel, string(data)); err != nil {
		return fmt.Errorf("failed to notify: %w", err)
	}
	return nil
}

func (n *PostgresNotifier) Close() error {
	return n.db.Close()
}
