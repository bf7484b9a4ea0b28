package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notifier reports a balance change to the holder of an account.
type Notifier interface {
	Notify(ctx context.Context, account Account, message string) error
}

// Notification is the payload published by network notifiers.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	AccountID string    `json:"account_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotification(account Account, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		AccountID: account.ID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
