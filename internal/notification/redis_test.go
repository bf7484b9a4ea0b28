package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-ledger/internal/config"
	"account-ledger/internal/domain"
)

func TestRedisNotifier_Publishes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, "ledger.notifications")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := NewRedisNotifier(client, "ledger.notifications")
	require.NoError(t, n.Notify(ctx, domain.Account{ID: "Id-123"}, "Transferred 100 to account Id-456"))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var got domain.Notification
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, "Id-123", got.AccountID)
	assert.Equal(t, "Transferred 100 to account Id-456", got.Message)
}

func TestRedisNotifier_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	n := NewRedisNotifier(client, "ledger.notifications")
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, n.Notify(ctx, domain.Account{ID: "Id-123"}, "m"))
}

func TestNewRedisNotifierFromConfig_ZeroNotifyTimeout(t *testing.T) {
	mr := miniredis.RunT(t)

	n, err := NewRedisNotifierFromConfig(&config.Config{
		RedisAddr:     mr.Addr(),
		RedisChannel:  "ledger.notifications",
		NotifyTimeout: 0,
	})
	require.NoError(t, err)
	defer n.Close()

	assert.NoError(t, n.Notify(context.Background(), domain.Account{ID: "Id-123"}, "hello"))
}
