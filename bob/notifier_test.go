package bob

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestSQLiteNotifier(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	n := b.dbNotifier
	require.IsType(t, &sqliteNotifier{}, n)
	assert.Empty(t, n.Channels())
	assert.Len(t, n.ID(), 32)
	assert.NoError(t, n.Listen(context.Background(), "anything"))

	ctx := context.Background()
	assert.True(t, n.ReloadRuntimeConfig(ctx))
	assert.True(t, waitForSignal(t, b.triggerRuntimeConfigRefreshCh, time.Second))

	assert.True(t, n.UserUpdated(ctx, "42"))
	assert.Equal(t, "42", waitForSignal(t, b.triggerUserUpdatedRefreshCh, time.Second))

	assert.True(t, n.Stop(ctx))
	waitForSignal(t, b.signalStop, time.Second)

	// nobody is reading, so the second stop times out
	assert.True(t, n.Stop(ctx))
	timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	assert.False(t, n.Stop(timeoutCtx))
}

func TestUserUpdatedNotificationMessage(t *testing.T) {
	msg := newUserUpdatedNotificationMessage("abc", "42")
	notifierID, userID := parseUserUpdatedNotification(msg)
	assert.Equal(t, "abc", notifierID)
	assert.Equal(t, "42", userID)

	notifierID, userID = parseUserUpdatedNotification("abc")
	assert.Equal(t, "abc", notifierID)
	assert.Empty(t, userID)
}

func TestNewDBNotifier(t *testing.T) {
	b, _ := newTestBob(t)
	b.config.DatabaseType = dbTypePostgres
	n, err := newDBNotifier(b)
	require.NoError(t, err)
	assert.IsType(t, &postgresNotifier{}, n)
	assert.Len(t, n.Channels(), 3)

	b.config.DatabaseType = "mysql"
	_, err = newDBNotifier(b)
	assert.Error(t, err)
}
