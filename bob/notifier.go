package bob

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"
	"log/slog"
	"strings"
	"time"
)

const (
	postgresNotifyChannelRuntimeConfigUpdated = "bob_reload_runtime_config"
	postgresNotifyChannelUserUpdated          = "bob_user_updated"
	postgresNotifyChannelStop                 = "bob_stop"
	recordSeparator                           = string(rune(30))
)

// DBNotifier notifies bot instances sharing a database of changes made
// through the admin API. With sqlite there is only ever one instance, so
// notifications go straight to the bot's own channels.
type DBNotifier interface {
	// ReloadRuntimeConfig tells bot instances to reload their
	// RuntimeConfig from the database
	ReloadRuntimeConfig(context.Context) bool

	// UserUpdated tells bot instances that a user record changed, and
	// should be reloaded
	UserUpdated(ctx context.Context, userID string) bool

	// Stop sends a shutdown signal to all bots
	Stop(context.Context) bool

	// Channels returns the channels Listen should be called with. Empty
	// for notifiers that don't need a listener.
	Channels() []string

	// ID identifies this notifier. Notifications carry it so an instance
	// can ignore its own.
	ID() string
	Listen(ctx context.Context, channel string) error
}

func newDBNotifier(b *Bob) (DBNotifier, error) {
	notifyID, err := generateRandomHexString(16)
	if err != nil {
		return nil, err
	}
	log := b.logger.With(loggerNameKey, "db_notifier")
	switch b.config.DatabaseType {
	case dbTypeSQLite:
		return &sqliteNotifier{logger: log, b: b, notifyID: notifyID}, nil
	case dbTypePostgres:
		return &postgresNotifier{logger: log, b: b, notifyID: notifyID}, nil
	default:
		return nil, errors.New("invalid database type")
	}
}

type sqliteNotifier struct {
	logger   *slog.Logger
	b        *Bob
	notifyID string
}

func (s *sqliteNotifier) ID() string {
	return s.notifyID
}

func (*sqliteNotifier) Channels() []string {
	return nil
}

func (s *sqliteNotifier) Listen(_ context.Context, channel string) error {
	s.logger.Debug("listener called", "channel", channel)
	return nil
}

func (s *sqliteNotifier) Stop(ctx context.Context) bool {
	s.logger.Info("notifying stop signal")
	select {
	case s.b.signalStop <- struct{}{}:
		return true
	case <-ctx.Done():
		s.logger.Warn("timeout sending stop signal")
		return false
	}
}

func (s *sqliteNotifier) UserUpdated(ctx context.Context, userID string) bool {
	s.logger.Info("got user update notification", "user_id", userID)
	select {
	case s.b.triggerUserUpdatedRefreshCh <- userID:
		return true
	case <-ctx.Done():
		s.logger.Warn("timeout sending user refresh", "user_id", userID)
		return false
	}
}

func (s *sqliteNotifier) ReloadRuntimeConfig(ctx context.Context) bool {
	s.logger.Info("got runtime config reload notification")
	select {
	case s.b.triggerRuntimeConfigRefreshCh <- true:
		return true
	case <-ctx.Done():
		s.logger.Warn("timeout sending runtime config refresh signal")
		return false
	}
}

type postgresNotifier struct {
	b        *Bob
	logger   *slog.Logger
	notifyID string
}

func (p *postgresNotifier) ID() string {
	return p.notifyID
}

func (*postgresNotifier) Channels() []string {
	return []string{
		postgresNotifyChannelRuntimeConfigUpdated,
		postgresNotifyChannelUserUpdated,
		postgresNotifyChannelStop,
	}
}

func (p *postgresNotifier) notify(ctx context.Context, channel string, payload string) bool {
	err := p.b.writeDB.DB().WithContext(ctx).Exec(
		"SELECT pg_notify(?, ?)",
		channel,
		payload,
	).Error
	if err != nil {
		p.logger.ErrorContext(
			ctx,
			"error sending NOTIFY",
			"channel", channel,
			tint.Err(err),
		)
		return false
	}
	p.logger.InfoContext(
		ctx,
		"sent notification",
		"channel", channel,
		"pg_notify_id", p.ID(),
	)
	return true
}

func (p *postgresNotifier) Stop(ctx context.Context) bool {
	// the sending instance stops too, so it doesn't filter its own ID here
	sent := p.notify(ctx, postgresNotifyChannelStop, "")
	select {
	case p.b.signalStop <- struct{}{}:
	case <-ctx.Done():
		p.logger.Warn("timeout sending stop signal")
	}
	return sent
}

func (p *postgresNotifier) UserUpdated(ctx context.Context, userID string) bool {
	p.b.writeDB.ReloadUser(userID)
	return p.notify(
		ctx,
		postgresNotifyChannelUserUpdated,
		newUserUpdatedNotificationMessage(p.ID(), userID),
	)
}

func (p *postgresNotifier) ReloadRuntimeConfig(ctx context.Context) bool {
	return p.notify(ctx, postgresNotifyChannelRuntimeConfigUpdated, p.ID())
}

// Listen blocks, forwarding notifications received on channel until ctx
// is done.
func (p *postgresNotifier) Listen(ctx context.Context, channel string) error {
	logger := p.logger.With("channel", channel)
	logger.InfoContext(ctx, "starting db listener")

	config, err := pgxpool.ParseConfig(p.b.config.Database)
	if err != nil {
		return fmt.Errorf("error parsing database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("error creating connection pool: %w", err)
	}
	defer pool.Close()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("error acquiring connection: %w", err)
	}
	defer conn.Release()

	if _, err = conn.Exec(ctx, fmt.Sprintf("LISTEN %s", channel)); err != nil {
		return fmt.Errorf("error setting up listener: %w", err)
	}
	logger.InfoContext(ctx, "started listening on channel")

	for ctx.Err() == nil {
		notification, e := conn.Conn().WaitForNotification(ctx)
		if e != nil {
			if ctx.Err() != nil {
				break
			}
			logger.ErrorContext(ctx, "error waiting for notification", tint.Err(e))
			time.Sleep(5 * time.Second)
			continue
		}

		switch channel {
		case postgresNotifyChannelRuntimeConfigUpdated:
			if notification.Payload == p.ID() {
				logger.Debug("received notification from self, ignoring")
				continue
			}
			select {
			case p.b.triggerRuntimeConfigRefreshCh <- true:
				logger.Info("sent runtime config refresh signal from postgres listener")
			case <-time.After(dbNotifierSendTimeout):
				logger.Warn("timed out sending config refresh signal")
			}
		case postgresNotifyChannelUserUpdated:
			notifierID, userID := parseUserUpdatedNotification(notification.Payload)
			if notifierID == p.ID() {
				logger.Debug("received user update notification from self, ignoring")
				continue
			}
			select {
			case p.b.triggerUserUpdatedRefreshCh <- userID:
				logger.Info("sent signal to update user", "user_id", userID)
			case <-time.After(dbNotifierSendTimeout):
				logger.Warn("timed out sending user refresh signal", "user_id", userID)
			}
		case postgresNotifyChannelStop:
			logger.InfoContext(ctx, "received stop signal via NOTIFY")
			select {
			case p.b.signalStop <- struct{}{}:
				logger.Info("forwarded stop signal")
			case <-time.After(dbNotifierSendTimeout):
				logger.Warn("timed out forwarding stop signal")
			}
		default:
			logger.Warn("received unknown notification", "notify_channel", notification.Channel)
		}
	}
	return nil
}

func parseUserUpdatedNotification(s string) (notifierID, userID string) {
	before, after, _ := strings.Cut(s, recordSeparator)
	return before, after
}

func newUserUpdatedNotificationMessage(notifierID string, userID string) string {
	return strings.Join([]string{notifierID, userID}, recordSeparator)
}
