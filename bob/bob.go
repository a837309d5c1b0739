package bob

import (
	"context"
	"errors"
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob/units"
	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// When building, set these like:
	// -ldflags "-X github.com/Halsjsko/BobTheBot/bob.Version=$$(date +'%Y%m%d')"

	Version   = "dev"
	CommitSHA = "unknown"
	BuildTime = "unknown"
)

// DefaultPausedMessage is the ephemeral reply sent while the bot is paused
const DefaultPausedMessage = "⏸️ Bob is currently paused for maintenance, try again later."

var (
	defaultLogWriter io.Writer = os.Stdout
)

// Bob is the bot. It owns the Discord session, the webhook server, the
// admin API, the database connections, and the unit converter shared by
// the `/convert units` command and the API.
type Bob struct {
	dbNotifier DBNotifier
	config     *Config

	// Read-only connection
	db *gorm.DB

	// Wraps db for writes, serialized when using sqlite
	writeDB DBI

	logger     *slog.Logger
	logHandler slog.Handler

	discord *Discord
	api     *API

	// Receives interactions over HTTP when the gateway isn't used for them
	discordWebhookServer *DiscordWebhookServer

	// Client for the third-party APIs behind the /random commands
	randomAPI *RandomAPI

	converter *units.Converter

	// signalStop enables an explicit stop signal to be sent to the bot,
	// such as by the `/api/quit` endpoint
	signalStop chan struct{}

	// signalReady has a value sent on it once Run has finished starting up
	signalReady chan struct{}

	// A signal is sent on this channel when shutdown finished
	eventShutdown chan struct{}

	// prevents Run from executing concurrently
	runMu sync.Mutex

	paused    atomic.Bool
	startedAt time.Time

	// Indicates whether admin credentials have been set. If they haven't,
	// Run holds after the API has started, so the bot can be configured
	// before it answers commands.
	pendingSetup atomic.Bool

	// getInteractionHandlerFunc returns the InteractionHandler for a
	// gateway interaction. Tests replace it to capture responses.
	getInteractionHandlerFunc func(
		ctx context.Context,
		i *discordgo.InteractionCreate,
	) InteractionHandler

	runtimeConfig *RuntimeConfig
	cfgMu         sync.RWMutex

	triggerRuntimeConfigRefreshCh chan bool
	triggerUserUpdatedRefreshCh   chan string

	// randIntN returns a value in [0, n). Replaced in tests.
	randIntN func(n int) int
	now      func() time.Time
}

func (b *Bob) getLogger(ctx context.Context) (context.Context, *slog.Logger) {
	logger, ok := ContextLogger(ctx)
	if logger == nil || !ok {
		logger = b.logger
		ctx = WithLogger(ctx, logger)
	}
	return ctx, logger
}

// RuntimeConfig returns a copy of the current runtime configuration
func (b *Bob) RuntimeConfig() RuntimeConfig {
	b.cfgMu.RLock()
	defer b.cfgMu.RUnlock()
	if b.runtimeConfig == nil {
		return DefaultRuntimeConfig()
	}
	return *b.runtimeConfig
}

// Converter returns the unit converter used by the bot
func (b *Bob) Converter() *units.Converter {
	return b.converter
}

// New creates a bot from the given config. Errors from each component are
// collected and returned together.
func New(config *Config) (*Bob, error) {
	var errs []error

	switch config.DatabaseType {
	case dbTypeSQLite, dbTypePostgres:
		//
	default:
		errs = append(
			errs,
			errors.New("invalid database type (must be 'sqlite' or 'postgres')"),
		)
	}

	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}

	b := &Bob{
		config:                        config,
		signalReady:                   make(chan struct{}, 1),
		eventShutdown:                 make(chan struct{}, 1),
		triggerRuntimeConfigRefreshCh: make(chan bool, 1),
		triggerUserUpdatedRefreshCh:   make(chan string, 1),
		randIntN:                      rand.IntN,
		now:                           time.Now,
	}

	b.logHandler = newLogHandler(defaultLogWriter, b.config.LogLevel)
	b.logger = slog.New(b.logHandler)
	slog.SetDefault(b.logger)

	parser, err := units.NewParser(units.DefaultAliases())
	if err != nil {
		errs = append(errs, fmt.Errorf("error building unit parser: %w", err))
	} else {
		b.converter = units.NewConverter(parser)
	}

	b.config.Discord.httpClient = b.config.HTTPClient

	disc, err := newDiscord(b.config.Discord)
	if err != nil {
		return nil, errors.Join(append(errs, err)...)
	}

	discordgo.Logger = discordgoLoggerFunc(
		context.Background(),
		newLogHandler(defaultLogWriter, b.config.Discord.DiscordGoLogLevel),
	)

	disc.logger = slog.New(
		newLogHandler(defaultLogWriter, b.config.Discord.LogLevel),
	).With(loggerNameKey, "discord")
	disc.bob = b
	b.discord = disc

	b.randomAPI = newRandomAPI(
		b.config.RandomAPI,
		b.config.HTTPClient,
		slog.New(newLogHandler(defaultLogWriter, b.config.RandomAPI.LogLevel)),
	)

	api, err := newAPI(b, config.API)
	errs = append(errs, err)
	b.api = api

	return b, errors.Join(errs...)
}

func (b *Bob) ValidateConfig() error {
	return structValidator.Struct(b.config)
}

// RegisterSlashCommands overwrites the bot's application commands,
// creating a Discord session first if the bot isn't running
func (b *Bob) RegisterSlashCommands(options ...discordgo.RequestOption) (
	[]*discordgo.ApplicationCommand,
	error,
) {
	if b.discord.session == nil {
		session, err := b.discord.newSession()
		if err != nil {
			return nil, fmt.Errorf("error creating discord session: %w", err)
		}
		b.discord.session = session
	}
	return b.discord.registerCommands(options...)
}

// Run starts the bot, blocking until ctx is canceled or a stop signal is
// received, then shuts down gracefully.
func (b *Bob) Run(ctx context.Context) error {
	// prevents concurrent runs
	b.runMu.Lock()
	defer b.runMu.Unlock()

	b.signalStop = make(chan struct{}, 1)

	b.startedAt = b.now()
	logger := b.logger

	if err := b.ValidateConfig(); err != nil {
		logger.Error("invalid config", tint.Err(err))
		return err
	}

	notifier, err := newDBNotifier(b)
	if err != nil {
		logger.Error("error creating db notifier", tint.Err(err))
		return err
	}
	b.dbNotifier = notifier

	ctx = WithLogger(ctx, logger)

	runtimeWG := &sync.WaitGroup{}

	logger.LogAttrs(ctx, slog.LevelInfo, "starting", slog.Any("config", b.config))
	if b.signalReady == nil {
		b.signalReady = make(chan struct{}, 1)
	}

	// canceling this context triggers a graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-b.signalStop:
			b.logger.Warn("got stop signal, canceling")
			cancel()
		case <-ctx.Done():
			b.logger.Warn("context canceled")
		}
	}()

	go func() {
		httpErr := b.api.Serve(ctx)
		if httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
			b.logger.ErrorContext(ctx, "error serving api HTTP", tint.Err(httpErr))
		}
	}()

	startCtx, startCancel := context.WithTimeout(ctx, b.config.StartupTimeout)
	defer startCancel()

	initErr := make(chan error, 1)
	go func() {
		logger.Debug("initializing run...")
		initErr <- b.initRun(startCtx)
	}()

	select {
	case <-startCtx.Done():
		return errors.New("startup cancelled or timed out")
	case e := <-initErr:
		if e != nil {
			logger.ErrorContext(ctx, "init error", tint.Err(e))
			b.api.closeListener(ctx)
			return e
		}
		logger.InfoContext(ctx, "init complete")
	}

	if !b.waitOnSetup(ctx, logger) {
		return b.shutdown(ctx, runtimeWG)
	}

	runtimeCfg := b.RuntimeConfig()

	if b.config.Discord.WebhookServer.Enabled {
		if webhookErr := b.startWebhookServer(ctx, runtimeWG); webhookErr != nil {
			return webhookErr
		}
	} else if !runtimeCfg.DiscordGatewayEnabled {
		logger.WarnContext(ctx, "discord gateway and webhook server disabled")
	}

	if discErr := b.initDiscordSession(ctx, runtimeWG); discErr != nil {
		b.logger.ErrorContext(ctx, "error creating discord session", tint.Err(discErr))
		return discErr
	}

	if e := b.discordInit(ctx, runtimeCfg, logger); e != nil {
		return e
	}

	b.startRuntimeConfigRefresher(ctx, runtimeWG, logger)
	b.startUserUpdatedListener(ctx, runtimeWG)

	for _, channel := range b.dbNotifier.Channels() {
		runtimeWG.Add(1)
		go func(ch string) {
			defer runtimeWG.Done()
			if e := b.dbNotifier.Listen(ctx, ch); e != nil {
				b.logger.ErrorContext(
					ctx,
					"error listening for notifications",
					"channel", ch,
					tint.Err(e),
				)
			}
		}(channel)
	}

	b.signalReady <- struct{}{}
	b.logger.InfoContext(ctx, "sent ready signal")

	<-ctx.Done()

	return b.shutdown(ctx, runtimeWG)
}

// waitOnSetup blocks until admin credentials exist, if they haven't been
// set yet. Returns false if ctx was canceled first.
func (b *Bob) waitOnSetup(ctx context.Context, logger *slog.Logger) bool {
	if !b.pendingSetup.Load() {
		return true
	}

	logger.WarnContext(
		ctx,
		"admin credentials not set, waiting for setup (see `bob init`)",
		"setup_endpoint", apiPathSetup,
	)
	pendingStateCh := make(chan struct{}, 1)
	go func() {
		for ctx.Err() == nil {
			var runtimeState RuntimeConfig
			if e := b.db.WithContext(ctx).Last(&runtimeState).Error; e != nil {
				logger.ErrorContext(ctx, "error getting runtime config", tint.Err(e))
			}
			if runtimeState.AdminUsername != "" && runtimeState.AdminPassword != "" {
				pendingStateCh <- struct{}{}
				return
			}
			select {
			case <-ctx.Done():
			case <-time.After(5 * time.Second):
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.WarnContext(ctx, "context cancelled waiting on setup, exiting")
		return false
	case <-pendingStateCh:
		b.pendingSetup.Store(false)
	}
	return true
}

// discordInit opens the gateway connection, if enabled
func (b *Bob) discordInit(
	ctx context.Context,
	runtimeCfg RuntimeConfig,
	logger *slog.Logger,
) error {
	if !runtimeCfg.DiscordGatewayEnabled {
		return nil
	}
	b.logger.InfoContext(ctx, "connecting to discord")
	if err := b.discord.session.Open(); err != nil {
		logger.ErrorContext(ctx, "error connecting to discord!", tint.Err(err))
		return fmt.Errorf("error connecting to discord: %w", err)
	}
	if runtimeCfg.DiscordCustomStatus != "" && !b.paused.Load() {
		go func() {
			if statusErr := b.discord.updateCustomStatus(
				runtimeCfg.DiscordCustomStatus,
			); statusErr != nil {
				logger.Error("error updating discord status", tint.Err(statusErr))
			}
		}()
	}
	return nil
}

func (b *Bob) startWebhookServer(ctx context.Context, runtimeWG *sync.WaitGroup) error {
	webhookServer, err := newWebhookServer(ctx, b, b.config.Discord.WebhookServer)
	if err != nil {
		return fmt.Errorf("error creating webhook server: %w", err)
	}
	b.discordWebhookServer = webhookServer

	runtimeWG.Add(1)
	go func() {
		defer runtimeWG.Done()
		httpErr := b.discordWebhookServer.Serve(ctx)
		if httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
			b.logger.ErrorContext(ctx, "error serving webhook HTTP", tint.Err(httpErr))
		}
	}()
	return nil
}

func (b *Bob) startUserUpdatedListener(ctx context.Context, runtimeWG *sync.WaitGroup) {
	runtimeWG.Add(1)
	go func() {
		defer runtimeWG.Done()
		for {
			select {
			case <-ctx.Done():
				b.logger.Info("context canceled, stopping user updated listener")
				return
			case userID := <-b.triggerUserUpdatedRefreshCh:
				if userID == "" {
					b.logger.Warn("empty user ID received, skipping refresh")
					continue
				}
				b.refreshUser(userID)
			}
		}
	}()
}

func (b *Bob) refreshUser(userID string) {
	b.logger.Info("reloading user", "user_id", userID)
	if user := b.writeDB.ReloadUser(userID); user == nil {
		b.logger.Warn("user not found after reload", "user_id", userID)
		return
	}
	b.logger.Info("reloaded user", "user_id", userID)
}

// startRuntimeConfigRefresher periodically reloads [RuntimeConfig], and
// reloads it on demand when a signal is received on
// triggerRuntimeConfigRefreshCh.
func (b *Bob) startRuntimeConfigRefresher(
	ctx context.Context,
	runtimeWG *sync.WaitGroup,
	logger *slog.Logger,
) {
	runtimeConfigTTL := b.config.RuntimeConfigTTL

	if runtimeConfigTTL > 0 {
		runtimeWG.Add(1)
		go func() {
			defer runtimeWG.Done()
			ticker := time.NewTicker(runtimeConfigTTL)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					select {
					case b.triggerRuntimeConfigRefreshCh <- false:
						logger.Debug("sent config refresh signal from ticker")
					case <-time.After(5 * time.Second):
						logger.Warn("timed out sending config refresh signal")
					}
				}
			}
		}()
	}

	runtimeWG.Add(1)
	go func() {
		defer runtimeWG.Done()

		for {
			select {
			case <-ctx.Done():
				return
			case forceRefresh := <-b.triggerRuntimeConfigRefreshCh:
				refreshCtx, refreshCancel := context.WithTimeout(ctx, dbOperationTimeout)
				b.refreshRuntimeConfig(refreshCtx, forceRefresh)
				refreshCancel()
			}
		}
	}()
}

func (b *Bob) refreshRuntimeConfig(ctx context.Context, force bool) {
	b.cfgMu.Lock()
	defer b.cfgMu.Unlock()

	var refreshConfig RuntimeConfig
	if err := b.db.WithContext(ctx).Last(&refreshConfig).Error; err != nil {
		b.logger.Error("error getting runtime config", tint.Err(err))
		return
	}

	if !force && refreshConfig.UpdatedAt == b.runtimeConfig.UpdatedAt {
		b.logger.Debug("runtime config is up to date, skipping refresh")
		return
	}
	b.unsafeRefreshRuntimeConfig(*b.runtimeConfig, &refreshConfig)
}

// unsafeRefreshRuntimeConfig applies newConfig. The caller must hold cfgMu.
func (b *Bob) unsafeRefreshRuntimeConfig(
	previous RuntimeConfig,
	newConfig *RuntimeConfig,
) {
	b.logger.Info("refreshing runtime configuration")
	b.updateDiscordStatus(previous, *newConfig)

	b.paused.Store(newConfig.Paused)
	b.runtimeConfig = newConfig
	b.setRuntimeLevels(*newConfig)

	b.logger.Info("refreshed runtime config")
}

// updateDiscordStatus opens or closes the gateway connection, and updates
// the bot's presence, when the relevant settings changed between previous
// and current.
func (b *Bob) updateDiscordStatus(previous RuntimeConfig, current RuntimeConfig) {
	if b.discord.session == nil {
		return
	}
	switch {
	case previous.DiscordGatewayEnabled && !current.DiscordGatewayEnabled:
		if discErr := b.discord.session.Close(); discErr != nil {
			b.logger.Error("error closing discord connection", tint.Err(discErr))
		}
	case previous.DiscordGatewayEnabled && current.DiscordGatewayEnabled:
		switch {
		case current.Paused && !previous.Paused:
			if discErr := b.discord.updateStatusComplex(
				discordgo.UpdateStatusData{
					AFK:    true,
					Status: string(discordgo.StatusDoNotDisturb),
				},
			); discErr != nil {
				b.logger.Error("error updating discord status", tint.Err(discErr))
			}
		case !current.Paused && (previous.Paused ||
			current.DiscordCustomStatus != previous.DiscordCustomStatus):
			if discErr := b.discord.updateCustomStatus(
				current.DiscordCustomStatus,
			); discErr != nil {
				b.logger.Error("error updating discord status", tint.Err(discErr))
			}
		}
	case current.DiscordGatewayEnabled:
		b.discord.session.SetIdentify(
			discordgo.Identify{
				Intents:  b.config.Discord.GatewayIntents,
				Presence: getDiscordPresenceStatusUpdate(current),
			},
		)
		if discErr := b.discord.session.Open(); discErr != nil {
			b.logger.Error("error opening discord connection", tint.Err(discErr))
		}
	}
}

func (b *Bob) shutdown(
	ctx context.Context,
	runtimeWG *sync.WaitGroup,
) error {
	b.logger.WarnContext(ctx, "shutting down")
	defer func() {
		if b.eventShutdown != nil {
			go func() {
				b.eventShutdown <- struct{}{}
			}()
		}
	}()
	shutdownStart := time.Now()
	shutdownTimeout := b.config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		b.logger.Warn("immediate shutdown")
		b.closeServers()
		return errors.New("shutdown timeout is zero, closed immediately")
	}
	shutdownDeadline := shutdownStart.Add(shutdownTimeout)

	announcementTicker := time.NewTicker(10 * time.Second)
	defer announcementTicker.Stop()

	b.logger.InfoContext(
		ctx,
		"exiting!",
		"shutdown_timeout", shutdownTimeout,
		"shutdown_started", shutdownStart,
		"shutdown_deadline", shutdownDeadline,
	)

	closeCtx, closeCancel := context.WithDeadline(context.Background(), shutdownDeadline)
	defer closeCancel()

	gracefulShutdownCh := make(chan error, 1)
	go func() {
		// in-flight interactions and background goroutines first
		runtimeWG.Wait()
		runtimeStopEnd := time.Now()
		b.logger.InfoContext(
			ctx,
			"finished handling in-flight requests",
			"runtime_stop_duration", runtimeStopEnd.Sub(shutdownStart),
		)

		g := new(errgroup.Group)
		if b.api != nil && b.api.httpServer != nil {
			g.Go(
				func() error {
					b.logger.InfoContext(ctx, "stopping http server")
					err := b.api.httpServer.Shutdown(closeCtx)
					b.logger.InfoContext(ctx, "http server stopped")
					return err
				},
			)
		}
		if b.discordWebhookServer != nil {
			g.Go(
				func() error {
					b.logger.InfoContext(ctx, "stopping webhook http server")
					err := b.discordWebhookServer.httpServer.Shutdown(closeCtx)
					b.logger.InfoContext(ctx, "webhook http server stopped")
					return err
				},
			)
		}
		if b.discord.session != nil {
			g.Go(
				func() error {
					b.logger.InfoContext(ctx, "closing discord session")
					err := b.discord.session.Close()
					for _, h := range b.discord.discordgoRemoveHandlerFuncs {
						h()
					}
					b.discord.discordgoRemoveHandlerFuncs = nil
					b.logger.InfoContext(ctx, "discord session closed")
					return err
				},
			)
		}
		gracefulShutdownCh <- g.Wait()
	}()

	for {
		select {
		case err := <-gracefulShutdownCh:
			if err != nil {
				b.logger.WarnContext(ctx, "error during shutdown", tint.Err(err))
			}
			b.logger.InfoContext(
				ctx,
				"shutdown complete",
				"shutdown_duration", time.Since(shutdownStart),
			)
			return nil
		case <-announcementTicker.C:
			b.logger.Warn(
				fmt.Sprintf("time until hard shutdown: %s", time.Until(shutdownDeadline)),
			)
		case <-closeCtx.Done():
			b.logger.Warn("graceful shutdown timed out, forcing close")
			b.closeServers()
			return errors.New("graceful shutdown timed out")
		}
	}
}

func (b *Bob) closeServers() {
	if b.api != nil && b.api.httpServer != nil {
		go func() {
			_ = b.api.httpServer.Close()
		}()
	}
	if b.discordWebhookServer != nil {
		go func() {
			_ = b.discordWebhookServer.httpServer.Close()
		}()
	}
}

// setRuntimeLevels applies the log levels stored in the runtime config
func (b *Bob) setRuntimeLevels(state RuntimeConfig) {
	b.config.LogLevel.Set(state.LogLevel.Level())
	b.config.Discord.LogLevel.Set(state.DiscordLogLevel.Level())
	b.config.API.LogLevel.Set(state.APILogLevel.Level())
	b.config.Discord.WebhookServer.LogLevel.Set(state.DiscordWebhookLogLevel.Level())
	b.config.Discord.DiscordGoLogLevel.Set(state.DiscordGoLogLevel.Level())
	b.config.DatabaseLogLevel.Set(state.DatabaseLogLevel.Level())
	b.config.RandomAPI.LogLevel.Set(state.RandomAPILogLevel.Level())
}

func (b *Bob) initRun(ctx context.Context) error {
	b.logger.Debug("initializing DB...")
	if err := b.initDB(ctx); err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}
	b.logger.Debug("finished initializing DB")

	// the paused state is persisted, so a crash while paused doesn't
	// restart the bot in an active state
	var botState RuntimeConfig
	getStateErr := b.db.WithContext(ctx).Last(&botState).Error
	if getStateErr != nil {
		if !errors.Is(getStateErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error getting config: %w", getStateErr)
		}
		botState = DefaultRuntimeConfig()
		if _, err := b.writeDB.Create(ctx, &botState); err != nil {
			return fmt.Errorf("error creating config: %w", err)
		}
	}
	if validationErr := structValidator.Struct(botState); validationErr != nil {
		return fmt.Errorf("invalid runtime config: %w", validationErr)
	}

	if botState.AdminUsername == "" || botState.AdminPassword == "" {
		b.pendingSetup.Store(true)
	}
	b.paused.Store(botState.Paused)
	b.setRuntimeLevels(botState)

	b.cfgMu.Lock()
	b.runtimeConfig = &botState
	b.cfgMu.Unlock()
	return nil
}

// initDB opens the database, applies the sqlite pragmas and migrates
// every table.
func (b *Bob) initDB(ctx context.Context) error {
	_, logger := b.getLogger(ctx)

	handler := newLogHandler(defaultLogWriter, b.config.DatabaseLogLevel)
	gormLogger := newGORMLogger(handler, b.config.DatabaseSlowThreshold)
	db, err := getDB(b.config.DatabaseType, b.config.Database, gormLogger)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	b.db = db
	b.writeDB = NewDatabase(db, b.logger, b.config.DatabaseType == dbTypePostgres)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error getting database connection: %w", err)
	}

	if b.config.DatabaseType == dbTypeSQLite {
		sqlDB.SetMaxOpenConns(sqliteMaxOpenConns)
		sqlDB.SetMaxIdleConns(sqliteMaxIdleConns)
		sqlDB.SetConnMaxLifetime(sqliteMaxConnLifetime)
		pragmaErrors := make([]error, 0, len(sqliteExecPragma))
		for _, p := range sqliteExecPragma {
			pragmaErrors = append(pragmaErrors, db.WithContext(ctx).Exec(p).Error)
		}
		if pragmaErr := errors.Join(pragmaErrors...); pragmaErr != nil {
			return pragmaErr
		}
	}

	logger.Debug("migrating database...")
	if err = migrate(ctx, db); err != nil {
		logger.Error("error migrating database", tint.Err(err))
		return err
	}
	logger.Debug("finished migrating database")
	return nil
}

func (b *Bob) initDiscordSession(ctx context.Context, runtimeWG *sync.WaitGroup) error {
	logger := b.logger.With(loggerNameKey, "discord_session")

	if b.discord.session == nil {
		disc, discErr := b.discord.newSession()
		if discErr != nil {
			return fmt.Errorf("error creating discord session: %w", discErr)
		}
		b.discord.session = disc
	}

	ctx = WithLogger(ctx, logger)

	for _, h := range b.discord.discordgoRemoveHandlerFuncs {
		h()
	}

	b.discord.session.SetIdentify(
		discordgo.Identify{
			Intents:  b.config.Discord.GatewayIntents,
			Presence: getDiscordPresenceStatusUpdate(b.RuntimeConfig()),
		},
	)

	b.discord.discordgoRemoveHandlerFuncs = []func(){
		b.discord.session.AddHandler(b.discord.handlerConnect()),
		b.discord.session.AddHandler(b.discord.handlerDisconnect()),
		b.discord.session.AddHandler(b.discord.handlerReady()),
		b.discord.session.AddHandler(
			func(
				_ *discordgo.Session,
				i *discordgo.InteractionCreate,
			) {
				handler := b.getInteractionHandlerFunc(ctx, i)
				runtimeWG.Add(1)
				go func() {
					defer runtimeWG.Done()
					b.handleInteraction(ctx, handler)
				}()
			},
		),
	}

	if b.getInteractionHandlerFunc == nil {
		b.getInteractionHandlerFunc = func(
			_ context.Context,
			i *discordgo.InteractionCreate,
		) InteractionHandler {
			return GatewayHandler{
				session:     b.discord.session,
				interaction: i,
				config:      b.RuntimeConfig().CommandOptions,
				mu:          &sync.RWMutex{},
				logger: b.logger.With(
					slog.Group("interaction", interactionLogAttrs(*i)...),
				),
			}
		}
	}
	return nil
}

// Pause stops the bot from running commands, answering them with
// [DefaultPausedMessage] instead. Returns false if already paused.
func (b *Bob) Pause(ctx context.Context) bool {
	if b.paused.Swap(true) {
		return false
	}
	b.logger.WarnContext(ctx, "bot paused")

	if err := b.discord.updateStatusComplex(
		discordgo.UpdateStatusData{
			AFK:    true,
			Status: string(discordgo.StatusDoNotDisturb),
		},
	); err != nil {
		b.logger.ErrorContext(ctx, "unable to update afk status", tint.Err(err))
	}

	b.cfgMu.Lock()
	defer b.cfgMu.Unlock()
	if !b.runtimeConfig.Paused {
		if _, err := b.writeDB.Update(
			ctx,
			b.runtimeConfig,
			columnRuntimeConfigPaused,
			true,
		); err != nil {
			b.logger.ErrorContext(ctx, "unable to set paused in db", tint.Err(err))
		}
	}
	return true
}

// Resume resumes command processing. It returns a bool indicating whether
// the bot was paused at the time the function was called.
func (b *Bob) Resume(ctx context.Context) bool {
	if !b.paused.Swap(false) {
		b.logger.Warn("bot not paused")
		return false
	}
	b.logger.InfoContext(ctx, "bot resumed")

	b.cfgMu.Lock()
	defer b.cfgMu.Unlock()

	if err := b.discord.updateCustomStatus(b.runtimeConfig.DiscordCustomStatus); err != nil {
		b.logger.ErrorContext(ctx, "unable to update online status", tint.Err(err))
	}

	if b.runtimeConfig.Paused {
		if _, err := b.writeDB.Update(
			ctx, b.runtimeConfig, columnRuntimeConfigPaused, false,
		); err != nil {
			b.logger.ErrorContext(ctx, "unable to set resumed in db", tint.Err(err))
		}
	}
	return true
}

// GetOrCreateUser returns the stored User for u, creating it the first
// time the user is seen.
func (b *Bob) GetOrCreateUser(
	ctx context.Context, u discordgo.User,
) (user *User, isNew bool, err error) {
	user, isNew, err = b.writeDB.GetOrCreateUser(ctx, u)
	if isNew && err == nil {
		go b.discordNotifyNewUserSeen(ctx, user.Username, user.GlobalName, user.ID)
	}
	return user, isNew, err
}

func (b *Bob) discordNotifyNewUserSeen(
	ctx context.Context,
	username string,
	globalName string,
	userID string,
) {
	_, log := b.getLogger(ctx)
	log = log.With(
		slog.Group(
			"new_user",
			"id", userID,
			"username", username,
			"global_name", globalName,
		),
	)
	log.Info("saw new user!")
	channelID := b.RuntimeConfig().DiscordNotificationChannelID
	if channelID == "" {
		return
	}
	if sendErr := b.discord.channelMessageSend(
		channelID,
		fmt.Sprintf(
			"**New user seen!** GlobalName: `%s` Username: `%s` UserID: `%s`",
			globalName,
			username,
			userID,
		),
		discordgo.WithContext(ctx),
		discordgo.WithRetryOnRatelimit(false),
	); sendErr != nil {
		log.Error("error sending new user notification", tint.Err(sendErr))
	}
}

// handleInteraction logs the interaction, resolves the user and runs the
// command, component or modal it's for.
func (b *Bob) handleInteraction(
	ctx context.Context,
	handler InteractionHandler,
) {
	logger := handler.Logger()
	i := handler.GetInteraction()

	if i.Type == discordgo.InteractionPing {
		if err := handler.Respond(
			ctx,
			&discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong},
		); err != nil {
			logger.ErrorContext(ctx, "error responding to ping", tint.Err(err))
		}
		return
	}

	discordUser := getDiscordUser(i)
	if discordUser == nil {
		logger.ErrorContext(
			ctx,
			"no user found in interaction",
			"interaction", structToSlogValue(i),
		)
		return
	}

	ctx = WithLogger(ctx, logger)
	logger.InfoContext(
		ctx,
		"received new interaction",
		"user", structToSlogValue(discordUser),
		"command", interactionCommandName(i),
	)

	wg := &sync.WaitGroup{}
	defer wg.Wait()

	interactionLog, err := newInteractionLog(i, discordUser, handler)
	if err != nil {
		logger.ErrorContext(ctx, "error marshaling interaction", tint.Err(err))
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, createErr := b.writeDB.Create(ctx, interactionLog); createErr != nil {
				logger.ErrorContext(ctx, "error logging interaction", tint.Err(createErr))
			}
		}()
	}

	if discordUser.Bot {
		logger.WarnContext(ctx, "user is bot, ignoring", "user", discordUser)
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand,
		discordgo.InteractionMessageComponent,
		discordgo.InteractionModalSubmit:
		//
	default:
		logger.WarnContext(ctx, "unhandled interaction type", "type", i.Type.String())
		return
	}

	u, _, err := b.GetOrCreateUser(ctx, *discordUser)
	if err != nil {
		logger.ErrorContext(ctx, "error getting user", tint.Err(err))
		if respErr := handler.Respond(
			ctx,
			ephemeralResponse(handler.Config().DiscordErrorMessage),
		); respErr != nil {
			logger.ErrorContext(ctx, "error sending error response", tint.Err(respErr))
		}
		return
	}

	logger = logger.With(slog.Group("user", userLogAttrs(*u)...))
	ctx = WithLogger(ctx, logger)

	if u.Ignored {
		logger.InfoContext(ctx, "ignoring interaction from ignored user")
		return
	}

	if b.paused.Load() {
		logger.InfoContext(ctx, "bot paused, not running command")
		if respErr := handler.Respond(ctx, ephemeralResponse(DefaultPausedMessage)); respErr != nil {
			logger.ErrorContext(ctx, "error sending paused response", tint.Err(respErr))
		}
		return
	}

	b.runInteraction(ctx, handler, u)
}

// handleRecover logs a panic recovered while running a command. This is
// only used when [CommandOptions.RecoverPanic] is enabled.
func (*Bob) handleRecover(ctx context.Context, rc any) {
	logger, ok := ContextLogger(ctx)
	if logger == nil || !ok {
		logger = slog.Default()
	}
	stackTrace := string(debug.Stack())
	switch v := rc.(type) {
	case error:
		logger.ErrorContext(ctx, "recovered from panic", tint.Err(v), "stack_trace", stackTrace)
	case string:
		logger.ErrorContext(
			ctx,
			"recovered from panic",
			tint.Err(errors.New(v)),
			"stack_trace", stackTrace,
		)
	default:
		logger.ErrorContext(ctx, "recovered from panic", "panic_arg", rc, "stack_trace", stackTrace)
	}
}
