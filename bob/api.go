package bob

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob/units"
	"github.com/bwmarrin/discordgo"
	"github.com/gin-contrib/cors"
	ginPprof "github.com/gin-contrib/pprof"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	gsessions "github.com/gorilla/sessions"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	pprofPrefix             = "/debug"
	apiPrefix               = "/api"
	apiPathQuit             = "/quit"
	apiPathLogin            = "/login"
	apiPathLogout           = "/logout"
	apiPathUpdateUser       = "/user/:id"
	apiPathUsers            = "/users"
	apiPathRegisterCommands = "/discord/register_commands"
	apiPathLoggedIn         = "/logged_in"
	apiHealthCheck          = "/healthz"
	apiDiscordInteractions  = "/discord/interactions"
	apiPathConfig           = "/config"
	apiPathSetup            = "/setup"
	apiPathSetupStatus      = "/setup/status"
	apiPathConvert          = "/convert"
	apiPathUnits            = "/units"
	apiPathSuggestions      = "/suggestions"
)

const (
	xRequestIDHeader = "X-Request-ID"
	sessionVarName   = "user"
	sessionVarField  = "username"

	apiNotifyTimeout = 15 * time.Second
)

var (
	structValidator = validator.New()
)

var (
	Ascending  Sort = "asc"
	Descending Sort = "desc"
)

// API is the admin HTTP server. It serves login, health, runtime config,
// users, unit suggestions and command registration, plus a conversion
// endpoint backed by the same [units.Converter] as `/convert units`.
type API struct {
	config     *APIConfig
	httpServer *http.Server
	listener   net.Listener
	listenerMu sync.Mutex
	engine     *gin.Engine
	store      CookieStore
	logger     *slog.Logger

	handlers *APIHandlers
}

// newAPI sets up the gin engine, session store and routes for the admin
// API. TLS is used when [SSLConfig.CertFile] is set.
func newAPI(b *Bob, config *APIConfig) (*API, error) {
	if config == nil {
		return nil, errors.New("api config not set")
	}
	logger := slog.New(newLogHandler(defaultLogWriter, config.LogLevel)).With(loggerNameKey, "api")

	r := gin.New()

	api := &API{
		config: config,
		engine: r,
		logger: logger,
	}
	apiHandlers := NewAPIHandlers(b, config, logger)
	api.handlers = apiHandlers
	api.store = apiHandlers.store

	httpServer := &http.Server{
		Addr:              config.Listen,
		Handler:           r,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
	if config.SSL.CertFile != "" {
		tlsCfg, e := tlsConfig(
			config.SSL.CertFile,
			config.SSL.KeyFile,
			config.SSL.TLSMinVersion,
		)
		if e != nil {
			return nil, fmt.Errorf("error loading SSL certs: %w", e)
		}
		httpServer.TLSConfig = tlsCfg
	}
	api.httpServer = httpServer

	corsConfig := config.CORS.GINConfig()
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
		corsConfig.AllowCredentials = false
	}

	if !config.Development {
		r.Use(gin.Recovery())
	}
	r.Use(
		sessions.Sessions(sessionVarName, apiHandlers.store),
		requestIDMiddleware(),
		ginLoggingMiddleware(logger),
		cors.New(corsConfig),
	)

	r.GET(apiHealthCheck, apiHandlers.healthCheck)

	if config.Development {
		ginPprof.Register(r, pprofPrefix)
	}

	public := r.Group(apiPrefix)
	public.POST(apiPathLogin, apiHandlers.loginHandler)
	public.POST(apiPathLogout, apiHandlers.logoutHandler)
	public.POST(apiPathSetup, apiHandlers.adminSetup)
	public.GET(apiPathSetupStatus, apiHandlers.setupStatus)

	protected := r.Group(apiPrefix)
	protected.Use(authMiddleware(b, apiHandlers.store, logger))

	protected.GET(apiPathLoggedIn, apiHandlers.loggedIn)
	protected.GET(apiPathUsers, apiHandlers.getUsers)
	protected.PATCH(apiPathUpdateUser, apiHandlers.updateUser)
	protected.GET(apiPathConfig, apiHandlers.getConfig)
	protected.PATCH(apiPathConfig, apiHandlers.updateRuntimeConfig)
	protected.POST(apiPathQuit, apiHandlers.botQuit)
	protected.POST(apiPathRegisterCommands, apiHandlers.discordRegisterCommands)
	protected.POST(apiPathConvert, apiHandlers.convert)
	protected.GET(apiPathUnits, apiHandlers.listUnits)
	protected.GET(apiPathSuggestions, apiHandlers.getSuggestions)

	return api, nil
}

// Serve listens on [APIConfig.Listen] and serves the API until the
// server is shut down.
func (a *API) Serve(ctx context.Context) error {
	ln, err := a.listen(ctx)
	if err != nil {
		return err
	}
	return a.httpServer.Serve(ln)
}

func (a *API) listen(ctx context.Context) (net.Listener, error) {
	a.listenerMu.Lock()
	defer a.listenerMu.Unlock()

	if a.listener != nil {
		return a.listener, nil
	}

	listenCfg := &net.ListenConfig{}
	ln, err := listenCfg.Listen(ctx, a.config.ListenNetwork, a.config.Listen)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", a.config.Listen, err)
	}
	if a.httpServer.TLSConfig != nil {
		ln = tls.NewListener(ln, a.httpServer.TLSConfig)
	} else {
		a.logger.WarnContext(ctx, "starting api server without TLS")
	}
	a.listener = ln
	return ln, nil
}

// closeListener closes the API listener, for when startup fails before
// the HTTP server would be shut down
func (a *API) closeListener(ctx context.Context) {
	a.listenerMu.Lock()
	defer a.listenerMu.Unlock()

	if a.listener == nil {
		return
	}
	if err := a.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		a.logger.ErrorContext(ctx, "error closing api listener", tint.Err(err))
	}
	a.listener = nil
}

func (a *API) getSessionUsername(c *gin.Context) (string, error) {
	session, err := a.store.Get(c.Request, sessionVarName)
	if err != nil {
		return "", err
	}
	username, ok := session.Values[sessionVarField]
	if !ok {
		return "", errors.New("username not found in session")
	}
	s, ok := username.(string)
	if !ok || s == "" {
		return "", errors.New("username not set in session")
	}
	return s, nil
}

type CookieStore interface {
	sessions.Store
}

func NewCookieStore(keyPairs ...[]byte) CookieStore {
	return &cookieStore{gsessions.NewCookieStore(keyPairs...)}
}

type cookieStore struct {
	*gsessions.CookieStore
}

func (c *cookieStore) Options(options sessions.Options) {
	c.CookieStore.Options = options.ToGorillaOptions()
}

// APIHandlers contains the handlers for the API endpoints
type APIHandlers struct {
	b      *Bob
	config *APIConfig
	logger *slog.Logger
	store  CookieStore

	loginRequestLimiter *rate.Limiter
}

// NewAPIHandlers sets up the session store for the handlers. Without
// [APIConfig.Secret], a random key is generated, so sessions don't
// survive a restart.
func NewAPIHandlers(b *Bob, config *APIConfig, logger *slog.Logger) *APIHandlers {
	var secretKey []byte
	switch sk := config.Secret; {
	case sk == "":
		logger.Warn(
			"api secret not set, generating random secret " +
				"(sessions will not persist across restarts)",
		)
		secretKey = securecookie.GenerateRandomKey(64)
	default:
		secretKey = derive64ByteKey(sk)
	}

	store := NewCookieStore(secretKey)
	store.Options(sessionOptions(config))
	return &APIHandlers{
		b:                   b,
		config:              config,
		logger:              logger,
		store:               store,
		loginRequestLimiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

func sessionOptions(config *APIConfig) sessions.Options {
	sameSite := http.SameSiteStrictMode
	if config.Development {
		sameSite = http.SameSiteNoneMode
	}
	return sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		SameSite: sameSite,
	}
}

// setupStatus reports whether admin credentials still need to be set.
//
// Responses:
//   - 200 OK: Returns a JSON object with the setup status.
func (h *APIHandlers) setupStatus(c *gin.Context) {
	c.JSON(http.StatusOK, setupResponse{Required: h.b.pendingSetup.Load()})
}

// adminSetup sets the admin credentials, if they haven't been set yet.
//
// Responses:
//   - 201 Created: If the admin credentials were successfully set.
//   - 400 Bad Request: If the request payload is invalid.
//   - 403 Forbidden: If the setup is not pending.
//   - 500 Internal Server Error: If there is an error updating the admin credentials.
func (h *APIHandlers) adminSetup(c *gin.Context) {
	b := h.b
	b.cfgMu.Lock()
	defer b.cfgMu.Unlock()

	if !b.pendingSetup.Load() || b.runtimeConfig == nil {
		c.JSON(http.StatusForbidden, httpError{Error: "Forbidden"})
		return
	}

	logger := ginContextLogger(c)
	logger.Info("first time admin setup")

	var adminSetup adminSetupPayload
	if e := c.ShouldBindJSON(&adminSetup); e != nil {
		logger.Error("bad payload", tint.Err(e))
		c.JSON(http.StatusBadRequest, httpError{Error: e.Error()})
		return
	}

	password, err := hashPassword(adminSetup.Password)
	if err != nil {
		logger.Error("error hashing password", tint.Err(err))
		ginReplyError(c, "error setting admin credentials")
		return
	}

	currentState := b.runtimeConfig
	if _, err = b.writeDB.Updates(
		c.Request.Context(),
		currentState,
		map[string]any{
			columnRuntimeConfigAdminUsername: adminSetup.Username,
			columnRuntimeConfigAdminPassword: password,
		},
	); err != nil {
		logger.Error("error updating admin credentials", tint.Err(err))
		ginReplyError(c, "error updating admin credentials")
		return
	}
	currentState.AdminUsername = adminSetup.Username
	currentState.AdminPassword = password
	b.pendingSetup.Store(false)
	c.JSON(http.StatusCreated, httpReply{Message: "admin credentials set"})
}

// loginHandler checks the given credentials against the stored admin
// credentials, and starts a session if they match. Attempts are rate
// limited.
//
// Responses:
//   - 200 OK: If the user was successfully logged in.
//   - 400 Bad Request: If the request payload is invalid.
//   - 401 Unauthorized: If the credentials are incorrect or not set.
//   - 429 Too Many Requests: If the login attempts are rate limited.
//   - 500 Internal Server Error: If there is an error processing the login request.
func (h *APIHandlers) loginHandler(c *gin.Context) {
	logger := ginContextLogger(c)
	if !h.loginRequestLimiter.Allow() {
		logger.Warn("login rate limited")
		c.AbortWithStatusJSON(
			http.StatusTooManyRequests,
			httpError{Error: "too many requests"},
		)
		return
	}

	var login userLogin
	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	runtimeConfig := h.b.RuntimeConfig()
	if runtimeConfig.AdminUsername == "" || runtimeConfig.AdminPassword == "" {
		logger.Warn("admin username and password not set")
		c.JSON(http.StatusUnauthorized, httpError{Error: "unauthorized"})
		return
	}
	if login.Username != runtimeConfig.AdminUsername {
		logger.Warn("admin username incorrect")
		c.JSON(http.StatusUnauthorized, httpError{Error: "unauthorized"})
		return
	}
	valid, err := verifyPassword(runtimeConfig.AdminPassword, login.Password)
	if err != nil {
		logger.Error("error verifying password", tint.Err(err))
		ginReplyError(c, "internal server error")
		return
	}
	if !valid {
		logger.Warn("invalid login attempt", "username", login.Username)
		c.JSON(http.StatusUnauthorized, httpError{Error: "unauthorized"})
		return
	}

	session, err := h.store.New(c.Request, sessionVarName)
	if err != nil || session == nil {
		logger.Error("error creating session", tint.Err(err))
		ginReplyError(c, "internal server error")
		return
	}
	opts := sessionOptions(h.config)
	session.Options = &gsessions.Options{
		Path:     opts.Path,
		MaxAge:   opts.MaxAge,
		SameSite: opts.SameSite,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
	}
	session.Values[sessionVarField] = login.Username
	if err = session.Save(c.Request, c.Writer); err != nil {
		logger.Error("error saving session", tint.Err(err))
		ginReplyError(c, "internal server error")
		return
	}
	logger.Info("saved user session", "username", login.Username)
	c.JSON(http.StatusOK, loggedInResponse{Username: login.Username})
}

// healthCheck reports whether the bot is paused, connected to the gateway,
// and how long it has been running.
func (h *APIHandlers) healthCheck(c *gin.Context) {
	b := h.b
	var uptime time.Duration
	if !b.startedAt.IsZero() {
		uptime = b.now().Sub(b.startedAt).Round(time.Second)
	}
	resp := healthCheckResponse{
		Paused:  b.paused.Load(),
		Uptime:  uptime.String(),
		Version: Version,
	}
	if b.discord != nil {
		resp.DiscordGatewayConnected = b.discord.connected.Load()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *APIHandlers) logoutHandler(c *gin.Context) {
	logger := ginContextLogger(c)
	session, err := h.store.Get(c.Request, sessionVarName)
	if err != nil {
		logger.Error("error getting session", tint.Err(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.Values[sessionVarField] = ""
	session.Options.MaxAge = -1
	if err = session.Save(c.Request, c.Writer); err != nil {
		logger.Error("error saving cookie", tint.Err(err))
	}
	ginReplyMessage(c, "logged out")
}

func (h *APIHandlers) loggedIn(c *gin.Context) {
	username, err := h.b.api.getSessionUsername(c)
	if err != nil {
		ginContextLogger(c).Warn("error getting session username", tint.Err(err))
		c.JSON(http.StatusUnauthorized, httpError{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, loggedInResponse{Username: username})
}

// discordRegisterCommands overwrites the bot's application commands.
//
// Responses:
//   - 201 Created: If the commands were successfully registered.
//   - 500 Internal Server Error: If there was an error registering the commands.
func (h *APIHandlers) discordRegisterCommands(c *gin.Context) {
	log := ginContextLogger(c)
	log.Info("registering commands")

	if h.b.discord == nil || h.b.discord.session == nil {
		ginReplyError(c, "discord session not initialized")
		return
	}

	createdCommands, err := h.b.RegisterSlashCommands(
		discordgo.WithContext(c.Request.Context()),
	)
	if err != nil {
		log.Error("error registering commands", tint.Err(err))
		ginReplyError(c, "error registering commands")
		return
	}
	c.JSON(http.StatusCreated, createdCommands)
}

// getUsers lists users, optionally with their stats.
//
// Responses:
//   - 200 OK: Returns the list of users, optionally including statistics.
//   - 400 Bad Request: If the query parameters are invalid.
//   - 500 Internal Server Error: If there is an error retrieving the users.
func (h *APIHandlers) getUsers(c *gin.Context) {
	var query GetUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: "invalid pagination"})
		return
	}
	query.setDefaults()

	log := ginContextLogger(c)
	ctx := c.Request.Context()

	var users []User
	if err := query.apply(h.b.db.WithContext(ctx)).Find(&users).Error; err != nil {
		log.Error("error getting users", tint.Err(err))
		ginReplyError(c, "error getting users")
		return
	}

	if !query.IncludeStats {
		c.JSON(http.StatusOK, users)
		return
	}

	usersWithStats := make([]userWithStats, len(users))
	g, gctx := errgroup.WithContext(ctx)
	for ind, u := range users {
		g.Go(
			func() error {
				stats, e := u.getStats(gctx, h.b.db)
				usersWithStats[ind] = userWithStats{User: u, UserStats: &stats}
				return e
			},
		)
	}
	if e := g.Wait(); e != nil {
		log.Error("error getting user stats", tint.Err(e))
		ginReplyError(c, "error getting user stats")
		return
	}

	c.JSON(http.StatusOK, usersWithStats)
}

// updateUser updates a user's settings. Only `ignored` can be set.
//
// Responses:
//   - 202 Accepted: Returns the updated user.
//   - 400 Bad Request: If the request payload is invalid.
//   - 404 Not Found: If the user does not exist.
//   - 500 Internal Server Error: If there is an error updating the user.
func (h *APIHandlers) updateUser(c *gin.Context) {
	log := ginContextLogger(c)

	var update apiPatchUser
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Warn("bad request", tint.Err(err))
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}
	userID := c.Param("id")
	user := h.b.writeDB.GetUser(userID)
	if user == nil {
		log.Warn("user not found", columnUserID, userID)
		c.JSON(http.StatusNotFound, httpError{Error: "User not found"})
		return
	}

	if update.Ignored == nil {
		c.JSON(http.StatusAccepted, user)
		return
	}

	log.Info("updating user", "user", user, "ignored", *update.Ignored)
	ctx := c.Request.Context()
	if _, err := h.b.writeDB.Update(ctx, user, columnUserIgnored, *update.Ignored); err != nil {
		log.Error("error updating user", columnUserID, userID, tint.Err(err))
		_ = h.b.writeDB.ReloadUser(userID)
		ginReplyError(c, "error updating user")
		return
	}
	c.JSON(http.StatusAccepted, h.b.writeDB.ReloadUser(userID))

	notifyCtx, cancel := context.WithTimeout(context.Background(), apiNotifyTimeout)
	defer cancel()
	h.b.dbNotifier.UserUpdated(notifyCtx, userID)
}

func (h *APIHandlers) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.b.RuntimeConfig())
}

// updateRuntimeConfig applies the non-nil fields of a
// [RuntimeConfigUpdate], persists them, and applies the new config to the
// running bot. Other instances are notified to reload.
//
// Responses:
//   - 202 Accepted: Returns the updated runtime configuration.
//   - 400 Bad Request: If the request payload is invalid.
//   - 500 Internal Server Error: If there is an error updating the configuration.
func (h *APIHandlers) updateRuntimeConfig(c *gin.Context) {
	logger := ginContextLogger(c)

	var updateRequest RuntimeConfigUpdate
	if err := c.ShouldBindJSON(&updateRequest); err != nil {
		logger.Error("bad payload", tint.Err(err))
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}
	if err := updateRequest.validate(); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	updated, statusCode, err := h.applyRuntimeConfigUpdate(c.Request.Context(), logger, updateRequest)
	if err != nil {
		logger.Error("error updating config", tint.Err(err))
		c.JSON(statusCode, httpError{Error: "error updating config"})
		return
	}

	c.JSON(http.StatusAccepted, updated)

	ctx, cancel := context.WithTimeout(context.Background(), apiNotifyTimeout)
	defer cancel()
	if !h.b.dbNotifier.ReloadRuntimeConfig(ctx) {
		logger.Error("error sending config update notification")
	}
}

func (h *APIHandlers) applyRuntimeConfigUpdate(
	ctx context.Context,
	logger *slog.Logger,
	updateRequest RuntimeConfigUpdate,
) (RuntimeConfig, int, error) {
	b := h.b
	b.cfgMu.Lock()
	defer b.cfgMu.Unlock()

	if b.runtimeConfig == nil {
		return RuntimeConfig{}, http.StatusServiceUnavailable, errors.New("runtime config not loaded")
	}
	previous := *b.runtimeConfig

	updateData, err := json.Marshal(updateRequest)
	if err != nil {
		return previous, http.StatusInternalServerError, fmt.Errorf("error marshaling update: %w", err)
	}
	var updates map[string]any
	if err = json.Unmarshal(updateData, &updates); err != nil {
		return previous, http.StatusInternalServerError, fmt.Errorf("error unmarshalling update: %w", err)
	}
	if len(updates) == 0 {
		return previous, http.StatusAccepted, nil
	}
	logger.InfoContext(ctx, "applying updates", "updates", updates)

	statusCode := http.StatusInternalServerError
	updated := &RuntimeConfig{}
	err = b.writeDB.Transaction(
		ctx,
		func(tx *gorm.DB) error {
			if e := tx.Model(&RuntimeConfig{}).Where("id = ?", previous.ID).Updates(updates).Error; e != nil {
				return e
			}
			if e := tx.First(updated, previous.ID).Error; e != nil {
				return e
			}
			if e := structValidator.Struct(updated); e != nil {
				statusCode = http.StatusBadRequest
				return e
			}
			return nil
		},
	)
	if err != nil {
		return previous, statusCode, err
	}

	switch {
	case previous.Paused && !updated.Paused:
		logger.Info("unpaused bot")
	case updated.Paused && !previous.Paused:
		logger.Warn("paused bot")
	}
	b.unsafeRefreshRuntimeConfig(previous, updated)
	return *updated, http.StatusAccepted, nil
}

// botQuit sends a stop signal to the bot(s), which shut down gracefully.
//
// Responses:
//   - 200 OK: If the signal was sent.
//   - 504 Gateway Timeout: If the signal couldn't be sent in time.
func (h *APIHandlers) botQuit(c *gin.Context) {
	log := ginContextLogger(c)
	log.Warn("sending stop signal")
	ctx, cancel := context.WithTimeout(c.Request.Context(), apiNotifyTimeout)
	defer cancel()

	if !h.b.dbNotifier.Stop(ctx) {
		log.Warn("timeout sending stop signal")
		c.JSON(http.StatusGatewayTimeout, httpError{Error: "timeout sending stop signal"})
		return
	}
	ginReplyMessage(c, "quitting")
}

// convert runs a unit conversion, the same as `/convert units`.
//
// Responses:
//   - 200 OK: Returns the conversion result.
//   - 400 Bad Request: If the payload, kind or amount are invalid.
//   - 422 Unprocessable Entity: If a unit isn't recognized. The body
//     carries the failure, with the kind's valid units.
func (h *APIHandlers) convert(c *gin.Context) {
	var req apiConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	kind, err := units.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}
	value, err := units.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	result, err := h.b.converter.Convert(
		units.Request{Kind: kind, Value: value, From: req.From, To: req.To},
	)
	if err != nil {
		ginContextLogger(c).Error("error converting units", tint.Err(err))
		ginReplyError(c, err.Error())
		return
	}

	resp := apiConvertResponse{Kind: kind.String(), Result: result}
	if !result.OK() {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	resp.Message = conversionMessage(result)
	c.JSON(http.StatusOK, resp)
}

// listUnits returns the unit catalog, for every kind or the one named by
// the `kind` query parameter.
func (h *APIHandlers) listUnits(c *gin.Context) {
	kinds := units.Kinds()
	if name := c.Query("kind"); name != "" {
		k, err := units.ParseKind(name)
		if err != nil {
			c.JSON(http.StatusNotFound, httpError{Error: err.Error()})
			return
		}
		kinds = []units.Kind{k}
	}

	catalog := make([]apiUnitKind, 0, len(kinds))
	for _, k := range kinds {
		q, err := units.Lookup(k)
		if err != nil {
			ginReplyError(c, err.Error())
			return
		}
		catalog = append(
			catalog,
			apiUnitKind{
				Kind:         k.String(),
				DisplayName:  k.DisplayName(),
				Emoji:        k.Emoji(),
				QuantityType: q.QuantityType(),
				ValidUnits:   q.ValidUnits(),
				Units:        q.Units(),
			},
		)
	}
	c.JSON(http.StatusOK, catalog)
}

// getSuggestions lists unit suggestions made from the "Suggest a Unit"
// modal, optionally filtered by kind
func (h *APIHandlers) getSuggestions(c *gin.Context) {
	var query GetSuggestionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}
	query.setDefaults()

	stmt := query.apply(h.b.db.WithContext(c.Request.Context()))
	if query.Kind != "" {
		k, err := units.ParseKind(query.Kind)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}
		stmt = stmt.Where("kind = ?", k.String())
	}

	var suggestions []UnitSuggestion
	if err := stmt.Find(&suggestions).Error; err != nil {
		ginContextLogger(c).Error("error getting suggestions", tint.Err(err))
		ginReplyError(c, "error getting suggestions")
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// Pagination represents the pagination parameters for API requests.
type Pagination struct {
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=100"`
	Order  Sort `form:"order" binding:"omitempty,oneof=asc desc"`
	Offset int  `form:"offset" binding:"omitempty,min=0"`
}

func (p *Pagination) setDefaults() {
	if p.Order == "" {
		p.Order = Ascending
	}
	if p.Limit == 0 {
		p.Limit = 25
	}
}

func (p Pagination) apply(db *gorm.DB) *gorm.DB {
	order := "id asc"
	if p.Order == Descending {
		order = "id desc"
	}
	return db.Limit(p.Limit).Offset(p.Offset).Order(order)
}

// GetUsersQuery represents the query parameters for fetching User records
type GetUsersQuery struct {
	Pagination
	IncludeStats bool `form:"include_stats" json:"include_stats"`
}

type GetSuggestionsQuery struct {
	Pagination
	Kind string `form:"kind" json:"kind"`
}

// Sort represents the sorting order for queries
type Sort string

type apiPatchUser struct {
	Ignored *bool `json:"ignored,omitempty" binding:"omitnil"`
}

type apiConvertRequest struct {
	Kind   string `json:"kind" binding:"required"`
	Amount string `json:"amount" binding:"required"`
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
}

type apiConvertResponse struct {
	Kind string `json:"kind"`
	units.Result

	// Message is the reply `/convert units` would send
	Message string `json:"message,omitempty"`
}

type apiUnitKind struct {
	Kind         string       `json:"kind"`
	DisplayName  string       `json:"display_name"`
	Emoji        string       `json:"emoji"`
	QuantityType string       `json:"quantity_type"`
	ValidUnits   string       `json:"valid_units"`
	Units        []units.Unit `json:"units"`
}

type userWithStats struct {
	User
	UserStats *UserStats `json:"stats,omitempty"`
}

type loggedInResponse struct {
	Username string `json:"username"`
}

type healthCheckResponse struct {
	Paused                  bool   `json:"paused"`
	DiscordGatewayConnected bool   `json:"discord_gateway_connected"`
	Uptime                  string `json:"uptime"`
	Version                 string `json:"version"`
}

type httpReply struct {
	Message string `json:"message"`
}

// httpError represents an error message returned to the client
type httpError struct {
	Error string `json:"error"`
}

type userLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type adminSetupPayload struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,eqfield=ConfirmPassword"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// setupResponse is the response for the setup status endpoint. Required is
// true until admin credentials have been set.
type setupResponse struct {
	Required bool `json:"required"`
}

// authMiddleware rejects requests without a logged-in session with
// 401 Unauthorized. While admin credentials haven't been set, every
// request is rejected.
func authMiddleware(b *Bob, store CookieStore, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if b.pendingSetup.Load() {
			logger.Warn("admin username and password not set")
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: "unauthorized"})
			return
		}

		session, err := store.Get(c.Request, sessionVarName)
		if err != nil || session == nil {
			logger.Error("error getting session", tint.Err(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: "unauthorized"})
			return
		}

		username, ok := session.Values[sessionVarField].(string)
		if !ok || username == "" {
			logger.Warn("username not found in session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: "unauthorized"})
			return
		}

		logger.Debug("got session", sessionVarField, username)
		c.Next()
	}
}

// requestIDMiddleware assigns a random request ID to each request, set on
// the context and the X-Request-ID response header.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := generateRandomHexString(32)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(xRequestIDHeader, id)
		c.Header(xRequestIDHeader, id)
		c.Next()
	}
}

// ginContextLogger returns the slog.Logger from the given gin context,
// or, if it doesn't exist, creates a logger with request details included,
// and sets the logger in the context so the next call to ginContextLogger
// will return the new logger.
func ginContextLogger(c *gin.Context) *slog.Logger {
	if logger, ok := c.Get(string(loggerContextKey)); ok {
		if requestLogger, isLogger := logger.(*slog.Logger); isLogger {
			return requestLogger
		}
	}
	return setGinContextLogger(c, slog.Default())
}

func setGinContextLogger(c *gin.Context, logger *slog.Logger) *slog.Logger {
	requestID, _ := c.Get(xRequestIDHeader)
	path := c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" {
		path = path + "?" + raw
	}

	requestLogger := logger.With(
		slog.Group(
			"request",
			"method", c.Request.Method,
			"path", path,
			"remote_addr", c.Request.RemoteAddr,
			"remote_ip", c.RemoteIP(),
			"user_agent", c.Request.UserAgent(),
			"referer", c.Request.Referer(),
		),
		slog.Any(xRequestIDHeader, requestID),
	)
	c.Set(string(loggerContextKey), requestLogger)
	return requestLogger
}

// ginLoggingMiddleware logs each request when it finishes, with its
// duration and response status. Private gin errors are logged at the
// error level.
func ginLoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestLogger := setGinContextLogger(c, logger)
		c.Next()
		latency := time.Since(start)

		msg := fmt.Sprintf("%s %s finished", c.Request.Method, c.Request.URL.Path)
		response := slog.Group(
			"response",
			"status_code", c.Writer.Status(),
			"body_size", c.Writer.Size(),
		)

		var errs []string
		for _, e := range c.Errors.ByType(gin.ErrorTypePrivate) {
			errs = append(errs, e.Error())
		}
		if len(errs) > 0 {
			requestLogger.Error(
				msg+" with errors",
				"duration", latency,
				"errors", strings.Join(errs, "; "),
				response,
			)
			return
		}
		requestLogger.Info(msg, "duration", latency, response)
	}
}

// ginReplyMessage sends a JSON response with a message,
// with HTTP status code 200, via the gin context.
func ginReplyMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, httpReply{Message: message})
}

// ginReplyError sends a JSON response with a message,
// with HTTP status code 500, via the gin context.
func ginReplyError(c *gin.Context, err string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, httpError{Error: err})
}

//nolint:gochecknoinits // gotta register the validators
func init() {
	structValidator.SetTagName("binding")
	structValidator.RegisterCustomTypeFunc(validateRandomAPIConfig, RandomAPIConfig{})
}
