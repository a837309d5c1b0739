package cmd

import (
	"context"
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
)

var (
	cfg        = bob.DefaultConfig()
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "bob [flags]",
	Short: "Bob, a Discord bot for unit conversions and more",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = bob.DefaultConfig()
		return viper.Unmarshal(cfg, viper.DecodeHook(configDecodeHook()))
	},
}

func configDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(" "),
		LevelToStringHookFunc(),
	)
}

func getLogLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case slog.LevelDebug.String():
		return slog.LevelDebug, nil
	case slog.LevelInfo.String():
		return slog.LevelInfo, nil
	case slog.LevelWarn.String():
		return slog.LevelWarn, nil
	case slog.LevelError.String():
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// LevelToStringHookFunc decodes level names (DEBUG, INFO, WARN, ERROR)
// into *slog.LevelVar fields
func LevelToStringHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t.Kind() != reflect.Ptr {
			return data, nil
		}
		if t.Elem() != reflect.TypeOf(slog.LevelVar{}) {
			return data, nil
		}
		lvl, err := getLogLevel(data.(string))
		if err != nil {
			return nil, err
		}
		lvlVar := &slog.LevelVar{}
		lvlVar.Set(lvl)
		return lvlVar, nil
	}
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	rootCmd.SetContext(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(
		signals,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer func() {
		signal.Stop(signals)
		cancel()
	}()
	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

func initConfig() {
	if configFile == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found")
		}
	} else {
		fmt.Println("loading env from file", configFile)
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("unable to load %s: %v", configFile, err)
		}
	}

	viper.SetDefault("database", bob.DefaultDatabase)
	viper.SetDefault("database_type", bob.DefaultDatabaseType)
	viper.SetDefault("database_slow_threshold", bob.DefaultDatabaseSlowThreshold)
	viper.SetDefault("database_log_level", bob.DefaultDatabaseLogLevel.String())
	viper.SetDefault("development", false)

	viper.SetDefault("runtime_config_ttl", bob.DefaultRuntimeConfigTTL)
	viper.SetDefault("log_level", bob.DefaultLogLevel.String())
	viper.SetDefault("startup_timeout", bob.DefaultStartupTimeout)
	viper.SetDefault("shutdown_timeout", bob.DefaultShutdownTimeout)

	// Discord config
	viper.SetDefault("discord.token", "")
	viper.SetDefault("discord.application_id", "")
	viper.SetDefault("discord.guild_id", "")
	viper.SetDefault("discord.log_level", bob.DefaultDiscordLogLevel.String())
	viper.SetDefault("discord.discordgo_log_level", bob.DefaultDiscordgoLogLevel.String())
	viper.SetDefault("discord.gateway_intents", bob.DefaultDiscordGatewayIntent)
	viper.SetDefault("discord.startup_message", bob.DefaultDiscordStartupMessage)
	viper.SetDefault("discord.support_server_url", bob.DefaultSupportServerURL)

	// Discord: Webhook server
	viper.SetDefault("discord.webhook_server.enabled", false)
	viper.SetDefault("discord.webhook_server.listen", bob.DefaultDiscordWebhookServerListen)
	viper.SetDefault("discord.webhook_server.listen_network", "tcp")
	viper.SetDefault("discord.webhook_server.public_key", "")
	viper.SetDefault("discord.webhook_server.read_timeout", bob.DefaultReadTimeout)
	viper.SetDefault("discord.webhook_server.read_header_timeout", bob.DefaultReadHeaderTimeout)
	viper.SetDefault("discord.webhook_server.write_timeout", bob.DefaultWriteTimeout)
	viper.SetDefault("discord.webhook_server.idle_timeout", bob.DefaultIdleTimeout)
	viper.SetDefault(
		"discord.webhook_server.log_level",
		bob.DefaultDiscordWebhookLogLevel.String(),
	)
	viper.SetDefault(
		"discord.webhook_server.ssl.tls_min_version",
		bob.DefaultDiscordWebhookServerTLSminVersion,
	)

	fatalErr := func(err error) {
		if err != nil {
			log.Fatalf("error: %v", err)
		}
	}

	fatalErr(viper.BindEnv("discord.webhook_server.ssl.cert_file"))
	fatalErr(viper.BindEnv("discord.webhook_server.ssl.key_file"))

	// API config
	viper.SetDefault("api.listen", bob.DefaultAPIListen)
	viper.SetDefault("api.listen_network", "tcp")
	viper.SetDefault("api.secret", "")
	viper.SetDefault("api.log_level", bob.DefaultAPILogLevel.String())
	viper.SetDefault("api.development", false)
	viper.SetDefault("api.session_max_age", bob.DefaultAPISessionMaxAge)
	viper.SetDefault("api.read_timeout", bob.DefaultReadTimeout)
	viper.SetDefault("api.read_header_timeout", bob.DefaultReadHeaderTimeout)
	viper.SetDefault("api.write_timeout", bob.DefaultWriteTimeout)
	viper.SetDefault("api.idle_timeout", bob.DefaultIdleTimeout)
	viper.SetDefault("api.ssl.tls_min_version", bob.DefaultUITLSMinVersion)

	fatalErr(viper.BindEnv("api.ssl.cert_file"))
	fatalErr(viper.BindEnv("api.ssl.key_file"))

	// API: CORS config
	viper.SetDefault("api.cors.allow_headers", bob.DefaultCORSAllowHeaders)
	viper.SetDefault("api.cors.allow_methods", bob.DefaultCORSAllowMethods)
	viper.SetDefault("api.cors.expose_headers", bob.DefaultCORSExposeHeaders)
	viper.SetDefault("api.cors.allow_origins", []string{})
	viper.SetDefault("api.cors.max_age", bob.DefaultCORSMaxAge)
	viper.SetDefault("api.cors.allow_credentials", bob.DefaultAPICORSAllowCredentials)

	// Third-party APIs used by /random
	viper.SetDefault("random_api.log_level", bob.DefaultRandomAPILogLevel.String())
	viper.SetDefault("random_api.timeout", bob.DefaultRandomAPITimeout)
	viper.SetDefault("random_api.retry_max", bob.DefaultRandomAPIRetryMax)
	viper.SetDefault("random_api.retry_wait_min", bob.DefaultRandomAPIRetryWaitMin)
	viper.SetDefault("random_api.retry_wait_max", bob.DefaultRandomAPIRetryWaitMax)
	viper.SetDefault("random_api.requests_per_second", bob.DefaultRandomAPIRequestsPerSecond)
	viper.SetDefault("random_api.burst", bob.DefaultRandomAPIBurst)
	viper.SetDefault("random_api.breaker_max_failures", bob.DefaultRandomAPIBreakerMaxFailures)
	viper.SetDefault("random_api.breaker_timeout", bob.DefaultRandomAPIBreakerTimeout)
	viper.SetDefault("random_api.user_agent", bob.DefaultRandomAPIUserAgent)
	viper.SetDefault("random_api.quote_url", bob.DefaultQuoteAPIURL)
	viper.SetDefault("random_api.fact_url", bob.DefaultFactAPIURL)
	viper.SetDefault("random_api.dog_url", bob.DefaultDogAPIURL)
	viper.SetDefault("random_api.advice_url", bob.DefaultAdviceAPIURL)
	viper.SetDefault("random_api.dad_joke_url", bob.DefaultDadJokeAPIURL)

	envPrefix := os.Getenv(bob.EnvvarSetEnvPrefix)
	if envPrefix == "" {
		envPrefix = bob.DefaultEnvPrefix
	}
	viper.SetEnvPrefix(envPrefix)

	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()
}

//nolint:gochecknoinits // cobra setup
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"Env file to load settings from (defaults to .env)",
	)
}
