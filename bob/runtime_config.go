package bob

import (
	"github.com/bwmarrin/discordgo"
	"log/slog"
)

var (
	columnRuntimeConfigAdminUsername                = "admin_username"
	columnRuntimeConfigAdminPassword                = "admin_password"
	columnRuntimeConfigDiscordNotificationChannelID = "discord_notification_channel_id"
	columnRuntimeConfigPaused                       = "paused"
)

// CommandOptions holds the settings passed to each InteractionHandler.
//
//nolint:lll // struct tags can't be split
type CommandOptions struct {
	// RecoverPanic determines whether the bot should recover from panics
	// while processing user commands
	RecoverPanic bool `json:"recover_panic" gorm:"not null;default:false"`

	// Error message to send to the user if an error is encountered during
	// their command execution, which prevents the command from finishing normally
	DiscordErrorMessage string `json:"discord_error_message" gorm:"type:string"`

	// If specified, the bot will send certain events to the specified channel,
	// such as when the bot connects.
	DiscordNotificationChannelID string `json:"discord_notification_channel_id" gorm:"type:string"`

	// Channel receiving command errors and, when LogCommandUsage is set,
	// every command invocation
	DiscordLogChannelID string `json:"discord_log_channel_id" gorm:"type:string"`

	// Channel receiving unit suggestions submitted from the
	// "Suggest a Unit" modal
	DiscordSuggestionChannelID string `json:"discord_suggestion_channel_id" gorm:"type:string"`

	LogCommandUsage bool `json:"log_command_usage" gorm:"not null;default:false"`
}

// RuntimeConfig stores settings that can be modified while the bot is
// running, and persisted across restarts (e.g., being paused).
//
//nolint:lll // struct tags can't be split
type RuntimeConfig struct {
	ModelUintID
	ModelUnixTime
	CommandOptions

	// Paused indicates whether the bot is currently paused. While paused,
	// commands are answered with [DefaultPausedMessage].
	Paused bool `json:"paused" gorm:"not null;default:false"`

	// Opens a discord gateway websocket connection.
	// If the bot receives slash commands via gateway, this is required.
	// If the bot receives commands via webhook, enabling this allows the
	// bot to appear online and set its status.
	DiscordGatewayEnabled bool `json:"discord_gateway_enabled" gorm:"not null;default:true"`

	// DiscordCustomStatus is the custom status message displayed for the bot on Discord.
	DiscordCustomStatus string `json:"discord_custom_status" gorm:"type:string" binding:"max=128"`

	// AdminUsername for the admin API
	AdminUsername string `json:"admin_username" gorm:"type:string" log:"[redacted]"`

	// AdminPassword stores the hashed password for the admin user
	AdminPassword string `json:"admin_password" gorm:"type:string" log:"[redacted]"`

	LogLevel               DBLogLevel `gorm:"default:INFO;type:string;check:log_level in ('INFO', 'WARN', 'ERROR', 'DEBUG')" json:"log_level" binding:"omitempty,oneof=INFO WARN ERROR DEBUG"`
	DiscordLogLevel        DBLogLevel `gorm:"default:INFO;type:string;check:discord_log_level in ('INFO', 'WARN', 'ERROR', 'DEBUG')" json:"discord_log_level" binding:"omitempty,oneof=INFO WARN ERROR DEBUG"`
	DiscordGoLogLevel      DBLogLevel `gorm:"default:INFO;column:discordgo_log_level;type:string;check:discordgo_log_level in ('INFO', 'WARN', 'ERROR', 'DEBUG')" json:"discordgo_log_level" binding:"omitempty,oneof=INFO WARN ERROR DEBUG"`
	DatabaseLogLevel       DBLogLevel `gorm:"default:INFO;type:string;check:database_log_level in ('INFO', 'WARN', 'ERROR', 'DEBUG')" json:"database_log_level" binding:"omitempty,oneof=INFO WARN ERROR DEBUG"`
	DiscordWebhookLogLevel DBLogLevel `gorm:"default:INFO;type:string;check:discord_webhook_log_level in ('INFO', 'WARN', 'ERROR', 'DEBUG')" json:"discord_webhook_log_level" binding:"omitempty,oneof=INFO WARN ERROR DEBUG"`
	APILogLevel            DBLogLevel `gorm:"default:INFO;type:string;check:api_log_level in ('INFO', 'WARN', 'ERROR', 'DEBUG')" json:"api_log_level" binding:"omitempty,oneof=INFO WARN ERROR DEBUG"`
	RandomAPILogLevel      DBLogLevel `gorm:"default:INFO;column:random_api_log_level;type:string;check:random_api_log_level in ('INFO', 'WARN', 'ERROR', 'DEBUG')" json:"random_api_log_level" binding:"omitempty,oneof=INFO WARN ERROR DEBUG"`
}

func (RuntimeConfig) TableName() string {
	return "config"
}

func (r RuntimeConfig) LogValue() slog.Value {
	return structToSlogValue(r)
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		CommandOptions: CommandOptions{
			RecoverPanic:        true,
			DiscordErrorMessage: DefaultDiscordErrorMessage,
		},
		DiscordGatewayEnabled:  true,
		DiscordCustomStatus:    DefaultDiscordCustomStatus,
		LogLevel:               DBLogLevelInfo,
		DiscordLogLevel:        DBLogLevelInfo,
		DiscordGoLogLevel:      DBLogLevelWarn,
		DatabaseLogLevel:       DBLogLevelInfo,
		DiscordWebhookLogLevel: DBLogLevelInfo,
		APILogLevel:            DBLogLevelInfo,
		RandomAPILogLevel:      DBLogLevelInfo,
	}
}

// RuntimeConfigUpdate is the payload accepted by the admin API to update
// RuntimeConfig. Nil fields are left unchanged.
//
//nolint:lll // can't break tags
type RuntimeConfigUpdate struct {
	Paused       *bool `json:"paused,omitempty"`
	RecoverPanic *bool `json:"recover_panic,omitempty"`

	DiscordGatewayEnabled        *bool   `json:"discord_gateway_enabled,omitempty"`
	DiscordCustomStatus          *string `json:"discord_custom_status,omitempty" binding:"omitnil,max=128"`
	DiscordErrorMessage          *string `json:"discord_error_message,omitempty" binding:"omitnil,min=1,max=2000"`
	DiscordNotificationChannelID *string `json:"discord_notification_channel_id,omitempty" binding:"omitnil,eq=|numeric"`
	DiscordLogChannelID          *string `json:"discord_log_channel_id,omitempty" binding:"omitnil,eq=|numeric"`
	DiscordSuggestionChannelID   *string `json:"discord_suggestion_channel_id,omitempty" binding:"omitnil,eq=|numeric"`
	LogCommandUsage              *bool   `json:"log_command_usage,omitempty"`

	LogLevel               *DBLogLevel `json:"log_level,omitempty" binding:"omitnil,oneof=INFO WARN ERROR DEBUG"`
	DiscordLogLevel        *DBLogLevel `json:"discord_log_level,omitempty" binding:"omitnil,oneof=INFO WARN ERROR DEBUG"`
	DiscordGoLogLevel      *DBLogLevel `json:"discordgo_log_level,omitempty" binding:"omitnil,oneof=INFO WARN ERROR DEBUG"`
	DatabaseLogLevel       *DBLogLevel `json:"database_log_level,omitempty" binding:"omitnil,oneof=INFO WARN ERROR DEBUG"`
	DiscordWebhookLogLevel *DBLogLevel `json:"discord_webhook_log_level,omitempty" binding:"omitnil,oneof=INFO WARN ERROR DEBUG"`
	APILogLevel            *DBLogLevel `json:"api_log_level,omitempty" binding:"omitnil,oneof=INFO WARN ERROR DEBUG"`
	RandomAPILogLevel      *DBLogLevel `json:"random_api_log_level,omitempty" binding:"omitnil,oneof=INFO WARN ERROR DEBUG"`
}

func (u RuntimeConfigUpdate) validate() error {
	return structValidator.Struct(u)
}

func getDiscordPresenceStatusUpdate(config RuntimeConfig) discordgo.GatewayStatusUpdate {
	if config.Paused {
		return discordgo.GatewayStatusUpdate{
			AFK:    true,
			Status: string(discordgo.StatusDoNotDisturb),
		}
	}
	return discordgo.GatewayStatusUpdate{Status: config.DiscordCustomStatus}
}
