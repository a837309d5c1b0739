package bob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
	"log/slog"
	"time"
)

var (
	columnUserID         = "id"
	columnUserIgnored    = "ignored"
	columnUserUsername   = "username"
	columnUserGlobalName = "global_name"
	columnUserLastSeen   = "last_seen"
)

// User is a record of a Discord user who has interacted with the bot.
// See: https://discord.com/developers/docs/resources/user
//
//nolint:lll // struct tags can't be split
type User struct {
	// ID is the Discord user ID
	ID string `json:"id" gorm:"primaryKey;unique;type:string"`

	// Username, not unique
	Username string `json:"username" gorm:"type:string"`

	// User's display name - for bots, the application name
	GlobalName string `json:"global_name" gorm:"type:string"`

	// Indicates this user is a Discord bot user. Bots are ignored.
	Bot bool `json:"bot" gorm:"type:bool"`

	// JSON content of the discord user object
	Content string `json:"content,omitempty" gorm:"type:string"`

	// If true, interactions from this user are acknowledged but not run
	Ignored bool `json:"ignored" gorm:"type:bool;default:false"`

	// LastSeen is the last time this user was seen in a Discord interaction
	LastSeen int64 `json:"last_seen" gorm:"column:last_seen"`

	ModelUnixTime
}

func NewUser(u discordgo.User) *User {
	content, err := json.Marshal(u)
	if err != nil {
		slog.Default().Warn("unable to marshal discord user", "user_id", u.ID, "error", err)
	}
	return &User{
		ID:         u.ID,
		Username:   u.Username,
		Ignored:    u.Bot,
		Content:    string(content),
		GlobalName: u.GlobalName,
		Bot:        u.Bot,
		LastSeen:   time.Now().UTC().UnixMilli(),
	}
}

func (u *User) String() string {
	return fmt.Sprintf("%s [%s]", u.Username, u.ID)
}

func (u *User) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String(columnUserID, u.ID),
		slog.String("username", u.Username),
		slog.String("global_name", u.GlobalName),
		slog.Bool("ignored", u.Ignored),
	)
}

// DisplayName returns the user's global name, falling back to their
// username if it isn't set.
func (u *User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// userChangedDiscordUsername reports whether the Discord user's username or
// global name differ from the stored record.
func (u *User) userChangedDiscordUsername(d discordgo.User) bool {
	return (d.Username != u.Username) || (d.GlobalName != u.GlobalName)
}

// getStats counts the user's interactions, quotes and unit suggestions.
// Partial results are returned alongside any errors.
func (u *User) getStats(ctx context.Context, db *gorm.DB) (UserStats, error) {
	s := UserStats{Commands: map[string]int{}}
	var errs []error

	var commands []struct {
		Command string
		Count   int
	}
	err := db.WithContext(ctx).Model(&InteractionLog{}).
		Select("command, count(*) as count").
		Where("user_id = ?", u.ID).
		Group("command").
		Scan(&commands).Error
	if err != nil {
		errs = append(errs, fmt.Errorf("error getting interaction stats: %w", err))
	}
	for _, c := range commands {
		s.Commands[c.Command] = c.Count
	}

	if err = db.WithContext(ctx).Model(&Quote{}).Where(
		"quoted_by_id = ?",
		u.ID,
	).Count(&s.Quotes).Error; err != nil {
		errs = append(errs, fmt.Errorf("error getting quote stats: %w", err))
	}

	if err = db.WithContext(ctx).Model(&UnitSuggestion{}).Where(
		"user_id = ?",
		u.ID,
	).Count(&s.UnitSuggestions).Error; err != nil {
		errs = append(errs, fmt.Errorf("error getting suggestion stats: %w", err))
	}

	return s, errors.Join(errs...)
}

type UserStats struct {
	Commands        map[string]int `json:"commands"`
	Quotes          int64          `json:"quotes"`
	UnitSuggestions int64          `json:"unit_suggestions"`
}
