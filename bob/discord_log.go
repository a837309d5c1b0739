package bob

import (
	"context"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	interactionLogTimeFormat = "02/01. 15:04:05"
	interactionLogTooLong    = " | **ERR TOO LONG**"
	bytesPerMegabyte         = 1024 * 1024
)

// interactionLocation describes where an interaction was used, for the
// log channel
func interactionLocation(i *discordgo.InteractionCreate) string {
	if i.GuildID == "" || i.Context == discordgo.InteractionContextBotDM {
		return "a DM"
	}
	if i.Context == discordgo.InteractionContextPrivateChannel {
		return "a private channel"
	}
	return "Guild " + i.GuildID
}

// interactionUsage renders the invoked command the way it was typed, ex:
// `/convert units kind: Length amount: 5 from-unit: m to-unit: ft`.
// Components and modals are shown by custom ID.
func interactionUsage(i *discordgo.InteractionCreate) string {
	if i.Type != discordgo.InteractionApplicationCommand {
		return interactionCommandName(i)
	}
	data := i.ApplicationCommandData()

	var sb strings.Builder
	sb.WriteString("/" + data.Name)
	options := data.Options
	for len(options) == 1 && isSubcommandOption(options[0]) {
		sb.WriteString(" " + options[0].Name)
		options = options[0].Options
	}
	for _, opt := range options {
		fmt.Fprintf(&sb, " %s: %v", opt.Name, opt.Value)
	}
	return sb.String()
}

func isSubcommandOption(opt *discordgo.ApplicationCommandInteractionDataOption) bool {
	return opt.Type == discordgo.ApplicationCommandOptionSubCommand ||
		opt.Type == discordgo.ApplicationCommandOptionSubCommandGroup
}

func interactionCommandType(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().CommandType {
		case discordgo.MessageApplicationCommand:
			return "Message"
		case discordgo.UserApplicationCommand:
			return "User"
		default:
			return "Slash"
		}
	case discordgo.InteractionMessageComponent:
		return "Component"
	case discordgo.InteractionModalSubmit:
		return "Modal"
	default:
		return i.Type.String()
	}
}

// interactionLogMessage builds the log channel entry for an interaction.
// If the entry would exceed Discord's message limit, the error text is
// cut short and the entry is marked.
func interactionLogMessage(
	i *discordgo.InteractionCreate,
	u *User,
	at time.Time,
	memoryMB uint64,
	goroutines int,
	err error,
) string {
	userName, userID := "", ""
	if u != nil {
		userName, userID = u.DisplayName(), u.ID
	}
	header := fmt.Sprintf(
		"`%s | RAM: %d MB | Goroutines: %d | Location: %s | User: %s, %s`\n```%s```",
		at.Format(interactionLogTimeFormat),
		memoryMB,
		goroutines,
		interactionLocation(i),
		userName,
		userID,
		interactionUsage(i),
	)
	footer := fmt.Sprintf("Command type: **%s**", interactionCommandType(i))

	if err == nil {
		return header + footer
	}

	errText := err.Error()
	format := func(s string) string {
		return header + "Error: ```cs\n" + s + "```" + footer
	}
	msg := format(errText)
	if n := utf8.RuneCountInString(msg); n > discordMaxMessageLength {
		over := n + utf8.RuneCountInString(interactionLogTooLong) - discordMaxMessageLength
		errRunes := []rune(errText)
		keep := max(len(errRunes)-over, 0)
		msg = format(string(errRunes[:keep])) + interactionLogTooLong
	}
	return msg
}

// sendInteractionLog posts an interaction to the runtime config's log
// channel, if one is set. Used for unexpected errors and, with
// [CommandOptions.LogCommandUsage], every command.
func (b *Bob) sendInteractionLog(
	ctx context.Context,
	i *discordgo.InteractionCreate,
	u *User,
	err error,
) {
	channelID := b.RuntimeConfig().DiscordLogChannelID
	if channelID == "" || b.discord == nil || b.discord.session == nil {
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	msg := interactionLogMessage(
		i,
		u,
		b.now(),
		mem.Alloc/bytesPerMegabyte,
		runtime.NumGoroutine(),
		err,
	)
	if sendErr := b.discord.channelMessageSend(
		channelID,
		msg,
		discordgo.WithContext(ctx),
	); sendErr != nil {
		_, logger := b.getLogger(ctx)
		logger.ErrorContext(
			ctx,
			"error sending interaction log",
			"channel_id", channelID,
			tint.Err(sendErr),
		)
	}
}
