package bob

import (
	"context"
	"errors"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	quoteEmbedColor    = 2895667
	quoteMadeMessage   = "🖊️ Quote made."
	columnQuoteMessage = "message_id"
)

var errNotInGuild = errors.New("command used outside of a guild")

// Server holds per-guild settings
//
//nolint:lll // struct tags can't be split
type Server struct {
	GuildID string `json:"guild_id" gorm:"primaryKey;type:string"`

	// QuoteChannelID is where /quote and the Quote message command post
	// quotes. Set with `/quote channel`.
	QuoteChannelID string `json:"quote_channel_id" gorm:"type:string"`

	ModelUnixTime
}

// Quote is a quote posted to a guild's quote channel.
//
//nolint:lll // struct tags can't be split
type Quote struct {
	ModelUintID
	ModelUnixTime

	GuildID   string `json:"guild_id" gorm:"not null;index"`
	ChannelID string `json:"channel_id" gorm:"type:string"`
	MessageID string `json:"message_id" gorm:"type:string"`

	// SourceMessageID is the quoted message, for the Quote message command
	SourceMessageID string `json:"source_message_id" gorm:"type:string"`

	Content      string `json:"content" gorm:"type:string"`
	QuotedUserID string `json:"quoted_user_id" gorm:"type:string;index"`
	QuotedByID   string `json:"quoted_by_id" gorm:"type:string;index"`

	// Tags is a comma-separated list
	Tags string `json:"tags" gorm:"type:string"`
}

func (b *Bob) getServer(ctx context.Context, guildID string) (*Server, error) {
	var server Server
	rv := b.db.WithContext(ctx).Where("guild_id = ?", guildID).Limit(1).Find(&server)
	if rv.Error != nil {
		return nil, rv.Error
	}
	if rv.RowsAffected == 0 {
		return &Server{GuildID: guildID}, nil
	}
	return &server, nil
}

func (b *Bob) quoteChannelMissingMessage() string {
	return "❌ Use `/quote channel` first (a quote channel is not set in this server).\n- " +
		b.joinNotice()
}

func quoteTooLongMessage(n int) string {
	return fmt.Sprintf(
		"❌ The quote *cannot* be made because it contains **%d** characters.\n"+
			"- Try having fewer characters.\n"+
			"- Discord has a limit of **%d** characters in embed descriptions.",
		n,
		discordMaxEmbedDescriptionLength,
	)
}

// formatQuote wraps the text in quotation marks, unless it already starts
// or ends with one
func formatQuote(text string) string {
	if strings.HasPrefix(text, `"`) || strings.HasSuffix(text, `"`) {
		return text
	}
	return `"` + text + `"`
}

// quoteEmbed builds the embed posted to the quote channel. Quotes short
// enough for an embed title use it, longer ones go in the description.
// The returned int is the description length, which may exceed Discord's
// limit.
func quoteEmbed(
	text string,
	quotedUserID string,
	at time.Time,
	footer string,
) (*discordgo.MessageEmbed, int) {
	formatted := formatQuote(text)
	attribution := fmt.Sprintf("-<@%s>, <t:%d:R>", quotedUserID, at.Unix())

	embed := &discordgo.MessageEmbed{
		Color:  quoteEmbedColor,
		Footer: &discordgo.MessageEmbedFooter{Text: footer},
	}
	if utf8.RuneCountInString(formatted) <= discordMaxEmbedTitleLength {
		embed.Title = formatted
		embed.Description = attribution
	} else {
		embed.Description = fmt.Sprintf("**%s**\n%s", formatted, attribution)
	}
	return embed, utf8.RuneCountInString(embed.Description)
}

func quoteFooter(tags []string, quotedBy string) string {
	footer := "Quoted by " + quotedBy
	if len(tags) > 0 {
		footer = "Tag(s): " + strings.Join(tags, ", ") + " | " + footer
	}
	return footer
}

// postQuote answers the interaction, then posts the quote to the guild's
// quote channel and saves it.
func (b *Bob) postQuote(
	ctx context.Context,
	handler InteractionHandler,
	server *Server,
	quote *Quote,
	embed *discordgo.MessageEmbed,
) error {
	if err := handler.Respond(ctx, ephemeralResponse(quoteMadeMessage)); err != nil {
		return err
	}

	msg, err := b.discord.session.ChannelMessageSendComplex(
		server.QuoteChannelID,
		&discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}},
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("error posting quote: %w", err)
	}

	quote.ChannelID = server.QuoteChannelID
	if msg != nil {
		quote.MessageID = msg.ID
	}
	if _, err = b.writeDB.Create(ctx, quote); err != nil {
		return fmt.Errorf("error saving quote: %w", err)
	}
	handler.Logger().InfoContext(ctx, "quote made", "quote_id", quote.ID, columnQuoteMessage, quote.MessageID)
	return nil
}

func (b *Bob) commandQuoteNew(
	ctx context.Context,
	handler InteractionHandler,
	u *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	i := handler.GetInteraction()
	if i.GuildID == "" {
		return errNotInGuild
	}

	server, err := b.getServer(ctx, i.GuildID)
	if err != nil {
		return err
	}
	if server.QuoteChannelID == "" {
		return handler.Respond(ctx, ephemeralResponse(b.quoteChannelMissingMessage()))
	}

	text := optionString(options, "quote")
	if n := utf8.RuneCountInString(text); n > discordMaxEmbedDescriptionLength {
		return handler.Respond(ctx, ephemeralResponse(quoteTooLongMessage(n)))
	}

	var tags []string
	for n := 1; n <= 3; n++ {
		if tag := strings.TrimSpace(optionString(options, fmt.Sprintf("tag%d", n))); tag != "" {
			tags = append(tags, tag)
		}
	}

	quotedUserID := optionID(options, "user")
	embed, descLength := quoteEmbed(text, quotedUserID, b.now(), quoteFooter(tags, u.DisplayName()))
	if descLength > discordMaxEmbedDescriptionLength {
		return handler.Respond(ctx, ephemeralResponse(quoteTooLongMessage(descLength)))
	}

	return b.postQuote(
		ctx,
		handler,
		server,
		&Quote{
			GuildID:      i.GuildID,
			Content:      text,
			QuotedUserID: quotedUserID,
			QuotedByID:   u.ID,
			Tags:         strings.Join(tags, ","),
		},
		embed,
	)
}

// commandMessageQuote handles the "Quote" message command, quoting the
// target message's author.
func (b *Bob) commandMessageQuote(
	ctx context.Context,
	handler InteractionHandler,
	u *User,
	_ map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	i := handler.GetInteraction()
	if i.GuildID == "" {
		return errNotInGuild
	}

	server, err := b.getServer(ctx, i.GuildID)
	if err != nil {
		return err
	}
	if server.QuoteChannelID == "" {
		return handler.Respond(ctx, ephemeralResponse(b.quoteChannelMissingMessage()))
	}

	data := i.ApplicationCommandData()
	var msg *discordgo.Message
	if data.Resolved != nil {
		msg = data.Resolved.Messages[data.TargetID]
	}
	if msg == nil || msg.Content == "" || msg.Author == nil {
		return handler.Respond(
			ctx,
			ephemeralResponse(
				"❌ The message you tried quoting is invalid. \n- Embeds can't be quoted. \n- "+
					b.joinNotice(),
			),
		)
	}

	if n := utf8.RuneCountInString(msg.Content); n > discordMaxEmbedDescriptionLength {
		return handler.Respond(ctx, ephemeralResponse(quoteTooLongMessage(n)))
	}

	embed, descLength := quoteEmbed(msg.Content, msg.Author.ID, b.now(), quoteFooter(nil, u.DisplayName()))
	if descLength > discordMaxEmbedDescriptionLength {
		return handler.Respond(ctx, ephemeralResponse(quoteTooLongMessage(descLength)))
	}

	return b.postQuote(
		ctx,
		handler,
		server,
		&Quote{
			GuildID:         i.GuildID,
			SourceMessageID: msg.ID,
			Content:         msg.Content,
			QuotedUserID:    msg.Author.ID,
			QuotedByID:      u.ID,
		},
		embed,
	)
}

// commandQuoteChannel sets the guild's quote channel. The invoking member
// needs Manage Channels, and the bot needs to be able to view and send
// messages in the channel.
func (b *Bob) commandQuoteChannel(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	i := handler.GetInteraction()
	if i.GuildID == "" || i.Member == nil {
		return errNotInGuild
	}

	if i.Member.Permissions&discordgo.PermissionManageChannels == 0 {
		return handler.Respond(
			ctx,
			ephemeralResponse(
				"❌ Ask an admin or mod to configure this for you.\n"+
					"- Permission(s) needed: **Manage Channels**\n- "+b.joinNotice(),
			),
		)
	}

	channelID := optionID(options, "channel")
	data := i.ApplicationCommandData()
	var channel *discordgo.Channel
	if data.Resolved != nil {
		channel = data.Resolved.Channels[channelID]
	}
	if channel == nil || channel.Type != discordgo.ChannelTypeGuildText {
		return handler.Respond(
			ctx,
			ephemeralResponse(
				fmt.Sprintf(
					"❌ The channel <#%s> is not a text channel\n- %s",
					channelID,
					b.joinNotice(),
				),
			),
		)
	}

	perms, err := b.discord.session.UserChannelPermissions(
		b.config.Discord.ApplicationID,
		channelID,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		handler.Logger().WarnContext(ctx, "unable to get channel permissions", "error", err)
	}
	required := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages)
	if err != nil || perms&required != required {
		return handler.Respond(
			ctx,
			ephemeralResponse(
				fmt.Sprintf(
					"❌ Bob either does not have permission to view *or* send messages in the channel <#%s>\n- %s",
					channelID,
					b.joinNotice(),
				),
			),
		)
	}

	if err = handler.Respond(ctx, deferredResponse(discordgo.MessageFlagsEphemeral)); err != nil {
		return err
	}

	server, err := b.getServer(ctx, i.GuildID)
	if err != nil {
		return err
	}
	server.QuoteChannelID = channelID
	if _, err = b.writeDB.Save(ctx, server); err != nil {
		return fmt.Errorf("error saving quote channel: %w", err)
	}

	content := fmt.Sprintf("✅ <#%s> is now the quote channel for the server.", channelID)
	_, err = handler.Edit(ctx, &discordgo.WebhookEdit{Content: &content})
	return err
}
