package bob

import (
	"context"
	"errors"
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob/units"
	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

const (
	suggestUnitButtonLabel = "Suggest a Unit"
	suggestUnitModalTitle  = "Suggest a Unit"
	suggestUnitModalLabel  = "Please provide a brief description of the unit you would like to suggest."
	suggestUnitMaxLength   = 1000

	suggestUnitSuccessMessage = "✅ Suggestion made successfully!\n" +
		"- This will be manually reviewed as soon as possible.\n" +
		"- Thanks for the idea!"

	// suggestionEmbedColor is the color of suggestions posted to
	// [CommandOptions.DiscordSuggestionChannelID]
	suggestionEmbedColor = 2895667
)

// UnitSuggestion is a unit a user asked to have added, submitted from the
// modal opened by the "Suggest a Unit" button on an invalid unit reply.
//
//nolint:lll // struct tags can't be split
type UnitSuggestion struct {
	ModelUintID
	ModelUnixTime

	UserID    string `json:"user_id" gorm:"not null;index"`
	Username  string `json:"username" gorm:"type:string"`
	Kind      string `json:"kind" gorm:"type:string;index"`
	Content   string `json:"content" gorm:"type:string"`
	GuildID   string `json:"guild_id" gorm:"type:string"`
	ChannelID string `json:"channel_id" gorm:"type:string"`

	// MessageID is the message posted to the suggestion channel, if any
	MessageID string `json:"message_id" gorm:"type:string"`
}

// commandConvertUnits handles `/convert units`. Bad amounts and unknown
// units are answered ephemerally, an unknown kind is unexpected since the
// choice list comes from [units.Kinds].
func (b *Bob) commandConvertUnits(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	kind, err := units.ParseKind(optionString(options, "kind"))
	if err != nil {
		return err
	}

	value, err := units.ParseAmount(optionString(options, "amount"))
	if err != nil {
		handler.Logger().InfoContext(ctx, "invalid amount", tint.Err(err))
		return handler.Respond(
			ctx,
			ephemeralResponse(
				"❌ Invalid amount specified.\n- Please provide a numeric value.\n- "+
					b.mistakeNotice(),
			),
		)
	}

	fromUnit := optionString(options, "from-unit")
	toUnit := optionString(options, "to-unit")

	result, err := b.converter.Convert(
		units.Request{Kind: kind, Value: value, From: fromUnit, To: toUnit},
	)
	if err != nil {
		return err
	}

	if !result.OK() {
		handler.Logger().InfoContext(
			ctx,
			"invalid unit",
			"kind", kind.String(),
			"unit", result.Failure.Unit,
		)
		return handler.Respond(ctx, b.invalidUnitResponse(kind, result.Failure.ValidUnits))
	}

	return handler.Respond(ctx, messageResponse(conversionMessage(result)))
}

func conversionMessage(r units.Result) string {
	return fmt.Sprintf(
		"%s `%s` **%s** is equal to `%s` **%s**.",
		r.Kind.Emoji(),
		units.FormatValue(r.Value),
		r.From,
		units.FormatValue(r.Converted),
		r.To,
	)
}

func (b *Bob) invalidUnitResponse(
	kind units.Kind,
	validUnits string,
) *discordgo.InteractionResponse {
	notice := "\n- " + b.mistakeNotice()
	prefix := "❌ Invalid unit specified. Please use a valid unit for the " +
		"specified quantity type like:\n- "
	validUnits = truncate(
		validUnits,
		discordMaxMessageLength-len([]rune(prefix))-len([]rune(notice)),
	)

	resp := ephemeralResponse(prefix + validUnits + notice)
	resp.Data.Components = suggestUnitComponents(kind)
	return resp
}

func suggestUnitComponents(kind units.Kind) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    suggestUnitButtonLabel,
					Style:    discordgo.PrimaryButton,
					CustomID: componentCustomID(componentSuggestUnit, kind.String()),
					Emoji:    &discordgo.ComponentEmoji{Name: kind.Emoji()},
				},
			},
		},
	}
}

// componentSuggestUnit opens the suggestion modal for the kind named in
// the button's custom ID.
func (*Bob) componentSuggestUnit(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	arg string,
) error {
	kind, err := units.ParseKind(arg)
	if err != nil {
		return err
	}
	return handler.Respond(
		ctx,
		discordModalResponse(
			componentCustomID(modalSuggestUnit, kind.String()),
			modalSuggestUnitInput,
			suggestUnitModalTitle,
			suggestUnitModalLabel,
			fmt.Sprintf("A %s unit you'd like Bob to know", kind.String()),
			1,
			suggestUnitMaxLength,
		),
	)
}

// modalSuggestUnit stores the submitted suggestion, posts it to the
// suggestion channel, and replaces the invalid unit reply with a
// confirmation.
func (b *Bob) modalSuggestUnit(
	ctx context.Context,
	handler InteractionHandler,
	u *User,
	arg string,
) error {
	logger := handler.Logger()
	kind, err := units.ParseKind(arg)
	if err != nil {
		return err
	}

	i := handler.GetInteraction()
	textInput := getTextInputFromInteraction(i.ModalSubmitData(), modalSuggestUnitInput)
	if textInput == nil {
		return errors.New("suggestion modal submitted without text input")
	}

	if err = handler.Respond(
		ctx,
		&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		},
	); err != nil {
		return err
	}

	suggestion := &UnitSuggestion{
		UserID:    u.ID,
		Username:  u.Username,
		Kind:      kind.String(),
		Content:   textInput.Value,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	}
	if _, err = b.writeDB.Create(ctx, suggestion); err != nil {
		return fmt.Errorf("error saving suggestion: %w", err)
	}
	logger.InfoContext(ctx, "saved unit suggestion", "suggestion_id", suggestion.ID)

	channelID := handler.Config().DiscordSuggestionChannelID
	if channelID == "" {
		logger.WarnContext(ctx, "no suggestion channel set, only saved suggestion")
	} else {
		msg, sendErr := b.discord.session.ChannelMessageSendComplex(
			channelID,
			&discordgo.MessageSend{
				Embeds: []*discordgo.MessageEmbed{suggestionEmbed(suggestion, u)},
			},
			discordgo.WithContext(ctx),
		)
		if sendErr != nil {
			logger.ErrorContext(ctx, "error posting suggestion", tint.Err(sendErr))
		} else if msg != nil {
			if _, updateErr := b.writeDB.Update(
				ctx, suggestion, "message_id", msg.ID,
			); updateErr != nil {
				logger.ErrorContext(ctx, "error saving suggestion message ID", tint.Err(updateErr))
			}
		}
	}

	content := suggestUnitSuccessMessage
	_, err = handler.Edit(
		ctx,
		&discordgo.WebhookEdit{
			Content:    &content,
			Components: &[]discordgo.MessageComponent{},
		},
	)
	return err
}

func suggestionEmbed(s *UnitSuggestion, u *User) *discordgo.MessageEmbed {
	kind, _ := units.ParseKind(s.Kind)
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s unit suggestion", kind.Emoji(), s.Kind),
		Description: truncate(s.Content, discordMaxEmbedDescriptionLength),
		Color:       suggestionEmbedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Suggested by %s (%s) | #%d", u.DisplayName(), u.ID, s.ID),
		},
	}
}

// getTextInputFromInteraction returns the modal's text input with the
// given custom ID
func getTextInputFromInteraction(
	modalData discordgo.ModalSubmitInteractionData,
	customID string,
) *discordgo.TextInput {
	for _, component := range modalData.Components {
		actionsRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rowComponent := range actionsRow.Components {
			textInput, isInput := rowComponent.(*discordgo.TextInput)
			if isInput && textInput.CustomID == customID {
				return textInput
			}
		}
	}
	return nil
}
