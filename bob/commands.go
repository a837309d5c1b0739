package bob

import (
	"context"
	"errors"
	"fmt"
	"github.com/Halsjsko/BobTheBot/bob/units"
	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
	"strings"
	"time"
)

const (
	commandConvert          = "convert"
	commandConvertUnits     = "units"
	commandConvertTimezones = "timezones"

	commandRandom         = "random"
	commandRandomDiceRoll = "dice-roll"
	commandRandomDate     = "date"
	commandRandom8Ball    = "8ball"
	commandRandomChoose   = "choose"
	commandRandomColor    = "color"
	commandRandomQuote    = "quote"
	commandRandomCoinToss = "coin-toss"
	commandRandomFact     = "fact"
	commandRandomDog      = "dog"
	commandRandomAdvice   = "advice"
	commandRandomDadJoke  = "dad-joke"

	commandQuote        = "quote"
	commandQuoteNew     = "new"
	commandQuoteChannel = "channel"
	commandMessageQuote = "Quote"

	commandFonts = "fonts"
	commandShip  = "ship"

	componentSuggestUnit  = "suggestUnit"
	modalSuggestUnit      = "suggestUnitModal"
	modalSuggestUnitInput = "content"
)

// errUnknownInteraction is returned for commands, components and modals
// with no registered handler, which usually means registered commands are
// out of date.
var errUnknownInteraction = errors.New("unknown interaction")

// interactionFunc runs a single resolved interaction.
type interactionFunc func(ctx context.Context, handler InteractionHandler, u *User) error

// commandHandlerFunc handles a slash or message command, receiving the
// options of the innermost subcommand.
type commandHandlerFunc func(
	b *Bob,
	ctx context.Context,
	handler InteractionHandler,
	u *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error

// customIDHandlerFunc handles a component or modal, receiving the part of
// the custom ID after the prefix (see customIDFormat).
type customIDHandlerFunc func(
	b *Bob,
	ctx context.Context,
	handler InteractionHandler,
	u *User,
	arg string,
) error

var commandHandlers = map[string]commandHandlerFunc{
	commandKey(commandConvert, commandConvertUnits):     (*Bob).commandConvertUnits,
	commandKey(commandConvert, commandConvertTimezones): (*Bob).commandConvertTimezones,

	commandKey(commandRandom, commandRandomDiceRoll): (*Bob).commandRandomDiceRoll,
	commandKey(commandRandom, commandRandomDate):     (*Bob).commandRandomDate,
	commandKey(commandRandom, commandRandom8Ball):    (*Bob).commandRandom8Ball,
	commandKey(commandRandom, commandRandomChoose):   (*Bob).commandRandomChoose,
	commandKey(commandRandom, commandRandomColor):    (*Bob).commandRandomColor,
	commandKey(commandRandom, commandRandomQuote):    (*Bob).commandRandomQuote,
	commandKey(commandRandom, commandRandomCoinToss): (*Bob).commandRandomCoinToss,
	commandKey(commandRandom, commandRandomFact):     (*Bob).commandRandomFact,
	commandKey(commandRandom, commandRandomDog):      (*Bob).commandRandomDog,
	commandKey(commandRandom, commandRandomAdvice):   (*Bob).commandRandomAdvice,
	commandKey(commandRandom, commandRandomDadJoke):  (*Bob).commandRandomDadJoke,

	commandKey(commandQuote, commandQuoteNew):     (*Bob).commandQuoteNew,
	commandKey(commandQuote, commandQuoteChannel): (*Bob).commandQuoteChannel,
	commandMessageQuote:                           (*Bob).commandMessageQuote,

	commandFonts: (*Bob).commandFonts,
	commandShip:  (*Bob).commandShip,
}

var componentHandlers = map[string]customIDHandlerFunc{
	componentSuggestUnit: (*Bob).componentSuggestUnit,
}

var modalHandlers = map[string]customIDHandlerFunc{
	modalSuggestUnit: (*Bob).modalSuggestUnit,
}

// commandKey joins a command name with its subcommand names, like
// "convert units".
func commandKey(names ...string) string {
	return strings.Join(names, " ")
}

// resolveCommand walks subcommand groups and subcommands down to the
// options of the command that was actually invoked.
func resolveCommand(data discordgo.ApplicationCommandInteractionData) (
	string,
	[]*discordgo.ApplicationCommandInteractionDataOption,
) {
	names := []string{data.Name}
	options := data.Options
	for len(options) == 1 {
		opt := options[0]
		if opt.Type != discordgo.ApplicationCommandOptionSubCommand &&
			opt.Type != discordgo.ApplicationCommandOptionSubCommandGroup {
			break
		}
		names = append(names, opt.Name)
		options = opt.Options
	}
	return commandKey(names...), options
}

func componentCustomID(prefix string, arg string) string {
	return fmt.Sprintf(customIDFormat, prefix, arg)
}

func parseCustomID(customID string) (prefix string, arg string) {
	prefix, arg, _ = strings.Cut(customID, ":")
	return prefix, arg
}

// resolveInteraction returns the handler for the interaction, along with
// the name it was resolved by.
func (b *Bob) resolveInteraction(i *discordgo.InteractionCreate) (
	string,
	interactionFunc,
	error,
) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		key, options := resolveCommand(i.ApplicationCommandData())
		h, ok := commandHandlers[key]
		if !ok {
			return key, nil, fmt.Errorf("%w: command %q", errUnknownInteraction, key)
		}
		return key, func(ctx context.Context, handler InteractionHandler, u *User) error {
			return h(b, ctx, handler, u, commandOptions(options))
		}, nil
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		prefix, arg := parseCustomID(customID)
		h, ok := componentHandlers[prefix]
		if !ok {
			return customID, nil, fmt.Errorf("%w: component %q", errUnknownInteraction, customID)
		}
		return customID, func(ctx context.Context, handler InteractionHandler, u *User) error {
			return h(b, ctx, handler, u, arg)
		}, nil
	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		prefix, arg := parseCustomID(customID)
		h, ok := modalHandlers[prefix]
		if !ok {
			return customID, nil, fmt.Errorf("%w: modal %q", errUnknownInteraction, customID)
		}
		return customID, func(ctx context.Context, handler InteractionHandler, u *User) error {
			return h(b, ctx, handler, u, arg)
		}, nil
	default:
		return "", nil, fmt.Errorf("%w: type %s", errUnknownInteraction, i.Type.String())
	}
}

// runInteraction runs the handler for the interaction. Errors returned by
// handlers are unexpected: they're answered with an apology and sent to
// the log channel. Expected failures (bad input, missing permissions) are
// answered by the handlers themselves.
func (b *Bob) runInteraction(ctx context.Context, handler InteractionHandler, u *User) {
	i := handler.GetInteraction()
	logger := handler.Logger()
	cfg := handler.Config()

	if cfg.RecoverPanic {
		defer func() {
			if rc := recover(); rc != nil {
				b.handleRecover(ctx, rc)
				if err := handler.Respond(
					ctx,
					ephemeralResponse(cfg.DiscordErrorMessage),
				); err != nil {
					logger.ErrorContext(ctx, "error sending panic response", tint.Err(err))
				}
			}
		}()
	}

	name, run, err := b.resolveInteraction(i)
	if err != nil {
		logger.WarnContext(ctx, "unable to resolve interaction", tint.Err(err))
		if respErr := handler.Respond(
			ctx,
			ephemeralResponse(cfg.DiscordErrorMessage),
		); respErr != nil {
			logger.ErrorContext(ctx, "error sending error response", tint.Err(respErr))
		}
		return
	}

	started := time.Now()
	err = run(ctx, handler, u)
	logger.InfoContext(
		ctx,
		"finished interaction",
		"command", name,
		"duration", time.Since(started),
		"error", err != nil,
	)

	if err != nil {
		b.respondUnexpectedError(ctx, handler, err)
		b.sendInteractionLog(ctx, i, u, err)
		return
	}
	if cfg.LogCommandUsage && i.Type == discordgo.InteractionApplicationCommand {
		b.sendInteractionLog(ctx, i, u, nil)
	}
}

func supportServerLink(url string) string {
	return fmt.Sprintf("[Bob's Official Server](%s)", url)
}

// mistakeNotice is appended to replies for input the bot can't use.
func (b *Bob) mistakeNotice() string {
	return "If you think this is a mistake, let us know here: " +
		supportServerLink(b.config.Discord.SupportServerURL)
}

// joinNotice is the quote commands' variant of mistakeNotice
func (b *Bob) joinNotice() string {
	return "If you think this is a mistake join " +
		supportServerLink(b.config.Discord.SupportServerURL)
}

func (b *Bob) unexpectedErrorMessage(err error) string {
	return fmt.Sprintf(
		"❌ An unexpected error occurred: %s\n- Try again later.\n"+
			"- The developers have been notified, but you can join %s "+
			"and provide us with more details if you want.",
		err.Error(),
		supportServerLink(b.config.Discord.SupportServerURL),
	)
}

// respondUnexpectedError tells the user the command failed. If the
// interaction was already responded to (or deferred), the response is
// edited instead.
func (b *Bob) respondUnexpectedError(
	ctx context.Context,
	handler InteractionHandler,
	err error,
) {
	logger := handler.Logger()
	logger.ErrorContext(ctx, "unexpected error running interaction", tint.Err(err))

	content := truncate(b.unexpectedErrorMessage(err), discordMaxMessageLength)
	respErr := handler.Respond(ctx, ephemeralResponse(content))
	if respErr == nil {
		return
	}
	if _, editErr := handler.Edit(
		ctx,
		&discordgo.WebhookEdit{Content: &content},
	); editErr != nil {
		logger.ErrorContext(
			ctx,
			"unable to notify user of error",
			"respond_error", respErr,
			tint.Err(editErr),
		)
	}
}

// applicationCommands returns every command the bot registers
func applicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		appCommandConvert(),
		appCommandRandom(),
		appCommandQuote(),
		appCommandMessageQuote(),
		appCommandFonts(),
		appCommandShip(),
	}
}

func allContexts() *[]discordgo.InteractionContextType {
	contexts := []discordgo.InteractionContextType{
		discordgo.InteractionContextBotDM,
		discordgo.InteractionContextPrivateChannel,
		discordgo.InteractionContextGuild,
	}
	return &contexts
}

func guildContexts() *[]discordgo.InteractionContextType {
	contexts := []discordgo.InteractionContextType{
		discordgo.InteractionContextGuild,
	}
	return &contexts
}

func allIntegrationTypes() *[]discordgo.ApplicationIntegrationType {
	integrationTypes := []discordgo.ApplicationIntegrationType{
		discordgo.ApplicationIntegrationUserInstall,
		discordgo.ApplicationIntegrationGuildInstall,
	}
	return &integrationTypes
}

func guildIntegrationTypes() *[]discordgo.ApplicationIntegrationType {
	integrationTypes := []discordgo.ApplicationIntegrationType{
		discordgo.ApplicationIntegrationGuildInstall,
	}
	return &integrationTypes
}

// unitKindChoices lists every quantity kind, in declaration order,
// with the kind name as the value.
func unitKindChoices() []*discordgo.ApplicationCommandOptionChoice {
	kinds := units.Kinds()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(kinds))
	for _, k := range kinds {
		choices = append(
			choices,
			&discordgo.ApplicationCommandOptionChoice{
				Name:  k.DisplayName(),
				Value: k.String(),
			},
		)
	}
	return choices
}

func intBounds(lower, upper float64) (*float64, float64) {
	return &lower, upper
}

func appCommandConvert() *discordgo.ApplicationCommand {
	monthMin, monthMax := intBounds(1, 12)
	dayMin, dayMax := intBounds(1, 31)
	hourMin, hourMax := intBounds(0, 23)
	minuteMin, minuteMax := intBounds(0, 59)

	return &discordgo.ApplicationCommand{
		Name:             commandConvert,
		Type:             discordgo.ChatApplicationCommand,
		Description:      "All conversion commands.",
		Contexts:         allContexts(),
		IntegrationTypes: allIntegrationTypes(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandConvertUnits,
				Description: "Bob will convert units for you.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "kind",
						Description: "The type of quantity to convert.",
						Required:    true,
						Choices:     unitKindChoices(),
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "amount",
						Description: "The amount to convert.",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "from-unit",
						Description: "The unit to convert from.",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "to-unit",
						Description: "The unit to convert to.",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandConvertTimezones,
				Description: "Convert time from one timezone to another.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "month",
						Description: "The month for the time you want to convert.",
						Required:    true,
						MinValue:    monthMin,
						MaxValue:    monthMax,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "day",
						Description: "The day for the time you want to convert.",
						Required:    true,
						MinValue:    dayMin,
						MaxValue:    dayMax,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "hour",
						Description: "The hour for the time you want to convert, in 24-hour format.",
						Required:    true,
						MinValue:    hourMin,
						MaxValue:    hourMax,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "minute",
						Description: "The minute for the time you want to convert.",
						Required:    true,
						MinValue:    minuteMin,
						MaxValue:    minuteMax,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "from-timezone",
						Description: "The timezone to convert from.",
						Required:    true,
						Choices:     timezoneChoices(),
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "to-timezone",
						Description: "The timezone you want to convert to.",
						Required:    true,
						Choices:     timezoneChoices(),
					},
				},
			},
		},
	}
}

func appCommandRandom() *discordgo.ApplicationCommand {
	choiceOption := func(n int, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        fmt.Sprintf("option%d", n),
			Description: "An option to choose from.",
			Required:    required,
		}
	}

	return &discordgo.ApplicationCommand{
		Name:             commandRandom,
		Type:             discordgo.ChatApplicationCommand,
		Description:      "All random (RNG) commands.",
		Contexts:         allContexts(),
		IntegrationTypes: allIntegrationTypes(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomDiceRoll,
				Description: "Bob will roll a die with the side amount specified.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "sides",
						Description: "The number of sides on the die.",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomDate,
				Description: "Bob will will pick a random date.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "earliest-year",
						Description: "A year that is as early as you want the date to occur in.",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "latest-year",
						Description: "A year that is as late as you want the date to occur in.",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandom8Ball,
				Description: "Bob will shake a magic 8 ball in response to a question.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "prompt",
						Description: "The question to ask the magic 8 ball.",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomChoose,
				Description: "Can't make up your mind? Bob can for you!",
				Options: []*discordgo.ApplicationCommandOption{
					choiceOption(1, true),
					choiceOption(2, true),
					choiceOption(3, false),
					choiceOption(4, false),
					choiceOption(5, false),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomColor,
				Description: "Bob will choose a random color.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomQuote,
				Description: "Bob will tell you a quote.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "prompt",
						Description: "A tag to pick the quote from, like 'wisdom' or 'famous-quotes'.",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomCoinToss,
				Description: "Bob will flip a coin",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomFact,
				Description: "Bob will provide you with an outrageous fact.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomDog,
				Description: "Bob will find you a cute doggo image!",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomAdvice,
				Description: "Bob will provide you with random advice.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandRandomDadJoke,
				Description: "Bob will tell you a dad joke.",
			},
		},
	}
}

func appCommandQuote() *discordgo.ApplicationCommand {
	tagOption := func(n int) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        fmt.Sprintf("tag%d", n),
			Description: "A tag for sorting quotes later on.",
		}
	}

	return &discordgo.ApplicationCommand{
		Name:             commandQuote,
		Type:             discordgo.ChatApplicationCommand,
		Description:      "All quoting commands.",
		Contexts:         guildContexts(),
		IntegrationTypes: guildIntegrationTypes(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandQuoteNew,
				Description: "Create a quote.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "quote",
						Description: `The text you want quoted. Quotation marks (") will be added.`,
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The user who the quote belongs to.",
						Required:    true,
					},
					tagOption(1),
					tagOption(2),
					tagOption(3),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        commandQuoteChannel,
				Description: "Configure /quote channel.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "The quotes channel for the server.",
						Required:    true,
					},
				},
			},
		},
	}
}

func appCommandMessageQuote() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:             commandMessageQuote,
		Type:             discordgo.MessageApplicationCommand,
		Contexts:         guildContexts(),
		IntegrationTypes: guildIntegrationTypes(),
	}
}

func appCommandFonts() *discordgo.ApplicationCommand {
	minLength := 1
	return &discordgo.ApplicationCommand{
		Name:             commandFonts,
		Type:             discordgo.ChatApplicationCommand,
		Description:      "Bob will change the font of your text.",
		Contexts:         allContexts(),
		IntegrationTypes: allIntegrationTypes(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "The text to change.",
				Required:    true,
				MinLength:   &minLength,
				MaxLength:   discordMaxMessageLength / 2,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "font",
				Description: "The font to use.",
				Required:    true,
				Choices:     fontChoices(),
			},
		},
	}
}

func appCommandShip() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:             commandShip,
		Type:             discordgo.ChatApplicationCommand,
		Description:      "Bob will determine how good of a couple two users would make.",
		Contexts:         allContexts(),
		IntegrationTypes: allIntegrationTypes(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user1",
				Description: "The first user.",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user2",
				Description: "The second user.",
				Required:    true,
			},
		},
	}
}
