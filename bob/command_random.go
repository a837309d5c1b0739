package bob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
	"strconv"
	"time"
	"unicode/utf8"
)

const (
	chooseMaxChoiceLength = 1024
	randomDateMaxDigits   = 8
	colorPreviewFilename  = "image.png"
)

var (
	magic8BallAnswers = []string{
		"'no'",
		"'yes'",
		"'maybe'",
		"'ask again'",
		"'probably not'",
		"'affirmative'",
		"'it is certain'",
		"'very doubtful'",
		"'regretfully.. yes'",
		"'try again later...'",
	}

	decisionTexts = []string{
		"I choose ",
		"I'd go with ",
		"Definitely ",
		"Without a doubt, ",
		"My pick is ",
		"It has to be ",
	}

	dogEmojis = []string{"🐕", "🐶", "🐕‍🦺", "🐩"}

	// February always has 28 days, leap years aren't picked from
	randomDateMonths = []struct {
		Month time.Month
		Days  int
	}{
		{time.January, 31},
		{time.February, 28},
		{time.March, 31},
		{time.April, 30},
		{time.May, 31},
		{time.June, 30},
		{time.July, 31},
		{time.August, 31},
		{time.September, 30},
		{time.October, 31},
		{time.November, 30},
		{time.December, 31},
	}
)

func (b *Bob) randomChoice(choices []string) string {
	return choices[b.randIntN(len(choices))]
}

func (b *Bob) commandRandomDiceRoll(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	sides, _ := optionInt(options, "sides")
	if sides <= 0 {
		return handler.Respond(
			ctx,
			ephemeralResponse(
				"🌌 The die formed a *rift* in our dimension! **Maybe** try using a number **greater than 0**",
			),
		)
	}
	roll := b.randIntN(int(sides)) + 1
	return handler.Respond(
		ctx,
		messageResponse(fmt.Sprintf("🎲 The %d sided die landed on **%d**", sides, roll)),
	)
}

func (b *Bob) commandRandomDate(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	earliest, _ := optionInt(options, "earliest-year")
	latest, _ := optionInt(options, "latest-year")

	var content string
	switch {
	case earliest < 0 || latest < 0:
		content = "🌌 *Whoa!* a *rift* in our dimension! **Maybe** try a year that is **atleast 0**."
	case len(strconv.FormatInt(earliest, 10)) > randomDateMaxDigits ||
		len(strconv.FormatInt(latest, 10)) > randomDateMaxDigits:
		content = "❌ Please, choose a year that is **8 digits or less**."
	case earliest > latest:
		content = "❌ Please, make the *earliest year* **smaller** than the *latest year*."
	default:
		year := earliest + int64(b.randIntN(int(latest-earliest+1)))
		month := randomDateMonths[b.randIntN(len(randomDateMonths))]
		day := b.randIntN(month.Days) + 1
		content = fmt.Sprintf(":calendar_spiral: %s %d, %d", month.Month.String(), day, year)
	}
	return handler.Respond(ctx, messageResponse(content))
}

func (b *Bob) commandRandom8Ball(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	prompt := optionString(options, "prompt")
	content := fmt.Sprintf(
		"🎱 **%s** in response to %s",
		b.randomChoice(magic8BallAnswers),
		prompt,
	)
	if n := utf8.RuneCountInString(content); n > discordMaxMessageLength {
		return handler.Respond(
			ctx,
			ephemeralResponse(
				fmt.Sprintf(
					"❌ The magic 8ball broke because your prompt had **%d** characters.\n"+
						"- Try having fewer characters.\n"+
						"- Discord has a limit of **%d** characters.",
					n,
					discordMaxMessageLength,
				),
			),
		)
	}
	return handler.Respond(ctx, messageResponse(content))
}

func (b *Bob) commandRandomChoose(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	choices := make([]string, 0, 5)
	for n := 1; n <= 5; n++ {
		choice := optionString(options, fmt.Sprintf("option%d", n))
		if choice == "" || utf8.RuneCountInString(choice) > chooseMaxChoiceLength {
			continue
		}
		choices = append(choices, choice)
	}

	if len(choices) == 0 {
		return handler.Respond(
			ctx,
			ephemeralResponse(
				"❌ Bob *cannot* decide because your choices contain to many characters.\n" +
					"- Try having fewer characters.",
			),
		)
	}
	return handler.Respond(
		ctx,
		messageResponse(
			fmt.Sprintf(
				"🤔 %s**%s**",
				b.randomChoice(decisionTexts),
				b.randomChoice(choices),
			),
		),
	)
}

// commandRandomColor replies with an embed describing a random color,
// with a preview image. The image is attached with an edit after
// deferring, since files can't be sent in a webhook's HTTP response.
func (b *Bob) commandRandomColor(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	_ map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	c := rgbFromInt(b.randIntN(0x1000000))
	preview, err := colorPreviewPNG(c, colorPreviewSize)
	if err != nil {
		return fmt.Errorf("error rendering color preview: %w", err)
	}

	if err = handler.Respond(ctx, deferredResponse(0)); err != nil {
		return err
	}

	embeds := []*discordgo.MessageEmbed{colorEmbed(c)}
	_, err = handler.Edit(
		ctx,
		&discordgo.WebhookEdit{
			Embeds: &embeds,
			Files: []*discordgo.File{
				{
					Name:        colorPreviewFilename,
					ContentType: "image/png",
					Reader:      bytes.NewReader(preview),
				},
			},
		},
	)
	return err
}

func colorEmbed(c rgbColor) *discordgo.MessageEmbed {
	cyan, magenta, yellow, key := c.CMYK()
	hslH, hslS, hslL := c.HSL()
	hsvH, hsvS, hsvV := c.HSV()
	field := func(name, value string) *discordgo.MessageEmbedField {
		return &discordgo.MessageEmbedField{Name: name, Value: "```" + value + "```"}
	}
	return &discordgo.MessageEmbed{
		Color: c.Int(),
		Fields: []*discordgo.MessageEmbedField{
			field("Hex", "#"+c.Hex()),
			field("RGB", fmt.Sprintf("R: %d, G: %d, B: %d", c.R, c.G, c.B)),
			field("CMYK", fmt.Sprintf("C: %d, M: %d, Y: %d, K: %d", cyan, magenta, yellow, key)),
			field("HSL", fmt.Sprintf("H: %d, S: %d, L: %d", hslH, hslS, hslL)),
			field("HSV", fmt.Sprintf("H: %d, S: %d, V: %d", hsvH, hsvS, hsvV)),
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: "attachment://" + colorPreviewFilename,
		},
	}
}

func (b *Bob) randomAPIFailure(
	ctx context.Context,
	handler InteractionHandler,
	thing string,
	apiURL string,
	err error,
) error {
	handler.Logger().WarnContext(ctx, "random api request failed", "thing", thing, tint.Err(err))
	return handler.Respond(
		ctx,
		ephemeralResponse(
			fmt.Sprintf(
				"❌ There was an issue getting %s from the API (%s).\n"+
					"- This is out of Bob's control unfortunately.\n"+
					"- Please try again later.",
				thing,
				apiHost(apiURL),
			),
		),
	)
}

func (b *Bob) commandRandomQuote(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	prompt := optionString(options, "prompt")
	quote, err := b.randomAPI.Quote(ctx, prompt)
	switch {
	case errors.Is(err, errQuotePromptNotFound):
		return handler.Respond(
			ctx,
			ephemeralResponse(
				fmt.Sprintf(
					"❌ The prompt: %s was not recognized. Try a tag like `wisdom` or `famous-quotes`.\n- %s",
					prompt,
					b.mistakeNotice(),
				),
			),
		)
	case err != nil:
		return b.randomAPIFailure(ctx, handler, "a quote", b.config.RandomAPI.QuoteURL, err)
	}
	return handler.Respond(
		ctx,
		messageResponse(fmt.Sprintf("✍️ %s - *%s*", quote.Content, quote.Author)),
	)
}

func (b *Bob) commandRandomCoinToss(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	_ map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	side := "heads"
	if b.randIntN(2) == 1 {
		side = "tails"
	}
	return handler.Respond(ctx, messageResponse("🪙 The coin landed **"+side+"**!"))
}

func (b *Bob) commandRandomFact(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	_ map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	fact, err := b.randomAPI.Fact(ctx)
	if err != nil {
		return b.randomAPIFailure(ctx, handler, "a fact", b.config.RandomAPI.FactURL, err)
	}
	return handler.Respond(ctx, messageResponse("🤓 "+fact))
}

func (b *Bob) commandRandomDog(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	_ map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	image, err := b.randomAPI.Dog(ctx)
	if err != nil {
		return b.randomAPIFailure(ctx, handler, "a dog", b.config.RandomAPI.DogURL, err)
	}
	return handler.Respond(
		ctx,
		messageResponse(fmt.Sprintf("%s[dog](%s)", b.randomChoice(dogEmojis), image)),
	)
}

func (b *Bob) commandRandomAdvice(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	_ map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	advice, err := b.randomAPI.Advice(ctx)
	if err != nil {
		return b.randomAPIFailure(ctx, handler, "advice", b.config.RandomAPI.AdviceURL, err)
	}
	return handler.Respond(ctx, messageResponse("🦉 *"+advice+"*"))
}

func (b *Bob) commandRandomDadJoke(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	_ map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	joke, err := b.randomAPI.DadJoke(ctx)
	if err != nil {
		return b.randomAPIFailure(ctx, handler, "a dad joke", b.config.RandomAPI.DadJokeURL, err)
	}
	return handler.Respond(ctx, messageResponse("😉  *"+joke+"*"))
}
