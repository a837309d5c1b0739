package bob

import (
	"context"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"slices"
	"strings"
)

type font string

const (
	fontMedieval font = "medieval"
	fontFancy    font = "fancy"
	fontSlashed  font = "slashed"
	fontFlip     font = "flip"
	fontBoxed    font = "boxed"

	// combiningLongSolidusOverlay is drawn through the preceding letter
	combiningLongSolidusOverlay = '\u0337'
)

var fonts = []font{fontMedieval, fontFancy, fontSlashed, fontFlip, fontBoxed}

// fontAlphabets map a-z, in order. Slashed is built from the letters
// themselves.
var fontAlphabets = map[font][]string{
	fontMedieval: {
		"𝖆", "𝖇", "𝖈", "𝖉", "𝖊", "𝖋", "𝖌", "𝖍", "𝖎", "𝖏", "𝖐", "𝖑", "𝖒",
		"𝖓", "𝖔", "𝖕", "𝖖", "𝖗", "𝖘", "𝖙", "𝖚", "𝖛", "𝖜", "𝖝", "𝖞", "𝖟",
	},
	fontFancy: {
		"𝓪", "𝓫", "𝓬", "𝓭", "𝓮", "𝓯", "𝓰", "𝓱", "𝓲", "𝓳", "𝓴", "𝓵", "𝓶",
		"𝓷", "𝓸", "𝓹", "𝓺", "𝓻", "𝓼", "𝓽", "𝓾", "𝓿", "𝔀", "𝔁", "𝔂", "𝔃",
	},
	fontFlip: {
		"ɐ", "q", "ɔ", "p", "ǝ", "ɟ", "ɓ", "ɥ", "ı", "ɾ", "ʞ", "l", "ɯ",
		"u", "o", "d", "b", "ɹ", "s", "ʇ", "n", "ʌ", "ʍ", "x", "ʎ", "z",
	},
	fontBoxed: {
		"🄰", "🄱", "🄲", "🄳", "🄴", "🄵", "🄶", "🄷", "🄸", "🄹", "🄺", "🄻", "🄼",
		"🄽", "🄾", "🄿", "🅀", "🅁", "🅂", "🅃", "🅄", "🅅", "🅆", "🅇", "🅈", "🅉",
	},
}

func fontChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(fonts))
	for _, f := range fonts {
		choices = append(
			choices,
			&discordgo.ApplicationCommandOptionChoice{Name: string(f), Value: string(f)},
		)
	}
	return choices
}

// convertFont rewrites the lowercase letters of text in the given font.
// Everything else, uppercase included, is kept as-is. Flipped text is also
// reversed, so it reads upside down.
func convertFont(f font, text string) (string, error) {
	if !slices.Contains(fonts, f) {
		return "", fmt.Errorf("unknown font %q", f)
	}
	alphabet := fontAlphabets[f]

	runes := []rune(text)
	if f == fontFlip {
		slices.Reverse(runes)
	}

	var sb strings.Builder
	for _, r := range runes {
		if r < 'a' || r > 'z' {
			sb.WriteRune(r)
			continue
		}
		if f == fontSlashed {
			sb.WriteRune(r)
			sb.WriteRune(combiningLongSolidusOverlay)
			continue
		}
		sb.WriteString(alphabet[r-'a'])
	}
	return sb.String(), nil
}

func (*Bob) commandFonts(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	converted, err := convertFont(font(optionString(options, "font")), optionString(options, "text"))
	if err != nil {
		return err
	}
	return handler.Respond(ctx, messageResponse(truncate(converted, discordMaxMessageLength)))
}
