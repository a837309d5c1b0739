package bob

import (
	"context"
	"fmt"
	"github.com/bwmarrin/discordgo"
)

type heartLevel struct {
	Heart string
	Min   int
}

// heartLevels must stay sorted by Min
var heartLevels = []heartLevel{
	{"💔 `0`", 0},
	{"❤️ `1`", 10},
	{"💓 `2`", 20},
	{"💗 `2`", 35},
	{"💕 `3`", 50},
	{"💞 `4`", 65},
	{"💖 `5`", 80},
	{"💘 `6`", 90},
}

// heartLevelFor returns the highest level reached by the match percent
func heartLevelFor(percent int) string {
	heart := heartLevels[0].Heart
	for _, level := range heartLevels {
		if percent < level.Min {
			break
		}
		heart = level.Heart
	}
	return heart
}

func (b *Bob) commandShip(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	user1 := optionID(options, "user1")
	user2 := optionID(options, "user2")
	percent := b.randIntN(101)

	return handler.Respond(
		ctx,
		messageResponse(
			fmt.Sprintf(
				"%s <@%s> and <@%s> are a **%d%%** match!",
				heartLevelFor(percent),
				user1,
				user2,
				percent,
			),
		),
	)
}
