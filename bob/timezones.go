package bob

import (
	"context"
	"errors"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
	"math"
	"time"
	_ "time/tzdata" // hosts without zoneinfo still load every choice
)

const timezoneWallClockFormat = "Monday, January 2, 2006 15:04"

var errInvalidTimezone = errors.New("invalid timezone")

type timezone struct {
	Name        string
	DisplayName string
}

// timezones are offered as choices to `/convert timezones`, so this can't
// grow past Discord's limit of 25 choices per option.
var timezones = []timezone{
	{"UTC", "Coordinated Universal Time"},
	{"Pacific/Honolulu", "Hawaii Time"},
	{"America/Anchorage", "Alaska Time"},
	{"America/Los_Angeles", "Pacific Time"},
	{"America/Phoenix", "Arizona Time"},
	{"America/Denver", "Mountain Time"},
	{"America/Chicago", "Central Time"},
	{"America/Mexico_City", "Mexico City Time"},
	{"America/New_York", "Eastern Time"},
	{"America/Halifax", "Atlantic Time"},
	{"America/Sao_Paulo", "Brasília Time"},
	{"Europe/London", "UK Time"},
	{"Africa/Lagos", "West Africa Time"},
	{"Europe/Paris", "Central European Time"},
	{"Europe/Athens", "Eastern European Time"},
	{"Africa/Johannesburg", "South Africa Time"},
	{"Europe/Moscow", "Moscow Time"},
	{"Asia/Dubai", "Gulf Time"},
	{"Asia/Kolkata", "India Time"},
	{"Asia/Singapore", "Singapore Time"},
	{"Asia/Shanghai", "China Time"},
	{"Asia/Tokyo", "Japan Time"},
	{"Australia/Perth", "Australian Western Time"},
	{"Australia/Sydney", "Australian Eastern Time"},
	{"Pacific/Auckland", "New Zealand Time"},
}

func timezoneChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(timezones))
	for _, tz := range timezones {
		choices = append(
			choices,
			&discordgo.ApplicationCommandOptionChoice{
				Name:  fmt.Sprintf("%s (%s)", tz.DisplayName, tz.Name),
				Value: tz.Name,
			},
		)
	}
	return choices
}

// lookupTimezone loads one of the offered timezones. Names outside the
// choice list are rejected, even if they're valid IANA names.
func lookupTimezone(name string) (timezone, *time.Location, error) {
	for _, tz := range timezones {
		if tz.Name != name {
			continue
		}
		loc, err := time.LoadLocation(tz.Name)
		if err != nil {
			return tz, nil, fmt.Errorf("%w: %w", errInvalidTimezone, err)
		}
		return tz, loc, nil
	}
	return timezone{}, nil, fmt.Errorf("%w: %q", errInvalidTimezone, name)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var (
	clockHourEmoji     = []string{"🕛", "🕐", "🕑", "🕒", "🕓", "🕔", "🕕", "🕖", "🕗", "🕘", "🕙", "🕚"}
	clockHalfHourEmoji = []string{"🕧", "🕜", "🕝", "🕞", "🕟", "🕠", "🕡", "🕢", "🕣", "🕤", "🕥", "🕦"}
)

// closestClockEmoji returns the clock face nearest to t's wall time, in
// half hour steps.
func closestClockEmoji(t time.Time) string {
	minutes := float64((t.Hour()%12)*60 + t.Minute())
	step := int(math.Round(minutes/30)) % 24
	if step%2 == 0 {
		return clockHourEmoji[step/2]
	}
	return clockHalfHourEmoji[step/2]
}

// convertTimezone returns the instant for the wall time in from, and the
// same instant in to. The year is the current UTC year.
func convertTimezone(
	now time.Time,
	month time.Month,
	day, hour, minute int,
	from, to *time.Location,
) (time.Time, time.Time) {
	src := time.Date(now.UTC().Year(), month, day, hour, minute, 0, 0, from)
	return src, src.In(to)
}

func (b *Bob) commandConvertTimezones(
	ctx context.Context,
	handler InteractionHandler,
	_ *User,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) error {
	month, _ := optionInt(options, "month")
	day, _ := optionInt(options, "day")
	hour, _ := optionInt(options, "hour")
	minute, _ := optionInt(options, "minute")

	if month < 1 || month > 12 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("out of range time: month=%d hour=%d minute=%d", month, hour, minute)
	}

	maxDay := daysInMonth(b.now().UTC().Year(), time.Month(month))
	if day < 1 || int(day) > maxDay {
		return handler.Respond(
			ctx,
			ephemeralResponse(
				fmt.Sprintf("❌ Please enter a valid day between **1** and **%d**.", maxDay),
			),
		)
	}

	fromTZ, fromLoc, fromErr := lookupTimezone(optionString(options, "from-timezone"))
	toTZ, toLoc, toErr := lookupTimezone(optionString(options, "to-timezone"))
	if err := errors.Join(fromErr, toErr); err != nil {
		handler.Logger().WarnContext(ctx, "timezone lookup failed", tint.Err(err))
		return handler.Respond(
			ctx,
			ephemeralResponse("❌ One of the specified timezones is invalid. Please check your input."),
		)
	}

	src, dst := convertTimezone(
		b.now(), time.Month(month), int(day), int(hour), int(minute), fromLoc, toLoc,
	)
	return handler.Respond(
		ctx,
		messageResponse(
			fmt.Sprintf(
				"%s **%s** in %s is **%s** in %s (<t:%d:F> for you).",
				closestClockEmoji(dst),
				src.Format(timezoneWallClockFormat),
				fromTZ.DisplayName,
				dst.Format(timezoneWallClockFormat),
				toTZ.DisplayName,
				src.Unix(),
			),
		),
	)
}
