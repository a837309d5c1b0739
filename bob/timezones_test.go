package bob

import (
	"context"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestLookupTimezone(t *testing.T) {
	for _, tz := range timezones {
		found, loc, err := lookupTimezone(tz.Name)
		require.NoError(t, err, tz.Name)
		assert.Equal(t, tz, found)
		assert.Equal(t, tz.Name, loc.String())
	}

	_, loc, err := lookupTimezone("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, errInvalidTimezone)
	assert.Nil(t, loc)

	// valid IANA zones aren't accepted unless they're offered
	_, _, err = lookupTimezone("America/Boise")
	assert.ErrorIs(t, err, errInvalidTimezone)
}

func TestTimezoneChoices(t *testing.T) {
	choices := timezoneChoices()
	require.Len(t, choices, len(timezones))
	assert.LessOrEqual(t, len(choices), 25)
	assert.Equal(t, "Coordinated Universal Time (UTC)", choices[0].Name)
	assert.Equal(t, "UTC", choices[0].Value)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2023, time.April, 30},
		{2023, time.December, 31},
	}
	for _, tc := range tests {
		t.Run(
			fmt.Sprintf("%d-%s", tc.year, tc.month), func(t *testing.T) {
				assert.Equal(t, tc.expected, daysInMonth(tc.year, tc.month))
			},
		)
	}
}

func TestClosestClockEmoji(t *testing.T) {
	tests := []struct {
		hour     int
		minute   int
		expected string
	}{
		{0, 0, "🕛"},
		{12, 0, "🕛"},
		{12, 30, "🕧"},
		{3, 30, "🕞"},
		{15, 10, "🕒"},
		{15, 20, "🕞"},
		{9, 44, "🕤"},
		{9, 46, "🕙"},
		{11, 50, "🕛"},
		{23, 59, "🕛"},
	}
	for _, tc := range tests {
		t.Run(
			fmt.Sprintf("%02d:%02d", tc.hour, tc.minute), func(t *testing.T) {
				ts := time.Date(2024, time.May, 1, tc.hour, tc.minute, 0, 0, time.UTC)
				assert.Equal(t, tc.expected, closestClockEmoji(ts))
			},
		)
	}
}

func TestConvertTimezone(t *testing.T) {
	_, utc, err := lookupTimezone("UTC")
	require.NoError(t, err)
	_, tokyo, err := lookupTimezone("Asia/Tokyo")
	require.NoError(t, err)
	_, newYork, err := lookupTimezone("America/New_York")
	require.NoError(t, err)

	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	src, dst := convertTimezone(now, time.January, 15, 20, 30, utc, tokyo)
	assert.True(t, src.Equal(dst))
	assert.Equal(t, 2024, src.Year())
	assert.Equal(t, time.January, dst.Month())
	assert.Equal(t, 16, dst.Day())
	assert.Equal(t, 5, dst.Hour())
	assert.Equal(t, 30, dst.Minute())

	// daylight saving time applies to the given date, not today's
	_, summer := convertTimezone(now, time.July, 1, 12, 0, newYork, utc)
	assert.Equal(t, 16, summer.Hour())
	_, winter := convertTimezone(now, time.December, 1, 12, 0, newYork, utc)
	assert.Equal(t, 17, winter.Hour())
}

func TestCommandConvertTimezones(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	b.now = func() time.Time {
		return time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	}

	interaction := newCommandInteraction(
		t,
		newDiscordUser(t),
		commandConvert,
		commandConvertTimezones,
		intOption("month", 1),
		intOption("day", 15),
		intOption("hour", 20),
		intOption("minute", 30),
		stringOption("from-timezone", "UTC"),
		stringOption("to-timezone", "Asia/Tokyo"),
	)
	handler := newStubInteractionHandler(t, b, interaction)
	b.handleInteraction(context.Background(), handler)

	responses := handler.Responses()
	require.Len(t, responses, 1)
	resp := responses[0]
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)

	src := time.Date(2023, time.January, 15, 20, 30, 0, 0, time.UTC)
	assert.Equal(
		t,
		fmt.Sprintf(
			"🕠 **Sunday, January 15, 2023 20:30** in Coordinated Universal Time is "+
				"**Monday, January 16, 2023 05:30** in Japan Time (<t:%d:F> for you).",
			src.Unix(),
		),
		resp.Data.Content,
	)
}

func TestCommandConvertTimezones_InvalidDay(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	b.now = func() time.Time {
		return time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	}

	interaction := newCommandInteraction(
		t,
		newDiscordUser(t),
		commandConvert,
		commandConvertTimezones,
		intOption("month", 2),
		intOption("day", 29),
		intOption("hour", 1),
		intOption("minute", 0),
		stringOption("from-timezone", "UTC"),
		stringOption("to-timezone", "Europe/London"),
	)
	handler := newStubInteractionHandler(t, b, interaction)
	b.handleInteraction(context.Background(), handler)

	responses := handler.Responses()
	require.Len(t, responses, 1)
	assertEphemeral(t, responses[0])
	assert.Equal(
		t,
		"❌ Please enter a valid day between **1** and **28**.",
		responses[0].Data.Content,
	)
}

func TestCommandConvertTimezones_InvalidTimezone(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)

	interaction := newCommandInteraction(
		t,
		newDiscordUser(t),
		commandConvert,
		commandConvertTimezones,
		intOption("month", 3),
		intOption("day", 1),
		intOption("hour", 1),
		intOption("minute", 0),
		stringOption("from-timezone", "Mars/Olympus_Mons"),
		stringOption("to-timezone", "UTC"),
	)
	handler := newStubInteractionHandler(t, b, interaction)
	b.handleInteraction(context.Background(), handler)

	responses := handler.Responses()
	require.Len(t, responses, 1)
	assertEphemeral(t, responses[0])
	assert.Contains(t, responses[0].Data.Content, "timezones is invalid")
}
