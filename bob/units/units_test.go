package units

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"strings"
	"testing"
)

func newTestParser(t testing.TB) *Parser {
	t.Helper()
	p, err := NewParser(DefaultAliases())
	require.NoError(t, err)
	return p
}

func TestLookup(t *testing.T) {
	seenQuantityTypes := map[string]Kind{}
	seenUnitTypes := map[string]Kind{}

	for _, k := range Kinds() {
		q, err := Lookup(k)
		require.NoError(t, err, k.String())
		require.NotNil(t, q)
		assert.Equal(t, k, q.Kind())
		assert.NotEmpty(t, q.QuantityType())
		assert.NotEmpty(t, q.Units())
		assert.True(t, strings.HasSuffix(q.UnitType(), "Unit"))

		prev, dupe := seenQuantityTypes[q.QuantityType()]
		assert.Falsef(t, dupe, "%s shares a quantity type with %s", k, prev)
		seenQuantityTypes[q.QuantityType()] = k

		prev, dupe = seenUnitTypes[q.UnitType()]
		assert.Falsef(t, dupe, "%s shares a unit type with %s", k, prev)
		seenUnitTypes[q.UnitType()] = k
	}
	assert.Len(t, seenQuantityTypes, 12)

	_, err := Lookup(Kind(99))
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = Lookup(Kind(-1))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestQuantityTypeNames(t *testing.T) {
	q, err := Lookup(Time)
	require.NoError(t, err)
	assert.Equal(t, "Duration", q.QuantityType())
	assert.Equal(t, "DurationUnit", q.UnitType())

	q, err = Lookup(Storage)
	require.NoError(t, err)
	assert.Equal(t, "Information", q.QuantityType())
}

func TestKindEmoji(t *testing.T) {
	assert.Equal(t, "📏", Length.Emoji())
	assert.Equal(t, "🌡️", Temperature.Emoji())
	assert.Equal(t, "📡", Frequency.Emoji())
	assert.Equal(t, "❓", Kind(42).Emoji())
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		rv, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, rv)
	}

	rv, err := ParseKind("storage")
	require.NoError(t, err)
	assert.Equal(t, Storage, rv)

	_, err = ParseKind("Duration")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestValidUnits(t *testing.T) {
	text := Length.ValidUnits()
	assert.True(t, strings.HasPrefix(text, "Angstrom, AstronomicalUnit, Centimeter"))
	assert.Contains(t, text, "Kilometer, Kiloparsec")
	assert.True(
		t,
		strings.HasSuffix(
			text,
			"Yard.\n- Plural forms are accepted such as meters.\n- Abbreviated forms are accepted like m (these are case sensitive).",
		),
	)
	assert.Contains(t, Area.ValidUnits(), "\n- Special characters are also accepted like m²")
	assert.Equal(t, "No valid units available.", Kind(12).ValidUnits())
}

func TestDefaultAliasesValid(t *testing.T) {
	aliases := DefaultAliases()
	require.NoError(t, aliases.Validate())
	assert.Greater(t, aliases.Len(), 600)
}

func TestNewAliasTable_Invalid(t *testing.T) {
	_, err := NewAliasTable(map[string]string{"Kilo Meter": "km"})
	assert.ErrorIs(t, err, ErrInvalidAlias)

	_, err = NewAliasTable(map[string]string{"kilometer": ""})
	assert.ErrorIs(t, err, ErrInvalidAlias)
}

func TestNewParser_UnknownCanonical(t *testing.T) {
	aliases, err := NewAliasTable(
		map[string]string{
			"kilometer": "km",
			"bogon":     "bg",
			"flurb":     "fl",
		},
	)
	require.NoError(t, err)

	p, err := NewParser(aliases)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInvalidAlias)
	assert.Contains(t, err.Error(), `"bogon"`)
	assert.Contains(t, err.Error(), `"flurb"`)
	assert.NotContains(t, err.Error(), `"kilometer"`)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "squaremeters", Normalize("Square Meters"))
	assert.Equal(t, "°c", Normalize("°C"))
	assert.Equal(t, "km", Normalize(" K M "))
}

// Every alias must resolve, for each kind owning its canonical symbol, to the
// unit with that symbol.
func TestAliasesParse(t *testing.T) {
	p := newTestParser(t)
	aliases := p.Aliases()

	for _, alias := range aliases.Aliases() {
		canonical, ok := aliases.Lookup(alias)
		require.True(t, ok)

		owners := aliases.Owners(alias)
		require.NotEmptyf(t, owners, "alias %q has no owning kind", alias)

		for _, k := range owners {
			q, err := Lookup(k)
			require.NoError(t, err)
			expected, ok := q.Unit(canonical)
			require.True(t, ok)

			u, err := p.Parse(alias, k)
			require.NoErrorf(t, err, "alias %q kind %s", alias, k)
			assert.Equalf(t, expected.Name, u.Name, "alias %q kind %s", alias, k)
		}
	}
}

func TestParse_CaseSensitiveSymbols(t *testing.T) {
	p := newTestParser(t)

	_, err := p.ParseSymbol("KM", Length)
	assert.ErrorIs(t, err, ErrInvalidUnit)

	u, err := p.Parse("kilometers", Length)
	require.NoError(t, err)
	assert.Equal(t, "Kilometer", u.Name)

	u, err = p.Parse("Kilo Meters", Length)
	require.NoError(t, err)
	assert.Equal(t, "Kilometer", u.Name)

	gigabit, err := p.Parse("Gb", Storage)
	require.NoError(t, err)
	assert.Equal(t, "Gigabit", gigabit.Name)

	gigabyte, err := p.Parse("GB", Storage)
	require.NoError(t, err)
	assert.Equal(t, "Gigabyte", gigabyte.Name)

	mega, err := p.Parse("MHz", Frequency)
	require.NoError(t, err)
	assert.Equal(t, "Megahertz", mega.Name)

	milli, err := p.Parse("mHz", Frequency)
	require.NoError(t, err)
	assert.Equal(t, "Millihertz", milli.Name)
}

func TestParse_AliasStage(t *testing.T) {
	p := newTestParser(t)

	_, err := p.ParseSymbol("Fahrenheit", Temperature)
	require.ErrorIs(t, err, ErrInvalidUnit)

	u, err := p.Parse("Fahrenheit", Temperature)
	require.NoError(t, err)
	assert.Equal(t, "°F", u.Symbol())
	assert.Equal(t, Temperature, u.Kind)

	u, err = p.Parse("sq ft", Area)
	require.NoError(t, err)
	assert.Equal(t, "SquareFoot", u.Name)
}

func TestParse_Invalid(t *testing.T) {
	p := newTestParser(t)

	_, err := p.Parse("bogus-unit", Mass)
	assert.ErrorIs(t, err, ErrInvalidUnit)

	// Alias exists, but its symbol isn't a Mass unit
	_, err = p.Parse("kilometers", Mass)
	assert.ErrorIs(t, err, ErrInvalidUnit)

	_, err = p.Parse("m", Kind(77))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParse_SharedSymbols(t *testing.T) {
	p := newTestParser(t)

	u, err := p.Parse("h", Time)
	require.NoError(t, err)
	assert.Equal(t, "Hour", u.Name)

	u, err = p.Parse("h", Length)
	require.NoError(t, err)
	assert.Equal(t, "Hand", u.Name)

	u, err = p.Parse("mil", Angle)
	require.NoError(t, err)
	assert.Equal(t, "NatoMil", u.Name)
}

func TestConvert_Examples(t *testing.T) {
	c := NewConverter(newTestParser(t))

	testCases := []struct {
		name     string
		req      Request
		expected float64
	}{
		{
			name:     "km to m",
			req:      Request{Kind: Length, Value: 1, From: "km", To: "m"},
			expected: 1000,
		},
		{
			name:     "celsius to fahrenheit",
			req:      Request{Kind: Temperature, Value: 0, From: "°C", To: "°F"},
			expected: 32,
		},
		{
			name:     "fahrenheit to celsius by name",
			req:      Request{Kind: Temperature, Value: 212, From: "fahrenheit", To: "celsius"},
			expected: 100,
		},
		{
			name:     "kelvin to celsius",
			req:      Request{Kind: Temperature, Value: 0, From: "K", To: "°C"},
			expected: -273.15,
		},
		{
			name:     "byte to bit",
			req:      Request{Kind: Storage, Value: 1, From: "GB", To: "Gb"},
			expected: 8,
		},
		{
			name:     "kibibyte to byte",
			req:      Request{Kind: Storage, Value: 1, From: "kibibyte", To: "bytes"},
			expected: 1024,
		},
		{
			name:     "pounds to kilograms",
			req:      Request{Kind: Mass, Value: 1, From: "pounds", To: "kg"},
			expected: 0.45359237,
		},
		{
			name:     "mph to km/h",
			req:      Request{Kind: Speed, Value: 60, From: "mph", To: "km/h"},
			expected: 96.56064,
		},
		{
			name:     "hours to seconds",
			req:      Request{Kind: Time, Value: 2, From: "hours", To: "s"},
			expected: 7200,
		},
		{
			name:     "revolution to degrees",
			req:      Request{Kind: Angle, Value: 1, From: "rev", To: "degrees"},
			expected: 360,
		},
		{
			name:     "atmosphere to kilopascal",
			req:      Request{Kind: Pressure, Value: 1, From: "atm", To: "kPa"},
			expected: 101.325,
		},
		{
			name:     "liters to milliliters",
			req:      Request{Kind: Volume, Value: 1.5, From: "liters", To: "mL"},
			expected: 1500,
		},
		{
			name:     "hectare to square meters",
			req:      Request{Kind: Area, Value: 1, From: "ha", To: "sq m"},
			expected: 10000,
		},
		{
			name:     "kilowatt hour to joules",
			req:      Request{Kind: Energy, Value: 1, From: "kWh", To: "J"},
			expected: 3.6e6,
		},
		{
			name:     "bpm to hertz",
			req:      Request{Kind: Frequency, Value: 120, From: "bpm", To: "Hz"},
			expected: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(
			tc.name, func(t *testing.T) {
				rv, err := c.Convert(tc.req)
				require.NoError(t, err)
				require.True(t, rv.OK(), "%#v", rv.Failure)
				assert.InDelta(t, tc.expected, rv.Converted, math.Abs(tc.expected)*1e-9+1e-9)
				assert.Equal(t, tc.req.From, rv.From)
				assert.Equal(t, tc.req.To, rv.To)
				assert.Equal(t, tc.req.Kind, rv.Kind)
			},
		)
	}
}

func TestConvert_InvalidUnit(t *testing.T) {
	c := NewConverter(newTestParser(t))

	rv, err := c.Convert(Request{Kind: Mass, Value: 3, From: "bogus-unit", To: "kg"})
	require.NoError(t, err)
	require.False(t, rv.OK())
	assert.Equal(t, ReasonInvalidUnit, rv.Failure.Reason)
	assert.Equal(t, "bogus-unit", rv.Failure.Unit)
	assert.Equal(t, Mass.ValidUnits(), rv.Failure.ValidUnits)

	rv, err = c.Convert(Request{Kind: Mass, Value: 3, From: "kg", To: "parsecs"})
	require.NoError(t, err)
	require.False(t, rv.OK())
	assert.Equal(t, "parsecs", rv.Failure.Unit)
}

func TestConvert_Unexpected(t *testing.T) {
	c := NewConverter(newTestParser(t))

	_, err := c.Convert(Request{Kind: Kind(30), Value: 1, From: "m", To: "km"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = c.Convert(Request{Kind: Length, Value: math.Inf(1), From: "m", To: "km"})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestConvert_KindMismatch(t *testing.T) {
	p := newTestParser(t)
	meter, err := p.Parse("m", Length)
	require.NoError(t, err)
	second, err := p.Parse("s", Time)
	require.NoError(t, err)

	_, err = Convert(1, meter, second)
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = Convert(1, Unit{Kind: Length, Name: "Blorp"}, meter)
	assert.Error(t, err)
}

func TestConvert_TemperatureExact(t *testing.T) {
	q, err := Lookup(Temperature)
	require.NoError(t, err)

	testCases := []struct {
		value    float64
		from     string
		to       string
		expected float64
	}{
		{32, "°F", "°C", 0},
		{100, "°C", "°F", 212},
		{212, "°F", "°C", 100},
		{-40, "°C", "°F", -40},
		{-40, "°F", "°C", -40},
		{0, "°C", "K", 273.15},
		{273.15, "K", "°C", 0},
		{373.15, "K", "°F", 212},
		{491.67, "°R", "°C", 0},
		{0, "K", "°R", 0},
		{0, "°C", "°De", 150},
		{60, "°Rø", "°C", 100},
		{80, "°Ré", "°C", 100},
		{33, "°N", "°C", 100},
		{1000, "m°C", "°C", 1},
	}
	for _, tc := range testCases {
		t.Run(
			tc.from+" to "+tc.to, func(t *testing.T) {
				from, ok := q.Unit(tc.from)
				require.True(t, ok)
				to, ok := q.Unit(tc.to)
				require.True(t, ok)

				rv, err := Convert(tc.value, from, to)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, rv)
			},
		)
	}
}

func TestConvert_IdentityAndRoundTrip(t *testing.T) {
	values := []float64{0, 1, -40, 3.75, 12345.678}

	for _, k := range Kinds() {
		q, err := Lookup(k)
		require.NoError(t, err)
		units := q.Units()

		for _, a := range units {
			for _, v := range values {
				same, err := Convert(v, a, a)
				require.NoError(t, err)
				assert.Equal(t, v, same)
			}

			for _, b := range units {
				for _, v := range values {
					there, err := Convert(v, a, b)
					require.NoError(t, err)
					back, err := Convert(there, b, a)
					require.NoError(t, err)
					assert.InDeltaf(
						t,
						v,
						back,
						math.Abs(v)*1e-6+1e-6,
						"%s: %v %s -> %s -> %s",
						k, v, a.Name, b.Name, a.Name,
					)
				}
			}
		}
	}
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{input: "1", expected: 1},
		{input: " 2.5 ", expected: 2.5},
		{input: "-40", expected: -40},
		{input: "1,000", expected: 1000},
		{input: "1e3", expected: 1000},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "inf", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(
			tc.input, func(t *testing.T) {
				rv, err := ParseAmount(tc.input)
				if tc.wantErr {
					assert.ErrorIs(t, err, ErrInvalidAmount)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tc.expected, rv)
			},
		)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1000", FormatValue(1000))
	assert.Equal(t, "0.001", FormatValue(0.001))
	assert.Equal(t, "-273.15", FormatValue(-273.15))
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "1E+15", FormatValue(1e15))
	assert.Equal(t, "1.5E-07", FormatValue(1.5e-7))
}
