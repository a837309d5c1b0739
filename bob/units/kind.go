package units

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects a physical quantity. The zero value is Length.
type Kind int

const (
	Length Kind = iota
	Mass
	Volume
	Area
	Time
	Temperature
	Pressure
	Speed
	Energy
	Storage
	Angle
	Frequency
)

var ErrUnknownKind = errors.New("unknown quantity kind")

var kindNames = [...]string{
	Length:      "Length",
	Mass:        "Mass",
	Volume:      "Volume",
	Area:        "Area",
	Time:        "Time",
	Temperature: "Temperature",
	Pressure:    "Pressure",
	Speed:       "Speed",
	Energy:      "Energy",
	Storage:     "Storage",
	Angle:       "Angle",
	Frequency:   "Frequency",
}

// Kinds returns every quantity kind, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		kinds = append(kinds, Kind(k))
	}
	return kinds
}

func (k Kind) Valid() bool {
	return k >= Length && int(k) < len(kindNames)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind with the given name. Matching ignores case, so
// both "Length" (the form used in component custom IDs) and "length" work.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// DisplayName is the label shown for the kind in the slash command choice list.
func (k Kind) DisplayName() string {
	switch k {
	case Length:
		return "Length (Distance, Height, Width)"
	case Mass:
		return "Mass (Weight)"
	case Volume:
		return "Volume (Capacity)"
	case Area:
		return "Area (Surface)"
	case Time:
		return "Duration (Time)"
	case Pressure:
		return "Pressure (Stress)"
	case Speed:
		return "Speed (Velocity)"
	case Energy:
		return "Energy (Work)"
	case Storage:
		return "Information (Storage)"
	case Frequency:
		return "Frequency (Wavelength, Pitch, Tempo, Refresh Rate)"
	default:
		return k.String()
	}
}

// Emoji returns the emoji used when displaying results for the kind.
func (k Kind) Emoji() string {
	switch k {
	case Length:
		return "📏"
	case Mass:
		return "⚖️"
	case Volume:
		return "🥤"
	case Area:
		return "📐"
	case Time:
		return "⏳"
	case Temperature:
		return "🌡️"
	case Pressure:
		return "🧊"
	case Speed:
		return "🏎️"
	case Energy:
		return "⚡"
	case Storage:
		return "💾"
	case Angle:
		return "🔄"
	case Frequency:
		return "📡"
	default:
		return "❓"
	}
}

// ValidUnits returns the list of valid unit names for k, with usage notes, for
// display in error messages.
func (k Kind) ValidUnits() string {
	q, err := Lookup(k)
	if err != nil {
		return "No valid units available."
	}
	return q.ValidUnits()
}
