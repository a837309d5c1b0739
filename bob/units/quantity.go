package units

import (
	"fmt"
	"sort"
	"strings"
)

// Unit is a single unit of measure belonging to one Kind.
//
// A magnitude v in the unit corresponds to (v+shift)*factor/divisor+offset
// in the kind's base unit. Only temperature units shift or offset.
type Unit struct {
	Kind Kind `json:"kind"`

	// Name is the PascalCase unit name shown in the valid unit list,
	// e.g. "Kilometer".
	Name string `json:"name"`

	// Symbols are the case-sensitive abbreviations accepted for the unit.
	// The first is the canonical symbol.
	Symbols []string `json:"symbols"`

	shift   float64
	factor  float64
	divisor float64
	offset  float64
}

// Symbol returns the canonical abbreviation of the unit.
func (u Unit) Symbol() string {
	if len(u.Symbols) == 0 {
		return ""
	}
	return u.Symbols[0]
}

func (u Unit) String() string {
	return u.Name
}

func (u Unit) toBase(v float64) float64 {
	return (v+u.shift)*u.factor/u.divisor + u.offset
}

func (u Unit) fromBase(v float64) float64 {
	return (v-u.offset)*u.divisor/u.factor - u.shift
}

// Quantity describes the units available for one Kind.
type Quantity struct {
	kind         Kind
	quantityType string
	notes        string
	units        []Unit
	bySymbol     map[string]int
}

// Lookup returns the Quantity for k. It fails only for values outside the
// declared set of kinds.
func Lookup(k Kind) (*Quantity, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return quantities[k], nil
}

func (q *Quantity) Kind() Kind {
	return q.kind
}

// QuantityType is the name of the measured quantity, which differs from the
// kind name for Time (Duration) and Storage (Information).
func (q *Quantity) QuantityType() string {
	return q.quantityType
}

// UnitType names the enumeration of units for the quantity, like "LengthUnit".
func (q *Quantity) UnitType() string {
	return q.quantityType + "Unit"
}

func (q *Quantity) Emoji() string {
	return q.kind.Emoji()
}

// Units returns a copy of the quantity's units, sorted by name.
func (q *Quantity) Units() []Unit {
	rv := make([]Unit, len(q.units))
	copy(rv, q.units)
	return rv
}

// Unit returns the unit with the exact (case-sensitive) symbol.
func (q *Quantity) Unit(symbol string) (Unit, bool) {
	idx, ok := q.bySymbol[symbol]
	if !ok {
		return Unit{}, false
	}
	return q.units[idx], true
}

// ValidUnits lists every unit name followed by usage notes.
func (q *Quantity) ValidUnits() string {
	names := make([]string, len(q.units))
	for i, u := range q.units {
		names[i] = u.Name
	}
	return strings.Join(names, ", ") + "." + q.notes
}

// newQuantity panics on duplicate names or symbols, since those make the
// case-sensitive parse ambiguous.
func newQuantity(k Kind, quantityType string, notes string, units ...Unit) *Quantity {
	q := &Quantity{
		kind:         k,
		quantityType: quantityType,
		notes:        notes,
		units:        units,
		bySymbol:     make(map[string]int),
	}
	sort.Slice(
		q.units, func(i, j int) bool {
			return q.units[i].Name < q.units[j].Name
		},
	)

	seenNames := make(map[string]struct{}, len(units))
	for i := range q.units {
		u := &q.units[i]
		u.Kind = k
		if u.factor == 0 || u.divisor == 0 {
			panic(fmt.Sprintf("%s: unit %s has no conversion factor", k, u.Name))
		}
		if len(u.Symbols) == 0 {
			panic(fmt.Sprintf("%s: unit %s has no symbols", k, u.Name))
		}
		if _, ok := seenNames[u.Name]; ok {
			panic(fmt.Sprintf("%s: duplicate unit name %s", k, u.Name))
		}
		seenNames[u.Name] = struct{}{}

		for _, s := range u.Symbols {
			if existing, ok := q.bySymbol[s]; ok {
				panic(
					fmt.Sprintf(
						"%s: symbol %q used by both %s and %s",
						k, s, q.units[existing].Name, u.Name,
					),
				)
			}
			q.bySymbol[s] = i
		}
	}
	return q
}

func unit(name string, factor float64, symbols ...string) Unit {
	return Unit{Name: name, Symbols: symbols, factor: factor, divisor: 1}
}

// affineUnit maps v to (v+shift)*factor/divisor+offset in the base unit
func affineUnit(name string, shift, factor, divisor, offset float64, symbols ...string) Unit {
	return Unit{
		Name:    name,
		Symbols: symbols,
		shift:   shift,
		factor:  factor,
		divisor: divisor,
		offset:  offset,
	}
}
