package units

import (
	"errors"
	"fmt"
)

var ErrInvalidUnit = errors.New("invalid unit")

// Parser resolves user-supplied unit text to a Unit of a given Kind.
type Parser struct {
	aliases AliasTable
}

// NewParser returns a Parser using aliases. The table is validated first, so a
// bad entry fails here instead of on the first request that hits it.
func NewParser(aliases AliasTable) (*Parser, error) {
	if err := aliases.Validate(); err != nil {
		return nil, err
	}
	return &Parser{aliases: aliases}, nil
}

// Aliases returns the table the parser was built with.
func (p *Parser) Aliases() AliasTable {
	return p.aliases
}

// ParseSymbol matches text exactly (case-sensitive) against the symbols of
// the kind's units.
func (p *Parser) ParseSymbol(text string, k Kind) (Unit, error) {
	q, err := Lookup(k)
	if err != nil {
		return Unit{}, err
	}
	if u, ok := q.Unit(text); ok {
		return u, nil
	}
	return Unit{}, fmt.Errorf("%w: %q is not a %s symbol", ErrInvalidUnit, text, k)
}

// Parse tries an exact symbol match first. If that fails, text is normalized
// and looked up in the alias table, and the resulting canonical symbol is
// matched instead.
func (p *Parser) Parse(text string, k Kind) (Unit, error) {
	u, err := p.ParseSymbol(text, k)
	if err == nil || !errors.Is(err, ErrInvalidUnit) {
		return u, err
	}

	canonical, ok := p.aliases.Lookup(text)
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q is not a %s unit", ErrInvalidUnit, text, k)
	}
	u, err = p.ParseSymbol(canonical, k)
	if err != nil {
		return Unit{}, fmt.Errorf(
			"%w: %q (%s) is not a %s unit",
			ErrInvalidUnit,
			text,
			canonical,
			k,
		)
	}
	return u, nil
}
