package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrKindMismatch  = errors.New("units belong to different quantity kinds")
)

// FailureReason identifies why a conversion could not be performed.
type FailureReason string

const ReasonInvalidUnit FailureReason = "invalid-unit"

// Request is a single conversion of Value from one unit to another.
// From and To are free text, resolved through a Parser.
type Request struct {
	Kind  Kind    `json:"kind"`
	Value float64 `json:"value"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

// Failure describes a conversion which could not be performed because of
// user input.
type Failure struct {
	Reason FailureReason `json:"reason"`

	// Unit is the text that could not be parsed
	Unit string `json:"unit"`

	// ValidUnits lists the units accepted for the request's kind
	ValidUnits string `json:"valid_units"`
}

// Result is the outcome of Converter.Convert. Exactly one of Failure or the
// converted fields is meaningful, see OK.
type Result struct {
	Kind      Kind     `json:"kind"`
	Value     float64  `json:"value"`
	Converted float64  `json:"converted"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	FromUnit  Unit     `json:"from_unit"`
	ToUnit    Unit     `json:"to_unit"`
	Failure   *Failure `json:"failure,omitempty"`
}

func (r Result) OK() bool {
	return r.Failure == nil
}

// Convert returns value, given in from, expressed in to.
func Convert(value float64, from Unit, to Unit) (float64, error) {
	if from.Kind != to.Kind {
		return 0, fmt.Errorf("%w: %s is %s, %s is %s", ErrKindMismatch, from, from.Kind, to, to.Kind)
	}
	if from.factor == 0 || to.factor == 0 {
		return 0, fmt.Errorf("unit %q or %q was not obtained from a Quantity", from.Name, to.Name)
	}
	if from.Name == to.Name {
		return value, nil
	}
	return to.fromBase(from.toBase(value)), nil
}

// Converter parses both sides of a Request and converts between them.
type Converter struct {
	parser *Parser
}

func NewConverter(parser *Parser) *Converter {
	return &Converter{parser: parser}
}

func (c *Converter) Parser() *Parser {
	return c.parser
}

// Convert performs req. Unparseable units produce a Result with a Failure
// and a nil error. Any other problem, such as a kind outside the enumeration
// or a non-finite value, is returned as an error.
func (c *Converter) Convert(req Request) (Result, error) {
	q, err := Lookup(req.Kind)
	if err != nil {
		return Result{}, err
	}
	if math.IsNaN(req.Value) || math.IsInf(req.Value, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidAmount, req.Value)
	}

	result := Result{
		Kind:  req.Kind,
		Value: req.Value,
		From:  req.From,
		To:    req.To,
	}

	for _, side := range []struct {
		text string
		dst  *Unit
	}{
		{req.From, &result.FromUnit},
		{req.To, &result.ToUnit},
	} {
		u, parseErr := c.parser.Parse(side.text, req.Kind)
		switch {
		case errors.Is(parseErr, ErrInvalidUnit):
			result.Failure = &Failure{
				Reason:     ReasonInvalidUnit,
				Unit:       side.text,
				ValidUnits: q.ValidUnits(),
			}
			return result, nil
		case parseErr != nil:
			return Result{}, parseErr
		}
		*side.dst = u
	}

	result.Converted, err = Convert(req.Value, result.FromUnit, result.ToUnit)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// ParseAmount parses a user-supplied number. Commas are treated as
// thousands separators.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// FormatValue renders v with the fewest digits that round-trip, switching to
// exponent notation for very large or very small magnitudes.
func FormatValue(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e15 || abs < 1e-5) {
		return strconv.FormatFloat(v, 'E', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
