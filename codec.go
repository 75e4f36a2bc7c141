package money

import (
	"errors"
	"fmt"
	"strconv"
)

// Parse converts a string in the classic format to an amount.
// The classic format is a plain base-10 integer number of minor units
// with an optional leading sign, e.g. "-123456".
// See also method [Amount.String] and constructor [ParseLit].
//
// Parse returns an error if the string is not an integer or
// does not fit into an int64.
func Parse(s string) (Amount, error) {
	u, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Amount{}, fmt.Errorf("parsing amount %q: %w", s, ErrAmountOverflow)
		}
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, errors.Unwrap(err))
	}
	return Amount{units: u}, nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return a
}

// String implements the [fmt.Stringer] interface and returns the classic
// representation of an amount: the plain number of minor units.
// Use [Locale.Put] for a locale-monetary representation.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return strconv.FormatInt(a.units, 10)
}

// magnitude returns |u| without overflowing on the most negative value.
func magnitude(u int64) uint64 {
	if u < 0 {
		return -uint64(u)
	}
	return uint64(u)
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Description         |
//	| ---------- | ------- | ------------------- |
//	| %s, %v, %d | -1234   | Minor units         |
//	| %q         | "-1234" | Quoted minor units  |
//
// The '+' and ' ' flags control the sign of positive amounts,
// the '-' flag left-justifies and the '0' flag pads with leading zeros
// after the sign.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a Amount) Format(state fmt.State, verb rune) {
	coef := magnitude(a.units)

	// Integer digits
	intdigs := 1
	for c := coef / 10; c > 0; c /= 10 {
		intdigs++
	}

	// Arithmetic sign
	rsign := 0
	if a.IsNeg() || state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + rsign + intdigs + tquote
	lspaces, lzeros, tspaces := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeros = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1

	// Trailing spaces
	for range tspaces {
		buf[pos] = ' '
		pos--
	}

	// Closing quote
	if tquote > 0 {
		buf[pos] = '"'
		pos--
	}

	// Integer digits
	for range intdigs {
		buf[pos] = byte(coef%10) + '0'
		pos--
		coef /= 10
	}

	// Leading zeros
	for range lzeros {
		buf[pos] = '0'
		pos--
	}

	// Arithmetic sign
	if rsign > 0 {
		switch {
		case a.IsNeg():
			buf[pos] = '-'
		case state.Flag(' '):
			buf[pos] = ' '
		default:
			buf[pos] = '+'
		}
		pos--
	}

	// Opening quote
	if lquote > 0 {
		buf[pos] = '"'
		pos--
	}

	// Leading spaces
	for range lspaces {
		buf[pos] = ' '
		pos--
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 's', 'v', 'd':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte(string(verb)))
		state.Write([]byte("(money.Amount="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// Scan implements the [fmt.Scanner] interface and reads an amount in the
// classic format, so amounts can be read with [fmt.Fscan] and friends.
// Leading white space is skipped.
// On failure the amount is left unchanged.
//
// [fmt.Scanner]: https://pkg.go.dev/fmt#Scanner
func (a *Amount) Scan(state fmt.ScanState, verb rune) error {
	switch verb {
	case 'v', 's', 'd':
	default:
		return fmt.Errorf("scanning %T: unsupported verb %%%c", Amount{}, verb)
	}
	first := true
	tok, err := state.Token(true, func(r rune) bool {
		if first {
			first = false
			if r == '+' || r == '-' {
				return true
			}
		}
		return r >= '0' && r <= '9'
	})
	if err != nil {
		return fmt.Errorf("scanning %T: %w", Amount{}, err)
	}
	if len(tok) == 0 {
		return fmt.Errorf("scanning %T: %w", Amount{}, strconv.ErrSyntax)
	}
	b, err := Parse(string(tok))
	if err != nil {
		return fmt.Errorf("scanning %T: %w", Amount{}, err)
	}
	*a = b
	return nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both JSON numbers and quoted numbers of minor units are accepted.
// See also constructor [Parse].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	var err error
	*a, err = Parse(string(data))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// The amount is written as a JSON number of minor units.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, a.units, 10), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	var err error
	*a, err = Parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// See also method [Amount.String].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (a Amount) AppendText(text []byte) ([]byte, error) {
	return strconv.AppendInt(text, a.units, 10), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Amount.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	return a.AppendText(nil)
}
