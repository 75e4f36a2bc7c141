package money

import (
	"errors"
	"fmt"

	"github.com/JohnCGriffin/overflow"
)

// ErrInvalidLiteral is returned by [ParseLit] for malformed literals.
var ErrInvalidLiteral = errors.New("invalid literal")

// ParseLit converts a monetary literal to an amount of minor units.
//
// A literal is an optional sign followed by digits. The digits may be broken up
// by the separators "_" and "'" and by at most one decimal point ".".
// The position of the decimal point is not significant: it only documents
// where the major units end, and every digit counts as a minor unit digit.
// Thus "12.00", "1200" and "1_200" all produce 1200 minor units,
// while "10.1234" produces 101234.
//
// ParseLit returns an error if:
//   - the literal has no digits;
//   - the literal contains more than one decimal point;
//   - the literal contains any other character;
//   - the value does not fit into an int64 number of minor units.
//
// Constant arguments of ParseLit and [MustLit] can be verified before the
// program runs, see the moneylit command.
func ParseLit(s string) (Amount, error) {
	u, err := parseLit(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing literal %q: %w", s, err)
	}
	return Amount{units: u}, nil
}

// MustLit is like [ParseLit] but panics if the literal is invalid.
// It is intended for package-level amounts and tests, e.g.
//
//	var unitPrice = money.MustLit("12.00")
func MustLit(s string) Amount {
	a, err := ParseLit(s)
	if err != nil {
		panic(fmt.Sprintf("MustLit(%q) failed: %v", s, err))
	}
	return a
}

func parseLit(s string) (int64, error) {
	pos, width := 0, len(s)

	// Sign
	neg := false
	if pos < width && (s[pos] == '-' || s[pos] == '+') {
		neg = s[pos] == '-'
		pos++
	}

	// Digits are accumulated with the sign of the result,
	// so the most negative amount is reachable.
	var u int64
	digits, points := 0, 0
	for ; pos < width; pos++ {
		c := s[pos]
		switch {
		case c >= '0' && c <= '9':
			d := int64(c - '0')
			var ok bool
			if u, ok = overflow.Mul64(u, 10); !ok {
				return 0, ErrAmountOverflow
			}
			if neg {
				u, ok = overflow.Sub64(u, d)
			} else {
				u, ok = overflow.Add64(u, d)
			}
			if !ok {
				return 0, ErrAmountOverflow
			}
			digits++
		case c == '.':
			points++
			if points > 1 {
				return 0, fmt.Errorf("%w: more than one decimal point", ErrInvalidLiteral)
			}
		case c == '_' || c == '\'':
			continue
		default:
			return 0, fmt.Errorf("%w: unexpected character %q at position %v", ErrInvalidLiteral, c, pos)
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: no digits", ErrInvalidLiteral)
	}
	return u, nil
}
