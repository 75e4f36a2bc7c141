package money

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidMoney is returned when locale-monetary text cannot be parsed.
var ErrInvalidMoney = errors.New("invalid monetary text")

// Part is one slot of a monetary [Pattern].
type Part uint8

const (
	// None is optional white space when parsing and nothing when formatting.
	None Part = iota
	// Space is required white space when parsing and a single space when formatting.
	Space
	// Symbol is the currency symbol.
	Symbol
	// Sign is the first rune of the positive or negative sign.
	Sign
	// Value is the grouped digits with the decimal point.
	Value
)

func (p Part) String() string {
	switch p {
	case None:
		return "none"
	case Space:
		return "space"
	case Symbol:
		return "symbol"
	case Sign:
		return "sign"
	case Value:
		return "value"
	default:
		return "Part(" + strconv.Itoa(int(p)) + ")"
	}
}

// Pattern is the order in which the parts of a monetary amount appear.
// A well-formed pattern contains each of Symbol, Sign and Value exactly once.
type Pattern [4]Part

// Punct describes how monetary amounts are punctuated for one currency
// in one locale, either in the local or in the international form.
type Punct struct {
	// DecimalPoint separates major units from minor units.
	DecimalPoint rune
	// ThousandsSep separates groups of integer digits.
	// 0 disables grouping.
	ThousandsSep rune
	// Grouping lists the sizes of integer digit groups starting from the
	// decimal point. The last size repeats. A size <= 0 ends grouping.
	Grouping []int
	// CurrSymbol is the currency symbol, e.g. "$" or "USD ".
	CurrSymbol string
	// PositiveSign and NegativeSign may be empty or longer than one rune.
	// Only the first rune is placed at the Sign part of the pattern,
	// the rest follows the whole amount.
	PositiveSign string
	NegativeSign string
	// FracDigits is the number of digits after the decimal point,
	// i.e. the power of ten between major and minor units.
	FracDigits int
	PosFormat  Pattern
	NegFormat  Pattern
}

// Locale bundles the local and international punctuation of a currency.
// The zero value is not useful; start from [ClassicLocale] or build one with the
// locale package.
type Locale struct {
	Name  string
	Local Punct
	Intl  Punct
}

// ClassicLocale returns the "C" locale: no currency symbol, no grouping,
// no fractional digits and a leading '-' for negative amounts.
// In this locale the monetary representation of an amount matches [Amount.String].
func ClassicLocale() *Locale {
	p := Punct{
		DecimalPoint: '.',
		ThousandsSep: ',',
		NegativeSign: "-",
		PosFormat:    Pattern{Symbol, Sign, None, Value},
		NegFormat:    Pattern{Symbol, Sign, None, Value},
	}
	return &Locale{Name: "C", Local: p, Intl: p}
}

func (l *Locale) punct(intl bool) *Punct {
	if l == nil {
		l = ClassicLocale()
	}
	if intl {
		return &l.Intl
	}
	return &l.Local
}

// Put returns the monetary representation of amount a in the locale.
// When intl is true the international punctuation is used.
// When showbase is true the currency symbol is included.
func (l *Locale) Put(a Amount, intl, showbase bool) string {
	return string(l.punct(intl).appendMoney(nil, a, showbase))
}

// PutMoney writes the monetary representation of amount a to w.
// A nil locale means [ClassicLocale]. See also method [Locale.Put].
func PutMoney(w io.Writer, loc *Locale, a Amount, intl, showbase bool) error {
	buf := loc.punct(intl).appendMoney(nil, a, showbase)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing %v: %w", a, err)
	}
	return nil
}

func (p *Punct) appendMoney(buf []byte, a Amount, showbase bool) []byte {
	sign, pat := p.PositiveSign, p.PosFormat
	if a.IsNeg() {
		sign, pat = p.NegativeSign, p.NegFormat
	}
	_, n := utf8.DecodeRuneInString(sign)
	head, tail := sign[:n], sign[n:]

	for _, part := range pat {
		switch part {
		case Symbol:
			if showbase {
				buf = append(buf, p.CurrSymbol...)
			}
		case Sign:
			buf = append(buf, head...)
		case Value:
			buf = p.appendValue(buf, magnitude(a.units))
		case Space:
			buf = append(buf, ' ')
		}
	}
	return append(buf, tail...)
}

// appendValue appends grouped integer digits, the decimal point
// and exactly FracDigits fractional digits.
// An empty integer part is written as "0".
func (p *Punct) appendValue(buf []byte, coef uint64) []byte {
	digits := strconv.FormatUint(coef, 10)
	frac := max(p.FracDigits, 0)

	intpart, fracpart := "0", digits
	if len(digits) > frac {
		intpart, fracpart = digits[:len(digits)-frac], digits[len(digits)-frac:]
	}

	buf = p.appendGrouped(buf, intpart)
	if frac > 0 {
		buf = utf8.AppendRune(buf, p.DecimalPoint)
		for range frac - len(fracpart) {
			buf = append(buf, '0')
		}
		buf = append(buf, fracpart...)
	}
	return buf
}

func (p *Punct) appendGrouped(buf []byte, digits string) []byte {
	if p.ThousandsSep == 0 || len(p.Grouping) == 0 {
		return append(buf, digits...)
	}

	// Groups are cut from the right
	var groups []string
	for i := 0; ; i++ {
		size := p.Grouping[min(i, len(p.Grouping)-1)]
		if size <= 0 || len(digits) <= size {
			break
		}
		groups = append(groups, digits[len(digits)-size:])
		digits = digits[:len(digits)-size]
	}

	buf = append(buf, digits...)
	for i := len(groups) - 1; i >= 0; i-- {
		buf = utf8.AppendRune(buf, p.ThousandsSep)
		buf = append(buf, groups[i]...)
	}
	return buf
}

// Parse converts monetary text in the locale to an amount.
// The whole string, apart from surrounding white space, must be consumed.
// See also function [GetMoney] for the rules.
func (l *Locale) Parse(s string, intl bool) (Amount, error) {
	r := strings.NewReader(s)
	var a Amount
	if err := GetMoney(r, l, &a, intl); err != nil {
		return Amount{}, err
	}
	if _, err := skipSpace(r); err != nil {
		return Amount{}, err
	}
	if r.Len() > 0 {
		return Amount{}, fmt.Errorf("parsing %q: %w: unexpected trailing text", s, ErrInvalidMoney)
	}
	return a, nil
}

// GetMoney reads monetary text from r and stores the amount in a.
// A nil locale means [ClassicLocale].
//
// Leading white space is skipped, then the parts are matched in the order
// of the NegFormat pattern:
//   - Space requires at least one white space rune unless the input ends;
//   - None skips optional white space, except in the last position;
//   - Symbol is optional, but a partial match is an error;
//   - Sign matches the first rune of the positive or negative sign;
//     when neither is present an empty positive sign means a positive amount,
//     an empty negative sign means a negative one, otherwise it is an error;
//   - Value reads digits, thousands separators (their grouping is verified)
//     and, if FracDigits > 0, a decimal point followed by exactly FracDigits
//     digits. Without a decimal point the digits are major units.
//
// The remaining runes of a multi-rune sign are required after the amount.
// On failure a is left unchanged, but the consumed runes are not restored.
func GetMoney(r io.RuneScanner, loc *Locale, a *Amount, intl bool) error {
	p := loc.punct(intl)
	u, err := p.scanMoney(r)
	if err != nil {
		return fmt.Errorf("parsing money: %w", err)
	}
	*a = Amount{units: u}
	return nil
}

func (p *Punct) scanMoney(r io.RuneScanner) (int64, error) {
	if _, err := skipSpace(r); err != nil {
		return 0, err
	}

	neg := false
	sign := ""
	var digits []byte
	for i, part := range p.NegFormat {
		last := i == len(p.NegFormat)-1
		switch part {
		case None:
			if !last {
				if _, err := skipSpace(r); err != nil {
					return 0, err
				}
			}
		case Space:
			n, err := skipSpace(r)
			if err != nil {
				return 0, err
			}
			if n == 0 && !atEOF(r) {
				return 0, fmt.Errorf("%w: white space expected", ErrInvalidMoney)
			}
		case Symbol:
			if err := matchOptional(r, p.CurrSymbol); err != nil {
				return 0, err
			}
		case Sign:
			c, ok := peek(r)
			switch {
			case ok && p.PositiveSign != "" && c == firstRune(p.PositiveSign):
				r.ReadRune() //nolint:errcheck
				sign = p.PositiveSign
			case ok && p.NegativeSign != "" && c == firstRune(p.NegativeSign):
				r.ReadRune() //nolint:errcheck
				sign, neg = p.NegativeSign, true
			case p.PositiveSign == "":
			case p.NegativeSign == "":
				neg = true
			default:
				return 0, fmt.Errorf("%w: sign expected", ErrInvalidMoney)
			}
		case Value:
			var err error
			digits, err = p.scanValue(r)
			if err != nil {
				return 0, err
			}
		}
	}
	if digits == nil {
		return 0, fmt.Errorf("%w: pattern has no value", ErrInvalidMoney)
	}

	// Trailing sign runes
	if _, n := utf8.DecodeRuneInString(sign); n < len(sign) {
		if err := matchExact(r, sign[n:]); err != nil {
			return 0, err
		}
	}

	text := string(digits)
	if neg {
		text = "-" + text
	}
	u, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrAmountOverflow
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidMoney, err)
	}
	return u, nil
}

func (p *Punct) scanValue(r io.RuneScanner) ([]byte, error) {
	var digits []byte
	var groups []int
	cur := 0
	point := false

	// Integer part
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		if c >= '0' && c <= '9' {
			digits = append(digits, byte(c))
			cur++
			continue
		}
		if p.FracDigits > 0 && c == p.DecimalPoint {
			point = true
			break
		}
		if p.ThousandsSep != 0 && len(p.Grouping) > 0 && c == p.ThousandsSep {
			if cur == 0 {
				return nil, fmt.Errorf("%w: misplaced thousands separator", ErrInvalidMoney)
			}
			groups = append(groups, cur)
			cur = 0
			continue
		}
		r.UnreadRune() //nolint:errcheck
		break
	}
	if groups != nil {
		groups = append(groups, cur)
		if !validGrouping(groups, p.Grouping) {
			return nil, fmt.Errorf("%w: invalid digit grouping", ErrInvalidMoney)
		}
	}

	// Fractional part
	frac := max(p.FracDigits, 0)
	if point {
		for range frac {
			c, _, err := r.ReadRune()
			if err != nil && err != io.EOF {
				return nil, err
			}
			if err == io.EOF || c < '0' || c > '9' {
				return nil, fmt.Errorf("%w: %v fractional digits expected", ErrInvalidMoney, frac)
			}
			digits = append(digits, byte(c))
		}
		if c, ok := peek(r); ok && c >= '0' && c <= '9' {
			return nil, fmt.Errorf("%w: too many fractional digits", ErrInvalidMoney)
		}
		return digits, nil
	}
	if len(digits) == 0 {
		return nil, fmt.Errorf("%w: digits expected", ErrInvalidMoney)
	}
	for range frac {
		digits = append(digits, '0')
	}
	return digits, nil
}

// validGrouping reports whether digit group sizes, listed from the left,
// agree with the grouping sizes, listed from the right.
// The leftmost group may be shorter than its size.
func validGrouping(groups, grouping []int) bool {
	j := 0
	for i := len(groups) - 1; i > 0; i-- {
		size := grouping[min(j, len(grouping)-1)]
		if size <= 0 || groups[i] != size {
			return false
		}
		j++
	}
	size := grouping[min(j, len(grouping)-1)]
	return groups[0] > 0 && (size <= 0 || groups[0] <= size)
}

func firstRune(s string) rune {
	c, _ := utf8.DecodeRuneInString(s)
	return c
}

func peek(r io.RuneScanner) (rune, bool) {
	c, _, err := r.ReadRune()
	if err != nil {
		return 0, false
	}
	r.UnreadRune() //nolint:errcheck
	return c, true
}

func atEOF(r io.RuneScanner) bool {
	_, ok := peek(r)
	return !ok
}

func skipSpace(r io.RuneScanner) (int, error) {
	n := 0
	for {
		c, _, err := r.ReadRune()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if !unicode.IsSpace(c) {
			r.UnreadRune() //nolint:errcheck
			return n, nil
		}
		n++
	}
}

// matchOptional consumes s if the input starts with it.
// Input that starts like s but diverges is an error.
func matchOptional(r io.RuneScanner, s string) error {
	if s == "" {
		return nil
	}
	if c, ok := peek(r); !ok || c != firstRune(s) {
		return nil
	}
	return matchExact(r, s)
}

func matchExact(r io.RuneScanner, s string) error {
	for _, want := range s {
		c, _, err := r.ReadRune()
		if err != nil && err != io.EOF {
			return err
		}
		if err == io.EOF || c != want {
			return fmt.Errorf("%w: %q expected", ErrInvalidMoney, s)
		}
	}
	return nil
}
