package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidFormat is returned for malformed format strings and for
// arguments that do not match their replacement field.
var ErrInvalidFormat = errors.New("invalid format")

// Format formats the arguments according to the format string using
// [ClassicLocale]. See [Locale.Format] for the syntax.
func Format(format string, args ...any) (string, error) {
	return ClassicLocale().Format(format, args...)
}

// Format formats the arguments according to the format string.
//
// Literal text is copied as is, "{{" and "}}" stand for single braces and
// replacement fields have the form
//
//	{[arg][:spec]}
//
// where arg is an optional argument index. Fields either all use indexes
// or none does.
//
// Integers, including amounts without a monetary type, use the spec
//
//	[[fill]align][sign][#][0][width][type]
//
// with align one of '<', '>' (default) and '^', sign one of '+', '-' and ' ',
// and type one of 'd' (default), 'b', 'o', 'x' and 'X'. The '#' flag adds a
// base prefix and the '0' flag pads with zeros after the sign unless an
// alignment is given.
//
// Amounts can also use a monetary spec
//
//	[[fill]align][#][width][#](m|M)
//
// 'm' renders the amount like [Locale.Put] with the local punctuation,
// 'M' with the international one, and '#' adds the currency symbol.
// The result is then aligned like a string: left by default.
//
// Strings use [[fill]align][width][.precision][s].
//
// The width may be given by another argument as "{}" or "{arg}".
func (l *Locale) Format(format string, args ...any) (string, error) {
	f := formatter{loc: l, args: args}
	s, err := f.run(format)
	if err != nil {
		return "", fmt.Errorf("formatting %q: %w", format, err)
	}
	return s, nil
}

type formatter struct {
	loc    *Locale
	args   []any
	next   int
	manual bool
	auto   bool
	buf    []byte
}

func (f *formatter) run(format string) (string, error) {
	for i := 0; i < len(format); {
		c := format[i]
		switch {
		case c == '{' && strings.HasPrefix(format[i:], "{{"):
			f.buf = append(f.buf, '{')
			i += 2
		case c == '}' && strings.HasPrefix(format[i:], "}}"):
			f.buf = append(f.buf, '}')
			i += 2
		case c == '}':
			return "", fmt.Errorf("%w: unmatched '}' at position %v", ErrInvalidFormat, i)
		case c == '{':
			end := fieldEnd(format, i)
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated field at position %v", ErrInvalidFormat, i)
			}
			if err := f.field(format[i+1 : end]); err != nil {
				return "", err
			}
			i = end + 1
		default:
			f.buf = append(f.buf, c)
			i++
		}
	}
	return string(f.buf), nil
}

// fieldEnd returns the index of the '}' closing the field opened at i.
func fieldEnd(format string, i int) int {
	depth := 0
	for j := i; j < len(format); j++ {
		switch format[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func (f *formatter) arg(id string) (any, error) {
	var n int
	if id == "" {
		if f.manual {
			return nil, fmt.Errorf("%w: cannot switch from manual to automatic indexing", ErrInvalidFormat)
		}
		f.auto = true
		n = f.next
		f.next++
	} else {
		if f.auto {
			return nil, fmt.Errorf("%w: cannot switch from automatic to manual indexing", ErrInvalidFormat)
		}
		f.manual = true
		var err error
		n, err = strconv.Atoi(id)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: invalid argument index %q", ErrInvalidFormat, id)
		}
	}
	if n >= len(f.args) {
		return nil, fmt.Errorf("%w: argument %v out of range", ErrInvalidFormat, n)
	}
	return f.args[n], nil
}

func (f *formatter) field(field string) error {
	id, spec, _ := strings.Cut(field, ":")
	arg, err := f.arg(id)
	if err != nil {
		return err
	}
	s, err := f.parseSpec(spec)
	if err != nil {
		return err
	}

	var text string
	switch v := arg.(type) {
	case Amount:
		if s.typ == 'm' || s.typ == 'M' {
			text, err = s.formatMoney(f.loc, v)
		} else {
			text, err = s.formatInt(v.units < 0, magnitude(v.units))
		}
	case string:
		text, err = s.formatString(v)
	case fmt.Stringer:
		text, err = s.formatString(v.String())
	default:
		neg, mag, ok := integer(arg)
		if !ok {
			return fmt.Errorf("%w: unsupported argument type %T", ErrInvalidFormat, arg)
		}
		text, err = s.formatInt(neg, mag)
	}
	if err != nil {
		return err
	}
	f.buf = append(f.buf, text...)
	return nil
}

func integer(arg any) (neg bool, mag uint64, ok bool) {
	var i int64
	switch v := arg.(type) {
	case int:
		i = int64(v)
	case int8:
		i = int64(v)
	case int16:
		i = int64(v)
	case int32:
		i = int64(v)
	case int64:
		i = v
	case uint:
		return false, uint64(v), true
	case uint8:
		return false, uint64(v), true
	case uint16:
		return false, uint64(v), true
	case uint32:
		return false, uint64(v), true
	case uint64:
		return false, v, true
	default:
		return false, 0, false
	}
	return i < 0, magnitude(i), true
}

type fmtSpec struct {
	fill      rune
	align     byte // '<', '>', '^' or 0
	sign      byte // '+', '-', ' ' or 0
	alt       bool
	zero      bool
	width     int
	prec      int // -1 if absent
	typ       byte
	lateAlt   bool // '#' after the width
	signGiven bool
}

func (f *formatter) parseSpec(spec string) (fmtSpec, error) {
	s := fmtSpec{fill: ' ', prec: -1}
	i := 0

	// Fill and alignment
	if c, n := utf8.DecodeRuneInString(spec); n > 0 && n < len(spec) && isAlign(spec[n]) && c != '{' && c != '}' {
		s.fill, s.align = c, spec[n]
		i = n + 1
	} else if i < len(spec) && isAlign(spec[i]) {
		s.align = spec[i]
		i++
	}

	// Sign
	if i < len(spec) && (spec[i] == '+' || spec[i] == '-' || spec[i] == ' ') {
		s.sign, s.signGiven = spec[i], true
		i++
	}

	if i < len(spec) && spec[i] == '#' {
		s.alt = true
		i++
	}
	if i < len(spec) && spec[i] == '0' {
		s.zero = true
		i++
	}

	// Width
	var err error
	s.width, i, err = f.parseCount(spec, i)
	if err != nil {
		return s, err
	}

	// Precision
	if i < len(spec) && spec[i] == '.' {
		i++
		if i == len(spec) || (spec[i] != '{' && (spec[i] < '0' || spec[i] > '9')) {
			return s, fmt.Errorf("%w: missing precision", ErrInvalidFormat)
		}
		s.prec, i, err = f.parseCount(spec, i)
		if err != nil {
			return s, err
		}
	}

	if i < len(spec) && spec[i] == '#' {
		s.lateAlt = true
		i++
	}

	// Type
	if i < len(spec) {
		s.typ = spec[i]
		i++
	}
	if i < len(spec) {
		return s, fmt.Errorf("%w: unexpected %q in spec %q", ErrInvalidFormat, spec[i:], spec)
	}
	return s, nil
}

// parseCount reads a decimal number or a nested "{}" / "{arg}" field
// holding a non-negative integer argument.
func (f *formatter) parseCount(spec string, i int) (int, int, error) {
	if i < len(spec) && spec[i] == '{' {
		end := strings.IndexByte(spec[i:], '}')
		if end < 0 {
			return 0, i, fmt.Errorf("%w: unterminated nested field", ErrInvalidFormat)
		}
		arg, err := f.arg(spec[i+1 : i+end])
		if err != nil {
			return 0, i, err
		}
		neg, mag, ok := integer(arg)
		if !ok || neg || mag > 1<<20 {
			return 0, i, fmt.Errorf("%w: nested width must be a small non-negative integer, got %v", ErrInvalidFormat, arg)
		}
		return int(mag), i + end + 1, nil
	}
	n := 0
	j := i
	for ; j < len(spec) && spec[j] >= '0' && spec[j] <= '9'; j++ {
		n = n*10 + int(spec[j]-'0')
		if n > 1<<20 {
			return 0, j, fmt.Errorf("%w: width too large", ErrInvalidFormat)
		}
	}
	return n, j, nil
}

func isAlign(c byte) bool {
	return c == '<' || c == '>' || c == '^'
}

func (s fmtSpec) formatInt(neg bool, mag uint64) (string, error) {
	if s.lateAlt {
		return "", fmt.Errorf("%w: '#' after width requires a monetary type", ErrInvalidFormat)
	}
	if s.prec >= 0 {
		return "", fmt.Errorf("%w: precision not allowed for integers", ErrInvalidFormat)
	}
	base, prefix, upper := 10, "", false
	switch s.typ {
	case 0, 'd':
	case 'b':
		base, prefix = 2, "0b"
	case 'o':
		base, prefix = 8, "0"
	case 'x':
		base, prefix = 16, "0x"
	case 'X':
		base, prefix, upper = 16, "0X", true
	default:
		return "", fmt.Errorf("%w: type %q not allowed for integers", ErrInvalidFormat, s.typ)
	}

	digits := strconv.FormatUint(mag, base)
	if upper {
		digits = strings.ToUpper(digits)
	}
	if !s.alt || (base == 8 && mag == 0) {
		prefix = ""
	}

	head := ""
	switch {
	case neg:
		head = "-"
	case s.sign == '+':
		head = "+"
	case s.sign == ' ':
		head = " "
	}
	head += prefix

	if s.zero && s.align == 0 {
		if n := s.width - len(head) - len(digits); n > 0 {
			digits = strings.Repeat("0", n) + digits
		}
		return head + digits, nil
	}
	return pad(head+digits, s.width, s.fill, s.align, '>'), nil
}

func (s fmtSpec) formatMoney(loc *Locale, a Amount) (string, error) {
	if s.signGiven || s.zero {
		return "", fmt.Errorf("%w: sign and '0' not allowed with monetary types", ErrInvalidFormat)
	}
	text := loc.Put(a, s.typ == 'M', s.alt || s.lateAlt)
	return s.truncPad(text), nil
}

func (s fmtSpec) formatString(v string) (string, error) {
	if s.signGiven || s.alt || s.lateAlt || s.zero {
		return "", fmt.Errorf("%w: sign, '#' and '0' not allowed for strings", ErrInvalidFormat)
	}
	if s.typ != 0 && s.typ != 's' {
		return "", fmt.Errorf("%w: type %q not allowed for strings", ErrInvalidFormat, s.typ)
	}
	return s.truncPad(v), nil
}

func (s fmtSpec) truncPad(text string) string {
	if s.prec >= 0 && utf8.RuneCountInString(text) > s.prec {
		text = string([]rune(text)[:s.prec])
	}
	return pad(text, s.width, s.fill, s.align, '<')
}

// pad aligns text within width runes. Centering puts the odd fill rune
// on the right.
func pad(text string, width int, fill rune, align, def byte) string {
	n := utf8.RuneCountInString(text)
	if width <= n {
		return text
	}
	if align == 0 {
		align = def
	}
	left, right := 0, 0
	switch total := width - n; align {
	case '<':
		right = total
	case '>':
		left = total
	case '^':
		left = total / 2
		right = total - left
	}
	f := string(fill)
	return strings.Repeat(f, left) + text + strings.Repeat(f, right)
}
