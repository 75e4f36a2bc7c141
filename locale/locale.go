// Package locale builds [money.Locale] values from CLDR data shipped with
// golang.org/x/text, so that amounts can be written and read the way a
// language and region expect them.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ledgerkit/money"
)

var errNoCurrency = errors.New("no currency for region")

// Languages writing the currency symbol after the value.
var symbolAfter = map[string]bool{
	"bg": true, "cs": true, "da": true, "de": true, "el": true, "es": true,
	"et": true, "fi": true, "fr": true, "hr": true, "hu": true, "it": true,
	"lt": true, "lv": true, "nb": true, "pl": true, "ro": true, "ru": true,
	"sk": true, "sl": true, "sv": true, "uk": true, "vi": true,
}

// New returns the locale for the tag, using the currency of its region.
// See also [ForCurrency].
func New(tag language.Tag) (money.Locale, error) {
	cur, conf := currency.FromTag(tag)
	if conf == language.No {
		return money.Locale{}, fmt.Errorf("building locale %v: %w", tag, errNoCurrency)
	}
	return ForCurrency(tag, cur)
}

// MustNew is like [New] but panics if the tag has no currency.
func MustNew(tag language.Tag) money.Locale {
	l, err := New(tag)
	if err != nil {
		panic(fmt.Sprintf("New(%v) failed: %v", tag, err))
	}
	return l
}

// Parse is like [New] but takes a BCP 47 tag such as "en-US", optionally
// followed by a colon and an ISO 4217 code to override the currency,
// e.g. "de-CH:EUR".
func Parse(s string) (money.Locale, error) {
	name, code, found := strings.Cut(s, ":")
	tag, err := language.Parse(name)
	if err != nil {
		return money.Locale{}, fmt.Errorf("parsing locale %q: %w", s, err)
	}
	if !found {
		return New(tag)
	}
	cur, err := currency.ParseISO(code)
	if err != nil {
		return money.Locale{}, fmt.Errorf("parsing locale %q: %w", s, err)
	}
	return ForCurrency(tag, cur)
}

// ForCurrency returns the locale for the tag and an explicit currency.
// The number of fractional digits is the standard rounding of the currency,
// separators and grouping are those the language uses for numbers.
func ForCurrency(tag language.Tag, cur currency.Unit) (money.Locale, error) {
	p := message.NewPrinter(tag)
	scale, _ := currency.Standard.Rounding(cur)

	sym := p.Sprint(currency.Symbol(cur))
	if sym == "" {
		sym = cur.String()
	}

	local := money.Punct{
		DecimalPoint: decimalPoint(p),
		FracDigits:   scale,
		CurrSymbol:   sym,
		NegativeSign: "-",
	}
	local.ThousandsSep, local.Grouping = grouping(p)

	intl := local
	base, _ := tag.Base()
	if symbolAfter[base.String()] {
		local.PosFormat = money.Pattern{money.Sign, money.Value, money.Space, money.Symbol}
		local.NegFormat = local.PosFormat
		intl.PosFormat, intl.NegFormat = local.PosFormat, local.NegFormat
		intl.CurrSymbol = cur.String()
	} else {
		local.PosFormat = money.Pattern{money.Symbol, money.Sign, money.None, money.Value}
		local.NegFormat = money.Pattern{money.Sign, money.Symbol, money.None, money.Value}
		intl.PosFormat, intl.NegFormat = local.PosFormat, local.NegFormat
		intl.CurrSymbol = cur.String() + " "
	}

	return money.Locale{
		Name:  tag.String() + ":" + cur.String(),
		Local: local,
		Intl:  intl,
	}, nil
}

// decimalPoint formats a number that has one fractional digit.
func decimalPoint(p *message.Printer) rune {
	for _, c := range p.Sprintf("%.1f", 0.5) {
		if !unicode.IsDigit(c) {
			return c
		}
	}
	return '.'
}

// grouping formats a number long enough to show every
// group size and returns the separator and the group sizes from the right.
func grouping(p *message.Printer) (rune, []int) {
	s := p.Sprintf("%d", 1234567890)
	var sep rune
	var sizes []int
	n := 0
	for i := len(s); i > 0; {
		c, w := utf8.DecodeLastRuneInString(s[:i])
		i -= w
		if unicode.IsDigit(c) {
			n++
			continue
		}
		if sep == 0 {
			sep = c
		}
		sizes = append(sizes, n)
		n = 0
	}
	if sep == 0 || len(sizes) == 0 {
		return 0, nil
	}
	if len(sizes) > 1 && sizes[1] != sizes[0] {
		return sep, sizes[:2]
	}
	return sep, sizes[:1]
}
