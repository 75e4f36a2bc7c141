// Package registry resolves locale names used by the service to
// money.Locale values.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledgerkit/money"
	"github.com/ledgerkit/money/internal/config"
	"github.com/ledgerkit/money/locale"
)

// ErrUnknownLocale is returned by Get for names that were not registered.
var ErrUnknownLocale = errors.New("unknown locale")

// Registry is an immutable set of locales. It is safe for concurrent use.
type Registry struct {
	locales map[string]*money.Locale
	def     string
}

// New builds the registry from configuration. CLDR locales are built first,
// so custom locales may replace them.
func New(cfg *config.MoneyConfig) (*Registry, error) {
	r := &Registry{locales: make(map[string]*money.Locale)}
	r.locales["C"] = money.ClassicLocale()

	for _, name := range cfg.Locales {
		l, err := locale.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("registering locale %q: %w", name, err)
		}
		r.locales[name] = &l
	}
	for _, c := range cfg.Custom {
		l, err := Custom(c)
		if err != nil {
			return nil, fmt.Errorf("registering custom locale %q: %w", c.Name, err)
		}
		r.locales[c.Name] = l
	}

	if _, ok := r.locales[cfg.DefaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q: %w", cfg.DefaultLocale, ErrUnknownLocale)
	}
	r.def = cfg.DefaultLocale
	return r, nil
}

// Get returns the named locale, or the default one for an empty name.
func (r *Registry) Get(name string) (*money.Locale, error) {
	if name == "" {
		name = r.def
	}
	l, ok := r.locales[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, name)
	}
	return l, nil
}

// Names returns the registered locale names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.locales))
	for name := range r.locales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Custom converts a configured punctuation to a locale.
// The international form differs only by its symbol.
func Custom(c config.CustomLocaleConfig) (*money.Locale, error) {
	point, err := singleRune("decimal_point", c.DecimalPoint)
	if err != nil {
		return nil, err
	}
	var sep rune
	if c.ThousandsSep != "" {
		if sep, err = singleRune("thousands_sep", c.ThousandsSep); err != nil {
			return nil, err
		}
	}
	if c.FracDigits < 0 || c.FracDigits > 18 {
		return nil, fmt.Errorf("frac_digits %d out of range [0, 18]", c.FracDigits)
	}
	pos, err := parsePattern(c.PosPattern)
	if err != nil {
		return nil, fmt.Errorf("pos_pattern: %w", err)
	}
	neg := pos
	if len(c.NegPattern) > 0 {
		if neg, err = parsePattern(c.NegPattern); err != nil {
			return nil, fmt.Errorf("neg_pattern: %w", err)
		}
	}

	local := money.Punct{
		DecimalPoint: point,
		ThousandsSep: sep,
		Grouping:     c.Grouping,
		CurrSymbol:   c.Symbol,
		PositiveSign: c.PositiveSign,
		NegativeSign: c.NegativeSign,
		FracDigits:   c.FracDigits,
		PosFormat:    pos,
		NegFormat:    neg,
	}
	intl := local
	if c.IntlSymbol != "" {
		intl.CurrSymbol = c.IntlSymbol
	}
	return &money.Locale{Name: c.Name, Local: local, Intl: intl}, nil
}

func singleRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

var partNames = map[string]money.Part{
	"none":   money.None,
	"space":  money.Space,
	"symbol": money.Symbol,
	"sign":   money.Sign,
	"value":  money.Value,
}

// parsePattern accepts four part names; symbol, sign and value must each
// appear exactly once.
func parsePattern(names []string) (money.Pattern, error) {
	var p money.Pattern
	if len(names) != len(p) {
		return p, fmt.Errorf("want %d parts, got %d", len(p), len(names))
	}
	seen := make(map[money.Part]int)
	for i, name := range names {
		part, ok := partNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return p, fmt.Errorf("unknown part %q", name)
		}
		p[i] = part
		seen[part]++
	}
	for _, part := range []money.Part{money.Symbol, money.Sign, money.Value} {
		if seen[part] != 1 {
			return p, fmt.Errorf("part %v must appear exactly once", part)
		}
	}
	return p, nil
}
