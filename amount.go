package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/JohnCGriffin/overflow"
	"github.com/govalues/decimal"
	"gopkg.in/inf.v0"
)

var (
	// ErrAmountOverflow is returned when a result cannot be represented as an int64
	// number of minor units.
	ErrAmountOverflow = errors.New("amount overflow")
	// ErrInexactDivision is matched by every [InexactDivisionError].
	ErrInexactDivision = errors.New("inexact division")
	errInvalidFactor   = errors.New("invalid factor")
	errDivisionByZero  = errors.New("division by zero")
	errInvalidParts    = errors.New("number of parts must be positive")
)

// Integer is a constraint that permits any integer type.
// Floating-point types are deliberately excluded, see [NewAmount].
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Amount type represents a monetary amount as an exact number of minor units
// of currency (e.g. cents, pennies, fens).
// Its zero value corresponds to 0.
// Amount does not know its currency: the caller owns the currency identity and,
// when rendering text, the [Locale] describes how minor units are grouped
// into major units.
//
// Amount is a plain 8-byte value. It can be copied and compared with == and is
// safe for concurrent use by multiple goroutines.
type Amount struct {
	units int64 // minor units
}

// NewAmount returns an amount equal to the given number of minor units.
// Values of unsigned or wider types are converted with the usual Go integer
// conversion rules.
//
// There is intentionally no constructor accepting a float: use [Amount.MulFloat]
// to apply a floating-point factor with well-defined rounding.
func NewAmount[T Integer](units T) Amount {
	return Amount{units: int64(units)}
}

// Units returns the amount in minor units of currency.
func (a Amount) Units() int64 {
	return a.units
}

// Decimal returns the amount in major units, assuming that one major unit
// is 10^scale minor units.
// For example, 12345 minor units with scale 2 are returned as 123.45.
// See also constructor [NewAmountFromDecimal].
//
// Decimal returns an error if the scale is negative or greater than [decimal.MaxScale].
func (a Amount) Decimal(scale int) (decimal.Decimal, error) {
	d, err := decimal.New(a.units, scale)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", a, err)
	}
	return d, nil
}

// NewAmountFromDecimal converts a decimal in major units to an amount,
// assuming that one major unit is 10^scale minor units.
// Digits beyond the scale are rounded using [rounding half to even] (banker's rounding).
// See also method [Amount.Decimal].
//
// NewAmountFromDecimal returns an error if the scale is out of range or the
// result cannot be represented as an int64 number of minor units.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func NewAmountFromDecimal(d decimal.Decimal, scale int) (Amount, error) {
	whole, frac, ok := d.Int64(scale)
	if !ok {
		return Amount{}, fmt.Errorf("converting %v with scale %v: %w", d, scale, ErrAmountOverflow)
	}
	u := frac
	if whole != 0 {
		p, ok := pow10(scale)
		if ok {
			u, ok = overflow.Mul64(whole, p)
		}
		if ok {
			u, ok = overflow.Add64(u, frac)
		}
		if !ok {
			return Amount{}, fmt.Errorf("converting %v with scale %v: %w", d, scale, ErrAmountOverflow)
		}
	}
	return Amount{units: u}, nil
}

// pow10 returns 10^scale, or false if it does not fit into an int64.
func pow10(scale int) (int64, bool) {
	p := int64(1)
	for range scale {
		var ok bool
		if p, ok = overflow.Mul64(p, 10); !ok {
			return 0, false
		}
	}
	return p, true
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	switch {
	case a.units < 0:
		return -1
	case a.units > 0:
		return 1
	default:
		return 0
	}
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNeg() bool {
	return a.units < 0
}

// IsPos returns:
//
//	true  if a > 0
//	false otherwise
func (a Amount) IsPos() bool {
	return a.units > 0
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.units == 0
}

// Neg returns an amount with the opposite sign.
// The negation of the most negative amount is a contract violation.
func (a Amount) Neg() Amount {
	return Amount{units: neg64(a.units)}
}

// Inc returns the amount increased by one minor unit.
func (a Amount) Inc() Amount {
	return Amount{units: add64(a.units, 1)}
}

// Dec returns the amount decreased by one minor unit.
func (a Amount) Dec() Amount {
	return Amount{units: sub64(a.units, 1)}
}

// Add returns the exact sum of amounts a and b.
// The caller must keep the result within the int64 range, see [Amount.TryAdd].
func (a Amount) Add(b Amount) Amount {
	return Amount{units: add64(a.units, b.units)}
}

// Sub returns the exact difference between amounts a and b.
// The caller must keep the result within the int64 range, see [Amount.TrySub].
func (a Amount) Sub(b Amount) Amount {
	return Amount{units: sub64(a.units, b.units)}
}

// Mul returns the exact product of amount a and integer factor n.
// The caller must keep the result within the int64 range, see [Amount.TryMul].
// See also method [Amount.MulFloat].
func (a Amount) Mul(n int64) Amount {
	return Amount{units: mul64(a.units, n)}
}

// TryAdd is like [Amount.Add] but returns false instead of overflowing.
func (a Amount) TryAdd(b Amount) (Amount, bool) {
	u, ok := overflow.Add64(a.units, b.units)
	if !ok {
		return Amount{}, false
	}
	return Amount{units: u}, true
}

// TrySub is like [Amount.Sub] but returns false instead of overflowing.
func (a Amount) TrySub(b Amount) (Amount, bool) {
	u, ok := overflow.Sub64(a.units, b.units)
	if !ok {
		return Amount{}, false
	}
	return Amount{units: u}, true
}

// TryMul is like [Amount.Mul] but returns false instead of overflowing.
func (a Amount) TryMul(n int64) (Amount, bool) {
	u, ok := overflow.Mul64(a.units, n)
	if !ok {
		return Amount{}, false
	}
	return Amount{units: u}, true
}

// MulFloat returns the product of amount a and the floating-point factors,
// rounded to a whole number of minor units using [rounding half to even]
// (banker's rounding).
//
// The factors are multiplied together in float64 first, in the order given,
// and the amount is scaled exactly once.
// Thus a.MulFloat(f1, f2) is rounded once, like f1 * f2 * a with a fixed-point
// right operand, and not once per factor.
// The product is computed from the exact binary value of the combined factor,
// so 300 * 1.005 is 301: the float nearest to 1.005 is slightly below it.
//
// MulFloat panics if the combined factor is NaN or infinite, or if the result
// cannot be represented as an int64 number of minor units.
// These conditions are contract violations, like dividing by zero.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (a Amount) MulFloat(factors ...float64) Amount {
	f := 1.0
	for _, e := range factors {
		f *= e
	}
	b, err := a.mulFloat(f)
	if err != nil {
		panic(fmt.Sprintf("%v.MulFloat(%v) failed: %v", a, f, err))
	}
	return b
}

// TryMulFloat is like [Amount.MulFloat] but returns false instead of
// panicking on a special factor or an overflow.
func (a Amount) TryMulFloat(factors ...float64) (Amount, bool) {
	f := 1.0
	for _, e := range factors {
		f *= e
	}
	b, err := a.mulFloat(f)
	if err != nil {
		return Amount{}, false
	}
	return b, true
}

func (a Amount) mulFloat(f float64) (Amount, error) {
	x, err := newFactor(f)
	if err != nil {
		return Amount{}, err
	}
	p := new(inf.Dec).Mul(x, inf.NewDec(a.units, 0))
	return newAmountFromDec(p.Round(p, 0, inf.RoundHalfEven))
}

// Quo returns the exact quotient of amount a and integer divisor d.
// See also methods [Amount.QuoRem], [Amount.QuoFloat], and [Amount.Split].
//
// Quo returns an [InexactDivisionError] if a is not evenly divisible by d.
// In that case a is left as it was and the remainder can be obtained with [Div].
// Quo panics if d is 0.
func (a Amount) Quo(d int64) (Amount, error) {
	if a.units%d != 0 {
		return Amount{}, InexactDivisionError{Dividend: a.units, Divisor: d}
	}
	return Amount{units: quo64(a.units, d)}, nil
}

// MustQuo is like [Amount.Quo] but panics if the division is inexact.
func (a Amount) MustQuo(d int64) Amount {
	b, err := a.Quo(d)
	if err != nil {
		panic(fmt.Sprintf("%v.Quo(%v) failed: %v", a, d, err))
	}
	return b
}

// QuoFloat returns the quotient of amount a and floating-point divisor f,
// rounded to a whole number of minor units using [rounding half to even]
// (banker's rounding).
// The quotient is computed from the exact binary value of f.
//
// QuoFloat panics if f is 0, NaN or infinite, or if the result cannot be
// represented as an int64 number of minor units.
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (a Amount) QuoFloat(f float64) Amount {
	b, err := a.quoFloat(f)
	if err != nil {
		panic(fmt.Sprintf("%v.QuoFloat(%v) failed: %v", a, f, err))
	}
	return b
}

func (a Amount) quoFloat(f float64) (Amount, error) {
	x, err := newFactor(f)
	if err != nil {
		return Amount{}, err
	}
	if f == 0 {
		return Amount{}, errDivisionByZero
	}
	q := new(inf.Dec).QuoRound(inf.NewDec(a.units, 0), x, 0, inf.RoundHalfEven)
	return newAmountFromDec(q)
}

// newFactor returns the exact decimal value of a finite float.
// A float is mant * 2^exp, and for exp < 0 that equals mant * 5^-exp / 10^-exp.
func newFactor(f float64) (*inf.Dec, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: special value %v", errInvalidFactor, f)
	}
	frac, exp := math.Frexp(f)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return inf.NewDecBig(mant.Lsh(mant, uint(exp)), 0), nil
	}
	pow5 := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return inf.NewDecBig(mant.Mul(mant, pow5), inf.Scale(-exp)), nil
}

// newAmountFromDec converts a decimal with scale 0 to an amount.
func newAmountFromDec(d *inf.Dec) (Amount, error) {
	u := d.UnscaledBig()
	if !u.IsInt64() {
		return Amount{}, ErrAmountOverflow
	}
	return Amount{units: u.Int64()}, nil
}

// InexactDivisionError is returned by [Amount.Quo] when the dividend is not
// evenly divisible by the divisor.
// It carries both operands in minor units, so callers can fall back to
// [Div] or [Amount.Split] when a remainder is legitimate.
type InexactDivisionError struct {
	Dividend int64
	Divisor  int64
}

func (e InexactDivisionError) Error() string {
	return fmt.Sprintf("computing [%v / %v]: %v", e.Dividend, e.Divisor, ErrInexactDivision)
}

// Unwrap allows errors.Is(err, [ErrInexactDivision]).
func (e InexactDivisionError) Unwrap() error {
	return ErrInexactDivision
}

// DivResult is the result of [Div].
// Quot is truncated toward zero and Rem has the sign of the dividend,
// so that Quot * divisor + Rem equals the dividend.
type DivResult struct {
	Quot Amount
	Rem  Amount
}

// Div returns the quotient and remainder of amount a and integer divisor d,
// following the truncated division of Go integers.
// See also methods [Amount.QuoRem] and [Amount.Split].
//
// Div panics if d is 0.
func Div(a Amount, d int64) DivResult {
	q, r := a.QuoRem(d)
	return DivResult{Quot: q, Rem: r}
}

// QuoRem returns the quotient q and remainder r of amount a and integer divisor d
// such that a = d * q + r, where q is truncated toward zero and
// the sign of the remainder r is the same as the sign of the dividend a.
// See also function [Div].
//
// QuoRem panics if d is 0.
func (a Amount) QuoRem(d int64) (q, r Amount) {
	return Amount{units: quo64(a.units, d)}, Amount{units: a.units % d}
}

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible.
// If the original amount cannot be divided equally among the specified number
// of parts, the remainder is distributed one minor unit at a time among the
// first parts of the slice.
// See also methods [Amount.Quo] and [Amount.QuoRem].
//
// Split returns an error if the number of parts is not a positive integer.
func (a Amount) Split(parts int) ([]Amount, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("splitting %v into %v parts: %w", a, parts, errInvalidParts)
	}
	quo, rem := a.QuoRem(int64(parts))
	ulp := NewAmount(rem.Sign())

	res := make([]Amount, parts)
	for i := range res {
		res[i] = quo
		// Reminder distribution
		if !rem.IsZero() {
			rem = rem.Sub(ulp)
			res[i] = res[i].Add(ulp)
		}
	}
	return res, nil
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.units < b.units:
		return -1
	case a.units > b.units:
		return 1
	default:
		return 0
	}
}

// Less returns true if a < b.
// It is a convenience for [sort.Slice] and [slices.SortFunc] callers.
func (a Amount) Less(b Amount) bool {
	return a.units < b.units
}

// Min returns the smaller amount.
func (a Amount) Min(b Amount) Amount {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger amount.
func (a Amount) Max(b Amount) Amount {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
