/*
Package money implements exact monetary amounts stored as a whole number of
minor units of currency (cents, pennies, fens).
The currency itself is not tracked: an amount is a plain 8-byte value and
the [Locale] used for text decides how minor units map to major units.

# Features

  - Immutable amounts, safe for use across multiple goroutines
  - Exact integer arithmetic with optional overflow checks
  - Scaling by floating-point factors with a single half-to-even rounding
  - Exact division that reports remainders, and fair splitting
  - Literals such as "12.00" checked before the program runs
  - Classic and locale-monetary text and JSON codecs
  - A brace-based format language with monetary types 'm' and 'M'

# Representation

An [Amount] wraps an int64 and has no constructor taking a float, so a
fractional number of minor units cannot be created by accident.
The range is that of int64: roughly ±92 quadrillion major units for a
currency with 2 fractional digits.

# Operations

Add, Sub, Neg, Inc and Dec are exact. In default builds overflow wraps around
like any int64 arithmetic; building with the moneydebug tag turns it into a
panic. TryAdd, TrySub and TryMul report overflow instead.

MulFloat and QuoFloat scale by the exact binary value of their factor and
round the result half to even: 2.5 becomes 2 and 3.5 becomes 4.
Since 1.005 is stored slightly below itself, 300 times 1.005 is 301.

Quo only succeeds when the division is exact and otherwise returns an
[InexactDivisionError]. [Div] and QuoRem return the quotient and remainder,
Split distributes a remainder over parts.

# Text

String, Scan and the JSON and text codecs use the classic representation,
the plain number of minor units. [PutMoney] and [GetMoney] use the
locale-monetary representation described by a [Punct], e.g. "$26.92".
[Format] and [Locale.Format] combine both through replacement fields such as
"{:#m}".

# Errors

Parsing errors wrap [ErrInvalidLiteral], [ErrInvalidMoney], [ErrInvalidFormat]
or [ErrAmountOverflow]. Misuse of arithmetic, such as division by zero or a NaN
factor, is a contract violation and panics.
*/
package money
