//go:build !moneydebug

package money

// Unchecked arithmetic on minor units.
// Build with -tags moneydebug to trap overflow instead.

func add64(a, b int64) int64 { return a + b }

func sub64(a, b int64) int64 { return a - b }

func mul64(a, b int64) int64 { return a * b }

func quo64(a, b int64) int64 { return a / b }

func neg64(a int64) int64 { return -a }
