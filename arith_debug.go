//go:build moneydebug

package money

import (
	"fmt"
	"math"

	"github.com/JohnCGriffin/overflow"
)

func add64(a, b int64) int64 {
	c, ok := overflow.Add64(a, b)
	if !ok {
		panic(fmt.Sprintf("computing [%v + %v]: %v", a, b, ErrAmountOverflow))
	}
	return c
}

func sub64(a, b int64) int64 {
	c, ok := overflow.Sub64(a, b)
	if !ok {
		panic(fmt.Sprintf("computing [%v - %v]: %v", a, b, ErrAmountOverflow))
	}
	return c
}

func mul64(a, b int64) int64 {
	c, ok := overflow.Mul64(a, b)
	if !ok {
		panic(fmt.Sprintf("computing [%v * %v]: %v", a, b, ErrAmountOverflow))
	}
	return c
}

func quo64(a, b int64) int64 {
	if a == math.MinInt64 && b == -1 {
		panic(fmt.Sprintf("computing [%v / %v]: %v", a, b, ErrAmountOverflow))
	}
	return a / b
}

func neg64(a int64) int64 {
	if a == math.MinInt64 {
		panic(fmt.Sprintf("computing [-%v]: %v", a, ErrAmountOverflow))
	}
	return -a
}
