package a

import "github.com/ledgerkit/money"

const price = "12.00"

var (
	unitPrice = money.MustLit(price)
	tip       = money.MustLit("1.00")
	big       = money.MustLit("9'000'000'000'000'000'000")
	twoPoints = money.MustLit("1.2.3")                // want `invalid monetary literal`
	tooBig    = money.MustLit("90000000000000000000") // want `invalid monetary literal`
	letters   = money.MustLit("12" + "x")             // want `invalid monetary literal`
)

func parse(s string) {
	money.ParseLit(s)
	money.ParseLit("")   // want `invalid monetary literal`
	money.ParseLit("-0") // ok
}

func MustLit(s string) int { return 0 }

func shadow() {
	MustLit("not checked")
}
