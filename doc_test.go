package money_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/govalues/decimal"
	"github.com/ledgerkit/money"
)

func american() *money.Locale {
	p := money.Punct{
		DecimalPoint: '.',
		ThousandsSep: ',',
		Grouping:     []int{3},
		CurrSymbol:   "$",
		NegativeSign: "-",
		FracDigits:   2,
		PosFormat:    money.Pattern{money.Symbol, money.Sign, money.Value, money.None},
		NegFormat:    money.Pattern{money.Symbol, money.Sign, money.Value, money.None},
	}
	intl := p
	intl.CurrSymbol = "USD "
	return &money.Locale{Name: "en_US", Local: p, Intl: intl}
}

// In this example, a checkout total is computed from a unit price, a tip,
// a quantity, a discount and a VAT rate with a single rounding, and then
// split into equal installments.
func Example_checkout() {
	loc := american()

	unitPrice := money.MustLit("12.00")
	tip, err := loc.Parse("$1.00", false)
	if err != nil {
		panic(err)
	}
	quantity, discount, vat := 2.0, 0.1, 1.2

	total := tip.Add(unitPrice.MulFloat(quantity, 1-discount, vat))
	fmt.Printf("Total: %v\n", loc.Put(total, false, true))

	parts, err := total.Split(5)
	if err != nil {
		panic(err)
	}
	texts := make([]string, len(parts))
	for i, p := range parts {
		texts[i] = loc.Put(p, false, true)
	}
	fmt.Println(strings.Join(texts, " "))
	// Output:
	// Total: $26.92
	// $5.39 $5.39 $5.38 $5.38 $5.38
}

// In this example, the sales tax amount is calculated for a product with
// a given price after tax, using a specified tax rate.
func Example_taxCalculation() {
	loc := american()
	priceAfterTax := money.MustLit("10.00")
	taxRate := decimal.MustParse("0.065")

	rate, _ := taxRate.Float64()
	priceBeforeTax := priceAfterTax.QuoFloat(1 + rate)
	taxAmount := priceAfterTax.Sub(priceBeforeTax)

	fmt.Printf("Price (before tax) = %v\n", loc.Put(priceBeforeTax, false, true))
	fmt.Printf("Tax %-6k         = %v\n", taxRate, loc.Put(taxAmount, false, true))
	fmt.Printf("Price (after tax)  = %v\n", loc.Put(priceAfterTax, false, true))
	// Output:
	// Price (before tax) = $9.39
	// Tax 6.5%           = $0.61
	// Price (after tax)  = $10.00
}

func ExampleNewAmount() {
	fmt.Println(money.NewAmount(1235))
	fmt.Println(money.NewAmount(int8(-15)))
	// Output:
	// 1235
	// -15
}

func ExampleMustLit() {
	fmt.Println(money.MustLit("12.00"))
	fmt.Println(money.MustLit("-15.1"))
	fmt.Println(money.MustLit("9'000'000'000'000'000'000"))
	// Output:
	// 1200
	// -151
	// 9000000000000000000
}

func ExampleParseLit() {
	_, err := money.ParseLit("1.2.3")
	fmt.Println(err)
	// Output:
	// parsing literal "1.2.3": invalid literal: more than one decimal point
}

func ExampleNewAmountFromDecimal() {
	d := decimal.MustParse("26.925")
	a, err := money.NewAmountFromDecimal(d, 2)
	if err != nil {
		panic(err)
	}
	fmt.Println(a)
	// Output: 2692
}

func ExampleAmount_Decimal() {
	a := money.NewAmount(2692)
	d, err := a.Decimal(2)
	if err != nil {
		panic(err)
	}
	fmt.Println(d)
	// Output: 26.92
}

func ExampleAmount_MulFloat() {
	fmt.Println(money.NewAmount(5).MulFloat(0.5))
	fmt.Println(money.NewAmount(7).MulFloat(0.5))
	fmt.Println(money.NewAmount(-5).MulFloat(0.5))
	fmt.Println(money.NewAmount(1200).MulFloat(2, 0.9, 1.2))
	// Output:
	// 2
	// 4
	// -2
	// 2592
}

func ExampleAmount_QuoFloat() {
	fmt.Println(money.NewAmount(5).QuoFloat(2))
	fmt.Println(money.NewAmount(5).QuoFloat(1.9))
	// Output:
	// 2
	// 3
}

func ExampleAmount_Quo() {
	a := money.NewAmount(4)
	fmt.Println(a.Quo(2))
	fmt.Println(a.Quo(3))
	// Output:
	// 2 <nil>
	// 0 computing [4 / 3]: inexact division
}

func ExampleDiv() {
	r := money.Div(money.NewAmount(-10), 3)
	fmt.Println(r.Quot, r.Rem)
	// Output: -3 -1
}

func ExampleAmount_Split() {
	a := money.NewAmount(2692)
	fmt.Println(a.Split(5))
	// Output: [539 539 538 538 538] <nil>
}

func ExampleAmount_Format() {
	a := money.NewAmount(1235)
	fmt.Printf("%v %q %+d %06d|%-6d|%6d\n", a, a, a, a, a, a)
	fmt.Printf("%07d\n", a.Neg())
	// Output:
	// 1235 "1235" +1235 001235|1235  |  1235
	// -001235
}

func ExampleAmount_Scan() {
	var a, b money.Amount
	n, err := fmt.Sscan("15 -20745", &a, &b)
	fmt.Println(n, err, a, b)
	// Output: 2 <nil> 15 -20745
}

func ExamplePutMoney() {
	loc := american()
	a := money.NewAmount(-123456)
	money.PutMoney(os.Stdout, loc, a, false, true) //nolint:errcheck
	fmt.Println()
	money.PutMoney(os.Stdout, loc, a, true, true) //nolint:errcheck
	fmt.Println()
	// Output:
	// $-1,234.56
	// USD -1,234.56
}

func ExampleGetMoney() {
	loc := american()
	r := strings.NewReader("$1,234.56 -0.01 7")
	for range 3 {
		var a money.Amount
		if err := money.GetMoney(r, loc, &a, false); err != nil {
			panic(err)
		}
		fmt.Println(a)
	}
	// Output:
	// 123456
	// -1
	// 700
}

func ExampleFormat() {
	a := money.NewAmount(1235)
	fmt.Println(money.Format("[{:>8}|{:<8}|{:^8}]", a, a, a))
	fmt.Println(money.Format("{:*^{}}", a, 7))
	fmt.Println(money.Format("{0:#x} {0:+} {{literal}}", a))
	// Output:
	// [    1235|1235    |  1235  ] <nil>
	// *1235** <nil>
	// 0x4d3 +1235 {literal} <nil>
}

func ExampleLocale_Format() {
	loc := american()
	a := money.NewAmount(-123456)
	fmt.Println(loc.Format("{:m} {:#m} {:#M}", a, a, a))
	fmt.Println(loc.Format("[{:>14#m}]", a))
	// Output:
	// -1,234.56 $-1,234.56 USD -1,234.56 <nil>
	// [    $-1,234.56] <nil>
}
