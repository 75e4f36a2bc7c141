// Command moneylit reports monetary literals that money.MustLit would
// reject, before the program runs.
//
// Usage:
//
//	moneylit ./...
//	go vet -vettool=$(which moneylit) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/ledgerkit/money/internal/litcheck"
)

func main() {
	singlechecker.Main(litcheck.Analyzer)
}
