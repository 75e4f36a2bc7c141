// Package litcheck defines an analyzer that reports constant monetary
// literals which money.MustLit would reject at run time.
package litcheck

import (
	"go/ast"
	"go/constant"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/ledgerkit/money"
)

const moneyPath = "github.com/ledgerkit/money"

// Analyzer checks string constants passed to money.MustLit and money.ParseLit.
var Analyzer = &analysis.Analyzer{
	Name:     "moneylit",
	Doc:      "check constant arguments of money.MustLit and money.ParseLit",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	ins.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		fn := typeutil.StaticCallee(pass.TypesInfo, call)
		if fn == nil || fn.Pkg() == nil || fn.Pkg().Path() != moneyPath {
			return
		}
		if fn.Name() != "MustLit" && fn.Name() != "ParseLit" {
			return
		}
		if len(call.Args) != 1 {
			return
		}
		tv, ok := pass.TypesInfo.Types[call.Args[0]]
		if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
			return
		}
		if _, err := money.ParseLit(constant.StringVal(tv.Value)); err != nil {
			pass.Reportf(call.Args[0].Pos(), "invalid monetary literal: %v", err)
		}
	})
	return nil, nil
}
