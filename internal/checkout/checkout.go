// Package checkout computes order totals and installment plans.
package checkout

import (
	"errors"
	"fmt"
	"math"

	"github.com/ledgerkit/money"
)

var (
	// ErrInvalidRequest wraps every validation failure.
	ErrInvalidRequest = errors.New("invalid checkout request")
)

// Request describes one order line with an optional tip.
type Request struct {
	UnitPrice    money.Amount
	Quantity     float64
	DiscountRate float64 // fraction in [0, 1]
	VATRate      float64 // fraction, e.g. 0.2 for 20%
	Tip          money.Amount
	Installments int
}

// Quote is the result of [Compute].
type Quote struct {
	Subtotal money.Amount // discounted price including VAT, before the tip
	Total    money.Amount
	Plan     []money.Amount
}

// Calculator validates requests against service limits.
type Calculator struct {
	maxInstallments int
}

// NewCalculator returns a calculator accepting up to maxInstallments parts.
func NewCalculator(maxInstallments int) *Calculator {
	return &Calculator{maxInstallments: maxInstallments}
}

// Compute returns
//
//	total = tip + quantity * (1 - discount) * (1 + vat) * unit price
//
// rounded once, half to even, and splits it into equal installments.
func (c *Calculator) Compute(req Request) (Quote, error) {
	if err := c.validate(req); err != nil {
		return Quote{}, err
	}

	subtotal, ok := req.UnitPrice.TryMulFloat(req.Quantity, 1-req.DiscountRate, 1+req.VATRate)
	if !ok {
		return Quote{}, fmt.Errorf("computing subtotal of %v: %w", req.UnitPrice, money.ErrAmountOverflow)
	}
	total, ok := req.Tip.TryAdd(subtotal)
	if !ok {
		return Quote{}, fmt.Errorf("adding tip %v to %v: %w", req.Tip, subtotal, money.ErrAmountOverflow)
	}
	plan, err := total.Split(req.Installments)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return Quote{Subtotal: subtotal, Total: total, Plan: plan}, nil
}

func (c *Calculator) validate(req Request) error {
	switch {
	case req.UnitPrice.IsNeg():
		return fmt.Errorf("%w: negative unit price %v", ErrInvalidRequest, req.UnitPrice)
	case req.Tip.IsNeg():
		return fmt.Errorf("%w: negative tip %v", ErrInvalidRequest, req.Tip)
	case !finite(req.Quantity) || req.Quantity < 0:
		return fmt.Errorf("%w: quantity %v", ErrInvalidRequest, req.Quantity)
	case !finite(req.DiscountRate) || req.DiscountRate < 0 || req.DiscountRate > 1:
		return fmt.Errorf("%w: discount rate %v not in [0, 1]", ErrInvalidRequest, req.DiscountRate)
	case !finite(req.VATRate) || req.VATRate < 0:
		return fmt.Errorf("%w: vat rate %v", ErrInvalidRequest, req.VATRate)
	case req.Installments < 1 || req.Installments > c.maxInstallments:
		return fmt.Errorf("%w: installments %d not in [1, %d]", ErrInvalidRequest, req.Installments, c.maxInstallments)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
