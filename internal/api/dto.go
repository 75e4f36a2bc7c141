package api

import "github.com/ledgerkit/money"

// CheckoutRequest is the body of POST /v1/checkout.
// Amounts are minor units, the tip is text in the request locale.
type CheckoutRequest struct {
	UnitPrice    money.Amount `json:"unit_price"`
	Quantity     float64      `json:"quantity"`
	DiscountRate float64      `json:"discount_rate"`
	VATRate      float64      `json:"vat_rate"`
	Tip          string       `json:"tip"`
	Installments int          `json:"installments"`
	Locale       string       `json:"locale"`
}

// MoneyView renders an amount both as minor units and as locale text.
type MoneyView struct {
	Units money.Amount `json:"units"`
	Text  string       `json:"text"`
}

// CheckoutResponse is the result of POST /v1/checkout.
type CheckoutResponse struct {
	Locale   string      `json:"locale"`
	Subtotal MoneyView   `json:"subtotal"`
	Total    MoneyView   `json:"total"`
	Plan     []MoneyView `json:"plan"`
}

// FormatRequest is the body of POST /v1/format.
type FormatRequest struct {
	Format string       `json:"format" binding:"required"`
	Amount money.Amount `json:"amount"`
	Locale string       `json:"locale"`
}

// FormatResponse is the result of POST /v1/format.
type FormatResponse struct {
	Text string `json:"text"`
}

// ParseRequest is the body of POST /v1/parse.
type ParseRequest struct {
	Text   string `json:"text" binding:"required"`
	Locale string `json:"locale"`
	Intl   bool   `json:"intl"`
}

// ParseResponse is the result of POST /v1/parse.
type ParseResponse struct {
	Amount money.Amount `json:"amount"`
}

// DivideRequest is the body of POST /v1/divide.
type DivideRequest struct {
	Amount  money.Amount `json:"amount"`
	Divisor int64        `json:"divisor" binding:"required"`
	Exact   bool         `json:"exact"`
}

// DivideResponse is the result of POST /v1/divide.
type DivideResponse struct {
	Quot money.Amount `json:"quot"`
	Rem  money.Amount `json:"rem"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
