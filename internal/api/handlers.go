package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerkit/money"
	"github.com/ledgerkit/money/internal/checkout"
	"github.com/ledgerkit/money/internal/logger"
	"github.com/ledgerkit/money/internal/registry"
)

var errBadRequest = errors.New("bad request")

// Handler serves the monetary endpoints.
type Handler struct {
	locales *registry.Registry
	calc    *checkout.Calculator
}

// NewHandler creates a handler.
func NewHandler(locales *registry.Registry, calc *checkout.Calculator) *Handler {
	return &Handler{locales: locales, calc: calc}
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Locales handles GET /v1/locales.
func (h *Handler) Locales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locales": h.locales.Names()})
}

// Checkout handles POST /v1/checkout.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if !h.bind(c, &req) {
		return
	}

	loc, err := h.locales.Get(req.Locale)
	if err != nil {
		h.fail(c, err)
		return
	}

	var tip money.Amount
	if req.Tip != "" {
		tip, err = loc.Parse(req.Tip, false)
		if err != nil {
			h.fail(c, fmt.Errorf("tip: %w", err))
			return
		}
	}

	quote, err := h.calc.Compute(checkout.Request{
		UnitPrice:    req.UnitPrice,
		Quantity:     req.Quantity,
		DiscountRate: req.DiscountRate,
		VATRate:      req.VATRate,
		Tip:          tip,
		Installments: req.Installments,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	view := func(a money.Amount) MoneyView {
		return MoneyView{Units: a, Text: loc.Put(a, false, true)}
	}
	resp := CheckoutResponse{
		Locale:   loc.Name,
		Subtotal: view(quote.Subtotal),
		Total:    view(quote.Total),
		Plan:     make([]MoneyView, len(quote.Plan)),
	}
	for i, part := range quote.Plan {
		resp.Plan[i] = view(part)
	}

	logger.WithRequestID(requestID(c)).Debug().
		Str("locale", loc.Name).
		Int64("total", quote.Total.Units()).
		Int("installments", len(quote.Plan)).
		Msg("checkout computed")

	c.JSON(http.StatusOK, resp)
}

// Format handles POST /v1/format.
func (h *Handler) Format(c *gin.Context) {
	var req FormatRequest
	if !h.bind(c, &req) {
		return
	}

	loc, err := h.locales.Get(req.Locale)
	if err != nil {
		h.fail(c, err)
		return
	}

	text, err := loc.Format(req.Format, req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, FormatResponse{Text: text})
}

// Parse handles POST /v1/parse.
func (h *Handler) Parse(c *gin.Context) {
	var req ParseRequest
	if !h.bind(c, &req) {
		return
	}

	loc, err := h.locales.Get(req.Locale)
	if err != nil {
		h.fail(c, err)
		return
	}

	a, err := loc.Parse(req.Text, req.Intl)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ParseResponse{Amount: a})
}

// Divide handles POST /v1/divide.
// With exact set, a non-zero remainder is reported as an error.
func (h *Handler) Divide(c *gin.Context) {
	var req DivideRequest
	if !h.bind(c, &req) {
		return
	}

	if req.Amount.Units() == math.MinInt64 && req.Divisor == -1 {
		h.fail(c, fmt.Errorf("computing [%v / %v]: %w", req.Amount, req.Divisor, money.ErrAmountOverflow))
		return
	}

	if req.Exact {
		q, err := req.Amount.Quo(req.Divisor)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, DivideResponse{Quot: q})
		return
	}

	res := money.Div(req.Amount, req.Divisor)
	c.JSON(http.StatusOK, DivideResponse{Quot: res.Quot, Rem: res.Rem})
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return false
	}
	return true
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, resp := MapErrorToHTTP(err)
	resp.RequestID = requestID(c)
	if status >= http.StatusInternalServerError {
		logger.WithRequestID(resp.RequestID).Error().Err(err).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, resp)
}
