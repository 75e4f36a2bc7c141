package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ledgerkit/money"
	"github.com/ledgerkit/money/internal/checkout"
	"github.com/ledgerkit/money/internal/config"
	"github.com/ledgerkit/money/internal/registry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, rl config.RateLimitConfig) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		App:    config.AppConfig{Env: "test"},
		Server: config.ServerConfig{RateLimit: rl},
		Money: config.MoneyConfig{
			DefaultLocale:   "en-US",
			Locales:         []string{"en-US", "de-DE"},
			MaxInstallments: 12,
		},
	}
	reg, err := registry.New(&cfg.Money)
	if err != nil {
		t.Fatalf("registry.New() failed: %v", err)
	}
	return NewRouter(cfg, NewHandler(reg, checkout.NewCalculator(cfg.Money.MaxInstallments)))
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Health(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})
	w := do(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Errorf("response has no %v header", RequestIDHeader)
	}
}

func TestHandler_Checkout(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	t.Run("success", func(t *testing.T) {
		body := `{"unit_price":1200,"quantity":2,"discount_rate":0.1,"vat_rate":0.2,"tip":"$1.00","installments":5}`
		w := do(t, r, http.MethodPost, "/v1/checkout", body)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %v, want %v, body %s", w.Code, http.StatusOK, w.Body)
		}
		var got CheckoutResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if got.Subtotal.Units != money.NewAmount(2592) {
			t.Errorf("subtotal = %v, want 2592", got.Subtotal.Units)
		}
		if got.Total.Units != money.NewAmount(2692) || got.Total.Text != "$26.92" {
			t.Errorf("total = %+v, want 2692 $26.92", got.Total)
		}
		texts := make([]string, len(got.Plan))
		for i, p := range got.Plan {
			texts[i] = p.Text
		}
		if s := strings.Join(texts, " "); s != "$5.39 $5.39 $5.38 $5.38 $5.38" {
			t.Errorf("plan = %q", s)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			body   string
			status int
			code   ErrorCode
		}{
			{`{"unit_price":1200,"quantity":1,"installments":0}`, http.StatusBadRequest, ErrorCodeInvalidArgument},
			{`{"unit_price":1200,"quantity":1,"installments":13}`, http.StatusBadRequest, ErrorCodeInvalidArgument},
			{`{"unit_price":1200,"quantity":1,"installments":1,"tip":"1,00 $"}`, http.StatusBadRequest, ErrorCodeInvalidArgument},
			{`{"unit_price":1200,"quantity":1,"installments":1,"locale":"xx"}`, http.StatusBadRequest, ErrorCodeUnknownLocale},
			{`{"unit_price":9223372036854775807,"quantity":2,"installments":1}`, http.StatusUnprocessableEntity, ErrorCodeAmountOverflow},
			{`{"unit_price":"abc"}`, http.StatusBadRequest, ErrorCodeInvalidArgument},
			{`{`, http.StatusBadRequest, ErrorCodeInvalidArgument},
		}
		for _, tt := range tests {
			w := do(t, r, http.MethodPost, "/v1/checkout", tt.body)
			if w.Code != tt.status {
				t.Errorf("POST %s: status = %v, want %v", tt.body, w.Code, tt.status)
				continue
			}
			var got ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Errorf("POST %s: json.Unmarshal() failed: %v", tt.body, err)
				continue
			}
			if got.Code != string(tt.code) {
				t.Errorf("POST %s: code = %q, want %q", tt.body, got.Code, tt.code)
			}
			if got.RequestID == "" {
				t.Errorf("POST %s: request_id is empty", tt.body)
			}
		}
	})
}

func TestHandler_Format(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			body, want string
		}{
			{`{"format":"{:#m}","amount":-123456}`, "-$1,234.56"},
			{`{"format":"{:#M}","amount":-123456}`, "-USD 1,234.56"},
			{`{"format":"[{:>10m}]","amount":2692}`, "[     26.92]"},
			{`{"format":"{:x}","amount":255}`, "ff"},
			{`{"format":"{:#m}","amount":123456,"locale":"de-DE"}`, "1.234,56 €"},
		}
		for _, tt := range tests {
			w := do(t, r, http.MethodPost, "/v1/format", tt.body)
			if w.Code != http.StatusOK {
				t.Errorf("POST %s: status = %v, body %s", tt.body, w.Code, w.Body)
				continue
			}
			var got FormatResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Errorf("POST %s: json.Unmarshal() failed: %v", tt.body, err)
				continue
			}
			if got.Text != tt.want {
				t.Errorf("POST %s: text = %q, want %q", tt.body, got.Text, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			`{"format":"{:+m}","amount":1}`,
			`{"format":"{","amount":1}`,
			`{"format":"{1}","amount":1}`,
			`{"amount":1}`,
		}
		for _, body := range tests {
			w := do(t, r, http.MethodPost, "/v1/format", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("POST %s: status = %v, want %v", body, w.Code, http.StatusBadRequest)
			}
		}
	})
}

func TestHandler_Parse(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			body string
			want int64
		}{
			{`{"text":"-$1,234.56"}`, -123456},
			{`{"text":"1,234.56"}`, 123456},
			{`{"text":"-USD 1,234.56","intl":true}`, -123456},
			{`{"text":"$7"}`, 700},
		}
		for _, tt := range tests {
			w := do(t, r, http.MethodPost, "/v1/parse", tt.body)
			if w.Code != http.StatusOK {
				t.Errorf("POST %s: status = %v, body %s", tt.body, w.Code, w.Body)
				continue
			}
			var got ParseResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Errorf("POST %s: json.Unmarshal() failed: %v", tt.body, err)
				continue
			}
			if got.Amount != money.NewAmount(tt.want) {
				t.Errorf("POST %s: amount = %v, want %v", tt.body, got.Amount, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			body   string
			status int
		}{
			{`{"text":"$1.2"}`, http.StatusBadRequest},
			{`{"text":"$12,34.56"}`, http.StatusBadRequest},
			{`{"text":"abc"}`, http.StatusBadRequest},
			{`{"text":""}`, http.StatusBadRequest},
			{`{"text":"$99,999,999,999,999,999.99"}`, http.StatusUnprocessableEntity},
		}
		for _, tt := range tests {
			w := do(t, r, http.MethodPost, "/v1/parse", tt.body)
			if w.Code != tt.status {
				t.Errorf("POST %s: status = %v, want %v", tt.body, w.Code, tt.status)
			}
		}
	})
}

func TestHandler_Divide(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			body      string
			quot, rem int64
		}{
			{`{"amount":-10,"divisor":3}`, -3, -1},
			{`{"amount":10,"divisor":-3}`, -3, 1},
			{`{"amount":12,"divisor":4,"exact":true}`, 3, 0},
		}
		for _, tt := range tests {
			w := do(t, r, http.MethodPost, "/v1/divide", tt.body)
			if w.Code != http.StatusOK {
				t.Errorf("POST %s: status = %v, body %s", tt.body, w.Code, w.Body)
				continue
			}
			var got DivideResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Errorf("POST %s: json.Unmarshal() failed: %v", tt.body, err)
				continue
			}
			if got.Quot != money.NewAmount(tt.quot) || got.Rem != money.NewAmount(tt.rem) {
				t.Errorf("POST %s: got %v, %v, want %v, %v", tt.body, got.Quot, got.Rem, tt.quot, tt.rem)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			body   string
			status int
			code   ErrorCode
		}{
			{`{"amount":4,"divisor":3,"exact":true}`, http.StatusUnprocessableEntity, ErrorCodeInexactDivision},
			{`{"amount":4,"divisor":0}`, http.StatusBadRequest, ErrorCodeInvalidArgument},
			{`{"amount":-9223372036854775808,"divisor":-1}`, http.StatusUnprocessableEntity, ErrorCodeAmountOverflow},
		}
		for _, tt := range tests {
			w := do(t, r, http.MethodPost, "/v1/divide", tt.body)
			if w.Code != tt.status {
				t.Errorf("POST %s: status = %v, want %v", tt.body, w.Code, tt.status)
				continue
			}
			var got ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Errorf("POST %s: json.Unmarshal() failed: %v", tt.body, err)
				continue
			}
			if got.Code != string(tt.code) {
				t.Errorf("POST %s: code = %q, want %q", tt.body, got.Code, tt.code)
			}
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1})
	if w := do(t, r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("first request status = %v, want %v", w.Code, http.StatusOK)
	}
	w := do(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %v, want %v", w.Code, http.StatusTooManyRequests)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("%v = %q, want %q", RequestIDHeader, got, "abc-123")
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter(t, config.RateLimitConfig{})
	if w := do(t, r, http.MethodGet, "/nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %v, want %v", w.Code, http.StatusNotFound)
	}
	if w := do(t, r, http.MethodGet, "/v1/checkout", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %v, want %v", w.Code, http.StatusMethodNotAllowed)
	}
}
