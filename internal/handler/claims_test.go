package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// postJSON runs a handler against a synthetic request and returns the
// recorder. The edge validation under test rejects the request before any
// repository is touched, so a zero-value handler is enough.
func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/claims", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestSubmit_RejectsMissingFields(t *testing.T) {
	h := &ClaimsHandler{}
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing member", `{"provider_id":"H456","diagnosis_code":"D001","procedure_code":"P001","claim_amount":"100.00"}`},
		{"missing provider", `{"member_id":"M123","diagnosis_code":"D001","procedure_code":"P001","claim_amount":"100.00"}`},
		{"missing diagnosis", `{"member_id":"M123","provider_id":"H456","procedure_code":"P001","claim_amount":"100.00"}`},
		{"missing procedure", `{"member_id":"M123","provider_id":"H456","diagnosis_code":"D001","claim_amount":"100.00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Submit, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSubmit_RejectsBadAmounts(t *testing.T) {
	h := &ClaimsHandler{}

	t.Run("zero amount", func(t *testing.T) {
		rec := postJSON(t, h.Submit, `{"member_id":"M123","provider_id":"H456","diagnosis_code":"D001","procedure_code":"P001","claim_amount":"0"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
	t.Run("negative amount", func(t *testing.T) {
		rec := postJSON(t, h.Submit, `{"member_id":"M123","provider_id":"H456","diagnosis_code":"D001","procedure_code":"P001","claim_amount":"-5.00"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
	t.Run("over the cap", func(t *testing.T) {
		rec := postJSON(t, h.Submit, `{"member_id":"M123","provider_id":"H456","diagnosis_code":"D001","procedure_code":"P001","claim_amount":"1000000.01"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPagination(t *testing.T) {
	e := echo.New()
	newCtx := func(query string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/v1/claims?"+query, nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("defaults", func(t *testing.T) {
		page, size, err := pagination(newCtx(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page != 1 || size != 20 {
			t.Errorf("got page=%d size=%d, want 1/20", page, size)
		}
	})
	t.Run("explicit values", func(t *testing.T) {
		page, size, err := pagination(newCtx("page=3&page_size=50"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page != 3 || size != 50 {
			t.Errorf("got page=%d size=%d, want 3/50", page, size)
		}
	})
	t.Run("page zero rejected", func(t *testing.T) {
		if _, _, err := pagination(newCtx("page=0")); err == nil {
			t.Error("expected error for page=0")
		}
	})
	t.Run("oversized page_size rejected", func(t *testing.T) {
		if _, _, err := pagination(newCtx("page_size=101")); err == nil {
			t.Error("expected error for page_size=101")
		}
	})
	t.Run("non-numeric rejected", func(t *testing.T) {
		if _, _, err := pagination(newCtx("page=abc")); err == nil {
			t.Error("expected error for page=abc")
		}
	})
}

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	if err := Health(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}
