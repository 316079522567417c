package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext(t, "/"))

	if p.PageSize != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, p.PageSize)
	}
	if p.Page != 0 {
		t.Errorf("expected default page 0, got %d", p.Page)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := FromContext(newContext(t, "/?pageSize=50&pageIndex=3"))

	if p.PageSize != 50 {
		t.Errorf("expected page size 50, got %d", p.PageSize)
	}
	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
}

func TestFromContext_Clamping(t *testing.T) {
	p := FromContext(newContext(t, "/?pageSize=500&pageIndex=-2"))

	if p.PageSize != MaxPageSize {
		t.Errorf("expected page size capped at %d, got %d", MaxPageSize, p.PageSize)
	}
	if p.Page != 0 {
		t.Errorf("expected negative page clamped to 0, got %d", p.Page)
	}
}

func TestFromContext_ZeroPageSize(t *testing.T) {
	p := FromContext(newContext(t, "/?pageSize=0"))
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected zero page size replaced by default, got %d", p.PageSize)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		params Params
		want   int
	}{
		{Params{Page: 0, PageSize: 20}, 0},
		{Params{Page: 1, PageSize: 20}, 20},
		{Params{Page: 3, PageSize: 7}, 21},
	}
	for _, tt := range tests {
		if got := tt.params.Offset(); got != tt.want {
			t.Errorf("Offset(%+v) = %d, want %d", tt.params, got, tt.want)
		}
	}
}

func TestPageLen(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		total  int
		want   int
	}{
		{"full first page", Params{Page: 0, PageSize: 20}, 25, 20},
		{"partial last page", Params{Page: 1, PageSize: 20}, 25, 5},
		{"past the end", Params{Page: 2, PageSize: 20}, 25, 0},
		{"empty set", Params{Page: 0, PageSize: 20}, 0, 0},
		{"exact boundary", Params{Page: 1, PageSize: 10}, 20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.PageLen(tt.total); got != tt.want {
				t.Errorf("PageLen(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestNewResponse(t *testing.T) {
	items := []string{"a", "b"}
	r := NewResponse(items, 42, Params{Page: 2, PageSize: 2})

	if r.Total != 42 {
		t.Errorf("expected total 42, got %d", r.Total)
	}
	if r.Page != 2 || r.PageSize != 2 {
		t.Errorf("unexpected window: page %d size %d", r.Page, r.PageSize)
	}
}
