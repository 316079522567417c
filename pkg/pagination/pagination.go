package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params holds offset-pagination parameters: a zero-based page index and a
// page size. Offsets are always pageIndex*pageSize over the filtered,
// ordered result set.
type Params struct {
	Page     int
	PageSize int
}

// FromContext extracts pageSize and pageIndex from the request, applying
// the defaults and clamping out-of-range values.
func FromContext(c echo.Context) Params {
	size, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	page, _ := strconv.Atoi(c.QueryParam("pageIndex"))
	if page < 0 {
		page = 0
	}

	return Params{Page: page, PageSize: size}
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return p.Page * p.PageSize
}

// Limit returns the number of rows to take.
func (p Params) Limit() int {
	return p.PageSize
}

// PageLen returns how many rows a page holds given the filtered total:
// min(pageSize, total - page*pageSize), clamped to zero.
func (p Params) PageLen(total int) int {
	remaining := total - p.Offset()
	if remaining <= 0 {
		return 0
	}
	if remaining < p.PageSize {
		return remaining
	}
	return p.PageSize
}

// Response is the paginated payload placed in the response envelope. Total
// is always the count of the filtered set, independent of the page window.
type Response struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"totalCount"`
	Page     int         `json:"pageIndex"`
	PageSize int         `json:"pageSize"`
}

func NewResponse(items interface{}, total int, p Params) *Response {
	return &Response{
		Items:    items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}
