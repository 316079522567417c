package discharge

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hospadmin/hospadmin/internal/platform/apperr"
	"github.com/hospadmin/hospadmin/pkg/pagination"
	"github.com/hospadmin/hospadmin/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/discharges", h.List)
	api.GET("/discharges/in-range", h.InRange)
	api.GET("/discharges/by-disabled-non-specialists", h.ByDisabledNonSpecialists)
	api.GET("/discharges/form-data", h.FormData)
	api.GET("/discharges/:id", h.Get)
	api.POST("/discharges", h.Create)
	api.PUT("/discharges/:id", h.Update)
	api.DELETE("/discharges", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	rows, total, err := h.svc.List(c.Request().Context(), c.QueryParam("searchText"), p)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, pagination.NewResponse(rows, total, p))
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handler) InRange(c echo.Context) error {
	from, err := parseDate(c.QueryParam("from"))
	if err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid or missing from date"))
	}
	to, err := parseDate(c.QueryParam("to"))
	if err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid or missing to date"))
	}

	rows, err := h.svc.InRange(c.Request().Context(), from, to, c.QueryParam("searchText"))
	if err != nil {
		return respond.Error(c, err)
	}
	if rows == nil {
		rows = []Row{}
	}
	return respond.OK(c, rows)
}

func (h *Handler) ByDisabledNonSpecialists(c echo.Context) error {
	p := pagination.FromContext(c)
	rows, total, err := h.svc.ByDisabledNonSpecialists(c.Request().Context(), c.QueryParam("searchText"), p)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, pagination.NewResponse(rows, total, p))
}

func (h *Handler) FormData(c echo.Context) error {
	var id int64
	if raw := c.QueryParam("id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respond.Error(c, apperr.New(apperr.Validation, "invalid id"))
		}
		id = parsed
	}
	fd, err := h.svc.FormData(c.Request().Context(), id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return respond.NotFound(c)
		}
		return respond.Error(c, err)
	}
	return respond.OK(c, fd)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid id"))
	}
	discharge, err := h.svc.Get(c.Request().Context(), id)
	if apperr.IsNotFound(err) {
		return respond.NotFound(c)
	}
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, discharge)
}

func (h *Handler) Create(c echo.Context) error {
	var d Discharge
	if err := c.Bind(&d); err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid request body"))
	}
	if err := h.svc.Create(c.Request().Context(), &d); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, &d)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid id"))
	}
	var d Discharge
	if err := c.Bind(&d); err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid request body"))
	}
	d.ID = id
	if err := h.svc.Update(c.Request().Context(), &d); err != nil {
		if apperr.IsNotFound(err) {
			return respond.NotFound(c)
		}
		return respond.Error(c, err)
	}
	return respond.OK(c, &d)
}

func (h *Handler) Delete(c echo.Context) error {
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := c.Bind(&body); err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid request body"))
	}
	if err := h.svc.Delete(c.Request().Context(), body.IDs); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, nil)
}
