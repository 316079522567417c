package doctor

import (
	"strconv"

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
	api.GET("/doctors", h.List)
	api.GET("/doctors/specialists-without-admissions", h.SpecialistsWithoutAdmissions)
	api.GET("/doctors/substitute-discharges", h.SubstituteDischarges)
	api.GET("/doctors/disabled-with-open-admissions", h.DisabledWithOpenAdmissions)
	api.GET("/doctors/:id", h.Get)
	api.POST("/doctors", h.Create)
	api.PUT("/doctors/:id", h.Update)
	api.DELETE("/doctors", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	doctors, total, err := h.svc.List(c.Request().Context(), c.QueryParam("searchText"), p)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, pagination.NewResponse(doctors, total, p))
}

func (h *Handler) SpecialistsWithoutAdmissions(c echo.Context) error {
	p := pagination.FromContext(c)
	doctors, total, err := h.svc.SpecialistsWithoutAdmissions(c.Request().Context(), c.QueryParam("searchText"), p)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, pagination.NewResponse(doctors, total, p))
}

func (h *Handler) SubstituteDischarges(c echo.Context) error {
	p := pagination.FromContext(c)
	rows, total, err := h.svc.SubstituteDischarges(c.Request().Context(), c.QueryParam("searchText"), p)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, pagination.NewResponse(rows, total, p))
}

func (h *Handler) DisabledWithOpenAdmissions(c echo.Context) error {
	rows, err := h.svc.DisabledWithOpenAdmissions(c.Request().Context(), c.QueryParam("searchText"))
	if err != nil {
		return respond.Error(c, err)
	}
	if rows == nil {
		rows = []OpenAdmissionsRow{}
	}
	return respond.OK(c, rows)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid id"))
	}
	doctor, err := h.svc.Get(c.Request().Context(), id)
	if apperr.IsNotFound(err) {
		return respond.NotFound(c)
	}
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, doctor)
}

func (h *Handler) Create(c echo.Context) error {
	var d Doctor
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
	var d Doctor
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
