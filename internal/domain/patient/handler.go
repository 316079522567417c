package patient

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
	api.GET("/patients", h.List)
	api.GET("/patients/admitted", h.Admitted)
	api.GET("/patients/:id", h.Get)
	api.POST("/patients", h.Create)
	api.PUT("/patients/:id", h.Update)
	api.DELETE("/patients", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	patients, total, err := h.svc.List(c.Request().Context(), c.QueryParam("searchText"), p)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, pagination.NewResponse(patients, total, p))
}

func (h *Handler) Admitted(c echo.Context) error {
	p := pagination.FromContext(c)
	rows, total, err := h.svc.Admitted(c.Request().Context(), c.QueryParam("searchText"), p)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, pagination.NewResponse(rows, total, p))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid id"))
	}
	patient, err := h.svc.Get(c.Request().Context(), id)
	if apperr.IsNotFound(err) {
		return respond.NotFound(c)
	}
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, patient)
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid request body"))
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, &p)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid id"))
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return respond.Error(c, apperr.New(apperr.Validation, "invalid request body"))
	}
	p.ID = id
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		if apperr.IsNotFound(err) {
			return respond.NotFound(c)
		}
		return respond.Error(c, err)
	}
	return respond.OK(c, &p)
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
