package records

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/psychart/psychart/internal/platform/auth"
	"github.com/psychart/psychart/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patients/:id/records", auth.RequireRole(auth.RoleNP, auth.RoleResident, auth.RolePA))
	g.POST("", h.Draft)
	g.GET("", h.List)
}

type draftRequest struct {
	Type      NoteType `json:"type"`
	ExtraInfo string   `json:"extra_info"`
}

func (h *Handler) Draft(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req draftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ownerID := auth.UserIDFromContext(c.Request().Context())
	rec, err := h.svc.Draft(c.Request().Context(), ownerID, patientID, req.Type, req.ExtraInfo)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	ownerID := auth.UserIDFromContext(c.Request().Context())
	items, total, err := h.svc.ListByPatient(c.Request().Context(), ownerID, patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
