package roster

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/psychart/psychart/internal/domain/assessment"
	"github.com/psychart/psychart/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patients", auth.RequireRole(auth.RoleNP, auth.RoleResident, auth.RolePA))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PUT("/:id/diagnosis", h.UpdateDiagnosis)
	g.PUT("/:id/mse", h.UpdateMSE)
	g.PUT("/:id/pe", h.UpdatePE)
	g.POST("/:id/delete-intent", h.RequestDelete)
	g.DELETE("/:id", h.ConfirmDelete)
}

// patientView augments the stored record with the display fields the
// roster screen shows. Age is null when no birth year is recorded.
type patientView struct {
	*Patient
	MaskedName string `json:"masked_name"`
	Age        *int   `json:"age"`
}

func view(p *Patient) patientView {
	return patientView{
		Patient:    p,
		MaskedName: p.MaskedName(),
		Age:        p.Age(time.Now()),
	}
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.OwnerID = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, view(&p))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, view(p))
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	views := make([]patientView, 0, len(items))
	for _, p := range items {
		views = append(views, view(p))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": views, "total": len(views)})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	p.OwnerID = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view(&p))
}

func (h *Handler) UpdateDiagnosis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var d assessment.Diagnosis
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := Patient{Diagnosis: &d}
	ownerID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.UpdateDiagnosis(c.Request().Context(), ownerID, id, &p); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateMSE(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var m assessment.MSE
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := Patient{MSE: &m}
	ownerID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.UpdateMSE(c.Request().Context(), ownerID, id, &p); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) UpdatePE(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var pe assessment.PE
	if err := c.Bind(&pe); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := Patient{PE: &pe}
	ownerID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.UpdatePE(c.Request().Context(), ownerID, id, &p); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, pe)
}

func (h *Handler) RequestDelete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ownerID := auth.UserIDFromContext(c.Request().Context())
	token, err := h.svc.RequestDelete(c.Request().Context(), ownerID, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"confirmation_token": token})
}

func (h *Handler) ConfirmDelete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	token := c.QueryParam("confirmation_token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "confirmation_token is required")
	}
	ownerID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.ConfirmDelete(c.Request().Context(), ownerID, id, token); err != nil {
		if err == ErrDeleteNotConfirmed {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.NoContent(http.StatusNoContent)
}
