package medication

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GraftonJ/repsy-be/internal/handler/crud"
	"github.com/GraftonJ/repsy-be/internal/model"
	medicationService "github.com/GraftonJ/repsy-be/internal/service/medication"
	"github.com/GraftonJ/repsy-be/pkg/httputil"
)

type Handler struct {
	*crud.Handler[model.Medication, model.UpdateMedicationRequest]
	svc *medicationService.Service
}

func NewHandler(svc *medicationService.Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[model.Medication, model.UpdateMedicationRequest](svc, "medication"),
		svc:     svc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	meds := r.Group("/meds")
	{
		meds.GET("", h.List)
		meds.GET("/:id", h.Get)
		meds.POST("", h.Create)
		meds.PATCH("/:id", h.Update)
		meds.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateMedicationRequest
	if err := httputil.BindStrict(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	med, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, med)
}
