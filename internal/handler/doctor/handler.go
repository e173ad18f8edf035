package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GraftonJ/repsy-be/internal/handler/crud"
	"github.com/GraftonJ/repsy-be/internal/middleware"
	"github.com/GraftonJ/repsy-be/internal/model"
	doctorService "github.com/GraftonJ/repsy-be/internal/service/doctor"
	"github.com/GraftonJ/repsy-be/pkg/httputil"
)

// Handler serves the doctor routes: the shared CRUD flow plus
// registration, login and logout.
type Handler struct {
	*crud.Handler[model.Doctor, model.UpdateDoctorRequest]
	svc *doctorService.Service
}

func NewHandler(svc *doctorService.Service) *Handler {
	return &Handler{
		Handler: crud.NewHandler[model.Doctor, model.UpdateDoctorRequest](svc, "doctor"),
		svc:     svc,
	}
}

// RegisterRoutes wires the doctor routes. Mutations are guarded by the
// bearer-token middleware; reads and the auth routes stay open.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.List)
		doctors.GET("/:id", h.Get)
		doctors.POST("", h.Register)
		doctors.POST("/login", h.Login)
		doctors.POST("/logout", h.Logout)
		doctors.PATCH("/:id", auth.Authenticate(), h.Update)
		doctors.DELETE("/:id", auth.Authenticate(), h.Delete)
	}
}

// Register creates a doctor and logs them straight in: the response
// carries the record and the login token in the Auth header.
func (h *Handler) Register(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := httputil.BindStrict(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	doctor, signed, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Header("Auth", "Bearer "+signed)
	c.JSON(http.StatusOK, gin.H{"doctor": doctor})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := httputil.BindStrict(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	doctor, signed, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Header("Auth", "Bearer "+signed)
	c.JSON(http.StatusOK, gin.H{"doctor": doctor})
}

// Logout revokes the presented token server-side and hands back a
// logged-out replacement.
func (h *Handler) Logout(c *gin.Context) {
	signed, err := h.svc.Logout(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Header("Auth", "Bearer "+signed)
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
