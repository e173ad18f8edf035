package crud

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GraftonJ/repsy-be/pkg/errors"
	"github.com/GraftonJ/repsy-be/pkg/httputil"
)

// Service is the generic resource flow consumed by the shared route
// handlers. T is the record type, P the typed patch allow-list.
type Service[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, patch *P) (*T, error)
	Delete(ctx context.Context, id int64) (*T, error)
}

// Handler serves the id-scoped CRUD routes shared by every resource.
// The doctors and meds route sets differ only in their schemas, so the
// flow lives here once, parameterized per resource.
type Handler[T any, P any] struct {
	svc      Service[T, P]
	resource string
}

func NewHandler[T any, P any](svc Service[T, P], resource string) *Handler[T, P] {
	return &Handler[T, P]{svc: svc, resource: resource}
}

func (h *Handler[T, P]) List(c *gin.Context) {
	recs, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler[T, P]) Get(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler[T, P]) Update(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	// Id guard runs before payload validation, so an unknown id is
	// reported even when the patch is also bad.
	ok, err := h.svc.Exists(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if !ok {
		httputil.RespondWithError(c, errors.NotFound(h.resource))
		return
	}

	var patch P
	if err := httputil.Bind(c, &patch); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), id, &patch)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler[T, P]) Delete(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	rec, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": rec})
}

// ParseID reads the :id route parameter.
func ParseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.Validation(fmt.Sprintf("invalid id %q", c.Param("id")))
	}
	return id, nil
}
