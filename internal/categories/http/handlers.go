package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fmi-projects/project-management-api/internal/api/http/respond"
	"github.com/fmi-projects/project-management-api/internal/categories/domain"
	"github.com/fmi-projects/project-management-api/internal/categories/service"
)

type Handler struct {
	svc *service.CategoryService
}

func New(svc *service.CategoryService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.Request
	if !respond.BindJSON(c, &req) {
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *Handler) update(c *gin.Context) {
	var req domain.Request
	if !respond.BindJSON(c, &req) {
		return
	}
	if c.Param("id") != "" {
		id, ok := respond.ID(c, "id")
		if !ok {
			return
		}
		req.ID = id
	}
	if req.ID < 1 {
		respond.Error(c, domain.ErrNotFound)
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
