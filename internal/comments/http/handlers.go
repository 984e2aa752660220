package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fmi-projects/project-management-api/internal/api/http/respond"
	"github.com/fmi-projects/project-management-api/internal/auth"
	"github.com/fmi-projects/project-management-api/internal/comments/domain"
	"github.com/fmi-projects/project-management-api/internal/comments/service"
)

type Handler struct {
	svc *service.CommentService
}

func New(svc *service.CommentService) *Handler {
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
	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) search(c *gin.Context) {
	f, err := domain.ParseSearchFilter(c.Request.URL.Query())
	if err != nil {
		respond.Error(c, err)
		return
	}
	page, err := h.svc.Search(c.Request.Context(), f)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) findByContent(c *gin.Context) {
	items, err := h.svc.FindByContent(c.Request.Context(), c.Param("content"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) byProject(c *gin.Context) {
	projectID, ok := respond.ID(c, "projectId")
	if !ok {
		return
	}
	items, err := h.svc.ByProject(c.Request.Context(), projectID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	v, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	v, err := h.svc.Update(c.Request.Context(), auth.UserID(c), id, req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
