package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fmi-projects/project-management-api/internal/api/http/respond"
	"github.com/fmi-projects/project-management-api/internal/auth"
	"github.com/fmi-projects/project-management-api/internal/projects/domain"
	"github.com/fmi-projects/project-management-api/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
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

func (h *Handler) findByTitle(c *gin.Context) {
	items, err := h.svc.FindByTitle(c.Request.Context(), c.Param("title"))
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
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.Request
	if !respond.BindJSON(c, &req) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}
	var req domain.Request
	if !respond.BindJSON(c, &req) {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), auth.UserID(c), id, req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
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

func (h *Handler) categories(c *gin.Context) {
	id, ok := respond.ID(c, "id")
	if !ok {
		return
	}
	items, err := h.svc.Categories(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) addCategory(c *gin.Context) {
	projectID, categoryID, ok := linkIDs(c)
	if !ok {
		return
	}
	if err := h.svc.AddCategory(c.Request.Context(), projectID, categoryID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) removeCategory(c *gin.Context) {
	projectID, categoryID, ok := linkIDs(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveCategory(c.Request.Context(), projectID, categoryID); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func linkIDs(c *gin.Context) (int64, int64, bool) {
	projectID, ok := respond.ID(c, "id")
	if !ok {
		return 0, 0, false
	}
	categoryID, ok := respond.ID(c, "categoryId")
	if !ok {
		return 0, 0, false
	}
	return projectID, categoryID, true
}
