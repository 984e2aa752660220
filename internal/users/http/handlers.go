package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fmi-projects/project-management-api/internal/api/http/respond"
	"github.com/fmi-projects/project-management-api/internal/users/domain"
	"github.com/fmi-projects/project-management-api/internal/users/service"
)

// Handler bundles the dependencies for users HTTP endpoints.
type Handler struct {
	svc *service.UserService
}

func New(svc *service.UserService) *Handler {
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
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
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

func (h *Handler) findByUsername(c *gin.Context) {
	u, err := h.svc.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	u, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// update accepts the id either in the path or in the body; the path wins.
func (h *Handler) update(c *gin.Context) {
	var req domain.EditRequest
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
	u, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
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
