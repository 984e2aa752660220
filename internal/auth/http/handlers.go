package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fmi-projects/project-management-api/internal/api/http/respond"
	"github.com/fmi-projects/project-management-api/internal/auth/domain"
	"github.com/fmi-projects/project-management-api/internal/auth/service"
)

type Handler struct {
	svc *service.AuthService
}

func New(svc *service.AuthService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) login(c *gin.Context) {
	var req domain.LoginRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	pair, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *Handler) refresh(c *gin.Context) {
	var req domain.RefreshRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
