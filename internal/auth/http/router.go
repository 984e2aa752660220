package http

import "github.com/gin-gonic/gin"

// Register mounts the token endpoints. mw runs before each of them.
func (h *Handler) Register(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	g := rg.Group("", mw...)
	g.POST("/tokens", h.login)
	g.POST("/refreshtokens", h.refresh)
}
