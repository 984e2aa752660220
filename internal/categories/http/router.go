package http

import "github.com/gin-gonic/gin"

// Register attaches category routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", h.create)
	rg.PUT("", h.update)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
