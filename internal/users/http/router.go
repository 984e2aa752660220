package http

import "github.com/gin-gonic/gin"

// Register attaches user routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/search", h.search)
	rg.GET("/findByUsername/:username", h.findByUsername)
	rg.GET("/:id", h.get)
	rg.POST("", h.create)
	rg.PUT("", h.update)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
