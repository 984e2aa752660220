package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/search", h.search)
	rg.GET("/findByTitle/:title", h.findByTitle)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)

	rg.GET("/:id/categories", h.categories)
	rg.POST("/:id/categories/:categoryId", h.addCategory)
	rg.DELETE("/:id/categories/:categoryId", h.removeCategory)
}
