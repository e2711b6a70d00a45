package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. The
// static /statuses and /stats routes coexist with /:id; gin resolves
// static segments first.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/statuses", h.statuses)
	rg.GET("/stats", h.stats)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
