package api

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/info", h.info)
		api.GET("/qr", h.qr)
		api.POST("/shop/compose", h.compose)
	}
	r.Static("/shops", filepath.Join(h.pipeline.OutputDir(), "shops"))
}
