package router

import (
	"cv-filler-go/internal/api/handler"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cvHandler *handler.CVHandler) {
	api := h.Group("/api/v1")

	api.POST("/cv/fill", cvHandler.FillCV)
	api.POST("/cv/fill-async", cvHandler.FillCVAsync)
	api.GET("/cv/result/:uuid", cvHandler.GetFillResult)

	api.GET("/health", cvHandler.Health)
}
