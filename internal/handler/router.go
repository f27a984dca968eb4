package handler

import (
	"github.com/gin-gonic/gin"
)

// NewRouter 设置路由和中间件
func NewRouter(simulate *SimulateHandler, export *ExportHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(), CORS())

	r.GET("/health", Health)

	api := r.Group("/api")
	api.POST("/simulate", simulate.Simulate)
	api.POST("/export/pdf", export.PDF)
	api.GET("/schema", Schema)

	return r
}
