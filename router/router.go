package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"LifeKLine/cmn"
	"LifeKLine/serve/analysis"
	"LifeKLine/web"
)

// InitMiddlewares 全局中间件，顺序不能改变
func InitMiddlewares(r *gin.Engine, z *zap.Logger) {
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(z))
	r.Use(Cors())
}

// InitRoutes 初始化路由，svc 为 nil 时使用默认的分析服务
func InitRoutes(r *gin.Engine, svc analysis.Service) {

	analysisHandler := analysis.NewHandler(svc)

	// 路由组 /api
	api := r.Group("/api")
	{
		api.POST("/analyze", analysisHandler.HandleAnalyze) // 命理分析
		api.GET("/health", analysisHandler.HandleHealth)    // 健康检查
	}

	// 其余路径交给前端页面
	webHandler := web.Handler()
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, cmn.ErrorReply{Detail: "Not Found"})
			return
		}
		webHandler.ServeHTTP(c.Writer, c.Request)
	})
}
