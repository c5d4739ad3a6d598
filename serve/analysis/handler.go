package analysis

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"LifeKLine/cmn"
	"LifeKLine/cmn/destiny"
)

type Handler interface {
	HandleAnalyze(c *gin.Context)
	HandleHealth(c *gin.Context)
}

type handler struct {
	svc Service
}

// NewHandler svc 为 nil 时使用 Init 创建的默认服务
func NewHandler(svc Service) Handler {
	if svc == nil {
		svc = defaultSvc
	}
	return &handler{svc: svc}
}

// HandleAnalyze 处理命理分析请求
func (h *handler) HandleAnalyze(c *gin.Context) {
	var input destiny.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		z.Warn("failed to bind analyze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, cmn.ErrorReply{
			Detail: fmt.Sprintf(detailInvalidBody, err),
		})
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), input)
	if err != nil {
		code, detail := StatusOf(err)
		z.Error("failed to analyze destiny",
			zap.Int("status", code),
			zap.String("yearPillar", input.YearPillar),
			zap.Error(err))
		c.JSON(code, cmn.ErrorReply{Detail: detail})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleHealth 健康检查
func (h *handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, cmn.HealthReply{
		Status:  "ok",
		Version: cmn.Version,
	})
}
