package analysis

import (
	"context"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"LifeKLine/cmn"
	"LifeKLine/cmn/llm"
)

var z = zap.NewNop()

var (
	demoFile = "mock_data.json"
	cacheTTL = 7 * 24 * time.Hour

	// 为空时使用内置提示词
	systemPrompt string

	// 0 表示永久保存
	retentionDays int

	defaultSvc Service
)

func Init(ctx context.Context) {
	z = cmn.GetLogger()

	if v := viper.GetString("analysis.demoFile"); v != "" {
		demoFile = v
	}
	systemPrompt = viper.GetString("analysis.systemPrompt")
	if hours := viper.GetInt("analysis.cacheTTLHours"); hours > 0 {
		cacheTTL = time.Duration(hours) * time.Hour
	}
	retentionDays = viper.GetInt("analysis.retentionDays")
	if retentionDays < 0 {
		z.Fatal("[ FAIL ] analysis.retentionDays must not be negative")
	}

	defaultSvc = NewService(cmn.GormDB, NewCache(cmn.RedisClient, cacheTTL), llm.NewService())

	if retentionDays > 0 {
		go analysisMaintainer(ctx, cmn.GormDB)
	}

	cmn.MiniLogger.Info("[ OK ] analysis module initialed",
		zap.String("demoFile", demoFile),
		zap.Duration("cacheTTL", cacheTTL),
		zap.Int("retentionDays", retentionDays))
}

// DefaultService Init 之后可用
func DefaultService() Service {
	return defaultSvc
}
