package cmn

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	RedisClient *redis.Client
)

// InitRedis 初始化 Redis 客户端，redis.enable=false 时保持为 nil
func InitRedis() {
	if !viper.GetBool("redis.enable") {
		MiniLogger.Info("[ -- ] redis module disabled")
		return
	}

	opts, err := redis.ParseURL(viper.GetString("redis.url"))
	if err != nil {
		logger.Fatal("[ FAIL ] invalid redis url", zap.Error(err))
		return
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 缓存不可用不影响主流程，只记录告警
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("ping redis failed, cache reads will miss until it recovers", zap.Error(err))
	}

	RedisClient = client

	MiniLogger.Info("[ OK ] redis module initialed", zap.String("addr", opts.Addr))
}
