package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"LifeKLine/cmn"
)

func analysisMaintainer(ctx context.Context, db *gorm.DB) {
	for {
		// 计算距离下一次 03:00 的时间
		duration, err := cmn.GetDurationUntilNextTargetTime(3, 0, 0, "Asia/Shanghai")
		if err != nil {
			z.Error("failed to get duration until next target time", zap.Error(err))
			return
		}
		z.Info("analysisMaintainer sleep until next target time", zap.Duration("duration", duration))

		timer := time.NewTimer(duration)

		select {
		case <-ctx.Done():
			z.Info("analysisMaintainer stopped")
			timer.Stop()
			return
		case <-timer.C:
			purgeExpired(ctx, db, time.Now())
		}
	}
}

// purgeExpired 删除超过保留天数的记录
func purgeExpired(ctx context.Context, db *gorm.DB, now time.Time) {
	before := now.AddDate(0, 0, -retentionDays)
	n, err := PurgeAnalysis(ctx, db, before)
	if err != nil {
		return
	}
	z.Info("expired analysis purged", zap.Int64("rows", n), zap.Time("before", before))
}
