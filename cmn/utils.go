package cmn

import (
	"fmt"
	"os"
	"time"
)

// GetDurationUntilNextTargetTime 计算当前时间到下一个指定时间点的间隔
func GetDurationUntilNextTargetTime(hour, minute, second int, locationName string) (time.Duration, error) {
	loc, err := time.LoadLocation(locationName)
	if err != nil {
		return 0, fmt.Errorf("failed to load location %s: %w", locationName, err)
	}

	return DurationUntilNext(time.Now(), hour, minute, second, loc), nil
}

// DurationUntilNext 计算 now 到 loc 时区下一个 hh:mm:ss 的间隔，恰好在目标时刻时返回 24 小时
func DurationUntilNext(now time.Time, hour, minute, second int, loc *time.Location) time.Duration {
	now = now.In(loc)
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, loc)
	if !now.Before(target) {
		target = target.AddDate(0, 0, 1)
	}

	return target.Sub(now)
}

// InitDir 创建目录（可多层），已存在且为目录时直接返回
func InitDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("target directory path cannot be empty")
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(dir, os.ModePerm); mkErr != nil {
			return fmt.Errorf("failed to create directory: %w", mkErr)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("target %s exists but is not a directory", dir)
	}

	return nil
}
