package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"LifeKLine/cmn"
	"LifeKLine/cmn/destiny"
)

// QueryAnalysis 按输入哈希查询已保存的分析结果，不存在时返回 nil, nil
func QueryAnalysis(ctx context.Context, db *gorm.DB, hash string) (*destiny.LifeDestinyResult, error) {
	if hash == "" {
		e := fmt.Errorf("input hash is empty")
		z.Error(e.Error())
		return nil, e
	}
	if db == nil {
		db = cmn.GormDB
	}

	var record cmn.TAnalysisResult
	err := db.WithContext(ctx).
		Where("input_hash = ?", hash).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		z.Error("failed to query analysis", zap.String("hash", hash), zap.Error(err))
		return nil, err
	}

	var result destiny.LifeDestinyResult
	if err := json.Unmarshal(record.Data, &result); err != nil {
		z.Error("failed to unmarshal analysis data", zap.String("hash", hash), zap.Error(err))
		return nil, err
	}

	return &result, nil
}

// SaveAnalysis 保存分析结果，哈希已存在时保留原记录
func SaveAnalysis(ctx context.Context, db *gorm.DB, hash string, result *destiny.LifeDestinyResult) error {
	if hash == "" || result == nil {
		e := fmt.Errorf("input hash or result is empty")
		z.Error(e.Error())
		return e
	}
	if db == nil {
		db = cmn.GormDB
	}

	data, err := json.Marshal(result)
	if err != nil {
		z.Error("failed to marshal analysis", zap.String("hash", hash), zap.Error(err))
		return err
	}

	record := cmn.TAnalysisResult{
		InputHash: hash,
		Data:      data,
	}

	err = db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "input_hash"}},
			DoNothing: true,
		}).
		Create(&record).Error
	if err != nil {
		z.Error("failed to save analysis", zap.String("hash", hash), zap.Error(err))
		return err
	}

	return nil
}

// PurgeAnalysis 删除早于 before 的分析记录，返回删除的行数
func PurgeAnalysis(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	if db == nil {
		db = cmn.GormDB
	}

	res := db.WithContext(ctx).
		Where("created_at < ?", before.UnixMilli()).
		Delete(&cmn.TAnalysisResult{})
	if res.Error != nil {
		z.Error("failed to purge analysis", zap.Time("before", before), zap.Error(res.Error))
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
