package cmn

import (
	"gorm.io/datatypes"
)

const (
	TAnalysisResultName = "t_analysis_result" // 命理分析结果表
)

// TAnalysisResult 命理分析结果表，按输入哈希去重
type TAnalysisResult struct {
	Id        int64          `gorm:"column:id;primaryKey;autoIncrement"`                       // ID
	InputHash string         `gorm:"column:input_hash;type:varchar(64);not null;uniqueIndex"`  // 输入哈希
	Data      datatypes.JSON `gorm:"column:data;type:jsonb;not null"`                          // LifeDestinyResult JSON
	CreatedAt int64          `gorm:"column:created_at;type:bigint;autoCreateTime:milli;index"` // 创建时间
	UpdatedAt int64          `gorm:"column:updated_at;type:bigint;autoUpdateTime:milli"`       // 更新时间
}

func (TAnalysisResult) TableName() string {
	return TAnalysisResultName
}
