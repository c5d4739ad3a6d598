// Package destiny 定义前后端共享的命理分析数据契约
package destiny

import (
	"encoding/json"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// UserInput 分析请求体
type UserInput struct {
	Name           *string `json:"name,omitempty"`                              // 姓名，仅用于展示
	Gender         Gender  `json:"gender" binding:"required,oneof=Male Female"` // 性别
	BirthYear      FlexInt `json:"birthYear"`                                   // 出生年份（阳历）
	YearPillar     string  `json:"yearPillar" binding:"required"`               // 年柱
	MonthPillar    string  `json:"monthPillar" binding:"required"`              // 月柱
	DayPillar      string  `json:"dayPillar" binding:"required"`                // 日柱
	HourPillar     string  `json:"hourPillar" binding:"required"`               // 时柱
	StartAge       FlexInt `json:"startAge"`                                    // 起运年龄（虚岁）
	FirstSuperLuck string  `json:"firstSuperLuck" binding:"required"`           // 第一步大运
	ModelName      *string `json:"modelName,omitempty"`                         // 模型名称
	APIBaseURL     *string `json:"apiBaseUrl,omitempty"`                        // 模型服务地址
	APIKey         *string `json:"apiKey,omitempty"`                            // 模型服务密钥
}

// UnmarshalJSON 兼容旧字段名 firstDaYun
func (u *UserInput) UnmarshalJSON(data []byte) error {
	type plain UserInput
	aux := struct {
		*plain
		FirstDaYun *string `json:"firstDaYun"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.FirstSuperLuck == "" && aux.FirstDaYun != nil {
		u.FirstSuperLuck = *aux.FirstDaYun
	}

	return nil
}

// KLinePoint 人生K线上的一个流年采样点
type KLinePoint struct {
	Age       int     `json:"age" validate:"gte=0"`
	Year      int     `json:"year"`
	GanZhi    string  `json:"ganZhi" validate:"required"`
	SuperLuck *string `json:"superLuck,omitempty"`
	Open      float64 `json:"open"`
	Close     float64 `json:"close"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
}

// AnalysisData 分类命理报告，除 crypto 外均为 (文本, 评分)
type AnalysisData struct {
	Bazi []string `json:"bazi"`

	Summary      string  `json:"summary"`
	SummaryScore float64 `json:"summaryScore" validate:"gte=0,lte=10"`

	Personality      string  `json:"personality"`
	PersonalityScore float64 `json:"personalityScore" validate:"gte=0,lte=10"`

	Industry      string  `json:"industry"`
	IndustryScore float64 `json:"industryScore" validate:"gte=0,lte=10"`

	Geomancy      string  `json:"geomancy"`
	GeomancyScore float64 `json:"geomancyScore" validate:"gte=0,lte=10"`

	Wealth      string  `json:"wealth"`
	WealthScore float64 `json:"wealthScore" validate:"gte=0,lte=10"`

	Marriage      string  `json:"marriage"`
	MarriageScore float64 `json:"marriageScore" validate:"gte=0,lte=10"`

	Health      string  `json:"health"`
	HealthScore float64 `json:"healthScore" validate:"gte=0,lte=10"`

	Family      string  `json:"family"`
	FamilyScore float64 `json:"familyScore" validate:"gte=0,lte=10"`

	Crypto      string  `json:"crypto"`
	CryptoScore float64 `json:"cryptoScore" validate:"gte=0,lte=10"`
	CryptoYear  string  `json:"cryptoYear"`
	CryptoStyle string  `json:"cryptoStyle"`
}

// LifeDestinyResult 一次分析的完整结果，返回后不再修改
type LifeDestinyResult struct {
	ChartData []KLinePoint `json:"chartData" validate:"dive"`
	Analysis  AnalysisData `json:"analysis"`
}

// String 返回字符串指针
func String(s string) *string {
	return &s
}

// StringValue 解引用字符串指针，nil 返回空串
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
