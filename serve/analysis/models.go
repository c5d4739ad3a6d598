package analysis

import (
	"encoding/json"

	"LifeKLine/cmn/destiny"
)

// modelOutput 模型（以及演示文件）输出的扁平结构
type modelOutput struct {
	Bazi []string `json:"bazi"`

	Summary          string            `json:"summary"`
	SummaryScore     destiny.FlexFloat `json:"summaryScore"`
	Personality      string            `json:"personality"`
	PersonalityScore destiny.FlexFloat `json:"personalityScore"`
	Industry         string            `json:"industry"`
	IndustryScore    destiny.FlexFloat `json:"industryScore"`
	Geomancy         string            `json:"geomancy"`
	GeomancyScore    destiny.FlexFloat `json:"geomancyScore"`
	Wealth           string            `json:"wealth"`
	WealthScore      destiny.FlexFloat `json:"wealthScore"`
	Marriage         string            `json:"marriage"`
	MarriageScore    destiny.FlexFloat `json:"marriageScore"`
	Health           string            `json:"health"`
	HealthScore      destiny.FlexFloat `json:"healthScore"`
	Family           string            `json:"family"`
	FamilyScore      destiny.FlexFloat `json:"familyScore"`
	Crypto           string            `json:"crypto"`
	CryptoScore      destiny.FlexFloat `json:"cryptoScore"`
	CryptoYear       string            `json:"cryptoYear"`
	CryptoStyle      string            `json:"cryptoStyle"`

	ChartPoints json.RawMessage `json:"chartPoints"`
}

const defaultScore = 5

// modelPoint 模型输出的K线点，数字可能带小数点或以字符串给出
type modelPoint struct {
	Age       destiny.FlexInt   `json:"age"`
	Year      destiny.FlexInt   `json:"year"`
	GanZhi    string            `json:"ganZhi"`
	SuperLuck *string           `json:"superLuck"`
	Open      destiny.FlexFloat `json:"open"`
	Close     destiny.FlexFloat `json:"close"`
	High      destiny.FlexFloat `json:"high"`
	Low       destiny.FlexFloat `json:"low"`
	Score     destiny.FlexFloat `json:"score"`
	Reason    string            `json:"reason"`
}

func (p modelPoint) point() destiny.KLinePoint {
	return destiny.KLinePoint{
		Age:       p.Age.Int(),
		Year:      p.Year.Int(),
		GanZhi:    p.GanZhi,
		SuperLuck: p.SuperLuck,
		Open:      p.Open.Float(),
		Close:     p.Close.Float(),
		High:      p.High.Float(),
		Low:       p.Low.Float(),
		Score:     p.Score.Float(),
		Reason:    p.Reason,
	}
}

// defaultModelOutput 模型漏掉字段时的兜底值
func defaultModelOutput() modelOutput {
	return modelOutput{
		Bazi:             []string{},
		Summary:          "无摘要",
		SummaryScore:     defaultScore,
		Personality:      "无性格分析",
		PersonalityScore: defaultScore,
		Industry:         "无",
		IndustryScore:    defaultScore,
		Geomancy:         "建议多亲近自然，保持心境平和。",
		GeomancyScore:    defaultScore,
		Wealth:           "无",
		WealthScore:      defaultScore,
		Marriage:         "无",
		MarriageScore:    defaultScore,
		Health:           "无",
		HealthScore:      defaultScore,
		Family:           "无",
		FamilyScore:      defaultScore,
		Crypto:           "暂无交易分析",
		CryptoScore:      defaultScore,
		CryptoYear:       "待定",
		CryptoStyle:      "现货定投",
	}
}

func (o modelOutput) analysis() destiny.AnalysisData {
	return destiny.AnalysisData{
		Bazi:             o.Bazi,
		Summary:          o.Summary,
		SummaryScore:     o.SummaryScore.Float(),
		Personality:      o.Personality,
		PersonalityScore: o.PersonalityScore.Float(),
		Industry:         o.Industry,
		IndustryScore:    o.IndustryScore.Float(),
		Geomancy:         o.Geomancy,
		GeomancyScore:    o.GeomancyScore.Float(),
		Wealth:           o.Wealth,
		WealthScore:      o.WealthScore.Float(),
		Marriage:         o.Marriage,
		MarriageScore:    o.MarriageScore.Float(),
		Health:           o.Health,
		HealthScore:      o.HealthScore.Float(),
		Family:           o.Family,
		FamilyScore:      o.FamilyScore.Float(),
		Crypto:           o.Crypto,
		CryptoScore:      o.CryptoScore.Float(),
		CryptoYear:       o.CryptoYear,
		CryptoStyle:      o.CryptoStyle,
	}
}
