package analysis

import (
	"math"
	"math/rand/v2"

	"LifeKLine/cmn/bazi"
	"LifeKLine/cmn/destiny"
)

const (
	maxAge           = 100
	defaultBirthYear = 2024
	defaultStartAge  = 1

	minScore = 10
	maxScore = 90
)

var randomReasons = []string{
	"今年运势平稳，适合积累。",
	"财星高照，有意外之喜。",
	"注意身体健康，避免过度劳累。",
	"事业上有贵人相助，进展顺利。",
	"感情生活丰富，但需注意沟通。",
	"投资需谨慎，避免高风险操作。",
	"学业进步明显，考试运佳。",
	"家庭和睦，幸福美满。",
	"可能会有变动，需做好心理准备。",
	"虽然有压力，但也是成长的机会。",
}

// 五行权重
var elementWeight = map[string]float64{
	"木": 2,
	"火": 3,
	"土": 1,
	"金": 2,
	"水": 2,
}

// timeline 生成 K 线所需的起止参数
type timeline struct {
	birthYear int
	startAge  int
	first     string
	forward   bool
}

func newTimeline(input destiny.UserInput) timeline {
	tl := timeline{
		birthYear: input.BirthYear.Int(),
		startAge:  input.StartAge.Int(),
		first:     input.FirstSuperLuck,
		forward:   bazi.IsForward(input.Gender == destiny.GenderMale, input.YearPillar),
	}
	if tl.birthYear <= 0 {
		tl.birthYear = defaultBirthYear
	}
	if tl.startAge <= 0 {
		tl.startAge = defaultStartAge
	}
	return tl
}

// yearAt 第一个采样点落在出生年份，此后每岁加一年
func (tl timeline) yearAt(age int) int {
	return tl.birthYear + age - tl.startAge
}

func (tl timeline) luckAt(age int) *string {
	return destiny.String(bazi.SuperLuckAt(age, tl.startAge, tl.first, tl.forward))
}

// GenerateRandom 随机游走生成 K 线，用于无模型时的体验模式
func GenerateRandom(input destiny.UserInput, r *rand.Rand) *destiny.LifeDestinyResult {
	tl := newTimeline(input)

	chart := make([]destiny.KLinePoint, 0, max(0, maxAge-tl.startAge+1))
	for age := tl.startAge; age <= maxAge; age++ {
		open := 50.0
		if n := len(chart); n > 0 {
			open = chart[n-1].Close
		}
		closeVal := clamp(open+uniform(r, -15, 15), minScore, maxScore)
		high := math.Max(open, closeVal) + uniform(r, 0, 5)
		low := math.Min(open, closeVal) - uniform(r, 0, 5)

		year := tl.yearAt(age)
		chart = append(chart, destiny.KLinePoint{
			Age:       age,
			Year:      year,
			GanZhi:    bazi.YearGanZhi(year),
			SuperLuck: tl.luckAt(age),
			Open:      round1(open),
			Close:     round1(closeVal),
			High:      round1(high),
			Low:       round1(low),
			Score:     round1(closeVal),
			Reason:    randomReasons[r.IntN(len(randomReasons))],
		})
	}

	score := func() float64 { return float64(6 + r.IntN(4)) }

	return &destiny.LifeDestinyResult{
		ChartData: chart,
		Analysis: destiny.AnalysisData{
			Bazi:             pillars(input),
			Summary:          "这是一个随机生成的命理摘要。命主性格坚韧，财运起伏较大，晚年运势平稳。",
			SummaryScore:     score(),
			Personality:      "性格开朗，善于交际，但有时过于急躁。",
			PersonalityScore: score(),
			Industry:         "适合从事金融、科技或创意类工作。",
			IndustryScore:    score(),
			Geomancy:         "宜居南方，喜火土，家中可摆放红色饰品。",
			GeomancyScore:    score(),
			Wealth:           "财运中等偏上，中年有大财。",
			WealthScore:      score(),
			Marriage:         "婚姻美满，配偶得力。",
			MarriageScore:    score(),
			Health:           "注意心血管健康，多运动。",
			HealthScore:      score(),
			Family:           "家庭关系和谐，子女孝顺。",
			FamilyScore:      score(),
			Crypto:           "适合长线持有 BTC/ETH，避免高频合约。",
			CryptoScore:      score(),
			CryptoYear:       "2025 (乙巳)",
			CryptoStyle:      "现货定投 + 少量波段",
		},
	}
}

// GenerateFormula 按日主五行、大运、流年与人生阶段加权打分
func GenerateFormula(input destiny.UserInput, r *rand.Rand) *destiny.LifeDestinyResult {
	tl := newTimeline(input)
	base := 50 + elementWeight[bazi.Element(input.DayPillar)]*5

	chart := make([]destiny.KLinePoint, 0, max(0, maxAge-tl.startAge+1))
	for age := tl.startAge; age <= maxAge; age++ {
		year := tl.yearAt(age)
		ganZhi := bazi.YearGanZhi(year)
		luck := tl.luckAt(age)

		score := base + luckBonus(age, *luck) + elementWeight[bazi.Element(ganZhi)] + ageBonus(age) + uniform(r, -2, 2)
		score = clamp(score, minScore, maxScore)

		open := score
		if n := len(chart); n > 0 {
			open = chart[n-1].Close
		}

		chart = append(chart, destiny.KLinePoint{
			Age:       age,
			Year:      year,
			GanZhi:    ganZhi,
			SuperLuck: luck,
			Open:      round1(open),
			Close:     round1(score),
			High:      round1(math.Max(open, score) + 2),
			Low:       round1(math.Min(open, score) - 2),
			Score:     round1(score),
			Reason:    "运势由命局、大运、流年与人生阶段综合决定",
		})
	}

	s := math.Floor(base / 10)

	return &destiny.LifeDestinyResult{
		ChartData: chart,
		Analysis: destiny.AnalysisData{
			Bazi:             pillars(input),
			Summary:          "命局稳定，中年运势最佳，晚年趋于平顺。",
			SummaryScore:     s,
			Personality:      "性格积极主动，有进取心。",
			PersonalityScore: math.Min(9, s+1),
			Industry:         "适合技术、金融、管理类行业。",
			IndustryScore:    s,
			Geomancy:         "宜南方或东南方发展。",
			GeomancyScore:    s,
			Wealth:           "财运循序渐进，中年见成。",
			WealthScore:      math.Min(9, s+1),
			Marriage:         "婚姻整体平稳，重在沟通。",
			MarriageScore:    math.Max(5, s-1),
			Health:           "注意心血管与作息规律。",
			HealthScore:      math.Max(5, s-1),
			Family:           "家庭关系整体和谐。",
			FamilyScore:      s,
			Crypto:           "偏向长期价值投资。",
			CryptoScore:      s,
			CryptoYear:       "2025 (乙巳)",
			CryptoStyle:      "现货定投 + 低频波段",
		},
	}
}

// 十岁前按童限计分，与起运年龄无关
const childhoodAge = 10

func luckBonus(age int, luck string) float64 {
	if age < childhoodAge {
		return -5
	}
	return elementWeight[bazi.Element(luck)] * 2
}

func ageBonus(age int) float64 {
	switch {
	case age < 18:
		return -8
	case age < 30:
		return 0
	case age < 45:
		return 6
	case age < 60:
		return 3
	default:
		return 1
	}
}

func pillars(input destiny.UserInput) []string {
	return []string{input.YearPillar, input.MonthPillar, input.DayPillar, input.HourPillar}
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
