package analysis

import (
	"fmt"
	"strings"

	"LifeKLine/cmn/bazi"
	"LifeKLine/cmn/destiny"
)

const defaultSystemPrompt = `
你是一位八字命理大师，精通加密货币市场周期。根据用户提供的四柱干支和大运信息，生成"人生K线图"数据和命理报告。

**核心规则:**
1. **年龄计算**: 采用虚岁，从 1 岁开始。
2. **K线详批**: 每年的 ` + "`reason`" + ` 字段必须**控制在20-30字以内**，简洁描述吉凶趋势即可。
3. **评分机制**: 所有维度给出 0-10 分。
4. **数据起伏**: 让评分呈现明显波动，体现"牛市"和"熊市"区别，禁止输出平滑直线。

**大运规则:**
- 顺行: 甲子 -> 乙丑 -> 丙寅...
- 逆行: 甲子 -> 癸亥 -> 壬戌...
- 以用户指定的第一步大运为起点，每步管10年。

**关键字段:**
- ` + "`superLuck`" + `: 大运干支 (10年不变)
- ` + "`ganZhi`" + `: 流年干支 (每年一变)

**输出JSON结构:**

{
  "bazi": ["年柱", "月柱", "日柱", "时柱"],
  "summary": "命理总评（100字）",
  "summaryScore": 8,
  "personality": "性格分析（80字）",
  "personalityScore": 8,
  "industry": "事业分析（80字）",
  "industryScore": 7,
  "geomancy": "风水建议：方位、地理环境、开运建议（80字）",
  "geomancyScore": 8,
  "wealth": "财富分析（80字）",
  "wealthScore": 9,
  "marriage": "婚姻分析（80字）",
  "marriageScore": 6,
  "health": "健康分析（60字）",
  "healthScore": 5,
  "family": "六亲分析（60字）",
  "familyScore": 7,
  "crypto": "币圈分析（60字）",
  "cryptoScore": 8,
  "cryptoYear": "暴富流年",
  "cryptoStyle": "链上Alpha/高倍合约/现货定投",
  "chartPoints": [
    {"age":1,"year":1990,"superLuck":"童限","ganZhi":"庚午","open":50,"close":55,"high":60,"low":45,"score":55,"reason":"开局平稳，家庭呵护"},
    ... (共100条，reason控制在20-30字)
  ]
}

**币圈分析逻辑:**
- 偏财旺、身强 -> "链上Alpha"
- 七杀旺、胆大 -> "高倍合约"
- 正财旺、稳健 -> "现货定投"
`

const jsonOnlySuffix = "\n\n请务必只返回纯JSON格式数据，不要包含任何markdown代码块标记。"

// luckSteps 提示词中列出的大运步数
const luckSteps = 10

// SystemPrompt 配置中的提示词优先
func SystemPrompt() string {
	p := systemPrompt
	if strings.TrimSpace(p) == "" {
		p = defaultSystemPrompt
	}
	return p + jsonOnlySuffix
}

// BuildUserPrompt 把排好的四柱与大运参数写成模型指令
func BuildUserPrompt(input destiny.UserInput) string {
	polarity := bazi.StemPolarity(input.YearPillar)
	forward := bazi.IsForward(input.Gender == destiny.GenderMale, input.YearPillar)

	genderStr := "女 (坤造)"
	if input.Gender == destiny.GenderMale {
		genderStr = "男 (乾造)"
	}
	polarityStr := "阴"
	if polarity == bazi.Yang {
		polarityStr = "阳"
	}
	directionStr := "逆行 (Backward)"
	example := "例如：第一步是【戊申】，第二步则是【丁未】（逆排）"
	if forward {
		directionStr = "顺行 (Forward)"
		example = "例如：第一步是【戊申】，第二步则是【己酉】（顺排）"
	}

	name := destiny.StringValue(input.Name)
	if name == "" {
		name = "未提供"
	}

	startAge := input.StartAge.Int()
	if startAge <= 0 {
		startAge = defaultStartAge
	}

	var b strings.Builder
	b.WriteString("请根据以下**已经排好的**八字四柱和**指定的大运信息**进行分析。\n\n")

	b.WriteString("【基本信息】\n")
	fmt.Fprintf(&b, "性别：%s\n", genderStr)
	fmt.Fprintf(&b, "姓名：%s\n", name)
	fmt.Fprintf(&b, "出生年份：%d年 (阳历)\n\n", input.BirthYear.Int())

	b.WriteString("【八字四柱】\n")
	fmt.Fprintf(&b, "年柱：%s (天干属性：%s)\n", input.YearPillar, polarityStr)
	fmt.Fprintf(&b, "月柱：%s\n", input.MonthPillar)
	fmt.Fprintf(&b, "日柱：%s\n", input.DayPillar)
	fmt.Fprintf(&b, "时柱：%s\n\n", input.HourPillar)

	b.WriteString("【大运核心参数】\n")
	fmt.Fprintf(&b, "1. 起运年龄：%d 岁 (虚岁)。\n", startAge)
	fmt.Fprintf(&b, "2. 第一步大运：%s。\n", input.FirstSuperLuck)
	fmt.Fprintf(&b, "3. **排序方向**：%s。\n\n", directionStr)

	b.WriteString("【必须执行的算法 - 大运序列生成】\n")
	b.WriteString("请严格按照以下步骤生成数据：\n\n")
	fmt.Fprintf(&b, "1. **锁定第一步**：确认【%s】为第一步大运。\n", input.FirstSuperLuck)
	fmt.Fprintf(&b, "2. **计算序列**：根据六十甲子顺序和方向（%s），推算出接下来的 9 步大运。\n", directionStr)
	fmt.Fprintf(&b, "   %s\n", example)
	fmt.Fprintf(&b, "   参考序列：%s\n", strings.Join(bazi.LuckSequence(input.FirstSuperLuck, forward, luckSteps), " -> "))
	b.WriteString("3. **填充 JSON**：\n")
	if startAge > 1 {
		fmt.Fprintf(&b, "   - Age 1 到 %d: superLuck = \"%s\"\n", startAge-1, bazi.ChildhoodLuck)
	}
	fmt.Fprintf(&b, "   - Age %d 到 %d: superLuck = [第1步大运: %s]\n", startAge, startAge+9, input.FirstSuperLuck)
	fmt.Fprintf(&b, "   - Age %d 到 %d: superLuck = [第2步大运]\n", startAge+10, startAge+19)
	fmt.Fprintf(&b, "   - Age %d 到 %d: superLuck = [第3步大运]\n", startAge+20, startAge+29)
	b.WriteString("   - ...以此类推直到 100 岁。\n\n")

	b.WriteString("【特别警告】\n")
	b.WriteString("- **superLuck 字段**：必须填大运干支（10年一变），**绝对不要**填流年干支。\n")
	b.WriteString("- **ganZhi 字段**：填入该年份的**流年干支**（每年一变，例如 2024=甲辰，2025=乙巳）。\n\n")

	b.WriteString("任务：\n")
	b.WriteString("1. 确认格局与喜忌。\n")
	b.WriteString("2. 生成 **1-100 岁 (虚岁)** 的人生流年K线数据。\n")
	b.WriteString("3. 在 `reason` 字段中提供流年详批。\n")
	b.WriteString("4. 生成带评分的命理分析报告（包含性格分析、币圈交易分析、发展风水分析）。\n\n")
	b.WriteString("请严格按照系统指令生成 JSON 数据。\n")

	return b.String()
}
