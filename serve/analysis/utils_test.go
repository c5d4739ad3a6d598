package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LifeKLine/cmn/destiny"
)

func testInput() destiny.UserInput {
	return destiny.UserInput{
		Name:           destiny.String("张三"),
		Gender:         destiny.GenderMale,
		BirthYear:      1990,
		YearPillar:     "庚午",
		MonthPillar:    "辛巳",
		DayPillar:      "庚辰",
		HourPillar:     "癸未",
		StartAge:       8,
		FirstSuperLuck: "壬午",
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"json fence", "好的：\n```json\n{\"a\":1}\n```\n以上", `{"a":1}`},
		{"bare fence", "```\n{\"a\":2}\n```", `{"a":2}`},
		{"surrounding text", `结果如下 {"a":{"b":3}} 祝好`, `{"a":{"b":3}}`},
		{"plain json", `{"a":4}`, `{"a":4}`},
		{"no json", "no json here", "no json here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.raw))
		})
	}
}

func TestParseModelOutput(t *testing.T) {
	raw := "```json\n" + `{
		"bazi": ["庚午", "辛巳", "庚辰", "癸未"],
		"summary": "命局清朗",
		"summaryScore": 8,
		"chartPoints": [
			{"age":1,"year":1990,"superLuck":"童限","ganZhi":"庚午","open":50,"close":55,"high":60,"low":45,"score":55,"reason":"开局平稳"}
		]
	}` + "\n```"

	result, err := ParseModelOutput(raw)
	require.NoError(t, err)

	require.Len(t, result.ChartData, 1)
	assert.Equal(t, "庚午", result.ChartData[0].GanZhi)
	assert.Equal(t, "童限", destiny.StringValue(result.ChartData[0].SuperLuck))
	assert.Equal(t, 55.0, result.ChartData[0].Close)

	assert.Equal(t, []string{"庚午", "辛巳", "庚辰", "癸未"}, result.Analysis.Bazi)
	assert.Equal(t, "命局清朗", result.Analysis.Summary)
	assert.Equal(t, 8.0, result.Analysis.SummaryScore)

	// 缺失字段使用默认值
	assert.Equal(t, "无性格分析", result.Analysis.Personality)
	assert.Equal(t, 5.0, result.Analysis.PersonalityScore)
	assert.Equal(t, "待定", result.Analysis.CryptoYear)
	assert.Equal(t, "现货定投", result.Analysis.CryptoStyle)
}

func TestParseModelOutputLaxNumbers(t *testing.T) {
	raw := `{
		"summaryScore": "8",
		"wealthScore": 7.5,
		"chartPoints": [
			{"age":1.0,"year":"1990","ganZhi":"庚午","open":"50","close":55.5,"high":" 60 ","low":45,"score":"55.5","reason":"开局平稳"}
		]
	}`

	result, err := ParseModelOutput(raw)
	require.NoError(t, err)

	require.Len(t, result.ChartData, 1)
	p := result.ChartData[0]
	assert.Equal(t, 1, p.Age)
	assert.Equal(t, 1990, p.Year)
	assert.Equal(t, 50.0, p.Open)
	assert.Equal(t, 60.0, p.High)
	assert.Equal(t, 55.5, p.Score)
	assert.Nil(t, p.SuperLuck)

	assert.Equal(t, 8.0, result.Analysis.SummaryScore)
	assert.Equal(t, 7.5, result.Analysis.WealthScore)
	assert.Equal(t, 5.0, result.Analysis.HealthScore)

	// 对外仍输出普通数字
	out, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"open":50,`)
	assert.Contains(t, string(out), `"summaryScore":8,`)
}

func TestParseModelOutputEmptyChart(t *testing.T) {
	result, err := ParseModelOutput(`{"chartPoints": []}`)
	require.NoError(t, err)
	assert.NotNil(t, result.ChartData)
	assert.Empty(t, result.ChartData)
	assert.Equal(t, "无摘要", result.Analysis.Summary)
}

func TestParseModelOutputInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "模型今天休息"},
		{"missing chartPoints", `{"summary":"x"}`},
		{"null chartPoints", `{"chartPoints":null}`},
		{"chartPoints not a list", `{"chartPoints":{"age":1}}`},
		{"bad point", `{"chartPoints":[{"age":"one"}]}`},
		{"fractional age", `{"chartPoints":[{"age":1.5}]}`},
		{"bad score", `{"summaryScore":"high","chartPoints":[]}`},
		{"bad open", `{"chartPoints":[{"age":1,"open":"n/a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModelOutput(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidOutput)
		})
	}
}

func TestHashInput(t *testing.T) {
	base := testInput()
	h1, err := HashInput(base)
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	// apiKey 与 apiBaseUrl 不参与哈希
	withKey := testInput()
	withKey.APIKey = destiny.String("sk-secret")
	withKey.APIBaseURL = destiny.String("https://example.com/v1")
	h2, err := HashInput(withKey)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, "sk-secret", destiny.StringValue(withKey.APIKey))

	withModel := testInput()
	withModel.ModelName = destiny.String("other-model")
	h3, err := HashInput(withModel)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	otherPillar := testInput()
	otherPillar.HourPillar = "甲申"
	h4, err := HashInput(otherPillar)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4)
}
