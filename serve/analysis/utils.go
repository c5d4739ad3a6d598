package analysis

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"LifeKLine/cmn/destiny"
)

var fencePattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// ExtractJSON 从模型输出中取出 JSON：优先 ```json 代码块，其次第一个 { 到最后一个 }
func ExtractJSON(raw string) string {
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return raw[start : end+1]
	}

	return raw
}

// ParseModelOutput 把模型输出转为分析结果，缺失的分析字段使用默认值
func ParseModelOutput(raw string) (*destiny.LifeDestinyResult, error) {
	out := defaultModelOutput()
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	points := bytes.TrimSpace(out.ChartPoints)
	if len(points) == 0 || points[0] != '[' {
		return nil, fmt.Errorf("%w: chartPoints missing or not a list", ErrInvalidOutput)
	}

	var raws []modelPoint
	if err := json.Unmarshal(points, &raws); err != nil {
		return nil, fmt.Errorf("%w: chartPoints: %v", ErrInvalidOutput, err)
	}
	chart := make([]destiny.KLinePoint, 0, len(raws))
	for _, p := range raws {
		chart = append(chart, p.point())
	}

	return &destiny.LifeDestinyResult{
		ChartData: chart,
		Analysis:  out.analysis(),
	}, nil
}

// HashInput 输入的 SHA-256，排除 apiBaseUrl 与 apiKey，它们不影响分析内容
func HashInput(input destiny.UserInput) (string, error) {
	input.APIBaseURL = nil
	input.APIKey = nil

	raw, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	// 经 map 重新编码，键按字典序输出
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", err
	}
	canonical, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
