package destiny

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt 线上既可以是数字也可以是数字字符串的整数，入口处统一归一为 int
type FlexInt int

func (f FlexInt) Int() int {
	return int(f)
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(f), 10), nil
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := ParseFlexInt(s)
		if err != nil {
			return err
		}
		*f = n
		return nil
	}

	n, err := parseNumber(raw)
	if err != nil {
		return err
	}
	*f = n
	return nil
}

// ParseFlexInt 解析字符串形式的整数，空串为 0
func ParseFlexInt(s string) (FlexInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return FlexInt(n), nil
}

// parseNumber 接受 JSON 数字，小数部分必须为 0
func parseNumber(raw string) (FlexInt, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return FlexInt(n), nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number", raw)
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s is not an integer", raw)
	}
	if v < minIntFloat || v >= maxIntFloat {
		return 0, fmt.Errorf("%s overflows int", raw)
	}
	return FlexInt(v), nil
}

// int 的取值范围，2^63 本身已越界
const (
	minIntFloat = float64(math.MinInt)
	maxIntFloat = -minIntFloat
)

// FlexFloat 宽松的浮点数，接受数字或数字字符串，只用于解析模型输出
type FlexFloat float64

func (f FlexFloat) Float() float64 {
	return float64(f)
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s is not a number", raw)
	}
	*f = FlexFloat(v)
	return nil
}
