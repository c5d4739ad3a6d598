package destiny

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce   sync.Once
	inputValidator  *validator.Validate
	resultValidator *validator.Validate
)

func validators() (*validator.Validate, *validator.Validate) {
	validatorOnce.Do(func() {
		// 与 gin 的 ShouldBind 使用同一套 binding 标签
		inputValidator = validator.New(validator.WithRequiredStructEnabled())
		inputValidator.SetTagName("binding")

		resultValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return inputValidator, resultValidator
}

// Validate 只检查必填字段和性别枚举，不校验干支是否合法
func (u UserInput) Validate() error {
	v, _ := validators()
	if err := v.Struct(u); err != nil {
		return fmt.Errorf("invalid user input: %w", err)
	}
	return nil
}

// Validate 对后端返回结果做结构校验：字段范围、K线按年龄严格递增、高低价包住开收盘
func (r *LifeDestinyResult) Validate() error {
	if r == nil {
		return fmt.Errorf("invalid result: nil")
	}

	_, v := validators()
	if err := v.Struct(r); err != nil {
		return fmt.Errorf("invalid result: %w", err)
	}

	for i, p := range r.ChartData {
		if i > 0 && p.Age <= r.ChartData[i-1].Age {
			return fmt.Errorf("invalid result: chartData[%d] age %d not after age %d", i, p.Age, r.ChartData[i-1].Age)
		}
		if p.Low > min(p.Open, p.Close) || p.High < max(p.Open, p.Close) {
			return fmt.Errorf("invalid result: chartData[%d] low/high do not bound open/close", i)
		}
	}

	return nil
}
