package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"LifeKLine/cmn/destiny"
	"LifeKLine/cmn/llm"
)

// 特殊的 apiKey，不调用模型
const (
	modeDemo    = "demo"
	modeRandom  = "random"
	modeFormula = "formula"
)

// Generate 按密钥选择生成方式，不读写缓存
func (s *service) Generate(ctx context.Context, input destiny.UserInput) (*destiny.LifeDestinyResult, error) {
	cfg := llm.Resolve(
		destiny.StringValue(input.APIKey),
		destiny.StringValue(input.APIBaseURL),
		destiny.StringValue(input.ModelName),
	)

	switch strings.ToLower(cfg.ApiKey) {
	case modeDemo:
		z.Info("using local demo data", zap.String("file", s.demoFile))
		return s.loadDemo()
	case modeRandom:
		z.Info("using random generator")
		return GenerateRandom(input, s.newRand()), nil
	case modeFormula:
		z.Info("using formula generator")
		return GenerateFormula(input, s.newRand()), nil
	case "":
		return nil, newHTTPError(http.StatusPaymentRequired, detailNoKey, nil)
	}

	if cfg.BaseUrl == "" {
		return nil, newHTTPError(http.StatusBadRequest, detailNoBaseUrl, nil)
	}

	content, err := s.llm.Chat(ctx, cfg, SystemPrompt(), BuildUserPrompt(input))
	if err != nil {
		z.Error("llm chat failed", zap.String("model", cfg.Model), zap.Error(err))
		if errors.Is(err, llm.ErrQuota) {
			return nil, newHTTPError(http.StatusPaymentRequired, detailQuota, err)
		}
		return nil, newHTTPError(http.StatusBadGateway, fmt.Sprintf(detailUpstream, err), err)
	}

	result, err := ParseModelOutput(content)
	if err != nil {
		z.Error("failed to parse llm output", zap.Error(err))
		return nil, newHTTPError(http.StatusBadGateway, fmt.Sprintf(detailBadOutput, err), err)
	}

	return result, nil
}

func (s *service) loadDemo() (*destiny.LifeDestinyResult, error) {
	raw, err := os.ReadFile(s.demoFile)
	if err != nil {
		z.Error("failed to read demo file", zap.String("file", s.demoFile), zap.Error(err))
		return nil, fmt.Errorf("read demo file: %w", err)
	}

	result, err := ParseModelOutput(string(raw))
	if err != nil {
		z.Error("failed to parse demo file", zap.String("file", s.demoFile), zap.Error(err))
		return nil, fmt.Errorf("parse demo file: %w", err)
	}

	return result, nil
}
