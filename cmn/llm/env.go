package llm

import (
	"LifeKLine/cmn"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	z = zap.NewNop()

	defaultConfig Config
	timeout       = 120 * time.Second
)

// Config 一次对话使用的模型服务配置
type Config struct {
	ApiKey  string
	BaseUrl string
	Model   string
}

func Init() {
	z = cmn.GetLogger()

	defaultConfig = Config{
		ApiKey:  strings.TrimSpace(viper.GetString("llm.apiKey")),
		BaseUrl: strings.TrimRight(strings.TrimSpace(viper.GetString("llm.baseUrl")), "/"),
		Model:   strings.TrimSpace(viper.GetString("llm.model")),
	}

	if seconds := viper.GetInt("llm.timeoutSeconds"); seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}

	// 没有系统密钥时仍可使用用户自带的密钥
	if defaultConfig.ApiKey == "" {
		cmn.MiniLogger.Info("[ -- ] llm module has no system api key, user keys only")
	}

	cmn.MiniLogger.Info("[ OK ] llm module initialed",
		zap.String("baseUrl", defaultConfig.BaseUrl),
		zap.String("model", defaultConfig.Model))
}

// DefaultConfig 返回系统配置的模型服务
func DefaultConfig() Config {
	return defaultConfig
}

// Resolve 用户配置优先，空值回落到系统配置
func Resolve(apiKey, baseUrl, model string) Config {
	cfg := defaultConfig

	if v := strings.TrimSpace(apiKey); v != "" {
		cfg.ApiKey = v
	}
	if v := strings.TrimRight(strings.TrimSpace(baseUrl), "/"); v != "" {
		cfg.BaseUrl = v
	}
	if v := strings.TrimSpace(model); v != "" {
		cfg.Model = v
	}

	return cfg
}
