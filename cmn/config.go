package cmn

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// 环境变量与配置项的映射，环境变量优先于配置文件
var envBindings = map[string]string{
	"llm.apiKey":  "GEMINI_API_KEY",
	"llm.baseUrl": "GEMINI_BASE_URL",
	"llm.model":   "GEMINI_MODEL_NAME",
	"dbms.dsn":    "DATABASE_URL",
	"redis.url":   "REDIS_URL",
	"server.port": "PORT",
}

// InitConfig 在日志之前初始化，日志文件的切割参数来自配置
func InitConfig(configFile string) {
	err := initViper(configFile)
	if err != nil {
		fmt.Printf("[ FAIL ] failed to init viper: %v\n", err)
		os.Exit(1)
	}
}

// SetDefaults 设置所有配置项的默认值
func SetDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8000")

	viper.SetDefault("redis.enable", true)
	viper.SetDefault("redis.url", "redis://localhost:6379/0")

	viper.SetDefault("llm.baseUrl", "https://max.openai365.top/v1")
	viper.SetDefault("llm.model", "gemini-3-pro-preview")
	viper.SetDefault("llm.timeoutSeconds", 120)

	viper.SetDefault("analysis.demoFile", "mock_data.json")
	viper.SetDefault("analysis.cacheTTLHours", 24*7)
	viper.SetDefault("analysis.retentionDays", 0)

	viper.SetDefault("log.maxSizeMB", 100)
	viper.SetDefault("log.maxBackups", 3)
	viper.SetDefault("log.maxAgeDays", 30)
}

func initViper(configFile string) error {
	SetDefaults()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath("../..")
		viper.AddConfigPath("../../..")
		viper.SetConfigType("json")
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configFile == "" {
			// 没有配置文件时使用默认值和环境变量
			return nil
		}
		return err
	}

	return nil
}
