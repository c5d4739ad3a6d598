package cmn

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir      = "logs"
	logFileName = "lifekline.log"
)

var (
	logger     = zap.NewNop()
	MiniLogger = zap.NewNop()
	once       sync.Once
)

// InitLogger 只生效一次，重复调用仅重新输出启动信息
func InitLogger(debug bool) {
	once.Do(func() {
		// 初始化日志文件目录
		err := InitDir(logDir)
		if err != nil {
			fmt.Printf("init log dir failed: %v\n", err)
			os.Exit(1)
		}

		if debug {
			initDevLogger()
		} else {
			initProdLogger(fmt.Sprintf("%s/%s", logDir, logFileName))
		}

		// 初始化极简日志
		initMiniLogger()

		logger = zap.L()
	})

	MiniLogger.Info("[ OK ] log module initialized", zap.Bool("debug", debug))
	MiniLogger.Info("[ OK ] config module initialed", zap.String("path", configPath()))
}

// GetLogger 获取全局的logger，未初始化时返回空logger
func GetLogger() *zap.Logger {
	return logger
}

// initDevLogger 初始化开发环境日志
func initDevLogger() {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "T"
	encoderConfig.CallerKey = "C"
	// 带颜色的级别编码
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.FullCallerEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.DebugLevel)

	l := zap.New(zapcore.NewTee(consoleCore), zap.AddCaller())
	zap.ReplaceGlobals(l)
}

// initProdLogger 初始化生产环境日志，文件按大小切割
func initProdLogger(logFilePath string) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    viper.GetInt("log.maxSizeMB"),
		MaxBackups: viper.GetInt("log.maxBackups"),
		MaxAge:     viper.GetInt("log.maxAgeDays"),
		LocalTime:  true,
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zapcore.InfoLevel,
	)

	l := zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller())
	zap.ReplaceGlobals(l)
}

func initMiniLogger() {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "msg", // 只保留 msg
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		zapcore.InfoLevel,
	)

	MiniLogger = zap.New(core)
}

func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return "(defaults and env)"
}
