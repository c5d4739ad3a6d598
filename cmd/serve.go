package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"LifeKLine/cmn"
	"LifeKLine/cmn/llm"
	"LifeKLine/router"
	"LifeKLine/serve/analysis"
)

const shutdownTimeout = 15 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start all services",
	Long:  `The serve command starts the analysis API under /api and the web page on every other path.`,
	Run: func(cmd *cobra.Command, args []string) {
		if debug {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		// 初始化地基模块（顺序不能改变）
		cmn.InitConfig(configFile)
		cmn.InitLogger(debug)
		cmn.InitDB()
		cmn.InitRedis()
		logger := cmn.GetLogger()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 初始化公共模块
		llm.Init()

		// 初始化服务模块
		analysis.Init(ctx)

		cmn.MiniLogger.Info("[ YES ] all modules initialed", zap.String("version", cmn.Version))

		// 全局唯一的 Gin 实例
		r := gin.New()
		router.InitMiddlewares(r, logger)
		router.InitRoutes(r, nil)

		// 读取运行配置
		addr := net.JoinHostPort(viper.GetString("server.host"), viper.GetString("server.port"))
		srv := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// 启动服务
		go func() {
			cmn.MiniLogger.Info("[ OK ] http server listening", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("[ FAIL ] http server run failed", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown failed", zap.Error(err))
		}

		// 等待后台保存完成
		analysis.DefaultService().Wait()
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
