package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cv-filler-go/internal/api/handler"
	"cv-filler-go/internal/api/router"
	"cv-filler-go/internal/config"
	applogger "cv-filler-go/internal/logger"
	"cv-filler-go/internal/processor"
	"cv-filler-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		applogger.Fatal().Err(err).Msg("加载配置失败")
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	fillService, err := processor.NewCVFillService(cfg, storageManager)
	if err != nil {
		glog.Fatalf("初始化填充服务失败: %v", err)
	}
	glog.Info("填充服务初始化成功")

	// 启动异步填充消费者
	var consumerStop chan struct{}
	if storageManager.RabbitMQ != nil {
		consumerStop, err = fillService.StartFillConsumer(ctx)
		if err != nil {
			glog.Fatalf("启动填充消费者失败: %v", err)
		}
		glog.Infof("填充消费者已启动，队列: %s", cfg.RabbitMQ.FillRequestQueue)
	} else {
		glog.Warn("RabbitMQ未初始化，异步填充接口不可用")
	}

	cvHandler := handler.NewCVHandler(fillService)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cvHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	if consumerStop != nil {
		close(consumerStop)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化应用日志并把Hertz的日志接到同一个zerolog实例上
func initLogger(cfg *config.Config) {
	applogger.Init(applogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	hertzCompatibleLogger := hertzadapter.From(applogger.Logger)
	glog.SetLogger(hertzCompatibleLogger)
}
