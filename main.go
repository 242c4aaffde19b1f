package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/middleware"
	"github.com/akzmtmaos/prodactivity-sub000/routes"
	"github.com/akzmtmaos/prodactivity-sub000/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	if err := config.InitLogger(); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
		return
	}

	// 初始化数据库
	if err := config.InitDB(conf); err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
		return
	}

	// 初始化Redis（失败只降级缓存，不影响启动）
	if err := config.InitRedis(conf); err != nil {
		config.Logger.Warnw("Redis不可用，效率统计缓存已禁用", "error", err)
	}

	// 创建核心服务
	prodService := services.NewProductivityService(config.DB)
	syncService := services.NewSyncService(config.DB, conf.SyncEndpoint, conf.SyncAPIKey)

	// 创建并启动定时任务调度器（由入口显式持有和启停）
	scheduler := services.NewSchedulerService(time.Local)
	if err := scheduler.RegisterJobs(config.DB, prodService, syncService, conf.PurgeRetentionDays); err != nil {
		log.Fatalf("无法注册定时任务: %v", err)
	}
	if conf.SchedulerEnabled {
		scheduler.Start()
	}

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.New()

	// 设置中间件
	middleware.SetupMiddleware(r)

	// 注册路由
	routes.RegisterRoutes(r, conf, prodService)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		log.Printf("启动服务器，监听端口: %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	// 停止调度器并等待在跑任务结束
	scheduler.Stop()

	log.Println("服务器已关闭")
}
