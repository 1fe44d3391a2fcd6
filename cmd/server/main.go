package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/moviemate/internal/config"
	"github.com/user/moviemate/internal/handler"
	"github.com/user/moviemate/internal/middleware"
	"github.com/user/moviemate/internal/model"
	"github.com/user/moviemate/internal/repository"
	"github.com/user/moviemate/internal/router"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()

	// 初始化记录存储（默认 JSON 文件，可切 Postgres）
	store, err := repository.InitStore(cfg)
	if err != nil {
		log.Fatalf("存储初始化失败: %v", err)
	}

	// 初始化仓库
	repos := repository.NewRepositories(store)

	// 首次启动时写入演示用户，方便前端直接体验
	seedDemoUser(repos)

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// 初始化 Handler
	h := handler.NewHandler(repos, cfg)

	// 注册路由
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second, // 热门榜补全一批要跑上百个上游请求
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，主协程等待信号
	go func() {
		log.Printf("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}

// seedDemoUser 用户表为空时创建演示账号
func seedDemoUser(repos *repository.Repositories) {
	count, err := repos.User.Count()
	if err != nil || count > 0 {
		return
	}

	email := "demo@example.com"
	user := model.NewUser("demo_user", &email)
	if err := repos.User.Create(&user); err != nil {
		log.Printf("创建演示用户失败: %v", err)
		return
	}
	log.Printf("已创建演示用户: %s (ID: %s)", user.Username, user.ID)
}
