package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	adapterhttp "video-ingest-service/ddd/adapter/http"
	"video-ingest-service/ddd/application/app"
	"video-ingest-service/pkg/config"
	kafkaclient "video-ingest-service/pkg/kafka"
	"video-ingest-service/pkg/logger"
	"video-ingest-service/pkg/manager"
	"video-ingest-service/pkg/registry"
	"video-ingest-service/pkg/task"

	// 导入资源包以触发init函数
	_ "video-ingest-service/internal/resource"
)

func Run() {
	fmt.Println("[STARTUP] Starting video ingest service...")

	// 加载配置
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("[ERROR] Failed to load config (%s): %v\n", cfgPath, err)
		os.Exit(1)
	}
	// 设置全局配置（必须在资源管理器初始化之前）
	config.SetGlobalConfig(cfg)
	fmt.Printf("[STARTUP] Config file loaded: %s\n", cfgPath)

	// 初始化日志服务
	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)

	logger.Infof("Video ingest service starting version=%s", "1.0.0")

	// 检查 FFmpeg 是否可用，直接在启动阶段失败
	ffmpegBin := cfg.Transcode.FFmpeg.BinaryPath
	if strings.TrimSpace(ffmpegBin) == "" {
		ffmpegBin = "ffmpeg"
	}
	if _, err := exec.LookPath(ffmpegBin); err != nil {
		logger.Fatal(fmt.Sprintf("FFmpeg binary not found, please install or set transcode.ffmpeg.binary_path binary=%s error=%s", ffmpegBin, err.Error()))
	}

	// 资源管理器初始化
	logger.Infof("Initializing resource manager...")
	manager.MustInitResources()
	defer manager.CloseResources()
	logger.Infof("Resource manager initialized")

	// 预创建事件主题（失败不阻断启动）
	if cfg.Kafka.Enabled {
		if err := kafkaclient.DefaultClient().EnsureTopic(cfg.Kafka.Topics.VideoEvents, 1, 1); err != nil {
			logger.Warnf("Kafka topic precreate failed topic=%s error=%v", cfg.Kafka.Topics.VideoEvents, err)
		}
	}

	// 初始化应用服务
	videoApp := app.DefaultVideoApp()

	// 创建Gin引擎
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	router := adapterhttp.NewRouter(videoApp, cfg.Storage.Root)
	router.SetupMiddleware(engine)
	router.SetupRoutes(engine)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 服务注册（可选）
	if cfg.ServiceRegistry.Enabled {
		registerService(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := task.StartAll(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to start background tasks error=%v", err))
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(fmt.Sprintf("Failed to start HTTP server error=%v", err))
		}
	}()

	logger.Infof("HTTP server started address=%s health_url=%s api_url=%s",
		addr,
		fmt.Sprintf("http://%s/health", addr),
		fmt.Sprintf("http://%s/api/v1", addr))

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Received shutdown signal, shutting down server...")

	task.StopAll()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal(fmt.Sprintf("Server forced to close error=%v", err))
	}

	logger.Infof("Server exited safely")

	if logService != nil {
		logService.Close()
	}

	fmt.Println("[SHUTDOWN] Video ingest service exited safely")
}

// registerService 将HTTP地址注册到etcd，并作为后台任务维持租约
func registerService(cfg *config.Config) {
	registerHost := cfg.ServiceRegistry.RegisterHost
	if registerHost == "" {
		registerHost = cfg.Server.Host
	}
	serviceAddr := fmt.Sprintf("%s:%d", registerHost, cfg.Server.Port)

	reg, err := registry.NewServiceRegistry(cfg.Etcd, cfg.ServiceRegistry, serviceAddr)
	if err != nil {
		logger.Warnf("service registry init failed error=%v", err)
		return
	}
	task.Register(&registryTask{reg: reg})
}

type registryTask struct {
	reg *registry.ServiceRegistry
}

func (t *registryTask) Name() string { return "service-registry" }

func (t *registryTask) Start(ctx context.Context) error {
	return t.reg.Register()
}

func (t *registryTask) Stop() error {
	return t.reg.Deregister()
}

// resolveConfigPath 根据环境选择配置文件，支持CONFIG_PATH覆盖、CONFIG_ENV区分环境
func resolveConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	env := strings.ToLower(strings.TrimSpace(os.Getenv("CONFIG_ENV")))
	if env == "" {
		env = "dev"
	}

	switch env {
	case "prod", "production":
		return "configs/config_prod.yaml"
	case "dev", "development":
		return "configs/config.dev.yaml"
	default:
		return fmt.Sprintf("configs/config.%s.yaml", env)
	}
}
