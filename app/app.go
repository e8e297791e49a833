package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	bloggrpc "blog-service/ddd/adapter/grpc"
	_ "blog-service/ddd/adapter/http"
	"blog-service/ddd/infrastructure/database/po"
	"blog-service/internal/resource"
	"blog-service/pkg/config"
	"blog-service/pkg/grpcutil"
	"blog-service/pkg/logger"
	"blog-service/pkg/manager"
	"blog-service/pkg/middleware"
	"blog-service/pkg/redisclient"
	"blog-service/pkg/repository"
)

const serviceName = "blog-service"

// Run is the entrypoint of blog-service.
func Run() {
	fmt.Println("[STARTUP] Starting blog service...")

	cfgPath := resolveConfigPath()
	fmt.Println("[STARTUP] Loading config file...")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("[ERROR] Failed to load config (%s): %v\n", cfgPath, err)
		os.Exit(1)
	}
	config.SetGlobalConfig(cfg)
	fmt.Printf("[STARTUP] Config file loaded: %s\n", cfgPath)

	fmt.Println("[STARTUP] Initializing logger...")
	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)
	logger.Infof("Blog service starting version=%s mode=%s", "1.0.0", cfg.Server.Mode)

	logger.Infof("Initializing database connection...")
	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to initialize database error=%v", err))
	}
	defer db.Close()
	resource.SetMainDB(db.Self)
	logger.Infof("Database connected driver=%s", cfg.Database.Driver)

	if cfg.Database.AutoMigrate {
		logger.Infof("Running schema migration...")
		if err := db.AutoMigrate(po.AllModels()...); err != nil {
			logger.Fatal(fmt.Sprintf("Failed to migrate schema error=%v", err))
		}
	}

	// Redis is optional: without it view dedup falls back to the store and
	// trending results are not cached.
	redisCli, err := redisclient.New(cfg.Redis)
	switch {
	case errors.Is(err, redisclient.ErrDisabled):
		logger.Infof("Redis disabled; view dedup uses the database only")
	case err != nil:
		logger.Errorf("Failed to initialize redis; continuing without cache error=%v", err)
	default:
		resource.SetRedis(redisCli.Raw())
		defer func() {
			logger.Infof("Closing Redis client...")
			_ = redisCli.Close()
		}()
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestContextMiddleware(),
		middleware.RequestLogMiddleware(),
	)

	router.GET("/health", healthHandler)

	logger.Infof("Registering routes...")
	manager.RegisterAllRoutes(router)
	logger.Infof("Routes registered")

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		grpcServer   *grpc.Server
		grpcListener net.Listener
		grpcAddr     string
	)

	if cfg.GRPC.Port > 0 {
		grpcHost := cfg.Server.Host
		if grpcHost == "" {
			grpcHost = "0.0.0.0"
		}
		grpcAddr = fmt.Sprintf("%s:%d", grpcHost, cfg.GRPC.Port)

		grpcListener, err = net.Listen(cfg.GRPC.Network, grpcAddr)
		if err != nil {
			logger.Fatal(fmt.Sprintf("Failed to listen on gRPC port address=%s error=%v", grpcAddr, err))
		}

		opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(grpcutil.UnaryServerRequestIDInterceptor)}
		if cfg.GRPC.MaxRecvMsgSize > 0 {
			opts = append(opts, grpc.MaxRecvMsgSize(cfg.GRPC.MaxRecvMsgSize))
		}
		if cfg.GRPC.MaxSendMsgSize > 0 {
			opts = append(opts, grpc.MaxSendMsgSize(cfg.GRPC.MaxSendMsgSize))
		}
		grpcServer = grpc.NewServer(opts...)

		healthSrv := bloggrpc.NewHealthServer(resource.PingMainDB, 10*time.Second)
		healthpb.RegisterHealthServer(grpcServer, healthSrv.Server)
		go healthSrv.Watch(rootCtx)

		go func() {
			if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				logger.Errorf("gRPC server exited unexpectedly error=%v", err)
			}
		}()

		logger.Infof("gRPC server started address=%s", grpcAddr)
	} else {
		logger.Warnf("gRPC port is not configured, skipping gRPC server startup")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("HTTP server starting addr=%s service=%s", addr, serviceName)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(fmt.Sprintf("Failed to start HTTP server error=%v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Received shutdown signal, shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if grpcServer != nil {
		logger.Infof("Stopping gRPC server address=%s", grpcAddr)
		grpcServer.GracefulStop()
	}
	if grpcListener != nil {
		_ = grpcListener.Close()
	}

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to close error=%v", err)
	}

	logger.Infof("Server exited safely")
	logService.Close()
}

// healthHandler reports process liveness plus database reachability.
func healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	database := "up"
	if err := resource.PingMainDB(ctx); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
		database = "down"
	}
	c.JSON(code, gin.H{
		"status":    status,
		"service":   serviceName,
		"database":  database,
		"timestamp": time.Now().Unix(),
	})
}

// resolveConfigPath determines which config file to use.
func resolveConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	if env := os.Getenv("CONFIG_ENV"); env != "" {
		return fmt.Sprintf("configs/config.%s.yaml", env)
	}
	return "configs/config.dev.yaml"
}
