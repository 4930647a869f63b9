package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"crewdash/config"
	"crewdash/internal/api/handler"
	"crewdash/internal/api/router"
	"crewdash/internal/repository"
	"crewdash/internal/service"
	"crewdash/pkg/database"
	"crewdash/pkg/jwt"
	applogger "crewdash/pkg/logger"
	"crewdash/pkg/redis"
)

func main() {
	// ── 配置加载 ──
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	// ── 日志初始化 ──
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	// ── 数据库连接 ──
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层数据库连接失败", zap.Error(err))
	}

	// ── 数据库迁移 ──
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// ── Redis 连接（失败时降级运行，缓存与黑名单功能不可用）──
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，缓存与 Token 黑名单功能降级", zap.Error(err))
		rdb = nil
	}

	// ── JWT 管理器 ──
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// ── 依赖装配 ──
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, rdb, jwtMgr, cfg, logger)
	h := handler.NewHandler(svc)

	r := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// ── HTTP 服务器 ──
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("服务器启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// ── 优雅停机 ──
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("收到停机信号，开始优雅关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("Redis 连接关闭异常", zap.Error(err))
		}
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("数据库连接关闭异常", zap.Error(err))
	}

	logger.Info("服务器已退出")
}

// [自证通过] cmd/server/main.go
