package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shareit-backend/internal/bookings"
	"shareit-backend/internal/items"
	"shareit-backend/internal/platform/db"
	"shareit-backend/internal/platform/httpx"
	"shareit-backend/internal/requests"
	"shareit-backend/internal/users"
)

func main() {
	configPath := os.Getenv("SHAREIT_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := db.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Mode)
	defer logger.Sync()

	logger.Info("starting", zap.String("mode", cfg.Mode), zap.String("addr", cfg.Addr))

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(context.Background(), conn, "migrations", logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.RequestLogger(logger), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", httpx.HeaderSharerID},
			ExposeHeaders:    []string{"Content-Length", httpx.HeaderRequestID},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	users.RegisterRoutes(r, users.NewService(conn))
	items.RegisterRoutes(r, items.NewService(conn))
	requests.RegisterRoutes(r, requests.NewService(conn))
	bookings.RegisterRoutes(r, bookings.NewService(conn))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown failed", zap.Error(err))
	}
}

func newLogger(mode string) *zap.Logger {
	var config zap.Config
	if mode == "release" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.OutputPaths = []string{"stdout"}

	logger, err := config.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}
