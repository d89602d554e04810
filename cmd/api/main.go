package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wellscan/patient-portal/internal/cache"
	"github.com/wellscan/patient-portal/internal/config"
	"github.com/wellscan/patient-portal/internal/db"
	"github.com/wellscan/patient-portal/internal/logger"
	"github.com/wellscan/patient-portal/internal/middleware"
	"github.com/wellscan/patient-portal/internal/routes"
	"github.com/wellscan/patient-portal/internal/seed"
)

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.IsProduction())
	defer log.Sync()

	database := db.NewDB(cfg)
	seed.Tests(database)

	// The catalog cache is an optimization; the API runs without Redis.
	redisClient, err := cache.New(cfg)
	if err != nil {
		zap.L().Warn("redis unavailable, catalog caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Setup(r, database, redisClient, cfg)

	zap.L().Info("starting server", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}
