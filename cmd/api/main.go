package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/navalha-labs/booking-engine/internal/config"
	dbpkg "github.com/navalha-labs/booking-engine/internal/db"
	"github.com/navalha-labs/booking-engine/internal/logger"
	"github.com/navalha-labs/booking-engine/internal/middleware"
	"github.com/navalha-labs/booking-engine/internal/routes"
)

func main() {

	_ = godotenv.Load()

	log := logger.New()
	cfg := config.Load()
	db := dbpkg.NewDB(cfg, log)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
