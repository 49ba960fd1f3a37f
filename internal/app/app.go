package app

import (
	"os"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	if os.Getenv("DB_AUTOMIGRATE") == "true" {
		if err := autoMigrate(gormDB); err != nil {
			return err
		}
		zap.L().Info("database migration complete")
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	return registerModules(router, gormDB, redisClient, zap.L())
}
