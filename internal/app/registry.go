package app

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/audit"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/auth"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/calculation"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/expatriate"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/grant"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/middleware"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/organization"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paygroup"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/payrun"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/rbac"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	grantRepo := grant.NewRepository(gormDB)
	organizationRepo := organization.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	payGroupRepo := paygroup.NewRepository(gormDB)
	payRunRepo := payrun.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)

	// --- Permission Core ---
	defaults, err := rbac.NewDefaults()
	if err != nil {
		return err
	}
	grantService := grant.NewService(grantRepo, defaults, auditRepo)

	// --- Services ---
	authService := auth.NewService(authRepo, grantRepo, logger)
	calculationService := calculation.NewService(employeeRepo, auditRepo, logger)
	employeeService := employee.NewServiceWithOutbox(gormDB, employeeRepo, outboxRepo, rdb, logger)
	expatriateService := expatriate.NewService(auditRepo, logger)
	organizationService := organization.NewService(organizationRepo)
	payGroupService := paygroup.NewService(payGroupRepo, employeeRepo, logger)
	payRunService := payrun.NewService(gormDB, payRunRepo, payGroupRepo, employeeRepo, outboxRepo, auditRepo, logger)
	reportService := report.NewService(reportRepo, rdb, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	calculationHandler := calculation.NewHandler(calculationService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	expatriateHandler := expatriate.NewHandler(expatriateService)
	grantHandler := grant.NewHandler(grantService)
	organizationHandler := organization.NewHandler(organizationService)
	payGroupHandler := paygroup.NewHandler(payGroupService)
	payRunHandler := payrun.NewHandlerWithRedis(payRunService, rdb, logger)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		calculation.RegisterRoutes(api, calculationHandler, grantService)
		employee.RegisterRoutes(api, employeeHandler, grantService, logger)
		expatriate.RegisterRoutes(api, expatriateHandler, grantService)
		grant.RegisterRoutes(api, grantHandler, grantService)
		organization.RegisterRoutes(api, organizationHandler, grantService)
		paygroup.RegisterRoutes(api, payGroupHandler, grantService)
		payrun.RegisterRoutes(api, payRunHandler, grantService, rdb)
		report.RegisterRoutes(api, reportHandler, grantService)
	}

	return nil
}

func autoMigrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&organization.Organization{},
		&organization.Company{},
		&auth.User{},
		&grant.Role{},
		&grant.UserRole{},
		&grant.AccessGrant{},
		&employee.Employee{},
		&paygroup.PayGroup{},
		&payrun.PayRun{},
		&payrun.PayRunEntry{},
		&audit.Entry{},
		&kafka.OutboxEvent{},
	)
}
