package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/audit"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/events"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka/consumer"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paygroup"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/payrun"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	auditRepo := audit.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	payGroupRepo := paygroup.NewRepository(gormDB)
	payRunRepo := payrun.NewRepository(gormDB)

	payGroupService := paygroup.NewService(payGroupRepo, employeeRepo, logger)
	payRunService := payrun.NewService(gormDB, payRunRepo, payGroupRepo, employeeRepo, outboxRepo, auditRepo, logger)

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "payrun-pro-paygroup-assigner",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	payslipReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayRunPayslipsRequestedTopic,
		GroupID:        "payrun-pro-payslip-generator",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer payslipReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, payGroupService, logger)
	go consumer.ConsumePayRunPayslipsRequested(ctx, payslipReader, payRunService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
