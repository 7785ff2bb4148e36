package main

import (
	"catalog/infra/postgres"
	"catalog/infra/rabbitmq"
	"catalog/internal/consumers"
	"catalog/pkg/config"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Catalog audit worker starting...")

	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for the audit worker")
	}

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	defer pgRepository.Close()

	changeHandler := consumers.NewCategoryChangeHandler(
		pgRepository,
		zap.L(),
	)

	// Queue name: {service}.{domain}.{events}.{version}
	consumerConfig := rabbitmq.ConsumerConfig{
		Exchange:      "catalog.category",
		QueueName:     "catalog.category.all.v1",
		RoutingKeys:   []string{"category.*.v1"},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	}

	consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, consumerConfig)
	if err != nil {
		zap.L().Fatal("Failed to create category consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		zap.L().Info("Starting category event consumer...")
		if err := consumer.Consume(ctx, changeHandler.HandleEvent); err != nil {
			if err != context.Canceled {
				zap.L().Error("Category consumer error", zap.Error(err))
			}
		}
	}()

	// Periodic connection pool monitoring
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				zap.L().Info("Connection pool stats", zap.Any("stats", pgRepository.GetPoolStats()))
			}
		}
	}()

	zap.L().Info("Worker started successfully. Waiting for category events...")

	<-sigChan
	zap.L().Info("Shutdown signal received, stopping worker...")
	cancel()

	zap.L().Info("Worker stopped gracefully")
}
