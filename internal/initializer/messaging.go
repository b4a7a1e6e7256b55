package initializer

import (
	"drawguess-service/config"
	"drawguess-service/infra/kafka"

	"go.uber.org/zap"
)

// InitMessaging returns nil when publishing is disabled.
func InitMessaging(appConfig config.Config) *kafka.Producer {
	if !appConfig.Kafka.Enabled || len(appConfig.Kafka.Brokers) == 0 {
		zap.L().Info("Kafka publishing disabled")
		return nil
	}

	return kafka.NewProducer(kafka.Config{
		Brokers: appConfig.Kafka.Brokers,
		Topic:   appConfig.Kafka.Topic,
	})
}
