package infra

import (
	"github.com/uploadhub/uploadhub/config"
	"github.com/uploadhub/uploadhub/infra/produce"
)

type Infra struct {
	Postgres    *PostgresClient
	Redis       *RedisClient
	RabbitMQ    *RabbitMQClient
	Minio       *MinioClient
	Logger      *LoggerClient
	UploadStore *LocalUploadStore
	Produce     *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}

	uploadStore := InitLocalUploadStore(cfg.EnvConfig)
	if uploadStore == nil {
		panic("Failed to initialize upload store")
	}

	producers := produce.InitProduce(rabbitMQ.Channel)
	if producers == nil {
		panic("Failed to initialize producers")
	}

	infraInstance = &Infra{
		Postgres:    postgres,
		Redis:       redis,
		RabbitMQ:    rabbitMQ,
		Minio:       minio,
		Logger:      logger,
		UploadStore: uploadStore,
		Produce:     producers,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
