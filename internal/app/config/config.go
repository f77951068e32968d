package config

import (
	"mediscan-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			URI:            utils.GetEnvString("MONGODB_URI", ""),
			Host:           utils.GetEnvString("MONGODB_HOST", "localhost"),
			Port:           utils.GetEnvString("MONGODB_PORT", "27017"),
			DbName:         utils.GetEnvString("MONGODB_DB_NAME", "mediscanDB"),
			Username:       utils.GetEnvString("MONGODB_USERNAME", ""),
			Password:       utils.GetEnvString("MONGODB_PASSWORD", ""),
			MaxPoolSize:    uint64(utils.GetEnvInt("MONGODB_MAX_POOL_SIZE", 50)),
			ConnectTimeout: utils.GetEnvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: Redis{
			Host:        utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:        utils.GetEnvString("REDIS_PORT", "6379"),
			Password:    utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:          utils.GetEnvInt("REDIS_DB", 0),
			PoolSize:    utils.GetEnvInt("REDIS_POOL_SIZE", 20),
			DialTimeout: utils.GetEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Host:      utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:      utils.GetEnvInt("RABBITMQ_PORT", 5672),
			Username:  utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password:  utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:     utils.GetEnvString("RABBITMQ_VHOST", "/"),
			Heartbeat: utils.GetEnvDuration("RABBITMQ_HEARTBEAT", 10*time.Second),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":5000"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Dhaka"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			LookupCacheTTLInMinutes:    utils.GetEnvInt("APP_LOOKUP_CACHE_TTL_IN_MINUTES", 60),
		},
		JWT: AppJWT{
			Secret:  utils.GetEnvString("ACCESS_TOKEN_SECRET", "anyjwt"),
			ExpTime: utils.GetEnvDuration("JWT_EXP_TIME", time.Hour),
		},
		Booking: AppBooking{
			CancelRestoresSlot:      utils.GetEnvBool("BOOKING_CANCEL_RESTORES_SLOT", false),
			SagaTimeout:             utils.GetEnvDuration("BOOKING_SAGA_TIMEOUT", 15*time.Second),
			CompensationMaxAttempts: utils.GetEnvInt("BOOKING_COMPENSATION_MAX_ATTEMPTS", 3),
			CompensationBackoff:     utils.GetEnvDuration("BOOKING_COMPENSATION_BACKOFF", 200*time.Millisecond),
			ReserveLimitPerMinute:   utils.GetEnvInt("BOOKING_RESERVE_LIMIT_PER_MINUTE", 10),
		},
		Banner: AppBanner{
			ActivationRequiresAdmin: utils.GetEnvBool("BANNER_ACTIVATION_REQUIRES_ADMIN", true),
			DeactivateMaxAttempts:   utils.GetEnvInt("BANNER_DEACTIVATE_MAX_ATTEMPTS", 3),
			DeactivateBackoff:       utils.GetEnvDuration("BANNER_DEACTIVATE_BACKOFF", 200*time.Millisecond),
		},
		PaymentGateway: AppPaymentGateway{
			ApiKey:            utils.GetEnvString("PAYMENT_GATEWAY_API_KEY", ""),
			BaseUrl:           utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "https://api.stripe.com"),
			RequestTimeout:    utils.GetEnvDuration("PAYMENT_GATEWAY_REQUEST_TIMEOUT", 10*time.Second),
			RequestsPerSecond: utils.GetEnvFloat("PAYMENT_GATEWAY_REQUESTS_PER_SECOND", 20),
			Burst:             utils.GetEnvInt("PAYMENT_GATEWAY_BURST", 5),
			MaxNetworkRetries: int64(utils.GetEnvInt("PAYMENT_GATEWAY_MAX_NETWORK_RETRIES", 2)),
		},
		Worker: AppWorker{
			ReleaseCronSpec:      utils.GetEnvString("WORKER_RELEASE_CRON_SPEC", "@every 30s"),
			ReleaseMaxBatch:      utils.GetEnvInt("WORKER_RELEASE_MAX_BATCH", 50),
			ReleaseMaxRetry:      utils.GetEnvInt("WORKER_RELEASE_MAX_RETRY", 5),
			BannerRepairCronSpec: utils.GetEnvString("WORKER_BANNER_REPAIR_CRON_SPEC", "@every 1m"),
			LeaderLockTTL:        utils.GetEnvDuration("WORKER_LEADER_LOCK_TTL", 2*time.Minute),
		},
		Minio: AppMinio{
			ResultBucketName:        utils.GetEnvString("MINIO_RESULT_BUCKET_NAME", "mediscan-results"),
			ResultMaxUploadSizeInMB: utils.GetEnvInt("MINIO_RESULT_MAX_UPLOAD_SIZE_IN_MB", 10),
			PublicBaseUrl:           utils.GetEnvString("MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
		},
		RabbitMQ: AppRabbitMQ{
			SlotReleaseQueue: utils.GetEnvString("RABBITMQ_SLOT_RELEASE_QUEUE", "mediscan.slot_release"),
		},
	}
}
