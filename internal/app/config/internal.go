package config

import "time"

type InternalConfig struct {
	App            App               `mapstructure:"app"`
	JWT            AppJWT            `mapstructure:"jwt"`
	Booking        AppBooking        `mapstructure:"booking"`
	Banner         AppBanner         `mapstructure:"banner"`
	PaymentGateway AppPaymentGateway `mapstructure:"payment_gateway"`
	Worker         AppWorker         `mapstructure:"worker"`
	Minio          AppMinio          `mapstructure:"minio"`
	RabbitMQ       AppRabbitMQ       `mapstructure:"rabbitmq"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	LookupCacheTTLInMinutes    int    `mapstructure:"lookup_cache_ttl_in_minutes"`
}

type AppJWT struct {
	Secret  string        `mapstructure:"secret"`
	ExpTime time.Duration `mapstructure:"exp_time"`
}

// AppBooking tunes the reservation saga.
type AppBooking struct {
	// CancelRestoresSlot gives the slot of a pending booking back on cancellation
	CancelRestoresSlot bool `mapstructure:"cancel_restores_slot"`
	// SagaTimeout bounds claim, insert and compensation independently of the client connection
	SagaTimeout time.Duration `mapstructure:"saga_timeout"`
	// CompensationMaxAttempts is how many times the slot release is tried in line before queueing it
	CompensationMaxAttempts int           `mapstructure:"compensation_max_attempts"`
	CompensationBackoff     time.Duration `mapstructure:"compensation_backoff"`
	// ReserveLimitPerMinute caps reservations per identity, zero disables it
	ReserveLimitPerMinute int `mapstructure:"reserve_limit_per_minute"`
}

type AppBanner struct {
	ActivationRequiresAdmin bool          `mapstructure:"activation_requires_admin"`
	DeactivateMaxAttempts   int           `mapstructure:"deactivate_max_attempts"`
	DeactivateBackoff       time.Duration `mapstructure:"deactivate_backoff"`
}

type AppPaymentGateway struct {
	ApiKey            string        `mapstructure:"api_key"`
	BaseUrl           string        `mapstructure:"base_url"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxNetworkRetries int64         `mapstructure:"max_network_retries"`
}

type AppWorker struct {
	ReleaseCronSpec      string        `mapstructure:"release_cron_spec"`
	ReleaseMaxBatch      int           `mapstructure:"release_max_batch"`
	ReleaseMaxRetry      int           `mapstructure:"release_max_retry"`
	BannerRepairCronSpec string        `mapstructure:"banner_repair_cron_spec"`
	LeaderLockTTL        time.Duration `mapstructure:"leader_lock_ttl"`
}

type AppMinio struct {
	ResultBucketName        string `mapstructure:"result_bucket_name"`
	ResultMaxUploadSizeInMB int    `mapstructure:"result_max_upload_size_in_mb"`
	PublicBaseUrl           string `mapstructure:"public_base_url"`
}

type AppRabbitMQ struct {
	SlotReleaseQueue string `mapstructure:"slot_release_queue"`
}
