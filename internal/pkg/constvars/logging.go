package constvars

const (
	LoggingRequestIDKey         = "request_id"
	LoggingIsClientRequestIDKey = "is_client_request_id"
	LoggingErrorCodeKey         = "error_code"
	LoggingErrorMessageKey      = "error_message"
	LoggingOperationKey         = "operation"
	LoggingDurationKey          = "duration"
	LoggingSuccessKey           = "success"
	LoggingStatusCodeKey        = "status_code"
	LoggingMethodKey            = "method"
	LoggingEndpointKey          = "endpoint"
	LoggingRemoteAddrKey        = "remote_addr"
	LoggingUserAgentKey         = "user_agent"
	LoggingQueryKey             = "query"
	LoggingAttemptKey           = "attempt"
	LoggingCountKey             = "count"

	LoggingEmailKey         = "email"
	LoggingUserIDKey        = "user_id"
	LoggingTestIDKey        = "test_id"
	LoggingBookingIDKey     = "booking_id"
	LoggingBannerIDKey      = "banner_id"
	LoggingActivationSeqKey = "activation_seq"
	LoggingSlotsKey         = "slots"
	LoggingAmountKey        = "amount"
	LoggingCurrencyKey      = "currency"
	LoggingBucketNameKey    = "bucket_name"
	LoggingObjectNameKey    = "object_name"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingQueueNameKey          = "queue_name"
	LoggingMessageIDKey          = "message_id"
	LoggingFailedCountKey        = "failed_count"
)
