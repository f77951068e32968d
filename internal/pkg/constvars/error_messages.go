package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"email":         "must be a valid email",
	"alphanum":      "must contain only alphanumeric characters",
	"min":           "must be at least %s",
	"max":           "maximum at %s",
	"numeric":       "must be a number",
	"len":           "must be %s characters long",
	"oneof":         "must be one of [%s]",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"url":           "must be a valid URL",
	"iso4217":       "must be a valid ISO 4217 currency code",
	"user_role":     "must be either 'user' or 'admin'",
	"user_status":   "must be either 'active' or 'blocked'",
	"mongo_id":      "must be a valid identifier",
	"required_with": "is required when %s is present",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":           true,
	"max":           true,
	"len":           true,
	"gt":            true,
	"gte":           true,
	"lt":            true,
	"lte":           true,
	"oneof":         true,
	"required_with": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "unauthorized access"
	ErrClientForbidden                     = "forbidden access"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientUserNotFound                  = "user not found"
	ErrClientTestNotFound                  = "test not found"
	ErrClientTestSoldOut                   = "no slot left for this test"
	ErrClientBookingNotFound               = "booking not found"
	ErrClientBannerNotFound                = "banner not found"
	ErrClientResourceNotFound              = "resource not found"
	ErrClientNoActiveBanner                = "there is no active banner"
	ErrClientBannerActivationIncomplete    = "banner activation could not be completed, please retry"
	ErrClientPaymentGatewayFailed          = "payment provider failed to process the charge"
	ErrClientInvalidChargeAmount           = "amount must be greater than zero"
	ErrClientInvalidResultFile             = "result file must be a PDF document"
	ErrClientTooManyRequests               = "too many requests, please retry later"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevServerProcess            = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded   = "deadline exceeded"
	ErrDevMissingIdentity          = "identity missing from context"

	// Validation messages
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"
	ErrDevResultFileValidationFailed = "result file validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenMissingClaim     = "token does not carry the %s claim"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthRoleNotAdmin          = "caller %s does not hold the admin role"
	ErrDevAuthNotOwner              = "caller is neither the owner of the resource nor an admin"

	// Domain messages
	ErrDevUserNotExists            = "user not exists in our system"
	ErrDevEmailAlreadyExists       = "email already exists"
	ErrDevTestNotExists            = "test %s not exists in our system"
	ErrDevTestSoldOut              = "test %s has no slot left to claim"
	ErrDevBookingNotExists         = "booking %s not exists in our system"
	ErrDevBannerNotExists          = "banner %s not exists in our system"
	ErrDevNoActiveBanner           = "no banner is flagged as active"
	ErrDevBannerPartialActivation  = "banner %s activated but the other banners could not be deactivated"
	ErrDevPaymentGatewayRequest    = "payment gateway request failed"
	ErrDevPaymentInvalidAmount     = "charge amount %d is not positive"
	ErrDevPaymentGatewayStatusCode = "payment gateway responded with status code %d"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetNoData  = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisExpire     = "failed to EXPIRE data in redis"
	ErrDevRedisIncrement  = "failed to INCR data in redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into rabbitMQ queue %s"

	// Rate limit messages
	ErrDevRateLimitExceeded = "quota for %s exceeded, retry after %d seconds"
)

// Error codes exposed to clients, one per failure category
const (
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeSoldOut           = "SOLD_OUT"
	ErrCodePartialActivation = "PARTIAL_ACTIVATION"
	ErrCodeGatewayError      = "GATEWAY_ERROR"
	ErrCodeStoreError        = "STORE_ERROR"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeTimeout           = "TIMEOUT"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

const (
	ErrFileLocationUnknown = "file location unknown"
	ErrFunctionNameUnknown = "function name unknown"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
