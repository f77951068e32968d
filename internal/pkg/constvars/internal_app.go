package constvars

type ContextKey string

const (
	ResourceUsers     = "users"
	ResourceTests     = "tests"
	ResourceBookings  = "bookings"
	ResourceBanners   = "banners"
	ResourcePayments  = "payments"
	ResourceDistricts = "districts"
	ResourceUpazilas  = "upazilas"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_IDENTITY_KEY             ContextKey = "identity"
)

const (
	REQUEST_ID_PREFIX = "MDSCN_SVC_"
)

const (
	UserRoleUser  = "user"
	UserRoleAdmin = "admin"
)

const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

const (
	BookingReportStatusPending = "pending"
	BookingReportStatusDone    = "done"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	JWTClaimEmail = "email"
	JWTClaimExp   = "exp"
	JWTClaimIat   = "iat"
)
