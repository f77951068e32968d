package constvars

const (
	URLParamID = "id"
)

const (
	URLQueryParamUpcoming   = "upcoming"
	URLQueryParamEmail      = "email"
	URLQueryParamDistrictID = "district_id"
)

const (
	MultipartFormFieldResult = "result"
)
