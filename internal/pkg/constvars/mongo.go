package constvars

const (
	MongoCollectionTests     = "tests"
	MongoCollectionBookings  = "bookings"
	MongoCollectionBanners   = "banners"
	MongoCollectionUsers     = "users"
	MongoCollectionCounters  = "counters"
	MongoCollectionDistricts = "district"
	MongoCollectionUpazilas  = "upazilas"
)

const (
	MongoCounterBannerActivation = "banner_activation"
)
