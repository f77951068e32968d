package constvars

const (
	// Auth messages
	IssueTokenSuccessMessage = "token issued successfully"

	// User-related messages
	CreateUserSuccessMessage = "user created successfully"
	UpdateUserSuccessMessage = "user updated successfully"
	DeleteUserSuccessMessage = "user deleted successfully"
	GetUsersSuccessMessage   = "get users successfully"
	CheckAdminSuccessMessage = "check admin successfully"

	// Test-related messages
	CreateTestSuccessMessage = "test created successfully"
	UpdateTestSuccessMessage = "test updated successfully"
	DeleteTestSuccessMessage = "test deleted successfully"
	GetTestsSuccessMessage   = "get tests successfully"
	GetTestSuccessMessage    = "get test successfully"

	// Booking-related messages
	ReserveTestSuccessMessage   = "test reserved successfully"
	GetBookingsSuccessMessage   = "get bookings successfully"
	GetBookingSuccessMessage    = "get booking successfully"
	CancelBookingSuccessMessage = "booking cancelled successfully"
	RecordResultSuccessMessage  = "test result recorded successfully"

	// Banner-related messages
	CreateBannerSuccessMessage    = "banner created successfully"
	DeleteBannerSuccessMessage    = "banner deleted successfully"
	GetBannersSuccessMessage      = "get banners successfully"
	GetActiveBannerSuccessMessage = "get active banner successfully"
	ActivateBannerSuccessMessage  = "banner activated successfully"
	RepairBannersSuccessMessage   = "banners repaired successfully"

	// Payment-related messages
	CreateChargeIntentSuccessMessage = "charge intent created successfully"

	// Lookup messages
	GetDistrictsSuccessMessage = "get districts successfully"
	GetUpazilasSuccessMessage  = "get upazilas successfully"
)
