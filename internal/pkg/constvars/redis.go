package constvars

const (
	RedisKeyDistrictList = "lookup:districts"
	RedisKeyUpazilaList  = "lookup:upazilas"
)

const (
	RedisLockSlotReleaseWorker  = "worker:slot-release:leader"
	RedisLockBannerRepairWorker = "worker:banner-repair:leader"
)
