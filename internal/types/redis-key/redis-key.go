package rediskey

var (

	// active commission schedule cache key
	ScheduleActiveKey = "settlement:commission_schedule:active"
)
