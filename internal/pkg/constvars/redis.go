package constvars

const (
	RedisKeyDoctorSchedulesFormat = "jadwalin:schedules:doctor:%s"
)

const (
	RedisDoctorSchedulesExpInMinute = 15
)
