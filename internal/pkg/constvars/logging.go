package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingDoctorIDKey      = "doctor_id"
	LoggingScheduleIDKey    = "schedule_id"
	LoggingSlotIDKey        = "slot_id"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingWorkDateKey      = "work_date"
	LoggingStartTimeKey     = "start_time"
	LoggingEndTimeKey       = "end_time"
	LoggingAnchorDateKey    = "anchor_date"
	LoggingScheduleCountKey = "schedule_count"
	LoggingSlotCountKey     = "slot_count"
	LoggingConflictDatesKey = "conflict_dates"
	LoggingEventTypeKey     = "event_type"
)
