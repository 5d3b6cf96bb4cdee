package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "JDWL_SVC_"
)

const (
	ResourceSchedules = "schedules"
	ResourceSlots     = "slots"
	ResourceDoctors   = "doctors"
)

const (
	MongoCollectionScheduleAuditLogs = "schedule_audit_logs"
)

const (
	AuditActionScheduleCreated      = "schedule.created"
	AuditActionScheduleUpdated      = "schedule.updated"
	AuditActionScheduleDeleted      = "schedule.deleted"
	AuditActionScheduleBatchCreated = "schedule.batch_created"
	AuditActionSlotBooked           = "slot.booked"
	AuditActionSlotFreed            = "slot.freed"
)
