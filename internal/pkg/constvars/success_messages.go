package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"

	// Schedule messages
	CreateScheduleSuccessMessage      = "schedule created successfully"
	CreateScheduleBatchSuccessMessage = "schedule batch created successfully"
	UpdateScheduleSuccessMessage      = "schedule updated successfully"
	DeleteScheduleSuccessMessage      = "schedule deleted successfully"
	GetScheduleSuccessMessage         = "get schedule successfully"
	GetDoctorSchedulesSuccessMessage  = "get doctor schedules successfully"
	GetScheduleAuditSuccessMessage    = "get schedule audit trail successfully"

	// Slot messages
	BookSlotSuccessMessage = "slot booked successfully"
	FreeSlotSuccessMessage = "slot freed successfully"
)
