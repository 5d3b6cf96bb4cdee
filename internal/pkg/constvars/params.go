package constvars

const (
	URLParamScheduleID = "scheduleID"
	URLParamSlotID     = "slotID"
	URLParamDoctorID   = "doctorID"
)
