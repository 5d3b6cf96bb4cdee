package responses

import "time"

type ScheduleAuditLog struct {
	ID         string            `json:"id"`
	ScheduleID string            `json:"scheduleId"`
	DoctorID   string            `json:"doctorId"`
	Action     string            `json:"action"`
	Detail     map[string]string `json:"detail"`
	RequestID  string            `json:"requestId"`
	CreatedAt  time.Time         `json:"createdAt"`
}
