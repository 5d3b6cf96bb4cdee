package responses

import "time"

type Schedule struct {
	ID        string     `json:"id"`
	DoctorID  string     `json:"doctorId"`
	WorkDate  string     `json:"workDate"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Slots     []TimeSlot `json:"slots"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
