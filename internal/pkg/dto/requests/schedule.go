package requests

type CreateSchedule struct {
	DoctorID  string `json:"doctorId" validate:"required,uuid"`
	WorkDate  string `json:"workDate" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04:05"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04:05"`
}

// UpdateSchedule carries a partial edit; omitted fields keep their current
// values on the stored schedule.
type UpdateSchedule struct {
	WorkDate  *string `json:"workDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime,omitempty" validate:"omitempty,datetime=15:04:05"`
	EndTime   *string `json:"endTime,omitempty" validate:"omitempty,datetime=15:04:05"`
}

type CreateScheduleBatch struct {
	DoctorID   string   `json:"doctorId" validate:"required,uuid"`
	StartTime  string   `json:"startTime" validate:"required,datetime=15:04:05"`
	EndTime    string   `json:"endTime" validate:"required,datetime=15:04:05"`
	AnchorDate string   `json:"anchorDate" validate:"required,datetime=2006-01-02"`
	Weekdays   []string `json:"weekdays" validate:"required,min=1,dive,weekday"`
}
