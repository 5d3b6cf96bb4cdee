package models

import (
	"jadwalin-service/internal/pkg/dto/responses"
	"jadwalin-service/internal/pkg/jsontypes"
)

// DoctorSchedule is one doctor's working block on one calendar date. Its slot
// set is always exactly the hourly sequence generated from StartTime/EndTime;
// edits never patch slots in place, they regenerate the whole set.
type DoctorSchedule struct {
	ID        string                 `json:"id"`
	DoctorID  string                 `json:"doctorId"`
	WorkDate  jsontypes.CalendarDate `json:"workDate"`
	StartTime jsontypes.WallClock    `json:"startTime"`
	EndTime   jsontypes.WallClock    `json:"endTime"`
	Slots     []TimeSlot             `json:"slots"`
	TimeModel `bson:",inline"`
}

// HasBookedSlot reports whether any owned slot carries an appointment
// reference. A true result locks the schedule against update and delete.
func (s *DoctorSchedule) HasBookedSlot() bool {
	for _, slot := range s.Slots {
		if slot.AppointmentID != nil {
			return true
		}
	}
	return false
}

func (s *DoctorSchedule) ConvertIntoResponse() responses.Schedule {
	slots := make([]responses.TimeSlot, len(s.Slots))
	for i, slot := range s.Slots {
		slots[i] = slot.ConvertIntoResponse()
	}
	return responses.Schedule{
		ID:        s.ID,
		DoctorID:  s.DoctorID,
		WorkDate:  s.WorkDate.String(),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Slots:     slots,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
