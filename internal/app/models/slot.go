package models

import (
	"time"

	"jadwalin-service/internal/pkg/dto/responses"
	"jadwalin-service/internal/pkg/jsontypes"
)

// TimeSlot is one bookable hour inside a DoctorSchedule. IsAvailable and
// AppointmentID always move together: a slot is available exactly when it
// carries no appointment reference.
type TimeSlot struct {
	ID            string              `json:"id"`
	ScheduleID    string              `json:"scheduleId"`
	SlotTime      jsontypes.WallClock `json:"slotTime"`
	IsAvailable   bool                `json:"isAvailable"`
	AppointmentID *string             `json:"appointmentId,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func (s TimeSlot) ConvertIntoResponse() responses.TimeSlot {
	return responses.TimeSlot{
		ID:            s.ID,
		ScheduleID:    s.ScheduleID,
		SlotTime:      s.SlotTime.String(),
		IsAvailable:   s.IsAvailable,
		AppointmentID: s.AppointmentID,
	}
}
