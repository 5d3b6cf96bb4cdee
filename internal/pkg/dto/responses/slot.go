package responses

type TimeSlot struct {
	ID            string  `json:"id"`
	ScheduleID    string  `json:"scheduleId"`
	SlotTime      string  `json:"slotTime"`
	IsAvailable   bool    `json:"isAvailable"`
	AppointmentID *string `json:"appointmentId,omitempty"`
}
