package requests

type BookSlot struct {
	AppointmentID string `json:"appointmentId" validate:"required,uuid"`
}
