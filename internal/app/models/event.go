package models

import "time"

// ScheduleEvent is the payload published to the schedule events queue after a
// mutation commits. Consumers (booking, notifications) treat it as advisory;
// the postgres store stays the source of truth.
type ScheduleEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	DoctorID    string    `json:"doctorId"`
	ScheduleIDs []string  `json:"scheduleIds"`
	SlotID      string    `json:"slotId,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}
