package models

import (
	"time"

	"jadwalin-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleAuditLog is one append-only record of a schedule or slot mutation.
// Writes are best-effort; a failed audit insert never aborts the mutation.
type ScheduleAuditLog struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ScheduleID string             `json:"scheduleId" bson:"scheduleId"`
	DoctorID   string             `json:"doctorId" bson:"doctorId"`
	Action     string             `json:"action" bson:"action"`
	Detail     map[string]string  `json:"detail" bson:"detail"`
	RequestID  string             `json:"requestId" bson:"requestId"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

func (l ScheduleAuditLog) ConvertIntoResponse() responses.ScheduleAuditLog {
	return responses.ScheduleAuditLog{
		ID:         l.ID.Hex(),
		ScheduleID: l.ScheduleID,
		DoctorID:   l.DoctorID,
		Action:     l.Action,
		Detail:     l.Detail,
		RequestID:  l.RequestID,
		CreatedAt:  l.CreatedAt,
	}
}
