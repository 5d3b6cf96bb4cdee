package contracts

import (
	"context"

	"jadwalin-service/internal/app/models"
)

type AuditRepository interface {
	Insert(ctx context.Context, log *models.ScheduleAuditLog) error
	FindByScheduleID(ctx context.Context, scheduleID string) ([]models.ScheduleAuditLog, error)
}
