package contracts

import (
	"context"

	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/dto/requests"
	"jadwalin-service/internal/pkg/dto/responses"
	"jadwalin-service/internal/pkg/jsontypes"
)

type ScheduleUsecase interface {
	CreateSchedule(ctx context.Context, request *requests.CreateSchedule) (*responses.Schedule, error)
	UpdateSchedule(ctx context.Context, scheduleID string, request *requests.UpdateSchedule) (*responses.Schedule, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error
	CreateScheduleBatch(ctx context.Context, request *requests.CreateScheduleBatch) ([]responses.Schedule, error)
	FindByID(ctx context.Context, scheduleID string) (*responses.Schedule, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]responses.Schedule, error)
	FindAuditTrail(ctx context.Context, scheduleID string) ([]responses.ScheduleAuditLog, error)
}

// ScheduleRepository is the persistence contract for schedules and their
// slots. Every *WithSlots mutation runs inside a single database transaction;
// the repository re-checks the booked-slot lock and the unique shift tuple
// inside that transaction and returns the matching domain CustomError when
// either invariant fires.
type ScheduleRepository interface {
	FindConflicts(ctx context.Context, doctorID string, dates []jsontypes.CalendarDate, startTime jsontypes.WallClock) ([]models.DoctorSchedule, error)
	FindByIDWithSlots(ctx context.Context, scheduleID string) (*models.DoctorSchedule, error)
	FindByDoctorIDWithSlots(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)
	CreateWithSlots(ctx context.Context, schedule *models.DoctorSchedule, slotTimes []jsontypes.WallClock) (*models.DoctorSchedule, error)
	ReplaceWithSlots(ctx context.Context, schedule *models.DoctorSchedule, slotTimes []jsontypes.WallClock) (*models.DoctorSchedule, error)
	DeleteWithSlots(ctx context.Context, scheduleID string) error
	CreateBatchWithSlots(ctx context.Context, schedules []models.DoctorSchedule, slotTimes []jsontypes.WallClock) ([]models.DoctorSchedule, error)
}
