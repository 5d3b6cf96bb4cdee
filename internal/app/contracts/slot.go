package contracts

import (
	"context"

	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/dto/responses"
)

// SlotUsecase is the narrow surface granted to the booking collaborator. It
// may flip exactly one pair of fields per slot (appointment reference and
// availability); it must never create, delete or move slots.
type SlotUsecase interface {
	MarkSlotBooked(ctx context.Context, slotID, appointmentID string) (*responses.TimeSlot, error)
	MarkSlotFree(ctx context.Context, slotID string) (*responses.TimeSlot, error)
}

type SlotRepository interface {
	FindByID(ctx context.Context, slotID string) (*models.TimeSlot, string, error)
	Book(ctx context.Context, slotID, appointmentID string) (*models.TimeSlot, string, error)
	Free(ctx context.Context, slotID string) (*models.TimeSlot, string, error)
}
