package slots

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/dto/responses"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type slotUsecase struct {
	SlotRepository  contracts.SlotRepository
	RedisRepository contracts.RedisRepository
	AuditRepository contracts.AuditRepository
	EventPublisher  contracts.EventPublisher
	Log             *zap.Logger
}

var (
	slotUsecaseInstance contracts.SlotUsecase
	onceSlotUsecase     sync.Once
)

func NewSlotUsecase(
	slotRepository contracts.SlotRepository,
	redisRepository contracts.RedisRepository,
	auditRepository contracts.AuditRepository,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.SlotUsecase {
	onceSlotUsecase.Do(func() {
		slotUsecaseInstance = &slotUsecase{
			SlotRepository:  slotRepository,
			RedisRepository: redisRepository,
			AuditRepository: auditRepository,
			EventPublisher:  eventPublisher,
			Log:             logger,
		}
	})
	return slotUsecaseInstance
}

func (uc *slotUsecase) MarkSlotBooked(ctx context.Context, slotID, appointmentID string) (*responses.TimeSlot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.MarkSlotBooked called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	slot, doctorID, err := uc.SlotRepository.Book(ctx, slotID, appointmentID)
	if err != nil {
		uc.Log.Error("slotUsecase.MarkSlotBooked error booking slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, slotID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterSlotMutation(ctx, slot, doctorID, constvars.AuditActionSlotBooked, map[string]string{
		"appointmentId": appointmentID,
		"slotTime":      slot.SlotTime.String(),
	})

	uc.Log.Info("slotUsecase.MarkSlotBooked succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)
	response := slot.ConvertIntoResponse()
	return &response, nil
}

func (uc *slotUsecase) MarkSlotFree(ctx context.Context, slotID string) (*responses.TimeSlot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.MarkSlotFree called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)

	slot, doctorID, err := uc.SlotRepository.Free(ctx, slotID)
	if err != nil {
		uc.Log.Error("slotUsecase.MarkSlotFree error freeing slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, slotID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterSlotMutation(ctx, slot, doctorID, constvars.AuditActionSlotFreed, map[string]string{
		"slotTime": slot.SlotTime.String(),
	})

	uc.Log.Info("slotUsecase.MarkSlotFree succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)
	response := slot.ConvertIntoResponse()
	return &response, nil
}

// afterSlotMutation handles the non-transactional tail of a slot flip: cache
// invalidation, event publication and the audit record. Failures here are
// logged and swallowed, the postgres write already committed.
func (uc *slotUsecase) afterSlotMutation(ctx context.Context, slot *models.TimeSlot, doctorID, action string, detail map[string]string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	cacheKey := fmt.Sprintf(constvars.RedisKeyDoctorSchedulesFormat, doctorID)
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("slotUsecase.afterSlotMutation error deleting cache key",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
	}

	event := models.ScheduleEvent{
		ID:          uuid.NewString(),
		Type:        action,
		DoctorID:    doctorID,
		ScheduleIDs: []string{slot.ScheduleID},
		SlotID:      slot.ID,
		OccurredAt:  time.Now().UTC(),
	}
	if err := uc.EventPublisher.PublishScheduleEvent(ctx, event); err != nil {
		uc.Log.Error("slotUsecase.afterSlotMutation error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, action),
			zap.Error(err),
		)
	}

	auditLog := &models.ScheduleAuditLog{
		ScheduleID: slot.ScheduleID,
		DoctorID:   doctorID,
		Action:     action,
		Detail:     detail,
		RequestID:  requestID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.AuditRepository.Insert(ctx, auditLog); err != nil {
		uc.Log.Warn("slotUsecase.afterSlotMutation error inserting audit log",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, slot.ID),
			zap.Error(err),
		)
	}
}
