package schedules

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/dto/requests"
	"jadwalin-service/internal/pkg/dto/responses"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/jsontypes"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type scheduleUsecase struct {
	ScheduleRepository contracts.ScheduleRepository
	DoctorRepository   contracts.DoctorRepository
	RedisRepository    contracts.RedisRepository
	AuditRepository    contracts.AuditRepository
	EventPublisher     contracts.EventPublisher
	Log                *zap.Logger
}

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

func NewScheduleUsecase(
	scheduleRepository contracts.ScheduleRepository,
	doctorRepository contracts.DoctorRepository,
	redisRepository contracts.RedisRepository,
	auditRepository contracts.AuditRepository,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		scheduleUsecaseInstance = &scheduleUsecase{
			ScheduleRepository: scheduleRepository,
			DoctorRepository:   doctorRepository,
			RedisRepository:    redisRepository,
			AuditRepository:    auditRepository,
			EventPublisher:     eventPublisher,
			Log:                logger,
		}
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) CreateSchedule(ctx context.Context, request *requests.CreateSchedule) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.CreateSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingWorkDateKey, request.WorkDate),
	)

	workDate, startTime, endTime, err := parseShiftFields(request.WorkDate, request.StartTime, request.EndTime)
	if err != nil {
		return nil, err
	}

	if err := uc.ensureDoctorExists(ctx, request.DoctorID); err != nil {
		return nil, err
	}

	slotTimes := GenerateSlotTimes(startTime, endTime)
	if len(slotTimes) == 0 {
		return nil, exceptions.ErrScheduleInvalidRange(
			fmt.Errorf("start time %s is not before end time %s", request.StartTime, request.EndTime),
		)
	}

	conflicts, err := uc.ScheduleRepository.FindConflicts(ctx, request.DoctorID, []jsontypes.CalendarDate{workDate}, startTime)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, exceptions.ErrScheduleConflict(
			fmt.Errorf("schedule %s already occupies this shift", conflicts[0].ID),
		)
	}

	schedule := &models.DoctorSchedule{
		ID:        uuid.NewString(),
		DoctorID:  request.DoctorID,
		WorkDate:  workDate,
		StartTime: startTime,
		EndTime:   endTime,
	}
	schedule.SetCreatedAtUpdatedAt()

	schedule, err = uc.ScheduleRepository.CreateWithSlots(ctx, schedule, slotTimes)
	if err != nil {
		uc.Log.Error("scheduleUsecase.CreateSchedule error persisting schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.invalidateDoctorCache(ctx, schedule.DoctorID)
	uc.publishScheduleEvent(ctx, constvars.AuditActionScheduleCreated, schedule.DoctorID, []string{schedule.ID}, "")
	uc.writeAudit(ctx, schedule.ID, schedule.DoctorID, constvars.AuditActionScheduleCreated, map[string]string{
		"workDate":  schedule.WorkDate.String(),
		"startTime": schedule.StartTime.String(),
		"endTime":   schedule.EndTime.String(),
	})

	uc.Log.Info("scheduleUsecase.CreateSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, schedule.ID),
		zap.Int(constvars.LoggingSlotCountKey, len(schedule.Slots)),
	)
	response := schedule.ConvertIntoResponse()
	return &response, nil
}

func (uc *scheduleUsecase) UpdateSchedule(ctx context.Context, scheduleID string, request *requests.UpdateSchedule) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.UpdateSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	current, err := uc.ScheduleRepository.FindByIDWithSlots(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrScheduleNotFound(fmt.Errorf("schedule %s does not exist", scheduleID))
	}
	if current.HasBookedSlot() {
		return nil, exceptions.ErrScheduleLocked(fmt.Errorf("schedule %s has booked slots", scheduleID))
	}

	workDateValue := current.WorkDate.String()
	startTimeValue := current.StartTime.String()
	endTimeValue := current.EndTime.String()
	if request.WorkDate != nil {
		workDateValue = *request.WorkDate
	}
	if request.StartTime != nil {
		startTimeValue = *request.StartTime
	}
	if request.EndTime != nil {
		endTimeValue = *request.EndTime
	}

	workDate, startTime, endTime, err := parseShiftFields(workDateValue, startTimeValue, endTimeValue)
	if err != nil {
		return nil, err
	}

	slotTimes := GenerateSlotTimes(startTime, endTime)
	if len(slotTimes) == 0 {
		return nil, exceptions.ErrScheduleInvalidRange(
			fmt.Errorf("start time %s is not before end time %s", startTimeValue, endTimeValue),
		)
	}

	if !workDate.Equal(current.WorkDate) || !startTime.Equal(current.StartTime) {
		conflicts, err := uc.ScheduleRepository.FindConflicts(ctx, current.DoctorID, []jsontypes.CalendarDate{workDate}, startTime)
		if err != nil {
			return nil, err
		}
		for _, conflict := range conflicts {
			if conflict.ID != scheduleID {
				return nil, exceptions.ErrScheduleConflict(
					fmt.Errorf("schedule %s already occupies this shift", conflict.ID),
				)
			}
		}
	}

	schedule := &models.DoctorSchedule{
		ID:        scheduleID,
		DoctorID:  current.DoctorID,
		WorkDate:  workDate,
		StartTime: startTime,
		EndTime:   endTime,
	}
	schedule.CreatedAt = current.CreatedAt

	schedule, err = uc.ScheduleRepository.ReplaceWithSlots(ctx, schedule, slotTimes)
	if err != nil {
		uc.Log.Error("scheduleUsecase.UpdateSchedule error persisting schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScheduleIDKey, scheduleID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.invalidateDoctorCache(ctx, schedule.DoctorID)
	uc.publishScheduleEvent(ctx, constvars.AuditActionScheduleUpdated, schedule.DoctorID, []string{schedule.ID}, "")
	uc.writeAudit(ctx, schedule.ID, schedule.DoctorID, constvars.AuditActionScheduleUpdated, map[string]string{
		"workDate":  schedule.WorkDate.String(),
		"startTime": schedule.StartTime.String(),
		"endTime":   schedule.EndTime.String(),
	})

	uc.Log.Info("scheduleUsecase.UpdateSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, schedule.ID),
		zap.Int(constvars.LoggingSlotCountKey, len(schedule.Slots)),
	)
	response := schedule.ConvertIntoResponse()
	return &response, nil
}

func (uc *scheduleUsecase) DeleteSchedule(ctx context.Context, scheduleID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.DeleteSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	current, err := uc.ScheduleRepository.FindByIDWithSlots(ctx, scheduleID)
	if err != nil {
		return err
	}
	if current == nil {
		return exceptions.ErrScheduleNotFound(fmt.Errorf("schedule %s does not exist", scheduleID))
	}
	if current.HasBookedSlot() {
		return exceptions.ErrScheduleLocked(fmt.Errorf("schedule %s has booked slots", scheduleID))
	}

	if err := uc.ScheduleRepository.DeleteWithSlots(ctx, scheduleID); err != nil {
		uc.Log.Error("scheduleUsecase.DeleteSchedule error deleting schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScheduleIDKey, scheduleID),
			zap.Error(err),
		)
		return err
	}

	uc.invalidateDoctorCache(ctx, current.DoctorID)
	uc.publishScheduleEvent(ctx, constvars.AuditActionScheduleDeleted, current.DoctorID, []string{scheduleID}, "")
	uc.writeAudit(ctx, scheduleID, current.DoctorID, constvars.AuditActionScheduleDeleted, map[string]string{
		"workDate": current.WorkDate.String(),
	})

	uc.Log.Info("scheduleUsecase.DeleteSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)
	return nil
}

func (uc *scheduleUsecase) CreateScheduleBatch(ctx context.Context, request *requests.CreateScheduleBatch) ([]responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.CreateScheduleBatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingAnchorDateKey, request.AnchorDate),
		zap.Strings("weekdays", request.Weekdays),
	)

	anchorDate, startTime, endTime, err := parseShiftFields(request.AnchorDate, request.StartTime, request.EndTime)
	if err != nil {
		return nil, err
	}

	if err := uc.ensureDoctorExists(ctx, request.DoctorID); err != nil {
		return nil, err
	}

	slotTimes := GenerateSlotTimes(startTime, endTime)
	if len(slotTimes) == 0 {
		return nil, exceptions.ErrScheduleInvalidRange(
			fmt.Errorf("start time %s is not before end time %s", request.StartTime, request.EndTime),
		)
	}

	weekdays, err := ParseWeekdays(request.Weekdays)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	workDates := ProjectWeek(anchorDate, weekdays)
	if len(workDates) == 0 {
		return nil, exceptions.ErrScheduleEmptyWeekdays(fmt.Errorf("no weekdays selected"))
	}

	conflicts, err := uc.ScheduleRepository.FindConflicts(ctx, request.DoctorID, workDates, startTime)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		conflictDates := make([]string, len(conflicts))
		for i, conflict := range conflicts {
			conflictDates[i] = conflict.WorkDate.String()
		}
		return nil, exceptions.ErrScheduleBatchConflict(
			fmt.Errorf("found %d conflicting schedules", len(conflicts)), conflictDates,
		)
	}

	schedules := make([]models.DoctorSchedule, len(workDates))
	for i, workDate := range workDates {
		schedule := models.DoctorSchedule{
			ID:        uuid.NewString(),
			DoctorID:  request.DoctorID,
			WorkDate:  workDate,
			StartTime: startTime,
			EndTime:   endTime,
		}
		schedule.SetCreatedAtUpdatedAt()
		schedules[i] = schedule
	}

	schedules, err = uc.ScheduleRepository.CreateBatchWithSlots(ctx, schedules, slotTimes)
	if err != nil {
		uc.Log.Error("scheduleUsecase.CreateScheduleBatch error persisting schedules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
			zap.Error(err),
		)
		return nil, err
	}

	scheduleIDs := make([]string, len(schedules))
	for i, schedule := range schedules {
		scheduleIDs[i] = schedule.ID
	}
	uc.invalidateDoctorCache(ctx, request.DoctorID)
	uc.publishScheduleEvent(ctx, constvars.AuditActionScheduleBatchCreated, request.DoctorID, scheduleIDs, "")
	for _, schedule := range schedules {
		uc.writeAudit(ctx, schedule.ID, schedule.DoctorID, constvars.AuditActionScheduleBatchCreated, map[string]string{
			"workDate":  schedule.WorkDate.String(),
			"startTime": schedule.StartTime.String(),
			"endTime":   schedule.EndTime.String(),
		})
	}

	uc.Log.Info("scheduleUsecase.CreateScheduleBatch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.Int(constvars.LoggingScheduleCountKey, len(schedules)),
	)
	response := make([]responses.Schedule, len(schedules))
	for i, schedule := range schedules {
		response[i] = schedule.ConvertIntoResponse()
	}
	return response, nil
}

func (uc *scheduleUsecase) FindByID(ctx context.Context, scheduleID string) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	schedule, err := uc.ScheduleRepository.FindByIDWithSlots(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, exceptions.ErrScheduleNotFound(fmt.Errorf("schedule %s does not exist", scheduleID))
	}

	response := schedule.ConvertIntoResponse()
	return &response, nil
}

func (uc *scheduleUsecase) FindByDoctorID(ctx context.Context, doctorID string) ([]responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.FindByDoctorID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var schedules []models.DoctorSchedule
	cacheKey := fmt.Sprintf(constvars.RedisKeyDoctorSchedulesFormat, doctorID)

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("scheduleUsecase.FindByDoctorID error retrieving data from Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		cached = ""
	}

	if cached != "" {
		uc.Log.Info("scheduleUsecase.FindByDoctorID data found in Redis, parsing JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		if err := json.Unmarshal([]byte(cached), &schedules); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
	} else {
		if err := uc.ensureDoctorExists(ctx, doctorID); err != nil {
			return nil, err
		}
		schedules, err = uc.ScheduleRepository.FindByDoctorIDWithSlots(ctx, doctorID)
		if err != nil {
			return nil, err
		}
		err = uc.RedisRepository.Set(ctx, cacheKey, schedules, time.Duration(constvars.RedisDoctorSchedulesExpInMinute)*time.Minute)
		if err != nil {
			uc.Log.Warn("scheduleUsecase.FindByDoctorID error caching data in Redis",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("scheduleUsecase.FindByDoctorID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingScheduleCountKey, len(schedules)),
	)
	response := make([]responses.Schedule, len(schedules))
	for i, schedule := range schedules {
		response[i] = schedule.ConvertIntoResponse()
	}
	return response, nil
}

func (uc *scheduleUsecase) FindAuditTrail(ctx context.Context, scheduleID string) ([]responses.ScheduleAuditLog, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.FindAuditTrail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	// No existence check: the audit trail outlives schedule deletion.
	logs, err := uc.AuditRepository.FindByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	response := make([]responses.ScheduleAuditLog, len(logs))
	for i, log := range logs {
		response[i] = log.ConvertIntoResponse()
	}
	return response, nil
}

func (uc *scheduleUsecase) ensureDoctorExists(ctx context.Context, doctorID string) error {
	exists, err := uc.DoctorRepository.ExistsByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if !exists {
		return exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s is not registered", doctorID))
	}
	return nil
}

func (uc *scheduleUsecase) invalidateDoctorCache(ctx context.Context, doctorID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	cacheKey := fmt.Sprintf(constvars.RedisKeyDoctorSchedulesFormat, doctorID)
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("scheduleUsecase.invalidateDoctorCache error deleting cache key",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
	}
}

func (uc *scheduleUsecase) publishScheduleEvent(ctx context.Context, eventType, doctorID string, scheduleIDs []string, slotID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	event := models.ScheduleEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		DoctorID:    doctorID,
		ScheduleIDs: scheduleIDs,
		SlotID:      slotID,
		OccurredAt:  time.Now().UTC(),
	}
	if err := uc.EventPublisher.PublishScheduleEvent(ctx, event); err != nil {
		uc.Log.Error("scheduleUsecase.publishScheduleEvent error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.Error(err),
		)
	}
}

func (uc *scheduleUsecase) writeAudit(ctx context.Context, scheduleID, doctorID, action string, detail map[string]string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	auditLog := &models.ScheduleAuditLog{
		ScheduleID: scheduleID,
		DoctorID:   doctorID,
		Action:     action,
		Detail:     detail,
		RequestID:  requestID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.AuditRepository.Insert(ctx, auditLog); err != nil {
		uc.Log.Warn("scheduleUsecase.writeAudit error inserting audit log",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScheduleIDKey, scheduleID),
			zap.Error(err),
		)
	}
}

func parseShiftFields(workDateValue, startTimeValue, endTimeValue string) (jsontypes.CalendarDate, jsontypes.WallClock, jsontypes.WallClock, error) {
	workDate, err := jsontypes.ParseCalendarDate(workDateValue)
	if err != nil {
		return jsontypes.CalendarDate{}, jsontypes.WallClock{}, jsontypes.WallClock{}, exceptions.ErrCannotParseDate(err)
	}
	startTime, err := jsontypes.ParseWallClock(startTimeValue)
	if err != nil {
		return jsontypes.CalendarDate{}, jsontypes.WallClock{}, jsontypes.WallClock{}, exceptions.ErrCannotParseTime(err)
	}
	endTime, err := jsontypes.ParseWallClock(endTimeValue)
	if err != nil {
		return jsontypes.CalendarDate{}, jsontypes.WallClock{}, jsontypes.WallClock{}, exceptions.ErrCannotParseTime(err)
	}
	return workDate, startTime, endTime, nil
}
