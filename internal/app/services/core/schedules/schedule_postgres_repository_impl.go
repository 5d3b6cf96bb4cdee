package schedules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/jsontypes"
	"jadwalin-service/internal/pkg/queries"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type schedulePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	schedulePostgresRepositoryInstance contracts.ScheduleRepository
	onceSchedulePostgresRepository     sync.Once
)

func NewSchedulePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ScheduleRepository {
	onceSchedulePostgresRepository.Do(func() {
		instance := &schedulePostgresRepository{
			DB:  db,
			Log: logger,
		}
		schedulePostgresRepositoryInstance = instance
	})
	return schedulePostgresRepositoryInstance
}

func (r *schedulePostgresRepository) FindConflicts(ctx context.Context, doctorID string, dates []jsontypes.CalendarDate, startTime jsontypes.WallClock) ([]models.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.FindConflicts called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.GetScheduleConflicts, doctorID, startTime, pq.Array(dateStrings(dates)))
	if err != nil {
		r.Log.Error("schedulePostgresRepository.FindConflicts error querying schedules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

func (r *schedulePostgresRepository) FindByIDWithSlots(ctx context.Context, scheduleID string) (*models.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.FindByIDWithSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	schedule, err := r.findSchedule(ctx, r.DB, queries.GetScheduleByID, scheduleID)
	if err != nil || schedule == nil {
		return nil, err
	}

	slots, err := r.findSlots(ctx, r.DB, queries.GetSlotsByScheduleID, scheduleID)
	if err != nil {
		return nil, err
	}
	schedule.Slots = slots

	r.Log.Info("schedulePostgresRepository.FindByIDWithSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
		zap.Int(constvars.LoggingSlotCountKey, len(slots)),
	)
	return schedule, nil
}

func (r *schedulePostgresRepository) FindByDoctorIDWithSlots(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.FindByDoctorIDWithSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	rows, err := r.DB.QueryContext(ctx, queries.GetSchedulesByDoctorID, doctorID)
	if err != nil {
		r.Log.Error("schedulePostgresRepository.FindByDoctorIDWithSlots error querying schedules",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	schedules, err := scanSchedules(rows)
	if err != nil {
		return nil, err
	}

	for i := range schedules {
		slots, err := r.findSlots(ctx, r.DB, queries.GetSlotsByScheduleID, schedules[i].ID)
		if err != nil {
			return nil, err
		}
		schedules[i].Slots = slots
	}

	r.Log.Info("schedulePostgresRepository.FindByDoctorIDWithSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingScheduleCountKey, len(schedules)),
	)
	return schedules, nil
}

func (r *schedulePostgresRepository) CreateWithSlots(ctx context.Context, schedule *models.DoctorSchedule, slotTimes []jsontypes.WallClock) (*models.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.CreateWithSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, schedule.DoctorID),
		zap.String(constvars.LoggingWorkDateKey, schedule.WorkDate.String()),
	)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	if err := r.insertSchedule(ctx, tx, schedule); err != nil {
		return nil, err
	}
	slots, err := r.insertSlots(ctx, tx, schedule.ID, slotTimes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, exceptions.ErrPostgresDBTransaction(err)
	}

	schedule.Slots = slots
	r.Log.Info("schedulePostgresRepository.CreateWithSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, schedule.ID),
		zap.Int(constvars.LoggingSlotCountKey, len(slots)),
	)
	return schedule, nil
}

func (r *schedulePostgresRepository) ReplaceWithSlots(ctx context.Context, schedule *models.DoctorSchedule, slotTimes []jsontypes.WallClock) (*models.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.ReplaceWithSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, schedule.ID),
	)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	current, err := r.findSchedule(ctx, tx, queries.GetScheduleByIDForUpdate, schedule.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrScheduleNotFound(sql.ErrNoRows)
	}
	if err := r.ensureUnlocked(ctx, tx, schedule.ID); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, queries.DeleteSlotsByScheduleID, schedule.ID); err != nil {
		r.Log.Error("schedulePostgresRepository.ReplaceWithSlots error deleting slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScheduleIDKey, schedule.ID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBDeleteData(err)
	}

	schedule.SetUpdatedAt()
	_, err = tx.ExecContext(ctx, queries.UpdateSchedule,
		schedule.WorkDate, schedule.StartTime, schedule.EndTime, schedule.UpdatedAt, schedule.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, exceptions.ErrScheduleConflict(err)
		}
		r.Log.Error("schedulePostgresRepository.ReplaceWithSlots error updating schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScheduleIDKey, schedule.ID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}

	slots, err := r.insertSlots(ctx, tx, schedule.ID, slotTimes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, exceptions.ErrPostgresDBTransaction(err)
	}

	schedule.DoctorID = current.DoctorID
	schedule.CreatedAt = current.CreatedAt
	schedule.Slots = slots
	r.Log.Info("schedulePostgresRepository.ReplaceWithSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, schedule.ID),
		zap.Int(constvars.LoggingSlotCountKey, len(slots)),
	)
	return schedule, nil
}

func (r *schedulePostgresRepository) DeleteWithSlots(ctx context.Context, scheduleID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.DeleteWithSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	current, err := r.findSchedule(ctx, tx, queries.GetScheduleByIDForUpdate, scheduleID)
	if err != nil {
		return err
	}
	if current == nil {
		return exceptions.ErrScheduleNotFound(sql.ErrNoRows)
	}
	if err := r.ensureUnlocked(ctx, tx, scheduleID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, queries.DeleteSlotsByScheduleID, scheduleID); err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if _, err := tx.ExecContext(ctx, queries.DeleteScheduleByID, scheduleID); err != nil {
		r.Log.Error("schedulePostgresRepository.DeleteWithSlots error deleting schedule",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScheduleIDKey, scheduleID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBDeleteData(err)
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBTransaction(err)
	}

	r.Log.Info("schedulePostgresRepository.DeleteWithSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScheduleIDKey, scheduleID),
	)
	return nil
}

func (r *schedulePostgresRepository) CreateBatchWithSlots(ctx context.Context, schedules []models.DoctorSchedule, slotTimes []jsontypes.WallClock) ([]models.DoctorSchedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("schedulePostgresRepository.CreateBatchWithSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingScheduleCountKey, len(schedules)),
	)
	if len(schedules) == 0 {
		return nil, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, exceptions.ErrPostgresDBTransaction(err)
	}
	defer tx.Rollback()

	// Conflicts are re-checked inside the transaction so the batch stays
	// all-or-nothing under concurrent writers.
	dates := make([]jsontypes.CalendarDate, len(schedules))
	for i, schedule := range schedules {
		dates[i] = schedule.WorkDate
	}
	conflictRows, err := tx.QueryContext(ctx, queries.GetScheduleConflicts,
		schedules[0].DoctorID, schedules[0].StartTime, pq.Array(dateStrings(dates)),
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	conflicts, err := scanSchedules(conflictRows)
	conflictRows.Close()
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

	for i := range schedules {
		if err := r.insertSchedule(ctx, tx, &schedules[i]); err != nil {
			return nil, err
		}
		slots, err := r.insertSlots(ctx, tx, schedules[i].ID, slotTimes)
		if err != nil {
			return nil, err
		}
		schedules[i].Slots = slots
	}

	if err := tx.Commit(); err != nil {
		return nil, exceptions.ErrPostgresDBTransaction(err)
	}

	r.Log.Info("schedulePostgresRepository.CreateBatchWithSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingScheduleCountKey, len(schedules)),
	)
	return schedules, nil
}

// ensureUnlocked row-locks the schedule's slots and fails when any of them is
// already booked. Must run inside the caller's transaction.
func (r *schedulePostgresRepository) ensureUnlocked(ctx context.Context, tx *sql.Tx, scheduleID string) error {
	slots, err := r.findSlots(ctx, tx, queries.GetSlotsByScheduleIDForUpdate, scheduleID)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.AppointmentID != nil {
			return exceptions.ErrScheduleLocked(
				fmt.Errorf("slot %s of schedule %s is booked", slot.ID, scheduleID),
			)
		}
	}
	return nil
}

type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *schedulePostgresRepository) findSchedule(ctx context.Context, q rowQuerier, query, scheduleID string) (*models.DoctorSchedule, error) {
	var schedule models.DoctorSchedule
	err := q.QueryRowContext(ctx, query, scheduleID).Scan(
		&schedule.ID, &schedule.DoctorID, &schedule.WorkDate,
		&schedule.StartTime, &schedule.EndTime,
		&schedule.CreatedAt, &schedule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &schedule, nil
}

func (r *schedulePostgresRepository) findSlots(ctx context.Context, q rowQuerier, query, scheduleID string) ([]models.TimeSlot, error) {
	rows, err := q.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		var slot models.TimeSlot
		var appointmentID sql.NullString
		err := rows.Scan(&slot.ID, &slot.ScheduleID, &slot.SlotTime, &slot.IsAvailable, &appointmentID, &slot.CreatedAt)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		if appointmentID.Valid {
			slot.AppointmentID = &appointmentID.String
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return slots, nil
}

func (r *schedulePostgresRepository) insertSchedule(ctx context.Context, tx *sql.Tx, schedule *models.DoctorSchedule) error {
	_, err := tx.ExecContext(ctx, queries.InsertSchedule,
		schedule.ID, schedule.DoctorID, schedule.WorkDate,
		schedule.StartTime, schedule.EndTime,
		schedule.CreatedAt, schedule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return exceptions.ErrScheduleConflict(err)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *schedulePostgresRepository) insertSlots(ctx context.Context, tx *sql.Tx, scheduleID string, slotTimes []jsontypes.WallClock) ([]models.TimeSlot, error) {
	slots := make([]models.TimeSlot, 0, len(slotTimes))
	now := time.Now().UTC()
	for _, slotTime := range slotTimes {
		slot := models.TimeSlot{
			ID:          uuid.NewString(),
			ScheduleID:  scheduleID,
			SlotTime:    slotTime,
			IsAvailable: true,
			CreatedAt:   now,
		}
		_, err := tx.ExecContext(ctx, queries.InsertSlot, slot.ID, slot.ScheduleID, slot.SlotTime, slot.CreatedAt)
		if err != nil {
			return nil, exceptions.ErrPostgresDBInsertData(err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func scanSchedules(rows *sql.Rows) ([]models.DoctorSchedule, error) {
	var schedules []models.DoctorSchedule
	for rows.Next() {
		var schedule models.DoctorSchedule
		err := rows.Scan(
			&schedule.ID, &schedule.DoctorID, &schedule.WorkDate,
			&schedule.StartTime, &schedule.EndTime,
			&schedule.CreatedAt, &schedule.UpdatedAt,
		)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return schedules, nil
}

func dateStrings(dates []jsontypes.CalendarDate) []string {
	values := make([]string, len(dates))
	for i, date := range dates {
		values[i] = date.String()
	}
	return values
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
