package slots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type slotPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	slotPostgresRepositoryInstance contracts.SlotRepository
	onceSlotPostgresRepository     sync.Once
)

func NewSlotPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.SlotRepository {
	onceSlotPostgresRepository.Do(func() {
		instance := &slotPostgresRepository{
			DB:  db,
			Log: logger,
		}
		slotPostgresRepositoryInstance = instance
	})
	return slotPostgresRepositoryInstance
}

func (r *slotPostgresRepository) FindByID(ctx context.Context, slotID string) (*models.TimeSlot, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("slotPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)

	var slot models.TimeSlot
	var doctorID string
	var appointmentID sql.NullString
	err := r.DB.QueryRowContext(ctx, queries.GetSlotByID, slotID).Scan(
		&slot.ID, &slot.ScheduleID, &slot.SlotTime, &slot.IsAvailable, &appointmentID, &slot.CreatedAt, &doctorID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("slotPostgresRepository.FindByID no rows found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSlotIDKey, slotID),
			)
			return nil, "", nil
		}
		r.Log.Error("slotPostgresRepository.FindByID error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, "", exceptions.ErrPostgresDBFindData(err)
	}
	if appointmentID.Valid {
		slot.AppointmentID = &appointmentID.String
	}
	return &slot, doctorID, nil
}

// Book flips availability and the appointment reference in one guarded
// statement. A zero row count means the guard lost: either the slot does not
// exist or another appointment holds it already.
func (r *slotPostgresRepository) Book(ctx context.Context, slotID, appointmentID string) (*models.TimeSlot, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("slotPostgresRepository.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	result, err := r.DB.ExecContext(ctx, queries.BookSlotByID, slotID, appointmentID)
	if err != nil {
		r.Log.Error("slotPostgresRepository.Book error updating slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, slotID),
			zap.Error(err),
		)
		return nil, "", exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, "", exceptions.ErrPostgresDBUpdateData(err)
	}

	slot, doctorID, findErr := r.FindByID(ctx, slotID)
	if findErr != nil {
		return nil, "", findErr
	}

	if affected == 0 {
		if slot == nil {
			return nil, "", exceptions.ErrSlotNotFound(sql.ErrNoRows)
		}
		return nil, "", exceptions.ErrSlotAlreadyBooked(
			fmt.Errorf("slot %s already carries an appointment", slotID),
		)
	}
	if slot == nil {
		return nil, "", exceptions.ErrSlotNotFound(sql.ErrNoRows)
	}

	r.Log.Info("slotPostgresRepository.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)
	return slot, doctorID, nil
}

// Free is idempotent: releasing an already free slot succeeds.
func (r *slotPostgresRepository) Free(ctx context.Context, slotID string) (*models.TimeSlot, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("slotPostgresRepository.Free called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)

	result, err := r.DB.ExecContext(ctx, queries.FreeSlotByID, slotID)
	if err != nil {
		r.Log.Error("slotPostgresRepository.Free error updating slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotIDKey, slotID),
			zap.Error(err),
		)
		return nil, "", exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, "", exceptions.ErrPostgresDBUpdateData(err)
	}
	if affected == 0 {
		return nil, "", exceptions.ErrSlotNotFound(sql.ErrNoRows)
	}

	slot, doctorID, err := r.FindByID(ctx, slotID)
	if err != nil {
		return nil, "", err
	}
	if slot == nil {
		return nil, "", exceptions.ErrSlotNotFound(sql.ErrNoRows)
	}

	r.Log.Info("slotPostgresRepository.Free succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)
	return slot, doctorID, nil
}
