package doctors

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type doctorPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	doctorPostgresRepositoryInstance contracts.DoctorRepository
	onceDoctorPostgresRepository     sync.Once
)

func NewDoctorPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.DoctorRepository {
	onceDoctorPostgresRepository.Do(func() {
		instance := &doctorPostgresRepository{
			DB:  db,
			Log: logger,
		}
		doctorPostgresRepositoryInstance = instance
	})
	return doctorPostgresRepositoryInstance
}

func (r *doctorPostgresRepository) ExistsByID(ctx context.Context, doctorID string) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.ExistsByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var exists bool
	err := r.DB.QueryRowContext(ctx, queries.CheckDoctorExistsByID, doctorID).Scan(&exists)
	if err != nil {
		r.Log.Error("doctorPostgresRepository.ExistsByID error querying doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (r *doctorPostgresRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("doctorPostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	var doctor models.Doctor
	err := r.DB.QueryRowContext(ctx, queries.GetDoctorByID, doctorID).Scan(&doctor.ID, &doctor.FullName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.Log.Error("doctorPostgresRepository.FindByID error scanning row",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &doctor, nil
}
