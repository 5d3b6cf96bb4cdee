package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/jsontypes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSlotRepository struct {
	slot     *models.TimeSlot
	doctorID string
}

func (r *fakeSlotRepository) FindByID(ctx context.Context, slotID string) (*models.TimeSlot, string, error) {
	if r.slot == nil || r.slot.ID != slotID {
		return nil, "", nil
	}
	return r.slot, r.doctorID, nil
}

func (r *fakeSlotRepository) Book(ctx context.Context, slotID, appointmentID string) (*models.TimeSlot, string, error) {
	if r.slot == nil || r.slot.ID != slotID {
		return nil, "", exceptions.ErrSlotNotFound(errors.New("no such slot"))
	}
	if r.slot.AppointmentID != nil {
		return nil, "", exceptions.ErrSlotAlreadyBooked(errors.New("slot taken"))
	}
	r.slot.AppointmentID = &appointmentID
	r.slot.IsAvailable = false
	return r.slot, r.doctorID, nil
}

func (r *fakeSlotRepository) Free(ctx context.Context, slotID string) (*models.TimeSlot, string, error) {
	if r.slot == nil || r.slot.ID != slotID {
		return nil, "", exceptions.ErrSlotNotFound(errors.New("no such slot"))
	}
	r.slot.AppointmentID = nil
	r.slot.IsAvailable = true
	return r.slot, r.doctorID, nil
}

type fakeRedisRepository struct {
	deleted []string
}

func (r *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}

func (r *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (r *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	r.deleted = append(r.deleted, key)
	return nil
}

type fakeAuditRepository struct {
	logs []models.ScheduleAuditLog
}

func (r *fakeAuditRepository) Insert(ctx context.Context, log *models.ScheduleAuditLog) error {
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditRepository) FindByScheduleID(ctx context.Context, scheduleID string) ([]models.ScheduleAuditLog, error) {
	return r.logs, nil
}

type fakeEventPublisher struct {
	events []models.ScheduleEvent
}

func (p *fakeEventPublisher) PublishScheduleEvent(ctx context.Context, event models.ScheduleEvent) error {
	p.events = append(p.events, event)
	return nil
}

type slotUsecaseFixture struct {
	usecase   *slotUsecase
	slots     *fakeSlotRepository
	redis     *fakeRedisRepository
	audit     *fakeAuditRepository
	publisher *fakeEventPublisher
}

func newSlotUsecaseFixture(slot *models.TimeSlot, doctorID string) *slotUsecaseFixture {
	slotsRepo := &fakeSlotRepository{slot: slot, doctorID: doctorID}
	redisRepo := &fakeRedisRepository{}
	auditRepo := &fakeAuditRepository{}
	publisher := &fakeEventPublisher{}
	return &slotUsecaseFixture{
		usecase: &slotUsecase{
			SlotRepository:  slotsRepo,
			RedisRepository: redisRepo,
			AuditRepository: auditRepo,
			EventPublisher:  publisher,
			Log:             zap.NewNop(),
		},
		slots:     slotsRepo,
		redis:     redisRepo,
		audit:     auditRepo,
		publisher: publisher,
	}
}

func availableSlot() *models.TimeSlot {
	slotTime, _ := jsontypes.ParseWallClock("09:00:00")
	return &models.TimeSlot{
		ID:          uuid.NewString(),
		ScheduleID:  uuid.NewString(),
		SlotTime:    slotTime,
		IsAvailable: true,
		CreatedAt:   time.Now().UTC(),
	}
}

func requireCustomErrorStatus(t *testing.T, err error, statusCode int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	assert.Equal(t, statusCode, customErr.StatusCode)
}

func TestMarkSlotBooked(t *testing.T) {
	t.Run("books an available slot", func(t *testing.T) {
		slot := availableSlot()
		doctorID := uuid.NewString()
		fx := newSlotUsecaseFixture(slot, doctorID)
		appointmentID := uuid.NewString()

		response, err := fx.usecase.MarkSlotBooked(context.Background(), slot.ID, appointmentID)

		require.NoError(t, err)
		assert.False(t, response.IsAvailable)
		require.NotNil(t, response.AppointmentID)
		assert.Equal(t, appointmentID, *response.AppointmentID)

		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, constvars.AuditActionSlotBooked, fx.publisher.events[0].Type)
		assert.Equal(t, slot.ID, fx.publisher.events[0].SlotID)
		require.Len(t, fx.audit.logs, 1)
		assert.Equal(t, slot.ScheduleID, fx.audit.logs[0].ScheduleID)
		require.Len(t, fx.redis.deleted, 1)
		assert.Contains(t, fx.redis.deleted[0], doctorID)
	})

	t.Run("rejects an already booked slot", func(t *testing.T) {
		slot := availableSlot()
		existing := uuid.NewString()
		slot.AppointmentID = &existing
		slot.IsAvailable = false
		fx := newSlotUsecaseFixture(slot, uuid.NewString())

		_, err := fx.usecase.MarkSlotBooked(context.Background(), slot.ID, uuid.NewString())

		requireCustomErrorStatus(t, err, constvars.StatusConflict)
		assert.Empty(t, fx.publisher.events)
		assert.Empty(t, fx.audit.logs)
	})

	t.Run("rejects an unknown slot", func(t *testing.T) {
		fx := newSlotUsecaseFixture(nil, "")

		_, err := fx.usecase.MarkSlotBooked(context.Background(), uuid.NewString(), uuid.NewString())

		requireCustomErrorStatus(t, err, constvars.StatusNotFound)
	})
}

func TestMarkSlotFree(t *testing.T) {
	t.Run("frees a booked slot", func(t *testing.T) {
		slot := availableSlot()
		existing := uuid.NewString()
		slot.AppointmentID = &existing
		slot.IsAvailable = false
		fx := newSlotUsecaseFixture(slot, uuid.NewString())

		response, err := fx.usecase.MarkSlotFree(context.Background(), slot.ID)

		require.NoError(t, err)
		assert.True(t, response.IsAvailable)
		assert.Nil(t, response.AppointmentID)

		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, constvars.AuditActionSlotFreed, fx.publisher.events[0].Type)
		require.Len(t, fx.audit.logs, 1)
	})

	t.Run("freeing an already free slot succeeds", func(t *testing.T) {
		slot := availableSlot()
		fx := newSlotUsecaseFixture(slot, uuid.NewString())

		response, err := fx.usecase.MarkSlotFree(context.Background(), slot.ID)

		require.NoError(t, err)
		assert.True(t, response.IsAvailable)
	})

	t.Run("rejects an unknown slot", func(t *testing.T) {
		fx := newSlotUsecaseFixture(nil, "")

		_, err := fx.usecase.MarkSlotFree(context.Background(), uuid.NewString())

		requireCustomErrorStatus(t, err, constvars.StatusNotFound)
	})
}
