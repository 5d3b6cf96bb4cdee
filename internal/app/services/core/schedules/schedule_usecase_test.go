package schedules

import (
	"context"
	"errors"
	"testing"
	"time"

	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/dto/requests"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/jsontypes"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeScheduleRepository struct {
	conflicts    []models.DoctorSchedule
	byID         map[string]*models.DoctorSchedule
	byDoctor     []models.DoctorSchedule
	created      []models.DoctorSchedule
	replaced     []models.DoctorSchedule
	deletedIDs   []string
	byDoctorHits int
}

func buildSlots(scheduleID string, slotTimes []jsontypes.WallClock) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(slotTimes))
	for _, slotTime := range slotTimes {
		slots = append(slots, models.TimeSlot{
			ID:          uuid.NewString(),
			ScheduleID:  scheduleID,
			SlotTime:    slotTime,
			IsAvailable: true,
			CreatedAt:   time.Now().UTC(),
		})
	}
	return slots
}

func (r *fakeScheduleRepository) FindConflicts(ctx context.Context, doctorID string, dates []jsontypes.CalendarDate, startTime jsontypes.WallClock) ([]models.DoctorSchedule, error) {
	return r.conflicts, nil
}

func (r *fakeScheduleRepository) FindByIDWithSlots(ctx context.Context, scheduleID string) (*models.DoctorSchedule, error) {
	return r.byID[scheduleID], nil
}

func (r *fakeScheduleRepository) FindByDoctorIDWithSlots(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	r.byDoctorHits++
	return r.byDoctor, nil
}

func (r *fakeScheduleRepository) CreateWithSlots(ctx context.Context, schedule *models.DoctorSchedule, slotTimes []jsontypes.WallClock) (*models.DoctorSchedule, error) {
	schedule.Slots = buildSlots(schedule.ID, slotTimes)
	r.created = append(r.created, *schedule)
	return schedule, nil
}

func (r *fakeScheduleRepository) ReplaceWithSlots(ctx context.Context, schedule *models.DoctorSchedule, slotTimes []jsontypes.WallClock) (*models.DoctorSchedule, error) {
	schedule.Slots = buildSlots(schedule.ID, slotTimes)
	r.replaced = append(r.replaced, *schedule)
	return schedule, nil
}

func (r *fakeScheduleRepository) DeleteWithSlots(ctx context.Context, scheduleID string) error {
	r.deletedIDs = append(r.deletedIDs, scheduleID)
	return nil
}

func (r *fakeScheduleRepository) CreateBatchWithSlots(ctx context.Context, schedules []models.DoctorSchedule, slotTimes []jsontypes.WallClock) ([]models.DoctorSchedule, error) {
	for i := range schedules {
		schedules[i].Slots = buildSlots(schedules[i].ID, slotTimes)
	}
	r.created = append(r.created, schedules...)
	return schedules, nil
}

type fakeDoctorRepository struct {
	exists bool
}

func (r *fakeDoctorRepository) ExistsByID(ctx context.Context, doctorID string) (bool, error) {
	return r.exists, nil
}

func (r *fakeDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	if !r.exists {
		return nil, nil
	}
	return &models.Doctor{ID: doctorID, FullName: "dr. Test"}, nil
}

type fakeRedisRepository struct {
	store   map[string]string
	deleted []string
}

func (r *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if r.store == nil {
		r.store = map[string]string{}
	}
	r.store[key] = string(data)
	return nil
}

func (r *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return r.store[key], nil
}

func (r *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	r.deleted = append(r.deleted, key)
	delete(r.store, key)
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
	var matched []models.ScheduleAuditLog
	for _, log := range r.logs {
		if log.ScheduleID == scheduleID {
			matched = append(matched, log)
		}
	}
	return matched, nil
}

type fakeEventPublisher struct {
	events []models.ScheduleEvent
}

func (p *fakeEventPublisher) PublishScheduleEvent(ctx context.Context, event models.ScheduleEvent) error {
	p.events = append(p.events, event)
	return nil
}

type scheduleUsecaseFixture struct {
	usecase   *scheduleUsecase
	schedules *fakeScheduleRepository
	doctors   *fakeDoctorRepository
	redis     *fakeRedisRepository
	audit     *fakeAuditRepository
	publisher *fakeEventPublisher
}

func newScheduleUsecaseFixture() *scheduleUsecaseFixture {
	schedules := &fakeScheduleRepository{byID: map[string]*models.DoctorSchedule{}}
	doctors := &fakeDoctorRepository{exists: true}
	redis := &fakeRedisRepository{store: map[string]string{}}
	auditRepo := &fakeAuditRepository{}
	publisher := &fakeEventPublisher{}
	return &scheduleUsecaseFixture{
		usecase: &scheduleUsecase{
			ScheduleRepository: schedules,
			DoctorRepository:   doctors,
			RedisRepository:    redis,
			AuditRepository:    auditRepo,
			EventPublisher:     publisher,
			Log:                zap.NewNop(),
		},
		schedules: schedules,
		doctors:   doctors,
		redis:     redis,
		audit:     auditRepo,
		publisher: publisher,
	}
}

func requireCustomErrorStatus(t *testing.T, err error, statusCode int) *exceptions.CustomError {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	assert.Equal(t, statusCode, customErr.StatusCode)
	return customErr
}

func TestCreateSchedule(t *testing.T) {
	doctorID := uuid.NewString()
	request := &requests.CreateSchedule{
		DoctorID:  doctorID,
		WorkDate:  "2024-06-05",
		StartTime: "08:00:00",
		EndTime:   "12:00:00",
	}

	t.Run("creates schedule with hourly slots", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()

		response, err := fx.usecase.CreateSchedule(context.Background(), request)

		require.NoError(t, err)
		assert.Equal(t, doctorID, response.DoctorID)
		assert.Equal(t, "2024-06-05", response.WorkDate)
		require.Len(t, response.Slots, 4)
		assert.Equal(t, "08:00:00", response.Slots[0].SlotTime)
		assert.Equal(t, "11:00:00", response.Slots[3].SlotTime)
		for _, slot := range response.Slots {
			assert.True(t, slot.IsAvailable)
			assert.Nil(t, slot.AppointmentID)
		}

		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, constvars.AuditActionScheduleCreated, fx.publisher.events[0].Type)
		require.Len(t, fx.audit.logs, 1)
		assert.Equal(t, constvars.AuditActionScheduleCreated, fx.audit.logs[0].Action)
		assert.Contains(t, fx.redis.deleted[0], doctorID)
	})

	t.Run("rejects unknown doctor", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		fx.doctors.exists = false

		_, err := fx.usecase.CreateSchedule(context.Background(), request)

		requireCustomErrorStatus(t, err, constvars.StatusNotFound)
		assert.Empty(t, fx.schedules.created)
	})

	t.Run("rejects start not before end", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()

		_, err := fx.usecase.CreateSchedule(context.Background(), &requests.CreateSchedule{
			DoctorID:  doctorID,
			WorkDate:  "2024-06-05",
			StartTime: "12:00:00",
			EndTime:   "08:00:00",
		})

		requireCustomErrorStatus(t, err, constvars.StatusUnprocessableEntity)
		assert.Empty(t, fx.schedules.created)
	})

	t.Run("rejects duplicate shift", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		fx.schedules.conflicts = []models.DoctorSchedule{{ID: uuid.NewString(), DoctorID: doctorID}}

		_, err := fx.usecase.CreateSchedule(context.Background(), request)

		requireCustomErrorStatus(t, err, constvars.StatusConflict)
		assert.Empty(t, fx.schedules.created)
	})
}

func storedSchedule(doctorID string, booked bool) *models.DoctorSchedule {
	scheduleID := uuid.NewString()
	workDate, _ := jsontypes.ParseCalendarDate("2024-06-05")
	startTime, _ := jsontypes.ParseWallClock("08:00:00")
	endTime, _ := jsontypes.ParseWallClock("12:00:00")

	schedule := &models.DoctorSchedule{
		ID:        scheduleID,
		DoctorID:  doctorID,
		WorkDate:  workDate,
		StartTime: startTime,
		EndTime:   endTime,
		Slots:     buildSlots(scheduleID, GenerateSlotTimes(startTime, endTime)),
	}
	schedule.SetCreatedAtUpdatedAt()
	if booked {
		appointmentID := uuid.NewString()
		schedule.Slots[1].AppointmentID = &appointmentID
		schedule.Slots[1].IsAvailable = false
	}
	return schedule
}

func TestUpdateSchedule(t *testing.T) {
	doctorID := uuid.NewString()

	t.Run("merges partial edit and regenerates slots", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		current := storedSchedule(doctorID, false)
		fx.schedules.byID[current.ID] = current

		newEnd := "10:00:00"
		response, err := fx.usecase.UpdateSchedule(context.Background(), current.ID, &requests.UpdateSchedule{
			EndTime: &newEnd,
		})

		require.NoError(t, err)
		assert.Equal(t, "2024-06-05", response.WorkDate)
		assert.Equal(t, "08:00:00", response.StartTime)
		assert.Equal(t, "10:00:00", response.EndTime)
		assert.Len(t, response.Slots, 2)
		require.Len(t, fx.schedules.replaced, 1)
		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, constvars.AuditActionScheduleUpdated, fx.publisher.events[0].Type)
	})

	t.Run("rejects unknown schedule", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()

		newEnd := "10:00:00"
		_, err := fx.usecase.UpdateSchedule(context.Background(), uuid.NewString(), &requests.UpdateSchedule{EndTime: &newEnd})

		requireCustomErrorStatus(t, err, constvars.StatusNotFound)
	})

	t.Run("rejects schedule with booked slot", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		current := storedSchedule(doctorID, true)
		fx.schedules.byID[current.ID] = current

		newEnd := "10:00:00"
		_, err := fx.usecase.UpdateSchedule(context.Background(), current.ID, &requests.UpdateSchedule{EndTime: &newEnd})

		requireCustomErrorStatus(t, err, constvars.StatusLocked)
		assert.Empty(t, fx.schedules.replaced)
	})

	t.Run("rejects collapsed range after merge", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		current := storedSchedule(doctorID, false)
		fx.schedules.byID[current.ID] = current

		newEnd := "08:00:00"
		_, err := fx.usecase.UpdateSchedule(context.Background(), current.ID, &requests.UpdateSchedule{EndTime: &newEnd})

		requireCustomErrorStatus(t, err, constvars.StatusUnprocessableEntity)
	})
}

func TestDeleteSchedule(t *testing.T) {
	doctorID := uuid.NewString()

	t.Run("deletes schedule and its slots", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		current := storedSchedule(doctorID, false)
		fx.schedules.byID[current.ID] = current

		err := fx.usecase.DeleteSchedule(context.Background(), current.ID)

		require.NoError(t, err)
		assert.Equal(t, []string{current.ID}, fx.schedules.deletedIDs)
		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, constvars.AuditActionScheduleDeleted, fx.publisher.events[0].Type)
	})

	t.Run("rejects schedule with booked slot", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		current := storedSchedule(doctorID, true)
		fx.schedules.byID[current.ID] = current

		err := fx.usecase.DeleteSchedule(context.Background(), current.ID)

		requireCustomErrorStatus(t, err, constvars.StatusLocked)
		assert.Empty(t, fx.schedules.deletedIDs)
	})

	t.Run("rejects unknown schedule", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()

		err := fx.usecase.DeleteSchedule(context.Background(), uuid.NewString())

		requireCustomErrorStatus(t, err, constvars.StatusNotFound)
	})
}

func TestCreateScheduleBatch(t *testing.T) {
	doctorID := uuid.NewString()
	request := &requests.CreateScheduleBatch{
		DoctorID:   doctorID,
		StartTime:  "08:00:00",
		EndTime:    "12:00:00",
		AnchorDate: "2024-06-05",
		Weekdays:   []string{"monday", "wednesday", "friday"},
	}

	t.Run("creates one schedule per selected weekday", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()

		response, err := fx.usecase.CreateScheduleBatch(context.Background(), request)

		require.NoError(t, err)
		require.Len(t, response, 3)
		assert.Equal(t, "2024-06-03", response[0].WorkDate)
		assert.Equal(t, "2024-06-05", response[1].WorkDate)
		assert.Equal(t, "2024-06-07", response[2].WorkDate)
		for _, schedule := range response {
			assert.Len(t, schedule.Slots, 4)
		}

		require.Len(t, fx.publisher.events, 1)
		assert.Equal(t, constvars.AuditActionScheduleBatchCreated, fx.publisher.events[0].Type)
		assert.Len(t, fx.publisher.events[0].ScheduleIDs, 3)
		assert.Len(t, fx.audit.logs, 3)
	})

	t.Run("rejects whole batch on any conflict", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		workDate, _ := jsontypes.ParseCalendarDate("2024-06-05")
		fx.schedules.conflicts = []models.DoctorSchedule{{ID: uuid.NewString(), DoctorID: doctorID, WorkDate: workDate}}

		_, err := fx.usecase.CreateScheduleBatch(context.Background(), request)

		customErr := requireCustomErrorStatus(t, err, constvars.StatusConflict)
		assert.Contains(t, customErr.ClientMessage, "2024-06-05")
		assert.Empty(t, fx.schedules.created)
	})

	t.Run("rejects unknown doctor", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		fx.doctors.exists = false

		_, err := fx.usecase.CreateScheduleBatch(context.Background(), request)

		requireCustomErrorStatus(t, err, constvars.StatusNotFound)
	})

	t.Run("rejects start not before end", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()

		_, err := fx.usecase.CreateScheduleBatch(context.Background(), &requests.CreateScheduleBatch{
			DoctorID:   doctorID,
			StartTime:  "12:00:00",
			EndTime:    "08:00:00",
			AnchorDate: "2024-06-05",
			Weekdays:   []string{"monday"},
		})

		requireCustomErrorStatus(t, err, constvars.StatusUnprocessableEntity)
	})
}

func TestFindByDoctorID(t *testing.T) {
	doctorID := uuid.NewString()

	t.Run("reads through to postgres and fills the cache", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		stored := storedSchedule(doctorID, false)
		fx.schedules.byDoctor = []models.DoctorSchedule{*stored}

		response, err := fx.usecase.FindByDoctorID(context.Background(), doctorID)

		require.NoError(t, err)
		require.Len(t, response, 1)
		assert.Equal(t, stored.ID, response[0].ID)
		assert.Equal(t, 1, fx.schedules.byDoctorHits)
		assert.NotEmpty(t, fx.redis.store)
	})

	t.Run("serves cached schedules without touching postgres", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		stored := storedSchedule(doctorID, false)
		fx.schedules.byDoctor = []models.DoctorSchedule{*stored}

		_, err := fx.usecase.FindByDoctorID(context.Background(), doctorID)
		require.NoError(t, err)

		response, err := fx.usecase.FindByDoctorID(context.Background(), doctorID)

		require.NoError(t, err)
		require.Len(t, response, 1)
		assert.Equal(t, stored.ID, response[0].ID)
		assert.Equal(t, 1, fx.schedules.byDoctorHits)
	})

	t.Run("rejects unknown doctor on cache miss", func(t *testing.T) {
		fx := newScheduleUsecaseFixture()
		fx.doctors.exists = false

		_, err := fx.usecase.FindByDoctorID(context.Background(), doctorID)

		requireCustomErrorStatus(t, err, constvars.StatusNotFound)
	})
}

func TestFindByID(t *testing.T) {
	fx := newScheduleUsecaseFixture()
	current := storedSchedule(uuid.NewString(), false)
	fx.schedules.byID[current.ID] = current

	response, err := fx.usecase.FindByID(context.Background(), current.ID)
	require.NoError(t, err)
	assert.Equal(t, current.ID, response.ID)
	assert.Len(t, response.Slots, 4)

	_, err = fx.usecase.FindByID(context.Background(), uuid.NewString())
	requireCustomErrorStatus(t, err, constvars.StatusNotFound)
}

func TestFindAuditTrail(t *testing.T) {
	fx := newScheduleUsecaseFixture()
	scheduleID := uuid.NewString()
	fx.audit.logs = []models.ScheduleAuditLog{
		{ScheduleID: scheduleID, Action: constvars.AuditActionScheduleCreated},
		{ScheduleID: uuid.NewString(), Action: constvars.AuditActionScheduleDeleted},
	}

	response, err := fx.usecase.FindAuditTrail(context.Background(), scheduleID)

	require.NoError(t, err)
	require.Len(t, response, 1)
	assert.Equal(t, constvars.AuditActionScheduleCreated, response[0].Action)
}
