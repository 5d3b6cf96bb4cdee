package queries

const (
	GetSlotsByScheduleID = `
		SELECT id, schedule_id, slot_time, is_available, appointment_id, created_at
		FROM time_slots
		WHERE schedule_id = $1
		ORDER BY slot_time
	`

	// Row-locks every slot of a schedule so a concurrent booking cannot land
	// between the lock check and the slot rewrite.
	GetSlotsByScheduleIDForUpdate = `
		SELECT id, schedule_id, slot_time, is_available, appointment_id, created_at
		FROM time_slots
		WHERE schedule_id = $1
		ORDER BY slot_time
		FOR UPDATE
	`

	GetSlotByID = `
		SELECT ts.id, ts.schedule_id, ts.slot_time, ts.is_available, ts.appointment_id, ts.created_at, ds.doctor_id
		FROM time_slots ts
		JOIN doctor_schedules ds ON ds.id = ts.schedule_id
		WHERE ts.id = $1
	`

	InsertSlot = `
		INSERT INTO time_slots (id, schedule_id, slot_time, is_available, appointment_id, created_at)
		VALUES ($1, $2, $3, TRUE, NULL, $4)
	`

	DeleteSlotsByScheduleID = `
		DELETE FROM time_slots
		WHERE schedule_id = $1
	`

	// Availability and the appointment reference flip in one statement; the
	// IS NULL guard makes double booking lose the race instead of overwriting.
	BookSlotByID = `
		UPDATE time_slots
		SET appointment_id = $2, is_available = FALSE
		WHERE id = $1 AND appointment_id IS NULL
	`

	FreeSlotByID = `
		UPDATE time_slots
		SET appointment_id = NULL, is_available = TRUE
		WHERE id = $1
	`
)
