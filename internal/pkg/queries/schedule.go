package queries

const (
	GetScheduleByID = `
		SELECT id, doctor_id, work_date, start_time, end_time, created_at, updated_at
		FROM doctor_schedules
		WHERE id = $1
	`

	GetScheduleByIDForUpdate = `
		SELECT id, doctor_id, work_date, start_time, end_time, created_at, updated_at
		FROM doctor_schedules
		WHERE id = $1
		FOR UPDATE
	`

	GetSchedulesByDoctorID = `
		SELECT id, doctor_id, work_date, start_time, end_time, created_at, updated_at
		FROM doctor_schedules
		WHERE doctor_id = $1
		ORDER BY work_date, start_time
	`

	GetScheduleConflicts = `
		SELECT id, doctor_id, work_date, start_time, end_time, created_at, updated_at
		FROM doctor_schedules
		WHERE doctor_id = $1 AND start_time = $2 AND work_date = ANY($3)
		ORDER BY work_date
	`

	InsertSchedule = `
		INSERT INTO doctor_schedules (id, doctor_id, work_date, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	UpdateSchedule = `
		UPDATE doctor_schedules
		SET work_date = $1, start_time = $2, end_time = $3, updated_at = $4
		WHERE id = $5
	`

	DeleteScheduleByID = `
		DELETE FROM doctor_schedules
		WHERE id = $1
	`
)
