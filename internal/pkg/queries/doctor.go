package queries

const (
	CheckDoctorExistsByID = `
		SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)
	`

	GetDoctorByID = `
		SELECT id, full_name
		FROM doctors
		WHERE id = $1
	`
)
