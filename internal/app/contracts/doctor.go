package contracts

import (
	"context"

	"jadwalin-service/internal/app/models"
)

// DoctorRepository reads the doctor directory this service shares with the
// directory collaborator. Only lookups; doctor lifecycle is owned elsewhere.
type DoctorRepository interface {
	ExistsByID(ctx context.Context, doctorID string) (bool, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
}
