package routers

import (
	"jadwalin-service/internal/app/delivery/http/middlewares"
	"jadwalin-service/internal/app/services/core/schedules"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, _ *middlewares.Middlewares, c *schedules.ScheduleController) {
	router.Get("/{doctorID}/schedules", c.FindSchedulesByDoctorID)
}
