package routers

import (
	"jadwalin-service/internal/app/delivery/http/middlewares"
	"jadwalin-service/internal/app/services/core/schedules"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, m *middlewares.Middlewares, c *schedules.ScheduleController) {
	router.Get("/{scheduleID}", c.FindScheduleByID)
	router.Get("/{scheduleID}/audit", c.FindScheduleAuditTrail)

	router.Group(func(r chi.Router) {
		r.Use(m.RequireAdminAPIKey)
		r.Post("/", c.CreateSchedule)
		r.Post("/batch", c.CreateScheduleBatch)
		r.Patch("/{scheduleID}", c.UpdateSchedule)
		r.Delete("/{scheduleID}", c.DeleteSchedule)
	})
}
