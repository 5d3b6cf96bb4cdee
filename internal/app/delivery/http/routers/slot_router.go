package routers

import (
	"jadwalin-service/internal/app/delivery/http/middlewares"
	"jadwalin-service/internal/app/services/core/slots"

	"github.com/go-chi/chi/v5"
)

// Slot routes are the narrow surface for the booking collaborator; it can
// only flip a slot's booking state, never reshape the schedule.
func attachSlotRoutes(router chi.Router, m *middlewares.Middlewares, c *slots.SlotController) {
	router.Group(func(r chi.Router) {
		r.Use(m.RequireAdminAPIKey)
		r.Post("/{slotID}/book", c.BookSlot)
		r.Post("/{slotID}/free", c.FreeSlot)
	})
}
