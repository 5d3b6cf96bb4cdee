package routers

import (
	"time"

	"jadwalin-service/internal/app/config"
	"jadwalin-service/internal/app/delivery/http/middlewares"
	"jadwalin-service/internal/app/services/core/schedules"
	"jadwalin-service/internal/app/services/core/slots"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	scheduleController *schedules.ScheduleController,
	slotController *slots.SlotController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Api-Key", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	endpointPrefix := internalConfig.App.EndpointPrefix

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route("/schedules", func(r chi.Router) {
			attachScheduleRoutes(r, middlewares, scheduleController)
		})

		r.Route("/doctors", func(r chi.Router) {
			attachDoctorRoutes(r, middlewares, scheduleController)
		})

		r.Route("/slots", func(r chi.Router) {
			attachSlotRoutes(r, middlewares, slotController)
		})
	})
}
