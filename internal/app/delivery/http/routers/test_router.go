package routers

import (
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachTestRoutes(router chi.Router, middlewares *middlewares.Middlewares, testController *controllers.TestController, bookingController *controllers.BookingController) {
	router.Get("/{id}", testController.FindByID)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Get("/", testController.FindAll)
		r.Post("/", testController.Create)
		r.Patch("/{id}", testController.Update)
		r.Delete("/{id}", testController.DeleteByID)

		r.With(middlewares.ReserveRateLimit).Post("/{id}/bookings", bookingController.Reserve)
		r.Get("/{id}/bookings", bookingController.ListForTest)
	})
}
