package routers

import (
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", bookingController.ListForUser)
	router.Get("/{id}", bookingController.FindByID)
	router.Delete("/{id}", bookingController.Cancel)
	router.Patch("/{id}/result", bookingController.RecordResult)
	router.Post("/{id}/result/upload", bookingController.UploadResult)
}
