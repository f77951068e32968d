package routers

import (
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBannerRoutes(router chi.Router, middlewares *middlewares.Middlewares, bannerController *controllers.BannerController) {
	router.Get("/", bannerController.FindAll)
	router.Get("/active", bannerController.GetActive)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Post("/", bannerController.Create)
		r.Post("/repair", bannerController.Repair)
		r.Patch("/{id}/activate", bannerController.Activate)
		r.Delete("/{id}", bannerController.DeleteByID)
	})
}
