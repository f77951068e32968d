package routers

import (
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *controllers.UserController) {
	router.Post("/", userController.Create)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Get("/", userController.FindAll)
		// GET reads the segment as an email, PATCH as a user id.
		r.Get("/admin/{id}", userController.IsAdmin)
		r.Patch("/admin/{id}", userController.MakeAdmin)
		r.Patch("/block/{id}", userController.Block)
		r.Patch("/{id}/role", userController.SetRole)
		r.Patch("/{id}/status", userController.SetStatus)
		r.Delete("/{id}", userController.DeleteByID)
	})
}
