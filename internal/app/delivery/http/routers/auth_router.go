package routers

import (
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/token", authController.IssueToken)
}
