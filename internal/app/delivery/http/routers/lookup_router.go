package routers

import (
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"
	"mediscan-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

// Lookups are public reference data, no authentication.
func attachLookupRoutes(router chi.Router, middlewares *middlewares.Middlewares, lookupController *controllers.LookupController) {
	router.Get("/"+constvars.ResourceDistricts, lookupController.FindAllDistricts)
	router.Get("/"+constvars.ResourceUpazilas, lookupController.FindUpazilas)
}
