package routers

import (
	"fmt"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"
	"mediscan-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Test    *controllers.TestController
	Booking *controllers.BookingController
	Banner  *controllers.BannerController
	Payment *controllers.PaymentController
	Lookup  *controllers.LookupController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	ctrls *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			constvars.MethodGet,
			constvars.MethodPost,
			constvars.MethodPatch,
			constvars.MethodDelete,
			constvars.MethodOptions,
		},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderAuthorization,
			constvars.HeaderContentType,
			constvars.HeaderXCSRFToken,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.LimitByIP())
	if limit := internalConfig.App.RequestBodyLimitInMegabyte; limit > 0 {
		router.Use(chimiddleware.RequestSize(int64(limit) << 20))
	}

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, ctrls.Auth)
			})

			r.Route("/"+constvars.ResourceUsers, func(r chi.Router) {
				attachUserRoutes(r, middlewares, ctrls.User)
			})

			r.Route("/"+constvars.ResourceTests, func(r chi.Router) {
				attachTestRoutes(r, middlewares, ctrls.Test, ctrls.Booking)
			})

			r.Route("/"+constvars.ResourceBookings, func(r chi.Router) {
				attachBookingRoutes(r, middlewares, ctrls.Booking)
			})

			r.Route("/"+constvars.ResourceBanners, func(r chi.Router) {
				attachBannerRoutes(r, middlewares, ctrls.Banner)
			})

			r.Route("/"+constvars.ResourcePayments, func(r chi.Router) {
				attachPaymentRoutes(r, middlewares, ctrls.Payment)
			})

			attachLookupRoutes(r, middlewares, ctrls.Lookup)
		})
	})
}
