package routers

import (
	"smartrx-service/internal/app/config"
	"smartrx-service/internal/app/delivery/http/controllers"
	"smartrx-service/internal/app/delivery/http/middlewares"
	"smartrx-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	smartAppController *controllers.SmartAppController,
) {
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderContentType, constvars.HeaderXRequestID, constvars.HeaderXCSRFToken},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RateLimit())
	router.Use(middlewares.ErrorHandler)

	if limit := internalConfig.App.RequestBodyLimitInMegabyte; limit > 0 {
		router.Use(middleware.RequestSize(int64(limit) << 20))
	}

	router.Get(constvars.RouteHealth, smartAppController.Health)

	attachAppRoutes := func(r chi.Router) {
		attachSmartAppRoutes(r, internalConfig, middlewares, smartAppController)
	}
	if prefix := internalConfig.App.RoutePrefix(); prefix != "" {
		router.Route(prefix, attachAppRoutes)
	} else {
		router.Group(attachAppRoutes)
	}
}
