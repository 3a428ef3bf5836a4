package routers

import (
	"smartrx-service/internal/app/config"
	"smartrx-service/internal/app/delivery/http/controllers"
	"smartrx-service/internal/app/delivery/http/middlewares"
	"smartrx-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSmartAppRoutes(
	router chi.Router,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	smartAppController *controllers.SmartAppController,
) {
	router.Use(middlewares.BrowserSession)

	callbackPath := internalConfig.Smart.CallbackPath

	router.Get(constvars.RouteLaunch, smartAppController.Launch)
	router.Get(constvars.RouteLaunch+constvars.RouteHTMLSuffix, smartAppController.Launch)
	router.Get(callbackPath, smartAppController.Authorize)
	router.Get(callbackPath+constvars.RouteHTMLSuffix, smartAppController.Authorize)
	router.Get(constvars.RouteIndex, smartAppController.Index)
}
