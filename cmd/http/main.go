package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"smartrx-service/internal/app/config"
	"smartrx-service/internal/app/contracts"
	"smartrx-service/internal/app/delivery/http/controllers"
	"smartrx-service/internal/app/delivery/http/middlewares"
	"smartrx-service/internal/app/delivery/http/routers"
	"smartrx-service/internal/app/drivers/database"
	"smartrx-service/internal/app/drivers/logger"
	"smartrx-service/internal/app/services/core/launch"
	"smartrx-service/internal/app/services/core/medications"
	"smartrx-service/internal/app/services/fhirclient"
	"smartrx-service/internal/app/services/shared/ratelimiter"
	"smartrx-service/internal/app/services/shared/redis"
	"smartrx-service/internal/app/services/shared/renderer"
	"smartrx-service/internal/app/services/shared/sessionstore"
	"smartrx-service/internal/app/services/smart"
	"smartrx-service/internal/pkg/constvars"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	switch internalConfig.Session.Driver {
	case constvars.SessionDriverRedis:
		bootstrap.Redis = database.NewRedisClient(driverConfig, log)
	case constvars.SessionDriverMongoDB:
		bootstrap.MongoDB = database.NewMongoDB(driverConfig, log)
	case constvars.SessionDriverMemory:
		log.Warn("Using in-memory browser sessions, sessions are lost on restart and not shared between instances")
	default:
		log.Fatal("Unknown session driver", zap.String("driver", internalConfig.Session.Driver))
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Error bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("addr", server.Addr), zap.String("public_url", internalConfig.App.PublicURL()))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error closing resources", zap.Error(err))
	}
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger
	sessionExpiry := time.Duration(internalConfig.Session.ExpiredTimeInMinutes) * time.Minute

	// Browser session
	var browserSession contracts.BrowserSession
	switch {
	case bootstrap.Redis != nil:
		browserSession = sessionstore.NewRedisBrowserSession(redis.NewRedisRepository(bootstrap.Redis), sessionExpiry)
	case bootstrap.MongoDB != nil:
		mongoSession := sessionstore.NewMongoBrowserSession(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName, sessionExpiry)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := mongoSession.EnsureIndexes(ctx)
		if err != nil {
			return err
		}
		browserSession = mongoSession
	default:
		browserSession = sessionstore.NewMemoryBrowserSession()
	}
	stateStore := sessionstore.NewAuthorizationStateStore(browserSession, log)

	// Outbound HTTP shared by discovery, token exchange and FHIR calls
	hostLimiter := ratelimiter.NewHostLimiter(internalConfig.FHIR.RequestsPerSecond, internalConfig.FHIR.RequestBurst)
	outboundClient := &http.Client{
		Timeout:   time.Duration(internalConfig.Smart.HTTPTimeoutInSeconds) * time.Second,
		Transport: hostLimiter.Transport(http.DefaultTransport),
	}

	// SMART
	smartClientFactory := smart.NewClientFactory(stateStore, outboundClient, log)
	fhirClientFactory := fhirclient.NewFactory(log, internalConfig.FHIR.MaxSearchPages)

	// Usecases
	launchUsecase := launch.NewLaunchUsecase(stateStore, smartClientFactory, internalConfig, log)
	medicationUsecase := medications.NewMedicationUsecase(smartClientFactory, fhirClientFactory, internalConfig, log)

	// Controllers
	smartAppController := controllers.NewSmartAppController(
		log,
		launchUsecase,
		medicationUsecase,
		renderer.NewHTMLRenderer(),
		internalConfig,
	)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, internalConfig)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, smartAppController)
	return nil
}
