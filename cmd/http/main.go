package main

import (
	"context"
	"errors"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"
	"mediscan-service/internal/app/delivery/http/routers"
	"mediscan-service/internal/app/drivers/database"
	"mediscan-service/internal/app/drivers/logger"
	"mediscan-service/internal/app/drivers/messaging"
	"mediscan-service/internal/app/drivers/storage"
	"mediscan-service/internal/app/services/core/auth"
	"mediscan-service/internal/app/services/core/banners"
	"mediscan-service/internal/app/services/core/bookings"
	"mediscan-service/internal/app/services/core/lookups"
	"mediscan-service/internal/app/services/core/payments"
	"mediscan-service/internal/app/services/core/tests"
	"mediscan-service/internal/app/services/core/users"
	"mediscan-service/internal/app/services/shared/locker"
	"mediscan-service/internal/app/services/shared/payment_gateway"
	"mediscan-service/internal/app/services/shared/ratelimiter"
	"mediscan-service/internal/app/services/shared/redis"
	"mediscan-service/internal/app/services/shared/releasequeue"
	"mediscan-service/internal/app/services/shared/scheduler"
	objectstorage "mediscan-service/internal/app/services/shared/storage"
	"mediscan-service/internal/pkg/constvars"
	"net/http"
	"os"
	"os/signal"
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

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         log,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	err = bootstrapingTheApp(workerCtx, bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	stopWorkers()
	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	cfg := bootstrap.InternalConfig
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, log)
	minioStorage := objectstorage.NewMinioStorage(bootstrap.Minio, cfg.Minio.PublicBaseUrl)
	paymentGateway := payment_gateway.NewStripeService(cfg, log)

	releaseQueue, err := releasequeue.NewService(bootstrap.RabbitMQ, log, cfg.RabbitMQ.SlotReleaseQueue, cfg.Worker.ReleaseMaxBatch)
	if err != nil {
		return err
	}

	// Repositories
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	testMongoRepository := tests.NewTestMongoRepository(bootstrap.MongoDB, dbName)
	bookingMongoRepository := bookings.NewBookingMongoRepository(bootstrap.MongoDB, dbName)
	bannerMongoRepository := banners.NewBannerMongoRepository(bootstrap.MongoDB, dbName)
	lookupMongoRepository := lookups.NewLookupMongoRepository(bootstrap.MongoDB, dbName)

	// Usecases
	authUsecase := auth.NewAuthUsecase(userMongoRepository, cfg, log)
	userUsecase := users.NewUserUsecase(userMongoRepository, authUsecase, log)
	testUsecase := tests.NewTestUsecase(testMongoRepository, authUsecase, log)
	bookingUsecase := bookings.NewBookingUsecase(
		bookingMongoRepository,
		testUsecase,
		authUsecase,
		releaseQueue,
		minioStorage,
		cfg,
		log,
	)
	bannerUsecase := banners.NewBannerUsecase(bannerMongoRepository, authUsecase, cfg, log)
	paymentUsecase := payments.NewPaymentUsecase(paymentGateway, log)
	lookupUsecase := lookups.NewLookupUsecase(
		lookupMongoRepository,
		redisRepository,
		time.Duration(cfg.App.LookupCacheTTLInMinutes)*time.Minute,
		log,
	)

	// Workers
	slotReleaseWorker := bookings.NewSlotReleaseWorker(log, cfg, releaseQueue, testUsecase)
	bannerRepairWorker := banners.NewRepairWorker(log, bannerUsecase)

	jobs := scheduler.NewScheduler(log, lockService)
	err = jobs.Register(scheduler.Job{
		Name:    "slot-release",
		Spec:    cfg.Worker.ReleaseCronSpec,
		LockKey: constvars.RedisLockSlotReleaseWorker,
		LockTTL: cfg.Worker.LeaderLockTTL,
		Run: func(ctx context.Context) {
			slotReleaseWorker.ProcessBatch(ctx)
		},
	})
	if err != nil {
		return err
	}
	err = jobs.Register(scheduler.Job{
		Name:    "banner-repair",
		Spec:    cfg.Worker.BannerRepairCronSpec,
		LockKey: constvars.RedisLockBannerRepairWorker,
		LockTTL: cfg.Worker.LeaderLockTTL,
		Run:     bannerRepairWorker.Run,
	})
	if err != nil {
		return err
	}
	jobs.Start(ctx)
	bootstrap.WorkerStop = jobs.Stop

	// HTTP
	mw := middlewares.NewMiddlewares(log, authUsecase, resourceLimiter, cfg)
	routers.SetupRoutes(bootstrap.Router, cfg, mw, &routers.Controllers{
		Auth:    controllers.NewAuthController(log, authUsecase),
		User:    controllers.NewUserController(log, userUsecase, authUsecase),
		Test:    controllers.NewTestController(log, testUsecase),
		Booking: controllers.NewBookingController(log, bookingUsecase, cfg),
		Banner:  controllers.NewBannerController(log, bannerUsecase, authUsecase),
		Payment: controllers.NewPaymentController(log, paymentUsecase),
		Lookup:  controllers.NewLookupController(log, lookupUsecase),
	})

	return nil
}
