package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/tablebook/reservation-service/config"
	"github.com/tablebook/reservation-service/internal/handler"
	"github.com/tablebook/reservation-service/internal/middleware"
	"github.com/tablebook/reservation-service/internal/notify"
	"github.com/tablebook/reservation-service/internal/repository"
	"github.com/tablebook/reservation-service/internal/service"
	"github.com/tablebook/reservation-service/internal/worker"
	"github.com/tablebook/reservation-service/pkg/database"
	"github.com/tablebook/reservation-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Notification sink: lifecycle events fan out through RabbitMQ.
	var sink notify.Sink
	if cfg.RabbitURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		sink = notify.NewSink(publisher)
	}

	// Repositories
	restaurantRepo := repository.NewRestaurantRepository(db)
	tableRepo := repository.NewTableRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// Services
	availability := service.NewAvailabilityService(tableRepo, reservationRepo)
	reservationSvc := service.NewReservationService(reservationRepo, restaurantRepo, tableRepo, customerRepo, availability, sink)
	restaurantSvc := service.NewRestaurantService(restaurantRepo)
	tableSvc := service.NewTableService(tableRepo, restaurantRepo, sink)
	customerSvc := service.NewCustomerService(customerRepo)
	integrationSvc := service.NewIntegrationService(restaurantRepo, customerRepo, reservationRepo, availability, reservationSvc)

	// Reminder sweep: scheduled asynq task, runs only when Redis is configured.
	if cfg.RedisAddr != "" {
		startReminderWorker(cfg, reservationRepo, sink)
	}

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "reservation-service"})
	})

	handler.NewReservationHandler(reservationSvc).RegisterRoutes(e)
	handler.NewRestaurantHandler(restaurantSvc).RegisterRoutes(e)
	handler.NewTableHandler(tableSvc).RegisterRoutes(e)
	handler.NewCustomerHandler(customerSvc).RegisterRoutes(e)
	handler.NewIntegrationHandler(integrationSvc).RegisterRoutes(e)

	log.Printf("Reservation Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

func startReminderWorker(cfg *config.Config, reservationRepo repository.ReservationRepository, sink notify.Sink) {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	mux := asynq.NewServeMux()
	mux.HandleFunc(worker.TaskReminderSweep, worker.NewReminderWorker(reservationRepo, sink).HandleReminderSweep)

	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 1})
	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("asynq server error: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register(cfg.ReminderSchedule, asynq.NewTask(worker.TaskReminderSweep, nil)); err != nil {
		log.Fatalf("failed to register reminder sweep: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("asynq scheduler error: %v", err)
		}
	}()
}
