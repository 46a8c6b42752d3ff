package main // Entry point package

import (
	"log" // Fatal startup errors before structured logging is available

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/ellucho77/HerbaBeauty/internal/booking"                    // Booking, cancel and completion workflows
	"github.com/ellucho77/HerbaBeauty/internal/config"                     // Internal config loader
	"github.com/ellucho77/HerbaBeauty/internal/database"                   // MySQL connection pool
	"github.com/ellucho77/HerbaBeauty/internal/handler"                    // HTTP handlers
	"github.com/ellucho77/HerbaBeauty/internal/middleware"                 // Response cache and rate-limit middleware
	"github.com/ellucho77/HerbaBeauty/internal/observability"              // Prometheus booking metrics
	"github.com/ellucho77/HerbaBeauty/internal/queue"                      // RabbitMQ appointment event consumer
	"github.com/ellucho77/HerbaBeauty/internal/repository"                 // SQL repositories for both collections
	"github.com/ellucho77/HerbaBeauty/internal/router"                     // Internal router setup
	queue_publisher "github.com/ellucho77/HerbaBeauty/internal/service"    // RabbitMQ appointment event publisher
	"github.com/ellucho77/HerbaBeauty/internal/session"                    // Per-visitor selected-service state
	"github.com/ellucho77/HerbaBeauty/internal/store"                      // Appointment store with snapshot subscriptions
	"github.com/ellucho77/HerbaBeauty/internal/view"                       // Rendered list caches for the widget
	"github.com/ellucho77/HerbaBeauty/pkg/logging"                         // slog JSON logger
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win

	cfg := config.Load()            // Load environment config
	logger := logging.New(cfg.LogLevel) // Structured JSON logger for the whole process

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open the MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err) // Cannot serve without storage
	}
	defer db.Close()

	apptRepo := repository.NewAppointmentRepo(db) // Active appointments table
	histRepo := repository.NewHistoryRepo(db)     // Finished appointments table

	rdb := config.NewRedisClient() // Shared Redis client; nil disables cache, limits, pub/sub and session persistence

	var notifier *store.Notifier // Cross-instance change fan-out over Redis pub/sub; nil keeps the store local-only
	if rdb != nil {
		notifier = store.NewNotifier(rdb, logger)
		defer notifier.Close()
	}

	st := store.NewSQLStore(apptRepo, histRepo, notifier, logger) // Store with snapshot subscriptions
	defer st.Close()

	activeView := view.NewActiveView(logger)   // Cached rendered active list
	historyView := view.NewHistoryView(logger) // Cached history snapshot
	if _, err := st.Subscribe(store.Active, activeView.Apply); err != nil {
		log.Fatalf("subscribe active view: %v", err)
	}
	if _, err := st.Subscribe(store.History, historyView.Apply); err != nil {
		log.Fatalf("subscribe history view: %v", err)
	}

	sessions := session.NewStore(rdb, logger)            // Selected-service state per visitor
	metrics := observability.NewBookingMetrics(nil)      // Registers on the default Prometheus registry
	publish := queue_publisher.PublishAppointmentEvent   // Appointment lifecycle events onto RabbitMQ
	confirm := booking.AutoConfirm{}                     // HTTP clients confirm by sending the request

	workflow := booking.NewWorkflow(st, sessions, publish, metrics, logger)      // Booking submission
	canceller := booking.NewCanceller(st, confirm, publish, metrics, logger)     // Cancel and clear-all
	completion := booking.NewCompletion(st, confirm, publish, metrics, logger)   // Finish-appointment workflow

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)) // Token-bucket rate limiting on every route

	router.RegisterRoutes(e)                                                      // Health check and metrics
	router.RegisterCatalog(e, middleware.NewResponseCache(config.LoadCacheConfig(), rdb)) // Cached service catalog
	router.RegisterSession(e, handler.NewSessionHandler(sessions))                // Session routes
	router.RegisterAppointments(e, // Booking, history and stream routes
		handler.NewAppointmentHandler(st, activeView, workflow, canceller, completion),
		handler.NewHistoryHandler(historyView),
		handler.NewStreamHandler(st, logger),
	)

	go func() { // Consume appointment events into the audit log
		if err := queue.StartAppointmentConsumer(); err != nil {
			logger.Error("queue consumer stopped", "error", err)
		}
	}()

	addr := ":" + cfg.Port                                      // Address string with port
	logger.Info("listening", "addr", addr, "env", cfg.Env)      // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
