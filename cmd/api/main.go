package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/jrmoura/frota-api/internal/config"
	"github.com/jrmoura/frota-api/internal/database"
	"github.com/jrmoura/frota-api/internal/handlers"
	"github.com/jrmoura/frota-api/internal/jobs"
	"github.com/jrmoura/frota-api/internal/middleware"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/jrmoura/frota-api/internal/services"
	"github.com/jrmoura/frota-api/internal/storage"
	"github.com/jrmoura/frota-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// scheduleJobs wires the recurring maintenance. The expiry sweep runs once
// at startup and then on its configured interval; the ledger itself only
// provides the operation.
func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	interval := time.Duration(cfg.SweepIntervalMinutes) * time.Minute
	worker.ScheduleEveryImmediate(interval, func(ctx context.Context) error {
		count, err := svcs.Ledger.SweepExpired(ctx, time.Now())
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Info("Expiry sweep finished", "expired", count)
		}
		return nil
	})
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", h.Health.Index)

		// Fuel contracts and the ledger
		v1.GET("/contracts", h.Contract.Index)
		v1.GET("/contracts/:contract_id", h.Contract.Show)
		v1.POST("/contracts", h.Contract.Create)
		v1.PUT("/contracts/:contract_id", h.Contract.Update)
		v1.POST("/contracts/sweep", h.Contract.Sweep)

		// Fueling tickets and receipts
		v1.GET("/tickets", h.Ticket.Index)
		v1.GET("/tickets/:ticket_id", h.Ticket.Show)
		v1.POST("/tickets", h.Ticket.Create)
		v1.PUT("/tickets/:ticket_id", h.Ticket.Update)
		v1.DELETE("/tickets/:ticket_id", h.Ticket.Delete)
		v1.GET("/tickets/:ticket_id/receipt_pdf", h.Ticket.ReceiptPDF)
		v1.GET("/tickets/:ticket_id/receipt_preview", h.Ticket.ReceiptPreview)

		// Monthly reports and exports
		v1.GET("/reports/monthly", h.Report.Monthly)
		v1.GET("/reports/monthly_pdf", h.Report.MonthlyPDF)
		v1.GET("/reports/monthly_preview", h.Report.MonthlyPreview)
		v1.GET("/reports/monthly_csv", h.Report.MonthlyCSV)
		v1.GET("/reports/monthly_xlsx", h.Report.MonthlyXLSX)

		// Fleet resources
		v1.GET("/vehicles", h.Vehicle.Index)
		v1.GET("/vehicles/:vehicle_id", h.Vehicle.Show)
		v1.POST("/vehicles", h.Vehicle.Create)
		v1.PUT("/vehicles/:vehicle_id", h.Vehicle.Update)
		v1.DELETE("/vehicles/:vehicle_id", h.Vehicle.Delete)

		v1.GET("/employees", h.Employee.Index)
		v1.GET("/employees/:employee_id", h.Employee.Show)
		v1.POST("/employees", h.Employee.Create)
		v1.PUT("/employees/:employee_id", h.Employee.Update)
		v1.DELETE("/employees/:employee_id", h.Employee.Delete)

		v1.GET("/routes", h.Route.Index)
		v1.GET("/routes/:route_id", h.Route.Show)
		v1.POST("/routes", h.Route.Create)
		v1.PUT("/routes/:route_id", h.Route.Update)
		v1.DELETE("/routes/:route_id", h.Route.Delete)

		v1.GET("/destinations", h.Destination.Index)
		v1.GET("/destinations/:destination_id", h.Destination.Show)
		v1.POST("/destinations", h.Destination.Create)
		v1.PUT("/destinations/:destination_id", h.Destination.Update)
		v1.DELETE("/destinations/:destination_id", h.Destination.Delete)

		// Admin users
		v1.GET("/users", h.User.Index)
		v1.GET("/users/:user_id", h.User.Show)
		v1.POST("/users", h.User.Create)
		v1.PUT("/users/:user_id", h.User.Update)
		v1.DELETE("/users/:user_id", h.User.Delete)

		// Operations
		v1.GET("/audits", h.Audit.Index)
		v1.GET("/jobs/stats", h.Job.Stats)
	}

	return router
}
