package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/config"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/controllers"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/database"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/logger"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/services"
)

func main() {
	// Load configs
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed loading config: %v", err)
	}

	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed building logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to the database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed connecting to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Report{},
		&models.Officer{},
		&models.Assignment{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Optional statistics cache
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		zlog.Info("statistics cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	// Status events: one dispatcher, notification deriver subscribed
	events := services.NewStatusDispatcher(zlog, 256)
	events.Subscribe(services.NewNotificationDeriver(db, zlog))
	events.Start()
	defer events.Close()

	// Services
	reportSvc := services.NewReportService(db, events, zlog)
	assignmentSvc := services.NewAssignmentService(db, events, zlog)
	notificationSvc := services.NewNotificationService(db)
	officerSvc := services.NewOfficerService(db)
	statisticsSvc := services.NewStatisticsService(db, cache, zlog)

	// Controllers
	reportCtrl := controllers.NewReportController(reportSvc)
	assignmentCtrl := controllers.NewAssignmentController(assignmentSvc)
	notificationCtrl := controllers.NewNotificationController(notificationSvc)
	officerCtrl := controllers.NewOfficerController(officerSvc)
	statisticsCtrl := controllers.NewStatisticsController(statisticsSvc)

	// Echo
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Routes
	api := e.Group("/api/v1")
	reportCtrl.Register(api)
	assignmentCtrl.Register(api)
	notificationCtrl.Register(api)
	officerCtrl.Register(api)
	statisticsCtrl.Register(api)

	// Run server
	e.Logger.Fatal(e.Start(cfg.ServerAddr))
}
