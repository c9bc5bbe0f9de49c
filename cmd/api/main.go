package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/darthcode66/Snap-Self/api/swagger"
	"github.com/darthcode66/Snap-Self/internal/handler"
	internalmiddleware "github.com/darthcode66/Snap-Self/internal/middleware"
	"github.com/darthcode66/Snap-Self/internal/models"
	"github.com/darthcode66/Snap-Self/internal/repository"
	"github.com/darthcode66/Snap-Self/internal/service"
	"github.com/darthcode66/Snap-Self/pkg/cache"
	"github.com/darthcode66/Snap-Self/pkg/config"
	"github.com/darthcode66/Snap-Self/pkg/database"
	"github.com/darthcode66/Snap-Self/pkg/jobs"
	"github.com/darthcode66/Snap-Self/pkg/logger"
	corsmiddleware "github.com/darthcode66/Snap-Self/pkg/middleware/cors"
	reqidmiddleware "github.com/darthcode66/Snap-Self/pkg/middleware/requestid"
	"github.com/darthcode66/Snap-Self/pkg/storage"
)

// @title Snap-Self API
// @version 1.0.0
// @description School photography sessions: schools, classes, rosters, capture and reports.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis connection failed", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	photoStore, err := storage.NewPhotoStore(cfg.Storage)
	if err != nil {
		logr.Sugar().Fatalw("photo storage init failed", "error", err)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	schoolRepo := repository.NewSchoolRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	markRepo := repository.NewMarkRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	ownershipRepo := repository.NewOwnershipRepository(db)

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr)

	auditQueue := service.NewAuditQueue(auditRepo, jobs.QueueConfig{Workers: 2, BufferSize: 256, Logger: logr})
	auditQueue.Start(ctx)
	defer auditQueue.Stop()
	auditSvc := service.NewAuditService(auditRepo, auditQueue, logr)

	identitySvc := service.NewIdentityService(cfg.Auth)
	guard := service.NewOwnershipGuard(ownershipRepo, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	schoolSvc := service.NewSchoolService(schoolRepo, userRepo, guard, dashboardSvc, validate, logr)
	classSvc := service.NewClassService(classRepo, studentRepo, schoolRepo, guard, dashboardSvc, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, guard, dashboardSvc, metricsSvc, validate, logr)
	sessionSvc := service.NewSessionService(service.SessionServiceParams{
		Sessions:  sessionRepo,
		Classes:   classRepo,
		Schools:   schoolRepo,
		Students:  studentRepo,
		Photos:    photoRepo,
		Guard:     guard,
		Counts:    dashboardSvc,
		Metrics:   metricsSvc,
		Validator: validate,
		Logger:    logr,
	})
	photoSvc := service.NewPhotoService(photoRepo, sessionRepo, studentRepo, photoStore, guard, metricsSvc, cfg.Storage.MaxUploadBytes, logr)
	captureSvc := service.NewCaptureService(sessionRepo, studentRepo, markRepo, guard, metricsSvc, validate, logr)
	reportSvc := service.NewReportService(captureSvc, logr)

	checks := map[string]handler.Pinger{"database": db}
	if redisClient != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)
	schoolHandler := handler.NewSchoolHandler(schoolSvc)
	classHandler := handler.NewClassHandler(classSvc)
	studentHandler := handler.NewStudentHandler(studentSvc, cfg.Import.MaxFileBytes)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	photoHandler := handler.NewPhotoHandler(photoSvc)
	captureHandler := handler.NewCaptureHandler(captureSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, internalmiddleware.LogFields))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if cfg.Storage.Driver == config.StorageDriverLocal {
		r.Static(cfg.Storage.PublicPath, cfg.Storage.Dir)
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.Identity(identitySvc))
	api.Use(internalmiddleware.RequireRoles(models.RolePhotographer))

	audit := func(action, resource string) gin.HandlerFunc {
		return internalmiddleware.Audit(auditSvc, action, resource)
	}

	schools := api.Group("/schools")
	schools.GET("", schoolHandler.List)
	schools.POST("", audit(models.AuditActionCreate, models.AuditResourceSchool), schoolHandler.Create)
	schools.GET("/:id", schoolHandler.Get)
	schools.PUT("/:id", audit(models.AuditActionUpdate, models.AuditResourceSchool), schoolHandler.Update)
	schools.DELETE("/:id", audit(models.AuditActionDelete, models.AuditResourceSchool), schoolHandler.Delete)

	classes := api.Group("/classes")
	classes.GET("", classHandler.List)
	classes.POST("", audit(models.AuditActionCreate, models.AuditResourceClass), classHandler.Create)
	classes.GET("/:id", classHandler.Get)
	classes.DELETE("/:id", audit(models.AuditActionDelete, models.AuditResourceClass), classHandler.Delete)

	students := api.Group("/students")
	students.POST("", audit(models.AuditActionCreate, models.AuditResourceStudent), studentHandler.Create)
	students.POST("/import", audit(models.AuditActionImport, models.AuditResourceStudent), studentHandler.Import)
	students.POST("/import/preview", studentHandler.PreviewFile)
	students.POST("/import/file", audit(models.AuditActionImport, models.AuditResourceStudent), studentHandler.ImportFile)
	students.DELETE("/:id", audit(models.AuditActionDelete, models.AuditResourceStudent), studentHandler.Delete)

	sessions := api.Group("/sessions")
	sessions.GET("", sessionHandler.List)
	sessions.POST("", audit(models.AuditActionCreate, models.AuditResourceSession), sessionHandler.Create)
	sessions.GET("/:id", sessionHandler.Get)
	sessions.PATCH("/:id", audit(models.AuditActionUpdate, models.AuditResourceSession), sessionHandler.Update)
	sessions.DELETE("/:id", audit(models.AuditActionDelete, models.AuditResourceSession), sessionHandler.Delete)
	sessions.GET("/:id/photos", photoHandler.List)
	sessions.POST("/:id/photos", audit(models.AuditActionUpload, models.AuditResourcePhoto), photoHandler.Upload)
	sessions.GET("/:id/capture", captureHandler.State)
	sessions.PUT("/:id/marks", audit(models.AuditActionMark, models.AuditResourceSession), captureHandler.Mark)
	sessions.GET("/:id/summary", captureHandler.Summary)
	sessions.GET("/:id/report", reportHandler.SessionReport)

	api.GET("/dashboard", dashboardHandler.Counts)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "storage", cfg.Storage.Driver, "redis", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}
