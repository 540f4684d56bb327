package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/monikajha100/prime-admin-gateway/api/swagger"
	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/handler"
	internalmiddleware "github.com/monikajha100/prime-admin-gateway/internal/middleware"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/repository"
	"github.com/monikajha100/prime-admin-gateway/internal/service"
	"github.com/monikajha100/prime-admin-gateway/internal/session"
	"github.com/monikajha100/prime-admin-gateway/internal/upstream"
	"github.com/monikajha100/prime-admin-gateway/pkg/cache"
	"github.com/monikajha100/prime-admin-gateway/pkg/config"
	"github.com/monikajha100/prime-admin-gateway/pkg/logger"
	corsmiddleware "github.com/monikajha100/prime-admin-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/monikajha100/prime-admin-gateway/pkg/middleware/requestid"
	"github.com/monikajha100/prime-admin-gateway/pkg/storage"
)

// @title Prime Admin Gateway
// @version 0.1.0
// @description Admin gateway for the academy management system
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidations()

	metricsSvc := service.NewMetricsService()

	var cacheStore service.CacheStore
	var sessionStore session.Store = session.NewMemoryStore(cfg.Session.TTL)
	if cfg.Cache.Enabled || cfg.Session.UseRedis {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("redis unavailable", "error", err)
		}
		if cfg.Cache.Enabled {
			cacheStore = repository.NewCacheRepository(redisClient, logr)
		}
		if cfg.Session.UseRedis {
			sessionStore = session.NewRedisStore(redisClient, cfg.Session.TTL)
		}
	}
	cacheSvc := service.NewCacheService(cacheStore, metricsSvc, cfg.Cache.DefaultTTL, logr, cfg.Cache.Enabled)

	client := upstream.New(upstream.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Timeout:  cfg.Upstream.Timeout,
		Logger:   logr,
		Observer: metricsSvc,
	})

	exportStore, err := storage.NewFileStore(cfg.Reports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("export storage init failed", "error", err)
	}
	signer := storage.NewSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)

	authSvc := service.NewAuthService(client, sessionStore, logr)
	batchSvc := service.NewBatchService(client, cacheSvc, logr)
	attendanceSvc := service.NewAttendanceService(client, cacheSvc, 0, logr)
	reportSvc := service.NewReportService(client, exportStore, signer, cfg.Reports.WorkerConcurrency, logr)
	paymentSvc := service.NewPaymentService(client, cacheSvc, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reportSvc.StartWorkers(ctx)
	defer reportSvc.Stop()

	authHandler := handler.NewAuthHandler(authSvc, cfg.Features.Impersonation)
	batchHandler := handler.NewBatchHandler(batchSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Annotate(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	requireSession := internalmiddleware.Auth(func(c *gin.Context, sessionID string) (*session.Session, error) {
		return authSvc.Resolve(c.Request.Context(), sessionID)
	})
	adminOnly := internalmiddleware.RequireRoles(models.RoleAdmin)
	adminOrStaff := internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleStaff)

	secured := api.Group("")
	secured.Use(requireSession)

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)
	if cfg.Features.Impersonation {
		secured.POST("/auth/impersonate/:id", adminOnly, authHandler.Impersonate)
		secured.DELETE("/auth/impersonate", authHandler.StopImpersonating)
	}

	secured.GET("/batches", batchHandler.List)
	secured.POST("/batches", adminOrStaff, batchHandler.Create)
	secured.PATCH("/batches/:id", adminOrStaff, batchHandler.Update)
	secured.DELETE("/batches/:id", adminOnly, batchHandler.Delete)
	secured.GET("/batches/:id/suggest-candidates", batchHandler.SuggestCandidates)
	secured.POST("/batches/:id/assign-faculty", adminOnly, batchHandler.AssignFaculty)
	secured.GET("/batches/:id/enrollments", batchHandler.Enrollments)

	secured.POST("/sessions/:id/checkin", attendanceHandler.Checkin)
	secured.POST("/sessions/:id/checkout", attendanceHandler.Checkout)
	secured.GET("/sessions/:id/attendances", attendanceHandler.View)
	secured.POST("/sessions/:id/attendances", attendanceHandler.Mark)
	secured.POST("/sessions/:id/attendances/save-all", attendanceHandler.SaveAll)

	secured.GET("/reports/:type", reportHandler.Generate)
	secured.GET("/reports/:type/download", reportHandler.Download)
	secured.POST("/reports/:type/export", reportHandler.Export)
	secured.GET("/report-exports/download", reportHandler.ExportDownload)
	secured.GET("/report-exports/:filename/link", reportHandler.ExportLink)

	if cfg.Features.Payments {
		secured.GET("/payments", adminOrStaff, paymentHandler.List)
		secured.POST("/payments", adminOrStaff, paymentHandler.Create)
		secured.POST("/payments/:id/record", adminOrStaff, paymentHandler.Record)
	}

	if cfg.Employee.Enabled {
		photoStore, err := storage.NewFileStore(cfg.Employee.PhotoDir)
		if err != nil {
			logr.Sugar().Fatalw("photo storage init failed", "error", err)
		}
		employeeSvc := service.NewEmployeeService(client, cacheSvc, photoStore, cfg.Employee.MaxPhotoBytes, logr)
		employeeHandler := handler.NewEmployeeHandler(employeeSvc)

		secured.POST("/employee-attendance/punch-in", employeeHandler.PunchIn)
		secured.POST("/employee-attendance/punch-out", employeeHandler.PunchOut)
		secured.GET("/employee-attendance/today", employeeHandler.Today)
		secured.GET("/employee-attendance/daily-log", employeeHandler.DailyLog)
		secured.POST("/employee-attendance/breaks", employeeHandler.StartBreak)
		secured.POST("/employee-attendance/breaks/:id/end", employeeHandler.EndBreak)
		secured.GET("/employee-attendance/all", adminOrStaff, employeeHandler.AllEmployees)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("gateway starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("gateway failed", "error", err)
	}
}
