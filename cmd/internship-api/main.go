package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eq3-dev/internship-api/api/swagger"
	"github.com/eq3-dev/internship-api/internal/handler"
	"github.com/eq3-dev/internship-api/internal/middleware"
	"github.com/eq3-dev/internship-api/internal/repository"
	"github.com/eq3-dev/internship-api/internal/service"
	"github.com/eq3-dev/internship-api/pkg/cache"
	"github.com/eq3-dev/internship-api/pkg/config"
	"github.com/eq3-dev/internship-api/pkg/database"
	"github.com/eq3-dev/internship-api/pkg/logger"
	corsmiddleware "github.com/eq3-dev/internship-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eq3-dev/internship-api/pkg/middleware/requestid"
	"github.com/eq3-dev/internship-api/pkg/storage"
)

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	assets, err := storage.NewLocalStorage(cfg.Assets.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to open assets directory", "error", err)
	}

	exports, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to open exports directory", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.SessionTTL, logr, true)
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	internshipRepo := repository.NewInternshipRepository(db)

	eligibilitySvc := service.NewEligibilityService(studentRepo, staffRepo, offerRepo, applicationRepo, internshipRepo, cacheSvc, logr).WithMetrics(metricsSvc)
	signatureSvc := service.NewSignatureService(studentRepo, staffRepo, logr).WithCache(cacheSvc)
	documentSvc := service.NewDocumentService(studentRepo, offerRepo, internshipRepo, assets, cfg.Assets.EvaluationSuffix, logr)
	exportSvc := service.NewExportService(eligibilitySvc, nil, nil, logr).WithArchive(exports)
	authSvc := service.NewAuthService(studentRepo, staffRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})

	studentHandler := handler.NewStudentHandler(eligibilitySvc)
	staffHandler := handler.NewStaffHandler(eligibilitySvc)
	sessionHandler := handler.NewSessionHandler(eligibilitySvc)
	signatureHandler := handler.NewSignatureHandler(signatureSvc, logr)
	documentHandler := handler.NewDocumentHandler(documentSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)

	api.GET("/students", studentHandler.List)
	api.GET("/students/sessions", studentHandler.Sessions)
	api.GET("/students/without-supervisor", studentHandler.WithoutSupervisor)
	api.GET("/students/by-supervisor/:supervisorId", studentHandler.BySupervisor)
	api.GET("/students/without-cv", studentHandler.WithoutCV)
	api.GET("/students/waiting-past-interview", studentHandler.WaitingPastInterview)
	api.GET("/students/without-interview-date", studentHandler.WithoutInterviewDate)
	api.GET("/students/with-internship", studentHandler.WithInternship)
	api.GET("/students/awaiting-interview", studentHandler.AwaitingInterview)
	api.GET("/students/missing-student-evaluation", studentHandler.MissingStudentEvaluation)
	api.GET("/students/missing-enterprise-evaluation", studentHandler.MissingEnterpriseEvaluation)
	api.GET("/students/export", exportHandler.Download)

	api.GET("/supervisors", staffHandler.Supervisors)
	api.GET("/monitors/by-username/:username", staffHandler.MonitorByUsername)
	api.GET("/monitors/:monitorId/sessions", staffHandler.MonitorSessions)

	api.GET("/offers/sessions", sessionHandler.All)
	api.GET("/offers/sessions/upcoming", sessionHandler.Upcoming)

	api.GET("/documents/offer/:offerId", documentHandler.Offer)
	api.GET("/documents/cv/:studentId/:cvId", documentHandler.CV)
	api.GET("/documents/evaluation-template/:type", documentHandler.EvaluationTemplate)
	api.GET("/documents/internship/:internshipId/contract", documentHandler.Contract)
	api.GET("/documents/internship/:internshipId/student-evaluation", documentHandler.StudentEvaluation)
	api.GET("/documents/internship/:internshipId/enterprise-evaluation", documentHandler.EnterpriseEvaluation)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.POST("/students/:studentId/supervisor/:supervisorId", studentHandler.AssignSupervisor)
	protected.POST("/signatures/:username", signatureHandler.Upload)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
