package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elearn_backend/internal/config"
	"elearn_backend/internal/controller"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/service"
	"elearn_backend/pkg/configwatcher"
	"elearn_backend/pkg/database"
	"elearn_backend/pkg/logger"
	"elearn_backend/pkg/monitoring"
	"elearn_backend/pkg/security"
	"elearn_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider interface {
		Shutdown(ctx context.Context) error
	}
}

type repositories struct {
	user     *repository.UserRepository
	course   *repository.CourseRepository
	exam     *repository.ExamRepository
	progress *repository.ProgressRepository
}

type services struct {
	auth      *service.AuthService
	content   *service.ContentService
	progress  *service.ProgressService
	exam      *service.ExamService
	authoring *service.AuthoringService
}

type controllers struct {
	auth      *controller.AuthController
	content   *controller.ContentController
	progress  *controller.ProgressController
	exam      *controller.ExamController
	authoring *controller.AuthoringController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		course:   repository.NewCourseRepository(db),
		exam:     repository.NewExamRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	return &services{
		auth:      service.NewAuthService(repos.user, cfg),
		content:   service.NewContentService(repos.course, repos.progress, cfg, rdb),
		progress:  service.NewProgressService(repos.progress, repos.course),
		exam:      service.NewExamService(repos.exam),
		authoring: service.NewAuthoringService(repos.course, repos.exam),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		content:   controller.NewContentController(s.content),
		progress:  controller.NewProgressController(s.progress),
		exam:      controller.NewExamController(s.exam),
		authoring: controller.NewAuthoringController(s.authoring),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := database.BootstrapSuperuser(db, cfg); err != nil {
		logger.Log.Fatal("Failed to bootstrap superuser", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(&cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	go configwatcher.WatchConfig("configs/config.yaml", app.applyConfig)

	return app
}

// applyConfig picks up the runtime-tunable settings from a reloaded
// config file. Connection and listener settings need a restart. Only
// the atomic accessors are touched; request handlers read the live
// config concurrently.
func (a *App) applyConfig(newCfg *config.Config) {
	a.Config.SetCourseTreeTTL(newCfg.CourseTreeTTL())
	logger.Log.Info("Config reloaded",
		zap.Duration("courseTreeTTL", newCfg.CourseTreeTTL()),
	)
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
