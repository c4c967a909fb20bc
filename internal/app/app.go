package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/controller"
	"talent_insight_backend/internal/repository"
	"talent_insight_backend/internal/service"
	"talent_insight_backend/pkg/database"
	"talent_insight_backend/pkg/logger"
	"talent_insight_backend/pkg/monitoring"
	"talent_insight_backend/pkg/security"
	"talent_insight_backend/pkg/tracing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	skillScore *repository.SkillScoreRepository
	attempt    *repository.AttemptRepository
	quest      *repository.QuestRepository
	classFocus *repository.ClassFocusRepository
}

type services struct {
	auth         *service.AuthService
	skillScore   *service.SkillScoreService
	evidenceGate *service.EvidenceGateService
	talentSignal *service.TalentSignalService
	attempt      *service.AttemptService
	goal         *service.GoalReadinessService
	quest        *service.QuestService
	insight      *service.InsightService
	reportExport *service.ReportExportService
}

type controllers struct {
	auth       *controller.AuthController
	attempt    *controller.AttemptController
	skillScore *controller.SkillScoreController
	insight    *controller.InsightController
	goal       *controller.GoalController
	quest      *controller.QuestController
	classFocus *controller.ClassFocusController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 供配置热更新回调使用：阈值全部经由 Cfg 指针读取，
// 原地覆盖 Insight 段即可对后续请求生效。
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Insight = cfg.Insight
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		skillScore: repository.NewSkillScoreRepository(db),
		attempt:    repository.NewAttemptRepository(db),
		quest:      repository.NewQuestRepository(db),
		classFocus: repository.NewClassFocusRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.skillScore = service.NewSkillScoreService(repos.skillScore, cfg)
	s.evidenceGate = service.NewEvidenceGateService(cfg)
	s.talentSignal = service.NewTalentSignalService(repos.attempt, repos.skillScore, rdb, cfg)
	s.attempt = service.NewAttemptService(repos.attempt, repos.user, s.skillScore, s.talentSignal)
	s.goal = service.NewGoalReadinessService(repos.skillScore, cfg)
	s.quest = service.NewQuestService(repos.quest, repos.skillScore, repos.attempt, repos.classFocus, cfg)
	s.insight = service.NewInsightService(repos.attempt, repos.skillScore, s.talentSignal, s.evidenceGate, cfg)

	reportExport, err := service.NewReportExportService(s.insight, repos.skillScore, cfg)
	if err != nil {
		return nil, err
	}
	s.reportExport = reportExport

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		attempt:    controller.NewAttemptController(s.attempt),
		skillScore: controller.NewSkillScoreController(repos.skillScore),
		insight:    controller.NewInsightController(s.insight, s.reportExport),
		goal:       controller.NewGoalController(s.goal, repos.skillScore),
		quest:      controller.NewQuestController(s.quest, repos.user),
		classFocus: controller.NewClassFocusController(s.quest),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
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
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("talent-insight", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
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

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
