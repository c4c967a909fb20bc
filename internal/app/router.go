package app

import (
	"talent_insight_backend/docs"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/middleware"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerGuardianRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/skills/categories", c.skillScore.GetCategories)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/attempts", c.attempt.SubmitAttempt)
		student.GET("/attempts", c.attempt.GetAttempts)
		student.GET("/attempts/:receiptId", c.attempt.GetAttempt)
		student.GET("/skills", c.skillScore.GetSkillScores)
		student.GET("/insights/signals", c.insight.GetTalentSignals)
		student.GET("/insights/observations", c.insight.GetGentleObservations)
		student.GET("/insights/narrative", c.insight.GetProgressNarrative)
		student.POST("/goals/readiness", c.goal.GetGoalReadiness)
		student.POST("/goals/suggestions", c.goal.GetSkillSuggestions)
		student.POST("/quests/recommend", c.quest.RecommendQuests)
	}
}

// registerGuardianRoutes 家长侧按 studentId 查看孩子的洞察视图
func (a *App) registerGuardianRoutes(rg *gin.RouterGroup, c *controllers) {
	guardian := rg.Group("/students/:studentId")
	guardian.Use(middleware.RoleMiddleware(model.Parent, model.Teacher))
	{
		guardian.GET("/skills", c.skillScore.GetSkillScores)
		guardian.GET("/insights/signals", c.insight.GetTalentSignals)
		guardian.GET("/insights/observations", c.insight.GetGentleObservations)
		guardian.GET("/insights/narrative", c.insight.GetProgressNarrative)
		guardian.POST("/insights/export", c.insight.ExportProgressReport)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/quests", c.quest.ListQuests)
		teacher.GET("/quests/:code", c.quest.GetQuest)
		teacher.POST("/quests/recommend-for-student", c.quest.RecommendQuests)
		teacher.POST("/class-focus", c.classFocus.SetClassFocus)
		teacher.GET("/class-focus", c.classFocus.GetActiveClassFocus)
		teacher.DELETE("/class-focus", c.classFocus.ClearClassFocus)
		teacher.GET("/class-focus/history", c.classFocus.GetClassFocusHistory)
	}
}
