package app

import (
	"elearn_backend/docs"
	"elearn_backend/internal/config"
	"elearn_backend/internal/middleware"
	"elearn_backend/internal/model"

	"elearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerStudentRoutes(router, c, repos, cfg)
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/token/refresh", c.auth.Refresh)
	}
}

func (a *App) registerStudentRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/courses", c.content.ListCourses)

		authGroup.POST("/progress/mark_lesson_complete", c.progress.MarkLessonComplete)

		exams := authGroup.Group("/exams")
		{
			exams.GET("/active_list", c.exam.ListActive)
			exams.GET("/:id/start", c.exam.Start)
			exams.POST("/:id/submit", c.exam.Submit)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/courses", c.authoring.CreateCourse)
		admin.PUT("/courses/:id", c.authoring.UpdateCourse)
		admin.DELETE("/courses/:id", c.authoring.DeleteCourse)

		admin.POST("/modules", c.authoring.CreateModule)
		admin.PUT("/modules/:id", c.authoring.UpdateModule)
		admin.DELETE("/modules/:id", c.authoring.DeleteModule)

		admin.POST("/lessons", c.authoring.CreateLesson)
		admin.PUT("/lessons/:id", c.authoring.UpdateLesson)
		admin.DELETE("/lessons/:id", c.authoring.DeleteLesson)

		admin.POST("/exams", c.authoring.CreateExam)
		admin.PUT("/exams/:id", c.authoring.UpdateExam)
		admin.DELETE("/exams/:id", c.authoring.DeleteExam)

		admin.POST("/questions", c.authoring.CreateQuestion)
		admin.PUT("/questions/:id", c.authoring.UpdateQuestion)
		admin.DELETE("/questions/:id", c.authoring.DeleteQuestion)
	}
}
