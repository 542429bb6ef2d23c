package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// Reading the catalog is open to every signed-in user
		authGroup.GET("/courses", c.course.List)
		authGroup.GET("/courses/:id", c.course.Get)
		authGroup.GET("/courses/:id/lessons", c.course.ListLessons)
		authGroup.GET("/content", c.content.List)
		authGroup.GET("/content/:id", c.content.Get)
		authGroup.GET("/evaluations", c.evaluation.List)
		authGroup.GET("/evaluations/:id", c.evaluation.Get)
		authGroup.GET("/evaluations/:id/questions", c.question.List)
		authGroup.POST("/evaluations/:id/attempts", c.evaluation.StartAttempt)

		// Authoring requires the teacher role
		teacherGroup := authGroup.Group("")
		teacherGroup.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacherGroup.POST("/courses", c.course.Create)
			teacherGroup.POST("/courses/:id/lessons", c.course.AddLesson)

			teacherGroup.POST("/content/upload", c.content.Upload)
			teacherGroup.DELETE("/content/:id", c.content.Delete)

			teacherGroup.POST("/evaluations", c.evaluation.Create)
			teacherGroup.PUT("/evaluations/:id", c.evaluation.Update)
			teacherGroup.DELETE("/evaluations/:id", c.evaluation.Delete)

			teacherGroup.POST("/evaluations/:id/questions", c.question.Create)
			teacherGroup.PUT("/evaluations/:id/questions/reorder", c.question.Reorder)
			teacherGroup.GET("/questions/:questionId", c.question.Get)
			teacherGroup.PUT("/questions/:questionId", c.question.Update)
			teacherGroup.DELETE("/questions/:questionId", c.question.Delete)
			teacherGroup.POST("/questions/:questionId/publish", c.question.Publish)
			teacherGroup.POST("/questions/:questionId/unpublish", c.question.Unpublish)
			teacherGroup.GET("/questions/:questionId/history", c.question.GetHistory)
		}
	}
}
