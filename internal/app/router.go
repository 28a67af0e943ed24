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

	// Public routes, no login required.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated student/common routes.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/courses", c.course.ListCourses)
		authGroup.GET("/courses/:id/assignments", c.assignment.GetCatalog)
		authGroup.GET("/courses/:id/assignments/watch", c.assignment.WatchCatalog)
		authGroup.GET("/courses/:id/content", c.content.ListContent)
		authGroup.GET("/me/homework", c.tracker.GetMyHomework)
		authGroup.GET("/me/grades", c.grade.GetMyGrades)
	}

	// Admin routes.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/courses", c.course.CreateCourse)
		admin.PUT("/courses/:id", c.course.UpdateCourse)
		admin.DELETE("/courses/:id", c.course.DeleteCourse)

		admin.POST("/courses/:id/assignments", c.assignment.CreateAssignment)
		admin.PUT("/assignments/:assignmentId", c.assignment.UpdateAssignment)
		admin.DELETE("/assignments/:assignmentId", c.assignment.DeleteAssignment)

		admin.POST("/courses/:id/content", c.content.CreateContent)
		admin.PUT("/content/:contentId", c.content.UpdateContent)
		admin.DELETE("/content/:contentId", c.content.DeleteContent)

		admin.POST("/students", c.student.CreateStudent)
		admin.GET("/students", c.student.ListStudents)
		admin.PATCH("/students/:studentId", c.student.UpdateEnrollment)

		admin.POST("/grades", c.grade.RecordGrade)
		admin.DELETE("/grades/:gradeId", c.grade.DeleteGrade)

		// Homework tracker.
		admin.GET("/tracker", c.tracker.GetTrackerView)
		admin.PUT("/tracker/status", c.tracker.StageStatus)
		admin.DELETE("/tracker/session", c.tracker.DiscardSession)
		admin.POST("/tracker/commit", c.tracker.Commit)
		admin.GET("/tracker/report", c.tracker.ExportReport)
	}
}
