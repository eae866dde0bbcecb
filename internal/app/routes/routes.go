package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/placementhub/internal/app/controllers"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	hodController *controllers.HODController,
	tpoController *controllers.TPOController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/departments", authController.GetDepartments)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Notification routes (any authenticated role)
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/unread-count", notificationController.UnreadCount)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
		}

		// Student routes
		student := authenticated.Group("/student")
		student.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			student.GET("/profile", studentController.GetProfile)
			student.PUT("/profile", studentController.UpdateProfile)
			student.POST("/resume", studentController.UploadResume)
			student.GET("/drives", studentController.ListDrives)
			student.GET("/drives/:id", studentController.GetDrive)
			student.GET("/drives/:id/eligibility", studentController.CheckEligibility)
			student.POST("/drives/:id/apply", studentController.Apply)
			student.GET("/applications", studentController.MyApplications)
			student.GET("/stats", studentController.GetStats)
		}

		// Department head routes
		hod := authenticated.Group("/hod")
		hod.Use(authMiddleware.RoleRequired(string(models.RoleHOD)))
		{
			hod.GET("/students", hodController.ListStudents)
			hod.PUT("/students/bulk-approve", hodController.BulkApproveStudents)
			hod.PUT("/students/:id/approve", hodController.ApproveStudent)
			hod.PUT("/students/:id/reject", hodController.RejectStudent)
			hod.GET("/stats", hodController.GetStats)
		}

		// Placement office routes
		tpo := authenticated.Group("/tpo")
		tpo.Use(authMiddleware.RoleRequired(string(models.RoleTPO)))
		{
			tpo.POST("/companies", tpoController.CreateCompany)
			tpo.GET("/companies", tpoController.ListCompanies)
			tpo.GET("/companies/:id", tpoController.GetCompany)
			tpo.PUT("/companies/:id", tpoController.UpdateCompany)
			tpo.DELETE("/companies/:id", tpoController.DeleteCompany)

			tpo.POST("/drives", tpoController.CreateDrive)
			tpo.GET("/drives", tpoController.ListDrives)
			tpo.GET("/drives/:id", tpoController.GetDrive)
			tpo.PUT("/drives/:id", tpoController.UpdateDrive)
			tpo.DELETE("/drives/:id", tpoController.DeleteDrive)
			tpo.GET("/drives/:id/applications", tpoController.ListDriveApplications)
			tpo.GET("/drives/:id/rounds", tpoController.GetDriveRounds)

			tpo.PUT("/applications/bulk-status", tpoController.BulkUpdateApplications)
			tpo.GET("/applications/:id", tpoController.GetApplication)
			tpo.PUT("/applications/:id/status", tpoController.UpdateApplicationStatus)
			tpo.PUT("/applications/:id/promote", tpoController.PromoteApplication)
			tpo.PUT("/applications/:id/reject", tpoController.RejectApplication)

			tpo.GET("/stats", tpoController.GetStats)
			tpo.GET("/analytics", tpoController.GetAnalytics)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
