package routes

import (
	"silab-api/controllers"
	"silab-api/middleware"
	"silab-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/forgot-password", controllers.ForgotPassword)
			public.POST("/reset-password", controllers.ResetPassword)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "SILAB API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Borrowing workflow
			borrowings := protected.Group("/borrowings")
			{
				borrowings.GET("", controllers.ListBorrowings)
				borrowings.GET("/:id", controllers.GetBorrowing)

				// Any authenticated user may submit a request for a lab
				borrowings.POST("", controllers.CreateBorrowing)

				// Approvals: instructors decide step 1, lab staff step 2
				borrowings.POST("/:id/decision",
					middleware.RequireRole(models.RoleInstructor, models.RoleLabStaff),
					controllers.DecideBorrowing)

				// Handover and return are lab-staff operations
				borrowings.POST("/:id/handover",
					middleware.RequireRole(models.RoleLabStaff, models.RoleAdmin),
					controllers.HandoverBorrowing)
				borrowings.POST("/:id/return",
					middleware.RequireRole(models.RoleLabStaff, models.RoleAdmin),
					controllers.ReturnBorrowing)
			}

			// Approval matrix (admin only for writes)
			matrices := protected.Group("/approval-matrices")
			{
				matrices.GET("", controllers.ListApprovalMatrices)
				matrices.GET("/:labId", controllers.GetApprovalMatrix)
				matrices.POST("", middleware.RequireRole(models.RoleAdmin), controllers.SaveApprovalMatrix)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("/summary", controllers.GetNotificationSummary)
				notifications.POST("/mark-read", controllers.MarkNotificationsRead)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}

			// Equipment catalog
			equipments := protected.Group("/equipments")
			{
				equipments.GET("", controllers.ListEquipments)
				equipments.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleLabStaff), controllers.CreateEquipment)
				equipments.POST("/:id/units", middleware.RequireRole(models.RoleAdmin, models.RoleLabStaff), controllers.AddEquipmentUnit)
				equipments.PUT("/units/:unitId/status", middleware.RequireRole(models.RoleAdmin, models.RoleLabStaff), controllers.UpdateEquipmentUnitStatus)
			}

			// Consumables
			consumables := protected.Group("/consumables")
			{
				consumables.GET("", controllers.ListConsumables)
				consumables.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleLabStaff), controllers.CreateConsumable)
				consumables.POST("/:id/adjust", middleware.RequireRole(models.RoleAdmin, models.RoleLabStaff), controllers.AdjustConsumableStock)
			}

			// Labs, membership, and usage logs
			labs := protected.Group("/labs")
			{
				labs.GET("", controllers.ListLabs)
				labs.GET("/:id/members", controllers.GetLabMembers)
				labs.POST("/:id/members", middleware.RequireRole(models.RoleAdmin), controllers.AssignLabMember)
				labs.DELETE("/:id/members/:userId", middleware.RequireRole(models.RoleAdmin), controllers.RemoveLabMember)
				labs.GET("/:id/usage-logs", controllers.ListLabUsageLogs)
			}
			usage := protected.Group("/usage-logs")
			{
				usage.POST("", controllers.CreateLabUsageLog)
				usage.PUT("/:id/end", controllers.EndLabUsageLog)
			}
		}
	}
}
