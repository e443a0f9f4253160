package routes

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/estatecore/backend/internal/app/controllers"
	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/metrics"
	"github.com/estatecore/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	agentController *controllers.AgentController,
	propertyController *controllers.PropertyController,
	appointmentController *controllers.AppointmentController,
	authMiddleware *middleware.AuthMiddleware,
	staticDir string,
) {
	// Uploaded pictures and property images are served directly
	router.Static("/images", filepath.Join(staticDir, "images"))
	router.Static("/uploads", filepath.Join(staticDir, "uploads"))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Auth routes (public) ---
	user := api.Group("/user")
	{
		user.POST("/add-user", userController.Register)
		user.GET("/verify-email/:token", userController.VerifyEmail)
		user.POST("/login", userController.Login)
		user.POST("/forgot-password", userController.ForgotPassword)
		user.POST("/reset-password/:token", userController.ResetPassword)
		user.GET("/profile", authMiddleware.JWTAuth(), userController.Profile)
	}

	// --- Agent routes ---
	agents := api.Group("/agents")
	{
		agents.GET("", agentController.List)
		agents.GET("/:id", agentController.Get)

		agentsAdmin := agents.Group("")
		agentsAdmin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
		{
			agentsAdmin.POST("", agentController.Create)
			agentsAdmin.PUT("/:id", agentController.Update)
			agentsAdmin.DELETE("/:id", agentController.Delete)
		}
	}

	// --- Property routes ---
	properties := api.Group("/properties")
	{
		properties.GET("", propertyController.List)
		properties.GET("/search", propertyController.Search)
		properties.GET("/:id", propertyController.Get)

		propertiesAdmin := properties.Group("")
		propertiesAdmin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
		{
			propertiesAdmin.POST("", propertyController.Create)
			propertiesAdmin.PUT("/:id", propertyController.Update)
			propertiesAdmin.DELETE("/:id", propertyController.Delete)
		}
	}

	// --- Appointment routes ---
	appointments := api.Group("/appointments")
	{
		// Visitors can book without an account
		appointments.POST("", appointmentController.Create)

		appointmentsAuth := appointments.Group("")
		appointmentsAuth.Use(authMiddleware.JWTAuth())
		{
			appointmentsAuth.GET("/my-appointments", appointmentController.ListMine)
			appointmentsAuth.GET("/:id", appointmentController.Get)
			appointmentsAuth.PATCH("/:id", appointmentController.UpdateStatus)
			appointmentsAuth.DELETE("/:id", appointmentController.Delete)

			appointmentsAdmin := appointmentsAuth.Group("")
			appointmentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				appointmentsAdmin.GET("", appointmentController.List)
			}
		}
	}
}
