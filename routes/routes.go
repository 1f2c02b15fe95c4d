// File: /routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fitlink-api/config"
	"fitlink-api/controllers"
	"fitlink-api/middleware"
	"fitlink-api/repositories"
	"fitlink-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, storageService *services.StorageService) {
	// Services
	achievementService := services.NewAchievementService(emailService)
	activityService := services.NewActivityService(db, achievementService)
	activityRepo := repositories.NewActivityRepository(db)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	activityController := controllers.NewActivityController(activityService, activityRepo)
	userController := controllers.NewUserController(db, storageService)
	uploadController := controllers.NewUploadController(storageService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// Activity routes
		activities := protected.Group("/activities")
		{
			activities.GET("", activityController.GetActivities)
			activities.GET("/all", activityController.GetAllActivities)
			activities.GET("/types", activityController.GetActivityTypes)
			activities.POST("", activityController.CreateActivity)
			activities.GET("/:id", activityController.GetActivity)
			activities.PUT("/:id/update", activityController.UpdateActivity)
			activities.DELETE("/:id/delete", activityController.DeleteActivity)
			activities.POST("/:id/subscribe", activityController.Subscribe)
			activities.PUT("/:id/approve", activityController.Approve)
			activities.PUT("/:id/check-in", activityController.CheckIn)
			activities.PUT("/:id/conclude", activityController.Conclude)
			activities.DELETE("/:id/unsubscribe", activityController.Unsubscribe)
			activities.GET("/user/creator", activityController.GetCreatedActivities)
			activities.GET("/user/participant", activityController.GetSubscribedActivities)
		}

		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.POST("/upload-avatar", userController.UploadAvatar)
			users.GET("/preferences", userController.GetPreferences)
			users.PUT("/preferences/define", userController.DefinePreferences)
			users.GET("/achievements", userController.GetAchievements)
		}

		// Upload routes
		uploads := protected.Group("/uploads")
		{
			uploads.POST("/image", uploadController.UploadImage)
		}
	}
}

// SetupCORS allows the web and mobile clients to call the API from any
// origin.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
