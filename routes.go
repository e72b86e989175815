package main

import (
	"taskhub/backend/internal/config"
	"taskhub/backend/internal/handlers"
	"taskhub/backend/internal/middleware"
	"taskhub/backend/internal/ratelimit"
	"taskhub/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, cfg *config.Config, limiter ratelimit.Limiter) *gin.Engine {
	authService := services.NewAuthService(cfg.Auth)
	taskService := services.NewTaskService()
	categoryService := services.NewCategoryService()
	userService := services.NewUserService(cfg.Auth.BCryptCost)

	authHandler := handlers.NewAuthHandler(db, authService)
	taskHandler := handlers.NewTaskHandler(db, taskService)
	categoryHandler := handlers.NewCategoryHandler(db, categoryService)
	userHandler := handlers.NewUserHandler(db, userService)
	healthHandler := handlers.NewHealthHandler(db)

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(cors.Default())
	if cfg.RateLimit.Enabled && limiter != nil {
		router.Use(middleware.RateLimit(limiter))
	}

	requireAuth := middleware.RequireAuth(db, authService)
	optionalAuth := middleware.OptionalAuth(db, authService)

	router.GET("/health", healthHandler.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	tasks := router.Group("/tasks", requireAuth)
	{
		tasks.GET("", taskHandler.GetTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/stats", taskHandler.GetTaskStats)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	categories := router.Group("/categories")
	{
		// reads allow anonymous access to the global default categories
		categories.GET("", optionalAuth, categoryHandler.GetCategories)
		categories.GET("/:id", optionalAuth, categoryHandler.GetCategory)
		categories.POST("", requireAuth, categoryHandler.CreateCategory)
		categories.PUT("/:id", requireAuth, categoryHandler.UpdateCategory)
		categories.DELETE("/:id", requireAuth, categoryHandler.DeleteCategory)
		categories.GET("/:id/tasks", requireAuth, categoryHandler.GetCategoryTasks)
	}

	users := router.Group("/users", requireAuth)
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.PUT("/password", userHandler.ChangePassword)
		users.DELETE("/account", userHandler.DeleteAccount)
		users.GET("/dashboard", userHandler.GetDashboard)
	}

	return router
}
