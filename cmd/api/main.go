package main

import (
	"fmt"
	"moneta/internal/config"
	"moneta/internal/database"
	"moneta/internal/handlers"
	"moneta/internal/logger"
	"moneta/internal/middleware"
	"moneta/internal/report"
	"moneta/internal/services"
	"moneta/internal/validator"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "moneta/internal/docs" // Import swagger docs
)

// @title           Moneta API
// @version         1.0
// @description     Moneta is a personal budgeting API for planning monthly budgets, tracking income and spending, and archiving closed months as PDF reports.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding types
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	fixedExpenseService := services.NewFixedExpenseService(db)
	monthService := services.NewMonthService(db, report.NewPDFRenderer())
	incomeService := services.NewIncomeService(db, monthService)
	itemService := services.NewItemService(db, monthService)
	budgetService := services.NewBudgetService(db, monthService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	monthHandler := handlers.NewMonthHandler(monthService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	fixedExpenseHandler := handlers.NewFixedExpenseHandler(fixedExpenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	itemHandler := handlers.NewItemHandler(itemService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	savingsHandler := handlers.NewSavingsHandler(userService, auditService)
	healthHandler := handlers.NewHealthHandler(db)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API group
	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", healthHandler.Check)

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/auth/me", authHandler.GetMe)

	// Month routes, with month-scoped income, budget and item routes
	months := protected.Group("/months")
	months.GET("", monthHandler.ListMonths)
	months.GET("/current", monthHandler.GetCurrentMonth)
	months.GET("/:id", monthHandler.GetMonth)
	months.POST("/:id/close", monthHandler.CloseMonth)
	months.GET("/:id/pdf", monthHandler.GetMonthPDF)
	months.GET("/:id/income", incomeHandler.GetIncomeEntries)
	months.POST("/:id/income", incomeHandler.CreateIncomeEntry)
	months.PUT("/:id/income/:incomeID", incomeHandler.UpdateIncomeEntry)
	months.DELETE("/:id/income/:incomeID", incomeHandler.DeleteIncomeEntry)
	months.GET("/:id/budgets", budgetHandler.GetBudgets)
	months.PUT("/:id/budgets/:budgetID", budgetHandler.UpdateBudget)
	months.GET("/:id/items", itemHandler.GetItems)
	months.POST("/:id/items", itemHandler.CreateItem)
	months.PUT("/:id/items/:itemID", itemHandler.UpdateItem)
	months.DELETE("/:id/items/:itemID", itemHandler.DeleteItem)

	// Category template routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Fixed expense routes
	fixedExpenses := protected.Group("/fixed-expenses")
	fixedExpenses.POST("", fixedExpenseHandler.CreateFixedExpense)
	fixedExpenses.GET("", fixedExpenseHandler.GetFixedExpenses)
	fixedExpenses.PUT("/:id", fixedExpenseHandler.UpdateFixedExpense)
	fixedExpenses.DELETE("/:id", fixedExpenseHandler.DeleteFixedExpense)

	// Long-term balance routes
	protected.GET("/savings", savingsHandler.GetSavings)
	protected.PUT("/savings", savingsHandler.UpdateSavings)
	protected.GET("/roth-ira", savingsHandler.GetRothIRA)
	protected.PUT("/roth-ira", savingsHandler.UpdateRothIRA)
	protected.GET("/retirement-savings", savingsHandler.GetRetirementSavings)
	protected.PUT("/retirement-savings", savingsHandler.UpdateRetirementSavings)

	log.Infof("Starting Moneta backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
