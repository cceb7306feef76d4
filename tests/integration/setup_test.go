package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"moneta/internal/handlers"
	"moneta/internal/logger"
	"moneta/internal/middleware"
	"moneta/internal/models"
	"moneta/internal/report"
	"moneta/internal/services"
	"moneta/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	// Token generation reads the secret from configuration, which has no
	// test fallback.
	os.Setenv("JWT_SECRET", "integration-test-secret")
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.BudgetCategory{},
		&models.FixedExpense{},
		&models.Month{},
		&models.MonthlyBudget{},
		&models.IncomeEntry{},
		&models.Item{},
		&models.MonthSnapshot{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	fixedExpenseService := services.NewFixedExpenseService(db)
	monthService := services.NewMonthService(db, report.NewPDFRenderer())
	incomeService := services.NewIncomeService(db, monthService)
	itemService := services.NewItemService(db, monthService)
	budgetService := services.NewBudgetService(db, monthService)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	monthHandler := handlers.NewMonthHandler(monthService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	fixedExpenseHandler := handlers.NewFixedExpenseHandler(fixedExpenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	itemHandler := handlers.NewItemHandler(itemService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	savingsHandler := handlers.NewSavingsHandler(userService, auditService)
	healthHandler := handlers.NewHealthHandler(db)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	api.GET("/health", healthHandler.Check)

	// Public auth routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.GetMe)

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

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	fixedExpenses := protected.Group("/fixed-expenses")
	fixedExpenses.POST("", fixedExpenseHandler.CreateFixedExpense)
	fixedExpenses.GET("", fixedExpenseHandler.GetFixedExpenses)
	fixedExpenses.PUT("/:id", fixedExpenseHandler.UpdateFixedExpense)
	fixedExpenses.DELETE("/:id", fixedExpenseHandler.DeleteFixedExpense)

	protected.GET("/savings", savingsHandler.GetSavings)
	protected.PUT("/savings", savingsHandler.UpdateSavings)
	protected.GET("/roth-ira", savingsHandler.GetRothIRA)
	protected.PUT("/roth-ira", savingsHandler.UpdateRothIRA)
	protected.GET("/retirement-savings", savingsHandler.GetRetirementSavings)
	protected.PUT("/retirement-savings", savingsHandler.UpdateRetirementSavings)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// createCategory creates a budget category template and returns its ID.
func (app *testApp) createCategory(t *testing.T, token, label string, defaultAmount float64) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"label":%q,"default_amount":%g}`, label, defaultAmount)
	rec := app.request("POST", "/api/categories", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category := result["category"].(map[string]interface{})
	return category["id"].(float64)
}

// currentMonth fetches or creates the caller's current month and returns its ID.
func (app *testApp) currentMonth(t *testing.T, token string) float64 {
	t.Helper()
	rec := app.request("GET", "/api/months/current", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get current month failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	month := result["month"].(map[string]interface{})
	return month["id"].(float64)
}
