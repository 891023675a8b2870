// Package server assembles the HTTP router: middleware order, public and
// gated routes, and the embedded templates and assets.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pennywise/internal/handlers"
	"pennywise/internal/middleware"
	"pennywise/internal/services"
	"pennywise/internal/session"
	"pennywise/internal/validator"
	"pennywise/web"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	DB           *gorm.DB
	SessionStore sessions.Store
}

// NewRouter wires services, handlers and middleware into a gin engine.
func NewRouter(deps Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	static, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("failed to mount static assets: %w", err)
	}

	validator.Register()

	// Initialize services
	userService := services.NewUserService(deps.DB)
	categoryService := services.NewCategoryService(deps.DB)
	transactionService := services.NewTransactionService(deps.DB, categoryService)
	dashboardService := services.NewDashboardService(deps.DB, categoryService, transactionService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(tmpl)

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.SecurityHeaders(middleware.DefaultHeadersConfig()))
	router.Use(session.Middleware(deps.SessionStore))
	router.Use(middleware.ErrorHandler())

	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.NotFound())

	router.StaticFS("/static", static)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Public routes
	router.GET("/", authHandler.Landing)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)

	// Gated routes
	protected := router.Group("/")
	protected.Use(middleware.RequireUser())

	protected.GET("/logout", authHandler.Logout)
	protected.GET("/dashboard", dashboardHandler.ShowDashboard)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.POST("/update/:id", categoryHandler.UpdateCategory)
	categories.POST("/delete/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/delete/:id", transactionHandler.DeleteTransaction)

	return router, nil
}
