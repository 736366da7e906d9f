package router

import (
	"net/http"

	"github.com/lathees-dev/Budget-App/internal/config"
	"github.com/lathees-dev/Budget-App/internal/handler"
	"github.com/lathees-dev/Budget-App/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, pages and API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtSecret := cfg.JWT.Secret

	// Browser pages. The guard checks only the token itself and decides
	// between rendering and redirecting; data access is authorized per
	// request by the API middleware below.
	pages := r.Group("", middleware.PageGuard(jwtSecret))
	pages.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"title": "Budget Tracker",
		})
	})
	pages.GET("/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title": "Budget Tracker - Login",
		})
	})
	pages.GET("/signup", func(c *gin.Context) {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"title": "Budget Tracker - Sign up",
		})
	})

	// ====== API ======
	api := r.Group("/api")

	// auth endpoints reachable regardless of session state
	authHandler := handler.NewAuthHandler(db, jwtSecret)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// everything below requires a resolvable identity
	protected := api.Group("", middleware.AuthMiddleware(jwtSecret, db))

	protected.GET("/auth/user", authHandler.CurrentUser)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.List)
	protected.POST("/categories", categoryHandler.Create)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(db)
	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	summaryHandler := handler.NewSummaryHandler(db)
	protected.GET("/summary", summaryHandler.Monthly)

	return r
}
