package main

import (
	"github.com/pbw78/Rentalmasters/internal/handler"
	mid "github.com/pbw78/Rentalmasters/internal/middleware"
	"github.com/pbw78/Rentalmasters/pkg/config"
	"github.com/pbw78/Rentalmasters/pkg/database"
	"github.com/pbw78/Rentalmasters/pkg/jwtutil"
	"github.com/pbw78/Rentalmasters/pkg/logger"
	"github.com/pbw78/Rentalmasters/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; missing file is fine, env vars may be set elsewhere
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting rental-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Seed the demo account
	if err := handler.InitAuthHandler(appConfig); err != nil {
		log.Fatal("Failed to seed demo account", zap.Error(err))
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Authentication endpoints
	e.POST("/api/login", handler.Login)
	e.POST("/api/login/demo", handler.DemoLogin)
	e.POST("/api/register", handler.Register)
	e.POST("/api/logout", handler.Logout)
	e.GET("/api/auth/user", handler.CurrentUser, mid.AuthMiddleware)

	// Property API routes
	propertyAPI := e.Group("/api/properties", mid.AuthMiddleware)
	propertyAPI.GET("", handler.ListProperties)
	propertyAPI.GET("/:id", handler.GetProperty)
	propertyAPI.POST("", handler.CreateProperty)
	propertyAPI.PUT("/:id", handler.UpdateProperty)
	propertyAPI.DELETE("/:id", handler.DeleteProperty)

	// Tenant API routes
	tenantAPI := e.Group("/api/tenants", mid.AuthMiddleware)
	tenantAPI.GET("", handler.ListTenants)
	tenantAPI.GET("/:id", handler.GetTenant)
	tenantAPI.POST("", handler.CreateTenant)
	tenantAPI.PUT("/:id", handler.UpdateTenant)
	tenantAPI.DELETE("/:id", handler.DeleteTenant)

	// Contract API routes
	contractAPI := e.Group("/api/contracts", mid.AuthMiddleware)
	contractAPI.GET("", handler.ListContracts)
	contractAPI.GET("/:id", handler.GetContract)
	contractAPI.POST("", handler.CreateContract)
	contractAPI.PUT("/:id", handler.UpdateContract)
	contractAPI.DELETE("/:id", handler.DeleteContract)

	// Payment API routes
	paymentAPI := e.Group("/api/payments", mid.AuthMiddleware)
	paymentAPI.GET("", handler.ListPayments)
	paymentAPI.GET("/:id", handler.GetPayment)
	paymentAPI.POST("", handler.CreatePayment)
	paymentAPI.PUT("/:id", handler.UpdatePayment)
	paymentAPI.DELETE("/:id", handler.DeletePayment)

	// Service request API routes
	serviceAPI := e.Group("/api/service-requests", mid.AuthMiddleware)
	serviceAPI.GET("", handler.ListServiceRequests)
	serviceAPI.GET("/:id", handler.GetServiceRequest)
	serviceAPI.POST("", handler.CreateServiceRequest)
	serviceAPI.PUT("/:id", handler.UpdateServiceRequest)
	serviceAPI.DELETE("/:id", handler.DeleteServiceRequest)

	// User management API routes - admin only
	userAPI := e.Group("/api/users", mid.AuthMiddleware, mid.RequireAdmin)
	userAPI.GET("", handler.ListUsers)
	userAPI.GET("/:id", handler.GetUser)
	userAPI.PUT("/:id", handler.UpdateUser)
	userAPI.DELETE("/:id", handler.DeleteUser)

	// Dashboard and reports
	e.GET("/api/dashboard/stats", handler.DashboardStats, mid.AuthMiddleware)
	reportAPI := e.Group("/api/reports", mid.AuthMiddleware)
	reportAPI.GET("/revenue", handler.RevenueTrend)
	reportAPI.GET("/property-status", handler.PropertyStatusReport)
	reportAPI.GET("/service-stats", handler.ServiceStatsReport)
	reportAPI.GET("/expiring-contracts", handler.ExpiringContractsReport)
	reportAPI.GET("/financial-summary", handler.FinancialSummaryReport)

	// CSV exports
	e.GET("/api/export/:entity", handler.ExportEntity, mid.AuthMiddleware)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
