package handler

import (
	"net/http"
	"time"

	"github.com/pbw78/Rentalmasters/internal/model"
	"github.com/pbw78/Rentalmasters/internal/stats"
	"github.com/pbw78/Rentalmasters/pkg/database"
	"github.com/pbw78/Rentalmasters/pkg/logger"
	"github.com/pbw78/Rentalmasters/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardStats computes the dashboard statistics from the full current
// entity collections on every request. No incremental state is kept.
func DashboardStats(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DashboardRequestsCounter.Inc()

	db := database.GetDB()
	defer prometheus.TrackDBOperation("query")(time.Now())

	var properties []model.Property
	if err := db.Find(&properties).Error; err != nil {
		log.Error("Failed to load properties", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute statistics"})
	}

	var tenants []model.Tenant
	if err := db.Find(&tenants).Error; err != nil {
		log.Error("Failed to load tenants", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute statistics"})
	}

	var payments []model.Payment
	if err := db.Find(&payments).Error; err != nil {
		log.Error("Failed to load payments", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute statistics"})
	}

	var requests []model.ServiceRequest
	if err := db.Find(&requests).Error; err != nil {
		log.Error("Failed to load service requests", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute statistics"})
	}

	dashboard := stats.ComputeDashboard(properties, tenants, payments, requests, time.Now())

	log.Info("Dashboard statistics computed",
		zap.Int("total_properties", dashboard.TotalProperties),
		zap.Int("active_tenants", dashboard.ActiveTenants),
		zap.Float64("occupancy_rate", dashboard.OccupancyRate))
	return c.JSON(http.StatusOK, dashboard)
}
