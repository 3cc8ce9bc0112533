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

// RevenueTrend returns the monthly revenue trend over the last 6 months
// with payment data
func RevenueTrend(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ReportRequestsCounter.WithLabelValues("revenue").Inc()

	var payments []model.Payment
	defer prometheus.TrackDBOperation("query")(time.Now())
	if err := database.GetDB().Find(&payments).Error; err != nil {
		log.Error("Failed to load payments", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute revenue trend"})
	}

	trend := stats.MonthlyRevenueTrend(payments)
	log.Info("Revenue trend computed", zap.Int("months", len(trend)))
	return c.JSON(http.StatusOK, trend)
}

// PropertyStatusReport returns the count of properties per status
func PropertyStatusReport(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ReportRequestsCounter.WithLabelValues("property-status").Inc()

	var properties []model.Property
	defer prometheus.TrackDBOperation("query")(time.Now())
	if err := database.GetDB().Find(&properties).Error; err != nil {
		log.Error("Failed to load properties", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute property distribution"})
	}

	return c.JSON(http.StatusOK, stats.PropertyStatusDistribution(properties))
}

// ServiceStatsReport returns service request counts by status and
// priority plus the total actual cost
func ServiceStatsReport(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ReportRequestsCounter.WithLabelValues("service-stats").Inc()

	var requests []model.ServiceRequest
	defer prometheus.TrackDBOperation("query")(time.Now())
	if err := database.GetDB().Find(&requests).Error; err != nil {
		log.Error("Failed to load service requests", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute service statistics"})
	}

	return c.JSON(http.StatusOK, stats.ComputeServiceStats(requests))
}

// ExpiringContractsReport returns active contracts ending within the
// next 90 days, enriched with their property and tenant
func ExpiringContractsReport(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ReportRequestsCounter.WithLabelValues("expiring-contracts").Inc()

	var contracts []model.Contract
	defer prometheus.TrackDBOperation("query")(time.Now())
	if err := database.GetDB().Preload("Property").Preload("Tenant").Find(&contracts).Error; err != nil {
		log.Error("Failed to load contracts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute expiring contracts"})
	}

	expiring := stats.ExpiringContracts(contracts, time.Now())
	log.Info("Expiring contracts computed", zap.Int("count", len(expiring)))
	return c.JSON(http.StatusOK, expiring)
}

// FinancialSummaryReport returns collected, pending and overdue payment
// totals plus total service costs
func FinancialSummaryReport(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.ReportRequestsCounter.WithLabelValues("financial-summary").Inc()

	db := database.GetDB()
	defer prometheus.TrackDBOperation("query")(time.Now())

	var payments []model.Payment
	if err := db.Find(&payments).Error; err != nil {
		log.Error("Failed to load payments", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute financial summary"})
	}

	var requests []model.ServiceRequest
	if err := db.Find(&requests).Error; err != nil {
		log.Error("Failed to load service requests", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to compute financial summary"})
	}

	return c.JSON(http.StatusOK, stats.ComputeFinancialSummary(payments, requests, time.Now()))
}
