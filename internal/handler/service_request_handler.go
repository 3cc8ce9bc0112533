package handler

import (
	"net/http"
	"time"

	"github.com/pbw78/Rentalmasters/internal/model"
	"github.com/pbw78/Rentalmasters/pkg/database"
	"github.com/pbw78/Rentalmasters/pkg/logger"
	"github.com/pbw78/Rentalmasters/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ServiceRequestRequest defines the structure for service request
// creation/update requests
type ServiceRequestRequest struct {
	PropertyID    uint     `json:"property_id"`
	TenantID      *uint    `json:"tenant_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Priority      string   `json:"priority"`
	Status        string   `json:"status"`
	EstimatedCost *float64 `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost"`
	AssignedTo    string   `json:"assigned_to"`
	ScheduledDate *string  `json:"scheduled_date"`
	CompletedDate *string  `json:"completed_date"`
}

func (r *ServiceRequestRequest) validate() string {
	if r.PropertyID == 0 {
		return "property_id is required"
	}
	if r.Title == "" {
		return "title is required"
	}
	if r.Description == "" {
		return "description is required"
	}
	if r.Category != "" && !model.ValidCategory(r.Category) {
		return "category must be one of plumbing, electrical, heating, general"
	}
	if r.Priority != "" && !model.ValidPriority(r.Priority) {
		return "priority must be one of low, medium, high, urgent"
	}
	if r.Status != "" && !model.ValidRequestStatus(r.Status) {
		return "status must be one of open, in_progress, completed, cancelled"
	}
	if r.EstimatedCost != nil && *r.EstimatedCost < 0 {
		return "estimated_cost must be non-negative"
	}
	if r.ActualCost != nil && *r.ActualCost < 0 {
		return "actual_cost must be non-negative"
	}
	if r.ScheduledDate != nil && !validDate(*r.ScheduledDate) {
		return "scheduled_date must be a YYYY-MM-DD date"
	}
	if r.CompletedDate != nil && !validDate(*r.CompletedDate) {
		return "completed_date must be a YYYY-MM-DD date"
	}
	return ""
}

func (r *ServiceRequestRequest) apply(sr *model.ServiceRequest) {
	sr.PropertyID = r.PropertyID
	sr.TenantID = r.TenantID
	sr.Title = r.Title
	sr.Description = r.Description
	sr.Category = r.Category
	if r.Priority != "" {
		sr.Priority = r.Priority
	}
	if r.Status != "" {
		sr.Status = r.Status
	}
	if r.EstimatedCost != nil {
		cost := round2(*r.EstimatedCost)
		sr.EstimatedCost = &cost
	} else {
		sr.EstimatedCost = nil
	}
	if r.ActualCost != nil {
		cost := round2(*r.ActualCost)
		sr.ActualCost = &cost
	} else {
		sr.ActualCost = nil
	}
	sr.AssignedTo = r.AssignedTo
	sr.ScheduledDate = r.ScheduledDate
	sr.CompletedDate = r.CompletedDate
}

// checkServiceRequestReferences verifies the referenced property exists
// and, when a tenant is given, that it exists too
func checkServiceRequestReferences(propertyID uint, tenantID *uint) string {
	var count int64
	database.GetDB().Model(&model.Property{}).Where("id = ?", propertyID).Count(&count)
	if count == 0 {
		return "referenced property does not exist"
	}
	if tenantID != nil {
		database.GetDB().Model(&model.Tenant{}).Where("id = ?", *tenantID).Count(&count)
		if count == 0 {
			return "referenced tenant does not exist"
		}
	}
	return ""
}

// ListServiceRequests handles retrieving all service requests enriched
// with their property and optional tenant
func ListServiceRequests(c echo.Context) error {
	log := logger.FromContext(c)

	var requests []model.ServiceRequest

	query := database.GetDB().Preload("Property").Preload("Tenant")

	// Filter by status if specified
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	// Filter by priority if specified
	if priority := c.QueryParam("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	result := query.Find(&requests)
	if result.Error != nil {
		log.Error("Failed to list service requests", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve service requests",
		})
	}

	log.Info("Service requests retrieved successfully", zap.Int("count", len(requests)))
	return c.JSON(http.StatusOK, requests)
}

// GetServiceRequest handles retrieving a single service request by ID
func GetServiceRequest(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var request model.ServiceRequest
	result := database.GetDB().Preload("Property").Preload("Tenant").First(&request, id)
	if result.Error != nil {
		log.Warn("Service request not found", zap.String("request_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Service request not found",
		})
	}

	return c.JSON(http.StatusOK, request)
}

// CreateServiceRequest handles creating a new service request. The
// referenced property must exist; the tenant is optional.
func CreateServiceRequest(c echo.Context) error {
	log := logger.FromContext(c)

	var req ServiceRequestRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Service request validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if msg := checkServiceRequestReferences(req.PropertyID, req.TenantID); msg != "" {
		log.Warn("Service request reference check failed",
			zap.Uint("property_id", req.PropertyID),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	request := model.ServiceRequest{
		Priority: model.PriorityMedium,
		Status:   model.RequestOpen,
	}
	req.apply(&request)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := database.GetDB().Create(&request)
	if result.Error != nil {
		log.Error("Failed to create service request",
			zap.Uint("property_id", req.PropertyID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create service request",
		})
	}

	prometheus.RecordEntityOperation("service_request", "create")
	log.Info("Service request created successfully",
		zap.Uint("request_id", request.ID),
		zap.Uint("property_id", request.PropertyID),
		zap.String("priority", request.Priority))
	return c.JSON(http.StatusCreated, request)
}

// UpdateServiceRequest handles updating an existing service request
func UpdateServiceRequest(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ServiceRequestRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("request_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var request model.ServiceRequest
	result := database.GetDB().First(&request, id)
	if result.Error != nil {
		log.Warn("Service request not found for update", zap.String("request_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Service request not found",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Service request validation failed",
			zap.String("request_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if msg := checkServiceRequestReferences(req.PropertyID, req.TenantID); msg != "" {
		log.Warn("Service request reference check failed",
			zap.String("request_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	req.apply(&request)

	defer prometheus.TrackDBOperation("update")(time.Now())
	result = database.GetDB().Save(&request)
	if result.Error != nil {
		log.Error("Failed to update service request",
			zap.String("request_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update service request",
		})
	}

	prometheus.RecordEntityOperation("service_request", "update")
	log.Info("Service request updated successfully",
		zap.String("request_id", id),
		zap.String("status", request.Status))
	return c.JSON(http.StatusOK, request)
}

// DeleteServiceRequest handles deleting a service request
func DeleteServiceRequest(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Delete(&model.ServiceRequest{}, id)
	if result.Error != nil {
		log.Error("Failed to delete service request",
			zap.String("request_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete service request",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Service request not found for deletion", zap.String("request_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Service request not found",
		})
	}

	prometheus.RecordEntityOperation("service_request", "delete")
	log.Info("Service request deleted successfully", zap.String("request_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Service request deleted successfully",
	})
}
