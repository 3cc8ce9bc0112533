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

// TenantRequest defines the structure for tenant creation/update requests
type TenantRequest struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	BirthDate        *string `json:"birth_date"`
	NationalID       string  `json:"national_id"`
	EmergencyContact string  `json:"emergency_contact"`
	Notes            string  `json:"notes"`
	IsActive         *bool   `json:"is_active"`
}

func (r *TenantRequest) validate() string {
	if r.FirstName == "" {
		return "first_name is required"
	}
	if r.LastName == "" {
		return "last_name is required"
	}
	if r.BirthDate != nil && !validDate(*r.BirthDate) {
		return "birth_date must be a YYYY-MM-DD date"
	}
	return ""
}

func (r *TenantRequest) apply(t *model.Tenant) {
	t.FirstName = r.FirstName
	t.LastName = r.LastName
	t.Email = r.Email
	t.Phone = r.Phone
	t.BirthDate = r.BirthDate
	t.NationalID = r.NationalID
	t.EmergencyContact = r.EmergencyContact
	t.Notes = r.Notes
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
}

// ListTenants handles retrieving all tenants with optional filtering
func ListTenants(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	var tenants []model.Tenant

	query := db

	// Filter by active flag if specified
	if isActive := c.QueryParam("is_active"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	result := query.Find(&tenants)
	if result.Error != nil {
		log.Error("Failed to list tenants", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve tenants",
		})
	}

	log.Info("Tenants retrieved successfully", zap.Int("count", len(tenants)))
	return c.JSON(http.StatusOK, tenants)
}

// GetTenant handles retrieving a single tenant by ID
func GetTenant(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var tenant model.Tenant
	result := database.GetDB().First(&tenant, id)
	if result.Error != nil {
		log.Warn("Tenant not found", zap.String("tenant_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Tenant not found",
		})
	}

	return c.JSON(http.StatusOK, tenant)
}

// CreateTenant handles creating a new tenant
func CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Tenant validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	// Unique email check, matching the store constraint
	if req.Email != "" {
		var count int64
		database.GetDB().Model(&model.Tenant{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			log.Warn("Tenant with this email already exists", zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Tenant with this email already exists",
			})
		}
	}

	tenant := model.Tenant{IsActive: true}
	req.apply(&tenant)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := database.GetDB().Create(&tenant)
	if result.Error != nil {
		log.Error("Failed to create tenant",
			zap.String("email", req.Email),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create tenant",
		})
	}

	prometheus.RecordEntityOperation("tenant", "create")
	log.Info("Tenant created successfully",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("email", tenant.Email))
	return c.JSON(http.StatusCreated, tenant)
}

// UpdateTenant handles updating an existing tenant
func UpdateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("tenant_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var tenant model.Tenant
	result := database.GetDB().First(&tenant, id)
	if result.Error != nil {
		log.Warn("Tenant not found for update", zap.String("tenant_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Tenant not found",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Tenant validation failed",
			zap.String("tenant_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	// Check if email is changed and already taken
	if req.Email != "" && req.Email != tenant.Email {
		var count int64
		database.GetDB().Model(&model.Tenant{}).Where("email = ? AND id != ?", req.Email, id).Count(&count)
		if count > 0 {
			log.Warn("Tenant with this email already exists", zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Tenant with this email already exists",
			})
		}
	}

	req.apply(&tenant)

	defer prometheus.TrackDBOperation("update")(time.Now())
	result = database.GetDB().Save(&tenant)
	if result.Error != nil {
		log.Error("Failed to update tenant",
			zap.String("tenant_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update tenant",
		})
	}

	prometheus.RecordEntityOperation("tenant", "update")
	log.Info("Tenant updated successfully", zap.String("tenant_id", id))
	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant handles deleting a tenant. Tenants with contracts cannot
// be removed.
func DeleteTenant(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var tenant model.Tenant
	result := database.GetDB().First(&tenant, id)
	if result.Error != nil {
		log.Warn("Tenant not found for deletion", zap.String("tenant_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Tenant not found",
		})
	}

	var contracts int64
	database.GetDB().Model(&model.Contract{}).Where("tenant_id = ?", tenant.ID).Count(&contracts)
	if contracts > 0 {
		log.Warn("Tenant has contracts, delete rejected",
			zap.String("tenant_id", id),
			zap.Int64("contracts", contracts))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Tenant has contracts and cannot be deleted",
		})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result = database.GetDB().Delete(&model.Tenant{}, id)
	if result.Error != nil {
		log.Error("Failed to delete tenant",
			zap.String("tenant_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete tenant",
		})
	}

	prometheus.RecordEntityOperation("tenant", "delete")
	log.Info("Tenant deleted successfully", zap.String("tenant_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Tenant deleted successfully",
	})
}
