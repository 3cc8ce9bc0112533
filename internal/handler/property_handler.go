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

// PropertyRequest defines the structure for property creation/update requests
type PropertyRequest struct {
	Address      string  `json:"address"`
	City         string  `json:"city"`
	PostalCode   string  `json:"postal_code"`
	PropertyType string  `json:"property_type"`
	Area         int     `json:"area"`
	Rooms        int     `json:"rooms"`
	Bathrooms    int     `json:"bathrooms"`
	Floor        int     `json:"floor"`
	TotalFloors  int     `json:"total_floors"`
	Rent         float64 `json:"rent"`
	Deposit      float64 `json:"deposit"`
	Utilities    float64 `json:"utilities"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
}

func (r *PropertyRequest) validate() string {
	if r.Address == "" {
		return "address is required"
	}
	if r.City == "" {
		return "city is required"
	}
	if !model.ValidPropertyType(r.PropertyType) {
		return "property_type must be one of apartment, house, studio, loft"
	}
	if r.Rent < 0 || r.Deposit < 0 || r.Utilities < 0 {
		return "monetary fields must be non-negative"
	}
	if r.Status != "" && !model.ValidPropertyStatus(r.Status) {
		return "status must be one of available, rented, maintenance, unavailable"
	}
	return ""
}

func (r *PropertyRequest) apply(p *model.Property) {
	p.Address = r.Address
	p.City = r.City
	p.PostalCode = r.PostalCode
	p.PropertyType = r.PropertyType
	p.Area = r.Area
	p.Rooms = r.Rooms
	p.Bathrooms = r.Bathrooms
	p.Floor = r.Floor
	p.TotalFloors = r.TotalFloors
	p.Rent = round2(r.Rent)
	p.Deposit = round2(r.Deposit)
	p.Utilities = round2(r.Utilities)
	p.Description = r.Description
	if r.Status != "" {
		p.Status = r.Status
	}
}

// ListProperties handles retrieving all properties with optional filtering
func ListProperties(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	var properties []model.Property

	query := db

	// Filter by status if specified
	status := c.QueryParam("status")
	if status != "" {
		query = query.Where("status = ?", status)
		log.Info("Filtering properties by status", zap.String("status", status))
	}

	// Filter by city if specified
	city := c.QueryParam("city")
	if city != "" {
		query = query.Where("city = ?", city)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	result := query.Find(&properties)
	if result.Error != nil {
		log.Error("Failed to list properties", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve properties",
		})
	}

	log.Info("Properties retrieved successfully", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}

// GetProperty handles retrieving a single property by ID
func GetProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var property model.Property
	result := database.GetDB().First(&property, id)
	if result.Error != nil {
		log.Warn("Property not found", zap.String("property_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Property not found",
		})
	}

	return c.JSON(http.StatusOK, property)
}

// CreateProperty handles creating a new property
func CreateProperty(c echo.Context) error {
	log := logger.FromContext(c)

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Property validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	property := model.Property{Status: model.PropertyAvailable}
	req.apply(&property)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := database.GetDB().Create(&property)
	if result.Error != nil {
		log.Error("Failed to create property",
			zap.String("address", req.Address),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create property",
		})
	}

	prometheus.RecordEntityOperation("property", "create")
	log.Info("Property created successfully",
		zap.Uint("property_id", property.ID),
		zap.String("address", property.Address),
		zap.String("city", property.City))
	return c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles updating an existing property
func UpdateProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("property_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Find existing property
	var property model.Property
	result := database.GetDB().First(&property, id)
	if result.Error != nil {
		log.Warn("Property not found for update", zap.String("property_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Property not found",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Property validation failed",
			zap.String("property_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	oldStatus := property.Status
	req.apply(&property)

	defer prometheus.TrackDBOperation("update")(time.Now())
	result = database.GetDB().Save(&property)
	if result.Error != nil {
		log.Error("Failed to update property",
			zap.String("property_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update property",
		})
	}

	prometheus.RecordEntityOperation("property", "update")
	log.Info("Property updated successfully",
		zap.String("property_id", id),
		zap.String("old_status", oldStatus),
		zap.String("new_status", property.Status))
	return c.JSON(http.StatusOK, property)
}

// DeleteProperty handles deleting a property. The delete is restricted:
// properties with contracts or service requests cannot be removed.
func DeleteProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var property model.Property
	result := database.GetDB().First(&property, id)
	if result.Error != nil {
		log.Warn("Property not found for deletion", zap.String("property_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Property not found",
		})
	}

	// Refuse to orphan dependents
	var contracts int64
	database.GetDB().Model(&model.Contract{}).Where("property_id = ?", property.ID).Count(&contracts)
	if contracts > 0 {
		log.Warn("Property has contracts, delete rejected",
			zap.String("property_id", id),
			zap.Int64("contracts", contracts))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Property has contracts and cannot be deleted",
		})
	}

	var requests int64
	database.GetDB().Model(&model.ServiceRequest{}).Where("property_id = ?", property.ID).Count(&requests)
	if requests > 0 {
		log.Warn("Property has service requests, delete rejected",
			zap.String("property_id", id),
			zap.Int64("service_requests", requests))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Property has service requests and cannot be deleted",
		})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result = database.GetDB().Delete(&model.Property{}, id)
	if result.Error != nil {
		log.Error("Failed to delete property",
			zap.String("property_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete property",
		})
	}

	prometheus.RecordEntityOperation("property", "delete")
	log.Info("Property deleted successfully", zap.String("property_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Property deleted successfully",
	})
}
