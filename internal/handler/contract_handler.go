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

// ContractRequest defines the structure for contract creation/update requests
type ContractRequest struct {
	PropertyID  uint    `json:"property_id"`
	TenantID    uint    `json:"tenant_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	MonthlyRent float64 `json:"monthly_rent"`
	Deposit     float64 `json:"deposit"`
	PaymentDay  int     `json:"payment_day"`
	Terms       string  `json:"terms"`
	Status      string  `json:"status"`
}

func (r *ContractRequest) validate() string {
	if r.PropertyID == 0 {
		return "property_id is required"
	}
	if r.TenantID == 0 {
		return "tenant_id is required"
	}
	if !validDate(r.StartDate) {
		return "start_date must be a YYYY-MM-DD date"
	}
	if !validDate(r.EndDate) {
		return "end_date must be a YYYY-MM-DD date"
	}
	if r.EndDate <= r.StartDate {
		return "end_date must be after start_date"
	}
	if r.MonthlyRent < 0 || r.Deposit < 0 {
		return "monetary fields must be non-negative"
	}
	if r.PaymentDay != 0 && (r.PaymentDay < 1 || r.PaymentDay > 28) {
		return "payment_day must be between 1 and 28"
	}
	if r.Status != "" && !model.ValidContractStatus(r.Status) {
		return "status must be one of active, expired, terminated"
	}
	return ""
}

func (r *ContractRequest) apply(ct *model.Contract) {
	ct.PropertyID = r.PropertyID
	ct.TenantID = r.TenantID
	ct.StartDate = r.StartDate
	ct.EndDate = r.EndDate
	ct.MonthlyRent = round2(r.MonthlyRent)
	ct.Deposit = round2(r.Deposit)
	if r.PaymentDay != 0 {
		ct.PaymentDay = r.PaymentDay
	}
	ct.Terms = r.Terms
	if r.Status != "" {
		ct.Status = r.Status
	}
}

// checkContractReferences verifies the referenced property and tenant exist
func checkContractReferences(propertyID, tenantID uint) string {
	var count int64
	database.GetDB().Model(&model.Property{}).Where("id = ?", propertyID).Count(&count)
	if count == 0 {
		return "referenced property does not exist"
	}
	database.GetDB().Model(&model.Tenant{}).Where("id = ?", tenantID).Count(&count)
	if count == 0 {
		return "referenced tenant does not exist"
	}
	return ""
}

// ListContracts handles retrieving all contracts enriched with their
// property and tenant
func ListContracts(c echo.Context) error {
	log := logger.FromContext(c)

	var contracts []model.Contract

	query := database.GetDB().Preload("Property").Preload("Tenant")

	// Filter by status if specified
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	result := query.Find(&contracts)
	if result.Error != nil {
		log.Error("Failed to list contracts", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve contracts",
		})
	}

	log.Info("Contracts retrieved successfully", zap.Int("count", len(contracts)))
	return c.JSON(http.StatusOK, contracts)
}

// GetContract handles retrieving a single contract by ID with relations
func GetContract(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var contract model.Contract
	result := database.GetDB().Preload("Property").Preload("Tenant").Preload("Payments").First(&contract, id)
	if result.Error != nil {
		log.Warn("Contract not found", zap.String("contract_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Contract not found",
		})
	}

	return c.JSON(http.StatusOK, contract)
}

// CreateContract handles creating a new contract. The referenced property
// and tenant must exist.
func CreateContract(c echo.Context) error {
	log := logger.FromContext(c)

	var req ContractRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Contract validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if msg := checkContractReferences(req.PropertyID, req.TenantID); msg != "" {
		log.Warn("Contract reference check failed",
			zap.Uint("property_id", req.PropertyID),
			zap.Uint("tenant_id", req.TenantID),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	contract := model.Contract{PaymentDay: 1, Status: model.ContractActive}
	req.apply(&contract)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := database.GetDB().Create(&contract)
	if result.Error != nil {
		log.Error("Failed to create contract",
			zap.Uint("property_id", req.PropertyID),
			zap.Uint("tenant_id", req.TenantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create contract",
		})
	}

	prometheus.RecordEntityOperation("contract", "create")
	log.Info("Contract created successfully",
		zap.Uint("contract_id", contract.ID),
		zap.Uint("property_id", contract.PropertyID),
		zap.Uint("tenant_id", contract.TenantID),
		zap.String("end_date", contract.EndDate))
	return c.JSON(http.StatusCreated, contract)
}

// UpdateContract handles updating an existing contract
func UpdateContract(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ContractRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("contract_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var contract model.Contract
	result := database.GetDB().First(&contract, id)
	if result.Error != nil {
		log.Warn("Contract not found for update", zap.String("contract_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Contract not found",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Contract validation failed",
			zap.String("contract_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if msg := checkContractReferences(req.PropertyID, req.TenantID); msg != "" {
		log.Warn("Contract reference check failed",
			zap.String("contract_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	req.apply(&contract)

	defer prometheus.TrackDBOperation("update")(time.Now())
	result = database.GetDB().Save(&contract)
	if result.Error != nil {
		log.Error("Failed to update contract",
			zap.String("contract_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update contract",
		})
	}

	prometheus.RecordEntityOperation("contract", "update")
	log.Info("Contract updated successfully", zap.String("contract_id", id))
	return c.JSON(http.StatusOK, contract)
}

// DeleteContract handles deleting a contract. Contracts with payments
// cannot be removed.
func DeleteContract(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var contract model.Contract
	result := database.GetDB().First(&contract, id)
	if result.Error != nil {
		log.Warn("Contract not found for deletion", zap.String("contract_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Contract not found",
		})
	}

	var payments int64
	database.GetDB().Model(&model.Payment{}).Where("contract_id = ?", contract.ID).Count(&payments)
	if payments > 0 {
		log.Warn("Contract has payments, delete rejected",
			zap.String("contract_id", id),
			zap.Int64("payments", payments))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Contract has payments and cannot be deleted",
		})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result = database.GetDB().Delete(&model.Contract{}, id)
	if result.Error != nil {
		log.Error("Failed to delete contract",
			zap.String("contract_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete contract",
		})
	}

	prometheus.RecordEntityOperation("contract", "delete")
	log.Info("Contract deleted successfully", zap.String("contract_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Contract deleted successfully",
	})
}
