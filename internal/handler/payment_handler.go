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

// PaymentRequest defines the structure for payment creation/update requests
type PaymentRequest struct {
	ContractID    uint    `json:"contract_id"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"due_date"`
	PaymentDate   *string `json:"payment_date"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes"`
}

func (r *PaymentRequest) validate() string {
	if r.ContractID == 0 {
		return "contract_id is required"
	}
	if r.Amount < 0 {
		return "amount must be non-negative"
	}
	if !validDate(r.DueDate) {
		return "due_date must be a YYYY-MM-DD date"
	}
	if r.PaymentDate != nil && !validDate(*r.PaymentDate) {
		return "payment_date must be a YYYY-MM-DD date"
	}
	if r.Status != "" && !model.ValidPaymentStatus(r.Status) {
		return "status must be one of pending, paid, overdue"
	}
	return ""
}

func (r *PaymentRequest) apply(p *model.Payment) {
	p.ContractID = r.ContractID
	p.Amount = round2(r.Amount)
	p.DueDate = r.DueDate
	p.PaymentDate = r.PaymentDate
	p.PaymentMethod = r.PaymentMethod
	if r.Status != "" {
		p.Status = r.Status
	}
	p.Notes = r.Notes
}

// ListPayments handles retrieving all payments enriched with their
// contract and its property and tenant
func ListPayments(c echo.Context) error {
	log := logger.FromContext(c)

	var payments []model.Payment

	query := database.GetDB().
		Preload("Contract").
		Preload("Contract.Property").
		Preload("Contract.Tenant")

	// Filter by status if specified
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	result := query.Find(&payments)
	if result.Error != nil {
		log.Error("Failed to list payments", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve payments",
		})
	}

	log.Info("Payments retrieved successfully", zap.Int("count", len(payments)))
	return c.JSON(http.StatusOK, payments)
}

// GetPayment handles retrieving a single payment by ID with relations
func GetPayment(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var payment model.Payment
	result := database.GetDB().
		Preload("Contract").
		Preload("Contract.Property").
		Preload("Contract.Tenant").
		First(&payment, id)
	if result.Error != nil {
		log.Warn("Payment not found", zap.String("payment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Payment not found",
		})
	}

	return c.JSON(http.StatusOK, payment)
}

// CreatePayment handles creating a new payment. The referenced contract
// must exist.
func CreatePayment(c echo.Context) error {
	log := logger.FromContext(c)

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Payment validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var count int64
	database.GetDB().Model(&model.Contract{}).Where("id = ?", req.ContractID).Count(&count)
	if count == 0 {
		log.Warn("Referenced contract does not exist", zap.Uint("contract_id", req.ContractID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "referenced contract does not exist",
		})
	}

	payment := model.Payment{Status: model.PaymentPending}
	req.apply(&payment)

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result := database.GetDB().Create(&payment)
	if result.Error != nil {
		log.Error("Failed to create payment",
			zap.Uint("contract_id", req.ContractID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create payment",
		})
	}

	prometheus.RecordEntityOperation("payment", "create")
	log.Info("Payment created successfully",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("contract_id", payment.ContractID),
		zap.Float64("amount", payment.Amount),
		zap.String("status", payment.Status))
	return c.JSON(http.StatusCreated, payment)
}

// UpdatePayment handles updating an existing payment
func UpdatePayment(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("payment_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var payment model.Payment
	result := database.GetDB().First(&payment, id)
	if result.Error != nil {
		log.Warn("Payment not found for update", zap.String("payment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Payment not found",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Payment validation failed",
			zap.String("payment_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if req.ContractID != payment.ContractID {
		var count int64
		database.GetDB().Model(&model.Contract{}).Where("id = ?", req.ContractID).Count(&count)
		if count == 0 {
			log.Warn("Referenced contract does not exist", zap.Uint("contract_id", req.ContractID))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "referenced contract does not exist",
			})
		}
	}

	oldStatus := payment.Status
	req.apply(&payment)

	defer prometheus.TrackDBOperation("update")(time.Now())
	result = database.GetDB().Save(&payment)
	if result.Error != nil {
		log.Error("Failed to update payment",
			zap.String("payment_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update payment",
		})
	}

	prometheus.RecordEntityOperation("payment", "update")
	log.Info("Payment updated successfully",
		zap.String("payment_id", id),
		zap.String("old_status", oldStatus),
		zap.String("new_status", payment.Status))
	return c.JSON(http.StatusOK, payment)
}

// DeletePayment handles deleting a payment
func DeletePayment(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Delete(&model.Payment{}, id)
	if result.Error != nil {
		log.Error("Failed to delete payment",
			zap.String("payment_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete payment",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Payment not found for deletion", zap.String("payment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Payment not found",
		})
	}

	prometheus.RecordEntityOperation("payment", "delete")
	log.Info("Payment deleted successfully", zap.String("payment_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Payment deleted successfully",
	})
}
