package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pbw78/Rentalmasters/internal/model"
	"github.com/pbw78/Rentalmasters/pkg/database"
	"github.com/pbw78/Rentalmasters/pkg/logger"
	"github.com/pbw78/Rentalmasters/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ExportEntity streams a CSV file for the requested entity collection
func ExportEntity(c echo.Context) error {
	log := logger.FromContext(c)
	entity := c.Param("entity")
	prometheus.ExportRequestsCounter.WithLabelValues(entity).Inc()

	header, rows, err := exportRows(entity)
	if errors.Is(err, errUnknownEntity) {
		log.Warn("Unknown export entity", zap.String("entity", entity))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Unknown entity: " + entity,
		})
	}
	if err != nil {
		log.Error("Failed to load export data",
			zap.String("entity", entity),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to export " + entity,
		})
	}

	log.Info("Exporting entity",
		zap.String("entity", entity),
		zap.Int("rows", len(rows)))

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s-%s.csv", entity, time.Now().Format("2006-01-02")))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

var errUnknownEntity = errors.New("unknown entity")

// exportRows loads the named collection and flattens it into CSV rows
func exportRows(entity string) ([]string, [][]string, error) {
	db := database.GetDB()

	switch entity {
	case "properties":
		var properties []model.Property
		if err := db.Find(&properties).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "address", "city", "property_type", "area", "rooms", "rent", "status"}
		rows := make([][]string, 0, len(properties))
		for _, p := range properties {
			rows = append(rows, []string{
				formatUint(p.ID), p.Address, p.City, p.PropertyType,
				strconv.Itoa(p.Area), strconv.Itoa(p.Rooms),
				formatMoney(p.Rent), p.Status,
			})
		}
		return header, rows, nil

	case "tenants":
		var tenants []model.Tenant
		if err := db.Find(&tenants).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "first_name", "last_name", "email", "phone", "is_active"}
		rows := make([][]string, 0, len(tenants))
		for _, t := range tenants {
			rows = append(rows, []string{
				formatUint(t.ID), t.FirstName, t.LastName, t.Email, t.Phone,
				strconv.FormatBool(t.IsActive),
			})
		}
		return header, rows, nil

	case "contracts":
		var contracts []model.Contract
		if err := db.Find(&contracts).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "property_id", "tenant_id", "start_date", "end_date", "monthly_rent", "payment_day", "status"}
		rows := make([][]string, 0, len(contracts))
		for _, ct := range contracts {
			rows = append(rows, []string{
				formatUint(ct.ID), formatUint(ct.PropertyID), formatUint(ct.TenantID),
				ct.StartDate, ct.EndDate, formatMoney(ct.MonthlyRent),
				strconv.Itoa(ct.PaymentDay), ct.Status,
			})
		}
		return header, rows, nil

	case "payments":
		var payments []model.Payment
		if err := db.Find(&payments).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "contract_id", "amount", "due_date", "payment_date", "payment_method", "status"}
		rows := make([][]string, 0, len(payments))
		for _, p := range payments {
			paymentDate := ""
			if p.PaymentDate != nil {
				paymentDate = *p.PaymentDate
			}
			rows = append(rows, []string{
				formatUint(p.ID), formatUint(p.ContractID), formatMoney(p.Amount),
				p.DueDate, paymentDate, p.PaymentMethod, p.Status,
			})
		}
		return header, rows, nil

	case "service-requests":
		var requests []model.ServiceRequest
		if err := db.Find(&requests).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "property_id", "tenant_id", "title", "category", "priority", "status", "actual_cost"}
		rows := make([][]string, 0, len(requests))
		for _, r := range requests {
			tenantID := ""
			if r.TenantID != nil {
				tenantID = formatUint(*r.TenantID)
			}
			actualCost := ""
			if r.ActualCost != nil {
				actualCost = formatMoney(*r.ActualCost)
			}
			rows = append(rows, []string{
				formatUint(r.ID), formatUint(r.PropertyID), tenantID,
				r.Title, r.Category, r.Priority, r.Status, actualCost,
			})
		}
		return header, rows, nil

	case "users":
		var users []model.User
		if err := db.Find(&users).Error; err != nil {
			return nil, nil, err
		}
		header := []string{"id", "email", "first_name", "last_name", "role"}
		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{
				formatUint(u.ID), u.Email, u.FirstName, u.LastName, u.Role,
			})
		}
		return header, rows, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", errUnknownEntity, entity)
}

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
