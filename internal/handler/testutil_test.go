package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/pbw78/Rentalmasters/internal/model"
	"github.com/pbw78/Rentalmasters/pkg/config"
	"github.com/pbw78/Rentalmasters/pkg/database"
	"github.com/pbw78/Rentalmasters/prometheus"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var metricsOnce sync.Once

// setupTestDB creates an in-memory SQLite database, migrates the schema
// and installs it as the handler database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	metricsOnce.Do(func() {
		cfg, _ := config.Load()
		prometheus.InitMetrics(cfg)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.Set(db)
	t.Cleanup(func() { database.Set(nil) })
	return db
}

// newContext builds an echo context and recorder for a handler invocation
func newContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec
}

// decodeBody unmarshals a JSON response body into out
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// seedProperty inserts a property and returns it
func seedProperty(t *testing.T, db *gorm.DB) model.Property {
	t.Helper()
	property := model.Property{
		Address:      "15 Main Street",
		City:         "Warsaw",
		PropertyType: model.PropertyTypeApartment,
		Rooms:        3,
		Area:         65,
		Rent:         2000,
		Status:       model.PropertyAvailable,
	}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("failed to seed property: %v", err)
	}
	return property
}

// seedTenant inserts a tenant and returns it
func seedTenant(t *testing.T, db *gorm.DB) model.Tenant {
	t.Helper()
	tenant := model.Tenant{
		FirstName: "Anna",
		LastName:  "Kowalska",
		Email:     "anna.kowalska@example.com",
		IsActive:  true,
	}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}
	return tenant
}

// seedContract inserts a contract for the given property and tenant
func seedContract(t *testing.T, db *gorm.DB, propertyID, tenantID uint) model.Contract {
	t.Helper()
	contract := model.Contract{
		PropertyID:  propertyID,
		TenantID:    tenantID,
		StartDate:   "2024-01-01",
		EndDate:     "2024-12-31",
		MonthlyRent: 2000,
		PaymentDay:  10,
		Status:      model.ContractActive,
	}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("failed to seed contract: %v", err)
	}
	return contract
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("unexpected status %d (want %d): %s", rec.Code, want, rec.Body.String())
	}
}
