package handler

import (
	"net/http"
	"testing"

	"github.com/pbw78/Rentalmasters/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCreateContract(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/contracts", ContractRequest{
		PropertyID:  property.ID,
		TenantID:    tenant.ID,
		StartDate:   "2024-01-01",
		EndDate:     "2024-12-31",
		MonthlyRent: 2000,
	})

	assert.NoError(t, CreateContract(c))
	assertStatus(t, rec, http.StatusCreated)

	var contract model.Contract
	decodeBody(t, rec, &contract)
	assert.NotZero(t, contract.ID)
	assert.Equal(t, model.ContractActive, contract.Status, "status defaults to active")
	assert.Equal(t, 1, contract.PaymentDay, "payment day defaults to 1")
}

func TestCreateContractMissingReferences(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)

	tests := []struct {
		name       string
		propertyID uint
		tenantID   uint
	}{
		{"unknown property", 999, 1},
		{"unknown tenant", property.ID, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPost, "/api/contracts", ContractRequest{
				PropertyID:  tt.propertyID,
				TenantID:    tt.tenantID,
				StartDate:   "2024-01-01",
				EndDate:     "2024-12-31",
				MonthlyRent: 2000,
			})
			assert.NoError(t, CreateContract(c))
			assertStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestCreateContractValidation(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)

	tests := []struct {
		name string
		req  ContractRequest
	}{
		{"end before start", ContractRequest{PropertyID: property.ID, TenantID: tenant.ID, StartDate: "2024-06-01", EndDate: "2024-01-01"}},
		{"end equals start", ContractRequest{PropertyID: property.ID, TenantID: tenant.ID, StartDate: "2024-06-01", EndDate: "2024-06-01"}},
		{"bad start date", ContractRequest{PropertyID: property.ID, TenantID: tenant.ID, StartDate: "01/06/2024", EndDate: "2024-12-31"}},
		{"payment day out of range", ContractRequest{PropertyID: property.ID, TenantID: tenant.ID, StartDate: "2024-01-01", EndDate: "2024-12-31", PaymentDay: 31}},
		{"bad status", ContractRequest{PropertyID: property.ID, TenantID: tenant.ID, StartDate: "2024-01-01", EndDate: "2024-12-31", Status: "paused"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPost, "/api/contracts", tt.req)
			assert.NoError(t, CreateContract(c))
			assertStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestListContractsIncludesRelations(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)
	seedContract(t, db, property.ID, tenant.ID)

	c, rec := newContext(t, http.MethodGet, "/api/contracts", nil)
	assert.NoError(t, ListContracts(c))
	assertStatus(t, rec, http.StatusOK)

	var contracts []model.Contract
	decodeBody(t, rec, &contracts)
	assert.Len(t, contracts, 1)
	if assert.NotNil(t, contracts[0].Property) {
		assert.Equal(t, property.Address, contracts[0].Property.Address)
	}
	if assert.NotNil(t, contracts[0].Tenant) {
		assert.Equal(t, tenant.Email, contracts[0].Tenant.Email)
	}
}

func TestGetContractIncludesPayments(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)
	contract := seedContract(t, db, property.ID, tenant.ID)
	payment := model.Payment{ContractID: contract.ID, Amount: 2000, DueDate: "2024-02-10", Status: model.PaymentPending}
	assert.NoError(t, db.Create(&payment).Error)

	c, rec := newContext(t, http.MethodGet, "/api/contracts/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, GetContract(c))
	assertStatus(t, rec, http.StatusOK)

	var got model.Contract
	decodeBody(t, rec, &got)
	assert.Len(t, got.Payments, 1)
}

func TestUpdateContractStatus(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)
	contract := seedContract(t, db, property.ID, tenant.ID)

	c, rec := newContext(t, http.MethodPut, "/api/contracts/1", ContractRequest{
		PropertyID:  contract.PropertyID,
		TenantID:    contract.TenantID,
		StartDate:   contract.StartDate,
		EndDate:     contract.EndDate,
		MonthlyRent: contract.MonthlyRent,
		Status:      model.ContractTerminated,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, UpdateContract(c))
	assertStatus(t, rec, http.StatusOK)

	var updated model.Contract
	decodeBody(t, rec, &updated)
	assert.Equal(t, model.ContractTerminated, updated.Status)
}

func TestDeleteContractRestrictedByPayments(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)
	contract := seedContract(t, db, property.ID, tenant.ID)
	payment := model.Payment{ContractID: contract.ID, Amount: 2000, DueDate: "2024-02-10", Status: model.PaymentPending}
	assert.NoError(t, db.Create(&payment).Error)

	c, rec := newContext(t, http.MethodDelete, "/api/contracts/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, DeleteContract(c))
	assertStatus(t, rec, http.StatusConflict)
}

func TestDeleteContract(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)
	seedContract(t, db, property.ID, tenant.ID)

	c, rec := newContext(t, http.MethodDelete, "/api/contracts/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, DeleteContract(c))
	assertStatus(t, rec, http.StatusOK)

	var count int64
	db.Model(&model.Contract{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
