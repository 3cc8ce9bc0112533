package handler

import (
	"net/http"
	"testing"

	"github.com/pbw78/Rentalmasters/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCreateServiceRequest(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)

	c, rec := newContext(t, http.MethodPost, "/api/service-requests", ServiceRequestRequest{
		PropertyID:  property.ID,
		Title:       "Broken boiler",
		Description: "No hot water since Monday",
		Category:    model.CategoryHeating,
	})

	assert.NoError(t, CreateServiceRequest(c))
	assertStatus(t, rec, http.StatusCreated)

	var request model.ServiceRequest
	decodeBody(t, rec, &request)
	assert.NotZero(t, request.ID)
	assert.Equal(t, model.RequestOpen, request.Status, "status defaults to open")
	assert.Equal(t, model.PriorityMedium, request.Priority, "priority defaults to medium")
	assert.Nil(t, request.TenantID, "tenant is optional")
}

func TestCreateServiceRequestWithTenant(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)

	cost := 150.567
	c, rec := newContext(t, http.MethodPost, "/api/service-requests", ServiceRequestRequest{
		PropertyID:    property.ID,
		TenantID:      &tenant.ID,
		Title:         "Flickering lights",
		Description:   "Hallway lights flicker",
		Category:      model.CategoryElectrical,
		Priority:      model.PriorityHigh,
		EstimatedCost: &cost,
	})

	assert.NoError(t, CreateServiceRequest(c))
	assertStatus(t, rec, http.StatusCreated)

	var request model.ServiceRequest
	decodeBody(t, rec, &request)
	if assert.NotNil(t, request.TenantID) {
		assert.Equal(t, tenant.ID, *request.TenantID)
	}
	if assert.NotNil(t, request.EstimatedCost) {
		assert.Equal(t, 150.57, *request.EstimatedCost, "cost is rounded to cents")
	}
}

func TestCreateServiceRequestUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)

	missing := uint(999)
	tests := []struct {
		name string
		req  ServiceRequestRequest
	}{
		{"unknown property", ServiceRequestRequest{PropertyID: 999, Title: "x", Description: "y"}},
		{"unknown tenant", ServiceRequestRequest{PropertyID: property.ID, TenantID: &missing, Title: "x", Description: "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPost, "/api/service-requests", tt.req)
			assert.NoError(t, CreateServiceRequest(c))
			assertStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestCreateServiceRequestValidation(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)

	negative := -10.0
	tests := []struct {
		name string
		req  ServiceRequestRequest
	}{
		{"missing title", ServiceRequestRequest{PropertyID: property.ID, Description: "y"}},
		{"missing description", ServiceRequestRequest{PropertyID: property.ID, Title: "x"}},
		{"bad category", ServiceRequestRequest{PropertyID: property.ID, Title: "x", Description: "y", Category: "gardening"}},
		{"bad priority", ServiceRequestRequest{PropertyID: property.ID, Title: "x", Description: "y", Priority: "asap"}},
		{"negative cost", ServiceRequestRequest{PropertyID: property.ID, Title: "x", Description: "y", ActualCost: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPost, "/api/service-requests", tt.req)
			assert.NoError(t, CreateServiceRequest(c))
			assertStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestUpdateServiceRequestCompletes(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	request := model.ServiceRequest{
		PropertyID:  property.ID,
		Title:       "Broken boiler",
		Description: "No hot water",
		Priority:    model.PriorityUrgent,
		Status:      model.RequestInProgress,
	}
	assert.NoError(t, db.Create(&request).Error)

	done := "2024-03-05"
	cost := 420.0
	c, rec := newContext(t, http.MethodPut, "/api/service-requests/1", ServiceRequestRequest{
		PropertyID:    property.ID,
		Title:         request.Title,
		Description:   request.Description,
		Priority:      request.Priority,
		Status:        model.RequestCompleted,
		ActualCost:    &cost,
		CompletedDate: &done,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, UpdateServiceRequest(c))
	assertStatus(t, rec, http.StatusOK)

	var updated model.ServiceRequest
	decodeBody(t, rec, &updated)
	assert.Equal(t, model.RequestCompleted, updated.Status)
	if assert.NotNil(t, updated.ActualCost) {
		assert.Equal(t, 420.0, *updated.ActualCost)
	}
}

func TestListServiceRequestsFilters(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	assert.NoError(t, db.Create(&model.ServiceRequest{
		PropertyID: property.ID, Title: "a", Description: "a",
		Priority: model.PriorityUrgent, Status: model.RequestOpen,
	}).Error)
	assert.NoError(t, db.Create(&model.ServiceRequest{
		PropertyID: property.ID, Title: "b", Description: "b",
		Priority: model.PriorityLow, Status: model.RequestCompleted,
	}).Error)

	c, rec := newContext(t, http.MethodGet, "/api/service-requests?status=open&priority=urgent", nil)
	assert.NoError(t, ListServiceRequests(c))
	assertStatus(t, rec, http.StatusOK)

	var requests []model.ServiceRequest
	decodeBody(t, rec, &requests)
	assert.Len(t, requests, 1)
	assert.Equal(t, "a", requests[0].Title)
}

func TestDeleteServiceRequestNotFound(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodDelete, "/api/service-requests/7", nil)
	c.SetParamNames("id")
	c.SetParamValues("7")

	assert.NoError(t, DeleteServiceRequest(c))
	assertStatus(t, rec, http.StatusNotFound)
}
