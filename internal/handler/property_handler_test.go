package handler

import (
	"net/http"
	"testing"

	"github.com/pbw78/Rentalmasters/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCreateProperty(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodPost, "/api/properties", PropertyRequest{
		Address:      "5 Oak Avenue",
		City:         "Krakow",
		PropertyType: model.PropertyTypeHouse,
		Area:         120,
		Rooms:        5,
		Rent:         3500.339,
		Deposit:      7000,
	})

	assert.NoError(t, CreateProperty(c))
	assertStatus(t, rec, http.StatusCreated)

	var property model.Property
	decodeBody(t, rec, &property)
	assert.NotZero(t, property.ID)
	assert.Equal(t, model.PropertyAvailable, property.Status, "status defaults to available")
	assert.Equal(t, 3500.34, property.Rent, "monetary values are rounded to cents")
}

func TestCreatePropertyValidation(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		name string
		req  PropertyRequest
	}{
		{"missing address", PropertyRequest{City: "Warsaw", PropertyType: model.PropertyTypeApartment}},
		{"missing city", PropertyRequest{Address: "1 Main St", PropertyType: model.PropertyTypeApartment}},
		{"bad property type", PropertyRequest{Address: "1 Main St", City: "Warsaw", PropertyType: "castle"}},
		{"negative rent", PropertyRequest{Address: "1 Main St", City: "Warsaw", PropertyType: model.PropertyTypeApartment, Rent: -1}},
		{"bad status", PropertyRequest{Address: "1 Main St", City: "Warsaw", PropertyType: model.PropertyTypeApartment, Status: "demolished"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPost, "/api/properties", tt.req)
			assert.NoError(t, CreateProperty(c))
			assertStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestGetPropertyNotFound(t *testing.T) {
	setupTestDB(t)

	c, rec := newContext(t, http.MethodGet, "/api/properties/999", nil)
	c.SetParamNames("id")
	c.SetParamValues("999")

	assert.NoError(t, GetProperty(c))
	assertStatus(t, rec, http.StatusNotFound)
}

func TestListPropertiesFilterByStatus(t *testing.T) {
	db := setupTestDB(t)

	seedProperty(t, db)
	rented := model.Property{
		Address: "9 Side Street", City: "Warsaw",
		PropertyType: model.PropertyTypeStudio,
		Status:       model.PropertyRented,
	}
	assert.NoError(t, db.Create(&rented).Error)

	c, rec := newContext(t, http.MethodGet, "/api/properties?status=rented", nil)
	assert.NoError(t, ListProperties(c))
	assertStatus(t, rec, http.StatusOK)

	var properties []model.Property
	decodeBody(t, rec, &properties)
	assert.Len(t, properties, 1)
	assert.Equal(t, model.PropertyRented, properties[0].Status)
}

func TestUpdateProperty(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)

	c, rec := newContext(t, http.MethodPut, "/api/properties/1", PropertyRequest{
		Address:      property.Address,
		City:         property.City,
		PropertyType: property.PropertyType,
		Rent:         2200,
		Status:       model.PropertyRented,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, UpdateProperty(c))
	assertStatus(t, rec, http.StatusOK)

	var updated model.Property
	decodeBody(t, rec, &updated)
	assert.Equal(t, model.PropertyRented, updated.Status)
	assert.Equal(t, 2200.0, updated.Rent)
}

func TestDeletePropertyRestrictedByContract(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	tenant := seedTenant(t, db)
	seedContract(t, db, property.ID, tenant.ID)

	c, rec := newContext(t, http.MethodDelete, "/api/properties/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, DeleteProperty(c))
	assertStatus(t, rec, http.StatusConflict)

	var count int64
	db.Model(&model.Property{}).Count(&count)
	assert.Equal(t, int64(1), count, "property must survive a rejected delete")
}

func TestDeletePropertyRestrictedByServiceRequest(t *testing.T) {
	db := setupTestDB(t)
	property := seedProperty(t, db)
	request := model.ServiceRequest{
		PropertyID:  property.ID,
		Title:       "Leaking tap",
		Description: "Kitchen tap drips",
		Priority:    model.PriorityLow,
		Status:      model.RequestOpen,
	}
	assert.NoError(t, db.Create(&request).Error)

	c, rec := newContext(t, http.MethodDelete, "/api/properties/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, DeleteProperty(c))
	assertStatus(t, rec, http.StatusConflict)
}

func TestDeleteProperty(t *testing.T) {
	db := setupTestDB(t)
	seedProperty(t, db)

	c, rec := newContext(t, http.MethodDelete, "/api/properties/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, DeleteProperty(c))
	assertStatus(t, rec, http.StatusOK)

	var count int64
	db.Model(&model.Property{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
