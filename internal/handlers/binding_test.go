package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jrmoura/frota-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindNestedOrFlatNested(t *testing.T) {
	c := testContext(`{"ticket": {"driver_name": "João da Silva", "vehicle_plate": "ABC-1234"}}`)

	var ticket models.FuelingTicket
	require.NoError(t, BindNestedOrFlat(c, "ticket", &ticket))
	assert.Equal(t, "João da Silva", ticket.DriverName)
	assert.Equal(t, "ABC-1234", ticket.VehiclePlate)
}

func TestBindNestedOrFlatFlat(t *testing.T) {
	c := testContext(`{"driver_name": "Maria Souza", "fuel_type": "Diesel"}`)

	var ticket models.FuelingTicket
	require.NoError(t, BindNestedOrFlat(c, "ticket", &ticket))
	assert.Equal(t, "Maria Souza", ticket.DriverName)
	assert.Equal(t, "Diesel", ticket.FuelType)
}

func TestBindNestedOrFlatInvalidNested(t *testing.T) {
	c := testContext(`{"ticket": "not an object"}`)

	var ticket models.FuelingTicket
	assert.Error(t, BindNestedOrFlat(c, "ticket", &ticket))
}
