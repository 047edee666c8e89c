package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/jrmoura/frota-api/internal/services"
)

// VehicleHandler exposes registered vehicle CRUD
type VehicleHandler struct {
	vehicleService *services.VehicleService
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	if dept := c.Query("department"); dept != "" {
		query.Filters["department"] = dept
	}

	vehicles, total, err := h.vehicleService.ListVehicles(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

func (h *VehicleHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var vehicle models.RegisteredVehicle
	if err := BindNestedOrFlat(c, "vehicle", &vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.vehicleService.CreateVehicle(c.Request.Context(), &vehicle, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	var updated models.RegisteredVehicle
	if err := BindNestedOrFlat(c, "vehicle", &updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), uint(id), &updated, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), uint(id), actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Veículo removido"})
}

// EmployeeHandler exposes employee CRUD
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	employees, total, err := h.employeeService.ListEmployees(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": employees,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

func (h *EmployeeHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var employee models.Employee
	if err := BindNestedOrFlat(c, "employee", &employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.employeeService.CreateEmployee(c.Request.Context(), &employee, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	var updated models.Employee
	if err := BindNestedOrFlat(c, "employee", &updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), uint(id), &updated, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("employee_id"), 10, 32)
	if err := h.employeeService.DeleteEmployee(c.Request.Context(), uint(id), actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Servidor removido"})
}

// RouteHandler exposes route catalog CRUD
type RouteHandler struct {
	routeService *services.RouteService
}

func NewRouteHandler(routeService *services.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

func (h *RouteHandler) Index(c *gin.Context) {
	routes, err := h.routeService.ListRoutes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

func (h *RouteHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("route_id"), 10, 32)
	route, err := h.routeService.GetRoute(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (h *RouteHandler) Create(c *gin.Context) {
	var route models.Route
	if err := BindNestedOrFlat(c, "route", &route); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.routeService.CreateRoute(c.Request.Context(), &route, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

func (h *RouteHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("route_id"), 10, 32)
	var updated models.Route
	if err := BindNestedOrFlat(c, "route", &updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	route, err := h.routeService.UpdateRoute(c.Request.Context(), uint(id), &updated, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (h *RouteHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("route_id"), 10, 32)
	if err := h.routeService.DeleteRoute(c.Request.Context(), uint(id), actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rota removida"})
}

// DestinationHandler exposes destination catalog CRUD
type DestinationHandler struct {
	destinationService *services.DestinationService
}

func NewDestinationHandler(destinationService *services.DestinationService) *DestinationHandler {
	return &DestinationHandler{destinationService: destinationService}
}

func (h *DestinationHandler) Index(c *gin.Context) {
	destinations, err := h.destinationService.ListDestinations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": destinations})
}

func (h *DestinationHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("destination_id"), 10, 32)
	destination, err := h.destinationService.GetDestination(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": destination})
}

func (h *DestinationHandler) Create(c *gin.Context) {
	var destination models.Destination
	if err := BindNestedOrFlat(c, "destination", &destination); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.destinationService.CreateDestination(c.Request.Context(), &destination, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"destination": destination})
}

func (h *DestinationHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("destination_id"), 10, 32)
	var updated models.Destination
	if err := BindNestedOrFlat(c, "destination", &updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	destination, err := h.destinationService.UpdateDestination(c.Request.Context(), uint(id), &updated, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": destination})
}

func (h *DestinationHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("destination_id"), 10, 32)
	if err := h.destinationService.DeleteDestination(c.Request.Context(), uint(id), actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Destino removido"})
}
