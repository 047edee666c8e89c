package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrmoura/frota-api/internal/services"
	"github.com/jrmoura/frota-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Contract    *ContractHandler
	Ticket      *TicketHandler
	Report      *ReportHandler
	Vehicle     *VehicleHandler
	Employee    *EmployeeHandler
	Route       *RouteHandler
	Destination *DestinationHandler
	User        *UserHandler
	Audit       *AuditHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, store *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Contract:    NewContractHandler(svcs.Ledger),
		Ticket:      NewTicketHandler(svcs.Ticket, svcs.Report),
		Report:      NewReportHandler(svcs.Ticket, svcs.Report, svcs.Export),
		Vehicle:     NewVehicleHandler(svcs.Vehicle),
		Employee:    NewEmployeeHandler(svcs.Employee),
		Route:       NewRouteHandler(svcs.Route),
		Destination: NewDestinationHandler(svcs.Destination),
		User:        NewUserHandler(svcs.User),
		Audit:       NewAuditHandler(svcs.Audit),
		Job:         NewJobHandler(svcs.Job),
	}
}

// actor identifies who performed the action for the audit trail. Session
// handling lives in the gateway; it forwards the authenticated username.
func actor(c *gin.Context) string {
	if a := c.GetHeader("X-Actor"); a != "" {
		return a
	}
	return "admin"
}

// respondServiceError maps service errors onto HTTP status codes:
// validation errors are 422 so the dashboard shows the message, missing
// records are 404, everything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateActiveContract),
		errors.Is(err, services.ErrContractInactive),
		errors.Is(err, services.ErrMissingFilter),
		errors.Is(err, services.ErrNoResults):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
