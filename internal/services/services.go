package services

import (
	"github.com/jrmoura/frota-api/internal/config"
	"github.com/jrmoura/frota-api/internal/jobs"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/jrmoura/frota-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Ledger      *LedgerService
	Ticket      *TicketService
	Report      *ReportService
	Export      *ExportService
	Vehicle     *VehicleService
	Employee    *EmployeeService
	Route       *RouteService
	Destination *DestinationService
	User        *UserService
	Audit       *AuditService
	Job         *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config, db *gorm.DB) *Services {
	auditSvc := NewAuditService(db)

	ledgerSvc := NewLedgerService(repos.Contract, auditSvc)
	vehicleSvc := NewVehicleService(repos.Vehicle, auditSvc)
	employeeSvc := NewEmployeeService(repos.Employee, auditSvc)
	reportSvc := NewReportService(vehicleSvc, employeeSvc, auditSvc, store, cfg)

	return &Services{
		Ledger:      ledgerSvc,
		Ticket:      NewTicketService(repos.Ticket, ledgerSvc, auditSvc),
		Report:      reportSvc,
		Export:      NewExportService(reportSvc, auditSvc),
		Vehicle:     vehicleSvc,
		Employee:    employeeSvc,
		Route:       NewRouteService(repos.Route, auditSvc),
		Destination: NewDestinationService(repos.Destination, auditSvc),
		User:        NewUserService(repos.User, auditSvc),
		Audit:       auditSvc,
		Job:         NewJobService(worker),
	}
}
