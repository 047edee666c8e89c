package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"gorm.io/gorm"
)

// EmployeeService manages driver and staff records
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	auditSvc     AuditLogger
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, auditSvc AuditLogger) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, auditSvc: auditSvc}
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return employee, nil
}

// FindByName resolves a driver by exact full name. Receipts use it to pull
// CNH number and category.
func (s *EmployeeService) FindByName(ctx context.Context, fullName string) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByName(ctx, fullName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
	return s.employeeRepo.List(ctx, query)
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, employee *models.Employee, actor string) error {
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionCreate, "Employee", employee.ID, actor,
		fmt.Sprintf("Servidor %s cadastrado", employee.FullName))
	return nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint, updated *models.Employee, actor string) (*models.Employee, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	employee.FullName = updated.FullName
	employee.Role = updated.Role
	employee.CNHNumber = updated.CNHNumber
	employee.CNHCategory = updated.CNHCategory
	employee.Department = updated.Department
	employee.Active = updated.Active

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionUpdate, "Employee", employee.ID, actor,
		fmt.Sprintf("Servidor %s atualizado", employee.FullName))
	return employee, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint, actor string) error {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionDelete, "Employee", id, actor,
		fmt.Sprintf("Servidor %s removido", employee.FullName))
	return nil
}

// RouteService manages the named route catalog
type RouteService struct {
	routeRepo repository.RouteRepository
	auditSvc  AuditLogger
}

func NewRouteService(routeRepo repository.RouteRepository, auditSvc AuditLogger) *RouteService {
	return &RouteService{routeRepo: routeRepo, auditSvc: auditSvc}
}

func (s *RouteService) GetRoute(ctx context.Context, id uint) (*models.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return route, nil
}

func (s *RouteService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return s.routeRepo.FindAll(ctx)
}

func (s *RouteService) CreateRoute(ctx context.Context, route *models.Route, actor string) error {
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionCreate, "Route", route.ID, actor,
		fmt.Sprintf("Rota %s cadastrada", route.Name))
	return nil
}

func (s *RouteService) UpdateRoute(ctx context.Context, id uint, updated *models.Route, actor string) (*models.Route, error) {
	route, err := s.GetRoute(ctx, id)
	if err != nil {
		return nil, err
	}

	route.Name = updated.Name
	route.OriginCity = updated.OriginCity
	route.OriginKm = updated.OriginKm
	route.DestinationCity = updated.DestinationCity
	route.DestinationKm = updated.DestinationKm
	route.RouteType = updated.RouteType

	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionUpdate, "Route", route.ID, actor,
		fmt.Sprintf("Rota %s atualizada", route.Name))
	return route, nil
}

func (s *RouteService) DeleteRoute(ctx context.Context, id uint, actor string) error {
	route, err := s.GetRoute(ctx, id)
	if err != nil {
		return err
	}
	if err := s.routeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionDelete, "Route", id, actor,
		fmt.Sprintf("Rota %s removida", route.Name))
	return nil
}

// DestinationService manages the destination catalog
type DestinationService struct {
	destinationRepo repository.DestinationRepository
	auditSvc        AuditLogger
}

func NewDestinationService(destinationRepo repository.DestinationRepository, auditSvc AuditLogger) *DestinationService {
	return &DestinationService{destinationRepo: destinationRepo, auditSvc: auditSvc}
}

func (s *DestinationService) GetDestination(ctx context.Context, id uint) (*models.Destination, error) {
	destination, err := s.destinationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return destination, nil
}

func (s *DestinationService) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	return s.destinationRepo.FindAll(ctx)
}

func (s *DestinationService) CreateDestination(ctx context.Context, destination *models.Destination, actor string) error {
	if err := s.destinationRepo.Create(ctx, destination); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionCreate, "Destination", destination.ID, actor,
		fmt.Sprintf("Destino %s cadastrado", destination.City))
	return nil
}

func (s *DestinationService) UpdateDestination(ctx context.Context, id uint, updated *models.Destination, actor string) (*models.Destination, error) {
	destination, err := s.GetDestination(ctx, id)
	if err != nil {
		return nil, err
	}

	destination.City = updated.City
	destination.State = updated.State
	destination.Km = updated.Km

	if err := s.destinationRepo.Update(ctx, destination); err != nil {
		return nil, fmt.Errorf("failed to update destination: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionUpdate, "Destination", destination.ID, actor,
		fmt.Sprintf("Destino %s atualizado", destination.City))
	return destination, nil
}

func (s *DestinationService) DeleteDestination(ctx context.Context, id uint, actor string) error {
	destination, err := s.GetDestination(ctx, id)
	if err != nil {
		return err
	}
	if err := s.destinationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete destination: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionDelete, "Destination", id, actor,
		fmt.Sprintf("Destino %s removido", destination.City))
	return nil
}
