package repository

import (
	"context"

	"github.com/jrmoura/frota-api/internal/models"

	"gorm.io/gorm"
)

// VehicleRepository defines the interface for registered vehicle data access
type VehicleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.RegisteredVehicle, error)
	FindAll(ctx context.Context) ([]models.RegisteredVehicle, error)
	Create(ctx context.Context, vehicle *models.RegisteredVehicle) error
	Update(ctx context.Context, vehicle *models.RegisteredVehicle) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.RegisteredVehicle, int64, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*models.RegisteredVehicle, error) {
	var vehicle models.RegisteredVehicle
	err := r.db.WithContext(ctx).First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context) ([]models.RegisteredVehicle, error) {
	var vehicles []models.RegisteredVehicle
	err := r.db.WithContext(ctx).Order("plate ASC").Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.RegisteredVehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *models.RegisteredVehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.RegisteredVehicle{}, id).Error
}

func (r *vehicleRepository) List(ctx context.Context, query *ListQuery) ([]models.RegisteredVehicle, int64, error) {
	var vehicles []models.RegisteredVehicle
	var total int64

	db := r.db.WithContext(ctx).Model(&models.RegisteredVehicle{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("plate ILIKE ? OR brand ILIKE ? OR model ILIKE ?", search, search, search)
	}
	if dept := query.Filters["department"]; dept != "" {
		db = db.Where("department = ?", dept)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("plate ASC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&vehicles).Error
	return vehicles, total, err
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Employee, error)
	FindByName(ctx context.Context, fullName string) (*models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Employee, int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByName(ctx context.Context, fullName string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Where("full_name = ?", fullName).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Employee{}, id).Error
}

func (r *employeeRepository) List(ctx context.Context, query *ListQuery) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Employee{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("full_name ILIKE ? OR department ILIKE ?", search, search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("full_name ASC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&employees).Error
	return employees, total, err
}

// RouteRepository defines the interface for route data access
type RouteRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Route, error)
	FindAll(ctx context.Context) ([]models.Route, error)
	Create(ctx context.Context, route *models.Route) error
	Update(ctx context.Context, route *models.Route) error
	Delete(ctx context.Context, id uint) error
}

type routeRepository struct {
	db *gorm.DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) FindByID(ctx context.Context, id uint) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).First(&route, id).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) FindAll(ctx context.Context) ([]models.Route, error) {
	var routes []models.Route
	err := r.db.WithContext(ctx).Order("name ASC").Find(&routes).Error
	return routes, err
}

func (r *routeRepository) Create(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *routeRepository) Update(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *routeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Route{}, id).Error
}

// DestinationRepository defines the interface for destination data access
type DestinationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Destination, error)
	FindAll(ctx context.Context) ([]models.Destination, error)
	Create(ctx context.Context, destination *models.Destination) error
	Update(ctx context.Context, destination *models.Destination) error
	Delete(ctx context.Context, id uint) error
}

type destinationRepository struct {
	db *gorm.DB
}

// NewDestinationRepository creates a new destination repository
func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) FindByID(ctx context.Context, id uint) (*models.Destination, error) {
	var destination models.Destination
	err := r.db.WithContext(ctx).First(&destination, id).Error
	if err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) FindAll(ctx context.Context) ([]models.Destination, error) {
	var destinations []models.Destination
	err := r.db.WithContext(ctx).Order("city ASC").Find(&destinations).Error
	return destinations, err
}

func (r *destinationRepository) Create(ctx context.Context, destination *models.Destination) error {
	return r.db.WithContext(ctx).Create(destination).Error
}

func (r *destinationRepository) Update(ctx context.Context, destination *models.Destination) error {
	return r.db.WithContext(ctx).Save(destination).Error
}

func (r *destinationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Destination{}, id).Error
}
