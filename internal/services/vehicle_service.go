package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"gorm.io/gorm"
)

// VehicleService manages registered vehicles and resolves plates for
// receipt rendering.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	auditSvc    AuditLogger
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo repository.VehicleRepository, auditSvc AuditLogger) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		auditSvc:    auditSvc,
	}
}

// GetVehicle retrieves a registered vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, id uint) (*models.RegisteredVehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles retrieves vehicles with pagination and filters
func (s *VehicleService) ListVehicles(ctx context.Context, query *repository.ListQuery) ([]models.RegisteredVehicle, int64, error) {
	return s.vehicleRepo.List(ctx, query)
}

// CreateVehicle registers a vehicle
func (s *VehicleService) CreateVehicle(ctx context.Context, vehicle *models.RegisteredVehicle, actor string) error {
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionCreate, "RegisteredVehicle", vehicle.ID, actor,
		fmt.Sprintf("Veículo %s cadastrado", vehicle.Plate))
	return nil
}

// UpdateVehicle applies edits to a registered vehicle
func (s *VehicleService) UpdateVehicle(ctx context.Context, id uint, updated *models.RegisteredVehicle, actor string) (*models.RegisteredVehicle, error) {
	vehicle, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicle.Plate = updated.Plate
	vehicle.Brand = updated.Brand
	vehicle.Model = updated.Model
	vehicle.Year = updated.Year
	vehicle.Department = updated.Department
	vehicle.FuelType = updated.FuelType
	vehicle.Active = updated.Active

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionUpdate, "RegisteredVehicle", vehicle.ID, actor,
		fmt.Sprintf("Veículo %s atualizado", vehicle.Plate))
	return vehicle, nil
}

// DeleteVehicle removes a registered vehicle
func (s *VehicleService) DeleteVehicle(ctx context.Context, id uint, actor string) error {
	vehicle, err := s.GetVehicle(ctx, id)
	if err != nil {
		return err
	}
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionDelete, "RegisteredVehicle", id, actor,
		fmt.Sprintf("Veículo %s removido", vehicle.Plate))
	return nil
}

// Resolve looks a plate up in the registered fleet for receipt rendering.
// First tier is a case-insensitive trimmed match; second tier additionally
// strips separators, so "abc1234" still finds "ABC-1234". Returns nil when
// the plate is unknown; receipts print blank brand/model in that case.
func (s *VehicleService) Resolve(ctx context.Context, plate string) (*models.RegisteredVehicle, error) {
	vehicles, err := s.vehicleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	wanted := strings.ToUpper(strings.TrimSpace(plate))
	for i := range vehicles {
		if strings.ToUpper(strings.TrimSpace(vehicles[i].Plate)) == wanted {
			return &vehicles[i], nil
		}
	}

	normalized := normalizePlate(plate)
	if normalized == "" {
		return nil, nil
	}
	for i := range vehicles {
		if normalizePlate(vehicles[i].Plate) == normalized {
			return &vehicles[i], nil
		}
	}
	return nil, nil
}

func normalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
