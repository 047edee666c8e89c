package repository

import (
	"context"
	"time"

	"github.com/jrmoura/frota-api/internal/models"

	"gorm.io/gorm"
)

// ContractRepository defines the interface for fuel contract data access
type ContractRepository interface {
	FindByID(ctx context.Context, id uint) (*models.FuelContract, error)
	FindActiveByFuelType(ctx context.Context, fuelType string) (*models.FuelContract, error)
	FindActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]models.FuelContract, error)
	Create(ctx context.Context, contract *models.FuelContract) error
	Update(ctx context.Context, contract *models.FuelContract) error
	List(ctx context.Context, query *ListQuery) ([]models.FuelContract, int64, error)
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new fuel contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByID(ctx context.Context, id uint) (*models.FuelContract, error) {
	var contract models.FuelContract
	err := r.db.WithContext(ctx).First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// FindActiveByFuelType returns the single active contract for a fuel type, or
// gorm.ErrRecordNotFound when none is active.
func (r *contractRepository) FindActiveByFuelType(ctx context.Context, fuelType string) (*models.FuelContract, error) {
	var contract models.FuelContract
	err := r.db.WithContext(ctx).
		Where("fuel_type = ? AND status = ?", fuelType, models.ContractStatusActive).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// FindActiveEndedBefore returns active contracts whose period ended strictly
// before the cutoff. Used by the expiry sweep.
func (r *contractRepository) FindActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]models.FuelContract, error) {
	var contracts []models.FuelContract
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", models.ContractStatusActive, cutoff).
		Order("end_date ASC").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) Create(ctx context.Context, contract *models.FuelContract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *contractRepository) Update(ctx context.Context, contract *models.FuelContract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *contractRepository) List(ctx context.Context, query *ListQuery) ([]models.FuelContract, int64, error) {
	var contracts []models.FuelContract
	var total int64

	db := r.db.WithContext(ctx).Model(&models.FuelContract{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("department ILIKE ? OR fuel_type ILIKE ?", search, search)
	}

	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}
	if fuelType := query.Filters["fuel_type"]; fuelType != "" {
		db = db.Where("fuel_type = ?", fuelType)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&contracts).Error
	return contracts, total, err
}
