package repository

import (
	"context"

	"github.com/jrmoura/frota-api/internal/models"

	"gorm.io/gorm"
)

// TicketRepository defines the interface for fueling ticket data access.
// Ticket dates are legacy form strings, so period filtering for reports is
// done in memory by the report service; this repository only narrows by
// indexed columns.
type TicketRepository interface {
	FindByID(ctx context.Context, id uint) (*models.FuelingTicket, error)
	FindAll(ctx context.Context) ([]models.FuelingTicket, error)
	FindByContract(ctx context.Context, contractID uint) ([]models.FuelingTicket, error)
	Create(ctx context.Context, ticket *models.FuelingTicket) error
	Update(ctx context.Context, ticket *models.FuelingTicket) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.FuelingTicket, int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new fueling ticket repository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*models.FuelingTicket, error) {
	var ticket models.FuelingTicket
	err := r.db.WithContext(ctx).Preload("Contract").First(&ticket, id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindAll returns every ticket in insertion order. Ordering by fueling date
// happens in the service, where the legacy date strings get parsed.
func (r *ticketRepository) FindAll(ctx context.Context) ([]models.FuelingTicket, error) {
	var tickets []models.FuelingTicket
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) FindByContract(ctx context.Context, contractID uint) ([]models.FuelingTicket, error) {
	var tickets []models.FuelingTicket
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.FuelingTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) Update(ctx context.Context, ticket *models.FuelingTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *ticketRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FuelingTicket{}, id).Error
}

func (r *ticketRepository) List(ctx context.Context, query *ListQuery) ([]models.FuelingTicket, int64, error) {
	var tickets []models.FuelingTicket
	var total int64

	db := r.db.WithContext(ctx).Model(&models.FuelingTicket{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("driver_name ILIKE ? OR vehicle_plate ILIKE ? OR department ILIKE ?",
			search, search, search)
	}

	if plate := query.Filters["vehicle_plate"]; plate != "" {
		db = db.Where("vehicle_plate = ?", plate)
	}
	if driver := query.Filters["driver_name"]; driver != "" {
		db = db.Where("driver_name = ?", driver)
	}
	if contractID := query.Filters["contract_id"]; contractID != "" {
		db = db.Where("contract_id = ?", contractID)
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

	err := db.Preload("Contract").Find(&tickets).Error
	return tickets, total, err
}
