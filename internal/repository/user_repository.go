package repository

import (
	"context"

	"github.com/jrmoura/frota-api/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for admin user data access
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
	Update(ctx context.Context, user *models.AdminUser) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.AdminUser, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new admin user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.AdminUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AdminUser{}, id).Error
}

func (r *userRepository) List(ctx context.Context, query *ListQuery) ([]models.AdminUser, int64, error) {
	var users []models.AdminUser
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AdminUser{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("username ILIKE ? OR full_name ILIKE ?", search, search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("username ASC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&users).Error
	return users, total, err
}
