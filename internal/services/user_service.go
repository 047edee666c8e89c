package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"gorm.io/gorm"
)

// UserService manages administrative accounts. Passwords are stored as
// bcrypt hashes; session and token handling happen outside this API.
type UserService struct {
	userRepo repository.UserRepository
	auditSvc AuditLogger
}

// NewUserService creates a new admin user service
func NewUserService(userRepo repository.UserRepository, auditSvc AuditLogger) *UserService {
	return &UserService{userRepo: userRepo, auditSvc: auditSvc}
}

// GetUser retrieves an admin user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.AdminUser, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves admin users with pagination
func (s *UserService) ListUsers(ctx context.Context, query *repository.ListQuery) ([]models.AdminUser, int64, error) {
	return s.userRepo.List(ctx, query)
}

// CreateUser registers an admin user with a hashed password
func (s *UserService) CreateUser(ctx context.Context, user *models.AdminUser, password, actor string) error {
	if err := user.SetPassword(password); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if user.Role == "" {
		user.Role = models.RoleOperator
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionCreate, "AdminUser", user.ID, actor,
		fmt.Sprintf("Usuário %s criado", user.Username))
	return nil
}

// UpdateUser applies profile edits; the password only changes when a new one
// is supplied.
func (s *UserService) UpdateUser(ctx context.Context, id uint, updated *models.AdminUser, newPassword, actor string) (*models.AdminUser, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = updated.Username
	user.FullName = updated.FullName
	user.Role = updated.Role
	user.Active = updated.Active
	if newPassword != "" {
		if err := user.SetPassword(newPassword); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionUpdate, "AdminUser", user.ID, actor,
		fmt.Sprintf("Usuário %s atualizado", user.Username))
	return user, nil
}

// DeleteUser removes an admin user
func (s *UserService) DeleteUser(ctx context.Context, id uint, actor string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	_ = s.auditSvc.Log(ctx, models.AuditActionDelete, "AdminUser", id, actor,
		fmt.Sprintf("Usuário %s removido", user.Username))
	return nil
}
