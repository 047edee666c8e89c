package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AdminUser is an administrative account of the dashboard. Only the record
// itself is managed here; session handling lives outside this service.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:60;not null;uniqueIndex" json:"username"`
	FullName     string    `gorm:"not null" json:"full_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;default:operator" json:"role"`
	Active       bool      `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for AdminUser
func (AdminUser) TableName() string {
	return "admin_users"
}

// Role constants
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// SetPassword hashes and stores the given plain-text password
func (u *AdminUser) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plain-text password against the stored hash
func (u *AdminUser) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// AdminUserResponse is the JSON response format for admin users
type AdminUserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts AdminUser to AdminUserResponse
func (u *AdminUser) ToResponse() AdminUserResponse {
	return AdminUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
