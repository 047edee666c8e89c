package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelContract represents a budgeted allotment of one fuel type for a
// department over a contract period. Monetary figures are decimals in the
// database; formatting with locale separators happens at the report boundary.
type FuelContract struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Department       string          `gorm:"not null;index" json:"department"`
	FuelType         string          `gorm:"not null;index" json:"fuel_type"`
	Status           string          `gorm:"default:active;index" json:"status"`
	EndDate          time.Time       `gorm:"not null;index" json:"end_date"`
	PlannedQuantity  decimal.Decimal `gorm:"type:decimal" json:"planned_quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal" json:"unit_price"`
	AccumulatedSpend decimal.Decimal `gorm:"type:decimal" json:"accumulated_spend"`
	Balance          decimal.Decimal `gorm:"type:decimal" json:"balance"`
	Notes            *string         `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Associations
	Tickets []FuelingTicket `gorm:"foreignKey:ContractID" json:"tickets,omitempty"`
}

// TableName specifies the table name for FuelContract
func (FuelContract) TableName() string {
	return "fuel_contracts"
}

// Contract status constants
const (
	ContractStatusActive   = "active"
	ContractStatusInactive = "inactive"
	ContractStatusExpired  = "expired"
)

// IsActive returns true if the contract currently accepts fueling transactions
func (c *FuelContract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// IsPastEnd returns true if the contract period ended strictly before now
func (c *FuelContract) IsPastEnd(now time.Time) bool {
	return c.EndDate.Before(now)
}

// MayActivate returns true if the contract can transition to active
func (c *FuelContract) MayActivate() bool {
	return c.Status == ContractStatusInactive
}

// MayDeactivate returns true if the contract can transition to inactive
func (c *FuelContract) MayDeactivate() bool {
	return c.Status == ContractStatusActive
}

// MayExpire returns true if the expiry sweep can deactivate the contract
func (c *FuelContract) MayExpire() bool {
	return c.Status == ContractStatusActive
}

// RecomputeBalance re-derives balance from planned quantity and accumulated
// spend. Balance may go negative on the accumulation path; over-budget
// contracts stay visible with a negative remainder.
func (c *FuelContract) RecomputeBalance() {
	c.Balance = c.PlannedQuantity.Sub(c.AccumulatedSpend)
}

// FuelContractResponse is the JSON response format for fuel contracts
type FuelContractResponse struct {
	ID               uint      `json:"id"`
	Department       string    `json:"department"`
	FuelType         string    `json:"fuel_type"`
	Status           string    `json:"status"`
	Active           bool      `json:"active"`
	EndDate          time.Time `json:"end_date"`
	PlannedQuantity  string    `json:"planned_quantity"`
	UnitPrice        string    `json:"unit_price"`
	AccumulatedSpend string    `json:"accumulated_spend"`
	Balance          string    `json:"balance"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToResponse converts FuelContract to FuelContractResponse
func (c *FuelContract) ToResponse() FuelContractResponse {
	return FuelContractResponse{
		ID:               c.ID,
		Department:       c.Department,
		FuelType:         c.FuelType,
		Status:           c.Status,
		Active:           c.IsActive(),
		EndDate:          c.EndDate,
		PlannedQuantity:  c.PlannedQuantity.StringFixed(2),
		UnitPrice:        c.UnitPrice.StringFixed(2),
		AccumulatedSpend: c.AccumulatedSpend.StringFixed(2),
		Balance:          c.Balance.StringFixed(2),
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
