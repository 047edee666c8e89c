package models

import (
	"time"
)

// FuelingTicket is one fueling event tied to a vehicle, a driver and a
// FuelContract. Numeric fields are kept as the comma-formatted strings the
// municipal forms produce; reports parse them leniently and the ledger
// converts them to decimals before touching contract balances. The unit
// price is a snapshot copied from the contract at creation time, not a live
// link.
type FuelingTicket struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ContractID      uint      `gorm:"not null;index" json:"contract_id"`
	TicketDate      string    `gorm:"size:30;not null;index" json:"ticket_date"`
	Department      string    `gorm:"not null" json:"department"`
	SubDepartment   string    `json:"sub_department"`
	DriverName      string    `gorm:"not null;index" json:"driver_name"`
	VehiclePlate    string    `gorm:"not null;index" json:"vehicle_plate"`
	FuelType        string    `gorm:"not null" json:"fuel_type"`
	OdometerWorking bool      `gorm:"default:true" json:"odometer_working"`
	OdometerStart   string    `json:"odometer_start"`
	OdometerEnd     string    `json:"odometer_end"`
	Distance        string    `json:"distance"`
	OriginCity      string    `json:"origin_city"`
	OriginKm        string    `json:"origin_km"`
	DestinationCity string    `json:"destination_city"`
	DestinationKm   string    `json:"destination_km"`
	Quantity        string    `gorm:"not null" json:"quantity"`
	UnitPrice       string    `gorm:"not null" json:"unit_price"`
	Total           string    `gorm:"not null" json:"total"`
	TripReason      string    `gorm:"type:text" json:"trip_reason"`
	Beneficiary     string    `json:"beneficiary"`
	RouteType       string    `json:"route_type"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Associations
	Contract *FuelContract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
}

// TableName specifies the table name for FuelingTicket
func (FuelingTicket) TableName() string {
	return "fueling_tickets"
}

// Route type constants
const (
	RouteTypeUrban     = "urbana"
	RouteTypeIntercity = "intermunicipal"
	RouteTypeRural     = "rural"
)
