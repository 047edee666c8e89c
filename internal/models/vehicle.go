package models

import (
	"time"
)

// RegisteredVehicle is a vehicle of the municipal fleet. Receipts resolve
// brand/model by plate through the vehicle directory.
type RegisteredVehicle struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Plate      string    `gorm:"size:20;not null;uniqueIndex" json:"plate"`
	Brand      string    `gorm:"not null" json:"brand"`
	Model      string    `gorm:"not null" json:"model"`
	Year       int       `json:"year"`
	Department string    `gorm:"index" json:"department"`
	FuelType   string    `gorm:"index" json:"fuel_type"`
	Active     bool      `gorm:"default:true;index" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for RegisteredVehicle
func (RegisteredVehicle) TableName() string {
	return "registered_vehicles"
}

// Employee is a municipal employee; drivers carry CNH data printed on
// fueling receipts.
type Employee struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FullName    string    `gorm:"not null;index" json:"full_name"`
	Role        string    `json:"role"`
	CNHNumber   string    `gorm:"size:20" json:"cnh_number"`
	CNHCategory string    `gorm:"size:5" json:"cnh_category"`
	Department  string    `gorm:"index" json:"department"`
	Active      bool      `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

// Route is a registered origin/destination pair with odometer marks used to
// pre-fill ticket forms.
type Route struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	OriginCity      string    `gorm:"not null" json:"origin_city"`
	OriginKm        string    `json:"origin_km"`
	DestinationCity string    `gorm:"not null" json:"destination_city"`
	DestinationKm   string    `json:"destination_km"`
	RouteType       string    `json:"route_type"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for Route
func (Route) TableName() string {
	return "routes"
}

// Destination is a registered destination city with its km mark.
type Destination struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	City      string    `gorm:"not null;index" json:"city"`
	State     string    `gorm:"size:2" json:"state"`
	Km        string    `json:"km"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Destination
func (Destination) TableName() string {
	return "destinations"
}
