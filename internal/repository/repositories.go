package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Contract    ContractRepository
	Ticket      TicketRepository
	Vehicle     VehicleRepository
	Employee    EmployeeRepository
	Route       RouteRepository
	Destination DestinationRepository
	User        UserRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Contract:    NewContractRepository(db),
		Ticket:      NewTicketRepository(db),
		Vehicle:     NewVehicleRepository(db),
		Employee:    NewEmployeeRepository(db),
		Route:       NewRouteRepository(db),
		Destination: NewDestinationRepository(db),
		User:        NewUserRepository(db),
	}
}
