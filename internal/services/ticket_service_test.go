package services

import (
	"context"
	"testing"
	"time"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTicketRepo struct {
	tickets map[uint]models.FuelingTicket
	nextID  uint
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[uint]models.FuelingTicket{}, nextID: 1}
}

func (r *fakeTicketRepo) FindByID(ctx context.Context, id uint) (*models.FuelingTicket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r *fakeTicketRepo) FindAll(ctx context.Context) ([]models.FuelingTicket, error) {
	var out []models.FuelingTicket
	for _, t := range r.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTicketRepo) FindByContract(ctx context.Context, contractID uint) ([]models.FuelingTicket, error) {
	var out []models.FuelingTicket
	for _, t := range r.tickets {
		if t.ContractID == contractID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *models.FuelingTicket) error {
	ticket.ID = r.nextID
	r.nextID++
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, ticket *models.FuelingTicket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id uint) error {
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.FuelingTicket, int64, error) {
	out, _ := r.FindAll(ctx)
	return out, int64(len(out)), nil
}

func newTicketFixture(t *testing.T) (*TicketService, *fakeContractRepo, *fakeTicketRepo, uint) {
	t.Helper()
	contractRepo := newFakeContractRepo()
	ticketRepo := newFakeTicketRepo()
	audit := &mockAudit{}
	ledger := NewLedgerService(contractRepo, audit)
	svc := NewTicketService(ticketRepo, ledger, audit)

	contract := &models.FuelContract{
		Department:      "Transporte",
		FuelType:        "Diesel",
		Status:          models.ContractStatusActive,
		EndDate:         time.Now().AddDate(1, 0, 0),
		PlannedQuantity: dec("1000"),
		UnitPrice:       dec("5.00"),
	}
	require.NoError(t, ledger.CreateContract(context.Background(), contract, "tester"))
	return svc, contractRepo, ticketRepo, contract.ID
}

func TestCreateTicketSnapshotsPriceAndAccumulates(t *testing.T) {
	svc, contractRepo, _, contractID := newTicketFixture(t)
	ctx := context.Background()

	ticket := &models.FuelingTicket{
		TicketDate:   "2024-01-10",
		Department:   "Transporte",
		DriverName:   "João da Silva",
		VehiclePlate: "ABC-1234",
		FuelType:     "Diesel",
		Quantity:     "100,00",
	}
	require.NoError(t, svc.CreateTicket(ctx, ticket, "tester"))

	// Price snapshot and computed total, comma-formatted
	assert.Equal(t, "5,00", ticket.UnitPrice)
	assert.Equal(t, "500,00", ticket.Total)
	assert.Equal(t, contractID, ticket.ContractID)

	contract, _ := contractRepo.FindByID(ctx, contractID)
	assert.True(t, dec("500").Equal(contract.AccumulatedSpend))
	assert.True(t, dec("500").Equal(contract.Balance))
}

func TestCreateTicketRequiresActiveContract(t *testing.T) {
	svc, _, _, _ := newTicketFixture(t)

	ticket := &models.FuelingTicket{
		TicketDate:   "2024-01-10",
		DriverName:   "João da Silva",
		VehiclePlate: "ABC-1234",
		FuelType:     "Etanol",
		Quantity:     "50,00",
	}
	err := svc.CreateTicket(context.Background(), ticket, "tester")
	assert.ErrorIs(t, err, ErrContractInactive)
}

func TestUpdateTicketRebalancesContract(t *testing.T) {
	svc, contractRepo, _, contractID := newTicketFixture(t)
	ctx := context.Background()

	ticket := &models.FuelingTicket{
		TicketDate:   "2024-01-10",
		DriverName:   "João da Silva",
		VehiclePlate: "ABC-1234",
		FuelType:     "Diesel",
		Quantity:     "100,00",
	}
	require.NoError(t, svc.CreateTicket(ctx, ticket, "tester"))

	// Halving the quantity reverses the old accumulation and applies the new
	updated := *ticket
	updated.Quantity = "50,00"
	_, err := svc.UpdateTicket(ctx, ticket.ID, &updated, "tester")
	require.NoError(t, err)

	contract, _ := contractRepo.FindByID(ctx, contractID)
	assert.True(t, dec("250").Equal(contract.AccumulatedSpend), "accumulated = %s", contract.AccumulatedSpend)
	assert.True(t, dec("750").Equal(contract.Balance))
}

func TestUpdateTicketWithoutActiveContractLeavesLedgerIntact(t *testing.T) {
	svc, contractRepo, ticketRepo, contractID := newTicketFixture(t)
	ctx := context.Background()

	ticket := &models.FuelingTicket{
		TicketDate:   "2024-01-10",
		DriverName:   "João da Silva",
		VehiclePlate: "ABC-1234",
		FuelType:     "Diesel",
		Quantity:     "100,00",
	}
	require.NoError(t, svc.CreateTicket(ctx, ticket, "tester"))

	// Switching to a fuel type with no active contract rejects the edit
	// before anything is reversed
	updated := *ticket
	updated.FuelType = "Etanol"
	_, err := svc.UpdateTicket(ctx, ticket.ID, &updated, "tester")
	assert.ErrorIs(t, err, ErrContractInactive)

	contract, _ := contractRepo.FindByID(ctx, contractID)
	assert.True(t, dec("500").Equal(contract.AccumulatedSpend), "accumulated = %s", contract.AccumulatedSpend)
	assert.True(t, dec("500").Equal(contract.Balance))

	stored, _ := ticketRepo.FindByID(ctx, ticket.ID)
	assert.Equal(t, "Diesel", stored.FuelType)
	assert.Equal(t, "100,00", stored.Quantity)
}

func TestFindAllOrdersByFuelingDate(t *testing.T) {
	svc, _, _, _ := newTicketFixture(t)
	ctx := context.Background()

	// Created out of chronological order
	for _, date := range []string{"2024-01-10", "2024-03-05", "2024-02-20"} {
		ticket := &models.FuelingTicket{
			TicketDate:   date,
			DriverName:   "João da Silva",
			VehiclePlate: "ABC-1234",
			FuelType:     "Diesel",
			Quantity:     "10,00",
		}
		require.NoError(t, svc.CreateTicket(ctx, ticket, "tester"))
	}

	tickets, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, "2024-03-05", tickets[0].TicketDate)
	assert.Equal(t, "2024-02-20", tickets[1].TicketDate)
	assert.Equal(t, "2024-01-10", tickets[2].TicketDate)
}

func TestDeleteTicketReversesAccumulation(t *testing.T) {
	svc, contractRepo, ticketRepo, contractID := newTicketFixture(t)
	ctx := context.Background()

	ticket := &models.FuelingTicket{
		TicketDate:   "2024-01-10",
		DriverName:   "João da Silva",
		VehiclePlate: "ABC-1234",
		FuelType:     "Diesel",
		Quantity:     "100,00",
	}
	require.NoError(t, svc.CreateTicket(ctx, ticket, "tester"))
	require.NoError(t, svc.DeleteTicket(ctx, ticket.ID, "tester"))

	contract, _ := contractRepo.FindByID(ctx, contractID)
	assert.True(t, contract.AccumulatedSpend.IsZero())
	assert.True(t, dec("1000").Equal(contract.Balance))

	_, err := ticketRepo.FindByID(ctx, ticket.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
