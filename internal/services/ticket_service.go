package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TicketService manages fueling tickets and keeps the contract ledger in
// step with them: create accumulates, edit reverses the old figures and
// applies the new ones, delete reverses.
type TicketService struct {
	ticketRepo repository.TicketRepository
	ledgerSvc  *LedgerService
	auditSvc   AuditLogger
}

// NewTicketService creates a new fueling ticket service
func NewTicketService(ticketRepo repository.TicketRepository, ledgerSvc *LedgerService, auditSvc AuditLogger) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		ledgerSvc:  ledgerSvc,
		auditSvc:   auditSvc,
	}
}

// GetTicket retrieves a fueling ticket by ID
func (s *TicketService) GetTicket(ctx context.Context, id uint) (*models.FuelingTicket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// ListTickets retrieves tickets with pagination and filters
func (s *TicketService) ListTickets(ctx context.Context, query *repository.ListQuery) ([]models.FuelingTicket, int64, error) {
	return s.ticketRepo.List(ctx, query)
}

// FindAll returns every ticket ordered by fueling date, most recent first.
// Dates are legacy form strings, so the sort happens here on the parsed
// values rather than in SQL; report preparation relies on this order for its
// month-group sequence. A ticket back-dated into a previous month still
// lands in the right position.
func (s *TicketService) FindAll(ctx context.Context) ([]models.FuelingTicket, error) {
	tickets, err := s.ticketRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sort.SliceStable(tickets, func(i, j int) bool {
		return ParseTicketDate(tickets[i].TicketDate, now).After(ParseTicketDate(tickets[j].TicketDate, now))
	})
	return tickets, nil
}

// CreateTicket validates the ticket against an active contract for its fuel
// type, snapshots the contract's unit price, computes the total and records
// the transaction on the ledger.
func (s *TicketService) CreateTicket(ctx context.Context, ticket *models.FuelingTicket, actor string) error {
	contract, err := s.ledgerSvc.FindActiveByFuelType(ctx, ticket.FuelType)
	if err != nil {
		return err
	}

	// Price snapshot: the ticket keeps the price it was fueled at even if
	// the contract's price changes later.
	price, _ := contract.UnitPrice.Round(2).Float64()
	quantity := ParseLenient(ticket.Quantity)

	ticket.ContractID = contract.ID
	ticket.UnitPrice = FormatNumber(price)
	ticket.Total = FormatNumber(Round2(quantity * price))

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := s.ledgerSvc.RecordTransaction(ctx, contract.ID,
		decimal.NewFromFloat(quantity), contract.UnitPrice); err != nil {
		// A ticket the ledger never accounted for must not survive.
		_ = s.ticketRepo.Delete(ctx, ticket.ID)
		return err
	}

	_ = s.auditSvc.Log(ctx, models.AuditActionCreate, "FuelingTicket", ticket.ID, actor,
		fmt.Sprintf("Abastecimento de %s L de %s para %s", ticket.Quantity, ticket.FuelType, ticket.VehiclePlate))
	return nil
}

// UpdateTicket applies edits to a ticket. The old accumulation is reversed
// on the old contract and the new figures are applied, so a change of fuel
// type or quantity rebalances both contracts. The new contract is resolved
// before anything is reversed: a rejected edit leaves the ledger untouched.
func (s *TicketService) UpdateTicket(ctx context.Context, id uint, updated *models.FuelingTicket, actor string) (*models.FuelingTicket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	contract, err := s.ledgerSvc.FindActiveByFuelType(ctx, updated.FuelType)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerSvc.ReverseTransaction(ctx, ticket.ContractID,
		decimal.NewFromFloat(ParseLenient(ticket.Quantity)),
		decimal.NewFromFloat(ParseLenient(ticket.UnitPrice))); err != nil {
		return nil, err
	}

	price, _ := contract.UnitPrice.Round(2).Float64()
	quantity := ParseLenient(updated.Quantity)

	ticket.ContractID = contract.ID
	ticket.TicketDate = updated.TicketDate
	ticket.Department = updated.Department
	ticket.SubDepartment = updated.SubDepartment
	ticket.DriverName = updated.DriverName
	ticket.VehiclePlate = updated.VehiclePlate
	ticket.FuelType = updated.FuelType
	ticket.OdometerWorking = updated.OdometerWorking
	ticket.OdometerStart = updated.OdometerStart
	ticket.OdometerEnd = updated.OdometerEnd
	ticket.Distance = updated.Distance
	ticket.OriginCity = updated.OriginCity
	ticket.OriginKm = updated.OriginKm
	ticket.DestinationCity = updated.DestinationCity
	ticket.DestinationKm = updated.DestinationKm
	ticket.Quantity = updated.Quantity
	ticket.UnitPrice = FormatNumber(price)
	ticket.Total = FormatNumber(Round2(quantity * price))
	ticket.TripReason = updated.TripReason
	ticket.Beneficiary = updated.Beneficiary
	ticket.RouteType = updated.RouteType
	ticket.Contract = nil

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	if err := s.ledgerSvc.RecordTransaction(ctx, contract.ID,
		decimal.NewFromFloat(quantity), contract.UnitPrice); err != nil {
		return nil, err
	}

	_ = s.auditSvc.Log(ctx, models.AuditActionUpdate, "FuelingTicket", ticket.ID, actor,
		fmt.Sprintf("Abastecimento %d atualizado", ticket.ID))
	return ticket, nil
}

// DeleteTicket removes a ticket and reverses its accumulation on the linked
// contract.
func (s *TicketService) DeleteTicket(ctx context.Context, id uint, actor string) error {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ledgerSvc.ReverseTransaction(ctx, ticket.ContractID,
		decimal.NewFromFloat(ParseLenient(ticket.Quantity)),
		decimal.NewFromFloat(ParseLenient(ticket.UnitPrice))); err != nil {
		return err
	}

	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	_ = s.auditSvc.Log(ctx, models.AuditActionDelete, "FuelingTicket", id, actor,
		fmt.Sprintf("Abastecimento %d removido (%s, %s)", id, ticket.VehiclePlate, strings.TrimSpace(ticket.DriverName)))
	return nil
}
