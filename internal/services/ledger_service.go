package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/jrmoura/frota-api/internal/statemachine"
	"github.com/jrmoura/frota-api/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService maintains per-contract accumulated spend and remaining
// balance as fueling transactions are recorded and reversed. It owns the
// single-active-contract-per-fuel-type invariant and the expiry sweep.
type LedgerService struct {
	contractRepo repository.ContractRepository
	auditSvc     AuditLogger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(contractRepo repository.ContractRepository, auditSvc AuditLogger) *LedgerService {
	return &LedgerService{
		contractRepo: contractRepo,
		auditSvc:     auditSvc,
	}
}

// GetContract retrieves a fuel contract by ID
func (s *LedgerService) GetContract(ctx context.Context, id uint) (*models.FuelContract, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

// ListContracts retrieves contracts with pagination and filters
func (s *LedgerService) ListContracts(ctx context.Context, query *repository.ListQuery) ([]models.FuelContract, int64, error) {
	return s.contractRepo.List(ctx, query)
}

// FindActiveByFuelType returns the active contract for a fuel type, or
// ErrContractInactive when none is active.
func (s *LedgerService) FindActiveByFuelType(ctx context.Context, fuelType string) (*models.FuelContract, error) {
	contract, err := s.contractRepo.FindActiveByFuelType(ctx, fuelType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractInactive
		}
		return nil, err
	}
	return contract, nil
}

// CreateContract creates a fuel contract. An active contract for a fuel type
// that already has one is rejected; a new contract always starts with zero
// accumulated spend and its full planned quantity as balance.
func (s *LedgerService) CreateContract(ctx context.Context, contract *models.FuelContract, actor string) error {
	if contract.Status == "" {
		contract.Status = models.ContractStatusActive
	}

	if contract.IsActive() {
		if err := s.checkDuplicateActive(ctx, contract.FuelType, 0); err != nil {
			return err
		}
	}

	contract.AccumulatedSpend = decimal.Zero
	contract.RecomputeBalance()

	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}

	_ = s.auditSvc.Log(ctx, models.AuditActionCreate, "FuelContract", contract.ID, actor,
		fmt.Sprintf("Contrato de %s criado para %s", contract.FuelType, contract.Department))
	return nil
}

// UpdateContract applies edits to an existing contract. The duplicate-active
// check also guards reactivation, excluding the contract itself. Balance is
// recomputed on every mutation.
func (s *LedgerService) UpdateContract(ctx context.Context, id uint, updated *models.FuelContract, actor string) (*models.FuelContract, error) {
	contract, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Status == models.ContractStatusActive && !contract.IsActive() {
		if err := s.checkDuplicateActive(ctx, updated.FuelType, id); err != nil {
			return nil, err
		}
		csm := statemachine.NewContractFSM(contract)
		if err := csm.Activate(ctx); err != nil {
			return nil, err
		}
	} else if updated.Status == models.ContractStatusInactive && contract.IsActive() {
		csm := statemachine.NewContractFSM(contract)
		if err := csm.Deactivate(ctx); err != nil {
			return nil, err
		}
	}

	contract.Department = updated.Department
	contract.FuelType = updated.FuelType
	contract.EndDate = updated.EndDate
	contract.PlannedQuantity = updated.PlannedQuantity
	contract.UnitPrice = updated.UnitPrice
	contract.Notes = updated.Notes
	contract.RecomputeBalance()

	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	_ = s.auditSvc.Log(ctx, models.AuditActionUpdate, "FuelContract", contract.ID, actor,
		fmt.Sprintf("Contrato de %s atualizado", contract.FuelType))
	return contract, nil
}

// RecordTransaction accumulates quantity × unit price against the contract.
// Balance may go negative; over-budget spend stays visible as a negative
// remainder rather than being rejected.
func (s *LedgerService) RecordTransaction(ctx context.Context, contractID uint, quantity, unitPrice decimal.Decimal) error {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return err
	}

	contract.AccumulatedSpend = contract.AccumulatedSpend.Add(quantity.Mul(unitPrice))
	contract.RecomputeBalance()

	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// ReverseTransaction backs a previously recorded transaction out of the
// contract. Accumulated spend is clamped at zero so partial or duplicate
// reversals never drive it negative.
func (s *LedgerService) ReverseTransaction(ctx context.Context, contractID uint, prevQuantity, prevUnitPrice decimal.Decimal) error {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return err
	}

	contract.AccumulatedSpend = contract.AccumulatedSpend.Sub(prevQuantity.Mul(prevUnitPrice))
	if contract.AccumulatedSpend.IsNegative() {
		contract.AccumulatedSpend = decimal.Zero
	}
	contract.RecomputeBalance()

	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return fmt.Errorf("failed to reverse transaction: %w", err)
	}
	return nil
}

// SweepExpired expires every active contract whose end date passed before
// now. Idempotent: a second run with no time passing finds nothing and emits
// no audit entry. The caller schedules it; the ledger only provides the
// operation.
func (s *LedgerService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	contracts, err := s.contractRepo.FindActiveEndedBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to load expiring contracts: %w", err)
	}

	count := 0
	for i := range contracts {
		contract := &contracts[i]
		csm := statemachine.NewContractFSM(contract)
		if err := csm.Expire(ctx); err != nil {
			logger.Error(fmt.Sprintf("[Ledger] Skipping contract %d in sweep: %v", contract.ID, err))
			continue
		}
		if err := s.contractRepo.Update(ctx, contract); err != nil {
			return count, fmt.Errorf("failed to expire contract %d: %w", contract.ID, err)
		}
		count++
	}

	if count > 0 {
		_ = s.auditSvc.Log(ctx, models.AuditActionSweep, "FuelContract", 0, "system",
			fmt.Sprintf("%d contrato(s) expirado(s) pela varredura de vigência", count))
	}
	return count, nil
}

func (s *LedgerService) checkDuplicateActive(ctx context.Context, fuelType string, excludeID uint) error {
	existing, err := s.contractRepo.FindActiveByFuelType(ctx, fuelType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return ErrDuplicateActiveContract
	}
	return nil
}
