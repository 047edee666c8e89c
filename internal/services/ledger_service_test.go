package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory ContractRepository. FindByID hands out copies so a mutation only
// counts once Update persists it, matching the real repository.
type fakeContractRepo struct {
	contracts map[uint]models.FuelContract
	nextID    uint
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: map[uint]models.FuelContract{}, nextID: 1}
}

func (r *fakeContractRepo) FindByID(ctx context.Context, id uint) (*models.FuelContract, error) {
	c, ok := r.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeContractRepo) FindActiveByFuelType(ctx context.Context, fuelType string) (*models.FuelContract, error) {
	for _, c := range r.contracts {
		if c.FuelType == fuelType && c.Status == models.ContractStatusActive {
			found := c
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeContractRepo) FindActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]models.FuelContract, error) {
	var out []models.FuelContract
	for _, c := range r.contracts {
		if c.Status == models.ContractStatusActive && c.EndDate.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContractRepo) Create(ctx context.Context, contract *models.FuelContract) error {
	contract.ID = r.nextID
	r.nextID++
	r.contracts[contract.ID] = *contract
	return nil
}

func (r *fakeContractRepo) Update(ctx context.Context, contract *models.FuelContract) error {
	if _, ok := r.contracts[contract.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.contracts[contract.ID] = *contract
	return nil
}

func (r *fakeContractRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.FuelContract, int64, error) {
	var out []models.FuelContract
	for _, c := range r.contracts {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

// mockAudit captures audit entries in memory
type mockAudit struct {
	entries []string
}

func (m *mockAudit) Log(ctx context.Context, action, entity string, entityID uint, actor, details string) error {
	m.entries = append(m.entries, fmt.Sprintf("%s %s %d", action, entity, entityID))
	return nil
}

func newLedgerFixture() (*LedgerService, *fakeContractRepo, *mockAudit) {
	repo := newFakeContractRepo()
	audit := &mockAudit{}
	return NewLedgerService(repo, audit), repo, audit
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestCreateContractRejectsDuplicateActive(t *testing.T) {
	svc, _, _ := newLedgerFixture()
	ctx := context.Background()

	first := &models.FuelContract{
		Department:      "Transporte",
		FuelType:        "Diesel",
		Status:          models.ContractStatusActive,
		EndDate:         time.Now().AddDate(1, 0, 0),
		PlannedQuantity: dec("1000"),
		UnitPrice:       dec("5.00"),
	}
	require.NoError(t, svc.CreateContract(ctx, first, "tester"))

	second := &models.FuelContract{
		Department:      "Saúde",
		FuelType:        "Diesel",
		Status:          models.ContractStatusActive,
		EndDate:         time.Now().AddDate(1, 0, 0),
		PlannedQuantity: dec("500"),
		UnitPrice:       dec("5.00"),
	}
	err := svc.CreateContract(ctx, second, "tester")
	assert.ErrorIs(t, err, ErrDuplicateActiveContract)

	// A different fuel type is fine
	second.FuelType = "Gasolina"
	assert.NoError(t, svc.CreateContract(ctx, second, "tester"))
}

func TestReactivationAfterDeactivate(t *testing.T) {
	svc, _, _ := newLedgerFixture()
	ctx := context.Background()

	contract := &models.FuelContract{
		Department:      "Transporte",
		FuelType:        "Diesel",
		Status:          models.ContractStatusActive,
		EndDate:         time.Now().AddDate(1, 0, 0),
		PlannedQuantity: dec("1000"),
		UnitPrice:       dec("5.00"),
	}
	require.NoError(t, svc.CreateContract(ctx, contract, "tester"))

	other := &models.FuelContract{
		Department:      "Saúde",
		FuelType:        "Diesel",
		Status:          models.ContractStatusInactive,
		EndDate:         time.Now().AddDate(1, 0, 0),
		PlannedQuantity: dec("500"),
		UnitPrice:       dec("5.00"),
	}
	require.NoError(t, svc.CreateContract(ctx, other, "tester"))

	// Activating the second while the first is active is rejected
	activated := *other
	activated.Status = models.ContractStatusActive
	_, err := svc.UpdateContract(ctx, other.ID, &activated, "tester")
	assert.ErrorIs(t, err, ErrDuplicateActiveContract)

	// Deactivate the first, then the second may activate
	deactivated := *contract
	deactivated.Status = models.ContractStatusInactive
	_, err = svc.UpdateContract(ctx, contract.ID, &deactivated, "tester")
	require.NoError(t, err)

	updated, err := svc.UpdateContract(ctx, other.ID, &activated, "tester")
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusActive, updated.Status)
}

func TestBalanceInvariantThroughRecordAndReverse(t *testing.T) {
	svc, repo, _ := newLedgerFixture()
	ctx := context.Background()

	contract := &models.FuelContract{
		Department:      "Transporte",
		FuelType:        "Diesel",
		Status:          models.ContractStatusActive,
		EndDate:         time.Now().AddDate(1, 0, 0),
		PlannedQuantity: dec("1000"),
		UnitPrice:       dec("5.00"),
	}
	require.NoError(t, svc.CreateContract(ctx, contract, "tester"))
	assert.True(t, dec("1000").Equal(contract.Balance))

	// 100 liters at 5.00
	require.NoError(t, svc.RecordTransaction(ctx, contract.ID, dec("100"), dec("5.00")))
	stored, _ := repo.FindByID(ctx, contract.ID)
	assert.True(t, dec("500").Equal(stored.AccumulatedSpend), "accumulated = %s", stored.AccumulatedSpend)
	assert.True(t, dec("500").Equal(stored.Balance), "balance = %s", stored.Balance)

	// Reversal restores the full planned quantity
	require.NoError(t, svc.ReverseTransaction(ctx, contract.ID, dec("100"), dec("5.00")))
	stored, _ = repo.FindByID(ctx, contract.ID)
	assert.True(t, stored.AccumulatedSpend.IsZero())
	assert.True(t, dec("1000").Equal(stored.Balance))

	// Invariant holds after every step
	assert.True(t, stored.Balance.Equal(stored.PlannedQuantity.Sub(stored.AccumulatedSpend)))
}

func TestAccumulationMayGoNegativeButReversalClampsAtZero(t *testing.T) {
	svc, repo, _ := newLedgerFixture()
	ctx := context.Background()

	contract := &models.FuelContract{
		Department:      "Transporte",
		FuelType:        "Diesel",
		Status:          models.ContractStatusActive,
		EndDate:         time.Now().AddDate(1, 0, 0),
		PlannedQuantity: dec("100"),
		UnitPrice:       dec("5.00"),
	}
	require.NoError(t, svc.CreateContract(ctx, contract, "tester"))

	// Over-budget accumulation leaves a negative balance
	require.NoError(t, svc.RecordTransaction(ctx, contract.ID, dec("50"), dec("5.00")))
	stored, _ := repo.FindByID(ctx, contract.ID)
	assert.True(t, dec("-150").Equal(stored.Balance))

	// Reversing more than was accumulated clamps at zero
	require.NoError(t, svc.ReverseTransaction(ctx, contract.ID, dec("100"), dec("5.00")))
	stored, _ = repo.FindByID(ctx, contract.ID)
	assert.True(t, stored.AccumulatedSpend.IsZero())
	assert.True(t, dec("100").Equal(stored.Balance))
}

func TestRecordTransactionNotFound(t *testing.T) {
	svc, _, _ := newLedgerFixture()
	err := svc.RecordTransaction(context.Background(), 99, dec("1"), dec("1"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweepExpiredIsIdempotent(t *testing.T) {
	svc, repo, audit := newLedgerFixture()
	ctx := context.Background()
	now := time.Now()

	expired := &models.FuelContract{
		Department:      "Transporte",
		FuelType:        "Diesel",
		Status:          models.ContractStatusActive,
		EndDate:         now.AddDate(0, -1, 0),
		PlannedQuantity: dec("1000"),
		UnitPrice:       dec("5.00"),
	}
	current := &models.FuelContract{
		Department:      "Saúde",
		FuelType:        "Gasolina",
		Status:          models.ContractStatusActive,
		EndDate:         now.AddDate(0, 1, 0),
		PlannedQuantity: dec("500"),
		UnitPrice:       dec("6.00"),
	}
	require.NoError(t, svc.CreateContract(ctx, expired, "tester"))
	require.NoError(t, svc.CreateContract(ctx, current, "tester"))
	auditBefore := len(audit.entries)

	count, err := svc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, audit.entries, auditBefore+1)

	stored, _ := repo.FindByID(ctx, expired.ID)
	assert.Equal(t, models.ContractStatusExpired, stored.Status)
	stored, _ = repo.FindByID(ctx, current.ID)
	assert.Equal(t, models.ContractStatusActive, stored.Status)

	// Second run with no time passing changes nothing and logs nothing
	count, err = svc.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Len(t, audit.entries, auditBefore+1)
}
