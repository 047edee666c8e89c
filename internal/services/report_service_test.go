package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jrmoura/frota-api/internal/config"
	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeVehicleRepo struct {
	vehicles []models.RegisteredVehicle
}

func (r *fakeVehicleRepo) FindByID(ctx context.Context, id uint) (*models.RegisteredVehicle, error) {
	for i := range r.vehicles {
		if r.vehicles[i].ID == id {
			return &r.vehicles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVehicleRepo) FindAll(ctx context.Context) ([]models.RegisteredVehicle, error) {
	return r.vehicles, nil
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.RegisteredVehicle) error {
	vehicle.ID = uint(len(r.vehicles) + 1)
	r.vehicles = append(r.vehicles, *vehicle)
	return nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, vehicle *models.RegisteredVehicle) error {
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id uint) error { return nil }

func (r *fakeVehicleRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.RegisteredVehicle, int64, error) {
	return r.vehicles, int64(len(r.vehicles)), nil
}

type fakeEmployeeRepo struct {
	employees []models.Employee
}

func (r *fakeEmployeeRepo) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	for i := range r.employees {
		if r.employees[i].ID == id {
			return &r.employees[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindByName(ctx context.Context, fullName string) (*models.Employee, error) {
	for i := range r.employees {
		if r.employees[i].FullName == fullName {
			return &r.employees[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindAll(ctx context.Context) ([]models.Employee, error) {
	return r.employees, nil
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error { return nil }
func (r *fakeEmployeeRepo) Update(ctx context.Context, employee *models.Employee) error { return nil }
func (r *fakeEmployeeRepo) Delete(ctx context.Context, id uint) error                   { return nil }

func (r *fakeEmployeeRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
	return r.employees, int64(len(r.employees)), nil
}

var reportTestNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)

func newReportFixture() (*ReportService, *mockAudit) {
	audit := &mockAudit{}
	vehicleSvc := NewVehicleService(&fakeVehicleRepo{vehicles: []models.RegisteredVehicle{
		{ID: 1, Plate: "ABC-1234", Brand: "Fiat", Model: "Strada"},
	}}, audit)
	employeeSvc := NewEmployeeService(&fakeEmployeeRepo{employees: []models.Employee{
		{ID: 1, FullName: "João da Silva", CNHNumber: "12345678900", CNHCategory: "D"},
	}}, audit)

	cfg := &config.Config{
		OrgName:       "Prefeitura Municipal",
		OrgDepartment: "Setor de Transporte",
		OrgAddress:    "Praça Central, 1",
	}

	svc := NewReportService(vehicleSvc, employeeSvc, audit, nil, cfg)
	svc.now = func() time.Time { return reportTestNow }
	return svc, audit
}

func ticket(date, plate, driver, quantity, total string) models.FuelingTicket {
	return models.FuelingTicket{
		TicketDate:   date,
		VehiclePlate: plate,
		DriverName:   driver,
		Department:   "Transporte",
		FuelType:     "Diesel",
		Quantity:     quantity,
		UnitPrice:    "5,00",
		Total:        total,
	}
}

func TestPrepareMonthlyReportRequiresFilter(t *testing.T) {
	svc, _ := newReportFixture()
	_, err := svc.PrepareMonthlyReport([]models.FuelingTicket{ticket("2024-01-10", "ABC-1234", "João da Silva", "30,00", "150,00")}, ReportFilter{})
	assert.ErrorIs(t, err, ErrMissingFilter)
}

func TestPrepareMonthlyReportNoResults(t *testing.T) {
	svc, _ := newReportFixture()
	tickets := []models.FuelingTicket{ticket("2024-01-10", "ABC-1234", "João da Silva", "30,00", "150,00")}
	_, err := svc.PrepareMonthlyReport(tickets, ReportFilter{VehiclePlate: "ZZZ-0000"})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestTwoMonthScenario(t *testing.T) {
	svc, _ := newReportFixture()

	// Callers pre-sort date-descending, so February comes first
	tickets := []models.FuelingTicket{
		ticket("2024-02-05", "ABC-1234", "João da Silva", "40,10", "200,50"),
		ticket("2024-01-10", "ABC-1234", "João da Silva", "30,00", "150,00"),
	}

	report, err := svc.PrepareMonthlyReport(tickets, ReportFilter{StartDate: "2024-01-01", EndDate: "2024-12-31"})
	require.NoError(t, err)

	require.Len(t, report.Groups, 2)
	assert.Equal(t, "FEVEREIRO 2024", report.Groups[0].Title)
	assert.Equal(t, "JANEIRO 2024", report.Groups[1].Title)
	assert.Len(t, report.Groups[0].Rows, 1)
	assert.Len(t, report.Groups[1].Rows, 1)
	assert.InDelta(t, 350.50, report.GrandTotal, 1e-9)
}

func TestDateRangeBoundariesAreInclusive(t *testing.T) {
	svc, _ := newReportFixture()

	tickets := []models.FuelingTicket{
		ticket("2024-01-10T00:00:00", "ABC-1234", "João da Silva", "1,00", "5,00"),
		ticket("2024-01-20T23:59:59", "ABC-1234", "João da Silva", "1,00", "5,00"),
		ticket("2024-01-09T23:59:59", "ABC-1234", "João da Silva", "1,00", "5,00"),
		ticket("2024-01-21T00:00:00", "ABC-1234", "João da Silva", "1,00", "5,00"),
	}

	report, err := svc.PrepareMonthlyReport(tickets, ReportFilter{StartDate: "2024-01-10", EndDate: "2024-01-20"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.RowCount())
}

func TestVehicleFilterIntersectsDateRange(t *testing.T) {
	svc, _ := newReportFixture()

	tickets := []models.FuelingTicket{
		ticket("2024-01-10", "ABC-1234", "João da Silva", "1,00", "5,00"),
		ticket("2024-02-10", "ABC-1234", "João da Silva", "1,00", "5,00"),
		ticket("2024-01-15", "XYZ-9876", "Maria Souza", "1,00", "5,00"),
	}

	report, err := svc.PrepareMonthlyReport(tickets, ReportFilter{
		VehiclePlate: "ABC-1234",
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.RowCount())
	assert.Contains(t, report.Subtitle, "ABC-1234")

	// Driver filter without a range sees both months
	report, err = svc.PrepareMonthlyReport(tickets, ReportFilter{DriverName: "João da Silva"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.RowCount())
}

func TestGroupingCompletenessAndGrandTotal(t *testing.T) {
	svc, _ := newReportFixture()

	tickets := []models.FuelingTicket{
		ticket("2024-03-01", "ABC-1234", "João da Silva", "10,00", "50,00"),
		ticket("2024-03-02", "ABC-1234", "João da Silva", "20,00", "100,00"),
		ticket("2024-02-15", "ABC-1234", "João da Silva", "30,00", "150,00"),
		ticket("2024-01-20", "ABC-1234", "João da Silva", "40,00", "200,00"),
		ticket("2024-01-25", "ABC-1234", "João da Silva", "abc", "0,00"),
	}

	report, err := svc.PrepareMonthlyReport(tickets, ReportFilter{StartDate: "2024-01-01", EndDate: "2024-03-31"})
	require.NoError(t, err)

	assert.Equal(t, len(tickets), report.RowCount())

	var sum float64
	for _, g := range report.Groups {
		sum += g.Subtotal.TotalValue
	}
	assert.InDelta(t, sum, report.GrandTotal, 1e-9)
	assert.InDelta(t, 500.0, report.GrandTotal, 1e-9)
}

func TestLenientQuantityContributesZero(t *testing.T) {
	svc, _ := newReportFixture()

	tickets := []models.FuelingTicket{
		ticket("2024-01-10", "ABC-1234", "João da Silva", "abc", "50,00"),
		ticket("2024-01-11", "ABC-1234", "João da Silva", "10,00", "50,00"),
	}

	report, err := svc.PrepareMonthlyReport(tickets, ReportFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	assert.InDelta(t, 10.0, report.Groups[0].Subtotal.Quantity, 1e-9)
}

func TestUnparsableDateGroupsUnderNow(t *testing.T) {
	svc, _ := newReportFixture()

	tickets := []models.FuelingTicket{
		ticket("data inválida", "ABC-1234", "João da Silva", "10,00", "50,00"),
	}

	report, err := svc.PrepareMonthlyReport(tickets, ReportFilter{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "2024-03", report.Groups[0].Key)
	assert.Equal(t, "MARÇO 2024", report.Groups[0].Title)
}

func TestDistanceNeverNegative(t *testing.T) {
	svc, _ := newReportFixture()

	tk := ticket("2024-01-10", "ABC-1234", "João da Silva", "10,00", "50,00")
	tk.OriginKm = "100,00"
	tk.DestinationKm = "40,00"
	tk2 := ticket("2024-01-11", "ABC-1234", "João da Silva", "10,00", "50,00")
	tk2.OriginKm = "40,00"
	tk2.DestinationKm = "100,00"

	report, err := svc.PrepareMonthlyReport([]models.FuelingTicket{tk, tk2}, ReportFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	assert.InDelta(t, 60.0, report.Groups[0].Subtotal.Distance, 1e-9)
}

func TestRenderMonthlyReportIsDeterministic(t *testing.T) {
	svc, audit := newReportFixture()

	tickets := []models.FuelingTicket{
		ticket("2024-02-05", "ABC-1234", "João da Silva", "40,10", "200,50"),
		ticket("2024-01-10", "ABC-1234", "João da Silva", "30,00", "150,00"),
	}
	report, err := svc.PrepareMonthlyReport(tickets, ReportFilter{StartDate: "2024-01-01", EndDate: "2024-12-31"})
	require.NoError(t, err)

	ctx := context.Background()
	first, filename, err := svc.RenderMonthlyReport(ctx, report, "Relatório de Abastecimentos", "tester")
	require.NoError(t, err)
	second, _, err := svc.RenderMonthlyReport(ctx, report, "Relatório de Abastecimentos", "tester")
	require.NoError(t, err)

	// The saved file and the data URI carry the same bytes
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(svc.DataURI(first), "data:application/pdf;base64,"))
	assert.Equal(t, "relatorio_abastecimentos_2024-03-15.pdf", filename)
	assert.Len(t, audit.entries, 2)
}

func TestReceiptCopySchedule(t *testing.T) {
	// The schedule is fixed: copy 1 bare, copy 2 adds the odometer line,
	// copy 3 adds odometer and destinations.
	require.Len(t, receiptCopies, 3)

	assert.False(t, receiptCopies[0].ShowOdometer)
	assert.False(t, receiptCopies[0].ShowDestinations)
	assert.Contains(t, receiptCopies[0].Title, "1ª VIA")

	assert.True(t, receiptCopies[1].ShowOdometer)
	assert.False(t, receiptCopies[1].ShowDestinations)
	assert.Contains(t, receiptCopies[1].Title, "2ª VIA")

	assert.True(t, receiptCopies[2].ShowOdometer)
	assert.True(t, receiptCopies[2].ShowDestinations)
	assert.Contains(t, receiptCopies[2].Title, "3ª VIA")
}

func TestRenderTicketReceipt(t *testing.T) {
	svc, audit := newReportFixture()

	tk := ticket("2024-01-10", "ABC-1234", "João da Silva", "30,00", "150,00")
	tk.ID = 7
	tk.OdometerWorking = true
	tk.OdometerStart = "12000"
	tk.OdometerEnd = "12150"
	tk.OriginCity = "Sede"
	tk.OriginKm = "0,00"
	tk.DestinationCity = "Capital"
	tk.DestinationKm = "150,00"

	data, filename, err := svc.RenderTicketReceipt(context.Background(), &tk, "tester")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "recibo_abastecimento_7.pdf", filename)
	assert.Len(t, audit.entries, 1)

	// Rendering twice yields identical bytes
	again, _, err := svc.RenderTicketReceipt(context.Background(), &tk, "tester")
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestVehicleResolveTwoTierLookup(t *testing.T) {
	svc, _ := newReportFixture()
	ctx := context.Background()

	v, err := svc.vehicleSvc.Resolve(ctx, "  abc-1234 ")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "Fiat", v.Brand)

	// Second tier strips separators
	v, err = svc.vehicleSvc.Resolve(ctx, "ABC1234")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "Strada", v.Model)

	v, err = svc.vehicleSvc.Resolve(ctx, "NOPE-0000")
	require.NoError(t, err)
	assert.Nil(t, v)
}
