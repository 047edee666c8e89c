package services

import (
	"fmt"
	"time"

	"github.com/jrmoura/frota-api/internal/config"
	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/storage"
)

// ReportFilter selects the tickets for a monthly report. Exactly one mode
// applies: a date range, a vehicle plate (optionally intersected with a
// range) or a driver name (optionally intersected with a range).
type ReportFilter struct {
	StartDate    string `form:"start_date" json:"start_date"` // "2006-01-02"
	EndDate      string `form:"end_date" json:"end_date"`
	VehiclePlate string `form:"vehicle_plate" json:"vehicle_plate"`
	DriverName   string `form:"driver_name" json:"driver_name"`
}

// ReportService groups filtered tickets into month buckets with subtotals
// and renders them as documents.
type ReportService struct {
	vehicleSvc  *VehicleService
	employeeSvc *EmployeeService
	auditSvc    AuditLogger
	storage     *storage.LocalStorage
	cfg         *config.Config

	// now is swappable so tests control the lenient-date fallback and the
	// generation timestamp.
	now func() time.Time
}

// NewReportService creates a new report service
func NewReportService(vehicleSvc *VehicleService, employeeSvc *EmployeeService, auditSvc AuditLogger, store *storage.LocalStorage, cfg *config.Config) *ReportService {
	return &ReportService{
		vehicleSvc:  vehicleSvc,
		employeeSvc: employeeSvc,
		auditSvc:    auditSvc,
		storage:     store,
		cfg:         cfg,
		now:         time.Now,
	}
}

// PrepareMonthlyReport filters tickets and buckets them by calendar
// year-month. Rows stay in input order and groups appear in the order first
// encountered, so callers pre-sort tickets date-descending for a
// most-recent-first document. A ticket with an unparsable date counts as
// fueled now rather than being dropped.
func (s *ReportService) PrepareMonthlyReport(tickets []models.FuelingTicket, filter ReportFilter) (*models.MonthlyReport, error) {
	rangeSet, start, end, err := filter.dateRange()
	if err != nil {
		return nil, err
	}
	if filter.VehiclePlate == "" && filter.DriverName == "" && !rangeSet {
		return nil, ErrMissingFilter
	}

	now := s.now()
	var filtered []models.FuelingTicket
	for _, t := range tickets {
		if filter.VehiclePlate != "" && t.VehiclePlate != filter.VehiclePlate {
			continue
		}
		if filter.DriverName != "" && t.DriverName != filter.DriverName {
			continue
		}
		if rangeSet {
			d := ParseTicketDate(t.TicketDate, now)
			if d.Before(start) || d.After(end) {
				continue
			}
		}
		filtered = append(filtered, t)
	}

	if len(filtered) == 0 {
		return nil, ErrNoResults
	}

	report := &models.MonthlyReport{Subtitle: filter.subtitle()}
	index := map[string]int{}
	for _, t := range filtered {
		d := ParseTicketDate(t.TicketDate, now)
		key := d.Format("2006-01")

		i, ok := index[key]
		if !ok {
			i = len(report.Groups)
			index[key] = i
			report.Groups = append(report.Groups, models.MonthGroup{
				Key:   key,
				Title: MonthTitle(d),
			})
		}

		g := &report.Groups[i]
		g.Rows = append(g.Rows, t)
		g.Subtotal.Quantity += ParseLenient(t.Quantity)
		g.Subtotal.TotalValue += ParseLenient(t.Total)
		if dist := ParseLenient(t.DestinationKm) - ParseLenient(t.OriginKm); dist > 0 {
			g.Subtotal.Distance += dist
		}
	}

	for _, g := range report.Groups {
		report.GrandTotal += g.Subtotal.TotalValue
	}
	return report, nil
}

// dateRange resolves the inclusive filter window: the full start day from
// 00:00:00.000 through the full end day to 23:59:59.999.
func (f ReportFilter) dateRange() (bool, time.Time, time.Time, error) {
	if f.StartDate == "" || f.EndDate == "" {
		return false, time.Time{}, time.Time{}, nil
	}
	start, err := time.ParseInLocation("2006-01-02", f.StartDate, time.Local)
	if err != nil {
		return false, time.Time{}, time.Time{}, ErrMissingFilter
	}
	end, err := time.ParseInLocation("2006-01-02", f.EndDate, time.Local)
	if err != nil {
		return false, time.Time{}, time.Time{}, ErrMissingFilter
	}
	end = end.Add(24*time.Hour - time.Millisecond)
	return true, start, end, nil
}

func (f ReportFilter) subtitle() string {
	period := ""
	if f.StartDate != "" && f.EndDate != "" {
		start, errS := time.ParseInLocation("2006-01-02", f.StartDate, time.Local)
		end, errE := time.ParseInLocation("2006-01-02", f.EndDate, time.Local)
		if errS == nil && errE == nil {
			period = fmt.Sprintf("Período: %s a %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
		}
	}

	switch {
	case f.VehiclePlate != "" && period != "":
		return fmt.Sprintf("Veículo: %s | %s", f.VehiclePlate, period)
	case f.VehiclePlate != "":
		return fmt.Sprintf("Veículo: %s", f.VehiclePlate)
	case f.DriverName != "" && period != "":
		return fmt.Sprintf("Motorista: %s | %s", f.DriverName, period)
	case f.DriverName != "":
		return fmt.Sprintf("Motorista: %s", f.DriverName)
	default:
		return period
	}
}

// SaveReport persists rendered document bytes and returns the stored
// relative path. The bytes are exactly what DataURI encodes, so the file
// and preview paths stay byte-identical.
func (s *ReportService) SaveReport(data []byte, filename string) (string, error) {
	return s.storage.SaveDocument(data, filename)
}

// DataURI returns the rendered document as an embeddable PDF data URI
func (s *ReportService) DataURI(data []byte) string {
	return storage.DataURI(data, "application/pdf")
}
