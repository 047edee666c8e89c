package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jung-kurt/gofpdf"
)

// pdfEpoch pins the document creation date so identical inputs always
// produce identical bytes, whether the caller saves a file or embeds a data
// URI. Catalog sorting is enabled on every document for the same reason:
// without it gofpdf writes font resources in map iteration order.
var pdfEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// receiptCopy is one of the three fixed receipt vias. The schedule is a
// closed set, not data-driven: copy 2 adds the odometer line, copy 3 adds
// the odometer line and the origin/destination table.
type receiptCopy struct {
	Title            string
	ShowOdometer     bool
	ShowDestinations bool
}

var receiptCopies = [3]receiptCopy{
	{Title: "1ª VIA - POSTO", ShowOdometer: false, ShowDestinations: false},
	{Title: "2ª VIA - CONTROLE INTERNO", ShowOdometer: true, ShowDestinations: false},
	{Title: "3ª VIA - SETOR DE TRANSPORTE", ShowOdometer: true, ShowDestinations: true},
}

var monthlyColumns = []struct {
	Label string
	Width float64
	Align string
}{
	{"Data", 24, "C"},
	{"Motorista", 55, "L"},
	{"Veículo", 28, "C"},
	{"Setor", 45, "L"},
	{"Combustível", 28, "L"},
	{"Qtde (L)", 24, "R"},
	{"Vl. Unit. (R$)", 24, "R"},
	{"Total (R$)", 26, "R"},
	{"Km", 23, "R"},
}

// RenderMonthlyReport renders the prepared report as a paginated PDF: one
// page per month group with a styled table, a subtotal block per group and
// a grand-total block at the end. The audit entry is appended only after the
// document is fully composed; a failed render leaves no trace.
func (s *ReportService) RenderMonthlyReport(ctx context.Context, report *models.MonthlyReport, title, actor string) ([]byte, string, error) {
	generatedAt := s.now()

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 7, tr(title), "", 1, "C", false, 0, "")
		if report.Subtitle != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.CellFormat(0, 5, tr(report.Subtitle), "", 1, "C", false, 0, "")
		}
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 4, tr(fmt.Sprintf("Gerado em %s", generatedAt.Format("02/01/2006 15:04"))), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	for i, group := range report.Groups {
		if i > 0 {
			pdf.AddPage()
		}
		s.renderMonthGroup(pdf, tr, group)
	}

	pdf.Ln(6)
	pdf.SetLineWidth(0.8)
	pdf.Line(10, pdf.GetY(), 287, pdf.GetY())
	pdf.SetLineWidth(0.2)
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("TOTAL GERAL DO PERÍODO: R$ %s", FormatBRL(report.GrandTotal))), "", 1, "R", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("failed to render report: %w", err)
	}

	filename := fmt.Sprintf("relatorio_abastecimentos_%s.pdf", generatedAt.Format("2006-01-02"))
	_ = s.auditSvc.Log(ctx, models.AuditActionExport, "MonthlyReport", 0, actor,
		fmt.Sprintf("Relatório mensal gerado (%d registro(s), %d mês(es))", report.RowCount(), len(report.Groups)))
	return buf.Bytes(), filename, nil
}

func (s *ReportService) renderMonthGroup(pdf *gofpdf.Fpdf, tr func(string) string, group models.MonthGroup) {
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, tr(group.Title), "", 1, "C", false, 0, "")
	pdf.Ln(1)

	s.renderTableHeader(pdf, tr)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range group.Rows {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			s.renderTableHeader(pdf, tr)
			pdf.SetFont("Arial", "", 8)
			pdf.SetTextColor(0, 0, 0)
		}

		fill := i%2 == 1
		pdf.SetFillColor(240, 240, 240)

		km := ParseLenient(row.DestinationKm) - ParseLenient(row.OriginKm)
		if km < 0 {
			km = 0
		}
		cells := []string{
			ParseTicketDate(row.TicketDate, s.now()).Format("02/01/2006"),
			row.DriverName,
			row.VehiclePlate,
			row.Department,
			row.FuelType,
			FormatNumber(ParseLenient(row.Quantity)),
			FormatNumber(ParseLenient(row.UnitPrice)),
			FormatBRL(ParseLenient(row.Total)),
			FormatNumber(km),
		}
		for j, col := range monthlyColumns {
			pdf.CellFormat(col.Width, 6, tr(cells[j]), "1", 0, col.Align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), 287, pdf.GetY())
	pdf.Ln(1)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Quantidade no mês: %s L", FormatNumber(group.Subtotal.Quantity))), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Valor no mês: R$ %s", FormatBRL(group.Subtotal.TotalValue))), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Distância no mês: %s km", FormatNumber(group.Subtotal.Distance))), "", 1, "R", false, 0, "")
}

func (s *ReportService) renderTableHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(45, 55, 72)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range monthlyColumns {
		pdf.CellFormat(col.Width, 7, tr(col.Label), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// RenderTicketReceipt renders one fueling ticket as a three-copy receipt,
// copies separated by dashed rules. Vehicle brand and model come from the
// registered fleet; an unknown plate prints blank.
func (s *ReportService) RenderTicketReceipt(ctx context.Context, ticket *models.FuelingTicket, actor string) ([]byte, string, error) {
	vehicle, err := s.vehicleSvc.Resolve(ctx, ticket.VehiclePlate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve vehicle: %w", err)
	}
	driver, err := s.employeeSvc.FindByName(ctx, ticket.DriverName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve driver: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(12, 10, 12)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	for i, copyDef := range receiptCopies {
		if i > 0 {
			pdf.Ln(3)
			pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
			pdf.Line(12, pdf.GetY(), 198, pdf.GetY())
			pdf.SetDashPattern([]float64{}, 0)
			pdf.Ln(3)
		}
		s.renderReceiptCopy(pdf, tr, ticket, vehicle, driver, copyDef)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("failed to render receipt: %w", err)
	}

	filename := fmt.Sprintf("recibo_abastecimento_%d.pdf", ticket.ID)
	_ = s.auditSvc.Log(ctx, models.AuditActionExport, "FuelingTicket", ticket.ID, actor,
		fmt.Sprintf("Recibo do abastecimento %d gerado", ticket.ID))
	return buf.Bytes(), filename, nil
}

func (s *ReportService) renderReceiptCopy(pdf *gofpdf.Fpdf, tr func(string) string, ticket *models.FuelingTicket, vehicle *models.RegisteredVehicle, driver *models.Employee, copyDef receiptCopy) {
	top := pdf.GetY()

	// Logo placeholder and organization header
	pdf.Rect(12, top, 16, 16, "D")
	pdf.SetXY(32, top)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 5, tr(s.cfg.OrgName), "", 1, "L", false, 0, "")
	pdf.SetX(32)
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 4, tr(s.cfg.OrgDepartment), "", 1, "L", false, 0, "")
	pdf.SetX(32)
	pdf.CellFormat(0, 4, tr(s.cfg.OrgAddress), "", 1, "L", false, 0, "")
	pdf.SetY(top + 17)
	pdf.Line(12, pdf.GetY(), 198, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("REQUISIÇÃO DE ABASTECIMENTO Nº %d - %s", ticket.ID, copyDef.Title)), "", 1, "C", false, 0, "")
	pdf.Ln(1)

	brand, model := "", ""
	if vehicle != nil {
		brand, model = vehicle.Brand, vehicle.Model
	}

	boxTop := pdf.GetY()
	pdf.SetFont("Arial", "", 8)
	pdf.SetXY(15, boxTop+2)
	date := ParseTicketDate(ticket.TicketDate, s.now()).Format("02/01/2006")
	pdf.CellFormat(120, 4, tr(fmt.Sprintf("Setor: %s / %s", ticket.Department, ticket.SubDepartment)), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(fmt.Sprintf("Data: %s", date)), "", 1, "L", false, 0, "")
	cnh, category := "", ""
	if driver != nil {
		cnh, category = driver.CNHNumber, driver.CNHCategory
	}
	pdf.SetX(15)
	pdf.CellFormat(120, 4, tr(fmt.Sprintf("Motorista: %s", ticket.DriverName)), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(fmt.Sprintf("CNH: %s  Cat.: %s", cnh, category)), "", 1, "L", false, 0, "")
	pdf.SetX(15)
	pdf.CellFormat(120, 4, tr(fmt.Sprintf("Placa: %s    Marca/Modelo: %s %s", ticket.VehiclePlate, brand, model)), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(fmt.Sprintf("Rota: %s", ticket.RouteType)), "", 1, "L", false, 0, "")
	pdf.SetX(15)
	pdf.CellFormat(0, 4, tr(fmt.Sprintf("Combustível: %s    Quantidade: %s L    Vl. Unit.: R$ %s    Total: R$ %s",
		ticket.FuelType,
		FormatNumber(ParseLenient(ticket.Quantity)),
		FormatNumber(ParseLenient(ticket.UnitPrice)),
		FormatBRL(ParseLenient(ticket.Total)))), "", 1, "L", false, 0, "")

	if copyDef.ShowOdometer {
		pdf.SetX(15)
		status := "hodômetro inoperante"
		if ticket.OdometerWorking {
			status = fmt.Sprintf("hodômetro: %s a %s", ticket.OdometerStart, ticket.OdometerEnd)
		}
		pdf.CellFormat(0, 4, tr(fmt.Sprintf("Controle: %s    Distância: %s km", status, ticket.Distance)), "", 1, "L", false, 0, "")
	}

	if copyDef.ShowDestinations {
		pdf.SetX(15)
		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(90, 4, tr("Origem"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 4, tr("Destino"), "1", 1, "C", false, 0, "")
		pdf.SetX(15)
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(90, 4, tr(fmt.Sprintf("%s (km %s)", ticket.OriginCity, ticket.OriginKm)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 4, tr(fmt.Sprintf("%s (km %s)", ticket.DestinationCity, ticket.DestinationKm)), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(1)
	boxBottom := pdf.GetY() + 1
	pdf.RoundedRect(13, boxTop, 184, boxBottom-boxTop, 2, "1234", "D")
	pdf.SetY(boxBottom + 8)

	// Signature columns
	sigY := pdf.GetY()
	labels := []string{"Usuário", "Posto", "Fiscal"}
	for i, label := range labels {
		x := 14 + float64(i)*62
		pdf.Line(x, sigY, x+56, sigY)
		pdf.SetXY(x, sigY+1)
		pdf.SetFont("Arial", "", 7)
		pdf.CellFormat(56, 3, tr(label), "", 0, "C", false, 0, "")
	}
	pdf.SetY(sigY + 6)
}
