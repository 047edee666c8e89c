package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jrmoura/frota-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders prepared monthly reports as CSV and XLSX for the
// spreadsheet-minded. Same grouping data as the PDF, different clothes.
type ExportService struct {
	reportSvc *ReportService
	auditSvc  AuditLogger
}

func NewExportService(reportSvc *ReportService, auditSvc AuditLogger) *ExportService {
	return &ExportService{reportSvc: reportSvc, auditSvc: auditSvc}
}

func (s *ExportService) ExportCSV(ctx context.Context, report *models.MonthlyReport, actor string) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Relatório de Abastecimentos", report.Subtitle})
	_ = writer.Write([]string{""})

	for _, group := range report.Groups {
		_ = writer.Write([]string{group.Title})
		_ = writer.Write([]string{"Data", "Motorista", "Veículo", "Setor", "Combustível", "Qtde (L)", "Vl. Unit.", "Total", "Km"})
		for _, row := range group.Rows {
			km := ParseLenient(row.DestinationKm) - ParseLenient(row.OriginKm)
			if km < 0 {
				km = 0
			}
			_ = writer.Write([]string{
				row.TicketDate,
				row.DriverName,
				row.VehiclePlate,
				row.Department,
				row.FuelType,
				FormatNumber(ParseLenient(row.Quantity)),
				FormatNumber(ParseLenient(row.UnitPrice)),
				FormatBRL(ParseLenient(row.Total)),
				FormatNumber(km),
			})
		}
		_ = writer.Write([]string{"Subtotal", "", "", "", "",
			FormatNumber(group.Subtotal.Quantity),
			"",
			FormatBRL(group.Subtotal.TotalValue),
			FormatNumber(group.Subtotal.Distance)})
		_ = writer.Write([]string{""})
	}

	_ = writer.Write([]string{"Total Geral", "", "", "", "", "", "", FormatBRL(report.GrandTotal), ""})
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("relatorio_abastecimentos_%s.csv", s.reportSvc.now().Format("2006-01-02"))
	_ = s.auditSvc.Log(ctx, models.AuditActionExport, "MonthlyReport", 0, actor,
		fmt.Sprintf("Relatório exportado em CSV (%d registro(s))", report.RowCount()))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, report *models.MonthlyReport, actor string) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Abastecimentos"
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	monthStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2D3748"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Relatório de Abastecimentos")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	_ = f.SetCellValue(sheet, "A2", report.Subtitle)

	rowIdx := 4
	headers := []string{"Data", "Motorista", "Veículo", "Setor", "Combustível", "Qtde (L)", "Vl. Unit.", "Total", "Km"}
	for _, group := range report.Groups {
		cell := fmt.Sprintf("A%d", rowIdx)
		_ = f.SetCellValue(sheet, cell, group.Title)
		_ = f.SetCellStyle(sheet, cell, cell, monthStyle)
		rowIdx++

		for col, h := range headers {
			name, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
			_ = f.SetCellValue(sheet, name, h)
			_ = f.SetCellStyle(sheet, name, name, headerStyle)
		}
		rowIdx++

		for _, row := range group.Rows {
			km := ParseLenient(row.DestinationKm) - ParseLenient(row.OriginKm)
			if km < 0 {
				km = 0
			}
			values := []interface{}{
				row.TicketDate,
				row.DriverName,
				row.VehiclePlate,
				row.Department,
				row.FuelType,
				ParseLenient(row.Quantity),
				ParseLenient(row.UnitPrice),
				ParseLenient(row.Total),
				km,
			}
			for col, v := range values {
				name, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
				_ = f.SetCellValue(sheet, name, v)
			}
			rowIdx++
		}

		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), "Subtotal")
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", rowIdx), group.Subtotal.Quantity)
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", rowIdx), group.Subtotal.TotalValue)
		_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", rowIdx), group.Subtotal.Distance)
		rowIdx += 2
	}

	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), "Total Geral")
	_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", rowIdx), report.GrandTotal)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("A%d", rowIdx), titleStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("relatorio_abastecimentos_%s.xlsx", s.reportSvc.now().Format("2006-01-02"))
	_ = s.auditSvc.Log(ctx, models.AuditActionExport, "MonthlyReport", 0, actor,
		fmt.Sprintf("Relatório exportado em XLSX (%d registro(s))", report.RowCount()))
	return buf.Bytes(), filename, nil
}
