package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/services"
)

type ReportHandler struct {
	ticketService *services.TicketService
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(ticketService *services.TicketService, reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{
		ticketService: ticketService,
		reportService: reportService,
		exportService: exportService,
	}
}

func (h *ReportHandler) prepare(c *gin.Context) (*models.MonthlyReport, bool) {
	var filter services.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	// Tickets come back newest first, so month groups render
	// most-recent-first.
	tickets, err := h.ticketService.FindAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}

	report, err := h.reportService.PrepareMonthlyReport(tickets, filter)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return report, true
}

// Monthly returns the prepared monthly report as JSON for on-screen display
func (h *ReportHandler) Monthly(c *gin.Context) {
	report, ok := h.prepare(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// MonthlyPDF downloads the monthly report as a paginated PDF
func (h *ReportHandler) MonthlyPDF(c *gin.Context) {
	report, ok := h.prepare(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.RenderMonthlyReport(c.Request.Context(), report,
		"Relatório de Abastecimentos", actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// MonthlyPreview returns the report PDF as an embeddable data URI and also
// stores the artifact. Both outputs carry the same bytes.
func (h *ReportHandler) MonthlyPreview(c *gin.Context) {
	report, ok := h.prepare(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.RenderMonthlyReport(c.Request.Context(), report,
		"Relatório de Abastecimentos", actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	path, err := h.reportService.SaveReport(data, filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"path":     path,
		"data_uri": h.reportService.DataURI(data),
	})
}

// MonthlyCSV downloads the monthly report as CSV
func (h *ReportHandler) MonthlyCSV(c *gin.Context) {
	report, ok := h.prepare(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportCSV(c.Request.Context(), report, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// MonthlyXLSX downloads the monthly report as a spreadsheet
func (h *ReportHandler) MonthlyXLSX(c *gin.Context) {
	report, ok := h.prepare(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportXLSX(c.Request.Context(), report, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
