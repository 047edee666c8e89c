package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/jrmoura/frota-api/internal/services"
)

type TicketHandler struct {
	ticketService *services.TicketService
	reportService *services.ReportService
}

func NewTicketHandler(ticketService *services.TicketService, reportService *services.ReportService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, reportService: reportService}
}

// Index lists fueling tickets with pagination and filters
func (h *TicketHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if plate := c.Query("vehicle_plate"); plate != "" {
		query.Filters["vehicle_plate"] = plate
	}
	if driver := c.Query("driver_name"); driver != "" {
		query.Filters["driver_name"] = driver
	}
	if contractID := c.Query("contract_id"); contractID != "" {
		query.Filters["contract_id"] = contractID
	}

	tickets, total, err := h.ticketService.ListTickets(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// Show retrieves a single ticket
func (h *TicketHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("ticket_id"), 10, 32)
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

// Create records a fueling event and accumulates it on the active contract
func (h *TicketHandler) Create(c *gin.Context) {
	var ticket models.FuelingTicket
	if err := BindNestedOrFlat(c, "ticket", &ticket); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ticketService.CreateTicket(c.Request.Context(), &ticket, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

// Update edits a ticket and rebalances the affected contracts
func (h *TicketHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("ticket_id"), 10, 32)

	var updated models.FuelingTicket
	if err := BindNestedOrFlat(c, "ticket", &updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), uint(id), &updated, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

// Delete removes a ticket and reverses its accumulation
func (h *TicketHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("ticket_id"), 10, 32)
	if err := h.ticketService.DeleteTicket(c.Request.Context(), uint(id), actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Abastecimento removido"})
}

// ReceiptPDF downloads the three-copy receipt for a ticket
func (h *TicketHandler) ReceiptPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("ticket_id"), 10, 32)
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data, filename, err := h.reportService.RenderTicketReceipt(c.Request.Context(), ticket, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ReceiptPreview returns the receipt as an embeddable data URI. The bytes
// are the same the download endpoint serves.
func (h *TicketHandler) ReceiptPreview(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("ticket_id"), 10, 32)
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data, filename, err := h.reportService.RenderTicketReceipt(c.Request.Context(), ticket, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"data_uri": h.reportService.DataURI(data),
	})
}
