package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jrmoura/frota-api/internal/models"
	"github.com/jrmoura/frota-api/internal/repository"
	"github.com/jrmoura/frota-api/internal/services"
)

type ContractHandler struct {
	ledgerService *services.LedgerService
}

func NewContractHandler(ledgerService *services.LedgerService) *ContractHandler {
	return &ContractHandler{ledgerService: ledgerService}
}

// Index lists fuel contracts with pagination and filters
func (h *ContractHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}
	if fuelType := c.Query("fuel_type"); fuelType != "" {
		query.Filters["fuel_type"] = fuelType
	}

	contracts, total, err := h.ledgerService.ListContracts(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]models.FuelContractResponse, 0, len(contracts))
	for i := range contracts {
		responses = append(responses, contracts[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"contracts": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// Show retrieves a single contract
func (h *ContractHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)
	contract, err := h.ledgerService.GetContract(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}

// Create registers a fuel contract
func (h *ContractHandler) Create(c *gin.Context) {
	var contract models.FuelContract
	if err := BindNestedOrFlat(c, "contract", &contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ledgerService.CreateContract(c.Request.Context(), &contract, actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contract": contract.ToResponse()})
}

// Update applies edits to a contract
func (h *ContractHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)

	var updated models.FuelContract
	if err := BindNestedOrFlat(c, "contract", &updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.ledgerService.UpdateContract(c.Request.Context(), uint(id), &updated, actor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}

// Sweep expires every active contract whose period has ended
func (h *ContractHandler) Sweep(c *gin.Context) {
	count, err := h.ledgerService.SweepExpired(c.Request.Context(), time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": count})
}
