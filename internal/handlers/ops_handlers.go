package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jrmoura/frota-api/internal/services"
)

// HealthHandler answers liveness probes
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AuditHandler lists the audit trail
type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) Index(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, total, err := h.auditService.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": logs, "total": total})
}

// JobHandler exposes background worker statistics
type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.jobService.GetStats()})
}
