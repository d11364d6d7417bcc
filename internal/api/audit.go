package api

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"outage-notifier/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuditHandler struct {
	DB *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{DB: db}
}

// GetAudits returns the send audit trail, newest first.
func (h *AuditHandler) GetAudits(c *gin.Context) {
	var audits []models.SendAudit
	if err := h.DB.Order("created_at DESC").Find(&audits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Return empty array instead of null
	if audits == nil {
		audits = []models.SendAudit{}
	}

	c.JSON(http.StatusOK, audits)
}

// ExportAudits downloads the audit trail as CSV, oldest first, with the
// same column order as the legacy sends.csv file.
func (h *AuditHandler) ExportAudits(c *gin.Context) {
	var audits []models.SendAudit
	if err := h.DB.Order("created_at").Find(&audits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{
		"timestamp_iso", "area", "channel", "count", "sent", "failed", "fingerprint",
		"msg_type", "eta",
		"pricing_category", "unit_price", "estimated_cost", "currency",
	})
	for _, a := range audits {
		w.Write([]string{
			a.CreatedAt.UTC().Format(time.RFC3339),
			a.Area,
			a.Channel,
			strconv.Itoa(a.Count),
			strconv.Itoa(a.Sent),
			strconv.Itoa(a.Failed),
			a.Fingerprint,
			a.MsgType,
			a.ETA,
			a.PricingCategory,
			strconv.FormatFloat(a.UnitPrice, 'f', -1, 64),
			strconv.FormatFloat(a.EstimatedCost, 'f', -1, 64),
			a.Currency,
		})
	}
	w.Flush()

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=sends.csv")
	c.String(http.StatusOK, buf.String())
}
