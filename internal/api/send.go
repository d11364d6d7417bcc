package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"outage-notifier/internal/models"
	"outage-notifier/internal/notify"
	"outage-notifier/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SendHandler struct {
	Controller *notify.Controller
	Pricing    notify.Snapshot
	DB         *gorm.DB
	Hub        *ws.Hub
	Logger     *zap.Logger
}

func NewSendHandler(controller *notify.Controller, pricing notify.Snapshot, db *gorm.DB, hub *ws.Hub, logger *zap.Logger) *SendHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendHandler{Controller: controller, Pricing: pricing, DB: db, Hub: hub, Logger: logger}
}

type SendRequest struct {
	Area     string  `json:"area"`
	Channel  string  `json:"channel"`
	Message  string  `json:"message"`
	DryRun   bool    `json:"dry_run"`
	MsgType  string  `json:"msg_type"`
	ETAStart *string `json:"eta_start"`
	ETAEnd   *string `json:"eta_end"`
}

// Send runs one dispatch attempt, dry or live. Validation failures never
// reach the transport; a concurrent attempt is refused with 409.
func (h *SendHandler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area := strings.TrimSpace(req.Area)
	message := strings.TrimSpace(req.Message)
	channel := strings.ToLower(strings.TrimSpace(req.Channel))
	if channel == "" {
		channel = notify.ChannelWhatsApp
	}

	if area == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Need area and message."})
		return
	}
	if channel != notify.ChannelWhatsApp {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported channel: " + channel})
		return
	}

	kind := messageKind(req.MsgType)
	window := windowFromPtrs(req.ETAStart, req.ETAEnd)
	attemptID := uuid.NewString()
	fp := fingerprint(area, channel, message)

	h.broadcast("send_started", gin.H{
		"attempt_id": attemptID,
		"area":       area,
		"dry_run":    req.DryRun,
	})

	outcome, err := h.Controller.Send(c.Request.Context(), area, message, req.DryRun, kind, window)
	if errors.Is(err, notify.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	category := h.Pricing.Category()

	switch outcome.Kind {
	case notify.OutcomeFailure:
		h.broadcast("send_finished", gin.H{
			"attempt_id": attemptID,
			"severity":   outcome.Severity,
			"error":      outcome.Reason,
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": outcome.Reason})

	case notify.OutcomePreview:
		resp := gin.H{
			"dry_run":          true,
			"attempt_id":       attemptID,
			"area":             area,
			"channel":          channel,
			"msg_type":         string(kind),
			"message_preview":  truncateRunes(message, 160),
			"count":            outcome.RecipientCount,
			"fingerprint":      fp,
			"severity":         outcome.Severity,
			"pricing_category": category,
			"unit_price":       outcome.UnitPrice,
			"estimated_cost":   outcome.Cost,
			"cost_display":     h.Pricing.FormatAmount(outcome.Cost),
			"currency":         h.Pricing.Currency,
		}
		h.broadcast("send_finished", resp)
		c.JSON(http.StatusOK, resp)

	case notify.OutcomeResult:
		h.writeAudit(attemptID, area, channel, fp, kind, window, category, outcome)
		resp := gin.H{
			"dry_run":          false,
			"attempt_id":       attemptID,
			"area":             area,
			"channel":          channel,
			"msg_type":         string(kind),
			"count":            outcome.RecipientCount,
			"sent":             outcome.Sent,
			"failed":           outcome.Failed,
			"fingerprint":      fp,
			"severity":         outcome.Severity,
			"pricing_category": category,
			"unit_price":       outcome.UnitPrice,
			"estimated_cost":   outcome.Cost,
			"cost_display":     h.Pricing.FormatAmount(outcome.Cost),
			"currency":         h.Pricing.Currency,
		}
		h.broadcast("send_finished", resp)
		c.JSON(http.StatusOK, resp)
	}
}

func (h *SendHandler) writeAudit(attemptID, area, channel, fp string, kind notify.MessageKind, window notify.TimeWindow, category string, outcome notify.Outcome) {
	eta := ""
	if !window.Empty() {
		eta = window.Start.String() + "-" + window.End.String()
	}
	audit := models.SendAudit{
		AttemptID:       attemptID,
		Area:            area,
		Channel:         channel,
		Count:           outcome.RecipientCount,
		Sent:            outcome.Sent,
		Failed:          outcome.Failed,
		Fingerprint:     fp,
		MsgType:         string(kind),
		ETA:             eta,
		PricingCategory: category,
		UnitPrice:       outcome.UnitPrice,
		EstimatedCost:   outcome.Cost,
		Currency:        h.Pricing.Currency,
	}
	if err := h.DB.Create(&audit).Error; err != nil {
		h.Logger.Error("write audit row", zap.String("attempt_id", attemptID), zap.Error(err))
	}
}

func (h *SendHandler) broadcast(event string, data interface{}) {
	if h.Hub != nil {
		h.Hub.BroadcastEvent(event, data)
	}
}

func windowFromPtrs(start, end *string) notify.TimeWindow {
	if start == nil || end == nil {
		return notify.TimeWindow{}
	}
	return windowFromStrings(*start, *end)
}

// fingerprint identifies a (area, channel, message) triple in audit rows
// and responses: sha256, truncated to 16 hex chars.
func fingerprint(area, channel, message string) string {
	sum := sha256.Sum256([]byte(area + channel + message))
	return hex.EncodeToString(sum[:])[:16]
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
