package api

import (
	"net/http"

	"outage-notifier/internal/notify"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	Pricing notify.Snapshot
}

func NewPricingHandler(pricing notify.Snapshot) *PricingHandler {
	return &PricingHandler{Pricing: pricing}
}

// GetPublicConfig exposes the pricing snapshot the sidebar estimate runs on.
func (h *PricingHandler) GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"currency":                 h.Pricing.Currency,
		"default_pricing_category": h.Pricing.Category(),
		"prices":                   h.Pricing.Rates,
	})
}
