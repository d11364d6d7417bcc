package api

import (
	"net/http"

	"outage-notifier/internal/directory"

	"github.com/gin-gonic/gin"
)

type AreaHandler struct {
	Dir *directory.Service
}

func NewAreaHandler(dir *directory.Service) *AreaHandler {
	return &AreaHandler{Dir: dir}
}

// GetAreas returns the valid areas plus per-area counts and customer
// records, enough for the UI to derive both the recipient count and the
// representative sample.
func (h *AreaHandler) GetAreas(c *gin.Context) {
	areas, err := h.Dir.Areas()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	counts, err := h.Dir.Counts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	customers, err := h.Dir.CustomersByArea()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"areas":     areas,
		"counts":    counts,
		"customers": customers,
	})
}
